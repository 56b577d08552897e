// Package sandbox validates untrusted relative paths and resolves them to
// absolute paths guaranteed to stay inside a trusted root directory, defeating
// traversal and symlink escapes.
//
// All rejections are uniform: a caller only learns that a path is not safe,
// never whether it was malformed, a traversal attempt or a symlink escape.
package sandbox

import (
	"path/filepath"
	"regexp"
	"strings"
)

// segmentPattern is the permitted alphabet per path segment: slug-style names
// only, no dots, no uppercase, no leading hyphen.
var segmentPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// IsSafeRelativePath reports whether input is a well-formed relative path made
// of slug segments. Absolute paths, Windows drive and UNC paths, dot segments
// and anything outside the slug alphabet are rejected. Repeated slashes
// collapse, so "css//selectors" is equivalent to "css/selectors".
func IsSafeRelativePath(input string) bool {
	if input == "" ||
		strings.ContainsAny(input, "\x00\\:") ||
		strings.HasPrefix(input, "/") {
		return false
	}

	segments := splitSegments(input)
	if len(segments) == 0 {
		return false
	}

	for _, segment := range segments {
		if segment == "." || segment == ".." {
			return false
		}
		if !segmentPattern.MatchString(segment) {
			return false
		}
	}

	return true
}

// ResolveWithinRoot turns an untrusted relative path plus trusted suffix
// segments into a verified absolute path under root. The untrusted portion
// must pass IsSafeRelativePath; the joined path is then checked for
// containment twice, lexically and again after symlink resolution. Symlink
// resolution is best effort: a path that does not exist yet falls back to its
// lexical form rather than being rejected, since callers may be about to
// create it. Returns the resolved path and true, or "" and false.
func ResolveWithinRoot(root, untrustedPath string, trustedSuffixSegments ...string) (string, bool) {
	if !IsSafeRelativePath(untrustedPath) {
		return "", false
	}

	rootResolved, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}

	elems := append([]string{rootResolved}, splitSegments(untrustedPath)...)
	elems = append(elems, trustedSuffixSegments...)
	candidate := filepath.Join(elems...)

	if !contains(rootResolved, candidate) {
		return "", false
	}

	// A symlink inside the root can point outside it and still pass the
	// lexical check, so re-check against the real paths when both resolve.
	realRoot, rootErr := filepath.EvalSymlinks(rootResolved)
	realCandidate, candidateErr := filepath.EvalSymlinks(candidate)
	if rootErr == nil && candidateErr == nil {
		if !contains(realRoot, realCandidate) {
			return "", false
		}
		return realCandidate, true
	}

	return candidate, true
}

// contains reports whether candidate is root itself or a descendant of root.
// Both arguments must already be absolute and normalized.
func contains(root, candidate string) bool {
	rel, err := filepath.Rel(root, candidate)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return !filepath.IsAbs(rel)
}

// splitSegments splits a /-separated path, dropping empty segments so that
// repeated slashes collapse.
func splitSegments(input string) []string {
	parts := strings.Split(input, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
