package guardrails

import (
	"net/http"
	"strings"
)

var _ Extractor = &clientIPExtractor{}

// UnknownIdentity is the sentinel returned when no identity header is present.
const UnknownIdentity = "unknown"

// identityHeaders is the priority order for caller identity extraction.
var identityHeaders = []string{"X-Forwarded-For", "X-Real-Ip", "Cf-Connecting-Ip"}

// Extractor derives a rate-limiting identity from inbound request headers.
type Extractor interface {
	Extract(h http.Header) string
}

type clientIPExtractor struct{}

// NewClientIPExtractor creates an Extractor that resolves the caller's IP from
// proxy headers, falling back to UnknownIdentity when none is set.
func NewClientIPExtractor() Extractor {
	return &clientIPExtractor{}
}

// Extract returns the first non-empty identity in priority order. Only the
// first comma-separated entry of X-Forwarded-For counts: that is the client
// the outermost trusted proxy saw.
func (e *clientIPExtractor) Extract(h http.Header) string {
	for _, key := range identityHeaders {
		value := strings.TrimSpace(h.Get(key))
		if value == "" {
			continue
		}
		if key == "X-Forwarded-For" {
			value = strings.TrimSpace(strings.Split(value, ",")[0])
			if value == "" {
				continue
			}
		}
		return value
	}
	return UnknownIdentity
}
