package guardrails

import (
	"context"
)

// Policy defines a per-key admission quota: at most MaxRequests admissions
// within any rolling window of WindowSeconds.
type Policy struct {
	MaxRequests   int
	WindowSeconds int
}

// Verdict is the outcome of an admission check.
type Verdict struct {
	Admitted       bool
	Remaining      int
	ResetInSeconds int
}

// Admitter decides whether the request identified by key is admitted under the
// given policy. Implementations never return an error: on infrastructure
// failure they fail open and report an admitting Verdict.
type Admitter interface {
	CheckAndRecord(ctx context.Context, key string, policy Policy) Verdict
}

// RateLimitKey builds the shared-store key for a scope/identity pair.
func RateLimitKey(scope, identity string) string {
	return "ratelimit:" + scope + ":" + identity
}
