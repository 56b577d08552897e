package admission

import (
	"context"
	"sync"
	"time"

	"github.com/studyhall/guardrails"
)

var _ guardrails.Admitter = &MemoryController{}

// MemoryController is an in-process sliding-window admitter with the same
// contract as Controller. State is local to the process, so it does not
// enforce a global quota across replicas; it is meant for tests, local
// development and single-instance deployments.
type MemoryController struct {
	mu     sync.Mutex
	now    func() time.Time
	events map[string][]time.Time
}

// NewMemoryController creates an in-memory admission controller.
func NewMemoryController(now func() time.Time) *MemoryController {
	return &MemoryController{
		now:    now,
		events: make(map[string][]time.Time),
	}
}

// CheckAndRecord prunes expired markers for key, decides admission on the
// count before this call, and records the current attempt.
func (m *MemoryController) CheckAndRecord(_ context.Context, key string, policy guardrails.Policy) guardrails.Verdict {
	now := m.now()
	cutoff := now.Add(-time.Duration(policy.WindowSeconds) * time.Second)

	m.mu.Lock()
	defer m.mu.Unlock()

	valid := make([]time.Time, 0, len(m.events[key])+1)
	for _, ts := range m.events[key] {
		if !ts.Before(cutoff) {
			valid = append(valid, ts)
		}
	}

	currentCount := len(valid)
	m.events[key] = append(valid, now)

	remaining := policy.MaxRequests - currentCount - 1
	if remaining < 0 {
		remaining = 0
	}

	return guardrails.Verdict{
		Admitted:       currentCount < policy.MaxRequests,
		Remaining:      remaining,
		ResetInSeconds: policy.WindowSeconds,
	}
}
