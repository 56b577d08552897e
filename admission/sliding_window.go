// Package admission implements the sliding-window admission controller backed
// by a shared Redis store, so quotas hold across concurrent server instances.
package admission

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/studyhall/guardrails"
)

var _ guardrails.Admitter = &Controller{}

// Controller decides admission per key using a rolling window of event markers
// kept in a Redis sorted set. It holds no mutable state of its own; per-key
// atomicity is delegated to the store's MULTI/EXEC transaction.
type Controller struct {
	client    *redis.Client
	now       func() time.Time
	logger    *zap.Logger
	warnLimit *rate.Limiter
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for fail-open warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithClock overrides the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController initializes a sliding-window admission controller on top of an
// existing Redis client.
func NewController(client *redis.Client, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		now:    time.Now,
		logger: zap.NewNop(),
		// one warning per interval, so a store outage does not flood the logs
		warnLimit: rate.NewLimiter(rate.Every(10*time.Second), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckAndRecord atomically records the current attempt and decides whether it
// is admitted under policy. The decision counts only markers recorded before
// this call, so a key gets exactly policy.MaxRequests admissions per rolling
// window. Store failures fail open: the caller is admitted and the failure is
// logged, never surfaced.
func (c *Controller) CheckAndRecord(ctx context.Context, key string, policy guardrails.Policy) guardrails.Verdict {
	now := c.now()
	window := time.Duration(policy.WindowSeconds) * time.Second
	windowStart := now.Add(-window).UnixMilli()

	// the marker value must not collide with concurrent attempts at the same
	// millisecond, so the timestamp gets a random suffix
	marker := fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString())

	var count *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "-inf", "("+strconv.FormatInt(windowStart, 10))
		count = pipe.ZCard(ctx, key)
		pipe.ZAdd(ctx, key, redis.Z{
			Score:  float64(now.UnixMilli()),
			Member: marker,
		})
		pipe.Expire(ctx, key, window)
		return nil
	})
	if err != nil {
		return c.failOpen(key, policy, fmt.Errorf("failed to execute sorted set transaction for key %v: %w", key, err))
	}

	currentCount, err := count.Result()
	if err != nil {
		return c.failOpen(key, policy, fmt.Errorf("failed to count markers for key %v: %w", key, err))
	}

	remaining := policy.MaxRequests - int(currentCount) - 1
	if remaining < 0 {
		remaining = 0
	}

	return guardrails.Verdict{
		Admitted:       currentCount < int64(policy.MaxRequests),
		Remaining:      remaining,
		ResetInSeconds: policy.WindowSeconds,
	}
}

// failOpen admits the request despite a store failure: an outage of the shared
// store must not become an outage of the protected service.
func (c *Controller) failOpen(key string, policy guardrails.Policy, err error) guardrails.Verdict {
	if c.warnLimit.Allow() {
		c.logger.Warn("admission store unavailable, failing open",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	remaining := policy.MaxRequests - 1
	if remaining < 0 {
		remaining = 0
	}

	return guardrails.Verdict{
		Admitted:       true,
		Remaining:      remaining,
		ResetInSeconds: policy.WindowSeconds,
	}
}
