// Package redisconn owns the process-wide Redis connection handle. The handle
// is created once, initialized lazily on first use, and closed explicitly
// during shutdown; core components receive the client as a constructor
// dependency instead of reaching for a package-level singleton.
package redisconn

import (
	"sync"

	"github.com/redis/go-redis/v9"
)

// Conn is a lazily-initialized Redis connection handle.
type Conn struct {
	opts   *redis.Options
	once   sync.Once
	client *redis.Client
}

// New creates a handle for the given options without connecting yet.
func New(opts *redis.Options) *Conn {
	return &Conn{opts: opts}
}

// Client returns the shared client, creating it on first call. Safe for
// concurrent use.
func (c *Conn) Client() *redis.Client {
	c.once.Do(func() {
		c.client = redis.NewClient(c.opts)
	})
	return c.client
}

// Close releases the client, if it was ever created. Call once during process
// shutdown, after all users of the client are done.
func (c *Conn) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
