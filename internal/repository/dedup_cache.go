package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/sla-monitor/internal/domain"
)

// DedupCache is a Redis fast path in front of the alert-existence query.
// A cache hit means the (ticket, kind) pair was alerted within the dedup
// window; a miss says nothing and callers fall back to the database. Losing
// the cache only costs extra SQL reads, never correctness.
type DedupCache struct {
	client *redis.Client
	window time.Duration
}

// NewDedupCache wraps an optional Redis client. A nil client disables the
// fast path entirely.
func NewDedupCache(client *redis.Client, window time.Duration) *DedupCache {
	return &DedupCache{client: client, window: window}
}

// Seen reports whether the pair was marked within the window. Errors are
// returned so callers can decide to fall through to the database.
func (c *DedupCache) Seen(ctx context.Context, ticketID string, kind domain.AlertKind) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, c.key(ticketID, kind)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Mark records the pair for the dedup window.
func (c *DedupCache) Mark(ctx context.Context, ticketID string, kind domain.AlertKind) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, c.key(ticketID, kind), "1", c.window).Err()
}

func (c *DedupCache) key(ticketID string, kind domain.AlertKind) string {
	return fmt.Sprintf("sla:alerted:%s:%s", ticketID, kind)
}
