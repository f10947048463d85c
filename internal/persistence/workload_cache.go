package persistence

import (
	"context"
	"strconv"
	"time"
)

const (
	workloadKeyPrefix = "technician:active_count:"
	workloadTTL       = 30 * time.Second
)

// WorkloadCache stores per-technician IN_PROGRESS ticket counts in Redis.
// Entries are invalidated whenever a write changes a technician's workload,
// so the authoritative count always comes from the ticket store after a miss.
// All methods are nil-safe and treat Redis failures as cache misses.
type WorkloadCache struct {
	redis *Redis
}

// NewWorkloadCache wraps the shared Redis client.
func NewWorkloadCache(r *Redis) *WorkloadCache {
	return &WorkloadCache{redis: r}
}

// GetActiveCount returns the cached count for a technician, if present.
func (c *WorkloadCache) GetActiveCount(ctx context.Context, technicianID string) (int, bool) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return 0, false
	}
	val, err := c.redis.Client.Get(ctx, workloadKeyPrefix+technicianID).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return count, true
}

// SetActiveCount caches the count for a technician with a short TTL.
func (c *WorkloadCache) SetActiveCount(ctx context.Context, technicianID string, count int) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	_ = c.redis.Client.Set(ctx, workloadKeyPrefix+technicianID, strconv.Itoa(count), workloadTTL).Err()
}

// Invalidate drops the cached count for a technician.
func (c *WorkloadCache) Invalidate(ctx context.Context, technicianID string) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	_ = c.redis.Client.Del(ctx, workloadKeyPrefix+technicianID).Err()
}
