package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/calendarapp/calendar-backend/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// AppointmentCache caches per-user appointment lists in Redis.
// Key format: appointments:<user_id>. Every mutation of a user's
// appointments invalidates that user's entry; entries also expire on
// their own after the TTL so a missed invalidation cannot go stale
// forever.
type AppointmentCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewAppointmentCache wraps the given Redis client. A non-positive ttl
// falls back to defaultCacheTTL.
func NewAppointmentCache(rdb *redis.Client, ttl time.Duration) *AppointmentCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &AppointmentCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached list for userID, or (nil, nil) on a miss.
func (c *AppointmentCache) Get(ctx context.Context, userID int64) ([]*domain.Appointment, error) {
	b, err := c.rdb.Get(ctx, c.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []*domain.Appointment
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []*domain.Appointment{}
	}
	return list, nil
}

// Set stores the list for userID.
func (c *AppointmentCache) Set(ctx context.Context, userID int64, appts []*domain.Appointment) error {
	if appts == nil {
		appts = []*domain.Appointment{}
	}
	b, err := json.Marshal(appts)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(userID), b, c.ttl).Err()
}

// Invalidate drops the cached list for userID.
func (c *AppointmentCache) Invalidate(ctx context.Context, userID int64) error {
	return c.rdb.Del(ctx, c.key(userID)).Err()
}

func (c *AppointmentCache) key(userID int64) string {
	return fmt.Sprintf("appointments:%d", userID)
}
