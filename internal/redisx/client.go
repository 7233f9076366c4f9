package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// Dedup remembers processed event ids for one consuming service.
type Dedup struct {
	Redis   redis.Cmdable
	Service string
	TTL     time.Duration
}

func (d *Dedup) key(eventID string) string { return fmt.Sprintf(KeyDedup, d.Service, eventID) }

// Claim marks eventID as taken; false means another delivery already claimed it.
func (d *Dedup) Claim(ctx context.Context, eventID string) (bool, error) {
	ttl := d.TTL
	if ttl <= 0 {
		ttl = TTLDedup
	}
	return d.Redis.SetNX(ctx, d.key(eventID), "1", ttl).Result()
}

// Release forgets a claim so a redelivery is processed again.
func (d *Dedup) Release(ctx context.Context, eventID string) error {
	return d.Redis.Del(ctx, d.key(eventID)).Err()
}
