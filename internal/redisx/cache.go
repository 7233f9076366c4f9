package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProductCache stores rendered storefront views. Misses and Redis failures
// both report ok=false so callers fall back to the database.
type ProductCache struct {
	Redis      redis.Cmdable
	DetailTTL  time.Duration
	ListingTTL time.Duration
}

func NewProductCache(rdb redis.Cmdable, detailTTL, listingTTL time.Duration) *ProductCache {
	if detailTTL <= 0 {
		detailTTL = TTLProductDetail
	}
	if listingTTL <= 0 {
		listingTTL = TTLActiveListing
	}
	return &ProductCache{Redis: rdb, DetailTTL: detailTTL, ListingTTL: listingTTL}
}

func (c *ProductCache) get(ctx context.Context, key string, out any) (bool, error) {
	b, err := c.Redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (c *ProductCache) set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, key, b, ttl).Err()
}

func (c *ProductCache) GetDetail(ctx context.Context, productID int64, out any) (bool, error) {
	return c.get(ctx, fmt.Sprintf(KeyProductDetail, productID), out)
}

func (c *ProductCache) SetDetail(ctx context.Context, productID int64, v any) error {
	return c.set(ctx, fmt.Sprintf(KeyProductDetail, productID), v, c.DetailTTL)
}

func (c *ProductCache) GetListing(ctx context.Context, out any) (bool, error) {
	return c.get(ctx, KeyActiveProducts, out)
}

func (c *ProductCache) SetListing(ctx context.Context, v any) error {
	return c.set(ctx, KeyActiveProducts, v, c.ListingTTL)
}

// Invalidate drops the listing and the detail of every given product.
func (c *ProductCache) Invalidate(ctx context.Context, productIDs ...int64) error {
	keys := make([]string, 0, len(productIDs)+1)
	keys = append(keys, KeyActiveProducts)
	for _, id := range productIDs {
		keys = append(keys, fmt.Sprintf(KeyProductDetail, id))
	}
	return c.Redis.Del(ctx, keys...).Err()
}
