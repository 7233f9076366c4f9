package redisx

import "time"

const (
	// Cached storefront product detail: catalog:product:{product_id} -> product JSON
	KeyProductDetail = "catalog:product:%d"

	// Cached storefront listing of active products
	KeyActiveProducts = "catalog:active"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLProductDetail = 5 * time.Minute
	TTLActiveListing = time.Minute
	TTLDedup         = 48 * time.Hour
)
