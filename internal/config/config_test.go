package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("MIGRATE_ON_START", "")

	cfg := Load()
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	require.True(t, cfg.MigrateOnStart)
	require.Equal(t, 5*time.Minute, cfg.ProductCacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")
	t.Setenv("CACHESYNC_WORKERS", "12")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("LISTING_CACHE_TTL", "30s")

	cfg := Load()
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, 12, cfg.CacheSyncWorkers)
	require.False(t, cfg.MigrateOnStart)
	require.Equal(t, 30*time.Second, cfg.ListingCacheTTL)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("CACHESYNC_WORKERS", "many")
	t.Setenv("PRODUCT_CACHE_TTL", "soon")

	cfg := Load()
	require.Equal(t, 4, cfg.CacheSyncWorkers)
	require.Equal(t, 5*time.Minute, cfg.ProductCacheTTL)
}
