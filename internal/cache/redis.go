package cache

import (
	"context"
	"fmt"
	"time"

	"invoice-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Invoice cache keys
const (
	InvoiceListKey      = "invoices:list"
	DashboardSummaryKey = "dashboard:summary"
)

// InvoiceListTTL bounds staleness if an invalidation is ever lost.
const InvoiceListTTL = 5 * time.Minute

var client *redis.Client

// Init initializes the Redis connection. Callers treat a failed Init as a
// degraded mode: every function below is a no-op when the client is nil.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateInvoiceCaches clears the cached invoice listing.
// Called after every successful create/update/delete, never on a failed one.
func InvalidateInvoiceCaches(ctx context.Context) {
	InvalidatePattern(ctx, "invoices:*")
	InvalidateKeys(ctx, DashboardSummaryKey)
}

// InvalidateCustomerCaches clears customer-related caches
func InvalidateCustomerCaches(ctx context.Context) {
	InvalidatePattern(ctx, "customers:*")
	InvalidateKeys(ctx, DashboardSummaryKey)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
