// Package redisdedup provides the Redis-backed booking deduplicator.
// Customer bookings carry an opaque idempotency key; a repeated key within
// the retention window resolves to the originally created shipment instead
// of booking a duplicate.
package redisdedup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcelbridge/internal/api/metrics"
	"parcelbridge/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const (
	retentionTTL   = 24 * time.Hour
	defaultTimeout = 5 * time.Second
)

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// BookingDeduplicator implements ports.BookingDeduplicator backed by Redis.
// Key format: booking:<idempotency_key> -> shipment UUID.
type BookingDeduplicator struct {
	client *redis.Client
}

// NewBookingDeduplicator creates a deduplicator wrapping the given client.
func NewBookingDeduplicator(client *redis.Client) *BookingDeduplicator {
	return &BookingDeduplicator{client: client}
}

// Find returns the shipment created under the key, if the key was seen
// within the retention window.
func (d *BookingDeduplicator) Find(ctx context.Context, key string) (kernel.UUID, bool, error) {
	value, err := d.client.Get(ctx, d.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.BookingDedupTotal.WithLabelValues("miss").Inc()
			return kernel.UUID{}, false, nil
		}
		return kernel.UUID{}, false, fmt.Errorf("booking dedup lookup: %w", err)
	}

	shipmentID, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, false, fmt.Errorf("booking dedup lookup: %w", err)
	}

	metrics.BookingDedupTotal.WithLabelValues("hit").Inc()
	return shipmentID, true, nil
}

// Remember associates the key with the created shipment for the retention
// window.
func (d *BookingDeduplicator) Remember(ctx context.Context, key string, shipmentID kernel.UUID) error {
	return d.client.Set(ctx, d.key(key), shipmentID.String(), retentionTTL).Err()
}

func (d *BookingDeduplicator) key(key string) string {
	return "booking:" + key
}
