// Package restaurantcache keeps restaurant details in Redis in front of the
// Restaurant service. Details change rarely and are read on every accepted order.
package restaurantcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	keyRestaurant = "restaurant:%s"

	DefaultTTL = 5 * time.Minute
)

// Client is a cache-aside ports.RestaurantClient. Concurrent misses for the
// same restaurant share one upstream call. Redis failures degrade to a direct
// upstream call; they are logged and never returned.
type Client struct {
	next   ports.RestaurantClient
	rdb    redis.Cmdable
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

func NewClient(next ports.RestaurantClient, rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *Client {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With("component", "restaurant_cache"),
	}
}

type cachedRestaurant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (c *Client) GetRestaurant(ctx context.Context, id kernel.UUID) (ports.Restaurant, error) {
	key := fmt.Sprintf(keyRestaurant, id.String())

	if restaurant, ok := c.lookup(ctx, key, id); ok {
		return restaurant, nil
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		if restaurant, ok := c.lookup(ctx, key, id); ok {
			return restaurant, nil
		}
		fresh, fetchErr := c.next.GetRestaurant(ctx, id)
		if fetchErr != nil {
			return ports.Restaurant{}, fetchErr
		}
		c.store(ctx, key, fresh)
		return fresh, nil
	})
	if err != nil {
		return ports.Restaurant{}, err
	}

	return value.(ports.Restaurant), nil
}

// EvaluateOrder is never cached.
func (c *Client) EvaluateOrder(ctx context.Context, o *order.Order) error {
	return c.next.EvaluateOrder(ctx, o)
}

// Invalidate drops the cached details of one restaurant.
func (c *Client) Invalidate(ctx context.Context, id kernel.UUID) error {
	return c.rdb.Del(ctx, fmt.Sprintf(keyRestaurant, id.String())).Err()
}

func (c *Client) lookup(ctx context.Context, key string, id kernel.UUID) (ports.Restaurant, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "restaurant cache read failed", "restaurant_id", id.String(), "error", err)
		}
		return ports.Restaurant{}, false
	}

	var cached cachedRestaurant
	if err = json.Unmarshal(raw, &cached); err != nil {
		c.logger.WarnContext(ctx, "restaurant cache entry is corrupt", "restaurant_id", id.String(), "error", err)
		return ports.Restaurant{}, false
	}

	return ports.Restaurant{ID: id, Name: cached.Name, Address: cached.Address, Phone: cached.Phone}, true
}

func (c *Client) store(ctx context.Context, key string, r ports.Restaurant) {
	raw, err := json.Marshal(cachedRestaurant{ID: r.ID.String(), Name: r.Name, Address: r.Address, Phone: r.Phone})
	if err != nil {
		return
	}
	if err = c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "restaurant cache write failed", "restaurant_id", r.ID.String(), "error", err)
	}
}

// NewRedisClient connects to Redis at addr with the short timeouts used by the cache.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}
