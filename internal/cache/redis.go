package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/itemshare/config"
	"github.com/Domenick1991/itemshare/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps item search results. Keys carry a generation
// counter that item writes bump, so stale results are never served
// after a catalog change.
type RedisCache struct {
	client    *redis.Client
	searchTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, searchTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		searchTTL: searchTTL,
	}
}

func (c *RedisCache) GetSearch(ctx context.Context, text string) ([]domain.Item, error) {
	key, err := c.searchKey(ctx, text)
	if err != nil {
		return nil, err
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var items []domain.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *RedisCache) SetSearch(ctx context.Context, text string, items []domain.Item) error {
	key, err := c.searchKey(ctx, text)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.searchTTL).Err()
}

// InvalidateItems bumps the generation so every cached search key
// becomes unreachable and expires on its own TTL.
func (c *RedisCache) InvalidateItems(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey()).Err()
}

func (c *RedisCache) searchKey(ctx context.Context, text string) (string, error) {
	gen, err := c.client.Get(ctx, generationKey()).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("cache:items:search:%d:%s", gen, text), nil
}

func generationKey() string {
	return "cache:items:generation"
}
