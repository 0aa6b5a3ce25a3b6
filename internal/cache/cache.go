package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/config"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
)

const (
	promoListKey = "promos:available"
	promoListTTL = time.Minute
)

// Cache is a thin Redis wrapper for hot public reads. A nil *Cache is
// valid and turns every operation into a miss, so the server runs without
// Redis configured.
type Cache struct {
	rdb *redis.Client
}

func Connect(cfg *config.Config) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Cache{rdb: rdb}, nil
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *Cache) GetPromoList(ctx context.Context) ([]model.AvailablePromo, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, promoListKey).Bytes()
	if err != nil {
		return nil, false
	}
	var promos []model.AvailablePromo
	if err := json.Unmarshal(data, &promos); err != nil {
		return nil, false
	}
	return promos, true
}

func (c *Cache) SetPromoList(ctx context.Context, promos []model.AvailablePromo) {
	if c == nil {
		return
	}
	data, err := json.Marshal(promos)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, promoListKey, data, promoListTTL)
}

// InvalidatePromoList drops the cached list after a redemption or an admin
// change so remaining-use counts do not go stale for a full TTL.
func (c *Cache) InvalidatePromoList(ctx context.Context) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, promoListKey)
}
