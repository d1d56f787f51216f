package redis_wrapper

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joripage/stockex/pkg/exchange"
)

const infoKeyPrefix = "stockex:info:"

// InfoCache serves symbol info snapshots out of redis. Entries are written
// on query and dropped after every execution, so a hit is always current.
type InfoCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewInfoCache(client *redis.Client, ttl time.Duration) *InfoCache {
	return &InfoCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *InfoCache) GetInfo(ctx context.Context, symbol string) (*exchange.SymbolInfo, error) {
	raw, err := c.client.Get(ctx, infoKeyPrefix+symbol).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	info := &exchange.SymbolInfo{}
	if err := json.Unmarshal(raw, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (c *InfoCache) SetInfo(ctx context.Context, symbol string, info *exchange.SymbolInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, infoKeyPrefix+symbol, raw, c.ttl).Err()
}

func (c *InfoCache) InvalidateInfo(ctx context.Context, symbol string) error {
	return c.client.Del(ctx, infoKeyPrefix+symbol).Err()
}
