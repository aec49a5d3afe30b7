package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	productKeyPrefix = "product:"
	defaultTTL       = 5 * time.Minute
)

// ProductReader 商品讀取來源, 由db store實作
type ProductReader interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (model.ProductModel, error)
}

// ProductCache redis read-through快取
// redis故障時直接回源, 不影響讀取
type ProductCache struct {
	reader ProductReader
	rdb    *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewProductCache(reader ProductReader, rdb *redis.Client, logger *zerolog.Logger) *ProductCache {
	return &ProductCache{
		reader: reader,
		rdb:    rdb,
		ttl:    defaultTTL,
		logger: logger,
	}
}

func (c *ProductCache) productKey(id uuid.UUID) string {
	return fmt.Sprintf("%s%s", productKeyPrefix, id)
}

func (c *ProductCache) GetProductByID(ctx context.Context, id uuid.UUID) (model.ProductModel, error) {
	key := c.productKey(id)

	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var product model.ProductModel
		if err := json.Unmarshal(data, &product); err == nil {
			return product, nil
		}
		c.logger.Warn().Str("key", key).Msg("failed to unmarshal cached product, falling back to db")
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn().Err(err).Msg("redis error, falling back to db")
	}

	product, err := c.reader.GetProductByID(ctx, id)
	if err != nil {
		return model.ProductModel{}, err
	}

	if jsonData, err := json.Marshal(product); err == nil {
		if err := c.rdb.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to cache product")
		}
	}

	return product, nil
}

// Invalidate 商品異動或評分重算後清除快取
func (c *ProductCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.rdb.Del(ctx, c.productKey(id)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("product_id", id.String()).Msg("failed to invalidate product cache")
	}
}
