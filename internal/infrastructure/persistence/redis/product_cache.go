package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/ecommerce/internal/domain/catalog"
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// ProductCache 商品详情缓存
// 设计说明:
// 1. Cache-Aside模式:读时先查缓存,未命中回源数据库后写缓存
// 2. 商品更新、下架、删除时由应用层调用Invalidate使缓存失效
// 3. TTL加30分钟兜底,防止失效遗漏导致长期脏数据
// 4. Key设计:product:{id}
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache 创建商品缓存
func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{
		client: client,
		ttl:    30 * time.Minute,
	}
}

// Get 查询缓存中的商品
// 未命中返回(nil, nil),由调用方回源数据库
func (c *ProductCache) Get(ctx context.Context, id uint) (*catalog.Product, error) {
	key := fmt.Sprintf("product:%d", id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // 缓存未命中
		}
		return nil, apperrors.Wrap(err, "查询商品缓存失败")
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		// 缓存数据损坏,当作未命中处理并删除
		c.client.Del(ctx, key)
		return nil, nil
	}

	return &product, nil
}

// Set 写入商品缓存
func (c *ProductCache) Set(ctx context.Context, product *catalog.Product) error {
	key := fmt.Sprintf("product:%d", product.ID)

	data, err := json.Marshal(product)
	if err != nil {
		return apperrors.Wrap(err, "序列化商品失败")
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入商品缓存失败")
	}

	return nil
}

// Invalidate 使商品缓存失效(更新、下架、删除商品时调用)
func (c *ProductCache) Invalidate(ctx context.Context, id uint) error {
	key := fmt.Sprintf("product:%d", id)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return apperrors.Wrap(err, "删除商品缓存失败")
	}

	return nil
}
