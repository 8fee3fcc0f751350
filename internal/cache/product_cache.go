package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	listTTL   = 5 * time.Minute
	detailTTL = time.Hour
)

// カタログ読み取りのキャッシュ。
// clientがnilなら全部素通し（REDIS_ADDR未設定の開発環境用）。
type ProductCache struct {
	client *redis.Client
}

func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{client: client}
}

// 一覧キャッシュ取得。ヒットしなければfalse。
func (c *ProductCache) GetList(ctx context.Context, key string, dst interface{}) (bool, error) {
	return c.get(ctx, listKey(key), dst)
}

func (c *ProductCache) SetList(ctx context.Context, key string, v interface{}) error {
	return c.set(ctx, listKey(key), v, listTTL)
}

// 詳細キャッシュ取得。ヒットしなければfalse。
func (c *ProductCache) GetDetail(ctx context.Context, productID int64, dst interface{}) (bool, error) {
	return c.get(ctx, detailKey(productID), dst)
}

func (c *ProductCache) SetDetail(ctx context.Context, productID int64, v interface{}) error {
	return c.set(ctx, detailKey(productID), v, detailTTL)
}

// 管理者が商品を触ったら全部捨てる
func (c *ProductCache) InvalidateAll(ctx context.Context) error {
	if c.client == nil {
		return nil
	}

	iter := c.client.Scan(ctx, 0, "products:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *ProductCache) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	if c.client == nil {
		return false, nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		//壊れたエントリは消して取り直させる
		_ = c.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (c *ProductCache) set(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func listKey(key string) string {
	return fmt.Sprintf("products:list:%s", key)
}

func detailKey(productID int64) string {
	return fmt.Sprintf("products:detail:%d", productID)
}
