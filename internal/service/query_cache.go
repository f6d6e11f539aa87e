package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"school_survey_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const publicQueryKeyPrefix = "survey:public:"

// QueryCache 公开查询页的Redis缓存。审核和编辑都会改变公开可见的数据，
// 所以写路径统一调用Flush整体失效，不做细粒度淘汰。
// Redis不可用时所有方法退化为no-op，查询直接走库。
type QueryCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewQueryCache(rdb *redis.Client, ttl time.Duration) *QueryCache {
	return &QueryCache{Redis: rdb, TTL: ttl}
}

// Key 由规范化后的查询串生成缓存键
func (c *QueryCache) Key(canonical string) string {
	sum := sha1.Sum([]byte(canonical))
	return publicQueryKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *QueryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.Redis == nil {
		return nil, false
	}
	val, err := c.Redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Log.Warn("query cache get failed", zap.Error(err))
		return nil, false
	}
	return val, true
}

func (c *QueryCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.Redis == nil {
		return
	}
	if err := c.Redis.Set(ctx, key, payload, c.TTL).Err(); err != nil {
		logger.Log.Warn("query cache set failed", zap.Error(err))
	}
}

// Flush 清空全部公开查询缓存
func (c *QueryCache) Flush(ctx context.Context) {
	if c == nil || c.Redis == nil {
		return
	}
	keys, err := c.Redis.Keys(ctx, publicQueryKeyPrefix+"*").Result()
	if err != nil {
		logger.Log.Warn("query cache flush failed", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		c.Redis.Del(ctx, keys...)
	}
}
