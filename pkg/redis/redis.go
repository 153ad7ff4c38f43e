package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"event-schedule/config"
	pkgerrors "event-schedule/pkg/errors"
)

// Client Redis 客户端封装
// 当前用于场次准入的地点级互斥锁与接口限流
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 分布式锁 ──

const lockPrefix = "lock:"

// 仅当持有者令牌一致时才删除，避免误删他人续上的锁
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AcquireLock 尝试获取锁，成功返回释放函数；锁被占用返回 ErrLockNotAcquired。
// 在 ctx 结束前按 retryInterval 重试。
func (c *Client) AcquireLock(ctx context.Context, name string, ttl, retryInterval time.Duration) (func(), error) {
	key := lockPrefix + name
	token := uuid.New().String()

	for {
		ok, err := c.rdb.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("获取锁失败: %w", err)
		}
		if ok {
			break
		}
		if retryInterval <= 0 {
			return nil, pkgerrors.ErrLockNotAcquired
		}
		select {
		case <-ctx.Done():
			return nil, pkgerrors.ErrLockNotAcquired
		case <-time.After(retryInterval):
		}
	}

	release := func() {
		// 释放不受调用方 ctx 取消影响
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, c.rdb, []string{key}, token).Err(); err != nil {
			c.logger.Warn("释放锁失败", zap.String("key", key), zap.Error(err))
		}
	}
	return release, nil
}

// ── 滑动窗口限流 ──

const rateLimitPrefix = "rate_limit:"

// CheckRateLimit 判断 key 在 window 内的请求数是否未超过 limit
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	fullKey := rateLimitPrefix + key
	now := time.Now()
	member := strconv.FormatInt(now.UnixNano(), 10) + ":" + uuid.New().String()[:8]

	var card *goredis.IntCmd
	_, err := c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, fullKey, "0", strconv.FormatInt(now.Add(-window).UnixNano(), 10))
		pipe.ZAdd(ctx, fullKey, goredis.Z{Score: float64(now.UnixNano()), Member: member})
		card = pipe.ZCard(ctx, fullKey)
		pipe.Expire(ctx, fullKey, window)
		return nil
	})
	if err != nil {
		return false, err
	}
	return card.Val() <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
