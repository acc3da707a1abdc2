package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// defaultPingTimeout 未配置dial_timeout时启动探活的超时
const defaultPingTimeout = 3 * time.Second

// NewClient 创建图书缓存使用的Redis客户端(redis.enabled=true时使用)
// 启动时连不上直接失败;运行中的故障由缓存熔断器兜底,不影响读写
func NewClient(cfg *config.Config, log *logrus.Logger) (*redis.Client, error) {
	rc := cfg.Redis
	client := redis.NewClient(&redis.Options{
		Addr:         rc.Addr(),
		Password:     rc.Password,
		DB:           rc.DB,
		PoolSize:     rc.PoolSize,
		MinIdleConns: rc.MinIdleConns,
		DialTimeout:  rc.DialTimeout,
		ReadTimeout:  rc.ReadTimeout,
		WriteTimeout: rc.WriteTimeout,
	})

	timeout := rc.DialTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("Redis连接失败(%s): %w", rc.Addr(), err)
	}

	log.WithFields(logrus.Fields{
		"addr":      rc.Addr(),
		"db":        rc.DB,
		"cache_ttl": rc.CacheTTL.String(),
	}).Info("✓ 图书缓存已启用")
	return client, nil
}
