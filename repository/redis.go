// redis.go
package repository

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// NewRedis 建立连接并 ping 一次
func NewRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // 如果有密码，写在这里
		DB:       db,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}
	return rdb, nil
}
