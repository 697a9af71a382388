package cache

import (
	"context"
	"time"

	"LeadDial/storage/redis"
)

// 筛选计数查询槽的世代号：ldial:count:gen:{slot}
// 每次发起新的计数查询先推进世代，慢响应带着旧世代回来时直接判废，
// 保证每个查询槽同一时刻只有一个权威响应。

const (
	countGenPrefix = "count:gen"
	countGenTTL    = 2 * time.Hour
)

// NextCountGeneration 推进查询槽世代号并返回新值
func NextCountGeneration(ctx context.Context, slot string) (int64, error) {
	key := redis.Key(countGenPrefix, slot)

	gen, err := redis.Client().Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if gen == 1 {
		if err := redis.Client().Expire(ctx, key, countGenTTL).Err(); err != nil {
			return gen, err
		}
	}
	return gen, nil
}

// CurrentCountGeneration 读取查询槽当前世代号，key 不存在视为 0
func CurrentCountGeneration(ctx context.Context, slot string) (int64, error) {
	key := redis.Key(countGenPrefix, slot)

	gen, err := redis.Client().Get(ctx, key).Int64()
	if err != nil {
		return 0, nil
	}
	return gen, nil
}
