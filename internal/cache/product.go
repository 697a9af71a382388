package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	ri "github.com/redis/go-redis/v9"

	"LeadDial/internal/model"
	"LeadDial/storage/redis"
)

// 产品树缓存：ldial:product:tree
// 目录同步任务落库后主动失效，TTL 只是兜底

const (
	productTreePrefix = "product:tree"
	productTreeTTL    = 30 * time.Minute
)

// SetProductTree 缓存整棵产品树
func SetProductTree(ctx context.Context, nodes []*model.ProductNode) error {
	data, err := json.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("failed to marshal product tree: %w", err)
	}

	key := redis.Key(productTreePrefix)
	return redis.Client().Set(ctx, key, data, productTreeTTL).Err()
}

// GetProductTree 读取产品树缓存，未命中返回 false
func GetProductTree(ctx context.Context) ([]*model.ProductNode, bool, error) {
	key := redis.Key(productTreePrefix)

	data, err := redis.Client().Get(ctx, key).Result()
	if err != nil {
		if err == ri.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get product tree cache: %w", err)
	}

	var nodes []*model.ProductNode
	if err := json.Unmarshal([]byte(data), &nodes); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal product tree cache: %w", err)
	}
	return nodes, true, nil
}

// InvalidateProductTree 目录变更后清缓存
func InvalidateProductTree(ctx context.Context) error {
	key := redis.Key(productTreePrefix)
	return redis.Client().Del(ctx, key).Err()
}
