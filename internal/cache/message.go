package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"LeadDial/storage/redis"
)

// 消息幂等标记：ldial:message:processed:{messageID}
// 任务待处理计数：ldial:task:pending:{taskID}

const (
	messageProcessedPrefix = "message:processed"
	taskPendingPrefix      = "task:pending"

	processedTTL   = 48 * time.Hour
	taskPendingTTL = 7 * 24 * time.Hour
)

// TryMarkMessageProcessing 尝试原子性地标记消息正在处理（使用 SETNX）。
// 返回 false 表示重复投递，消费方应当跳过。
func TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = processedTTL
	}

	key := redis.Key(messageProcessedPrefix, messageID)
	result, err := redis.Client().SetNX(ctx, key, "processing", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message as processing: %w", err)
	}
	return result, nil
}

// MarkMessageProcessed 标记消息已处理，处理成功时调用并延长 TTL
func MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = processedTTL
	}

	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().Set(ctx, key, "processed", ttl).Err()
}

// UnmarkMessage 处理失败时撤掉标记，允许重投后再次处理
func UnmarkMessage(ctx context.Context, messageID string) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}

// SetTaskPending 任务启动时写入待处理外呼数
func SetTaskPending(ctx context.Context, taskID int64, count int) error {
	key := redis.Key(taskPendingPrefix, strconv.FormatInt(taskID, 10))
	return redis.Client().Set(ctx, key, count, taskPendingTTL).Err()
}

// DecrTaskPending 单条外呼落库后减一，返回剩余数。
// 减到 0 的那个消费者负责投递任务收尾消息。
func DecrTaskPending(ctx context.Context, taskID int64) (int64, error) {
	key := redis.Key(taskPendingPrefix, strconv.FormatInt(taskID, 10))

	remaining, err := redis.Client().Decr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to decr task pending: %w", err)
	}
	return remaining, nil
}

// DeleteTaskPending 任务收尾后清理计数
func DeleteTaskPending(ctx context.Context, taskID int64) error {
	key := redis.Key(taskPendingPrefix, strconv.FormatInt(taskID, 10))
	return redis.Client().Del(ctx, key).Err()
}
