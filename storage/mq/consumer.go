package mq

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	apperrors "LeadDial/pkg/errors"
	"LeadDial/pkg/logger"
)

// ConsumeOptions 消费配置
type ConsumeOptions struct {
	Queue         string
	ConsumerTag   string
	PrefetchCount int
	Handler       func(ctx context.Context, delivery amqp.Delivery) error
}

// Consume 阻塞消费指定队列，ctx 取消后关闭 channel 退出
// Handler 返回 nil 或 SkipMessageError 时 ack，其余错误 nack 重入队
func Consume(ctx context.Context, opts ConsumeOptions) error {
	mqConn := Connection()
	if mqConn == nil {
		return fmt.Errorf("RabbitMQ connection is nil")
	}

	ch, err := mqConn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open consume channel: %w", err)
	}
	defer ch.Close()

	prefetch := opts.PrefetchCount
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := ch.Consume(
		opts.Queue,
		opts.ConsumerTag,
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", opts.Queue, err)
	}

	logger.Logger.Info("Consumer started",
		zap.String("queue", opts.Queue),
		zap.String("consumer_tag", opts.ConsumerTag),
	)

	for {
		select {
		case <-ctx.Done():
			logger.Logger.Info("Consumer stopping",
				zap.String("queue", opts.Queue),
			)
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed for queue %s", opts.Queue)
			}
			handleDelivery(ctx, opts, delivery)
		}
	}
}

func handleDelivery(ctx context.Context, opts ConsumeOptions, delivery amqp.Delivery) {
	err := opts.Handler(ctx, delivery)
	if err == nil {
		if ackErr := delivery.Ack(false); ackErr != nil {
			logger.Logger.Error("Failed to ack message",
				zap.String("queue", opts.Queue),
				zap.Error(ackErr),
			)
		}
		return
	}

	var skipErr *apperrors.SkipMessageError
	if errors.As(err, &skipErr) {
		logger.Logger.Warn("Skipping message",
			zap.String("queue", opts.Queue),
			zap.String("reason", skipErr.Reason),
		)
		if ackErr := delivery.Ack(false); ackErr != nil {
			logger.Logger.Error("Failed to ack skipped message",
				zap.String("queue", opts.Queue),
				zap.Error(ackErr),
			)
		}
		return
	}

	logger.Logger.Error("Handler failed, requeueing message",
		zap.String("queue", opts.Queue),
		zap.Error(err),
	)
	if nackErr := delivery.Nack(false, true); nackErr != nil {
		logger.Logger.Error("Failed to nack message",
			zap.String("queue", opts.Queue),
			zap.Error(nackErr),
		)
	}
}
