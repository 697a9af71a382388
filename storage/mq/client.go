package mq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"LeadDial/config"
)

const (
	// ExchangeCalls 外呼任务消息直连交换机
	ExchangeCalls = "calls.direct"
	// ExchangeDelayed 延迟投递交换机（需要 rabbitmq-delayed-message-exchange 插件）
	ExchangeDelayed = "calls.delayed"

	// QueueCallJobs 外呼批次队列
	QueueCallJobs = "calls.jobs"
	// QueueTaskFinalize 任务收尾队列
	QueueTaskFinalize = "calls.finalize"

	// RoutingKeyCallJob 单条外呼作业
	RoutingKeyCallJob = "call.job"
	// RoutingKeyTaskFinalize 任务收尾
	RoutingKeyTaskFinalize = "task.finalize"
)

var (
	conn     *amqp.Connection
	connOnce sync.Once
	connErr  error
)

func Init() error {
	connOnce.Do(func() {
		url := config.Cfg.GetRabbitMQURL()
		conn, connErr = amqp.Dial(url)
		if connErr != nil {
			return
		}

		var ch *amqp.Channel
		ch, connErr = conn.Channel()
		if connErr != nil {
			return
		}
		defer ch.Close()

		connErr = declareTopology(ch)
	})

	return connErr
}

func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(ExchangeCalls, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", ExchangeCalls, err)
	}

	if err := ch.ExchangeDeclare(ExchangeDelayed, "x-delayed-message", true, false, false, false, amqp.Table{
		"x-delayed-type": "direct",
	}); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", ExchangeDelayed, err)
	}

	queues := map[string]string{
		QueueCallJobs:     RoutingKeyCallJob,
		QueueTaskFinalize: RoutingKeyTaskFinalize,
	}

	for queue, routingKey := range queues {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}
		if err := ch.QueueBind(queue, routingKey, ExchangeCalls, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s: %w", queue, err)
		}
		if err := ch.QueueBind(queue, routingKey, ExchangeDelayed, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s to delayed exchange: %w", queue, err)
		}
	}

	return nil
}

// Connection 返回底层连接，供 publisher/consumer 开 channel
func Connection() *amqp.Connection {
	return conn
}

func Close(ctx context.Context) error {
	if conn == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
