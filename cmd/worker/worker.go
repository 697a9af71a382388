package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"LeadDial/config"
	"LeadDial/internal/queue"
	"LeadDial/pkg/logger"
	"LeadDial/pkg/metrics"
	"LeadDial/pkg/sms"
	"LeadDial/pkg/snowflake"
	"LeadDial/pkg/voice"
	"LeadDial/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	// worker 与 server 用不同的 machine ID，避免雪花 ID 冲突
	if err := snowflake.Init(config.Cfg.SnowflakeMachineID+1, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	if err := sms.Init(); err != nil {
		logger.Logger.Warn("Failed to initialize SMS service", zap.Error(err))
		logger.Logger.Info("SMS service will be disabled, task completion notification may not work")
	}

	// 外呼客户端，worker 的核心依赖
	if err := voice.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize voice service", zap.Error(err))
	}

	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Warn("Failed to initialize business metrics", zap.Error(err))
	}

	logger.Logger.Info("Worker service starting",
		zap.String("service", "leaddial-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	// 启动所有消费者，阻塞到收到关闭信号
	if err := queue.StartConsumers(ctx); err != nil {
		logger.Logger.Error("Consumer stopped with error", zap.Error(err))
	}

	logger.Logger.Info("Worker service shutting down gracefully")
}
