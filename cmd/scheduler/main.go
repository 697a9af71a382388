package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"LeadDial/config"
	"LeadDial/internal/schedule"
	"LeadDial/pkg/logger"
	"LeadDial/pkg/snowflake"
	"LeadDial/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Logger.Info("Scheduler received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage for scheduler", zap.Error(err))
	}
	defer storage.Close()

	// scheduler 与 server/worker 作区分，machine ID 偏移 2
	if err := snowflake.Init(config.Cfg.SnowflakeMachineID+2, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake for scheduler", zap.Error(err))
	}

	logger.Logger.Info("Scheduler service starting",
		zap.String("service", "leaddial-scheduler"),
		zap.String("environment", config.Cfg.Environment),
	)

	go runTaskDispatchLoop(ctx)
	go runCatalogSyncLoop(ctx)

	<-ctx.Done()

	logger.Logger.Info("Scheduler service shutting down gracefully")
}

// runTaskDispatchLoop 周期性扫描到期的预约外呼任务并发起
func runTaskDispatchLoop(ctx context.Context) {
	s := schedule.GetTaskScheduler()

	interval := time.Duration(config.Cfg.CallDispatchWindow) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Logger.Info("Task dispatch loop started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			if err := s.DispatchDueTasks(runCtx); err != nil {
				logger.Logger.Error("Task dispatch run failed", zap.Error(err))
			}
			cancel()
		}
	}
}

// runCatalogSyncLoop 周期性同步上游产品目录
func runCatalogSyncLoop(ctx context.Context) {
	s := schedule.GetCatalogScheduler()

	interval := time.Duration(config.Cfg.CatalogSyncMinutes) * time.Minute
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	if config.Cfg.Environment == "development" {
		interval = 5 * time.Minute
		logger.Logger.Info("Catalog sync loop running in development mode with 5m interval")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			if err := s.SyncCatalog(runCtx); err != nil {
				logger.Logger.Error("Catalog sync run failed", zap.Error(err))
			}
			cancel()
		}
	}
}
