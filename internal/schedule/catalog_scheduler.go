package schedule

// 产品目录调度器：定期从上游拉取车型目录，保持本地副本新鲜

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"LeadDial/internal/service"
	"LeadDial/pkg/logger"
)

var (
	catalogSchedulerOnce sync.Once
	catalogSchedulerInst *CatalogScheduler
)

// CatalogScheduler 产品目录同步调度器
type CatalogScheduler struct {
	logger       *zap.Logger
	syncRunning  bool
	syncMu       sync.Mutex
	lastSyncTime time.Time
}

// GetCatalogScheduler 获取目录调度器单例
func GetCatalogScheduler() *CatalogScheduler {
	catalogSchedulerOnce.Do(func() {
		catalogSchedulerInst = &CatalogScheduler{
			logger: logger.Logger,
		}
	})
	return catalogSchedulerInst
}

// SyncCatalog 拉取上游目录并刷新本地副本
func (s *CatalogScheduler) SyncCatalog(ctx context.Context) error {
	s.syncMu.Lock()
	if s.syncRunning {
		s.syncMu.Unlock()
		s.logger.Info("Catalog sync already running, skipping")
		return nil
	}
	s.syncRunning = true
	s.syncMu.Unlock()

	defer func() {
		s.syncMu.Lock()
		s.syncRunning = false
		s.syncMu.Unlock()
	}()

	startTime := time.Now()
	s.lastSyncTime = startTime

	if err := service.Product().SyncFromUpstream(ctx); err != nil {
		s.logger.Error("Catalog sync failed", zap.Error(err))
		return err
	}

	s.logger.Info("Catalog sync finished",
		zap.Duration("elapsed", time.Since(startTime)),
	)

	return nil
}
