package schedule

// 任务调度器：定期扫描到期的预约外呼任务并发起外呼

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"LeadDial/internal/service"
	apperrors "LeadDial/pkg/errors"
	"LeadDial/pkg/logger"
)

var (
	taskSchedulerOnce sync.Once
	taskSchedulerInst *TaskScheduler
)

// TaskScheduler 预约任务调度器
type TaskScheduler struct {
	logger           *zap.Logger
	dispatchRunning  bool
	dispatchMu       sync.Mutex
	lastDispatchTime time.Time
}

// GetTaskScheduler 获取任务调度器单例
func GetTaskScheduler() *TaskScheduler {
	taskSchedulerOnce.Do(func() {
		taskSchedulerInst = &TaskScheduler{
			logger: logger.Logger,
		}
	})
	return taskSchedulerInst
}

// DispatchDueTasks 扫描到期的预约任务并逐个发起
func (s *TaskScheduler) DispatchDueTasks(ctx context.Context) error {
	s.dispatchMu.Lock()
	if s.dispatchRunning {
		s.dispatchMu.Unlock()
		s.logger.Info("Task dispatch already running, skipping")
		return nil
	}
	s.dispatchRunning = true
	s.dispatchMu.Unlock()

	defer func() {
		s.dispatchMu.Lock()
		s.dispatchRunning = false
		s.dispatchMu.Unlock()
	}()

	startTime := time.Now()
	s.lastDispatchTime = startTime

	tasks, err := service.Task().ListDue(ctx, startTime)
	if err != nil {
		s.logger.Error("Failed to query due tasks", zap.Error(err))
		return fmt.Errorf("failed to query due tasks: %w", err)
	}

	if len(tasks) == 0 {
		return nil
	}

	s.logger.Info("Found due scheduled tasks",
		zap.Int("task_count", len(tasks)),
	)

	var failed int
	for _, task := range tasks {
		if err := service.Task().Start(ctx, task.OrganizationID, task.ID); err != nil {
			// 已被手动发起的任务直接跳过
			if err == apperrors.TaskAlreadyStarted {
				continue
			}
			failed++
			s.logger.Error("Failed to start scheduled task",
				zap.Int64("task_id", task.ID),
				zap.Int64("organization_id", task.OrganizationID),
				zap.Error(err),
			)
			continue
		}

		s.logger.Info("Scheduled task dispatched",
			zap.Int64("task_id", task.ID),
			zap.String("task_name", task.Name),
		)
	}

	s.logger.Info("Task dispatch run finished",
		zap.Int("total", len(tasks)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	return nil
}
