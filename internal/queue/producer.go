package queue

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"LeadDial/config"
	"LeadDial/internal/model"
	"LeadDial/pkg/logger"
	"LeadDial/storage/mq"
)

// PublishCallJobs 把任务目标线索拆成单条外呼作业投递。
// MessageID 按 task+lead 取定值，任务重投时消费侧可据此去重。
// 按批次错开延迟投递，避免瞬间打满语音服务并发。
func PublishCallJobs(ctx context.Context, taskID, scriptID int64, opening string, leads []model.Lead) (int, error) {
	batchSize := config.Cfg.CallBatchSize
	if batchSize <= 0 {
		batchSize = 50
	}

	dispatched := 0
	for i, lead := range leads {
		msg := model.CallJobMessage{
			MessageID: fmt.Sprintf("call_%d_%d", taskID, lead.ID),
			TaskID:    taskID,
			LeadID:    lead.ID,
			Phone:     lead.Phone,
			ScriptID:  scriptID,
			Opening:   opening,
			BatchNo:   i / batchSize,
		}

		var err error
		if msg.BatchNo == 0 {
			err = mq.PublishMessage(mq.ExchangeCalls, mq.RoutingKeyCallJob, msg)
		} else {
			delay := time.Duration(msg.BatchNo) * time.Minute
			err = mq.PublishDelayedMessage(mq.ExchangeDelayed, mq.RoutingKeyCallJob, delay, msg)
		}
		if err != nil {
			logger.Logger.Error("Failed to publish call job",
				zap.Int64("task_id", taskID),
				zap.Int64("lead_id", lead.ID),
				zap.Error(err),
			)
			return dispatched, fmt.Errorf("failed to publish call job: %w", err)
		}
		dispatched++
	}

	logger.Logger.Info("Published call jobs",
		zap.Int64("task_id", taskID),
		zap.Int("count", dispatched),
	)
	return dispatched, nil
}

// PublishTaskFinalize 投递任务收尾消息，由最后一个归零的消费者触发
func PublishTaskFinalize(ctx context.Context, taskID int64) error {
	msg := model.TaskFinalizeMessage{
		MessageID:   fmt.Sprintf("finalize_%d", taskID),
		TaskID:      taskID,
		ScheduledAt: time.Now().Format(time.RFC3339),
	}

	if err := mq.PublishMessage(mq.ExchangeCalls, mq.RoutingKeyTaskFinalize, msg); err != nil {
		logger.Logger.Error("Failed to publish task finalize message",
			zap.Int64("task_id", taskID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish task finalize: %w", err)
	}

	logger.Logger.Info("Published task finalize message",
		zap.Int64("task_id", taskID),
	)
	return nil
}
