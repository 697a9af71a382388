package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"LeadDial/internal/cache"
	"LeadDial/internal/model"
	pkgerrors "LeadDial/pkg/errors"
	"LeadDial/pkg/logger"
	"LeadDial/pkg/metrics"
	"LeadDial/pkg/sms"
	"LeadDial/pkg/voice"
	"LeadDial/storage/database"
	"LeadDial/storage/mq"
)

const callResultTTL = 7 * 24 * time.Hour

// StartConsumers 启动 worker 进程的全部消费者，阻塞到 ctx 取消
func StartConsumers(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		errCh <- mq.Consume(ctx, mq.ConsumeOptions{
			Queue:         mq.QueueCallJobs,
			ConsumerTag:   "leaddial-call-worker",
			PrefetchCount: 8,
			Handler:       HandleCallJob,
		})
	}()

	go func() {
		errCh <- mq.Consume(ctx, mq.ConsumeOptions{
			Queue:         mq.QueueTaskFinalize,
			ConsumerTag:   "leaddial-finalize-worker",
			PrefetchCount: 1,
			Handler:       HandleTaskFinalize,
		})
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// HandleCallJob 处理单条外呼作业：拨打、落库、推进任务计数。
// 任务计数减到 0 的消费者投递收尾消息。
func HandleCallJob(ctx context.Context, delivery amqp.Delivery) error {
	var msg model.CallJobMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		return &pkgerrors.SkipMessageError{Reason: "malformed call job message"}
	}

	ok, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, callResultTTL)
	if err != nil {
		return fmt.Errorf("failed to check idempotency: %w", err)
	}
	if !ok {
		return &pkgerrors.SkipMessageError{Reason: "duplicate call job " + msg.MessageID}
	}

	metrics.RecordCallDequeued(ctx)

	result, err := voice.Dial(ctx, voice.DialRequest{
		Phone:    msg.Phone,
		TaskID:   msg.TaskID,
		LeadID:   msg.LeadID,
		ScriptID: msg.ScriptID,
		Opening:  msg.Opening,
	})
	if err != nil {
		// 拨打失败撤掉幂等标记，让重投有机会再试
		if unmarkErr := cache.UnmarkMessage(ctx, msg.MessageID); unmarkErr != nil {
			logger.Logger.Error("Failed to unmark message after dial failure",
				zap.String("message_id", msg.MessageID),
				zap.Error(unmarkErr),
			)
		}
		return fmt.Errorf("failed to dial lead %d: %w", msg.LeadID, err)
	}

	if err := persistCallResult(ctx, msg, result); err != nil {
		return err
	}

	if err := cache.MarkMessageProcessed(ctx, msg.MessageID, callResultTTL); err != nil {
		logger.Logger.Warn("Failed to mark message processed",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
	}

	metrics.RecordCallCompleted(ctx, result.Connected, float64(result.DurationSeconds))

	remaining, err := cache.DecrTaskPending(ctx, msg.TaskID)
	if err != nil {
		logger.Logger.Error("Failed to decr task pending counter",
			zap.Int64("task_id", msg.TaskID),
			zap.Error(err),
		)
		return nil // 结果已落库，计数异常交给调度器兜底
	}
	if remaining == 0 {
		if err := PublishTaskFinalize(ctx, msg.TaskID); err != nil {
			return err
		}
	}
	return nil
}

// persistCallResult 落外呼明细并同步任务与线索的冗余字段
func persistCallResult(ctx context.Context, msg model.CallJobMessage, result *voice.DialResult) error {
	return database.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := model.CallRecord{
			TaskID:          msg.TaskID,
			LeadID:          msg.LeadID,
			CallID:          result.CallID,
			Connected:       result.Connected,
			DurationSeconds: result.DurationSeconds,
			Summary:         result.Summary,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create call record: %w", err)
		}

		updates := map[string]interface{}{
			"completed_count": gorm.Expr("completed_count + 1"),
		}
		if result.Connected {
			updates["connected_count"] = gorm.Expr("connected_count + 1")
		}
		if err := tx.Model(&model.CallTask{}).
			Where("id = ?", msg.TaskID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update task counters: %w", err)
		}

		// 接通的外呼同时记一条 AI 跟进
		if result.Connected {
			now := time.Now()
			follow := model.FollowRecord{
				LeadID:     msg.LeadID,
				FollowWay:  "ai_call",
				Content:    result.Summary,
				CreateName: "数字员工",
			}
			if err := tx.Create(&follow).Error; err != nil {
				return fmt.Errorf("failed to create ai follow record: %w", err)
			}
			if err := tx.Model(&model.Lead{}).
				Where("id = ?", msg.LeadID).
				Updates(map[string]interface{}{
					"latest_follow_at":  now,
					"latest_follow_way": "ai_call",
					"latest_follow_msg": result.Summary,
				}).Error; err != nil {
				return fmt.Errorf("failed to update lead follow columns: %w", err)
			}
		}
		return nil
	})
}

// HandleTaskFinalize 任务收尾：状态推进到外呼完成并短信通知创建人
func HandleTaskFinalize(ctx context.Context, delivery amqp.Delivery) error {
	var msg model.TaskFinalizeMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		return &pkgerrors.SkipMessageError{Reason: "malformed finalize message"}
	}

	ok, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, callResultTTL)
	if err != nil {
		return fmt.Errorf("failed to check idempotency: %w", err)
	}
	if !ok {
		return &pkgerrors.SkipMessageError{Reason: "duplicate finalize " + msg.MessageID}
	}

	db := database.DB().WithContext(ctx)

	var task model.CallTask
	if err := db.First(&task, msg.TaskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &pkgerrors.SkipMessageError{Reason: fmt.Sprintf("task %d not found", msg.TaskID)}
		}
		return fmt.Errorf("failed to query task: %w", err)
	}
	if task.State != model.TaskStateCalling {
		return &pkgerrors.SkipMessageError{Reason: fmt.Sprintf("task %d not calling", msg.TaskID)}
	}

	now := time.Now()
	if err := db.Model(&model.CallTask{}).
		Where("id = ? AND state = ?", task.ID, model.TaskStateCalling).
		Updates(map[string]interface{}{
			"state":       model.TaskStateCallComplete,
			"finished_at": now,
		}).Error; err != nil {
		return fmt.Errorf("failed to finalize task: %w", err)
	}

	if err := cache.DeleteTaskPending(ctx, task.ID); err != nil {
		logger.Logger.Warn("Failed to delete task pending counter",
			zap.Int64("task_id", task.ID),
			zap.Error(err),
		)
	}

	notifyTaskComplete(ctx, &task)

	logger.Logger.Info("Call task finalized",
		zap.Int64("task_id", task.ID),
		zap.Int("completed", task.CompletedCount),
		zap.Int("connected", task.ConnectedCount),
	)
	return nil
}

// notifyTaskComplete 给创建人发任务完成短信，发送失败只记日志
func notifyTaskComplete(ctx context.Context, task *model.CallTask) {
	if task.CreatedBy == 0 {
		return
	}

	var user model.AdminUser
	if err := database.DB().WithContext(ctx).
		Where("public_id = ?", task.CreatedBy).
		First(&user).Error; err != nil {
		logger.Logger.Warn("Task creator not found for completion notice",
			zap.Int64("task_id", task.ID),
			zap.Int64("created_by", task.CreatedBy),
		)
		return
	}

	if err := sms.SendTaskCompleteSMS(ctx, user.Phone, task.Name, task.CompletedCount, task.ConnectedCount); err != nil {
		logger.Logger.Error("Failed to send task complete SMS",
			zap.Int64("task_id", task.ID),
			zap.Error(err),
		)
	}
}
