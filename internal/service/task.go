package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"LeadDial/internal/cache"
	"LeadDial/internal/filter"
	"LeadDial/internal/model"
	"LeadDial/internal/model/dto"
	"LeadDial/internal/queue"
	pkgerrors "LeadDial/pkg/errors"
	"LeadDial/pkg/logger"
	"LeadDial/pkg/metrics"
	"LeadDial/storage/database"
	"LeadDial/utils"
)

type TaskService struct{}

var (
	taskService *TaskService
	taskOnce    sync.Once
)

func Task() *TaskService {
	taskOnce.Do(func() {
		taskService = &TaskService{}
	})
	return taskService
}

// Create 创建外呼任务。名字缺省时按条件生成，
// 目标数按条件快照即时统计。
func (s *TaskService) Create(ctx context.Context, orgID int64, creator *model.AdminUser, req dto.CreateTaskRequest) (*dto.CreateTaskResponse, error) {
	conditions := snapshotsToConditions(req.Conditions)
	filters := filter.BuildFilters(conditions)

	name := req.Name
	if name == "" {
		name = filter.GenerateTaskName(conditions)
	}

	count, err := Lead().FilteredCount(ctx, orgID, filtersToCountRequest(filters))
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, pkgerrors.TaskNoLeadsMatched
	}

	conditionsJSON, err := json.Marshal(req.Conditions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal conditions: %w", err)
	}
	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filters: %w", err)
	}

	task := model.CallTask{
		OrganizationID: orgID,
		Name:           name,
		State:          model.TaskStateCreated,
		Conditions:     datatypes.JSON(conditionsJSON),
		FilterSnapshot: datatypes.JSON(filtersJSON),
		TargetCount:    int(count),
		ScriptID:       req.ScriptID,
		CreatedBy:      creator.PublicID,
		CreateName:     creator.Nickname,
	}
	if req.ScheduledAt != "" {
		t, err := utils.ParseFlexibleTime(req.ScheduledAt)
		if err != nil {
			return nil, fmt.Errorf("invalid scheduled_at: %w", err)
		}
		task.ScheduledAt = &t
	}

	if err := database.DB().WithContext(ctx).Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	metrics.RecordTaskCreated(ctx)
	logger.Logger.Info("Call task created",
		zap.Int64("task_id", task.ID),
		zap.String("name", task.Name),
		zap.Int("target_count", task.TargetCount),
	)

	return &dto.CreateTaskResponse{
		ID:          task.ID,
		Name:        task.Name,
		TargetCount: task.TargetCount,
	}, nil
}

// List 分页查询任务，已删除任务不出现在列表里
func (s *TaskService) List(ctx context.Context, orgID int64, req dto.TaskQuery) (*dto.TaskListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = defaultPageSize
	}
	if req.PageSize > maxPageSize {
		req.PageSize = maxPageSize
	}

	db := database.DB().WithContext(ctx).Model(&model.CallTask{}).
		Where("organization_id = ?", orgID).
		Where("state <> ?", model.TaskStateDeleted)

	if req.State != "" {
		state := model.TaskLifecycleState(req.State)
		if !state.Valid() {
			return nil, pkgerrors.TaskStateInvalid
		}
		db = db.Where("state = ?", state)
	}
	if req.Keyword != "" {
		db = db.Where("name LIKE ?", "%"+req.Keyword+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	var tasks []model.CallTask
	if err := db.Order("id DESC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}

	items := make([]dto.TaskItem, 0, len(tasks))
	for i := range tasks {
		items = append(items, taskToItem(&tasks[i]))
	}

	return &dto.TaskListResponse{
		Items:    items,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// Detail 任务详情与外呼明细
func (s *TaskService) Detail(ctx context.Context, orgID, taskID int64) (*dto.TaskDetailResponse, error) {
	task, err := s.getTask(ctx, orgID, taskID)
	if err != nil {
		return nil, err
	}

	var records []model.CallRecord
	if err := database.DB().WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query call records: %w", err)
	}

	leadNames, leadPhones, err := s.leadSummaries(ctx, records)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CallRecordItem, 0, len(records))
	for _, r := range records {
		items = append(items, dto.CallRecordItem{
			ID:              r.ID,
			LeadID:          r.LeadID,
			LeadName:        leadNames[r.LeadID],
			Phone:           leadPhones[r.LeadID],
			Connected:       r.Connected,
			DurationSeconds: r.DurationSeconds,
			Summary:         r.Summary,
			CalledAt:        r.CreatedAt.Format(timeLayout),
		})
	}

	detail := taskToItem(task)
	return &dto.TaskDetailResponse{Task: detail, Records: items}, nil
}

// UpdateStatus 人工推进任务状态。
// 只开放 跟进完成 与 删除 两种人工迁移，外呼状态由队列驱动。
func (s *TaskService) UpdateStatus(ctx context.Context, orgID int64, req dto.UpdateTaskStatusRequest) error {
	target := model.TaskLifecycleState(req.State)
	if !target.Valid() {
		return pkgerrors.TaskStateInvalid
	}

	task, err := s.getTask(ctx, orgID, req.TaskID)
	if err != nil {
		return err
	}

	switch target {
	case model.TaskStateFollowUpDone:
		if task.State != model.TaskStateCallComplete {
			return pkgerrors.TaskStateInvalid
		}
	case model.TaskStateDeleted:
		if task.State == model.TaskStateCalling {
			return pkgerrors.TaskStateInvalid
		}
	default:
		return pkgerrors.TaskStateInvalid
	}

	return database.DB().WithContext(ctx).
		Model(&model.CallTask{}).
		Where("id = ?", task.ID).
		Update("state", target).Error
}

// UpdateScript 给任务绑定话术，外呼中或已结束的任务不允许换
func (s *TaskService) UpdateScript(ctx context.Context, orgID int64, req dto.UpdateTaskScriptRequest) error {
	task, err := s.getTask(ctx, orgID, req.TaskID)
	if err != nil {
		return err
	}
	if task.State != model.TaskStateCreated {
		return pkgerrors.TaskStateInvalid
	}

	var scene model.Scene
	if err := database.DB().WithContext(ctx).
		Where("script_id = ?", req.ScriptID).
		First(&scene).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.SceneNotFound
		}
		return fmt.Errorf("failed to query scene: %w", err)
	}

	return database.DB().WithContext(ctx).
		Model(&model.CallTask{}).
		Where("id = ?", task.ID).
		Update("script_id", req.ScriptID).Error
}

// Start 启动外呼。按条件快照捞出目标线索，批量投递外呼作业，
// 并在 Redis 记下待处理计数，由消费者递减驱动收尾。
func (s *TaskService) Start(ctx context.Context, orgID, taskID int64) error {
	task, err := s.getTask(ctx, orgID, taskID)
	if err != nil {
		return err
	}
	if task.State == model.TaskStateCalling {
		return pkgerrors.TaskAlreadyStarted
	}
	if task.State != model.TaskStateCreated {
		return pkgerrors.TaskStateInvalid
	}
	if task.ScriptID == 0 {
		return pkgerrors.TaskScriptMissing
	}

	var scene model.Scene
	if err := database.DB().WithContext(ctx).
		Where("script_id = ?", task.ScriptID).
		First(&scene).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.TaskScriptMissing
		}
		return fmt.Errorf("failed to query scene: %w", err)
	}

	var filters filter.LeadFilters
	if err := json.Unmarshal(task.FilterSnapshot, &filters); err != nil {
		return fmt.Errorf("failed to unmarshal filter snapshot: %w", err)
	}

	leads, err := Lead().FindByFilters(ctx, orgID, filtersToQuery(filters))
	if err != nil {
		return err
	}
	if len(leads) == 0 {
		return pkgerrors.TaskNoLeadsMatched
	}

	// 先占住状态再投递，避免并发重复启动
	now := time.Now()
	result := database.DB().WithContext(ctx).
		Model(&model.CallTask{}).
		Where("id = ? AND state = ?", task.ID, model.TaskStateCreated).
		Updates(map[string]interface{}{
			"state":        model.TaskStateCalling,
			"started_at":   now,
			"target_count": len(leads),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark task calling: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.TaskAlreadyStarted
	}

	if err := cache.SetTaskPending(ctx, task.ID, len(leads)); err != nil {
		return fmt.Errorf("failed to set task pending counter: %w", err)
	}

	dispatched, err := queue.PublishCallJobs(ctx, task.ID, scene.ScriptID, scene.DialogueOpeningPrompt, leads)
	if err != nil {
		return err
	}

	metrics.RecordTaskStarted(ctx)
	metrics.RecordCallsDispatched(ctx, int64(dispatched))
	logger.Logger.Info("Call task started",
		zap.Int64("task_id", task.ID),
		zap.Int("jobs", dispatched),
	)
	return nil
}

// Statistics 外呼任务看板统计
func (s *TaskService) Statistics(ctx context.Context, orgID int64) (*dto.TaskStatisticsResponse, error) {
	db := database.DB().WithContext(ctx)
	stats := &dto.TaskStatisticsResponse{}

	base := func() *gorm.DB {
		return db.Model(&model.CallTask{}).
			Where("organization_id = ?", orgID).
			Where("state <> ?", model.TaskStateDeleted)
	}

	if err := base().Count(&stats.TotalTasks).Error; err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	if err := base().Where("state = ?", model.TaskStateCalling).
		Count(&stats.CallingTasks).Error; err != nil {
		return nil, fmt.Errorf("failed to count calling tasks: %w", err)
	}
	if err := base().Where("state IN ?", []model.TaskLifecycleState{
		model.TaskStateCallComplete, model.TaskStateFollowUpDone,
	}).Count(&stats.CompletedTasks).Error; err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	err := db.Model(&model.CallRecord{}).
		Joins("JOIN call_tasks ON call_tasks.id = call_records.task_id").
		Where("call_tasks.organization_id = ?", orgID).
		Count(&stats.TotalCalls).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count calls: %w", err)
	}

	err = db.Model(&model.CallRecord{}).
		Joins("JOIN call_tasks ON call_tasks.id = call_records.task_id").
		Where("call_tasks.organization_id = ?", orgID).
		Where("call_records.connected = ?", true).
		Count(&stats.ConnectedCalls).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count connected calls: %w", err)
	}

	return stats, nil
}

// ListDue 调度器捞出到点未启动的定时任务
func (s *TaskService) ListDue(ctx context.Context, before time.Time) ([]model.CallTask, error) {
	var tasks []model.CallTask
	err := database.DB().WithContext(ctx).
		Where("state = ?", model.TaskStateCreated).
		Where("script_id <> 0").
		Where("scheduled_at IS NOT NULL AND scheduled_at <= ?", before).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) getTask(ctx context.Context, orgID, taskID int64) (*model.CallTask, error) {
	var task model.CallTask
	err := database.DB().WithContext(ctx).
		Where("id = ? AND organization_id = ?", taskID, orgID).
		First(&task).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.TaskNotFound
		}
		return nil, fmt.Errorf("failed to query task: %w", err)
	}
	return &task, nil
}

func (s *TaskService) leadSummaries(ctx context.Context, records []model.CallRecord) (map[int64]string, map[int64]string, error) {
	names := make(map[int64]string)
	phones := make(map[int64]string)
	if len(records) == 0 {
		return names, phones, nil
	}

	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.LeadID)
	}

	var leads []model.Lead
	if err := database.DB().WithContext(ctx).
		Where("id IN ?", ids).
		Find(&leads).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to query leads for records: %w", err)
	}

	for _, l := range leads {
		names[l.ID] = l.Name
		phones[l.ID] = l.Phone
	}
	return names, phones, nil
}

func taskToItem(task *model.CallTask) dto.TaskItem {
	var conditions []dto.ConditionSnapshot
	if len(task.Conditions) > 0 {
		_ = json.Unmarshal(task.Conditions, &conditions)
	}

	item := dto.TaskItem{
		ID:             task.ID,
		Name:           task.Name,
		Conditions:     conditions,
		TargetCount:    task.TargetCount,
		ConnectedCount: task.ConnectedCount,
		CompletedCount: task.CompletedCount,
		State:          string(task.State),
		TaskType:       task.State.WireCode(),
		ScriptID:       task.ScriptID,
		CreateName:     task.CreateName,
		SizeDesc:       "共" + strconv.Itoa(task.TargetCount) + "条线索",
		CreatedAt:      task.CreatedAt.Format(timeLayout),
	}
	if task.ScheduledAt != nil {
		item.ScheduledAt = task.ScheduledAt.Format(timeLayout)
	}
	return item
}

func snapshotsToConditions(snapshots []dto.ConditionSnapshot) []filter.Condition {
	conditions := make([]filter.Condition, 0, len(snapshots))
	for _, s := range snapshots {
		c := filter.Condition{
			Type:  filter.ConditionType(s.Type),
			Label: s.Label,
			Value: s.Value,
		}
		if tpl, ok := filter.TemplateByType(c.Type); ok {
			c.Options = tpl.Options
			c.HasCustom = tpl.HasCustom
			if c.Label == "" {
				c.Label = tpl.Label
			}
		}
		conditions = append(conditions, c)
	}
	return conditions
}

func filtersToCountRequest(f filter.LeadFilters) dto.FilteredCountRequest {
	return dto.FilteredCountRequest{
		LeadsProduct:      f.LeadsProduct,
		LeadsType:         f.LeadsType,
		IsArrive:          f.IsArrive,
		LatestFollowStart: f.LatestFollowStart,
		LatestFollowEnd:   f.LatestFollowEnd,
		FirstFollowStart:  f.FirstFollowStart,
		FirstFollowEnd:    f.FirstFollowEnd,
		NextFollowStart:   f.NextFollowStart,
		NextFollowEnd:     f.NextFollowEnd,
	}
}

func filtersToQuery(f filter.LeadFilters) dto.LeadQuery {
	return dto.LeadQuery{
		LeadsProduct:      f.LeadsProduct,
		LeadsType:         f.LeadsType,
		IsArrive:          f.IsArrive,
		LatestFollowStart: f.LatestFollowStart,
		LatestFollowEnd:   f.LatestFollowEnd,
		FirstFollowStart:  f.FirstFollowStart,
		FirstFollowEnd:    f.FirstFollowEnd,
		NextFollowStart:   f.NextFollowStart,
		NextFollowEnd:     f.NextFollowEnd,
	}
}
