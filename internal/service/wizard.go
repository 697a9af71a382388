package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"LeadDial/internal/cache"
	"LeadDial/internal/filter"
	"LeadDial/internal/model"
	"LeadDial/internal/model/dto"
	"LeadDial/internal/wizard"
	pkgerrors "LeadDial/pkg/errors"
	"LeadDial/pkg/logger"
)

// 向导状态机本身是纯函数，服务层负责三件事：
// 会话存取、事件里带的副作用（建任务、生成话术）、选项计数的按需刷新。

type WizardService struct{}

var (
	wizardService *WizardService
	wizardOnce    sync.Once
)

func Wizard() *WizardService {
	wizardOnce.Do(func() {
		wizardService = &WizardService{}
	})
	return wizardService
}

// Start 开启向导会话，会话归属发起用户
func (s *WizardService) Start(ctx context.Context, userID int64, kind string) (*dto.WizardStartResponse, error) {
	sessionID := uuid.NewString()

	var state interface{}
	var phase string
	switch kind {
	case wizard.KindTask:
		w := wizard.NewTaskWizard()
		state, phase = w, w.Phase
	case wizard.KindScript:
		w := wizard.NewScriptWizard()
		state, phase = w, w.Phase
	default:
		return nil, pkgerrors.WizardKindUnknown
	}

	if err := cache.SaveWizardSession(ctx, kind, userID, sessionID, state); err != nil {
		return nil, fmt.Errorf("failed to save wizard session: %w", err)
	}

	return &dto.WizardStartResponse{
		SessionID: sessionID,
		Kind:      kind,
		Phase:     phase,
		State:     state,
	}, nil
}

// Get 读取向导当前状态，只能读到自己的会话
func (s *WizardService) Get(ctx context.Context, userID int64, kind, sessionID string) (*dto.WizardStateResponse, error) {
	switch kind {
	case wizard.KindTask:
		w, err := s.loadTaskWizard(ctx, userID, sessionID)
		if err != nil {
			return nil, err
		}
		return taskStateResponse(kind, sessionID, w), nil
	case wizard.KindScript:
		w, err := s.loadScriptWizard(ctx, userID, sessionID)
		if err != nil {
			return nil, err
		}
		return scriptStateResponse(kind, sessionID, w), nil
	}
	return nil, pkgerrors.WizardKindUnknown
}

// Cancel 放弃会话，等价于关闭抽屉，所有进行中的状态直接丢弃
func (s *WizardService) Cancel(ctx context.Context, userID int64, kind, sessionID string) error {
	switch kind {
	case wizard.KindTask, wizard.KindScript:
		return cache.DeleteWizardSession(ctx, kind, userID, sessionID)
	}
	return pkgerrors.WizardKindUnknown
}

// ApplyTaskEvent 推进任务向导。submit 事件同步创建任务并落成回执。
func (s *WizardService) ApplyTaskEvent(ctx context.Context, sessionID string, user *model.AdminUser, req dto.WizardEventRequest) (*dto.WizardStateResponse, error) {
	w, err := s.loadTaskWizard(ctx, user.ID, sessionID)
	if err != nil {
		return nil, err
	}

	ev := wizard.Event{
		Name:          req.Event,
		ConditionType: filter.ConditionType(payloadString(req.Payload, "condition_type")),
		Value:         payloadString(req.Payload, "value"),
		CustomStart:   payloadString(req.Payload, "start"),
		CustomEnd:     payloadString(req.Payload, "end"),
	}
	if err := w.Apply(ev); err != nil {
		return nil, err
	}

	// pick_condition 进入选项页时按需刷新计数，其余条件的旧计数一律清零
	if req.Event == wizard.EventPickCondition && w.Active != nil {
		if err := s.refreshOptionCounts(ctx, user.OrganizationID, w.Active); err != nil {
			logger.Logger.Warn("Failed to refresh option counts",
				zap.String("condition_type", string(w.Active.Type)),
				zap.Error(err),
			)
		}
	}

	// submit 进入 creating_task 后立刻创建任务并推进到 task_complete
	if w.Phase == wizard.PhaseCreatingTask {
		created, err := Task().Create(ctx, user.OrganizationID, user, dto.CreateTaskRequest{
			Name:       w.TaskName(),
			Conditions: conditionsToSnapshots(w.Selected),
			ScriptID:   payloadInt64(req.Payload, "script_id"),
		})
		if err != nil {
			// 创建失败退回条件页，已选条件保留
			w.Phase = wizard.PhaseSelectCondition
			if saveErr := cache.SaveWizardSession(ctx, wizard.KindTask, user.ID, sessionID, w); saveErr != nil {
				logger.Logger.Warn("Failed to save wizard session after rollback", zap.Error(saveErr))
			}
			return nil, err
		}
		if err := w.Apply(wizard.Event{
			Name: wizard.EventTaskCreated,
			Result: &wizard.TaskResult{
				TaskID:      created.ID,
				TaskName:    created.Name,
				TargetCount: created.TargetCount,
			},
		}); err != nil {
			return nil, err
		}
	}

	if err := cache.SaveWizardSession(ctx, wizard.KindTask, user.ID, sessionID, w); err != nil {
		return nil, fmt.Errorf("failed to save wizard session: %w", err)
	}
	return taskStateResponse(wizard.KindTask, sessionID, w), nil
}

// ApplyScriptEvent 推进话术向导。generate 事件同步生成话术并落成回执。
func (s *WizardService) ApplyScriptEvent(ctx context.Context, sessionID string, user *model.AdminUser, req dto.WizardEventRequest) (*dto.WizardStateResponse, error) {
	w, err := s.loadScriptWizard(ctx, user.ID, sessionID)
	if err != nil {
		return nil, err
	}

	ev := wizard.ScriptEvent{
		Name:    req.Event,
		Mode:    payloadString(req.Payload, "mode"),
		SceneID: payloadInt64(req.Payload, "scene_id"),
	}
	if req.Event == wizard.EventSaveCustomScene {
		draft, err := payloadDraft(req.Payload)
		if err != nil {
			return nil, err
		}
		ev.Draft = draft
	}

	sceneID := w.SceneID
	draft := w.Draft
	if err := w.Apply(ev); err != nil {
		return nil, err
	}

	// generate 进入 generating 后同步生成，完成即推进到 script_complete
	if w.Phase == wizard.PhaseGenerating {
		var result *wizard.ScriptResult
		var genErr error
		if sceneID != 0 {
			result, genErr = Scene().GenerateScript(ctx, user.OrganizationID, sceneID)
		} else {
			result, genErr = Scene().GenerateFromDraft(ctx, user.OrganizationID, user.Nickname, draft)
		}
		if genErr != nil {
			w.Phase = wizard.PhaseSceneConfig
			if saveErr := cache.SaveWizardSession(ctx, wizard.KindScript, user.ID, sessionID, w); saveErr != nil {
				logger.Logger.Warn("Failed to save wizard session after rollback", zap.Error(saveErr))
			}
			return nil, genErr
		}
		if err := w.Apply(wizard.ScriptEvent{Name: wizard.EventScriptReady, Result: result}); err != nil {
			return nil, err
		}
	}

	if err := cache.SaveWizardSession(ctx, wizard.KindScript, user.ID, sessionID, w); err != nil {
		return nil, fmt.Errorf("failed to save wizard session: %w", err)
	}
	return scriptStateResponse(wizard.KindScript, sessionID, w), nil
}

// refreshOptionCounts 给正在配置的条件填充选项计数。
// 车型选项本身也来自产品目录，先填选项再统计。
func (s *WizardService) refreshOptionCounts(ctx context.Context, orgID int64, c *filter.Condition) error {
	switch c.Type {
	case filter.TypeCarModel:
		options, err := Product().Options(ctx)
		if err != nil {
			return err
		}
		values := make([]string, 0, len(options))
		c.Options = make([]filter.Option, 0, len(options))
		for _, opt := range options {
			values = append(values, opt.Value)
			c.Options = append(c.Options, filter.Option{Value: opt.Value, Label: opt.Label})
		}
		counts, err := Lead().CountByDimension(ctx, orgID, "product", values)
		if err != nil {
			return err
		}
		for i := range c.Options {
			c.Options[i].Count = counts[c.Options[i].Value]
		}

	case filter.TypeCustomerLevel:
		values := make([]string, 0, len(c.Options))
		for _, opt := range c.Options {
			values = append(values, opt.Value)
		}
		counts, err := Lead().CountByDimension(ctx, orgID, "leads_type", values)
		if err != nil {
			return err
		}
		for i := range c.Options {
			c.Options[i].Count = counts[c.Options[i].Value]
		}

	case filter.TypeVisitStatus:
		visited, notVisited, err := Lead().CountArrive(ctx, orgID)
		if err != nil {
			return err
		}
		for i := range c.Options {
			switch c.Options[i].Value {
			case "visited":
				c.Options[i].Count = visited
			case "not_visited":
				c.Options[i].Count = notVisited
			}
		}

	default:
		// 时间类选项逐个按窗口统计
		for i := range c.Options {
			if _, ok := filter.ResolveTimeWindow(c.Options[i].Value); !ok {
				continue
			}
			probe := filter.Condition{Type: c.Type, Value: c.Options[i].Value}
			filters := filter.BuildFilters([]filter.Condition{probe})
			count, err := Lead().FilteredCount(ctx, orgID, filtersToCountRequest(filters))
			if err != nil {
				return err
			}
			c.Options[i].Count = count
		}
	}
	return nil
}

func (s *WizardService) loadTaskWizard(ctx context.Context, userID int64, sessionID string) (*wizard.TaskWizard, error) {
	var w wizard.TaskWizard
	found, err := cache.LoadWizardSession(ctx, wizard.KindTask, userID, sessionID, &w)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, pkgerrors.WizardSessionNotFound
	}
	return &w, nil
}

func (s *WizardService) loadScriptWizard(ctx context.Context, userID int64, sessionID string) (*wizard.ScriptWizard, error) {
	var w wizard.ScriptWizard
	found, err := cache.LoadWizardSession(ctx, wizard.KindScript, userID, sessionID, &w)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, pkgerrors.WizardSessionNotFound
	}
	return &w, nil
}

func taskStateResponse(kind, sessionID string, w *wizard.TaskWizard) *dto.WizardStateResponse {
	return &dto.WizardStateResponse{
		SessionID: sessionID,
		Kind:      kind,
		Phase:     w.Phase,
		State:     w,
	}
}

func scriptStateResponse(kind, sessionID string, w *wizard.ScriptWizard) *dto.WizardStateResponse {
	return &dto.WizardStateResponse{
		SessionID: sessionID,
		Kind:      kind,
		Phase:     w.Phase,
		State:     w,
	}
}

func conditionsToSnapshots(conditions []filter.Condition) []dto.ConditionSnapshot {
	snapshots := make([]dto.ConditionSnapshot, 0, len(conditions))
	for _, c := range conditions {
		snapshots = append(snapshots, dto.ConditionSnapshot{
			Type:  string(c.Type),
			Label: c.Label,
			Value: c.Value,
		})
	}
	return snapshots
}

func payloadString(payload map[string]interface{}, key string) string {
	if payload == nil {
		return ""
	}
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

func payloadInt64(payload map[string]interface{}, key string) int64 {
	if payload == nil {
		return 0
	}
	switch v := payload[key].(type) {
	case float64:
		return int64(v)
	case string:
		var n int64
		if err := json.Unmarshal([]byte(v), &n); err == nil {
			return n
		}
	}
	return 0
}

func payloadDraft(payload map[string]interface{}) (*wizard.SceneDraft, error) {
	raw, ok := payload["draft"]
	if !ok {
		return nil, pkgerrors.SceneIncomplete
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scene draft: %w", err)
	}
	var draft wizard.SceneDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scene draft: %w", err)
	}
	return &draft, nil
}
