package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"LeadDial/internal/filter"
	"LeadDial/internal/model/dto"
	"LeadDial/internal/service"
	"LeadDial/internal/wizard"
	apperrors "LeadDial/pkg/errors"
	"LeadDial/pkg/response"
)

// StartWizard 开启创建向导会话
// POST /api/wizard/:kind/start
func StartWizard(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	result, err := service.Wizard().Start(ctx, user.ID, c.Param("kind"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// WizardState 查询向导当前状态，session_id 走查询参数
// GET /api/wizard/:kind/state
func WizardState(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	result, err := service.Wizard().Get(ctx, user.ID, c.Param("kind"), c.Query("session_id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// WizardEvent 向向导投递事件，驱动状态迁移
// POST /api/wizard/:kind/event
func WizardEvent(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.WizardEventRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	var result *dto.WizardStateResponse
	switch c.Param("kind") {
	case wizard.KindTask:
		result, err = service.Wizard().ApplyTaskEvent(ctx, req.SessionID, user, req)
	case wizard.KindScript:
		result, err = service.Wizard().ApplyScriptEvent(ctx, req.SessionID, user, req)
	default:
		err = apperrors.WizardKindUnknown
	}

	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// CancelWizard 放弃向导会话，状态机整体丢弃
// DELETE /api/wizard/:kind
func CancelWizard(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	if err := service.Wizard().Cancel(ctx, user.ID, c.Param("kind"), c.Query("session_id")); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}

// ConditionTemplates 查询筛选条件模板，车型选项实时拼装
// GET /api/filters/condition_templates
func ConditionTemplates(ctx context.Context, c *app.RequestContext) {
	if _, err := currentUser(ctx, c); err != nil {
		response.Error(ctx, c, err)
		return
	}

	items := make([]dto.ConditionTemplateItem, 0)
	for _, tpl := range filter.Catalog() {
		item := dto.ConditionTemplateItem{
			Type:      string(tpl.Type),
			Label:     tpl.Label,
			HasCustom: tpl.HasCustom,
		}

		options := tpl.Options
		if tpl.Type == filter.TypeCarModel {
			// 车型选项来自产品目录
			productOptions, err := service.Product().Options(ctx)
			if err != nil {
				response.Error(ctx, c, err)
				return
			}
			for _, opt := range productOptions {
				item.Options = append(item.Options, dto.ConditionOptionItem{
					Value: opt.Value,
					Label: opt.Label,
				})
			}
		} else {
			for _, opt := range options {
				item.Options = append(item.Options, dto.ConditionOptionItem{
					Value: opt.Value,
					Label: opt.Label,
					Count: opt.Count,
				})
			}
		}

		items = append(items, item)
	}

	response.Success(ctx, c, map[string]interface{}{
		"items": items,
	})
}
