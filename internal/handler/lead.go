package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"LeadDial/internal/model/dto"
	"LeadDial/internal/service"
	apperrors "LeadDial/pkg/errors"
	"LeadDial/pkg/response"
)

// QueryLeads 分页查询线索，附带最近一次跟进
// POST /api/leads/query_with_latest_follow
func QueryLeads(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.LeadQuery
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Lead().Query(ctx, user.OrganizationID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// CreateLead 新建线索，手机号组织内唯一
// POST /api/create_leads
func CreateLead(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.CreateLeadRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	lead, existingID, err := service.Lead().Create(ctx, user.OrganizationID, user.Nickname, req)
	if err != nil {
		if err == apperrors.LeadDuplicate {
			// 重复线索返回已存在记录的 id，前端据此跳转
			response.Duplicate(ctx, c, apperrors.LeadDuplicate.Message, map[string]interface{}{
				"id": existingID,
			})
			return
		}
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"id": lead.ID,
	})
}

// ListFollows 查询某条线索的跟进记录
// GET /api/follows/:lead_id
func ListFollows(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	leadID, err := strconv.ParseInt(c.Param("lead_id"), 10, 64)
	if err != nil {
		response.BindError(ctx, c, err)
		return
	}

	items, err := service.Lead().ListFollows(ctx, user.OrganizationID, leadID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"items": items,
	})
}

// CreateFollow 新增跟进记录，同步刷新线索冗余列
// POST /api/create_follow
func CreateFollow(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.CreateFollowRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	record, err := service.Lead().CreateFollow(ctx, user.OrganizationID, user.Nickname, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"id": record.ID,
	})
}

// FilteredCount 按筛选条件统计线索数
// POST /api/leads/filtered_count
func FilteredCount(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.FilteredCountRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Count().FilteredCount(ctx, user.OrganizationID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
