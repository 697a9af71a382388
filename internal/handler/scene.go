package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"LeadDial/internal/model/dto"
	"LeadDial/internal/service"
	"LeadDial/pkg/response"
)

// ListScenes 查询话术场景，官方场景在前
// GET /api/scenes
func ListScenes(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.SceneQuery
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	items, err := service.Scene().List(ctx, user.OrganizationID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"items": items,
	})
}

// CreateScene 新建自定义话术场景
// POST /api/scenes
func CreateScene(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.CreateSceneRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Scene().Create(ctx, user.OrganizationID, user.Nickname, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// UpdateScene 修改自定义话术场景，官方场景返回 SCENE_READ_ONLY
// PUT /api/scenes/:scene_id
func UpdateScene(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	sceneID, err := strconv.ParseInt(c.Param("scene_id"), 10, 64)
	if err != nil {
		response.BindError(ctx, c, err)
		return
	}

	var req dto.UpdateSceneRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Scene().Update(ctx, user.OrganizationID, sceneID, req); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, nil)
}

// DeleteScene 删除自定义话术场景，官方场景返回 SCENE_READ_ONLY
// DELETE /api/scenes/:scene_id
func DeleteScene(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	sceneID, err := strconv.ParseInt(c.Param("scene_id"), 10, 64)
	if err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Scene().Delete(ctx, user.OrganizationID, sceneID); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}
