package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"LeadDial/internal/model"
	"LeadDial/internal/model/dto"
	"LeadDial/internal/service"
	"LeadDial/pkg/response"
)

// ListTasks 分页查询外呼任务
// GET /api/tasks/tasks 和 GET /api/call_tasks/list 共用
func ListTasks(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.TaskQuery
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Task().List(ctx, user.OrganizationID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ScriptTasks 查询可绑定话术的任务，即尚未发起的任务
// GET /api/call_tasks/script_tasks
func ScriptTasks(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.TaskQuery
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}
	req.State = string(model.TaskStateCreated)

	result, err := service.Task().List(ctx, user.OrganizationID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// CreateTask 创建外呼任务
// POST /api/tasks/create_task 和 POST /api/call_tasks/create 共用
func CreateTask(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.CreateTaskRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Task().Create(ctx, user.OrganizationID, user, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// TaskDetail 查询任务详情及通话记录
// GET /api/task_detail/:id
func TaskDetail(ctx context.Context, c *app.RequestContext) {
	taskDetailByParam(ctx, c, "id")
}

// CallTaskDetail 同任务详情，call_tasks 组的路径形态
// GET /api/call_tasks/:task_id
func CallTaskDetail(ctx context.Context, c *app.RequestContext) {
	taskDetailByParam(ctx, c, "task_id")
}

func taskDetailByParam(ctx context.Context, c *app.RequestContext, param string) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	taskID, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Task().Detail(ctx, user.OrganizationID, taskID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// UpdateTaskStatus 更新任务状态，仅允许既定的状态迁移
// POST /api/tasks/update_status
func UpdateTaskStatus(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Task().UpdateStatus(ctx, user.OrganizationID, req); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, nil)
}

// UpdateTaskScript 为未发起的任务绑定话术
// POST /api/call_tasks/:task_id/script
func UpdateTaskScript(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	taskID, err := strconv.ParseInt(c.Param("task_id"), 10, 64)
	if err != nil {
		response.BindError(ctx, c, err)
		return
	}

	var req dto.UpdateTaskScriptRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}
	req.TaskID = taskID

	if err := service.Task().UpdateScript(ctx, user.OrganizationID, req); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, nil)
}

// StartTask 发起外呼，任务进入 calling 状态并投递呼叫批次
// POST /api/call_tasks/:task_id/start
func StartTask(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	taskID, err := strconv.ParseInt(c.Param("task_id"), 10, 64)
	if err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Task().Start(ctx, user.OrganizationID, taskID); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, nil)
}

// TaskStatistics 外呼任务看板统计
// GET /api/call_tasks/statistics
func TaskStatistics(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	result, err := service.Task().Statistics(ctx, user.OrganizationID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
