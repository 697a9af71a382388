package dto

// ========== Task 相关 DTO ==========

// TaskQuery 任务分页查询
type TaskQuery struct {
	Page     int    `json:"page" query:"page"`
	PageSize int    `json:"page_size" query:"page_size"`
	State    string `json:"state,omitempty" query:"state"`
	Keyword  string `json:"keyword,omitempty" query:"keyword"`
}

// ConditionSnapshot 任务创建时的条件快照
type ConditionSnapshot struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// TaskItem 任务列表行
type TaskItem struct {
	ID             int64               `json:"id"`
	Name           string              `json:"name"`
	Conditions     []ConditionSnapshot `json:"conditions"`
	TargetCount    int                 `json:"target_count"`
	ConnectedCount int                 `json:"connected_count"`
	CompletedCount int                 `json:"completed_count"`
	State          string              `json:"state"`
	TaskType       int                 `json:"task_type"` // 旧编码，State 的 WireCode
	ScriptID       int64               `json:"script_id"`
	CreateName     string              `json:"create_name"`
	SizeDesc       string              `json:"size_desc"`
	CreatedAt      string              `json:"created_at"`
	ScheduledAt    string              `json:"scheduled_at,omitempty"`
}

// TaskListResponse 任务分页响应
type TaskListResponse struct {
	Items    []TaskItem `json:"items"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// CreateTaskRequest 创建任务请求，conditions 为向导选中的条件
type CreateTaskRequest struct {
	Name        string              `json:"name"`
	Conditions  []ConditionSnapshot `json:"conditions" binding:"required"`
	ScriptID    int64               `json:"script_id"`
	ScheduledAt string              `json:"scheduled_at"`
}

// CreateTaskResponse 创建任务响应
type CreateTaskResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TargetCount int    `json:"target_count"`
}

// UpdateTaskStatusRequest 更新任务状态请求
type UpdateTaskStatusRequest struct {
	TaskID int64  `json:"task_id" binding:"required"`
	State  string `json:"state" binding:"required"`
}

// UpdateTaskScriptRequest 绑定话术请求，task_id 来自路径参数
type UpdateTaskScriptRequest struct {
	TaskID   int64 `json:"-"`
	ScriptID int64 `json:"script_id" binding:"required"`
}

// TaskDetailResponse 任务详情
type TaskDetailResponse struct {
	Task    TaskItem         `json:"task"`
	Records []CallRecordItem `json:"records"`
}

// CallRecordItem 外呼明细行
type CallRecordItem struct {
	ID              int64  `json:"id"`
	LeadID          int64  `json:"lead_id"`
	LeadName        string `json:"lead_name"`
	Phone           string `json:"phone"`
	Connected       bool   `json:"connected"`
	DurationSeconds int    `json:"duration_seconds"`
	Summary         string `json:"summary"`
	CalledAt        string `json:"called_at"`
}

// TaskStatisticsResponse 外呼任务统计
type TaskStatisticsResponse struct {
	TotalTasks     int64 `json:"total_tasks"`
	CallingTasks   int64 `json:"calling_tasks"`
	CompletedTasks int64 `json:"completed_tasks"`
	TotalCalls     int64 `json:"total_calls"`
	ConnectedCalls int64 `json:"connected_calls"`
}
