package model

import (
	"time"

	"gorm.io/datatypes"
)

// TaskLifecycleState 外呼任务生命周期。
// 历史接口里 task_type=4 同时表示「已删除」与「跟进完成」，
// 这里拆成两个状态，出网时通过 WireCode 折回旧编码。
type TaskLifecycleState string

const (
	TaskStateCreated      TaskLifecycleState = "created"        // 已创建未外呼
	TaskStateCalling      TaskLifecycleState = "calling"        // 外呼中
	TaskStateCallComplete TaskLifecycleState = "call_complete"  // 外呼完成
	TaskStateFollowUpDone TaskLifecycleState = "follow_up_done" // 跟进完成
	TaskStateDeleted      TaskLifecycleState = "deleted"        // 已删除
)

// WireCode 返回旧版客户端使用的数字编码
func (s TaskLifecycleState) WireCode() int {
	switch s {
	case TaskStateCreated:
		return 1
	case TaskStateCalling:
		return 2
	case TaskStateCallComplete:
		return 3
	case TaskStateFollowUpDone, TaskStateDeleted:
		return 4
	default:
		return 0
	}
}

// Valid 是否为已知状态
func (s TaskLifecycleState) Valid() bool {
	switch s {
	case TaskStateCreated, TaskStateCalling, TaskStateCallComplete,
		TaskStateFollowUpDone, TaskStateDeleted:
		return true
	}
	return false
}

// CallTask 外呼任务
type CallTask struct {
	BaseModel
	OrganizationID int64              `gorm:"not null;default:0;index:idx_call_tasks_org" json:"organization_id"`
	Name           string             `gorm:"type:varchar(128);not null" json:"name"`
	State          TaskLifecycleState `gorm:"type:varchar(20);not null;default:'created';index:idx_call_tasks_state" json:"state"`
	Conditions     datatypes.JSON     `gorm:"type:jsonb;default:'[]'" json:"conditions"` // 创建时选中条件快照
	FilterSnapshot datatypes.JSON     `gorm:"type:jsonb;default:'{}'" json:"filter_snapshot"`
	TargetCount    int                `gorm:"not null;default:0" json:"target_count"`
	ConnectedCount int                `gorm:"not null;default:0" json:"connected_count"`
	CompletedCount int                `gorm:"not null;default:0" json:"completed_count"`
	ScriptID       int64              `gorm:"not null;default:0" json:"script_id"`
	CreatedBy      int64              `gorm:"not null;default:0" json:"created_by"` // 创建人 public_id，收尾短信通知用
	CreateName     string             `gorm:"type:varchar(64);not null;default:''" json:"create_name"`
	ScheduledAt    *time.Time         `gorm:"type:timestamptz;index:idx_call_tasks_scheduled" json:"scheduled_at"`
	StartedAt      *time.Time         `gorm:"type:timestamptz" json:"started_at"`
	FinishedAt     *time.Time         `gorm:"type:timestamptz" json:"finished_at"`
}

// TableName 指定表名
func (CallTask) TableName() string {
	return "call_tasks"
}

// CallRecord 单次外呼结果
type CallRecord struct {
	BaseModel
	TaskID          int64  `gorm:"not null;index:idx_call_records_task" json:"task_id"`
	LeadID          int64  `gorm:"not null;index:idx_call_records_lead" json:"lead_id"`
	CallID          string `gorm:"type:varchar(64);not null;default:''" json:"call_id"` // 语音服务回执 ID
	Connected       bool   `gorm:"not null;default:false" json:"connected"`
	DurationSeconds int    `gorm:"not null;default:0" json:"duration_seconds"`
	Summary         string `gorm:"type:text;not null;default:''" json:"summary"`
}

// TableName 指定表名
func (CallRecord) TableName() string {
	return "call_records"
}
