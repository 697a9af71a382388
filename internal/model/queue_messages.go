package model

// CallJobMessage 单条外呼作业，按批从任务启动时投递
type CallJobMessage struct {
	MessageID string `json:"message_id"` // 消息唯一ID，用于幂等性检查
	TaskID    int64  `json:"task_id"`
	LeadID    int64  `json:"lead_id"`
	Phone     string `json:"phone"`
	ScriptID  int64  `json:"script_id"`
	Opening   string `json:"opening"`
	BatchNo   int    `json:"batch_no"`
}

// TaskFinalizeMessage 任务收尾消息，所有作业计数归零后投递
type TaskFinalizeMessage struct {
	MessageID   string `json:"message_id"` // 消息唯一ID，用于幂等性检查
	TaskID      int64  `json:"task_id"`
	ScheduledAt string `json:"scheduled_at"`
}
