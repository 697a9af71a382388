package dto

// ========== Wizard 相关 DTO ==========

// WizardStartResponse 开启向导会话
type WizardStartResponse struct {
	SessionID string      `json:"session_id"`
	Kind      string      `json:"kind"`
	Phase     string      `json:"phase"`
	State     interface{} `json:"state"`
}

// WizardEventRequest 推进向导状态机
type WizardEventRequest struct {
	SessionID string                 `json:"session_id" binding:"required"`
	Event     string                 `json:"event" binding:"required"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// WizardStateResponse 向导当前状态
type WizardStateResponse struct {
	SessionID string      `json:"session_id"`
	Kind      string      `json:"kind"`
	Phase     string      `json:"phase"`
	State     interface{} `json:"state"`
}

// ConditionOptionItem 条件选项，count 为该维度下的线索数
type ConditionOptionItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// ConditionTemplateItem 可选条件模板
type ConditionTemplateItem struct {
	Type      string                `json:"type"`
	Label     string                `json:"label"`
	HasCustom bool                  `json:"has_custom"`
	Options   []ConditionOptionItem `json:"options"`
}
