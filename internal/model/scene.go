package model

import "gorm.io/datatypes"

// SceneType 话术场景类型
type SceneType int

const (
	SceneTypeOfficial SceneType = 1 // 官方场景，只读
	SceneTypeCustom   SceneType = 2 // 自定义场景
)

// Scene AI 外呼话术场景配置
type Scene struct {
	BaseModel
	OrganizationID int64     `gorm:"not null;default:0;index:idx_scenes_org" json:"organization_id"`
	ScriptID       int64     `gorm:"not null;default:0;index:idx_scenes_script" json:"script_id"` // 生成话术后回填
	SceneName      string    `gorm:"type:varchar(128);not null" json:"scene_name"`
	SceneType      SceneType `gorm:"type:smallint;not null;default:2;index:idx_scenes_type" json:"scene_type"`

	// 数字员工人设
	BotName  string `gorm:"type:varchar(64);not null;default:''" json:"bot_name"`
	BotPost  string `gorm:"type:varchar(64);not null;default:''" json:"bot_post"`
	BotAge   string `gorm:"type:varchar(16);not null;default:''" json:"bot_age"`
	BotStyle string `gorm:"type:varchar(64);not null;default:''" json:"bot_style"`

	// 对话设定
	DialogueTarget        string `gorm:"type:text;not null;default:''" json:"dialogue_target"`
	DialogueBg            string `gorm:"type:text;not null;default:''" json:"dialogue_bg"`
	DialogueFlow          string `gorm:"type:text;not null;default:''" json:"dialogue_flow"`
	DialogueConstraint    string `gorm:"type:text;not null;default:''" json:"dialogue_constraint"`
	DialogueOpeningPrompt string `gorm:"type:text;not null;default:''" json:"dialogue_opening_prompt"`

	SceneTags  datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"scene_tags"`
	CreateName string         `gorm:"type:varchar(64);not null;default:''" json:"create_name"`
}

// TableName 指定表名
func (Scene) TableName() string {
	return "scenes"
}

// ReadOnly 官方场景不允许修改
func (s *Scene) ReadOnly() bool {
	return s.SceneType == SceneTypeOfficial
}
