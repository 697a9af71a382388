package dto

// ========== Scene 相关 DTO ==========

// SceneQuery 场景列表查询
type SceneQuery struct {
	SceneType int    `json:"scene_type,omitempty" query:"scene_type"`
	Keyword   string `json:"keyword,omitempty" query:"keyword"`
}

// SceneItem 场景列表行
type SceneItem struct {
	ID                    int64    `json:"id"`
	ScriptID              int64    `json:"script_id"`
	SceneName             string   `json:"scene_name"`
	SceneType             int      `json:"scene_type"`
	BotName               string   `json:"bot_name"`
	BotPost               string   `json:"bot_post"`
	BotAge                string   `json:"bot_age"`
	BotStyle              string   `json:"bot_style"`
	DialogueTarget        string   `json:"dialogue_target"`
	DialogueBg            string   `json:"dialogue_bg"`
	DialogueFlow          string   `json:"dialogue_flow"`
	DialogueConstraint    string   `json:"dialogue_constraint"`
	DialogueOpeningPrompt string   `json:"dialogue_opening_prompt"`
	SceneTags             []string `json:"scene_tags"`
	CreateName            string   `json:"create_name"`
	CreatedAt             string   `json:"created_at"`
}

// CreateSceneRequest 创建自定义场景请求
type CreateSceneRequest struct {
	SceneName             string   `json:"scene_name" binding:"required"`
	BotName               string   `json:"bot_name" binding:"required"`
	BotPost               string   `json:"bot_post"`
	BotAge                string   `json:"bot_age"`
	BotStyle              string   `json:"bot_style"`
	DialogueTarget        string   `json:"dialogue_target" binding:"required"`
	DialogueBg            string   `json:"dialogue_bg"`
	DialogueFlow          string   `json:"dialogue_flow" binding:"required"`
	DialogueConstraint    string   `json:"dialogue_constraint"`
	DialogueOpeningPrompt string   `json:"dialogue_opening_prompt" binding:"required"`
	SceneTags             []string `json:"scene_tags" binding:"required"`
}

// UpdateSceneRequest 修改自定义场景请求，空字段不更新
type UpdateSceneRequest struct {
	SceneName             string   `json:"scene_name"`
	BotName               string   `json:"bot_name"`
	BotPost               string   `json:"bot_post"`
	BotAge                string   `json:"bot_age"`
	BotStyle              string   `json:"bot_style"`
	DialogueTarget        string   `json:"dialogue_target"`
	DialogueBg            string   `json:"dialogue_bg"`
	DialogueFlow          string   `json:"dialogue_flow"`
	DialogueConstraint    string   `json:"dialogue_constraint"`
	DialogueOpeningPrompt string   `json:"dialogue_opening_prompt"`
	SceneTags             []string `json:"scene_tags"`
}

// CreateSceneResponse 创建场景响应
type CreateSceneResponse struct {
	ID       int64 `json:"id"`
	ScriptID int64 `json:"script_id"`
}
