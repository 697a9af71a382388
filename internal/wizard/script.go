package wizard

import (
	"LeadDial/pkg/errors"
)

// 话术向导阶段
const (
	PhaseSceneConfig    = "scene_config"
	PhaseGenerating     = "generating_script"
	PhaseScriptComplete = "script_complete"
)

// scene_config 阶段的子模式
const (
	ModeOfficialScenes = "official_scenes"
	ModeCustomScenes   = "custom_scenes"
	ModeCreateCustom   = "create_custom"
	ModeSceneSelected  = "scene_selected"
)

// 话术向导事件
const (
	EventSwitchMode      = "switch_mode"  // payload: mode
	EventSelectScene     = "select_scene" // payload: scene_id
	EventSaveCustomScene = "save_custom_scene"
	EventGenerate        = "generate"
	EventScriptReady     = "script_ready" // 服务端生成完毕后内部投递
)

// SceneDraft 自定义场景草稿，生成前做必填校验
type SceneDraft struct {
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

// Validate 必填字段齐全才允许保存或生成
func (d SceneDraft) Validate() error {
	if d.SceneName == "" || d.BotName == "" || d.DialogueTarget == "" ||
		d.DialogueOpeningPrompt == "" || d.DialogueFlow == "" {
		return errors.SceneIncomplete
	}
	if len(d.SceneTags) == 0 {
		return errors.SceneTagRequired
	}
	return nil
}

// ScriptResult 话术生成回执
type ScriptResult struct {
	SceneID  int64 `json:"scene_id"`
	ScriptID int64 `json:"script_id"`
}

// ScriptWizard 话术配置向导状态
type ScriptWizard struct {
	Phase   string        `json:"phase"`
	Mode    string        `json:"mode,omitempty"`     // scene_config 阶段有效
	SceneID int64         `json:"scene_id,omitempty"` // scene_selected 模式下选中的场景
	Draft   *SceneDraft   `json:"draft,omitempty"`    // create_custom 模式的草稿
	Result  *ScriptResult `json:"result,omitempty"`   // script_complete 阶段有效
}

// NewScriptWizard 初始状态，默认展示官方场景
func NewScriptWizard() *ScriptWizard {
	return &ScriptWizard{
		Phase: PhaseSceneConfig,
		Mode:  ModeOfficialScenes,
	}
}

// ScriptEvent 话术向导输入事件
type ScriptEvent struct {
	Name    string
	Mode    string
	SceneID int64
	Draft   *SceneDraft
	Result  *ScriptResult
}

// Apply 推进状态机。不合法的事件返回 WizardEventInvalid，状态不变。
func (w *ScriptWizard) Apply(ev ScriptEvent) error {
	switch w.Phase {
	case PhaseSceneConfig:
		return w.applySceneConfig(ev)
	case PhaseGenerating:
		return w.applyGenerating(ev)
	case PhaseScriptComplete:
		return w.applyScriptComplete(ev)
	}
	return errors.WizardEventInvalid
}

func (w *ScriptWizard) applySceneConfig(ev ScriptEvent) error {
	switch ev.Name {
	case EventSwitchMode:
		switch ev.Mode {
		case ModeOfficialScenes, ModeCustomScenes, ModeCreateCustom:
			w.Mode = ev.Mode
			w.SceneID = 0
			if ev.Mode != ModeCreateCustom {
				w.Draft = nil
			}
			return nil
		}
		return errors.WizardEventInvalid

	case EventSelectScene:
		if ev.SceneID <= 0 {
			return errors.WizardEventInvalid
		}
		w.SceneID = ev.SceneID
		w.Mode = ModeSceneSelected
		w.Draft = nil
		return nil

	case EventSaveCustomScene:
		if w.Mode != ModeCreateCustom || ev.Draft == nil {
			return errors.WizardEventInvalid
		}
		if err := ev.Draft.Validate(); err != nil {
			return err
		}
		w.Draft = ev.Draft
		return nil

	case EventGenerate:
		switch w.Mode {
		case ModeSceneSelected:
			w.Phase = PhaseGenerating
			return nil
		case ModeCreateCustom:
			if w.Draft == nil {
				return errors.SceneIncomplete
			}
			if err := w.Draft.Validate(); err != nil {
				return err
			}
			w.Phase = PhaseGenerating
			return nil
		}
		return errors.WizardEventInvalid
	}
	return errors.WizardEventInvalid
}

func (w *ScriptWizard) applyGenerating(ev ScriptEvent) error {
	if ev.Name != EventScriptReady || ev.Result == nil {
		return errors.WizardEventInvalid
	}
	w.Result = ev.Result
	w.Phase = PhaseScriptComplete
	return nil
}

// 终态只接受 complete，重置回初始状态
func (w *ScriptWizard) applyScriptComplete(ev ScriptEvent) error {
	if ev.Name != EventComplete {
		return errors.WizardEventInvalid
	}
	*w = *NewScriptWizard()
	return nil
}
