package wizard

import (
	"testing"

	"LeadDial/pkg/errors"
)

func validDraft() *SceneDraft {
	return &SceneDraft{
		SceneName:             "新车上市回访",
		BotName:               "小蓝",
		DialogueTarget:        "邀约到店试驾",
		DialogueFlow:          "开场-确认意向-邀约",
		DialogueOpeningPrompt: "您好，我是XX店的小蓝",
		SceneTags:             []string{"回访"},
	}
}

func TestScriptWizardSelectOfficialScene(t *testing.T) {
	w := NewScriptWizard()
	if w.Phase != PhaseSceneConfig || w.Mode != ModeOfficialScenes {
		t.Fatalf("initial state wrong: %+v", w)
	}

	if err := w.Apply(ScriptEvent{Name: EventSelectScene, SceneID: 3}); err != nil {
		t.Fatalf("select_scene: %v", err)
	}
	if w.Mode != ModeSceneSelected || w.SceneID != 3 {
		t.Fatalf("scene not selected: %+v", w)
	}

	if err := w.Apply(ScriptEvent{Name: EventGenerate}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if w.Phase != PhaseGenerating {
		t.Fatalf("phase = %s", w.Phase)
	}

	if err := w.Apply(ScriptEvent{Name: EventScriptReady, Result: &ScriptResult{SceneID: 3, ScriptID: 101}}); err != nil {
		t.Fatalf("script_ready: %v", err)
	}
	if w.Phase != PhaseScriptComplete || w.Result.ScriptID != 101 {
		t.Fatalf("terminal state wrong: %+v", w)
	}

	if err := w.Apply(ScriptEvent{Name: EventComplete}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if w.Phase != PhaseSceneConfig || w.Mode != ModeOfficialScenes || w.Result != nil {
		t.Fatalf("complete should reset wizard: %+v", w)
	}
}

func TestScriptWizardCustomSceneValidation(t *testing.T) {
	w := NewScriptWizard()
	w.Apply(ScriptEvent{Name: EventSwitchMode, Mode: ModeCreateCustom})

	incomplete := validDraft()
	incomplete.BotName = ""
	if err := w.Apply(ScriptEvent{Name: EventSaveCustomScene, Draft: incomplete}); err != errors.SceneIncomplete {
		t.Fatalf("expected SceneIncomplete, got %v", err)
	}

	untagged := validDraft()
	untagged.SceneTags = nil
	if err := w.Apply(ScriptEvent{Name: EventSaveCustomScene, Draft: untagged}); err != errors.SceneTagRequired {
		t.Fatalf("expected SceneTagRequired, got %v", err)
	}

	// 未保存草稿时不允许生成
	if err := w.Apply(ScriptEvent{Name: EventGenerate}); err != errors.SceneIncomplete {
		t.Fatalf("generate without draft should fail, got %v", err)
	}

	if err := w.Apply(ScriptEvent{Name: EventSaveCustomScene, Draft: validDraft()}); err != nil {
		t.Fatalf("save valid draft: %v", err)
	}
	if err := w.Apply(ScriptEvent{Name: EventGenerate}); err != nil {
		t.Fatalf("generate with valid draft: %v", err)
	}
	if w.Phase != PhaseGenerating {
		t.Fatalf("phase = %s", w.Phase)
	}
}

func TestScriptWizardModeSwitchClearsSelection(t *testing.T) {
	w := NewScriptWizard()
	w.Apply(ScriptEvent{Name: EventSelectScene, SceneID: 5})
	w.Apply(ScriptEvent{Name: EventSwitchMode, Mode: ModeCustomScenes})
	if w.SceneID != 0 || w.Mode != ModeCustomScenes {
		t.Fatalf("mode switch should drop selection: %+v", w)
	}

	if err := w.Apply(ScriptEvent{Name: EventSwitchMode, Mode: "bogus"}); err != errors.WizardEventInvalid {
		t.Fatalf("unknown mode should fail, got %v", err)
	}
}

func TestScriptWizardGenerateWithoutSelection(t *testing.T) {
	w := NewScriptWizard()
	if err := w.Apply(ScriptEvent{Name: EventGenerate}); err != errors.WizardEventInvalid {
		t.Fatalf("generate without scene should fail, got %v", err)
	}
}
