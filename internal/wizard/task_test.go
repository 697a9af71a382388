package wizard

import (
	"testing"

	"LeadDial/internal/filter"
	"LeadDial/pkg/errors"
)

func TestTaskWizardHappyPath(t *testing.T) {
	w := NewTaskWizard()
	if w.Phase != PhaseSelectCondition {
		t.Fatalf("initial phase = %s", w.Phase)
	}

	if err := w.Apply(Event{Name: EventPickCondition, ConditionType: filter.TypeCustomerLevel}); err != nil {
		t.Fatalf("pick_condition: %v", err)
	}
	if w.Phase != PhaseSelectOption || w.Active == nil {
		t.Fatalf("expected select_option with active condition, phase=%s", w.Phase)
	}

	if err := w.Apply(Event{Name: EventPickOption, Value: "H级"}); err != nil {
		t.Fatalf("pick_option: %v", err)
	}
	if w.Phase != PhaseSelectCondition || len(w.Selected) != 1 {
		t.Fatalf("option commit failed, phase=%s selected=%d", w.Phase, len(w.Selected))
	}
	if w.Selected[0].Value != "H级" {
		t.Fatalf("selected value = %q", w.Selected[0].Value)
	}

	if err := w.Apply(Event{Name: EventSubmit}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if w.Phase != PhaseCreatingTask {
		t.Fatalf("phase after submit = %s", w.Phase)
	}

	result := &TaskResult{TaskID: 7, TaskName: "发起任务-H级", TargetCount: 42}
	if err := w.Apply(Event{Name: EventTaskCreated, Result: result}); err != nil {
		t.Fatalf("task_created: %v", err)
	}
	if w.Phase != PhaseTaskComplete || w.Result.TaskID != 7 {
		t.Fatalf("terminal state wrong: phase=%s result=%+v", w.Phase, w.Result)
	}

	// complete 全量重置
	if err := w.Apply(Event{Name: EventComplete}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if w.Phase != PhaseSelectCondition || len(w.Selected) != 0 || w.Result != nil {
		t.Fatalf("complete should reset wizard, got %+v", w)
	}
}

func TestTaskWizardRejectsDuplicateType(t *testing.T) {
	w := NewTaskWizard()
	w.Apply(Event{Name: EventPickCondition, ConditionType: filter.TypeCustomerLevel})
	w.Apply(Event{Name: EventPickOption, Value: "A级"})

	err := w.Apply(Event{Name: EventPickCondition, ConditionType: filter.TypeCustomerLevel})
	if err != errors.ConditionTypeUsed {
		t.Fatalf("expected ConditionTypeUsed, got %v", err)
	}

	// 候选池也不再包含已用类型
	for _, c := range w.Available() {
		if c.Type == filter.TypeCustomerLevel {
			t.Fatalf("used type still in available pool")
		}
	}
}

func TestTaskWizardRejectsUnknownOptionValue(t *testing.T) {
	w := NewTaskWizard()
	w.Apply(Event{Name: EventPickCondition, ConditionType: filter.TypeCustomerLevel})

	err := w.Apply(Event{Name: EventPickOption, Value: "Z级"})
	if err != errors.OptionValueInvalid {
		t.Fatalf("expected OptionValueInvalid, got %v", err)
	}
	if w.Phase != PhaseSelectOption || len(w.Selected) != 0 {
		t.Fatalf("state mutated by rejected value, phase=%s selected=%d", w.Phase, len(w.Selected))
	}

	if err := w.Apply(Event{Name: EventPickOption, Value: "C级"}); err != nil {
		t.Fatalf("valid option after rejection: %v", err)
	}
}

func TestTaskWizardTimeTokensValidatedByResolver(t *testing.T) {
	w := NewTaskWizard()
	w.Apply(Event{Name: EventPickCondition, ConditionType: filter.TypeNextFollow})

	// next_month 不在符号选项列表里，但解析器认识它
	if err := w.Apply(Event{Name: EventPickOption, Value: "next_month"}); err != nil {
		t.Fatalf("resolver token: %v", err)
	}

	w2 := NewTaskWizard()
	w2.Apply(Event{Name: EventPickCondition, ConditionType: filter.TypeNextFollow})
	if err := w2.Apply(Event{Name: EventPickOption, Value: "someday"}); err != errors.TimeTokenInvalid {
		t.Fatalf("expected TimeTokenInvalid, got %v", err)
	}
}

func TestTaskWizardAvailablePoolCarriesNoCounts(t *testing.T) {
	w := NewTaskWizard()
	w.Apply(Event{Name: EventPickCondition, ConditionType: filter.TypeCustomerLevel})
	// 服务层在选项页给 Active 填计数，返回条件页后候选池不得残留
	for i := range w.Active.Options {
		w.Active.Options[i].Count = 9
	}
	w.Apply(Event{Name: EventBack})

	for _, c := range w.Available() {
		for _, opt := range c.Options {
			if opt.Count != 0 {
				t.Fatalf("pool option %s/%s carries count %d", c.Type, opt.Value, opt.Count)
			}
		}
	}
}

func TestTaskWizardCustomRange(t *testing.T) {
	w := NewTaskWizard()
	w.Apply(Event{Name: EventPickCondition, ConditionType: filter.TypeLastFollowTime})

	err := w.Apply(Event{Name: EventPickCustomRange})
	if err != errors.CustomRangeEmpty {
		t.Fatalf("empty custom range should fail, got %v", err)
	}

	if err := w.Apply(Event{Name: EventPickCustomRange, CustomStart: "2024-01-01", CustomEnd: "2024-01-31"}); err != nil {
		t.Fatalf("custom range: %v", err)
	}
	if w.Selected[0].Value != "custom:2024-01-01_2024-01-31" {
		t.Fatalf("encoded value = %q", w.Selected[0].Value)
	}

	filters := w.Filters()
	if filters.LatestFollowStart != "2024-01-01" || filters.LatestFollowEnd != "2024-01-31" {
		t.Fatalf("compiled filters = %+v", filters)
	}
}

func TestTaskWizardRejectsCustomRangeForLiteralTypes(t *testing.T) {
	w := NewTaskWizard()
	w.Apply(Event{Name: EventPickCondition, ConditionType: filter.TypeVisitStatus})

	err := w.Apply(Event{Name: EventPickCustomRange, CustomStart: "2024-01-01"})
	if err != errors.WizardEventInvalid {
		t.Fatalf("expected WizardEventInvalid, got %v", err)
	}
}

func TestTaskWizardBack(t *testing.T) {
	w := NewTaskWizard()
	w.Apply(Event{Name: EventPickCondition, ConditionType: filter.TypeCarModel})
	if err := w.Apply(Event{Name: EventBack}); err != nil {
		t.Fatalf("back: %v", err)
	}
	if w.Phase != PhaseSelectCondition || w.Active != nil {
		t.Fatalf("back should drop active condition")
	}
}

func TestTaskWizardRemoveCondition(t *testing.T) {
	w := NewTaskWizard()
	w.Apply(Event{Name: EventPickCondition, ConditionType: filter.TypeCustomerLevel})
	w.Apply(Event{Name: EventPickOption, Value: "B级"})

	if err := w.Apply(Event{Name: EventRemoveCondition, ConditionType: filter.TypeCustomerLevel}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(w.Selected) != 0 {
		t.Fatalf("condition not removed")
	}
	if err := w.Apply(Event{Name: EventRemoveCondition, ConditionType: filter.TypeCustomerLevel}); err != errors.WizardEventInvalid {
		t.Fatalf("removing absent condition should fail, got %v", err)
	}
}

func TestTaskWizardInvalidEventsLeaveStateUntouched(t *testing.T) {
	w := NewTaskWizard()
	if err := w.Apply(Event{Name: EventPickOption, Value: "H级"}); err != errors.WizardEventInvalid {
		t.Fatalf("pick_option in select_condition should fail, got %v", err)
	}
	if w.Phase != PhaseSelectCondition || len(w.Selected) != 0 {
		t.Fatalf("state mutated by rejected event")
	}

	w.Apply(Event{Name: EventSubmit})
	if err := w.Apply(Event{Name: EventPickCondition, ConditionType: filter.TypeCarModel}); err != errors.WizardEventInvalid {
		t.Fatalf("pick_condition while creating_task should fail, got %v", err)
	}
}
