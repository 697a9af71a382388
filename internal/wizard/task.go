package wizard

import (
	"LeadDial/internal/filter"
	"LeadDial/pkg/errors"
)

// KindTask / KindScript 向导类别，路由参数里使用
const (
	KindTask   = "task"
	KindScript = "script"
)

// 任务向导阶段
const (
	PhaseSelectCondition = "select_condition"
	PhaseSelectOption    = "select_option"
	PhaseCreatingTask    = "creating_task"
	PhaseTaskComplete    = "task_complete"
)

// 任务向导事件
const (
	EventPickCondition   = "pick_condition"    // payload: condition_type
	EventPickOption      = "pick_option"       // payload: value
	EventPickCustomRange = "pick_custom_range" // payload: start / end
	EventBack            = "back"
	EventRemoveCondition = "remove_condition" // payload: condition_type
	EventSubmit          = "submit"
	EventTaskCreated     = "task_created" // 服务端创建成功后内部投递
	EventComplete        = "complete"
)

// TaskResult 创建成功后的回执
type TaskResult struct {
	TaskID      int64  `json:"task_id"`
	TaskName    string `json:"task_name"`
	TargetCount int    `json:"target_count"`
}

// TaskWizard 任务创建向导状态。状态整体作为标签联合：
// Phase 决定哪些字段有效、哪些事件被接受。
type TaskWizard struct {
	Phase    string             `json:"phase"`
	Selected []filter.Condition `json:"selected"`
	Active   *filter.Condition  `json:"active,omitempty"` // select_option 阶段正在配置的条件
	Result   *TaskResult        `json:"result,omitempty"` // task_complete 阶段有效
}

// NewTaskWizard 初始状态
func NewTaskWizard() *TaskWizard {
	return &TaskWizard{
		Phase:    PhaseSelectCondition,
		Selected: []filter.Condition{},
	}
}

// Available 当前还可选择的条件模板。
// 未打开的条件不带计数，计数在 pick_condition 进入选项页时才刷新。
func (w *TaskWizard) Available() []filter.Condition {
	return filter.ResetCounts(filter.Available(w.Selected))
}

// Filters 按当前选中条件编译查询参数
func (w *TaskWizard) Filters() filter.LeadFilters {
	return filter.BuildFilters(w.Selected)
}

// TaskName 按当前选中条件生成任务名
func (w *TaskWizard) TaskName() string {
	return filter.GenerateTaskName(w.Selected)
}

// Event 向导输入事件
type Event struct {
	Name          string
	ConditionType filter.ConditionType
	Value         string
	CustomStart   string
	CustomEnd     string
	Result        *TaskResult
}

// Apply 推进状态机。不合法的事件返回 WizardEventInvalid，状态不变。
func (w *TaskWizard) Apply(ev Event) error {
	switch w.Phase {
	case PhaseSelectCondition:
		return w.applySelectCondition(ev)
	case PhaseSelectOption:
		return w.applySelectOption(ev)
	case PhaseCreatingTask:
		return w.applyCreatingTask(ev)
	case PhaseTaskComplete:
		return w.applyTaskComplete(ev)
	}
	return errors.WizardEventInvalid
}

func (w *TaskWizard) applySelectCondition(ev Event) error {
	switch ev.Name {
	case EventPickCondition:
		if !ev.ConditionType.Valid() {
			return errors.ConditionTypeUnknown
		}
		for _, c := range w.Selected {
			if c.Type == ev.ConditionType {
				return errors.ConditionTypeUsed
			}
		}
		tpl, ok := filter.TemplateByType(ev.ConditionType)
		if !ok {
			return errors.ConditionTypeUnknown
		}
		w.Active = &tpl
		w.Phase = PhaseSelectOption
		return nil

	case EventRemoveCondition:
		return w.removeCondition(ev.ConditionType)

	case EventSubmit:
		w.Phase = PhaseCreatingTask
		return nil
	}
	return errors.WizardEventInvalid
}

func (w *TaskWizard) applySelectOption(ev Event) error {
	switch ev.Name {
	case EventPickOption:
		if ev.Value == "" {
			return errors.WizardEventInvalid
		}
		if w.Active.Type.TimeBased() {
			if _, ok := filter.ResolveTimeWindow(ev.Value); !ok {
				return errors.TimeTokenInvalid
			}
		} else if !optionExists(w.Active.Options, ev.Value) {
			return errors.OptionValueInvalid
		}
		return w.commitActive(ev.Value)

	case EventPickCustomRange:
		if !w.Active.Type.TimeBased() {
			return errors.WizardEventInvalid
		}
		if ev.CustomStart == "" && ev.CustomEnd == "" {
			return errors.CustomRangeEmpty
		}
		return w.commitActive(filter.EncodeCustomRange(ev.CustomStart, ev.CustomEnd))

	case EventBack:
		w.Active = nil
		w.Phase = PhaseSelectCondition
		return nil
	}
	return errors.WizardEventInvalid
}

func (w *TaskWizard) applyCreatingTask(ev Event) error {
	if ev.Name != EventTaskCreated || ev.Result == nil {
		return errors.WizardEventInvalid
	}
	w.Result = ev.Result
	w.Phase = PhaseTaskComplete
	return nil
}

// 终态只接受 complete，重置回初始状态
func (w *TaskWizard) applyTaskComplete(ev Event) error {
	if ev.Name != EventComplete {
		return errors.WizardEventInvalid
	}
	*w = *NewTaskWizard()
	return nil
}

func (w *TaskWizard) commitActive(value string) error {
	committed := *w.Active
	committed.Value = value
	w.Selected = append(w.Selected, committed)
	w.Active = nil
	w.Phase = PhaseSelectCondition
	return nil
}

// 非时间类条件的取值必须出自模板选项，时间类走解析器校验
func optionExists(options []filter.Option, value string) bool {
	for _, opt := range options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func (w *TaskWizard) removeCondition(t filter.ConditionType) error {
	for i, c := range w.Selected {
		if c.Type == t {
			w.Selected = append(w.Selected[:i], w.Selected[i+1:]...)
			return nil
		}
	}
	return errors.WizardEventInvalid
}
