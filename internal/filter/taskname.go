package filter

const taskNamePrefix = "发起任务-"

// GenerateTaskName 按选中顺序拼接任务名，各条件描述用「、」连接
func GenerateTaskName(selected []Condition) string {
	name := taskNamePrefix
	for i, c := range selected {
		if i > 0 {
			name += "、"
		}
		name += describeCondition(c)
	}
	return name
}

// describeCondition 渲染单条条件的文案。
// 自定义范围与符号时间 token 渲染为日期区间，其余渲染选项显示名。
func describeCondition(c Condition) string {
	if start, end, ok := parseCustomRange(c.Value); ok {
		switch {
		case start != "" && end != "":
			return start + "至" + end
		case start != "":
			return "从" + start + "开始"
		case end != "":
			return "到" + end + "结束"
		default:
			return ""
		}
	}

	if c.Type.TimeBased() {
		if w, ok := ResolveTimeWindow(c.Value); ok {
			return w.Start + "至" + w.End
		}
	}

	return OptionLabel(c)
}
