package filter

import (
	"strings"
)

const customPrefix = "custom:"

// Available 从模板池剔除已选类型。一个类型同时只允许一条条件，
// 约束落在候选池计算上而不是编译器里。
func Available(selected []Condition) []Condition {
	used := make(map[ConditionType]struct{}, len(selected))
	for _, c := range selected {
		used[c.Type] = struct{}{}
	}

	available := make([]Condition, 0)
	for _, tpl := range Catalog() {
		if _, ok := used[tpl.Type]; !ok {
			available = append(available, tpl)
		}
	}
	return available
}

// ResetCounts 将所有选项计数清零。
// 选中集合变化后旧计数全部失效，下次打开对应条件时再按需刷新。
func ResetCounts(conditions []Condition) []Condition {
	for i := range conditions {
		for j := range conditions[i].Options {
			conditions[i].Options[j].Count = 0
		}
	}
	return conditions
}

// EncodeCustomRange 编码自定义时间范围，两端可为空
func EncodeCustomRange(start, end string) string {
	return customPrefix + start + "_" + end
}

// IsCustomValue 取值是否为自定义范围
func IsCustomValue(value string) bool {
	return strings.HasPrefix(value, customPrefix)
}

// parseCustomRange 解析 "custom:<start>_<end>"，分隔符缺失时视为只有起点
func parseCustomRange(value string) (start, end string, ok bool) {
	if !strings.HasPrefix(value, customPrefix) {
		return "", "", false
	}
	body := strings.TrimPrefix(value, customPrefix)
	idx := strings.Index(body, "_")
	if idx < 0 {
		return body, "", true
	}
	return body[:idx], body[idx+1:], true
}

// OptionLabel 取条件当前取值对应的显示文案，找不到时回退为取值本身
func OptionLabel(c Condition) string {
	for _, opt := range c.Options {
		if opt.Value == c.Value {
			return opt.Label
		}
	}
	return c.Value
}
