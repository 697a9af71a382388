package filter

// BuildFilters 把选中的条件编译为线索查询参数。
// 未设值的条件跳过；visit_status 的 "scheduled" 取值不落任何过滤字段，
// 历史行为如此，保持原样。
func BuildFilters(selected []Condition) LeadFilters {
	var filters LeadFilters

	for _, c := range selected {
		if !c.Set() {
			continue
		}

		switch c.Type {
		case TypeCarModel:
			filters.LeadsProduct = c.Value
		case TypeCustomerLevel:
			filters.LeadsType = c.Value
		case TypeVisitStatus:
			switch c.Value {
			case "visited":
				one := 1
				filters.IsArrive = &one
			case "not_visited":
				zero := 0
				filters.IsArrive = &zero
			}
		case TypeLastFollowTime:
			start, end := resolveRange(c.Value)
			filters.LatestFollowStart = start
			filters.LatestFollowEnd = end
		case TypeFirstFollow:
			start, end := resolveRange(c.Value)
			filters.FirstFollowStart = start
			filters.FirstFollowEnd = end
		case TypeNextFollow:
			start, end := resolveRange(c.Value)
			filters.NextFollowStart = start
			filters.NextFollowEnd = end
		}
	}
	return filters
}

// resolveRange 统一处理时间条件取值，自定义范围优先于符号 token
func resolveRange(value string) (start, end string) {
	if s, e, ok := parseCustomRange(value); ok {
		return s, e
	}
	if w, ok := ResolveTimeWindow(value); ok {
		return w.Start, w.End
	}
	return "", ""
}
