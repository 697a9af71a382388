package filter

// 时间类条件共用的符号选项，custom 由调用方单独走日期子表单
var timeOptions = []Option{
	{Value: "today", Label: "今天"},
	{Value: "yesterday", Label: "昨天"},
	{Value: "this_week", Label: "本周"},
	{Value: "last_week", Label: "上周"},
	{Value: "this_month", Label: "本月"},
	{Value: "last_month", Label: "上月"},
}

// Catalog 返回全部条件模板的副本，车型选项由产品目录运行时填充
func Catalog() []Condition {
	templates := []Condition{
		{
			ID:      "car_model",
			Type:    TypeCarModel,
			Label:   "意向车型",
			Options: []Option{},
		},
		{
			ID:    "customer_level",
			Type:  TypeCustomerLevel,
			Label: "客户等级",
			Options: []Option{
				{Value: "H级", Label: "H级"},
				{Value: "A级", Label: "A级"},
				{Value: "B级", Label: "B级"},
				{Value: "C级", Label: "C级"},
			},
		},
		{
			ID:    "visit_status",
			Type:  TypeVisitStatus,
			Label: "到店状态",
			Options: []Option{
				{Value: "visited", Label: "已到店"},
				{Value: "not_visited", Label: "未到店"},
				{Value: "scheduled", Label: "已预约"},
			},
		},
		{
			ID:        "last_follow_time",
			Type:      TypeLastFollowTime,
			Label:     "最近跟进时间",
			HasCustom: true,
		},
		{
			ID:        "first_follow_time",
			Type:      TypeFirstFollow,
			Label:     "首次跟进时间",
			HasCustom: true,
		},
		{
			ID:        "next_follow_time",
			Type:      TypeNextFollow,
			Label:     "下次跟进时间",
			HasCustom: true,
		},
	}

	for i := range templates {
		if templates[i].HasCustom {
			templates[i].Options = cloneOptions(timeOptions)
		}
	}
	return templates
}

// TemplateByType 按类型取模板副本
func TemplateByType(t ConditionType) (Condition, bool) {
	for _, tpl := range Catalog() {
		if tpl.Type == t {
			return tpl, true
		}
	}
	return Condition{}, false
}

func cloneOptions(options []Option) []Option {
	cloned := make([]Option, len(options))
	copy(cloned, options)
	return cloned
}
