package filter

// ConditionType 筛选条件类型
type ConditionType string

const (
	TypeCarModel       ConditionType = "car_model"        // 意向车型
	TypeCustomerLevel  ConditionType = "customer_level"   // 客户等级
	TypeVisitStatus    ConditionType = "visit_status"     // 到店状态
	TypeLastFollowTime ConditionType = "last_follow_time" // 最近跟进时间
	TypeFirstFollow    ConditionType = "first_follow_time"
	TypeNextFollow     ConditionType = "next_follow_time"
)

// Valid 是否为已知条件类型
func (t ConditionType) Valid() bool {
	switch t {
	case TypeCarModel, TypeCustomerLevel, TypeVisitStatus,
		TypeLastFollowTime, TypeFirstFollow, TypeNextFollow:
		return true
	}
	return false
}

// TimeBased 时间区间类条件支持自定义范围
func (t ConditionType) TimeBased() bool {
	switch t {
	case TypeLastFollowTime, TypeFirstFollow, TypeNextFollow:
		return true
	}
	return false
}

// Option 条件下的可选项，Count 为该选项命中的线索数
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Condition 一条筛选条件。模板态 Value 为空，选中后赋值。
type Condition struct {
	ID        string        `json:"id"`
	Type      ConditionType `json:"type"`
	Label     string        `json:"label"`
	Value     string        `json:"value"`
	Options   []Option      `json:"options"`
	HasCustom bool          `json:"has_custom,omitempty"`
}

// Set 条件是否已选定取值
func (c Condition) Set() bool {
	return c.Value != ""
}

// LeadFilters 编译后的线索查询参数，字段为空表示不过滤
type LeadFilters struct {
	LeadsProduct      string `json:"leads_product,omitempty"`
	LeadsType         string `json:"leads_type,omitempty"`
	IsArrive          *int   `json:"is_arrive,omitempty"`
	LatestFollowStart string `json:"latest_follow_start,omitempty"`
	LatestFollowEnd   string `json:"latest_follow_end,omitempty"`
	FirstFollowStart  string `json:"first_follow_start,omitempty"`
	FirstFollowEnd    string `json:"first_follow_end,omitempty"`
	NextFollowStart   string `json:"next_follow_start,omitempty"`
	NextFollowEnd     string `json:"next_follow_end,omitempty"`
}

// Empty 没有任何生效的过滤字段
func (f LeadFilters) Empty() bool {
	return f == LeadFilters{}
}
