package dto

// ========== Lead 相关 DTO ==========

// LeadQuery 线索分页查询，筛选字段与条件编译器的输出一一对应
type LeadQuery struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`

	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Keyword string `json:"keyword,omitempty"`

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

// LeadInfo 线索基础信息
type LeadInfo struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Source        string `json:"source"`
	Product       string `json:"product"`
	LeadsType     string `json:"leads_type"`
	IsArrive      *int   `json:"is_arrive"`
	Follower      string `json:"follower"`
	Remark        string `json:"remark"`
	PlanVisitTime string `json:"plan_visit_time,omitempty"`
	CreateTime    string `json:"create_time"`
}

// LatestFollowInfo 最近一次跟进摘要
type LatestFollowInfo struct {
	FollowWay    string `json:"follow_way"`
	Content      string `json:"content"`
	FollowTime   string `json:"follow_time,omitempty"`
	NextFollowAt string `json:"next_follow_at,omitempty"`
}

// LeadWithLatestFollow 列表行，线索与最近跟进合并返回
type LeadWithLatestFollow struct {
	LeadInfo     LeadInfo          `json:"lead_info"`
	LatestFollow *LatestFollowInfo `json:"latest_follow,omitempty"`
}

// LeadListResponse 线索分页响应
type LeadListResponse struct {
	Items    []LeadWithLatestFollow `json:"items"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

// CreateLeadRequest 创建线索请求
type CreateLeadRequest struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	Source        string `json:"source"`
	Product       string `json:"product"`
	LeadsType     string `json:"leads_type"`
	Follower      string `json:"follower"`
	Remark        string `json:"remark"`
	PlanVisitTime string `json:"plan_visit_time"`
}

// CreateFollowRequest 创建跟进记录请求
type CreateFollowRequest struct {
	LeadID       int64  `json:"lead_id" binding:"required"`
	FollowWay    string `json:"follow_way" binding:"required"`
	Content      string `json:"content" binding:"required"`
	NextFollowAt string `json:"next_follow_at"`
	IsArrive     *int   `json:"is_arrive"`
}

// FollowItem 跟进记录项
type FollowItem struct {
	ID           int64  `json:"id"`
	FollowWay    string `json:"follow_way"`
	Content      string `json:"content"`
	NextFollowAt string `json:"next_follow_at,omitempty"`
	CreateName   string `json:"create_name"`
	CreateTime   string `json:"create_time"`
}

// FilteredCountRequest 筛选计数请求，字段与 LeadQuery 的筛选部分一致
type FilteredCountRequest struct {
	Generation int `json:"generation"` // 查询槽世代号，响应原样回传，客户端据此丢弃过期计数

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

// FilteredCountResponse 筛选计数响应
type FilteredCountResponse struct {
	Count      int64 `json:"count"`
	Generation int   `json:"generation"`
	Stale      bool  `json:"stale"` // 服务端世代已前进时为 true
}
