package model

import "time"

// Lead 销售线索，手机号在组织内唯一
type Lead struct {
	BaseModel
	OrganizationID int64  `gorm:"not null;default:0;uniqueIndex:idx_leads_org_phone" json:"organization_id"`
	Name           string `gorm:"type:varchar(64);not null" json:"name"`
	Phone          string `gorm:"type:varchar(16);not null;uniqueIndex:idx_leads_org_phone" json:"phone"`
	Source         string `gorm:"type:varchar(64);not null;default:''" json:"source"`
	Product        string `gorm:"type:varchar(128);not null;default:'';index:idx_leads_product" json:"product"`
	LeadsType      string `gorm:"type:varchar(16);not null;default:'';index:idx_leads_type" json:"leads_type"` // 客户等级，H/A/B/C 级
	IsArrive       *int   `gorm:"type:smallint" json:"is_arrive"`                                              // 1 已到店 0 未到店，nil 未知
	Follower       string `gorm:"type:varchar(64);not null;default:''" json:"follower"`
	Remark         string `gorm:"type:text;not null;default:''" json:"remark"`

	// 跟进冗余列，写跟进记录时同步更新，供筛选与列表直接查询
	FirstFollowAt   *time.Time `gorm:"type:timestamptz;index:idx_leads_first_follow" json:"first_follow_at"`
	LatestFollowAt  *time.Time `gorm:"type:timestamptz;index:idx_leads_latest_follow" json:"latest_follow_at"`
	NextFollowAt    *time.Time `gorm:"type:timestamptz;index:idx_leads_next_follow" json:"next_follow_at"`
	LatestFollowWay string     `gorm:"type:varchar(32);not null;default:''" json:"latest_follow_way"`
	LatestFollowMsg string     `gorm:"type:text;not null;default:''" json:"latest_follow_msg"`
	PlanVisitTime   *time.Time `gorm:"type:timestamptz" json:"plan_visit_time"`
}

// TableName 指定表名
func (Lead) TableName() string {
	return "leads"
}

// FollowRecord 跟进记录，追加写
type FollowRecord struct {
	BaseModel
	LeadID       int64      `gorm:"not null;index:idx_follow_records_lead" json:"lead_id"`
	FollowWay    string     `gorm:"type:varchar(32);not null;default:''" json:"follow_way"` // phone / visit / wechat / ai_call
	Content      string     `gorm:"type:text;not null;default:''" json:"content"`
	NextFollowAt *time.Time `gorm:"type:timestamptz" json:"next_follow_at"`
	CreateName   string     `gorm:"type:varchar(64);not null;default:''" json:"create_name"`
}

// TableName 指定表名
func (FollowRecord) TableName() string {
	return "follow_records"
}
