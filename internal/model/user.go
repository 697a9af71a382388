package model

// AdminUser 后台账号，手机号验证码登录
type AdminUser struct {
	BaseModel
	PublicID       int64  `gorm:"uniqueIndex;not null" json:"public_id"`
	Phone          string `gorm:"uniqueIndex;type:varchar(16);not null" json:"phone"`
	Nickname       string `gorm:"type:varchar(64);not null;default:''" json:"nickname"`
	OrganizationID int64  `gorm:"not null;default:0;index:idx_admin_users_org" json:"organization_id"`
}

// TableName 指定表名
func (AdminUser) TableName() string {
	return "admin_users"
}
