package model

// Product 产品目录节点，parent_id=0 表示根节点
type Product struct {
	BaseModel
	Name     string `gorm:"type:varchar(128);not null" json:"name"`
	ParentID int64  `gorm:"not null;default:0;index:idx_products_parent" json:"parent_id"`
	Sort     int    `gorm:"not null;default:0" json:"sort"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ProductNode 树形结构，用于接口输出与扁平化
type ProductNode struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Children []*ProductNode `json:"children,omitempty"`
}

// ProductOption 扁平化后的下拉选项，label 为面包屑路径
type ProductOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
