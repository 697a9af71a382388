package utils

import (
	"encoding/json"

	"LeadDial/internal/model"
)

// 扁平化深度上限，目录层级不会这么深，超过视为数据异常
const maxTreeDepth = 32

// FlattenProducts 前序遍历产品树，label 为 " > " 连接的面包屑路径。
// value 取节点名而非 ID，与下拉选项的历史约定保持一致。
func FlattenProducts(nodes []*model.ProductNode) []model.ProductOption {
	if nodes == nil {
		return []model.ProductOption{}
	}
	return flattenProducts(nodes, "", 0)
}

func flattenProducts(nodes []*model.ProductNode, prefix string, depth int) []model.ProductOption {
	options := make([]model.ProductOption, 0, len(nodes))
	if depth >= maxTreeDepth {
		return options
	}

	for _, node := range nodes {
		if node == nil {
			continue
		}

		label := node.Name
		if prefix != "" {
			label = prefix + " > " + node.Name
		}
		options = append(options, model.ProductOption{
			Value: node.Name,
			Label: label,
		})

		if len(node.Children) > 0 {
			options = append(options, flattenProducts(node.Children, label, depth+1)...)
		}
	}
	return options
}

// DecodeProductNodes 解析上游目录响应，兼容裸数组与 {data: [...]} 两种包装。
// 非法输入返回空切片而不是错误，调用方按空目录降级。
func DecodeProductNodes(raw []byte) []*model.ProductNode {
	var nodes []*model.ProductNode
	if err := json.Unmarshal(raw, &nodes); err == nil {
		return nodes
	}

	var wrapped struct {
		Data []*model.ProductNode `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data
	}

	return []*model.ProductNode{}
}

// BuildProductTree 按 parent_id 组装树，保持 sort 与主键的原始顺序
func BuildProductTree(products []*model.Product) []*model.ProductNode {
	byParent := make(map[int64][]*model.Product, len(products))
	for _, p := range products {
		byParent[p.ParentID] = append(byParent[p.ParentID], p)
	}

	var build func(parentID int64, depth int) []*model.ProductNode
	build = func(parentID int64, depth int) []*model.ProductNode {
		if depth >= maxTreeDepth {
			return nil
		}
		children := byParent[parentID]
		nodes := make([]*model.ProductNode, 0, len(children))
		for _, c := range children {
			nodes = append(nodes, &model.ProductNode{
				ID:       c.ID,
				Name:     c.Name,
				Children: build(c.ID, depth+1),
			})
		}
		return nodes
	}
	return build(0, 0)
}
