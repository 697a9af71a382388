package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"LeadDial/internal/service"
	"LeadDial/pkg/response"
)

// ProductTree 查询意向车型树
// GET /api/products/tree
func ProductTree(ctx context.Context, c *app.RequestContext) {
	tree, err := service.Product().Tree(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"items": tree,
	})
}

// ProductOptions 查询拍平后的车型选项，面包屑格式
// GET /api/products/options
func ProductOptions(ctx context.Context, c *app.RequestContext) {
	options, err := service.Product().Options(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"items": options,
	})
}
