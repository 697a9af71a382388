package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"LeadDial/internal/middleware"
	"LeadDial/internal/model"
	"LeadDial/internal/service"
	"LeadDial/pkg/errors"
)

// currentUser 从认证上下文解析当前管理员
func currentUser(ctx context.Context, c *app.RequestContext) (*model.AdminUser, error) {
	uid, ok := middleware.GetUserID(ctx, c)
	if !ok {
		return nil, &errors.Unauthorized
	}

	publicID, err := strconv.ParseInt(uid, 10, 64)
	if err != nil {
		return nil, &errors.InvalidUserID
	}

	return service.Auth().GetUserByPublicID(ctx, publicID)
}
