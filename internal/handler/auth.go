package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"LeadDial/config"
	"LeadDial/internal/model/dto"
	"LeadDial/internal/service"
	apperrors "LeadDial/pkg/errors"
	"LeadDial/pkg/response"
	"LeadDial/pkg/slider"
)

// SendCaptcha 发送登录验证码
// POST /api/auth/phone/send-captcha
func SendCaptcha(ctx context.Context, c *app.RequestContext) {
	var req dto.SendCaptchaRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Auth().SendCaptcha(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// Login 验证码登录，首次登录自动建号
// POST /api/auth/phone/verify
func Login(ctx context.Context, c *app.RequestContext) {
	var req dto.LoginRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Auth().Login(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// VerifySlider 校验滑块验证结果，通过后客户端再次请求验证码
// POST /api/auth/phone/verify-slider
func VerifySlider(ctx context.Context, c *app.RequestContext) {
	var req dto.SliderVerifyRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	passed, err := slider.Verify(ctx, req.CaptchaVerifyParam, config.Cfg.CaptchaSceneID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	if !passed {
		response.Error(ctx, c, apperrors.VerificationSliderFailed)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"passed": true,
	})
}

// RefreshToken 刷新访问令牌
// POST /api/auth/token/refresh
func RefreshToken(ctx context.Context, c *app.RequestContext) {
	var req dto.RefreshTokenRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Auth().Refresh(ctx, req.RefreshToken)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetProfile 查询当前登录用户
// GET /api/auth/profile
func GetProfile(ctx context.Context, c *app.RequestContext) {
	user, err := currentUser(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.UserSnapshot{
		ID:             strconv.FormatInt(user.PublicID, 10),
		Phone:          user.Phone,
		Nickname:       user.Nickname,
		OrganizationID: user.OrganizationID,
	})
}
