package dto

// ========== Auth 相关 DTO ==========

// SendCaptchaRequest 发送验证码请求
type SendCaptchaRequest struct {
	Phone              string `json:"phone" binding:"required"`
	CaptchaVerifyParam string `json:"captcha_verify_param,omitempty"` // 触发滑块后客户端回传的校验参数
}

// SendCaptchaResponse 发送验证码响应
type SendCaptchaResponse struct {
	SliderRequired bool `json:"slider_required"`
	RetryAfter     int  `json:"retry_after,omitempty"`
}

// SliderVerifyRequest 滑块验证请求
type SliderVerifyRequest struct {
	CaptchaVerifyParam string `json:"captcha_verify_param" binding:"required"`
}

// LoginRequest 手机号验证码登录请求
type LoginRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserSnapshot `json:"user"`
}

// UserSnapshot 登录时的用户快照
type UserSnapshot struct {
	ID             string `json:"id"`
	Phone          string `json:"phone"`
	Nickname       string `json:"nickname"`
	OrganizationID int64  `json:"organization_id"`
}

// RefreshTokenRequest 刷新令牌请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
