package response

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"LeadDial/pkg/errors"
)

// 管理台约定的响应信封：
//   成功   {"status": "ok", "data": ...}
//   失败   {"status": "error", "code": ..., "message": ...}
//   重复   {"status": "duplicate", "message": ..., "data": {"id": ...}}
// 前端对 status 做分支，malformed 信封会退化为通用失败提示。

type Envelope struct {
	Status  string      `json:"status"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

func errorToHTTPStatus(err error) int {
	def, ok := asDefinition(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch def.Code {
	case "CAPTCHA_RATE_LIMITED", "VERIFICATION_SLIDER_REQUIRED", "TOO_MANY_REQUESTS":
		return http.StatusTooManyRequests
	case "UNAUTHORIZED":
		return http.StatusUnauthorized
	case "LEAD_NOT_FOUND", "TASK_NOT_FOUND", "SCENE_NOT_FOUND", "WIZARD_SESSION_NOT_FOUND":
		return http.StatusNotFound
	case "SCENE_READ_ONLY":
		return http.StatusForbidden
	case "VERIFICATION_CODE_EXPIRED", "VERIFICATION_CODE_INVALID",
		"VERIFICATION_SLIDER_FAILED", "INVALID_REQUEST", "INVALID_PHONE",
		"INVALID_USER_ID", "INVALID_PRODUCT",
		"CONDITION_TYPE_USED", "CONDITION_TYPE_UNKNOWN",
		"TIME_TOKEN_INVALID", "CUSTOM_RANGE_EMPTY",
		"TASK_STATE_INVALID", "TASK_NO_LEADS_MATCHED", "TASK_SCRIPT_MISSING",
		"TASK_ALREADY_STARTED", "SCENE_INCOMPLETE", "SCENE_TAG_REQUIRED",
		"WIZARD_EVENT_INVALID", "WIZARD_KIND_UNKNOWN", "OPTION_VALUE_INVALID":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Success 返回成功响应
func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Status: "ok",
		Data:   data,
	})
}

// SuccessWithMeta 返回带分页等元信息的成功响应
func SuccessWithMeta(ctx context.Context, c *app.RequestContext, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Status: "ok",
		Data:   data,
		Meta:   meta,
	})
}

func asDefinition(err error) (errors.Definition, bool) {
	switch def := err.(type) {
	case errors.Definition:
		return def, true
	case *errors.Definition:
		return *def, true
	}
	return errors.Definition{}, false
}

// Error 返回错误响应
func Error(ctx context.Context, c *app.RequestContext, err error) {
	statusCode := errorToHTTPStatus(err)

	var code, message string
	if def, ok := asDefinition(err); ok {
		code = def.Code
		message = def.Message
	} else {
		code = "INTERNAL_ERROR"
		message = err.Error()
	}

	c.JSON(statusCode, Envelope{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails 返回带附加字段的错误响应，panic 恢复等场景用
func ErrorWithDetails(ctx context.Context, c *app.RequestContext, err error, details map[string]interface{}) {
	statusCode := errorToHTTPStatus(err)

	var code, message string
	if def, ok := asDefinition(err); ok {
		code = def.Code
		message = def.Message
	} else {
		code = "INTERNAL_ERROR"
		message = err.Error()
	}

	c.JSON(statusCode, Envelope{
		Status:  "error",
		Code:    code,
		Message: message,
		Data:    details,
	})
}

// Duplicate 返回重复记录响应，data 携带已存在记录的定位信息。
func Duplicate(ctx context.Context, c *app.RequestContext, message string, data interface{}) {
	c.JSON(http.StatusConflict, Envelope{
		Status:  "duplicate",
		Message: message,
		Data:    data,
	})
}

// BindError 参数绑定失败响应
func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, Envelope{
		Status:  "error",
		Code:    "INVALID_REQUEST",
		Message: err.Error(),
	})
}

// NoContent 返回 204 No Content（用于 DELETE 等操作）
func NoContent(ctx context.Context, c *app.RequestContext) {
	c.Status(http.StatusNoContent)
}
