package sms

import (
	"context"
	"encoding/json"
	"fmt"

	"LeadDial/config"
)

// SendCaptchaSMS 发送登录验证码短信
func SendCaptchaSMS(ctx context.Context, phone, code string) error {
	cfg := config.Cfg

	templateParam := map[string]string{
		"code": code,
	}
	paramJSON, err := json.Marshal(templateParam)
	if err != nil {
		return fmt.Errorf("failed to marshal template param: %w", err)
	}

	return SendSingle(ctx, phone, cfg.SMSSignName, cfg.SMSTemplateCode, string(paramJSON))
}

// SendTaskCompleteSMS 外呼任务完成后通知任务创建人
// taskName: 任务名，total/connected: 拨打总数与接通数
func SendTaskCompleteSMS(ctx context.Context, phone, taskName string, total, connected int) error {
	cfg := config.Cfg
	if cfg.SMSNotifyCode == "" {
		return fmt.Errorf("SMS notify template not configured")
	}

	templateParam := map[string]string{
		"task":      taskName,
		"total":     fmt.Sprintf("%d", total),
		"connected": fmt.Sprintf("%d", connected),
	}
	paramJSON, err := json.Marshal(templateParam)
	if err != nil {
		return fmt.Errorf("failed to marshal template param: %w", err)
	}

	return SendSingle(ctx, phone, cfg.SMSSignName, cfg.SMSNotifyCode, string(paramJSON))
}
