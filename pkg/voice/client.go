package voice

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"LeadDial/config"
	"LeadDial/pkg/logger"
)

// DialRequest 一次数字员工外呼
type DialRequest struct {
	Phone    string // 被叫号码
	TaskID   int64  // 所属外呼任务
	LeadID   int64  // 被叫线索
	ScriptID int64  // 绑定的话术脚本
	Opening  string // 开场白话术
}

// DialResult 外呼结果。接通与时长对 aliyun 供应商来说由回调补全，
// 发起成功时先返回 CallID。
type DialResult struct {
	CallID          string `json:"call_id"`
	Connected       bool   `json:"connected"`
	DurationSeconds int    `json:"duration_seconds"`
	Summary         string `json:"summary"`
}

// Client 外呼服务客户端接口
type Client interface {
	Dial(ctx context.Context, req DialRequest) (*DialResult, error)
}

var (
	voiceClient Client
	voiceOnce   sync.Once
	voiceErr    error
)

// Init 初始化外呼客户端
func Init() error {
	voiceOnce.Do(func() {
		cfg := config.Cfg

		switch cfg.VoiceProvider {
		case "aliyun":
			voiceClient, voiceErr = NewAliyunClient()
		case "mock":
			voiceClient = NewMockClient()
		default:
			voiceErr = fmt.Errorf("unsupported voice provider: %s", cfg.VoiceProvider)
		}

		if voiceErr != nil {
			logger.Logger.Error("Failed to initialize voice client", zap.Error(voiceErr))
			return
		}

		logger.Logger.Info("Voice client initialized",
			zap.String("provider", cfg.VoiceProvider),
		)
	})

	return voiceErr
}

func GetClient() Client {
	if voiceClient == nil {
		panic("Voice client not initialized, call voice.Init() first")
	}
	return voiceClient
}

func Dial(ctx context.Context, req DialRequest) (*DialResult, error) {
	return GetClient().Dial(ctx, req)
}
