package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	openapiutil "github.com/alibabacloud-go/openapi-util/service"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	credential "github.com/aliyun/credentials-go/credentials"
	"go.uber.org/zap"

	"LeadDial/config"
	"LeadDial/pkg/logger"
)

type AliyunClient struct {
	client *openapi.Client
}

// NewAliyunClient 创建阿里云语音服务客户端（智能外呼）
func NewAliyunClient() (*AliyunClient, error) {
	cred, err := credential.NewCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create aliyun credential: %w", err)
	}

	openapiConfig := &openapi.Config{
		Credential: cred,
		Endpoint:   tea.String("dyvmsapi.aliyuncs.com"),
	}

	client, err := openapi.NewClient(openapiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create aliyun voice client: %w", err)
	}

	return &AliyunClient{
		client: client,
	}, nil
}

func (c *AliyunClient) createApiInfo(action string) *openapi.Params {
	return &openapi.Params{
		Action:      tea.String(action),
		Version:     tea.String("2017-05-25"),
		Protocol:    tea.String("HTTPS"),
		Method:      tea.String("POST"),
		AuthType:    tea.String("AK"),
		Style:       tea.String("RPC"),
		Pathname:    tea.String("/"),
		ReqBodyType: tea.String("json"),
		BodyType:    tea.String("json"),
	}
}

// Dial 发起一次智能外呼。接通状态与时长由供应商回调补全，这里只拿 CallId。
func (c *AliyunClient) Dial(ctx context.Context, req DialRequest) (*DialResult, error) {
	cfg := config.Cfg

	params := c.createApiInfo("SmartCall")

	queries := map[string]interface{}{
		"CalledNumber":     tea.String(req.Phone),
		"CalledShowNumber": tea.String(cfg.VoiceCalledShow),
		"VoiceCode":        tea.String(strconv.FormatInt(req.ScriptID, 10)),
		"VoiceCodeParam":   tea.String(req.Opening),
		"TtsSpeed":         tea.Int(cfg.VoiceTTSSpeed),
		"OutId":            tea.String(strconv.FormatInt(req.TaskID, 10)),
	}

	runtime := &util.RuntimeOptions{}
	request := &openapi.OpenApiRequest{
		Query: openapiutil.Query(queries),
	}

	resp, err := c.client.CallApi(params, request, runtime)
	if err != nil {
		logger.Logger.Error("Failed to dial",
			zap.String("phone", req.Phone),
			zap.Int64("task_id", req.TaskID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to dial: %w", err)
	}

	result := &DialResult{}

	if resp["body"] != nil {
		bodyBytes, _ := json.Marshal(resp["body"])
		var bodyMap map[string]interface{}
		if err := json.Unmarshal(bodyBytes, &bodyMap); err == nil {
			if code, ok := bodyMap["Code"].(string); ok && code != "OK" {
				message := ""
				if msg, ok := bodyMap["Message"].(string); ok {
					message = msg
				}
				logger.Logger.Error("Dial rejected by provider",
					zap.String("code", code),
					zap.String("message", message),
				)
				return nil, fmt.Errorf("dial rejected: %s - %s", code, message)
			}
			if callID, ok := bodyMap["CallId"].(string); ok {
				result.CallID = callID
			}
		}
	}

	logger.Logger.Info("Dial initiated",
		zap.String("phone", req.Phone),
		zap.Int64("task_id", req.TaskID),
		zap.String("call_id", result.CallID),
	)

	return result, nil
}
