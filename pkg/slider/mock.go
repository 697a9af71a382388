package slider

import (
	"context"
	"fmt"
)

// MockClient 开发环境使用的 Mock 客户端，不进行真实的验证
type MockClient struct{}

// Verify 只要 captchaVerifyParam 不为空就认为验证通过
func (m *MockClient) Verify(ctx context.Context, captchaVerifyParam, sceneID string) (bool, error) {
	if captchaVerifyParam == "" {
		return false, fmt.Errorf("captchaVerifyParam is required")
	}

	return true, nil
}
