package voice

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// MockClient 可配置的外呼客户端 mock，实现 Client 接口。
// 开发环境默认使用，按被叫号码末位决定是否"接通"。
type MockClient struct {
	mu    sync.Mutex
	Calls []DialRequest

	// FailNext 置为 true 时，下一次调用返回 mock 错误并自动复位
	FailNext bool

	seq int
}

func NewMockClient() *MockClient {
	return &MockClient{
		Calls: make([]DialRequest, 0),
	}
}

func (m *MockClient) Dial(ctx context.Context, req DialRequest) (*DialResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if m.FailNext {
		m.FailNext = false
		return nil, errors.New("mock dial failure")
	}

	m.seq++

	connected := true
	duration := 45
	if n := len(req.Phone); n > 0 && req.Phone[n-1]%2 == 0 {
		connected = false
		duration = 0
	}

	return &DialResult{
		CallID:          fmt.Sprintf("mock-call-%d", m.seq),
		Connected:       connected,
		DurationSeconds: duration,
		Summary:         "mock dial",
	}, nil
}
