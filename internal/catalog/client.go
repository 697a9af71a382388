package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"LeadDial/config"
	"LeadDial/internal/model"
	"LeadDial/utils"
)

// Client 拉取上游产品目录。上游返回格式不稳定，
// 裸数组与 {data: [...]} 包装都要兼容。
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 按配置构造目录客户端
func NewClient() *Client {
	timeout := time.Duration(config.Cfg.CatalogFetchTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: config.Cfg.CatalogBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Enabled 未配置上游地址时目录同步整体关闭
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// FetchTree 拉取整棵产品树
func (c *Client) FetchTree(ctx context.Context) ([]*model.ProductNode, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("catalog base URL is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products/tree", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	return utils.DecodeProductNodes(body), nil
}
