// Package reviewclient 交易复盘服务的 HTTP 客户端
package reviewclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout 默认请求超时
const DefaultTimeout = 10 * time.Second

// TradeReviewRequest 复盘请求
type TradeReviewRequest struct {
	Symbol      string  `json:"symbol"`
	Side        string  `json:"side"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
	UserThought string  `json:"user_thought"`
}

// ReviewResponse 复盘响应
type ReviewResponse struct {
	Review    string `json:"review"`
	Timestamp string `json:"timestamp"`
}

// APIError 服务端返回非 2xx 状态
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("review service returned HTTP %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Client 复盘服务客户端
type Client struct {
	client *resty.Client
}

// Option 客户端配置项
type Option func(*resty.Client)

// WithTimeout 设置请求超时
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		c.SetTimeout(d)
	}
}

// WithHeader 设置默认请求头
func WithHeader(key, value string) Option {
	return func(c *resty.Client) {
		c.SetHeader(key, value)
	}
}

// New 创建客户端，baseURL 形如 http://localhost:8000
func New(baseURL string, opts ...Option) *Client {
	c := resty.New()
	c.SetBaseURL(strings.TrimRight(baseURL, "/"))
	c.SetTimeout(DefaultTimeout)
	c.SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(c)
	}
	return &Client{client: c}
}

// GenerateReview 调用 POST /api/review
func (c *Client) GenerateReview(ctx context.Context, req TradeReviewRequest) (*ReviewResponse, error) {
	var out ReviewResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post("/api/review")
	if err != nil {
		return nil, fmt.Errorf("failed to request review for %s: %w", req.Symbol, err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return &out, nil
}

// Ping 调用 GET / 并返回问候语
func (c *Client) Ping(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/")
	if err != nil {
		return "", fmt.Errorf("failed to ping review service: %w", err)
	}
	if resp.IsError() {
		return "", &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return out.Message, nil
}
