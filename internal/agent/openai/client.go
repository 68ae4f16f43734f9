// Package openai 把 OpenAI 兼容端点接成 agent.ModelClient，支持 chat 与 responses 两种线协议。
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tuiassist/internal/agent"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	WireChat      = "chat"
	WireResponses = "responses"
)

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	// WireAPI 为空时使用 chat completions。
	WireAPI string
}

type Client struct {
	api   *openai.Client
	model string
	wire  string
}

var _ agent.ModelClient = (*Client)(nil)

func New(opts Options) (*Client, error) {
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		return nil, fmt.Errorf("openai: %w", agent.ErrMissingToken)
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(key)}
	if base := normalizeBaseURL(opts.BaseURL); base != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(base))
	}
	api := openai.NewClient(reqOpts...)

	wire := strings.ToLower(strings.TrimSpace(opts.WireAPI))
	switch wire {
	case "", WireChat:
		wire = WireChat
	case WireResponses:
	default:
		return nil, fmt.Errorf("openai: unsupported wire_api %q", opts.WireAPI)
	}
	return &Client{api: &api, model: strings.TrimSpace(opts.Model), wire: wire}, nil
}

// modelFor 优先使用 prompt 自带的模型名。
func (c *Client) modelFor(prompt agent.Prompt) string {
	if m := strings.TrimSpace(prompt.Model); m != "" {
		return m
	}
	return c.model
}

func (c *Client) Complete(ctx context.Context, prompt agent.Prompt) (string, error) {
	if c.wire == WireResponses {
		return c.completeResponses(ctx, prompt)
	}
	return c.completeChat(ctx, prompt)
}

func (c *Client) Stream(ctx context.Context, prompt agent.Prompt, onEvent func(agent.StreamEvent)) error {
	if c.wire == WireResponses {
		return c.streamResponses(ctx, prompt, onEvent)
	}
	return c.streamChat(ctx, prompt, onEvent)
}

// wrapHTTPError 把 SDK 的 HTTP 错误统一成 http_<status> 前缀，便于日志检索。
func wrapHTTPError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) || apiErr == nil {
		return err
	}
	if body := strings.TrimSpace(apiErr.RawJSON()); body != "" {
		return fmt.Errorf("http_%d: %s", apiErr.StatusCode, body)
	}
	return fmt.Errorf("http_%d: %w", apiErr.StatusCode, err)
}
