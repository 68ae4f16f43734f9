package agent

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrMissingToken 表示联网 provider 缺少凭据，启动即失败。
	ErrMissingToken = errors.New("missing api token")
	// ErrUnknownProvider 表示配置了不支持的 provider。
	ErrUnknownProvider = errors.New("unknown provider")
)

type StreamEventType int

const (
	StreamEventTextDelta StreamEventType = iota + 1
	StreamEventCompleted
)

// StreamEvent 是流式响应中的一个事件；TextDelta 携带一个文本片段。
type StreamEvent struct {
	Type StreamEventType
	Text string
}

// ModelClient 定义模型客户端接口。
// Stream 按顺序回调片段，返回后不再回调；中途失败时已回调的片段仍然有效。
type ModelClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
	Stream(ctx context.Context, prompt Prompt, onEvent func(StreamEvent)) error
}

// EchoClient 是离线 provider，把用户输入逐词回放。
type EchoClient struct {
	Prefix string
}

var _ ModelClient = EchoClient{}

func (c EchoClient) Complete(_ context.Context, prompt Prompt) (string, error) {
	text := LastUserText(prompt)
	if text == "" {
		return "", errors.New("no user message to echo")
	}
	return c.Prefix + text, nil
}

func (c EchoClient) Stream(ctx context.Context, prompt Prompt, onEvent func(StreamEvent)) error {
	text, err := c.Complete(ctx, prompt)
	if err != nil {
		return err
	}
	for _, word := range splitKeepSpaces(text) {
		if err := ctx.Err(); err != nil {
			return err
		}
		onEvent(StreamEvent{Type: StreamEventTextDelta, Text: word})
	}
	onEvent(StreamEvent{Type: StreamEventCompleted})
	return nil
}

// splitKeepSpaces 按词切分，保留词后的空白，拼接后与原文一致。
func splitKeepSpaces(text string) []string {
	var out []string
	var sb strings.Builder
	inSpace := false
	for _, r := range text {
		isSpace := r == ' ' || r == '\t' || r == '\n'
		if inSpace && !isSpace && sb.Len() > 0 {
			out = append(out, sb.String())
			sb.Reset()
		}
		sb.WriteRune(r)
		inSpace = isSpace
	}
	if sb.Len() > 0 {
		out = append(out, sb.String())
	}
	return out
}
