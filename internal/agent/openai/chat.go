package openai

import (
	"context"
	"errors"

	"tuiassist/internal/agent"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
)

func (c *Client) chatRequest(prompt agent.Prompt) openai.ChatCompletionNewParams {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(prompt.Messages))
	for _, m := range prompt.Messages {
		switch m.Role {
		case agent.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case agent.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}
	return openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.modelFor(prompt)),
		Messages: msgs,
	}
}

func (c *Client) completeChat(ctx context.Context, prompt agent.Prompt) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, c.chatRequest(prompt))
	if err != nil {
		return "", wrapHTTPError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// streamChat 只转发第一个 choice 的文本增量。
func (c *Client) streamChat(ctx context.Context, prompt agent.Prompt, onEvent func(agent.StreamEvent)) error {
	stream := c.api.Chat.Completions.NewStreaming(ctx, c.chatRequest(prompt))
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if text := chunk.Choices[0].Delta.Content; text != "" {
			onEvent(agent.StreamEvent{Type: agent.StreamEventTextDelta, Text: text})
		}
	}
	if err := stream.Err(); err != nil {
		return wrapHTTPError(err)
	}
	onEvent(agent.StreamEvent{Type: agent.StreamEventCompleted})
	return nil
}
