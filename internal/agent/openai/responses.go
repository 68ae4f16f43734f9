package openai

import (
	"context"
	"errors"
	"strings"

	"tuiassist/internal/agent"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
)

// responsesRequest 把 system 消息放进 Instructions，其余按顺序作为输入条目。
func (c *Client) responsesRequest(prompt agent.Prompt) responses.ResponseNewParams {
	system, convo := agent.SplitSystem(prompt.Messages)
	params := responses.ResponseNewParams{Model: shared.ResponsesModel(c.modelFor(prompt))}
	if system != "" {
		params.Instructions = openai.String(system)
	}
	if len(convo) == 0 {
		return params
	}
	items := make(responses.ResponseInputParam, 0, len(convo))
	for _, m := range convo {
		role := responses.EasyInputMessageRoleUser
		if m.Role == agent.RoleAssistant {
			role = responses.EasyInputMessageRoleAssistant
		}
		items = append(items, responses.ResponseInputItemParamOfMessage(m.Content, role))
	}
	params.Input.OfInputItemList = items
	return params
}

func (c *Client) completeResponses(ctx context.Context, prompt agent.Prompt) (string, error) {
	resp, err := c.api.Responses.New(ctx, c.responsesRequest(prompt))
	if err != nil {
		return "", wrapHTTPError(err)
	}
	if resp.Error.JSON.Message.Valid() && resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}
	if text := responseText(resp); text != "" {
		return text, nil
	}
	return "", errors.New("responses api returned no text")
}

func (c *Client) streamResponses(ctx context.Context, prompt agent.Prompt, onEvent func(agent.StreamEvent)) error {
	stream := c.api.Responses.NewStreaming(ctx, c.responsesRequest(prompt))
	defer stream.Close()

	emitted := false
	emit := func(text string) {
		if text == "" {
			return
		}
		emitted = true
		onEvent(agent.StreamEvent{Type: agent.StreamEventTextDelta, Text: text})
	}
	for stream.Next() {
		switch ev := stream.Current().AsAny().(type) {
		case responses.ResponseTextDeltaEvent:
			emit(ev.Delta)
		case responses.ResponseTextDoneEvent:
			// 有的兼容端点只发 done，不发增量。
			if !emitted {
				emit(ev.Text)
			}
		case responses.ResponseErrorEvent:
			return errors.New(ev.Message)
		case responses.ResponseFailedEvent:
			if msg := ev.Response.Error.Message; msg != "" {
				return errors.New(msg)
			}
			return errors.New("response failed")
		case responses.ResponseCompletedEvent:
			onEvent(agent.StreamEvent{Type: agent.StreamEventCompleted})
			return nil
		}
	}
	if err := stream.Err(); err != nil {
		return wrapHTTPError(err)
	}
	onEvent(agent.StreamEvent{Type: agent.StreamEventCompleted})
	return nil
}

func responseText(resp *responses.Response) string {
	if resp == nil {
		return ""
	}
	if text := strings.TrimSpace(resp.OutputText()); text != "" {
		return text
	}
	var sb strings.Builder
	for _, item := range resp.Output {
		for _, part := range item.Content {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
