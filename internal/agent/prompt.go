package agent

import "strings"

// DefaultSystemPrompt 约束助手以纯文本回答，适合在终端逐字显示。
const DefaultSystemPrompt = "You are an expert assistant specializing in Terminal User Interface (TUI) development. " +
	"Provide concise, helpful, and technically accurate information. " +
	"Format your output using simple text, suitable for a terminal display. Do not use markdown."

// Prompt 代表一次模型调用的完整请求。
type Prompt struct {
	Model    string
	Messages []Message
}

// NewPrompt 由一行用户输入构造请求；system 为空时不发送系统消息。
func NewPrompt(model, system, userText string) Prompt {
	msgs := make([]Message, 0, 2)
	if s := strings.TrimSpace(system); s != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: s})
	}
	msgs = append(msgs, Message{Role: RoleUser, Content: userText})
	return Prompt{Model: model, Messages: msgs}
}

// SplitSystem 拆出系统指令与其余对话消息。
func SplitSystem(messages []Message) (string, []Message) {
	var instructions []string
	convo := make([]Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == RoleSystem {
			if text := strings.TrimSpace(msg.Content); text != "" {
				instructions = append(instructions, text)
			}
			continue
		}
		convo = append(convo, msg)
	}
	return strings.Join(instructions, "\n\n"), convo
}

// LastUserText 返回最后一条用户消息，日志与 echo 模式使用。
func LastUserText(p Prompt) string {
	for i := len(p.Messages) - 1; i >= 0; i-- {
		if p.Messages[i].Role == RoleUser {
			return p.Messages[i].Content
		}
	}
	return ""
}
