package agent

import (
	"context"
	"strings"
	"testing"
)

func TestEchoClientStreamsWords(t *testing.T) {
	client := EchoClient{Prefix: "you said: "}
	var parts []string
	completed := 0
	err := client.Stream(context.Background(), NewPrompt("m", "sys", "what is a tui"), func(ev StreamEvent) {
		switch ev.Type {
		case StreamEventTextDelta:
			parts = append(parts, ev.Text)
		case StreamEventCompleted:
			completed++
		}
	})
	if err != nil {
		t.Fatalf("Stream() error: %v", err)
	}
	if completed != 1 {
		t.Fatalf("completed = %d, want 1", completed)
	}
	if got := strings.Join(parts, ""); got != "you said: what is a tui" {
		t.Fatalf("joined = %q", got)
	}
	if len(parts) != 6 {
		t.Fatalf("parts = %q, want 6 words", parts)
	}
}

func TestEchoClientRejectsEmptyPrompt(t *testing.T) {
	if _, err := (EchoClient{}).Complete(context.Background(), Prompt{}); err == nil {
		t.Fatalf("expected error for prompt without user message")
	}
}

func TestNewPromptAndSplitSystem(t *testing.T) {
	p := NewPrompt("m", "  be brief  ", "hi")
	if len(p.Messages) != 2 || p.Messages[0].Role != RoleSystem {
		t.Fatalf("unexpected messages: %#v", p.Messages)
	}
	system, convo := SplitSystem(p.Messages)
	if system != "be brief" {
		t.Fatalf("system = %q", system)
	}
	if len(convo) != 1 || convo[0].Content != "hi" {
		t.Fatalf("convo = %#v", convo)
	}

	noSystem := NewPrompt("m", "", "hi")
	if len(noSystem.Messages) != 1 {
		t.Fatalf("blank system should be omitted: %#v", noSystem.Messages)
	}
	if LastUserText(noSystem) != "hi" {
		t.Fatalf("LastUserText = %q", LastUserText(noSystem))
	}
}
