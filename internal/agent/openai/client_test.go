package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tuiassist/internal/agent"
)

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"https://api.example.com", "https://api.example.com/v1"},
		{"https://api.example.com/", "https://api.example.com/v1"},
		{"https://api.example.com/v1", "https://api.example.com/v1"},
		{"https://api.example.com/v1/", "https://api.example.com/v1"},
		{"https://api.example.com/v1/v1", "https://api.example.com/v1"},
		{"https://api.example.com/v1/chat/completions", "https://api.example.com/v1"},
		{"https://api.example.com/proxy/responses", "https://api.example.com/proxy/v1"},
	}
	for _, tc := range cases {
		if got := normalizeBaseURL(tc.in); got != tc.want {
			t.Fatalf("normalizeBaseURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Options{Model: "gpt-4o-mini"})
	if !errors.Is(err, agent.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func chatChunk(content string) string {
	return fmt.Sprintf(`{"id":"c1","object":"chat.completion.chunk","created":1,"model":"m","choices":[{"index":0,"delta":{"content":%q},"finish_reason":null}]}`, content)
}

func TestStreamChatEmitsDeltas(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("Content-Type", "text/event-stream")
		for _, part := range []string{"Hel", "lo"} {
			fmt.Fprintf(w, "data: %s\n\n", chatChunk(part))
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	client, err := New(Options{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var deltas []string
	var completed bool
	err = client.Stream(context.Background(), agent.NewPrompt("", "be brief", "hi"), func(ev agent.StreamEvent) {
		switch ev.Type {
		case agent.StreamEventTextDelta:
			deltas = append(deltas, ev.Text)
		case agent.StreamEventCompleted:
			completed = true
		}
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if strings.Join(deltas, "") != "Hello" || len(deltas) != 2 {
		t.Fatalf("deltas = %#v", deltas)
	}
	if !completed {
		t.Fatalf("expected completed event")
	}
	if gotPath != "/v1/chat/completions" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if !strings.Contains(gotBody, `"gpt-test"`) || !strings.Contains(gotBody, "be brief") {
		t.Fatalf("request body missing model or system prompt: %s", gotBody)
	}
}

func TestStreamChatWrapsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"message":"model not found","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	client, err := New(Options{APIKey: "sk-test", BaseURL: srv.URL, Model: "missing"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var deltas int
	err = client.Stream(context.Background(), agent.NewPrompt("", "", "hi"), func(ev agent.StreamEvent) {
		if ev.Type == agent.StreamEventTextDelta {
			deltas++
		}
	})
	if err == nil || !strings.HasPrefix(err.Error(), "http_404") {
		t.Fatalf("expected http_404 error, got %v", err)
	}
	if deltas != 0 {
		t.Fatalf("no deltas expected on failure, got %d", deltas)
	}
}

func TestCheckReachable(t *testing.T) {
	if err := CheckReachable(context.Background(), ""); err != nil {
		t.Fatalf("empty base url should pass: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	defer ln.Close()
	if err := CheckReachable(context.Background(), "http://"+addr); err != nil {
		t.Fatalf("expected reachable, got %v", err)
	}

	if err := CheckReachable(context.Background(), "ftp://example.com"); err == nil {
		t.Fatalf("expected unsupported scheme error")
	}
}

func TestNewRejectsUnknownWire(t *testing.T) {
	if _, err := New(Options{APIKey: "k", WireAPI: "grpc"}); err == nil {
		t.Fatalf("expected error for unknown wire_api")
	}
	c, err := New(Options{APIKey: "k", WireAPI: " Responses "})
	if err != nil || c.wire != WireResponses {
		t.Fatalf("wire = %v, err = %v", c, err)
	}
}

func TestStreamResponsesEmitsDeltas(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("Content-Type", "text/event-stream")
		for i, part := range []string{"Par", "ts"} {
			fmt.Fprintf(w, "event: response.output_text.delta\ndata: {\"type\":\"response.output_text.delta\",\"item_id\":\"msg_1\",\"output_index\":0,\"content_index\":0,\"delta\":%q,\"sequence_number\":%d}\n\n", part, i+1)
		}
		fmt.Fprint(w, "event: response.output_text.done\ndata: {\"type\":\"response.output_text.done\",\"item_id\":\"msg_1\",\"output_index\":0,\"content_index\":0,\"text\":\"Parts\",\"sequence_number\":3}\n\n")
		fmt.Fprint(w, "event: response.completed\ndata: {\"type\":\"response.completed\",\"sequence_number\":4,\"response\":{\"id\":\"resp_1\",\"object\":\"response\",\"status\":\"completed\",\"output\":[]}}\n\n")
	}))
	defer srv.Close()

	client, err := New(Options{APIKey: "k", BaseURL: srv.URL + "/v1/responses", Model: "gpt-test", WireAPI: WireResponses})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var deltas []string
	completed := 0
	err = client.Stream(context.Background(), agent.NewPrompt("", "be brief", "hi"), func(ev agent.StreamEvent) {
		switch ev.Type {
		case agent.StreamEventTextDelta:
			deltas = append(deltas, ev.Text)
		case agent.StreamEventCompleted:
			completed++
		}
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if strings.Join(deltas, "") != "Parts" || completed != 1 {
		t.Fatalf("deltas = %#v completed = %d", deltas, completed)
	}
	if gotPath != "/v1/responses" {
		t.Fatalf("path = %q", gotPath)
	}
	if !strings.Contains(gotBody, `"instructions":"be brief"`) {
		t.Fatalf("system prompt should go to instructions: %s", gotBody)
	}
}
