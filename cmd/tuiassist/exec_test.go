package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TUIASSIST_PROVIDER", "TUIASSIST_MODEL", "TUIASSIST_LOG_LEVEL", "API_KEY",
		"OPENAI_API_KEY", "OPENAI_BASE_URL",
		"ANTHROPIC_BASE_URL", "ANTHROPIC_AUTH_TOKEN",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestExecStreamsEchoReply(t *testing.T) {
	clearProviderEnv(t)
	cfgPath := writeConfig(t, `provider = "echo"`)

	var stdout, stderr bytes.Buffer
	err := runExec(context.Background(), rootArgs{}, []string{"--config", cfgPath, "what", "is", "a", "tui"}, strings.NewReader(""), &stdout, &stderr)
	if err != nil {
		t.Fatalf("runExec: %v (stderr=%s)", err, stderr.String())
	}
	if got := stdout.String(); got != "echo: what is a tui\n" {
		t.Fatalf("stdout = %q", got)
	}
}

func TestExecReadsStdin(t *testing.T) {
	clearProviderEnv(t)
	cfgPath := writeConfig(t, `provider = "openai"`)

	var stdout, stderr bytes.Buffer
	err := runExec(context.Background(), rootArgs{overrides: []string{"provider=echo"}},
		[]string{"--config", cfgPath, "--prompt", "-"}, strings.NewReader("from stdin"), &stdout, &stderr)
	if err != nil {
		t.Fatalf("runExec: %v", err)
	}
	if got := stdout.String(); got != "echo: from stdin\n" {
		t.Fatalf("stdout = %q", got)
	}
}

func TestExecHelpDoesNotCallModel(t *testing.T) {
	clearProviderEnv(t)
	cfgPath := writeConfig(t, `provider = "echo"`)

	var stdout, stderr bytes.Buffer
	if err := runExec(context.Background(), rootArgs{}, []string{"--config", cfgPath, " HELP "}, nil, &stdout, &stderr); err != nil {
		t.Fatalf("runExec: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "Available commands:") {
		t.Fatalf("stdout = %q", stdout.String())
	}
	if strings.Contains(stdout.String(), "echo:") {
		t.Fatalf("help must not reach the model: %q", stdout.String())
	}
}

func TestExecRequiresPrompt(t *testing.T) {
	clearProviderEnv(t)
	cfgPath := writeConfig(t, `provider = "echo"`)
	var stdout, stderr bytes.Buffer
	if err := runExec(context.Background(), rootArgs{}, []string{"--config", cfgPath}, nil, &stdout, &stderr); err == nil {
		t.Fatalf("expected error without prompt")
	}
}

func TestExecReportsStreamFailure(t *testing.T) {
	clearProviderEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"bad request","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()
	cfgPath := writeConfig(t, fmt.Sprintf("provider = \"openai\"\nurl = %q\ntoken = \"k\"\n", srv.URL))

	var stdout, stderr bytes.Buffer
	err := runExec(context.Background(), rootArgs{}, []string{"--config", cfgPath, "hello"}, nil, &stdout, &stderr)
	if err == nil || !strings.HasPrefix(err.Error(), "http_400") {
		t.Fatalf("err = %v", err)
	}
	if got := stderr.String(); !strings.Contains(got, "An error occurred while communicating with the AI.") {
		t.Fatalf("stderr = %q", got)
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout = %q", stdout.String())
	}
}
