package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"tuiassist/internal/agent"
	openaimodel "tuiassist/internal/agent/openai"
	"tuiassist/internal/config"
	"tuiassist/internal/logger"
)

func pingMain(root rootArgs, args []string) {
	if err := runPing(root, args, os.Stdout); err != nil {
		logger.Fatalf("ping failed: %v", err)
	}
}

// runPing 先探测端点是否可连，再发一次非流式请求确认凭据可用。
func runPing(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("ping", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var cfgPath string
	var providerOverride string
	var modelOverride string
	var baseURLOverride string
	var apiKeyOverride string
	var timeoutSeconds int

	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.tuiassist/config.toml)")
	fs.StringVar(&providerOverride, "provider", "", "Provider name (default from config)")
	fs.StringVar(&modelOverride, "model", "", "Model name (default from config)")
	fs.StringVar(&baseURLOverride, "base-url", "", "Override base URL (trailing /v1 is ok)")
	fs.StringVar(&apiKeyOverride, "api-key", "", "Override API key (prefer config.toml)")
	fs.IntVar(&timeoutSeconds, "timeout", 30, "Timeout seconds")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadFor(cfgPath, settledProvider(root.overrides, providerOverride))
	if err != nil {
		return err
	}
	cfg, err = config.ApplyKVOverrides(cfg, prependOverrides(root.overrides, nil))
	if err != nil {
		log.Warnf("config overrides: %v", err)
	}
	if v := strings.TrimSpace(providerOverride); v != "" {
		cfg.Provider = config.NormalizeProvider(v)
	}
	if v := strings.TrimSpace(modelOverride); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(baseURLOverride); v != "" {
		cfg.URL = v
	}
	if v := strings.TrimSpace(apiKeyOverride); v != "" {
		cfg.Token = v
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	if cfg.Provider != config.ProviderEcho {
		if err := openaimodel.CheckReachable(ctx, cfg.URL); err != nil {
			return err
		}
	}
	client, err := buildModelClient(cfg)
	if err != nil {
		return fmt.Errorf("init %s client: %w", cfg.Provider, err)
	}
	got, err := client.Complete(ctx, agent.NewPrompt(cfg.Model, "Reply with exactly: pong", "ping"))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "ok: %s\n", got)
	return nil
}
