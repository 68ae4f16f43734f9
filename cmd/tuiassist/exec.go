package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"tuiassist/internal/command"
	"tuiassist/internal/i18n"
	"tuiassist/internal/logger"
	"tuiassist/internal/stream"
	"tuiassist/internal/transcript"
)

func execMain(root rootArgs, args []string) {
	if err := runExec(context.Background(), root, args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.WithError(err).Warn("exec failed")
		os.Exit(1)
	}
}

// runExec 走与 TUI 相同的路由与流式路径，只是把 transcript 变更直接打印出来。
func runExec(ctx context.Context, root rootArgs, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, cli := newInteractiveFlagSet("exec", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cli.finalizePrompt(fs)
	cli.configOverrides = stringSlice(prependOverrides(root.overrides, []string(cli.configOverrides)))

	cfg, err := resolveConfig(cli)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	prompt := cli.prompt
	if prompt == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		prompt = string(data)
	}
	if strings.TrimSpace(prompt) == "" {
		return errors.New("exec requires a prompt (use - to read stdin)")
	}

	client, err := buildModelClient(cfg)
	if err != nil {
		return fmt.Errorf("init %s client: %w", cfg.Provider, err)
	}
	lang := i18n.Normalize(cfg.Language)
	catalog := i18n.Messages(lang)

	store := transcript.New()
	wroteReply := false
	store.Observe(func(c transcript.Change) {
		switch {
		case c.Op == transcript.OpExtend:
			_, _ = io.WriteString(stdout, c.Fragment)
		case c.Op != transcript.OpAppend:
		case c.Entry.Kind == transcript.AssistantOutput:
			wroteReply = true
			_, _ = io.WriteString(stdout, c.Entry.Text)
		case c.Entry.Kind == transcript.SystemNotice:
			_, _ = fmt.Fprintln(stdout, c.Entry.Text)
		case c.Entry.Kind == transcript.ErrorNotice:
			if wroteReply {
				_, _ = fmt.Fprintln(stdout)
				wroteReply = false
			}
			_, _ = fmt.Fprintln(stderr, c.Entry.Text)
		}
	})

	res := command.NewRouter(lang).Route(store, prompt)
	if res.Action != command.ActionPrompt {
		return nil
	}
	consumer := stream.New(stream.Options{
		Client:        client,
		Model:         cfg.Model,
		System:        cfg.SystemPrompt,
		FailureNotice: catalog.FailureNotice,
		LLMLog:        logger.NewLLMLogger(nil),
	})
	err = consumer.Consume(ctx, store, res.Prompt)
	if wroteReply {
		_, _ = fmt.Fprintln(stdout)
	}
	return err
}
