package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tuiassist/internal/agent"
	anthropicmodel "tuiassist/internal/agent/anthropic"
	openaimodel "tuiassist/internal/agent/openai"
	"tuiassist/internal/config"
	"tuiassist/internal/events"
	"tuiassist/internal/history"
	"tuiassist/internal/i18n"
	"tuiassist/internal/instructions"
	"tuiassist/internal/logger"
	"tuiassist/internal/session"
	"tuiassist/internal/stream"
	"tuiassist/internal/transcript"
	"tuiassist/internal/tui"

	"github.com/google/uuid"
)

var log = logger.Named("cli")

// journalBuffer 给对话日志留足余量，渲染循环不会因写文件变慢而丢事件。
const journalBuffer = 256

func main() {
	if err := logger.Configure(""); err != nil {
		log.Warnf("log level: %v", err)
	}
	if logFile, _, err := logger.SetupFile(logger.DefaultPath(logger.LogFileName)); err != nil {
		log.Warnf("failed to initialize log file: %v", err)
	} else {
		defer logFile.Close()
	}

	root, rest, err := parseRootArgs(os.Args[1:])
	if err != nil {
		logger.Fatalf("parse args: %v", err)
	}
	if len(rest) > 0 {
		switch rest[0] {
		case "exec":
			execMain(root, rest[1:])
			return
		case "ping":
			pingMain(root, rest[1:])
			return
		case "sessions":
			sessionsMain(rest[1:])
			return
		case "config":
			configMain(root, rest[1:])
			return
		}
	}

	runInteractive(root, rest)
}

func runInteractive(root rootArgs, args []string) {
	fs, cli := newInteractiveFlagSet("tuiassist", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		logger.Fatalf("parse args: %v", err)
	}
	cli.finalizePrompt(fs)
	cli.configOverrides = stringSlice(prependOverrides(root.overrides, []string(cli.configOverrides)))

	cfg, err := resolveConfig(cli)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	client, err := buildModelClient(cfg)
	if err != nil {
		logger.Fatalf("failed to init %s client: %v", cfg.Provider, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	catalog := i18n.Messages(i18n.Normalize(cfg.Language))
	store := transcript.New()
	bus := events.NewBus[transcript.Change](journalBuffer)
	journal := events.NewJournal(logger.DefaultPath(logger.ConversationLogFileName))
	journal.Start(bus.Subscribe())
	events.Forward(store, bus)

	consumer := stream.New(stream.Options{
		Client:        client,
		Model:         cfg.Model,
		System:        cfg.SystemPrompt,
		FailureNotice: catalog.FailureNotice,
		LLMLog:        logger.NewLLMLogger(nil),
	})

	hist, err := history.NewDefault(config.DefaultDir(), cfg.HistoryLimit)
	if err != nil {
		log.Warnf("prompt history disabled: %v", err)
		hist = nil
	}

	started := time.Now()
	result, runErr := tui.Run(tui.Options{
		Store:          store,
		Consumer:       consumer,
		Language:       cfg.Language,
		Provider:       cfg.Provider,
		Model:          cfg.Model,
		InitialPrompt:  cli.prompt,
		History:        hist,
		CopyableOutput: cli.copyableOutput,
		Context:        ctx,
	})

	bus.Close()
	if err := journal.Wait(); err != nil {
		log.Warnf("close conversation log: %v", err)
	}
	if runErr != nil {
		logger.Fatalf("program exit: %v", runErr)
	}

	if !cfg.ArchiveSessions || cli.noArchive || !hasConversation(result.Entries) {
		return
	}
	id, err := session.Archive{}.Save(session.Record{
		ID:       uuid.NewString(),
		Provider: cfg.Provider,
		Model:    cfg.Model,
		Entries:  result.Entries,
		Started:  started,
		Updated:  time.Now(),
	})
	if err != nil {
		log.Warnf("failed to archive session: %v", err)
		return
	}
	fmt.Printf("Transcript saved. To view it, run tuiassist sessions %s\n", id)
}

// resolveConfig 依次叠加配置文件、环境变量、-c 覆盖与命令行参数。
func resolveConfig(cli *interactiveArgs) (config.Config, error) {
	cfg, err := config.LoadFor(cli.cfgPath, settledProvider(cli.configOverrides, cli.providerOverride))
	if err != nil {
		return cfg, err
	}
	cfg, err = config.ApplyKVOverrides(cfg, []string(cli.configOverrides))
	if err != nil {
		log.Warnf("config overrides: %v", err)
	}
	if p := strings.TrimSpace(cli.providerOverride); p != "" {
		cfg.Provider = config.NormalizeProvider(p)
	}
	if m := strings.TrimSpace(cli.modelOverride); m != "" {
		cfg.Model = m
	}
	if l := strings.TrimSpace(cli.language); l != "" {
		cfg.Language = l
	}
	if err := logger.Configure(cfg.LogLevel); err != nil {
		log.Warnf("log level %q: %v", cfg.LogLevel, err)
	}
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		cfg.SystemPrompt = agent.DefaultSystemPrompt
	}
	cfg.SystemPrompt = instructions.Compose(cfg.SystemPrompt, i18n.Normalize(cfg.Language), config.DefaultDir(), "")
	if cli.prompt == "" {
		cli.prompt = cfg.InitialPrompt
	}
	return cfg, nil
}

// settledProvider 在读取环境变量前定下最终 provider：--provider 优先于 -c provider=。
func settledProvider(overrides []string, flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return config.ProviderOverride(overrides)
}

// buildModelClient 按 provider 构造客户端；缺少凭据或未知 provider 都是启动错误。
func buildModelClient(cfg config.Config) (agent.ModelClient, error) {
	switch config.NormalizeProvider(cfg.Provider) {
	case config.ProviderOpenAI:
		return openaimodel.New(openaimodel.Options{
			APIKey:  cfg.Token,
			BaseURL: cfg.URL,
			Model:   cfg.Model,
			WireAPI: cfg.WireAPI,
		})
	case config.ProviderAnthropic:
		return anthropicmodel.New(anthropicmodel.Options{
			Token:   cfg.Token,
			BaseURL: cfg.URL,
			Model:   cfg.Model,
		})
	case config.ProviderEcho:
		return agent.EchoClient{Prefix: "echo: "}, nil
	default:
		return nil, fmt.Errorf("%w: %q", agent.ErrUnknownProvider, cfg.Provider)
	}
}

func hasConversation(entries []transcript.Entry) bool {
	for _, e := range entries {
		if e.Kind == transcript.UserCommand {
			return true
		}
	}
	return false
}
