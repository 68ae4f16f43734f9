package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderEcho      = "echo"

	DefaultModel        = "gpt-4o-mini"
	DefaultHistoryLimit = 500
)

// Config is the only persisted config file schema.
type Config struct {
	Provider        string `toml:"provider"`
	URL             string `toml:"url"`
	Token           string `toml:"token"`
	Model           string `toml:"model"`
	WireAPI         string `toml:"wire_api,omitempty"`
	SystemPrompt    string `toml:"system_prompt,omitempty"`
	Language        string `toml:"language,omitempty"`
	InitialPrompt   string `toml:"initial_prompt,omitempty"`
	ArchiveSessions bool   `toml:"archive_sessions"`
	HistoryLimit    int    `toml:"history_limit"`
	LogLevel        string `toml:"log_level,omitempty"`
	Source          string `toml:"-"`
}

func Default() Config {
	return Config{
		Provider:        ProviderOpenAI,
		Model:           DefaultModel,
		ArchiveSessions: true,
		HistoryLimit:    DefaultHistoryLimit,
	}
}

func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tuiassist")
}

func DefaultPath() string {
	dir := DefaultDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// Load 读取配置文件，文件不存在时使用默认值；环境变量总是覆盖文件内容。
func Load(path string) (Config, error) {
	return LoadFor(path, "")
}

// LoadFor 与 Load 相同，但 provider 非空时先定下 provider，
// 再按它挑选 OPENAI_* 或 ANTHROPIC_* 环境变量。
func LoadFor(path, provider string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return cfg, err
		}
	}
	return applyEnv(cfg, provider), nil
}

func applyEnv(cfg Config, provider string) Config {
	if env := getenv("TUIASSIST_PROVIDER"); env != "" {
		cfg.Provider = env
	}
	if strings.TrimSpace(provider) != "" {
		cfg.Provider = provider
	}
	cfg.Provider = NormalizeProvider(cfg.Provider)
	if env := getenv("TUIASSIST_MODEL"); env != "" {
		cfg.Model = env
	}
	if env := getenv("TUIASSIST_LOG_LEVEL"); env != "" {
		cfg.LogLevel = env
	}
	if env := getenv("API_KEY"); env != "" {
		cfg.Token = env
	}
	switch cfg.Provider {
	case ProviderOpenAI:
		if env := getenv("OPENAI_BASE_URL"); env != "" {
			cfg.URL = env
		}
		if env := getenv("OPENAI_API_KEY"); env != "" {
			cfg.Token = env
		}
	case ProviderAnthropic:
		if env := getenv("ANTHROPIC_BASE_URL"); env != "" {
			cfg.URL = env
		}
		if env := getenv("ANTHROPIC_AUTH_TOKEN"); env != "" {
			cfg.Token = env
		}
	}
	return cfg
}

// NormalizeProvider 统一大小写，空值回退到 openai。
func NormalizeProvider(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" {
		return ProviderOpenAI
	}
	return p
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
