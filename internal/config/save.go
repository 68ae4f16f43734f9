package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Marshal 编码为 TOML，provider 先规范化。
func Marshal(cfg Config) ([]byte, error) {
	cfg.Provider = NormalizeProvider(cfg.Provider)
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// Redacted 返回可以打印的副本，token 只保留末四位。
func (c Config) Redacted() Config {
	token := strings.TrimSpace(c.Token)
	switch {
	case token == "":
	case len(token) <= 4:
		c.Token = "****"
	default:
		c.Token = "****" + token[len(token)-4:]
	}
	return c
}

// Save 写回配置文件；文件含 token，只允许当前用户读写。
func Save(path string, cfg Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return errors.New("config path is empty and $HOME is not set")
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
