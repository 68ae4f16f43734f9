package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyKVOverrides applies free-form -c key=value overrides.
// Unknown keys and malformed values are reported but do not stop the others.
func ApplyKVOverrides(cfg Config, overrides []string) (Config, error) {
	var bad []string
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			bad = append(bad, raw)
			continue
		}
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		val := strings.TrimSpace(parts[1])
		switch key {
		case "provider":
			cfg.Provider = NormalizeProvider(val)
		case "url":
			cfg.URL = val
		case "token":
			cfg.Token = val
		case "model":
			cfg.Model = val
		case "wire_api":
			cfg.WireAPI = val
		case "system_prompt":
			cfg.SystemPrompt = val
		case "language":
			cfg.Language = val
		case "log_level":
			cfg.LogLevel = val
		case "initial_prompt":
			cfg.InitialPrompt = val
		case "archive_sessions":
			b, err := strconv.ParseBool(val)
			if err != nil {
				bad = append(bad, raw)
				continue
			}
			cfg.ArchiveSessions = b
		case "history_limit":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				bad = append(bad, raw)
				continue
			}
			cfg.HistoryLimit = n
		default:
			bad = append(bad, raw)
		}
	}
	if len(bad) > 0 {
		return cfg, fmt.Errorf("ignored invalid overrides: %s", strings.Join(bad, ", "))
	}
	return cfg, nil
}

// ProviderOverride 返回 overrides 中最后一个 provider= 的值，没有时为空。
func ProviderOverride(overrides []string) string {
	provider := ""
	for _, raw := range overrides {
		key, val, ok := strings.Cut(raw, "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "provider") {
			provider = strings.TrimSpace(val)
		}
	}
	return provider
}
