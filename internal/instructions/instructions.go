// Package instructions 组装发给模型的 system prompt：内置提示词、用户的说明文件和输出语言指令。
package instructions

import (
	"os"
	"path/filepath"
	"strings"

	"tuiassist/internal/i18n"
)

const (
	// FileName 是用户或项目级的附加说明文件。
	FileName = "TUIASSIST.md"
	// OverrideFileName 存在时替代同目录下的 FileName。
	OverrideFileName = "TUIASSIST.override.md"
)

// Discover 读取 configDir 下的全局说明，再从根目录向下读到 workdir 为止的每一级说明。
func Discover(configDir, workdir string) string {
	var parts []string

	if configDir != "" {
		if data, err := os.ReadFile(filepath.Join(configDir, FileName)); err == nil {
			parts = append(parts, string(data))
		}
	}

	dir := workdir
	if dir == "" {
		dir, _ = os.Getwd()
	}
	if dir == "" {
		return joinParts(parts)
	}
	dir = filepath.Clean(dir)

	var chain []string
	prev := ""
	for dir != prev {
		chain = append(chain, dir)
		prev = dir
		dir = filepath.Dir(dir)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		curr := chain[i]
		if data, err := os.ReadFile(filepath.Join(curr, OverrideFileName)); err == nil {
			parts = append(parts, string(data))
			continue
		}
		if data, err := os.ReadFile(filepath.Join(curr, FileName)); err == nil {
			parts = append(parts, string(data))
		}
	}
	return joinParts(parts)
}

// LanguageDirective 返回输出语言指令；英文是模型的默认行为，不额外提示。
func LanguageDirective(lang i18n.Language) string {
	switch i18n.Normalize(string(lang)) {
	case i18n.LanguageChinese:
		return "输出语言指令：使用中文回答；如用户明确要求其他语言，按用户要求切换。"
	default:
		return ""
	}
}

// Compose 按顺序拼接内置提示词、说明文件与语言指令，空段落跳过。
func Compose(base string, lang i18n.Language, configDir, workdir string) string {
	return joinParts([]string{base, Discover(configDir, workdir), LanguageDirective(lang)})
}

func joinParts(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
