package tui

import (
	"strings"

	"tuiassist/internal/history"
	"tuiassist/internal/logger"
)

// promptHistory 负责输入框历史浏览状态（上下箭头），并把新输入写入持久化存储。
// cursor == len(entries) 表示当前在“最新输入”（非浏览历史）位置。
type promptHistory struct {
	entries []string
	cursor  int
	draft   string
	store   *history.Store
}

// load 从存储恢复历史；失败只记日志，不影响输入。
func (h *promptHistory) load(store *history.Store) {
	h.store = store
	if store == nil {
		return
	}
	if err := store.Compact(); err != nil {
		logger.Warnf("compact prompt history: %v", err)
	}
	texts, err := store.LoadTexts()
	if err != nil {
		logger.Warnf("load prompt history: %v", err)
	}
	h.entries = append([]string(nil), texts...)
	h.reset()
}

func (h *promptHistory) Add(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if n := len(h.entries); n == 0 || h.entries[n-1] != text {
		h.entries = append(h.entries, text)
	}
	h.reset()
	if h.store != nil {
		if err := h.store.Append(text); err != nil {
			logger.Warnf("append prompt history: %v", err)
		}
	}
}

func (h *promptHistory) reset() {
	h.cursor = len(h.entries)
	h.draft = ""
}

func (h *promptHistory) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor == len(h.entries) {
		h.draft = current
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

func (h *promptHistory) Next() (string, bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}
	if h.cursor < len(h.entries)-1 {
		h.cursor++
		return h.entries[h.cursor], true
	}
	h.cursor = len(h.entries)
	return h.draft, true
}
