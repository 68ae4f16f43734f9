// Package command routes submitted input lines: reserved keywords mutate the
// transcript locally, everything else becomes a prompt for the assistant.
package command

import (
	"strings"

	"tuiassist/internal/i18n"
	"tuiassist/internal/transcript"

	"github.com/sahilm/fuzzy"
)

// Reserved keywords. Matching is exact after trimming and case folding.
const (
	Clear = "clear"
	Help  = "help"
)

var reserved = []string{Clear, Help}

// Action tells the caller what Route did with the input.
type Action int

const (
	ActionCleared Action = iota + 1
	ActionHelp
	ActionPrompt
)

func (a Action) String() string {
	switch a {
	case ActionCleared:
		return "cleared"
	case ActionHelp:
		return "help"
	case ActionPrompt:
		return "prompt"
	default:
		return "unknown"
	}
}

// Result is returned by Route. Prompt is set only for ActionPrompt and holds
// the raw, untrimmed input.
type Result struct {
	Action Action
	Prompt string
}

// Router carries the help text shown for the help command.
type Router struct {
	HelpText string
}

// NewRouter builds a router with notices in the given language.
func NewRouter(lang i18n.Language) Router {
	return Router{HelpText: i18n.Messages(lang).Help}
}

// Route applies raw to the store. Callers must reject blank input before
// routing; a non-reserved line is echoed as a UserCommand and handed back as
// a prompt for the stream consumer.
func (r Router) Route(store *transcript.Store, raw string) Result {
	switch normalize(raw) {
	case Clear:
		store.Reset()
		return Result{Action: ActionCleared}
	case Help:
		text := r.HelpText
		if text == "" {
			text = i18n.Messages(i18n.DefaultLanguage).Help
		}
		store.Append(transcript.SystemNotice, text)
		return Result{Action: ActionHelp}
	}
	store.Append(transcript.UserCommand, raw)
	return Result{Action: ActionPrompt, Prompt: raw}
}

// Route routes with the default-language help text.
func Route(store *transcript.Store, raw string) Result {
	return NewRouter(i18n.DefaultLanguage).Route(store, raw)
}

// IsReserved reports whether raw would be handled locally.
func IsReserved(raw string) bool {
	switch normalize(raw) {
	case Clear, Help:
		return true
	}
	return false
}

// Suggest returns reserved keywords fuzzily matching a partially typed line.
// It is only a typing hint and never affects routing.
func Suggest(partial string) []string {
	query := normalize(partial)
	if query == "" || strings.ContainsAny(query, " \t") {
		return nil
	}
	matches := fuzzy.Find(query, reserved)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.Str == query {
			continue
		}
		out = append(out, m.Str)
	}
	return out
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
