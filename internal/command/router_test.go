package command

import (
	"slices"
	"testing"

	"tuiassist/internal/i18n"
	"tuiassist/internal/transcript"
)

func TestRouteReservedCommands(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  Action
	}{
		{name: "clear", input: "clear", want: ActionCleared},
		{name: "clear mixed case padded", input: "  ClEaR \t", want: ActionCleared},
		{name: "help", input: "help", want: ActionHelp},
		{name: "help upper", input: " HELP", want: ActionHelp},
		{name: "help with suffix is a prompt", input: "help me", want: ActionPrompt},
		{name: "clearly is a prompt", input: "clearly", want: ActionPrompt},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := transcript.New()
			got := Route(store, tc.input)
			if got.Action != tc.want {
				t.Fatalf("Route(%q).Action = %v, want %v", tc.input, got.Action, tc.want)
			}
		})
	}
}

func TestClearAlwaysEmpties(t *testing.T) {
	store := transcript.New()
	store.Append(transcript.SystemNotice, "welcome")
	store.Append(transcript.UserCommand, "q")
	store.AppendOrExtend(0, "answer")
	store.Append(transcript.ErrorNotice, "oops")

	Route(store, "clear")
	if store.Len() != 0 {
		t.Fatalf("transcript not empty after clear: %#v", store.Entries())
	}

	Route(store, "clear")
	if store.Len() != 0 {
		t.Fatalf("clear on empty transcript left entries: %#v", store.Entries())
	}
}

func TestHelpAppendsOneSystemNotice(t *testing.T) {
	store := transcript.New()
	res := Route(store, "help")
	if res.Prompt != "" {
		t.Fatalf("help must not produce a prompt, got %q", res.Prompt)
	}
	entries := store.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Kind != transcript.SystemNotice || entries[0].Text != i18n.Messages(i18n.LanguageEnglish).Help {
		t.Fatalf("unexpected help entry: %#v", entries[0])
	}
}

func TestPromptEchoesRawInput(t *testing.T) {
	store := transcript.New()
	raw := "  What is a TUI?  "
	res := Route(store, raw)
	if res.Action != ActionPrompt || res.Prompt != raw {
		t.Fatalf("Route = %#v, want prompt with raw input", res)
	}
	entries := store.Entries()
	if len(entries) != 1 || entries[0].Kind != transcript.UserCommand || entries[0].Text != raw {
		t.Fatalf("unexpected entries: %#v", entries)
	}
}

func TestRouterUsesLocalizedHelp(t *testing.T) {
	store := transcript.New()
	NewRouter(i18n.LanguageChinese).Route(store, "help")
	last, _ := store.Last()
	if last.Text != i18n.Messages(i18n.LanguageChinese).Help {
		t.Fatalf("help text = %q", last.Text)
	}
}

func TestIDsStrictlyIncreaseAcrossCommands(t *testing.T) {
	store := transcript.New()
	var seen []transcript.ID
	store.Observe(func(c transcript.Change) {
		if c.Op == transcript.OpAppend {
			seen = append(seen, c.Entry.ID)
		}
	})
	for _, in := range []string{"help", "one", "clear", "two", "help", "clear", "three"} {
		Route(store, in)
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] <= seen[i-1] {
			t.Fatalf("ids not strictly increasing: %v", seen)
		}
	}
}

func TestSuggest(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{in: "cl", want: []string{"clear"}},
		{in: "HE", want: []string{"help"}},
		{in: "help", want: []string{}},
		{in: "", want: nil},
		{in: "what is", want: nil},
		{in: "zzz", want: []string{}},
	}
	for _, tc := range cases {
		got := Suggest(tc.in)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !slices.Equal(got, tc.want) {
			t.Fatalf("Suggest(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsReserved(t *testing.T) {
	if !IsReserved(" Clear ") || !IsReserved("help") {
		t.Fatalf("expected reserved keywords to be recognised")
	}
	if IsReserved("clear all") {
		t.Fatalf("clear all must not be reserved")
	}
}
