package i18n

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	if got := Normalize(""); got != DefaultLanguage {
		t.Fatalf("empty normalize should fall back to default, got %q", got)
	}
	if got := Normalize("EN-us"); got != LanguageEnglish {
		t.Fatalf("expected english normalization, got %q", got)
	}
	if got := Normalize(" 中文 "); got != LanguageChinese {
		t.Fatalf("expected chinese normalization, got %q", got)
	}
	if got := Normalize("ja"); got != Language("ja") {
		t.Fatalf("expected passthrough for unknown language, got %q", got)
	}
}

func TestMessagesFallsBackToEnglish(t *testing.T) {
	if got := Messages("fr"); got != english {
		t.Fatalf("unknown language should use english catalog")
	}
	if got := Messages("zh").Welcome; got != chinese.Welcome {
		t.Fatalf("zh welcome = %q", got)
	}
}

func TestHelpListsReservedCommands(t *testing.T) {
	for _, lang := range []Language{LanguageEnglish, LanguageChinese} {
		help := Messages(lang).Help
		for _, cmd := range []string{"'help'", "'clear'"} {
			if !strings.Contains(help, cmd) {
				t.Fatalf("%s help text missing %s: %q", lang, cmd, help)
			}
		}
	}
}
