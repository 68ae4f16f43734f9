package instructions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tuiassist/internal/i18n"
)

func write(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverOrdersGlobalThenTopDown(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, "cfg")
	project := filepath.Join(root, "work", "project")
	write(t, filepath.Join(configDir, FileName), "global")
	write(t, filepath.Join(root, "work", FileName), "parent")
	write(t, filepath.Join(project, FileName), "ignored")
	write(t, filepath.Join(project, OverrideFileName), "override")

	got := Discover(configDir, project)
	if got != "global\n\nparent\n\noverride" {
		t.Fatalf("Discover = %q", got)
	}
}

func TestDiscoverNothing(t *testing.T) {
	if got := Discover("", t.TempDir()); got != "" {
		t.Fatalf("Discover = %q", got)
	}
}

func TestCompose(t *testing.T) {
	dir := t.TempDir()
	if got := Compose("base", i18n.LanguageEnglish, "", dir); got != "base" {
		t.Fatalf("english compose = %q", got)
	}
	got := Compose("base", i18n.Normalize("zh-CN"), "", dir)
	if !strings.HasPrefix(got, "base\n\n") || !strings.Contains(got, "中文") {
		t.Fatalf("chinese compose = %q", got)
	}
}
