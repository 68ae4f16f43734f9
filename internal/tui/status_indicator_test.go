package tui

import (
	"strings"
	"testing"
	"time"

	"tuiassist/internal/tui/render"

	"github.com/mattn/go-runewidth"
)

func TestFmtElapsedCompact(t *testing.T) {
	cases := []struct {
		seconds  uint64
		expected string
	}{
		{seconds: 0, expected: "0s"},
		{seconds: 59, expected: "59s"},
		{seconds: 60, expected: "1m 00s"},
		{seconds: 3*60 + 5, expected: "3m 05s"},
		{seconds: 3600, expected: "1h 00m 00s"},
		{seconds: 25*3600 + 2*60 + 3, expected: "25h 02m 03s"},
	}

	for _, tc := range cases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if got := fmtElapsedCompact(tc.seconds); got != tc.expected {
				t.Fatalf("fmtElapsedCompact(%d) = %q, want %q", tc.seconds, got, tc.expected)
			}
		})
	}
}

func plainLine(line render.Line) string {
	var sb strings.Builder
	for _, sp := range line.Spans {
		sb.WriteString(sp.Text)
	}
	return sb.String()
}

func TestStatusIndicatorOnlyRendersWhileBusy(t *testing.T) {
	now := time.Unix(0, 0)
	w := NewStatusIndicator("Assistant is thinking...", func() time.Time { return now })

	buf := render.Buffer{}
	w.Render(render.Rect{Width: 80, Height: 1}, &buf)
	if len(buf.Lines) != 0 || w.DesiredHeight(80) != 0 {
		t.Fatalf("idle indicator must not render")
	}

	w.Start()
	now = now.Add(12 * time.Second)
	w.Render(render.Rect{Width: 80, Height: 1}, &buf)
	if len(buf.Lines) != 1 || w.DesiredHeight(80) != 1 {
		t.Fatalf("busy indicator should render one line")
	}
	got := plainLine(buf.Lines[0])
	if !strings.HasSuffix(got, "Assistant is thinking... (12s)") {
		t.Fatalf("unexpected render output %q", got)
	}

	w.Stop()
	if w.ElapsedSeconds() != 0 || w.DesiredHeight(80) != 0 {
		t.Fatalf("stopped indicator should be idle")
	}
}

func TestStatusIndicatorRestartsTimer(t *testing.T) {
	now := time.Unix(100, 0)
	w := NewStatusIndicator("x", func() time.Time { return now })
	w.Start()
	now = now.Add(30 * time.Second)
	w.Stop()
	w.Start()
	now = now.Add(2 * time.Second)
	if got := w.ElapsedSeconds(); got != 2 {
		t.Fatalf("elapsed = %d, want 2", got)
	}
}

func TestStatusIndicatorRenderClampsToWidth(t *testing.T) {
	w := NewStatusIndicator("Assistant is thinking...", nil)
	w.Start()

	buf := render.Buffer{}
	area := render.Rect{Width: 10, Height: 1}
	w.Render(area, &buf)
	if len(buf.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(buf.Lines))
	}
	if width := runewidth.StringWidth(plainLine(buf.Lines[0])); width > area.Width {
		t.Fatalf("rendered width %d exceeds area width %d", width, area.Width)
	}
}
