package render

import (
	"strings"

	"tuiassist/internal/transcript"

	"github.com/charmbracelet/lipgloss"
)

var (
	userPrefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")).Bold(true)
	userTextStyle   = lipgloss.NewStyle()
	assistantStyle  = lipgloss.NewStyle()
	systemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")).Italic(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")).Bold(true)
)

const userPrefix = "> "

// RenderEntries 把 transcript 快照渲染为行，纯函数。
func RenderEntries(entries []transcript.Entry, width int) []Line {
	stack := make(Stack, 0, len(entries))
	for i, e := range entries {
		stack = append(stack, entryRenderable{entry: e, gap: i > 0 && e.Kind == transcript.UserCommand})
	}
	buf := Buffer{}
	stack.Render(Rect{Width: width}, &buf)
	return buf.Lines
}

// entryRenderable 渲染单条记录；gap 为 true 时在用户输入前空一行。
type entryRenderable struct {
	entry transcript.Entry
	gap   bool
}

func (r entryRenderable) Render(area Rect, buf *Buffer) {
	lines := r.lines(area.Width)
	if area.Height > 0 && len(lines) > area.Height {
		lines = lines[:area.Height]
	}
	buf.WriteLines(lines...)
}

func (r entryRenderable) DesiredHeight(width int) int {
	return len(r.lines(width))
}

func (r entryRenderable) lines(width int) []Line {
	var out []Line
	if r.gap {
		out = append(out, Line{})
	}
	switch r.entry.Kind {
	case transcript.UserCommand:
		out = append(out, renderUserLines(r.entry.Text, width)...)
	case transcript.AssistantOutput:
		out = append(out, styledLines(wrapPreserveSpaces(r.entry.Text, width), assistantStyle)...)
	case transcript.ErrorNotice:
		out = append(out, styledLines(wrapText(r.entry.Text, width), errorStyle)...)
	default:
		out = append(out, styledLines(wrapText(r.entry.Text, width), systemStyle)...)
	}
	return out
}

func renderUserLines(text string, width int) []Line {
	wrapWidth := width - len(userPrefix)
	if wrapWidth < 1 {
		wrapWidth = width
	}
	body := styledLines(wrapPreserveSpaces(strings.TrimRight(text, "\n"), wrapWidth), userTextStyle)
	return PrefixLines(body,
		Span{Text: userPrefix, Style: userPrefixStyle},
		Span{Text: strings.Repeat(" ", len(userPrefix))},
	)
}

func styledLines(texts []string, style lipgloss.Style) []Line {
	out := make([]Line, 0, len(texts))
	for _, t := range texts {
		out = append(out, Line{Spans: []Span{{Text: t, Style: style}}})
	}
	return out
}
