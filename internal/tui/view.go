package tui

import (
	"fmt"
	"strings"

	"tuiassist/internal/command"
	"tuiassist/internal/tui/render"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).Padding(0, 1)
	paneStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5E6472")).
			Padding(0, 1)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D7A85")).Padding(0, 1)
	suggestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")).Padding(0, 1)
)

const (
	headerHeight = 1
	hintsHeight  = 1
	// 边框上下各一行。
	paneChrome = 2
	// 边框左右各一列加左右内边距。
	paneInsetX = 4
)

// layout 按窗口尺寸与忙碌行高度分配视口大小。
func (m *Model) layout() {
	innerWidth := maxInt(10, m.width-paneInsetX)
	statusHeight := m.status.DesiredHeight(innerWidth)
	inputHeight := 1 + paneChrome
	viewHeight := m.height - headerHeight - paneChrome - statusHeight - inputHeight - hintsHeight
	if viewHeight < 3 {
		viewHeight = 3
	}
	if m.viewport.Width != innerWidth {
		m.transcriptDirty = true
	}
	m.viewport.Resize(innerWidth, viewHeight)
	m.input.Width = maxInt(1, innerWidth-lipgloss.Width(m.input.Prompt)-1)
}

func (m *Model) View() string {
	innerWidth := m.viewport.Width
	parts := []string{
		renderHeader(m.provider, m.modelName, m.width),
		renderPane(m.viewport.View(), innerWidth, m.viewport.Height),
	}
	if line := m.renderStatus(innerWidth); line != "" {
		parts = append(parts, line)
	}
	parts = append(parts,
		renderPane(m.input.View(), innerWidth, 1),
		m.renderHints(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderStatus(width int) string {
	buf := render.Buffer{}
	m.status.Render(render.Rect{Width: width, Height: 1}, &buf)
	if len(buf.Lines) == 0 {
		return ""
	}
	return " " + render.LinesToStrings(buf.Lines)[0]
}

func (m *Model) renderHints() string {
	width := maxInt(20, m.width)
	if m.notice != "" {
		return hintStyle.Width(width).Render(m.notice)
	}
	if !m.busy() {
		if v := m.input.Value(); command.IsReserved(v) {
			return suggestStyle.Width(width).Render("enter → " + strings.ToLower(strings.TrimSpace(v)))
		}
		if s := command.Suggest(m.input.Value()); len(s) > 0 {
			return suggestStyle.Width(width).Render("tab → " + strings.Join(s, " • "))
		}
	}
	return hintStyle.Width(width).Render("Enter send • ↑/↓ history • PgUp/PgDn scroll • Ctrl+Y copy reply • Esc quit")
}

func renderHeader(provider, model string, width int) string {
	title := "TUI Assistant"
	switch {
	case provider != "" && model != "":
		title = fmt.Sprintf("%s • %s/%s", title, provider, model)
	case provider != "":
		title = fmt.Sprintf("%s • %s", title, provider)
	}
	return headerStyle.Width(maxInt(20, width)).Render(title)
}

func renderPane(body string, innerWidth, innerHeight int) string {
	style := paneStyle.Width(innerWidth + 2)
	if innerHeight > 0 {
		style = style.Height(innerHeight)
	}
	return style.Render(body)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
