package tui

import (
	"fmt"
	"strings"
	"time"

	"tuiassist/internal/tui/render"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	indicatorSpinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	indicatorHintStyle    = lipgloss.NewStyle().Faint(true)
)

// StatusIndicator 渲染忙碌行：spinner + 标题 + 已用时间。空闲时高度为 0。
// 流式请求不可中断，所以不显示中断提示。
type StatusIndicator struct {
	header  string
	spinner spinner.Spinner
	busy    bool
	started time.Time

	clock func() time.Time
}

// NewStatusIndicator 构造空闲状态的指示器；clock 为 nil 时使用 time.Now。
func NewStatusIndicator(header string, clock func() time.Time) *StatusIndicator {
	if clock == nil {
		clock = time.Now
	}
	return &StatusIndicator{header: header, spinner: spinner.Dot, clock: clock}
}

// Start 进入忙碌状态并重新计时。
func (w *StatusIndicator) Start() {
	if w == nil {
		return
	}
	w.busy = true
	w.started = w.clock()
}

// Stop 回到空闲状态。
func (w *StatusIndicator) Stop() {
	if w == nil {
		return
	}
	w.busy = false
}

func (w *StatusIndicator) Busy() bool {
	return w != nil && w.busy
}

// ElapsedSeconds 返回本次忙碌已持续的秒数，空闲时为 0。
func (w *StatusIndicator) ElapsedSeconds() uint64 {
	if !w.Busy() {
		return 0
	}
	d := w.clock().Sub(w.started)
	if d < 0 {
		return 0
	}
	return uint64(d.Seconds())
}

// DesiredHeight 满足 render.Renderable。
func (w *StatusIndicator) DesiredHeight(int) int {
	if !w.Busy() {
		return 0
	}
	return 1
}

// Render 绘制状态行，超出宽度时截断。
func (w *StatusIndicator) Render(area render.Rect, buf *render.Buffer) {
	if !w.Busy() || buf == nil || area.Width <= 0 {
		return
	}
	now := w.clock()
	spans := []render.Span{{Text: w.frame(now), Style: indicatorSpinnerStyle}}
	if w.header != "" {
		spans = append(spans, render.Span{Text: w.header})
	}
	spans = append(spans, render.Span{Text: " "}, render.Span{
		Text:  fmt.Sprintf("(%s)", fmtElapsedCompact(w.ElapsedSeconds())),
		Style: indicatorHintStyle,
	})
	if clamped := clampSpans(spans, area.Width); len(clamped) > 0 {
		buf.WriteLines(render.Line{Spans: clamped})
	}
}

// frame 按 spinner 自身的 FPS 由时钟推算当前帧，重绘由 spinner.Tick 驱动。
func (w *StatusIndicator) frame(now time.Time) string {
	frames := w.spinner.Frames
	if len(frames) == 0 {
		return "• "
	}
	fps := w.spinner.FPS
	if fps <= 0 {
		fps = time.Second / 10
	}
	idx := int(now.Sub(w.started)/fps) % len(frames)
	return strings.TrimRight(frames[idx], " ") + " "
}

func fmtElapsedCompact(elapsedSecs uint64) string {
	switch {
	case elapsedSecs < 60:
		return fmt.Sprintf("%ds", elapsedSecs)
	case elapsedSecs < 3600:
		return fmt.Sprintf("%dm %02ds", elapsedSecs/60, elapsedSecs%60)
	default:
		hours := elapsedSecs / 3600
		minutes := (elapsedSecs % 3600) / 60
		return fmt.Sprintf("%dh %02dm %02ds", hours, minutes, elapsedSecs%60)
	}
}

func clampSpans(spans []render.Span, width int) []render.Span {
	if width <= 0 {
		return nil
	}
	remaining := width
	out := make([]render.Span, 0, len(spans))
	for _, sp := range spans {
		if remaining <= 0 {
			break
		}
		tw := runewidth.StringWidth(sp.Text)
		if tw <= remaining {
			out = append(out, sp)
			remaining -= tw
			continue
		}
		if text := runewidth.Truncate(sp.Text, remaining, ""); text != "" {
			sp.Text = text
			out = append(out, sp)
		}
		remaining = 0
	}
	return out
}
