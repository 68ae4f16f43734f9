package tui

import (
	"errors"

	"tuiassist/internal/transcript"

	tea "github.com/charmbracelet/bubbletea"
)

// Result 返回 TUI 运行后的必要信息。
type Result struct {
	Entries []transcript.Entry
}

// Run 封装 Bubble Tea 入口，阻塞到用户退出。
// CopyableOutput 时不进 alt screen、不捕获鼠标，方便终端原生选择复制。
func Run(opts Options) (Result, error) {
	programOptions := []tea.ProgramOption{}
	if opts.Context != nil {
		programOptions = append(programOptions, tea.WithContext(opts.Context))
	}
	if !opts.CopyableOutput {
		programOptions = append(programOptions, tea.WithAltScreen(), tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(New(opts), programOptions...)
	m, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return Result{}, err
	}
	tuiModel, ok := m.(*Model)
	if !ok {
		return Result{}, errors.New("unexpected tui model")
	}
	return Result{Entries: tuiModel.Entries()}, nil
}
