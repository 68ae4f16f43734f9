package tui

import (
	"context"
	"strings"

	"tuiassist/internal/command"
	"tuiassist/internal/history"
	"tuiassist/internal/i18n"
	"tuiassist/internal/logger"
	"tuiassist/internal/stream"
	"tuiassist/internal/transcript"
	"tuiassist/internal/tui/render"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Store          *transcript.Store
	Consumer       *stream.Consumer
	Language       string
	Provider       string
	Model          string
	InitialPrompt  string
	History        *history.Store
	CopyableOutput bool
	// Context 只在程序退出时取消，流式请求本身没有超时。
	Context context.Context
	// Clipboard 为 nil 时写系统剪贴板。
	Clipboard func(string) error
}

type startPromptMsg struct {
	Text string
}

// streamEventMsg 携带 Run 交回的一个事件；ok 为 false 表示流已耗尽。
type streamEventMsg struct {
	run *stream.Run
	ev  stream.Event
	ok  bool
}

type Model struct {
	input    textinput.Model
	viewport render.Viewport
	spin     spinner.Model
	status   *StatusIndicator

	store    *transcript.Store
	consumer *stream.Consumer
	router   command.Router
	catalog  i18n.Catalog
	history  promptHistory
	ctx      context.Context
	run      *stream.Run

	provider  string
	modelName string
	initSend  string
	copyText  func(string) error
	notice    string
	log       *logger.LogEntry

	width           int
	height          int
	transcriptDirty bool
}

func New(opts Options) *Model {
	lang := i18n.Normalize(opts.Language)
	catalog := i18n.Messages(lang)

	ti := textinput.New()
	ti.Placeholder = catalog.Placeholder
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Width = 80
	ti.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	store := opts.Store
	if store == nil {
		store = transcript.New()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	copyText := opts.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	m := &Model{
		input:           ti,
		viewport:        render.NewViewport(80, 20),
		spin:            spin,
		status:          NewStatusIndicator(catalog.Thinking, nil),
		store:           store,
		consumer:        opts.Consumer,
		router:          command.NewRouter(lang),
		catalog:         catalog,
		ctx:             ctx,
		provider:        opts.Provider,
		modelName:       opts.Model,
		initSend:        opts.InitialPrompt,
		copyText:        copyText,
		log:             logger.Named("tui"),
		width:           80,
		height:          24,
		transcriptDirty: true,
	}
	m.history.load(opts.History)
	store.Observe(func(transcript.Change) {
		m.transcriptDirty = true
	})
	store.Append(transcript.SystemNotice, catalog.Welcome)
	store.Append(transcript.SystemNotice, catalog.HelpHint)
	m.layout()
	return m
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if prompt := m.initSend; strings.TrimSpace(prompt) != "" {
		cmds = append(cmds, func() tea.Msg { return startPromptMsg{Text: prompt} })
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		cmds = append(cmds, m.refocus())
		return m.finish(cmds...)
	case startPromptMsg:
		cmds = append(cmds, m.submit(msg.Text))
		return m.finish(cmds...)
	case streamEventMsg:
		cmds = append(cmds, m.handleStreamEvent(msg))
		return m.finish(cmds...)
	case spinner.TickMsg:
		if !m.busy() {
			return m.finish(cmds...)
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		return m.finish(cmds...)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			cmds = append(cmds, m.refocus())
			return m.finish(cmds...)
		}
		cmds = append(cmds, m.viewport.HandleUpdate(msg))
		return m.finish(cmds...)
	case tea.KeyMsg:
		m.notice = ""
		if cmd, handled := m.handleKey(msg); handled {
			cmds = append(cmds, cmd)
			return m.finish(cmds...)
		}
	}

	if !m.busy() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m.finish(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return tea.Quit, true
	case "enter":
		return m.submit(m.input.Value()), true
	case "pgup":
		m.viewport.PageUp()
		return nil, true
	case "pgdown":
		m.viewport.PageDown()
		return nil, true
	case "shift+up":
		m.viewport.ScrollUp(1)
		return nil, true
	case "shift+down":
		m.viewport.ScrollDown(1)
		return nil, true
	case "ctrl+y":
		m.copyLastReply()
		return nil, true
	}
	if m.busy() {
		// 忙碌时输入框禁用，吞掉其余按键。
		return nil, true
	}
	switch msg.String() {
	case "up":
		if text, ok := m.history.Prev(m.input.Value()); ok {
			m.input.SetValue(text)
			m.input.CursorEnd()
		}
		return nil, true
	case "down":
		if text, ok := m.history.Next(); ok {
			m.input.SetValue(text)
			m.input.CursorEnd()
		}
		return nil, true
	case "tab":
		if s := command.Suggest(m.input.Value()); len(s) > 0 {
			m.input.SetValue(s[0])
			m.input.CursorEnd()
		}
		return nil, true
	}
	return nil, false
}

// submit 是输入框的提交路径：空白或忙碌时不做任何事。
func (m *Model) submit(raw string) tea.Cmd {
	if strings.TrimSpace(raw) == "" || m.busy() {
		return nil
	}
	m.history.Add(raw)
	m.input.Reset()
	res := m.router.Route(m.store, raw)
	m.log.WithField("kind", res.Action.String()).Debug("input routed")
	if res.Action != command.ActionPrompt {
		return nil
	}
	return m.startStream(res.Prompt)
}

func (m *Model) startStream(prompt string) tea.Cmd {
	if m.consumer == nil {
		m.store.Append(transcript.ErrorNotice, m.catalog.FailureNotice)
		return nil
	}
	run, err := m.consumer.Begin(m.ctx, prompt)
	if err != nil {
		m.log.WithError(err).Warn("stream not started")
		m.store.Append(transcript.ErrorNotice, m.catalog.FailureNotice)
		return nil
	}
	m.run = run
	m.status.Start()
	m.input.Blur()
	m.input.Placeholder = ""
	m.layout()
	return tea.Batch(listenStream(run), m.spin.Tick)
}

func listenStream(run *stream.Run) tea.Cmd {
	return func() tea.Msg {
		ev, ok := run.Next()
		return streamEventMsg{run: run, ev: ev, ok: ok}
	}
}

func (m *Model) handleStreamEvent(msg streamEventMsg) tea.Cmd {
	if msg.run == nil || msg.run != m.run {
		return nil
	}
	if msg.ok && !msg.run.Apply(m.store, msg.ev) {
		return listenStream(msg.run)
	}
	return m.endStream()
}

func (m *Model) endStream() tea.Cmd {
	m.run = nil
	m.status.Stop()
	m.input.Placeholder = m.catalog.Placeholder
	m.layout()
	return m.refocus()
}

// refocus 在交互后把焦点还给输入框；忙碌时保持禁用。
func (m *Model) refocus() tea.Cmd {
	if m.busy() {
		return nil
	}
	return m.input.Focus()
}

func (m *Model) copyLastReply() {
	entry, ok := m.store.LastOfKind(transcript.AssistantOutput)
	if !ok || strings.TrimSpace(entry.Text) == "" {
		m.notice = m.catalog.NothingToCopy
		return
	}
	if err := m.copyText(entry.Text); err != nil {
		m.log.WithError(err).Warn("clipboard write failed")
		m.notice = err.Error()
		return
	}
	m.notice = m.catalog.Copied
}

func (m *Model) busy() bool {
	return m.run != nil || (m.consumer != nil && m.consumer.Busy())
}

func (m *Model) finish(cmds ...tea.Cmd) (tea.Model, tea.Cmd) {
	m.flushTranscript()
	return m, tea.Batch(cmds...)
}

// flushTranscript 在 store 变化后重新渲染快照；视口总是跟到最新一行。
func (m *Model) flushTranscript() {
	if !m.transcriptDirty {
		return
	}
	lines := render.LinesToStrings(render.RenderEntries(m.store.Entries(), m.viewport.Width))
	m.viewport.SetLines(lines)
	m.transcriptDirty = false
}

// Entries 返回当前 transcript 快照，退出后用于存档。
func (m *Model) Entries() []transcript.Entry {
	return m.store.Entries()
}
