package events

import (
	"io"

	"tuiassist/internal/logger"
	"tuiassist/internal/transcript"
)

// log 复用全局 logger，标记事件组件。
var log = logger.Named("events")

// Forward 把 store 的每次变更发布到总线上。
func Forward(store *transcript.Store, bus *Bus[transcript.Change]) {
	store.Observe(func(c transcript.Change) {
		if n := bus.Publish(c); n > 0 {
			log.Warnf("dropped %s change for %d subscriber(s)", c.Op, n)
		}
	})
}

// Journal 把 transcript 变更逐条写入对话日志。
// 片段追加只在 Debug 级别记录，条目在下一次 append/reset 或结束时整条落盘。
type Journal struct {
	log    *logger.LogEntry
	closer io.Closer
	done   chan struct{}

	pending *transcript.Entry
}

// NewJournal 打开对话日志；path 为空或打开失败时退回全局 logger。
func NewJournal(path string) *Journal {
	entry, closer := newJournalLogger(path)
	return &Journal{log: entry, closer: closer, done: make(chan struct{})}
}

// NewJournalWithLogger 使用给定 logger，测试时写入缓冲区。
func NewJournalWithLogger(entry *logger.LogEntry) *Journal {
	return &Journal{log: entry, done: make(chan struct{})}
}

func newJournalLogger(path string) (*logger.LogEntry, io.Closer) {
	if path == "" {
		return logger.Named("conversation"), nil
	}
	entry, closer, _, err := logger.SetupComponentFile("conversation", path)
	if err != nil {
		log.Warnf("failed to set up conversation log file (%s): %v", path, err)
		return logger.Named("conversation"), nil
	}
	return entry, closer
}

// Start 在后台消费 ch，直到 ch 被关闭。
func (j *Journal) Start(ch <-chan transcript.Change) {
	go func() {
		defer close(j.done)
		for c := range ch {
			j.record(c)
		}
		j.flush()
	}()
}

// Wait 等待消费协程退出，之后关闭日志文件。
func (j *Journal) Wait() error {
	<-j.done
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}

func (j *Journal) record(c transcript.Change) {
	switch c.Op {
	case transcript.OpAppend:
		j.flush()
		if c.Entry.Kind == transcript.AssistantOutput {
			e := c.Entry
			j.pending = &e
			return
		}
		j.write(c.Entry)
	case transcript.OpExtend:
		if j.pending == nil || j.pending.ID != c.Entry.ID {
			// 对应的 append 可能被总线丢弃，用携带全文的条目补上。
			j.flush()
			e := c.Entry
			j.pending = &e
		}
		j.pending.Text = c.Entry.Text
		j.log.WithField("kind", "fragment").WithField("id", c.Entry.ID).Debug(c.Fragment)
	case transcript.OpReset:
		j.flush()
		j.log.WithField("kind", "reset").Info("transcript cleared")
	}
}

func (j *Journal) flush() {
	if j.pending == nil {
		return
	}
	j.write(*j.pending)
	j.pending = nil
}

func (j *Journal) write(e transcript.Entry) {
	j.log.WithField("kind", e.Kind.String()).WithField("id", e.ID).Info(e.Text)
}
