// Package stream folds a collaborator's fragment stream into the transcript.
//
// A Consumer allows one in-flight Run. The collaborator is driven on its own
// goroutine; fragments are handed back through Run.Next and applied to the
// store by the caller's event loop, so the store only ever sees one mutation
// per reaction.
package stream

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"tuiassist/internal/agent"
	"tuiassist/internal/logger"
	"tuiassist/internal/transcript"
)

// ErrBusy 表示已有一次流式请求在进行中。
var ErrBusy = errors.New("stream already in flight")

const defaultFailureNotice = "An error occurred while communicating with the AI."

type Options struct {
	Client        agent.ModelClient
	Model         string
	System        string
	FailureNotice string
	Log           *logger.LogEntry
	LLMLog        logger.LLMLogger
}

type Consumer struct {
	client        agent.ModelClient
	model         string
	system        string
	failureNotice string
	log           *logger.LogEntry
	llmLog        logger.LLMLogger

	busy atomic.Bool
}

func New(opts Options) *Consumer {
	notice := opts.FailureNotice
	if notice == "" {
		notice = defaultFailureNotice
	}
	log := opts.Log
	if log == nil {
		log = logger.Named("stream")
	}
	llmLog := opts.LLMLog
	if llmLog == nil {
		llmLog = logger.NoopLLMLogger{}
	}
	return &Consumer{
		client:        opts.Client,
		model:         opts.Model,
		system:        opts.System,
		failureNotice: notice,
		log:           log,
		llmLog:        llmLog,
	}
}

// Busy 报告是否有流正在进行，供视图绘制忙碌指示。
func (c *Consumer) Busy() bool {
	return c.busy.Load()
}

// Event 是 Run 交回事件循环的一个单元。Fragment 非空表示一段文本；
// Err 与 Done 都是终止事件，二者最多出现一次。
type Event struct {
	Fragment string
	Err      error
	Done     bool
}

func (e Event) terminal() bool {
	return e.Err != nil || e.Done
}

// Run 是一次流式调用。open 保存当前正在追加的 AssistantOutput 条目。
type Run struct {
	consumer *Consumer
	events   chan Event
	open     transcript.ID
	drained  bool
	finished bool
}

// Begin 进入忙碌状态并在后台打开流。ctx 不用于超时，只在程序退出时取消。
func (c *Consumer) Begin(ctx context.Context, prompt string) (*Run, error) {
	if c.client == nil {
		return nil, fmt.Errorf("stream: %w", agent.ErrUnknownProvider)
	}
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	run := &Run{consumer: c, events: make(chan Event, 64)}
	req := agent.NewPrompt(c.model, c.system, prompt)
	c.llmLog.Request(c.model, prompt)
	c.log.WithField("kind", "request").Debugf("stream begin prompt_len=%d", len(prompt))

	go func() {
		defer close(run.events)
		send := func(ev Event) {
			select {
			case run.events <- ev:
			case <-ctx.Done():
			}
		}
		chunks := 0
		err := c.client.Stream(ctx, req, func(ev agent.StreamEvent) {
			if ev.Type != agent.StreamEventTextDelta || ev.Text == "" {
				return
			}
			c.llmLog.StreamChunk(c.model, ev.Text, chunks)
			chunks++
			send(Event{Fragment: ev.Text})
		})
		if err != nil {
			c.llmLog.Error(c.model, err)
			send(Event{Err: err})
			return
		}
		c.llmLog.StreamComplete(c.model, chunks)
		send(Event{Done: true})
	}()
	return run, nil
}

// Next 阻塞直到下一个事件。流结束后返回 false。
func (r *Run) Next() (Event, bool) {
	if r.drained || r.finished {
		return Event{}, false
	}
	ev, ok := <-r.events
	if !ok {
		ev = Event{Err: errors.New("stream closed without completion")}
	}
	r.drained = ev.terminal()
	return ev, true
}

// Apply 把一个事件写入 store，返回流是否已结束。必须在事件循环上调用。
func (r *Run) Apply(store *transcript.Store, ev Event) bool {
	if r.finished {
		return true
	}
	switch {
	case ev.Err != nil:
		store.Append(transcript.ErrorNotice, r.consumer.failureNotice)
		r.consumer.log.WithError(ev.Err).Warn("stream failed")
	case ev.Done:
	case ev.Fragment != "":
		r.open = store.AppendOrExtend(r.open, ev.Fragment)
	}
	if ev.terminal() {
		r.finished = true
		r.open = 0
		r.consumer.busy.Store(false)
	}
	return r.finished
}

// openID 返回当前追加中的条目，未开始或已结束时为 0。
func (r *Run) openID() transcript.ID {
	return r.open
}

// Consume 同步驱动一次完整的流，供 exec 模式与测试使用。
// 返回的错误已经以 ErrorNotice 的形式写入 store。
func (c *Consumer) Consume(ctx context.Context, store *transcript.Store, prompt string) error {
	run, err := c.Begin(ctx, prompt)
	if err != nil {
		return err
	}
	for {
		ev, ok := run.Next()
		if !ok {
			return nil
		}
		if run.Apply(store, ev) {
			return ev.Err
		}
	}
}
