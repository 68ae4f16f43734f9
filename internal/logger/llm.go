package logger

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// LLMLogger 记录与模型端交互的请求、流式分片与错误。
type LLMLogger interface {
	Request(model string, prompt string)
	StreamChunk(model string, chunk string, index int)
	StreamComplete(model string, chunks int)
	Error(model string, err error)
}

// StdLLMLogger 使用 logrus 输出日志。
type StdLLMLogger struct {
	entry *logrus.Entry
}

// NewLLMLogger 构造默认的 LLM 日志记录器；nil 表示使用全局 logger。
func NewLLMLogger(l *Logger) *StdLLMLogger {
	if l == nil {
		l = root()
	}
	return &StdLLMLogger{entry: logrus.NewEntry(l).WithField("component", "llm")}
}

func (l *StdLLMLogger) Request(model string, prompt string) {
	l.printf(logrus.InfoLevel, "-> request model=%s prompt=%s", model, sanitize(prompt))
}

func (l *StdLLMLogger) StreamChunk(model string, chunk string, index int) {
	l.printf(logrus.DebugLevel, "<- chunk model=%s seq=%d text=%s", model, index, sanitize(chunk))
}

func (l *StdLLMLogger) StreamComplete(model string, chunks int) {
	l.printf(logrus.InfoLevel, "<- stream completed model=%s chunks=%d", model, chunks)
}

func (l *StdLLMLogger) Error(model string, err error) {
	l.printf(logrus.ErrorLevel, "!! error model=%s err=%v", model, err)
}

func (l *StdLLMLogger) printf(level logrus.Level, format string, args ...any) {
	if l == nil || l.entry == nil || !l.entry.Logger.IsLevelEnabled(level) {
		return
	}
	l.entry.Log(level, fmt.Sprintf(format, args...))
}

// NoopLLMLogger 忽略所有日志输出。
type NoopLLMLogger struct{}

func (NoopLLMLogger) Request(string, string)          {}
func (NoopLLMLogger) StreamChunk(string, string, int) {}
func (NoopLLMLogger) StreamComplete(string, int)      {}
func (NoopLLMLogger) Error(string, error)             {}

func sanitize(text string) string {
	text = strings.ReplaceAll(text, "\n", `\n`)
	text = strings.ReplaceAll(text, "\r", `\r`)
	return text
}
