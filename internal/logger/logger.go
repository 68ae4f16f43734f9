// Package logger 封装 logrus：全局 logger、按组件命名的入口和写文件的独立 logger。
// TUI 占用终端，所有日志都写文件。
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger/LogEntry/Fields 暴露底层类型，避免调用方直接依赖 logrus 包。
type Logger = logrus.Logger
type LogEntry = logrus.Entry
type Fields = logrus.Fields

const (
	LogFileName             = "tuiassist.log"
	ConversationLogFileName = "conversation.log"
)

var rootLogger = logrus.StandardLogger()

// Configure 设置全局格式与级别；level 为空时使用 info。
func Configure(level string) error {
	l := root()
	l.SetReportCaller(true)
	l.SetFormatter(PlainFormatter{})
	if strings.TrimSpace(level) == "" {
		l.SetLevel(logrus.InfoLevel)
		return nil
	}
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		l.SetLevel(logrus.InfoLevel)
		return err
	}
	l.SetLevel(parsed)
	return nil
}

// DefaultPath 返回 ~/.tuiassist/logs 下的日志路径，取不到 HOME 时退回当前目录的 logs/。
func DefaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join("logs", name)
	}
	return filepath.Join(home, ".tuiassist", "logs", name)
}

// SetupFile 将全局日志输出重定向到指定路径，返回文件 closer 以便调用方清理。
func SetupFile(logPath string) (io.Closer, string, error) {
	if logPath == "" {
		logPath = DefaultPath(LogFileName)
	}
	f, err := openLogFile(logPath)
	if err != nil {
		return nil, "", err
	}
	root().SetOutput(f)
	return f, logPath, nil
}

// SetupComponentFile 创建独立的 logger，级别跟随全局，输出到指定文件并附加 component 字段。
func SetupComponentFile(component, logPath string) (*LogEntry, io.Closer, string, error) {
	f, err := openLogFile(logPath)
	if err != nil {
		return nil, nil, "", err
	}
	l := logrus.New()
	l.SetReportCaller(true)
	l.SetFormatter(PlainFormatter{})
	l.SetLevel(root().GetLevel())
	l.SetOutput(f)

	entry := logrus.NewEntry(l)
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry, f, logPath, nil
}

// Named 为指定组件创建入口，统一 component 字段。
func Named(component string) *LogEntry {
	entry := logrus.NewEntry(root())
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry
}

func Warnf(format string, args ...any) {
	root().Warnf(format, args...)
}

// Fatalf 输出日志并退出进程；同时写 stderr，日志只进文件时用户也能看到原因。
func Fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	root().Fatalf(format, args...)
}

func root() *logrus.Logger {
	if rootLogger == nil {
		rootLogger = logrus.StandardLogger()
	}
	return rootLogger
}

func openLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
