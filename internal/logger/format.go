package logger

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// 这些字段已经出现在行首，不再重复输出。
var headerFields = map[string]bool{"component": true, "caller": true, "kind": true}

// PlainFormatter 输出一行纯文本：caller [ts] [LEVEL] [component] [kind=...] message k=v...
type PlainFormatter struct{}

func (PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry == nil {
		return nil, nil
	}
	var sb strings.Builder
	write := func(s string) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s)
	}

	if caller := callerOf(entry); caller != "" {
		write(caller)
	}
	write("[" + entry.Time.UTC().Format(time.RFC3339Nano) + "]")
	write("[" + strings.ToUpper(entry.Level.String()) + "]")
	if component, ok := entry.Data["component"].(string); ok && component != "" {
		write("[" + component + "]")
	}
	if kind, ok := entry.Data["kind"]; ok {
		write(fmt.Sprintf("[kind=%v]", kind))
	}
	write(entry.Message)
	for _, k := range slices.Sorted(maps.Keys(entry.Data)) {
		if headerFields[k] {
			continue
		}
		write(fmt.Sprintf("%s=%v", k, entry.Data[k]))
	}
	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}

func callerOf(entry *logrus.Entry) string {
	if entry.HasCaller() && entry.Caller != nil {
		return fmt.Sprintf("%s:%d", shortenFilePath(entry.Caller.File), entry.Caller.Line)
	}
	caller, _ := entry.Data["caller"].(string)
	return caller
}

// shortenFilePath 只保留从 internal/ 或 cmd/ 开始的相对路径。
func shortenFilePath(file string) string {
	file = filepath.ToSlash(file)
	for _, marker := range []string{"/internal/", "/cmd/"} {
		if idx := strings.Index(file, marker); idx != -1 {
			return file[idx+1:]
		}
	}
	return filepath.Base(file)
}
