// Package history 持久化输入框提交过的行，用于 ↑/↓ 回溯。
package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Entry struct {
	Text string    `json:"text"`
	TS   time.Time `json:"ts"`
}

// Store 以 JSONL 追加写入。Limit 为 0 表示不限制条数。
type Store struct {
	Path  string
	Limit int

	last string
}

func DefaultPath(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".tuiassist")
	}
	return filepath.Join(dir, "history.jsonl"), nil
}

func NewDefault(dir string, limit int) (*Store, error) {
	path, err := DefaultPath(dir)
	if err != nil {
		return nil, err
	}
	return &Store{Path: path, Limit: limit}, nil
}

func (s *Store) ensureDir() error {
	if s == nil || strings.TrimSpace(s.Path) == "" {
		return errors.New("history store path is empty")
	}
	return os.MkdirAll(filepath.Dir(s.Path), 0o755)
}

// Append 记录一行；空行与紧邻的重复行不写入。
func (s *Store) Append(text string) error {
	if s == nil {
		return errors.New("history store is nil")
	}
	text = strings.TrimSpace(text)
	if text == "" || text == s.last {
		return nil
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(Entry{Text: text, TS: time.Now()})
	if err != nil {
		return err
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}
	s.last = text
	return nil
}

// LoadTexts 读取历史，旧的在前；坏行跳过，超过 Limit 时只保留最新的。
func (s *Store) LoadTexts() ([]string, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if n := len(out); n > 0 && out[n-1] == e.Text {
			continue
		}
		out = append(out, e.Text)
	}
	if s.Limit > 0 && len(out) > s.Limit {
		out = out[len(out)-s.Limit:]
	}
	if len(out) > 0 {
		s.last = out[len(out)-1]
	}
	return out, nil
}

// Compact 在文件条数超过 Limit 时重写文件，只保留最新的 Limit 条。
func (s *Store) Compact() error {
	if s == nil || s.Limit <= 0 {
		return nil
	}
	entries, err := s.load()
	if err != nil || len(entries) <= s.Limit {
		return err
	}
	entries = entries[len(entries)-s.Limit:]

	tmp := s.Path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}

func (s *Store) load() ([]Entry, error) {
	if s == nil {
		return nil, errors.New("history store is nil")
	}
	if strings.TrimSpace(s.Path) == "" {
		return nil, errors.New("history store path is empty")
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 64*1024)
	var out []Entry
	for {
		raw, err := readLine(r)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		line := strings.TrimSpace(string(raw))
		var e Entry
		if line != "" && json.Unmarshal([]byte(line), &e) == nil && strings.TrimSpace(e.Text) != "" {
			out = append(out, e)
		}
		if err != nil {
			break
		}
	}
	return out, nil
}

// maxLineBytes 以上的行整行跳过，不影响其余历史。
const maxLineBytes = 1024 * 1024

// readLine 读一整行（不含换行符）；超长行返回 nil 内容。
func readLine(r *bufio.Reader) ([]byte, error) {
	var line []byte
	tooLong := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return nil, err
		}
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > maxLineBytes {
				tooLong, line = true, nil
			}
		}
		if !isPrefix {
			return line, nil
		}
	}
}
