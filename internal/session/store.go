// Package session 在退出时把 transcript 存档为 JSON，便于事后查看。
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tuiassist/internal/transcript"

	"github.com/google/uuid"
)

type Record struct {
	ID       string             `json:"id"`
	Provider string             `json:"provider,omitempty"`
	Model    string             `json:"model,omitempty"`
	Entries  []transcript.Entry `json:"entries"`
	Started  time.Time          `json:"started"`
	Updated  time.Time          `json:"updated"`
}

// Archive 管理一个存档目录，Dir 为空时使用 ~/.tuiassist/sessions。
type Archive struct {
	Dir string
}

func (a Archive) dir() (string, error) {
	if strings.TrimSpace(a.Dir) != "" {
		return a.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tuiassist", "sessions"), nil
}

// Save 写入存档，ID 为空时生成 uuid。返回存档 ID。
func (a Archive) Save(rec Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	d, err := a.dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", err
	}
	if rec.Entries == nil {
		rec.Entries = []transcript.Entry{}
	}
	rec.Updated = time.Now()
	if rec.Started.IsZero() {
		rec.Started = rec.Updated
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(d, rec.ID+".json"), data, 0o644); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (a Archive) Load(id string) (Record, error) {
	var rec Record
	if strings.ContainsAny(id, `/\`) || strings.TrimSpace(id) == "" {
		return rec, fmt.Errorf("invalid session id %q", id)
	}
	d, err := a.dir()
	if err != nil {
		return rec, err
	}
	data, err := os.ReadFile(filepath.Join(d, id+".json"))
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// List 返回全部存档，最近更新的在前；无法解析的文件跳过。
func (a Archive) List() ([]Record, error) {
	d, err := a.dir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(d)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var records []Record
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		rec, err := a.Load(trimExt(e.Name()))
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Updated.After(records[j].Updated)
	})
	return records, nil
}

// Last 返回最近一次存档。
func (a Archive) Last() (Record, error) {
	records, err := a.List()
	if err != nil {
		return Record{}, err
	}
	if len(records) == 0 {
		return Record{}, errors.New("no sessions found")
	}
	return records[0], nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
