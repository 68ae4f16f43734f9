package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tuiassist/internal/transcript"
)

func TestArchiveSaveLoad(t *testing.T) {
	a := Archive{Dir: t.TempDir()}
	store := transcript.New()
	store.Append(transcript.UserCommand, "hi")
	store.AppendOrExtend(0, "hello")

	id, err := a.Save(Record{Provider: "echo", Entries: store.Entries()})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id")
	}
	rec, err := a.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.ID != id || rec.Provider != "echo" || len(rec.Entries) != 2 {
		t.Fatalf("rec = %+v", rec)
	}
	if rec.Entries[1].Kind != transcript.AssistantOutput || rec.Entries[1].Text != "hello" {
		t.Fatalf("entry = %+v", rec.Entries[1])
	}
	if rec.Started.IsZero() || rec.Updated.IsZero() {
		t.Fatalf("timestamps not set: %+v", rec)
	}
}

func TestArchiveListAndLast(t *testing.T) {
	dir := t.TempDir()
	a := Archive{Dir: dir}

	if recs, err := a.List(); err != nil || len(recs) != 0 {
		t.Fatalf("List on empty dir: %v %v", recs, err)
	}
	if _, err := a.Last(); err == nil {
		t.Fatalf("expected error without sessions")
	}

	first, err := a.Save(Record{ID: "first"})
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := a.Save(Record{ID: "second"})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	recs, err := a.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != second || recs[1].ID != first {
		t.Fatalf("List order = %+v", recs)
	}
	last, err := a.Last()
	if err != nil || last.ID != second {
		t.Fatalf("Last = %+v, %v", last, err)
	}
}

func TestArchiveLoadRejectsPaths(t *testing.T) {
	a := Archive{Dir: t.TempDir()}
	for _, id := range []string{"", "../x", `a\b`} {
		if _, err := a.Load(id); err == nil {
			t.Fatalf("Load(%q) should fail", id)
		}
	}
}
