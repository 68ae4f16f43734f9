package tui

import "testing"

func TestPromptHistoryBrowse(t *testing.T) {
	var h promptHistory
	if _, ok := h.Prev("draft"); ok {
		t.Fatalf("empty history should not move")
	}
	h.Add("one")
	h.Add("two")
	h.Add("two")
	if len(h.entries) != 2 {
		t.Fatalf("entries = %#v", h.entries)
	}

	if got, _ := h.Prev("typing"); got != "two" {
		t.Fatalf("Prev = %q", got)
	}
	if got, _ := h.Prev("ignored"); got != "one" {
		t.Fatalf("Prev = %q", got)
	}
	if got, _ := h.Prev("ignored"); got != "one" {
		t.Fatalf("Prev at oldest = %q", got)
	}
	if got, _ := h.Next(); got != "two" {
		t.Fatalf("Next = %q", got)
	}
	if got, ok := h.Next(); !ok || got != "typing" {
		t.Fatalf("Next past newest = %q, %v", got, ok)
	}
	if _, ok := h.Next(); ok {
		t.Fatalf("Next at draft should not move")
	}
}
