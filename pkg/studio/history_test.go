package studio

import (
	"fmt"
	"testing"

	"glitcher/pkg/glitch"
)

func TestHistoryRing(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 5; i++ {
		h.Add(fmt.Sprintf("img-%d", i), i, glitch.DefaultParams(), int64(i), nil)
	}

	if got := len(h.Logs()); got != 3 {
		t.Fatalf("kept %d items, want 3", got)
	}
	if h.Curr().Source != "img-4" {
		t.Fatalf("curr = %s, want img-4", h.Curr().Source)
	}
	if h.Prev().Source != "img-3" {
		t.Fatalf("prev = %s, want img-3", h.Prev().Source)
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory()
	if h.Curr() != nil || h.Prev() != nil {
		t.Fatal("empty history returned items")
	}
}
