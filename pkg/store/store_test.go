package store

import (
	"errors"
	"testing"
)

func TestChunkRange_CoversTotalInOrder(t *testing.T) {
	var windows [][2]int
	err := ChunkRange(10, 4, func(start, end int) error {
		windows = append(windows, [2]int{start, end})
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	want := [][2]int{{0, 4}, {4, 8}, {8, 10}}
	if len(windows) != len(want) {
		t.Fatalf("expected %d windows, got %d", len(want), len(windows))
	}
	for i, w := range want {
		if windows[i] != w {
			t.Fatalf("window %d: expected %v, got %v", i, w, windows[i])
		}
	}
}

func TestChunkRange_EmptyAndDefaults(t *testing.T) {
	calls := 0
	if err := ChunkRange(0, 4, func(start, end int) error {
		calls++
		return nil
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected 0 calls for empty range, got %d", calls)
	}

	if err := ChunkRange(5, 0, func(start, end int) error {
		calls++
		if start != 0 || end != 5 {
			t.Fatalf("expected single full window, got [%d,%d)", start, end)
		}
		return nil
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call for chunkSize=0, got %d", calls)
	}
}

func TestChunkRange_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := ChunkRange(10, 2, func(start, end int) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}
