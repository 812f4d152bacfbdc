package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/hyperjump/kotae/internal/models"
)

func TestAppendAndCount(t *testing.T) {
	s := New()
	if s.Count() != 0 {
		t.Fatalf("new store count: got %d, want 0", s.Count())
	}
	s.Append(&models.Chunk{ID: "a", Text: "one", Embedding: []float32{1}, Page: 1})
	s.Append(&models.Chunk{ID: "b", Text: "two", Embedding: []float32{2}, Page: 2})
	if s.Count() != 2 {
		t.Errorf("count: got %d, want 2", s.Count())
	}
}

func TestSnapshot_PreservesInsertionOrder(t *testing.T) {
	s := New()
	for i := 0; i < 10; i++ {
		s.Append(&models.Chunk{ID: fmt.Sprintf("c%d", i), Page: i + 1})
	}
	snap := s.Snapshot()
	if len(snap) != 10 {
		t.Fatalf("snapshot length: got %d, want 10", len(snap))
	}
	for i, c := range snap {
		if c.Page != i+1 {
			t.Errorf("position %d holds page %d", i, c.Page)
		}
	}
}

func TestSnapshot_IsolatedFromLaterAppends(t *testing.T) {
	s := New()
	s.Append(&models.Chunk{ID: "a"})
	snap := s.Snapshot()
	s.Append(&models.Chunk{ID: "b"})
	if len(snap) != 1 {
		t.Errorf("snapshot grew after append: len=%d", len(snap))
	}
}

func TestConcurrentAppends_NoLossNoDuplication(t *testing.T) {
	const n = 8  // parallel ingestions
	const m = 50 // chunks per ingestion
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(doc int) {
			defer wg.Done()
			for j := 0; j < m; j++ {
				s.Append(&models.Chunk{ID: fmt.Sprintf("%d-%d", doc, j)})
			}
		}(i)
	}
	// Concurrent snapshot readers must not corrupt the view.
	readersDone := make(chan struct{})
	go func() {
		defer close(readersDone)
		for i := 0; i < 100; i++ {
			snap := s.Snapshot()
			for _, c := range snap {
				if c == nil {
					t.Error("snapshot contains nil chunk")
					return
				}
			}
		}
	}()
	wg.Wait()
	<-readersDone

	if s.Count() != n*m {
		t.Fatalf("count: got %d, want %d", s.Count(), n*m)
	}
	seen := make(map[string]bool, n*m)
	for _, c := range s.Snapshot() {
		if seen[c.ID] {
			t.Fatalf("duplicate chunk %s", c.ID)
		}
		seen[c.ID] = true
	}
}
