package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/extract"
	"github.com/hyperjump/kotae/internal/store"
)

// flakyEmbedder fails for texts containing a marker substring.
type flakyEmbedder struct {
	inner      *embedding.MockEmbedder
	failMarker string
	nilMarker  string
}

func (f *flakyEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.failMarker != "" && strings.Contains(text, f.failMarker) {
		return nil, errors.New("quota exceeded")
	}
	if f.nilMarker != "" && strings.Contains(text, f.nilMarker) {
		return nil, nil
	}
	return f.inner.Embed(ctx, text)
}

func (f *flakyEmbedder) Dimensions() int { return f.inner.Dimensions() }
func (f *flakyEmbedder) Close() error    { return nil }

func awaitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("background embedding did not finish")
	}
}

func newTestPipeline(e embedding.Embedder) (*Pipeline, *store.VectorStore) {
	s := store.New()
	return NewPipeline(s, e, extract.NewExtractor(), 200, WithWorkers(3)), s
}

func TestIngestText_RespondsBeforeStoreFills(t *testing.T) {
	p, s := newTestPipeline(embedding.NewMockEmbedder(32))
	text := strings.Repeat("a", 250) + "\n\n" + strings.Repeat("b", 250)
	res := p.IngestText(text)
	if res.EstimatedChunks != 2 {
		t.Fatalf("estimate: got %d, want 2", res.EstimatedChunks)
	}
	awaitDone(t, res.Done)
	if s.Count() != 2 {
		t.Errorf("store count: got %d, want 2", s.Count())
	}
}

func TestIngestText_PagesAreSequential(t *testing.T) {
	p, s := newTestPipeline(embedding.NewMockEmbedder(8))
	parts := make([]string, 5)
	for i := range parts {
		parts[i] = strings.Repeat(string(rune('a'+i)), 210)
	}
	res := p.IngestText(strings.Join(parts, "\n\n"))
	awaitDone(t, res.Done)
	snap := s.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("store count: got %d, want 5", len(snap))
	}
	for i, c := range snap {
		if c.Page != i+1 {
			t.Errorf("chunk %d has page %d", i, c.Page)
		}
		if c.Embedding == nil {
			t.Errorf("chunk %d stored without embedding", i)
		}
	}
}

func TestIngestText_EmptyText(t *testing.T) {
	p, s := newTestPipeline(embedding.NewMockEmbedder(8))
	res := p.IngestText("")
	if res.EstimatedChunks != 0 {
		t.Errorf("estimate: got %d, want 0", res.EstimatedChunks)
	}
	awaitDone(t, res.Done)
	if s.Count() != 0 {
		t.Errorf("store count: got %d, want 0", s.Count())
	}
}

func TestIngestText_PerChunkFailureIsIsolated(t *testing.T) {
	e := &flakyEmbedder{inner: embedding.NewMockEmbedder(8), failMarker: "POISON"}
	p, s := newTestPipeline(e)
	text := strings.Repeat("a", 250) + "\n\n" +
		"POISON " + strings.Repeat("b", 250) + "\n\n" +
		strings.Repeat("c", 250)
	res := p.IngestText(text)
	if res.EstimatedChunks != 3 {
		t.Fatalf("estimate: got %d, want 3", res.EstimatedChunks)
	}
	awaitDone(t, res.Done)
	if s.Count() != 2 {
		t.Fatalf("store count: got %d, want 2 (poisoned chunk dropped)", s.Count())
	}
	for _, c := range s.Snapshot() {
		if strings.Contains(c.Text, "POISON") {
			t.Error("failed chunk reached the store")
		}
	}
}

func TestIngestText_NilEmbeddingDropped(t *testing.T) {
	e := &flakyEmbedder{inner: embedding.NewMockEmbedder(8), nilMarker: "VOID"}
	p, s := newTestPipeline(e)
	text := "VOID " + strings.Repeat("a", 250) + "\n\n" + strings.Repeat("b", 250)
	res := p.IngestText(text)
	awaitDone(t, res.Done)
	if s.Count() != 1 {
		t.Errorf("store count: got %d, want 1", s.Count())
	}
}

func TestIngestText_AllChunksFail(t *testing.T) {
	e := &flakyEmbedder{inner: embedding.NewMockEmbedder(8), failMarker: "x"}
	p, s := newTestPipeline(e)
	res := p.IngestText(strings.Repeat("x", 300))
	if res.EstimatedChunks != 1 {
		t.Fatalf("estimate: got %d, want 1", res.EstimatedChunks)
	}
	awaitDone(t, res.Done)
	if s.Count() != 0 {
		t.Errorf("store count: got %d, want 0", s.Count())
	}
}

func TestIngest_ExtractionFailureLeavesStoreUntouched(t *testing.T) {
	p, s := newTestPipeline(embedding.NewMockEmbedder(8))
	if _, err := p.Ingest(context.Background(), []byte("garbage"), ".pdf"); err == nil {
		t.Fatal("expected extraction error")
	}
	if s.Count() != 0 {
		t.Errorf("store count after failed extraction: got %d", s.Count())
	}
}

func TestIngest_CancelledContext(t *testing.T) {
	p, s := newTestPipeline(embedding.NewMockEmbedder(8))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Ingest(ctx, []byte(strings.Repeat("a", 250)), ".txt"); !errors.Is(err, context.Canceled) {
		t.Fatalf("error: got %v, want context.Canceled", err)
	}
	if s.Count() != 0 {
		t.Errorf("store count after cancelled ingest: got %d", s.Count())
	}
}

func TestIngest_UnsupportedFormat(t *testing.T) {
	p, _ := newTestPipeline(embedding.NewMockEmbedder(8))
	_, err := p.Ingest(context.Background(), []byte("x"), ".exe")
	if !errors.Is(err, extract.ErrUnsupported) {
		t.Errorf("error: got %v, want ErrUnsupported", err)
	}
}

func TestIngestFile(t *testing.T) {
	p, s := newTestPipeline(embedding.NewMockEmbedder(8))
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte(strings.Repeat("w", 300)), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := p.IngestFile(context.Background(), path)
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	awaitDone(t, res.Done)
	if s.Count() != 1 {
		t.Errorf("store count: got %d, want 1", s.Count())
	}
}

func TestIngestText_ConcurrentDocuments(t *testing.T) {
	p, s := newTestPipeline(embedding.NewMockEmbedder(16))
	const docs = 6
	results := make([]*Result, docs)
	for i := 0; i < docs; i++ {
		text := strings.Repeat(string(rune('a'+i)), 220) + "\n\n" + strings.Repeat("z", 220)
		results[i] = p.IngestText(text)
	}
	for _, r := range results {
		awaitDone(t, r.Done)
	}
	if s.Count() != docs*2 {
		t.Errorf("store count: got %d, want %d", s.Count(), docs*2)
	}
}
