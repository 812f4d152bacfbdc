// Package ingest orchestrates document ingestion: extract, chunk, embed, store.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hyperjump/kotae/internal/chunker"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/extract"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pipeline ingests documents into the vector store. Extraction and chunking
// happen synchronously; embedding runs in the background so callers can reply
// before any embedding work starts.
type Pipeline struct {
	store     *store.VectorStore
	embedder  embedding.Embedder
	extractor *extract.Extractor
	minChars  int
	workers   int
	logger    *zap.Logger // optional; when set, logs ingestion progress
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a logger for ingestion events (chunk counts, embedding failures).
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithWorkers bounds the number of concurrent per-chunk embedding calls.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// NewPipeline creates an ingestion pipeline. minChars is the merge threshold
// for undersized chunks.
func NewPipeline(s *store.VectorStore, e embedding.Embedder, ex *extract.Extractor, minChars int, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:     s,
		embedder:  e,
		extractor: ex,
		minChars:  minChars,
		workers:   4,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result reports the synchronous outcome of an ingestion. Embedding continues
// in the background; Done is closed once every chunk has been processed and
// the surviving set appended to the store.
type Result struct {
	EstimatedChunks int
	Done            <-chan struct{}
}

// Ingest extracts text from content, chunks it, and returns before any
// embedding happens. Chunks whose embedding fails or comes back empty are
// dropped individually; the rest are appended to the store in sequence order.
// Extraction failure is fatal and leaves the store untouched. A cancelled ctx
// stops the ingestion before extraction starts; once this method returns, the
// background phase is detached and no longer observes ctx.
func (p *Pipeline) Ingest(ctx context.Context, content []byte, ext string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := p.extractor.ExtractBytes(content, ext)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	return p.IngestText(text), nil
}

// IngestFile reads the document at path and ingests it. Extraction is finished
// by the time IngestFile returns, so a temporary upload file may be removed
// immediately afterwards.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return p.Ingest(ctx, content, strings.ToLower(filepath.Ext(path)))
}

// IngestText chunks already-extracted text and spawns the background embedding
// phase. Never fails: empty text simply produces zero chunks.
func (p *Pipeline) IngestText(text string) *Result {
	texts := chunker.Merge(text, p.minChars)
	docID := uuid.New().String()[:8]
	if p.logger != nil {
		p.logger.Info("document chunked", zap.String("doc", docID), zap.Int("chunks", len(texts)))
	}
	done := make(chan struct{})
	go p.embedAndStore(docID, texts, done)
	return &Result{EstimatedChunks: len(texts), Done: done}
}

// embedAndStore embeds each chunk with bounded parallelism, then appends the
// successfully embedded chunks to the store in sequence order. Runs detached
// from any request context: an in-flight upload response never waits on it,
// and its failures only surface in the log.
func (p *Pipeline) embedAndStore(docID string, texts []string, done chan struct{}) {
	defer close(done)
	if len(texts) == 0 {
		return
	}
	ctx := context.Background()
	embedded := make([]*models.Chunk, len(texts))
	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			emb, err := p.embedder.Embed(ctx, text)
			if err != nil {
				if p.logger != nil {
					p.logger.Warn("chunk embedding failed, dropping chunk",
						zap.String("doc", docID), zap.Int("page", i+1), zap.Error(err))
				}
				return nil
			}
			if emb == nil {
				if p.logger != nil {
					p.logger.Warn("chunk embedding empty, dropping chunk",
						zap.String("doc", docID), zap.Int("page", i+1))
				}
				return nil
			}
			embedded[i] = &models.Chunk{
				ID:        fmt.Sprintf("%s-%d", docID, i),
				Text:      text,
				Embedding: emb,
				Page:      i + 1,
			}
			return nil
		})
	}
	_ = g.Wait()

	stored := 0
	for _, c := range embedded {
		if c == nil {
			continue
		}
		p.store.Append(c)
		stored++
	}
	if p.logger != nil {
		p.logger.Info("document processed",
			zap.String("doc", docID),
			zap.Int("stored", stored),
			zap.Int("dropped", len(texts)-stored),
			zap.Int("store_total", p.store.Count()))
	}
}
