// Package query answers natural-language questions against the ingested corpus.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/retrieval"
	"github.com/hyperjump/kotae/internal/store"
	"github.com/hyperjump/kotae/internal/synthesis"
	"go.uber.org/zap"
)

// contextDelimiter separates labeled chunks in the synthesis context.
const contextDelimiter = "\n---\n"

// Pipeline answers questions: embed, retrieve, assemble context, synthesize.
type Pipeline struct {
	store       *store.VectorStore
	embedder    embedding.Embedder
	synthesizer synthesis.Synthesizer
	topK        int
	logger      *zap.Logger // optional
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a logger for query events.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// NewPipeline creates a query pipeline retrieving topK chunks per question.
func NewPipeline(s *store.VectorStore, e embedding.Embedder, syn synthesis.Synthesizer, topK int, opts ...Option) *Pipeline {
	if topK <= 0 {
		topK = 4
	}
	p := &Pipeline{store: s, embedder: e, synthesizer: syn, topK: topK}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AnswerQuestion embeds the question, ranks stored chunks against it, and asks
// the synthesizer to answer from the retrieved context. An empty store is not
// an error: synthesis runs with empty context and is expected to reply that
// the answer was not found. Embedding or synthesis failures fail the call.
func (p *Pipeline) AnswerQuestion(ctx context.Context, question string) (string, []models.ScoredChunk, error) {
	queryEmb, err := p.embedder.Embed(ctx, question)
	if err != nil {
		return "", nil, fmt.Errorf("embed question: %w", err)
	}
	if queryEmb == nil {
		return "", nil, errors.New("embed question: empty embedding")
	}

	top := retrieval.Retrieve(queryEmb, p.store, p.topK)
	if p.logger != nil {
		p.logger.Debug("chunks retrieved", zap.Int("count", len(top)), zap.Int("store_size", p.store.Count()))
	}

	answer, err := p.synthesizer.Synthesize(ctx, question, BuildContext(top))
	if err != nil {
		return "", nil, fmt.Errorf("synthesize answer: %w", err)
	}
	return answer, top, nil
}

// BuildContext labels each retrieved chunk with its page number and joins them
// with an explicit delimiter, in ranked order.
func BuildContext(chunks []models.ScoredChunk) string {
	parts := make([]string, len(chunks))
	for i, sc := range chunks {
		parts[i] = fmt.Sprintf("Page:%d\n%s", sc.Chunk.Page, sc.Chunk.Text)
	}
	return strings.Join(parts, contextDelimiter)
}
