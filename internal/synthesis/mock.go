package synthesis

import (
	"context"
	"strings"

	"github.com/hyperjump/kotae/pkg/utils"
)

// MockSynthesizer is a deterministic offline synthesizer for tests and demo
// mode. It cannot reason about the question; it answers from the presence or
// absence of context.
type MockSynthesizer struct{}

// NewMockSynthesizer returns an offline synthesizer.
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{}
}

// Synthesize returns the not-found reply for empty context, otherwise a short
// answer quoting the start of the context.
func (m *MockSynthesizer) Synthesize(ctx context.Context, question, contextText string) (string, error) {
	if strings.TrimSpace(contextText) == "" {
		return NotFoundAnswer, nil
	}
	return "Based on the document: " + utils.Truncate(strings.TrimSpace(contextText), 200), nil
}

// Close is a no-op for MockSynthesizer.
func (m *MockSynthesizer) Close() error {
	return nil
}
