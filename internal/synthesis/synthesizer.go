// Package synthesis produces natural-language answers from a question and
// retrieved document context.
package synthesis

import (
	"context"
	"fmt"
)

// NotFoundAnswer is the fixed reply the instruction template asks for when the
// answer is not contained in the provided context.
const NotFoundAnswer = "I couldn't find that in the document."

// Synthesizer generates an answer to a question given supporting context text.
type Synthesizer interface {
	Synthesize(ctx context.Context, question, contextText string) (string, error)
	Close() error
}

// BuildPrompt renders the fixed instruction template: answer from the context,
// and state explicitly when the answer is not contained in it.
func BuildPrompt(question, contextText string) string {
	return fmt.Sprintf(
		"You are an assistant. Use the CONTEXT to answer the QUESTION. "+
			"If the answer is not contained in the CONTEXT, say '%s'\n\n"+
			"CONTEXT:\n%s\n\nQUESTION:\n%s",
		NotFoundAnswer, contextText, question,
	)
}
