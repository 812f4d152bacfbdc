// Package chunker splits extracted document text into retrieval-sized chunks.
package chunker

import (
	"regexp"
	"strings"
)

// blankLine matches one or more blank lines (a newline, optional whitespace, newline).
var blankLine = regexp.MustCompile(`\n\s*\n`)

// Merge splits text on blank-line boundaries into trimmed, non-empty fragments
// and merges fragments shorter than minChars into the previous chunk, separated
// by a blank line. The first fragment always starts a chunk, so the output may
// begin with a chunk shorter than minChars. Empty input yields no chunks.
func Merge(text string, minChars int) []string {
	fragments := blankLine.Split(text, -1)
	merged := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		if len(fragment) < minChars && len(merged) > 0 {
			merged[len(merged)-1] += "\n\n" + fragment
			continue
		}
		merged = append(merged, fragment)
	}
	return merged
}
