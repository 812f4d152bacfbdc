// Package extract provides plain-text extraction from uploaded document formats.
package extract

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned when the document format is not recognized.
// Handlers map it to a validation failure rather than an internal error.
var ErrUnsupported = errors.New("unsupported document type")

// supportedExts maps recognized file extensions (with leading dot) to true.
var supportedExts = map[string]bool{
	".pdf":  true,
	".docx": true,
	".xlsx": true,
	".txt":  true,
	".md":   true,
}

// Supported reports whether ext (lowercase, with leading dot) is an extractable format.
func Supported(ext string) bool {
	return supportedExts[ext]
}

// Extractor extracts plain text from document bytes.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractBytes extracts text from content based on ext (lowercase, with leading
// dot). PDF pages and spreadsheet sheets are separated by blank lines so the
// chunker sees them as boundaries. Returns ErrUnsupported for unknown formats.
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	switch ext {
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractDOCX(content)
	case ".xlsx":
		return extractExcel(content)
	case ".txt", ".md":
		return extractPlain(content)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}
