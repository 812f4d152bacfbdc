package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// docxDocumentXMLPath is the path to the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// wpTag matches a paragraph element; wtTag matches a text run inside it.
// Attribute-tolerant patterns are required because real documents carry
// revision attributes on nearly every element.
var (
	wpClose = regexp.MustCompile(`</w:p>`)
	wtTag   = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
)

// extractDOCX extracts text from .docx bytes (OOXML zip). Text runs within a
// paragraph are joined with spaces; paragraphs are separated by blank lines so
// the chunker treats each paragraph as a boundary.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract DOCX: not a zip: %w", err)
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name != docxDocumentXMLPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("extract DOCX: open %s: %w", f.Name, err)
		}
		docXML, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("extract DOCX: read %s: %w", f.Name, err)
		}
		break
	}
	if docXML == nil {
		return "", fmt.Errorf("extract DOCX: %s not found", docxDocumentXMLPath)
	}

	var out strings.Builder
	for _, paragraph := range wpClose.Split(string(docXML), -1) {
		runs := wtTag.FindAllStringSubmatch(paragraph, -1)
		if len(runs) == 0 {
			continue
		}
		parts := make([]string, 0, len(runs))
		for _, r := range runs {
			if t := strings.TrimSpace(r[1]); t != "" {
				parts = append(parts, t)
			}
		}
		if len(parts) == 0 {
			continue
		}
		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(strings.Join(parts, " "))
	}
	return out.String(), nil
}
