// Package extract converts uploaded document files into normalized
// ParsedDocument records. Each supported family (PDF, word-processor
// documents, spreadsheets, raster images) has its own Extractor; the
// Registry maps declared file types to extractors.
package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/wicaksana/docintake/classify"
)

// Format identifies the family of a processed document.
type Format string

const (
	FormatPDF         Format = "pdf"
	FormatWord        Format = "word"
	FormatSpreadsheet Format = "spreadsheet"
	FormatImage       Format = "image"
	FormatUnknown     Format = "unknown"
)

// Table is a detected tabular region: ordered rows of cell strings.
// Immutable once constructed; owned by the ParsedDocument containing it.
type Table struct {
	Rows      [][]string `json:"rows"`
	HasHeader bool       `json:"has_header"`
}

// ParsedDocument is the normalized output of every extractor and of the
// pipeline itself. Metadata values are scalars only (strings, ints,
// floats); keys vary by format.
//
// Invariant: Success=false implies empty ExtractedText, nil Tables, and nil
// Classification.
type ParsedDocument struct {
	Format         Format                   `json:"format"`
	ExtractedText  string                   `json:"extracted_text"`
	Tables         []Table                  `json:"tables"`
	Metadata       map[string]any           `json:"metadata"`
	Classification *classify.Classification `json:"classification,omitempty"`
	Success        bool                     `json:"success"`
	Error          string                   `json:"error,omitempty"`
}

// Failed builds the canonical failure record for the invariant above.
func Failed(format Format, errMsg string) *ParsedDocument {
	return &ParsedDocument{
		Format:   format,
		Metadata: map[string]any{},
		Success:  false,
		Error:    errMsg,
	}
}

// Extractor parses one family of document files.
type Extractor interface {
	// Parse reads the file at path and returns its normalized record. A
	// returned error means the whole document failed; recoverable sub-unit
	// failures (a single bad page or sheet) are reported inline in the
	// extracted text instead.
	Parse(ctx context.Context, path string) (*ParsedDocument, error)

	// SupportedFormats lists the lowercase file types this extractor accepts.
	SupportedFormats() []string
}

// StatFile verifies the file exists and is within maxBytes, returning its
// size. Runs before any parsing work so oversized input costs nothing.
func StatFile(path string, maxBytes int64) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return 0, fmt.Errorf("%w: %d bytes (limit %d)", ErrSizeExceeded, info.Size(), maxBytes)
	}
	return info.Size(), nil
}

// FormatForType maps a lowercase file type tag to its Format family.
func FormatForType(fileType string) Format {
	switch strings.ToLower(fileType) {
	case "pdf":
		return FormatPDF
	case "docx", "doc":
		return FormatWord
	case "xlsx", "xls":
		return FormatSpreadsheet
	case "png", "jpg", "jpeg", "bmp", "tiff", "gif":
		return FormatImage
	default:
		return FormatUnknown
	}
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
