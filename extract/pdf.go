package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor parses PDF files page by page.
type PDFExtractor struct {
	maxBytes int64
	logger   *slog.Logger
}

func NewPDFExtractor(maxBytes int64, logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{maxBytes: maxBytes, logger: logger}
}

func (e *PDFExtractor) SupportedFormats() []string { return []string{"pdf"} }

func (e *PDFExtractor) Parse(ctx context.Context, path string) (*ParsedDocument, error) {
	size, err := StatFile(path, e.maxBytes)
	if err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	metadata := map[string]any{
		"size":  size,
		"pages": totalPages,
	}
	addPDFInfo(metadata, reader.Trailer().Key("Info"))

	var sb strings.Builder
	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := pageText(page)
		if err != nil {
			// Single bad pages must not abort the document.
			e.logger.Warn("pdf: page extraction failed", "file", path, "page", i, "error", err)
			fmt.Fprintf(&sb, "\n--- Page %d ---\n[error reading page %d: %v]\n", i, i, err)
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n--- Page %d ---\n%s\n", i, text)
	}

	extracted := strings.TrimSpace(sb.String())
	metadata["total_characters"] = len(extracted)
	metadata["total_words"] = wordCount(extracted)

	e.logger.Info("pdf: parsing complete",
		"file", path, "pages", totalPages, "characters", len(extracted))

	return &ParsedDocument{
		Format:        FormatPDF,
		ExtractedText: extracted,
		Tables:        DetectTextTables(extracted),
		Metadata:      metadata,
		Success:       true,
	}, nil
}

// pageText wraps GetPlainText; the pdf library panics on some malformed
// content streams, and a panicking page is a sub-unit failure, not a
// document failure.
func pageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return page.GetPlainText(nil)
}

// addPDFInfo copies the document information dictionary into metadata,
// skipping absent or non-string entries.
func addPDFInfo(metadata map[string]any, info pdf.Value) {
	if info.Kind() != pdf.Dict {
		return
	}
	keys := []struct{ dict, meta string }{
		{"Title", "title"},
		{"Author", "author"},
		{"Subject", "subject"},
		{"Creator", "creator"},
		{"Producer", "producer"},
		{"CreationDate", "creation_date"},
		{"ModDate", "modification_date"},
	}
	for _, k := range keys {
		v := info.Key(k.dict)
		if v.Kind() != pdf.String {
			continue
		}
		if s := strings.TrimSpace(v.Text()); s != "" {
			metadata[k.meta] = s
		}
	}
}
