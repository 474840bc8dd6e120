package extract

import (
	"fmt"
	"log/slog"
	"sort"
)

// Limits bounds the work each extractor performs. Zero values fall back to
// DefaultLimits.
type Limits struct {
	// MaxDocumentBytes caps PDF, word and spreadsheet input files.
	MaxDocumentBytes int64 `json:"max_document_bytes" yaml:"max_document_bytes"`

	// MaxSheetRows caps rows read per spreadsheet sheet.
	MaxSheetRows int `json:"max_sheet_rows" yaml:"max_sheet_rows"`

	// MaxSheetTextRows caps how many rows of each sheet are rendered into
	// the extracted text (the table keeps the full capped grid).
	MaxSheetTextRows int `json:"max_sheet_text_rows" yaml:"max_sheet_text_rows"`
}

// DefaultLimits returns the caps used by the original corpus: 50 MB
// documents, 1,000 rows per sheet, 50 rows of sheet text.
func DefaultLimits() Limits {
	return Limits{
		MaxDocumentBytes: 50 * 1024 * 1024,
		MaxSheetRows:     1000,
		MaxSheetTextRows: 50,
	}
}

func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	if l.MaxDocumentBytes <= 0 {
		l.MaxDocumentBytes = def.MaxDocumentBytes
	}
	if l.MaxSheetRows <= 0 {
		l.MaxSheetRows = def.MaxSheetRows
	}
	if l.MaxSheetTextRows <= 0 {
		l.MaxSheetTextRows = def.MaxSheetTextRows
	}
	return l
}

// Registry maps lowercase file types to extractors. The mapping is closed:
// built-in document extractors are registered at construction, and the image
// extractor is added by the pipeline that owns the OCR engine.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry builds a registry with the built-in document extractors.
// logger may be nil, in which case slog.Default() is used.
func NewRegistry(limits Limits, logger *slog.Logger) *Registry {
	limits = limits.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	r := &Registry{extractors: make(map[string]Extractor)}
	pdf := NewPDFExtractor(limits.MaxDocumentBytes, logger)
	word := NewWordExtractor(limits.MaxDocumentBytes, logger)
	sheet := NewSpreadsheetExtractor(limits, logger)

	for _, e := range []Extractor{pdf, word, sheet} {
		for _, t := range e.SupportedFormats() {
			r.extractors[t] = e
		}
	}
	return r
}

// Get returns the extractor for a lowercase file type.
func (r *Registry) Get(fileType string) (Extractor, error) {
	e, ok := r.extractors[fileType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, fileType)
	}
	return e, nil
}

// Register binds a file type to an extractor, replacing any existing binding.
func (r *Registry) Register(fileType string, e Extractor) {
	r.extractors[fileType] = e
}

// SupportedTypes returns the registered file types, sorted.
func (r *Registry) SupportedTypes() []string {
	types := make([]string, 0, len(r.extractors))
	for t := range r.extractors {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// IsSupported reports whether a file type has a registered extractor.
func (r *Registry) IsSupported(fileType string) bool {
	_, ok := r.extractors[fileType]
	return ok
}
