// Package docintake normalizes heterogeneous uploaded files (PDF, word
// documents, spreadsheets, raster images of technical drawings) into a
// single record: extracted text, structured tables, file metadata, and a
// heuristic content classification. It stores nothing and owns no network
// surface; callers hand it a file path and a declared type and receive a
// ParsedDocument back.
package docintake

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/wicaksana/docintake/classify"
	"github.com/wicaksana/docintake/extract"
	"github.com/wicaksana/docintake/ocr"
)

// Pipeline dispatches files to format extractors and attaches
// classification to their output. Each Process call is self-contained; a
// Pipeline is safe for concurrent use.
type Pipeline struct {
	registry   *extract.Registry
	classifier *classify.Classifier
	logger     *slog.Logger
}

// Option configures pipeline construction.
type Option func(*options)

type options struct {
	logger *slog.Logger
	engine ocr.Engine
}

// WithLogger sets the logger passed down to every component. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithOCREngine overrides the OCR engine. Defaults to a local Tesseract
// engine with the configured languages.
func WithOCREngine(engine ocr.Engine) Option {
	return func(o *options) { o.engine = engine }
}

// New builds a pipeline with the built-in extractors registered for every
// supported file type.
func New(cfg Config, opts ...Option) *Pipeline {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.engine == nil {
		o.engine = ocr.NewTesseractEngine(cfg.OCRLanguages...)
	}

	registry := extract.NewRegistry(cfg.Limits, o.logger)
	imageExtractor := ocr.NewExtractor(o.engine, cfg.OCR, o.logger)
	for _, t := range imageExtractor.SupportedFormats() {
		registry.Register(t, imageExtractor)
	}

	return &Pipeline{
		registry:   registry,
		classifier: classify.New(cfg.Classify),
		logger:     o.logger,
	}
}

// Process runs one file through the pipeline. declaredType is lower-cased
// before lookup; when empty, the type is inferred from the path extension.
// Process never panics and never returns an error: every failure becomes a
// ParsedDocument with Success=false and the failure message in Error.
func (p *Pipeline) Process(ctx context.Context, path, declaredType string) *extract.ParsedDocument {
	fileType := strings.ToLower(strings.TrimSpace(declaredType))
	if fileType == "" {
		fileType = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	extractor, err := p.registry.Get(fileType)
	if err != nil {
		p.logger.Warn("dispatch: unsupported file type", "file", path, "type", fileType)
		return extract.Failed(extract.FormatUnknown, fmt.Sprintf("unsupported file type: %s", fileType))
	}

	doc := p.runExtractor(ctx, extractor, path, fileType)
	if doc.Success && doc.ExtractedText != "" {
		c := p.classifier.Classify(doc.ExtractedText)
		doc.Classification = &c
	}

	p.logger.Info("dispatch: processing complete",
		"file", path, "type", fileType, "success", doc.Success,
		"characters", len(doc.ExtractedText), "tables", len(doc.Tables))
	return doc
}

// runExtractor is the failure boundary: extractor errors and panics both
// resolve to a Success=false record, never to a crash of the caller.
func (p *Pipeline) runExtractor(ctx context.Context, extractor extract.Extractor, path, fileType string) (doc *extract.ParsedDocument) {
	format := extract.FormatForType(fileType)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("dispatch: extractor panic", "file", path, "type", fileType, "panic", r)
			doc = extract.Failed(format, fmt.Sprintf("%v", r))
		}
	}()

	parsed, err := extractor.Parse(ctx, path)
	if err != nil {
		p.logger.Warn("dispatch: extraction failed", "file", path, "type", fileType, "error", err)
		return extract.Failed(format, err.Error())
	}
	return parsed
}

// SupportedTypes returns every file type the pipeline accepts, sorted.
func (p *Pipeline) SupportedTypes() []string {
	return p.registry.SupportedTypes()
}

// IsSupported reports whether a declared type routes to an extractor.
func (p *Pipeline) IsSupported(fileType string) bool {
	return p.registry.IsSupported(strings.ToLower(strings.TrimSpace(fileType)))
}
