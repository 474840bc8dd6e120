// Package ocr extracts text from raster images of documents and technical
// drawings. Each invocation races the OCR engine over several deterministic
// preprocessing variants of the image and keeps the attempt with the best
// average token confidence; no single preprocessing strategy wins across the
// variety of scan quality seen in uploaded drawings.
package ocr

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/wicaksana/docintake/extract"
)

// Variant names one deterministic preprocessing transformation tried as an
// OCR input.
type Variant string

const (
	VariantOriginal  Variant = "original"
	VariantGrayscale Variant = "grayscale"
	VariantEnhanced  Variant = "enhanced"
	VariantBinary    Variant = "binary"
)

// Word is one recognized token with the engine's 0-100 confidence estimate.
type Word struct {
	Text       string
	Confidence float64
}

// Engine runs optical character recognition over a single image. Engines
// are treated as external stateless services; implementations must be safe
// to call from concurrent extractor invocations.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) ([]Word, error)
}

// Config bounds and tunes the extractor. Zero values fall back to
// DefaultConfig.
type Config struct {
	// MaxImageBytes caps input image files.
	MaxImageBytes int64 `json:"max_image_bytes" yaml:"max_image_bytes"`

	// ConfidenceFloor is the per-token confidence below which recognized
	// words contribute neither text nor score. An empirical constant from
	// the original corpus; keep it unless re-tuning against real scans.
	ConfidenceFloor float64 `json:"confidence_floor" yaml:"confidence_floor"`
}

// DefaultConfig returns the caps used by the original corpus: 20 MB images,
// confidence floor 30.
func DefaultConfig() Config {
	return Config{
		MaxImageBytes:   20 * 1024 * 1024,
		ConfidenceFloor: 30,
	}
}

// attempt is one OCR trial. Ephemeral: only the winner's text and
// confidence survive into the result metadata.
type attempt struct {
	variant    Variant
	text       string
	confidence float64
}

// Extractor is the image extractor of the pipeline. It satisfies
// extract.Extractor.
type Extractor struct {
	engine Engine
	cfg    Config
	logger *slog.Logger
}

// NewExtractor builds an image extractor around an OCR engine. logger may
// be nil, in which case slog.Default() is used.
func NewExtractor(engine Engine, cfg Config, logger *slog.Logger) *Extractor {
	def := DefaultConfig()
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = def.MaxImageBytes
	}
	if cfg.ConfidenceFloor <= 0 {
		cfg.ConfidenceFloor = def.ConfidenceFloor
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{engine: engine, cfg: cfg, logger: logger}
}

func (e *Extractor) SupportedFormats() []string {
	return []string{"png", "jpg", "jpeg", "bmp", "tiff", "gif"}
}

func (e *Extractor) Parse(ctx context.Context, path string) (*extract.ParsedDocument, error) {
	size, err := e.validate(path)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Open(path)
	if err != nil {
		e.logger.Warn("ocr: image decode failed", "file", path, "error", err)
		return nil, extract.ErrImageLoad
	}

	bounds := img.Bounds()
	metadata := map[string]any{
		"size":   size,
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
	}

	attempts := e.runAttempts(ctx, img, metadata)

	// Selection: highest average confidence among attempts with non-empty
	// text; earlier variants win ties. Zero-token attempts stay recorded
	// in metadata but never contribute text.
	var best *attempt
	for i := range attempts {
		a := &attempts[i]
		if a.text == "" {
			continue
		}
		if best == nil || a.confidence > best.confidence {
			best = a
		}
	}

	extracted := ""
	if best != nil {
		extracted = best.text
		metadata["best_preprocessing"] = string(best.variant)
		metadata["confidence"] = best.confidence
	} else {
		metadata["confidence"] = 0.0
	}

	if extracted != "" {
		analyzeTechnicalContent(extracted, metadata)
	}
	analyzeDrawingContent(img, metadata)

	e.logger.Info("ocr: processing complete",
		"file", path, "attempts", len(attempts),
		"confidence", metadata["confidence"], "characters", len(extracted))

	var tables []extract.Table
	if extracted != "" {
		tables = extract.DetectTextTables(extracted)
	}

	return &extract.ParsedDocument{
		Format:        extract.FormatImage,
		ExtractedText: extracted,
		Tables:        tables,
		Metadata:      metadata,
		Success:       true,
	}, nil
}

// validate fails fast on missing, oversized, or unrecognized files before
// any decode work.
func (e *Extractor) validate(path string) (int64, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	supported := false
	for _, t := range e.SupportedFormats() {
		if t == ext {
			supported = true
			break
		}
	}
	if !supported {
		return 0, fmt.Errorf("%w: %s", extract.ErrUnsupportedType, ext)
	}
	return extract.StatFile(path, e.cfg.MaxImageBytes)
}

// runAttempts tries the engine against each preprocessing variant in fixed
// trial order, recording every attempt's confidence in metadata for
// diagnostics. Variants yielding empty text after trimming keep a
// confidence entry of 0.
func (e *Extractor) runAttempts(ctx context.Context, img image.Image, metadata map[string]any) []attempt {
	gray := grayscaleVariant(img)
	variants := []struct {
		name Variant
		img  image.Image
	}{
		{VariantOriginal, img},
		{VariantGrayscale, gray},
		{VariantEnhanced, enhancedVariant(gray)},
		{VariantBinary, binaryVariant(gray)},
	}

	attempts := make([]attempt, 0, len(variants))
	for _, v := range variants {
		a := attempt{variant: v.name}
		words, err := e.engine.Recognize(ctx, v.img)
		if err != nil {
			e.logger.Warn("ocr: recognition failed", "variant", string(v.name), "error", err)
		} else {
			a.text, a.confidence = e.joinWords(words)
		}
		metadata["confidence_"+string(v.name)] = a.confidence
		attempts = append(attempts, a)
	}
	return attempts
}

// joinWords filters tokens below the confidence floor, joins the survivors,
// and averages their confidences. No qualifying tokens means empty text and
// confidence 0.
func (e *Extractor) joinWords(words []Word) (string, float64) {
	var parts []string
	sum := 0.0
	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" || w.Confidence <= e.cfg.ConfidenceFloor {
			continue
		}
		parts = append(parts, text)
		sum += w.Confidence
	}
	if len(parts) == 0 {
		return "", 0
	}
	return strings.Join(parts, " "), sum / float64(len(parts))
}
