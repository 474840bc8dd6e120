package docintake

import (
	"github.com/wicaksana/docintake/classify"
	"github.com/wicaksana/docintake/extract"
	"github.com/wicaksana/docintake/ocr"
)

// Config holds all configuration for the intake pipeline. The numeric
// constants (size caps, row cap, confidence floor, relevance denominators)
// are empirical values carried over from the corpus the pipeline was tuned
// on; they are configurable for behavior compatibility, not because better
// values are known.
type Config struct {
	// Limits bounds document extractor work (file size, sheet rows).
	Limits extract.Limits `json:"limits" yaml:"limits"`

	// OCR bounds and tunes the image extractor.
	OCR ocr.Config `json:"ocr" yaml:"ocr"`

	// OCRLanguages are the Tesseract language codes used by the default
	// engine. Ignored when an engine is injected with WithOCREngine.
	OCRLanguages []string `json:"ocr_languages" yaml:"ocr_languages"`

	// Classify carries the classifier scoring constants.
	Classify classify.Config `json:"classify" yaml:"classify"`
}

// DefaultConfig returns a Config with the corpus defaults: 50 MB documents,
// 20 MB images, 1,000 rows per sheet, OCR confidence floor 30, and
// English + Indonesian recognition.
func DefaultConfig() Config {
	return Config{
		Limits:       extract.DefaultLimits(),
		OCR:          ocr.DefaultConfig(),
		OCRLanguages: []string{"eng", "ind"},
		Classify:     classify.DefaultConfig(),
	}
}
