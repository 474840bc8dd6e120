// Package classify assigns a heuristic content classification to extracted
// document text. It is keyword-count based, fully deterministic, and keeps no
// state between calls.
package classify

import "strings"

// TechnicalLevel rates how much standards/code language a document contains.
type TechnicalLevel string

const (
	TechnicalLow    TechnicalLevel = "low"
	TechnicalMedium TechnicalLevel = "medium"
	TechnicalHigh   TechnicalLevel = "high"
)

// Classification is the result of classifying a block of extracted text.
type Classification struct {
	Category              string         `json:"category"`
	ConstructionRelevance float64        `json:"construction_relevance"`
	TaxRelevance          float64        `json:"tax_relevance"`
	TechnicalLevel        TechnicalLevel `json:"technical_level"`
	KeyTopics             []string       `json:"key_topics,omitempty"`
}

// Config carries the empirical scoring constants. They are behavior
// constants, not tunable knobs derived from data; change them only to match
// a different corpus.
type Config struct {
	// ConstructionDenominator normalizes the construction keyword count
	// into [0,1].
	ConstructionDenominator float64 `json:"construction_denominator" yaml:"construction_denominator"`

	// TaxDenominator normalizes the tax keyword count into [0,1].
	TaxDenominator float64 `json:"tax_denominator" yaml:"tax_denominator"`

	// TechnicalHighCount and TechnicalMediumCount are the standards-token
	// counts at which a document rates high respectively medium.
	TechnicalHighCount   int `json:"technical_high_count" yaml:"technical_high_count"`
	TechnicalMediumCount int `json:"technical_medium_count" yaml:"technical_medium_count"`

	// MaxKeyTopics caps the key_topics list.
	MaxKeyTopics int `json:"max_key_topics" yaml:"max_key_topics"`
}

// DefaultConfig returns the scoring constants used by the original corpus.
func DefaultConfig() Config {
	return Config{
		ConstructionDenominator: 10,
		TaxDenominator:          5,
		TechnicalHighCount:      3,
		TechnicalMediumCount:    1,
		MaxKeyTopics:            10,
	}
}

// category holds a named category and its keyword list. Declaration order
// matters: on tied counts the earlier category wins.
type category struct {
	name     string
	keywords []string
}

var categories = []category{
	{"rab", []string{"rencana anggaran biaya", "rab", "bill of quantity", "boq"}},
	{"contract", []string{"kontrak", "perjanjian", "agreement", "tender"}},
	{"specification", []string{"spesifikasi", "specification", "spec", "mutu"}},
	{"drawing", []string{"gambar kerja", "drawing", "denah", "potongan"}},
	{"report", []string{"laporan", "report", "progress", "evaluasi"}},
	{"invoice", []string{"invoice", "faktur", "tagihan", "pembayaran"}},
	{"permit", []string{"izin", "permit", "imb", "surat izin"}},
}

var constructionKeywords = []string{
	"bangunan", "konstruksi", "beton", "baja", "material",
	"volume", "struktur", "pondasi", "kolom", "balok",
	"arsitektur", "sipil", "mechanical", "electrical",
}

var taxKeywords = []string{
	"pajak", "pph", "ppn", "tarif", "withholding",
	"final", "fiscal", "tax", "npwp", "spt",
}

var technicalIndicators = []string{
	"sni", "astm", "din", "bs", "specification",
	"standard", "code", "regulation", "procedure",
}

// Classifier classifies extracted text. The zero value is not usable; build
// one with New.
type Classifier struct {
	cfg Config
}

// New returns a Classifier with the given scoring constants. Zero-valued
// fields fall back to DefaultConfig.
func New(cfg Config) *Classifier {
	def := DefaultConfig()
	if cfg.ConstructionDenominator <= 0 {
		cfg.ConstructionDenominator = def.ConstructionDenominator
	}
	if cfg.TaxDenominator <= 0 {
		cfg.TaxDenominator = def.TaxDenominator
	}
	if cfg.TechnicalHighCount <= 0 {
		cfg.TechnicalHighCount = def.TechnicalHighCount
	}
	if cfg.TechnicalMediumCount <= 0 {
		cfg.TechnicalMediumCount = def.TechnicalMediumCount
	}
	if cfg.MaxKeyTopics <= 0 {
		cfg.MaxKeyTopics = def.MaxKeyTopics
	}
	return &Classifier{cfg: cfg}
}

// Classify derives a Classification from text. It is a pure function of its
// input: identical text yields byte-for-byte identical output.
func (c *Classifier) Classify(text string) Classification {
	result := Classification{
		Category:       "unknown",
		TechnicalLevel: TechnicalLow,
	}
	if text == "" {
		return result
	}

	lower := strings.ToLower(text)

	// Category: strictly highest occurrence count wins, earlier declaration
	// wins ties.
	maxScore := 0
	for _, cat := range categories {
		score := countOccurrences(lower, cat.keywords)
		if score > maxScore {
			maxScore = score
			result.Category = cat.name
		}
	}

	// Relevance counts each keyword at most once; a document mentioning
	// "beton" fifty times is not five times more construction-related.
	constructionCount := countFound(lower, constructionKeywords)
	result.ConstructionRelevance = clamp01(float64(constructionCount) / c.cfg.ConstructionDenominator)

	taxCount := countFound(lower, taxKeywords)
	result.TaxRelevance = clamp01(float64(taxCount) / c.cfg.TaxDenominator)

	// Technical level counts repeats: a specification citing the same
	// standard three times rates high.
	technicalCount := countOccurrences(lower, technicalIndicators)
	switch {
	case technicalCount >= c.cfg.TechnicalHighCount:
		result.TechnicalLevel = TechnicalHigh
	case technicalCount >= c.cfg.TechnicalMediumCount:
		result.TechnicalLevel = TechnicalMedium
	}

	result.KeyTopics = c.keyTopics(lower)

	return result
}

// keyTopics collects keyword terms present in the text, in discovery order
// across the construction, tax, and technical lists, de-duplicated and
// capped at MaxKeyTopics.
func (c *Classifier) keyTopics(lower string) []string {
	seen := make(map[string]bool)
	var topics []string
	for _, list := range [][]string{constructionKeywords, taxKeywords, technicalIndicators} {
		for _, term := range list {
			if seen[term] || !strings.Contains(lower, term) {
				continue
			}
			seen[term] = true
			topics = append(topics, term)
			if len(topics) >= c.cfg.MaxKeyTopics {
				return topics
			}
		}
	}
	return topics
}

func countOccurrences(lower string, terms []string) int {
	n := 0
	for _, term := range terms {
		n += strings.Count(lower, term)
	}
	return n
}

func countFound(lower string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			n++
		}
	}
	return n
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
