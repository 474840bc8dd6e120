package docintake

import (
	"archive/zip"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wicaksana/docintake/extract"
	"github.com/wicaksana/docintake/ocr"
)

// stubEngine satisfies ocr.Engine without a Tesseract installation.
type stubEngine struct {
	words []ocr.Word
}

func (s *stubEngine) Recognize(ctx context.Context, img image.Image) ([]ocr.Word, error) {
	return s.words, nil
}

// panicExtractor exercises the dispatch failure boundary.
type panicExtractor struct{}

func (panicExtractor) Parse(ctx context.Context, path string) (*extract.ParsedDocument, error) {
	panic("corrupt internal state")
}

func (panicExtractor) SupportedFormats() []string { return []string{"bin"} }

func newTestPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()
	opts = append([]Option{WithOCREngine(&stubEngine{})}, opts...)
	return New(DefaultConfig(), opts...)
}

// writeTestDOCX produces a minimal word document with the given paragraph.
func writeTestDOCX(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.docx")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	fw, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	xml := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body>
</w:document>`
	if _, err := fw.Write([]byte(xml)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessAttachesClassification(t *testing.T) {
	p := newTestPipeline(t)
	path := writeTestDOCX(t, "Kontrak kerja konstruksi beton sesuai SNI")

	doc := p.Process(context.Background(), path, "docx")
	if !doc.Success {
		t.Fatalf("Success = false, error = %q", doc.Error)
	}
	if doc.Classification == nil {
		t.Fatal("Classification = nil for non-empty text")
	}
	if doc.Classification.Category != "contract" {
		t.Errorf("Category = %q, want %q", doc.Classification.Category, "contract")
	}
}

func TestProcessNormalizesDeclaredType(t *testing.T) {
	p := newTestPipeline(t)
	path := writeTestDOCX(t, "Laporan harian")

	for _, declared := range []string{"DOCX", " docx ", "Docx"} {
		t.Run(declared, func(t *testing.T) {
			doc := p.Process(context.Background(), path, declared)
			if !doc.Success {
				t.Errorf("Process with declared type %q failed: %s", declared, doc.Error)
			}
		})
	}
}

func TestProcessInfersTypeFromExtension(t *testing.T) {
	p := newTestPipeline(t)
	path := writeTestDOCX(t, "Laporan harian")

	doc := p.Process(context.Background(), path, "")
	if !doc.Success {
		t.Fatalf("Success = false, error = %q", doc.Error)
	}
	if doc.Format != extract.FormatWord {
		t.Errorf("Format = %q, want %q", doc.Format, extract.FormatWord)
	}
}

func TestProcessUnsupportedType(t *testing.T) {
	p := newTestPipeline(t)

	doc := p.Process(context.Background(), "notes.txt", "txt")
	if doc.Success {
		t.Fatal("Success = true for unsupported type")
	}
	if doc.Format != extract.FormatUnknown {
		t.Errorf("Format = %q, want %q", doc.Format, extract.FormatUnknown)
	}
	if doc.Error != "unsupported file type: txt" {
		t.Errorf("Error = %q, want %q", doc.Error, "unsupported file type: txt")
	}
}

func TestProcessFailureInvariant(t *testing.T) {
	p := newTestPipeline(t)

	doc := p.Process(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"), "pdf")
	if doc.Success {
		t.Fatal("Success = true for missing file")
	}
	if doc.ExtractedText != "" || doc.Tables != nil || doc.Classification != nil {
		t.Errorf("failure record carries content: text=%q tables=%v classification=%v",
			doc.ExtractedText, doc.Tables, doc.Classification)
	}
	if !strings.Contains(doc.Error, "file not found") {
		t.Errorf("Error = %q, want file-not-found message", doc.Error)
	}
	if doc.Format != extract.FormatPDF {
		t.Errorf("Format = %q, want %q", doc.Format, extract.FormatPDF)
	}
}

func TestProcessRecoversExtractorPanic(t *testing.T) {
	p := newTestPipeline(t)
	p.registry.Register("bin", panicExtractor{})

	doc := p.Process(context.Background(), "file.bin", "bin")
	if doc.Success {
		t.Fatal("Success = true after extractor panic")
	}
	if !strings.Contains(doc.Error, "corrupt internal state") {
		t.Errorf("Error = %q, want panic message", doc.Error)
	}
}

func TestSupportedTypes(t *testing.T) {
	p := newTestPipeline(t)

	types := p.SupportedTypes()
	for _, want := range []string{"pdf", "docx", "doc", "xlsx", "xls", "png", "jpg", "jpeg", "bmp", "tiff", "gif"} {
		found := false
		for _, got := range types {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("SupportedTypes() missing %q: %v", want, types)
		}
	}

	if !p.IsSupported("PDF") {
		t.Error("IsSupported should normalize case")
	}
	if p.IsSupported("txt") {
		t.Error("IsSupported(txt) = true, want false")
	}
}

func TestProcessImageThroughPipeline(t *testing.T) {
	p := newTestPipeline(t, WithOCREngine(&stubEngine{
		words: []ocr.Word{
			{Text: "gambar", Confidence: 88},
			{Text: "denah", Confidence: 92},
		},
	}))

	img := image.NewGray(image.Rect(0, 0, 20, 20))
	path := filepath.Join(t.TempDir(), "scan.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	doc := p.Process(context.Background(), path, "png")
	if !doc.Success {
		t.Fatalf("Success = false, error = %q", doc.Error)
	}
	if doc.Format != extract.FormatImage {
		t.Errorf("Format = %q, want %q", doc.Format, extract.FormatImage)
	}
	if doc.ExtractedText != "gambar denah" {
		t.Errorf("ExtractedText = %q, want %q", doc.ExtractedText, "gambar denah")
	}
	if doc.Classification == nil || doc.Classification.Category != "drawing" {
		t.Errorf("Classification = %+v, want drawing category", doc.Classification)
	}
}
