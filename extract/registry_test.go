package extract

import (
	"errors"
	"testing"
)

func TestRegistryBuiltInExtractors(t *testing.T) {
	reg := NewRegistry(DefaultLimits(), nil)

	for _, fileType := range []string{"pdf", "docx", "doc", "xlsx", "xls"} {
		t.Run(fileType, func(t *testing.T) {
			e, err := reg.Get(fileType)
			if err != nil {
				t.Fatalf("Get(%q) returned error: %v", fileType, err)
			}
			found := false
			for _, f := range e.SupportedFormats() {
				if f == fileType {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("extractor for %q does not list it in SupportedFormats(): %v",
					fileType, e.SupportedFormats())
			}
		})
	}
}

func TestRegistryUnknownType(t *testing.T) {
	reg := NewRegistry(DefaultLimits(), nil)

	for _, fileType := range []string{"txt", "csv", "html", ""} {
		t.Run("type_"+fileType, func(t *testing.T) {
			e, err := reg.Get(fileType)
			if !errors.Is(err, ErrUnsupportedType) {
				t.Errorf("Get(%q) err = %v, want ErrUnsupportedType", fileType, err)
			}
			if e != nil {
				t.Errorf("Get(%q) returned non-nil extractor", fileType)
			}
		})
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry(DefaultLimits(), nil)

	if reg.IsSupported("webp") {
		t.Fatal("webp supported before registration")
	}
	reg.Register("webp", NewPDFExtractor(0, nil)) // any Extractor works as a stand-in
	if !reg.IsSupported("webp") {
		t.Fatal("webp not supported after Register")
	}
	if _, err := reg.Get("webp"); err != nil {
		t.Fatalf("Get after Register returned error: %v", err)
	}
}

func TestRegistrySupportedTypesSorted(t *testing.T) {
	reg := NewRegistry(DefaultLimits(), nil)

	types := reg.SupportedTypes()
	if len(types) == 0 {
		t.Fatal("no supported types")
	}
	for i := 1; i < len(types); i++ {
		if types[i-1] >= types[i] {
			t.Fatalf("types not sorted: %v", types)
		}
	}
}

func TestLimitsWithDefaults(t *testing.T) {
	got := Limits{MaxSheetRows: 20}.withDefaults()
	def := DefaultLimits()

	if got.MaxSheetRows != 20 {
		t.Errorf("MaxSheetRows = %d, want 20", got.MaxSheetRows)
	}
	if got.MaxDocumentBytes != def.MaxDocumentBytes {
		t.Errorf("MaxDocumentBytes = %d, want default %d", got.MaxDocumentBytes, def.MaxDocumentBytes)
	}
	if got.MaxSheetTextRows != def.MaxSheetTextRows {
		t.Errorf("MaxSheetTextRows = %d, want default %d", got.MaxSheetTextRows, def.MaxSheetTextRows)
	}
}
