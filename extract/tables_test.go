package extract

import "testing"

// ---------------------------------------------------------------------------
// DetectTextTables tests
// ---------------------------------------------------------------------------

func TestDetectTextTablesPipes(t *testing.T) {
	text := "Item | Qty | Price\nCement | 10 | 75000\nSand | 5 | 30000"

	tables := DetectTextTables(text)
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}

	tbl := tables[0]
	if len(tbl.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(tbl.Rows))
	}
	if !tbl.HasHeader {
		t.Error("HasHeader = false, want true for label row")
	}
	if got := tbl.Rows[0][0]; got != "Item" {
		t.Errorf("Rows[0][0] = %q, want %q", got, "Item")
	}
	if got := tbl.Rows[1][2]; got != "75000" {
		t.Errorf("Rows[1][2] = %q, want %q", got, "75000")
	}
}

func TestDetectTextTablesTabsAndSpaces(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"tabs", "Item\tQty\tPrice\nCement\t10\t75000"},
		{"multi space", "Item   Qty   Price\nCement   10   75000"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			tables := DetectTextTables(tt.text)
			if len(tables) != 1 {
				t.Fatalf("got %d tables, want 1", len(tables))
			}
			if len(tables[0].Rows) != 2 {
				t.Fatalf("got %d rows, want 2", len(tables[0].Rows))
			}
			if got := len(tables[0].Rows[0]); got != 3 {
				t.Errorf("header has %d cells, want 3", got)
			}
		})
	}
}

func TestDetectTextTablesNumericRows(t *testing.T) {
	// No separators, but two numeric tokens per line qualify.
	text := "1 pekerjaan persiapan 2500000\n2 pekerjaan tanah 1750000"

	tables := DetectTextTables(text)
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}
}

func TestDetectTextTablesSingleRowDiscarded(t *testing.T) {
	text := "some prose here\nItem | Qty | Price\nmore prose after"

	tables := DetectTextTables(text)
	if len(tables) != 0 {
		t.Errorf("got %d tables, want 0 for single-row candidate", len(tables))
	}
}

func TestDetectTextTablesProseBreaksCandidate(t *testing.T) {
	text := "A | 1\nB | 2\nThis sentence is ordinary prose\nC | 3\nD | 4"

	tables := DetectTextTables(text)
	if len(tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(tables))
	}
	if tables[0].Rows[0][0] != "A" || tables[1].Rows[0][0] != "C" {
		t.Errorf("tables split incorrectly: %v / %v", tables[0].Rows, tables[1].Rows)
	}
}

func TestDetectTextTablesEmptyInput(t *testing.T) {
	if tables := DetectTextTables(""); len(tables) != 0 {
		t.Errorf("got %d tables for empty input, want 0", len(tables))
	}
}

// ---------------------------------------------------------------------------
// Header heuristic tests
// ---------------------------------------------------------------------------

func TestLooksLikeHeader(t *testing.T) {
	cases := []struct {
		name string
		row  []string
		want bool
	}{
		{"labels", []string{"Item", "Qty", "Price"}, true},
		{"numbers", []string{"1", "10", "75000"}, false},
		{"currency", []string{"Rp 1.500.000", "2,5%", "10"}, false},
		{"mixed majority labels", []string{"Item", "Unit", "100"}, true},
		{"empty", nil, false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksLikeHeader(tt.row); got != tt.want {
				t.Errorf("looksLikeHeader(%v) = %v, want %v", tt.row, got, tt.want)
			}
		})
	}
}

func TestMostlyNumeric(t *testing.T) {
	cases := []struct {
		cell string
		want bool
	}{
		{"75000", true},
		{"1.500,25", true},
		{"Rp 2.500.000", true},
		{"12%", true},
		{"-42", true},
		{"Cement", false},
		{"K-300", true}, // formatting strip leaves mostly digits
		{"A-1", false},
		{"", false},
	}

	for _, tt := range cases {
		if got := mostlyNumeric(tt.cell); got != tt.want {
			t.Errorf("mostlyNumeric(%q) = %v, want %v", tt.cell, got, tt.want)
		}
	}
}
