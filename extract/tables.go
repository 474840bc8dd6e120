package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	numberToken = regexp.MustCompile(`\d+[.,]?\d*`)
	multiSpace  = regexp.MustCompile(`\s{2,}`)
)

// DetectTextTables finds table-like regions in plain extracted text. A line
// joins the current candidate when it carries at least two numeric tokens or
// uses a recognizable column separator (pipe, tab, or runs of spaces). Blank
// or prose lines close the candidate. Candidates with fewer than two rows
// are discarded as false positives.
//
// Best-effort and intentionally lossy: ambiguous layouts produce partial or
// no tables rather than garbage.
func DetectTextTables(text string) []Table {
	var tables []Table
	var current [][]string

	flush := func() {
		if len(current) >= 2 {
			tables = append(tables, Table{
				Rows:      current,
				HasHeader: looksLikeHeader(current[0]),
			})
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}

		row := splitTableRow(line)
		if row == nil {
			flush()
			continue
		}
		current = append(current, row)
	}
	flush()

	return tables
}

// splitTableRow splits a line into cells if it looks like a table row,
// returning nil otherwise.
func splitTableRow(line string) []string {
	numberCount := len(numberToken.FindAllString(line, -1))
	hasSeparator := strings.ContainsAny(line, "|\t") || multiSpace.MatchString(line)
	if numberCount < 2 && !hasSeparator {
		return nil
	}

	var parts []string
	switch {
	case strings.Contains(line, "|"):
		parts = strings.Split(line, "|")
	case strings.Contains(line, "\t"):
		parts = strings.Split(line, "\t")
	default:
		parts = multiSpace.Split(line, -1)
	}

	row := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			row = append(row, p)
		}
	}
	if len(row) == 0 {
		return nil
	}
	return row
}

// looksLikeHeader reports whether a first row reads as column labels: more
// than half of its cells are non-numeric.
func looksLikeHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	nonNumeric := 0
	for _, cell := range row {
		if !mostlyNumeric(cell) {
			nonNumeric++
		}
	}
	return float64(nonNumeric) > float64(len(row))/2
}

// mostlyNumeric reports whether a cell is a number once common formatting
// characters (separators, %, currency marks) are stripped.
func mostlyNumeric(cell string) bool {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '.' || r == ',' || r == '%' || r == '-' || unicode.IsSpace(r):
			return -1
		case r == 'R' || r == 'p': // "Rp" currency prefix
			return -1
		}
		return r
	}, cell)
	if cleaned == "" {
		return false
	}
	digits := 0
	for _, r := range cleaned {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return float64(digits)/float64(len([]rune(cleaned))) > 0.5
}
