package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SpreadsheetExtractor parses workbooks sheet by sheet. Legacy .xls input
// is accepted best-effort; files excelize cannot open fail with a
// document-level error.
type SpreadsheetExtractor struct {
	limits Limits
	logger *slog.Logger
}

func NewSpreadsheetExtractor(limits Limits, logger *slog.Logger) *SpreadsheetExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpreadsheetExtractor{limits: limits.withDefaults(), logger: logger}
}

func (e *SpreadsheetExtractor) SupportedFormats() []string { return []string{"xlsx", "xls"} }

func (e *SpreadsheetExtractor) Parse(ctx context.Context, path string) (*ParsedDocument, error) {
	size, err := StatFile(path, e.limits.MaxDocumentBytes)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	metadata := map[string]any{
		"size":         size,
		"total_sheets": len(sheets),
		"sheet_names":  strings.Join(sheets, ", "),
	}

	var sb strings.Builder
	var tables []Table
	totalRows := 0
	totalColumns := 0

	for _, sheet := range sheets {
		fmt.Fprintf(&sb, "\n--- Sheet: %s ---\n", sheet)

		rows, err := e.sheetRows(f, sheet)
		if err != nil {
			// A single bad sheet must not abort the workbook.
			e.logger.Warn("xlsx: sheet extraction failed", "file", path, "sheet", sheet, "error", err)
			fmt.Fprintf(&sb, "[error reading sheet %s: %v]\n", sheet, err)
			continue
		}

		columns := 0
		for i, row := range rows {
			if len(row) > columns {
				columns = len(row)
			}
			if i < e.limits.MaxSheetTextRows {
				if line := strings.TrimSpace(strings.Join(row, " | ")); line != "" {
					sb.WriteString(line)
					sb.WriteString("\n")
				}
			}
		}
		totalRows += len(rows)
		if columns > totalColumns {
			totalColumns = columns
		}

		if len(rows) >= 2 {
			tables = append(tables, Table{Rows: rows, HasHeader: looksLikeHeader(rows[0])})
		}
	}

	extracted := strings.TrimSpace(sb.String())
	metadata["total_rows"] = totalRows
	metadata["max_columns"] = totalColumns
	metadata["total_characters"] = len(extracted)
	metadata["total_words"] = wordCount(extracted)

	e.logger.Info("xlsx: parsing complete",
		"file", path, "sheets", len(sheets), "rows", totalRows)

	return &ParsedDocument{
		Format:        FormatSpreadsheet,
		ExtractedText: extracted,
		Tables:        tables,
		Metadata:      metadata,
		Success:       true,
	}, nil
}

// sheetRows streams up to MaxSheetRows rows of data from one sheet,
// dropping rows that are entirely empty.
func (e *SpreadsheetExtractor) sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	iter, err := f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var rows [][]string
	for len(rows) < e.limits.MaxSheetRows && iter.Next() {
		cols, err := iter.Columns()
		if err != nil {
			return nil, err
		}
		empty := true
		for i, c := range cols {
			cols[i] = strings.TrimSpace(c)
			if cols[i] != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, cols)
		}
	}
	return rows, nil
}
