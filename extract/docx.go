package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// WordExtractor parses word-processor documents by walking the OOXML
// package directly. Legacy .doc input is accepted best-effort: a real
// binary .doc is not a ZIP and fails with a document-level error.
type WordExtractor struct {
	maxBytes int64
	logger   *slog.Logger
}

func NewWordExtractor(maxBytes int64, logger *slog.Logger) *WordExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordExtractor{maxBytes: maxBytes, logger: logger}
}

func (e *WordExtractor) SupportedFormats() []string { return []string{"docx", "doc"} }

func (e *WordExtractor) Parse(ctx context.Context, path string) (*ParsedDocument, error) {
	size, err := StatFile(path, e.maxBytes)
	if err != nil {
		return nil, err
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening word document: %w", err)
	}
	defer r.Close()

	fileIndex := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		fileIndex[f.Name] = f
	}

	docFile := fileIndex["word/document.xml"]
	if docFile == nil {
		return nil, fmt.Errorf("word/document.xml not found in document")
	}
	data, err := readZipFile(docFile)
	if err != nil {
		return nil, fmt.Errorf("reading document.xml: %w", err)
	}

	var doc wordDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document.xml: %w", err)
	}

	metadata := map[string]any{"size": size}
	addCoreProperties(metadata, fileIndex)

	// Paragraphs first, in reading order.
	var sb strings.Builder
	paragraphs := 0
	for _, para := range doc.Body.Paras {
		text := paraText(para)
		if text == "" {
			continue
		}
		paragraphs++
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	// Native tables appended after the body text, each rendered into the
	// extracted text and kept as a structured Table.
	var tables []Table
	for i, tbl := range doc.Body.Tables {
		rows := tableRows(tbl)
		if len(rows) < 2 {
			continue
		}
		tables = append(tables, Table{Rows: rows, HasHeader: looksLikeHeader(rows[0])})

		fmt.Fprintf(&sb, "\n--- Table %d ---\n", i+1)
		for _, row := range rows {
			sb.WriteString(strings.Join(row, " | "))
			sb.WriteString("\n")
		}
	}

	extracted := strings.TrimSpace(sb.String())
	metadata["paragraphs"] = paragraphs
	metadata["tables"] = len(tables)
	metadata["total_characters"] = len(extracted)
	metadata["total_words"] = wordCount(extracted)

	e.logger.Info("word: parsing complete",
		"file", path, "paragraphs", paragraphs, "tables", len(tables))

	return &ParsedDocument{
		Format:        FormatWord,
		ExtractedText: extracted,
		Tables:        tables,
		Metadata:      metadata,
		Success:       true,
	}, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// OOXML structures (simplified).
type wordDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    wordBody `xml:"body"`
}

type wordBody struct {
	Paras  []wordPara  `xml:"p"`
	Tables []wordTable `xml:"tbl"`
}

type wordPara struct {
	Runs []wordRun `xml:"r"`
}

type wordRun struct {
	Text []wordText `xml:"t"`
}

type wordText struct {
	Content string `xml:",chardata"`
}

type wordTable struct {
	Rows []wordRow `xml:"tr"`
}

type wordRow struct {
	Cells []wordCell `xml:"tc"`
}

type wordCell struct {
	Paras []wordPara `xml:"p"`
}

func paraText(para wordPara) string {
	var b strings.Builder
	for _, run := range para.Runs {
		for _, t := range run.Text {
			b.WriteString(t.Content)
		}
	}
	return strings.TrimSpace(b.String())
}

func tableRows(tbl wordTable) [][]string {
	rows := make([][]string, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			var cellText strings.Builder
			for _, p := range cell.Paras {
				if t := paraText(p); t != "" {
					if cellText.Len() > 0 {
						cellText.WriteString(" ")
					}
					cellText.WriteString(t)
				}
			}
			cells = append(cells, cellText.String())
		}
		rows = append(rows, cells)
	}
	return rows
}

// coreProperties mirrors docProps/core.xml, which mixes Dublin Core and
// OOXML namespaces.
type coreProperties struct {
	XMLName        xml.Name `xml:"coreProperties"`
	Title          string   `xml:"title"`
	Subject        string   `xml:"subject"`
	Creator        string   `xml:"creator"`
	Keywords       string   `xml:"keywords"`
	Description    string   `xml:"description"`
	LastModifiedBy string   `xml:"lastModifiedBy"`
	Revision       string   `xml:"revision"`
	Created        string   `xml:"created"`
	Modified       string   `xml:"modified"`
}

func addCoreProperties(metadata map[string]any, fileIndex map[string]*zip.File) {
	propsFile := fileIndex["docProps/core.xml"]
	if propsFile == nil {
		return
	}
	data, err := readZipFile(propsFile)
	if err != nil {
		return
	}
	var props coreProperties
	if err := xml.Unmarshal(data, &props); err != nil {
		return
	}

	set := func(key, value string) {
		if v := strings.TrimSpace(value); v != "" {
			metadata[key] = v
		}
	}
	set("title", props.Title)
	set("subject", props.Subject)
	set("author", props.Creator)
	set("keywords", props.Keywords)
	set("comments", props.Description)
	set("last_modified_by", props.LastModifiedBy)
	set("revision", props.Revision)
	set("created", props.Created)
	set("modified", props.Modified)
}
