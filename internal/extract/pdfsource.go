package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFSource reads tabular content out of PDF statements using the
// ledongthuc/pdf library. Words on a text row are split into cells
// wherever the horizontal gap exceeds columnGap points; statement
// tables keep their amounts in widely separated columns, so the gap is
// a reliable separator. This is a thin best-effort capability — the
// extractors never depend on more structure than rows of cells.
type PDFSource struct{}

// NewPDFSource creates a PDF-backed TableSource.
func NewPDFSource() *PDFSource {
	return &PDFSource{}
}

const columnGap = 15.0

// Read extracts page text and one table per page from a PDF file.
func (s *PDFSource) Read(path string) (doc *Document, err error) {
	// The library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading pdf %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	doc = &Document{}
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}

		var textLines []string
		var table Table
		for _, row := range rows {
			words := append([]pdf.Text(nil), row.Content...)
			sort.Slice(words, func(a, b int) bool { return words[a].X < words[b].X })

			textLines = append(textLines, joinWords(words))
			table = append(table, splitCells(words))
		}

		doc.Pages = append(doc.Pages, Page{
			Text:   strings.Join(textLines, "\n"),
			Tables: []Table{table},
		})
	}
	return doc, nil
}

func joinWords(words []pdf.Text) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		if s := strings.TrimSpace(w.S); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// splitCells groups a row's words into cells on horizontal gaps.
func splitCells(words []pdf.Text) []string {
	var cells []string
	var current []string
	var prevEnd float64

	flush := func() {
		if len(current) > 0 {
			cells = append(cells, strings.Join(current, " "))
			current = nil
		}
	}

	for _, w := range words {
		s := strings.TrimSpace(w.S)
		if s == "" {
			continue
		}
		if len(current) > 0 && w.X-prevEnd > columnGap {
			flush()
		}
		current = append(current, s)
		prevEnd = w.X + w.W
	}
	flush()
	return cells
}
