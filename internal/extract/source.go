package extract

// Document is the tabular content of one source file, as produced by
// the external text-extraction capability.
type Document struct {
	Pages []Page
}

// Page holds the free-form text and zero or more tables of one page.
type Page struct {
	Text   string
	Tables []Table
}

// Table is an ordered list of rows, each a list of cells. Cells may be
// empty where the underlying layout had no text.
type Table [][]string

// TableSource reads tabular content from a document on disk. The PDF
// implementation lives in pdfsource.go; tests use in-memory fakes.
type TableSource interface {
	Read(path string) (*Document, error)
}

// cell returns the cell at index i, where a negative index addresses
// from the end of the row (trailing amount columns are stable across
// layout variants, leading columns are not). Out of range yields "".
func cell(row []string, i int) string {
	if i < 0 {
		i += len(row)
	}
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// emptyRow reports whether every cell is empty.
func emptyRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
