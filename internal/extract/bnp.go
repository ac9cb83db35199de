package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/banklens-dev/banklens/internal/model"
)

// BNPExtractor parses BNP Paribas chequing statements. Hello Bank uses
// the same print layout under a different nomination.
type BNPExtractor struct {
	src  TableSource
	bank string
}

// NewBNPExtractor creates an extractor for BNP statements.
func NewBNPExtractor(src TableSource) *BNPExtractor {
	return &BNPExtractor{src: src, bank: "BNP"}
}

// NewHelloBankExtractor creates an extractor for Hello Bank statements,
// which share the BNP layout.
func NewHelloBankExtractor(src TableSource) *BNPExtractor {
	return &BNPExtractor{src: src, bank: "Hello Bank"}
}

var frenchMonths = map[string]time.Month{
	"janvier":   time.January,
	"février":   time.February,
	"mars":      time.March,
	"avril":     time.April,
	"mai":       time.May,
	"juin":      time.June,
	"juillet":   time.July,
	"août":      time.August,
	"septembre": time.September,
	"octobre":   time.October,
	"novembre":  time.November,
	"décembre":  time.December,
}

// Header line: "... du 6 janvier 2024 au 6 février 2024 ...".
var bnpPeriodPattern = regexp.MustCompile(`du (\d{1,2}) (\p{L}+) (\d{4}) au (\d{1,2}) (\p{L}+) (\d{4})`)

var bnpLayout = tableLayout{
	minColumns:    5,
	dateCol:       0,
	descCol:       1,
	expenseCol:    3,
	incomeCol:     4,
	headerLiteral: "Date",
	totalsMarker:  "TOTAL DES OPERATIONS",
	closingMarker: "SOLDE CREDITEUR",
	parseRowDate:  parseDayDotMonth,
}

// Bank returns the bank nomination.
func (e *BNPExtractor) Bank() string { return e.bank }

// Extract parses a BNP-layout PDF statement.
func (e *BNPExtractor) Extract(docPath string) (*model.Statement, error) {
	doc, err := e.src.Read(docPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", docPath, err)
	}
	if len(doc.Pages) == 0 {
		return nil, &UnsupportedDocumentError{Document: docPath, Reason: "document has no pages"}
	}

	p, ok := bnpPeriod(doc.Pages[0].Text)
	if !ok {
		return nil, &UnsupportedDocumentError{Document: docPath, Reason: "statement period not found in header"}
	}

	st := &model.Statement{
		ProofDocument: docPath,
		StartDate:     p.start,
		EndDate:       p.end,
	}
	tp := newTableParser(bnpLayout, e.bank, p, st)
	for _, page := range doc.Pages {
		for _, t := range page.Tables {
			tp.parseTable(t)
		}
	}
	return st, nil
}

// repairFrenchText fixes characters that PDF text extraction garbles in
// these statements: 'Ø' stands for 'é' and 'ß' for 'û' (aoßt → août).
// Exact contract with the observed extraction output.
func repairFrenchText(text string) string {
	text = strings.ReplaceAll(text, "Ø", "é")
	text = strings.ReplaceAll(text, "ß", "û")
	return text
}

func bnpPeriod(headerText string) (period, bool) {
	m := bnpPeriodPattern.FindStringSubmatch(repairFrenchText(headerText))
	if m == nil {
		return period{}, false
	}
	start, ok := frenchDate(m[1], m[2], m[3])
	if !ok {
		return period{}, false
	}
	end, ok := frenchDate(m[4], m[5], m[6])
	if !ok {
		return period{}, false
	}
	return period{start: start, end: end}, true
}

func frenchDate(day, monthName, year string) (time.Time, bool) {
	month, ok := frenchMonths[strings.ToLower(monthName)]
	if !ok {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(y, month, d, 0, 0, 0, 0, time.UTC), true
}

// parseDayDotMonth parses the "dd.mm" row date. The year is inferred
// from the statement period: a month equal to the period's start month
// belongs to the start year, anything else to the end year, which makes
// "31.12" land in the prior year of a period ending "06.01".
func parseDayDotMonth(cellText string, p period) (time.Time, bool) {
	s := strings.TrimSpace(cellText)
	if len(s) != 5 {
		return time.Time{}, false
	}
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	year := p.end.Year()
	if time.Month(month) == p.start.Month() {
		year = p.start.Year()
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
