package extract

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banklens-dev/banklens/internal/amount"
	"github.com/banklens-dev/banklens/internal/model"
)

// SGExtractor parses Société Générale chequing statements. SG tables
// have a variable number of leading columns, so the amount columns are
// addressed from the end of the row; the final credit balance is not a
// table row but a line of page text on one of the trailing pages.
type SGExtractor struct {
	src TableSource
}

// NewSGExtractor creates an extractor for SG statements.
func NewSGExtractor(src TableSource) *SGExtractor {
	return &SGExtractor{src: src}
}

// Header line: "... du 09/04/2021 au 06/05/2021 ...".
var sgPeriodPattern = regexp.MustCompile(`du (\d{2})/(\d{2})/(\d{4}) au (\d{2})/(\d{2})/(\d{4})`)

// Trailing-page line: "NOUVEAU SOLDE AU 06/05/2021 + 26.198,31".
var sgFinalBalancePattern = regexp.MustCompile(`NOUVEAU SOLDE AU \d{2}/\d{2}/\d{4} \+? ?([\d.,]+)`)

var sgLayout = tableLayout{
	minColumns:    5,
	dateCol:       0,
	descCol:       2,
	expenseCol:    -2,
	incomeCol:     -1,
	openingMarker: "SOLDE PRÉCÉDENT AU",
	totalsByShape: true,
	parseRowDate:  parseSlashDate,
}

// Bank returns the bank nomination.
func (e *SGExtractor) Bank() string { return "SG" }

// Extract parses an SG PDF statement.
func (e *SGExtractor) Extract(docPath string) (*model.Statement, error) {
	doc, err := e.src.Read(docPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", docPath, err)
	}
	if len(doc.Pages) == 0 {
		return nil, &UnsupportedDocumentError{Document: docPath, Reason: "document has no pages"}
	}

	p, ok := sgPeriod(doc.Pages[0].Text)
	if !ok {
		return nil, &UnsupportedDocumentError{Document: docPath, Reason: "statement period not found in header"}
	}

	st := &model.Statement{
		ProofDocument: docPath,
		StartDate:     p.start,
		EndDate:       p.end,
	}
	tp := newTableParser(sgLayout, e.Bank(), p, st)
	for _, page := range doc.Pages {
		for _, t := range page.Tables {
			tp.parseTable(t)
		}
	}

	// The final balance appears in page text near the end of the
	// document; scan pages back to front.
	for i := len(doc.Pages) - 1; i >= 0; i-- {
		if v, ok := sgFinalBalance(doc.Pages[i].Text); ok {
			st.FinalCreditBalance = v
			break
		}
	}

	return st, nil
}

func sgPeriod(headerText string) (period, bool) {
	m := sgPeriodPattern.FindStringSubmatch(headerText)
	if m == nil {
		return period{}, false
	}
	start, okS := numericDate(m[1], m[2], m[3])
	end, okE := numericDate(m[4], m[5], m[6])
	if !okS || !okE {
		return period{}, false
	}
	return period{start: start, end: end}, true
}

func sgFinalBalance(text string) (decimal.Decimal, bool) {
	m := sgFinalBalancePattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, false
	}
	parsed, value := amount.Parse(m[1])
	if !parsed || value.IsZero() {
		return decimal.Zero, false
	}
	return value, true
}

func numericDate(day, month, year string) (time.Time, bool) {
	t, err := time.Parse("02/01/2006", fmt.Sprintf("%s/%s/%s", day, month, year))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseSlashDate parses a full "dd/mm/yyyy" row date; SG rows carry the
// year, so no period disambiguation is needed.
func parseSlashDate(cellText string, _ period) (time.Time, bool) {
	t, err := time.Parse("02/01/2006", cellText)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
