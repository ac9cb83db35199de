package extract

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banklens-dev/banklens/internal/amount"
	"github.com/banklens-dev/banklens/internal/model"
)

// period is the statement date range taken from the document header.
type period struct {
	start time.Time
	end   time.Time
}

// tableLayout describes one bank's table format: which column plays
// which role, the literal marker strings of the non-transaction rows,
// and how per-row dates are written. The marker strings are exact
// contracts with the bank's print layout — do not "improve" them.
type tableLayout struct {
	minColumns int

	dateCol    int
	descCol    int
	expenseCol int // negative = offset from the last column
	incomeCol  int

	headerLiteral string // date-cell literal of the column header row
	openingMarker string // date-cell substring of the opening balance row
	totalsMarker  string // date-cell literal of the declared totals row
	closingMarker string // date-cell substring of the closing balance row
	totalsByShape bool   // totals row = no date + both amounts present

	// parseRowDate parses the per-row date cell, resolving a missing
	// year against the statement period.
	parseRowDate func(cell string, p period) (time.Time, bool)
}

// tableParser applies one layout to table rows, accumulating into a
// statement. Row classification is stateful: the first closing-marker
// row before any transaction or totals row is the opening balance.
type tableParser struct {
	layout tableLayout
	bank   string
	period period
	st     *model.Statement

	sawTotals  bool
	openingSet bool
}

func newTableParser(layout tableLayout, bank string, p period, st *model.Statement) *tableParser {
	return &tableParser{layout: layout, bank: bank, period: p, st: st}
}

// parseTable feeds every row of a table through the classifier. Tables
// narrower than the layout's column count are not statement tables.
func (tp *tableParser) parseTable(t Table) {
	if len(t) == 0 || len(t[0]) < tp.layout.minColumns {
		return
	}
	for _, row := range t {
		tp.processRow(row)
	}
}

// processRow classifies one row by a fixed precedence of structural
// signals. The order is mandatory: marker rows must be recognized
// before amount-bearing rows, otherwise balance and totals lines are
// misread as transactions. Rows matching no case are ignored.
func (tp *tableParser) processRow(row []string) {
	l := tp.layout

	dateCell := cell(row, l.dateCol)

	// Column header row.
	if l.headerLiteral != "" && dateCell == l.headerLiteral {
		return
	}
	// Fully empty row.
	if emptyRow(row) {
		return
	}

	date, hasDate := l.parseRowDate(dateCell, tp.period)
	description := cell(row, l.descCol)
	hasExpense, expense := amount.Parse(cell(row, l.expenseCol))
	hasIncome, income := amount.Parse(cell(row, l.incomeCol))

	switch {
	case l.openingMarker != "" && strings.Contains(dateCell, l.openingMarker):
		tp.setInitial(income)

	case !hasDate && l.totalsMarker != "" && dateCell == l.totalsMarker:
		tp.st.TotalExpense = expense
		tp.st.TotalIncome = income
		tp.sawTotals = true

	case !hasDate && l.totalsByShape && hasExpense && hasIncome:
		tp.st.TotalExpense = expense
		tp.st.TotalIncome = income
		tp.sawTotals = true

	case !hasDate && l.closingMarker != "" && strings.Contains(dateCell, l.closingMarker):
		// The same marker opens and closes the statement; before any
		// transaction or totals row it carries the opening balance.
		if !tp.openingSet && !tp.sawTotals && len(tp.st.Transactions) == 0 {
			tp.setInitial(income)
		} else {
			tp.st.FinalCreditBalance = income
		}

	case !hasDate && hasIncome && description != "":
		// Opening balance row: no date, an income-side amount, a description.
		tp.setInitial(income)

	case hasDate && (hasExpense || hasIncome):
		tp.st.Transactions = append(tp.st.Transactions, model.Transaction{
			Bank:          tp.bank,
			Date:          date,
			Description:   description,
			ExpenseAmount: expense,
			IncomeAmount:  income,
			Category:      model.MiscellaneousOther,
			ProofDocument: tp.st.ProofDocument,
		})

	case !hasDate && !hasExpense && !hasIncome && description != "":
		// Continuation of a multi-line description cell.
		if n := len(tp.st.Transactions); n > 0 {
			tp.st.Transactions[n-1].Description += description
		}
	}
}

func (tp *tableParser) setInitial(v decimal.Decimal) {
	tp.st.InitialCreditBalance = v
	tp.openingSet = true
}
