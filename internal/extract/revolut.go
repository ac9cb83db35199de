package extract

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banklens-dev/banklens/internal/model"
)

// RevolutExtractor parses Revolut CSV account exports. The export has
// no printed totals or balances, so every row maps 1:1 to a transaction
// and the statement aggregates are computed from the rows afterwards.
type RevolutExtractor struct{}

// NewRevolutExtractor creates an extractor for Revolut CSV exports.
func NewRevolutExtractor() *RevolutExtractor {
	return &RevolutExtractor{}
}

// Required columns of the export. Order in the file does not matter.
var revolutColumns = []string{"Started Date", "Amount", "Fee", "Description"}

// Bank returns the bank nomination.
func (e *RevolutExtractor) Bank() string { return "Revolut" }

// Extract parses a Revolut CSV export.
func (e *RevolutExtractor) Extract(docPath string) (*model.Statement, error) {
	f, err := os.Open(docPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", docPath, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading revolut CSV %s: %w", docPath, err)
	}
	if len(records) == 0 {
		return nil, &UnsupportedDocumentError{Document: docPath, Reason: "empty CSV"}
	}

	cols, err := revolutHeader(records[0])
	if err != nil {
		return nil, &UnsupportedDocumentError{Document: docPath, Reason: err.Error()}
	}

	st := &model.Statement{ProofDocument: docPath}
	for i, rec := range records[1:] {
		txn, err := e.parseRow(rec, cols, docPath)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		st.Transactions = append(st.Transactions, txn)
	}

	st.ComputeFromTransactions()
	return st, nil
}

func revolutHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range revolutColumns {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return cols, nil
}

func (e *RevolutExtractor) parseRow(rec []string, cols map[string]int, docPath string) (model.Transaction, error) {
	dateStr := rec[cols["Started Date"]]
	date, err := parseISODate(dateStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", dateStr, err)
	}

	amt := parseSignedAmount(rec[cols["Amount"]])
	fee := parseSignedAmount(rec[cols["Fee"]])

	expense := decimal.Zero
	income := decimal.Zero
	switch {
	case amt.IsPositive():
		income = amt
	case amt.IsNegative():
		expense = amt.Abs()
	}
	// Fees are charged on top of the movement and always count as expense.
	expense = expense.Add(fee)

	return model.Transaction{
		Bank:          e.Bank(),
		Date:          date,
		Description:   rec[cols["Description"]],
		ExpenseAmount: expense,
		IncomeAmount:  income,
		Category:      model.MiscellaneousOther,
		ProofDocument: docPath,
	}, nil
}

// parseSignedAmount reads a signed decimal with optional comma decimal
// separator; malformed input counts as zero, matching the export's
// habit of leaving fee cells empty.
func parseSignedAmount(s string) decimal.Decimal {
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, " ", "")
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// parseISODate accepts the export's ISO-8601 timestamps with or without
// a time component.
func parseISODate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}
