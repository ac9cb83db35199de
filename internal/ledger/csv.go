// Package ledger reads and writes ledger.csv, the flat sequence of
// categorized transactions handed to the reporting stage.
package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banklens-dev/banklens/internal/model"
)

// Header is the CSV header for ledger.csv.
const Header = "bank,date,description,expense,income,category,proof_document"

const (
	numFields   = 7
	dateFormat  = "2006-01-02"
	colBank     = 0
	colDate     = 1
	colDesc     = 2
	colExpense  = 3
	colIncome   = 4
	colCategory = 5
	colProof    = 6
)

// ReadTransactions reads all transactions from a ledger.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions to a ledger.csv writer
// (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendTransactions appends transactions to an existing ledger.csv
// writer (no header).
func AppendTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colBank] = txn.Bank
	row[colDate] = txn.Date.Format(dateFormat)
	row[colDesc] = txn.Description

	if !txn.ExpenseAmount.IsZero() {
		row[colExpense] = txn.ExpenseAmount.StringFixed(2)
	}
	if !txn.IncomeAmount.IsZero() {
		row[colIncome] = txn.IncomeAmount.StringFixed(2)
	}

	category := txn.Category
	if category == "" {
		category = model.MiscellaneousOther
	}
	row[colCategory] = string(category)
	row[colProof] = txn.ProofDocument

	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	expense := decimal.Zero
	if record[colExpense] != "" {
		expense, err = decimal.NewFromString(record[colExpense])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing expense %q: %w", record[colExpense], err)
		}
	}

	income := decimal.Zero
	if record[colIncome] != "" {
		income, err = decimal.NewFromString(record[colIncome])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing income %q: %w", record[colIncome], err)
		}
	}

	category, err := model.ParseCategory(record[colCategory])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("row category: %w", err)
	}

	return model.Transaction{
		Bank:          record[colBank],
		Date:          date,
		Description:   record[colDesc],
		ExpenseAmount: expense,
		IncomeAmount:  income,
		Category:      category,
		ProofDocument: record[colProof],
	}, nil
}
