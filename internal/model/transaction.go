package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one money movement extracted from a bank statement.
// Expense and income are kept as separate non-negative amounts because
// statements print them in separate columns.
type Transaction struct {
	Bank          string          `json:"bank"`
	Date          time.Time       `json:"transaction_date"`
	Description   string          `json:"description"`
	ExpenseAmount decimal.Decimal `json:"expense_amount"`
	IncomeAmount  decimal.Decimal `json:"income_amount"`
	Category      Category        `json:"category"`
	ProofDocument string          `json:"proof_document"`
}

const dateFormat = "2006-01-02"

// Signature returns a deterministic composite key for the transaction,
// used for de-duplication and the permanent-ignore list. Category and
// proof document are excluded so the same movement keeps its signature
// across categorization and file renames.
func (t Transaction) Signature() string {
	return strings.Join([]string{
		t.Bank,
		t.Date.Format(dateFormat),
		t.Description,
		t.ExpenseAmount.String(),
		t.IncomeAmount.String(),
	}, "|")
}
