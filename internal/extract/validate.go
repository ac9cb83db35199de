package extract

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/banklens-dev/banklens/internal/model"
)

// ReconciliationError describes one statement aggregate that does not
// match the sum of its transactions. Comparison is exact decimal
// equality; there is no tolerance.
type ReconciliationError struct {
	Field    string
	Declared decimal.Decimal
	Computed decimal.Decimal
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation failed: %s declared %s but computed %s",
		e.Field, e.Declared.String(), e.Computed.String())
}

// Validate cross-checks a statement's declared totals and final balance
// against its transactions. The first mismatch fails fast.
func Validate(st *model.Statement) error {
	income := st.SumIncome()
	if !st.TotalIncome.Equal(income) {
		return &ReconciliationError{Field: "total income", Declared: st.TotalIncome, Computed: income}
	}

	expense := st.SumExpense()
	if !st.TotalExpense.Equal(expense) {
		return &ReconciliationError{Field: "total expense", Declared: st.TotalExpense, Computed: expense}
	}

	final := st.InitialCreditBalance.Add(income).Sub(expense)
	if !st.FinalCreditBalance.Equal(final) {
		return &ReconciliationError{Field: "final credit balance", Declared: st.FinalCreditBalance, Computed: final}
	}

	return nil
}
