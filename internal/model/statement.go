package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement is the reconciled result of parsing one source document:
// an ordered sequence of transactions plus the aggregates the bank
// declared for the period. The statement owns its transactions.
type Statement struct {
	Transactions         []Transaction   `json:"transactions"`
	TotalExpense         decimal.Decimal `json:"total_expense"`
	TotalIncome          decimal.Decimal `json:"total_income"`
	InitialCreditBalance decimal.Decimal `json:"initial_credit_balance"`
	FinalCreditBalance   decimal.Decimal `json:"final_credit_balance"`
	StartDate            time.Time       `json:"start_date"`
	EndDate              time.Time       `json:"end_date"`
	ProofDocument        string          `json:"proof_document"`
}

// SumExpense returns the sum of expense amounts over all transactions.
func (s *Statement) SumExpense() decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.Transactions {
		total = total.Add(t.ExpenseAmount)
	}
	return total
}

// SumIncome returns the sum of income amounts over all transactions.
func (s *Statement) SumIncome() decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.Transactions {
		total = total.Add(t.IncomeAmount)
	}
	return total
}

// ComputeFromTransactions derives the declared aggregates by summing the
// transactions. Used by extractors whose source format carries no printed
// totals (CSV exports): totals come from the rows, the period from the
// first and last transaction dates, and the balance delta from the totals
// with a zero initial balance.
func (s *Statement) ComputeFromTransactions() {
	s.TotalExpense = s.SumExpense()
	s.TotalIncome = s.SumIncome()
	s.FinalCreditBalance = s.InitialCreditBalance.Add(s.TotalIncome).Sub(s.TotalExpense)

	for _, t := range s.Transactions {
		if s.StartDate.IsZero() || t.Date.Before(s.StartDate) {
			s.StartDate = t.Date
		}
		if s.EndDate.IsZero() || t.Date.After(s.EndDate) {
			s.EndDate = t.Date
		}
	}
}

// RebindProofDocument points the statement and every transaction at a new
// source path. Used when a cached result is found for a renamed file.
func (s *Statement) RebindProofDocument(path string) {
	s.ProofDocument = path
	for i := range s.Transactions {
		s.Transactions[i].ProofDocument = path
	}
}
