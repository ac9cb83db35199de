package category

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/banklens-dev/banklens/internal/model"
)

// Decision is the outcome of one oracle resolution.
type Decision struct {
	Category model.Category
	Pattern  string // pattern to persist; empty means the transaction's own description
	Ignore   bool   // leave this transaction uncategorized forever
}

// Oracle chooses a category for a transaction no rule matches. The
// console implementation blocks on human input; the model implementation
// asks a classifier; tests use a scripted fake.
type Oracle interface {
	Resolve(txn model.Transaction, candidates []model.Category) (Decision, error)
	// RetryPattern is called when the previous pattern failed to match
	// the transaction it was written for.
	RetryPattern(txn model.Transaction) (string, error)
}

// Categorizer applies the rule store to transactions and falls back to
// an oracle on miss.
type Categorizer struct {
	store  *RuleStore
	oracle Oracle
}

// NewCategorizer creates a categorizer. oracle may be nil, in which
// case misses keep the default category even in interactive mode.
func NewCategorizer(store *RuleStore, oracle Oracle) *Categorizer {
	return &Categorizer{store: store, oracle: oracle}
}

// Categorize assigns a category to the transaction. On rule hit the
// category is set from the rule; on miss with interactive false the
// default stays; on miss with interactive true the oracle resolves it
// and the decision is persisted.
func (c *Categorizer) Categorize(txn model.Transaction, interactive bool) (model.Transaction, error) {
	if cat, ok := c.store.Lookup(txn); ok {
		if cat != "" {
			txn.Category = cat
		}
		return txn, nil
	}
	if !interactive || c.oracle == nil {
		return txn, nil
	}
	return c.resolve(txn)
}

// NeedsCategorization reports whether the transaction would require an
// oracle: no rule matches and either amount exceeds the threshold.
// Negligible transactions stay below the threshold and never prompt.
func (c *Categorizer) NeedsCategorization(txn model.Transaction, minAmount decimal.Decimal) bool {
	if _, ok := c.store.Lookup(txn); ok {
		return false
	}
	return txn.ExpenseAmount.GreaterThan(minAmount) || txn.IncomeAmount.GreaterThan(minAmount)
}

// resolve runs the oracle state machine: take a decision, and for a
// real category loop on the proposed pattern until a rule that actually
// matches this transaction is accepted. The store is persisted after
// every resolution, ignore included.
func (c *Categorizer) resolve(txn model.Transaction) (model.Transaction, error) {
	decision, err := c.oracle.Resolve(txn, model.AllCategories)
	if err != nil {
		return txn, err
	}

	if decision.Ignore {
		c.store.Ignore(txn.Signature())
		if err := c.store.Save(); err != nil {
			return txn, err
		}
		return txn, nil
	}

	if !decision.Category.Valid() {
		decision.Category = model.MiscellaneousOther
	}

	pattern := strings.TrimSpace(decision.Pattern)
	if pattern == "" {
		pattern = txn.Description
	}
	for {
		c.store.AddRule(pattern, decision.Category)
		if _, ok := c.store.Lookup(txn); ok {
			break
		}
		// The pattern has tokens absent from the description; back it
		// out and ask again.
		c.store.RemoveRule(pattern)
		pattern, err = c.oracle.RetryPattern(txn)
		if err != nil {
			return txn, err
		}
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			pattern = txn.Description
		}
	}

	txn.Category = decision.Category
	if err := c.store.Save(); err != nil {
		return txn, err
	}
	return txn, nil
}
