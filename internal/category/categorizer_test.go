package category

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banklens-dev/banklens/internal/model"
)

// scriptedOracle replays canned decisions and retry patterns.
type scriptedOracle struct {
	decisions []Decision
	retries   []string

	resolveCalls int
	retryCalls   int
}

func (o *scriptedOracle) Resolve(model.Transaction, []model.Category) (Decision, error) {
	d := o.decisions[o.resolveCalls]
	o.resolveCalls++
	return d, nil
}

func (o *scriptedOracle) RetryPattern(model.Transaction) (string, error) {
	p := o.retries[o.retryCalls]
	o.retryCalls++
	return p, nil
}

func TestCategorizeRuleHitSkipsOracle(t *testing.T) {
	oracle := &scriptedOracle{}
	c := NewCategorizer(newStore(t), oracle)

	out, err := c.Categorize(txnWith("CARTE CARREFOUR CITY"), true)
	require.NoError(t, err)
	assert.Equal(t, model.Groceries, out.Category)
	assert.Zero(t, oracle.resolveCalls)
}

func TestCategorizeNonInteractiveMissKeepsDefault(t *testing.T) {
	oracle := &scriptedOracle{}
	c := NewCategorizer(newStore(t), oracle)

	out, err := c.Categorize(txnWith("UNKNOWN MERCHANT"), false)
	require.NoError(t, err)
	assert.Equal(t, model.MiscellaneousOther, out.Category)
	assert.Zero(t, oracle.resolveCalls)
}

func TestCategorizePersistsOracleDecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	store, err := LoadRuleStore(path)
	require.NoError(t, err)

	oracle := &scriptedOracle{decisions: []Decision{
		{Category: model.Travel, Pattern: "Zanzibar"},
	}}
	c := NewCategorizer(store, oracle)

	out, err := c.Categorize(txnWith("HOTEL ZANZIBAR TOWN"), true)
	require.NoError(t, err)
	assert.Equal(t, model.Travel, out.Category)

	// The decision became a persisted rule: a fresh store resolves the
	// same description without any oracle.
	reloaded, err := LoadRuleStore(path)
	require.NoError(t, err)
	cat, ok := reloaded.Lookup(txnWith("HOTEL ZANZIBAR TOWN"))
	require.True(t, ok)
	assert.Equal(t, model.Travel, cat)
}

func TestCategorizeRetriesUntilPatternMatches(t *testing.T) {
	store := newStore(t)

	// First pattern has a token absent from the description; the oracle
	// is asked again until one matches.
	oracle := &scriptedOracle{
		decisions: []Decision{{Category: model.Housing, Pattern: "Greenhome Lyon"}},
		retries:   []string{"Nope Again", "Greenhome"},
	}
	c := NewCategorizer(store, oracle)

	out, err := c.Categorize(txnWith("PRLV GREENHOME PARIS"), true)
	require.NoError(t, err)
	assert.Equal(t, model.Housing, out.Category)
	assert.Equal(t, 2, oracle.retryCalls)

	// Rejected candidates were backed out of the store.
	_, ok := store.rules["Greenhome Lyon"]
	assert.False(t, ok)
	_, ok = store.rules["Nope Again"]
	assert.False(t, ok)
	assert.Equal(t, model.Housing, store.rules["Greenhome"])
}

func TestCategorizeEmptyPatternFallsBackToDescription(t *testing.T) {
	store := newStore(t)

	oracle := &scriptedOracle{decisions: []Decision{{Category: model.Salary}}}
	c := NewCategorizer(store, oracle)

	out, err := c.Categorize(txnWith("VIR EMPLOYER PAYROLL"), true)
	require.NoError(t, err)
	assert.Equal(t, model.Salary, out.Category)
	assert.Equal(t, model.Salary, store.rules["VIR EMPLOYER PAYROLL"])
}

func TestCategorizeInvalidOracleCategoryBecomesMiscellaneous(t *testing.T) {
	store := newStore(t)

	oracle := &scriptedOracle{decisions: []Decision{{Category: "SNACKS"}}}
	c := NewCategorizer(store, oracle)

	out, err := c.Categorize(txnWith("VENDING MACHINE"), true)
	require.NoError(t, err)
	assert.Equal(t, model.MiscellaneousOther, out.Category)
}

func TestCategorizeIgnoreDecisionIsPermanent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	store, err := LoadRuleStore(path)
	require.NoError(t, err)

	oracle := &scriptedOracle{decisions: []Decision{{Ignore: true}}}
	c := NewCategorizer(store, oracle)
	txn := txnWith("ONE-OFF TRANSFER")

	out, err := c.Categorize(txn, true)
	require.NoError(t, err)
	assert.Equal(t, model.MiscellaneousOther, out.Category)

	// A second encounter, even with a fresh store, never reaches the
	// oracle again.
	reloaded, err := LoadRuleStore(path)
	require.NoError(t, err)
	c2 := NewCategorizer(reloaded, oracle)
	_, err = c2.Categorize(txn, true)
	require.NoError(t, err)
	assert.Equal(t, 1, oracle.resolveCalls)
}

func TestNeedsCategorization(t *testing.T) {
	c := NewCategorizer(newStore(t), nil)
	min := decimal.NewFromInt(5)

	assert.False(t, c.NeedsCategorization(txnWith("CARREFOUR CITY"), min), "rule hit")

	small := txnWith("UNKNOWN KIOSK")
	small.ExpenseAmount = decimal.NewFromInt(3)
	assert.False(t, c.NeedsCategorization(small, min), "below threshold")

	big := txnWith("UNKNOWN KIOSK")
	big.ExpenseAmount = decimal.NewFromInt(50)
	assert.True(t, c.NeedsCategorization(big, min))

	incoming := txnWith("UNKNOWN SENDER")
	incoming.ExpenseAmount = decimal.Zero
	incoming.IncomeAmount = decimal.NewFromInt(50)
	assert.True(t, c.NeedsCategorization(incoming, min))
}
