package scan

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banklens-dev/banklens/internal/cache"
	"github.com/banklens-dev/banklens/internal/category"
	"github.com/banklens-dev/banklens/internal/extract"
	"github.com/banklens-dev/banklens/internal/model"
	"github.com/banklens-dev/banklens/internal/runlog"
)

// fakeExtractor serves canned statements keyed by document base name.
type fakeExtractor struct {
	statements map[string]model.Statement
	failures   map[string]error
}

func (f *fakeExtractor) Bank() string { return "BNP" }

func (f *fakeExtractor) Extract(docPath string) (*model.Statement, error) {
	name := filepath.Base(docPath)
	if err, ok := f.failures[name]; ok {
		return nil, err
	}
	st, ok := f.statements[name]
	if !ok {
		return nil, &extract.UnsupportedDocumentError{Document: docPath, Reason: "no fixture"}
	}
	st.ProofDocument = docPath
	st.RebindProofDocument(docPath)
	return &st, nil
}

// reconciled builds a statement with one expense transaction whose
// aggregates check out.
func reconciled(desc string, expense string) model.Statement {
	e := decimal.RequireFromString(expense)
	return model.Statement{
		InitialCreditBalance: decimal.NewFromInt(100),
		TotalExpense:         e,
		TotalIncome:          decimal.Zero,
		FinalCreditBalance:   decimal.NewFromInt(100).Sub(e),
		Transactions: []model.Transaction{{
			Bank:          "BNP",
			Date:          time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Description:   desc,
			ExpenseAmount: e,
			IncomeAmount:  decimal.Zero,
			Category:      model.MiscellaneousOther,
		}},
	}
}

func testOptions(t *testing.T, ex *fakeExtractor) (Options, string) {
	t.Helper()
	dir := t.TempDir()

	c, err := cache.Load(filepath.Join(dir, "cache.json"))
	require.NoError(t, err)
	store, err := category.LoadRuleStore(filepath.Join(dir, "rules.json"))
	require.NoError(t, err)

	r := extract.NewRegistry()
	r.Register(ex)

	docDir := filepath.Join(dir, "bnp")
	require.NoError(t, os.MkdirAll(docDir, 0o755))

	return Options{
		Registry:    r,
		Cache:       c,
		Categorizer: category.NewCategorizer(store, nil),
		MinAmount:   decimal.Zero,
	}, docDir
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRunExtractsCategorizesAndLogs(t *testing.T) {
	ex := &fakeExtractor{statements: map[string]model.Statement{
		"a.pdf": reconciled("CARTE CARREFOUR CITY", "42.50"),
		"b.pdf": reconciled("OPAQUE MERCHANT", "10"),
	}}
	opts, docDir := testOptions(t, ex)
	writeDoc(t, docDir, "a.pdf", "doc a")
	writeDoc(t, docDir, "b.pdf", "doc b")

	res, err := Run("BNP", docDir, opts)
	require.NoError(t, err)
	assert.NotEmpty(t, res.RunID)

	require.Len(t, res.Transactions, 2)
	assert.Equal(t, model.Groceries, res.Transactions[0].Category, "rule store applies during the scan")
	assert.Equal(t, model.MiscellaneousOther, res.Transactions[1].Category)
	assert.Equal(t, filepath.Join(docDir, "a.pdf"), res.Transactions[0].ProofDocument)

	require.Len(t, res.Entries, 2)
	for _, e := range res.Entries {
		assert.Equal(t, runlog.OutcomeExtracted, e.Outcome)
		assert.Equal(t, res.RunID, e.RunID)
		assert.Equal(t, "BNP", e.Bank)
		assert.Equal(t, "1 transactions", e.Detail)
	}
}

func TestRunSecondPassHitsCache(t *testing.T) {
	ex := &fakeExtractor{statements: map[string]model.Statement{
		"a.pdf": reconciled("CARTE CARREFOUR CITY", "42.50"),
	}}
	opts, docDir := testOptions(t, ex)
	writeDoc(t, docDir, "a.pdf", "doc a")

	_, err := Run("BNP", docDir, opts)
	require.NoError(t, err)

	// Break the extractor: a cache hit must never call it.
	ex.statements = nil
	res, err := Run("BNP", docDir, opts)
	require.NoError(t, err)

	require.Len(t, res.Entries, 1)
	assert.Equal(t, runlog.OutcomeCached, res.Entries[0].Outcome)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, filepath.Join(docDir, "a.pdf"), res.Transactions[0].ProofDocument)
}

func TestRunRenamedDocumentStillHitsAndRebinds(t *testing.T) {
	ex := &fakeExtractor{statements: map[string]model.Statement{
		"a.pdf": reconciled("CARTE CARREFOUR CITY", "42.50"),
	}}
	opts, docDir := testOptions(t, ex)
	writeDoc(t, docDir, "a.pdf", "same bytes")

	_, err := Run("BNP", docDir, opts)
	require.NoError(t, err)

	require.NoError(t, os.Rename(filepath.Join(docDir, "a.pdf"), filepath.Join(docDir, "z.pdf")))
	ex.statements = nil

	res, err := Run("BNP", docDir, opts)
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, runlog.OutcomeCached, res.Entries[0].Outcome)
	assert.Equal(t, filepath.Join(docDir, "z.pdf"), res.Transactions[0].ProofDocument)
}

func TestRunCollectsAndContinuesPastBadDocuments(t *testing.T) {
	broken := reconciled("CARTE CARREFOUR CITY", "42.50")
	broken.TotalExpense = decimal.NewFromInt(99) // fails reconciliation

	ex := &fakeExtractor{
		statements: map[string]model.Statement{
			"a.pdf": broken,
			"c.pdf": reconciled("OPAQUE MERCHANT", "10"),
		},
		failures: map[string]error{
			"b.pdf": &extract.UnsupportedDocumentError{Document: "b.pdf", Reason: "statement period not found in header"},
		},
	}
	var out bytes.Buffer
	opts, docDir := testOptions(t, ex)
	opts.Out = &out
	writeDoc(t, docDir, "a.pdf", "doc a")
	writeDoc(t, docDir, "b.pdf", "doc b")
	writeDoc(t, docDir, "c.pdf", "doc c")

	res, err := Run("BNP", docDir, opts)
	require.NoError(t, err)

	require.Len(t, res.Entries, 3)
	assert.Equal(t, runlog.OutcomeSkipped, res.Entries[0].Outcome)
	assert.Contains(t, res.Entries[0].Detail, "reconciliation failed")
	assert.Equal(t, runlog.OutcomeUnsupported, res.Entries[1].Outcome)
	assert.Equal(t, runlog.OutcomeExtracted, res.Entries[2].Outcome)

	// Only the good document contributed transactions.
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "OPAQUE MERCHANT", res.Transactions[0].Description)
	assert.Contains(t, out.String(), "warning")
}

func TestRunFailedExtractionIsNotCached(t *testing.T) {
	ex := &fakeExtractor{}
	opts, docDir := testOptions(t, ex)
	writeDoc(t, docDir, "a.pdf", "doc a")

	_, err := Run("BNP", docDir, opts)
	require.NoError(t, err)

	// Once the extractor can handle the document, the same content is
	// processed instead of replaying the failure.
	ex.statements = map[string]model.Statement{"a.pdf": reconciled("CARTE CARREFOUR CITY", "42.50")}
	res, err := Run("BNP", docDir, opts)
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, runlog.OutcomeExtracted, res.Entries[0].Outcome)
}

func TestRunSkipsDirectoriesAndDotfiles(t *testing.T) {
	ex := &fakeExtractor{statements: map[string]model.Statement{
		"a.pdf": reconciled("CARTE CARREFOUR CITY", "42.50"),
	}}
	opts, docDir := testOptions(t, ex)
	writeDoc(t, docDir, "a.pdf", "doc a")
	writeDoc(t, docDir, ".DS_Store", "junk")
	require.NoError(t, os.MkdirAll(filepath.Join(docDir, "archive"), 0o755))

	res, err := Run("BNP", docDir, opts)
	require.NoError(t, err)
	assert.Len(t, res.Entries, 1)
}

func TestRunUnknownBank(t *testing.T) {
	opts, docDir := testOptions(t, &fakeExtractor{})

	_, err := Run("monzo", docDir, opts)
	assert.Error(t, err)
}
