// Package scan drives the per-directory batch pipeline: cache-wrapped
// extraction, reconciliation gating, categorization, and outcome
// collection. Documents are processed one at a time in listing order;
// one document's failure never blocks the rest of the batch.
package scan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/banklens-dev/banklens/internal/cache"
	"github.com/banklens-dev/banklens/internal/category"
	"github.com/banklens-dev/banklens/internal/extract"
	"github.com/banklens-dev/banklens/internal/model"
	"github.com/banklens-dev/banklens/internal/runlog"
)

// Options configures one scan run.
type Options struct {
	Registry    *extract.Registry
	Cache       *cache.Cache
	Categorizer *category.Categorizer
	Interactive bool
	MinAmount   decimal.Decimal
	Out         io.Writer // progress output; nil silences it
}

// Result is the outcome of scanning one bank directory.
type Result struct {
	RunID        string
	Transactions []model.Transaction
	Entries      []runlog.Entry
}

// Run scans every document in dir with the extractor registered for
// bank. Reconciliation failures and unsupported documents are recorded
// and skipped; remaining documents keep processing.
func Run(bank, dir string, opts Options) (*Result, error) {
	ex := opts.Registry.Get(bank)
	if ex == nil {
		return nil, fmt.Errorf("no extractor registered for bank %q", bank)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading statement dir: %w", err)
	}

	res := &Result{RunID: uuid.NewString()}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		docPath := filepath.Join(dir, e.Name())
		entry, err := opts.processDocument(ex, bank, docPath, res)
		res.Entries = append(res.Entries, entry)
		if err != nil {
			// Persistence failures abort the session; per-document
			// extraction failures do not reach here.
			return res, err
		}
	}
	return res, nil
}

// processDocument runs one document through the cache-wrapped pipeline
// and returns its log entry. The returned error is non-nil only for
// failures that must abort the whole session.
func (opts Options) processDocument(ex extract.Extractor, bank, docPath string, res *Result) (runlog.Entry, error) {
	entry := runlog.Entry{
		Timestamp: time.Now().UTC(),
		RunID:     res.RunID,
		Bank:      bank,
		Document:  docPath,
	}

	processed := false
	st, err := cache.GetOrProcess(opts.Cache, docPath,
		func(path string) (model.Statement, error) {
			processed = true
			opts.progress("Processing and caching %s\n", path)
			st, err := extract.ExtractAndValidate(ex, path)
			if err != nil {
				return model.Statement{}, err
			}
			return *st, nil
		},
		func(st *model.Statement, path string) {
			st.RebindProofDocument(path)
		},
	)
	if err != nil {
		var recErr *extract.ReconciliationError
		var unsupErr *extract.UnsupportedDocumentError
		switch {
		case errors.As(err, &recErr):
			entry.Outcome = runlog.OutcomeSkipped
		case errors.As(err, &unsupErr):
			entry.Outcome = runlog.OutcomeUnsupported
		default:
			entry.Outcome = runlog.OutcomeFailed
		}
		entry.Detail = err.Error()
		opts.progress("warning: %s: %v\n", docPath, err)
		return entry, nil
	}

	entry.Outcome = runlog.OutcomeCached
	if processed {
		entry.Outcome = runlog.OutcomeExtracted
	}
	entry.Detail = fmt.Sprintf("%d transactions", len(st.Transactions))

	for _, txn := range st.Transactions {
		txn, err = opts.categorize(txn)
		if err != nil {
			entry.Outcome = runlog.OutcomeFailed
			entry.Detail = err.Error()
			return entry, fmt.Errorf("categorizing %s: %w", docPath, err)
		}
		res.Transactions = append(res.Transactions, txn)
	}
	return entry, nil
}

func (opts Options) categorize(txn model.Transaction) (model.Transaction, error) {
	if opts.Categorizer == nil {
		return txn, nil
	}
	interactive := opts.Interactive && opts.Categorizer.NeedsCategorization(txn, opts.MinAmount)
	return opts.Categorizer.Categorize(txn, interactive)
}

func (opts Options) progress(format string, args ...any) {
	if opts.Out != nil {
		fmt.Fprintf(opts.Out, format, args...)
	}
}
