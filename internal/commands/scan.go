package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/banklens-dev/banklens/internal/cache"
	"github.com/banklens-dev/banklens/internal/category"
	"github.com/banklens-dev/banklens/internal/config"
	"github.com/banklens-dev/banklens/internal/extract"
	"github.com/banklens-dev/banklens/internal/ledger"
	"github.com/banklens-dev/banklens/internal/model"
	"github.com/banklens-dev/banklens/internal/runlog"
	"github.com/banklens-dev/banklens/internal/scan"
)

func newScanCommand() *cobra.Command {
	var bank string
	var interactive bool
	var useModel bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Extract, reconcile and categorize a bank's statement directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runScan(configPath, bank, interactive, useModel)
		},
	}

	cmd.Flags().StringVar(&bank, "bank", "", "bank name (required)")
	_ = cmd.MarkFlagRequired("bank")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "prompt for uncategorized transactions")
	cmd.Flags().BoolVar(&useModel, "model", false, "use the classifier model for uncategorized transactions")

	return cmd
}

func runScan(configPath, bank string, interactive, useModel bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	dir := cfg.BankDir(bank)
	if dir == "" {
		return fmt.Errorf("bank %q is not configured in %s", bank, configPath)
	}

	store, err := category.LoadRuleStore(cfg.RulesPath())
	if err != nil {
		return err
	}

	resultCache, err := cache.Load(cfg.CachePath())
	if err != nil {
		return err
	}

	oracle, err := pickOracle(interactive, useModel, cfg)
	if err != nil {
		return err
	}

	minAmount, err := decimal.NewFromString(cfg.Prompts.MinAmount)
	if err != nil {
		return fmt.Errorf("parsing prompts.min_amount %q: %w", cfg.Prompts.MinAmount, err)
	}

	res, scanErr := scan.Run(bank, dir, scan.Options{
		Registry:    extract.DefaultRegistry(extract.NewPDFSource()),
		Cache:       resultCache,
		Categorizer: category.NewCategorizer(store, oracle),
		Interactive: interactive || useModel,
		MinAmount:   minAmount,
		Out:         os.Stdout,
	})
	if res != nil {
		if err := runlog.Append(cfg.DataRoot, res.Entries); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write scan log: %v\n", err)
		}
		if len(res.Transactions) > 0 {
			if err := appendLedger(cfg.LedgerPath(), res.Transactions); err != nil {
				return err
			}
		}
		fmt.Printf("Scanned %d documents, %d transactions (run %s)\n",
			len(res.Entries), len(res.Transactions), res.RunID)
	}
	return scanErr
}

func pickOracle(interactive, useModel bool, cfg *config.Config) (category.Oracle, error) {
	switch {
	case useModel:
		return category.NewModelOracle(context.Background(), cfg.Model.Name)
	case interactive:
		return category.NewConsoleOracle(os.Stdin, os.Stdout), nil
	default:
		return nil, nil
	}
}

// appendLedger writes transactions to ledger.csv, creating the file
// with a header on first use.
func appendLedger(path string, txns []model.Transaction) error {
	_, statErr := os.Stat(path)
	exists := statErr == nil

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if !exists {
		return ledger.WriteTransactions(f, txns)
	}
	return ledger.AppendTransactions(f, txns)
}
