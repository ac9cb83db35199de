package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/banklens-dev/banklens/internal/category"
	"github.com/banklens-dev/banklens/internal/config"
	"github.com/banklens-dev/banklens/internal/ledger"
	"github.com/banklens-dev/banklens/internal/model"
)

func newCategorizeCommand() *cobra.Command {
	var useModel bool

	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Re-run categorization over ledger transactions in the catch-all category",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runCategorize(configPath, useModel)
		},
	}

	cmd.Flags().BoolVar(&useModel, "model", false, "use the classifier model instead of prompting")

	return cmd
}

func runCategorize(configPath string, useModel bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := category.LoadRuleStore(cfg.RulesPath())
	if err != nil {
		return err
	}

	var oracle category.Oracle
	if useModel {
		oracle, err = category.NewModelOracle(context.Background(), cfg.Model.Name)
		if err != nil {
			return err
		}
	} else {
		oracle = category.NewConsoleOracle(os.Stdin, os.Stdout)
	}
	categorizer := category.NewCategorizer(store, oracle)

	f, err := os.Open(cfg.LedgerPath())
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	txns, err := ledger.ReadTransactions(f)
	f.Close()
	if err != nil {
		return err
	}

	minAmount, err := decimal.NewFromString(cfg.Prompts.MinAmount)
	if err != nil {
		return fmt.Errorf("parsing prompts.min_amount %q: %w", cfg.Prompts.MinAmount, err)
	}

	resolved := 0
	for i, txn := range txns {
		if txn.Category != model.MiscellaneousOther {
			continue
		}
		if !categorizer.NeedsCategorization(txn, minAmount) {
			// A rule already covers it (or it is ignored / negligible);
			// apply without prompting.
			txns[i], err = categorizer.Categorize(txn, false)
			if err != nil {
				return err
			}
			continue
		}
		txns[i], err = categorizer.Categorize(txn, true)
		if err != nil {
			return err
		}
		resolved++
	}

	out, err := os.Create(cfg.LedgerPath())
	if err != nil {
		return fmt.Errorf("rewriting ledger: %w", err)
	}
	defer out.Close()
	if err := ledger.WriteTransactions(out, txns); err != nil {
		return err
	}

	fmt.Printf("Categorized %d of %d transactions\n", resolved, len(txns))
	return nil
}
