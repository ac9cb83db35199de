package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banklens-dev/banklens/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "banklens",
		Short:   "Bank statement extraction, reconciliation and categorization",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "banklens.yaml", "configuration file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newCategorizeCommand())
	rootCmd.AddCommand(newCacheCommand())

	return rootCmd
}
