package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/banklens-dev/banklens/internal/config"
)

func newInitCommand() *cobra.Command {
	var dataRoot string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a banklens project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir, dataRoot)
		},
	}

	cmd.Flags().StringVar(&dataRoot, "data-root", "data", "data directory, relative to the project directory")

	return cmd
}

func runInit(dir, dataRoot string) error {
	cfg := config.Default(filepath.Join(dir, dataRoot))

	if err := cfg.EnsureDirs(); err != nil {
		return fmt.Errorf("creating data directories: %w", err)
	}

	if err := config.Save(filepath.Join(dir, "banklens.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Initialized banklens project at %s\n", dir)
	return nil
}
