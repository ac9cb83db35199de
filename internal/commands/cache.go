package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banklens-dev/banklens/internal/cache"
	"github.com/banklens-dev/banklens/internal/config"
)

func newCacheCommand() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Extraction result cache operations",
	}
	cacheCmd.AddCommand(newCacheClearCommand())
	cacheCmd.AddCommand(newCacheStatsCommand())
	return cacheCmd
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop all cached extraction results",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			c, err := cache.Load(cfg.CachePath())
			if err != nil {
				return err
			}
			n := c.Len()
			if err := c.Clear(); err != nil {
				return err
			}
			fmt.Printf("Cleared %d cached results\n", n)
			return nil
		},
	}
}

func newCacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			c, err := cache.Load(cfg.CachePath())
			if err != nil {
				return err
			}
			fmt.Printf("%d cached results in %s\n", c.Len(), cfg.CachePath())
			return nil
		},
	}
}
