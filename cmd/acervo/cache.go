package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/educa-portal/acervo/internal/cache"
)

func newCacheCmd(opts *globalOptions) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the offline snapshot cache",
	}

	run := func(action string, fn func(cmd *cobra.Command, c *cache.Cache) (int64, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if !cfg.Cache.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Cache is disabled")
				return nil
			}

			db, err := cache.Open(cfg.Cache.Path)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			n, err := fn(cmd, cache.New(db))
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]int64{action: n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d snapshot(s) from %s\n", action, n, cfg.Cache.Path)
			return nil
		}
	}

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove expired snapshots",
		Args:  cobra.NoArgs,
		RunE: run("Pruned", func(cmd *cobra.Command, c *cache.Cache) (int64, error) {
			return c.Prune(cmd.Context())
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all snapshots",
		Args:  cobra.NoArgs,
		RunE: run("Cleared", func(cmd *cobra.Command, c *cache.Cache) (int64, error) {
			return c.Clear(cmd.Context())
		}),
	}

	cacheCmd.AddCommand(pruneCmd, clearCmd)
	return cacheCmd
}
