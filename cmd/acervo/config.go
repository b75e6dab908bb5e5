package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/educa-portal/acervo/internal/config"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write an example config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if opts.configPath != "" {
				path = opts.configPath
			}
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteDefault(path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loc, err := loadConfig(opts)
			if err != nil {
				return err
			}
			masked := *cfg
			masked.Portal.Token = maskToken(cfg.Portal.Token)
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), &masked)
			}
			printConfigSummary(cmd.OutOrStdout(), loc, &masked)
			return nil
		},
	}

	testCmd := &cobra.Command{
		Use:   "test [path]",
		Short: "Validate configuration file",
		Long:  "Validates TOML syntax, field values and environment variable substitution.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := config.Location{Path: opts.configPath, Source: config.SourceFlag}
			if len(args) > 0 {
				loc = config.Location{Path: args[0], Source: config.SourceFlag}
			}
			if loc.Path == "" {
				found, err := config.Discover()
				if err != nil {
					return err
				}
				loc = found
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Validating %s...\n\n", loc)

			cfg, err := config.LoadFrom(loc)
			if err != nil {
				var configErr *config.ConfigError
				if errors.As(err, &configErr) {
					printConfigErrors(w, configErr)
					return fmt.Errorf("configuration invalid")
				}
				return fmt.Errorf("failed to load config: %w", err)
			}

			cfg.Portal.Token = maskToken(cfg.Portal.Token)
			printConfigSummary(w, loc, cfg)
			fmt.Fprintln(w, "\nConfiguration valid!")
			return nil
		},
	}

	configCmd.AddCommand(initCmd, showCmd, testCmd)
	return configCmd
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, loc config.Location, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	if loc.Exists() {
		fmt.Fprintf(w, "  File:       %s\n", loc)
	} else {
		fmt.Fprintf(w, "  File:       none, using %s (login writes %s)\n", loc.Source, loc.Path)
	}
	fmt.Fprintf(w, "  Portal:     %s (timeout %s)\n", cfg.Portal.URL, cfg.Portal.Timeout)
	if cfg.Portal.Token == "" {
		fmt.Fprintln(w, "  Token:      not logged in")
	} else {
		fmt.Fprintf(w, "  Token:      %s\n", cfg.Portal.Token)
	}
	fmt.Fprintf(w, "  Page sizes: books %d, videos %d\n", cfg.Library.BooksPerPage, cfg.Library.VideosPerPage)
	if cfg.Cache.Enabled {
		fmt.Fprintf(w, "  Cache:      %s (ttl %s)\n", cfg.Cache.Path, cfg.Cache.TTL)
	} else {
		fmt.Fprintln(w, "  Cache:      disabled")
	}
	fmt.Fprintf(w, "  Log:        %s (%s)\n", cfg.Log.Level, cfg.Log.Format)
}

// maskToken keeps only the last few characters of a secret.
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "********"
	}
	return "********" + token[len(token)-4:]
}
