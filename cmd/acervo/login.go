package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(opts *globalOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session token",
		Long: `Logs in to the portal and stores the session token in the config file.

The password is taken from --password, then $ACERVO_PASSWORD, then read
from standard input. Saving rewrites the config file with resolved values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			if password == "" {
				password = os.Getenv("ACERVO_PASSWORD")
			}
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			resp, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			a.cfg.Portal.Token = resp.Token
			if err := a.cfg.Write(a.cfgPath); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			a.log.Info("token saved", "path", a.cfgPath)

			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"user_id": string(resp.UserID),
					"tipo":    resp.Tipo,
					"config":  a.cfgPath,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (user %s)\n", resp.Tipo, resp.UserID)
			fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", a.cfgPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
