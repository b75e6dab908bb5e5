package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/educa-portal/acervo/internal/portal"
)

func newWhoamiCmd(opts *globalOptions) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, offline)
			if err != nil {
				return err
			}
			defer a.Close()

			v, err := a.svc.Viewer(cmd.Context())
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), v)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Name:     %s\n", v.Name)
			fmt.Fprintf(w, "Role:     %s\n", v.Role)
			if !v.BypassesAgeGate() {
				fmt.Fprintf(w, "Age:      %d\n", v.Age)
			}
			fmt.Fprintf(w, "User ID:  %s\n", v.ID)

			info, err := portal.ParseToken(a.client.Token())
			switch {
			case err != nil:
				fmt.Fprintf(w, "Token:    unreadable (%v)\n", err)
			case info.ExpiresAt.IsZero():
				fmt.Fprintln(w, "Token:    no expiry")
			case info.Expired(time.Now()):
				fmt.Fprintf(w, "Token:    expired %s\n", info.ExpiresAt.Local().Format(time.DateTime))
			default:
				fmt.Fprintf(w, "Token:    expires %s\n", info.ExpiresAt.Local().Format(time.DateTime))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Use the cached viewer only")
	return cmd
}
