package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/educa-portal/acervo/internal/catalog"
)

func newDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <books|videos> <id>",
		Short: "Delete a book or video (teachers only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := catalog.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("unknown kind %q: use books or videos", args[0])
			}

			a, err := newApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.svc.Delete(cmd.Context(), kind, args[1]); err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]string{"deleted": args[1], "kind": string(kind)})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", kind, args[1])
			return nil
		},
	}
}
