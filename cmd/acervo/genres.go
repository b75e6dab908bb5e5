package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/educa-portal/acervo/internal/catalog"
)

func newGenresCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "genres <books|videos>",
		Short:     "List the genres you can filter by",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"books", "videos"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := catalog.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("unknown kind %q: use books or videos", args[0])
			}

			genres := catalog.GenresFor(kind)
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), genres)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s genres:\n", kindLabel(kind))
			fmt.Fprintf(w, "  %s (no filter)\n", catalog.AllGenres)
			for _, g := range genres {
				fmt.Fprintf(w, "  %s\n", g)
			}
			return nil
		},
	}
}
