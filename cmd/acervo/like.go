package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/educa-portal/acervo/internal/portal"
)

func newLikeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "like <video-id>",
		Short: "Like or unlike a video",
		Long:  "Toggles your like on a video. Running it again removes the like.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			it, err := a.svc.Like(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), it)
			}

			verb := "Liked"
			if uid, err := portal.UserIDFromToken(a.client.Token()); err == nil && !it.LikedBy(uid) {
				verb = "Removed like from"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q (%d likes)\n", verb, it.Title, len(it.Likes))
			return nil
		},
	}
}
