package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/educa-portal/acervo/internal/browse"
	"github.com/educa-portal/acervo/internal/catalog"
)

func newListCmd(opts *globalOptions, kind catalog.Kind) *cobra.Command {
	var (
		search  string
		genre   string
		page    int
		offline bool
	)

	cmd := &cobra.Command{
		Use:   commandFor(kind),
		Short: fmt.Sprintf("List %s visible to you", commandFor(kind)),
		Long: fmt.Sprintf(`Lists %s the logged-in user may see, filtered by genre and title.

Students only see items whose age rating allows their age; "Livre" is
always visible. Out-of-range pages show the nearest valid page.`, commandFor(kind)),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, offline)
			if err != nil {
				return err
			}
			defer a.Close()

			q := catalog.Query{Search: search, Genre: genre}
			res, err := a.svc.List(cmd.Context(), kind, q, page)
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), res)
			}
			printListHuman(cmd.OutOrStdout(), res, time.Now())
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive title search")
	cmd.Flags().StringVarP(&genre, "genre", "g", catalog.AllGenres, "Genre filter (see 'acervo genres "+commandFor(kind)+"')")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number (1-based)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Use the cached snapshot only")
	return cmd
}

func printListHuman(w io.Writer, res *browse.Result, now time.Time) {
	label := kindLabel(res.Kind)

	if res.Page.Total == 0 {
		fmt.Fprintf(w, "No %s found%s\n", strings.ToLower(label), describeQuery(res.Query))
		if len(res.Suggestions) > 0 {
			quoted := make([]string, len(res.Suggestions))
			for i, s := range res.Suggestions {
				quoted[i] = fmt.Sprintf("%q", s)
			}
			fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(quoted, ", "))
		}
		printSource(w, res, now)
		return
	}

	fmt.Fprintf(w, "%s (page %d/%d, %d total):\n\n", label, res.Page.Number, res.Page.PageCount, res.Page.Total)

	third := "AUTHOR"
	if res.Kind == catalog.KindVideo {
		third = "LIKES"
	}
	fmt.Fprintf(w, "  %-8s │ %-34s │ %-18s │ %-24s │ %s\n", "ID", "TITLE", third, "GENRES", "RATING")
	fmt.Fprintln(w, "──────────┼────────────────────────────────────┼────────────────────┼──────────────────────────┼───────")

	for _, it := range res.Page.Items {
		col := it.Author
		if res.Kind == catalog.KindVideo {
			col = fmt.Sprintf("%d", len(it.Likes))
			if it.LikedBy(res.Viewer.ID) {
				col += " (you)"
			}
		}
		fmt.Fprintf(w, "  %-8s │ %-34s │ %-18s │ %-24s │ %s\n",
			truncate(it.ID, 8),
			truncate(it.Title, 34),
			truncate(col, 18),
			truncate(it.Genres.String(), 24),
			it.AgeRating)
	}

	if res.Page.HasNext() {
		fmt.Fprintf(w, "\nNext page: acervo %s --page %d\n", commandFor(res.Kind), res.Page.Number+1)
	}
	printSource(w, res, now)
}

func describeQuery(q catalog.Query) string {
	var parts []string
	if s := strings.TrimSpace(q.Search); s != "" {
		parts = append(parts, fmt.Sprintf("matching %q", s))
	}
	if q.Genre != "" && q.Genre != catalog.AllGenres {
		parts = append(parts, fmt.Sprintf("in %s", q.Genre))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func printSource(w io.Writer, res *browse.Result, now time.Time) {
	if !res.FromCache {
		return
	}
	fmt.Fprintf(w, "\n(cached copy from %s)\n", formatAge(now.Sub(res.FetchedAt)))
}
