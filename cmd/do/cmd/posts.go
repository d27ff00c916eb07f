package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/patelhettt/vulninsights/internal/app"
	"github.com/patelhettt/vulninsights/internal/config"
	"github.com/patelhettt/vulninsights/internal/feed"
	"github.com/patelhettt/vulninsights/internal/logger"
	"github.com/patelhettt/vulninsights/internal/model"
)

// titleWidth caps the title column so tables fit a terminal
const titleWidth = 60

func PostsCmd() *cobra.Command {
	var author, term string

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Fetch both Medium feeds and print the aggregated posts",
		Long: `Fetch both Medium feeds the same way the site does and print the
aggregated, newest first post list with the slug each post is served under.

Examples:
  do posts
  do posts --author het --q xss`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			listing := a.BlogService.Search(cmd.Context(), feed.Query{Author: author, Term: term})
			if listing.Fallback {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: feeds unavailable, showing placeholder posts")
			}
			renderPosts(cmd.OutOrStdout(), listing.Posts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&author, "author", "a", feed.AllAuthors, "filter by author key (het, kaif, all)")
	cmd.Flags().StringVarP(&term, "q", "q", "", "search title, description and categories")
	return cmd
}

func renderPosts(w io.Writer, posts []*model.BlogPost) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Date", "Author", "Title", "Slug"})
	for _, p := range posts {
		date := "unknown"
		if p.HasDate() {
			date = p.PublishedAt.Format("2006-01-02")
		}
		t.AppendRow(table.Row{date, p.Author.Name, feed.Truncate(p.Title, titleWidth), p.Slug})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(posts)})
	t.Render()
}

// newApp wires the same services the server uses, logging at debug level.
func newApp() (*app.App, error) {
	cfg := config.Load()
	logger.Init(logger.Options{
		Development: true,
		AppName:     cfg.AppName,
		Environment: cfg.AppEnv,
	})
	return app.New(cfg)
}
