package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/patelhettt/vulninsights/internal/feed"
	"github.com/patelhettt/vulninsights/internal/github"
	"github.com/patelhettt/vulninsights/internal/model"
)

func ToolsCmd() *cobra.Command {
	var category, term string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the GitHub repositories shown on the tools page",
		Long: `List the security tools detected among the configured GitHub user's
repositories. Set GITHUB_TOKEN to avoid the unauthenticated rate limit.

Examples:
  do tools
  do tools --category crypto`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			listing := a.ToolsService.Search(cmd.Context(), term, category)
			if listing.Fallback {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: GitHub unavailable, showing fallback tools")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d of %d tools, %d stars, %d forks\n",
				listing.Category.Name, len(listing.Tools), listing.TotalTools, listing.TotalStars, listing.TotalForks)
			renderTools(cmd.OutOrStdout(), listing.Tools)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", github.AllCategories, "category id (web, network, forensics, malware, crypto, database, pentest)")
	cmd.Flags().StringVarP(&term, "q", "q", "", "search name, description and topics")
	return cmd
}

func renderTools(w io.Writer, tools []model.Repo) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Language", "Stars", "Forks", "Description"})
	for _, r := range tools {
		t.AppendRow(table.Row{r.Name, r.Language, r.StargazersCount, r.ForksCount, feed.Truncate(r.Description, titleWidth)})
	}
	t.Render()
}
