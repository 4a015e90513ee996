package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gtr/internal/queryfile"
	"github.com/pdiddy/gtr/pkg/gtr"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search projects by free-text query",
	Long: `Search queries the projects endpoint with a free-text query. Results
print as a table with a pagination summary; --json emits the raw envelope.
--save also writes the query, options, and records to a YAML file that
catalog add --from can ingest later.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	fields, _ := cmd.Flags().GetStringSlice("field")
	sortBy, _ := cmd.Flags().GetString("sort")
	order, _ := cmd.Flags().GetString("order")

	opts := gtr.SearchOptions{
		PageOptions: pageOptsFromFlags(cmd),
		SortBy:      gtr.SortField(sortBy),
		Order:       gtr.SortOrder(order),
	}
	for _, f := range fields {
		opts.Fields = append(opts.Fields, gtr.SearchField(f))
	}

	client := newClient()
	defer client.Close()

	env, err := client.SearchProjects(context.Background(), query, &opts)
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		qf := queryfile.FromSearch(query, opts, env)
		if err := qf.Write(savePath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d records to %s\n", len(qf.Projects), savePath)
	}

	return printEnvelope(cmd, env)
}

func init() {
	searchCmd.Flags().Int("page", 1, "page number (1-based)")
	searchCmd.Flags().Int("page-size", 0, "results per page, 10-100 (0 = config default)")
	searchCmd.Flags().StringSlice("field", nil, "restrict matching to a field code, repeatable (e.g. pro.t)")
	searchCmd.Flags().String("sort", "", "sort field code: pro.sd, pro.ed, pro.am, or score")
	searchCmd.Flags().String("order", "", "sort order: A (ascending) or D (descending)")
	searchCmd.Flags().String("save", "", "write the query and results to a YAML file")

	rootCmd.AddCommand(searchCmd)
}
