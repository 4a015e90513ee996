package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gtr/internal/format"
	"github.com/pdiddy/gtr/pkg/gtr"
)

var topCmd = &cobra.Command{
	Use:   "top <query>",
	Short: "Show the most relevant projects for a query",
	Long: `Top runs a relevance-sorted search and prints the best matches with
title, id, abstract, and funding. --limit caps how many; matches beyond
one page of 100 are never fetched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTop,
}

func runTop(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	limit, _ := cmd.Flags().GetInt("limit")
	fields, _ := cmd.Flags().GetStringSlice("field")

	var sf []gtr.SearchField
	for _, f := range fields {
		sf = append(sf, gtr.SearchField(f))
	}

	client := newClient()
	defer client.Close()

	projects, err := client.GetTopResults(context.Background(), query, limit, sf...)
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return format.JSON(projects, os.Stdout)
	}
	format.List(projects, os.Stdout)
	return nil
}

func init() {
	topCmd.Flags().Int("limit", 10, "number of results to show")
	topCmd.Flags().StringSlice("field", nil, "restrict matching to a field code, repeatable (e.g. pro.t)")

	rootCmd.AddCommand(topCmd)
}
