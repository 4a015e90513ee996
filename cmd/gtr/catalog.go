// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gtr/internal/catalog"
	"github.com/pdiddy/gtr/internal/format"
	"github.com/pdiddy/gtr/internal/queryfile"
	"github.com/pdiddy/gtr/pkg/gtr"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Archive and query saved project records",
	Long: `Catalog manages a local SQLite archive of project records. Add records
from a saved query file or by fetching ids, search the archive with
full-text queries, list recent additions, or export everything.`,
}

// --- add subcommand ---

var catalogAddCmd = &cobra.Command{
	Use:   "add [project-id...]",
	Short: "Archive project records from a query file or by id",
	Long: `Add stores project records in the catalog. With --from it reads a YAML
query file written by search --save; with ids it fetches each project
from the API first. Records already in the catalog are updated in place.`,
	RunE: runCatalogAdd,
}

func runCatalogAdd(cmd *cobra.Command, args []string) error {
	fromPath, _ := cmd.Flags().GetString("from")
	if fromPath == "" && len(args) == 0 {
		return fmt.Errorf("nothing to add: pass --from <queryfile> or project ids")
	}

	var query string
	var projects []gtr.Project

	if fromPath != "" {
		qf, err := queryfile.Read(fromPath)
		if err != nil {
			return err
		}
		query = qf.Query
		projects = qf.Projects
	}

	if len(args) > 0 {
		client := newClient()
		defer client.Close()

		for _, id := range args {
			p, err := client.GetProject(context.Background(), id)
			if err != nil {
				return err
			}
			projects = append(projects, p)
		}
	}

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Save(context.Background(), query, projects, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\n%d records added\n", n)
	return nil
}

// --- query subcommand ---

var catalogQueryCmd = &cobra.Command{
	Use:   "query <match>",
	Short: "Full-text search over archived records",
	Long: `Query searches archived titles and abstracts with SQLite FTS5 match
syntax and prints the hits ranked by relevance.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCatalogQuery,
}

func runCatalogQuery(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Search(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	return printEntries(cmd, entries)
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived records, newest first",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	return printEntries(cmd, entries)
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump every archived record to stdout",
	Long: `Export writes the full catalog to stdout as YAML (default) or JSON,
oldest record first. Records come out exactly as the API returned them.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	kind, _ := cmd.Flags().GetString("format")
	return store.Export(context.Background(), os.Stdout, kind)
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = cfg.CatalogPath
	}
	return catalog.Open(path)
}

func printEntries(cmd *cobra.Command, entries []catalog.Entry) error {
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return format.JSON(entries, os.Stdout)
	}

	if len(entries) == 0 {
		fmt.Println("No catalog entries found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-44s  %-12s  %-10s  %s\n",
		"Rank", "Title", "Funding", "Saved", "Id")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, e := range entries {
		title := e.Title
		if len(title) > 44 {
			title = title[:41] + "..."
		}
		funding := "unknown"
		if e.ValuePounds > 0 {
			funding = fmt.Sprintf("£%.0f", e.ValuePounds)
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-44s  %-12s  %-10s  %s\n",
			i+1, title, funding, e.SavedAt.Format("2006-01-02"), e.ID)
	}

	fmt.Fprintf(os.Stdout, "\n%d entries\n", len(entries))
	return nil
}

func init() {
	// Shared flag on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog", "", "catalog database path (default from config)")

	// Add flags.
	catalogAddCmd.Flags().String("from", "", "YAML query file written by search --save")

	// Query and list flags.
	catalogQueryCmd.Flags().Int("limit", catalog.DefaultLimit, "maximum entries to show")
	catalogListCmd.Flags().Int("limit", catalog.DefaultLimit, "maximum entries to show")

	// Export flags.
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogQueryCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
