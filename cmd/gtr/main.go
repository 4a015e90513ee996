// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the gtr CLI, a client for the
// UKRI Gateway to Research API.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/gtr/internal/config"
	"github.com/pdiddy/gtr/internal/format"
	"github.com/pdiddy/gtr/internal/logging"
	"github.com/pdiddy/gtr/internal/secrets"
	"github.com/pdiddy/gtr/pkg/gtr"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg and log are populated by the root command's PersistentPreRunE
// before any subcommand runs.
var (
	cfg *config.Config
	log zerolog.Logger
)

// rootCmd is the base command for the gtr CLI.
var rootCmd = &cobra.Command{
	Use:   "gtr",
	Short: "Query UKRI Gateway to Research funding data",
	Long: `gtr searches the UK Research and Innovation Gateway to Research API for
publicly funded research projects. Look up projects by free-text query,
fetch single records by id, list the projects of a person or organisation,
and archive interesting records into a local catalog.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// Flags beat config file and environment.
		if f := cmd.Flags().Lookup("base-url"); f != nil && f.Changed {
			c.BaseURL = f.Value.String()
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
			secs, _ := cmd.Flags().GetInt("timeout")
			c.Timeout = time.Duration(secs) * time.Second
		}

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		c.Headers = secrets.Merge(c.Headers, s)

		level := c.LogLevel
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = "debug"
		}
		log = logging.New(os.Stderr, level, c.LogFormat)

		if c.FileUsed != "" {
			log.Debug().Str("path", c.FileUsed).Msg("using config file")
		}

		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./gtr.yaml or ~/.config/gtr/gtr.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "API base URL override")
	rootCmd.PersistentFlags().Int("timeout", 0, "request timeout in seconds")
	rootCmd.PersistentFlags().Bool("json", false, "output results as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
}

// --- shared helpers ---

// newClient builds an API client from the resolved configuration.
func newClient() *gtr.Client {
	cc := cfg.ClientConfig()
	cc.Logger = &log
	return gtr.New(cc)
}

// pageOptsFromFlags reads the standard pagination flags; a page size of
// zero falls back to the configured default.
func pageOptsFromFlags(cmd *cobra.Command) gtr.PageOptions {
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("page-size")
	if size == 0 {
		size = cfg.PageSize
	}
	return gtr.PageOptions{Page: page, PageSize: size}
}

// printEnvelope renders a result envelope as a table with a pagination
// summary, or as JSON when --json is set.
func printEnvelope(cmd *cobra.Command, env gtr.Envelope) error {
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return format.JSON(env, os.Stdout)
	}

	format.Table(env.Projects(), os.Stdout)
	format.Summary(env, os.Stdout)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
