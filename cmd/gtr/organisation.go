package main

import (
	"context"

	"github.com/spf13/cobra"
)

var organisationCmd = &cobra.Command{
	Use:     "organisation <id>",
	Aliases: []string{"org"},
	Short:   "List the projects funded through an organisation",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		opts := pageOptsFromFlags(cmd)
		env, err := client.GetOrganisationProjects(context.Background(), args[0], &opts)
		if err != nil {
			return err
		}
		return printEnvelope(cmd, env)
	},
}

func init() {
	organisationCmd.Flags().Int("page", 1, "page number (1-based)")
	organisationCmd.Flags().Int("page-size", 0, "results per page, 10-100 (0 = config default)")

	rootCmd.AddCommand(organisationCmd)
}
