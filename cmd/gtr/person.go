package main

import (
	"context"

	"github.com/spf13/cobra"
)

var personCmd = &cobra.Command{
	Use:   "person <id>",
	Short: "List the projects a person is involved in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		opts := pageOptsFromFlags(cmd)
		env, err := client.GetPersonProjects(context.Background(), args[0], &opts)
		if err != nil {
			return err
		}
		return printEnvelope(cmd, env)
	},
}

func init() {
	personCmd.Flags().Int("page", 1, "page number (1-based)")
	personCmd.Flags().Int("page-size", 0, "results per page, 10-100 (0 = config default)")

	rootCmd.AddCommand(personCmd)
}
