package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gtr/internal/format"
)

var projectCmd = &cobra.Command{
	Use:   "project <id>",
	Short: "Fetch a single project record by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		p, err := client.GetProject(context.Background(), args[0])
		if err != nil {
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return format.JSON(p, os.Stdout)
		}
		format.Detail(p, os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
}
