package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the supported operations",
		Long:  "List the operations accepted by --op together with their aliases.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Operations(cmd.Context())
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
