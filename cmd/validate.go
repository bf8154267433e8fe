package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/synnheal/stepcalc/internal/domain"
	m "github.com/synnheal/stepcalc/internal/model"
)

var validateOperationFlag string

// validateCmd represents the validate command.
var validateCmd = newValidateCmd()

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [expression]",
		Short: "Check that an expression or equation is well formed",
		Long: `Check the input without evaluating it. Free variables are allowed and
domain errors such as 1/0 are only detected by eval.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := m.ParseOperationKind(viper.GetString(evalOperationKey))
			if err != nil {
				return err
			}

			return workflow.Validate(cmd.Context(), domain.ValidateArgs{
				Input:     strings.Join(args, " "),
				Operation: kind,
			})
		},
	}

	addOperationFlag(cmd, &validateOperationFlag, "operation the input is checked for")

	return cmd
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
