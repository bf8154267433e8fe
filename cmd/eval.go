package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/synnheal/stepcalc/internal/domain"
	m "github.com/synnheal/stepcalc/internal/model"
)

var evalOperationFlag string
var evalWrtFlag string
var evalSetFlag []string

// evalCmd represents the eval command.
var evalCmd = newEvalCmd()

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [expression]",
		Short: "Solve an expression or equation and print every step",
		Long: `Run one operation on the expression and print the step trace.

Examples:
  stepcalc eval "2 + 3*4"
  stepcalc eval --op derivative "x^2 + 2*x + 1"
  stepcalc eval --op linear "2*x + y = 10"
  stepcalc eval --set x=3 --set y=4 "x*y"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := m.ParseOperationKind(viper.GetString(evalOperationKey))
			if err != nil {
				return err
			}

			bindings, err := parseBindings(evalSetFlag)
			if err != nil {
				return err
			}

			return workflow.Solve(cmd.Context(), domain.SolveArgs{
				Input:         strings.Join(args, " "),
				Operation:     kind,
				WithRespectTo: viper.GetString(evalWrtKey),
				Variables:     bindings,
			})
		},
	}

	configureEvalFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func configureEvalFlags(cmd *cobra.Command) {
	addOperationFlag(cmd, &evalOperationFlag, "operation to run (see 'stepcalc list')")

	cmd.Flags().StringVar(&evalWrtFlag, wrtFlagName, viper.GetString(evalWrtKey), "variable to differentiate with respect to")
	bindFlagToConfig(cmd.Flags().Lookup(wrtFlagName), evalWrtKey)

	cmd.Flags().StringArrayVar(&evalSetFlag, setFlagName, nil, "bind a variable as name=value (can be repeated)")
}

// parseBindings turns name=value pairs into evaluation bindings.
func parseBindings(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	bindings := make(map[string]float64, len(pairs))

	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)

		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --%s %q: expected name=value", setFlagName, pair)
		}

		number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s %q: %w", setFlagName, pair, err)
		}

		bindings[name] = number
	}

	return bindings, nil
}
