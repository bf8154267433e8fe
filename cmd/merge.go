package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/synnheal/stepcalc/internal/domain"
	m "github.com/synnheal/stepcalc/internal/model"
)

// mergeCmd represents the merge command.
var mergeCmd = newMergeCmd()

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [dirs...]",
		Short: "Merge report directories into the output directory",
		Long: `Merge the reports of the given directories into the output directory.
Without arguments the shard_* subdirectories of the output directory are merged.
A problem reported by several directories keeps the result of the last one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			return workflow.Merge(cmd.Context(), domain.MergeArgs{Reports: reportsPath, Inputs: parsePaths(args)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
