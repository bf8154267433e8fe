package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/synnheal/stepcalc/internal/domain"
	m "github.com/synnheal/stepcalc/internal/model"
)

var batchParallelFlag int
var batchShardFlag string
var batchOperationFlag string

// batchCmd represents the batch command.
var batchCmd = newBatchCmd()

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [paths...]",
		Short: "Solve problem files and store the reports",
		Long:  batchLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := m.ParseOperationKind(viper.GetString(evalOperationKey))
			if err != nil {
				return err
			}

			shardIndex, totalShards := parseShardFlag(batchShardFlag)

			return workflow.Batch(cmd.Context(), domain.BatchArgs{
				Paths:           parsePaths(args),
				Reports:         m.Path(viper.GetString(outputFlagName)),
				Operation:       kind,
				Threads:         viper.GetInt(runParallelConfigKey),
				ShardIndex:      shardIndex,
				TotalShardCount: totalShards,
			})
		},
	}

	configureBatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func configureBatchFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&batchParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of problems solved in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)
	cmd.Flags().StringVarP(&batchShardFlag, shardFlagName, "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
	addOperationFlag(cmd, &batchOperationFlag, "operation for problems that do not name one")
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}
