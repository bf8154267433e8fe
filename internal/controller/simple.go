package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	m "github.com/synnheal/stepcalc/internal/model"
)

// SimpleUI implements UI with plain tables written to the command output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplaySolution prints the step table of a solution.
func (s *SimpleUI) DisplaySolution(ctx context.Context, input string, kind m.OperationKind, solution m.Solution) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s: %s\n\n%s", kind, input, renderSolutionTable(solution))

	return nil
}

// DisplayValidation prints whether the input is well formed.
func (s *SimpleUI) DisplayValidation(ctx context.Context, input string, kind m.OperationKind, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	s.printf("%s", validationMessage(input, kind, err))

	return nil
}

// DisplayOperations prints the supported operation kinds.
func (s *SimpleUI) DisplayOperations(ctx context.Context, kinds []m.OperationKind) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderOperationsTable(kinds))

	return nil
}

// DisplayBatchInfo shows concurrency settings of a batch run.
func (s *SimpleUI) DisplayBatchInfo(ctx context.Context, problems int, threads int, shardIndex int, shardCount int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s", batchInfoMessage(problems, threads, shardIndex, shardCount))
}

// DisplayReports prints the report table followed by the diffs of mismatches.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		s.printf("No reports\n")
		return nil
	}

	s.printf("\n%s%s", renderReportsTable(reports), renderDiffs(reports))

	return nil
}

// DisplayScore prints the share of solved problems.
func (s *SimpleUI) DisplayScore(ctx context.Context, score float64) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s", scoreMessage(score))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
