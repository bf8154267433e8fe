// Package controller provides output adapters for displaying engine results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "github.com/synnheal/stepcalc/internal/model"
)

// UI defines the interface for displaying solutions and batch reports.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplaySolution(ctx context.Context, input string, kind m.OperationKind, solution m.Solution) error
	DisplayValidation(ctx context.Context, input string, kind m.OperationKind, err error) error
	DisplayOperations(ctx context.Context, kinds []m.OperationKind) error
	DisplayBatchInfo(ctx context.Context, problems int, threads int, shardIndex int, shardCount int)
	DisplayReports(ctx context.Context, reports []m.Report) error
	DisplayScore(ctx context.Context, score float64)
}

// NewUI returns the pager UI on terminals and the plain table UI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
