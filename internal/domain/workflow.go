package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"github.com/synnheal/stepcalc/internal/adapter"
	"github.com/synnheal/stepcalc/internal/controller"
	m "github.com/synnheal/stepcalc/internal/model"
)

// ErrNothingToMerge is returned by Merge when no report directory was found.
var ErrNothingToMerge = errors.New("no reports to merge")

// SolveArgs contains the arguments for solving a single input.
type SolveArgs struct {
	Input         string
	Operation     m.OperationKind
	WithRespectTo string
	Variables     map[string]float64
}

// ValidateArgs contains the arguments for validating a single input.
type ValidateArgs struct {
	Input     string
	Operation m.OperationKind
}

// BatchArgs contains the arguments for solving problem files.
type BatchArgs struct {
	Paths   []m.Path
	Reports m.Path
	// Operation applies to problems that do not name one.
	Operation       m.OperationKind
	Threads         int
	ShardIndex      int
	TotalShardCount int
}

// ViewArgs contains the arguments for viewing saved reports.
type ViewArgs struct {
	Reports m.Path
}

// MergeArgs contains the arguments for merging report directories.
// Without Inputs the shard directories below Reports are merged.
type MergeArgs struct {
	Reports m.Path
	Inputs  []m.Path
}

// Workflow defines the use cases of the stepcalc CLI.
type Workflow interface {
	Solve(ctx context.Context, args SolveArgs) error
	Validate(ctx context.Context, args ValidateArgs) error
	Batch(ctx context.Context, args BatchArgs) error
	View(ctx context.Context, args ViewArgs) error
	Merge(ctx context.Context, args MergeArgs) error
	Operations(ctx context.Context) error
}

type workflow struct {
	adapter.ProblemSource
	adapter.ReportStore
	controller.UI
	engine Engine
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	problemSource adapter.ProblemSource,
	reportStore adapter.ReportStore,
	ui controller.UI,
	engine Engine,
) Workflow {
	return &workflow{
		ProblemSource: problemSource,
		ReportStore:   reportStore,
		UI:            ui,
		engine:        engine,
	}
}

func (w *workflow) Solve(ctx context.Context, args SolveArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	kind := orDefault(args.Operation, m.OperationEvaluate)

	solution, err := w.engine.Evaluate(args.Input, kind, problemOptions(args.WithRespectTo, args.Variables)...)
	if err != nil {
		slog.Error("solve failed", "input", args.Input, "operation", kind, "error", err)
		return err
	}

	return w.DisplaySolution(ctx, args.Input, kind, solution)
}

func (w *workflow) Validate(ctx context.Context, args ValidateArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	kind := orDefault(args.Operation, m.OperationEvaluate)
	err := w.engine.Validate(args.Input, kind)

	if displayErr := w.DisplayValidation(ctx, args.Input, kind, err); displayErr != nil {
		return displayErr
	}

	return err
}

func (w *workflow) Batch(ctx context.Context, args BatchArgs) error {
	problems, err := w.Get(args.Paths)
	if err != nil {
		return fmt.Errorf("get problems: %w", err)
	}

	shardCount := max(args.TotalShardCount, 1)
	problems = shardProblems(problems, args.ShardIndex, shardCount)
	threads := max(args.Threads, 1)

	w.DisplayBatchInfo(ctx, len(problems), threads, args.ShardIndex, shardCount)

	reports, err := w.solveProblems(ctx, problems, orDefault(args.Operation, m.OperationEvaluate), threads)
	if err != nil {
		return fmt.Errorf("solve problems: %w", err)
	}

	reportsDir := args.Reports
	if shardCount > 1 {
		reportsDir = adapter.ShardDir(args.Reports, args.ShardIndex)
	}

	if err := w.SaveReports(reportsDir, reports); err != nil {
		return fmt.Errorf("save reports: %w", err)
	}

	slog.Debug("batch finished", "problems", len(problems), "reports", reportsDir)

	return w.displayReports(ctx, reports)
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	reports, err := w.LoadReports(args.Reports)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no reports in %s, run batch or merge first: %w", args.Reports, err)
		}

		return fmt.Errorf("load reports: %w", err)
	}

	return w.displayReports(ctx, reports)
}

func (w *workflow) Merge(ctx context.Context, args MergeArgs) error {
	inputs := args.Inputs
	if len(inputs) == 0 {
		shards, err := w.ShardDirs(args.Reports)
		if err != nil {
			return fmt.Errorf("list shards: %w", err)
		}

		inputs = shards
	}

	if len(inputs) == 0 {
		return fmt.Errorf("%w in %s", ErrNothingToMerge, args.Reports)
	}

	type reportKey struct {
		source m.Path
		id     string
	}

	var merged []m.Report

	index := make(map[reportKey]int)

	for _, dir := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}

		reports, err := w.LoadReports(dir)
		if err != nil {
			return fmt.Errorf("load reports from %s: %w", dir, err)
		}

		for _, report := range reports {
			key := reportKey{source: report.Source, id: report.Problem.ID}

			// later inputs replace earlier results of the same problem
			if i, ok := index[key]; ok {
				merged[i] = report
				continue
			}

			index[key] = len(merged)
			merged = append(merged, report)
		}
	}

	if err := w.SaveReports(args.Reports, merged); err != nil {
		return fmt.Errorf("save reports: %w", err)
	}

	slog.Debug("merged reports", "inputs", len(inputs), "reports", len(merged))

	return w.displayReports(ctx, merged)
}

func (w *workflow) Operations(ctx context.Context) error {
	return w.DisplayOperations(ctx, m.OperationKinds)
}

func (w *workflow) displayReports(ctx context.Context, reports []m.Report) error {
	if err := w.DisplayReports(ctx, reports); err != nil {
		return err
	}

	w.DisplayScore(ctx, batchScore(reports))

	return nil
}

// solveProblems evaluates problems concurrently. Reports keep the input order.
func (w *workflow) solveProblems(ctx context.Context, problems []m.Problem, defaultKind m.OperationKind, threads int) ([]m.Report, error) {
	reports := make([]m.Report, len(problems))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for i, problem := range problems {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			reports[i] = w.solveProblem(problem, defaultKind)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

func (w *workflow) solveProblem(problem m.Problem, defaultKind m.OperationKind) m.Report {
	report := m.Report{Source: problem.Source, Problem: problem}

	kind := defaultKind
	if problem.Operation != "" {
		parsed, err := m.ParseOperationKind(string(problem.Operation))
		if err != nil {
			report.Status = m.Failed
			report.Error = err.Error()

			return report
		}

		kind = parsed
	}

	report.Problem.Operation = kind

	solution, err := w.engine.Evaluate(problem.Input, kind, problemOptions(problem.WithRespectTo, problem.Variables)...)
	if err != nil {
		slog.Debug("problem failed", "id", problem.ID, "source", problem.Source, "error", err)

		report.Status = m.Failed
		report.Error = err.Error()

		return report
	}

	report.Solution = &solution
	report.Status = m.Solved

	expected := strings.TrimSpace(problem.Expect)
	if expected != "" && expected != solution.FinalResult {
		report.Status = m.Mismatch
		report.Diff = expectationDiff(expected, solution.FinalResult)
	}

	return report
}

func expectationDiff(expected, actual string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  1,
	})
	if err != nil {
		return fmt.Sprintf("-%s\n+%s\n", expected, actual)
	}

	return diff
}

func shardProblems(problems []m.Problem, shardIndex, shardCount int) []m.Problem {
	if shardCount <= 1 {
		return problems
	}

	var shard []m.Problem

	for i, problem := range problems {
		if i%shardCount == shardIndex {
			shard = append(shard, problem)
		}
	}

	return shard
}

func problemOptions(wrt string, variables map[string]float64) []EvaluateOption {
	opts := []EvaluateOption{WithRespectTo(wrt)}
	if len(variables) > 0 {
		opts = append(opts, WithBindings(variables))
	}

	return opts
}

func orDefault(kind, fallback m.OperationKind) m.OperationKind {
	if kind == "" {
		return fallback
	}

	return kind
}
