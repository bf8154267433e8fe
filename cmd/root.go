// Package cmd provides the root command and CLI setup for stepcalc.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/synnheal/stepcalc/internal/adapter"
	"github.com/synnheal/stepcalc/internal/controller"
	"github.com/synnheal/stepcalc/internal/domain"
	m "github.com/synnheal/stepcalc/internal/model"
)

var problemSource adapter.ProblemSource
var reportStore adapter.ReportStore
var engine domain.Engine
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

var verboseFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	problemSource = adapter.NewLocalProblemSource()
	reportStore = adapter.NewReportStore()
	engine = domain.NewEngine()
	workflow = domain.NewWorkflow(
		problemSource,
		reportStore,
		ui,
		engine,
	)
}

const pathPatternsHelp = `Problem paths accept files, directories and recursive patterns:
  - ./...              recursively scan the current directory
  - ./problems/...     recursively scan the problems directory
  - basic.yaml ./more  a file and the top level of a directory`

const rootLongDescription = `stepcalc is a symbolic-math step engine. It parses expressions and
two-variable linear equations, simplifies, differentiates, solves and
evaluates them, and prints every intermediate step.

Input syntax: numbers, variables, + - * / ^, unary minus, function calls
such as sin(x) or log(x, 2), vectors [1, 2, 3] and matrices [1, 2; 3, 4].`

const batchLongDescription = `Solve every problem of the given YAML problem files and store the
reports in the output directory. A problem file holds a top-level list:

  problems:
    - id: square
      input: x^2 + 2*x + 1
      operation: derivative
      expect: 2*x + 2

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stepcalc",
		Short: "Symbolic math with step-by-step solutions",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for batch reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// addOperationFlag adds --op to a command. Several commands share the
// eval.operation key, so the binding happens when the command runs.
func addOperationFlag(cmd *cobra.Command, target *string, usage string) {
	cmd.Flags().StringVarP(target, operationFlagName, "k", viper.GetString(evalOperationKey), usage)

	previous := cmd.PreRun
	cmd.PreRun = func(c *cobra.Command, args []string) {
		bindFlagToConfig(c.Flags().Lookup(operationFlagName), evalOperationKey)

		if previous != nil {
			previous(c, args)
		}
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
