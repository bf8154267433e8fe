package domain

import (
	"fmt"
	"log/slog"
	"strings"

	m "github.com/synnheal/stepcalc/internal/model"
)

// Step descriptions of the expression pipelines.
const (
	StepInitialExpression = "Initial expression"
	StepEvaluate          = "Evaluate"
	StepSimplify          = "Simplify"
	StepDifferentiate     = "Apply differentiation rules"
)

// DefaultVariable is differentiated against when no WithRespectTo option is given.
const DefaultVariable = "x"

// Engine turns text into a solution with an ordered step trace.
type Engine interface {
	// Validate reports whether input could be processed as kind, without
	// evaluating it. Free variables are not an error.
	Validate(input string, kind m.OperationKind) error
	// Evaluate runs the pipeline of kind on input.
	Evaluate(input string, kind m.OperationKind, opts ...EvaluateOption) (m.Solution, error)
}

// EvaluateOption configures a single Evaluate call.
type EvaluateOption func(*evaluateOptions)

type evaluateOptions struct {
	bindings map[string]float64
	wrt      string
}

// WithBindings sets variable values used by numeric evaluation.
func WithBindings(bindings map[string]float64) EvaluateOption {
	return func(o *evaluateOptions) {
		o.bindings = bindings
	}
}

// WithRespectTo sets the differentiation variable.
func WithRespectTo(name string) EvaluateOption {
	return func(o *evaluateOptions) {
		if name != "" {
			o.wrt = name
		}
	}
}

type engine struct{}

// NewEngine returns a stateless Engine, safe for concurrent use.
func NewEngine() Engine {
	return &engine{}
}

func (en *engine) Validate(input string, kind m.OperationKind) error {
	err := en.validate(input, kind)
	if err != nil {
		return &InputError{Input: input, Kind: kind, Err: err}
	}

	return nil
}

func (en *engine) validate(input string, kind m.OperationKind) error {
	if strings.TrimSpace(input) == "" {
		return syntaxErrorf(0, "empty expression")
	}

	if kind == m.OperationLinear {
		sides := strings.Split(input, "=")
		if len(sides) != 2 || strings.TrimSpace(sides[0]) == "" || strings.TrimSpace(sides[1]) == "" {
			return fmt.Errorf("%w: expected exactly one '=' between two non-empty sides", ErrFormat)
		}

		if _, err := parseAt(sides[0], 0); err != nil {
			return err
		}

		_, err := parseAt(sides[1], len([]rune(sides[0]))+1)

		return err
	}

	if !isKnownKind(kind) {
		return fmt.Errorf("%w: operation %q", ErrUnsupportedOperation, kind)
	}

	_, err := Parse(input)

	return err
}

func (en *engine) Evaluate(input string, kind m.OperationKind, opts ...EvaluateOption) (m.Solution, error) {
	o := evaluateOptions{wrt: DefaultVariable}
	for _, opt := range opts {
		opt(&o)
	}

	slog.Debug("Evaluating input", "input", input, "kind", kind, "wrt", o.wrt, "bindings", len(o.bindings))

	var (
		solution m.Solution
		err      error
	)

	if strings.TrimSpace(input) == "" {
		err = syntaxErrorf(0, "empty expression")
	} else {
		solution, err = en.run(input, kind, o)
	}

	if err != nil {
		slog.Debug("Evaluation failed", "input", input, "kind", kind, "error", err)
		return m.Solution{}, &InputError{Input: input, Kind: kind, Err: err}
	}

	slog.Debug("Evaluation finished", "input", input, "kind", kind, "steps", len(solution.Steps), "result", solution.FinalResult)

	return solution, nil
}

func (en *engine) run(input string, kind m.OperationKind, o evaluateOptions) (m.Solution, error) {
	switch kind {
	case m.OperationLinear:
		return SolveLinear(input)
	case m.OperationEvaluate, m.OperationMatrix, m.OperationVector:
		return evaluatePipeline(input, o.bindings)
	case m.OperationSimplify:
		return simplifyPipeline(input)
	case m.OperationDerivative:
		return derivativePipeline(input, o.wrt)
	}

	return m.Solution{}, fmt.Errorf("%w: operation %q", ErrUnsupportedOperation, kind)
}

func evaluatePipeline(input string, bindings map[string]float64) (m.Solution, error) {
	expr, err := Parse(input)
	if err != nil {
		return m.Solution{}, err
	}

	value, err := Eval(expr, bindings)
	if err != nil {
		return m.Solution{}, err
	}

	return newSolution(
		m.Step{Description: StepInitialExpression, Expression: expr.String()},
		m.Step{Description: StepEvaluate, Expression: value.String()},
	), nil
}

func simplifyPipeline(input string) (m.Solution, error) {
	expr, err := Parse(input)
	if err != nil {
		return m.Solution{}, err
	}

	return newSolution(
		m.Step{Description: StepInitialExpression, Expression: expr.String()},
		m.Step{Description: StepSimplify, Expression: Simplify(expr).String()},
	), nil
}

func derivativePipeline(input, wrt string) (m.Solution, error) {
	expr, err := Parse(input)
	if err != nil {
		return m.Solution{}, err
	}

	derivative, err := Differentiate(expr, wrt)
	if err != nil {
		return m.Solution{}, err
	}

	return newSolution(
		m.Step{Description: StepInitialExpression, Expression: expr.String()},
		m.Step{Description: StepDifferentiate, Expression: derivative.String()},
		m.Step{Description: StepSimplify, Expression: Simplify(derivative).String()},
	), nil
}

// newSolution mirrors the last step into FinalResult.
func newSolution(steps ...m.Step) m.Solution {
	return m.Solution{
		Steps:       steps,
		FinalResult: steps[len(steps)-1].Expression,
	}
}

func isKnownKind(kind m.OperationKind) bool {
	for _, k := range m.OperationKinds {
		if k == kind {
			return true
		}
	}

	return false
}
