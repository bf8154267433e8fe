package domain

import (
	"fmt"
	"log/slog"
	"strings"

	m "github.com/synnheal/stepcalc/internal/model"
)

// Step descriptions of a linear solve.
const (
	StepInitialEquation = "Initial equation"
	StepRearrange       = "Rearrange terms"
	StepSolveX          = "Solve for x"
	StepSolveY          = "Solve for y"
)

// linearTerms holds what coefficient extraction found in a rearranged equation.
type linearTerms struct {
	a, b     float64
	hasA     bool
	hasB     bool
	constant float64
	ignored  []string
}

// SolveLinear solves an equation in x and y with the first-match convention:
// LHS - (RHS) is simplified into a sum of terms, the first term containing x
// gives a, the first remaining term containing y gives b, and the numeric
// constant gives c. Then x = -c/a and y = -(c + a*x)/b. With one equation
// this is not a true two-unknown solve; 2*x + y = 10 gives x = 5, y = 0.
func SolveLinear(equation string) (m.Solution, error) {
	equation = strings.TrimSpace(equation)
	if equation == "" {
		return m.Solution{}, syntaxErrorf(0, "empty expression")
	}

	sides := strings.Split(equation, "=")
	if len(sides) != 2 || strings.TrimSpace(sides[0]) == "" || strings.TrimSpace(sides[1]) == "" {
		return m.Solution{}, fmt.Errorf("%w: expected exactly one '=' between two non-empty sides", ErrFormat)
	}

	lhs, err := parseAt(sides[0], 0)
	if err != nil {
		return m.Solution{}, err
	}

	rhs, err := parseAt(sides[1], len([]rune(sides[0]))+1)
	if err != nil {
		return m.Solution{}, err
	}

	rearranged := Simplify(m.Sub(lhs, rhs))
	terms := extractLinearTerms(rearranged)
	if len(terms.ignored) > 0 {
		slog.Debug("Ignoring terms outside x and y", "equation", equation, "terms", terms.ignored)
	}

	if !terms.hasA || terms.a == 0 {
		return m.Solution{}, domainErrorf("no term in x in %s = 0", rearranged)
	}

	if !terms.hasB || terms.b == 0 {
		return m.Solution{}, domainErrorf("no term in y in %s = 0", rearranged)
	}

	x := positiveZero(-terms.constant / terms.a)
	y := positiveZero(-(terms.constant + terms.a*x) / terms.b)

	if _, err := finite(x); err != nil {
		return m.Solution{}, err
	}

	if _, err := finite(y); err != nil {
		return m.Solution{}, err
	}

	return m.Solution{
		Steps: []m.Step{
			{Description: StepInitialEquation, Expression: equation},
			{Description: StepRearrange, Expression: rearranged.String() + " = 0"},
			{Description: StepSolveX, Expression: fmt.Sprintf("x = %.2f", x)},
			{Description: StepSolveY, Expression: fmt.Sprintf("y = %.2f", y)},
		},
		FinalResult: fmt.Sprintf("x = %.2f, y = %.2f", x, y),
		Variables:   map[string]float64{"x": x, "y": y},
	}, nil
}

func extractLinearTerms(e m.Expr) linearTerms {
	var lt linearTerms

	seenConstant := false

	var walk func(e m.Expr, sign float64)
	walk = func(e m.Expr, sign float64) {
		if b, ok := e.(*m.BinaryOp); ok && (b.Op == m.OpAdd || b.Op == m.OpSub) {
			walk(b.Left, sign)

			if b.Op == m.OpSub {
				walk(b.Right, -sign)
			} else {
				walk(b.Right, sign)
			}

			return
		}

		if num, ok := e.(*m.Number); ok {
			if !seenConstant {
				lt.constant = sign * num.Value
				seenConstant = true
			}

			return
		}

		coef := sign * termCoefficient(e)

		switch {
		case m.Contains(e, "x") && !lt.hasA:
			lt.a, lt.hasA = coef, true
		case m.Contains(e, "y") && !lt.hasB:
			lt.b, lt.hasB = coef, true
		default:
			lt.ignored = append(lt.ignored, e.String())
		}
	}
	walk(e, 1)

	return lt
}

// termCoefficient is the numeric factor of a term; a term without one counts as 1.
func termCoefficient(e m.Expr) float64 {
	p, ok := flattenProduct(e)
	if !ok {
		return 1
	}

	return p.coef
}

func positiveZero(v float64) float64 {
	if v == 0 {
		return 0
	}

	return v
}
