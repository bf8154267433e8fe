package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// OperationKind selects which engine pipeline runs for an input.
type OperationKind string

const (
	// OperationEvaluate reduces the expression to a number, vector or matrix.
	OperationEvaluate OperationKind = "evaluate"
	// OperationDerivative differentiates the expression and simplifies the result.
	OperationDerivative OperationKind = "derivative"
	// OperationLinear solves a two-unknown linear equation.
	OperationLinear OperationKind = "linear"
	// OperationSimplify only rewrites the expression into canonical form.
	OperationSimplify OperationKind = "simplify"
	// OperationMatrix evaluates matrix expressions.
	OperationMatrix OperationKind = "matrix"
	// OperationVector evaluates vector expressions.
	OperationVector OperationKind = "vector"
)

// OperationKinds lists every supported kind in display order.
var OperationKinds = []OperationKind{
	OperationEvaluate,
	OperationDerivative,
	OperationLinear,
	OperationSimplify,
	OperationMatrix,
	OperationVector,
}

var operationAliases = map[string]OperationKind{
	"generic-evaluate": OperationEvaluate,
	"eval":             OperationEvaluate,
	"linear-equation":  OperationLinear,
	"simplify-only":    OperationSimplify,
	"diff":             OperationDerivative,
}

// Description is a one-line summary of the kind.
func (k OperationKind) Description() string {
	switch k {
	case OperationEvaluate:
		return "numeric evaluation"
	case OperationDerivative:
		return "first derivative, then simplification"
	case OperationLinear:
		return "linear equation in x and y"
	case OperationSimplify:
		return "canonical simplification"
	case OperationMatrix:
		return "matrix evaluation"
	case OperationVector:
		return "vector evaluation"
	}

	return ""
}

// Aliases returns the alternative names of the kind in sorted order.
func (k OperationKind) Aliases() []string {
	var aliases []string

	for alias, kind := range operationAliases {
		if kind == k {
			aliases = append(aliases, alias)
		}
	}

	sort.Strings(aliases)

	return aliases
}

// ParseOperationKind resolves a name or alias. The empty string selects
// OperationEvaluate. Unknown names fail with the closest known names as hints.
func ParseOperationKind(name string) (OperationKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return OperationEvaluate, nil
	}

	for _, kind := range OperationKinds {
		if string(kind) == name {
			return kind, nil
		}
	}

	if kind, ok := operationAliases[name]; ok {
		return kind, nil
	}

	if hints := suggestOperations(name); len(hints) > 0 {
		return "", fmt.Errorf("unknown operation %q (did you mean %s?)", name, strings.Join(hints, " or "))
	}

	return "", fmt.Errorf("unknown operation %q", name)
}

func suggestOperations(name string) []string {
	candidates := make([]string, 0, len(OperationKinds))
	for _, kind := range OperationKinds {
		candidates = append(candidates, string(kind))
	}

	matches := fuzzy.Find(name, candidates)

	hints := make([]string, 0, 2)
	for _, match := range matches {
		hints = append(hints, match.Str)
		if len(hints) == cap(hints) {
			break
		}
	}

	return hints
}
