package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperationKind(t *testing.T) {
	tests := []struct {
		name string
		want OperationKind
	}{
		{name: "", want: OperationEvaluate},
		{name: "evaluate", want: OperationEvaluate},
		{name: "generic-evaluate", want: OperationEvaluate},
		{name: " Derivative ", want: OperationDerivative},
		{name: "diff", want: OperationDerivative},
		{name: "linear-equation", want: OperationLinear},
		{name: "simplify-only", want: OperationSimplify},
		{name: "matrix", want: OperationMatrix},
		{name: "vector", want: OperationVector},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOperationKind(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOperationKind_Suggestions(t *testing.T) {
	_, err := ParseOperationKind("drvtv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown operation "drvtv"`)
	assert.Contains(t, err.Error(), "derivative")

	_, err = ParseOperationKind("qqq")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestOperationKind_DescriptionAndAliases(t *testing.T) {
	for _, kind := range OperationKinds {
		assert.NotEmpty(t, kind.Description(), kind)

		for _, alias := range kind.Aliases() {
			got, err := ParseOperationKind(alias)
			require.NoError(t, err)
			assert.Equal(t, kind, got)
		}
	}

	assert.Equal(t, []string{"eval", "generic-evaluate"}, OperationEvaluate.Aliases())
	assert.Empty(t, OperationMatrix.Aliases())
	assert.Empty(t, OperationKind("integral").Description())
}
