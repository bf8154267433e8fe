package model

import "strings"

// ValueKind tells which field of a Value is populated.
type ValueKind int

const (
	ScalarValue ValueKind = iota
	VectorValue
	MatrixValue
)

// Value is the numeric result of evaluating an expression.
type Value struct {
	Kind   ValueKind
	Scalar float64
	Vector []float64
	Matrix [][]float64
}

// Scalar wraps a float as a Value.
func Scalar(v float64) Value { return Value{Kind: ScalarValue, Scalar: v} }

// Vector wraps a slice as a Value.
func Vector(v []float64) Value { return Value{Kind: VectorValue, Vector: v} }

// Matrix wraps rows as a Value.
func Matrix(rows [][]float64) Value { return Value{Kind: MatrixValue, Matrix: rows} }

// String renders the value using the same bracket syntax the parser accepts.
func (v Value) String() string {
	switch v.Kind {
	case VectorValue:
		return "[" + formatRow(v.Vector) + "]"
	case MatrixValue:
		rows := make([]string, len(v.Matrix))
		for i, row := range v.Matrix {
			rows[i] = formatRow(row)
		}

		return "[" + strings.Join(rows, "; ") + "]"
	default:
		return FormatNumber(v.Scalar)
	}
}

func formatRow(row []float64) string {
	parts := make([]string, len(row))
	for i, x := range row {
		parts[i] = FormatNumber(x)
	}

	return strings.Join(parts, ", ")
}
