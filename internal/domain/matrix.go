package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	m "github.com/synnheal/stepcalc/internal/model"
)

// dense converts row slices for gonum; rowsOf converts back. Shapes are
// checked before calling into mat, which panics on mismatched dimensions.
func dense(a [][]float64) *mat.Dense {
	return mat.NewDense(len(a), len(a[0]), flattenRows(a))
}

func rowsOf(d mat.Matrix) [][]float64 {
	r, c := d.Dims()
	out := make([][]float64, r)

	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = d.At(i, j)
		}
	}

	return out
}

// finiteRows is rowsOf for computed results, which may overflow.
func finiteRows(d mat.Matrix) ([][]float64, error) {
	rows := rowsOf(d)

	for _, row := range rows {
		for _, v := range row {
			if _, err := finite(v); err != nil {
				return nil, err
			}
		}
	}

	return rows, nil
}

func dims(a [][]float64) string {
	if len(a) == 0 {
		return "0x0"
	}

	return fmt.Sprintf("%dx%d", len(a), len(a[0]))
}

func dotProduct(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, domainErrorf("dimension mismatch: %d vs %d", len(a), len(b))
	}

	return finite(floats.Dot(a, b))
}

func matMul(a, b [][]float64) ([][]float64, error) {
	if len(a) == 0 || len(b) == 0 || len(a[0]) != len(b) {
		return nil, domainErrorf("dimension mismatch: %s times %s", dims(a), dims(b))
	}

	var out mat.Dense
	out.Mul(dense(a), dense(b))

	return finiteRows(&out)
}

func columnOf(v []float64) [][]float64 {
	out := make([][]float64, len(v))
	for i, x := range v {
		out[i] = []float64{x}
	}

	return out
}

func flattenRows(a [][]float64) []float64 {
	out := make([]float64, 0, len(a))
	for _, row := range a {
		out = append(out, row...)
	}

	return out
}

func transpose(a [][]float64) [][]float64 {
	if len(a) == 0 {
		return nil
	}

	return rowsOf(dense(a).T())
}

func requireSquare(a [][]float64, op string) error {
	if len(a) == 0 || len(a) != len(a[0]) {
		return domainErrorf("%s needs a square matrix, got %s", op, dims(a))
	}

	return nil
}

func determinant(a [][]float64) (float64, error) {
	if err := requireSquare(a, "det"); err != nil {
		return 0, err
	}

	return finite(mat.Det(dense(a)))
}

// inverse fails for singular and numerically singular matrices alike.
func inverse(a [][]float64) ([][]float64, error) {
	if err := requireSquare(a, "inv"); err != nil {
		return nil, err
	}

	var out mat.Dense
	if err := out.Inverse(dense(a)); err != nil {
		return nil, domainErrorf("matrix is singular")
	}

	return finiteRows(&out)
}

// matrixPower raises a square matrix to a non-negative integer power.
func matrixPower(a [][]float64, exp float64) (m.Value, error) {
	if err := requireSquare(a, "matrix power"); err != nil {
		return m.Value{}, err
	}

	if exp < 0 || exp != math.Trunc(exp) {
		return m.Value{}, fmt.Errorf("%w: matrix power needs a non-negative integer exponent", ErrUnsupportedOperation)
	}

	if exp > math.MaxInt32 {
		return m.Value{}, domainErrorf("matrix power %s is too large", m.FormatNumber(exp))
	}

	var out mat.Dense
	out.Pow(dense(a), int(exp))

	rows, err := finiteRows(&out)
	if err != nil {
		return m.Value{}, err
	}

	return m.Matrix(rows), nil
}
