package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsAndFreeVariables(t *testing.T) {
	expr := Add(Mul(Var("y"), Fn("sin", Var("x"))), Neg(Var("y")))

	assert.True(t, Contains(expr, "x"))
	assert.True(t, Contains(expr, "y"))
	assert.False(t, Contains(expr, "z"))
	assert.Equal(t, []string{"y", "x"}, FreeVariables(expr))
	assert.Empty(t, FreeVariables(Num(3)))
}

func TestEqual(t *testing.T) {
	a := Add(Var("x"), Fn("f", Num(1), Var("y")))

	assert.True(t, Equal(a, Add(Var("x"), Fn("f", Num(1), Var("y")))))
	assert.False(t, Equal(a, Sub(Var("x"), Fn("f", Num(1), Var("y")))))
	assert.False(t, Equal(a, Add(Var("x"), Fn("f", Num(1)))))
	assert.False(t, Equal(Num(1), Var("x")))
	assert.True(t, IsNumber(Num(0), 0))
	assert.False(t, IsNumber(Var("x"), 0))
}

func TestFnCopiesArguments(t *testing.T) {
	args := []Expr{Num(1), Num(2)}
	call := Fn("max", args...)

	args[0] = Num(9)

	assert.Equal(t, "max(1, 2)", call.String())
}
