package model

import "fmt"

// TokenKind classifies a lexical unit.
type TokenKind int

const (
	// TokenNumber is a numeric literal such as 2, 0.5 or 1e-3.
	TokenNumber TokenKind = iota
	// TokenIdentifier is a variable or function name.
	TokenIdentifier
	// TokenOperator is one of + - * / ^.
	TokenOperator
	// TokenParen is ( or ).
	TokenParen
	// TokenComma separates call arguments.
	TokenComma
	// TokenMatrix is a whole bracketed literal such as [1, 2; 3, 4].
	TokenMatrix
)

func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "number"
	case TokenIdentifier:
		return "identifier"
	case TokenOperator:
		return "operator"
	case TokenParen:
		return "paren"
	case TokenComma:
		return "comma"
	case TokenMatrix:
		return "matrix"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a classified lexical unit. Pos is the rune offset in the input.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %d", t.Kind, t.Text, t.Pos)
}
