package domain

import (
	"errors"
	"strconv"
	"strings"

	m "github.com/synnheal/stepcalc/internal/model"
)

// Parse builds an expression tree from text.
//
// Grammar, loosest binding first:
//
//	expr    := term (('+'|'-') term)*
//	term    := unary (('*'|'/') unary | power)*   a bare operand multiplies implicitly
//	unary   := ('-'|'+') unary | power
//	power   := primary ('^' unary)?                right-associative
//	primary := number | identifier ('(' args ')')? | '(' expr ')' | matrix
func Parse(input string) (m.Expr, error) {
	if strings.TrimSpace(input) == "" {
		return nil, syntaxErrorf(0, "empty expression")
	}

	return parseAt(input, 0)
}

func parseAt(input string, base int) (m.Expr, error) {
	tokens, err := newLexer(input, base).scan()
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, end: base + len([]rune(input))}

	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	if tok, ok := p.peek(); ok {
		if tok.Text == ")" {
			return nil, syntaxErrorf(tok.Pos, "unbalanced parenthesis")
		}

		return nil, syntaxErrorf(tok.Pos, "unexpected %s %q", tok.Kind, tok.Text)
	}

	return expr, nil
}

type parser struct {
	tokens []m.Token
	pos    int
	end    int
}

func (p *parser) peek() (m.Token, bool) {
	if p.pos >= len(p.tokens) {
		return m.Token{}, false
	}

	return p.tokens[p.pos], true
}

func (p *parser) next() (m.Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}

	return tok, ok
}

// accept consumes the next token when it has the given kind and text.
func (p *parser) accept(kind m.TokenKind, text string) bool {
	tok, ok := p.peek()
	if !ok || tok.Kind != kind || tok.Text != text {
		return false
	}

	p.pos++

	return true
}

func (p *parser) expr() (m.Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}

	for {
		var op m.BinaryOperator

		switch {
		case p.accept(m.TokenOperator, "+"):
			op = m.OpAdd
		case p.accept(m.TokenOperator, "-"):
			op = m.OpSub
		default:
			return left, nil
		}

		right, err := p.term()
		if err != nil {
			return nil, err
		}

		left = m.Bin(op, left, right)
	}
}

func (p *parser) term() (m.Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}

	for {
		var (
			right m.Expr
			op    = m.OpMul
		)

		switch {
		case p.accept(m.TokenOperator, "*"):
			right, err = p.unary()
		case p.accept(m.TokenOperator, "/"):
			op = m.OpDiv
			right, err = p.unary()
		case p.startsOperand():
			right, err = p.power()
		default:
			return left, nil
		}

		if err != nil {
			return nil, err
		}

		left = m.Bin(op, left, right)
	}
}

// startsOperand reports whether the next token may begin an implicitly multiplied operand.
func (p *parser) startsOperand() bool {
	tok, ok := p.peek()
	if !ok {
		return false
	}

	switch tok.Kind {
	case m.TokenNumber, m.TokenIdentifier, m.TokenMatrix:
		return true
	case m.TokenParen:
		return tok.Text == "("
	}

	return false
}

func (p *parser) unary() (m.Expr, error) {
	if p.accept(m.TokenOperator, "-") {
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}

		return m.Neg(operand), nil
	}

	if p.accept(m.TokenOperator, "+") {
		return p.unary()
	}

	return p.power()
}

func (p *parser) power() (m.Expr, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}

	if !p.accept(m.TokenOperator, "^") {
		return base, nil
	}

	exponent, err := p.unary()
	if err != nil {
		return nil, err
	}

	return m.Pow(base, exponent), nil
}

func (p *parser) primary() (m.Expr, error) {
	tok, ok := p.next()
	if !ok {
		return nil, syntaxErrorf(p.end, "unexpected end of input")
	}

	switch tok.Kind {
	case m.TokenNumber:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, syntaxErrorf(tok.Pos, "number %s out of range", tok.Text)
			}

			return nil, syntaxErrorf(tok.Pos, "malformed number %q", tok.Text)
		}

		return m.Num(v), nil
	case m.TokenIdentifier:
		if p.accept(m.TokenParen, "(") {
			return p.call(tok)
		}

		return m.Var(tok.Text), nil
	case m.TokenParen:
		if tok.Text == ")" {
			return nil, syntaxErrorf(tok.Pos, "unbalanced parenthesis")
		}

		inner, err := p.expr()
		if err != nil {
			return nil, err
		}

		if !p.accept(m.TokenParen, ")") {
			return nil, syntaxErrorf(tok.Pos, "unbalanced parenthesis")
		}

		return inner, nil
	case m.TokenMatrix:
		return parseMatrix(tok)
	}

	return nil, syntaxErrorf(tok.Pos, "unexpected %s %q", tok.Kind, tok.Text)
}

func (p *parser) call(name m.Token) (m.Expr, error) {
	var args []m.Expr

	if !p.accept(m.TokenParen, ")") {
		for {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if p.accept(m.TokenComma, ",") {
				continue
			}

			if p.accept(m.TokenParen, ")") {
				break
			}

			return nil, syntaxErrorf(name.Pos, "unbalanced parenthesis in call to %s", name.Text)
		}
	}

	if fn, ok := lookupFunction(name.Text); ok && !fn.accepts(len(args)) {
		return nil, syntaxErrorf(name.Pos, "%s expects %s, got %d", name.Text, fn.arity(), len(args))
	}

	return m.Fn(name.Text, args...), nil
}

// parseMatrix turns a bracket literal into a vector call, or into a matrix
// call of vector rows when the literal contains ';'.
func parseMatrix(tok m.Token) (m.Expr, error) {
	inner := []rune(tok.Text)
	inner = inner[1 : len(inner)-1]
	base := tok.Pos + 1

	if strings.TrimSpace(string(inner)) == "" {
		return nil, syntaxErrorf(tok.Pos, "empty matrix literal")
	}

	var rows []m.Expr

	width := -1

	for _, row := range splitTopLevel(inner, ';', 0) {
		var cells []m.Expr

		for _, cell := range splitTopLevel(row.text, ',', row.offset) {
			if strings.TrimSpace(string(cell.text)) == "" {
				return nil, syntaxErrorf(base+cell.offset, "empty matrix cell")
			}

			expr, err := parseAt(string(cell.text), base+cell.offset)
			if err != nil {
				return nil, err
			}

			cells = append(cells, expr)
		}

		if width >= 0 && len(cells) != width {
			return nil, syntaxErrorf(base+row.offset, "matrix rows have different lengths")
		}

		width = len(cells)
		rows = append(rows, m.Fn(m.VectorCall, cells...))
	}

	if len(rows) == 1 {
		return rows[0], nil
	}

	return m.Fn(m.MatrixCall, rows...), nil
}

type segment struct {
	text   []rune
	offset int
}

// splitTopLevel splits text on sep outside any parentheses or brackets.
func splitTopLevel(text []rune, sep rune, offset int) []segment {
	var out []segment

	depth, start := 0, 0

	for i, ch := range text {
		switch ch {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case sep:
			if depth == 0 {
				out = append(out, segment{text: text[start:i], offset: offset + start})
				start = i + 1
			}
		}
	}

	return append(out, segment{text: text[start:], offset: offset + start})
}
