package domain

import (
	"strings"
	"unicode"

	m "github.com/synnheal/stepcalc/internal/model"
)

const operatorChars = "+-*/^"

// Tokenize splits input into tokens. Positions are rune offsets into input.
func Tokenize(input string) ([]m.Token, error) {
	return newLexer(input, 0).scan()
}

type lexer struct {
	src    []rune
	pos    int
	base   int
	tokens []m.Token
}

func newLexer(input string, base int) *lexer {
	return &lexer{src: []rune(input), base: base}
}

func (l *lexer) peek(offset int) (rune, bool) {
	i := l.pos + offset
	if i >= len(l.src) {
		return 0, false
	}

	return l.src[i], true
}

func (l *lexer) emit(kind m.TokenKind, start int) {
	l.tokens = append(l.tokens, m.Token{
		Kind: kind,
		Text: string(l.src[start:l.pos]),
		Pos:  l.base + start,
	})
}

func (l *lexer) scan() ([]m.Token, error) {
	for l.pos < len(l.src) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}

	return l.tokens, nil
}

func (l *lexer) next() error {
	ch := l.src[l.pos]
	start := l.pos

	switch {
	case unicode.IsSpace(ch):
		l.pos++
	case isDigit(ch) || (ch == '.' && l.digitAt(1)):
		return l.number()
	case ch == '_' || unicode.IsLetter(ch):
		l.identifier()
	case strings.ContainsRune(operatorChars, ch):
		l.pos++
		l.emit(m.TokenOperator, start)
	case ch == '(' || ch == ')':
		l.pos++
		l.emit(m.TokenParen, start)
	case ch == ',':
		l.pos++
		l.emit(m.TokenComma, start)
	case ch == '[':
		return l.matrix()
	default:
		return syntaxErrorf(l.base+start, "unexpected character %q", ch)
	}

	return nil
}

func (l *lexer) digitAt(offset int) bool {
	ch, ok := l.peek(offset)
	return ok && isDigit(ch)
}

func (l *lexer) number() error {
	start := l.pos
	seenDot := false

	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if isDigit(ch) {
			l.pos++
			continue
		}

		if ch == '.' {
			if seenDot {
				return syntaxErrorf(l.base+l.pos, "malformed number %q", string(l.src[start:l.pos+1]))
			}

			seenDot = true
			l.pos++

			continue
		}

		break
	}

	// An exponent is only consumed when digits follow, so "2e" stays 2*e.
	if ch, ok := l.peek(0); ok && (ch == 'e' || ch == 'E') {
		switch sign, _ := l.peek(1); {
		case isDigit(sign):
			l.pos++
		case (sign == '+' || sign == '-') && l.digitAt(2):
			l.pos += 2
		}

		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}

	l.emit(m.TokenNumber, start)

	return nil
}

func (l *lexer) identifier() {
	start := l.pos
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch != '_' && !unicode.IsLetter(ch) && !isDigit(ch) {
			break
		}

		l.pos++
	}

	l.emit(m.TokenIdentifier, start)
}

// matrix consumes a whole bracketed literal, nested brackets included.
func (l *lexer) matrix() error {
	start := l.pos
	depth := 0

	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '[':
			depth++
		case ']':
			depth--
		}

		l.pos++

		if depth == 0 {
			l.emit(m.TokenMatrix, start)
			return nil
		}
	}

	return syntaxErrorf(l.base+start, "unterminated matrix literal")
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
