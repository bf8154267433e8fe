package domain

import (
	"errors"
	"fmt"

	m "github.com/synnheal/stepcalc/internal/model"
)

// Error taxonomy of the engine. Detailed errors wrap one of these and are
// matched with errors.Is.
var (
	// ErrSyntax reports input that cannot form a complete expression.
	ErrSyntax = errors.New("syntax error")
	// ErrUnboundVariable reports evaluation of a name with no binding.
	ErrUnboundVariable = errors.New("unbound variable")
	// ErrUnsupportedOperation reports a function or operand shape the engine has no rule for.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrDomain reports an operation outside the real domain.
	ErrDomain = errors.New("domain error")
	// ErrFormat reports an equation that does not have exactly one '='.
	ErrFormat = errors.New("format error")
)

// InputError carries the original input of a failed engine call.
type InputError struct {
	Input string
	Kind  m.OperationKind
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Input, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func syntaxErrorf(pos int, format string, args ...any) error {
	return fmt.Errorf("%w at position %d: %s", ErrSyntax, pos, fmt.Sprintf(format, args...))
}

func domainErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDomain, fmt.Sprintf(format, args...))
}
