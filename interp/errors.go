package interp

import (
	"fmt"

	"github.com/akrennmair/spi/parser"
)

const (
	ErrUnsetVariable       parser.ErrorCode = "Unset variable"
	ErrDivisionByZero      parser.ErrorCode = "Division by zero"
	ErrNonFinite           parser.ErrorCode = "Non-finite result"
	ErrIntegerOverflow     parser.ErrorCode = "Integer overflow"
	ErrUnresolvedCall      parser.ErrorCode = "Unresolved procedure call"
	ErrCallDepthExceeded   parser.ErrorCode = "Maximum call depth exceeded"
	ErrIncompatibleOperand parser.ErrorCode = "Incompatible operand"
)

// RuntimeError is returned when the evaluation of the program fails.
type RuntimeError struct {
	Name  string
	Code  parser.ErrorCode
	Token parser.Token
	Msg   string
}

func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", parser.FormatPosition(e.Name, e.Token.Line, e.Token.Column), e.Code)
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	return msg
}
