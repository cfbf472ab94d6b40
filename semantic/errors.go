package semantic

import (
	"fmt"

	"github.com/akrennmair/spi/parser"
)

// SemanticError reports a duplicate or unresolved identifier, or a call
// with the wrong number of arguments. Token is the offending use site.
type SemanticError struct {
	Name  string
	Code  parser.ErrorCode
	Token parser.Token
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", parser.FormatPosition(e.Name, e.Token.Line, e.Token.Column), e.Code, e.Token)
}
