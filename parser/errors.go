package parser

import (
	"errors"
	"fmt"
)

// ErrorCode classifies front end errors.
type ErrorCode string

const (
	ErrUnexpectedToken ErrorCode = "Unexpected token"
	ErrIDNotFound      ErrorCode = "Identifier not found"
	ErrDuplicateID     ErrorCode = "Duplicate id found"
	ErrWrongParamsNum  ErrorCode = "Wrong number of arguments"
)

var errUnterminatedComment = errors.New("unterminated comment")

// FormatPosition renders a source position as name:line:column, leaving
// out the name if it is empty.
func FormatPosition(name string, line, column int) string {
	if name == "" {
		return fmt.Sprintf("%d:%d", line, column)
	}
	return fmt.Sprintf("%s:%d:%d", name, line, column)
}

// LexerError is returned when a character of the input doesn't start any token.
type LexerError struct {
	Name   string
	Char   rune
	Line   int
	Column int
	Err    error
}

func (e *LexerError) Error() string {
	msg := fmt.Sprintf("%s: lexer error on %q", FormatPosition(e.Name, e.Line, e.Column), e.Char)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LexerError) Unwrap() error {
	return e.Err
}

// SyntaxError is returned when the token stream doesn't match the grammar.
type SyntaxError struct {
	Name  string
	Code  ErrorCode
	Token Token

	// Expected is the token kind the parser was looking for, if there was exactly one.
	Expected *TokenKind
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s", FormatPosition(e.Name, e.Token.Line, e.Token.Column), e.Code, e.Token)
	if e.Expected != nil {
		msg += fmt.Sprintf(", expected %s", *e.Expected)
	}
	return msg
}
