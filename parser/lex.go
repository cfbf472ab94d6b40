package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind TokenKind

	// Value is an int64 for integer constants, a float64 for real
	// constants, the identifier as written for identifiers, the upper-case
	// spelling for reserved words and the operator text for operators. It is
	// nil for EOF.
	Value interface{}

	// Line and Column are 1-based and refer to the first character of the token.
	Line   int
	Column int
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return fmt.Sprintf("Token(EOF, position = %d:%d)", t.Line, t.Column)
	}
	return fmt.Sprintf("Token(%s, %v, position = %d:%d)", t.Kind, t.Value, t.Line, t.Column)
}

// Text returns the token value as a string. Numeric values are formatted.
func (t Token) Text() string {
	switch v := t.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenPlus
	TokenMinus
	TokenMul
	TokenFloatDiv
	TokenIntegerDiv
	TokenLParen
	TokenRParen
	TokenColon
	TokenComma
	TokenSemi
	TokenDot
	TokenAssign
	TokenProgram
	TokenProcedure
	TokenVar
	TokenInteger
	TokenReal
	TokenBegin
	TokenEnd
	TokenID
	TokenIntegerConst
	TokenRealConst
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:          "EOF",
	TokenPlus:         "PLUS",
	TokenMinus:        "MINUS",
	TokenMul:          "MUL",
	TokenFloatDiv:     "FLOAT_DIV",
	TokenIntegerDiv:   "INTEGER_DIV",
	TokenLParen:       "LPAREN",
	TokenRParen:       "RPAREN",
	TokenColon:        "COLON",
	TokenComma:        "COMMA",
	TokenSemi:         "SEMI",
	TokenDot:          "DOT",
	TokenAssign:       "ASSIGN",
	TokenProgram:      "PROGRAM",
	TokenProcedure:    "PROCEDURE",
	TokenVar:          "VAR",
	TokenInteger:      "INTEGER",
	TokenReal:         "REAL",
	TokenBegin:        "BEGIN",
	TokenEnd:          "END",
	TokenID:           "ID",
	TokenIntegerConst: "INTEGER_CONST",
	TokenRealConst:    "REAL_CONST",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("INVALID(%d)", int(k))
}

var key = map[string]TokenKind{
	"PROGRAM":   TokenProgram,
	"PROCEDURE": TokenProcedure,
	"VAR":       TokenVar,
	"DIV":       TokenIntegerDiv,
	"INTEGER":   TokenInteger,
	"REAL":      TokenReal,
	"BEGIN":     TokenBegin,
	"END":       TokenEnd,
}

var operators = map[rune]TokenKind{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMul,
	'/': TokenFloatDiv,
	'(': TokenLParen,
	')': TokenRParen,
	',': TokenComma,
	';': TokenSemi,
	'.': TokenDot,
}

const eof = -1

const (
	digits  = "0123456789"
	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Lexer turns source text into tokens, one NextToken call at a time.
type Lexer struct {
	name  string
	input string
	pos   int
	width int

	line, column         int
	prevLine, prevColumn int

	start Token
}

func NewLexer(name, input string) *Lexer {
	return &Lexer{
		name:   name,
		input:  input,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	l.prevLine, l.prevColumn = l.line, l.column
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// backup steps back one rune. Can only be called once per call of next.
func (l *Lexer) backup() {
	if l.width == 0 {
		return
	}
	l.pos -= l.width
	l.width = 0
	l.line, l.column = l.prevLine, l.prevColumn
}

func (l *Lexer) acceptRun(valid string) string {
	begin := l.pos
	for r := l.next(); r != eof && strings.ContainsRune(valid, r); r = l.next() {
	}
	l.backup()
	return l.input[begin:l.pos]
}

// mark remembers where the token that is about to be scanned starts.
func (l *Lexer) mark() {
	l.start = Token{Line: l.line, Column: l.column}
}

func (l *Lexer) emit(kind TokenKind, value interface{}) Token {
	tok := l.start
	tok.Kind = kind
	tok.Value = value
	return tok
}

func (l *Lexer) errorf(r rune, err error) error {
	return &LexerError{
		Name:   l.name,
		Char:   r,
		Line:   l.start.Line,
		Column: l.start.Column,
		Err:    err,
	}
}

// NextToken returns the next token of the input. Once the input is
// exhausted, it keeps returning an EOF token.
func (l *Lexer) NextToken() (Token, error) {
	for {
		l.mark()
		r := l.peek()
		switch {
		case r == eof:
			return l.emit(TokenEOF, nil), nil
		case r == ' ' || r == '\n' || r == '\r' || r == '\t' || r == '\f' || r == '\v':
			l.acceptRun(" \n\r\t\f\v")
		case r == '{':
			if err := l.lexComment(); err != nil {
				return Token{}, err
			}
		case strings.ContainsRune(letters, r):
			return l.lexIdentifier(), nil
		case strings.ContainsRune(digits, r):
			return l.lexNumber()
		case r == ':':
			return l.lexColonOrAssignment(), nil
		default:
			if kind, ok := operators[r]; ok {
				l.next()
				return l.emit(kind, string(r)), nil
			}
			return Token{}, l.errorf(r, nil)
		}
	}
}

func (l *Lexer) lexIdentifier() Token {
	word := l.acceptRun(digits + letters)
	upper := strings.ToUpper(word)
	if kind, found := key[upper]; found {
		return l.emit(kind, upper)
	}
	return l.emit(TokenID, word)
}

func (l *Lexer) lexNumber() (Token, error) {
	text := l.acceptRun(digits)
	if l.peek() != '.' {
		i, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return l.emit(TokenIntegerConst, i), nil
		}
		// digit runs too large for an integer are read as reals.
		if !errors.Is(err, strconv.ErrRange) {
			return Token{}, l.errorf(rune(text[0]), err)
		}
	} else {
		l.next()
		text += "." + l.acceptRun(digits)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, l.errorf(rune(text[0]), err)
	}
	return l.emit(TokenRealConst, f), nil
}

func (l *Lexer) lexColonOrAssignment() Token {
	l.next()
	if l.peek() == '=' {
		l.next()
		return l.emit(TokenAssign, ":=")
	}
	return l.emit(TokenColon, ":")
}

func (l *Lexer) lexComment() error {
	l.next()
	for r := l.next(); r != '}'; r = l.next() {
		if r == eof {
			return l.errorf('{', errUnterminatedComment)
		}
	}
	return nil
}

// rawPeek returns the character immediately following the last scanned
// token, without skipping whitespace or comments.
func (l *Lexer) rawPeek() rune {
	return l.peek()
}
