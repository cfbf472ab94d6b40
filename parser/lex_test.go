package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerTokens(t *testing.T) {
	testData := []struct {
		text  string
		kind  TokenKind
		value interface{}
	}{
		{"234", TokenIntegerConst, int64(234)},
		{"3.14", TokenRealConst, 3.14},
		{"3.", TokenRealConst, 3.0},
		{"9223372036854775807", TokenIntegerConst, int64(9223372036854775807)},
		{"99999999999999999999", TokenRealConst, 1e20},
		{"*", TokenMul, "*"},
		{"DIV", TokenIntegerDiv, "DIV"},
		{"div", TokenIntegerDiv, "DIV"},
		{"/", TokenFloatDiv, "/"},
		{"+", TokenPlus, "+"},
		{"-", TokenMinus, "-"},
		{"(", TokenLParen, "("},
		{")", TokenRParen, ")"},
		{":=", TokenAssign, ":="},
		{":", TokenColon, ":"},
		{",", TokenComma, ","},
		{".", TokenDot, "."},
		{"number", TokenID, "number"},
		{"Number2", TokenID, "Number2"},
		{";", TokenSemi, ";"},
		{"BEGIN", TokenBegin, "BEGIN"},
		{"Begin", TokenBegin, "BEGIN"},
		{"END", TokenEnd, "END"},
		{"PROGRAM", TokenProgram, "PROGRAM"},
		{"procedure", TokenProcedure, "PROCEDURE"},
		{"VAR", TokenVar, "VAR"},
		{"integer", TokenInteger, "INTEGER"},
		{"REAL", TokenReal, "REAL"},
		{"  { a comment } 42", TokenIntegerConst, int64(42)},
	}

	for _, tt := range testData {
		t.Run(tt.text, func(t *testing.T) {
			tok, err := NewLexer("test", tt.text).NextToken()
			require.NoError(t, err)
			assert.Equal(t, tt.kind, tok.Kind)
			assert.Equal(t, tt.value, tok.Value)
		})
	}
}

func TestLexerPositions(t *testing.T) {
	l := NewLexer("test", "BEGIN\n  x := 3.14 {c} ;")

	expected := []struct {
		kind   TokenKind
		line   int
		column int
	}{
		{TokenBegin, 1, 1},
		{TokenID, 2, 3},
		{TokenAssign, 2, 5},
		{TokenRealConst, 2, 8},
		{TokenSemi, 2, 17},
		{TokenEOF, 2, 18},
	}

	for idx, want := range expected {
		tok, err := l.NextToken()
		require.NoError(t, err)
		assert.Equal(t, want.kind, tok.Kind, "%d. token kind", idx)
		assert.Equal(t, want.line, tok.Line, "%d. line of %s", idx, tok)
		assert.Equal(t, want.column, tok.Column, "%d. column of %s", idx, tok)
	}
}

func TestLexerEOFRepeats(t *testing.T) {
	l := NewLexer("test", "x")

	tok, err := l.NextToken()
	require.NoError(t, err)
	require.Equal(t, TokenID, tok.Kind)

	for i := 0; i < 3; i++ {
		tok, err := l.NextToken()
		require.NoError(t, err)
		require.Equal(t, TokenEOF, tok.Kind)
		require.Nil(t, tok.Value)
	}
}

func TestLexerErrors(t *testing.T) {
	testData := []struct {
		name   string
		text   string
		char   rune
		line   int
		column int
	}{
		{"unknown character", "<", '<', 1, 1},
		{"unknown character after tokens", "a := 1;\n  b := a # 2", '#', 2, 10},
		{"unterminated comment", "BEGIN { never closed", '{', 1, 7},
	}

	for _, tt := range testData {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer("test", tt.text)

			var err error
			for i := 0; i < 20 && err == nil; i++ {
				var tok Token
				tok, err = l.NextToken()
				require.False(t, err == nil && tok.Kind == TokenEOF, "reached EOF without error")
			}

			var lexErr *LexerError
			require.True(t, errors.As(err, &lexErr), "expected LexerError, got %v", err)
			assert.Equal(t, tt.char, lexErr.Char)
			assert.Equal(t, tt.line, lexErr.Line)
			assert.Equal(t, tt.column, lexErr.Column)
		})
	}
}

func TestLexerPrograms(t *testing.T) {
	testData := []string{
		"PROGRAM Test; VAR a, b : INTEGER; BEGIN a := 2; b := a DIV 3 END.",
		`program Main;
		procedure Alpha(a : integer; b : integer);
		var x : integer;
		begin
			x := (a + b ) * 2;
		end;
		begin { Main }
			Alpha(3 + 5, 7);  { procedure call }
		end.  { Main }`,
		"y := 20 / 7 + 3.14",
	}

	for idx, entry := range testData {
		t.Logf("%d. Lexing %q", idx, entry)
		l := NewLexer("", entry)
		for {
			tok, err := l.NextToken()
			require.NoError(t, err, "%d. lexing failed", idx)
			t.Logf("\ttoken = %s", tok)
			if tok.Kind == TokenEOF {
				break
			}
		}
	}
}
