// Package notation renders parsed programs and expressions in other
// notations: postfix (reverse Polish), parenthesized prefix, and back into
// canonical source text.
package notation

import (
	"bytes"
	"fmt"

	"github.com/akrennmair/spi/parser"
)

// Postfix renders expr in reverse Polish notation, e.g. "2 3 5 * +" for
// "2 + 3 * 5". Unary operators are written as "neg" and "pos".
func Postfix(expr parser.Node) (string, error) {
	switch e := expr.(type) {
	case *parser.BinOp:
		left, err := Postfix(e.Left)
		if err != nil {
			return "", err
		}
		right, err := Postfix(e.Right)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s", left, right, e.Op.Text()), nil
	case *parser.UnaryOp:
		operand, err := Postfix(e.Operand)
		if err != nil {
			return "", err
		}
		op := "pos"
		if e.Op.Kind == parser.TokenMinus {
			op = "neg"
		}
		return operand + " " + op, nil
	case *parser.Num:
		return numText(e), nil
	case *parser.Var:
		return e.Name, nil
	}
	return "", fmt.Errorf("%s can't be rendered in postfix notation", expr.Kind())
}

// Prefix renders expr as a parenthesized prefix expression, e.g.
// "(+ 2 (* 3 5))" for "2 + 3 * 5".
func Prefix(expr parser.Node) (string, error) {
	switch e := expr.(type) {
	case *parser.BinOp:
		left, err := Prefix(e.Left)
		if err != nil {
			return "", err
		}
		right, err := Prefix(e.Right)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s %s %s)", e.Op.Text(), left, right), nil
	case *parser.UnaryOp:
		operand, err := Prefix(e.Operand)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s %s)", e.Op.Text(), operand), nil
	case *parser.Num:
		return numText(e), nil
	case *parser.Var:
		return e.Name, nil
	}
	return "", fmt.Errorf("%s can't be rendered in prefix notation", expr.Kind())
}

// Source renders prog as source text. Parsing the result yields the same tree.
func Source(prog *parser.Program) (string, error) {
	var buf bytes.Buffer

	if err := sourceTemplate.ExecuteTemplate(&buf, "main", prog); err != nil {
		return "", fmt.Errorf("failed to render program %s: %w", prog.Name, err)
	}

	return buf.String(), nil
}
