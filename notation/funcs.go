package notation

import (
	"fmt"
	"strings"

	"github.com/akrennmair/spi/parser"
)

const indentStep = "   "

type scope struct {
	Block  *parser.Block
	Indent string
}

func newScope(b *parser.Block, indent string) scope {
	return scope{Block: b, Indent: indent}
}

func formalParams(params []*parser.Param) string {
	if len(params) == 0 {
		return ""
	}

	groups := make([]string, 0, len(params))
	for idx := 0; idx < len(params); {
		// parameters declared together share their type node.
		names := []string{params[idx].Var.Name}
		typ := params[idx].Type
		for idx++; idx < len(params) && params[idx].Type == typ; idx++ {
			names = append(names, params[idx].Var.Name)
		}
		groups = append(groups, fmt.Sprintf("%s : %s", strings.Join(names, ", "), typ.Name))
	}

	return "(" + strings.Join(groups, "; ") + ")"
}

// statement renders stmt. All lines but the first are prefixed with indent.
func statement(stmt parser.Node, indent string) (string, error) {
	switch s := stmt.(type) {
	case *parser.Compound:
		var buf strings.Builder
		buf.WriteString("BEGIN\n")
		for idx, child := range s.Statements {
			text, err := statement(child, indent+indentStep)
			if err != nil {
				return "", err
			}
			if text != "" {
				buf.WriteString(indent + indentStep + text)
			}
			if idx < len(s.Statements)-1 {
				buf.WriteString(";")
			}
			buf.WriteString("\n")
		}
		buf.WriteString(indent + "END")
		return buf.String(), nil
	case *parser.Assign:
		value, err := infix(s.Value, 0, false)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s := %s", s.Target.Name, value), nil
	case *parser.ProcedureCall:
		args := make([]string, 0, len(s.Args))
		for _, arg := range s.Args {
			text, err := infix(arg, 0, false)
			if err != nil {
				return "", err
			}
			args = append(args, text)
		}
		return fmt.Sprintf("%s(%s)", s.Name, strings.Join(args, ", ")), nil
	case *parser.NoOp:
		return "", nil
	}
	return "", fmt.Errorf("%s is not a statement", stmt.Kind())
}

const (
	precAdd   = 1
	precMul   = 2
	precUnary = 3
)

func precedence(op parser.TokenKind) int {
	if op == parser.TokenPlus || op == parser.TokenMinus {
		return precAdd
	}
	return precMul
}

// infix renders expr with as few parentheses as needed to parse back into
// the same tree.
func infix(expr parser.Node, parentPrec int, isRight bool) (string, error) {
	switch e := expr.(type) {
	case *parser.BinOp:
		prec := precedence(e.Op.Kind)
		left, err := infix(e.Left, prec, false)
		if err != nil {
			return "", err
		}
		right, err := infix(e.Right, prec, true)
		if err != nil {
			return "", err
		}
		text := fmt.Sprintf("%s %s %s", left, e.Op.Text(), right)
		if prec < parentPrec || (isRight && prec == parentPrec) {
			text = "(" + text + ")"
		}
		return text, nil
	case *parser.UnaryOp:
		operand, err := infix(e.Operand, precUnary, false)
		if err != nil {
			return "", err
		}
		return e.Op.Text() + operand, nil
	case *parser.Num:
		return numText(e), nil
	case *parser.Var:
		return e.Name, nil
	}
	return "", fmt.Errorf("%s is not an expression", expr.Kind())
}

// numText keeps real literals recognizable as such, e.g. 3.0 instead of 3.
func numText(n *parser.Num) string {
	text := n.Token.Text()
	if _, isReal := n.Value.(float64); isReal && !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}
