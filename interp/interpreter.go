// Package interp executes programs that have passed semantic analysis by
// walking their AST, keeping variables in activation records on an
// explicit call stack.
package interp

import (
	"fmt"
	"io"
	"log"
	"math"

	"github.com/akrennmair/spi/parser"
)

const DefaultMaxCallDepth = 1000

type Option func(*Interpreter)

// WithLogger sets the logger that entered and left records and the call
// stack are traced to.
func WithLogger(logger *log.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

// WithMaxCallDepth limits how many records may be on the call stack at once.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		i.maxCallDepth = depth
	}
}

// WithSourceName sets the file name that errors are reported with.
func WithSourceName(name string) Option {
	return func(i *Interpreter) {
		i.name = name
	}
}

type Interpreter struct {
	name         string
	logger       *log.Logger
	maxCallDepth int

	callStack *CallStack
	globals   *ActivationRecord
}

func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		logger:       log.New(io.Discard, "", 0),
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Interpreter) SetLogOutput(w io.Writer) {
	i.logger.SetOutput(w)
}

// Interpret runs prog on a fresh call stack. The program's record stays
// available through Globals and Variable afterwards, also if an error
// stopped the execution half-way.
func (i *Interpreter) Interpret(prog *parser.Program) error {
	i.callStack = &CallStack{}
	i.globals = nil
	if prog == nil {
		return nil
	}
	_, err := i.visit(prog)
	return err
}

// Globals returns the record of the last interpreted program.
func (i *Interpreter) Globals() *ActivationRecord {
	return i.globals
}

// Variable returns the value of a program-level variable after Interpret.
func (i *Interpreter) Variable(name string) (Number, bool) {
	if i.globals == nil {
		return Number{}, false
	}
	return i.globals.Get(name)
}

func (i *Interpreter) errorf(code parser.ErrorCode, tok parser.Token, format string, args ...interface{}) error {
	return &RuntimeError{
		Name:  i.name,
		Code:  code,
		Token: tok,
		Msg:   fmt.Sprintf(format, args...),
	}
}

func (i *Interpreter) visit(node parser.Node) (Number, error) {
	switch n := node.(type) {
	case *parser.Program:
		return Number{}, i.visitProgram(n)
	case *parser.Block:
		for _, decl := range n.Declarations {
			if _, err := i.visit(decl); err != nil {
				return Number{}, err
			}
		}
		return i.visit(n.Compound)
	case *parser.Compound:
		for _, stmt := range n.Statements {
			if _, err := i.visit(stmt); err != nil {
				return Number{}, err
			}
		}
	case *parser.Assign:
		v, err := i.visit(n.Value)
		if err != nil {
			return Number{}, err
		}
		i.assign(n.Target.Name, v)
	case *parser.Var:
		return i.lookup(n)
	case *parser.BinOp:
		return i.visitBinOp(n)
	case *parser.UnaryOp:
		v, err := i.visit(n.Operand)
		if err != nil {
			return Number{}, err
		}
		if n.Op.Kind == parser.TokenMinus {
			if v.IsReal() {
				return Real(-v.Float64()), nil
			}
			if v.Int64() == math.MinInt64 {
				return Number{}, i.errorf(ErrIntegerOverflow, n.Op, "-(%s)", v)
			}
			return Int(-v.Int64()), nil
		}
		return v, nil
	case *parser.Num:
		v, ok := numberFromLiteral(n.Value)
		if !ok {
			return Number{}, i.errorf(ErrIncompatibleOperand, n.Token, "literal %v is not a number", n.Value)
		}
		return v, nil
	case *parser.ProcedureCall:
		return Number{}, i.visitProcedureCall(n)
	case *parser.VarDecl, *parser.Type, *parser.Param, *parser.ProcedureDecl, *parser.NoOp:
		// declarations have no effect at runtime.
	default:
		panic(fmt.Sprintf("interp: unhandled node %T", node))
	}
	return Number{}, nil
}

func (i *Interpreter) visitProgram(prog *parser.Program) error {
	ar := NewActivationRecord(prog.Name, ARProgram, 1)
	for _, decl := range prog.Block.VarDecls() {
		ar.Declare(decl.Var.Name)
	}
	i.globals = ar

	i.logger.Printf("ENTER: PROGRAM %s", prog.Name)
	i.callStack.Push(ar)
	i.logger.Print(i.callStack)

	_, err := i.visit(prog.Block)

	i.logger.Printf("LEAVE: PROGRAM %s", prog.Name)
	i.logger.Print(i.callStack)
	i.callStack.Pop()

	return err
}

func (i *Interpreter) visitProcedureCall(call *parser.ProcedureCall) error {
	sym := call.Symbol
	if sym == nil {
		return i.errorf(ErrUnresolvedCall, call.Token, "%s was not resolved by semantic analysis", call.Name)
	}
	if len(call.Args) != len(sym.Params) {
		return i.errorf(ErrUnresolvedCall, call.Token, "%s expects %d arguments, got %d", call.Name, len(sym.Params), len(call.Args))
	}

	args := make([]Number, 0, len(call.Args))
	for _, arg := range call.Args {
		v, err := i.visit(arg)
		if err != nil {
			return err
		}
		args = append(args, v)
	}

	if i.callStack.Len() >= i.maxCallDepth {
		return i.errorf(ErrCallDepthExceeded, call.Token, "more than %d active records", i.maxCallDepth)
	}

	ar := NewActivationRecord(sym.Name, ARProcedure, sym.ScopeLevel)
	ar.AccessLink = i.enclosingRecord(sym.ScopeLevel - 1)
	for idx, param := range sym.Params {
		ar.Declare(param.Name)
		ar.Set(param.Name, args[idx])
	}
	for _, decl := range sym.Block.VarDecls() {
		ar.Declare(decl.Var.Name)
	}

	i.logger.Printf("ENTER: PROCEDURE %s", sym.Name)
	i.callStack.Push(ar)
	i.logger.Print(i.callStack)

	_, err := i.visit(sym.Block)

	i.logger.Printf("LEAVE: PROCEDURE %s", sym.Name)
	i.logger.Print(i.callStack)
	i.callStack.Pop()

	return err
}

// enclosingRecord follows the access links from the top of the stack to
// the record at the given nesting level.
func (i *Interpreter) enclosingRecord(level int) *ActivationRecord {
	for ar := i.callStack.Peek(); ar != nil; ar = ar.AccessLink {
		if ar.NestingLevel == level {
			return ar
		}
	}
	return i.globals
}

func (i *Interpreter) assign(name string, v Number) {
	top := i.callStack.Peek()
	if ar := top.resolve(name); ar != nil {
		ar.Set(name, v)
		return
	}
	top.Set(name, v)
}

func (i *Interpreter) lookup(v *parser.Var) (Number, error) {
	if ar := i.callStack.Peek().resolve(v.Name); ar != nil {
		if value, ok := ar.Get(v.Name); ok {
			return value, nil
		}
	}
	return Number{}, i.errorf(ErrUnsetVariable, v.Token, "%s has no value", v.Name)
}

func (i *Interpreter) visitBinOp(op *parser.BinOp) (Number, error) {
	left, err := i.visit(op.Left)
	if err != nil {
		return Number{}, err
	}
	right, err := i.visit(op.Right)
	if err != nil {
		return Number{}, err
	}

	var result Number
	ok := true

	switch op.Op.Kind {
	case parser.TokenPlus:
		result, ok = arith(left, right, addInt, func(a, b float64) float64 { return a + b })
	case parser.TokenMinus:
		result, ok = arith(left, right, subInt, func(a, b float64) float64 { return a - b })
	case parser.TokenMul:
		result, ok = arith(left, right, mulInt, func(a, b float64) float64 { return a * b })
	case parser.TokenIntegerDiv:
		if right.Float64() == 0 {
			return Number{}, i.errorf(ErrDivisionByZero, op.Op, "%s DIV %s", left, right)
		}
		if !left.IsReal() && !right.IsReal() {
			if left.Int64() == math.MinInt64 && right.Int64() == -1 {
				return Number{}, i.errorf(ErrIntegerOverflow, op.Op, "%s DIV %s", left, right)
			}
			return Int(floorDiv(left.Int64(), right.Int64())), nil
		}
		q := math.Floor(left.Float64() / right.Float64())
		if math.IsInf(q, 0) || math.IsNaN(q) {
			return Number{}, i.errorf(ErrNonFinite, op.Op, "%s DIV %s", left, right)
		}
		// float64(math.MaxInt64) rounds up to 2^63, which int64 can't hold.
		if q < math.MinInt64 || q >= math.MaxInt64 {
			return Number{}, i.errorf(ErrIntegerOverflow, op.Op, "%s DIV %s", left, right)
		}
		return Int(int64(q)), nil
	case parser.TokenFloatDiv:
		result = Real(left.Float64() / right.Float64())
	default:
		return Number{}, i.errorf(ErrIncompatibleOperand, op.Op, "unknown operator %s", op.Op.Kind)
	}

	if !ok {
		return Number{}, i.errorf(ErrIntegerOverflow, op.Op, "%s %s %s", left, op.Op.Text(), right)
	}
	if !result.isFinite() {
		return Number{}, i.errorf(ErrNonFinite, op.Op, "%s %s %s", left, op.Op.Text(), right)
	}

	return result, nil
}

// arith applies intOp if both operands are integers, floatOp otherwise. It
// reports false if intOp overflowed.
func arith(a, b Number, intOp func(a, b int64) (int64, bool), floatOp func(a, b float64) float64) (Number, bool) {
	if !a.IsReal() && !b.IsReal() {
		r, ok := intOp(a.Int64(), b.Int64())
		return Int(r), ok
	}
	return Real(floatOp(a.Float64(), b.Float64())), true
}

func addInt(a, b int64) (int64, bool) {
	r := a + b
	return r, (r > a) == (b > 0)
}

func subInt(a, b int64) (int64, bool) {
	r := a - b
	return r, (r < a) == (b > 0)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return r, false
	}
	return r, r/b == a
}

// floorDiv rounds the quotient toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
