// Package semantic checks the identifier usage of a parsed program: every
// variable and procedure has to be declared in the current or an enclosing
// scope, no name may be declared twice in the same scope, and procedure
// calls have to pass as many arguments as the procedure declares.
package semantic

import (
	"fmt"
	"io"
	"log"

	"github.com/akrennmair/spi/parser"
)

type Option func(*Analyzer)

// WithLogger sets the logger that scope changes, symbol insertions and
// lookups are traced to.
func WithLogger(logger *log.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithSourceName sets the file name that errors are reported with.
func WithSourceName(name string) Option {
	return func(a *Analyzer) {
		a.name = name
	}
}

// Analyzer walks the AST once, building a chain of scopes as it goes.
type Analyzer struct {
	name   string
	logger *log.Logger

	currentScope *ScopedSymbolTable
}

func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) SetLogOutput(w io.Writer) {
	a.logger.SetOutput(w)
}

// Analyze checks prog and annotates its procedure calls with the symbols
// they resolve to. It stops at the first error.
func (a *Analyzer) Analyze(prog *parser.Program) error {
	a.currentScope = nil
	if prog == nil {
		return nil
	}
	return a.visit(prog)
}

func (a *Analyzer) errorf(code parser.ErrorCode, tok parser.Token) error {
	return &SemanticError{Name: a.name, Code: code, Token: tok}
}

func (a *Analyzer) enterScope(name string) *ScopedSymbolTable {
	level := 1
	if a.currentScope != nil {
		level = a.currentScope.Level + 1
	}

	a.logger.Printf("ENTER scope: %s", name)
	scope := NewScopedSymbolTable(name, level, a.currentScope)
	scope.logger = a.logger
	a.currentScope = scope
	return scope
}

func (a *Analyzer) leaveScope() {
	a.logger.Print(a.currentScope)
	a.logger.Printf("LEAVE scope: %s", a.currentScope.Name)
	a.currentScope = a.currentScope.Enclosing
}

func (a *Analyzer) visit(node parser.Node) error {
	switch n := node.(type) {
	case *parser.Program:
		scope := a.enterScope("global")
		scope.initBuiltins()
		if err := a.visit(n.Block); err != nil {
			return err
		}
		a.leaveScope()
	case *parser.Block:
		for _, decl := range n.Declarations {
			if err := a.visit(decl); err != nil {
				return err
			}
		}
		return a.visit(n.Compound)
	case *parser.VarDecl:
		return a.declareVariable(n.Var, n.Type)
	case *parser.ProcedureDecl:
		return a.visitProcedureDecl(n)
	case *parser.ProcedureCall:
		return a.visitProcedureCall(n)
	case *parser.Compound:
		for _, stmt := range n.Statements {
			if err := a.visit(stmt); err != nil {
				return err
			}
		}
	case *parser.Assign:
		if err := a.visit(n.Target); err != nil {
			return err
		}
		return a.visit(n.Value)
	case *parser.BinOp:
		if err := a.visit(n.Left); err != nil {
			return err
		}
		return a.visit(n.Right)
	case *parser.UnaryOp:
		return a.visit(n.Operand)
	case *parser.Var:
		if _, ok := a.currentScope.Lookup(n.Name).(*parser.VarSymbol); !ok {
			return a.errorf(parser.ErrIDNotFound, n.Token)
		}
	case *parser.Num, *parser.NoOp, *parser.Type, *parser.Param:
		// nothing to check.
	default:
		panic(fmt.Sprintf("semantic: unhandled node %T", node))
	}
	return nil
}

// declareVariable defines a variable or formal parameter in the current scope.
func (a *Analyzer) declareVariable(v *parser.Var, typ *parser.Type) error {
	typeSymbol := a.currentScope.Lookup(typ.Name)
	if typeSymbol == nil {
		return a.errorf(parser.ErrIDNotFound, typ.Token)
	}

	if a.currentScope.LookupCurrent(v.Name) != nil {
		return a.errorf(parser.ErrDuplicateID, v.Token)
	}

	a.currentScope.Define(&parser.VarSymbol{Name: v.Name, Type: typeSymbol})
	return nil
}

func (a *Analyzer) visitProcedureDecl(decl *parser.ProcedureDecl) error {
	if a.currentScope.LookupCurrent(decl.Name) != nil {
		return a.errorf(parser.ErrDuplicateID, decl.Token)
	}

	sym := &parser.ProcedureSymbol{
		Name:       decl.Name,
		Block:      decl.Block,
		ScopeLevel: a.currentScope.Level + 1,
	}
	// defined before the body is visited so that it can call itself.
	a.currentScope.Define(sym)

	scope := a.enterScope(decl.Name)
	for _, param := range decl.Params {
		if err := a.declareVariable(param.Var, param.Type); err != nil {
			return err
		}
		sym.Params = append(sym.Params, scope.LookupCurrent(param.Var.Name).(*parser.VarSymbol))
	}

	if err := a.visit(decl.Block); err != nil {
		return err
	}
	a.leaveScope()

	return nil
}

func (a *Analyzer) visitProcedureCall(call *parser.ProcedureCall) error {
	sym, ok := a.currentScope.Lookup(call.Name).(*parser.ProcedureSymbol)
	if !ok {
		return a.errorf(parser.ErrIDNotFound, call.Token)
	}
	call.Symbol = sym

	if len(call.Args) != len(sym.Params) {
		return a.errorf(parser.ErrWrongParamsNum, call.Token)
	}

	for _, arg := range call.Args {
		if err := a.visit(arg); err != nil {
			return err
		}
	}
	return nil
}
