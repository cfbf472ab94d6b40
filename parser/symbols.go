package parser

import (
	"fmt"
	"strings"
)

// Symbol is a named entity recorded during semantic analysis.
type Symbol interface {
	SymbolName() string
	String() string
}

// BuiltinTypeSymbol is one of the predefined types INTEGER and REAL.
type BuiltinTypeSymbol struct {
	Name string
}

func (s *BuiltinTypeSymbol) SymbolName() string { return s.Name }

func (s *BuiltinTypeSymbol) String() string {
	return fmt.Sprintf("<BuiltinTypeSymbol(%s)>", s.Name)
}

// VarSymbol is a declared variable or formal parameter.
type VarSymbol struct {
	Name string
	Type Symbol
}

func (s *VarSymbol) SymbolName() string { return s.Name }

func (s *VarSymbol) String() string {
	return fmt.Sprintf("<VarSymbol(%s, %s)>", s.Name, s.Type)
}

// ProcedureSymbol is a declared procedure.
type ProcedureSymbol struct {
	Name   string
	Params []*VarSymbol

	// Block points to the body of the procedure as found in the AST.
	Block *Block

	// ScopeLevel is the nesting level of the scope opened by the procedure,
	// i.e. one more than the level it was declared at.
	ScopeLevel int
}

func (s *ProcedureSymbol) SymbolName() string { return s.Name }

func (s *ProcedureSymbol) String() string {
	params := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		params = append(params, p.String())
	}
	return fmt.Sprintf("<ProcedureSymbol(%s, parameters: [%s])>", s.Name, strings.Join(params, ", "))
}
