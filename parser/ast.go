package parser

import (
	"fmt"
	"strings"
)

type NodeKind int

const (
	NodeProgram NodeKind = iota
	NodeBlock
	NodeVarDecl
	NodeType
	NodeParam
	NodeProcedureDecl
	NodeProcedureCall
	NodeCompound
	NodeAssign
	NodeBinOp
	NodeUnaryOp
	NodeNum
	NodeVar
	NodeNoOp
)

var nodeKindNames = [...]string{
	NodeProgram:       "Program",
	NodeBlock:         "Block",
	NodeVarDecl:       "VarDecl",
	NodeType:          "Type",
	NodeParam:         "Param",
	NodeProcedureDecl: "ProcedureDecl",
	NodeProcedureCall: "ProcedureCall",
	NodeCompound:      "Compound",
	NodeAssign:        "Assign",
	NodeBinOp:         "BinOp",
	NodeUnaryOp:       "UnaryOp",
	NodeNum:           "Num",
	NodeVar:           "Var",
	NodeNoOp:          "NoOp",
}

func (k NodeKind) String() string {
	if int(k) >= 0 && int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("INVALID(%d)", int(k))
}

// Node is implemented by all AST nodes. The set of nodes is closed: only
// the types in this file implement it.
type Node interface {
	Kind() NodeKind
	node()
}

// Program is the root of the tree.
type Program struct {
	Name  string
	Block *Block
}

// Block consists of the declarations and the compound statement of the
// program or of a procedure.
type Block struct {
	// Declarations holds *VarDecl and *ProcedureDecl nodes in source order.
	Declarations []Node

	Compound *Compound
}

// VarDecl declares a single variable. A declaration like `a, b : INTEGER`
// results in one VarDecl per name, all sharing the same Type node.
type VarDecl struct {
	Var  *Var
	Type *Type
}

type Type struct {
	Token Token
	Name  string
}

// Param is a formal parameter of a procedure.
type Param struct {
	Var  *Var
	Type *Type
}

type ProcedureDecl struct {
	Token  Token
	Name   string
	Params []*Param
	Block  *Block
}

type ProcedureCall struct {
	Token Token
	Name  string
	Args  []Node

	// Symbol is filled in by semantic analysis.
	Symbol *ProcedureSymbol
}

type Compound struct {
	Statements []Node
}

type Assign struct {
	Target *Var
	Token  Token
	Value  Node
}

// BinOp is a binary arithmetic operation. Op is one of TokenPlus,
// TokenMinus, TokenMul, TokenIntegerDiv or TokenFloatDiv.
type BinOp struct {
	Left  Node
	Op    Token
	Right Node
}

// UnaryOp is a unary plus or minus.
type UnaryOp struct {
	Op      Token
	Operand Node
}

// Num is an integer or real literal; Value is an int64 or a float64.
type Num struct {
	Token Token
	Value interface{}
}

// Var is a use of a variable, or the variable part of a declaration.
type Var struct {
	Token Token
	Name  string
}

// NoOp is the empty statement.
type NoOp struct{}

func (*Program) Kind() NodeKind       { return NodeProgram }
func (*Block) Kind() NodeKind         { return NodeBlock }
func (*VarDecl) Kind() NodeKind       { return NodeVarDecl }
func (*Type) Kind() NodeKind          { return NodeType }
func (*Param) Kind() NodeKind         { return NodeParam }
func (*ProcedureDecl) Kind() NodeKind { return NodeProcedureDecl }
func (*ProcedureCall) Kind() NodeKind { return NodeProcedureCall }
func (*Compound) Kind() NodeKind      { return NodeCompound }
func (*Assign) Kind() NodeKind        { return NodeAssign }
func (*BinOp) Kind() NodeKind         { return NodeBinOp }
func (*UnaryOp) Kind() NodeKind       { return NodeUnaryOp }
func (*Num) Kind() NodeKind           { return NodeNum }
func (*Var) Kind() NodeKind           { return NodeVar }
func (*NoOp) Kind() NodeKind          { return NodeNoOp }

func (*Program) node()       {}
func (*Block) node()         {}
func (*VarDecl) node()       {}
func (*Type) node()          {}
func (*Param) node()         {}
func (*ProcedureDecl) node() {}
func (*ProcedureCall) node() {}
func (*Compound) node()      {}
func (*Assign) node()        {}
func (*BinOp) node()         {}
func (*UnaryOp) node()       {}
func (*Num) node()           {}
func (*Var) node()           {}
func (*NoOp) node()          {}

func (e *BinOp) String() string {
	return fmt.Sprintf("binop<%s %s %s>", e.Left, e.Op.Text(), e.Right)
}

func (e *UnaryOp) String() string {
	return fmt.Sprintf("unary<%s %s>", e.Op.Text(), e.Operand)
}

func (e *Num) String() string {
	return e.Token.Text()
}

func (e *Var) String() string {
	return e.Name
}

func (s *ProcedureCall) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "call<%s(", s.Name)
	for idx, arg := range s.Args {
		if idx > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprint(&buf, arg)
	}
	buf.WriteString(")>")
	return buf.String()
}

// VarDecls returns the variable declarations of the block.
func (b *Block) VarDecls() []*VarDecl {
	var decls []*VarDecl
	for _, decl := range b.Declarations {
		if vd, ok := decl.(*VarDecl); ok {
			decls = append(decls, vd)
		}
	}
	return decls
}

// ProcedureDecls returns the procedure declarations of the block.
func (b *Block) ProcedureDecls() []*ProcedureDecl {
	var decls []*ProcedureDecl
	for _, decl := range b.Declarations {
		if pd, ok := decl.(*ProcedureDecl); ok {
			decls = append(decls, pd)
		}
	}
	return decls
}
