package parser

import (
	"io"
	"log"
	"runtime"
)

// Parse parses a complete program.
func Parse(name, text string) (*Program, error) {
	return NewParser(name, text).Parse()
}

// ParseExpression parses text as a single expression, e.g. "2 + 3 * 5".
func ParseExpression(name, text string) (Node, error) {
	p := NewParser(name, text)
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// Parser builds an AST from the tokens produced by a Lexer, using
// recursive descent with a single token of lookahead.
type Parser struct {
	name   string
	lexer  *Lexer
	logger *log.Logger

	token  Token
	primed bool
}

func NewParser(name, text string) *Parser {
	return &Parser{
		name:   name,
		lexer:  NewLexer(name, text),
		logger: log.New(io.Discard, "parser: ", log.Lmsgprefix),
	}
}

func (p *Parser) SetLogOutput(w io.Writer) {
	p.logger.SetOutput(w)
}

// Parse consumes the whole input and returns the program. Tokens left over
// after the final dot are a syntax error.
func (p *Parser) Parse() (*Program, error) {
	prog, err := p.parse()
	if err != nil {
		return nil, err
	}
	return prog, nil
}

func (p *Parser) parse() (prog *Program, err error) {
	defer p.recover(&err)

	prog = p.parseProgram()
	p.eat(TokenEOF)

	return prog, nil
}

func (p *Parser) parseExpression() (expr Node, err error) {
	defer p.recover(&err)

	expr = p.parseExpr()
	p.eat(TokenEOF)

	return expr, nil
}

// recover has to be deferred directly, not called from a deferred closure.
func (p *Parser) recover(errp *error) {
	e := recover()
	if e != nil {
		// rethrow runtime errors
		if _, ok := e.(runtime.Error); ok {
			panic(e)
		}
		*errp = e.(error)
	}
}

func (p *Parser) lex() Token {
	tok, err := p.lexer.NextToken()
	if err != nil {
		panic(err)
	}
	return tok
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if !p.primed {
		p.token = p.lex()
		p.primed = true
	}
	return p.token
}

// next consumes the current token and scans the one after it.
func (p *Parser) next() Token {
	tok := p.peek()
	p.token = p.lex()
	return tok
}

func (p *Parser) eat(kind TokenKind) Token {
	if tok := p.peek(); tok.Kind != kind {
		p.unexpected(tok, &kind)
	}
	return p.next()
}

func (p *Parser) unexpected(tok Token, expected *TokenKind) {
	panic(&SyntaxError{
		Name:     p.name,
		Code:     ErrUnexpectedToken,
		Token:    tok,
		Expected: expected,
	})
}

// program := PROGRAM ID SEMI block DOT
func (p *Parser) parseProgram() *Program {
	p.eat(TokenProgram)
	name := p.parseVariable().Name
	p.eat(TokenSemi)
	p.logger.Printf("program %s", name)

	prog := &Program{
		Name:  name,
		Block: p.parseBlock(),
	}

	p.eat(TokenDot)

	return prog
}

// block := declarations compoundStatement
func (p *Parser) parseBlock() *Block {
	return &Block{
		Declarations: p.parseDeclarations(),
		Compound:     p.parseCompoundStatement(),
	}
}

// declarations := (VAR (varDecl SEMI)+)? procDecl*
func (p *Parser) parseDeclarations() (decls []Node) {
	if p.peek().Kind == TokenVar {
		p.next()

		// at least one declaration is required after VAR.
		for first := true; first || p.peek().Kind == TokenID; first = false {
			for _, decl := range p.parseVariableDeclaration() {
				decls = append(decls, decl)
			}
			p.eat(TokenSemi)
		}
	}

	for p.peek().Kind == TokenProcedure {
		decls = append(decls, p.parseProcedureDeclaration())
	}

	return decls
}

// varDecl := ID (COMMA ID)* COLON typeSpec
func (p *Parser) parseVariableDeclaration() []*VarDecl {
	vars := p.parseIdentifierList()
	p.eat(TokenColon)
	typ := p.parseTypeSpec()

	decls := make([]*VarDecl, 0, len(vars))
	for _, v := range vars {
		decls = append(decls, &VarDecl{Var: v, Type: typ})
	}
	return decls
}

func (p *Parser) parseIdentifierList() []*Var {
	vars := []*Var{p.parseVariable()}
	for p.peek().Kind == TokenComma {
		p.next()
		vars = append(vars, p.parseVariable())
	}
	return vars
}

// procDecl := PROCEDURE ID (LPAREN paramList? RPAREN)? SEMI block SEMI
func (p *Parser) parseProcedureDeclaration() *ProcedureDecl {
	p.eat(TokenProcedure)
	tok := p.eat(TokenID)

	decl := &ProcedureDecl{
		Token: tok,
		Name:  tok.Text(),
	}
	p.logger.Printf("procedure %s at %d:%d", decl.Name, tok.Line, tok.Column)

	if p.peek().Kind == TokenLParen {
		p.next()
		decl.Params = p.parseFormalParameterList()
		p.eat(TokenRParen)
	}

	p.eat(TokenSemi)
	decl.Block = p.parseBlock()
	p.eat(TokenSemi)

	return decl
}

// paramList := params (SEMI params)*
//
// An empty list, as in `PROCEDURE Foo();`, is accepted as well.
func (p *Parser) parseFormalParameterList() []*Param {
	if p.peek().Kind != TokenID {
		return nil
	}

	params := p.parseFormalParameters()
	for p.peek().Kind == TokenSemi {
		p.next()
		params = append(params, p.parseFormalParameters()...)
	}
	return params
}

// params := ID (COMMA ID)* COLON typeSpec
func (p *Parser) parseFormalParameters() []*Param {
	vars := p.parseIdentifierList()
	p.eat(TokenColon)
	typ := p.parseTypeSpec()

	params := make([]*Param, 0, len(vars))
	for _, v := range vars {
		params = append(params, &Param{Var: v, Type: typ})
	}
	return params
}

// typeSpec := INTEGER | REAL
func (p *Parser) parseTypeSpec() *Type {
	tok := p.peek()
	switch tok.Kind {
	case TokenInteger, TokenReal:
		p.next()
	default:
		p.unexpected(tok, nil)
	}
	return &Type{Token: tok, Name: tok.Text()}
}

// compoundStmt := BEGIN stmtList END
func (p *Parser) parseCompoundStatement() *Compound {
	p.eat(TokenBegin)
	stmts := p.parseStatementList()
	p.eat(TokenEnd)
	return &Compound{Statements: stmts}
}

// stmtList := stmt (SEMI stmt)*
func (p *Parser) parseStatementList() []Node {
	stmts := []Node{p.parseStatement()}
	for p.peek().Kind == TokenSemi {
		p.next()
		stmts = append(stmts, p.parseStatement())
	}

	if tok := p.peek(); tok.Kind == TokenID {
		p.unexpected(tok, nil)
	}

	return stmts
}

// stmt := compoundStmt | procCallStmt | assignStmt | empty
func (p *Parser) parseStatement() Node {
	tok := p.peek()
	switch {
	case tok.Kind == TokenBegin:
		return p.parseCompoundStatement()
	case tok.Kind == TokenID && p.lexer.rawPeek() == '(':
		return p.parseProcedureCall()
	case tok.Kind == TokenID:
		return p.parseAssignment()
	}
	return &NoOp{}
}

// assignStmt := ID ASSIGN expr
func (p *Parser) parseAssignment() *Assign {
	target := p.parseVariable()
	tok := p.eat(TokenAssign)
	return &Assign{
		Target: target,
		Token:  tok,
		Value:  p.parseExpr(),
	}
}

// procCallStmt := ID LPAREN (expr (COMMA expr)*)? RPAREN
func (p *Parser) parseProcedureCall() *ProcedureCall {
	tok := p.eat(TokenID)
	p.eat(TokenLParen)

	call := &ProcedureCall{
		Token: tok,
		Name:  tok.Text(),
	}

	if p.peek().Kind != TokenRParen {
		call.Args = append(call.Args, p.parseExpr())
		for p.peek().Kind == TokenComma {
			p.next()
			call.Args = append(call.Args, p.parseExpr())
		}
	}

	p.eat(TokenRParen)

	return call
}

func (p *Parser) parseVariable() *Var {
	tok := p.eat(TokenID)
	return &Var{Token: tok, Name: tok.Text()}
}

// expr := term ((PLUS|MINUS) term)*
func (p *Parser) parseExpr() Node {
	node := p.parseTerm()
	for k := p.peek().Kind; k == TokenPlus || k == TokenMinus; k = p.peek().Kind {
		op := p.next()
		node = &BinOp{Left: node, Op: op, Right: p.parseTerm()}
	}
	return node
}

// term := factor ((MUL|INTEGER_DIV|FLOAT_DIV) factor)*
func (p *Parser) parseTerm() Node {
	node := p.parseFactor()
	for isMultiplicationOperator(p.peek().Kind) {
		op := p.next()
		node = &BinOp{Left: node, Op: op, Right: p.parseFactor()}
	}
	return node
}

func isMultiplicationOperator(kind TokenKind) bool {
	return kind == TokenMul || kind == TokenIntegerDiv || kind == TokenFloatDiv
}

// factor := (PLUS|MINUS) factor | INTEGER_CONST | REAL_CONST | LPAREN expr RPAREN | ID
func (p *Parser) parseFactor() Node {
	tok := p.peek()
	switch tok.Kind {
	case TokenPlus, TokenMinus:
		p.next()
		return &UnaryOp{Op: tok, Operand: p.parseFactor()}
	case TokenIntegerConst, TokenRealConst:
		p.next()
		return &Num{Token: tok, Value: tok.Value}
	case TokenLParen:
		p.next()
		node := p.parseExpr()
		p.eat(TokenRParen)
		return node
	}
	return p.parseVariable()
}
