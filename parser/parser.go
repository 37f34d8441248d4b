// Package parser implements a predictive recursive-descent parser with
// panic-mode error recovery, producing the ast package's tree from a
// lexer's token stream.
package parser

import (
	"fmt"

	"github.com/collielang/collie-sub000/ast"
	"github.com/collielang/collie-sub000/lexer"
	"github.com/collielang/collie-sub000/token"
)

// ParseError is a parser-detected syntax error: unexpected token,
// missing punctuation, or malformed declaration.
type ParseError struct {
	Line, Column int
	Message      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Line %d, Column %d: %s", e.Line, e.Column, e.Message)
}

const maxParams = 255
const maxArguments = 255

// Parser owns its lookahead and advances by pulling from a lexer.
type Parser struct {
	lex     *lexer.Lexer
	current token.Token
	prev    token.Token

	hadError bool
	errors   []error
}

// New constructs a Parser and primes its first lookahead token.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}
	p.current = p.lex.NextToken()
	return p
}

// HadError reports whether any ParseError was raised during parsing.
func (p *Parser) HadError() bool { return p.hadError }

// Errors returns every ParseError collected across the parse.
func (p *Parser) Errors() []error { return p.errors }

// ParseProgram parses a whole source file into an ordered list of
// top-level statements, recovering from each ParseError at the next
// declaration/statement boundary.
func (p *Parser) ParseProgram() []ast.Statement {
	var stmts []ast.Statement
	for !p.check(token.EOF) {
		stmt, err := p.declarationRecover()
		if err == nil && stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// Parse parses a single statement or declaration, for REPL-style use.
func (p *Parser) Parse() (ast.Statement, error) {
	return p.declarationRecover()
}

func (p *Parser) declarationRecover() (stmt ast.Statement, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			p.hadError = true
			p.errors = append(p.errors, pe)
			p.synchronize()
			err = pe
		}
	}()
	return p.declaration(), nil
}

func (p *Parser) declaration() ast.Statement {
	if p.check(token.CONST) || p.checkType() {
		if p.isFuncDeclAhead() {
			return p.funcDecl()
		}
		return p.varDecl()
	}
	if p.match(token.CLASS) {
		return p.classDecl()
	}
	return p.statement()
}

// isFuncDeclAhead distinguishes `TYPE IDENT (` (function) from
// `TYPE IDENT =`/`;` (variable) without consuming tokens, by peeking the
// lexer directly (mirrors peek_token's save/restore contract).
func (p *Parser) isFuncDeclAhead() bool {
	if p.check(token.CONST) {
		return false
	}
	// current is the type keyword; need IDENT then '(' two tokens ahead.
	save := *p.lex
	defer func() { *p.lex = save }()

	identTok := p.lex.NextToken() // token after the type keyword
	if identTok.Kind != token.IDENTIFIER {
		return false
	}
	afterIdent := p.lex.NextToken()
	return afterIdent.Kind == token.LPAREN
}

func (p *Parser) varDecl() ast.Statement {
	isConst := p.match(token.CONST)
	varType := p.parseType()
	name := p.consume(token.IDENTIFIER, "Expect variable name")
	var init ast.Expression
	if p.match(token.ASSIGN) {
		init = p.expression()
	}
	if isConst && init == nil {
		p.errorAt(name, "const declaration requires an initializer")
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration")
	return &ast.VarDecl{VarType: varType, Name: name, Initializer: init, IsConst: isConst}
}

func (p *Parser) funcDecl() ast.Statement {
	retType := p.parseType()
	name := p.consume(token.IDENTIFIER, "Expect function name")
	p.consume(token.LPAREN, "Expect '(' after function name")
	var params []ast.Param
	if !p.check(token.RPAREN) {
		for {
			if len(params) >= maxParams {
				p.errorAt(p.current, fmt.Sprintf("Cannot have more than %d parameters", maxParams))
			}
			pType := p.parseType()
			pName := p.consume(token.IDENTIFIER, "Expect parameter name")
			params = append(params, ast.Param{ParamType: pType, Name: pName})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expect ')' after parameters")
	body := p.block()
	return &ast.FuncDecl{ReturnType: retType, Name: name, Params: params, Body: body}
}

func (p *Parser) classDecl() ast.Statement {
	name := p.consume(token.IDENTIFIER, "Expect class name")
	p.consume(token.LBRACE, "Expect '{' before class body")
	var fields []ast.Field
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		fType := p.parseType()
		fName := p.consume(token.IDENTIFIER, "Expect field name")
		p.consume(token.SEMICOLON, "Expect ';' after field declaration")
		fields = append(fields, ast.Field{FieldType: fType, Name: fName})
	}
	p.consume(token.RBRACE, "Expect '}' after class body")
	return &ast.ClassDecl{Name: name, Fields: fields}
}

func (p *Parser) checkType() bool { return p.current.Kind.IsTypeKeyword() }

func (p *Parser) parseType() ast.Type {
	if p.check(token.LPAREN) {
		p.advance()
		var elems []ast.Type
		for {
			elems = append(elems, p.parseType())
			if !p.match(token.COMMA) {
				break
			}
		}
		p.consume(token.RPAREN, "Expect ')' after tuple type")
		return &ast.TupleType{Elements: elems}
	}
	nameTok := p.current
	if !p.checkType() && !p.check(token.IDENTIFIER) {
		p.errorAt(nameTok, "Expect type")
	}
	p.advance()
	var t ast.Type = &ast.BasicType{Name: nameTok}
	for p.match(token.LBRACKET) {
		p.consume(token.RBRACKET, "Expect ']' after array type")
		t = &ast.ArrayType{Element: t}
	}
	return t
}

func (p *Parser) statement() ast.Statement {
	switch {
	case p.check(token.LBRACE):
		return p.block()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.BREAK):
		p.consume(token.SEMICOLON, "Expect ';' after 'break'")
		return &ast.Break{Keyword: p.prev}
	case p.match(token.CONTINUE):
		p.consume(token.SEMICOLON, "Expect ';' after 'continue'")
		return &ast.Continue{Keyword: p.prev}
	default:
		return p.exprStmt()
	}
}

func (p *Parser) block() *ast.Block {
	lbrace := p.consume(token.LBRACE, "Expect '{'")
	var stmts []ast.Statement
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		stmt, err := p.declarationRecover()
		if err == nil && stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RBRACE, "Expect '}' after block")
	return &ast.Block{LBrace: lbrace, Statements: stmts}
}

func (p *Parser) ifStmt() ast.Statement {
	kw := p.prev
	p.consume(token.LPAREN, "Expect '(' after 'if'")
	cond := p.expression()
	p.consume(token.RPAREN, "Expect ')' after condition")
	then := p.statement()
	var els ast.Statement
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return &ast.If{Keyword: kw, Condition: cond, Then: then, Else: els}
}

func (p *Parser) whileStmt() ast.Statement {
	kw := p.prev
	p.consume(token.LPAREN, "Expect '(' after 'while'")
	cond := p.expression()
	p.consume(token.RPAREN, "Expect ')' after condition")
	body := p.statement()
	return &ast.While{Keyword: kw, Condition: cond, Body: body}
}

func (p *Parser) forStmt() ast.Statement {
	kw := p.prev
	p.consume(token.LPAREN, "Expect '(' after 'for'")
	var init ast.Statement
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.checkType():
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}
	var cond ast.Expression
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition")
	var incr ast.Expression
	if !p.check(token.RPAREN) {
		incr = p.expression()
	}
	p.consume(token.RPAREN, "Expect ')' after for clauses")
	body := p.statement()
	return &ast.For{Keyword: kw, Initializer: init, Condition: cond, Increment: incr, Body: body}
}

func (p *Parser) returnStmt() ast.Statement {
	kw := p.prev
	var value ast.Expression
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value")
	return &ast.Return{Keyword: kw, Value: value}
}

func (p *Parser) exprStmt() ast.Statement {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression")
	return &ast.ExpressionStmt{Expr: expr}
}

// --- expressions, precedence climbing, lowest to highest ---

func (p *Parser) expression() ast.Expression { return p.assignment() }

func (p *Parser) assignment() ast.Expression {
	expr := p.logicalOr()
	if p.match(token.ASSIGN) {
		eq := p.prev
		value := p.assignment() // right-associative
		if ident, ok := expr.(*ast.Identifier); ok {
			return &ast.Assignment{Name: ident.Name, Value: value}
		}
		p.errorAt(eq, "Invalid assignment target")
	}
	return expr
}

func (p *Parser) logicalOr() ast.Expression {
	expr := p.logicalAnd()
	for p.match(token.OR_OR) {
		op := p.prev
		right := p.logicalAnd()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) logicalAnd() ast.Expression {
	expr := p.equality()
	for p.match(token.AND_AND) {
		op := p.prev
		right := p.equality()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expression {
	expr := p.comparison()
	for p.match(token.EQ, token.NEQ) {
		op := p.prev
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expression {
	expr := p.term()
	for p.match(token.LT, token.LE, token.GT, token.GE) {
		op := p.prev
		right := p.term()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expression {
	expr := p.factor()
	for p.match(token.PLUS, token.MINUS) {
		op := p.prev
		right := p.factor()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expression {
	expr := p.unary()
	for p.match(token.STAR, token.SLASH, token.PERCENT) {
		op := p.prev
		right := p.unary()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expression {
	if p.match(token.BANG, token.MINUS, token.TILDE) {
		op := p.prev
		operand := p.unary() // right-associative
		return &ast.Unary{Operator: op, Operand: operand}
	}
	return p.call()
}

func (p *Parser) call() ast.Expression {
	expr := p.primary()
	for p.match(token.LPAREN) {
		paren := p.prev
		var args []ast.Expression
		if !p.check(token.RPAREN) {
			for {
				if len(args) >= maxArguments {
					p.errorAt(p.current, fmt.Sprintf("Cannot have more than %d arguments", maxArguments))
				}
				args = append(args, p.expression())
				if !p.match(token.COMMA) {
					break
				}
			}
		}
		p.consume(token.RPAREN, "Expect ')' after arguments")
		expr = &ast.Call{Callee: expr, Paren: paren, Arguments: args}
	}
	return expr
}

func (p *Parser) primary() ast.Expression {
	switch {
	case p.match(token.NUMBER_LITERAL, token.STRING_LITERAL, token.CHAR_LITERAL,
		token.CHARACTER_LITERAL, token.BOOL_LITERAL):
		return &ast.Literal{Value: p.prev}
	case p.match(token.IDENTIFIER):
		return &ast.Identifier{Name: p.prev}
	case p.match(token.LPAREN):
		lparen := p.prev
		first := p.expression()
		if p.match(token.COMMA) {
			elems := []ast.Expression{first}
			for {
				elems = append(elems, p.expression())
				if !p.match(token.COMMA) {
					break
				}
			}
			p.consume(token.RPAREN, "Expect ')' after tuple")
			return &ast.Tuple{LParen: lparen, Elements: elems}
		}
		p.consume(token.RPAREN, "Expect ')' after expression")
		return first
	default:
		p.errorAt(p.current, fmt.Sprintf("Expect expression, found %s", p.current.Kind))
		panic("unreachable")
	}
}

// --- token plumbing ---

func (p *Parser) advance() token.Token {
	p.prev = p.current
	if p.current.Kind != token.EOF {
		next := p.lex.NextToken()
		if next.Kind == token.INVALID {
			p.errorAt(next, next.Lexeme)
		}
		p.current = next
	}
	return p.prev
}

func (p *Parser) check(k token.Kind) bool { return p.current.Kind == k }

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(k token.Kind, msg string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.errorAt(p.current, msg)
	panic("unreachable")
}

func (p *Parser) errorAt(t token.Token, msg string) {
	panic(&ParseError{Line: t.Line, Column: t.Column, Message: msg})
}

// synchronize discards tokens until a just-consumed ';' or a keyword
// that can start a new declaration or statement.
func (p *Parser) synchronize() {
	for !p.check(token.EOF) {
		if p.prev.Kind == token.SEMICOLON {
			return
		}
		switch p.current.Kind {
		case token.CLASS, token.IF, token.WHILE, token.FOR, token.RETURN,
			token.FUNCTION:
			return
		}
		if p.checkType() {
			return
		}
		p.advance()
	}
}
