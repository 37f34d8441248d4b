package ast

import "github.com/collielang/collie-sub000/token"

// Literal is a number, string, char, character, or bool literal.
type Literal struct {
	Value token.Token
}

func (e *Literal) Accept(v ExprVisitor) { v.VisitLiteral(e) }
func (e *Literal) Token() token.Token   { return e.Value }

// Identifier is a bare name reference.
type Identifier struct {
	Name token.Token
}

func (e *Identifier) Accept(v ExprVisitor) { v.VisitIdentifier(e) }
func (e *Identifier) Token() token.Token   { return e.Name }

// Binary is a two-operand operator expression.
type Binary struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (e *Binary) Accept(v ExprVisitor) { v.VisitBinary(e) }
func (e *Binary) Token() token.Token   { return e.Operator }

// Unary is a single-operand prefix operator expression.
type Unary struct {
	Operator token.Token
	Operand  Expression
}

func (e *Unary) Accept(v ExprVisitor) { v.VisitUnary(e) }
func (e *Unary) Token() token.Token   { return e.Operator }

// Assignment stores Value into the variable named Name.
type Assignment struct {
	Name  token.Token
	Value Expression
}

func (e *Assignment) Accept(v ExprVisitor) { v.VisitAssignment(e) }
func (e *Assignment) Token() token.Token   { return e.Name }

// Call invokes Callee with Arguments, at most 255 (§4.3 Limits).
type Call struct {
	Callee    Expression
	Paren     token.Token
	Arguments []Expression
}

func (e *Call) Accept(v ExprVisitor) { v.VisitCall(e) }
func (e *Call) Token() token.Token   { return e.Paren }

// Tuple is a parenthesized, comma-separated expression list.
type Tuple struct {
	LParen   token.Token
	Elements []Expression
}

func (e *Tuple) Accept(v ExprVisitor) { v.VisitTuple(e) }
func (e *Tuple) Token() token.Token   { return e.LParen }

// TupleMember projects the Index-th element out of Tuple.
type TupleMember struct {
	Tuple Expression
	Dot   token.Token
	Index int
}

func (e *TupleMember) Accept(v ExprVisitor) { v.VisitTupleMember(e) }
func (e *TupleMember) Token() token.Token   { return e.Dot }
