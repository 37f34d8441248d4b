package ast

import "strings"

// Printer renders a canonical textual form of an expression or statement
// tree by double-dispatch visitation, carrying its output on a
// strings.Builder (mutable visitor state, per the AST package doc). It
// exists to make the "parse, print, reparse, compare" structural
// round-trip property (§8) testable; it is not a source formatter.
type Printer struct {
	sb strings.Builder
}

// PrintExpr renders e and returns the accumulated string.
func PrintExpr(e Expression) string {
	p := &Printer{}
	e.Accept(p)
	return p.sb.String()
}

// PrintStmt renders s and returns the accumulated string.
func PrintStmt(s Statement) string {
	p := &Printer{}
	s.Accept(p)
	return p.sb.String()
}

func (p *Printer) VisitLiteral(e *Literal) { p.sb.WriteString(e.Value.Lexeme) }

func (p *Printer) VisitIdentifier(e *Identifier) { p.sb.WriteString(e.Name.Lexeme) }

func (p *Printer) VisitBinary(e *Binary) {
	p.sb.WriteByte('(')
	e.Left.Accept(p)
	p.sb.WriteString(e.Operator.Lexeme)
	e.Right.Accept(p)
	p.sb.WriteByte(')')
}

func (p *Printer) VisitUnary(e *Unary) {
	p.sb.WriteByte('(')
	p.sb.WriteString(e.Operator.Lexeme)
	e.Operand.Accept(p)
	p.sb.WriteByte(')')
}

func (p *Printer) VisitAssignment(e *Assignment) {
	p.sb.WriteByte('(')
	p.sb.WriteString(e.Name.Lexeme)
	p.sb.WriteByte('=')
	e.Value.Accept(p)
	p.sb.WriteByte(')')
}

func (p *Printer) VisitCall(e *Call) {
	e.Callee.Accept(p)
	p.sb.WriteByte('(')
	for i, a := range e.Arguments {
		if i > 0 {
			p.sb.WriteByte(',')
		}
		a.Accept(p)
	}
	p.sb.WriteByte(')')
}

func (p *Printer) VisitTuple(e *Tuple) {
	p.sb.WriteByte('(')
	for i, el := range e.Elements {
		if i > 0 {
			p.sb.WriteByte(',')
		}
		el.Accept(p)
	}
	p.sb.WriteByte(')')
}

func (p *Printer) VisitTupleMember(e *TupleMember) {
	e.Tuple.Accept(p)
	p.sb.WriteByte('.')
	p.sb.WriteString(itoa(e.Index))
}

func (p *Printer) VisitExpressionStmt(s *ExpressionStmt) {
	s.Expr.Accept(p)
	p.sb.WriteByte(';')
}

func (p *Printer) VisitVarDecl(s *VarDecl) {
	if s.IsConst {
		p.sb.WriteString("const ")
	}
	p.sb.WriteString(s.VarType.String())
	p.sb.WriteByte(' ')
	p.sb.WriteString(s.Name.Lexeme)
	if s.Initializer != nil {
		p.sb.WriteByte('=')
		s.Initializer.Accept(p)
	}
	p.sb.WriteByte(';')
}

func (p *Printer) VisitBlock(s *Block) {
	p.sb.WriteByte('{')
	for _, stmt := range s.Statements {
		stmt.Accept(p)
	}
	p.sb.WriteByte('}')
}

func (p *Printer) VisitIf(s *If) {
	p.sb.WriteString("if(")
	s.Condition.Accept(p)
	p.sb.WriteByte(')')
	s.Then.Accept(p)
	if s.Else != nil {
		p.sb.WriteString("else")
		s.Else.Accept(p)
	}
}

func (p *Printer) VisitWhile(s *While) {
	p.sb.WriteString("while(")
	if s.Condition != nil {
		s.Condition.Accept(p)
	}
	p.sb.WriteByte(')')
	s.Body.Accept(p)
}

func (p *Printer) VisitFor(s *For) {
	p.sb.WriteString("for(")
	if s.Initializer != nil {
		s.Initializer.Accept(p)
	} else {
		p.sb.WriteByte(';')
	}
	if s.Condition != nil {
		s.Condition.Accept(p)
	}
	p.sb.WriteByte(';')
	if s.Increment != nil {
		s.Increment.Accept(p)
	}
	p.sb.WriteByte(')')
	s.Body.Accept(p)
}

func (p *Printer) VisitFuncDecl(s *FuncDecl) {
	p.sb.WriteString(s.ReturnType.String())
	p.sb.WriteByte(' ')
	p.sb.WriteString(s.Name.Lexeme)
	p.sb.WriteByte('(')
	for i, param := range s.Params {
		if i > 0 {
			p.sb.WriteByte(',')
		}
		p.sb.WriteString(param.ParamType.String())
		p.sb.WriteByte(' ')
		p.sb.WriteString(param.Name.Lexeme)
	}
	p.sb.WriteByte(')')
	s.Body.Accept(p)
}

func (p *Printer) VisitReturn(s *Return) {
	p.sb.WriteString("return")
	if s.Value != nil {
		p.sb.WriteByte(' ')
		s.Value.Accept(p)
	}
	p.sb.WriteByte(';')
}

func (p *Printer) VisitClassDecl(s *ClassDecl) {
	p.sb.WriteString("class ")
	p.sb.WriteString(s.Name.Lexeme)
	p.sb.WriteByte('{')
	for _, f := range s.Fields {
		p.sb.WriteString(f.FieldType.String())
		p.sb.WriteByte(' ')
		p.sb.WriteString(f.Name.Lexeme)
		p.sb.WriteByte(';')
	}
	p.sb.WriteByte('}')
}

func (p *Printer) VisitBreak(*Break) { p.sb.WriteString("break;") }

func (p *Printer) VisitContinue(*Continue) { p.sb.WriteString("continue;") }

func (p *Printer) VisitBasicType(t *BasicType)   { p.sb.WriteString(t.Name.Lexeme) }
func (p *Printer) VisitArrayType(t *ArrayType)   { p.sb.WriteString(t.String()) }
func (p *Printer) VisitTupleType(t *TupleType)   { p.sb.WriteString(t.String()) }

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
