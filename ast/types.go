package ast

import "github.com/collielang/collie-sub000/token"

// BasicType is a named primitive or class type, e.g. "number", "string".
type BasicType struct {
	Name token.Token
}

func (t *BasicType) Accept(v TypeVisitor) { v.VisitBasicType(t) }
func (t *BasicType) String() string       { return t.Name.Lexeme }

// ArrayType is an element type written "elem[]".
type ArrayType struct {
	Element Type
}

func (t *ArrayType) Accept(v TypeVisitor) { v.VisitArrayType(t) }
func (t *ArrayType) String() string       { return t.Element.String() + "[]" }

// TupleType is an ordered list of element types written "(a, b, c)".
type TupleType struct {
	Elements []Type
}

func (t *TupleType) Accept(v TypeVisitor) { v.VisitTupleType(t) }
func (t *TupleType) String() string {
	s := "("
	for i, e := range t.Elements {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}
