// Package ast defines the Language's abstract syntax tree: two open sums
// rooted at Expression and Statement, and a closed sum for Type. Every
// node is immutable after construction and carries the token(s) needed
// to report diagnostics at its own source location. Traversal is by
// double-dispatch visitor (see visitor.go): a node's Accept method
// dispatches to the matching visitor method; there is no implicit
// recursion into children.
package ast

import "github.com/collielang/collie-sub000/token"

// Expression is any node that can appear where a value is expected.
type Expression interface {
	Accept(v ExprVisitor)
	Token() token.Token
}

// Statement is any node that can appear at program or block top level.
type Statement interface {
	Accept(v StmtVisitor)
	Token() token.Token
}

// Type is a closed sum of the three type-syntax productions.
type Type interface {
	Accept(v TypeVisitor)
	String() string
}
