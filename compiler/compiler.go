// Package compiler wires lexer through optimizer into the single
// pipeline entry point: lex -> parse -> semantic -> (optional) IR ->
// optimize. It has no file I/O or logging of its own; those are the
// driver's job (cmd/collie).
package compiler

import (
	"github.com/collielang/collie-sub000/ast"
	"github.com/collielang/collie-sub000/ir"
	"github.com/collielang/collie-sub000/ir/irgen"
	"github.com/collielang/collie-sub000/lexer"
	"github.com/collielang/collie-sub000/optimize"
	"github.com/collielang/collie-sub000/parser"
	"github.com/collielang/collie-sub000/semantic"
)

// Options configures one pipeline run: a plain struct with no functional
// options, the way wazero's RuntimeConfig favors explicit fields.
type Options struct {
	Encoding     lexer.Encoding
	EmitIR       bool
	OptLevel     optimize.Level
	UnrollFactor int
}

// Result holds every stage's output that survived far enough to be
// produced; a failed earlier stage leaves later fields nil.
type Result struct {
	Program []ast.Statement
	Module  *ir.Module

	ParseErrors    []error
	SemanticErrors []error
}

// Run executes the pipeline over src and returns as much of Result as
// was reached. A lex/parse failure or a non-empty SemanticErrors list
// stops the pipeline before IR generation; IR generation and
// optimization do not themselves produce user-facing errors (an IR
// invariant violation is a programming bug — see ir.Error — not a
// user-diagnosable failure).
func Run(src []byte, opts Options) *Result {
	lex := lexer.New(src, opts.Encoding)
	p := parser.New(lex)
	program := p.ParseProgram()
	result := &Result{Program: program, ParseErrors: p.Errors()}
	if p.HadError() {
		return result
	}

	analyzer := semantic.New()
	result.SemanticErrors = analyzer.Analyze(program)
	if len(result.SemanticErrors) > 0 {
		return result
	}

	if !opts.EmitIR {
		return result
	}
	mod := irgen.New().Generate(program)
	optimize.RunOptimizationsWithUnrollFactor(mod, opts.OptLevel, opts.UnrollFactor)
	result.Module = mod
	return result
}
