// Command collie is a thin, illustrative driver over the compiler
// package: read a source file, run lex -> parse -> semantic -> IR ->
// optimize, print diagnostics to stderr and progress to stdout, exit 1
// on any error.
package main

import (
	"fmt"
	"os"

	"github.com/collielang/collie-sub000/compiler"
	"github.com/collielang/collie-sub000/ir"
	"github.com/collielang/collie-sub000/lexer"
	"github.com/collielang/collie-sub000/optimize"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: collie <source-file>")
		return 1
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Println("compiling", args[0])
	result := compiler.Run(src, compiler.Options{
		Encoding: lexer.UTF8,
		EmitIR:   true,
		OptLevel: optimize.O2,
	})

	failed := false
	for _, e := range result.ParseErrors {
		fmt.Fprintln(os.Stderr, e)
		failed = true
	}
	for _, e := range result.SemanticErrors {
		fmt.Fprintln(os.Stderr, e)
		failed = true
	}
	if failed {
		return 1
	}

	if result.Module != nil {
		fmt.Println(ir.Print(result.Module))
	}
	fmt.Println("ok")
	return 0
}
