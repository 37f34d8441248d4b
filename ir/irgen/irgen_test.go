package irgen_test

import (
	"testing"

	"github.com/collielang/collie-sub000/ast"
	"github.com/collielang/collie-sub000/internal/require"
	"github.com/collielang/collie-sub000/ir"
	"github.com/collielang/collie-sub000/ir/irgen"
	"github.com/collielang/collie-sub000/token"
)

func numLit(lexeme string) *ast.Literal {
	return &ast.Literal{Value: token.New(token.NUMBER_LITERAL, lexeme, 1, 1)}
}

func numberType() ast.Type {
	return &ast.BasicType{Name: token.New(token.NUMBER, "number", 1, 1)}
}

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: token.New(token.IDENTIFIER, name, 1, 1)}
}

func TestGenerateVarDeclAndBinary(t *testing.T) {
	// number x = 1 + 2;
	decl := &ast.VarDecl{
		VarType: numberType(),
		Name:    token.New(token.IDENTIFIER, "x", 1, 1),
		Initializer: &ast.Binary{
			Left:     numLit("1"),
			Operator: token.New(token.PLUS, "+", 1, 1),
			Right:    numLit("2"),
		},
	}

	g := irgen.New()
	mod := g.Generate([]ast.Statement{decl})
	require.NoError(t, mod.Validate())
	require.Equal(t, 1, len(mod.Functions))

	main := mod.Functions[0]
	require.Equal(t, "main", main.Name)

	entry := main.EntryBlock()
	var sawAdd, sawStore bool
	for _, instr := range entry.Instructions {
		if instr.Opcode == ir.OpAdd {
			sawAdd = true
		}
		if instr.Opcode == ir.OpStore {
			sawStore = true
		}
	}
	require.True(t, sawAdd)
	require.True(t, sawStore)
}

func TestGenerateIfBuildsFourBlocks(t *testing.T) {
	// if (true) { x = 1; } else { x = 2; }
	ifStmt := &ast.If{
		Condition: &ast.Literal{Value: token.New(token.BOOL_LITERAL, "true", 1, 1)},
		Then: &ast.ExpressionStmt{Expr: &ast.Assignment{
			Name: token.New(token.IDENTIFIER, "x", 1, 1), Value: numLit("1"),
		}},
		Else: &ast.ExpressionStmt{Expr: &ast.Assignment{
			Name: token.New(token.IDENTIFIER, "x", 1, 1), Value: numLit("2"),
		}},
	}

	g := irgen.New()
	mod := g.Generate([]ast.Statement{ifStmt})
	require.NoError(t, mod.Validate())

	main := mod.Functions[0]
	// condition, then, else, end plus the implicit pre-entry block.
	require.Equal(t, 5, len(main.Blocks))
}

func TestGenerateIfWithoutElseStillBuildsFourBlocks(t *testing.T) {
	// if (true) { x = 1; }
	ifStmt := &ast.If{
		Condition: &ast.Literal{Value: token.New(token.BOOL_LITERAL, "true", 1, 1)},
		Then: &ast.ExpressionStmt{Expr: &ast.Assignment{
			Name: token.New(token.IDENTIFIER, "x", 1, 1), Value: numLit("1"),
		}},
	}

	g := irgen.New()
	mod := g.Generate([]ast.Statement{ifStmt})
	require.NoError(t, mod.Validate())

	main := mod.Functions[0]
	// condition, then, else, end plus the implicit pre-entry block, even
	// with no else-statement: the else block is still allocated and
	// jumps straight to end.
	require.Equal(t, 5, len(main.Blocks))

	seen := make(map[*ir.BasicBlock]bool)
	for _, b := range main.Blocks {
		require.False(t, seen[b])
		seen[b] = true
	}
}

func TestGenerateWhileLoopWithBreak(t *testing.T) {
	// while (true) { break; }
	whileStmt := &ast.While{
		Condition: &ast.Literal{Value: token.New(token.BOOL_LITERAL, "true", 1, 1)},
		Body:      &ast.Break{},
	}

	g := irgen.New()
	mod := g.Generate([]ast.Statement{whileStmt})
	require.NoError(t, mod.Validate())
}

func TestGenerateFuncDeclSeedsParams(t *testing.T) {
	fn := &ast.FuncDecl{
		ReturnType: numberType(),
		Name:       token.New(token.IDENTIFIER, "add", 1, 1),
		Params: []ast.Param{
			{ParamType: numberType(), Name: token.New(token.IDENTIFIER, "a", 1, 1)},
			{ParamType: numberType(), Name: token.New(token.IDENTIFIER, "b", 1, 1)},
		},
		Body: &ast.Block{Statements: []ast.Statement{
			&ast.Return{Value: &ast.Binary{
				Left: ident("a"), Operator: token.New(token.PLUS, "+", 1, 1), Right: ident("b"),
			}},
		}},
	}

	g := irgen.New()
	mod := g.Generate([]ast.Statement{fn})
	require.NoError(t, mod.Validate())
	require.Equal(t, 2, len(mod.Functions))

	var addFn *ir.Function
	for _, f := range mod.Functions {
		if f.Name == "add" {
			addFn = f
		}
	}
	require.NotNil(t, addFn)

	entry := addFn.EntryBlock()
	allocaCount := 0
	for _, instr := range entry.Instructions {
		if instr.Opcode == ir.OpAlloca {
			allocaCount++
		}
	}
	require.Equal(t, 2, allocaCount)
}

func TestGenerateLogicalAndShortCircuits(t *testing.T) {
	expr := &ast.Binary{
		Left:     &ast.Literal{Value: token.New(token.BOOL_LITERAL, "true", 1, 1)},
		Operator: token.New(token.AND_AND, "&&", 1, 1),
		Right:    &ast.Literal{Value: token.New(token.BOOL_LITERAL, "false", 1, 1)},
	}
	stmt := &ast.ExpressionStmt{Expr: expr}

	g := irgen.New()
	mod := g.Generate([]ast.Statement{stmt})
	require.NoError(t, mod.Validate())

	main := mod.Functions[0]
	require.True(t, len(main.Blocks) >= 4)
}
