package symtable_test

import (
	"testing"

	"github.com/collielang/collie-sub000/internal/require"
	"github.com/collielang/collie-sub000/symtable"
	"github.com/collielang/collie-sub000/token"
)

func sym(name string) *symtable.Symbol {
	return &symtable.Symbol{Name: token.New(token.IDENTIFIER, name, 1, 1)}
}

func TestScopeDiscipline(t *testing.T) {
	tbl := symtable.New()
	require.True(t, tbl.Define(sym("x")))
	tbl.BeginScope()
	require.Nil(t, tbl.Resolve("y"))
	require.NotNil(t, tbl.Resolve("x")) // visible from inner scope
	tbl.EndScope()
	require.NotNil(t, tbl.Resolve("x")) // still visible after pop
}

func TestDuplicateDefinitionFails(t *testing.T) {
	tbl := symtable.New()
	require.True(t, tbl.Define(sym("x")))
	require.False(t, tbl.Define(sym("x")))
}

func TestShadowingAcrossScopesIsLegal(t *testing.T) {
	tbl := symtable.New()
	tbl.Define(sym("x"))
	tbl.BeginScope()
	require.True(t, tbl.Define(sym("x")))
	require.Equal(t, 1, tbl.Resolve("x").Depth)
	tbl.EndScope()
	require.Equal(t, 0, tbl.Resolve("x").Depth)
}

func TestGlobalScopeNeverPops(t *testing.T) {
	tbl := symtable.New()
	tbl.Define(sym("x"))
	tbl.EndScope() // no-op: already at global
	require.NotNil(t, tbl.Resolve("x"))
	require.Equal(t, 0, tbl.CurrentScopeLevel())
}
