package semantic_test

import (
	"testing"

	"github.com/collielang/collie-sub000/internal/require"
	"github.com/collielang/collie-sub000/lexer"
	"github.com/collielang/collie-sub000/parser"
	"github.com/collielang/collie-sub000/semantic"
)

func analyze(t *testing.T, src string) []error {
	t.Helper()
	p := parser.New(lexer.New([]byte(src), lexer.UTF8))
	stmts := p.ParseProgram()
	require.False(t, p.HadError(), "unexpected parse errors: %v", p.Errors())
	return semantic.New().Analyze(stmts)
}

func TestErrorCascadeScenario(t *testing.T) {
	src := `
string x = 42;
number y = 100;
number z = y + "oops";
const number PI = 3.14; PI = 3.15;
`
	errs := analyze(t, src)
	require.Len(t, errs, 3)
}

func TestUndefinedName(t *testing.T) {
	errs := analyze(t, "number x = y;")
	require.Len(t, errs, 1)
}

func TestDuplicateDefinitionInScope(t *testing.T) {
	errs := analyze(t, "number x = 1; number x = 2;")
	require.Len(t, errs, 1)
}

func TestShadowingAcrossScopesIsNotAnError(t *testing.T) {
	errs := analyze(t, "number x = 1; { number x = 2; }")
	require.Len(t, errs, 0)
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	errs := analyze(t, "break;")
	require.Len(t, errs, 1)
}

func TestBreakInsideLoopIsFine(t *testing.T) {
	errs := analyze(t, "while (true) { break; }")
	require.Len(t, errs, 0)
}

func TestReturnOutsideFunctionIsError(t *testing.T) {
	errs := analyze(t, "return 1;")
	require.Len(t, errs, 1)
}

func TestReturnTypeMismatch(t *testing.T) {
	errs := analyze(t, "string f() { return 42; }")
	require.Len(t, errs, 1)
}

func TestVoidReturnWithValueIsError(t *testing.T) {
	errs := analyze(t, "none f() { return 1; }")
	require.Len(t, errs, 1)
}

func TestUseBeforeInitialization(t *testing.T) {
	errs := analyze(t, "number x; number y = x;")
	require.Len(t, errs, 1)
}

func TestCharToCharacterInitializerAllowed(t *testing.T) {
	errs := analyze(t, "character c = 'a';")
	require.Len(t, errs, 0)
}

func TestCharToCharacterAssignmentRejected(t *testing.T) {
	errs := analyze(t, "character c = 'z'; char d = 'a'; c = d;")
	require.Len(t, errs, 1)
}

func TestGlobalReferenceFromFunctionIsRejected(t *testing.T) {
	errs := analyze(t, "number g = 1; number f() { return g; }")
	require.Len(t, errs, 1)
}

func TestDuplicateParameterName(t *testing.T) {
	errs := analyze(t, "number f(number a, number a) { return a; }")
	require.Len(t, errs, 1)
}

func TestMaxErrorsCap(t *testing.T) {
	src := ""
	for i := 0; i < semantic.MaxErrors+10; i++ {
		src += "number q = undefined_name;\n"
	}
	errs := analyze(t, src)
	require.Equal(t, semantic.MaxErrors, len(errs))
}
