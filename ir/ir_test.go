package ir_test

import (
	"testing"

	"github.com/collielang/collie-sub000/internal/require"
	"github.com/collielang/collie-sub000/ir"
)

func TestReplaceAllUsesWith(t *testing.T) {
	fn := ir.NewFunction("f")
	b := fn.NewBlock()
	add := fn.Emit(b, ir.OpAdd, ir.TypeInt, ir.ConstInt(1), ir.ConstInt(2))
	use := fn.Emit(b, ir.OpNeg, ir.TypeInt, ir.ResultOf(add))
	require.True(t, add.HasUsers())

	add.ReplaceAllUsesWith(ir.ConstInt(30))
	require.False(t, add.HasUsers())
	require.Equal(t, int64(30), use.Operand[0].IntConst)
}

func TestCFGSuccessorsAndPredecessors(t *testing.T) {
	fn := ir.NewFunction("f")
	a := fn.NewBlock()
	thenB := fn.NewBlock()
	elseB := fn.NewBlock()
	end := fn.NewBlock()

	fn.Emit(a, ir.OpBr, ir.TypeVoid, ir.ConstBool(true), ir.LabelOf(thenB), ir.LabelOf(elseB))
	fn.Emit(thenB, ir.OpJmp, ir.TypeVoid, ir.LabelOf(end))
	fn.Emit(elseB, ir.OpJmp, ir.TypeVoid, ir.LabelOf(end))
	fn.Emit(end, ir.OpRet, ir.TypeVoid)

	require.Len(t, a.Successors(), 2)
	require.Len(t, end.Predecessors(), 2)
	require.NoError(t, fn.Validate())
}

func TestValidateRejectsMissingTerminator(t *testing.T) {
	fn := ir.NewFunction("f")
	b := fn.NewBlock()
	fn.Emit(b, ir.OpAdd, ir.TypeInt, ir.ConstInt(1), ir.ConstInt(2))
	require.Error(t, fn.Validate())
}

func TestUserSetInvariant(t *testing.T) {
	fn := ir.NewFunction("f")
	b := fn.NewBlock()
	add := fn.Emit(b, ir.OpAdd, ir.TypeInt, ir.ConstInt(1), ir.ConstInt(2))
	mul := fn.Emit(b, ir.OpMul, ir.TypeInt, ir.ResultOf(add), ir.ConstInt(3))
	users := add.Users()
	require.Len(t, users, 1)
	require.Equal(t, mul, users[0])

	b.Remove(mul)
	require.Len(t, add.Users(), 0)
}
