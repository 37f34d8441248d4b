package optimize_test

import (
	"testing"

	"github.com/collielang/collie-sub000/internal/require"
	"github.com/collielang/collie-sub000/ir"
	"github.com/collielang/collie-sub000/optimize"
)

func TestConstantFoldAddAndDivByZero(t *testing.T) {
	fn := ir.NewFunction("f")
	b := fn.NewBlock()
	add := fn.Emit(b, ir.OpAdd, ir.TypeInt, ir.ConstInt(10), ir.ConstInt(20))
	div := fn.Emit(b, ir.OpDiv, ir.TypeInt, ir.ConstInt(100), ir.ConstInt(0))
	fn.Emit(b, ir.OpRet, ir.TypeVoid, ir.ResultOf(add), ir.ResultOf(div))

	changed := optimize.ConstantFold(fn)
	require.True(t, changed)

	require.Equal(t, 1, len(add.Operand))
	v, ok := add.Operand[0].IsConstInt()
	require.True(t, ok)
	require.Equal(t, int64(30), v)

	require.Equal(t, 2, len(div.Operand))
}

func TestBlockMergeCombinesAdjacentPair(t *testing.T) {
	fn := ir.NewFunction("f")
	a := fn.NewBlock()
	b := fn.NewBlock()
	fn.Emit(a, ir.OpAdd, ir.TypeInt, ir.ConstInt(1), ir.ConstInt(2))
	fn.Emit(a, ir.OpJmp, ir.TypeVoid, ir.LabelOf(b))
	fn.Emit(b, ir.OpMul, ir.TypeInt, ir.ConstInt(3), ir.ConstInt(4))
	fn.Emit(b, ir.OpRet, ir.TypeVoid)

	changed := optimize.BlockMerge(fn)
	require.True(t, changed)
	require.Equal(t, 1, len(fn.Blocks))
	require.Equal(t, 2, len(fn.Blocks[0].Instructions))
	require.NoError(t, fn.Validate())
}

func TestDeadCodeEliminationDropsUnusedPureInstruction(t *testing.T) {
	fn := ir.NewFunction("f")
	b := fn.NewBlock()
	dead := fn.Emit(b, ir.OpAdd, ir.TypeInt, ir.ConstInt(1), ir.ConstInt(2))
	fn.Emit(b, ir.OpRet, ir.TypeVoid)

	changed := optimize.DeadCodeElimination(fn)
	require.True(t, changed)
	require.Equal(t, -1, b.IndexOf(dead))
}

func TestCSEDropsRedundantComputation(t *testing.T) {
	fn := ir.NewFunction("f")
	b := fn.NewBlock()
	first := fn.Emit(b, ir.OpAdd, ir.TypeInt, ir.Var("x", ir.TypeInt), ir.Var("y", ir.TypeInt))
	second := fn.Emit(b, ir.OpAdd, ir.TypeInt, ir.Var("x", ir.TypeInt), ir.Var("y", ir.TypeInt))
	use := fn.Emit(b, ir.OpStore, ir.TypeVoid, ir.ResultOf(second), ir.Var("z", ir.TypeInt))
	fn.Emit(b, ir.OpRet, ir.TypeVoid)

	changed := optimize.CSE(fn)
	require.True(t, changed)
	require.Equal(t, -1, b.IndexOf(second))
	require.Equal(t, first, use.Operand[0].Def)
}

// buildCountedLoop constructs `for (i=0; i<10; i=i+1) sum = sum + i;`
// as IR: a pre-loop init block, a header testing i<10, a body that
// adds i into sum and increments i, and an end block.
func buildCountedLoop(fn *ir.Function) (header, body *ir.BasicBlock) {
	pre := fn.EntryBlock()
	header = fn.NewBlock()
	body = fn.NewBlock()
	end := fn.NewBlock()

	fn.Emit(pre, ir.OpStore, ir.TypeVoid, ir.ConstInt(0), ir.Var("i", ir.TypeInt))
	fn.Emit(pre, ir.OpStore, ir.TypeVoid, ir.ConstInt(0), ir.Var("sum", ir.TypeInt))
	fn.Emit(pre, ir.OpJmp, ir.TypeVoid, ir.LabelOf(header))

	cond := fn.Emit(header, ir.OpLt, ir.TypeBool, ir.Var("i", ir.TypeInt), ir.ConstInt(10))
	fn.Emit(header, ir.OpBr, ir.TypeVoid, ir.ResultOf(cond), ir.LabelOf(body), ir.LabelOf(end))

	sum := fn.Emit(body, ir.OpAdd, ir.TypeInt, ir.Var("sum", ir.TypeInt), ir.Var("i", ir.TypeInt))
	fn.Emit(body, ir.OpStore, ir.TypeVoid, ir.ResultOf(sum), ir.Var("sum", ir.TypeInt))
	step := fn.Emit(body, ir.OpAdd, ir.TypeInt, ir.Var("i", ir.TypeInt), ir.ConstInt(1))
	fn.Emit(body, ir.OpStore, ir.TypeVoid, ir.ResultOf(step), ir.Var("i", ir.TypeInt))
	fn.Emit(body, ir.OpJmp, ir.TypeVoid, ir.LabelOf(header))

	fn.Emit(end, ir.OpRet, ir.TypeVoid)
	return header, body
}

func TestLoopUnrollGrowsBodyAndMultipliesStep(t *testing.T) {
	fn := ir.NewFunction("f")
	fn.NewBlock() // pre
	_, body := buildCountedLoop(fn)
	before := len(fn.Blocks)

	changed := optimize.LoopUnroll(fn)
	require.True(t, changed)
	require.Equal(t, before+3, len(fn.Blocks))
	require.NoError(t, fn.Validate())

	var step *ir.Instruction
	for _, instr := range body.Instructions {
		if instr.Opcode == ir.OpAdd {
			for _, o := range instr.Operand {
				if o.Kind == ir.OperandVariable && o.VarName == "i" {
					step = instr
				}
			}
		}
	}
	require.NotNil(t, step)
	var sawFour bool
	for _, o := range step.Operand {
		if v, ok := o.IsConstInt(); ok && v == 4 {
			sawFour = true
		}
	}
	require.True(t, sawFour)
}

func TestStrengthReductionReplacesMultiplyWithAdd(t *testing.T) {
	fn := ir.NewFunction("f")
	fn.NewBlock() // pre
	_, body := buildCountedLoop(fn)
	mul := fn.EmitAt(body, len(body.Instructions)-1, ir.OpMul, ir.TypeInt, ir.Var("i", ir.TypeInt), ir.ConstInt(3))
	fn.EmitAt(body, len(body.Instructions)-1, ir.OpStore, ir.TypeVoid, ir.ResultOf(mul), ir.Var("m", ir.TypeInt))

	changed := optimize.StrengthReduction(fn)
	require.True(t, changed)
	require.Equal(t, -1, body.IndexOf(mul))
	require.NoError(t, fn.Validate())
}

func TestLICMHoistsInvariantComputationIntoSynthesizedPreheader(t *testing.T) {
	fn := ir.NewFunction("f")
	fn.NewBlock() // pre
	header, body := buildCountedLoop(fn)
	before := len(fn.Blocks)

	inv := fn.EmitAt(body, len(body.Instructions)-1, ir.OpAdd, ir.TypeInt, ir.Var("x", ir.TypeInt), ir.Var("y", ir.TypeInt))
	fn.EmitAt(body, len(body.Instructions)-1, ir.OpStore, ir.TypeVoid, ir.ResultOf(inv), ir.Var("invariant", ir.TypeInt))

	changed := optimize.LICM(fn)
	require.True(t, changed)
	require.NoError(t, fn.Validate())

	// a pre-header block was synthesized immediately before the header.
	require.Equal(t, before+1, len(fn.Blocks))
	require.Equal(t, -1, body.IndexOf(inv))

	preIdx := fn.IndexOfBlock(header) - 1
	require.True(t, preIdx >= 0)
	preheader := fn.Blocks[preIdx]
	require.True(t, preheader.IndexOf(inv) >= 0)
}

func TestRunOptimizationsRespectsLevelGate(t *testing.T) {
	fn := ir.NewFunction("f")
	b := fn.NewBlock()
	fn.Emit(b, ir.OpAdd, ir.TypeInt, ir.ConstInt(1), ir.ConstInt(2))
	fn.Emit(b, ir.OpRet, ir.TypeVoid)
	mod := ir.NewModule()
	mod.AddFunction(fn)

	changedO0 := optimize.RunOptimizations(mod, optimize.O0)
	require.False(t, changedO0)

	changedO1 := optimize.RunOptimizations(mod, optimize.O1)
	require.True(t, changedO1)
}

func TestRunOptimizationsIsMonotonic(t *testing.T) {
	fn := ir.NewFunction("f")
	fn.NewBlock()
	buildCountedLoop(fn)
	mod := ir.NewModule()
	mod.AddFunction(fn)

	optimize.RunOptimizations(mod, optimize.O3)
	before := ir.Print(mod)
	optimize.RunOptimizations(mod, optimize.O3)
	after := ir.Print(mod)
	require.Equal(t, before, after)
}
