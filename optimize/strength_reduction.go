package optimize

import (
	"fmt"

	"github.com/collielang/collie-sub000/ir"
)

var strengthVarCounter int

func freshStrengthVar() string {
	strengthVarCounter++
	return fmt.Sprintf("$s%d", strengthVarCounter)
}

// StrengthReduction replaces `m = i * f` inside a loop, where i is the
// loop's induction variable (updated by `i = i + c`) and f is a
// compile-time-constant multiplier, with an incrementally-updated
// variable s: initialized to init(i)*f in the pre-header, updated by
// `s = s + c*f` in the body in place of the multiplication, with every
// use of m replaced by s (§4.7). f must be a constant here rather than
// merely loop-invariant in the general sense, since deriving
// init(i)*f and c*f for a non-constant f would need symbolic
// arithmetic this IR has no representation for.
func StrengthReduction(fn *ir.Function) bool {
	changed := false
	for _, loop := range findLoops(fn) {
		name, _, stepConst, initVal, _, ok := findInductionVar(fn, loop)
		if !ok {
			continue
		}
		var body *ir.BasicBlock
		for b := range loop.Blocks {
			if b != loop.Header {
				body = b
			}
		}
		if body == nil {
			continue
		}

		for _, instr := range append([]*ir.Instruction{}, body.Instructions...) {
			f, usesIndVar := mulByInductionVar(instr, name)
			if !usesIndVar {
				continue
			}

			sName := freshStrengthVar()
			preheader := ensurePreheader(fn, loop)
			fn.EmitAt(preheader, len(preheader.Instructions)-1, ir.OpStore, ir.TypeVoid, ir.ConstInt(initVal*f), ir.Var(sName, ir.TypeInt))

			idx := body.IndexOf(instr)
			addInstr := fn.EmitAt(body, idx, ir.OpAdd, ir.TypeInt, ir.Var(sName, ir.TypeInt), ir.ConstInt(stepConst*f))
			fn.EmitAt(body, idx+1, ir.OpStore, ir.TypeVoid, ir.ResultOf(addInstr), ir.Var(sName, ir.TypeInt))

			instr.ReplaceAllUsesWith(ir.Var(sName, ir.TypeInt))
			body.Remove(instr)
			changed = true
		}
	}
	return changed
}

// mulByInductionVar recognizes `i * f` or `f * i` where f is an integer
// constant.
func mulByInductionVar(instr *ir.Instruction, name string) (f int64, ok bool) {
	if instr.Opcode != ir.OpMul || len(instr.Operand) != 2 {
		return 0, false
	}
	a, b := instr.Operand[0], instr.Operand[1]
	if a.Kind == ir.OperandVariable && a.VarName == name {
		f, ok = b.IsConstInt()
		return
	}
	if b.Kind == ir.OperandVariable && b.VarName == name {
		f, ok = a.IsConstInt()
		return
	}
	return 0, false
}
