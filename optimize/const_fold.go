package optimize

import "github.com/collielang/collie-sub000/ir"

// ConstantFold replaces any instruction with exactly two integer-constant
// operands and an opcode in {ADD, SUB, MUL, DIV, MOD} with a single
// computed constant operand. DIV and MOD by zero do not fold (§4.7).
func ConstantFold(fn *ir.Function) bool {
	changed := false
	for _, b := range fn.Blocks {
		for _, instr := range b.Instructions {
			if folded, ok := foldInstruction(instr); ok {
				instr.SetOperands(folded)
				changed = true
			}
		}
	}
	return changed
}

func foldInstruction(instr *ir.Instruction) (ir.Operand, bool) {
	switch instr.Opcode {
	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpMod:
	default:
		return ir.Operand{}, false
	}
	if len(instr.Operand) != 2 {
		return ir.Operand{}, false
	}
	a, aok := instr.Operand[0].IsConstInt()
	b, bok := instr.Operand[1].IsConstInt()
	if !aok || !bok {
		return ir.Operand{}, false
	}
	switch instr.Opcode {
	case ir.OpAdd:
		return ir.ConstInt(a + b), true
	case ir.OpSub:
		return ir.ConstInt(a - b), true
	case ir.OpMul:
		return ir.ConstInt(a * b), true
	case ir.OpDiv:
		if b == 0 {
			return ir.Operand{}, false
		}
		return ir.ConstInt(a / b), true
	case ir.OpMod:
		if b == 0 {
			return ir.Operand{}, false
		}
		return ir.ConstInt(a % b), true
	}
	return ir.Operand{}, false
}
