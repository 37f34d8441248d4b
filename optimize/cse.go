package optimize

import "github.com/collielang/collie-sub000/ir"

// CSE eliminates common subexpressions per basic block: for each
// instruction whose opcode is in {ADD, SUB, MUL, DIV}, a key encoding
// the opcode plus operand identity (constants by value, variables by
// name, instruction-results by defining instruction) is looked up in a
// per-block map. A repeat redirects all users of the current
// instruction to the first one and drops the current instruction
// (§4.7).
func CSE(fn *ir.Function) bool {
	changed := false
	for _, b := range fn.Blocks {
		seen := make(map[string]*ir.Instruction)
		for _, instr := range append([]*ir.Instruction{}, b.Instructions...) {
			if !cseable(instr.Opcode) {
				continue
			}
			key := cseKey(instr)
			if existing, ok := seen[key]; ok {
				instr.ReplaceAllUsesWith(ir.ResultOf(existing))
				b.Remove(instr)
				changed = true
				continue
			}
			seen[key] = instr
		}
	}
	return changed
}

func cseable(op ir.Opcode) bool {
	switch op {
	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv:
		return true
	}
	return false
}

func cseKey(instr *ir.Instruction) string {
	key := instr.Opcode.String()
	for _, o := range instr.Operand {
		key += "|" + ir.FormatOperand(o)
	}
	return key
}
