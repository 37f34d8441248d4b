package optimize

import "github.com/collielang/collie-sub000/ir"

// DeadCodeElimination computes, per basic block, bottom-up liveness: an
// instruction is live if its opcode always has side effects (STORE,
// CALL, RET, BR, JMP), or if it has at least one user within the same
// block. Liveness propagates transitively to operand-defining
// instructions. Unmarked instructions are removed; terminators are
// always preserved (§4.7).
func DeadCodeElimination(fn *ir.Function) bool {
	changed := false
	for _, b := range fn.Blocks {
		live := map[*ir.Instruction]bool{}
		for _, instr := range b.Instructions {
			if instr.Opcode.HasSideEffect() {
				live[instr] = true
				continue
			}
			for _, u := range instr.Users() {
				if u.Block == b {
					live[instr] = true
					break
				}
			}
		}

		worklist := make([]*ir.Instruction, 0, len(live))
		for instr := range live {
			worklist = append(worklist, instr)
		}
		for len(worklist) > 0 {
			instr := worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]
			for _, o := range instr.Operand {
				if o.Kind == ir.OperandInstruction && o.Def != nil && !live[o.Def] {
					live[o.Def] = true
					worklist = append(worklist, o.Def)
				}
			}
		}

		for i := len(b.Instructions) - 1; i >= 0; i-- {
			instr := b.Instructions[i]
			if !live[instr] {
				b.Remove(instr)
				changed = true
			}
		}
	}
	return changed
}
