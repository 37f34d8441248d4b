package optimize

import "github.com/collielang/collie-sub000/ir"

// BlockMerge scans adjacent block pairs (A, B) and merges B into A when
// A has exactly one successor, B has exactly one predecessor, A's
// terminator is an unconditional JMP to B (not a conditional BR).
// Merging drops A's JMP, appends B's instructions to A, retargets any
// other reference to B onto A, and removes B. Returns after the first
// merge so the caller's fixpoint loop re-scans the (now different)
// block list (§4.7).
func BlockMerge(fn *ir.Function) bool {
	for _, a := range fn.Blocks {
		term := a.Terminator()
		if term == nil || term.Opcode != ir.OpJmp {
			continue
		}
		succs := a.Successors()
		if len(succs) != 1 {
			continue
		}
		b := succs[0]
		if b == a || len(b.Predecessors()) != 1 {
			continue
		}

		a.Remove(term)
		for _, instr := range b.Instructions {
			instr.Block = a
		}
		a.Instructions = append(a.Instructions, b.Instructions...)

		for _, blk := range fn.Blocks {
			retargetTerminator(blk, b, a)
		}
		fn.RemoveBlock(b)
		return true
	}
	return false
}

func retargetTerminator(blk, from, to *ir.BasicBlock) {
	term := blk.Terminator()
	if term == nil {
		return
	}
	for i, o := range term.Operand {
		if o.Kind == ir.OperandLabel && o.Label == from {
			term.Operand[i] = ir.LabelOf(to)
		}
	}
}
