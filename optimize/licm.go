package optimize

import "github.com/collielang/collie-sub000/ir"

// LICM hoists loop-invariant instructions out of each loop. An
// instruction is invariant if it has no side effects and none of its
// operands are defined inside the loop by a non-invariant instruction (a
// variable operand counts as defined inside the loop when any loop block
// STOREs to it). A pre-header is synthesized lazily — only once a loop actually has
// something to hoist — by inserting a block immediately before the
// header, redirecting every non-back-edge predecessor of the header to
// it, and ending it with JMP header; hoisted instructions are placed in
// the pre-header just before its terminator (§4.7).
func LICM(fn *ir.Function) bool {
	changed := false
	for _, loop := range findLoops(fn) {
		var preheader *ir.BasicBlock
		for _, b := range fn.Blocks {
			if !loop.Blocks[b] {
				continue
			}
			for _, instr := range append([]*ir.Instruction{}, b.Instructions...) {
				if instr.Opcode.IsTerminator() || instr.Opcode.HasSideEffect() {
					continue
				}
				if !operandsInvariant(instr, loop.Blocks) {
					continue
				}
				if preheader == nil {
					preheader = ensurePreheader(fn, loop)
				}
				hoistInto(b, preheader, instr)
				changed = true
			}
		}
	}
	return changed
}

func operandsInvariant(instr *ir.Instruction, loopBlocks map[*ir.BasicBlock]bool) bool {
	for _, o := range instr.Operand {
		if o.Kind == ir.OperandInstruction && o.Def != nil && loopBlocks[o.Def.Block] {
			return false
		}
		if o.Kind == ir.OperandVariable {
			for b := range loopBlocks {
				for _, in := range b.Instructions {
					if in.Opcode == ir.OpStore && len(in.Operand) == 2 &&
						in.Operand[1].Kind == ir.OperandVariable && in.Operand[1].VarName == o.VarName {
						return false
					}
				}
			}
		}
	}
	return true
}

// ensurePreheader inserts a fresh block immediately before loop.Header,
// redirects every predecessor of the header that is not inside the
// loop to target it instead, and ends it with an unconditional jump to
// the header.
func ensurePreheader(fn *ir.Function, loop *Loop) *ir.BasicBlock {
	headerIdx := fn.IndexOfBlock(loop.Header)
	preheader := fn.InsertBlockBefore(headerIdx)
	fn.Emit(preheader, ir.OpJmp, ir.TypeVoid, ir.LabelOf(loop.Header))

	for _, pred := range loop.Header.Predecessors() {
		if loop.Blocks[pred] || pred == preheader {
			continue
		}
		retargetTerminator(pred, loop.Header, preheader)
	}
	return preheader
}

// hoistInto moves instr from "from" to the slot immediately before
// "to"'s terminator, preserving its identity (no re-numbering, no
// unlinking of its operand use-edges — this is a move, not a delete).
func hoistInto(from, to *ir.BasicBlock, instr *ir.Instruction) {
	idx := from.IndexOf(instr)
	if idx < 0 {
		return
	}
	from.Instructions = append(from.Instructions[:idx], from.Instructions[idx+1:]...)

	insertAt := len(to.Instructions)
	if to.Terminator() != nil {
		insertAt--
	}
	to.Instructions = append(to.Instructions, nil)
	copy(to.Instructions[insertAt+1:], to.Instructions[insertAt:])
	to.Instructions[insertAt] = instr
	instr.Block = to
}
