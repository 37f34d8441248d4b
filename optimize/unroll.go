package optimize

import "github.com/collielang/collie-sub000/ir"

// DefaultUnrollFactor is the unroll_factor default of §4.7.
const DefaultUnrollFactor = 4

// LoopUnroll unrolls a canonical-shape, small, countable loop by
// DefaultUnrollFactor.
func LoopUnroll(fn *ir.Function) bool {
	return loopUnrollWithFactor(fn, DefaultUnrollFactor)
}

func loopUnrollWithFactor(fn *ir.Function, factor int) bool {
	for _, loop := range findLoops(fn) {
		if len(loop.Blocks) != 2 {
			continue
		}
		var body *ir.BasicBlock
		for b := range loop.Blocks {
			if b != loop.Header {
				body = b
			}
		}
		if body == nil || len(body.Instructions) > 50 {
			continue
		}

		name, stepInstr, stepConst, initVal, boundVal, ok := findInductionVar(fn, loop)
		_ = name
		if !ok || stepConst <= 0 {
			continue
		}
		n := ceilDiv(boundVal-initVal, stepConst)
		if n <= 2 {
			continue
		}
		k := factor
		if n < int64(k) {
			k = int(n)
		}
		if k <= 1 {
			continue
		}

		insertIdx := fn.IndexOfBlock(body) + 1
		prev := body
		for i := 0; i < k-1; i++ {
			clone := fn.InsertBlockBefore(insertIdx + i)
			remap := map[*ir.Instruction]*ir.Instruction{}
			for _, instr := range body.Instructions {
				if instr.Opcode.IsTerminator() {
					continue
				}
				remap[instr] = cloneInstruction(fn, clone, instr, remap)
			}
			fn.Emit(clone, ir.OpJmp, ir.TypeVoid, ir.LabelOf(loop.Header))
			retargetTerminator(prev, loop.Header, clone)
			prev = clone
		}

		stepInstr.SetOperands(multiplyConstOperand(stepInstr.Operand, stepConst*int64(k))...)
		return true
	}
	return false
}

// cloneInstruction duplicates instr into block with a fresh identity.
// Variable and constant operands pass through unchanged (the by-name
// variable model needs no operand renaming across clones); an operand
// referencing an already-cloned instruction in this same body is
// remapped to point at its clone instead of the original.
func cloneInstruction(fn *ir.Function, block *ir.BasicBlock, instr *ir.Instruction, remap map[*ir.Instruction]*ir.Instruction) *ir.Instruction {
	operands := make([]ir.Operand, len(instr.Operand))
	for i, o := range instr.Operand {
		if o.Kind == ir.OperandInstruction && o.Def != nil {
			if nd, ok := remap[o.Def]; ok {
				operands[i] = ir.ResultOf(nd)
				continue
			}
		}
		operands[i] = o
	}
	return fn.Emit(block, instr.Opcode, instr.ResultType(), operands...)
}

func multiplyConstOperand(operands []ir.Operand, newValue int64) []ir.Operand {
	out := make([]ir.Operand, len(operands))
	copy(out, operands)
	for i, o := range out {
		if _, ok := o.IsConstInt(); ok {
			out[i] = ir.ConstInt(newValue)
		}
	}
	return out
}
