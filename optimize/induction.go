package optimize

import "github.com/collielang/collie-sub000/ir"

// findInductionVar recognizes the canonical counted-loop shape the
// unroll and strength-reduction passes both need: a header ending in
// `BR (i < bound), body, end` and a body containing `i = i + step`.
// bound and the initial value of i must be integer constants for the
// trip count to be computable at compile time (§4.7 "if the trip count
// ... can be determined as an integer").
func findInductionVar(fn *ir.Function, loop *Loop) (name string, stepInstr *ir.Instruction, stepConst, initVal, boundVal int64, ok bool) {
	br := loop.Header.Terminator()
	if br == nil || br.Opcode != ir.OpBr || len(br.Operand) != 3 {
		return
	}
	cond := br.Operand[0]
	if cond.Kind != ir.OperandInstruction || cond.Def == nil || cond.Def.Opcode != ir.OpLt {
		return
	}
	ltOperands := cond.Def.Operand
	if len(ltOperands) != 2 || ltOperands[0].Kind != ir.OperandVariable {
		return
	}
	name = ltOperands[0].VarName
	boundVal, ok = ltOperands[1].IsConstInt()
	if !ok {
		return
	}

	for b := range loop.Blocks {
		for _, instr := range b.Instructions {
			c, def, found := matchInductionStep(instr, name)
			if !found {
				continue
			}
			stepInstr = def
			stepConst = c
		}
	}
	if stepInstr == nil {
		ok = false
		return
	}

	initFound := false
	for _, b := range fn.Blocks {
		if loop.Blocks[b] {
			continue
		}
		for _, instr := range b.Instructions {
			if v, matched := matchInitStore(instr, name); matched {
				initVal = v
				initFound = true
			}
		}
	}
	ok = initFound
	return
}

// matchInductionStep recognizes `STORE(ADD(Var(name), const c), Var(name))`.
func matchInductionStep(instr *ir.Instruction, name string) (step int64, def *ir.Instruction, ok bool) {
	if instr.Opcode != ir.OpStore || len(instr.Operand) != 2 {
		return
	}
	target := instr.Operand[1]
	if target.Kind != ir.OperandVariable || target.VarName != name {
		return
	}
	val := instr.Operand[0]
	if val.Kind != ir.OperandInstruction || val.Def == nil || val.Def.Opcode != ir.OpAdd {
		return
	}
	addOps := val.Def.Operand
	if len(addOps) != 2 {
		return
	}
	if addOps[0].Kind == ir.OperandVariable && addOps[0].VarName == name {
		if c, cok := addOps[1].IsConstInt(); cok {
			return c, val.Def, true
		}
	}
	if addOps[1].Kind == ir.OperandVariable && addOps[1].VarName == name {
		if c, cok := addOps[0].IsConstInt(); cok {
			return c, val.Def, true
		}
	}
	return
}

// matchInitStore recognizes `STORE(const v, Var(name))`.
func matchInitStore(instr *ir.Instruction, name string) (int64, bool) {
	if instr.Opcode != ir.OpStore || len(instr.Operand) != 2 {
		return 0, false
	}
	target := instr.Operand[1]
	if target.Kind != ir.OperandVariable || target.VarName != name {
		return 0, false
	}
	return instr.Operand[0].IsConstInt()
}

func ceilDiv(a, b int64) int64 {
	if b <= 0 {
		return 0
	}
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
