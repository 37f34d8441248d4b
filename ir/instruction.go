package ir

// Instruction is one IR operation: an opcode, an ordered operand list, a
// back-link to its parent block, and the set of instructions that use
// its result (a back-index, not an ownership edge — see §5 "Shared
// state"). replace_all_uses_with is the one mutator every optimization
// pass is required to route through so the user set and operand lists
// never drift apart.
type Instruction struct {
	id      int
	Opcode  Opcode
	Operand []Operand
	Block   *BasicBlock

	resultType Type
	users      map[*Instruction]bool
}

func newInstruction(id int, op Opcode, resultType Type, operands ...Operand) *Instruction {
	instr := &Instruction{id: id, Opcode: op, resultType: resultType, users: make(map[*Instruction]bool)}
	instr.Operand = operands
	for _, o := range operands {
		if o.Kind == OperandInstruction && o.Def != nil {
			o.Def.users[instr] = true
		}
	}
	return instr
}

// ID is a stable identity for printing and CSE bookkeeping (the "%addr"
// of §6.3's textual form).
func (i *Instruction) ID() int { return i.id }

// ResultType is the IR type this instruction's result carries (TypeVoid
// for instructions with no result, e.g. STORE/BR/JMP/RET).
func (i *Instruction) ResultType() Type { return i.resultType }

// Users returns the instructions that reference this instruction's
// result as an operand.
func (i *Instruction) Users() []*Instruction {
	out := make([]*Instruction, 0, len(i.users))
	for u := range i.users {
		out = append(out, u)
	}
	return out
}

// HasUsers reports whether any instruction references this one's result.
func (i *Instruction) HasUsers() bool { return len(i.users) > 0 }

// SetOperands replaces the operand list wholesale, updating the users
// sets of both the operands removed and the operands added.
func (i *Instruction) SetOperands(operands ...Operand) {
	for _, old := range i.Operand {
		if old.Kind == OperandInstruction && old.Def != nil {
			delete(old.Def.users, i)
		}
	}
	i.Operand = operands
	for _, o := range operands {
		if o.Kind == OperandInstruction && o.Def != nil {
			o.Def.users[i] = true
		}
	}
}

// ReplaceAllUsesWith retargets every instruction that uses this
// instruction's result to use newOperand instead, then clears this
// instruction's own user set (it is no longer used by anyone). It does
// not remove the instruction itself from its block; callers that also
// want to delete it should do so via BasicBlock.Remove.
func (i *Instruction) ReplaceAllUsesWith(newOperand Operand) {
	for user := range i.users {
		for idx, operand := range user.Operand {
			if operand.Kind == OperandInstruction && operand.Def == i {
				user.Operand[idx] = newOperand
				if newOperand.Kind == OperandInstruction && newOperand.Def != nil {
					newOperand.Def.users[user] = true
				}
			}
		}
	}
	i.users = make(map[*Instruction]bool)
}

// unlinkOperands removes this instruction from the user sets of every
// instruction it references; called when the instruction is deleted.
func (i *Instruction) unlinkOperands() {
	for _, o := range i.Operand {
		if o.Kind == OperandInstruction && o.Def != nil {
			delete(o.Def.users, i)
		}
	}
}
