package ir

// Function is an ordered list of basic blocks that it owns; the first
// block is the function's entry block (§3.4).
type Function struct {
	Name   string
	Blocks []*BasicBlock

	nextBlockID int
	nextInstrID int
}

// NewFunction constructs an empty function.
func NewFunction(name string) *Function {
	return &Function{Name: name}
}

// NewBlock appends a fresh, empty block owned by this function and
// returns it.
func (f *Function) NewBlock() *BasicBlock {
	b := &BasicBlock{id: f.nextBlockID, Function: f}
	f.nextBlockID++
	f.Blocks = append(f.Blocks, b)
	return b
}

// InsertBlockBefore inserts a fresh block immediately before the block
// at index idx and returns it (used by LICM to synthesize a loop
// pre-header).
func (f *Function) InsertBlockBefore(idx int) *BasicBlock {
	b := &BasicBlock{id: f.nextBlockID, Function: f}
	f.nextBlockID++
	f.Blocks = append(f.Blocks, nil)
	copy(f.Blocks[idx+1:], f.Blocks[idx:])
	f.Blocks[idx] = b
	return b
}

// IndexOfBlock returns the position of b in Blocks, or -1.
func (f *Function) IndexOfBlock(b *BasicBlock) int {
	for idx, candidate := range f.Blocks {
		if candidate == b {
			return idx
		}
	}
	return -1
}

// RemoveBlock deletes b from the function's block list.
func (f *Function) RemoveBlock(b *BasicBlock) {
	idx := f.IndexOfBlock(b)
	if idx < 0 {
		return
	}
	f.Blocks = append(f.Blocks[:idx], f.Blocks[idx+1:]...)
}

// EntryBlock returns the function's first block, or nil if it has none
// yet.
func (f *Function) EntryBlock() *BasicBlock {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// Emit appends a new instruction with a fresh, function-unique ID to the
// tail of block and returns it. This is the sole instruction
// constructor: every pass and every lowering rule goes through it (or
// through the equivalent EmitAt) so instruction identity (and therefore
// the user-set bookkeeping in Instruction) stays consistent.
func (f *Function) Emit(block *BasicBlock, op Opcode, resultType Type, operands ...Operand) *Instruction {
	instr := newInstruction(f.nextInstrID, op, resultType, operands...)
	f.nextInstrID++
	block.Append(instr)
	return instr
}

// EmitAt constructs a new instruction like Emit, but inserts it at
// position idx in block rather than appending it.
func (f *Function) EmitAt(block *BasicBlock, idx int, op Opcode, resultType Type, operands ...Operand) *Instruction {
	instr := newInstruction(f.nextInstrID, op, resultType, operands...)
	f.nextInstrID++
	block.InsertBefore(idx, instr)
	return instr
}

// Validate checks the §3.4 structural invariants: every non-empty block
// ends with a terminator, BR/JMP operand-count and kind shape, and every
// label in a terminator belongs to this function.
func (f *Function) Validate() error {
	blockSet := make(map[*BasicBlock]bool, len(f.Blocks))
	for _, b := range f.Blocks {
		blockSet[b] = true
	}
	for _, b := range f.Blocks {
		if len(b.Instructions) == 0 {
			continue
		}
		term := b.Terminator()
		if term == nil {
			return &Error{Message: "block " + b.Name() + " has no terminator"}
		}
		switch term.Opcode {
		case OpBr:
			if len(term.Operand) != 3 {
				return &Error{Message: "BR must have exactly 3 operands"}
			}
		case OpJmp:
			if len(term.Operand) != 1 {
				return &Error{Message: "JMP must have exactly 1 operand"}
			}
		}
		for _, o := range term.Operand {
			if o.Kind == OperandLabel && !blockSet[o.Label] {
				return &Error{Message: "terminator references a label outside this function"}
			}
		}
	}
	return nil
}
