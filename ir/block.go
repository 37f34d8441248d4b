package ir

import "fmt"

// BasicBlock is an ordered, straight-line instruction sequence ending in
// at most one terminator, which (if present) must be its last
// instruction (§3.4 invariant).
type BasicBlock struct {
	id           int
	Function     *Function
	Instructions []*Instruction
}

// Name returns the block's unique textual label, e.g. "block0".
func (b *BasicBlock) Name() string { return fmt.Sprintf("block%d", b.id) }

// ID returns the block's unique numeric identity.
func (b *BasicBlock) ID() int { return b.id }

// Terminator returns the block's terminating instruction, or nil if the
// block is still empty (under construction).
func (b *BasicBlock) Terminator() *Instruction {
	if len(b.Instructions) == 0 {
		return nil
	}
	last := b.Instructions[len(b.Instructions)-1]
	if last.Opcode.IsTerminator() {
		return last
	}
	return nil
}

// Append adds instr to the tail of the block.
func (b *BasicBlock) Append(instr *Instruction) {
	instr.Block = b
	b.Instructions = append(b.Instructions, instr)
}

// InsertBefore inserts instr immediately before the instruction at
// index idx (used by LICM to place hoisted instructions before a
// pre-header's terminator).
func (b *BasicBlock) InsertBefore(idx int, instr *Instruction) {
	instr.Block = b
	b.Instructions = append(b.Instructions, nil)
	copy(b.Instructions[idx+1:], b.Instructions[idx:])
	b.Instructions[idx] = instr
}

// IndexOf returns the position of instr in the block, or -1.
func (b *BasicBlock) IndexOf(instr *Instruction) int {
	for idx, candidate := range b.Instructions {
		if candidate == instr {
			return idx
		}
	}
	return -1
}

// Remove deletes instr from the block and unlinks it from the user sets
// of every instruction it referenced.
func (b *BasicBlock) Remove(instr *Instruction) {
	idx := b.IndexOf(instr)
	if idx < 0 {
		return
	}
	instr.unlinkOperands()
	b.Instructions = append(b.Instructions[:idx], b.Instructions[idx+1:]...)
}

// Successors returns the blocks this block's terminator can transfer
// control to, derived from the terminator's label operands (§3.4: "CFG
// is a derived view").
func (b *BasicBlock) Successors() []*BasicBlock {
	term := b.Terminator()
	if term == nil {
		return nil
	}
	var out []*BasicBlock
	for _, o := range term.Operand {
		if o.Kind == OperandLabel && o.Label != nil {
			out = append(out, o.Label)
		}
	}
	return out
}

// Predecessors returns every block in the parent function whose
// terminator targets this block, derived by scanning the function
// (§3.4: predecessors are a derived/back-index view, never an ownership
// edge; computing them on demand rather than maintaining a mutable
// back-pointer field keeps every optimization pass from having to
// remember to patch it).
func (b *BasicBlock) Predecessors() []*BasicBlock {
	var out []*BasicBlock
	if b.Function == nil {
		return out
	}
	for _, candidate := range b.Function.Blocks {
		for _, succ := range candidate.Successors() {
			if succ == b {
				out = append(out, candidate)
				break
			}
		}
	}
	return out
}
