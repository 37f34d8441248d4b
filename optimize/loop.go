package optimize

import "github.com/collielang/collie-sub000/ir"

// Loop is a natural loop: a header reached by a back edge from a latch,
// plus every block from which the header is reachable without leaving
// the header's dominated region (§4.7 "Loop identification").
type Loop struct {
	Header *ir.BasicBlock
	Latch  *ir.BasicBlock
	Blocks map[*ir.BasicBlock]bool
}

// findLoops discovers every natural loop in fn: a block H is a loop
// header iff some predecessor P is dominated by H (the edge P->H is a
// back edge).
func findLoops(fn *ir.Function) []*Loop {
	idom := computeDominators(fn)
	if idom == nil {
		return nil
	}
	var loops []*Loop
	for _, latch := range fn.Blocks {
		for _, header := range latch.Successors() {
			if !dominates(idom, header, latch) {
				continue
			}
			blocks := map[*ir.BasicBlock]bool{header: true}
			collectLoopBody(idom, header, latch, blocks)
			loops = append(loops, &Loop{Header: header, Latch: latch, Blocks: blocks})
		}
	}
	return loops
}

// collectLoopBody walks backward from latch toward header, adding every
// block dominated by header along the way.
func collectLoopBody(idom map[*ir.BasicBlock]*ir.BasicBlock, header, latch *ir.BasicBlock, blocks map[*ir.BasicBlock]bool) {
	stack := []*ir.BasicBlock{latch}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if blocks[b] {
			continue
		}
		if !dominates(idom, header, b) {
			continue
		}
		blocks[b] = true
		for _, p := range b.Predecessors() {
			if !blocks[p] {
				stack = append(stack, p)
			}
		}
	}
}
