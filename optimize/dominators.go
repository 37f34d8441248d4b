// Package optimize implements the pass manager and the optimization
// passes of §4.7: constant folding, dead-code elimination, block
// merging, common-subexpression elimination, loop identification,
// loop-invariant code motion, loop unrolling, and strength reduction.
// The dominator computation follows wazero's own
// passCalculateImmediateDominators in internal/engine/wazevo/ssa/pass_cfg.go
// — the same iterative Cooper-Harvey-Kennedy algorithm over a reverse
// postorder block numbering.
package optimize

import "github.com/collielang/collie-sub000/ir"

// computeDominators returns each block's immediate dominator. The
// entry block dominates itself.
func computeDominators(fn *ir.Function) map[*ir.BasicBlock]*ir.BasicBlock {
	entry := fn.EntryBlock()
	if entry == nil {
		return nil
	}
	post := postorder(entry)
	postIndex := make(map[*ir.BasicBlock]int, len(post))
	for i, b := range post {
		postIndex[b] = i
	}
	rpo := make([]*ir.BasicBlock, len(post))
	for i, b := range post {
		rpo[len(post)-1-i] = b
	}

	idom := map[*ir.BasicBlock]*ir.BasicBlock{entry: entry}
	changed := true
	for changed {
		changed = false
		for _, b := range rpo {
			if b == entry {
				continue
			}
			var newIdom *ir.BasicBlock
			for _, p := range b.Predecessors() {
				if idom[p] == nil {
					continue
				}
				if newIdom == nil {
					newIdom = p
					continue
				}
				newIdom = intersect(idom, postIndex, newIdom, p)
			}
			if newIdom != nil && idom[b] != newIdom {
				idom[b] = newIdom
				changed = true
			}
		}
	}
	return idom
}

func intersect(idom map[*ir.BasicBlock]*ir.BasicBlock, postIndex map[*ir.BasicBlock]int, a, b *ir.BasicBlock) *ir.BasicBlock {
	for a != b {
		for postIndex[a] < postIndex[b] {
			a = idom[a]
		}
		for postIndex[b] < postIndex[a] {
			b = idom[b]
		}
	}
	return a
}

func postorder(entry *ir.BasicBlock) []*ir.BasicBlock {
	visited := map[*ir.BasicBlock]bool{}
	var order []*ir.BasicBlock
	var visit func(b *ir.BasicBlock)
	visit = func(b *ir.BasicBlock) {
		if visited[b] {
			return
		}
		visited[b] = true
		for _, s := range b.Successors() {
			visit(s)
		}
		order = append(order, b)
	}
	visit(entry)
	return order
}

// dominates reports whether a dominates b under idom (reflexively: a
// dominates itself).
func dominates(idom map[*ir.BasicBlock]*ir.BasicBlock, a, b *ir.BasicBlock) bool {
	for cur := b; ; {
		if cur == a {
			return true
		}
		next := idom[cur]
		if next == nil || next == cur {
			return cur == a
		}
		cur = next
	}
}
