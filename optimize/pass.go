package optimize

import "github.com/collielang/collie-sub000/ir"

// Level is an optimization level, gating which passes run (§4.7 "Pass
// manager").
type Level int

const (
	O0 Level = iota
	O1
	O2
	O3
)

// MaxIterations bounds the fixpoint loop per function (default 100,
// §4.7).
const MaxIterations = 100

type namedPass struct {
	name     string
	minLevel Level
	run      func(*ir.Function) bool
}

// passesFor builds the fixed pipeline order for one unroll factor. O1
// gates the passes that are always a net win and need no cross-block
// analysis (fold, DCE, block merge); O2 adds the passes that reason
// about a whole block or need a dominator tree (CSE, LICM); O3 adds the
// loop transforms that grow code size or restructure the CFG (unroll,
// strength reduction). This tiering is this implementation's own choice
// — level-gating by pass is left open (§9 Open Questions), without
// pinning which pass belongs to which level.
func passesFor(unrollFactor int) []namedPass {
	return []namedPass{
		{"constant-fold", O1, ConstantFold},
		{"dce", O1, DeadCodeElimination},
		{"block-merge", O1, BlockMerge},
		{"cse", O2, CSE},
		{"licm", O2, LICM},
		{"loop-unroll", O3, func(fn *ir.Function) bool { return loopUnrollWithFactor(fn, unrollFactor) }},
		{"strength-reduction", O3, StrengthReduction},
	}
}

// RunOptimizations runs every pass selected by level, using
// DefaultUnrollFactor, against every function of mod until a full
// iteration makes no further change (or MaxIterations is reached), and
// reports whether anything changed.
func RunOptimizations(mod *ir.Module, level Level) bool {
	return RunOptimizationsWithUnrollFactor(mod, level, DefaultUnrollFactor)
}

// RunOptimizationsWithUnrollFactor is RunOptimizations with an explicit
// loop-unroll factor, for callers (e.g. compiler.Options.UnrollFactor)
// that need to override the default.
func RunOptimizationsWithUnrollFactor(mod *ir.Module, level Level, unrollFactor int) bool {
	if unrollFactor <= 0 {
		unrollFactor = DefaultUnrollFactor
	}
	passes := passesFor(unrollFactor)
	anyChanged := false
	for _, fn := range mod.Functions {
		if runFunction(fn, level, passes) {
			anyChanged = true
		}
	}
	return anyChanged
}

func runFunction(fn *ir.Function, level Level, passes []namedPass) bool {
	anyChanged := false
	for iter := 0; iter < MaxIterations; iter++ {
		iterChanged := false
		for _, p := range passes {
			if p.minLevel > level {
				continue
			}
			if p.run(fn) {
				iterChanged = true
			}
		}
		if !iterChanged {
			break
		}
		anyChanged = true
	}
	return anyChanged
}
