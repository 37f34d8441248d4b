package ir

// Module is the top-level IR unit: a set of functions. String/constant
// pool sharing across functions is future work, not required by the
// core (§3.4).
type Module struct {
	Functions []*Function
}

// NewModule constructs an empty module.
func NewModule() *Module { return &Module{} }

// AddFunction appends fn to the module.
func (m *Module) AddFunction(fn *Function) { m.Functions = append(m.Functions, fn) }

// Validate checks every function's structural invariants.
func (m *Module) Validate() error {
	for _, fn := range m.Functions {
		if err := fn.Validate(); err != nil {
			return err
		}
	}
	return nil
}
