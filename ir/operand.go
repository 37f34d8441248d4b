package ir

// OperandKind discriminates the four operand shapes (§3.4).
type OperandKind int

const (
	OperandConstant OperandKind = iota
	OperandVariable
	OperandLabel
	OperandInstruction
)

// Operand is one use site: a constant, a named variable, a block label,
// or a reference to another instruction's result.
type Operand struct {
	Kind OperandKind
	Typ  Type

	// OperandConstant payload: exactly one of these is meaningful,
	// selected by Typ.
	BoolConst   bool
	IntConst    int64
	FloatConst  float64
	StringConst string

	// OperandVariable payload.
	VarName string

	// OperandLabel payload: the target block, referenced by identity.
	Label *BasicBlock

	// OperandInstruction payload: the defining instruction.
	Def *Instruction
}

// ConstBool builds a boolean constant operand.
func ConstBool(v bool) Operand { return Operand{Kind: OperandConstant, Typ: TypeBool, BoolConst: v} }

// ConstInt builds a 64-bit integer constant operand.
func ConstInt(v int64) Operand { return Operand{Kind: OperandConstant, Typ: TypeInt, IntConst: v} }

// ConstFloat builds a 64-bit float constant operand.
func ConstFloat(v float64) Operand {
	return Operand{Kind: OperandConstant, Typ: TypeFloat, FloatConst: v}
}

// ConstString builds a string constant operand.
func ConstString(v string) Operand {
	return Operand{Kind: OperandConstant, Typ: TypeString, StringConst: v}
}

// Var builds a variable-reference operand.
func Var(name string, t Type) Operand { return Operand{Kind: OperandVariable, Typ: t, VarName: name} }

// LabelOf builds a label operand referencing block by identity.
func LabelOf(block *BasicBlock) Operand {
	return Operand{Kind: OperandLabel, Typ: TypeVoid, Label: block}
}

// ResultOf builds an operand referencing another instruction's result.
func ResultOf(instr *Instruction) Operand {
	return Operand{Kind: OperandInstruction, Typ: instr.ResultType(), Def: instr}
}

// IsConstInt reports whether this operand is an integer constant, and
// returns its value.
func (o Operand) IsConstInt() (int64, bool) {
	if o.Kind == OperandConstant && o.Typ == TypeInt {
		return o.IntConst, true
	}
	return 0, false
}

// key returns a comparable identity for an operand: constants compare by value,
// variables by name, labels/instruction-results by pointer identity.
func (o Operand) key() interface{} {
	switch o.Kind {
	case OperandConstant:
		switch o.Typ {
		case TypeBool:
			return [2]interface{}{"b", o.BoolConst}
		case TypeInt:
			return [2]interface{}{"i", o.IntConst}
		case TypeFloat:
			return [2]interface{}{"f", o.FloatConst}
		case TypeString:
			return [2]interface{}{"s", o.StringConst}
		}
		return nil
	case OperandVariable:
		return [2]interface{}{"v", o.VarName}
	case OperandLabel:
		return [2]interface{}{"l", o.Label}
	case OperandInstruction:
		return [2]interface{}{"d", o.Def}
	}
	return nil
}
