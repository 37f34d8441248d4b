package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders m in the §6.3 advisory textual form: instructions as
// "%addr = op operand, operand, …", constants as their value (strings
// quoted), variables as "%name", label operands as the target block's
// name, blocks as "name:" followed by indented instructions, functions
// as "function name { … }".
func Print(m *Module) string {
	var sb strings.Builder
	for _, fn := range m.Functions {
		PrintFunction(&sb, fn)
	}
	return sb.String()
}

func PrintFunction(sb *strings.Builder, fn *Function) {
	fmt.Fprintf(sb, "function %s {\n", fn.Name)
	for _, b := range fn.Blocks {
		fmt.Fprintf(sb, "%s:\n", b.Name())
		for _, instr := range b.Instructions {
			sb.WriteString("    ")
			sb.WriteString(FormatInstruction(instr))
			sb.WriteString("\n")
		}
	}
	sb.WriteString("}\n")
}

// FormatInstruction renders one instruction as "%addr = op a, b, …", or
// just "op a, b, …" for instructions with no result (TypeVoid).
func FormatInstruction(instr *Instruction) string {
	parts := make([]string, len(instr.Operand))
	for i, o := range instr.Operand {
		parts[i] = FormatOperand(o)
	}
	body := instr.Opcode.String()
	if len(parts) > 0 {
		body += " " + strings.Join(parts, ", ")
	}
	if instr.resultType == TypeVoid {
		return body
	}
	return fmt.Sprintf("%%%d = %s", instr.id, body)
}

// FormatOperand renders one operand per §6.3.
func FormatOperand(o Operand) string {
	switch o.Kind {
	case OperandConstant:
		switch o.Typ {
		case TypeBool:
			return strconv.FormatBool(o.BoolConst)
		case TypeInt:
			return strconv.FormatInt(o.IntConst, 10)
		case TypeFloat:
			return strconv.FormatFloat(o.FloatConst, 'g', -1, 64)
		case TypeString:
			return strconv.Quote(o.StringConst)
		}
		return "<const>"
	case OperandVariable:
		return "%" + o.VarName
	case OperandLabel:
		if o.Label == nil {
			return "<nil-label>"
		}
		return o.Label.Name()
	case OperandInstruction:
		if o.Def == nil {
			return "<nil-def>"
		}
		return fmt.Sprintf("%%%d", o.Def.id)
	default:
		return "<?>"
	}
}
