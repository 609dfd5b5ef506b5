package ir

import (
	"fmt"

	"github.com/minic-lang/minic/internal/ast"
	"github.com/minic-lang/minic/internal/errors"
	"github.com/minic-lang/minic/internal/lexer"
	"github.com/minic-lang/minic/internal/types"
)

// loopTarget is the innermost-continue/innermost-break pair consulted
// by break/continue lowering (spec §4.3, §9 REDESIGN FLAGS: an explicit
// stack rather than a single save/restore pair, so arbitrarily nested
// loops each keep their own targets).
type loopTarget struct {
	continueBlock Block
	breakBlock    Block
}

// Lowerer walks a typed *ast.Program and drives a Builder to construct
// an IR module. It owns exactly the mutable state spec §5 names: the
// builder's insertion cursor (via the Builder itself), globals,
// localvars, arguments, and the loop-target stack.
type Lowerer struct {
	b Builder

	funcs   map[string]Func  // module-level function name table
	globals map[string]Value // global variable slots

	localvars map[string]Value // current function's local variable slots
	arguments map[string]Value // current function's parameter values

	curFunc     Func
	returnType  types.Type
	returnValue Value // nil when the current function is void
	returnBlock Block

	loopStack []loopTarget

	stringCounter int
}

// NewLowerer creates a Lowerer driving b.
func NewLowerer(b Builder) *Lowerer {
	return &Lowerer{b: b, funcs: map[string]Func{}, globals: map[string]Value{}}
}

func lowerErrorf(line int, format string, args ...any) error {
	return errors.NewCompilerError(line, "", fmt.Sprintf(format, args...))
}

// LowerProgram lowers every top-level declaration into moduleName.
func (lw *Lowerer) LowerProgram(prog *ast.Program, moduleName string) error {
	lw.b.NewModule(moduleName)
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.FuncDecl:
			if err := lw.lowerFuncDecl(decl); err != nil {
				return err
			}
		case *ast.VarDecl:
			if err := lw.lowerGlobalVarDecl(decl); err != nil {
				return err
			}
		default:
			return lowerErrorf(d.Line(), "unreachable: unexpected top-level declaration shape")
		}
	}
	return nil
}

func (lw *Lowerer) irType(t types.Type) Type {
	if named, ok := t.(types.Named); ok {
		return lw.b.ResolveType(named.Name)
	}
	// IndexedPointer, ReferencePointer, FunctionReference all collapse to
	// the single opaque pointer type (spec §9 "Opaque pointer lowering").
	return lw.b.ResolveType("ptr")
}

func (lw *Lowerer) funcIRSignature(f *ast.FuncDecl) ([]Type, Type) {
	params := make([]Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = lw.irType(p.Type)
	}
	return params, lw.irType(f.ReturnType)
}

// lowerFuncDecl implements the seven-step per-function algorithm of
// spec §4.3.
func (lw *Lowerer) lowerFuncDecl(f *ast.FuncDecl) error {
	paramTypes, retType := lw.funcIRSignature(f)
	fn := lw.b.DeclareFunction(f.Name, paramTypes, retType)
	lw.funcs[f.Name] = fn

	if f.Body == nil {
		return nil // external declaration: no entry block
	}

	lw.curFunc = fn
	lw.returnType = f.ReturnType
	lw.localvars = map[string]Value{}
	lw.arguments = map[string]Value{}
	lw.loopStack = nil

	entry := lw.b.AppendBlock(fn, "entry")
	lw.returnBlock = lw.b.AppendBlock(fn, "return")
	lw.b.SetInsertPoint(entry)

	isVoid := types.Equal(f.ReturnType, types.Void)
	if !isVoid {
		lw.returnValue = lw.b.Alloca(retType, 1, "retval")
	} else {
		lw.returnValue = nil
	}

	for i, p := range f.Params {
		lw.arguments[p.Name] = fn.Param(i)
	}

	if err := lw.lowerBlock(f.Body); err != nil {
		return err
	}
	lw.b.Br(lw.returnBlock)

	lw.b.SetInsertPoint(lw.returnBlock)
	if isVoid {
		lw.b.RetVoid()
	} else {
		lw.b.Ret(lw.b.Load(retType, lw.returnValue, "retval.load"))
	}

	lw.curFunc = nil
	lw.localvars = nil
	lw.arguments = nil
	lw.returnValue = nil
	return nil
}

// lowerGlobalVarDecl handles a VarDecl at top level. A non-constant
// initializer is rejected (spec §9 Open Question, fixed in
// SPEC_FULL.md §6: global initializers must be lowerable without a
// function context).
func (lw *Lowerer) lowerGlobalVarDecl(v *ast.VarDecl) error {
	t := lw.irType(v.Type)
	var init Value
	if v.Init != nil {
		lit, ok := v.Init.(*ast.Literal)
		if !ok {
			return lowerErrorf(v.Line(), "global variable %q initializer must be a constant literal", v.Name)
		}
		val, err := lw.lowerLiteralConst(lit, v.Type)
		if err != nil {
			return err
		}
		init = val
	}
	slot := lw.b.GlobalVar(t, v.Name, init)
	lw.globals[v.Name] = slot
	return nil
}

// lowerBlock lowers a statement list in order (spec §4.3 "Block").
func (lw *Lowerer) lowerBlock(blk *ast.Block) error {
	for _, s := range blk.Stmts {
		if err := lw.lowerStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (lw *Lowerer) lowerStmt(s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.Block:
		return lw.lowerBlock(st)
	case *ast.ExprStmt:
		_, err := lw.lowerExpr(st.X)
		return err
	case *ast.VarDecl:
		return lw.lowerLocalVarDecl(st)
	case *ast.Return:
		return lw.lowerReturn(st)
	case *ast.If:
		return lw.lowerIf(st)
	case *ast.While:
		return lw.lowerWhile(st)
	case *ast.For:
		return lw.lowerFor(st)
	case *ast.Break:
		return lw.lowerBreak(st)
	case *ast.Continue:
		return lw.lowerContinue(st)
	default:
		return lowerErrorf(s.Line(), "unreachable: unhandled statement shape in lowering")
	}
}

func (lw *Lowerer) lowerLocalVarDecl(v *ast.VarDecl) error {
	t := lw.irType(v.Type)
	slot := lw.b.Alloca(t, 1, v.Name)
	lw.localvars[v.Name] = slot
	if v.Init != nil {
		val, err := lw.lowerExprInto(v.Init, v.Type)
		if err != nil {
			return err
		}
		lw.b.Store(val, slot)
	}
	return nil
}

func (lw *Lowerer) lowerReturn(r *ast.Return) error {
	if r.Value != nil {
		val, err := lw.lowerExprInto(r.Value, lw.returnType)
		if err != nil {
			return err
		}
		lw.b.Store(val, lw.returnValue)
	}
	lw.b.Br(lw.returnBlock)
	// Dead-block trick (spec §9): open a fresh unreachable block so any
	// statements that textually follow this return can still be lowered.
	lw.b.SetInsertPoint(lw.b.AppendBlock(lw.curFunc, "dead"))
	return nil
}

func (lw *Lowerer) lowerIf(n *ast.If) error {
	cond, err := lw.lowerExpr(n.Cond)
	if err != nil {
		return err
	}
	thenB := lw.b.AppendBlock(lw.curFunc, "if.then")
	exitB := lw.b.AppendBlock(lw.curFunc, "if.exit")
	elseB := exitB
	if n.Else != nil {
		elseB = lw.b.AppendBlock(lw.curFunc, "if.else")
	}
	lw.b.CondBr(cond, thenB, elseB)

	lw.b.SetInsertPoint(thenB)
	if err := lw.lowerBlock(n.Then); err != nil {
		return err
	}
	lw.b.Br(exitB)

	if n.Else != nil {
		lw.b.SetInsertPoint(elseB)
		if err := lw.lowerBlock(n.Else); err != nil {
			return err
		}
		lw.b.Br(exitB)
	}

	lw.b.SetInsertPoint(exitB)
	return nil
}

func (lw *Lowerer) lowerWhile(n *ast.While) error {
	condB := lw.b.AppendBlock(lw.curFunc, "while.cond")
	bodyB := lw.b.AppendBlock(lw.curFunc, "while.body")
	exitB := lw.b.AppendBlock(lw.curFunc, "while.exit")

	lw.b.Br(condB)

	lw.b.SetInsertPoint(condB)
	cond, err := lw.lowerExpr(n.Cond)
	if err != nil {
		return err
	}
	lw.b.CondBr(cond, bodyB, exitB)

	lw.loopStack = append(lw.loopStack, loopTarget{continueBlock: condB, breakBlock: exitB})
	lw.b.SetInsertPoint(bodyB)
	if err := lw.lowerBlock(n.Body); err != nil {
		lw.loopStack = lw.loopStack[:len(lw.loopStack)-1]
		return err
	}
	lw.b.Br(condB)
	lw.loopStack = lw.loopStack[:len(lw.loopStack)-1]

	lw.b.SetInsertPoint(exitB)
	return nil
}

func (lw *Lowerer) lowerFor(n *ast.For) error {
	if n.Init != nil {
		if err := lw.lowerStmt(n.Init); err != nil {
			return err
		}
	}

	condB := lw.b.AppendBlock(lw.curFunc, "for.cond")
	bodyB := lw.b.AppendBlock(lw.curFunc, "for.body")
	exitB := lw.b.AppendBlock(lw.curFunc, "for.exit")

	lw.b.Br(condB)

	lw.b.SetInsertPoint(condB)
	if n.Cond != nil {
		cond, err := lw.lowerExpr(n.Cond)
		if err != nil {
			return err
		}
		lw.b.CondBr(cond, bodyB, exitB)
	} else {
		lw.b.Br(bodyB)
	}

	lw.loopStack = append(lw.loopStack, loopTarget{continueBlock: condB, breakBlock: exitB})
	lw.b.SetInsertPoint(bodyB)
	if err := lw.lowerBlock(n.Body); err != nil {
		lw.loopStack = lw.loopStack[:len(lw.loopStack)-1]
		return err
	}
	if n.Incr != nil {
		if _, err := lw.lowerExpr(n.Incr); err != nil {
			lw.loopStack = lw.loopStack[:len(lw.loopStack)-1]
			return err
		}
	}
	lw.b.Br(condB)
	lw.loopStack = lw.loopStack[:len(lw.loopStack)-1]

	lw.b.SetInsertPoint(exitB)
	return nil
}

func (lw *Lowerer) currentLoop(line int) (loopTarget, error) {
	if len(lw.loopStack) == 0 {
		// Parsing already rejects break/continue outside a loop (spec
		// §4.2, testable property 5); reaching this means the lowering
		// pass is being driven over an AST that did not go through the
		// parser's placement checks.
		return loopTarget{}, lowerErrorf(line, "unreachable: break/continue with no enclosing loop")
	}
	return lw.loopStack[len(lw.loopStack)-1], nil
}

func (lw *Lowerer) lowerBreak(br *ast.Break) error {
	lt, err := lw.currentLoop(br.Line())
	if err != nil {
		return err
	}
	lw.b.Br(lt.breakBlock)
	lw.b.SetInsertPoint(lw.b.AppendBlock(lw.curFunc, "dead"))
	return nil
}

func (lw *Lowerer) lowerContinue(c *ast.Continue) error {
	lt, err := lw.currentLoop(c.Line())
	if err != nil {
		return err
	}
	lw.b.Br(lt.continueBlock)
	lw.b.SetInsertPoint(lw.b.AppendBlock(lw.curFunc, "dead"))
	return nil
}

// lowerExprInto lowers e, widening an integer-literal constant to
// target's IR type on demand (SPEC_FULL.md §6: the one widening rule
// the open question calls for; general implicit conversions remain a
// non-goal).
func (lw *Lowerer) lowerExprInto(e ast.Expr, target types.Type) (Value, error) {
	if lit, ok := e.(*ast.Literal); ok && lit.Token.Kind == lexer.INT {
		return lw.lowerLiteralConst(lit, target)
	}
	return lw.lowerExpr(e)
}

func (lw *Lowerer) lowerLiteralConst(lit *ast.Literal, target types.Type) (Value, error) {
	switch lit.Token.Kind {
	case lexer.INT:
		return lw.b.ConstInt(lw.irType(target), int64(lit.Token.IntValue)), nil
	case lexer.FLOAT:
		return lw.b.ConstFloat(lw.irType(target), lit.Token.FloatValue), nil
	case lexer.BOOL:
		return lw.b.ConstBool(lit.Token.BoolValue), nil
	case lexer.STRING:
		lw.stringCounter++
		return lw.b.GlobalString(fmt.Sprintf("str.%d", lw.stringCounter), lit.Token.StringValue), nil
	default:
		return nil, lowerErrorf(lit.Line(), "unreachable: literal token of unknown kind")
	}
}

// lowerExpr lowers e as an rvalue and returns its IR value.
func (lw *Lowerer) lowerExpr(e ast.Expr) (Value, error) {
	switch ex := e.(type) {
	case *ast.Literal:
		return lw.lowerLiteralConst(ex, ex.Type())
	case *ast.Identifier:
		return lw.lowerIdentRValue(ex)
	case *ast.Group:
		return lw.lowerExpr(ex.Inner)
	case *ast.Unary:
		return lw.lowerUnary(ex)
	case *ast.Binary:
		return lw.lowerBinary(ex)
	case *ast.Assign:
		return lw.lowerAssign(ex)
	case *ast.Call:
		return lw.lowerCall(ex)
	default:
		return nil, lowerErrorf(e.Line(), "unreachable: unhandled expression shape in lowering")
	}
}

// lowerIdentRValue implements the lookup order from spec §4.3:
// localvars, then globals, then arguments.
func (lw *Lowerer) lowerIdentRValue(id *ast.Identifier) (Value, error) {
	if slot, ok := lw.localvars[id.Name]; ok {
		return lw.b.Load(lw.irType(id.Type()), slot, id.Name+".load"), nil
	}
	if slot, ok := lw.globals[id.Name]; ok {
		return lw.b.Load(lw.irType(id.Type()), slot, id.Name+".load"), nil
	}
	if v, ok := lw.arguments[id.Name]; ok {
		return v, nil
	}
	return nil, lowerErrorf(id.Line(), "unreachable: identifier %q unresolved at lowering", id.Name)
}

// lowerIdentLValue returns the slot address for id. Arguments are not
// assignable (spec §4.3).
func (lw *Lowerer) lowerIdentLValue(id *ast.Identifier) (Value, error) {
	if slot, ok := lw.localvars[id.Name]; ok {
		return slot, nil
	}
	if slot, ok := lw.globals[id.Name]; ok {
		return slot, nil
	}
	if _, ok := lw.arguments[id.Name]; ok {
		return nil, lowerErrorf(id.Line(), "cannot assign to parameter %q", id.Name)
	}
	return nil, lowerErrorf(id.Line(), "unreachable: identifier %q unresolved at lowering", id.Name)
}

func (lw *Lowerer) lowerUnary(u *ast.Unary) (Value, error) {
	sub, err := lw.lowerExpr(u.Sub)
	if err != nil {
		return nil, err
	}
	subType := u.Sub.Type()
	switch u.Op {
	case lexer.MINUS:
		t := lw.irType(subType)
		switch {
		case subType.IsFloatTy():
			return lw.b.Sub(lw.b.ConstFloat(t, 0), sub, "neg"), nil
		case subType.IsIntegerTy():
			return lw.b.Sub(lw.b.ConstInt(t, 0), sub, "neg"), nil
		default:
			return nil, lowerErrorf(u.Line(), "cannot negate a pointer value")
		}
	case lexer.NOT:
		return lw.b.Not(sub, "not"), nil
	default:
		return nil, lowerErrorf(u.Line(), "unreachable: unary operator token %s", u.Op)
	}
}

func (lw *Lowerer) lowerBinary(bin *ast.Binary) (Value, error) {
	lhsType := bin.Lhs.Type()

	switch bin.Op {
	case lexer.AND:
		lhs, err := lw.lowerExpr(bin.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := lw.lowerExpr(bin.Rhs)
		if err != nil {
			return nil, err
		}
		return lw.b.And(lhs, rhs, "and"), nil
	case lexer.OR:
		lhs, err := lw.lowerExpr(bin.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := lw.lowerExpr(bin.Rhs)
		if err != nil {
			return nil, err
		}
		return lw.b.Or(lhs, rhs, "or"), nil
	}

	lhs, err := lw.lowerExpr(bin.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := lw.lowerExpr(bin.Rhs)
	if err != nil {
		return nil, err
	}

	float := lhsType.IsFloatTy()
	signed := lhsType.IsSigned()

	switch bin.Op {
	case lexer.PLUS:
		return lw.b.Add(lhs, rhs, "add"), nil
	case lexer.MINUS:
		return lw.b.Sub(lhs, rhs, "sub"), nil
	case lexer.STAR:
		return lw.b.Mul(lhs, rhs, "mul"), nil
	case lexer.SLASH:
		if float {
			return lw.b.FDiv(lhs, rhs, "div"), nil
		}
		if signed {
			return lw.b.SDiv(lhs, rhs, "div"), nil
		}
		return lw.b.UDiv(lhs, rhs, "div"), nil
	case lexer.PERCENT:
		if float {
			return lw.b.FRem(lhs, rhs, "rem"), nil
		}
		if signed {
			return lw.b.SRem(lhs, rhs, "rem"), nil
		}
		return lw.b.URem(lhs, rhs, "rem"), nil
	case lexer.EQ:
		return lw.cmpOp(float, signed, lhs, rhs, IEQ, IEQ, FOEQ)
	case lexer.NE:
		return lw.cmpOp(float, signed, lhs, rhs, INE, INE, FONE)
	case lexer.LT:
		return lw.cmpOp(float, signed, lhs, rhs, ISLT, IULT, FOLT)
	case lexer.GT:
		return lw.cmpOp(float, signed, lhs, rhs, ISGT, IUGT, FOGT)
	case lexer.LE:
		return lw.cmpOp(float, signed, lhs, rhs, ISLE, IULE, FOLE)
	case lexer.GE:
		return lw.cmpOp(float, signed, lhs, rhs, ISGE, IUGE, FOGE)
	default:
		return nil, lowerErrorf(bin.Line(), "unreachable: binary operator token %s", bin.Op)
	}
}

// cmpOp picks the integer-signed, integer-unsigned, or float predicate
// for a comparison, per spec §4.3's "choose integer (signed vs
// unsigned per isSigned()) vs float ordered predicates" rule.
func (lw *Lowerer) cmpOp(float, signed bool, lhs, rhs Value, signedPred, unsignedPred IntPredicate, floatPred FloatPredicate) (Value, error) {
	if float {
		return lw.b.FCmp(floatPred, lhs, rhs, "cmp"), nil
	}
	if signed {
		return lw.b.ICmp(signedPred, lhs, rhs, "cmp"), nil
	}
	return lw.b.ICmp(unsignedPred, lhs, rhs, "cmp"), nil
}

func (lw *Lowerer) lowerAssign(a *ast.Assign) (Value, error) {
	rhs, err := lw.lowerExprInto(a.Value, a.Target.Type())
	if err != nil {
		return nil, err
	}
	ptr, err := lw.lowerIdentLValue(a.Target)
	if err != nil {
		return nil, err
	}
	lw.b.Store(rhs, ptr)
	return rhs, nil
}

func (lw *Lowerer) lowerCall(c *ast.Call) (Value, error) {
	callee, ok := c.Callee.(*ast.Identifier)
	if !ok {
		// The abstract Builder interface only exposes a typed call
		// against a declared Func, not an indirect call through a
		// function-pointer Value; calling through a non-identifier
		// expression is out of scope for this backend (see DESIGN.md).
		return nil, lowerErrorf(c.Line(), "cannot lower an indirect call through a non-identifier callee")
	}
	// Only names of declared functions can be called; a parameter or
	// variable of function-reference type is rejected here.
	fn, ok := lw.funcs[callee.Name]
	if !ok {
		return nil, lowerErrorf(c.Line(), "cannot lower a call to %q: it does not name a declared function", callee.Name)
	}
	args := make([]Value, len(c.Args))
	for i, a := range c.Args {
		v, err := lw.lowerExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return lw.b.Call(fn, args, "call"), nil
}
