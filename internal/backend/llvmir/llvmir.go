// Package llvmir is the concrete internal/ir.Builder implementation
// backed by the real LLVM Go bindings, tinygo.org/x/go-llvm. It is
// grounded on the vslc compiler's IR transform (llvm.NewContext,
// ctx.NewBuilder, ctx.NewModule, llvm.AddFunction/AddBasicBlock,
// b.SetInsertPointAtEnd, b.CreateAlloca/Load/Store, the arithmetic and
// comparison builders, and b.CreateGlobalStringPtr for string literal
// backing storage).
package llvmir

import (
	"fmt"

	"github.com/minic-lang/minic/internal/ir"
	"tinygo.org/x/go-llvm"
)

// llType wraps an llvm.Type so it satisfies ir.Type.
type llType struct {
	t     llvm.Type
	float bool
}

func (t llType) IsFloat() bool { return t.float }

// llValue wraps an llvm.Value so it satisfies ir.Value.
type llValue struct {
	v llvm.Value
	t ir.Type
}

func (v llValue) ValueType() ir.Type { return v.t }

// llBlock wraps an llvm.BasicBlock so it satisfies ir.Block.
type llBlock struct {
	bb llvm.BasicBlock
}

// llFunc wraps an llvm.Value (function) plus its parameter types so it
// satisfies ir.Func.
type llFunc struct {
	fn      llvm.Value
	params  []ir.Value
	retType ir.Type
}

func (f llFunc) Param(i int) ir.Value { return f.params[i] }

// Builder drives a single LLVM module via the real bindings.
type Builder struct {
	ctx llvm.Context
	bld llvm.Builder
	mod llvm.Module

	types map[string]llType

	stringSeq int
}

// New creates a Builder over a fresh LLVM context, matching the
// teacher-grounded reference's one-context-per-compilation pattern.
func New() *Builder {
	ctx := llvm.NewContext()
	return &Builder{
		ctx:   ctx,
		bld:   ctx.NewBuilder(),
		types: scalarTypes(ctx),
	}
}

// scalarTypes builds the Named-set → llvm.Type table once per context
// (spec §3's thirteen scalar names, among them "ptr", the single opaque
// pointer type).
func scalarTypes(ctx llvm.Context) map[string]llType {
	i8 := ctx.Int8Type()
	ptr := llvm.PointerType(i8, 0)
	return map[string]llType{
		"void": {t: ctx.VoidType()},
		"bool": {t: ctx.Int1Type()},
		"i8":   {t: i8},
		"i16":  {t: ctx.Int16Type()},
		"i32":  {t: ctx.Int32Type()},
		"i64":  {t: ctx.Int64Type()},
		"u8":   {t: i8},
		"u16":  {t: ctx.Int16Type()},
		"u32":  {t: ctx.Int32Type()},
		"u64":  {t: ctx.Int64Type()},
		"f32":  {t: ctx.FloatType(), float: true},
		"f64":  {t: ctx.DoubleType(), float: true},
		"ptr":  {t: ptr},
	}
}

func (b *Builder) NewModule(name string) {
	b.mod = b.ctx.NewModule(name)
}

func (b *Builder) ResolveType(name string) ir.Type {
	t, ok := b.types[name]
	if !ok {
		// Unreachable: the parser only ever produces names from
		// types.ScalarNames, which scalarTypes covers exhaustively.
		panic(fmt.Sprintf("llvmir: unknown scalar type %q", name))
	}
	return t
}

func (b *Builder) llType(t ir.Type) llvm.Type { return t.(llType).t }
func (b *Builder) llValue(v ir.Value) llvm.Value { return v.(llValue).v }
func (b *Builder) llBlock(blk ir.Block) llvm.BasicBlock { return blk.(llBlock).bb }

func (b *Builder) DeclareFunction(name string, paramTypes []ir.Type, retType ir.Type) ir.Func {
	atyp := make([]llvm.Type, len(paramTypes))
	for i, pt := range paramTypes {
		atyp[i] = b.llType(pt)
	}
	ftyp := llvm.FunctionType(b.llType(retType), atyp, false)
	fn := llvm.AddFunction(b.mod, name, ftyp)

	params := make([]ir.Value, len(paramTypes))
	for i, p := range fn.Params() {
		params[i] = llValue{v: p, t: paramTypes[i]}
	}
	return llFunc{fn: fn, params: params, retType: retType}
}

func (b *Builder) AppendBlock(fn ir.Func, label string) ir.Block {
	return llBlock{bb: llvm.AddBasicBlock(fn.(llFunc).fn, label)}
}

func (b *Builder) CurrentBlock() ir.Block {
	return llBlock{bb: b.bld.GetInsertBlock()}
}

func (b *Builder) SetInsertPoint(blk ir.Block) {
	b.bld.SetInsertPointAtEnd(b.llBlock(blk))
}

func (b *Builder) ConstInt(t ir.Type, v int64) ir.Value {
	lt := b.llType(t)
	return llValue{v: llvm.ConstInt(lt, uint64(v), true), t: t}
}

func (b *Builder) ConstFloat(t ir.Type, v float64) ir.Value {
	return llValue{v: llvm.ConstFloat(b.llType(t), v), t: t}
}

func (b *Builder) ConstBool(v bool) ir.Value {
	t := b.ResolveType("bool")
	n := uint64(0)
	if v {
		n = 1
	}
	return llValue{v: llvm.ConstInt(b.llType(t), n, false), t: t}
}

func (b *Builder) GlobalString(name, contents string) ir.Value {
	b.stringSeq++
	s := b.bld.CreateGlobalStringPtr(contents, name)
	return llValue{v: s, t: b.ResolveType("ptr")}
}

func (b *Builder) GlobalVar(t ir.Type, name string, init ir.Value) ir.Value {
	g := llvm.AddGlobal(b.mod, b.llType(t), name)
	if init != nil {
		g.SetInitializer(b.llValue(init))
	} else {
		g.SetInitializer(llvm.ConstNull(b.llType(t)))
	}
	return llValue{v: g, t: b.ResolveType("ptr")}
}

func (b *Builder) Alloca(t ir.Type, count int, name string) ir.Value {
	// Allocas go to the top of the current function's entry block; the
	// cursor then returns to the end of the block it was in.
	cur := b.bld.GetInsertBlock()
	entry := cur.Parent().EntryBasicBlock()
	if first := entry.FirstInstruction(); first.IsNil() {
		b.bld.SetInsertPointAtEnd(entry)
	} else {
		b.bld.SetInsertPointBefore(first)
	}
	defer b.bld.SetInsertPointAtEnd(cur)
	if count == 1 {
		return llValue{v: b.bld.CreateAlloca(b.llType(t), name), t: b.ResolveType("ptr")}
	}
	n := llvm.ConstInt(b.ctx.Int32Type(), uint64(count), false)
	return llValue{v: b.bld.CreateArrayAlloca(b.llType(t), n, name), t: b.ResolveType("ptr")}
}

func (b *Builder) Load(t ir.Type, ptr ir.Value, name string) ir.Value {
	return llValue{v: b.bld.CreateLoad(b.llValue(ptr), name), t: t}
}

func (b *Builder) Store(v, ptr ir.Value) {
	b.bld.CreateStore(b.llValue(v), b.llValue(ptr))
}

func (b *Builder) Add(lhs, rhs ir.Value, name string) ir.Value {
	return llValue{v: b.bld.CreateAdd(b.llValue(lhs), b.llValue(rhs), name), t: lhs.ValueType()}
}
func (b *Builder) Sub(lhs, rhs ir.Value, name string) ir.Value {
	return llValue{v: b.bld.CreateSub(b.llValue(lhs), b.llValue(rhs), name), t: lhs.ValueType()}
}
func (b *Builder) Mul(lhs, rhs ir.Value, name string) ir.Value {
	return llValue{v: b.bld.CreateMul(b.llValue(lhs), b.llValue(rhs), name), t: lhs.ValueType()}
}
func (b *Builder) SDiv(lhs, rhs ir.Value, name string) ir.Value {
	return llValue{v: b.bld.CreateSDiv(b.llValue(lhs), b.llValue(rhs), name), t: lhs.ValueType()}
}
func (b *Builder) UDiv(lhs, rhs ir.Value, name string) ir.Value {
	return llValue{v: b.bld.CreateUDiv(b.llValue(lhs), b.llValue(rhs), name), t: lhs.ValueType()}
}
func (b *Builder) FDiv(lhs, rhs ir.Value, name string) ir.Value {
	return llValue{v: b.bld.CreateFDiv(b.llValue(lhs), b.llValue(rhs), name), t: lhs.ValueType()}
}
func (b *Builder) SRem(lhs, rhs ir.Value, name string) ir.Value {
	return llValue{v: b.bld.CreateSRem(b.llValue(lhs), b.llValue(rhs), name), t: lhs.ValueType()}
}
func (b *Builder) URem(lhs, rhs ir.Value, name string) ir.Value {
	return llValue{v: b.bld.CreateURem(b.llValue(lhs), b.llValue(rhs), name), t: lhs.ValueType()}
}
func (b *Builder) FRem(lhs, rhs ir.Value, name string) ir.Value {
	return llValue{v: b.bld.CreateFRem(b.llValue(lhs), b.llValue(rhs), name), t: lhs.ValueType()}
}

var intPredicates = map[ir.IntPredicate]llvm.IntPredicate{
	ir.IEQ:  llvm.IntEQ,
	ir.INE:  llvm.IntNE,
	ir.ISLT: llvm.IntSLT,
	ir.ISGT: llvm.IntSGT,
	ir.ISLE: llvm.IntSLE,
	ir.ISGE: llvm.IntSGE,
	ir.IULT: llvm.IntULT,
	ir.IUGT: llvm.IntUGT,
	ir.IULE: llvm.IntULE,
	ir.IUGE: llvm.IntUGE,
}

var floatPredicates = map[ir.FloatPredicate]llvm.FloatPredicate{
	ir.FOEQ: llvm.FloatOEQ,
	ir.FONE: llvm.FloatONE,
	ir.FOLT: llvm.FloatOLT,
	ir.FOGT: llvm.FloatOGT,
	ir.FOLE: llvm.FloatOLE,
	ir.FOGE: llvm.FloatOGE,
}

func (b *Builder) ICmp(pred ir.IntPredicate, lhs, rhs ir.Value, name string) ir.Value {
	v := b.bld.CreateICmp(intPredicates[pred], b.llValue(lhs), b.llValue(rhs), name)
	return llValue{v: v, t: b.ResolveType("bool")}
}

func (b *Builder) FCmp(pred ir.FloatPredicate, lhs, rhs ir.Value, name string) ir.Value {
	v := b.bld.CreateFCmp(floatPredicates[pred], b.llValue(lhs), b.llValue(rhs), name)
	return llValue{v: v, t: b.ResolveType("bool")}
}

func (b *Builder) And(lhs, rhs ir.Value, name string) ir.Value {
	return llValue{v: b.bld.CreateAnd(b.llValue(lhs), b.llValue(rhs), name), t: lhs.ValueType()}
}
func (b *Builder) Or(lhs, rhs ir.Value, name string) ir.Value {
	return llValue{v: b.bld.CreateOr(b.llValue(lhs), b.llValue(rhs), name), t: lhs.ValueType()}
}
func (b *Builder) Not(v ir.Value, name string) ir.Value {
	return llValue{v: b.bld.CreateNot(b.llValue(v), name), t: v.ValueType()}
}

func (b *Builder) Br(target ir.Block) {
	b.bld.CreateBr(b.llBlock(target))
}

func (b *Builder) CondBr(cond ir.Value, thenB, elseB ir.Block) {
	b.bld.CreateCondBr(b.llValue(cond), b.llBlock(thenB), b.llBlock(elseB))
}

func (b *Builder) Call(fn ir.Func, args []ir.Value, name string) ir.Value {
	f := fn.(llFunc)
	llArgs := make([]llvm.Value, len(args))
	for i, a := range args {
		llArgs[i] = b.llValue(a)
	}
	v := b.bld.CreateCall(f.fn, llArgs, name)
	return llValue{v: v, t: f.retType}
}

func (b *Builder) Ret(v ir.Value) {
	b.bld.CreateRet(b.llValue(v))
}

func (b *Builder) RetVoid() {
	b.bld.CreateRetVoid()
}

// Module returns the underlying LLVM module, e.g. for verification or
// textual dumping by the driver once lowering completes.
func (b *Builder) Module() llvm.Module { return b.mod }

// Dispose releases the LLVM context. Callers should defer this once the
// module has been consumed (written out, verified, or JIT-compiled).
func (b *Builder) Dispose() { b.ctx.Dispose() }
