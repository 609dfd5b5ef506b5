// Package ir defines the abstract target IR builder interface the
// lowering pass depends on (spec §4.3), plus the lowering pass itself.
// The interface is deliberately narrow: apart from CurrentBlock, which
// the lowering pass does not call, it lists only the capabilities the
// lowering pass actually calls, so that any backend — a real LLVM
// binding, a mock recorder for tests, or a future non-LLVM target — can
// satisfy it.
package ir

// IntPredicate selects an integer comparison kind.
type IntPredicate int

const (
	IEQ IntPredicate = iota
	INE
	ISLT
	ISGT
	ISLE
	ISGE
	IULT
	IUGT
	IULE
	IUGE
)

// FloatPredicate selects a float comparison kind. Only ordered
// predicates are needed (spec §4.3).
type FloatPredicate int

const (
	FOEQ FloatPredicate = iota
	FONE
	FOLT
	FOGT
	FOLE
	FOGE
)

// Type is an opaque target type handle resolved from a source-language
// scalar name, or the single opaque pointer type shared by every
// pointer/function-reference variant.
type Type interface {
	// IsFloat reports whether this is one of the target's floating-point
	// types, used by the lowering pass to pick float vs integer ops.
	IsFloat() bool
}

// Value is an opaque target value handle: a constant, a loaded value,
// an instruction result, a function, or a global.
type Value interface {
	// ValueType returns this value's target Type.
	ValueType() Type
}

// Block is an opaque target basic-block handle.
type Block interface{}

// Func is an opaque target function handle.
type Func interface {
	// Param returns the i'th parameter value of this function.
	Param(i int) Value
}

// Builder is the abstract LLVM-like target IR builder the lowering
// pass is written against (spec §4.3). It exposes the capabilities the
// lowering pass needs, plus CurrentBlock: module/type resolution,
// function and basic-block creation, an insertion cursor, and
// value-producing instruction builders.
type Builder interface {
	// NewModule starts a module with the given name. Must be called
	// once before any other method.
	NewModule(name string)

	// ResolveType maps one of the source language's scalar names (the
	// Named set from spec §3, e.g. "i32", "f64", "bool", "void") to a
	// target Type. The caller passes "ptr" for every pointer and
	// function-reference variant (spec §4.3: "opaque pointer lowering").
	ResolveType(name string) Type

	// DeclareFunction declares a function with fixed, non-variadic
	// argument types and external linkage inside the current module.
	// The lowering pass keeps its own module-level function name table
	// (spec §4.3 step 2), so the Builder itself need not expose a lookup.
	DeclareFunction(name string, paramTypes []Type, retType Type) Func

	// AppendBlock creates a new basic block parented to fn.
	AppendBlock(fn Func, label string) Block

	// CurrentBlock returns the block the insertion cursor currently
	// points at.
	CurrentBlock() Block

	// SetInsertPoint moves the insertion cursor to the end of b.
	SetInsertPoint(b Block)

	// ConstInt / ConstFloat / ConstBool materialize typed constants.
	ConstInt(t Type, v int64) Value
	ConstFloat(t Type, v float64) Value
	ConstBool(v bool) Value

	// GlobalString materializes a global constant holding the given
	// bytes (spec's Open Question on string literal storage: fixed to
	// emit an initializer, see DESIGN.md) and returns a pointer to it.
	GlobalString(name, contents string) Value

	// GlobalVar declares a module-scope variable of type t with an
	// optional constant initializer (nil when absent) and returns a
	// pointer to it. Not part of spec.md §4.3's minimal capability list;
	// added because a real backend has no other way to materialize
	// module-scope storage (see DESIGN.md).
	GlobalVar(t Type, name string, init Value) Value

	// Alloca reserves count contiguous slots of type t in the current
	// function's entry block and returns a pointer to the first one.
	Alloca(t Type, count int, name string) Value
	Load(t Type, ptr Value, name string) Value
	Store(v, ptr Value)

	// Arithmetic. Each takes two operands already of the same target
	// type and a result name hint.
	Add(lhs, rhs Value, name string) Value
	Sub(lhs, rhs Value, name string) Value
	Mul(lhs, rhs Value, name string) Value
	SDiv(lhs, rhs Value, name string) Value
	UDiv(lhs, rhs Value, name string) Value
	FDiv(lhs, rhs Value, name string) Value
	SRem(lhs, rhs Value, name string) Value
	URem(lhs, rhs Value, name string) Value
	FRem(lhs, rhs Value, name string) Value

	ICmp(pred IntPredicate, lhs, rhs Value, name string) Value
	FCmp(pred FloatPredicate, lhs, rhs Value, name string) Value

	And(lhs, rhs Value, name string) Value
	Or(lhs, rhs Value, name string) Value
	Not(v Value, name string) Value

	Br(target Block)
	CondBr(cond Value, thenB, elseB Block)

	Call(fn Func, args []Value, name string) Value

	Ret(v Value)
	RetVoid()
}
