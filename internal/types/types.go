// Package types models the source language's type system: four tagged
// variants (Named, IndexedPointer, ReferencePointer, FunctionReference)
// with a canonical string form used as their identity, per spec §3.
package types

import "strings"

// ScalarNames lists the identifiers accepted as a Named type.
var ScalarNames = map[string]bool{
	"void": true, "bool": true,
	"i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"f32": true, "f64": true,
	"ptr": true,
}

var signedNames = map[string]bool{"i8": true, "i16": true, "i32": true, "i64": true}
var unsignedNames = map[string]bool{"u8": true, "u16": true, "u32": true, "u64": true}
var floatNames = map[string]bool{"f32": true, "f64": true}

// Type is the common interface implemented by all four type variants.
// Equality between two Types is defined as equality of their Canonical
// strings (spec §3), never struct identity.
type Type interface {
	// Canonical returns the type's identity string.
	Canonical() string
	// IsSigned is true only for the four signed integer names.
	IsSigned() bool
	// IsIntegerTy reports whether the type is a signed or unsigned scalar.
	IsIntegerTy() bool
	// IsFloatTy reports whether the type is f32 or f64.
	IsFloatTy() bool
	// IsPointerTy reports whether the type lowers to an opaque pointer:
	// IndexedPointer, ReferencePointer, FunctionReference, or the Named
	// "ptr" type.
	IsPointerTy() bool
}

// Equal compares two types by their canonical string form.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Canonical() == b.Canonical()
}

// Named is one of the built-in scalar type names in ScalarNames.
type Named struct {
	Name string
}

func (n Named) Canonical() string   { return n.Name }
func (n Named) IsSigned() bool      { return signedNames[n.Name] }
func (n Named) IsIntegerTy() bool   { return signedNames[n.Name] || unsignedNames[n.Name] }
func (n Named) IsFloatTy() bool     { return floatNames[n.Name] }
func (n Named) IsPointerTy() bool   { return n.Name == "ptr" }

// IndexedPointer is a pointer obtained with the `[]` suffix.
type IndexedPointer struct {
	Elem Type
}

func (p IndexedPointer) Canonical() string { return p.Elem.Canonical() + "[]" }
func (p IndexedPointer) IsSigned() bool    { return false }
func (p IndexedPointer) IsIntegerTy() bool { return false }
func (p IndexedPointer) IsFloatTy() bool   { return false }
func (p IndexedPointer) IsPointerTy() bool { return true }

// ReferencePointer is a pointer obtained with the `*` suffix.
type ReferencePointer struct {
	Elem Type
}

func (p ReferencePointer) Canonical() string { return p.Elem.Canonical() + "*" }
func (p ReferencePointer) IsSigned() bool    { return false }
func (p ReferencePointer) IsIntegerTy() bool { return false }
func (p ReferencePointer) IsFloatTy() bool   { return false }
func (p ReferencePointer) IsPointerTy() bool { return true }

// FunctionReference denotes a callable with a fixed signature.
type FunctionReference struct {
	Return Type
	Args   []Type
}

func (f FunctionReference) Canonical() string {
	var sb strings.Builder
	sb.WriteString("func(")
	for i, a := range f.Args {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(a.Canonical())
	}
	sb.WriteString("->")
	sb.WriteString(f.Return.Canonical())
	sb.WriteString(")")
	return sb.String()
}
func (f FunctionReference) IsSigned() bool    { return false }
func (f FunctionReference) IsIntegerTy() bool { return false }
func (f FunctionReference) IsFloatTy() bool   { return false }
func (f FunctionReference) IsPointerTy() bool { return true }

// Void, Bool and a few common scalar names are exposed as ready-made Named values
// for callers that don't need to round-trip through the parser.
var (
	Void = Named{"void"}
	Bool = Named{"bool"}
	I32  = Named{"i32"}
	F64  = Named{"f64"}
	U8   = Named{"u8"}
	Ptr  = Named{"ptr"}
)
