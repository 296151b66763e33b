// Structural type model for the Flux language front end.
// Types are value-semantics descriptions compared by shape, never by
// identity; the parser produces them and the type checker consumes them.
package types

import (
	"fmt"
	"strings"
)

// Kind represents the kind of a type. Signedness of integers lives on the
// Primitive payload, not the kind.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindChar
	KindBool
	KindVoid
	KindString
	KindArray
	KindPointer
	KindStruct
	KindFunction
	KindNamed
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindChar:
		return "char"
	case KindBool:
		return "bool"
	case KindVoid:
		return "void"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindPointer:
		return "pointer"
	case KindStruct:
		return "struct"
	case KindFunction:
		return "function"
	case KindNamed:
		return "named"
	default:
		return "invalid"
	}
}

// Width is the bit width of a primitive type. WidthDefault means the
// platform default; it is distinct from every explicit width.
type Width int

const (
	WidthDefault Width = 0
	Width8       Width = 8
	Width16      Width = 16
	Width32      Width = 32
	Width64      Width = 64
	Width128     Width = 128
)

// Type represents a type in the Flux type system. The zero value is not a
// valid type; use the constructors.
type Type struct {
	Kind Kind
	Data interface{} // per-variant payload, nil for bool/void/string
}

// Primitive carries the payload of numeric and char types.
type Primitive struct {
	Width  Width
	Signed bool
}

// Array is a fixed-size or dynamically sized array. Size == nil denotes a
// dynamically sized array.
type Array struct {
	Elem *Type
	Size *uint64
}

// Pointer points at a pointee type.
type Pointer struct {
	Pointee *Type
}

// StructField is a single named field; field order is significant.
type StructField struct {
	Name string
	Type *Type
}

// Struct is an ordered field list.
type Struct struct {
	Fields []StructField
}

// Function is a return type plus ordered parameter types.
type Function struct {
	Return *Type
	Params []*Type
}

// Named is an unresolved nominal reference; resolution is a downstream
// concern.
type Named struct {
	Name string
}

// ====== Constructors ======

// NewPrimitive creates a numeric or char primitive type.
func NewPrimitive(kind Kind, width Width, signed bool) *Type {
	return &Type{Kind: kind, Data: &Primitive{Width: width, Signed: signed}}
}

// NewArray creates a fixed-size array type.
func NewArray(elem *Type, size uint64) *Type {
	return &Type{Kind: KindArray, Data: &Array{Elem: elem, Size: &size}}
}

// NewSlice creates a dynamically sized array type.
func NewSlice(elem *Type) *Type {
	return &Type{Kind: KindArray, Data: &Array{Elem: elem}}
}

// NewPointer creates a pointer type.
func NewPointer(pointee *Type) *Type {
	return &Type{Kind: KindPointer, Data: &Pointer{Pointee: pointee}}
}

// NewStruct creates a struct type from an ordered field list.
func NewStruct(fields []StructField) *Type {
	return &Type{Kind: KindStruct, Data: &Struct{Fields: fields}}
}

// NewFunction creates a function type.
func NewFunction(ret *Type, params []*Type) *Type {
	return &Type{Kind: KindFunction, Data: &Function{Return: ret, Params: params}}
}

// NewNamed creates an unresolved user-defined type reference.
func NewNamed(name string) *Type {
	return &Type{Kind: KindNamed, Data: &Named{Name: name}}
}

// Built-in default-width types.
var (
	Int    = NewPrimitive(KindInt, WidthDefault, true)
	Uint   = NewPrimitive(KindInt, WidthDefault, false)
	Float  = NewPrimitive(KindFloat, WidthDefault, true)
	Char   = NewPrimitive(KindChar, WidthDefault, false)
	Bool   = &Type{Kind: KindBool}
	Void   = &Type{Kind: KindVoid}
	String = &Type{Kind: KindString}
)

// ====== Predicates ======

// IsNumeric reports whether the type is an integer or float primitive.
func (t *Type) IsNumeric() bool {
	return t.Kind == KindInt || t.Kind == KindFloat
}

// IsInteger reports whether the type is an integer primitive.
func (t *Type) IsInteger() bool {
	return t.Kind == KindInt
}

// IsFloat reports whether the type is a floating-point primitive.
func (t *Type) IsFloat() bool {
	return t.Kind == KindFloat
}

// IsSigned reports whether the type is a signed primitive.
func (t *Type) IsSigned() bool {
	if prim, ok := t.Data.(*Primitive); ok {
		return prim.Signed
	}
	return false
}

// BitWidth returns the primitive bit width, WidthDefault for non-primitives.
func (t *Type) BitWidth() Width {
	if prim, ok := t.Data.(*Primitive); ok {
		return prim.Width
	}
	return WidthDefault
}

// ====== Structural equality ======

// Equals reports structural equality: same variant and recursively equal
// components, regardless of how either value was constructed. Primitive
// equality requires exact kind, bit width and signedness.
func (t *Type) Equals(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}

	switch t.Kind {
	case KindBool, KindVoid, KindString:
		return true

	case KindInt, KindFloat, KindChar:
		a := t.Data.(*Primitive)
		b := other.Data.(*Primitive)
		return a.Width == b.Width && a.Signed == b.Signed

	case KindArray:
		a := t.Data.(*Array)
		b := other.Data.(*Array)
		if (a.Size == nil) != (b.Size == nil) {
			return false
		}
		if a.Size != nil && *a.Size != *b.Size {
			return false
		}
		return a.Elem.Equals(b.Elem)

	case KindPointer:
		return t.Data.(*Pointer).Pointee.Equals(other.Data.(*Pointer).Pointee)

	case KindStruct:
		a := t.Data.(*Struct)
		b := other.Data.(*Struct)
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i, field := range a.Fields {
			if field.Name != b.Fields[i].Name || !field.Type.Equals(b.Fields[i].Type) {
				return false
			}
		}
		return true

	case KindFunction:
		a := t.Data.(*Function)
		b := other.Data.(*Function)
		if len(a.Params) != len(b.Params) || !a.Return.Equals(b.Return) {
			return false
		}
		for i, param := range a.Params {
			if !param.Equals(b.Params[i]) {
				return false
			}
		}
		return true

	case KindNamed:
		return t.Data.(*Named).Name == other.Data.(*Named).Name

	default:
		return false
	}
}

// ====== Assignability ======

// AssignableFrom reports whether a value of type src can be assigned to a
// location of type t without an explicit cast. Numeric promotion applies
// only within the same kind: the target width must be at least the source
// width with matching signedness. Int/float assignment in either direction
// requires a cast node. Pointers are covariant in their pointee; arrays are
// assignable when element types are and the target is size-erased or the
// sizes match.
func (t *Type) AssignableFrom(src *Type) bool {
	if t == nil || src == nil {
		return false
	}
	if t.Equals(src) {
		return true
	}

	switch {
	case t.IsNumeric() && src.IsNumeric():
		if t.Kind != src.Kind {
			return false
		}
		a := t.Data.(*Primitive)
		b := src.Data.(*Primitive)
		if a.Signed != b.Signed {
			return false
		}
		return widthOf(a.Width) >= widthOf(b.Width)

	case t.Kind == KindPointer && src.Kind == KindPointer:
		return t.Data.(*Pointer).Pointee.AssignableFrom(src.Data.(*Pointer).Pointee)

	case t.Kind == KindArray && src.Kind == KindArray:
		a := t.Data.(*Array)
		b := src.Data.(*Array)
		if !a.Elem.AssignableFrom(b.Elem) {
			return false
		}
		if a.Size == nil {
			return true
		}
		return b.Size != nil && *a.Size == *b.Size
	}

	return false
}

// widthOf maps WidthDefault to its effective width for comparisons.
func widthOf(w Width) int {
	if w == WidthDefault {
		return int(Width32)
	}
	return int(w)
}

// ====== Promotion ======

// CommonType returns the promoted result type for a binary arithmetic
// operation over a and b, or nil when the kinds are incompatible. If either
// operand is a float the result is the wider float; two integers promote to
// the max width and the result is signed when either operand is signed.
func CommonType(a, b *Type) *Type {
	if a == nil || b == nil || !a.IsNumeric() || !b.IsNumeric() {
		return nil
	}

	ap := a.Data.(*Primitive)
	bp := b.Data.(*Primitive)

	if a.IsFloat() || b.IsFloat() {
		width := WidthDefault
		if a.IsFloat() {
			width = ap.Width
		}
		if b.IsFloat() && widthOf(bp.Width) > widthOf(width) {
			width = bp.Width
		}
		return NewPrimitive(KindFloat, width, true)
	}

	width := ap.Width
	if widthOf(bp.Width) > widthOf(width) {
		width = bp.Width
	}
	return NewPrimitive(KindInt, width, ap.Signed || bp.Signed)
}

// ====== Rendering ======

// String returns the canonical textual form, stable for diagnostics and
// re-parseable for primitive, pointer and array compositions:
// "int{32}", "uint{8}", "float{64}", "T*", "T[4]", "T[]", "(A, B) -> R".
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case KindBool, KindVoid, KindString:
		return t.Kind.String()

	case KindInt, KindFloat, KindChar:
		prim := t.Data.(*Primitive)
		name := t.Kind.String()
		if t.Kind == KindInt && !prim.Signed {
			name = "uint"
		}
		if prim.Width == WidthDefault {
			return name
		}
		return fmt.Sprintf("%s{%d}", name, prim.Width)

	case KindArray:
		array := t.Data.(*Array)
		if array.Size == nil {
			return array.Elem.String() + "[]"
		}
		return fmt.Sprintf("%s[%d]", array.Elem, *array.Size)

	case KindPointer:
		return t.Data.(*Pointer).Pointee.String() + "*"

	case KindStruct:
		st := t.Data.(*Struct)
		fields := make([]string, len(st.Fields))
		for i, field := range st.Fields {
			fields[i] = fmt.Sprintf("%s: %s", field.Name, field.Type)
		}
		return fmt.Sprintf("struct { %s }", strings.Join(fields, ", "))

	case KindFunction:
		fn := t.Data.(*Function)
		params := make([]string, len(fn.Params))
		for i, param := range fn.Params {
			params[i] = param.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), fn.Return)

	case KindNamed:
		return t.Data.(*Named).Name

	default:
		return fmt.Sprintf("<%s>", t.Kind)
	}
}

// Render is the exported name for the canonical textual form.
func Render(t *Type) string { return t.String() }
