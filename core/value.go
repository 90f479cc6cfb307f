package core

import (
	"bytes"
	"slices"
)

// ValueKind discriminates the variants of a Value.
type ValueKind int

const (
	// KindNull is an explicitly absent value.
	KindNull ValueKind = iota
	// KindString is a UTF-8 string.
	KindString
	// KindInt is a signed 64-bit integer.
	KindInt
	// KindFloat is a 64-bit floating point number.
	KindFloat
	// KindBool is a boolean.
	KindBool
	// KindBytes is an opaque byte blob.
	KindBytes
	// KindVector is a numeric array, stored without boxing each element.
	KindVector
	// KindList is a heterogeneous sequence of values.
	KindList
	// KindMap is a nested mapping from field name to value.
	KindMap
)

// String returns the lowercase name of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindBytes:
		return "bytes"
	case KindVector:
		return "vector"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	}
	return "unknown"
}

// Value is the tagged union used for open document fields.
// Exactly one variant field is meaningful, selected by Kind;
// the others must hold their zero value.
type Value struct {
	Kind   ValueKind
	Str    string
	Int    int64
	Float  float64
	Bool   bool
	Blob   []byte
	Vector []float64
	List   []Value
	Map    map[string]Value
}

// Null returns an explicitly absent value.
func Null() Value { return Value{Kind: KindNull} }

// String returns a string value.
func String(v string) Value { return Value{Kind: KindString, Str: v} }

// Int returns an integer value.
func Int(v int64) Value { return Value{Kind: KindInt, Int: v} }

// Float returns a floating point value.
func Float(v float64) Value { return Value{Kind: KindFloat, Float: v} }

// Bool returns a boolean value.
func Bool(v bool) Value { return Value{Kind: KindBool, Bool: v} }

// Bytes returns a byte blob value.
func Bytes(v []byte) Value { return Value{Kind: KindBytes, Blob: v} }

// Vector returns a numeric array value.
func Vector(v []float64) Value { return Value{Kind: KindVector, Vector: v} }

// List returns a sequence value.
func List(vs ...Value) Value { return Value{Kind: KindList, List: vs} }

// Map returns a nested mapping value.
func Map(m map[string]Value) Value { return Value{Kind: KindMap, Map: m} }

// Equal reports whether two values have the same kind and contents.
// Blob, vector, list and map variants are compared deeply.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindString:
		return v.Str == o.Str
	case KindInt:
		return v.Int == o.Int
	case KindFloat:
		return v.Float == o.Float
	case KindBool:
		return v.Bool == o.Bool
	case KindBytes:
		return bytes.Equal(v.Blob, o.Blob)
	case KindVector:
		return slices.Equal(v.Vector, o.Vector)
	case KindList:
		return slices.EqualFunc(v.List, o.List, Value.Equal)
	case KindMap:
		if len(v.Map) != len(o.Map) {
			return false
		}
		for name, a := range v.Map {
			b, ok := o.Map[name]
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	out := v
	switch v.Kind {
	case KindBytes:
		out.Blob = slices.Clone(v.Blob)
	case KindVector:
		out.Vector = slices.Clone(v.Vector)
	case KindList:
		out.List = make([]Value, len(v.List))
		for i, e := range v.List {
			out.List[i] = e.Clone()
		}
	case KindMap:
		out.Map = make(map[string]Value, len(v.Map))
		for name, e := range v.Map {
			out.Map[name] = e.Clone()
		}
	}
	return out
}
