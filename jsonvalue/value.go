// Package jsonvalue defines the immutable JSON value tree produced by the
// parser.
//
// A Value is a closed variant over null, boolean, 64-bit integer, double,
// string, array and object. Values are immutable once constructed: the
// constructors that accept a slice or map take ownership of it, and the
// accessors that expose collections return copies.
package jsonvalue

import (
	"math"
	"slices"
	"sort"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDouble
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a parsed JSON value. The zero Value is null.
type Value struct {
	kind Kind
	n    uint64 // bool as 0/1, int64 bits, or float64 bits
	s    string
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.n = 1
	}
	return v
}

// Int returns a 64-bit signed integer value.
func Int(n int64) Value { return Value{kind: KindInt, n: uint64(n)} }

// Float returns a double value. The sign of zero is preserved.
func Float(f float64) Value { return Value{kind: KindDouble, n: math.Float64bits(f)} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array value holding a copy of elems.
func Array(elems ...Value) Value {
	return ArrayOf(slices.Clone(elems))
}

// ArrayOf returns an array value that takes ownership of elems. The caller
// must not modify elems afterwards.
func ArrayOf(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, arr: elems}
}

// Object returns an object value that takes ownership of members. The
// caller must not modify members afterwards.
func Object(members map[string]Value) Value {
	if members == nil {
		members = map[string]Value{}
	}
	return Value{kind: KindObject, obj: members}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean held by v, or false for other kinds.
func (v Value) Bool() bool { return v.kind == KindBool && v.n == 1 }

// Int returns the integer held by v, or 0 for other kinds.
func (v Value) Int() int64 {
	if v.kind != KindInt {
		return 0
	}
	return int64(v.n)
}

// Float returns the double held by v, or 0 for other kinds.
func (v Value) Float() float64 {
	if v.kind != KindDouble {
		return 0
	}
	return math.Float64frombits(v.n)
}

// Str returns the string held by v, or "" for other kinds.
func (v Value) Str() string { return v.s }

// Len returns the number of elements of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Index returns the i-th element of an array. It panics if v is not an
// array or i is out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray {
		panic("jsonvalue: Index of " + v.kind.String())
	}
	return v.arr[i]
}

// Elems returns a copy of the elements of an array, or nil for other kinds.
func (v Value) Elems() []Value {
	if v.kind != KindArray {
		return nil
	}
	return slices.Clone(v.arr)
}

// Lookup returns the member of an object named key.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	m, ok := v.obj[key]
	return m, ok
}

// Keys returns the member names of an object in ascending byte order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Interface converts v into plain Go values: nil, bool, int64, float64,
// string, []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.Bool()
	case KindInt:
		return v.Int()
	case KindDouble:
		return v.Float()
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i := range v.arr {
			out[i] = v.arr[i].Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, m := range v.obj {
			out[k] = m.Interface()
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether v and o are structurally identical. Doubles are
// compared bit for bit, so 0.0 and -0.0 differ.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool, KindInt, KindDouble:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, m := range v.obj {
			om, ok := o.obj[k]
			if !ok || !m.Equal(om) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
