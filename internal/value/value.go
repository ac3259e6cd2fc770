// Package value defines the tagged runtime value and heap object model
// shared by the compiler and the VM.
package value

import (
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
//
// KindNull is the zero value so a zero-value Value (as found in a freshly
// allocated, never-written table slot) reads as Null without an explicit
// initializer.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindObject
	KindError
)

// Value is a tagged union of Error | Bool | Null | Number(f64) | Object(handle).
//
// Object equality is identity of the handle: since strings are interned (see
// package table), two content-equal strings share one handle and compare
// equal by pointer.
type Value struct {
	Kind    Kind
	boolean bool
	number  float64
	object  Object
}

// Null returns the Null value.
func Null() Value { return Value{Kind: KindNull} }

// Bool returns a Bool value.
func Bool(b bool) Value { return Value{Kind: KindBool, boolean: b} }

// Number returns a Number value.
func Number(n float64) Value { return Value{Kind: KindNumber, number: n} }

// Obj returns an Object value wrapping o.
func Obj(o Object) Value { return Value{Kind: KindObject, object: o} }

// Error returns the sentinel Error value, used only to mark an uninitialized
// or clobbered slot when printing diagnostics.
func Error() Value { return Value{Kind: KindError} }

func (v Value) IsNull() bool   { return v.Kind == KindNull }
func (v Value) IsBool() bool   { return v.Kind == KindBool }
func (v Value) IsNumber() bool { return v.Kind == KindNumber }
func (v Value) IsObject() bool { return v.Kind == KindObject }

func (v Value) AsBool() bool     { return v.boolean }
func (v Value) AsNumber() float64 { return v.number }
func (v Value) AsObject() Object  { return v.object }

// IsString reports whether v holds a String object.
func (v Value) IsString() bool {
	if v.Kind != KindObject {
		return false
	}
	_, ok := v.object.(*String)
	return ok
}

// IsList reports whether v holds a List object.
func (v Value) IsList() bool {
	if v.Kind != KindObject {
		return false
	}
	_, ok := v.object.(*List)
	return ok
}

// AsString asserts v holds a String object and returns it.
func (v Value) AsString() *String { return v.object.(*String) }

// AsList asserts v holds a List object and returns it.
func (v Value) AsList() *List { return v.object.(*List) }

// Falsey reports whether v makes a conditional branch take its else arm:
// Null or Bool(false). Everything else, including 0, "", and [], is truthy.
func (v Value) Falsey() bool {
	return v.Kind == KindNull || (v.Kind == KindBool && !v.boolean)
}

// Equal implements the VM's cross-kind equality: different kinds compare
// unequal, Null == Null, Bool/Number compare by value, Object compares by
// handle identity.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolean == b.boolean
	case KindNumber:
		return a.number == b.number
	case KindObject:
		return a.object == b.object
	default:
		return false
	}
}

// Format renders v in the textual form `print` emits: numbers as the
// shortest round-trippable decimal, bools as true/false, null as null,
// strings as raw unquoted bytes, lists as `[e1, e2, ...]`.
func Format(v Value) string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	case KindObject:
		switch o := v.object.(type) {
		case *String:
			return string(o.Bytes)
		case *List:
			return formatList(o)
		}
	}
	return "Object is uninitialized. or clobbered"
}

func formatList(l *List) string {
	if len(l.Elems) == 0 {
		return "[]"
	}
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = Format(e)
	}
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(strings.Join(parts, ", "))
	b.WriteByte(']')
	return b.String()
}
