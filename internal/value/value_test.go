package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arrowlang/arrow/internal/value"
)

func TestFalsey(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want bool
	}{
		{"null", value.Null(), true},
		{"false", value.Bool(false), true},
		{"true", value.Bool(true), false},
		{"zero", value.Number(0), false},
		{"empty string", value.Obj(value.NewString(nil, 0)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Falsey())
		})
	}
}

func TestEqualCrossKind(t *testing.T) {
	assert.False(t, value.Equal(value.Number(0), value.Bool(false)))
	assert.True(t, value.Equal(value.Null(), value.Null()))
	assert.True(t, value.Equal(value.Number(1.5), value.Number(1.5)))
	assert.False(t, value.Equal(value.Number(1), value.Number(2)))
}

func TestEqualObjectIsHandleIdentity(t *testing.T) {
	a := value.NewString([]byte("hi"), 42)
	b := value.NewString([]byte("hi"), 42)
	// Distinct handles with equal content are NOT Equal: interning, not
	// content comparison, is what must make them equal; see package table.
	assert.False(t, value.Equal(value.Obj(a), value.Obj(b)))
	assert.True(t, value.Equal(value.Obj(a), value.Obj(a)))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "null", value.Format(value.Null()))
	assert.Equal(t, "true", value.Format(value.Bool(true)))
	assert.Equal(t, "3.5", value.Format(value.Number(3.5)))

	list := value.NewList(nil)
	assert.Equal(t, "[]", value.Format(value.Obj(list)))

	list2 := value.NewList([]value.Value{value.Number(1), value.Number(2)})
	assert.Equal(t, "[1, 2]", value.Format(value.Obj(list2)))
}
