// Package vm implements the stack-based virtual machine that executes
// compiled bytecode chunks: a decode-dispatch loop over an evaluation
// stack, a globals table, and an intern table shared with the compiler's
// string literals.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/arrowlang/arrow/internal/chunk"
	"github.com/arrowlang/arrow/internal/table"
	"github.com/arrowlang/arrow/internal/value"
)

const (
	defaultStackSize = 256
	defaultTableSize = 8
)

// Option configures an Instance at construction time.
type Option func(*Instance) error

// StackSize sets the initial evaluation stack capacity.
func StackSize(size int) Option {
	return func(i *Instance) error {
		if size <= 0 {
			return fmt.Errorf("vm: stack size must be positive, got %d", size)
		}
		i.stack = make([]value.Value, 0, size)
		return nil
	}
}

// TableSize sets the initial capacity of the globals and intern tables.
func TableSize(size int) Option {
	return func(i *Instance) error {
		if size <= 0 {
			return fmt.Errorf("vm: table size must be positive, got %d", size)
		}
		i.globals = table.New(size)
		i.strings = table.New(size)
		return nil
	}
}

// Output redirects `print` output away from os.Stdout.
func Output(w io.Writer) Option {
	return func(i *Instance) error { i.output = w; return nil }
}

// Instance is a VM instance bound to a single compiled Chunk. It owns the
// evaluation stack, the globals table, and the interned-string table, and
// keeps the intrusive list of every heap object it has allocated so they
// can be released together at teardown.
type Instance struct {
	chunk   *chunk.Chunk
	ip      int
	stack   []value.Value
	globals *table.Table
	strings *table.Table
	output  io.Writer

	objects value.Object // head of the intrusive allocation list
}

// New creates an Instance. It has no bound chunk until SetChunk is
// called; the environment is constructed first so the compiler can
// intern string literals through it during compilation, and only then is
// the chunk it produced attached for Run.
func New(opts ...Option) (*Instance, error) {
	i := &Instance{}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	if i.stack == nil {
		i.stack = make([]value.Value, 0, defaultStackSize)
	}
	if i.globals == nil {
		i.globals = table.New(defaultTableSize)
	}
	if i.strings == nil {
		i.strings = table.New(defaultTableSize)
	}
	if i.output == nil {
		i.output = os.Stdout
	}
	return i, nil
}

// track links o into the instance's intrusive object list so Release can
// find it at teardown.
func (i *Instance) track(o value.Object) {
	o.SetNext(i.objects)
	i.objects = o
}

// InternBytes interns b, returning the shared handle for its content. A
// fresh String object is only allocated the first time a given byte
// sequence is seen; every later occurrence (string literal or runtime
// concatenation) returns the same handle, so Value equality on strings can
// be a handle comparison.
func (i *Instance) InternBytes(b []byte) *value.String {
	h := table.FNV1a(b)
	if s := i.strings.FindString(b, h); s != nil {
		return s
	}
	owned := make([]byte, len(b))
	copy(owned, b)
	s := value.NewString(owned, h)
	i.track(s)
	i.strings.Set(s, value.Bool(true))
	return s
}

// NewList allocates a List wrapping elems and tracks it for teardown.
func (i *Instance) NewList(elems []value.Value) *value.List {
	l := value.NewList(elems)
	i.track(l)
	return l
}

// Release walks the intrusive object list and severs every object's owned
// buffers. It does not need to free memory itself (the Go garbage collector
// does that once nothing references the objects), but it preserves the
// teardown discipline of walking the whole list exactly once.
func (i *Instance) Release() {
	for o := i.objects; o != nil; {
		next := o.Next()
		value.Release(o)
		o = next
	}
	i.objects = nil
}

// SetChunk binds c as the program Run executes. It must be called before
// Run.
func (i *Instance) SetChunk(c *chunk.Chunk) { i.chunk = c }

// Chunk returns the bound chunk, primarily for disassembly.
func (i *Instance) Chunk() *chunk.Chunk { return i.chunk }

// Globals exposes the globals table for diagnostics and tests.
func (i *Instance) Globals() *table.Table { return i.globals }
