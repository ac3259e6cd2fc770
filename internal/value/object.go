package value

// ObjectKind tags the kind of a heap object.
type ObjectKind uint8

const (
	ObjString ObjectKind = iota
	ObjList
)

// Object is the interface implemented by every heap-allocated value kind.
// The intrusive linked list (Next/SetNext) lets an owning environment walk
// and release every live object in one pass at teardown, mirroring a
// GC-free runtime's object bookkeeping.
type Object interface {
	ObjectKind() ObjectKind
	Next() Object
	SetNext(Object)
}

type header struct {
	kind ObjectKind
	next Object
}

func (h *header) ObjectKind() ObjectKind { return h.kind }
func (h *header) Next() Object           { return h.next }
func (h *header) SetNext(o Object)       { h.next = o }

// String is an interned, content-addressed heap string. Invariant: no two
// live Strings in the same environment have equal content — the owning
// environment's InternBytes (vm.Instance.InternBytes) always probes the
// intern table first.
type String struct {
	header
	Bytes []byte
	Hash  uint32
}

// NewString constructs a String object. Callers are responsible for
// interning (see package table) before handing out the handle.
func NewString(bytes []byte, hash uint32) *String {
	return &String{header: header{kind: ObjString}, Bytes: bytes, Hash: hash}
}

// List is a heap-allocated, fixed-size (at construction) sequence of values.
type List struct {
	header
	Elems []Value
}

// NewList constructs a List object wrapping elems (bottom-first order).
func NewList(elems []Value) *List {
	return &List{header: header{kind: ObjList}, Elems: elems}
}

// Release drops references held by o so a GC can reclaim its storage
// promptly. It is the Go-GC analogue of the intrusive list's free_object:
// there is nothing to manually deallocate, but walking the list and
// severing the owned buffers keeps the teardown discipline the original's
// free-list walk performs.
func Release(o Object) {
	switch v := o.(type) {
	case *String:
		v.Bytes = nil
	case *List:
		v.Elems = nil
	}
	o.SetNext(nil)
}
