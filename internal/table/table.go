// Package table implements the open-addressed hash table used for both
// string interning and globals. It is keyed exclusively by interned string
// handles (identity-compared), with a dedicated content-comparing lookup
// path to support interning itself.
package table

import (
	"github.com/arrowlang/arrow/internal/value"
)

const loadFactor = 0.75

// Entry is one slot of the table. A slot is empty when Key is nil and Val is
// Null; it is a tombstone when Key is nil and Val is Bool(true); otherwise
// it is live.
type Entry struct {
	Key *value.String
	Val value.Value
}

func (e *Entry) empty() bool     { return e.Key == nil && e.Val.Kind == value.KindNull }
func (e *Entry) tombstone() bool { return e.Key == nil && e.Val.Kind == value.KindBool && e.Val.AsBool() }

// Table is a linear-probed, power-of-two-growth hash table.
type Table struct {
	entries []Entry
	// count tracks live + tombstone entries; tombstones are only dropped on
	// resize.
	count int
}

// New returns a Table with at least cap slots (rounded up to 8).
func New(cap int) *Table {
	if cap < 8 {
		cap = 8
	}
	return &Table{entries: make([]Entry, cap)}
}

// FNV1a is the hash function used for string content, matching the
// FNV-1a-32 variant the interning scheme requires.
func FNV1a(b []byte) uint32 {
	var h uint32 = 2166136261
	for _, c := range b {
		h ^= uint32(c)
		h *= 16777619
	}
	return h
}

// findEntry locates the slot for key under linear probing, returning the
// first tombstone seen (for reuse) if key is not already present.
func findEntry(entries []Entry, key *value.String) *Entry {
	idx := int(key.Hash) % len(entries)
	var tombstone *Entry
	for {
		e := &entries[idx]
		switch {
		case e.Key == nil:
			if e.empty() {
				if tombstone != nil {
					return tombstone
				}
				return e
			}
			if tombstone == nil {
				tombstone = e
			}
		case e.Key == key:
			return e
		}
		idx = (idx + 1) % len(entries)
	}
}

func (t *Table) adjustCapacity(newCap int) {
	entries := make([]Entry, newCap)
	t.count = 0
	for i := range t.entries {
		e := &t.entries[i]
		if e.Key == nil {
			continue
		}
		dst := findEntry(entries, e.Key)
		dst.Key = e.Key
		dst.Val = e.Val
		t.count++
	}
	t.entries = entries
}

// Set inserts or updates key->val. Returns true if key was not already
// present (a new entry, tombstone reuse counts as new).
func (t *Table) Set(key *value.String, val value.Value) bool {
	if float64(t.count+1) > float64(len(t.entries))*loadFactor {
		t.adjustCapacity(len(t.entries) * 2)
	}
	e := findEntry(t.entries, key)
	isNew := e.Key == nil
	if isNew && e.empty() {
		t.count++
	}
	e.Key = key
	e.Val = val
	return isNew
}

// Get looks up key, reporting whether it was found.
func (t *Table) Get(key *value.String) (value.Value, bool) {
	if t.count == 0 {
		return value.Value{}, false
	}
	e := findEntry(t.entries, key)
	if e.Key == nil {
		return value.Value{}, false
	}
	return e.Val, true
}

// Delete removes key, leaving a tombstone in its slot. Reports whether key
// was present.
func (t *Table) Delete(key *value.String) bool {
	if t.count == 0 {
		return false
	}
	e := findEntry(t.entries, key)
	if e.Key == nil {
		return false
	}
	e.Key = nil
	e.Val = value.Bool(true)
	return true
}

// FindString is the specialised lookup interning requires: instead of
// identity, it compares (length, hash, bytes) so a freshly-lexed string
// buffer can be matched against an already-interned one before a handle
// exists for it.
func (t *Table) FindString(bytes []byte, hash uint32) *value.String {
	if t.count == 0 {
		return nil
	}
	idx := int(hash) % len(t.entries)
	for {
		e := &t.entries[idx]
		if e.Key == nil {
			if e.empty() {
				return nil
			}
		} else if e.Key.Hash == hash && len(e.Key.Bytes) == len(bytes) && string(e.Key.Bytes) == string(bytes) {
			return e.Key
		}
		idx = (idx + 1) % len(t.entries)
	}
}

// Count returns the number of live + tombstone entries.
func (t *Table) Count() int { return t.count }
