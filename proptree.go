package goat

import "sort"

// propTree is the "self-balancing property tree" of spec §3: an ordered
// map from property name to value, additionally recording whether each
// property is constant. Ordering exists so that to_string_notation (spec
// §4.1) can emit properties "sorted by the property tree's in-order
// traversal."
//
// Every property key that ever reaches a propTree in this implementation
// is a Go string (spec's bytecode only ever names properties via
// data-descriptor string literals: VAR, CONST, STORE, and VLOAD all
// resolve a name string). Within a single TypeTag, spec §4.1.2 requires
// string keys to compare lexicographically, which is exactly Go string
// ordering; the general "compare first by type_tag, then by per-kind
// compare" rule for heterogeneous key kinds is implemented standalone as
// CompareKeys (see object_order.go) and exercised by its own tests, since
// no opcode in spec §4.6 ever constructs a non-string property key.
//
// A sorted slice is used rather than a hand-rolled balanced tree: for the
// small, typically append-mostly property sets real Goat objects carry,
// a binary-searched slice gives the same O(log n) lookup and O(n) in-order
// walk as a balanced tree with far less code to get right by hand.
type propTree struct {
	entries []propEntry
}

type propEntry struct {
	key      string
	value    Value
	constant bool
}

func newPropTree() *propTree {
	return &propTree{}
}

func (t *propTree) find(key string) (int, bool) {
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].key >= key
	})
	if i < len(t.entries) && t.entries[i].key == key {
		return i, true
	}
	return i, false
}

func (t *propTree) get(key string) (Value, bool) {
	if i, ok := t.find(key); ok {
		return t.entries[i].value, true
	}
	return nil, false
}

// insert adds a new entry. The caller must already have verified the key
// is absent (add_property's already_exists check happens one level up, in
// object.AddProperty, so the error can name the key without a second
// lookup here).
func (t *propTree) insert(key string, v Value, constant bool) {
	i, _ := t.find(key)
	t.entries = append(t.entries, propEntry{})
	copy(t.entries[i+1:], t.entries[i:])
	t.entries[i] = propEntry{key: key, value: v, constant: constant}
}

func (t *propTree) set(key string, v Value) error {
	i, ok := t.find(key)
	if !ok {
		return errPropertyNotFound(key)
	}
	if t.entries[i].constant {
		return errPropertyConstant(key)
	}
	t.entries[i].value = v
	return nil
}

func (t *propTree) each(f func(key string, v Value)) {
	for _, e := range t.entries {
		f(e.key, e.value)
	}
}
