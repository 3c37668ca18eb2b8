package goat

// CompareKeys gives the total order spec §4.1.2 defines over property
// keys of any kind: primarily by TypeTag, then by each kind's own
// Compare within a shared tag. The property store actually used by this
// implementation (proptree.go) only ever holds Go string keys, since no
// opcode constructs a non-string property name; CompareKeys exists to
// state and test the general rule on its own, independent of that
// simplification.
func CompareKeys(a, b Value) int {
	at, bt := a.TypeTag(), b.TypeTag()
	switch {
	case at < bt:
		return -1
	case at > bt:
		return 1
	default:
		return a.Compare(b)
	}
}
