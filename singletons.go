package goat

// Singletons are created exactly once, are shared by every Process in the
// address space, and are process-independent (spec §3: "An object
// additionally carries a back-pointer to their owning process... except
// singletons"). Reference counting, marking, and sweeping are all no-ops
// for them (invariant 6); object.IncRef/DecRef/Mark/Sweep check
// object.singleton and return immediately.
//
// They are built once, here, at package init time rather than per-VM, the
// same way the teacher's vm.True/vm.False/vm.Nil are built once per *VM in
// NewVM; the difference is that spec invariant 6 makes Goat's singletons
// global rather than per-process, so a single package-level instance
// suffices for every Process that ever runs in one address space.

// RootObject is the universal prototype: empty topology, immutable,
// present as the last element of the topology of every object whose
// prototype chain reaches it (the built-in kinds, the type prototypes,
// and objects inheriting from them). A user object created with no
// prototypes has an empty topology, and Root does not appear in the
// topology of an object that inherits only from such user objects.
type RootObject struct {
	object
}

func (r *RootObject) Kind() Kind      { return KindRoot }
func (r *RootObject) TypeTag() TypeTag { return TagOther }

func (r *RootObject) Clone(target *Process) Value { return r }

func (r *RootObject) ToString() *StringValue {
	return NewGoStringValue("Root")
}

func (r *RootObject) ToStringNotation(seen map[Value]bool) string {
	return "Root"
}

func (r *RootObject) AddProperty(key string, v Value, constant bool) error {
	return errImmutable(KindRoot)
}

func (r *RootObject) SetProperty(key string, v Value) error {
	return errImmutable(KindRoot)
}

// NullObject is the single null instance: falsy, arithmetic fails.
type NullObject struct {
	object
}

func (n *NullObject) Kind() Kind       { return KindNull }
func (n *NullObject) TypeTag() TypeTag { return TagOther }
func (n *NullObject) Clone(target *Process) Value { return n }
func (n *NullObject) ToString() *StringValue      { return NewGoStringValue("null") }
func (n *NullObject) ToStringNotation(seen map[Value]bool) string {
	return "null"
}
func (n *NullObject) GetBooleanValue() bool { return false }
func (n *NullObject) AddProperty(key string, v Value, constant bool) error {
	return errImmutable(KindNull)
}
func (n *NullObject) SetProperty(key string, v Value) error {
	return errImmutable(KindNull)
}

// BooleanObject is one of the two boolean singletons: ordered by boolean
// value, arithmetic fails.
type BooleanObject struct {
	object
	Value bool
}

func (b *BooleanObject) Kind() Kind       { return KindBoolean }
func (b *BooleanObject) TypeTag() TypeTag { return TagBoolean }
func (b *BooleanObject) Clone(target *Process) Value { return b }

func (b *BooleanObject) ToString() *StringValue {
	if b.Value {
		return NewGoStringValue("true")
	}
	return NewGoStringValue("false")
}

func (b *BooleanObject) ToStringNotation(seen map[Value]bool) string {
	if b.Value {
		return "true"
	}
	return "false"
}

func (b *BooleanObject) Compare(other Value) int {
	ob, ok := other.(*BooleanObject)
	if !ok {
		return b.object.Compare(other)
	}
	switch {
	case b.Value == ob.Value:
		return 0
	case !b.Value && ob.Value:
		return -1
	default:
		return 1
	}
}

func (b *BooleanObject) GetBooleanValue() bool { return b.Value }

func (b *BooleanObject) AddProperty(key string, v Value, constant bool) error {
	return errImmutable(KindBoolean)
}
func (b *BooleanObject) SetProperty(key string, v Value) error {
	return errImmutable(KindBoolean)
}

// The process-independent singleton instances.
var (
	gRoot  = &RootObject{}
	gNull  = &NullObject{object: object{protos: []Value{gRoot}}}
	gTrue  = &BooleanObject{object: object{protos: []Value{gRoot}}, Value: true}
	gFalse = &BooleanObject{object: object{protos: []Value{gRoot}}, Value: false}
)

func init() {
	for _, v := range []Value{gRoot, gNull, gTrue, gFalse} {
		initObject(v, nil)
		v.base().singleton = true
	}
}
