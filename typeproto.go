package goat

// TypeProtoObject is the built-in per-kind prototype (spec §1: "per-type
// singletons that bypass both [refcounting and recycling]"). Every
// Integer, Real, String, and Function object's topology passes through
// exactly one of these. They carry no properties: builtins.go installs
// nothing on them, and like every singleton they reject AddProperty and
// SetProperty with immutable_object.
type TypeProtoObject struct {
	object
	name string
}

func (t *TypeProtoObject) Kind() Kind       { return KindTypeProto }
func (t *TypeProtoObject) TypeTag() TypeTag { return TagOther }
func (t *TypeProtoObject) Clone(target *Process) Value { return t }

func (t *TypeProtoObject) ToString() *StringValue {
	return NewGoStringValue(t.name)
}

func (t *TypeProtoObject) ToStringNotation(seen map[Value]bool) string {
	return t.name
}

func newTypeProto(name string) *TypeProtoObject {
	t := &TypeProtoObject{object: object{protos: []Value{gRoot}}}
	initObject(t, nil)
	t.singleton = true
	t.name = name
	return t
}

// The four built-in type prototypes. Number is shared by Integer and
// Real per spec §3's numeric coercion rules (both report TagNumber and
// compare freely against one another); String and Function each get
// their own.
var (
	gNumberProto   = newTypeProto("Number")
	gStringProto   = newTypeProto("String")
	gFunctionProto = newTypeProto("Function")
)

func init() {
	gIntegerZero.protos = []Value{gNumberProto}
	gRealPi.protos = []Value{gNumberProto}
	gEmptyString.protos = []Value{gStringProto}
}
