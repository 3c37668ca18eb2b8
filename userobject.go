package goat

import "strings"

// UserObject is the user-defined composite kind (spec §3): an ordered
// property tree plus a prototype list, both already provided by the
// embedded object base (object.props, object.keys, object.protos,
// object.topology). UserObject itself only needs to supply the
// overrides object can't default: its Kind/TypeTag tag, cross-process
// Clone, and rendering.
//
// A Context's data store (context.go) is also a *UserObject: spec §4.3
// describes context data as "an object," and reusing the same kind keeps
// ENTER/LEAVE's prototype wiring (a nested context's data is prototyped
// on the enclosing context's data) identical to ordinary object cloning.
type UserObject struct {
	object
}

func (u *UserObject) Kind() Kind       { return KindUserObject }
func (u *UserObject) TypeTag() TypeTag { return TagOther }

// Clone, for a user object, either bumps the refcount of the receiver
// (same-process case) or builds a structural copy owned by target: same
// direct prototypes, same keys in the same order, each property value
// carried across by reference with its refcount bumped rather than
// recursively cloned. A full deep clone would need cycle detection for
// self-referential object graphs (spec does not define one), so the
// shallow copy is the conservative choice; see DESIGN.md.
func (u *UserObject) Clone(target *Process) Value {
	if target == u.proc {
		u.IncRef()
		return u
	}
	n := target.NewUserObject(u.protos)
	for _, k := range u.keys {
		v, constant := u.propEntry(k)
		v.IncRef()
		n.AddProperty(k, v, constant)
	}
	return n
}

func (u *UserObject) propEntry(key string) (Value, bool) {
	if u.props == nil {
		return nil, false
	}
	if i, ok := u.props.find(key); ok {
		return u.props.entries[i].value, u.props.entries[i].constant
	}
	return nil, false
}

func (u *UserObject) ToString() *StringValue {
	return NewGoStringValue(u.ToStringNotation(make(map[Value]bool)))
}

func (u *UserObject) ToStringNotation(seen map[Value]bool) string {
	if seen[u] {
		return "{...}"
	}
	seen[u] = true
	defer delete(seen, u)

	var b strings.Builder
	b.WriteByte('{')
	first := true
	if u.props != nil {
		u.props.each(func(k string, v Value) {
			if !first {
				b.WriteByte(';')
			}
			first = false
			b.WriteString(k)
			b.WriteByte('=')
			if v != nil {
				b.WriteString(v.ToStringNotation(seen))
			} else {
				b.WriteString("null")
			}
		})
	}
	b.WriteByte('}')
	return b.String()
}
