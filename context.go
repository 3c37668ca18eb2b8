package goat

// Context is an execution context (spec §4.3): the dynamic scope chain a
// thread walks for variable lookup, distinct from the object prototype
// chain but built from the same UserObject machinery. Each context's
// data object is prototyped on the data of the context it was entered
// from (ENTER) or on the called function's closure data (CALL), so
// VAR/VLOAD/STORE's lexical lookup is just ordinary property
// resolution (ResolveProperty) over data's topology.
type Context struct {
	data *UserObject

	caller *Context

	// returnAddr and returnSlotIndex are only meaningful for a context
	// created by a CALL: RET resumes the caller's thread at returnAddr,
	// truncates the data stack to returnSlotIndex entries (the depth it
	// had right before CALL's arguments were pushed) and pushes the
	// result, which therefore sits at index returnSlotIndex counted from
	// the bottom of the stack.
	returnAddr      int
	returnSlotIndex int

	// unwindingIndex is carried per spec §4.3's context layout but has no
	// reader or writer in this implementation: spec §4.6 defines no raise
	// or catch opcode, so nothing ever sets it away from its zero value.
	unwindingIndex int
}

// newContext allocates a nested context whose data object's sole
// prototype is parent's data object (spec §4.3: "ENTER creates a nested
// context whose prototype is the current context's data").
func newContext(p *Process, parent *Context) *Context {
	var protos []Value
	if parent != nil {
		protos = []Value{parent.data}
	}
	return &Context{
		data:   p.NewUserObject(protos),
		caller: parent,
	}
}

// newCallContext allocates the context a function invocation runs in:
// its data's sole prototype is the function's closure data (spec §4.3:
// "a function call creates a context whose prototype is the function's
// closure"), so lexical lookup sees the function's captured scope. caller
// is separate from closure: it is the context control returns to on RET,
// i.e. the calling thread's actual context at the call site, which may be
// nested arbitrarily far from the closure itself (a recursive call, or a
// call from inside another function body or an ENTER'd scope).
func newCallContext(p *Process, closure *Context, caller *Context, returnAddr, returnSlotIndex int) *Context {
	var protos []Value
	if closure != nil {
		protos = []Value{closure.data}
	}
	return &Context{
		data:            p.NewUserObject(protos),
		caller:          caller,
		returnAddr:      returnAddr,
		returnSlotIndex: returnSlotIndex,
	}
}
