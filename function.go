package goat

// NativeFunc is a function capability implemented in Go rather than Goat
// bytecode: the built-in environment (builtins.go) is built entirely out
// of these, installed as constant properties on the root context's data
// object.
type NativeFunc func(p *Process, th *Thread, args []Value) (Value, error)

// FunctionObject is the function kind (spec §3). A FunctionObject is
// either:
//
//   - native: Native is set, Entry is unused. Calling it runs immediately
//     and synchronously through Call.
//   - dynamic (a closure produced by FUNC): Entry names the instruction
//     index of its body, Params names its formal arguments in order, and
//     Closure is the context whose data object becomes the new call
//     context's prototype (spec §4.3: "a function call creates a context
//     whose prototype is the function's closure"). Invoking a dynamic
//     function requires pushing a context and redirecting the
//     interpreter's instruction pointer, which only the CALL opcode
//     handler in interpreter.go can do; see Call's doc comment below.
//
// Every native FunctionObject installed by builtins.go is a singleton
// (object.singleton true): it is immortal and shared by every process, so
// it is exempt from refcounting and marking even though its owner, the
// root context's data object, is an ordinary refcounted object (Mark
// returns at once for a singleton, and a singleton is never swept).
type FunctionObject struct {
	object
	Native  NativeFunc
	Entry   int
	Params  []string
	Closure *Context

	// name is the builtin's registered name, used only by ToString/
	// ToStringNotation for diagnostics; it plays no part in dispatch or
	// lookup (those go through the owning object's property tree).
	name string
}

func (f *FunctionObject) Kind() Kind       { return KindFunction }
func (f *FunctionObject) TypeTag() TypeTag { return TagOther }

func (f *FunctionObject) IsDynamic() bool { return f.Native == nil }

// Mark additionally walks the captured closure's data object: Closure is
// a *Context, not a Value, so the shared object.Mark (which only
// recurses into protos and property values) never sees it on its own.
// A closure kept alive only by a FunctionObject reachable from a
// property tree would otherwise be collected out from under the
// function on the next cycle.
func (f *FunctionObject) Mark() {
	if f.singleton || f.state == stateMarked {
		return
	}
	f.object.Mark()
	if f.Closure != nil {
		f.Closure.data.Mark()
	}
}

func (f *FunctionObject) Clone(target *Process) Value {
	if f.singleton || target == f.proc {
		f.IncRef()
		return f
	}
	return target.newFunction(f.Native, f.Entry, f.Params, f.Closure)
}

func (f *FunctionObject) ToString() *StringValue {
	return NewGoStringValue(f.ToStringNotation(nil))
}

func (f *FunctionObject) ToStringNotation(seen map[Value]bool) string {
	if f.name != "" {
		return "<function " + f.name + ">"
	}
	return "<function>"
}

// Call is the generic per-kind invocation capability (spec §4.1). It only
// handles the native case: pop argCount operands off th's data stack (in
// call order, leftmost argument deepest) and invoke Native directly. A
// dynamic FunctionObject cannot complete a call synchronously — its body
// has not run yet — so it is never reached through this method; the CALL
// opcode in interpreter.go type-switches on FunctionObject.IsDynamic and
// performs the context push and instruction-pointer jump itself before
// ever calling Call.
func (f *FunctionObject) Call(argCount int, th *Thread) (Value, error) {
	if f.Native == nil {
		return nil, errUnsupportedOp("call", f, f)
	}
	args := th.Stack.popN(argCount)
	return f.Native(th.proc, th, args)
}

func newNativeFunction(name string, fn NativeFunc) *FunctionObject {
	f := &FunctionObject{Native: fn, name: name, object: object{protos: []Value{gFunctionProto}}}
	initObject(f, nil)
	f.singleton = true
	return f
}
