package goat

import (
	"math"

	"golang.org/x/sys/unix"
)

// installBuiltins wires the built-in environment (spec §6) onto a fresh
// process's root context, the same way the teacher's initObject installs
// slots like "clone" and "type" directly onto Object at VM construction
// time. Every native here is a singleton FunctionObject (see
// newNativeFunction), so installing it just stores an existing immortal
// value as a constant property; nothing is allocated per process except
// the property-tree entry itself.
func installBuiltins(p *Process) {
	data := p.RootContext.data
	must := func(name string, v Value) {
		if err := data.AddProperty(name, v, true); err != nil {
			panic("goat: duplicate builtin " + name)
		}
	}

	must("pi", gRealPi)
	must("print", newNativeFunction("print", builtinPrint))
	must("sign", newNativeFunction("sign", builtinSign))
	must("atan", newNativeFunction("atan", builtinAtan))
	must("typeName", newNativeFunction("typeName", builtinTypeName))
	must("exit", newNativeFunction("exit", builtinExit))
}

// releaseArgs is the shared cleanup every native runs once it is done
// reading its arguments: args arrived with one reference apiece handed
// off by CALL's popN, and a native that doesn't forward an argument
// into its result (none of these do) must give that reference back.
func releaseArgs(p *Process, args []Value) {
	for _, a := range args {
		a.DecRef(p)
	}
}

// builtinPrint writes its argument's string form to stdout via a direct
// syscall, matching spec §6's single sanctioned I/O surface and the
// teacher's preference (internal/system_unix.go) for going straight to
// the kernel rather than through os.Stdout's buffering.
func builtinPrint(p *Process, th *Thread, args []Value) (Value, error) {
	defer releaseArgs(p, args)
	if len(args) == 0 {
		return p.Nil, nil
	}
	s := args[0].ToString().String()
	_, err := unix.Write(1, []byte(s))
	if err != nil {
		return nil, err
	}
	return p.Nil, nil
}

func builtinSign(p *Process, th *Thread, args []Value) (Value, error) {
	defer releaseArgs(p, args)
	if len(args) == 0 {
		return nil, errUnsupportedOp("sign", p.Nil, p.Nil)
	}
	f, ok := numericFloat(args[0])
	if !ok {
		return nil, errUnsupportedOp("sign", args[0], args[0])
	}
	switch {
	case f < 0:
		return p.NewInteger(-1), nil
	case f > 0:
		return p.NewInteger(1), nil
	default:
		return p.NewInteger(0), nil
	}
}

// builtinAtan is the two-argument arctangent atan(y, x), i.e. math.Atan2,
// not the one-argument atan: spec §6 defines it over a (y, x) pair so it
// can distinguish quadrants, matching math.Atan2's own (y, x) argument
// order.
func builtinAtan(p *Process, th *Thread, args []Value) (Value, error) {
	defer releaseArgs(p, args)
	if len(args) < 2 {
		return nil, errUnsupportedOp("atan", p.Nil, p.Nil)
	}
	y, ok := numericFloat(args[0])
	if !ok {
		return nil, errUnsupportedOp("atan", args[0], args[0])
	}
	x, ok := numericFloat(args[1])
	if !ok {
		return nil, errUnsupportedOp("atan", args[1], args[1])
	}
	return p.NewReal(math.Atan2(y, x)), nil
}

// builtinTypeName is SPEC_FULL.md's first added builtin: a Goat-level
// hook onto the Kind discriminant every Value already carries, useful for
// introspection and diagnostics without adding a whole reflection API.
func builtinTypeName(p *Process, th *Thread, args []Value) (Value, error) {
	defer releaseArgs(p, args)
	if len(args) == 0 {
		return p.NewString([]rune(KindNull.String())), nil
	}
	return p.NewString([]rune(args[0].Kind().String())), nil
}

// builtinExit is SPEC_FULL.md's second added builtin: an orderly halt of
// the whole process (every thread, not just the caller) with a status
// code, since spec's bare END opcode only ever stops the thread that
// executes it.
func builtinExit(p *Process, th *Thread, args []Value) (Value, error) {
	defer releaseArgs(p, args)
	code := 0
	if len(args) > 0 {
		if iv := args[0].GetIntegerValue(); iv.HasValue {
			code = int(iv.Value)
		}
	}
	p.ExitCode = code
	p.halted = true
	return p.Nil, nil
}
