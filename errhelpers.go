package goat

import "github.com/goatlang/goat/errs"

func errPropertyExists(key string) error {
	return errs.New(errs.PropertyAlreadyExists, "property %q already exists", key)
}

func errPropertyNotFound(key string) error {
	return errs.New(errs.PropertyNotFound, "property %q not found", key)
}

func errPropertyConstant(key string) error {
	return errs.New(errs.PropertyIsConstant, "property %q is constant", key)
}

func errImmutable(kind Kind) error {
	return errs.New(errs.ImmutableObject, "%s is immutable", kind)
}

func errUnsupportedOp(op string, a, b Value) error {
	return errs.New(errs.OperationUnsupported, "%s unsupported between %s and %s", op, a.Kind(), b.Kind())
}

func errBadBytecode(format string, args ...interface{}) error {
	return errs.New(errs.BadBytecode, format, args...)
}
