// Package errs defines the closed error taxonomy of the Goat runtime core.
//
// Every failure the interpreter can observe is one of the kinds listed here
// (see spec §7). There is no language-level exception mechanism in the
// core; a Kind is either handled locally by the opcode that triggered it
// (property errors bubble as status codes to VAR/CONST/STORE) or it halts
// the interpreter outright (bad bytecode, unsupported operations).
package errs

import "fmt"

// Kind identifies one of the closed set of runtime failure categories.
type Kind uint8

const (
	// ImmutableObject is returned when add_property or set_property targets
	// an object that forbids mutation (singletons, built-in prototypes).
	ImmutableObject Kind = iota
	// PropertyAlreadyExists is returned by add_property on an existing key.
	PropertyAlreadyExists
	// PropertyNotFound is returned by set_property on an absent key.
	PropertyNotFound
	// PropertyIsConstant is returned by set_property on a constant key.
	PropertyIsConstant
	// BadBytecode indicates an ill-formed instruction stream: scratch
	// overflow, an out-of-range data-descriptor id, or a pop against an
	// empty stack.
	BadBytecode
	// OperationUnsupported indicates an arithmetic or coercion request
	// between operand kinds that have no definition.
	OperationUnsupported
)

var names = [...]string{
	"immutable_object",
	"property_already_exists",
	"property_not_found",
	"property_is_constant",
	"bad_bytecode",
	"operation_unsupported",
}

func (k Kind) String() string {
	if int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("errs.Kind(%d)", k)
}

// Error is a runtime error carrying one of the Kind values above plus a
// human-readable detail message.
type Error struct {
	Kind    Kind
	Message string
}

// New creates an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports whether err is an *Error of the given kind. It allows callers
// to use errors.Is(err, errs.PropertyNotFound) style checks via a sentinel
// comparison helper instead of type-asserting everywhere.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
