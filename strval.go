package goat

import "strings"

// StringValue is the string_value carrier from spec §3: a wide-character
// sequence, carried as a Go []rune so that indexing by code point (rather
// than by UTF-8 byte) matches the wchar_t semantics spec §6 describes for
// the bytecode data blob. OwnsData mirrors the owns_data flag: values
// returned by ToString on a StringObject alias that object's backing
// slice (OwnsData false) while freshly constructed values (concatenation,
// literals decoded from bytecode) own a private copy.
type StringValue struct {
	Data     []rune
	OwnsData bool
}

// NewGoStringValue wraps a Go string literal used internally (error
// messages, to_string_notation output, singleton names): always a private
// copy.
func NewGoStringValue(s string) *StringValue {
	return &StringValue{Data: []rune(s), OwnsData: true}
}

func (s *StringValue) Length() int { return len(s.Data) }

func (s *StringValue) String() string { return string(s.Data) }

// StringObject is the dynamic string kind (spec §3): a pooled, refcounted
// wide-character buffer. Literal string data decoded from a bytecode
// image's data blob (bytecode.go) and runtime concatenation results both
// produce StringObjects.
type StringObject struct {
	object
	Value []rune
}

func (s *StringObject) Kind() Kind       { return KindString }
func (s *StringObject) TypeTag() TypeTag { return TagString }

func (s *StringObject) Clone(target *Process) Value {
	if target == s.proc {
		s.IncRef()
		return s
	}
	return target.NewString(append([]rune(nil), s.Value...))
}

func (s *StringObject) ToString() *StringValue {
	return &StringValue{Data: s.Value, OwnsData: false}
}

func (s *StringObject) ToStringNotation(seen map[Value]bool) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s.Value {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (s *StringObject) Compare(other Value) int {
	os, ok := other.(*StringObject)
	if !ok {
		return s.object.Compare(other)
	}
	a, b := s.Value, os.Value
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func (s *StringObject) Add(p *Process, other Value) (Value, bool) {
	os, ok := other.(*StringObject)
	if !ok {
		return nil, false
	}
	joined := make([]rune, 0, len(s.Value)+len(os.Value))
	joined = append(joined, s.Value...)
	joined = append(joined, os.Value...)
	return p.NewString(joined), true
}

func (s *StringObject) Less(other Value) (Value, bool) {
	return boolFromCompare(s, other, func(c int) bool { return c < 0 })
}

func (s *StringObject) LessOrEqual(other Value) (Value, bool) {
	return boolFromCompare(s, other, func(c int) bool { return c <= 0 })
}

func (s *StringObject) Greater(other Value) (Value, bool) {
	return boolFromCompare(s, other, func(c int) bool { return c > 0 })
}

func (s *StringObject) GreaterOrEqual(other Value) (Value, bool) {
	return boolFromCompare(s, other, func(c int) bool { return c >= 0 })
}

func (s *StringObject) Equal(other Value) (Value, bool) {
	return boolFromCompare(s, other, func(c int) bool { return c == 0 })
}

func (s *StringObject) NotEqual(other Value) (Value, bool) {
	return boolFromCompare(s, other, func(c int) bool { return c != 0 })
}

// boolFromCompare is shared by every kind whose ordering comparisons
// delegate to Compare (strings today; integers and reals use numeric
// promotion instead since cross-kind comparison must work between them).
// It returns (nil, false) rather than panicking when other is not the
// same concrete kind as self, so mixed-kind comparisons fall through to
// operation_unsupported at the call site.
func boolFromCompare(self Value, other Value, pred func(int) bool) (Value, bool) {
	if self.Kind() != other.Kind() {
		return nil, false
	}
	if pred(self.Compare(other)) {
		return gTrue, true
	}
	return gFalse, true
}

// empty-string singleton.
var gEmptyString = &StringObject{object: object{protos: []Value{gRoot}}}

func init() {
	initObject(gEmptyString, nil)
	gEmptyString.base().singleton = true
}
