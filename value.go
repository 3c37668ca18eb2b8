// Package goat implements the runtime core of Goat, a dynamic,
// prototype-based programming language: the object model, the hybrid
// reference-counting/tracing memory manager, the execution-context chain,
// the data stack, and the stack-based bytecode interpreter.
//
// The package consumes a loaded bytecode image (see Bytecode, in
// bytecode.go) and exposes a single entry point, Run, which drives a
// Process to completion. Parsing Goat source, compiling it to bytecode, and
// any debug tooling around the engine are external collaborators and are
// not part of this package.
package goat

import (
	"fmt"

	"github.com/zephyrtronium/contains"
)

// Kind identifies which of the object kinds described in spec §3 a Value
// implements. It is the primary key used to choose a dispatch table at
// construction time; Go expresses this as the dynamic type satisfying
// Value, with Kind as a fast discriminant for switches that don't want a
// type assertion.
type Kind uint8

// The kinds of Goat objects.
const (
	KindRoot Kind = iota
	KindNull
	KindBoolean
	KindInteger
	KindReal
	KindString
	KindFunction
	KindUserObject
	KindTypeProto
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindUserObject:
		return "object"
	case KindTypeProto:
		return "type-proto"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// TypeTag is the primary sort key used for property-key comparison (spec
// §4.1.2) and the first criterion objects are ordered by in Compare (spec
// §4.1).
type TypeTag uint8

// The type tags, in their comparison order.
const (
	TagBoolean TypeTag = iota
	TagNumber
	TagString
	TagOther
)

// gcState is the tri-state mark-and-sweep status of a dynamic object (spec
// §4.2). Singletons never carry a meaningful gcState; they are excluded
// from marking and sweeping entirely.
type gcState uint8

const (
	stateUnmarked gcState = iota
	stateMarked
	stateZombie
)

// Value is the interface every Goat object satisfies: the pair of a
// dispatch table (the Go dynamic type, chosen once at construction) and
// per-kind state, exactly as described in spec §3 and §4.1. Implementers
// embed object and override only the methods where their kind's behavior
// differs from the shared stubs object provides; this is the Go analogue
// of the "many kinds use the same stub implementations" note in spec §4.1.
type Value interface {
	Kind() Kind
	TypeTag() TypeTag
	base() *object

	// Reference counting. Singletons implement both as no-ops (spec
	// invariant 6). DecRef to zero triggers pool-or-free via p.reclaim.
	IncRef()
	DecRef(p *Process)

	// Mark sets the object's GC state to MARKED and, for composite kinds,
	// recurses into every referenced key, value, and prototype. It must be
	// idempotent within one cycle: a MARKED object is not re-walked.
	Mark()
	// Sweep reclaims an UNMARKED object or clears a MARKED one back to
	// UNMARKED, preserving it. Called exactly once per object per cycle.
	Sweep(p *Process)
	// Release is unconditional teardown used at process shutdown.
	Release(p *Process)

	// Compare gives a total order on objects sharing a TypeTag; objects of
	// different tags are ordered by tag value (spec §4.1.2).
	Compare(other Value) int
	// Clone returns self with a bumped refcount if target is the owning
	// process, or a fresh equivalent owned by target otherwise. Singletons
	// always return self.
	Clone(target *Process) Value

	ToString() *StringValue
	// ToStringNotation returns a syntactic form that, if reparsed,
	// reproduces the object. seen guards against infinite recursion on
	// cyclic user-defined object graphs (not specified, but required for
	// totality; see SPEC_FULL.md §4.1).
	ToStringNotation(seen map[Value]bool) string

	GetPrototypes() []Value
	GetTopology() []Value
	GetKeys() []string
	// GetProperty looks up key on self only, returning the null singleton
	// (via the supplied process) if absent.
	GetProperty(p *Process, key string) Value
	AddProperty(key string, v Value, constant bool) error
	SetProperty(key string, v Value) error

	// Arithmetic capabilities allocate their result on p (which need not be
	// the receiver's owning process: spec §4.6 lets a thread combine
	// operands cloned from elsewhere). Comparison capabilities never
	// allocate; they return one of the two boolean singletons, so they take
	// no process.
	Add(p *Process, other Value) (Value, bool)
	Subtract(p *Process, other Value) (Value, bool)
	Multiply(p *Process, other Value) (Value, bool)
	Divide(p *Process, other Value) (Value, bool)
	Modulo(p *Process, other Value) (Value, bool)
	Power(p *Process, other Value) (Value, bool)
	Less(other Value) (Value, bool)
	LessOrEqual(other Value) (Value, bool)
	Greater(other Value) (Value, bool)
	GreaterOrEqual(other Value) (Value, bool)
	Equal(other Value) (Value, bool)
	NotEqual(other Value) (Value, bool)

	GetBooleanValue() bool
	GetIntegerValue() IntValue
	GetRealValue() RealValue

	// Call invokes the object as a function (spec §4.1's `call`
	// capability). The default, used by every kind but Function, returns
	// the receiver unchanged and consumes no arguments, mirroring the
	// teacher's default Activate behavior for non-activatable objects.
	Call(argCount int, th *Thread) (Value, error)
}

// IntValue is the int_value carrier from spec §3: HasValue is false when a
// coercion to integer is impossible.
type IntValue struct {
	HasValue bool
	Value    int64
}

// RealValue is the real_value carrier from spec §3.
type RealValue struct {
	HasValue bool
	Value    float64
}

// object is the common base embedded by every Goat object. It
// carries the bookkeeping the memory manager, topology cache, and property
// store need, factored out so each kind only implements the methods where
// its behavior is not shared (spec §4.1: "many kinds use the same stub
// implementations").
//
// Per spec §5, a single OS thread drives a process's interpreter
// cooperatively, so these fields need no synchronization; a concurrent
// driver would need to add the per-process mutex spec §5 describes around
// allocation, free, and list manipulation.
type object struct {
	proc *Process

	// self is the outer Value this object is embedded in, set once by the
	// owning kind's constructor (see initObject). It lets the shared
	// bookkeeping methods below (DecRef, Sweep, Call, ...) pass "this
	// object" on to the process without every kind having to re-implement
	// them just to close over its own concrete type.
	self Value

	// singleton marks a process-independent, immortal object (invariant 6):
	// IncRef, DecRef, Mark, and Sweep are no-ops.
	singleton bool

	refs  int32
	state gcState
	seq   uintptr

	protos   []Value
	topology []Value // cached C3 linearization; nil until first GetTopology

	keys  []string
	props *propTree

	// listPrev/listNext are intrusive links in proc.objects. A pooled
	// object sits in its kind's pool slice with both links cleared.
	listPrev, listNext Value
}

// globalSeq hands out the identity key buildTopology's dedup set and
// object.Compare's allocation-order fallback both rely on. It is
// process-independent (unlike everything else in this file) because
// singletons and ordinary process-owned objects both need to compare
// and dedup against one another inside a single multi-prototype
// topology walk; a per-process counter would hand out colliding zero
// values to every singleton, which never pass through a Process
// constructor.
var globalSeq uintptr

func nextGlobalSeq() uintptr {
	globalSeq++
	return globalSeq
}

// initObject wires an embedded object's self-reference, owning process,
// and identity key. Every kind constructor calls this immediately after
// allocating.
func initObject(v Value, proc *Process) {
	o := v.base()
	o.self = v
	o.proc = proc
	o.seq = nextGlobalSeq()
}

func (o *object) base() *object { return o }

func (o *object) IncRef() {
	if o.singleton {
		return
	}
	o.refs++
}

func (o *object) DecRef(p *Process) {
	if o.singleton {
		return
	}
	o.refs--
	if o.refs <= 0 {
		p.reclaim(o.self)
	}
}

func (o *object) Mark() {
	if o.singleton || o.state == stateMarked {
		return
	}
	o.state = stateMarked
	for _, proto := range o.protos {
		proto.Mark()
	}
	if o.props != nil {
		o.props.each(func(k string, v Value) {
			v.Mark()
		})
	}
}

func (o *object) Sweep(p *Process) {
	if o.singleton {
		return
	}
	if o.state == stateMarked {
		o.state = stateUnmarked
		return
	}
	p.reclaim(o.self)
}

func (o *object) Release(p *Process) {
	if o.singleton {
		return
	}
	o.refs = 0
}

// Compare orders objects of different TypeTags by tag value and falls
// back to allocation order when a kind has no intrinsic order. Pool recycling reuses Go pointers, so spec's reference design
// (native-pointer ordering) is replaced with a monotonic sequence number
// assigned at each logical allocation; see DESIGN.md.
func (o *object) Compare(other Value) int {
	if at, bt := o.self.TypeTag(), other.TypeTag(); at != bt {
		if at < bt {
			return -1
		}
		return 1
	}
	ob := other.base()
	switch {
	case o.seq < ob.seq:
		return -1
	case o.seq > ob.seq:
		return 1
	default:
		return 0
	}
}

func (o *object) Clone(target *Process) Value {
	panic("goat: object.Clone must be overridden by every kind")
}

func (o *object) GetPrototypes() []Value {
	return o.protos
}

func (o *object) GetTopology() []Value {
	if o.topology == nil {
		o.topology = buildTopology(o.protos)
	}
	return o.topology
}

func (o *object) invalidateTopology() {
	o.topology = nil
}

func (o *object) GetKeys() []string {
	return o.keys
}

func (o *object) GetProperty(p *Process, key string) Value {
	if o.props == nil {
		return p.Nil
	}
	if v, ok := o.props.get(key); ok {
		return v
	}
	return p.Nil
}

func (o *object) AddProperty(key string, v Value, constant bool) error {
	if o.singleton {
		return errImmutable(o.self.Kind())
	}
	if o.props == nil {
		o.props = newPropTree()
	}
	if _, ok := o.props.get(key); ok {
		return errPropertyExists(key)
	}
	o.props.insert(key, v, constant)
	o.keys = append(o.keys, key)
	return nil
}

func (o *object) SetProperty(key string, v Value) error {
	if o.singleton {
		return errImmutable(o.self.Kind())
	}
	if o.props == nil {
		return errPropertyNotFound(key)
	}
	return o.props.set(key, v)
}

// Arithmetic defaults: unsupported for every kind unless overridden.
func (o *object) Add(p *Process, other Value) (Value, bool)      { return nil, false }
func (o *object) Subtract(p *Process, other Value) (Value, bool) { return nil, false }
func (o *object) Multiply(p *Process, other Value) (Value, bool) { return nil, false }
func (o *object) Divide(p *Process, other Value) (Value, bool)   { return nil, false }
func (o *object) Modulo(p *Process, other Value) (Value, bool)   { return nil, false }
func (o *object) Power(p *Process, other Value) (Value, bool)    { return nil, false }
func (o *object) Less(other Value) (Value, bool)             { return nil, false }
func (o *object) LessOrEqual(other Value) (Value, bool)      { return nil, false }
func (o *object) Greater(other Value) (Value, bool)          { return nil, false }
func (o *object) GreaterOrEqual(other Value) (Value, bool)   { return nil, false }
func (o *object) Equal(other Value) (Value, bool)            { return nil, false }
func (o *object) NotEqual(other Value) (Value, bool)         { return nil, false }

func (o *object) GetBooleanValue() bool           { return true }
func (o *object) GetIntegerValue() IntValue       { return IntValue{} }
func (o *object) GetRealValue() RealValue         { return RealValue{} }

// Call's shared default returns the receiver unchanged, matching the
// teacher's Object.Activate fallback for non-activatable objects.
func (o *object) Call(argCount int, th *Thread) (Value, error) {
	return o.self, nil
}

// buildTopology computes the linearization described in spec §4.1.3,
// given an object's direct prototypes: direct prototypes appear in their
// declared order, each immediately followed by whatever of its own
// topology hasn't already appeared, so that an earlier direct prototype
// (and everything it inherits from) always precedes a later one wherever
// the two don't share ancestry — spec's "earlier direct prototypes win
// ties" (§4.1.1's lookup order walks the topology front-to-back and
// returns the first match).
//
// With exactly one direct prototype p, this is just [p, p.topology...]
// (the cheap path, and also the base case the general merge below
// reduces to). With more than one, a shared ancestor is kept at its
// first occurrence and skipped on every later one, using a contains.Set
// for dedup exactly as the teacher's internal/slots.go GetSlot and
// internal/object.go IsKindOf do for the analogous proto-graph walk.
func buildTopology(protos []Value) []Value {
	if len(protos) == 0 {
		return nil
	}
	if len(protos) == 1 {
		p := protos[0]
		t := p.GetTopology()
		out := make([]Value, 0, len(t)+1)
		out = append(out, p)
		out = append(out, t...)
		return out
	}
	var set contains.Set
	var out []Value
	add := func(v Value) {
		if set.Add(v.base().seq) {
			out = append(out, v)
		}
	}
	for _, p := range protos {
		add(p)
		for _, t := range p.GetTopology() {
			add(t)
		}
	}
	return out
}

// ResolveProperty walks self, then self's topology in order, returning the
// first match and the object that owns it. It returns (nil, nil) only when
// self itself is nil; otherwise the null singleton is returned as value
// when nothing matches, per spec §4.1.1.
func ResolveProperty(p *Process, self Value, key string) (value Value, owner Value) {
	if v := self.GetProperty(p, key); v != p.Nil {
		return v, self
	}
	for _, proto := range self.GetTopology() {
		if v := proto.GetProperty(p, key); v != p.Nil {
			return v, proto
		}
	}
	return p.Nil, nil
}
