package goat

import (
	"log/slog"
)

// Process is one isolated Goat execution: its own object graph, its own
// memory pools, and a ring of cooperatively-scheduled threads sharing a
// single OS thread (spec §4.5, §5). Nothing here is synchronized because
// nothing here is meant to be touched concurrently; a process that wants
// real OS-level parallelism is supposed to be a second Process, not a
// second goroutine poking at this one.
type Process struct {
	ID uint64

	cfg *Config
	log *slog.Logger

	// objects is the intrusive head of every non-singleton object this
	// process owns, threaded through object.listPrev/listNext. Sweep walks
	// it once per cycle; reclaim unlinks from it.
	objects Value

	pools pools

	// stringCache is keyed by data-descriptor index. NewProcess creates it
	// empty and nothing reads or writes it: SLOAD allocates a fresh
	// StringObject from the decoded literal on every execution, and
	// VLOAD/VAR/CONST/STORE read the literal's text directly.
	stringCache map[uint32]Value

	threadHead *Thread
	threadLen  int

	// Nil, True, False alias the package-level singletons so call sites
	// read process.Nil instead of reaching across to the package globals
	// directly; spec describes these as process-visible constants even
	// though invariant 6 makes the underlying objects themselves
	// process-independent.
	Nil   Value
	True  Value
	False Value

	RootContext *Context

	ExitCode int
	halted   bool
}

// pools holds the capacity-bounded per-kind recycling pools from spec
// §4.2. Each is a simple LIFO slice of free objects ready to be
// repurposed by the next allocation of that kind; pushing past
// maxPoolSize just frees instead.
type pools struct {
	integers   []*IntegerObject
	reals      []*RealObject
	strings    []*StringObject
	userObjects []*UserObject
}

// maxPoolSize is spec §4.2's per-kind pool capacity.
const maxPoolSize = 1024

// NewProcess builds a Process ready to run a loaded Bytecode image. cfg
// may be nil, in which case DefaultConfig() is used.
func NewProcess(cfg *Config, log *slog.Logger) *Process {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = slog.Default()
	}
	p := &Process{
		cfg:         cfg,
		log:         log,
		stringCache: make(map[uint32]Value),
		Nil:         gNull,
		True:        gTrue,
		False:       gFalse,
	}
	p.RootContext = newContext(p, nil)
	installBuiltins(p)
	return p
}

// link inserts v at the head of the process's global object list.
func (p *Process) link(v Value) {
	o := v.base()
	o.listNext = p.objects
	if p.objects != nil {
		p.objects.base().listPrev = v
	}
	o.listPrev = nil
	p.objects = v
}

// unlink removes v from the process's global object list.
func (p *Process) unlink(v Value) {
	o := v.base()
	if o.listPrev != nil {
		o.listPrev.base().listNext = o.listNext
	} else if p.objects == v {
		p.objects = o.listNext
	}
	if o.listNext != nil {
		o.listNext.base().listPrev = o.listPrev
	}
	o.listPrev, o.listNext = nil, nil
}

// NewInteger returns the process-independent zero singleton for 0, and
// otherwise an Integer object owned by p, drawing from the integer pool
// before allocating fresh.
func (p *Process) NewInteger(v int64) *IntegerObject {
	if v == 0 {
		return gIntegerZero
	}
	if n := len(p.pools.integers); n > 0 {
		o := p.pools.integers[n-1]
		p.pools.integers = p.pools.integers[:n-1]
		o.Value = v
		o.refs = 1
		o.state = stateUnmarked
		o.seq = nextGlobalSeq()
		p.link(o)
		return o
	}
	o := &IntegerObject{object: object{protos: []Value{gNumberProto}}, Value: v}
	initObject(o, p)
	o.refs = 1
	p.link(o)
	return o
}

// NewReal returns a Real object owned by p.
func (p *Process) NewReal(v float64) *RealObject {
	if n := len(p.pools.reals); n > 0 {
		o := p.pools.reals[n-1]
		p.pools.reals = p.pools.reals[:n-1]
		o.Value = v
		o.refs = 1
		o.state = stateUnmarked
		o.seq = nextGlobalSeq()
		p.link(o)
		return o
	}
	o := &RealObject{object: object{protos: []Value{gNumberProto}}, Value: v}
	initObject(o, p)
	o.refs = 1
	p.link(o)
	return o
}

// NewString returns a String object owned by p wrapping data (data is
// taken by reference, not copied; callers that need to keep their own
// copy should pass a fresh slice).
func (p *Process) NewString(data []rune) *StringObject {
	if n := len(p.pools.strings); n > 0 {
		o := p.pools.strings[n-1]
		p.pools.strings = p.pools.strings[:n-1]
		o.Value = data
		o.refs = 1
		o.state = stateUnmarked
		o.seq = nextGlobalSeq()
		p.link(o)
		return o
	}
	o := &StringObject{object: object{protos: []Value{gStringProto}}, Value: data}
	initObject(o, p)
	o.refs = 1
	p.link(o)
	return o
}

// NewUserObject returns a fresh user-defined object owned by p with the
// given direct prototypes. Every element of protos gets its refcount
// bumped: reclaim's teardown path unconditionally DecRefs everything in
// o.protos, so ownership of each direct prototype reference is
// established here, at the one place objects acquire a protos list,
// rather than trusting every call site to remember it.
func (p *Process) NewUserObject(protos []Value) *UserObject {
	for _, proto := range protos {
		proto.IncRef()
	}
	if n := len(p.pools.userObjects); n > 0 {
		o := p.pools.userObjects[n-1]
		p.pools.userObjects = p.pools.userObjects[:n-1]
		o.protos = protos
		o.topology = nil
		o.keys = nil
		o.props = nil
		o.refs = 1
		o.state = stateUnmarked
		o.seq = nextGlobalSeq()
		p.link(o)
		return o
	}
	o := &UserObject{object: object{protos: protos}}
	initObject(o, p)
	o.refs = 1
	p.link(o)
	return o
}

// newFunction builds a dynamic or native-wrapping function object owned
// by p (used by FUNC and by FunctionObject.Clone's cross-process path;
// functions are not pooled since FUNC is comparatively rare next to
// arithmetic and string allocation).
func (p *Process) newFunction(native NativeFunc, entry int, params []string, closure *Context) *FunctionObject {
	o := &FunctionObject{
		object:  object{protos: []Value{gFunctionProto}},
		Native:  native,
		Entry:   entry,
		Params:  params,
		Closure: closure,
	}
	initObject(o, p)
	o.refs = 1
	p.link(o)
	if closure != nil {
		closure.data.IncRef()
	}
	return o
}

func (p *Process) installThread(t *Thread) {
	t.proc = p
	if p.threadHead == nil {
		t.next, t.prev = t, t
		p.threadHead = t
	} else {
		tail := p.threadHead.prev
		tail.next = t
		t.prev = tail
		t.next = p.threadHead
		p.threadHead.prev = t
	}
	p.threadLen++
}

func (p *Process) removeThread(t *Thread) {
	if p.threadLen == 1 {
		p.threadHead = nil
	} else {
		t.prev.next = t.next
		t.next.prev = t.prev
		if p.threadHead == t {
			p.threadHead = t.next
		}
	}
	t.prev, t.next = nil, nil
	p.threadLen--
}
