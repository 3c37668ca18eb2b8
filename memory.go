package goat

// reclaim is the single path by which a non-singleton object's storage is
// given back: called by object.DecRef when a refcount hits zero, and by
// object.Sweep when mark-and-sweep finds an object nothing marked this
// cycle. Both transitions are equally final, so reclaim treats them
// identically: release every reference the object itself was holding
// (cascading further DecRefs, which is how an acyclic chain of garbage
// collapses in one refcount-driven pass without waiting for a GC cycle),
// unlink from the process's object list, and either recycle the backing
// struct through its kind's pool or let it go to Go's own collector.
//
// state doubles as a reentrancy guard: an object already mid-reclaim (a
// member of a reference cycle mark-and-sweep is tearing down, where
// DecRef cascades can revisit the same object) is left alone the second
// time.
func (p *Process) reclaim(v Value) {
	o := v.base()
	if o.singleton || o.state == stateZombie {
		return
	}
	o.state = stateZombie
	p.unlink(v)

	for _, proto := range o.protos {
		proto.DecRef(p)
	}
	if o.props != nil {
		o.props.each(func(_ string, cv Value) {
			cv.DecRef(p)
		})
	}
	o.protos = nil
	o.topology = nil
	o.keys = nil
	o.props = nil

	switch obj := v.(type) {
	case *IntegerObject:
		obj.protos = []Value{gNumberProto}
		p.recycleInteger(obj)
	case *RealObject:
		obj.protos = []Value{gNumberProto}
		p.recycleReal(obj)
	case *StringObject:
		obj.Value = nil
		obj.protos = []Value{gStringProto}
		p.recycleString(obj)
	case *UserObject:
		p.recycleUserObject(obj)
	case *FunctionObject:
		if obj.Closure != nil {
			obj.Closure.data.DecRef(p)
		}
		// Functions are not pooled (see process.newFunction); let Go's
		// garbage collector reclaim the struct itself.
	default:
		// Any other kind not backed by a pool.
	}
}

func (p *Process) recycleInteger(o *IntegerObject) {
	if len(p.pools.integers) >= maxPoolSize {
		return
	}
	p.pools.integers = append(p.pools.integers, o)
}

func (p *Process) recycleReal(o *RealObject) {
	if len(p.pools.reals) >= maxPoolSize {
		return
	}
	p.pools.reals = append(p.pools.reals, o)
}

func (p *Process) recycleString(o *StringObject) {
	if len(p.pools.strings) >= maxPoolSize {
		return
	}
	p.pools.strings = append(p.pools.strings, o)
}

func (p *Process) recycleUserObject(o *UserObject) {
	if len(p.pools.userObjects) >= maxPoolSize {
		return
	}
	p.pools.userObjects = append(p.pools.userObjects, o)
}

// collectCycles runs one mark-and-sweep pass (spec §4.2): refcounting
// alone cannot reclaim reference cycles (two objects holding constant
// properties on each other, say), so this periodic pass marks everything
// reachable from every thread's live roots, then sweeps the process's
// entire object list, reclaiming whatever wasn't marked.
//
// It is only ever invoked between instructions (interpreter.go calls it
// every Config.GCInterval instructions executed, and once more when Run
// finishes), never mid-opcode, so no
// object a handler is currently holding a Go-level pointer to but hasn't
// yet pushed back onto a stack or context can be swept out from under
// it.
func (p *Process) collectCycles() {
	for t := p.threadHead; t != nil; {
		for i := 0; i < t.Stack.Depth(); i++ {
			t.Stack.peek(i).Mark()
		}
		for c := t.ctx; c != nil; c = c.caller {
			c.data.Mark()
		}
		t = t.next
		if t == p.threadHead {
			break
		}
	}
	p.RootContext.data.Mark()

	// Snapshot the list first: a reclaim can cascade into other objects
	// and unlink them, including the one a cached next link points at.
	// Sweeping an object that a cascade already reclaimed is a no-op.
	var all []Value
	for v := p.objects; v != nil; v = v.base().listNext {
		all = append(all, v)
	}
	for _, v := range all {
		v.Sweep(p)
	}
}
