package goat

import "testing"

func TestDecRefToZeroReclaimsAndPools(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	i := p.NewInteger(42)
	i.DecRef(p)

	if len(p.pools.integers) != 1 {
		t.Fatalf("pools.integers = %d, want 1 after reclaim", len(p.pools.integers))
	}

	reused := p.NewInteger(7)
	if reused != i {
		t.Fatalf("NewInteger after a reclaim did not reuse the pooled struct")
	}
	if reused.Value != 7 {
		t.Fatalf("reused integer carries stale value %d, want 7", reused.Value)
	}
	if reused.base().refs != 1 {
		t.Fatalf("reused integer refs = %d, want 1", reused.base().refs)
	}
}

func TestPoolCapacityBounded(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	// Hold every integer live before releasing any, so each release
	// offers a distinct struct to the pool.
	live := make([]*IntegerObject, 0, maxPoolSize+10)
	for i := 1; i <= maxPoolSize+10; i++ {
		live = append(live, p.NewInteger(int64(i)))
	}
	for _, v := range live {
		v.DecRef(p)
	}
	if len(p.pools.integers) != maxPoolSize {
		t.Fatalf("pools.integers = %d, want capped at %d", len(p.pools.integers), maxPoolSize)
	}
}

func TestReclaimCascadesIntoProperties(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	child := p.NewInteger(9)
	child.IncRef() // second owner: the property tree itself

	owner := p.NewUserObject(nil)
	owner.AddProperty("x", child, false)
	child.DecRef(p) // drop the caller's own reference; only the property remains live

	if child.base().refs != 1 {
		t.Fatalf("child refs = %d, want 1 (property tree's reference)", child.base().refs)
	}

	owner.DecRef(p) // drops owner to zero, which must cascade into child
	if child.base().refs != 0 || child.base().state != stateZombie {
		t.Fatalf("reclaiming owner did not release its property's reference")
	}
}

func TestReclaimCascadesIntoPrototypes(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	proto := p.NewUserObject(nil)

	child := p.NewUserObject([]Value{proto})
	if proto.base().refs != 2 {
		t.Fatalf("proto refs = %d, want 2 (ours plus child.protos)", proto.base().refs)
	}

	child.DecRef(p)
	if proto.base().refs != 1 {
		t.Fatalf("proto refs after reclaiming child = %d, want 1", proto.base().refs)
	}
}

func TestCollectCyclesReclaimsAnUnreachableCycle(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	a := p.NewUserObject(nil)
	b := p.NewUserObject(nil)
	a.AddProperty("b", b, false)
	b.IncRef()
	b.AddProperty("a", a, false)
	a.IncRef()

	// Drop the only references reachable from outside the cycle: a and b
	// now only keep each other alive, refcounting alone can't reclaim
	// them, only collectCycles can.
	a.DecRef(p)
	b.DecRef(p)

	if a.base().state == stateZombie || b.base().state == stateZombie {
		t.Fatalf("a cyclic pair must survive refcounting alone")
	}

	p.collectCycles()

	if a.base().state != stateZombie || b.base().state != stateZombie {
		t.Fatalf("collectCycles failed to reclaim an unreachable reference cycle")
	}
}

func TestCollectCyclesPreservesReachableObjects(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	live := p.NewUserObject(nil)
	p.RootContext.data.AddProperty("live", live, false)

	p.collectCycles()

	if live.base().state == stateZombie {
		t.Fatalf("collectCycles reclaimed an object reachable from the root context")
	}
	if live.base().refs != 1 {
		t.Fatalf("live refs = %d, want 1 (unaffected by a GC pass)", live.base().refs)
	}
}

func TestCollectCyclesMarksThreadStacksAndContexts(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	th := newThread(p, p.RootContext, 0)
	p.installThread(th)

	onStack := p.NewUserObject(nil)
	onStack.IncRef()
	th.Stack.push(onStack)

	th.ctx = newContext(p, p.RootContext)
	inContext := p.NewUserObject(nil)
	th.ctx.data.AddProperty("v", inContext, false)

	p.collectCycles()

	if onStack.base().state == stateZombie {
		t.Fatalf("collectCycles reclaimed an object live on a thread's data stack")
	}
	if inContext.base().state == stateZombie {
		t.Fatalf("collectCycles reclaimed an object held by a thread's current context")
	}
}
