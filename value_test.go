package goat

import "testing"

func TestBuildTopologySingleProto(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	a := p.NewUserObject(nil)
	b := p.NewUserObject([]Value{a})

	topo := b.GetTopology()
	if len(topo) != 1 || topo[0] != Value(a) {
		t.Fatalf("topology = %v, want [a]", topo)
	}
}

func TestBuildTopologyDiamondDedup(t *testing.T) {
	// d has two direct protos b and c, both rooted in a; a must appear
	// exactly once in d's topology, and since b is declared first it
	// must win: b, then everything b inherits (a), then c.
	p := NewProcess(nil, discardLogger())
	a := p.NewUserObject(nil)
	b := p.NewUserObject([]Value{a})
	c := p.NewUserObject([]Value{a})
	d := p.NewUserObject([]Value{b, c})

	topo := d.GetTopology()
	want := []Value{b, a, c}
	if len(topo) != len(want) {
		t.Fatalf("topology = %v, want %v", topo, want)
	}
	for i := range want {
		if topo[i] != want[i] {
			t.Fatalf("topology = %v, want %v", topo, want)
		}
	}
}

func TestBuildTopologyOrdersEarlierProtoFirst(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	left := p.NewUserObject(nil)
	right := p.NewUserObject(nil)
	d := p.NewUserObject([]Value{left, right})

	topo := d.GetTopology()
	if len(topo) != 2 || topo[0] != Value(left) || topo[1] != Value(right) {
		t.Fatalf("topology = %v, want [left, right]", topo)
	}
}

func TestResolvePropertySelfBeforeTopology(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	base := p.NewUserObject(nil)
	base.AddProperty("x", p.NewInteger(1), false)
	child := p.NewUserObject([]Value{base})
	child.AddProperty("x", p.NewInteger(2), false)

	v, owner := ResolveProperty(p, child, "x")
	iv := v.GetIntegerValue()
	if !iv.HasValue || iv.Value != 2 {
		t.Fatalf("resolved x = %v, want 2 (child's own)", iv)
	}
	if owner != Value(child) {
		t.Fatalf("owner = %v, want child", owner)
	}
}

func TestResolvePropertyFallsThroughToPrototype(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	base := p.NewUserObject(nil)
	base.AddProperty("x", p.NewInteger(7), false)
	child := p.NewUserObject([]Value{base})

	v, owner := ResolveProperty(p, child, "x")
	iv := v.GetIntegerValue()
	if !iv.HasValue || iv.Value != 7 {
		t.Fatalf("resolved x = %v, want 7", iv)
	}
	if owner != Value(base) {
		t.Fatalf("owner = %v, want base", owner)
	}
}

func TestResolvePropertyMissingReturnsNilOwner(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	obj := p.NewUserObject(nil)

	v, owner := ResolveProperty(p, obj, "missing")
	if v != p.Nil {
		t.Fatalf("resolved missing property = %v, want Nil", v)
	}
	if owner != nil {
		t.Fatalf("owner = %v, want nil", owner)
	}
}

func TestSingletonIncDecRefAreNoOps(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	gRoot.IncRef()
	gRoot.DecRef(p)
	gRoot.DecRef(p)
	if gRoot.base().refs != 0 {
		t.Fatalf("singleton refs mutated: %d", gRoot.base().refs)
	}
}

func TestSingletonMarkSweepAreNoOps(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	gTrue.Mark()
	if gTrue.base().state == stateMarked {
		t.Fatalf("singleton state mutated by Mark")
	}
	gTrue.Sweep(p)
	if gTrue.base().state == stateZombie {
		t.Fatalf("singleton was swept")
	}
}

func TestObjectCompareFallsBackToAllocationOrder(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	a := p.NewUserObject(nil)
	b := p.NewUserObject(nil)
	if a.Compare(b) >= 0 {
		t.Fatalf("earlier-allocated object should compare less than a later one")
	}
	if b.Compare(a) <= 0 {
		t.Fatalf("later-allocated object should compare greater than an earlier one")
	}
}

func TestAddPropertyRejectsDuplicate(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	obj := p.NewUserObject(nil)
	if err := obj.AddProperty("x", p.NewInteger(1), false); err != nil {
		t.Fatalf("first AddProperty failed: %v", err)
	}
	if err := obj.AddProperty("x", p.NewInteger(2), false); err == nil {
		t.Fatalf("duplicate AddProperty should fail")
	}
}

func TestSetPropertyRejectsConstant(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	obj := p.NewUserObject(nil)
	obj.AddProperty("x", p.NewInteger(1), true)
	if err := obj.SetProperty("x", p.NewInteger(2)); err == nil {
		t.Fatalf("SetProperty on a constant should fail")
	}
}

func TestSetPropertyRejectsUnknown(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	obj := p.NewUserObject(nil)
	if err := obj.SetProperty("x", p.NewInteger(1)); err == nil {
		t.Fatalf("SetProperty on an absent key should fail")
	}
}
