package goat

import "testing"

func TestDataStackPushPopOrder(t *testing.T) {
	s := newDataStack(4)
	s.push(gTrue)
	s.push(gFalse)
	if got := s.pop(); got != Value(gFalse) {
		t.Fatalf("pop = %v, want gFalse", got)
	}
	if got := s.pop(); got != Value(gTrue) {
		t.Fatalf("pop = %v, want gTrue", got)
	}
}

func TestDataStackPopNPreservesCallOrder(t *testing.T) {
	p := NewProcess(nil, discardLogger())
	a := p.NewInteger(1)
	b := p.NewInteger(2)
	c := p.NewInteger(3)
	s := newDataStack(4)
	s.push(a)
	s.push(b)
	s.push(c)

	got := s.popN(3)
	if len(got) != 3 || got[0] != Value(a) || got[1] != Value(b) || got[2] != Value(c) {
		t.Fatalf("popN = %v, want [a, b, c] (leftmost argument deepest)", got)
	}
	if s.Depth() != 0 {
		t.Fatalf("Depth after popN(3) on a 3-deep stack = %d, want 0", s.Depth())
	}
}

func TestDataStackPopNZeroReturnsNil(t *testing.T) {
	s := newDataStack(4)
	s.push(gTrue)
	if got := s.popN(0); got != nil {
		t.Fatalf("popN(0) = %v, want nil", got)
	}
	if s.Depth() != 1 {
		t.Fatalf("popN(0) should not touch the stack, depth = %d", s.Depth())
	}
}

func TestDataStackPeekDoesNotRemove(t *testing.T) {
	s := newDataStack(4)
	s.push(gTrue)
	s.push(gFalse)
	if got := s.peek(0); got != Value(gFalse) {
		t.Fatalf("peek(0) = %v, want top (gFalse)", got)
	}
	if got := s.peek(1); got != Value(gTrue) {
		t.Fatalf("peek(1) = %v, want gTrue", got)
	}
	if s.Depth() != 2 {
		t.Fatalf("peek mutated depth: %d", s.Depth())
	}
}

func TestDataStackReplaceTop(t *testing.T) {
	s := newDataStack(4)
	s.push(gTrue)
	s.replaceTop(gFalse)
	if got := s.pop(); got != Value(gFalse) {
		t.Fatalf("replaceTop did not take effect: got %v", got)
	}
}

func TestDataStackReduceTruncates(t *testing.T) {
	s := newDataStack(4)
	s.push(gTrue)
	s.push(gFalse)
	s.push(gTrue)
	s.reduce(1)
	if s.Depth() != 1 {
		t.Fatalf("Depth after reduce(1) = %d, want 1", s.Depth())
	}
	if got := s.peek(0); got != Value(gTrue) {
		t.Fatalf("reduce(1) left the wrong value on top: %v", got)
	}
}

func TestDataStackPopPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("pop on an empty stack should panic")
		}
	}()
	newDataStack(0).pop()
}
