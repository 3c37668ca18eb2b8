package goat

// argScratchCap is the fixed capacity of a thread's ARG scratch array
// (spec §4.6): ARG stages up to three wide operand words ahead of an
// instruction that needs more than the 8-byte format's arg0/arg1 fields
// carry. ILOAD64 is the only opcode that consumes them: FUNC takes its
// entry point from arg1 and its parameter names from the data stack, and
// CALL takes only its argument count, from arg0. A fourth ARG before the
// consuming instruction is bad bytecode.
const argScratchCap = 3

// Thread is one cooperatively-scheduled strand of execution within a
// Process (spec §4.5): its own data stack and context chain, but no
// memory of its own — allocation, the object list, and the pools all
// belong to the owning Process.
type Thread struct {
	proc *Process

	Stack *DataStack
	ctx   *Context

	ip int

	scratch    [argScratchCap]int64
	scratchLen int

	halted bool

	// prev/next link this thread into the process's round-robin ring.
	prev, next *Thread
}

func newThread(p *Process, ctx *Context, ip int) *Thread {
	return &Thread{
		proc:  p,
		Stack: newDataStack(16),
		ctx:   ctx,
		ip:    ip,
	}
}

func (t *Thread) pushScratch(word int64) error {
	if t.scratchLen >= argScratchCap {
		return errBadBytecode("ARG scratch overflow (more than %d before a consumer)", argScratchCap)
	}
	t.scratch[t.scratchLen] = word
	t.scratchLen++
	return nil
}

func (t *Thread) takeScratch() []int64 {
	out := append([]int64(nil), t.scratch[:t.scratchLen]...)
	t.scratchLen = 0
	return out
}
