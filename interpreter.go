package goat

// Run drives process to completion against image: it installs the
// configured number of threads at the image's entry point (instruction
// 0) and round-robins one instruction per thread per turn (spec §5's
// cooperative scheduling) until every thread has executed an END or the
// exit builtin halts the whole process, then runs one final
// mark-and-sweep pass. It returns the process's exit code; an
// instruction error stops the run at once and is returned with it.
func Run(process *Process, image *Bytecode) (int, error) {
	n := process.cfg.InitialThreads
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		t := newThread(process, process.RootContext, 0)
		t.Stack = newDataStack(process.cfg.StackInitialDepth)
		process.installThread(t)
	}

	executed := 0
	for process.threadHead != nil && !process.halted {
		t := process.threadHead
		if err := step(process, image, t); err != nil {
			return process.ExitCode, err
		}
		if t.halted {
			process.removeThread(t)
		} else if process.threadHead != nil {
			process.threadHead = process.threadHead.next
		}

		executed++
		if process.cfg.GCInterval > 0 && executed%process.cfg.GCInterval == 0 {
			process.collectCycles()
		}
	}
	process.collectCycles()
	return process.ExitCode, nil
}

// step executes exactly one instruction on t.
func step(p *Process, image *Bytecode, t *Thread) error {
	if t.ip < 0 || t.ip >= len(image.Instructions) {
		return errBadBytecode("instruction pointer %d out of range", t.ip)
	}
	in := image.Instructions[t.ip]
	next := t.ip + 1

	switch in.Opcode {
	case OpNOP:

	case OpARG:
		word := int64(uint64(in.Arg0)<<32 | uint64(in.Arg1))
		if err := t.pushScratch(word); err != nil {
			return err
		}

	case OpEND:
		t.halted = true
		return nil

	case OpPOP:
		if t.Stack.Depth() == 0 {
			return errBadBytecode("pop against an empty stack")
		}
		t.Stack.pop().DecRef(p)

	case OpNIL:
		t.Stack.push(p.Nil)

	case OpILOAD32:
		t.Stack.push(p.NewInteger(int64(int32(in.Arg1))))

	case OpILOAD64:
		words := t.takeScratch()
		if len(words) != 1 {
			return errBadBytecode("iload64 requires exactly one staged arg word, got %d", len(words))
		}
		t.Stack.push(p.NewInteger(words[0]))

	case OpSLOAD:
		idx := int(in.Arg1)
		if idx < 0 || idx >= len(image.Strings) {
			return errBadBytecode("sload: data descriptor %d out of range", idx)
		}
		src := image.Strings[idx]
		t.Stack.push(p.NewString(append([]rune(nil), src.Data...)))

	case OpVLOAD:
		name, err := literalName(image, int(in.Arg1))
		if err != nil {
			return err
		}
		v, _ := ResolveProperty(p, t.ctx.data, name)
		v.IncRef()
		t.Stack.push(v)

	case OpVAR:
		name, err := literalName(image, int(in.Arg1))
		if err != nil {
			return err
		}
		if t.Stack.Depth() == 0 {
			return errBadBytecode("var: missing initializer value on stack")
		}
		v := t.Stack.pop()
		if err := t.ctx.data.AddProperty(name, v, false); err != nil {
			return err
		}

	case OpCONST:
		name, err := literalName(image, int(in.Arg1))
		if err != nil {
			return err
		}
		if t.Stack.Depth() == 0 {
			return errBadBytecode("const: missing initializer value on stack")
		}
		v := t.Stack.pop()
		if err := t.ctx.data.AddProperty(name, v, true); err != nil {
			return err
		}

	case OpSTORE:
		name, err := literalName(image, int(in.Arg1))
		if err != nil {
			return err
		}
		if t.Stack.Depth() == 0 {
			return errBadBytecode("store: missing value on stack")
		}
		v := t.Stack.pop()
		old, owner := ResolveProperty(p, t.ctx.data, name)
		if owner == nil {
			return errPropertyNotFound(name)
		}
		if err := owner.SetProperty(name, v); err != nil {
			return err
		}
		old.DecRef(p)

	case OpADD:
		if err := binaryOp(p, t, Value.Add, "add"); err != nil {
			return err
		}

	case OpSUB:
		if err := binaryOp(p, t, Value.Subtract, "subtract"); err != nil {
			return err
		}

	case OpFUNC:
		paramCount := int(in.Arg0)
		entry := int(in.Arg1)
		names := t.Stack.popN(paramCount)
		params := make([]string, paramCount)
		for i, nv := range names {
			sv, ok := nv.(*StringObject)
			if !ok {
				return errBadBytecode("func: parameter name %d is not a string", i)
			}
			params[i] = string(sv.Value)
			nv.DecRef(p)
		}
		fn := p.newFunction(nil, entry, params, t.ctx)
		t.Stack.push(fn)

	case OpCALL:
		argCount := int(in.Arg0)
		if t.Stack.Depth() < argCount+1 {
			return errBadBytecode("call: stack underflow")
		}
		callee := t.Stack.pop()
		fn, isFunc := callee.(*FunctionObject)
		if isFunc && fn.IsDynamic() {
			args := t.Stack.popN(argCount)
			callCtx := newCallContext(p, fn.Closure, t.ctx, next, t.Stack.Depth())
			for i, param := range fn.Params {
				var v Value = p.Nil
				if i < len(args) {
					v = args[i]
				}
				if err := callCtx.data.AddProperty(param, v, false); err != nil {
					return err
				}
			}
			for i := len(fn.Params); i < len(args); i++ {
				args[i].DecRef(p)
			}
			callee.DecRef(p)
			t.ctx = callCtx
			t.ip = fn.Entry
			return nil
		}
		result, err := callee.Call(argCount, t)
		callee.DecRef(p)
		if err != nil {
			return err
		}
		t.Stack.push(result)

	case OpRET:
		if t.Stack.Depth() == 0 {
			return errBadBytecode("ret: missing return value on stack")
		}
		result := t.Stack.pop()
		ctx := t.ctx
		t.Stack.reduce(ctx.returnSlotIndex)
		t.Stack.push(result)
		t.ip = ctx.returnAddr
		t.ctx = ctx.caller
		ctx.data.DecRef(p)
		return nil

	case OpENTER:
		t.ctx = newContext(p, t.ctx)

	case OpLEAVE:
		ctx := t.ctx
		t.Stack.push(ctx.data)
		t.ctx = ctx.caller

	default:
		return errBadBytecode("unknown opcode %d", in.Opcode)
	}

	t.ip = next
	return nil
}

func literalName(image *Bytecode, idx int) (string, error) {
	if idx < 0 || idx >= len(image.Strings) {
		return "", errBadBytecode("string literal %d out of range", idx)
	}
	return image.Strings[idx].String(), nil
}

// binaryOp implements the shared ADD/SUB shape: pop b then a (a was
// pushed first, so it's deeper), invoke op on a, push the result or
// surface operation_unsupported.
func binaryOp(p *Process, t *Thread, op func(Value, *Process, Value) (Value, bool), name string) error {
	if t.Stack.Depth() < 2 {
		return errBadBytecode("%s: stack underflow", name)
	}
	b := t.Stack.pop()
	a := t.Stack.pop()
	result, ok := op(a, p, b)
	a.DecRef(p)
	b.DecRef(p)
	if !ok {
		return errUnsupportedOp(name, a, b)
	}
	t.Stack.push(result)
	return nil
}
