package goat

import "math"

// realMod is the float64 modulo used to promote Modulo when either operand
// is real: same sign convention as math.Mod (result takes the sign of x).
func realMod(x, y float64) float64 {
	return math.Mod(x, y)
}

// numericPower always promotes to real, mirroring spec §3's single
// real_value `power` capability: there is no dedicated integer power
// result, so an integer base raised to an integer exponent still comes
// back as a RealObject.
func numericPower(p *Process, a, b Value) (Value, bool) {
	af, aok := numericFloat(a)
	bf, bok := numericFloat(b)
	if !aok || !bok {
		return nil, false
	}
	return p.NewReal(math.Pow(af, bf)), true
}

// numericFloat coerces an Integer or Real operand to float64 for mixed
// arithmetic and cross-kind comparison; other kinds report !ok so the
// caller can report operation_unsupported.
func numericFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case *IntegerObject:
		return float64(n.Value), true
	case *RealObject:
		return n.Value, true
	default:
		return 0, false
	}
}

func bothInteger(a, b Value) (*IntegerObject, *IntegerObject, bool) {
	ai, aok := a.(*IntegerObject)
	bi, bok := b.(*IntegerObject)
	return ai, bi, aok && bok
}

// numericCompare orders two numeric operands, promoting to float64 unless
// both are integers (in which case exact int64 comparison avoids float
// rounding at large magnitudes).
func numericCompare(a, b Value) (int, bool) {
	if ai, bi, ok := bothInteger(a, b); ok {
		switch {
		case ai.Value < bi.Value:
			return -1, true
		case ai.Value > bi.Value:
			return 1, true
		default:
			return 0, true
		}
	}
	af, aok := numericFloat(a)
	bf, bok := numericFloat(b)
	if !aok || !bok {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	default:
		return 0, true
	}
}

func numericOrderOp(a, b Value, pred func(int) bool) (Value, bool) {
	c, ok := numericCompare(a, b)
	if !ok {
		return nil, false
	}
	if pred(c) {
		return gTrue, true
	}
	return gFalse, true
}

// numericBinOp implements the promotion rule shared by add/subtract/
// multiply/divide/modulo: integer-integer stays integer, anything else
// involving a number promotes to real. A nil intOp (RealObject's
// operators pass nil) skips the integer path; an intOp that reports
// ok=false (integer division or modulo by zero) fails the operation.
// power does not go through here: numericPower always promotes.
func numericBinOp(p *Process, a, b Value, intOp func(x, y int64) (int64, bool), realOp func(x, y float64) float64) (Value, bool) {
	if ai, bi, ok := bothInteger(a, b); ok && intOp != nil {
		if r, ok := intOp(ai.Value, bi.Value); ok {
			return p.NewInteger(r), true
		}
		return nil, false
	}
	af, aok := numericFloat(a)
	bf, bok := numericFloat(b)
	if !aok || !bok {
		return nil, false
	}
	return p.NewReal(realOp(af, bf)), true
}
