package goat

import "strconv"

// IntegerObject is the dynamic integer kind (spec §3): a pooled, refcounted
// 64-bit signed value.
type IntegerObject struct {
	object
	Value int64
}

func (i *IntegerObject) Kind() Kind       { return KindInteger }
func (i *IntegerObject) TypeTag() TypeTag { return TagNumber }

func (i *IntegerObject) Clone(target *Process) Value {
	if target == i.proc {
		i.IncRef()
		return i
	}
	return target.NewInteger(i.Value)
}

func (i *IntegerObject) ToString() *StringValue {
	return NewGoStringValue(strconv.FormatInt(i.Value, 10))
}

func (i *IntegerObject) ToStringNotation(seen map[Value]bool) string {
	return strconv.FormatInt(i.Value, 10)
}

func (i *IntegerObject) Compare(other Value) int {
	if c, ok := numericCompare(i, other); ok {
		return c
	}
	return i.object.Compare(other)
}

func (i *IntegerObject) Add(p *Process, other Value) (Value, bool) {
	return numericBinOp(p, i, other,
		func(x, y int64) (int64, bool) { return x + y, true },
		func(x, y float64) float64 { return x + y })
}

func (i *IntegerObject) Subtract(p *Process, other Value) (Value, bool) {
	return numericBinOp(p, i, other,
		func(x, y int64) (int64, bool) { return x - y, true },
		func(x, y float64) float64 { return x - y })
}

func (i *IntegerObject) Multiply(p *Process, other Value) (Value, bool) {
	return numericBinOp(p, i, other,
		func(x, y int64) (int64, bool) { return x * y, true },
		func(x, y float64) float64 { return x * y })
}

func (i *IntegerObject) Divide(p *Process, other Value) (Value, bool) {
	return numericBinOp(p, i, other,
		func(x, y int64) (int64, bool) {
			if y == 0 {
				return 0, false
			}
			return x / y, true
		},
		func(x, y float64) float64 { return x / y })
}

func (i *IntegerObject) Modulo(p *Process, other Value) (Value, bool) {
	return numericBinOp(p, i, other,
		func(x, y int64) (int64, bool) {
			if y == 0 {
				return 0, false
			}
			return x % y, true
		},
		realMod)
}

func (i *IntegerObject) Power(p *Process, other Value) (Value, bool) {
	return numericPower(p, i, other)
}

func (i *IntegerObject) Less(other Value) (Value, bool)           { return numericOrderOp(i, other, func(c int) bool { return c < 0 }) }
func (i *IntegerObject) LessOrEqual(other Value) (Value, bool)    { return numericOrderOp(i, other, func(c int) bool { return c <= 0 }) }
func (i *IntegerObject) Greater(other Value) (Value, bool)        { return numericOrderOp(i, other, func(c int) bool { return c > 0 }) }
func (i *IntegerObject) GreaterOrEqual(other Value) (Value, bool) { return numericOrderOp(i, other, func(c int) bool { return c >= 0 }) }
func (i *IntegerObject) Equal(other Value) (Value, bool)          { return numericOrderOp(i, other, func(c int) bool { return c == 0 }) }
func (i *IntegerObject) NotEqual(other Value) (Value, bool)       { return numericOrderOp(i, other, func(c int) bool { return c != 0 }) }

func (i *IntegerObject) GetBooleanValue() bool { return i.Value != 0 }
func (i *IntegerObject) GetIntegerValue() IntValue { return IntValue{HasValue: true, Value: i.Value} }
func (i *IntegerObject) GetRealValue() RealValue   { return RealValue{HasValue: true, Value: float64(i.Value)} }

// zero-integer singleton: the value produced by ILOAD32/ILOAD64 folds
// through process.NewInteger, which hands back this singleton for every
// zero, same as the teacher's vm.numberCache reuses a small
// range of cached Number objects rather than allocating afresh.
var gIntegerZero = &IntegerObject{object: object{protos: []Value{gRoot}}}

func init() {
	initObject(gIntegerZero, nil)
	gIntegerZero.base().singleton = true
}
