package goat

import "strconv"

// RealObject is the dynamic real kind (spec §3): a pooled, refcounted
// IEEE-754 double.
type RealObject struct {
	object
	Value float64
}

func (r *RealObject) Kind() Kind       { return KindReal }
func (r *RealObject) TypeTag() TypeTag { return TagNumber }

func (r *RealObject) Clone(target *Process) Value {
	if target == r.proc {
		r.IncRef()
		return r
	}
	return target.NewReal(r.Value)
}

func (r *RealObject) ToString() *StringValue {
	return NewGoStringValue(strconv.FormatFloat(r.Value, 'g', -1, 64))
}

func (r *RealObject) ToStringNotation(seen map[Value]bool) string {
	return strconv.FormatFloat(r.Value, 'g', -1, 64)
}

func (r *RealObject) Compare(other Value) int {
	if c, ok := numericCompare(r, other); ok {
		return c
	}
	return r.object.Compare(other)
}

func (r *RealObject) Add(p *Process, other Value) (Value, bool) {
	return numericBinOp(p, r, other, nil, func(x, y float64) float64 { return x + y })
}

func (r *RealObject) Subtract(p *Process, other Value) (Value, bool) {
	return numericBinOp(p, r, other, nil, func(x, y float64) float64 { return x - y })
}

func (r *RealObject) Multiply(p *Process, other Value) (Value, bool) {
	return numericBinOp(p, r, other, nil, func(x, y float64) float64 { return x * y })
}

func (r *RealObject) Divide(p *Process, other Value) (Value, bool) {
	return numericBinOp(p, r, other, nil, func(x, y float64) float64 { return x / y })
}

func (r *RealObject) Modulo(p *Process, other Value) (Value, bool) {
	return numericBinOp(p, r, other, nil, realMod)
}

func (r *RealObject) Power(p *Process, other Value) (Value, bool) {
	return numericPower(p, r, other)
}

func (r *RealObject) Less(other Value) (Value, bool)           { return numericOrderOp(r, other, func(c int) bool { return c < 0 }) }
func (r *RealObject) LessOrEqual(other Value) (Value, bool)    { return numericOrderOp(r, other, func(c int) bool { return c <= 0 }) }
func (r *RealObject) Greater(other Value) (Value, bool)        { return numericOrderOp(r, other, func(c int) bool { return c > 0 }) }
func (r *RealObject) GreaterOrEqual(other Value) (Value, bool) { return numericOrderOp(r, other, func(c int) bool { return c >= 0 }) }
func (r *RealObject) Equal(other Value) (Value, bool)          { return numericOrderOp(r, other, func(c int) bool { return c == 0 }) }
func (r *RealObject) NotEqual(other Value) (Value, bool)       { return numericOrderOp(r, other, func(c int) bool { return c != 0 }) }

func (r *RealObject) GetBooleanValue() bool        { return r.Value != 0 }
func (r *RealObject) GetIntegerValue() IntValue     { return IntValue{HasValue: true, Value: int64(r.Value)} }
func (r *RealObject) GetRealValue() RealValue       { return RealValue{HasValue: true, Value: r.Value} }

// pi singleton, named in spec's builtin surface (`pi`) and a convenient
// process-independent constant to reuse rather than reallocate.
var gRealPi = &RealObject{object: object{protos: []Value{gRoot}}, Value: 3.14159265358979323846}

func init() {
	initObject(gRealPi, nil)
	gRealPi.base().singleton = true
}
