package vectortile

import (
	"fmt"
	"math"
	"strconv"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/theoremus-urban-solutions/mvt-to-geojson/wire"
)

// ValueType identifies the populated variant of a Value.
type ValueType uint8

const (
	ValueUnknown ValueType = iota
	ValueString
	ValueFloat
	ValueDouble
	ValueInt
	ValueUint
	ValueSint
	ValueBool
)

var valueTypeNames = [...]string{"unknown", "string", "float", "double", "int", "uint", "sint", "bool"}

func (t ValueType) String() string {
	if int(t) < len(valueTypeNames) {
		return valueTypeNames[t]
	}
	return "ValueType(" + strconv.Itoa(int(t)) + ")"
}

// Value is a tagged union over the property value types of a layer.
type Value struct {
	Type ValueType

	str string
	f32 float32
	f64 float64
	i64 int64
	u64 uint64
	b   bool
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{Type: ValueString, str: s} }

// FloatValue returns a float32 Value.
func FloatValue(f float32) Value { return Value{Type: ValueFloat, f32: f} }

// DoubleValue returns a float64 Value.
func DoubleValue(f float64) Value { return Value{Type: ValueDouble, f64: f} }

// IntValue returns an int64 Value.
func IntValue(i int64) Value { return Value{Type: ValueInt, i64: i} }

// UintValue returns a uint64 Value.
func UintValue(u uint64) Value { return Value{Type: ValueUint, u64: u} }

// SintValue returns a zigzag-encoded int64 Value.
func SintValue(i int64) Value { return Value{Type: ValueSint, i64: i} }

// BoolValue returns a bool Value.
func BoolValue(b bool) Value { return Value{Type: ValueBool, b: b} }

// Interface returns the Go scalar held by v, or nil for ValueUnknown.
func (v Value) Interface() any {
	switch v.Type {
	case ValueString:
		return v.str
	case ValueFloat:
		return v.f32
	case ValueDouble:
		return v.f64
	case ValueInt, ValueSint:
		return v.i64
	case ValueUint:
		return v.u64
	case ValueBool:
		return v.b
	default:
		return nil
	}
}

// Finite reports whether v can be written as a JSON number or scalar. Float
// and double values holding NaN or an infinity are not finite.
func (v Value) Finite() bool {
	switch v.Type {
	case ValueFloat:
		f := float64(v.f32)
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	case ValueDouble:
		return !math.IsNaN(v.f64) && !math.IsInf(v.f64, 0)
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.Type {
	case ValueString:
		return strconv.Quote(v.str)
	case ValueUnknown:
		return "<unknown>"
	default:
		return fmt.Sprint(v.Interface())
	}
}

// decodeValue parses one value message. The first recognised field wins;
// later typed fields are consumed but ignored.
func decodeValue(buf []byte) (Value, error) {
	var v Value
	r := wire.NewReader(buf)
	for !r.Done() {
		num, typ, err := r.Tag()
		if err != nil {
			return Value{}, err
		}
		next, ok, err := readValueField(r, num, typ)
		if err != nil {
			return Value{}, err
		}
		if ok && v.Type == ValueUnknown {
			v = next
		}
	}
	return v, nil
}

func readValueField(r *wire.Reader, num protowire.Number, typ protowire.Type) (Value, bool, error) {
	switch {
	case num == 1 && typ == protowire.BytesType:
		s, err := r.String()
		return StringValue(s), err == nil, err
	case num == 2 && typ == protowire.Fixed32Type:
		bits, err := r.Fixed32()
		return FloatValue(math.Float32frombits(bits)), err == nil, err
	case num == 3 && typ == protowire.Fixed64Type:
		bits, err := r.Fixed64()
		return DoubleValue(math.Float64frombits(bits)), err == nil, err
	case num == 4 && typ == protowire.VarintType:
		u, err := r.Varint()
		return IntValue(int64(u)), err == nil, err
	case num == 5 && typ == protowire.VarintType:
		u, err := r.Varint()
		return UintValue(u), err == nil, err
	case num == 6 && typ == protowire.VarintType:
		u, err := r.Varint()
		return SintValue(wire.DecodeZigZag(u)), err == nil, err
	case num == 7 && typ == protowire.VarintType:
		u, err := r.Varint()
		return BoolValue(u != 0), err == nil, err
	default:
		return Value{}, false, r.Skip(num, typ)
	}
}
