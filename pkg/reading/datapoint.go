package reading

import (
	"fmt"

	"github.com/spf13/cast"
)

// ValueKind identifies which member of the DatapointValue union is set.
type ValueKind int

const (
	KindInt ValueKind = iota
	KindFloat
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DatapointValue is a closed tagged union over the three scalar types a
// datapoint may carry. Exactly one member is meaningful, selected by Kind.
type DatapointValue struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
}

// IntValue returns a DatapointValue holding an integer.
func IntValue(v int64) DatapointValue {
	return DatapointValue{kind: KindInt, i: v}
}

// FloatValue returns a DatapointValue holding a floating-point number.
func FloatValue(v float64) DatapointValue {
	return DatapointValue{kind: KindFloat, f: v}
}

// StringValue returns a DatapointValue holding a string.
func StringValue(v string) DatapointValue {
	return DatapointValue{kind: KindString, s: v}
}

// Kind reports which scalar type the value carries.
func (v DatapointValue) Kind() ValueKind { return v.kind }

// Int returns the integer member. Meaningful only when Kind is KindInt.
func (v DatapointValue) Int() int64 { return v.i }

// Float returns the floating-point member. Meaningful only when Kind is KindFloat.
func (v DatapointValue) Float() float64 { return v.f }

// Str returns the string member. Meaningful only when Kind is KindString.
func (v DatapointValue) Str() string { return v.s }

// String renders the value as text regardless of kind.
func (v DatapointValue) String() string {
	switch v.kind {
	case KindInt:
		return cast.ToString(v.i)
	case KindFloat:
		return cast.ToString(v.f)
	default:
		return v.s
	}
}

// Datapoint is one named scalar value within a Reading. Names are non-empty
// and unique within their Reading.
type Datapoint struct {
	Name  string
	Value DatapointValue
}

// NewIntDatapoint creates a datapoint carrying an integer value.
func NewIntDatapoint(name string, value int64) *Datapoint {
	return &Datapoint{Name: name, Value: IntValue(value)}
}

// NewFloatDatapoint creates a datapoint carrying a floating-point value.
func NewFloatDatapoint(name string, value float64) *Datapoint {
	return &Datapoint{Name: name, Value: FloatValue(value)}
}

// NewStringDatapoint creates a datapoint carrying a string value.
func NewStringDatapoint(name string, value string) *Datapoint {
	return &Datapoint{Name: name, Value: StringValue(value)}
}

// String renders the datapoint as name:value.
func (d *Datapoint) String() string {
	return fmt.Sprintf("%s:%s", d.Name, d.Value.String())
}
