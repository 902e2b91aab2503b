package routing

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies the typed representation carried by a Value.
type Kind uint8

const (
	// KindString is the default kind: the raw segment text with no
	// conversion applied. Query parameters always bind as KindString.
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindUUID
	KindTime
)

// String returns the kind name, for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindUUID:
		return "uuid"
	case KindTime:
		return "time"
	default:
		return "string"
	}
}

// Value is a route variable bound during resolution. It always carries the
// raw segment text; when the variable had a converting constraint it also
// carries the converted typed representation.
//
// Values are immutable and safe to copy.
type Value struct {
	raw  string
	kind Kind
	i    int64
	f    float64
	b    bool
	u    uuid.UUID
	t    time.Time
}

// stringValue returns a Value holding raw text with no conversion.
func stringValue(raw string) Value {
	return Value{raw: raw}
}

func intValue(raw string, i int64) Value {
	return Value{raw: raw, kind: KindInt, i: i}
}

func floatValue(raw string, f float64) Value {
	return Value{raw: raw, kind: KindFloat, f: f}
}

func boolValue(raw string, b bool) Value {
	return Value{raw: raw, kind: KindBool, b: b}
}

func uuidValue(raw string, u uuid.UUID) Value {
	return Value{raw: raw, kind: KindUUID, u: u}
}

func timeValue(raw string, t time.Time) Value {
	return Value{raw: raw, kind: KindTime, t: t}
}

// Kind returns the typed representation carried by the value.
func (v Value) Kind() Kind { return v.kind }

// String returns the raw segment text. It is always available regardless
// of the value kind.
func (v Value) String() string { return v.raw }

// Int returns the converted integer and true when the value kind is KindInt.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInt
}

// Float returns the converted float and true when the value kind is KindFloat.
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// Bool returns the converted boolean and true when the value kind is KindBool.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// UUID returns the converted UUID and true when the value kind is KindUUID.
func (v Value) UUID() (uuid.UUID, bool) {
	return v.u, v.kind == KindUUID
}

// Time returns the converted time and true when the value kind is KindTime.
func (v Value) Time() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// Params holds the variables bound by a successful match, keyed by name.
// Path variables are merged with query parameters; on a name collision the
// path variable wins.
type Params map[string]Value

// Get returns the value for name and whether it exists.
func (p Params) Get(name string) (Value, bool) {
	v, ok := p[name]
	return v, ok
}

// Raw returns the raw text for name, or an empty string if absent.
func (p Params) Raw(name string) string {
	return p[name].raw
}
