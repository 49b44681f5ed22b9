package phpserialize

import "fmt"

// Kind identifies the dynamic type of a self-describing decoded Value.
type Kind int

// Kind values, one per wire production this package supports decoding.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
)

// String returns a human-readable name for k.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	default:
		return "invalid"
	}
}

// Value is a dynamically typed PHP value, produced by self-describing
// ("any") decode and consumed by the array adapter as an intermediate form.
//
// Unlike PHP itself, Value distinguishes int-keyed and string-keyed array
// entries but never renormalizes one into the other: a string key such as
// "0" stays a string key.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Pair
}

// Pair is one key/value entry of an array Value, in stream order.
type Pair struct {
	Key   *Value
	Value *Value
}

// ValueError is the panic value of a Value accessor invoked on a Value of
// the wrong Kind.
type ValueError struct {
	Method string
	Kind   Kind
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("phpserialize: call of %s on %s value", e.Method, e.Kind)
}

// NullValue returns the PHP null Value.
func NullValue() *Value { return &Value{kind: KindNull} }

// BoolValue returns a PHP boolean Value.
func BoolValue(b bool) *Value { return &Value{kind: KindBool, b: b} }

// IntValue returns a PHP integer Value.
func IntValue(i int64) *Value { return &Value{kind: KindInt, i: i} }

// FloatValue returns a PHP float Value.
func FloatValue(f float64) *Value { return &Value{kind: KindFloat, f: f} }

// StringValue returns a PHP string Value.
func StringValue(s string) *Value { return &Value{kind: KindString, s: s} }

// ArrayValue returns a PHP array Value built from pairs, preserving order.
func ArrayValue(pairs ...Pair) *Value { return &Value{kind: KindArray, arr: pairs} }

// Kind reports v's dynamic type.
func (v *Value) Kind() Kind { return v.kind }

// IsNull reports whether v is nil or the PHP null value.
func (v *Value) IsNull() bool { return v == nil || v.kind == KindNull }

// Bool returns v's underlying bool. It panics if v.Kind() != KindBool.
func (v *Value) Bool() bool {
	if v.kind != KindBool {
		panic(&ValueError{"Bool", v.kind})
	}
	return v.b
}

// Int returns v's underlying int64. It panics if v.Kind() != KindInt.
func (v *Value) Int() int64 {
	if v.kind != KindInt {
		panic(&ValueError{"Int", v.kind})
	}
	return v.i
}

// Float returns v's underlying float64. It panics if v.Kind() != KindFloat.
func (v *Value) Float() float64 {
	if v.kind != KindFloat {
		panic(&ValueError{"Float", v.kind})
	}
	return v.f
}

// Str returns v's underlying string. It panics if v.Kind() != KindString.
//
// Named Str, not String, so Value still satisfies fmt.Stringer with a
// diagnostic representation rather than panicking from inside %v/%s.
func (v *Value) Str() string {
	if v.kind != KindString {
		panic(&ValueError{"Str", v.kind})
	}
	return v.s
}

// String implements fmt.Stringer with a diagnostic representation; it never panics.
func (v *Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	default:
		return "<" + v.kind.String() + " value>"
	}
}

// Pairs returns v's array entries in stream order. It panics if v.Kind() != KindArray.
func (v *Value) Pairs() []Pair {
	if v.kind != KindArray {
		panic(&ValueError{"Pairs", v.kind})
	}
	return v.arr
}

// Index returns the value associated with an integer key, or nil if absent.
// It panics if v.Kind() != KindArray.
func (v *Value) Index(key int64) *Value {
	for _, p := range v.Pairs() {
		if p.Key.kind == KindInt && p.Key.i == key {
			return p.Value
		}
	}
	return nil
}

// Field returns the value associated with a string key, or nil if absent.
// It panics if v.Kind() != KindArray.
func (v *Value) Field(name string) *Value {
	for _, p := range v.Pairs() {
		if p.Key.kind == KindString && p.Key.s == name {
			return p.Value
		}
	}
	return nil
}

// Interface returns v as a plain Go value: nil, bool, int64, float64,
// string, or []Pair for arrays. Nested arrays remain []Pair recursively.
func (v *Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		return v.arr
	default:
		return nil
	}
}
