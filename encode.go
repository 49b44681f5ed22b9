package phpserialize

import (
	"bytes"
	"io"
	"reflect"
	"sort"
)

// Marshaler is implemented by types that encode themselves to PHP
// serialize() bytes.
type Marshaler interface {
	MarshalPHP() ([]byte, error)
}

// Variant lets a Go type opt into the tagged-variant encoding of §4.3: no
// payload encodes as a bare string naming the tag; any other payload
// encodes as a one-entry array keyed by the tag.
type Variant interface {
	PHPVariant() (tag string, payload any)
}

var marshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()
var variantType = reflect.TypeOf((*Variant)(nil)).Elem()

// Marshal returns the PHP serialize() encoding of v.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := MarshalTo(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalTo writes the PHP serialize() encoding of v to w. Output contains
// no trailing newline.
func MarshalTo(w io.Writer, v any) error {
	return writeAny(w, reflect.ValueOf(v))
}

func writeAny(w io.Writer, rv reflect.Value) error {
	if !rv.IsValid() {
		return writeNull(w)
	}

	if rv.Type().Implements(variantType) {
		return writeVariant(w, rv.Interface().(Variant))
	}
	if rv.Type().Implements(marshalerType) {
		b, err := rv.Interface().(Marshaler).MarshalPHP()
		if err != nil {
			return newEncodeError(err, rv.Type())
		}
		_, err = w.Write(b)
		return err
	}

	switch rv.Type() {
	case charType:
		return writeRawString(w, []byte(string(rune(rv.Interface().(Char)))))
	case byteSliceType:
		return writeRawString(w, rv.Bytes())
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return writeNull(w)
		}
		return writeAny(w, rv.Elem())

	case reflect.Interface:
		if rv.IsNil() {
			return writeNull(w)
		}
		return writeAny(w, rv.Elem())

	case reflect.Bool:
		return writeBool(w, rv.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return writeInt(w, rv.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > (1<<63 - 1) {
			return newEncodeError(ErrIntegerOutOfRange, rv.Type())
		}
		return writeInt(w, int64(u))

	case reflect.Float32, reflect.Float64:
		return writeFloat(w, rv.Float())

	case reflect.String:
		return writeRawString(w, []byte(rv.String()))

	case reflect.Array:
		return writeTuple(w, rv)

	case reflect.Slice:
		if rv.IsNil() {
			return writeNull(w)
		}
		return writeSequence(w, rv)

	case reflect.Map:
		if rv.IsNil() {
			return writeNull(w)
		}
		return writeMap(w, rv)

	case reflect.Struct:
		if rv.NumField() == 0 {
			return writeNull(w)
		}
		return writeRecord(w, rv)

	default:
		return &UnsupportedTypeError{Type: rv.Type()}
	}
}

// writeVariant implements the tagged-variant emission of §4.3.
func writeVariant(w io.Writer, v Variant) error {
	tag, payload := v.PHPVariant()
	if payload == nil {
		return writeRawString(w, []byte(tag))
	}
	if err := writeArrayHeader(w, 1); err != nil {
		return err
	}
	if err := writeRawString(w, []byte(tag)); err != nil {
		return err
	}
	if err := writeAny(w, reflect.ValueOf(payload)); err != nil {
		return err
	}
	return writeByte(w, '}')
}

func writeArrayHeader(w io.Writer, n int) error {
	if err := writeByte(w, tagArray); err != nil {
		return err
	}
	if err := writeByte(w, ':'); err != nil {
		return err
	}
	if err := writeDecimalUint(w, uint64(n)); err != nil {
		return err
	}
	return writeLiteral(w, ":{")
}

// writeSequence encodes a variable-length Go slice as a sequence: `i:k;`
// index keys in order, matching §3's invariant that a host sequence always
// emits keys 0..n-1 in order.
func writeSequence(w io.Writer, rv reflect.Value) error {
	n := rv.Len()
	if err := writeArrayHeader(w, n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := writeInt(w, int64(i)); err != nil {
			return err
		}
		if err := writeAny(w, rv.Index(i)); err != nil {
			return err
		}
	}
	return writeByte(w, '}')
}

// writeTuple encodes a fixed-length Go array the same way as a sequence:
// index keys, in order.
func writeTuple(w io.Writer, rv reflect.Value) error {
	return writeSequence(w, rv)
}

// writeRecord encodes a struct using its declared field names, in declared
// order, as string keys (§3's record invariant). Fields tagged
// `php:",omitempty"` are skipped when they hold their zero value.
func writeRecord(w io.Writer, rv reflect.Value) error {
	t := rv.Type()
	type entry struct {
		name string
		val  reflect.Value
	}
	entries := make([]entry, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue
		}
		tag := f.Tag.Get("php")
		if tag == "-" {
			continue
		}
		name, opts := parseTag(tag)
		if name == "" {
			name = lowerFirst(f.Name)
		}
		fv := rv.Field(i)
		if hasOpt(opts, "omitempty") && fv.IsZero() {
			continue
		}
		entries = append(entries, entry{name, fv})
	}
	if err := writeArrayHeader(w, len(entries)); err != nil {
		return err
	}
	for _, e := range entries {
		if err := writeRawString(w, []byte(e.name)); err != nil {
			return err
		}
		if err := writeAny(w, e.val); err != nil {
			return err
		}
	}
	return writeByte(w, '}')
}

// writeMap encodes a Go map, whose keys must themselves encode to `i:` or
// `s:` tokens; any other dynamic key type fails with ErrUnsupportedKey (§4.3).
func writeMap(w io.Writer, rv reflect.Value) error {
	keys := rv.MapKeys()
	sortMapKeys(keys)
	if err := writeArrayHeader(w, len(keys)); err != nil {
		return err
	}
	for _, k := range keys {
		if err := writeMapKey(w, k); err != nil {
			return err
		}
		if err := writeAny(w, rv.MapIndex(k)); err != nil {
			return err
		}
	}
	return writeByte(w, '}')
}

func writeMapKey(w io.Writer, k reflect.Value) error {
	for k.Kind() == reflect.Interface {
		k = k.Elem()
	}
	switch k.Kind() {
	case reflect.String:
		return writeRawString(w, []byte(k.String()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return writeInt(w, k.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := k.Uint()
		if u > (1<<63 - 1) {
			return newEncodeError(ErrUnsupportedKey, k.Type())
		}
		return writeInt(w, int64(u))
	default:
		return newEncodeError(ErrUnsupportedKey, k.Type())
	}
}

// sortMapKeys orders map keys deterministically: integer keys ascending,
// then string keys lexically, mirroring the stream order PHP's own arrays
// would present them in when built up in key order.
func sortMapKeys(keys []reflect.Value) {
	sort.Slice(keys, func(i, j int) bool {
		a, aInt := mapKeyInt(keys[i])
		b, bInt := mapKeyInt(keys[j])
		if aInt && bInt {
			return a < b
		}
		if aInt != bInt {
			return aInt
		}
		return mapKeyString(keys[i]) < mapKeyString(keys[j])
	})
}

func mapKeyInt(k reflect.Value) (int64, bool) {
	for k.Kind() == reflect.Interface {
		k = k.Elem()
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return k.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(k.Uint()), true
	default:
		return 0, false
	}
}

func mapKeyString(k reflect.Value) string {
	for k.Kind() == reflect.Interface {
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		return k.String()
	}
	return ""
}
