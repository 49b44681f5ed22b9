package phpserialize

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Unmarshaler is implemented by types that decode themselves from a single
// PHP serialize() value. UnmarshalPHP receives the dynamic, self-describing form
// of that value; implementations typically switch on v.Kind().
type Unmarshaler interface {
	UnmarshalPHP(v *Value) error
}

var (
	unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	charType        = reflect.TypeOf(Char(0))
	byteSliceType   = reflect.TypeOf([]byte(nil))
)

// decodeInto decodes the next value from r into rv, a settable reflect.Value.
func (r *reader) decodeInto(rv reflect.Value) error {
	if tag, ok := r.peekTag(); ok {
		switch tag {
		case tagObject, tagReference, tagRefObject, tagSerFunc:
			return newDecodeError(ErrUnsupportedFeature, r.pos,
				"tag '"+string(tag)+"' (PHP objects/references are not supported)")
		}
	}

	// Optional: a pointer target is the host's "optional" demand. A nil
	// inner value is the absent case; anything else decodes into *rv.Elem().
	if rv.Kind() == reflect.Pointer {
		tag, ok := r.peekTag()
		if ok && tag == tagNull {
			if err := r.expectLiteral("N;"); err != nil {
				return err
			}
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return r.decodeInto(rv.Elem())
	}

	if rv.CanAddr() && rv.Addr().Type().Implements(unmarshalerType) {
		v, err := r.readValue()
		if err != nil {
			return err
		}
		return rv.Addr().Interface().(Unmarshaler).UnmarshalPHP(v)
	}

	switch rv.Type() {
	case charType:
		return r.decodeChar(rv)
	case byteSliceType:
		return r.decodeByteString(rv)
	}

	switch rv.Kind() {
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return newDecodeError(ErrTypeMismatch, r.pos, "unsupported interface target "+rv.Type().String())
		}
		v, err := r.readValue()
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(valueToNative(v)))
		return nil

	case reflect.Bool:
		if err := r.expectTag(tagBool, "b:"); err != nil {
			return err
		}
		start := r.pos
		if err := r.expectLiteral("b:"); err != nil {
			return err
		}
		bs, err := r.readUntil(';')
		if err != nil {
			return err
		}
		switch string(bs) {
		case "1":
			rv.SetBool(true)
		case "0":
			rv.SetBool(false)
		default:
			return newDecodeError(ErrInvalidBoolean, start, string(bs))
		}
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := r.decodeSignedInt()
		if err != nil {
			return err
		}
		if rv.OverflowInt(i) {
			return newDecodeError(ErrIntegerOutOfRange, r.pos, rv.Type().String())
		}
		rv.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := r.decodeSignedInt()
		if err != nil {
			return err
		}
		if i < 0 || rv.OverflowUint(uint64(i)) {
			return newDecodeError(ErrIntegerOutOfRange, r.pos, rv.Type().String())
		}
		rv.SetUint(uint64(i))
		return nil

	case reflect.Float32, reflect.Float64:
		f, err := r.decodeAnyFloat()
		if err != nil {
			return err
		}
		if rv.Kind() == reflect.Float32 {
			n := float32(f)
			if float64(n) != f {
				return newDecodeError(ErrFloatNarrowingLoss, r.pos, "")
			}
		}
		rv.SetFloat(f)
		return nil

	case reflect.String:
		if err := r.expectTag(tagString, "s:"); err != nil {
			return err
		}
		b, err := r.readStringLiteral()
		if err != nil {
			return err
		}
		if !utf8.Valid(b) {
			return newDecodeError(ErrNotUTF8, r.pos, "")
		}
		rv.SetString(string(b))
		return nil

	case reflect.Array:
		return r.decodeTuple(rv)

	case reflect.Slice:
		return r.decodeSequence(rv)

	case reflect.Map:
		return r.decodeMap(rv)

	case reflect.Struct:
		if rv.NumField() == 0 {
			// Unit type: accepts N; or an empty array a:0:{}.
			if tag, ok := r.peekTag(); ok && tag == tagArray {
				return r.expectLiteral("a:0:{}")
			}
			if err := r.expectTag(tagNull, "N;"); err != nil {
				return err
			}
			return r.expectLiteral("N;")
		}
		return r.decodeRecord(rv)

	default:
		return newDecodeError(ErrTypeMismatch, r.pos, "unsupported target type "+rv.Type().String())
	}
}

func (r *reader) decodeChar(rv reflect.Value) error {
	if err := r.expectTag(tagString, "s:"); err != nil {
		return err
	}
	b, err := r.readStringLiteral()
	if err != nil {
		return err
	}
	ru, size := utf8.DecodeRune(b)
	if ru == utf8.RuneError || size != len(b) {
		return newDecodeError(ErrNotSingleChar, r.pos, "")
	}
	rv.Set(reflect.ValueOf(Char(ru)))
	return nil
}

func (r *reader) decodeByteString(rv reflect.Value) error {
	if err := r.expectTag(tagString, "s:"); err != nil {
		return err
	}
	b, err := r.readStringLiteral()
	if err != nil {
		return err
	}
	rv.SetBytes(append([]byte(nil), b...))
	return nil
}

// decodeSignedInt requires an `i:` tag and returns its value; floats do not
// demote to int (only int promotes to float, per the dispatch table).
func (r *reader) decodeSignedInt() (int64, error) {
	tag, ok := r.peekTag()
	if !ok {
		return 0, newDecodeError(ErrUnexpectedEOF, r.pos, "expected i:")
	}
	if tag != tagInt {
		return 0, newDecodeError(ErrTypeMismatch, r.pos, "expected i:, found '"+string(tag)+"'")
	}
	r.pos++ // consume 'i'
	if err := r.expectByte(':'); err != nil {
		return 0, err
	}
	return r.readDecimalInt(';')
}

// decodeAnyFloat accepts either `d:` or `i:` (integer promotes to float).
func (r *reader) decodeAnyFloat() (float64, error) {
	tag, ok := r.peekTag()
	if !ok {
		return 0, newDecodeError(ErrUnexpectedEOF, r.pos, "expected d: or i:")
	}
	switch tag {
	case tagFloat:
		if err := r.expectLiteral("d:"); err != nil {
			return 0, err
		}
		return r.readFloatLiteral(';')
	case tagInt:
		i, err := r.decodeSignedInt()
		if err != nil {
			return 0, err
		}
		return float64(i), nil
	default:
		return 0, newDecodeError(ErrTypeMismatch, r.pos, "expected d: or i:, found '"+string(tag)+"'")
	}
}

// decodeTuple implements the fixed-length sequence view of §4.4: the
// array's declared count must equal the Go array's length.
func (r *reader) decodeTuple(rv reflect.Value) error {
	if err := r.enterContainer(); err != nil {
		return err
	}
	defer r.leaveContainer()

	n, err := r.readArrayHeader()
	if err != nil {
		return err
	}
	if n != rv.Len() {
		return newDecodeError(ErrLengthMismatch, r.pos, "")
	}
	for i := 0; i < n; i++ {
		// Key is positional; the adapter requires it to be an int token but
		// does not check order or contiguity (§4.4 sequence view).
		key, err := r.readValue()
		if err != nil {
			return err
		}
		if key.Kind() != KindInt {
			return newDecodeError(ErrTypeMismatch, r.pos, "tuple key must be int")
		}
		if err := r.decodeInto(rv.Index(i)); err != nil {
			return err
		}
	}
	return r.expectByte('}')
}

// decodeSequence implements the variable-length sequence view of §4.4.
func (r *reader) decodeSequence(rv reflect.Value) error {
	if err := r.enterContainer(); err != nil {
		return err
	}
	defer r.leaveContainer()

	n, err := r.readArrayHeader()
	if err != nil {
		return err
	}
	rv.Set(reflect.MakeSlice(rv.Type(), n, n))
	for i := 0; i < n; i++ {
		key, err := r.readValue()
		if err != nil {
			return err
		}
		if key.Kind() != KindInt {
			return newDecodeError(ErrTypeMismatch, r.pos, "sequence key must be int")
		}
		if err := r.decodeInto(rv.Index(i)); err != nil {
			return err
		}
	}
	return r.expectByte('}')
}

// decodeMap implements the map view of §4.4: each key decodes according to
// the map's declared key kind (int or string).
func (r *reader) decodeMap(rv reflect.Value) error {
	if err := r.enterContainer(); err != nil {
		return err
	}
	defer r.leaveContainer()

	n, err := r.readArrayHeader()
	if err != nil {
		return err
	}
	rv.Set(reflect.MakeMapWithSize(rv.Type(), n))
	keyType := rv.Type().Key()
	elemType := rv.Type().Elem()
	for i := 0; i < n; i++ {
		kv := reflect.New(keyType).Elem()
		if err := r.decodeInto(kv); err != nil {
			return err
		}
		ev := reflect.New(elemType).Elem()
		if err := r.decodeInto(ev); err != nil {
			return err
		}
		rv.SetMapIndex(kv, ev)
	}
	return r.expectByte('}')
}

// decodeRecord implements the record view of §4.4: string keys are matched
// against declared field names; unmatched keys are discarded unless the
// reader was configured with WithStrictFields, in which case they fail with
// ErrUnknownField. A pointer/interface field is the host's optional slot and
// is left nil when absent; every other field is implicitly required and
// fails with ErrMissingField on finalization unless tagged `php:",omitempty"`.
func (r *reader) decodeRecord(rv reflect.Value) error {
	if err := r.enterContainer(); err != nil {
		return err
	}
	defer r.leaveContainer()

	n, err := r.readArrayHeader()
	if err != nil {
		return err
	}
	fields := structFields(rv.Type())
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		keyBytes, err := r.readStringLiteralOrIntKey()
		if err != nil {
			return err
		}
		fi, ok := fields[keyBytes]
		if !ok {
			if r.strictFields {
				return newDecodeError(ErrUnknownField, r.pos, keyBytes)
			}
			if _, err := r.readValue(); err != nil {
				return err
			}
			continue
		}
		seen[keyBytes] = true
		if err := r.decodeInto(rv.FieldByIndex(fi.index)); err != nil {
			return err
		}
	}
	if err := r.expectByte('}'); err != nil {
		return err
	}
	for name, fi := range fields {
		if fi.required && !seen[name] {
			return newDecodeError(ErrMissingField, r.pos, name)
		}
	}
	return nil
}

// readStringLiteralOrIntKey reads a record key, which the grammar allows to
// be an int or string token; the key's text is what's matched against field names.
func (r *reader) readStringLiteralOrIntKey() (string, error) {
	tag, ok := r.peekTag()
	if !ok {
		return "", newDecodeError(ErrUnexpectedEOF, r.pos, "expected array key")
	}
	switch tag {
	case tagString:
		b, err := r.readStringLiteral()
		if err != nil {
			return "", err
		}
		return string(b), nil
	case tagInt:
		i, err := r.decodeKeyInt()
		if err != nil {
			return "", err
		}
		return strconvItoa(i), nil
	default:
		return "", newDecodeError(ErrTypeMismatch, r.pos, "array key must be int or string")
	}
}

func (r *reader) decodeKeyInt() (int64, error) {
	if err := r.expectLiteral("i:"); err != nil {
		return 0, err
	}
	return r.readDecimalInt(';')
}

func strconvItoa(i int64) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	u := uint64(i)
	if neg {
		u = uint64(-i)
	}
	var buf [20]byte
	pos := len(buf)
	for u > 0 {
		pos--
		buf[pos] = byte('0' + u%10)
		u /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// fieldInfo describes one decoded/encoded struct field.
type fieldInfo struct {
	name      string
	index     []int
	omitempty bool
	required  bool
}

// structFields maps wire key name -> fieldInfo for t's exported fields,
// honoring `php:"name,omitempty"`/`php:"name,required"` tags and falling
// back to a lowercased-initial field name (PHP record keys are conventionally
// lowerCamelCase, while Go requires an exported, capitalized field name).
// Every non-pointer, non-interface field is required by default; omitempty
// excuses it, and an explicit "required" option always forces it regardless.
func structFields(t reflect.Type) map[string]fieldInfo {
	fields := make(map[string]fieldInfo, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue // unexported
		}
		tag := f.Tag.Get("php")
		if tag == "-" {
			continue
		}
		name, opts := parseTag(tag)
		if name == "" {
			name = lowerFirst(f.Name)
		}
		omitempty := hasOpt(opts, "omitempty")
		// Per §4.3, a non-optional (non-pointer, non-interface) field is
		// implicitly required unless explicitly excused with omitempty;
		// pointer/interface fields are the host's "optional" slot and
		// default to absent-ok. An explicit `php:",required"` always wins.
		optionalSlot := f.Type.Kind() == reflect.Pointer || f.Type.Kind() == reflect.Interface
		required := !optionalSlot && !omitempty
		if hasOpt(opts, "required") {
			required = true
		}
		fields[name] = fieldInfo{
			name:      name,
			index:     f.Index,
			omitempty: omitempty,
			required:  required,
		}
	}
	return fields
}

func parseTag(tag string) (name string, opts []string) {
	parts := strings.Split(tag, ",")
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

func hasOpt(opts []string, want string) bool {
	for _, o := range opts {
		if o == want {
			return true
		}
	}
	return false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// valueToNative converts a dynamic [Value] to its "natural" Go
// representation for any-typed decode: PHP arrays whose keys are exactly
// 0..n-1 in order become []any, everything else (mixed or string-keyed
// arrays) becomes map[any]any, consistent with the Non-goal that mixed-key
// arrays surface only as a key-polymorphic map.
func valueToNative(v *Value) any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool()
	case KindInt:
		return v.Int()
	case KindFloat:
		return v.Float()
	case KindString:
		return v.Str()
	case KindArray:
		pairs := v.Pairs()
		if isDenseSequence(pairs) {
			out := make([]any, len(pairs))
			for i, p := range pairs {
				out[i] = valueToNative(p.Value)
			}
			return out
		}
		out := make(map[any]any, len(pairs))
		for _, p := range pairs {
			out[valueToNative(p.Key)] = valueToNative(p.Value)
		}
		return out
	default:
		return nil
	}
}

func isDenseSequence(pairs []Pair) bool {
	for i, p := range pairs {
		if p.Key.Kind() != KindInt || p.Key.Int() != int64(i) {
			return false
		}
	}
	return true
}
