package phpserialize

import (
	"reflect"
)

// Decoder decodes PHP serialize()-format bytes into Go values.
//
// A Decoder is safe for concurrent use: each call to [Decoder.Unmarshal]
// creates its own internal cursor. The Decoder itself only holds configuration.
type Decoder struct {
	maxDepth     int
	strictFields bool
}

// Option configures a [Decoder].
type Option func(*Decoder)

// WithMaxDepth overrides the recursion depth limit (default [DefaultMaxDepth]).
// A depth-zero top-level scalar costs nothing; each nested array adds one.
func WithMaxDepth(n int) Option {
	return func(d *Decoder) { d.maxDepth = n }
}

// WithStrictFields makes record decoding fail with ErrUnknownField instead
// of silently discarding array keys that don't match a declared field.
func WithStrictFields(strict bool) Option {
	return func(d *Decoder) { d.strictFields = strict }
}

// NewDecoder creates a Decoder with the given options.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// defaultDecoder is the package-level decoder used by [Unmarshal].
var defaultDecoder = NewDecoder()

// Unmarshal decodes a single top-level PHP serialize() value from data into
// v, which must be a non-nil pointer. Trailing bytes after the value fail
// with ErrTrailingData.
//
// This is a convenience wrapper around [Decoder.Unmarshal] using default options.
func Unmarshal(data []byte, v any) error {
	return defaultDecoder.Unmarshal(data, v)
}

// Decode decodes a single top-level PHP serialize() value from data into a
// dynamic [Value], choosing the Go-level representation by peeking the next
// tag (the "self-describing" / "any" decode mode of the package).
//
// This is a convenience wrapper around [Decoder.Decode] using default options.
func Decode(data []byte) (*Value, error) {
	return defaultDecoder.Decode(data)
}

// Unmarshal decodes data into v, which must be a non-nil pointer.
func (d *Decoder) Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &EncodeError{Err: ErrTypeMismatch, Type: reflect.TypeOf(v)}
	}
	r := &reader{data: data, maxDepth: d.maxDepth, strictFields: d.strictFields}
	if err := r.decodeInto(rv.Elem()); err != nil {
		return err
	}
	if r.pos != len(r.data) {
		return newDecodeError(ErrTrailingData, r.pos, "")
	}
	return nil
}

// Decode decodes a single top-level value as a dynamic [Value].
func (d *Decoder) Decode(data []byte) (*Value, error) {
	r := &reader{data: data, maxDepth: d.maxDepth, strictFields: d.strictFields}
	v, err := r.readValue()
	if err != nil {
		return nil, err
	}
	if r.pos != len(r.data) {
		return nil, newDecodeError(ErrTrailingData, r.pos, "")
	}
	return v, nil
}

// reader holds the mutable cursor state for a single decode operation.
//
// Its states correspond to the grammar's productions: awaiting a value
// (readValue dispatches on the next tag), reading a primitive (the lexer.go
// primitives), or inside an open container (readArrayHeader then count
// iterations of key/value, closing on '}'). The terminal state is reached
// when the top level production completes and pos == len(data).
type reader struct {
	data         []byte
	pos          int
	depth        int
	maxDepth     int
	strictFields bool
}

func (r *reader) enterContainer() error {
	r.depth++
	if r.depth > r.maxDepth {
		return newDecodeError(ErrDepthExceeded, r.pos, "")
	}
	return nil
}

func (r *reader) leaveContainer() {
	r.depth--
}

// readValue dispatches on the next tag byte and returns the decoded value as
// a dynamic [Value] (the self-describing / "any" decode path).
func (r *reader) readValue() (*Value, error) {
	tag, ok := r.peekTag()
	if !ok {
		return nil, newDecodeError(ErrUnexpectedEOF, r.pos, "expected a value")
	}
	switch tag {
	case tagNull:
		if err := r.expectLiteral("N;"); err != nil {
			return nil, err
		}
		return NullValue(), nil
	case tagBool:
		return r.readBoolValue()
	case tagInt:
		return r.readIntValue()
	case tagFloat:
		return r.readFloatValue()
	case tagString:
		return r.readStringValue()
	case tagArray:
		return r.readArrayValue()
	case tagObject, tagReference, tagRefObject, tagSerFunc:
		return nil, newDecodeError(ErrUnsupportedFeature, r.pos,
			"tag '"+string(tag)+"' (PHP objects/references are not supported)")
	default:
		return nil, newDecodeError(ErrUnexpectedByte, r.pos, "unknown tag '"+string(tag)+"'")
	}
}

func (r *reader) readBoolValue() (*Value, error) {
	if err := r.expectLiteral("b:"); err != nil {
		return nil, err
	}
	start := r.pos
	bs, err := r.readUntil(';')
	if err != nil {
		return nil, err
	}
	switch string(bs) {
	case "1":
		return BoolValue(true), nil
	case "0":
		return BoolValue(false), nil
	default:
		return nil, newDecodeError(ErrInvalidBoolean, start, string(bs))
	}
}

func (r *reader) readIntValue() (*Value, error) {
	if err := r.expectLiteral("i:"); err != nil {
		return nil, err
	}
	v, err := r.readDecimalInt(';')
	if err != nil {
		return nil, err
	}
	return IntValue(v), nil
}

func (r *reader) readFloatValue() (*Value, error) {
	if err := r.expectLiteral("d:"); err != nil {
		return nil, err
	}
	v, err := r.readFloatLiteral(';')
	if err != nil {
		return nil, err
	}
	return FloatValue(v), nil
}

// readStringLiteral reads an `s:<len>:"<bytes>";` token's payload bytes.
func (r *reader) readStringLiteral() ([]byte, error) {
	if err := r.expectLiteral("s:"); err != nil {
		return nil, err
	}
	n, err := r.readDecimalUint(':')
	if err != nil {
		return nil, err
	}
	if err := r.expectByte('"'); err != nil {
		return nil, err
	}
	b, err := r.readRaw(int(n))
	if err != nil {
		return nil, err
	}
	if err := r.expectByte('"'); err != nil {
		return nil, err
	}
	if err := r.expectByte(';'); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *reader) readStringValue() (*Value, error) {
	b, err := r.readStringLiteral()
	if err != nil {
		return nil, err
	}
	return StringValue(string(b)), nil
}

// readArrayHeader reads `a:<count>:{` and returns the declared pair count.
func (r *reader) readArrayHeader() (int, error) {
	if err := r.expectTag(tagArray, "a:"); err != nil {
		return 0, err
	}
	if err := r.expectLiteral("a:"); err != nil {
		return 0, err
	}
	start := r.pos
	n, err := r.readDecimalUint(':')
	if err != nil {
		return 0, err
	}
	if n > uint64(len(r.data)-r.pos) {
		// Each pair needs at least 2 bytes ("N;" key is impossible, but this
		// guards against a pathologically large count before allocating.
		return 0, newDecodeError(ErrLengthMismatch, start, "declared count exceeds remaining input")
	}
	if err := r.expectByte('{'); err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *reader) readArrayValue() (*Value, error) {
	if err := r.enterContainer(); err != nil {
		return nil, err
	}
	defer r.leaveContainer()

	n, err := r.readArrayHeader()
	if err != nil {
		return nil, err
	}
	pairs := make([]Pair, n)
	for i := 0; i < n; i++ {
		key, err := r.readValue()
		if err != nil {
			return nil, err
		}
		if key.Kind() != KindInt && key.Kind() != KindString {
			return nil, newDecodeError(ErrTypeMismatch, r.pos, "array key must be int or string")
		}
		val, err := r.readValue()
		if err != nil {
			return nil, err
		}
		pairs[i] = Pair{Key: key, Value: val}
	}
	if err := r.expectByte('}'); err != nil {
		return nil, err
	}
	return ArrayValue(pairs...), nil
}
