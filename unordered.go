package phpserialize

import (
	"reflect"
	"sort"
)

// UnorderedOption configures [DecodeUnorderedArray].
type UnorderedOption func(*unorderedConfig)

type unorderedConfig struct {
	hasDefault bool
	noDefault  bool
	defaultVal any
}

// WithDefault supplies the value used to fill a hole in the array (a missing
// integer index between 0 and the maximum observed key). Without this
// option, holes are filled with the slice element type's zero value.
func WithDefault(v any) UnorderedOption {
	return func(c *unorderedConfig) {
		c.hasDefault = true
		c.defaultVal = v
	}
}

// WithNoDefault makes a hole fail with ErrHoleWithoutDefault instead of
// being filled, for element types where a zero value isn't meaningful.
func WithNoDefault() UnorderedOption {
	return func(c *unorderedConfig) { c.noDefault = true }
}

// DecodeUnorderedArray decodes the PHP array token at the start of data into
// a dense slice, addressing the out-of-order / "holes" case of §4.5: PHP
// arrays populated at arbitrary integer indices whose natural host target is
// a contiguous sequence.
//
// out must be a non-nil pointer to a slice. It is an opt-in, buffered
// adapter: the whole array is materialized and sorted by key before out is
// populated, which is why it is a separate entry point rather than part of
// the streaming decode path.
//
// It returns the number of bytes consumed from data so a caller combining
// this with other decode calls on the same stream can continue from there.
func DecodeUnorderedArray(data []byte, out any, opts ...UnorderedOption) (consumed int, err error) {
	cfg := &unorderedConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Slice {
		return 0, &EncodeError{Err: ErrTypeMismatch, Type: reflect.TypeOf(out)}
	}
	sliceType := rv.Elem().Type()
	elemType := sliceType.Elem()

	r := &reader{data: data, maxDepth: DefaultMaxDepth}
	n, err := r.readArrayHeader()
	if err != nil {
		return 0, err
	}

	type kv struct {
		key int64
		val reflect.Value
	}
	entries := make([]kv, 0, n)
	for i := 0; i < n; i++ {
		tag, ok := r.peekTag()
		if !ok || tag != tagInt {
			return 0, newDecodeError(ErrTypeMismatch, r.pos, "unordered array key must be int")
		}
		key, err := r.decodeKeyInt()
		if err != nil {
			return 0, err
		}
		ev := reflect.New(elemType).Elem()
		if err := r.decodeInto(ev); err != nil {
			return 0, err
		}
		entries = append(entries, kv{key, ev})
	}
	if err := r.expectByte('}'); err != nil {
		return 0, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	byKey := make(map[int64]reflect.Value, len(entries))
	var minKey, maxKey int64
	for i, e := range entries {
		byKey[e.key] = e.val
		if i == 0 {
			minKey, maxKey = e.key, e.key
			continue
		}
		if e.key < minKey {
			minKey = e.key
		}
		if e.key > maxKey {
			maxKey = e.key
		}
	}
	if len(entries) == 0 {
		rv.Elem().Set(reflect.MakeSlice(sliceType, 0, 0))
		return r.pos, nil
	}
	if minKey < 0 {
		return 0, newDecodeError(ErrNegativeIndex, r.pos, "")
	}

	out2 := reflect.MakeSlice(sliceType, int(maxKey)+1, int(maxKey)+1)
	for k := int64(0); k <= maxKey; k++ {
		if v, ok := byKey[k]; ok {
			out2.Index(int(k)).Set(v)
			continue
		}
		if cfg.noDefault {
			return 0, newDecodeError(ErrHoleWithoutDefault, r.pos, "")
		}
		if cfg.hasDefault {
			out2.Index(int(k)).Set(reflect.ValueOf(cfg.defaultVal).Convert(elemType))
			continue
		}
		out2.Index(int(k)).Set(reflect.Zero(elemType))
	}
	rv.Elem().Set(out2)
	return r.pos, nil
}
