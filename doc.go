// Package phpserialize provides a pure Go codec for PHP's serialize()/
// unserialize() wire format.
//
// PHP's serialize() produces a textual, self-describing byte stream used
// throughout the PHP ecosystem for session storage, cache entries (see the
// [github.com/philobyte/phpserialize/memcached] sub-package), and inter-
// process payloads. This package lets Go programs read and write that
// format without embedding PHP.
//
// # Type Mapping
//
// PHP types map to Go types as follows:
//
//   - PHP null      -> nil / a nil pointer / an empty struct (unit)
//   - PHP boolean   -> bool
//   - PHP integer   -> int64 (any fixed-width signed/unsigned int accepted on decode)
//   - PHP float     -> float64 (or float32 when exactly representable)
//   - PHP string    -> string or []byte
//   - PHP array     -> a Go slice (sequence), array (tuple), struct (record),
//     or map, chosen by the target type passed to Unmarshal
//
// PHP object serialization (O:), references (R:/r:), and Serializable
// payloads (C:) are not supported; decoding one returns an error wrapping
// ErrUnsupportedFeature.
//
// # Quick Start
//
//	data := []byte(`a:3:{i:0;s:4:"user";i:1;s:0:"";i:2;a:0:{}}`)
//	var v [3]any
//	err := phpserialize.Unmarshal(data, &v)
//
//	out, err := phpserialize.Marshal(map[string]any{"id": 42, "name": "Bob"})
//
// # Decoder Options
//
// For advanced usage, construct a [Decoder] directly:
//
//	dec := phpserialize.NewDecoder(
//	    phpserialize.WithMaxDepth(64),
//	)
//	var v MyStruct
//	err := dec.Unmarshal(data, &v)
//
// Encoding has no analogous options type: per the format's design, a single
// top-level emission is stateless over its byte sink, so [Marshal] and
// [MarshalTo] take no configuration.
//
// # Sub-packages
//
// The [github.com/philobyte/phpserialize/memcached] sub-package provides a
// PHP memcached interop layer that handles decompression (FastLZ, zlib) and
// flag-based dispatch across the serialization formats PHP's memcached
// extension supports, one of which is this package's wire format.
package phpserialize
