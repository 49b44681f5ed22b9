package memcached

import (
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"

	php "github.com/philobyte/phpserialize"
)

// Store wraps a [memcache.Client] with PHP-compatible serialization so Go
// and PHP processes can share memcached cache entries without either side
// embedding the other's runtime.
//
// Put always writes with [FlagSerialized] (PHP's serialize() format); Get
// understands any flags combination a [Codec] does, so it can also read
// entries a PHP process wrote as JSON or as a scalar type. The default
// Codec has no igbinary serializer, so igbinary entries fail to decode.
type Store struct {
	client *memcache.Client
	codec  *Codec
}

// NewStore creates a Store backed by client, decoding with codec. Pass nil
// for codec to use [NewCodec]'s standard PHP memcached defaults.
func NewStore(client *memcache.Client, codec *Codec) *Store {
	if codec == nil {
		codec = NewCodec()
	}
	return &Store{client: client, codec: codec}
}

// Put marshals v with phpserialize.Marshal and stores it under key, flagged
// as [FlagSerialized] so any PHP consumer's memcached extension unserializes
// it transparently.
func (s *Store) Put(key string, v any) error {
	data, err := php.Marshal(v)
	if err != nil {
		return fmt.Errorf("memcached: put %q: %w", key, err)
	}
	return s.client.Set(&memcache.Item{
		Key:   key,
		Value: data,
		Flags: FlagSerialized,
	})
}

// Get fetches key and decodes it through the Store's Codec. If v is
// non-nil, the decoded value is additionally re-marshaled and unmarshaled
// into v via phpserialize, giving callers a typed result instead of the
// dynamic any the Codec itself returns.
func (s *Store) Get(key string, v any) (any, error) {
	item, err := s.client.Get(key)
	if err != nil {
		return nil, fmt.Errorf("memcached: get %q: %w", key, err)
	}
	val, err := s.codec.Decode(item.Value, item.Flags)
	if err != nil {
		return nil, fmt.Errorf("memcached: get %q: %w", key, err)
	}
	if v == nil {
		return val, nil
	}
	if err := assign(val, v); err != nil {
		return nil, fmt.Errorf("memcached: get %q: %w", key, err)
	}
	return val, nil
}

// assign round-trips a dynamic any value produced by a Serializer through
// the target type v by re-encoding and decoding, since Codec.Decode only
// ever hands back dynamically typed Go values (map[any]any, []any, ...).
func assign(val any, v any) error {
	data, err := php.Marshal(val)
	if err != nil {
		return err
	}
	return php.Unmarshal(data, v)
}
