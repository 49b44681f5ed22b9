package phpserialize

// Wire tag bytes used by PHP's serialize() grammar.
//
// Each tag is the first byte of a value production. Object (O), reference
// (R, r), and Serializable (C) tags are recognized only so that decoding one
// can fail with ErrUnsupportedFeature instead of ErrTypeMismatch.
const (
	tagNull      = 'N'
	tagBool      = 'b'
	tagInt       = 'i'
	tagFloat     = 'd'
	tagString    = 's'
	tagArray     = 'a'
	tagObject    = 'O'
	tagReference = 'R'
	tagRefObject = 'r'
	tagSerFunc   = 'C'
)

// DefaultMaxDepth is the recursion depth limit applied when a Decoder is
// constructed without WithMaxDepth.
const DefaultMaxDepth = 128

// PHP's textual spellings for IEEE 754 non-finite doubles.
const (
	phpNaN    = "NAN"
	phpInf    = "INF"
	phpNegInf = "-INF"
)

// Char distinguishes a single-codepoint string demand from a plain int32 (Go's
// `rune` is an alias for int32, so the two host demands of spec §4.2 — "char"
// and "signed int32" — need separate Go types to dispatch on).
//
// A Char decodes from an `s:` token whose bytes are exactly one UTF-8
// codepoint, and encodes to that same one-codepoint `s:` token.
type Char rune
