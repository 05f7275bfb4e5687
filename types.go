package tokenmint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/quayside/tokenmint/cache"
)

// Hard limits. Out-of-range configuration is clamped at resolution time
// rather than rejected, so a bad value degrades a single token instead of
// failing the scope.
const (
	// LengthDefault is the default token length in bytes (128 bits of entropy).
	LengthDefault = 16

	// LengthMin and LengthMax bound the token length in bytes.
	LengthMin = 1
	LengthMax = 1024

	// MaxTokens caps the token specs per context to bound per-request work.
	MaxTokens = 50

	// TTLMaxSeconds caps the cache TTL at 24 hours.
	TTLMaxSeconds = 86400

	// ExpiryMaxSeconds caps metadata expiry at 1 year.
	ExpiryMaxSeconds = 31536000
)

// Format selects the output encoding for generated token bytes.
type Format int

const (
	// FormatBase64 is standard base64 with padding. It is the system default.
	FormatBase64 Format = iota

	// FormatHex is lowercase hexadecimal.
	FormatHex

	// FormatBase64URL is URL-safe base64 without padding.
	FormatBase64URL

	// FormatCustom bit-packs into the context's custom alphabet. A custom
	// format without a configured alphabet demotes to base64 at resolution.
	FormatCustom
)

// String returns the configuration name of the format.
func (f Format) String() string {
	switch f {
	case FormatBase64:
		return "base64"
	case FormatHex:
		return "hex"
	case FormatBase64URL:
		return "base64url"
	case FormatCustom:
		return "custom"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// valid reports whether f is one of the defined formats.
func (f Format) valid() bool {
	return f >= FormatBase64 && f <= FormatCustom
}

// ParseFormat parses a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "base64":
		return FormatBase64, nil
	case "hex":
		return FormatHex, nil
	case "base64url":
		return FormatBase64URL, nil
	case "custom":
		return FormatCustom, nil
	default:
		return 0, fmt.Errorf("unknown format %q (must be base64, hex, base64url, or custom)", s)
	}
}

// Optional is a tagged optional configuration value. The zero value is
// unset, meaning "inherit from the enclosing scope". This replaces raw
// sentinel integers so an explicit zero (a legal TTL and grouping value)
// can never be confused with "not configured".
type Optional[T any] struct {
	value T
	valid bool
}

// Some returns a set Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, valid: true}
}

// Get returns the value and whether it was explicitly set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.valid
}

// IsSet reports whether the value was explicitly configured.
func (o Optional[T]) IsSet() bool {
	return o.valid
}

// Or returns the value if set, otherwise fallback.
func (o Optional[T]) Or(fallback T) T {
	if o.valid {
		return o.value
	}
	return fallback
}

// or chains two optionals: the receiver wins if set.
func (o Optional[T]) or(next Optional[T]) Optional[T] {
	if o.valid {
		return o
	}
	return next
}

// TokenSpec is the configuration for one named token within a scope. Unset
// fields inherit from the Context, then from the hard-coded defaults.
//
// Construct specs with NewTokenSpec so the spec owns a cache slot; a spec
// built as a bare literal still works but never caches, regardless of TTL.
type TokenSpec struct {
	// Name is the environment-style output key for the token (required).
	Name string

	// Length is the number of random bytes to generate.
	Length Optional[int]

	// Format is the output encoding.
	Format Optional[Format]

	// Header optionally names a header-style sink for the token in
	// addition to the Name key.
	Header Optional[string]

	// Timestamp prepends "<unix-seconds>-" to the encoded token.
	Timestamp Optional[bool]

	// Prefix and Suffix are concatenated around the finished token.
	Prefix Optional[string]
	Suffix Optional[string]

	// TTL is the cache lifetime in seconds. Zero disables caching and is
	// distinct from unset: an explicit zero does not inherit the context
	// default.
	TTL Optional[int]

	// slot holds the spec's cached value. One mutable slot per spec,
	// shared by every request in the scope; nil disables caching.
	slot *cache.Slot
}

// NewTokenSpec creates a token spec with a fresh cache slot.
func NewTokenSpec(name string) *TokenSpec {
	return &TokenSpec{
		Name: name,
		slot: cache.NewSlot(),
	}
}

// clone copies the spec's configuration into a new spec with its own empty
// cache slot. Cached values are deliberately not inherited across merges.
func (s *TokenSpec) clone() *TokenSpec {
	c := *s
	c.slot = cache.NewSlot()
	return &c
}

// Context is the merged configuration for one scope: shared defaults plus
// the ordered token specs. A Context is immutable after construction except
// for the cache slots inside its specs; it is safe for concurrent use.
type Context struct {
	// Defaults applied to specs that leave the matching field unset.
	Length    Optional[int]
	Format    Optional[Format]
	Timestamp Optional[bool]
	Prefix    Optional[string]
	Suffix    Optional[string]
	TTL       Optional[int]

	// Alphabet is the symbol set for FormatCustom, Grouping the separator
	// interval for its output (0 = no grouping).
	Alphabet Optional[string]
	Grouping Optional[int]

	// Expiry is the metadata expiry in seconds; EncodeMetadata enables
	// wrapping tokens in the expiry-bearing wire format.
	Expiry         Optional[int]
	EncodeMetadata Optional[bool]

	// SigningKey signs metadata tokens with HMAC-SHA256. Nil or empty
	// produces unsigned (guess-resistant, forgeable) metadata tokens.
	SigningKey []byte

	// URLPattern restricts generation to matching subjects. Nil matches
	// everything.
	URLPattern *regexp.Regexp

	// Tokens is the ordered list of specs for this scope, capped at
	// MaxTokens.
	Tokens []*TokenSpec
}

// AddToken appends a spec to the context's token list, enforcing the
// MaxTokens cap and requiring a name.
func (c *Context) AddToken(spec *TokenSpec) error {
	if spec == nil || spec.Name == "" {
		return fmt.Errorf("%w: token name is required", ErrInvalidSpec)
	}
	if len(c.Tokens) >= MaxTokens {
		return fmt.Errorf("%w: maximum number of tokens (%d) exceeded", ErrInvalidSpec, MaxTokens)
	}
	c.Tokens = append(c.Tokens, spec)
	return nil
}

// Output is one generated token, labeled with where the host should
// deliver it. The core labels sinks; it does not implement them.
type Output struct {
	// Name is the environment-style key for the value.
	Name string

	// Header is the optional header-style sink name; empty means none.
	Header string

	// Value is the finished token string. Empty when Err is set.
	Value string

	// Cached reports whether the value was served from the TTL cache.
	Cached bool

	// Err is set only for fatal per-token failures (CSPRNG unavailable).
	// Other tokens in the same batch are unaffected.
	Err error
}
