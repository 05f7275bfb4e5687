package tokenmint

import (
	"time"

	"github.com/quayside/tokenmint/cache"
	"github.com/quayside/tokenmint/encode"
)

// Effective is the fully resolved parameter set for one token generation:
// every field defaulted, validated, and clamped into range.
type Effective struct {
	Name      string
	Length    int
	Format    Format
	Header    string
	Timestamp bool
	Prefix    string
	Suffix    string
	TTL       time.Duration

	Alphabet encode.Alphabet
	Grouping int

	Expiry         int // seconds; 0 disables metadata encoding
	EncodeMetadata bool
	SigningKey     []byte

	slot *cache.Slot
}

// Warning reports a configuration value that resolution clamped or demoted.
// Warnings are diagnostics, not failures: generation continues with the
// effective value.
type Warning struct {
	Token      string
	Field      string
	Configured any
	Effective  any
	Reason     string
}

// Resolve computes the effective parameters for one spec within its
// context. The override rule is: the spec's own value if set, else the
// context default, else the hard-coded system default (length 16, base64,
// no timestamp, no TTL).
//
// Upstream configuration should already be valid; resolution re-validates
// anyway so programmatic misuse degrades a single token instead of
// corrupting output: out-of-range lengths reset to the default, unknown
// formats reset to base64, negative TTLs disable caching, oversized TTLs
// and groupings clamp to their maxima, and a custom format without a
// usable alphabet demotes to base64.
func Resolve(spec *TokenSpec, ctx *Context) (Effective, []Warning) {
	if ctx == nil {
		ctx = &Context{}
	}

	var warnings []Warning
	warn := func(field string, configured, effective any, reason string) {
		warnings = append(warnings, Warning{
			Token:      spec.Name,
			Field:      field,
			Configured: configured,
			Effective:  effective,
			Reason:     reason,
		})
	}

	eff := Effective{
		Name:      spec.Name,
		Length:    spec.Length.or(ctx.Length).Or(LengthDefault),
		Format:    spec.Format.or(ctx.Format).Or(FormatBase64),
		Header:    spec.Header.Or(""),
		Timestamp: spec.Timestamp.or(ctx.Timestamp).Or(false),
		Prefix:    spec.Prefix.or(ctx.Prefix).Or(""),
		Suffix:    spec.Suffix.or(ctx.Suffix).Or(""),

		Grouping: ctx.Grouping.Or(0),

		Expiry:         ctx.Expiry.Or(0),
		EncodeMetadata: ctx.EncodeMetadata.Or(false),
		SigningKey:     ctx.SigningKey,

		slot: spec.slot,
	}

	if eff.Length < LengthMin || eff.Length > LengthMax {
		warn("length", eff.Length, LengthDefault, "out of range, reset to default")
		eff.Length = LengthDefault
	}

	if !eff.Format.valid() {
		warn("format", int(eff.Format), FormatBase64.String(), "unknown format, reset to base64")
		eff.Format = FormatBase64
	}

	ttl := spec.TTL.or(ctx.TTL).Or(0)
	switch {
	case ttl < 0:
		warn("ttl", ttl, 0, "negative TTL disables caching")
		ttl = 0
	case ttl > TTLMaxSeconds:
		warn("ttl", ttl, TTLMaxSeconds, "clamped to maximum")
		ttl = TTLMaxSeconds
	}
	eff.TTL = time.Duration(ttl) * time.Second

	switch {
	case eff.Grouping < 0:
		warn("grouping", eff.Grouping, 0, "negative grouping disabled")
		eff.Grouping = 0
	case eff.Grouping > encode.GroupingMax:
		warn("grouping", eff.Grouping, encode.GroupingMax, "clamped to maximum")
		eff.Grouping = encode.GroupingMax
	}

	switch {
	case eff.Expiry < 0:
		warn("expiry", eff.Expiry, 0, "negative expiry disables metadata")
		eff.Expiry = 0
	case eff.Expiry > ExpiryMaxSeconds:
		warn("expiry", eff.Expiry, ExpiryMaxSeconds, "clamped to maximum")
		eff.Expiry = ExpiryMaxSeconds
	}

	if eff.Format == FormatCustom {
		alphabet, ok := ctx.Alphabet.Get()
		if !ok {
			warn("format", FormatCustom.String(), FormatBase64.String(), "custom format without alphabet, demoted to base64")
			eff.Format = FormatBase64
		} else {
			a, err := encode.NewAlphabet(alphabet)
			if err != nil {
				warn("alphabet", alphabet, FormatBase64.String(), "invalid alphabet, demoted to base64")
				eff.Format = FormatBase64
			} else {
				eff.Alphabet = a
			}
		}
	}

	return eff, warnings
}
