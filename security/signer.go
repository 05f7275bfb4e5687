package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHexLength is the length of a hex-encoded HMAC-SHA256 signature.
const SignatureHexLength = sha256.Size * 2

// Verification errors.
var (
	ErrMalformedToken = errors.New("malformed metadata token")
	ErrBadSignature   = errors.New("signature verification failed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenNotSigned = errors.New("token carries no signature")
	ErrMissingSignKey = errors.New("no signing key configured")
)

// SignHMACSHA256 computes the HMAC-SHA256 digest of message under key.
// The digest is deterministic for identical (key, message) pairs.
func SignHMACSHA256(key, message []byte) [sha256.Size]byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)

	var digest [sha256.Size]byte
	copy(digest[:], mac.Sum(nil))
	return digest
}

// MetadataToken is a parsed expiry-bearing token.
type MetadataToken struct {
	// Expiry is the absolute expiration instant as decimal unix seconds.
	Expiry int64

	// Payload is the wrapped token value.
	Payload string

	// Signature is the hex HMAC-SHA256 over "<expiry>:<payload>", empty
	// for unsigned tokens.
	Signature string
}

// Signed reports whether the token carries a signature.
func (m MetadataToken) Signed() bool { return m.Signature != "" }

// EncodeWithMetadata wraps payload in the expiry-bearing wire format. The
// expiry instant is now plus expirySeconds. With a non-empty key the output
// is "<expiry>:<payload>:<signature>" where the signature is the hex
// HMAC-SHA256 of "<expiry>:<payload>" under key; without a key the output
// is the unsigned "<expiry>:<payload>" form, which is guess-resistant but
// not forgery-resistant.
//
// The ':' delimiter is not escaped. A payload that itself contains ':'
// (possible with a custom alphabet) is ambiguous to naive parsers; this
// matches the deployed wire format and is deliberately left as is. See
// ParseMetadata for how this package disambiguates.
func EncodeWithMetadata(payload string, expirySeconds int, key []byte, now time.Time) string {
	expiry := now.Unix() + int64(expirySeconds)

	if len(key) == 0 {
		return fmt.Sprintf("%d:%s", expiry, payload)
	}

	signed := fmt.Sprintf("%d:%s", expiry, payload)
	digest := SignHMACSHA256(key, []byte(signed))
	return fmt.Sprintf("%s:%s", signed, hex.EncodeToString(digest[:]))
}

// ParseMetadata splits a metadata token into its fields. The expiry is
// everything before the first ':'. If the remainder has a trailing field of
// exactly 64 lowercase hex characters it is taken as the signature and the
// payload is what sits between; otherwise the whole remainder is the
// payload. A payload that ends in ":<64 hex chars>" is indistinguishable
// from a signed token by format alone; callers that need certainty must
// verify the signature.
func ParseMetadata(token string) (MetadataToken, error) {
	expiryStr, rest, found := strings.Cut(token, ":")
	if !found || expiryStr == "" {
		return MetadataToken{}, fmt.Errorf("%w: missing expiry delimiter", ErrMalformedToken)
	}

	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil {
		return MetadataToken{}, fmt.Errorf("%w: invalid expiry %q", ErrMalformedToken, expiryStr)
	}

	m := MetadataToken{Expiry: expiry, Payload: rest}

	if i := strings.LastIndexByte(rest, ':'); i >= 0 {
		if tail := rest[i+1:]; isHexSignature(tail) {
			m.Payload = rest[:i]
			m.Signature = tail
		}
	}

	return m, nil
}

// VerifyMetadata parses token, checks its signature under key, and checks
// expiry against now with the clock-skew grace period applied. An unsigned
// token fails with ErrTokenNotSigned: absence of a signature must never
// pass a verification call. An empty key fails with ErrMissingSignKey.
func VerifyMetadata(token string, key []byte, now time.Time) (MetadataToken, error) {
	if len(key) == 0 {
		return MetadataToken{}, ErrMissingSignKey
	}

	m, err := ParseMetadata(token)
	if err != nil {
		return MetadataToken{}, err
	}
	if !m.Signed() {
		return m, ErrTokenNotSigned
	}

	signed := fmt.Sprintf("%d:%s", m.Expiry, m.Payload)
	digest := SignHMACSHA256(key, []byte(signed))
	expected := hex.EncodeToString(digest[:])

	if !hmac.Equal([]byte(expected), []byte(m.Signature)) {
		return m, ErrBadSignature
	}

	if IsExpired(time.Unix(m.Expiry, 0), now) {
		return m, ErrTokenExpired
	}

	return m, nil
}

// isHexSignature reports whether s looks like a hex HMAC-SHA256 digest as
// produced by EncodeWithMetadata (64 lowercase hex characters).
func isHexSignature(s string) bool {
	if len(s) != SignatureHexLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
