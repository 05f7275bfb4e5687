package encode

import (
	"encoding/base64"
	"encoding/hex"
)

// Hex encodes data as lowercase hexadecimal, two digits per byte.
// Empty input yields an empty string.
func Hex(data []byte) string {
	return hex.EncodeToString(data)
}

// Base64 encodes data as standard base64 with padding.
func Base64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Base64URL encodes data as URL-safe base64 without padding
// (RFC 4648 base64url with trailing '=' stripped). The output never
// contains '+', '/', or '='.
func Base64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}
