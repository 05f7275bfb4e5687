package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// SigningKeySize is the recommended signing key size in bytes. HMAC-SHA256
// gains nothing from keys longer than the hash block, and shorter keys
// weaken the construction.
const SigningKeySize = 32

// GenerateSigningKey generates a new random 32-byte HMAC signing key.
func GenerateSigningKey() ([]byte, error) {
	key := make([]byte, SigningKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return key, nil
}

// DeriveSigningKey derives a 32-byte signing key from a low-entropy secret
// (e.g. an operator-supplied passphrase) using HKDF-SHA256. The salt should
// be unique per deployment; it need not be secret.
func DeriveSigningKey(secret, salt []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("secret must not be empty")
	}

	r := hkdf.New(sha256.New, secret, salt, []byte("tokenmint signing key v1"))
	key := make([]byte, SigningKeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}

// KeyFromBase64 decodes a base64-encoded signing key.
func KeyFromBase64(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 key: %w", err)
	}
	if len(key) != SigningKeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", SigningKeySize, len(key))
	}
	return key, nil
}

// KeyToBase64 encodes a signing key to base64.
func KeyToBase64(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}
