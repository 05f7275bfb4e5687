package security

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// ErrEntropyUnavailable indicates the system CSPRNG failed to produce the
// requested bytes. Callers must treat this as fatal for the value being
// generated: no fallback to predictable data is ever acceptable.
var ErrEntropyUnavailable = errors.New("secure random source unavailable")

// ByteSource produces cryptographically secure random bytes.
type ByteSource interface {
	// ReadBytes returns exactly n random bytes or an error wrapping
	// ErrEntropyUnavailable. It never returns a short buffer.
	ReadBytes(n int) ([]byte, error)
}

// CryptoSource is the production ByteSource backed by crypto/rand.
type CryptoSource struct{}

// ReadBytes reads n bytes from the operating system CSPRNG.
func (CryptoSource) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid byte count %d", n)
	}

	b := make([]byte, n)
	read, err := rand.Read(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	if read != n {
		return nil, fmt.Errorf("%w: short read (%d of %d bytes)", ErrEntropyUnavailable, read, n)
	}
	return b, nil
}
