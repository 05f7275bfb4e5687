package security

import (
	"bytes"
	"testing"
)

func TestCryptoSourceReadBytes(t *testing.T) {
	var src CryptoSource

	tests := []struct {
		name string
		n    int
	}{
		{"single byte", 1},
		{"default token length", 16},
		{"large request", 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := src.ReadBytes(tt.n)
			if err != nil {
				t.Fatalf("ReadBytes(%d): %v", tt.n, err)
			}
			if len(b) != tt.n {
				t.Errorf("len = %d, want %d", len(b), tt.n)
			}
		})
	}
}

func TestCryptoSourceZeroBytes(t *testing.T) {
	var src CryptoSource

	b, err := src.ReadBytes(0)
	if err != nil {
		t.Fatalf("ReadBytes(0): %v", err)
	}
	if len(b) != 0 {
		t.Errorf("len = %d, want 0", len(b))
	}
}

func TestCryptoSourceNegativeCount(t *testing.T) {
	var src CryptoSource

	if _, err := src.ReadBytes(-1); err == nil {
		t.Error("ReadBytes(-1) succeeded, want error")
	}
}

func TestCryptoSourceNotAllZero(t *testing.T) {
	// A 32-byte all-zero read from a working CSPRNG is vanishingly
	// unlikely; treat it as a broken source.
	var src CryptoSource

	b, err := src.ReadBytes(32)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if bytes.Equal(b, make([]byte, 32)) {
		t.Error("ReadBytes returned all-zero buffer")
	}
}

func TestCryptoSourceDistinctReads(t *testing.T) {
	var src CryptoSource

	a, err := src.ReadBytes(32)
	if err != nil {
		t.Fatal(err)
	}
	b, err := src.ReadBytes(32)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, b) {
		t.Error("two 32-byte reads were identical")
	}
}
