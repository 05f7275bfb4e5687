package encode

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{
			name: "empty input",
			data: nil,
			want: "",
		},
		{
			name: "boundary bytes",
			data: []byte{0x00, 0xFF},
			want: "00ff",
		},
		{
			name: "mixed bytes",
			data: []byte{0x00, 0xFF, 0xAB, 0xCD},
			want: "00ffabcd",
		},
		{
			name: "single byte",
			data: []byte{0x42},
			want: "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hex(tt.data); got != tt.want {
				t.Errorf("Hex(%v) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

func TestHexLengthAndCase(t *testing.T) {
	for n := 0; n <= 64; n++ {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i * 7)
		}

		got := Hex(data)
		if len(got) != 2*n {
			t.Fatalf("Hex output length = %d, want %d", len(got), 2*n)
		}
		if got != strings.ToLower(got) {
			t.Fatalf("Hex output %q contains uppercase characters", got)
		}
	}
}

func TestBase64URL(t *testing.T) {
	data := []byte("Hello, World!")

	got := Base64URL(data)

	if strings.ContainsAny(got, "+/=") {
		t.Errorf("Base64URL output %q contains '+', '/', or '='", got)
	}

	// Reversing the substitution and restoring padding must recover the input.
	decoded, err := base64.RawURLEncoding.DecodeString(got)
	if err != nil {
		t.Fatalf("failed to decode base64url output: %v", err)
	}
	if string(decoded) != string(data) {
		t.Errorf("round-trip = %q, want %q", decoded, data)
	}
}

func TestBase64URLEmpty(t *testing.T) {
	if got := Base64URL(nil); got != "" {
		t.Errorf("Base64URL(nil) = %q, want empty string", got)
	}
}

func TestBase64URLRoundTrip(t *testing.T) {
	// Inputs chosen so standard base64 would emit '+', '/', and '='.
	inputs := [][]byte{
		{0xFB, 0xFF},
		{0xFF, 0xEF},
		{0x00},
		{0x01, 0x02, 0x03, 0x04, 0x05},
	}

	for _, in := range inputs {
		got := Base64URL(in)
		if strings.ContainsAny(got, "+/=") {
			t.Errorf("Base64URL(%v) = %q contains unsafe characters", in, got)
		}

		decoded, err := base64.RawURLEncoding.DecodeString(got)
		if err != nil {
			t.Fatalf("decode %q: %v", got, err)
		}
		if string(decoded) != string(in) {
			t.Errorf("round-trip of %v = %v", in, decoded)
		}
	}
}

func TestBase64(t *testing.T) {
	if got := Base64([]byte("Hello")); got != "SGVsbG8=" {
		t.Errorf("Base64 = %q, want %q", got, "SGVsbG8=")
	}
}
