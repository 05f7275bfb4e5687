package encode

import (
	"strings"
	"testing"
)

func TestNewAlphabet(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "minimal binary alphabet",
			input:   "01",
			wantErr: false,
		},
		{
			name:    "crockford-style alphabet",
			input:   "0123456789ABCDEFGHJKMNPQRSTVWXYZ",
			wantErr: false,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "single character",
			input:   "A",
			wantErr: true,
		},
		{
			name:    "duplicate character",
			input:   "ABCA",
			wantErr: true,
		},
		{
			name:    "duplicate at end",
			input:   "0123456789AA",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAlphabet(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewAlphabet(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && a.Size() != len(tt.input) {
				t.Errorf("Size() = %d, want %d", a.Size(), len(tt.input))
			}
		})
	}
}

func TestNewAlphabetTooLong(t *testing.T) {
	// 256 distinct bytes is allowed; anything longer necessarily duplicates,
	// but the length check must fire first for a 257-byte input.
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	if _, err := NewAlphabet(string(all)); err != nil {
		t.Errorf("256 distinct symbols should be valid, got %v", err)
	}
	if _, err := NewAlphabet(string(all) + "x"); err == nil {
		t.Error("257-symbol alphabet should be rejected")
	}
}

func TestBitsPerSymbol(t *testing.T) {
	tests := []struct {
		size int
		want uint
	}{
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{16, 4},
		{32, 5},
		{64, 6},
		{255, 8},
		{256, 8},
	}

	for _, tt := range tests {
		if got := bitsPerSymbol(tt.size); got != tt.want {
			t.Errorf("bitsPerSymbol(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestAlphabetEncode(t *testing.T) {
	abcd, err := NewAlphabet("ABCD")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("output restricted to alphabet", func(t *testing.T) {
		got := abcd.Encode([]byte{0x00, 0x01, 0x02, 0x03}, 0)
		if got == "" {
			t.Fatal("expected non-empty output")
		}
		for _, c := range got {
			if !strings.ContainsRune("ABCD", c) {
				t.Errorf("output %q contains %q outside alphabet", got, c)
			}
		}
	})

	t.Run("two bits per symbol", func(t *testing.T) {
		// 0x1B = 00 01 10 11 -> A B C D
		if got := abcd.Encode([]byte{0x1B}, 0); got != "ABCD" {
			t.Errorf("Encode(0x1B) = %q, want %q", got, "ABCD")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := abcd.Encode(nil, 0); got != "" {
			t.Errorf("Encode(nil) = %q, want empty", got)
		}
	})

	t.Run("all grouping values are safe", func(t *testing.T) {
		data := []byte{0x00, 0x01, 0x02, 0x03}
		for grouping := 0; grouping <= GroupingMax; grouping++ {
			got := abcd.Encode(data, grouping)
			for _, c := range got {
				if c != rune(GroupSeparator) && !strings.ContainsRune("ABCD", c) {
					t.Fatalf("grouping=%d: unexpected character %q in %q", grouping, c, got)
				}
			}
		}
	})
}

func TestAlphabetEncodeFlush(t *testing.T) {
	// Hex alphabet: 16 symbols, 4 bits each. One byte packs exactly into
	// two symbols; three bits of a 5-symbol alphabet leave a partial chunk.
	hex16, err := NewAlphabet("0123456789abcdef")
	if err != nil {
		t.Fatal(err)
	}
	if got := hex16.Encode([]byte{0xAB}, 0); got != "ab" {
		t.Errorf("16-symbol encode of 0xAB = %q, want %q", got, "ab")
	}

	// 32-symbol alphabet: 5 bits per symbol. One byte yields one full
	// symbol plus 3 leftover bits which must flush (left-shifted) into a
	// second symbol, not be discarded.
	b32, err := NewAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZ234567")
	if err != nil {
		t.Fatal(err)
	}
	got := b32.Encode([]byte{0xFF}, 0)
	if len(got) != 2 {
		t.Fatalf("32-symbol encode of one byte = %q, want 2 symbols (flush)", got)
	}
	// 0xFF = 11111 111 -> symbol 31 ('7'), then 111 << 2 = 11100 -> symbol 28 ('4').
	if got != "74" {
		t.Errorf("Encode(0xFF) = %q, want %q", got, "74")
	}
}

func TestAlphabetEncodeNonPowerOfTwo(t *testing.T) {
	// 3-symbol alphabet uses 2-bit chunks; chunk value 3 has no symbol and
	// is skipped rather than faulting.
	abc, err := NewAlphabet("abc")
	if err != nil {
		t.Fatal(err)
	}

	// 0xFF = 11 11 11 11: every chunk indexes past the alphabet.
	if got := abc.Encode([]byte{0xFF}, 0); got != "" {
		t.Errorf("Encode(0xFF) = %q, want empty (all chunks out of range)", got)
	}

	// 0x24 = 00 10 01 00 -> a c b a
	if got := abc.Encode([]byte{0x24}, 0); got != "acba" {
		t.Errorf("Encode(0x24) = %q, want %q", got, "acba")
	}
}

func TestAlphabetEncodeGrouping(t *testing.T) {
	abcd, err := NewAlphabet("ABCD")
	if err != nil {
		t.Fatal(err)
	}

	// 3 bytes -> 12 symbols; grouping=4 -> two separators.
	got := abcd.Encode([]byte{0x1B, 0x1B, 0x1B}, 4)

	if strings.HasSuffix(got, string(GroupSeparator)) {
		t.Errorf("output %q ends with the group separator", got)
	}

	groups := strings.Split(got, string(GroupSeparator))
	if len(groups) != 3 {
		t.Fatalf("output %q has %d groups, want 3", got, len(groups))
	}
	for i, g := range groups {
		if len(g) != 4 {
			t.Errorf("group %d of %q has length %d, want 4", i, got, len(g))
		}
	}
}

func TestAlphabetEncodeGroupingExactMultiple(t *testing.T) {
	abcd, err := NewAlphabet("ABCD")
	if err != nil {
		t.Fatal(err)
	}

	// One byte -> exactly 4 symbols. With grouping=4 the output length is
	// a multiple of the group size; no trailing separator may appear.
	got := abcd.Encode([]byte{0x1B}, 4)
	if got != "ABCD" {
		t.Errorf("Encode(0x1B, grouping=4) = %q, want %q", got, "ABCD")
	}
}

func TestAlphabetEncodeInvalidFallsBackToHex(t *testing.T) {
	var zero Alphabet
	data := []byte{0xDE, 0xAD}
	if got := zero.Encode(data, 0); got != "dead" {
		t.Errorf("zero-value alphabet Encode = %q, want hex fallback %q", got, "dead")
	}
}
