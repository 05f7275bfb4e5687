package encode

import (
	"fmt"
	"strings"
)

const (
	// AlphabetMinSize is the minimum number of symbols in a custom alphabet.
	AlphabetMinSize = 2

	// AlphabetMaxSize is the maximum number of symbols in a custom alphabet.
	// Alphabets are byte-oriented, so 256 distinct symbols is the ceiling.
	AlphabetMaxSize = 256

	// GroupingMax is the maximum grouping interval for custom-alphabet output.
	GroupingMax = 128

	// GroupSeparator is inserted between symbol groups when grouping is enabled.
	GroupSeparator = '-'
)

// Alphabet is a validated custom symbol set for the bit-packing codec.
// The zero value is invalid; construct one with NewAlphabet.
type Alphabet struct {
	symbols string
	bits    uint // bits consumed per output symbol: ceil(log2(len(symbols)))
}

// NewAlphabet validates s as a custom alphabet. The alphabet must contain
// between AlphabetMinSize and AlphabetMaxSize symbols with no duplicates.
func NewAlphabet(s string) (Alphabet, error) {
	if len(s) < AlphabetMinSize {
		return Alphabet{}, fmt.Errorf("alphabet must contain at least %d characters, got %d", AlphabetMinSize, len(s))
	}
	if len(s) > AlphabetMaxSize {
		return Alphabet{}, fmt.Errorf("alphabet too long: %d characters (max %d)", len(s), AlphabetMaxSize)
	}

	var seen [256]bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		if seen[c] {
			return Alphabet{}, fmt.Errorf("duplicate character %q at position %d", string(c), i)
		}
		seen[c] = true
	}

	return Alphabet{symbols: s, bits: bitsPerSymbol(len(s))}, nil
}

// bitsPerSymbol returns the smallest b such that 1<<b >= n.
func bitsPerSymbol(n int) uint {
	var b uint
	for (1 << b) < n {
		b++
	}
	return b
}

// Size returns the number of symbols in the alphabet.
func (a Alphabet) Size() int { return len(a.symbols) }

// String returns the alphabet's symbol set.
func (a Alphabet) String() string { return a.symbols }

// IsValid reports whether the alphabet was constructed via NewAlphabet.
func (a Alphabet) IsValid() bool { return len(a.symbols) >= AlphabetMinSize }

// Encode bit-packs data into the alphabet's symbol set. The input is read
// as a big-endian bitstream consumed bits-per-symbol bits at a time; bits
// left over after the last full byte are left-shifted into a final partial
// symbol so no input entropy is discarded. For non-power-of-two alphabets
// a chunk may index past the end of the symbol set; such chunks produce no
// output symbol.
//
// When grouping > 0, GroupSeparator is inserted after every grouping
// symbols, but never as the final character of the output.
//
// An invalid (zero-value) alphabet falls back to hex encoding.
func (a Alphabet) Encode(data []byte, grouping int) string {
	if !a.IsValid() {
		return Hex(data)
	}
	if len(data) == 0 {
		return ""
	}

	mask := uint64(1)<<a.bits - 1

	var symbols []byte
	var acc uint64
	var avail uint

	for _, b := range data {
		acc = acc<<8 | uint64(b)
		avail += 8

		for avail >= a.bits {
			avail -= a.bits
			idx := (acc >> avail) & mask
			if idx < uint64(len(a.symbols)) {
				symbols = append(symbols, a.symbols[idx])
			}
		}
	}

	// Flush: promote leftover bits to a full-width chunk.
	if avail > 0 {
		idx := (acc << (a.bits - avail)) & mask
		if idx < uint64(len(a.symbols)) {
			symbols = append(symbols, a.symbols[idx])
		}
	}

	if grouping <= 0 || len(symbols) <= grouping {
		return string(symbols)
	}
	return groupSymbols(symbols, grouping)
}

// groupSymbols inserts GroupSeparator every grouping symbols, suppressing
// a trailing separator.
func groupSymbols(symbols []byte, grouping int) string {
	var sb strings.Builder
	sb.Grow(len(symbols) + len(symbols)/grouping)
	for i, c := range symbols {
		if i > 0 && i%grouping == 0 {
			sb.WriteByte(GroupSeparator)
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
