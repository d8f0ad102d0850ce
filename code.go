package huffcodec

import (
	"fmt"
	"strconv"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the longest possible code for a byte alphabet: a
// completely unbalanced tree of 256 leaves is 255 levels deep.
const MaxCodeSize = NumSymbols - 1

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  Bit i of the sequence is
	// bit (i % 64) of Bits[i / 64], so the least significant bit of
	// Bits[0] is the first bit.
	Bits [4]uint64
}

// MakeCode is a convenience function that constructs a Code of up to 64
// bits.  The least significant bit of bits is the first bit.
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= 64, "MakeCode size %d > 64", size)
	if size < 64 {
		bits &= (uint64(1) << size) - 1
	}
	return Code{Size: size, Bits: [4]uint64{bits}}
}

// Bit returns bit i of the sequence.
func (hc Code) Bit(i byte) uint8 {
	assert.Assertf(i < hc.Size, "Bit(%d) of a %d-bit code", i, hc.Size)
	return uint8(hc.Bits[i>>6]>>(i&63)) & 1
}

// Append returns a copy of hc with bit v added to the end.
func (hc Code) Append(v uint8) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "code longer than %d bits", MaxCodeSize)
	if v != 0 {
		hc.Bits[hc.Size>>6] |= uint64(1) << (hc.Size & 63)
	}
	hc.Size++
	return hc
}

// String returns the string representation of this Code, first bit first.
func (hc Code) String() string {
	buf := make([]byte, hc.Size)
	for i := byte(0); i < hc.Size; i++ {
		buf[i] = '0' + hc.Bit(i)
	}
	return strconv.Quote(string(buf))
}

var _ fmt.Stringer = Code{}
