// Package bitbuf implements a growable, circular FIFO of individual bits.
//
// Bits are inserted at the tail and removed from the head.  Bytes are
// inserted and removed most significant bit first.  The buffer grows one
// byte at a time when needed and never shrinks.
//
package bitbuf

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// DefaultCapacity is the capacity, in bits, of a Buffer returned by New.
const DefaultCapacity = 16

// ErrUnderflow is returned when removing more bits than the Buffer holds.
var ErrUnderflow = errors.New("bit buffer underflow")

// Buffer is a FIFO of bits backed by a circular byte array.
//
// The zero value is not usable; construct with New or FromBytes.
type Buffer struct {
	data []byte
	size uint
	head uint
	tail uint
}

// New returns an empty Buffer with DefaultCapacity.
func New() *Buffer {
	return &Buffer{data: make([]byte, DefaultCapacity/8)}
}

// FromBytes returns a Buffer holding every bit of p, first byte first.
// The returned Buffer does not alias p.
func FromBytes(p []byte) *Buffer {
	data := make([]byte, len(p)+1)
	copy(data, p)
	size := uint(len(p)) * 8
	return &Buffer{data: data, size: size, tail: size}
}

// Cap returns the capacity of the Buffer in bits.  It is always a multiple
// of 8.
func (b *Buffer) Cap() uint {
	return uint(len(b.data)) * 8
}

// Size returns the number of bits currently held.
func (b *Buffer) Size() uint {
	return b.size
}

// InsertBit appends v to the tail of the Buffer.  Any non-zero v is
// treated as 1.
func (b *Buffer) InsertBit(v uint8) {
	if b.size+1 >= b.Cap() {
		b.grow()
	}
	b.set(b.tail, v)
	b.tail = (b.tail + 1) % b.Cap()
	b.size++
}

// InsertByte appends the 8 bits of x, most significant bit first.
func (b *Buffer) InsertByte(x byte) {
	for bit := 7; bit >= 0; bit-- {
		b.InsertBit((x >> uint(bit)) & 1)
	}
}

// RemoveBit removes and returns the oldest bit.
func (b *Buffer) RemoveBit() (uint8, error) {
	if b.size == 0 {
		return 0, ErrUnderflow
	}
	v := b.get(b.head)
	b.set(b.head, 0)
	b.head = (b.head + 1) % b.Cap()
	b.size--
	return v, nil
}

// RemoveByte removes the 8 oldest bits and returns them packed most
// significant bit first.  Nothing is removed if fewer than 8 bits are held.
func (b *Buffer) RemoveByte() (byte, error) {
	if b.size < 8 {
		return 0, errors.Wrapf(ErrUnderflow, "need 8 bits, have %d", b.size)
	}
	var x byte
	for bit := 7; bit >= 0; bit-- {
		v, _ := b.RemoveBit()
		x |= v << uint(bit)
	}
	return x, nil
}

// InspectBit returns the n'th bit not yet removed, where 0 is the next bit
// RemoveBit would return.  It panics if n >= Size().
func (b *Buffer) InspectBit(n uint) uint8 {
	assert.Assertf(n < b.size, "InspectBit(%d) with only %d bits held", n, b.size)
	return b.get((b.head + n) % b.Cap())
}

// Bytes returns a copy of the whole backing storage, Cap()/8 bytes long,
// without regard to the head and tail positions.  Use RemoveByte or WriteTo
// to extract the logical contents.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Copy returns an independent Buffer holding the same bits in the same order.
func (b *Buffer) Copy() *Buffer {
	out := New()
	for i := uint(0); i < b.size; i++ {
		out.InsertBit(b.InspectBit(i))
	}
	return out
}

// WriteTo drains the Buffer into w, padding the final byte with zero bits.
// The Buffer is empty afterward, even on error.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var n int64
	bw := bitio.NewWriter(w)
	for b.size >= 8 {
		x, _ := b.RemoveByte()
		if err := bw.WriteByte(x); err != nil {
			b.reset()
			return n, err
		}
		n++
	}
	if b.size != 0 {
		for b.size != 0 {
			v, _ := b.RemoveBit()
			if err := bw.WriteBool(v != 0); err != nil {
				b.reset()
				return n, err
			}
		}
		n++
	}
	if err := bw.Close(); err != nil {
		return n, err
	}
	return n, nil
}

// String returns the bits currently held as a string of '0' and '1'
// characters, oldest bit first.
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.Grow(int(b.size))
	for i := uint(0); i < b.size; i++ {
		sb.WriteByte('0' + b.InspectBit(i))
	}
	return sb.String()
}

var _ fmt.Stringer = (*Buffer)(nil)

// Dump writes a programmer-readable debugging dump of the Buffer's raw
// storage to the given writer.  The line marked "i" points at the next
// insert position, and the line marked "r" at the next remove position.
func (b *Buffer) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "capacity = %d\n", b.Cap())
	fmt.Fprintf(&buf, "size = %d\n", b.size)
	buf.WriteString(strings.Repeat(" ", int(b.tail)))
	buf.WriteString("i\n")
	for i := uint(0); i < b.Cap(); i++ {
		buf.WriteByte('0' + b.get(i))
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", int(b.head)))
	buf.WriteString("r\n")
	return buf.WriteTo(w)
}

// grow adds one byte of storage.  If the held bits wrap around the end of
// the old storage, the run from head to the old end moves up by 8 bits so
// that the new byte lands in the free gap between tail and head.
func (b *Buffer) grow() {
	oldCap := b.Cap()
	b.data = append(b.data, 0)
	if b.size != 0 && b.head >= b.tail {
		for i := oldCap; i > b.head; i-- {
			b.set(i-1+8, b.get(i-1))
		}
		for i := b.head; i < b.head+8; i++ {
			b.set(i, 0)
		}
		b.head += 8
	}
}

func (b *Buffer) reset() {
	for i := range b.data {
		b.data[i] = 0
	}
	b.size, b.head, b.tail = 0, 0, 0
}

func (b *Buffer) get(i uint) uint8 {
	return (b.data[i>>3] >> (7 - i&7)) & 1
}

func (b *Buffer) set(i uint, v uint8) {
	mask := byte(1) << (7 - i&7)
	if v != 0 {
		b.data[i>>3] |= mask
	} else {
		b.data[i>>3] &^= mask
	}
}
