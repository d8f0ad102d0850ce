package huffcodec

import (
	"bytes"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"

	"github.com/chronos-tachyon/huffcodec/bitbuf"
)

// ErrUnknownSymbol is returned when the input holds a byte that has no Code.
var ErrUnknownSymbol = errors.New("symbol not in Huffman code")

// Encoder compresses byte sequences with a fixed Huffman code.
type Encoder struct {
	root  Node
	table CodeTable
}

// Init initializes this Encoder from a weight table, one entry per symbol
// with a non-zero count, in ascending Symbol order.  It fails with ErrNoData
// if weights is empty.
func (e *Encoder) Init(weights []SymbolWeight) error {
	root, err := BuildTree(weights)
	if err != nil {
		return err
	}
	table, err := NewCodeTable(root)
	if err != nil {
		return err
	}
	*e = Encoder{root: root, table: table}
	return nil
}

// Root returns the code tree.
func (e Encoder) Root() Node {
	return e.root
}

// Table returns the code table.
func (e Encoder) Table() CodeTable {
	return e.table
}

// Encode compresses data into a self-describing stream.
func (e Encoder) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := e.EncodeTo(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo compresses data and writes the stream to w.  Nothing is written
// if data holds a byte without a Code.
func (e Encoder) EncodeTo(w io.Writer, data []byte) (int64, error) {
	assert.Assertf(e.root != nil, "Encoder used before Init")

	b := bitbuf.New()
	writeHeader(b, e.root, uint64(len(data)))
	for index, x := range data {
		hc, ok := e.table.Lookup(x)
		if !ok {
			return 0, errors.Wrapf(ErrUnknownSymbol, "byte %#02x at offset %d", x, index)
		}
		for i := byte(0); i < hc.Size; i++ {
			b.InsertBit(hc.Bit(i))
		}
	}
	return b.WriteTo(w)
}

// Encode compresses data using the given weight table, which must cover
// every byte of data.  Empty data with an empty weight table encodes to the
// empty stream.
func Encode(data []byte, weights []SymbolWeight) ([]byte, error) {
	if len(data) == 0 && len(weights) == 0 {
		return []byte{}, nil
	}
	var e Encoder
	if err := e.Init(weights); err != nil {
		return nil, err
	}
	return e.Encode(data)
}
