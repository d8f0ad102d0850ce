package huffcodec

import (
	"bufio"
	"io"

	"github.com/32bitkid/bitreader"
	"github.com/pkg/errors"

	"github.com/chronos-tachyon/huffcodec/bitbuf"
)

// ErrCorruptStream is returned when a compressed stream cannot be decoded.
var ErrCorruptStream = errors.New("corrupt Huffman stream")

// lengthBits is the width of the original-length field.
const lengthBits = 64

// Header is the self-describing prefix of a compressed stream.
type Header struct {
	// Root is the code tree.  Trees read from a stream carry no real
	// occurrence counts: every Leaf has Count 1.  Root is nil for the
	// empty stream.
	Root Node

	// Length is the number of bytes the payload decodes to.
	Length uint64
}

// Table derives the CodeTable of the header's tree.
func (h Header) Table() (CodeTable, error) {
	return NewCodeTable(h.Root)
}

// ReadHeader reads just the header of a compressed stream from r.  It may
// consume bytes of r beyond the header.  An empty stream yields a Header
// with a nil Root.
func ReadHeader(r io.Reader) (Header, error) {
	src := &streamSource{br: bitreader.NewReader(bufio.NewReader(r))}
	h, err := readHeader(src)
	if err != nil && src.read == 0 && src.eof {
		return Header{}, nil
	}
	return h, err
}

// writeHeader serializes root in preorder, then length.
func writeHeader(b *bitbuf.Buffer, root Node, length uint64) {
	writeNode(b, root)
	for shift := lengthBits - 8; shift >= 0; shift -= 8 {
		b.InsertByte(byte(length >> uint(shift)))
	}
}

func writeNode(b *bitbuf.Buffer, node Node) {
	switch x := node.(type) {
	case *Leaf:
		b.InsertBit(0)
		b.InsertByte(x.Symbol)
	case *Internal:
		b.InsertBit(1)
		writeNode(b, x.Left)
		writeNode(b, x.Right)
	}
}

// bitSource is where headers are parsed from.  Running out of bits is
// reported as ErrCorruptStream; other errors are passed through.
type bitSource interface {
	readBit() (uint8, error)
	readByte() (byte, error)
}

func readHeader(src bitSource) (Header, error) {
	p := headerParser{src: src}
	root, err := p.parseNode()
	if err != nil {
		return Header{}, err
	}

	var length uint64
	for i := 0; i < lengthBits/8; i++ {
		x, err := src.readByte()
		if err != nil {
			return Header{}, err
		}
		length = (length << 8) | uint64(x)
	}
	return Header{Root: root, Length: length}, nil
}

type headerParser struct {
	src       bitSource
	internals int
	seen      [NumSymbols]bool
}

func (p *headerParser) parseNode() (Node, error) {
	bit, err := p.src.readBit()
	if err != nil {
		return nil, err
	}

	if bit == 0 {
		symbol, err := p.src.readByte()
		if err != nil {
			return nil, err
		}
		if p.seen[symbol] {
			return nil, errors.Wrapf(ErrCorruptStream, "symbol %d appears twice in tree", symbol)
		}
		p.seen[symbol] = true
		return &Leaf{Symbol: symbol, Count: 1}, nil
	}

	// A full binary tree over a byte alphabet has at most 255 internal
	// nodes, which also bounds the recursion depth.
	p.internals++
	if p.internals >= NumSymbols {
		return nil, errors.Wrapf(ErrCorruptStream, "more than %d internal nodes in tree", NumSymbols-1)
	}
	left, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	right, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	return &Internal{Sum: left.Weight() + right.Weight(), Left: left, Right: right}, nil
}

// type bufferSource + type streamSource {{{

type bufferSource struct {
	b *bitbuf.Buffer
}

func (s bufferSource) readBit() (uint8, error) {
	v, err := s.b.RemoveBit()
	if err != nil {
		return 0, errors.Wrap(ErrCorruptStream, "truncated header")
	}
	return v, nil
}

func (s bufferSource) readByte() (byte, error) {
	x, err := s.b.RemoveByte()
	if err != nil {
		return 0, errors.Wrap(ErrCorruptStream, "truncated header")
	}
	return x, nil
}

type streamSource struct {
	br   bitreader.BitReader
	read uint64
	eof  bool
}

func (s *streamSource) readBit() (uint8, error) {
	v, err := s.br.Read8(1)
	if err != nil {
		return 0, s.fail(err)
	}
	s.read++
	return v, nil
}

func (s *streamSource) readByte() (byte, error) {
	x, err := s.br.Read8(8)
	if err != nil {
		return 0, s.fail(err)
	}
	s.read += 8
	return x, nil
}

func (s *streamSource) fail(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		s.eof = true
		return errors.Wrapf(ErrCorruptStream, "truncated header after %d bits", s.read)
	}
	return errors.WithStack(err)
}

var (
	_ bitSource = bufferSource{}
	_ bitSource = (*streamSource)(nil)
)

// }}}
