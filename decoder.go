package huffcodec

import (
	"io"

	"github.com/pkg/errors"

	"github.com/chronos-tachyon/huffcodec/bitbuf"
)

// Decode reconstructs the original bytes from a stream produced by Encode.
// The empty stream decodes to empty output.
func Decode(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	b := bitbuf.FromBytes(data)
	h, err := readHeader(bufferSource{b})
	if err != nil {
		return nil, err
	}
	return decodePayload(b, h)
}

// DecodeFrom reads a whole stream from r and decodes it.
func DecodeFrom(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return Decode(data)
}

func decodePayload(b *bitbuf.Buffer, h Header) ([]byte, error) {
	// Every symbol costs at least one bit.
	if h.Length > uint64(b.Size()) {
		return nil, errors.Wrapf(ErrCorruptStream, "length %d exceeds %d payload bits", h.Length, b.Size())
	}

	out := make([]byte, 0, h.Length)
	for uint64(len(out)) < h.Length {
		node := h.Root

		if leaf, ok := node.(*Leaf); ok {
			bit, err := b.RemoveBit()
			if err != nil {
				return nil, truncatedPayload(len(out), h.Length)
			}
			if bit != 0 {
				return nil, errors.Wrapf(ErrCorruptStream, "bit 1 in single-symbol payload at symbol %d", len(out))
			}
			out = append(out, leaf.Symbol)
			continue
		}

		for {
			in, ok := node.(*Internal)
			if !ok {
				break
			}
			bit, err := b.RemoveBit()
			if err != nil {
				return nil, truncatedPayload(len(out), h.Length)
			}
			if bit == 0 {
				node = in.Left
			} else {
				node = in.Right
			}
		}

		leaf, ok := node.(*Leaf)
		if !ok {
			return nil, errors.Wrapf(ErrDegenerateTree, "walk ended at %T", node)
		}
		out = append(out, leaf.Symbol)
	}
	return out, nil
}

func truncatedPayload(have int, want uint64) error {
	return errors.Wrapf(ErrCorruptStream, "payload ends after %d of %d symbols", have, want)
}
