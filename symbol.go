package huffcodec

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// NumSymbols is the size of the byte alphabet.
const NumSymbols = 256

// SymbolWeight pairs a byte with its number of occurrences.  Count is
// always positive.
type SymbolWeight struct {
	Symbol byte
	Count  uint64
}

// FrequencyOf counts the bytes of data.  The result holds one entry per
// distinct byte, in ascending Symbol order.
func FrequencyOf(data []byte) []SymbolWeight {
	var counts [NumSymbols]uint64
	for _, x := range data {
		counts[x]++
	}
	return weightsFromCounts(&counts)
}

// Frequency counts the bytes read from r until EOF.  The result holds one
// entry per distinct byte, in ascending Symbol order.
func Frequency(r io.Reader) ([]SymbolWeight, error) {
	var counts [NumSymbols]uint64
	br := bufio.NewReader(r)
	for {
		x, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}
		counts[x]++
	}
	return weightsFromCounts(&counts), nil
}

func weightsFromCounts(counts *[NumSymbols]uint64) []SymbolWeight {
	out := make([]SymbolWeight, 0, NumSymbols)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if count := counts[symbol]; count != 0 {
			out = append(out, SymbolWeight{Symbol: byte(symbol), Count: count})
		}
	}
	return out
}
