package huffcodec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// ErrDegenerateTree is returned when a tree has an internal node with a
// missing child.
var ErrDegenerateTree = errors.New("degenerate Huffman tree")

// CodeTable maps each symbol of a tree to its Code.
type CodeTable struct {
	codes   [NumSymbols]Code
	minSize byte
	maxSize byte
	count   int
}

// NewCodeTable walks the tree depth-first, appending bit 0 for each left
// edge and bit 1 for each right edge.  A lone *Leaf root gets the 1-bit
// code "0".
func NewCodeTable(root Node) (CodeTable, error) {
	var t CodeTable
	if root == nil {
		return t, errors.Wrap(ErrDegenerateTree, "nil root")
	}
	if leaf, ok := root.(*Leaf); ok {
		t.add(leaf.Symbol, MakeCode(1, 0))
		return t, nil
	}
	if err := t.walk(root, Code{}); err != nil {
		return CodeTable{}, err
	}
	return t, nil
}

func (t *CodeTable) walk(node Node, prefix Code) error {
	switch x := node.(type) {
	case *Leaf:
		if t.codes[x.Symbol].Size != 0 {
			return errors.Wrapf(ErrDegenerateTree, "symbol %d appears twice", x.Symbol)
		}
		t.add(x.Symbol, prefix)
		return nil

	case *Internal:
		if x.Left == nil || x.Right == nil {
			return errors.Wrapf(ErrDegenerateTree, "internal node at %s lacks a child", prefix)
		}
		if prefix.Size >= MaxCodeSize {
			return errors.Wrapf(ErrDegenerateTree, "tree deeper than %d", MaxCodeSize)
		}
		if err := t.walk(x.Left, prefix.Append(0)); err != nil {
			return err
		}
		return t.walk(x.Right, prefix.Append(1))

	default:
		return errors.Wrapf(ErrDegenerateTree, "unexpected node %T at %s", node, prefix)
	}
}

func (t *CodeTable) add(symbol byte, hc Code) {
	t.codes[symbol] = hc
	if t.count == 0 || t.minSize > hc.Size {
		t.minSize = hc.Size
	}
	if t.maxSize < hc.Size {
		t.maxSize = hc.Size
	}
	t.count++
}

// Lookup returns the Code for symbol.  The bool is false if the symbol is
// not in the tree.
func (t CodeTable) Lookup(symbol byte) (Code, bool) {
	hc := t.codes[symbol]
	return hc, hc.Size != 0
}

// Len is the number of symbols with a Code.
func (t CodeTable) Len() int {
	return t.count
}

// MinSize is the bit length of the shortest code.
func (t CodeTable) MinSize() byte {
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t CodeTable) MaxSize() byte {
	return t.maxSize
}

// Dump writes a programmer-readable debugging dump of the CodeTable to the
// given writer.  Symbols without a Code are omitted.
func (t CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		hc := t.codes[symbol]
		if hc.Size == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\tLookup(%d) = %s\n", symbol, hc)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
