package huffcodec

import (
	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"

	"github.com/chronos-tachyon/huffcodec/pqueue"
)

// ErrNoData is returned when building a tree from an empty weight set.
var ErrNoData = errors.New("no symbols to build a Huffman tree from")

// Node is a node of a Huffman code tree: either a *Leaf or an *Internal.
type Node interface {
	// Weight is the number of occurrences covered by this subtree.
	Weight() uint64

	isNode()
}

// Leaf is a Node that holds one symbol.
type Leaf struct {
	Symbol byte
	Count  uint64
}

// Internal is a Node with two children.  Bit 0 selects Left and bit 1
// selects Right.
type Internal struct {
	Sum   uint64
	Left  Node
	Right Node
}

func (n *Leaf) Weight() uint64     { return n.Count }
func (n *Internal) Weight() uint64 { return n.Sum }

func (*Leaf) isNode()     {}
func (*Internal) isNode() {}

var (
	_ Node = (*Leaf)(nil)
	_ Node = (*Internal)(nil)
)

// BuildTree builds a Huffman tree from the given weights.
//
// Leaves enter the queue in the order given, which should be ascending by
// Symbol.  The two lowest-weight nodes are repeatedly merged into an
// Internal node, first popped on the left, and the merged node queues up
// behind existing nodes of the same weight.  The result is a pure function
// of the input, so identical weight tables always produce identical trees.
//
// A single weight yields a lone *Leaf root.
//
func BuildTree(weights []SymbolWeight) (Node, error) {
	if len(weights) == 0 {
		return nil, ErrNoData
	}
	assert.Assertf(len(weights) <= NumSymbols, "%d weights > %d symbols", len(weights), NumSymbols)

	q := pqueue.New(compareNodes)
	for _, sw := range weights {
		assert.Assertf(sw.Count != 0, "symbol %d has zero count", sw.Symbol)
		q.Insert(&Leaf{Symbol: sw.Symbol, Count: sw.Count})
	}

	for q.Len() > 1 {
		a, _ := q.Pop()
		b, _ := q.Pop()

		// Saturating addition
		sum := a.Weight() + b.Weight()
		if sum < a.Weight() {
			sum = ^uint64(0)
		}

		q.Insert(&Internal{Sum: sum, Left: a, Right: b})
	}

	root, _ := q.Pop()
	return root, nil
}

func compareNodes(a, b Node) int {
	aw, bw := a.Weight(), b.Weight()
	switch {
	case aw < bw:
		return -1
	case aw > bw:
		return 1
	default:
		return 0
	}
}
