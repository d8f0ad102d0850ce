package huffcodec

import (
	"testing"

	"github.com/pkg/errors"
)

func TestBuildTree_Empty(t *testing.T) {
	root, err := BuildTree(nil)
	if err != ErrNoData {
		t.Errorf("expected ErrNoData, got %v", err)
	}
	if root != nil {
		t.Errorf("expected nil root, got %#v", root)
	}
}

func TestBuildTree_SingleSymbol(t *testing.T) {
	root, err := BuildTree([]SymbolWeight{{'q', 7}})
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	leaf, ok := root.(*Leaf)
	if !ok {
		t.Fatalf("expected *Leaf root, got %T", root)
	}
	if leaf.Symbol != 'q' || leaf.Count != 7 {
		t.Errorf("wrong leaf: %#v", leaf)
	}

	table, err := NewCodeTable(root)
	if err != nil {
		t.Fatalf("NewCodeTable failed: %v", err)
	}
	hc, ok := table.Lookup('q')
	if !ok || hc.String() != `"0"` {
		t.Errorf("expected code \"0\", got %s (%v)", hc, ok)
	}
}

func TestBuildTree_TwoSymbols(t *testing.T) {
	root, err := BuildTree([]SymbolWeight{{'A', 4}, {'B', 1}})
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	in, ok := root.(*Internal)
	if !ok {
		t.Fatalf("expected *Internal root, got %T", root)
	}
	if in.Weight() != 5 {
		t.Errorf("expected weight 5, got %d", in.Weight())
	}
	if left, ok := in.Left.(*Leaf); !ok || left.Symbol != 'B' {
		t.Errorf("expected B on the left, got %#v", in.Left)
	}
	if right, ok := in.Right.(*Leaf); !ok || right.Symbol != 'A' {
		t.Errorf("expected A on the right, got %#v", in.Right)
	}
}

func TestBuildTree_Ties(t *testing.T) {
	// With equal weights, merged nodes queue behind the remaining leaves.
	root, err := BuildTree([]SymbolWeight{{1, 1}, {2, 1}, {3, 1}, {4, 1}})
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	table, err := NewCodeTable(root)
	if err != nil {
		t.Fatalf("NewCodeTable failed: %v", err)
	}

	expect := map[byte]string{1: `"00"`, 2: `"01"`, 3: `"10"`, 4: `"11"`}
	for symbol, code := range expect {
		hc, ok := table.Lookup(symbol)
		if !ok {
			t.Errorf("symbol %d missing", symbol)
			continue
		}
		if actual := hc.String(); actual != code {
			t.Errorf("symbol %d: expected %s, got %s", symbol, code, actual)
		}
	}
}

func TestBuildTree_ZeroCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	_, _ = BuildTree([]SymbolWeight{{'a', 1}, {'b', 0}})
}

func TestNewCodeTable_Degenerate(t *testing.T) {
	type testRow struct {
		name string
		root Node
	}

	testData := [...]testRow{
		{name: "nil-root", root: nil},
		{name: "missing-right", root: &Internal{Sum: 1, Left: &Leaf{Symbol: 1, Count: 1}}},
		{name: "missing-left", root: &Internal{
			Sum:   2,
			Left:  &Leaf{Symbol: 1, Count: 1},
			Right: &Internal{Sum: 1, Right: &Leaf{Symbol: 2, Count: 1}},
		}},
		{name: "duplicate-symbol", root: &Internal{
			Sum:   2,
			Left:  &Leaf{Symbol: 9, Count: 1},
			Right: &Leaf{Symbol: 9, Count: 1},
		}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := NewCodeTable(row.root)
			if !errors.Is(err, ErrDegenerateTree) {
				t.Errorf("expected ErrDegenerateTree, got %v", err)
			}
		})
	}
}

func TestNewCodeTable_Sizes(t *testing.T) {
	root, err := BuildTree(FrequencyOf([]byte("abracadabra")))
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	table, err := NewCodeTable(root)
	if err != nil {
		t.Fatalf("NewCodeTable failed: %v", err)
	}
	if table.Len() != 5 {
		t.Errorf("expected 5 codes, got %d", table.Len())
	}
	if table.MinSize() != 1 || table.MaxSize() != 3 {
		t.Errorf("expected sizes 1 .. 3, got %d .. %d", table.MinSize(), table.MaxSize())
	}
	if _, ok := table.Lookup('z'); ok {
		t.Error("unexpected code for 'z'")
	}

	// Kraft equality holds for a full binary tree.
	var sum float64
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if hc, ok := table.Lookup(byte(symbol)); ok {
			sum += 1 / float64(uint64(1)<<hc.Size)
		}
	}
	if sum != 1 {
		t.Errorf("Kraft sum %g != 1", sum)
	}
}
