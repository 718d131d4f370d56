package huffman

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"
	"math"

	"github.com/chronos-tachyon/assert"
)

// NoChild is the child index of a leaf.
const NoChild = -1

// Node is one node of a Tree.  Leaves carry a real Symbol; internal nodes
// carry NotASymbol and exactly two children.
type Node struct {
	// Symbol is the leaf's symbol, or NotASymbol for an internal node.
	Symbol Symbol

	// Weight is the sum of the counts of all leaves below this node.
	Weight uint64

	// Zero and One index the children reached by a 0 bit and a 1 bit
	// respectively, or NoChild for a leaf.
	Zero int
	One  int
}

// IsLeaf returns true iff this node has no children.
func (n Node) IsLeaf() bool {
	return n.Zero == NoChild && n.One == NoChild
}

// Tree is a Huffman prefix-code tree.  Nodes live in a single slice and
// refer to their children by index, so a Tree is released as a whole once
// it is no longer referenced.
type Tree struct {
	nodes []Node
	root  int
}

// Root returns the index of the root node.
func (t Tree) Root() int {
	return t.root
}

// Node returns the node at index i.
func (t Tree) Node(i int) Node {
	return t.nodes[i]
}

// Len returns the number of nodes in the tree.
func (t Tree) Len() int {
	return len(t.nodes)
}

// BuildTree constructs the Huffman tree for the given frequencies.  The table
// must contain at least one entry (normally PseudoEOF).
//
// Equal weights are resolved by a fixed total order: leaves come before
// internal nodes, leaves are ordered by symbol value, and internal nodes are
// ordered by creation.  Given the same table, BuildTree always produces the
// same tree.
//
func BuildTree(table FrequencyTable) Tree {
	symbols := table.Symbols()
	assert.Assertf(len(symbols) != 0, "BuildTree called with an empty frequency table")

	numLeaves := len(symbols)
	t := Tree{nodes: make([]Node, 0, 2*numLeaves-1)}

	// Step 1: one leaf per symbol, all of them in a minheap.

	h := nodeHeap{tree: &t, list: make([]int, 0, numLeaves)}
	for _, symbol := range symbols {
		weight, _ := table.Get(symbol)
		t.nodes = append(t.nodes, Node{Symbol: symbol, Weight: weight, Zero: NoChild, One: NoChild})
		h.list = append(h.list, len(t.nodes)-1)
	}
	h.Init()

	// Step 2: pop the two lightest nodes, merge them into a new internal
	// node, and push the merged node back, until one node remains.
	//
	// Internal nodes are appended after every leaf, so their index in
	// t.nodes doubles as their creation order.

	for h.Len() > 1 {
		a := heap.Pop(&h).(int)
		b := heap.Pop(&h).(int)

		// Compute weight using saturating addition
		wa, wb := t.nodes[a].Weight, t.nodes[b].Weight
		weight := wa + wb
		if weight < wa {
			weight = math.MaxUint64
		}

		t.nodes = append(t.nodes, Node{Symbol: NotASymbol, Weight: weight, Zero: a, One: b})
		heap.Push(&h, len(t.nodes)-1)
	}

	t.root = heap.Pop(&h).(int)
	return t
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer, one node per line in depth-first order.
func (t Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	t.walk(func(i int, path Code) {
		node := t.nodes[i]
		if node.IsLeaf() {
			fmt.Fprintf(&buf, "\t%s: leaf %s weight=%d\n", path, symbolName(node.Symbol), node.Weight)
		} else {
			fmt.Fprintf(&buf, "\t%s: node weight=%d\n", path, node.Weight)
		}
	})
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// walk visits every node in depth-first order, zero child first, passing
// each node's index and its path from the root.  It uses an explicit stack;
// each frame owns its own path value.
func (t Tree) walk(fn func(i int, path Code)) {
	if len(t.nodes) == 0 {
		return
	}

	type stackItem struct {
		index int
		path  Code
	}

	stack := make([]stackItem, 0, 64)
	stack = append(stack, stackItem{t.root, ""})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fn(top.index, top.path)

		node := t.nodes[top.index]
		if node.IsLeaf() {
			continue
		}

		// push One first so that Zero is visited first
		stack = append(stack, stackItem{node.One, top.path.Append(1)})
		stack = append(stack, stackItem{node.Zero, top.path.Append(0)})
	}
}

// type nodeHeap {{{

type nodeHeap struct {
	tree *Tree
	list []int
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	ai, bi := h.list[i], h.list[j]
	a, b := h.tree.nodes[ai], h.tree.nodes[bi]
	if a.Weight != b.Weight {
		return a.Weight < b.Weight
	}

	// Leaves were appended in ascending symbol order, before any internal
	// node, so index order is exactly the tie-break order.
	return ai < bi
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(int))
}

func (h *nodeHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
