package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// Code represents a sequence of bits, written as the characters '0' and '1'.
// The first character is the first bit.  Codes are immutable; Append returns
// a new Code.
type Code string

// Len returns the number of bits.
func (hc Code) Len() int {
	return len(hc)
}

// Bit returns the i'th bit, 0 or 1.
func (hc Code) Bit(i int) byte {
	return hc[i] - '0'
}

// Append returns the Code formed by appending one bit.
func (hc Code) Append(bit byte) Code {
	assert.Assertf(bit <= 1, "bit %d is not 0 or 1", bit)
	if bit == 0 {
		return hc + "0"
	}
	return hc + "1"
}

// HasPrefix returns true iff prefix is a prefix of this Code.
func (hc Code) HasPrefix(prefix Code) bool {
	return strings.HasPrefix(string(hc), string(prefix))
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(string(hc))
}

var _ fmt.Stringer = Code("")

// CodeTable maps each Symbol of a Tree to its Code: the path from the root
// to the symbol's leaf.
type CodeTable struct {
	codes [NumSymbols]Code
	found [NumSymbols]bool
	count int
}

// BuildCodeTable assigns a Code to every leaf of the tree.  A tree that is a
// single leaf gives its symbol the empty Code.
func BuildCodeTable(tree Tree) CodeTable {
	var ct CodeTable
	tree.walk(func(i int, path Code) {
		node := tree.Node(i)
		if !node.IsLeaf() {
			return
		}
		assert.Assertf(node.Symbol.IsValid(), "leaf %d holds invalid symbol %d", i, node.Symbol)
		if !ct.found[node.Symbol] {
			ct.count++
		}
		ct.codes[node.Symbol] = path
		ct.found[node.Symbol] = true
	})
	return ct
}

// Lookup returns the Code for symbol, and whether symbol has one.
func (ct *CodeTable) Lookup(symbol Symbol) (Code, bool) {
	if !symbol.IsValid() || !ct.found[symbol] {
		return "", false
	}
	return ct.codes[symbol], true
}

// Len returns the number of symbols with a Code.
func (ct *CodeTable) Len() int {
	return ct.count
}

// Symbols returns the symbols that have a Code, in ascending order.
func (ct *CodeTable) Symbols() []Symbol {
	list := make([]Symbol, 0, ct.count)
	for symbol := Symbol(0); symbol <= MaxSymbol; symbol++ {
		if ct.found[symbol] {
			list = append(list, symbol)
		}
	}
	return list
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	for _, symbol := range ct.Symbols() {
		fmt.Fprintf(&buf, "\tEncode(%s) = %s\n", symbolName(symbol), ct.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
