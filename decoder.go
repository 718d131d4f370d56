package huffman

import (
	"io"
	"strings"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// BitReader is the source of an encoded bit sequence.  ReadBit returns io.EOF
// once no bits remain.
type BitReader interface {
	ReadBit() (byte, error)
}

// Decoder walks a Tree bit by bit to recover the symbols of an encoded
// sequence.
type Decoder struct {
	tree Tree
}

// Init initializes this Decoder with the tree that produced the encoding.
func (d *Decoder) Init(tree Tree) {
	assert.Assertf(tree.Len() != 0, "Decoder initialized with an empty tree")
	*d = Decoder{tree: tree}
}

// Decode reads bits from r until it reaches the leaf for PseudoEOF, writing
// each recovered byte to w (if w is non-nil).  It returns the recovered
// bytes as a string.  PseudoEOF itself is not emitted, and no bits past its
// code are read.
//
// If r runs out of bits before PseudoEOF is reached, Decode returns what it
// recovered so far together with an error wrapping ErrTruncated.
//
func (d Decoder) Decode(r BitReader, w io.ByteWriter) (string, error) {
	var sb strings.Builder

	root := d.tree.Root()

	// A lone PseudoEOF leaf has the empty code: nothing to read.
	if d.isEOF(root) {
		return "", nil
	}

	current := root
	for {
		bit, err := r.ReadBit()
		if err == io.EOF {
			return sb.String(), errors.WithStack(ErrTruncated)
		}
		if err != nil {
			return sb.String(), errors.Wrap(err, "failed to read encoded bits")
		}

		node := d.tree.Node(current)
		if node.IsLeaf() {
			if err := emitByte(&sb, w, node.Symbol); err != nil {
				return sb.String(), err
			}
			current = root
			node = d.tree.Node(current)
		}

		if bit == 1 {
			current = node.One
		} else {
			current = node.Zero
		}

		if d.isEOF(current) {
			return sb.String(), nil
		}
	}
}

func (d Decoder) isEOF(i int) bool {
	node := d.tree.Node(i)
	return node.IsLeaf() && node.Symbol == PseudoEOF
}

func emitByte(sb *strings.Builder, w io.ByteWriter, symbol Symbol) error {
	assert.Assertf(symbol >= 0 && symbol <= 0xff, "leaf symbol %d is not a byte", symbol)
	b := byte(symbol)
	sb.WriteByte(b)
	if w == nil {
		return nil
	}
	if err := w.WriteByte(b); err != nil {
		return errors.Wrap(err, "failed to write decoded bytes")
	}
	return nil
}
