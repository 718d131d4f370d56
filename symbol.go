package huffman

// Symbol represents one unit of source data: a byte value in [0, 255], or
// the PseudoEOF sentinel.  Negative symbols are not valid.
type Symbol int32

// PseudoEOF marks the logical end of content inside an encoded bit sequence.
// It lies outside the byte range, so it never collides with a real byte.
const PseudoEOF = Symbol(256)

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = PseudoEOF

// NotASymbol is carried by internal tree nodes, and is returned by some
// functions to clearly indicate that no symbol is being returned.
const NotASymbol = Symbol(-1)

// NumSymbols is the size of the alphabet: 256 byte values plus PseudoEOF.
const NumSymbols = int(MaxSymbol) + 1

// IsValid returns true iff s is a byte value or PseudoEOF.
func (s Symbol) IsValid() bool {
	return s >= 0 && s <= MaxSymbol
}
