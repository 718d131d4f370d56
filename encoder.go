package huffman

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// BitWriter is the destination of an encoded bit sequence.
type BitWriter interface {
	WriteBit(bit byte) error
}

// Encoder rewrites a byte stream as the concatenation of its symbols' codes,
// terminated by the code for PseudoEOF.
type Encoder struct {
	table *CodeTable
	eof   Code
}

// Init initializes this Encoder.  The table must contain a code for
// PseudoEOF, which every table built from a counted FrequencyTable does.
func (e *Encoder) Init(table CodeTable) {
	eof, found := table.Lookup(PseudoEOF)
	assert.Assertf(found, "code table has no code for PseudoEOF")

	*e = Encoder{
		table: &table,
		eof:   eof,
	}
}

// Encode encodes every byte read from r, then PseudoEOF.  It returns the
// encoded bits as a string of '0' and '1' characters together with their
// count.  If w is non-nil, each bit is also written to w in order; if w is
// nil, the bits are only computed.
//
// A byte with no code in the table yields an error wrapping
// ErrUnknownSymbol.
//
func (e Encoder) Encode(r io.Reader, w BitWriter) (string, int, error) {
	var sb strings.Builder
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return sb.String(), sb.Len(), errors.Wrap(err, "failed to read source")
		}
		if err := e.emit(&sb, w, Symbol(b)); err != nil {
			return sb.String(), sb.Len(), err
		}
	}
	if err := e.emit(&sb, w, PseudoEOF); err != nil {
		return sb.String(), sb.Len(), err
	}
	return sb.String(), sb.Len(), nil
}

// EncodeBytes is Encode over an in-memory source.
func (e Encoder) EncodeBytes(data []byte, w BitWriter) (string, int, error) {
	return e.Encode(bytes.NewReader(data), w)
}

func (e Encoder) emit(sb *strings.Builder, w BitWriter, symbol Symbol) error {
	hc := e.eof
	if symbol != PseudoEOF {
		var found bool
		hc, found = e.table.Lookup(symbol)
		if !found {
			return errors.Wrapf(ErrUnknownSymbol, "symbol %s", symbolName(symbol))
		}
	}

	sb.WriteString(string(hc))
	if w == nil {
		return nil
	}
	for i := 0; i < hc.Len(); i++ {
		if err := w.WriteBit(hc.Bit(i)); err != nil {
			return errors.Wrap(err, "failed to write encoded bits")
		}
	}
	return nil
}
