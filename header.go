package huffman

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// WriteTo serializes the table as a self-delimiting header: the number of
// entries, then one (symbol, count) pair per entry in ascending symbol
// order, every integer as a uvarint.
func (ft FrequencyTable) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	var scratch [binary.MaxVarintLen64]byte

	putUvarint := func(x uint64) {
		n := binary.PutUvarint(scratch[:], x)
		buf.Write(scratch[:n])
	}

	symbols := ft.Symbols()
	putUvarint(uint64(len(symbols)))
	for _, symbol := range symbols {
		putUvarint(uint64(symbol))
		putUvarint(ft.counts[symbol])
	}
	return buf.WriteTo(w)
}

var _ io.WriterTo = FrequencyTable{}

// ReadFrequencyTable parses a header written by FrequencyTable.WriteTo.  It
// consumes exactly the header's bytes from r, leaving the payload unread.
//
// Any deviation from a valid table (out-of-range symbols, duplicates, zero
// counts, a missing PseudoEOF, or a short read) is reported as an error
// wrapping ErrMalformedArtifact.
//
func ReadFrequencyTable(r io.ByteReader) (FrequencyTable, error) {
	var ft FrequencyTable

	readUvarint := func(what string) (uint64, error) {
		x, err := binary.ReadUvarint(r)
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return 0, errors.Wrapf(ErrMalformedArtifact, "failed to read %s: %v", what, err)
		}
		return x, nil
	}

	numEntries, err := readUvarint("entry count")
	if err != nil {
		return ft, err
	}
	if numEntries == 0 || numEntries > uint64(NumSymbols) {
		return ft, errors.Wrapf(ErrMalformedArtifact, "invalid entry count %d", numEntries)
	}

	for i := uint64(0); i < numEntries; i++ {
		rawSymbol, err := readUvarint("symbol")
		if err != nil {
			return FrequencyTable{}, err
		}
		if rawSymbol > uint64(MaxSymbol) {
			return FrequencyTable{}, errors.Wrapf(ErrMalformedArtifact, "invalid symbol %d", rawSymbol)
		}
		symbol := Symbol(rawSymbol)
		if ft.Contains(symbol) {
			return FrequencyTable{}, errors.Wrapf(ErrMalformedArtifact, "duplicate symbol %s", symbolName(symbol))
		}

		count, err := readUvarint("count")
		if err != nil {
			return FrequencyTable{}, err
		}
		if count == 0 {
			return FrequencyTable{}, errors.Wrapf(ErrMalformedArtifact, "zero count for symbol %s", symbolName(symbol))
		}
		ft.Set(symbol, count)
	}

	if err := ft.validate(); err != nil {
		return FrequencyTable{}, err
	}
	return ft, nil
}
