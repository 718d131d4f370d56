package huffman

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// FrequencyTable maps each Symbol to the number of times it occurs.  The zero
// value is an empty table, ready to use.
type FrequencyTable struct {
	counts map[Symbol]uint64
}

// Len returns the number of distinct symbols in the table.
func (ft FrequencyTable) Len() int {
	return len(ft.counts)
}

// Get returns the count for symbol, and whether symbol is present at all.
func (ft FrequencyTable) Get(symbol Symbol) (uint64, bool) {
	n, found := ft.counts[symbol]
	return n, found
}

// Contains returns true iff symbol is present in the table.
func (ft FrequencyTable) Contains(symbol Symbol) bool {
	_, found := ft.counts[symbol]
	return found
}

// Set replaces the count for symbol.
func (ft *FrequencyTable) Set(symbol Symbol, count uint64) {
	if ft.counts == nil {
		ft.counts = make(map[Symbol]uint64)
	}
	ft.counts[symbol] = count
}

// Add increments the count for symbol by one.
func (ft *FrequencyTable) Add(symbol Symbol) {
	if ft.counts == nil {
		ft.counts = make(map[Symbol]uint64)
	}
	ft.counts[symbol]++
}

// Symbols returns the symbols in the table, in ascending order.
func (ft FrequencyTable) Symbols() []Symbol {
	list := make([]Symbol, 0, len(ft.counts))
	for symbol := range ft.counts {
		list = append(list, symbol)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

// Total returns the sum of all counts, PseudoEOF included.
func (ft FrequencyTable) Total() uint64 {
	var sum uint64
	for _, n := range ft.counts {
		sum += n
	}
	return sum
}

// Equal returns true iff both tables hold the same symbols with the same
// counts.
func (ft FrequencyTable) Equal(other FrequencyTable) bool {
	if len(ft.counts) != len(other.counts) {
		return false
	}
	for symbol, n := range ft.counts {
		if m, found := other.counts[symbol]; !found || m != n {
			return false
		}
	}
	return true
}

// CountBytes tallies every byte of data into the table.  It does not add
// PseudoEOF; see FinishCounting.
func (ft *FrequencyTable) CountBytes(data []byte) {
	for _, b := range data {
		ft.Add(Symbol(b))
	}
}

// FinishCounting records the mandatory PseudoEOF entry with a count of 1.
func (ft *FrequencyTable) FinishCounting() {
	ft.Set(PseudoEOF, 1)
}

// String returns a short description of the table.
func (ft FrequencyTable) String() string {
	return fmt.Sprintf("(frequency table with %d symbols, %d occurrences)", ft.Len(), ft.Total())
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.
func (ft FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	for _, symbol := range ft.Symbols() {
		fmt.Fprintf(&buf, "\t%s = %d\n", symbolName(symbol), ft.counts[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// MarshalJSON renders the table as a JSON object keyed by symbol value.
func (ft FrequencyTable) MarshalJSON() ([]byte, error) {
	if ft.counts == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(ft.counts)
}

// UnmarshalJSON replaces the table's contents from a JSON object keyed by
// symbol value.  The result must be a valid table, as ReadFrequencyTable
// requires; otherwise the error wraps ErrMalformedArtifact and the table is
// left unchanged.
func (ft *FrequencyTable) UnmarshalJSON(raw []byte) error {
	var counts map[Symbol]uint64
	if err := json.Unmarshal(raw, &counts); err != nil {
		return err
	}
	parsed := FrequencyTable{counts: counts}
	if err := parsed.validate(); err != nil {
		return err
	}
	*ft = parsed
	return nil
}

// validate checks that the table can drive BuildTree and Encoder: between 1
// and NumSymbols entries, every symbol valid with a non-zero count, and
// PseudoEOF present.  Failures wrap ErrMalformedArtifact.
func (ft FrequencyTable) validate() error {
	if n := len(ft.counts); n == 0 || n > NumSymbols {
		return errors.Wrapf(ErrMalformedArtifact, "invalid entry count %d", n)
	}
	for symbol, n := range ft.counts {
		if !symbol.IsValid() {
			return errors.Wrapf(ErrMalformedArtifact, "invalid symbol %d", symbol)
		}
		if n == 0 {
			return errors.Wrapf(ErrMalformedArtifact, "zero count for symbol %s", symbolName(symbol))
		}
	}
	if !ft.Contains(PseudoEOF) {
		return errors.Wrap(ErrMalformedArtifact, "table has no end-of-content entry")
	}
	return nil
}

var (
	_ fmt.Stringer     = FrequencyTable{}
	_ json.Marshaler   = FrequencyTable{}
	_ json.Unmarshaler = (*FrequencyTable)(nil)
)

// CountFrequencies populates table with the byte counts of source, then adds
// PseudoEOF with a count of 1.  If isFile is true, source is the path of a
// file whose bytes are counted; otherwise the bytes of source itself are
// counted.
func CountFrequencies(source string, isFile bool, table *FrequencyTable) error {
	if !isFile {
		table.CountBytes([]byte(source))
		table.FinishCounting()
		return nil
	}

	f, err := os.Open(source)
	if err != nil {
		return errors.Wrapf(ErrSourceNotFound, "%v", err)
	}
	defer f.Close()

	if err := CountReader(f, table); err != nil {
		return errors.Wrapf(ErrSourceNotFound, "%v", err)
	}
	return nil
}

// CountReader tallies every byte read from r into table, then adds
// PseudoEOF with a count of 1.
func CountReader(r io.Reader, table *FrequencyTable) error {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "failed to read source")
		}
		table.Add(Symbol(b))
	}
	table.FinishCounting()
	return nil
}

func symbolName(symbol Symbol) string {
	switch {
	case symbol == PseudoEOF:
		return "EOF"
	case symbol == NotASymbol:
		return "-"
	case symbol >= 0x20 && symbol < 0x7f:
		return fmt.Sprintf("%q", rune(symbol))
	default:
		return fmt.Sprintf("0x%02x", int32(symbol))
	}
}
