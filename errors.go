package huffman

import (
	"github.com/pkg/errors"
)

// ErrSourceNotFound is returned when an input file does not exist or cannot
// be read.
var ErrSourceNotFound = errors.New("source not found")

// ErrMalformedArtifact is returned when a compressed artifact cannot be
// decoded: its header is not a valid frequency table, or its payload is
// incomplete.
var ErrMalformedArtifact = errors.New("malformed compressed artifact")

// ErrTruncated is returned when the payload ends before the PseudoEOF code
// has been read.  errors.Is(ErrTruncated, ErrMalformedArtifact) holds.
var ErrTruncated = errors.Wrap(ErrMalformedArtifact, "payload ends before end-of-content marker")

// ErrNamingConvention is returned by Decompress when the input path does not
// carry the expected archive suffix.
var ErrNamingConvention = errors.New("path does not follow the archive naming convention")

// ErrUnknownSymbol is returned by Encoder when the source contains a symbol
// that has no code.
var ErrUnknownSymbol = errors.New("symbol has no code")
