package huffman

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/chronos-tachyon/huffpack/internal/bitio"
)

// Naming holds the file-naming convention of an Archiver.
type Naming struct {
	// CompressedSuffix is appended to a path by Compress.
	CompressedSuffix string

	// ArchiveSuffix is the suffix Decompress requires of its input.
	ArchiveSuffix string

	// OutputSuffix replaces ArchiveSuffix to name the output of
	// Decompress.
	OutputSuffix string
}

// DefaultNaming maps "X" to "X.huf", and "report.txt.huf" to
// "report_unc.txt".
var DefaultNaming = Naming{
	CompressedSuffix: ".huf",
	ArchiveSuffix:    ".txt.huf",
	OutputSuffix:     "_unc.txt",
}

// CompressedName returns the artifact path for the given source path.
func (n Naming) CompressedName(path string) string {
	return path + n.CompressedSuffix
}

// DecompressedName returns the output path for the given artifact path.  If
// path lacks ArchiveSuffix, or the output path would be path itself, it
// returns an error wrapping ErrNamingConvention.
func (n Naming) DecompressedName(path string) (string, error) {
	if n.ArchiveSuffix == "" || !strings.HasSuffix(path, n.ArchiveSuffix) {
		return "", errors.Wrapf(ErrNamingConvention, "%q does not end in %q", path, n.ArchiveSuffix)
	}
	outPath := strings.TrimSuffix(path, n.ArchiveSuffix) + n.OutputSuffix
	if samePath(outPath, path) {
		return "", errors.Wrapf(ErrNamingConvention, "output path for %q is the input itself", path)
	}
	return outPath, nil
}

// withDefaults returns n with every empty field taken from DefaultNaming.
func (n Naming) withDefaults() Naming {
	if n.CompressedSuffix == "" {
		n.CompressedSuffix = DefaultNaming.CompressedSuffix
	}
	if n.ArchiveSuffix == "" {
		n.ArchiveSuffix = DefaultNaming.ArchiveSuffix
	}
	if n.OutputSuffix == "" {
		n.OutputSuffix = DefaultNaming.OutputSuffix
	}
	return n
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// Archiver compresses and decompresses files.  Empty Naming fields take their
// value from DefaultNaming; a nil Logger discards log output.
type Archiver struct {
	Naming Naming
	Logger *slog.Logger
}

var defaultArchiver Archiver

// Compress writes "<path>.huf" and returns the encoded bit-string.  See
// Archiver.Compress.
func Compress(path string) (string, error) {
	return defaultArchiver.Compress(path)
}

// Decompress turns "<stem>.txt.huf" into "<stem>_unc.txt" and returns the
// recovered content.  See Archiver.Decompress.
func Decompress(path string) (string, error) {
	return defaultArchiver.Decompress(path)
}

// Compress reads the file at path, writes the compressed artifact next to it
// (named by Naming.CompressedName), and returns the encoded payload as a
// string of '0' and '1' characters.
//
// An artifact path equal to path yields an error wrapping
// ErrNamingConvention.  The artifact is written to a temporary file and
// renamed into place only on success, so a failed call leaves no artifact
// behind.
//
func (a Archiver) Compress(path string) (string, error) {
	outPath := a.naming().CompressedName(path)
	if samePath(outPath, path) {
		return "", errors.Wrapf(ErrNamingConvention, "artifact path for %q is the input itself", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(ErrSourceNotFound, "%v", err)
	}

	var bits string
	err = writeFileAtomic(outPath, func(w io.Writer) error {
		var err error
		bits, err = a.CompressStream(w, data)
		return err
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to compress %q", path)
	}

	a.logger().Info("compressed", "src", path, "dst", outPath, "bytes", len(data), "bits", len(bits))
	return bits, nil
}

// Decompress reads the artifact at path, which must end in
// Naming.ArchiveSuffix, and writes the recovered bytes to
// Naming.DecompressedName(path).  It returns the recovered bytes as a
// string.
//
// A path with the wrong suffix is rejected before any file is opened.  The
// output is written to a temporary file and renamed into place only if the
// whole payload decodes.
//
func (a Archiver) Decompress(path string) (string, error) {
	outPath, err := a.naming().DecompressedName(path)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(ErrSourceNotFound, "%v", err)
	}
	defer f.Close()

	var text string
	err = writeFileAtomic(outPath, func(w io.Writer) error {
		var err error
		text, err = a.DecompressStream(w, f)
		return err
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to decompress %q", path)
	}

	a.logger().Info("decompressed", "src", path, "dst", outPath, "bytes", len(text))
	return text, nil
}

// CompressStream writes the compressed form of src to dst: the frequency
// table header, then the payload bits padded to a whole byte.  It returns
// the payload as a string of '0' and '1' characters.
func (a Archiver) CompressStream(dst io.Writer, src []byte) (string, error) {
	log := a.logger()

	var table FrequencyTable
	table.CountBytes(src)
	table.FinishCounting()
	log.Debug("counted frequencies", "symbols", table.Len(), "total", table.Total())

	if _, err := table.WriteTo(dst); err != nil {
		return "", errors.Wrap(err, "failed to write header")
	}

	tree := BuildTree(table)
	codes := BuildCodeTable(tree)
	log.Debug("built code table", "nodes", tree.Len(), "codes", codes.Len())

	var e Encoder
	e.Init(codes)

	bw := bitio.NewWriter(dst)
	bits, n, err := e.EncodeBytes(src, bw)
	if err != nil {
		return "", err
	}
	if err := bw.Flush(); err != nil {
		return "", err
	}

	log.Debug("encoded payload", "bits", n)
	return bits, nil
}

// DecompressStream reads a compressed artifact from src and writes the
// recovered bytes to dst.  It returns the recovered bytes as a string.
//
// A bad header yields an error wrapping ErrMalformedArtifact; a payload that
// ends early yields an error wrapping ErrTruncated.  In both cases dst may
// already hold part of the output.
//
func (a Archiver) DecompressStream(dst io.Writer, src io.Reader) (string, error) {
	log := a.logger()

	br := bufio.NewReader(src)
	table, err := ReadFrequencyTable(br)
	if err != nil {
		return "", err
	}
	log.Debug("read header", "symbols", table.Len(), "total", table.Total())

	var d Decoder
	d.Init(BuildTree(table))

	bw := bufio.NewWriter(dst)
	text, err := d.Decode(bitio.NewReader(br), bw)
	if err != nil {
		return "", err
	}
	if err := bw.Flush(); err != nil {
		return "", errors.Wrap(err, "failed to write output")
	}

	log.Debug("decoded payload", "bytes", len(text))
	return text, nil
}

func (a Archiver) naming() Naming {
	return a.Naming.withDefaults()
}

func (a Archiver) logger() *slog.Logger {
	if a.Logger == nil {
		return discardLogger
	}
	return a.Logger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// writeFileAtomic creates path by writing a temporary file in the same
// directory and renaming it over path once fn succeeds.  On any failure the
// temporary file is removed and path is left untouched.
func writeFileAtomic(path string, fn func(w io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file")
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = fn(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return errors.Wrap(err, "failed to set file mode")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temporary file")
	}
	if err = os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "failed to rename temporary file")
	}
	return nil
}
