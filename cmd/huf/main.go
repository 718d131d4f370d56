package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"

	huffman "github.com/chronos-tachyon/huffpack"
	"github.com/chronos-tachyon/huffpack/internal/config"
)

var configPath = flag.String("config", "", "path to a YAML configuration file")
var verbose = flag.Bool("v", false, "log at debug level")
var dump = flag.Bool("dump", false, "print the frequency table of each input as JSON")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] compress|decompress file...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A file of \"-\" reads stdin and writes stdout.\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("%v", err)
		}
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}

	a := huffman.Archiver{
		Naming: huffman.Naming{
			CompressedSuffix: cfg.Naming.CompressedSuffix,
			ArchiveSuffix:    cfg.Naming.ArchiveSuffix,
			OutputSuffix:     cfg.Naming.OutputSuffix,
		},
		Logger: cfg.Log.NewLogger(os.Stderr),
	}

	action := flag.Arg(0)
	for _, name := range flag.Args()[1:] {
		if err := run(a, action, name, *dump, os.Stdin, os.Stdout, os.Stderr); err != nil {
			log.Fatalf("%v", err)
		}
	}
}

// run performs one action on one file.  A name of "-" reads stdin and writes
// stdout; diagnostics go to stderr.
func run(a huffman.Archiver, action string, name string, dump bool, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	switch action {
	case "compress":
		if dump {
			if err := dumpFrequencies(stderr, name); err != nil {
				return err
			}
		}
		if name == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return errors.Wrap(err, "failed to read stdin")
			}
			w := bufio.NewWriter(stdout)
			if _, err := a.CompressStream(w, data); err != nil {
				return err
			}
			return w.Flush()
		}
		_, err := a.Compress(name)
		return err

	case "decompress":
		if name == "-" {
			_, err := a.DecompressStream(stdout, stdin)
			return err
		}
		_, err := a.Decompress(name)
		return err

	default:
		return errors.Errorf("unexpected action %q, expected \"compress\" or \"decompress\"", action)
	}
}

func dumpFrequencies(w io.Writer, name string) error {
	if name == "-" {
		return nil
	}
	var table huffman.FrequencyTable
	if err := huffman.CountFrequencies(name, true, &table); err != nil {
		return err
	}
	raw, err := json.Marshal(table)
	if err != nil {
		return errors.Wrap(err, "failed to marshal frequency table")
	}
	fmt.Fprintf(w, "%s: %s\n", name, raw)
	return nil
}
