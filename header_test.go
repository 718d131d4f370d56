package huffman

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

func TestFrequencyTable_WriteTo(t *testing.T) {
	ft := makeScenarioTable()

	var buf bytes.Buffer
	n, err := ft.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	expect := []byte{0x04, 'a', 0x03, 'b', 0x02, 'c', 0x01, 0x80, 0x02, 0x01}
	actual := buf.Bytes()
	if !bytes.Equal(expect, actual) {
		t.Errorf("wrong header:\n\texpect: %#v\n\tactual: %#v", expect, actual)
	}
	if n != int64(len(expect)) {
		t.Errorf("wrong length:\n\texpect: %d\n\tactual: %d", len(expect), n)
	}
}

func TestReadFrequencyTable(t *testing.T) {
	ft := makeScenarioTable()

	var buf bytes.Buffer
	_, _ = ft.WriteTo(&buf)
	buf.WriteString("payload")

	actual, err := ReadFrequencyTable(&buf)
	if err != nil {
		t.Fatalf("ReadFrequencyTable failed: %v", err)
	}
	if !actual.Equal(ft) {
		t.Errorf("wrong table:\n\texpect: %v\n\tactual: %v", ft, actual)
	}
	if rest := buf.String(); rest != "payload" {
		t.Errorf("header read consumed payload:\n\texpect: %q\n\tactual: %q", "payload", rest)
	}
}

func TestReadFrequencyTable_Malformed(t *testing.T) {
	type testRow struct {
		name string
		raw  []byte
	}

	testData := [...]testRow{
		{name: "empty", raw: nil},
		{name: "no-entries", raw: []byte{0x00}},
		{name: "too-many-entries", raw: []byte{0x82, 0x02}},
		{name: "short", raw: []byte{0x02, 'a', 0x01}},
		{name: "bad-symbol", raw: []byte{0x01, 0x81, 0x02, 0x01}},
		{name: "duplicate", raw: []byte{0x03, 'a', 0x01, 'a', 0x01, 0x80, 0x02, 0x01}},
		{name: "zero-count", raw: []byte{0x02, 'a', 0x00, 0x80, 0x02, 0x01}},
		{name: "no-eof", raw: []byte{0x01, 'a', 0x01}},
		{name: "bad-varint", raw: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := ReadFrequencyTable(bytes.NewReader(row.raw))
			if !errors.Is(err, ErrMalformedArtifact) {
				t.Errorf("wrong error:\n\texpect: %v\n\tactual: %v", ErrMalformedArtifact, err)
			}
		})
	}
}
