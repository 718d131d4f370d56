package huffman

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func makeScenarioTable() FrequencyTable {
	var ft FrequencyTable
	if err := CountFrequencies("aaabbc", false, &ft); err != nil {
		panic(err)
	}
	return ft
}

func TestCountFrequencies_String(t *testing.T) {
	ft := makeScenarioTable()

	expect := map[Symbol]uint64{'a': 3, 'b': 2, 'c': 1, PseudoEOF: 1}
	if ft.Len() != len(expect) {
		t.Errorf("wrong length:\n\texpect: %d\n\tactual: %d", len(expect), ft.Len())
	}
	for symbol, n := range expect {
		actual, found := ft.Get(symbol)
		if !found || actual != n {
			t.Errorf("wrong count for %s:\n\texpect: %d\n\tactual: %d (found=%v)", symbolName(symbol), n, actual, found)
		}
	}
	if ft.Total() != 7 {
		t.Errorf("wrong total:\n\texpect: 7\n\tactual: %d", ft.Total())
	}
}

func TestCountFrequencies_Empty(t *testing.T) {
	var ft FrequencyTable
	if err := CountFrequencies("", false, &ft); err != nil {
		t.Fatalf("CountFrequencies failed: %v", err)
	}
	if ft.Len() != 1 {
		t.Errorf("wrong length:\n\texpect: 1\n\tactual: %d", ft.Len())
	}
	if n, _ := ft.Get(PseudoEOF); n != 1 {
		t.Errorf("wrong PseudoEOF count:\n\texpect: 1\n\tactual: %d", n)
	}
}

func TestCountFrequencies_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("aaabbc"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var ft FrequencyTable
	if err := CountFrequencies(path, true, &ft); err != nil {
		t.Fatalf("CountFrequencies failed: %v", err)
	}
	if expect := makeScenarioTable(); !ft.Equal(expect) {
		t.Errorf("wrong table:\n\texpect: %v\n\tactual: %v", expect, ft)
	}
}

func TestCountFrequencies_MissingFile(t *testing.T) {
	var ft FrequencyTable
	err := CountFrequencies(filepath.Join(t.TempDir(), "missing.txt"), true, &ft)
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("wrong error:\n\texpect: %v\n\tactual: %v", ErrSourceNotFound, err)
	}
}

func TestCountFrequencies_Directory(t *testing.T) {
	var ft FrequencyTable
	err := CountFrequencies(t.TempDir(), true, &ft)
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("wrong error:\n\texpect: %v\n\tactual: %v", ErrSourceNotFound, err)
	}
	if ft.Contains(PseudoEOF) {
		t.Errorf("table finished despite the read failure: %v", ft)
	}
}

func TestCountReader(t *testing.T) {
	var ft FrequencyTable
	if err := CountReader(strings.NewReader("aaabbc"), &ft); err != nil {
		t.Fatalf("CountReader failed: %v", err)
	}
	if expect := makeScenarioTable(); !ft.Equal(expect) {
		t.Errorf("wrong table:\n\texpect: %v\n\tactual: %v", expect, ft)
	}
}

func TestFrequencyTable_Dump(t *testing.T) {
	ft := makeScenarioTable()

	expectDump := strings.Join([]string{
		"FrequencyTable{\n",
		"\t'a' = 3\n",
		"\t'b' = 2\n",
		"\t'c' = 1\n",
		"\tEOF = 1\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = ft.Dump(&buf)
	actualDump := buf.String()
	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestFrequencyTable_String(t *testing.T) {
	ft := makeScenarioTable()

	expectString := "(frequency table with 4 symbols, 7 occurrences)"
	actualString := ft.String()
	if expectString != actualString {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectString, actualString)
	}
}

func TestFrequencyTable_MarshalJSON(t *testing.T) {
	ft := makeScenarioTable()

	raw, err := json.Marshal(ft)
	if err != nil {
		t.Errorf("json.Marshal failed: %v", err)
	}
	expectJSON := `{"256":1,"97":3,"98":2,"99":1}`
	actualJSON := string(raw)
	if expectJSON != actualJSON {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectJSON, actualJSON)
	}

	raw, err = json.Marshal(FrequencyTable{})
	if err != nil {
		t.Errorf("json.Marshal failed: %v", err)
	}
	if string(raw) != "{}" {
		t.Errorf("wrong output:\n\texpect: {}\n\tactual: %s", raw)
	}
}

func TestFrequencyTable_UnmarshalJSON(t *testing.T) {
	var ft FrequencyTable
	err := json.Unmarshal([]byte(`{"97":3,"98":2,"99":1,"256":1}`), &ft)
	if err != nil {
		t.Errorf("json.Unmarshal failed: %v", err)
	}
	if expect := makeScenarioTable(); !ft.Equal(expect) {
		t.Errorf("wrong table:\n\texpect: %v\n\tactual: %v", expect, ft)
	}

	type testRow struct {
		name string
		raw  string
	}

	testData := [...]testRow{
		{name: "empty", raw: `{}`},
		{name: "bad-symbol", raw: `{"257":1,"256":1}`},
		{name: "zero-count", raw: `{"97":0,"256":1}`},
		{name: "no-eof", raw: `{"97":3}`},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			parsed := makeScenarioTable()
			err := json.Unmarshal([]byte(row.raw), &parsed)
			if !errors.Is(err, ErrMalformedArtifact) {
				t.Errorf("wrong error:\n\texpect: %v\n\tactual: %v", ErrMalformedArtifact, err)
			}
			if expect := makeScenarioTable(); !parsed.Equal(expect) {
				t.Errorf("table changed by a rejected document:\n\texpect: %v\n\tactual: %v", expect, parsed)
			}
		})
	}
}

func TestFrequencyTable_UnmarshalJSON_BuildsTree(t *testing.T) {
	var ft FrequencyTable
	if err := json.Unmarshal([]byte(`{"120":2,"256":1}`), &ft); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}

	var e Encoder
	e.Init(BuildCodeTable(BuildTree(ft)))
	bits, _, err := e.EncodeBytes([]byte("xx"), nil)
	if err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}
	if expect := "110"; bits != expect {
		t.Errorf("wrong bits:\n\texpect: %s\n\tactual: %s", expect, bits)
	}
}
