//go:build go1.18
// +build go1.18

package sniff_test

import (
	"testing"

	"github.com/shapestone/shape-sniff/pkg/sniff"
)

// FuzzSniff checks the universal invariants: no panic on any byte sequence,
// and a categorized error or a well-formed result for every input.
// Run with: go test -fuzz=FuzzSniff -fuzztime=30s ./pkg/sniff
func FuzzSniff(f *testing.F) {
	seeds := []string{
		"",
		"a,b,c\n1,2,3\n",
		"x;y;z\n1;2;3\n",
		"'a'|'b'\n'1'|'2'\n",
		"\"q\"\n",
		"# comment\na,b\n",
		"\x00\x01\x02",
		"\"unclosed,\nrow",
		",,,,\n,,,,\n",
		"a\tb\r\nc\td\r\n",
		"\r\r\r",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		meta, err := sniff.Sniff(data, sniff.DefaultOptions())
		if err != nil {
			return
		}
		if meta == nil {
			t.Fatal("nil metadata without error")
		}
		if meta.NumFields < 1 {
			t.Errorf("NumFields = %d, want >= 1", meta.NumFields)
		}
		if len(meta.Fields) != meta.NumFields {
			t.Errorf("len(Fields) = %d, NumFields = %d", len(meta.Fields), meta.NumFields)
		}
		if meta.Header.NumPreambleRows < 0 {
			t.Errorf("NumPreambleRows = %d", meta.Header.NumPreambleRows)
		}
		if meta.AvgRecordLen < 0 {
			t.Errorf("AvgRecordLen = %f", meta.AvgRecordLen)
		}
	})
}
