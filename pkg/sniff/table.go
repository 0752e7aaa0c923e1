package sniff

import (
	"github.com/shapestone/shape-sniff/internal/tokenizer"
)

// Table is the result of parsing the sample under one candidate dialect.
// Rows hold field views into the normalized sample buffer; once built a
// Table is never mutated.
type Table struct {
	// Rows are the parsed records, in sample order.
	Rows [][][]byte

	// FieldCounts has one entry per row.
	FieldCounts []int

	// ModalFieldCount is the most frequent field count. Ties prefer the
	// higher count so repeated runs are stable.
	ModalFieldCount int

	// ModalFrequency is the number of rows matching ModalFieldCount.
	ModalFrequency int

	// AvgRecordLen is the mean serialized record length in bytes, counting
	// field content, the delimiters between fields, and the terminator.
	AvgRecordLen float64
}

// NumRows returns the number of parsed rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// buildTable parses the normalized (LF-only) sample under the candidate and
// computes the field-count statistics. Parsing is flexible: malformed rows
// contribute their observed field counts instead of aborting the build. A
// sample that yields no rows produces an empty Table.
func buildTable(data []byte, c candidate, maxRows int) *Table {
	t, err := buildTableChecked(data, c, maxRows)
	if err != nil {
		// Flexible tokenization never fails; treat a failure as no rows so
		// the candidate scores zero rather than aborting the sniff.
		return &Table{}
	}
	return t
}

// buildTableChecked is buildTable with the tokenizer error surfaced, used by
// the final parse after selection.
func buildTableChecked(data []byte, c candidate, maxRows int) (*Table, error) {
	rows, err := tokenizer.ReadAll(data, tokenizer.Dialect{
		Delimiter: c.delimiter,
		Quote:     c.quote,
	}, tokenizer.Options{
		Flexible: true,
		MaxRows:  maxRows,
	})
	if err != nil {
		return nil, err
	}

	t := &Table{
		Rows:        rows,
		FieldCounts: make([]int, len(rows)),
	}
	if len(rows) == 0 {
		return t, nil
	}

	var totalLen int
	for i, row := range rows {
		t.FieldCounts[i] = len(row)
		for _, field := range row {
			totalLen += len(field)
		}
		// Delimiters between fields plus the line terminator.
		totalLen += len(row) - 1 + terminatorLen
	}

	t.ModalFieldCount, t.ModalFrequency = modalFieldCount(t.FieldCounts)
	t.AvgRecordLen = float64(totalLen) / float64(len(rows))
	return t, nil
}

// terminatorLen is the per-row overhead charged by AvgRecordLen. The sample
// is LF-normalized before parsing, so a single byte.
const terminatorLen = 1

// modalFieldCount returns the most frequent field count and its frequency.
// When two counts tie on frequency the higher count wins; the comparison is
// total, so the result does not depend on map iteration order.
func modalFieldCount(counts []int) (mode, freq int) {
	occurrences := make(map[int]int, 8)
	for _, c := range counts {
		occurrences[c]++
	}
	for c, n := range occurrences {
		if n > freq || (n == freq && c > mode) {
			mode, freq = c, n
		}
	}
	if mode < 1 && len(counts) > 0 {
		mode = 1
	}
	return mode, freq
}
