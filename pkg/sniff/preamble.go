package sniff

// stripCommentLines removes leading physical lines whose first non-whitespace
// byte is '#' and returns the remaining sample plus the number of stripped
// lines. This phase runs on the raw sample before any scoring so comment rows
// never pollute the field-count statistics.
func stripCommentLines(data []byte) ([]byte, int) {
	stripped := 0
	pos := 0

	for pos < len(data) {
		lineEnd := pos
		for lineEnd < len(data) && data[lineEnd] != '\n' {
			lineEnd++
		}

		if !isCommentLine(data[pos:lineEnd]) {
			break
		}

		stripped++
		if lineEnd < len(data) {
			lineEnd++ // consume the newline
		}
		pos = lineEnd
	}

	return data[pos:], stripped
}

func isCommentLine(line []byte) bool {
	for _, c := range line {
		switch c {
		case ' ', '\t', '\r':
			continue
		case '#':
			return true
		default:
			return false
		}
	}
	return false
}

// preambleUniformityThreshold is the share of remaining rows that must match
// the modal field count for a row to count as the start of the data table.
const preambleUniformityThreshold = 0.80

// structuralPreambleRows locates the structural preamble in the winning
// table: the smallest row index from which at least 80% of the remaining
// rows carry the modal field count. Tables under three rows are too small to
// judge and report zero.
//
// suffixMatch is filled in one backward pass, so the forward scan is O(n).
func structuralPreambleRows(t *Table) int {
	n := t.NumRows()
	if n < 3 {
		return 0
	}

	suffixMatch := make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		suffixMatch[i] = suffixMatch[i+1]
		if t.FieldCounts[i] == t.ModalFieldCount {
			suffixMatch[i]++
		}
	}

	for i := 0; i < n; i++ {
		if float64(suffixMatch[i]) >= preambleUniformityThreshold*float64(n-i) {
			return i
		}
	}
	return 0
}
