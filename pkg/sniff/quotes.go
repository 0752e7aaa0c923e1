package sniff

// QuoteCounts holds sample-wide quote tallies gathered in the evidence pass.
type QuoteCounts struct {
	// DoubleQuotes and SingleQuotes are raw occurrence counts.
	DoubleQuotes int
	SingleQuotes int

	// EscapedDouble and EscapedSingle count backslash-escape pairs
	// (\" and \').
	EscapedDouble int
	EscapedSingle int

	// SampleLen is the normalized sample length in bytes.
	SampleLen int
}

// BoundaryCounts tallies quote bytes adjacent to field boundaries for one
// (delimiter, quote) pair. An opening is a quote immediately after a
// delimiter, a line terminator, or the buffer head; a closing is a quote
// immediately before a delimiter, a terminator, or the buffer end. Quotes at
// field boundaries are evidence of deliberate quoting; quotes elsewhere are
// usually apostrophes in content.
type BoundaryCounts struct {
	Opening int
	Closing int
}

// quoteEvidence is the shared read-only result of the one-pass pre-compute,
// consumed by every candidate scorer.
type quoteEvidence struct {
	counts QuoteCounts

	// boundaries is indexed by candidate-delimiter position and quote kind
	// (0 = double, 1 = single).
	boundaries [][2]BoundaryCounts
}

const (
	quoteIdxDouble = 0
	quoteIdxSingle = 1
)

// boundary returns the counts for one (delimiter, quote) pair. Unknown
// delimiters report zero.
func (e *quoteEvidence) boundary(delimIdx int, quoteIdx int) BoundaryCounts {
	if delimIdx < 0 || delimIdx >= len(e.boundaries) {
		return BoundaryCounts{}
	}
	return e.boundaries[delimIdx][quoteIdx]
}

// density returns occurrences per thousand sample bytes.
func density(count, sampleLen int) float64 {
	if sampleLen == 0 {
		return 0
	}
	return float64(count) * 1000 / float64(sampleLen)
}

// computeQuoteEvidence walks the normalized (LF-only) buffer once. A
// 256-entry class table maps each byte to its candidate-delimiter index so
// the inner loop stays branch-light. Cost is O(N) plus, for each quote
// adjacent to a terminator or the buffer edge, one increment sweep over the
// fixed-size delimiter list, since such a quote counts for every delimiter.
func computeQuoteEvidence(data []byte, delims []byte) *quoteEvidence {
	ev := &quoteEvidence{
		counts:     QuoteCounts{SampleLen: len(data)},
		boundaries: make([][2]BoundaryCounts, len(delims)),
	}

	// delimClass[b] is the 1-based index of b in delims, 0 otherwise.
	var delimClass [256]uint8
	for i, d := range delims {
		delimClass[d] = uint8(i + 1)
	}

	n := len(data)
	for i := 0; i < n; i++ {
		c := data[i]

		var quoteIdx int
		switch c {
		case '"':
			ev.counts.DoubleQuotes++
			quoteIdx = quoteIdxDouble
		case '\'':
			ev.counts.SingleQuotes++
			quoteIdx = quoteIdxSingle
		case '\\':
			if i+1 < n {
				switch data[i+1] {
				case '"':
					ev.counts.EscapedDouble++
				case '\'':
					ev.counts.EscapedSingle++
				}
			}
			continue
		default:
			continue
		}

		// Opening: previous byte is a delimiter, a terminator, or absent.
		if i == 0 || data[i-1] == '\n' {
			for d := range ev.boundaries {
				ev.boundaries[d][quoteIdx].Opening++
			}
		} else if cls := delimClass[data[i-1]]; cls != 0 {
			ev.boundaries[cls-1][quoteIdx].Opening++
		}

		// Closing: next byte is a delimiter, a terminator, or absent.
		if i == n-1 || data[i+1] == '\n' {
			for d := range ev.boundaries {
				ev.boundaries[d][quoteIdx].Closing++
			}
		} else if cls := delimClass[data[i+1]]; cls != 0 {
			ev.boundaries[cls-1][quoteIdx].Closing++
		}
	}

	return ev
}
