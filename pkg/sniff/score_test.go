package sniff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuralPenalties(t *testing.T) {
	assert.Equal(t, 0.5, singleFieldPenalty(1))
	assert.Equal(t, 1.0, singleFieldPenalty(2))

	assert.Equal(t, 1.0, highFieldPenalty(50))
	assert.Equal(t, 0.8, highFieldPenalty(51))
	assert.Equal(t, 0.8, highFieldPenalty(100))
	assert.Equal(t, 0.5, highFieldPenalty(101))

	assert.Equal(t, 0.80, smallSamplePenalty(2))
	assert.Equal(t, 0.90, smallSamplePenalty(4))
	assert.Equal(t, 1.0, smallSamplePenalty(5))
}

func TestDelimiterPenalty(t *testing.T) {
	assert.Equal(t, 1.00, delimiterPenalty(',', 3, 10))
	assert.Equal(t, 1.00, delimiterPenalty(';', 3, 10))
	assert.Equal(t, 1.00, delimiterPenalty('\t', 3, 10))
	assert.Equal(t, 0.98, delimiterPenalty('|', 3, 10))
	assert.Equal(t, 0.80, delimiterPenalty('^', 3, 10))
	assert.Equal(t, 0.80, delimiterPenalty('~', 3, 10))
	assert.Equal(t, 0.78, delimiterPenalty(sectionSign, 3, 10))
	assert.Equal(t, 0.75, delimiterPenalty(' ', 3, 10))
	assert.Equal(t, 0.65, delimiterPenalty('/', 3, 10))
	assert.Equal(t, 0.60, delimiterPenalty('&', 3, 10))

	// Hash relaxes for wide, long tables.
	assert.Equal(t, 0.60, delimiterPenalty('#', 2, 100))
	assert.Equal(t, 0.60, delimiterPenalty('#', 3, 49))
	assert.Equal(t, 0.85, delimiterPenalty('#', 3, 50))
}

func quoteEvidenceFor(t *testing.T, data string) *quoteEvidence {
	t.Helper()
	return computeQuoteEvidence([]byte(data), candidateDelimiters)
}

func TestQuoteMultiplierDouble(t *testing.T) {
	// Clean double quoting, no single quotes: strong boost.
	ev := quoteEvidenceFor(t, "\"a\",\"b\"\n\"c\",\"d\"\n")
	qm := quoteMultiplier(candidate{delimiter: ',', quote: '"'}, ev)
	assert.Equal(t, 2.20, qm)

	// Single quotes present alongside: moderate boost.
	ev = quoteEvidenceFor(t, "\"a\",'x'\n\"c\",'y'\n")
	qm = quoteMultiplier(candidate{delimiter: ',', quote: '"'}, ev)
	assert.Equal(t, 1.15, qm)

	// No quotes at all: neutral.
	ev = quoteEvidenceFor(t, "a,b\nc,d\n")
	qm = quoteMultiplier(candidate{delimiter: ',', quote: '"'}, ev)
	assert.Equal(t, 1.00, qm)
}

func TestQuoteMultiplierDoubleDensityOnly(t *testing.T) {
	// Quotes are dense but never boundary-adjacent: weak boost only.
	ev := quoteEvidenceFor(t, "a\"b,c\"d\na\"b,c\"d\n")
	qm := quoteMultiplier(candidate{delimiter: ',', quote: '"'}, ev)
	assert.Equal(t, 1.08, qm)
}

func TestQuoteMultiplierSingle(t *testing.T) {
	// Clean single quoting, no double quotes: strong boost.
	ev := quoteEvidenceFor(t, "'a'|'b'\n'c'|'d'\n")
	qm := quoteMultiplier(candidate{delimiter: '|', quote: '\''}, ev)
	assert.Equal(t, 2.20, qm)

	// Double-quote volume argues against a single-quote candidate.
	ev = quoteEvidenceFor(t, "\"a\",\"b\"\n\"c\",\"d\"\n")
	qm = quoteMultiplier(candidate{delimiter: ',', quote: '\''}, ev)
	assert.Equal(t, 0.90, qm)

	// Apostrophes in content with no boundary evidence: slight discount.
	ev = quoteEvidenceFor(t, "it,isn't\nshe,won't\nhe,can't\n")
	qm = quoteMultiplier(candidate{delimiter: ',', quote: '\''}, ev)
	assert.Equal(t, 0.95, qm)
}

func TestQuoteMultiplierNone(t *testing.T) {
	// Visible double quotes argue against the no-quote candidate.
	ev := quoteEvidenceFor(t, "\"a\",\"b\"\n\"c\",\"d\"\n")
	qm := quoteMultiplier(candidate{delimiter: ',', quote: 0}, ev)
	assert.Equal(t, 0.90, qm)

	ev = quoteEvidenceFor(t, "a,b\nc,d\n")
	qm = quoteMultiplier(candidate{delimiter: ',', quote: 0}, ev)
	assert.Equal(t, 1.00, qm)
}

func TestScoreCandidateUniform(t *testing.T) {
	data := []byte("a,b,c\n1,2,3\n4,5,6\n7,8,9\n10,11,12\n")
	ev := computeQuoteEvidence(data, candidateDelimiters)

	rec := scoreCandidate(data, candidate{delimiter: ',', quote: '"'}, ev, DateMDY, 0)

	assert.Equal(t, 5, rec.numRows)
	assert.Equal(t, 3, rec.modalFieldCount)
	assert.InDelta(t, 1.0, rec.tau0, 1e-9)
	assert.InDelta(t, 1.0, rec.tau1, 1e-9)
	assert.Greater(t, rec.gamma, 0.0)
}

func TestScoreCandidateZeroRows(t *testing.T) {
	// Only newlines: no rows, γ = 0.
	data := []byte("\n\n\n")
	ev := computeQuoteEvidence(data, candidateDelimiters)
	rec := scoreCandidate(data, candidate{delimiter: ',', quote: '"'}, ev, DateMDY, 0)
	assert.Equal(t, 0.0, rec.gamma)
	assert.Equal(t, 0, rec.numRows)
}

func TestScoreCandidateWrongDelimiterScoresLower(t *testing.T) {
	data := []byte("a,b,c\n1,2,3\n4,5,6\n7,8,9\n10,11,12\n")
	ev := computeQuoteEvidence(data, candidateDelimiters)

	comma := scoreCandidate(data, candidate{delimiter: ',', quote: '"'}, ev, DateMDY, 0)
	semi := scoreCandidate(data, candidate{delimiter: ';', quote: '"'}, ev, DateMDY, 0)

	assert.Greater(t, comma.gamma, semi.gamma)
}

func TestScoreInvariants(t *testing.T) {
	samples := []string{
		"a,b,c\n1,2,3\n",
		"x\ny\nz\n",
		"\"q\",1\n\"r\",2\n",
		"::::\n;;;;\n",
		strings.Repeat(",", 200) + "\n",
	}
	for _, s := range samples {
		data := []byte(s)
		ev := computeQuoteEvidence(data, candidateDelimiters)
		for _, d := range candidateDelimiters {
			for _, q := range candidateQuotes {
				rec := scoreCandidate(data, candidate{delimiter: d, quote: q}, ev, DateMDY, 0)
				assert.GreaterOrEqual(t, rec.gamma, 0.0)
				assert.GreaterOrEqual(t, rec.tau0, 0.0)
				assert.LessOrEqual(t, rec.tau0, 1.0)
				assert.GreaterOrEqual(t, rec.tau1, 0.0)
				assert.LessOrEqual(t, rec.tau1, 1.0)
				assert.GreaterOrEqual(t, rec.typeScr, 0.0)
				assert.LessOrEqual(t, rec.typeScr, 1.0)
				assert.GreaterOrEqual(t, rec.patternScr, 0.0)
				assert.LessOrEqual(t, rec.patternScr, 1.0)
			}
		}
	}
}

func TestDampenChaoticBoost(t *testing.T) {
	// Ragged wide table with a one-field first row and three distinct
	// non-modal counts: the boost excess shrinks to 30%.
	table := &Table{
		FieldCounts:     []int{1, 5, 5, 5, 2, 3, 4},
		ModalFieldCount: 5,
		ModalFrequency:  3,
		Rows:            make([][][]byte, 7),
	}
	got := dampenChaoticBoost(2.20, table)
	assert.InDelta(t, 1+(2.20-1)*0.3, got, 1e-9)

	// Uniform table keeps its boost.
	uniform := &Table{
		FieldCounts:     []int{5, 5, 5},
		ModalFieldCount: 5,
		ModalFrequency:  3,
		Rows:            make([][][]byte, 3),
	}
	assert.Equal(t, 2.20, dampenChaoticBoost(2.20, uniform))

	// Small boosts pass through.
	assert.Equal(t, 1.15, dampenChaoticBoost(1.15, table))
}

func TestDampenSpaceDelimiter(t *testing.T) {
	rows := [][][]byte{
		{[]byte(""), []byte("a")},
		{[]byte(""), []byte("b")},
		{[]byte("x"), []byte("c")},
	}
	table := &Table{Rows: rows, FieldCounts: []int{2, 2, 2}, ModalFieldCount: 2, ModalFrequency: 3}

	gamma, qm := dampenSpaceDelimiter(2.0, 2.20, 1.0, candidate{delimiter: ' ', quote: '"'}, table)
	assert.InDelta(t, 1.0*1.05*0.55, gamma, 1e-9)
	assert.Equal(t, 1.05, qm)

	// Non-space candidates pass through.
	gamma, qm = dampenSpaceDelimiter(2.0, 2.20, 1.0, candidate{delimiter: ',', quote: '"'}, table)
	assert.Equal(t, 2.0, gamma)
	assert.Equal(t, 2.20, qm)
}

func TestDampenCommaHashPattern(t *testing.T) {
	rows := [][][]byte{
		{[]byte("a # b"), []byte("x")},
		{[]byte("c # d"), []byte("y")},
		{[]byte("e # f"), []byte("z")},
	}
	table := &Table{Rows: rows, FieldCounts: []int{2, 2, 2}, ModalFieldCount: 2, ModalFrequency: 3}

	got := dampenCommaHashPattern(1.0, candidate{delimiter: ',', quote: '"'}, table)
	assert.InDelta(t, 0.82, got, 1e-9)

	// Three-field tables pass through.
	wide := &Table{Rows: rows, FieldCounts: []int{3, 3, 3}, ModalFieldCount: 3, ModalFrequency: 3}
	assert.Equal(t, 1.0, dampenCommaHashPattern(1.0, candidate{delimiter: ',', quote: '"'}, wide))
}
