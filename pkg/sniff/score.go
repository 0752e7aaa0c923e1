package sniff

import (
	"bytes"
	"math"
)

// scoreRecord carries everything selection needs to know about one scored
// candidate. The parsed Table itself is dropped as soon as the score is
// computed; the winner's table is rebuilt once after selection.
type scoreRecord struct {
	cand candidate

	tau0       float64
	tau1       float64
	typeScr    float64
	patternScr float64

	rowBonus   float64
	fieldBonus float64
	penalty    float64
	quoteMult  float64

	gamma float64

	numRows         int
	modalFieldCount int
	avgRecordLen    float64
}

// scoreCandidate builds a table for the candidate and computes its γ. The
// function is infallible: anything that prevents a usable parse yields γ = 0
// and the candidate participates in selection normally.
func scoreCandidate(data []byte, c candidate, ev *quoteEvidence, pref DatePreference, maxRows int) scoreRecord {
	rec := scoreRecord{cand: c, penalty: 1, quoteMult: 1}

	table := buildTable(data, c, maxRows)
	rec.numRows = table.NumRows()
	if rec.numRows == 0 {
		return rec
	}
	rec.modalFieldCount = table.ModalFieldCount
	rec.avgRecordLen = table.AvgRecordLen

	stats := getColumnStats(table.ModalFieldCount)
	classifyColumns(table, pref, stats)
	rec.typeScr = typeScore(stats)
	rec.patternScr = patternScore(stats)
	putColumnStats(stats)

	rec.tau0 = consistencyScore(table.FieldCounts)
	rec.tau1 = dispersionScore(table)

	uniformity := math.Sqrt(rec.tau0 * rec.tau1)

	rec.rowBonus = 0.10 * math.Min(float64(rec.numRows), 20) / 20
	if table.ModalFieldCount >= 2 {
		rec.fieldBonus = 0.20 * math.Min(float64(table.ModalFieldCount), 10) / 10
	}

	raw := 0.5*uniformity + 0.3*rec.typeScr + 0.1*rec.patternScr +
		rec.rowBonus + rec.fieldBonus

	rec.penalty = singleFieldPenalty(table.ModalFieldCount) *
		highFieldPenalty(table.ModalFieldCount) *
		delimiterPenalty(c.delimiter, table.ModalFieldCount, rec.numRows) *
		smallSamplePenalty(rec.numRows)

	base := raw * rec.penalty

	qm := quoteMultiplier(c, ev)
	qm = dampenChaoticBoost(qm, table)

	gamma := base * qm
	gamma, qm = dampenSpaceDelimiter(gamma, qm, base, c, table)
	gamma = dampenCommaHashPattern(gamma, c, table)

	rec.quoteMult = qm
	rec.gamma = gamma
	return rec
}

func singleFieldPenalty(modalFC int) float64 {
	if modalFC == 1 {
		return 0.5
	}
	return 1
}

func highFieldPenalty(modalFC int) float64 {
	switch {
	case modalFC > 100:
		return 0.5
	case modalFC > 50:
		return 0.8
	default:
		return 1
	}
}

func smallSamplePenalty(numRows int) float64 {
	switch {
	case numRows < 3:
		return 0.80
	case numRows < 5:
		return 0.90
	default:
		return 1
	}
}

// quoteMultiplier translates the pre-computed boundary evidence into a boost
// or a discount for this candidate's quote option. First matching rule wins.
func quoteMultiplier(c candidate, ev *quoteEvidence) float64 {
	delimIdx := delimiterIndex(c.delimiter)
	doubleDensity := density(ev.counts.DoubleQuotes, ev.counts.SampleLen)

	switch c.quote {
	case '"':
		b := ev.boundary(delimIdx, quoteIdxDouble)
		boundary := b.Opening + b.Closing
		switch {
		case ev.counts.SingleQuotes == 0 && boundary >= 2 && doubleDensity >= 0.5:
			return 2.20
		case boundary >= 2 && doubleDensity >= 0.5:
			return 1.15
		case doubleDensity >= 0.5:
			return 1.08
		}
		return 1.00

	case '\'':
		b := ev.boundary(delimIdx, quoteIdxSingle)
		boundary := b.Opening + b.Closing
		singleDensity := density(ev.counts.SingleQuotes, ev.counts.SampleLen)
		switch {
		case ev.counts.DoubleQuotes == 0 && b.Opening >= 2 && boundary >= 4 && singleDensity >= 1.0:
			return 2.20
		case ev.counts.DoubleQuotes == 0 && b.Opening >= 1 && boundary >= 2 && singleDensity >= 0.5:
			return 1.20
		case doubleDensity >= 0.5:
			return 0.90
		case ev.counts.EscapedSingle > 0 && ev.counts.EscapedDouble == 0 && boundary == 0:
			return 1.10
		// Padded quoting such as "# ' ... # '" opens mid-content but closes
		// against terminators in volume.
		case ev.counts.DoubleQuotes == 0 && b.Opening == 0 && b.Closing >= 20 && singleDensity >= 5:
			return 1.10
		case boundary == 0 && ev.counts.SingleQuotes > 0:
			return 0.95
		}
		return 1.00

	default:
		// No-quote candidate: visible double-quote volume argues against it.
		if doubleDensity >= 0.5 {
			return 0.90
		}
		return 1.00
	}
}

// dampenChaoticBoost shrinks a large quote boost when the table shape says
// the sample is probably structured text (JSON fragments, logs) rather than
// a quoted CSV: many columns, a ragged field-count profile, and a first row
// that collapsed to a single field.
func dampenChaoticBoost(qm float64, t *Table) float64 {
	if qm <= 1.5 || t.ModalFieldCount < 5 {
		return qm
	}
	if t.ModalFrequency == t.NumRows() {
		return qm
	}
	if len(t.FieldCounts) == 0 || t.FieldCounts[0] > 1 {
		return qm
	}
	distinct := make(map[int]struct{}, 8)
	for _, fc := range t.FieldCounts {
		if fc != t.ModalFieldCount {
			distinct[fc] = struct{}{}
		}
	}
	if len(distinct) < 3 {
		return qm
	}
	return 1 + (qm-1)*0.3
}

// dampenSpaceDelimiter handles space-delimited candidates whose rows mostly
// begin with an empty field, the signature of indentation rather than a
// table. Caps the quote multiplier and cuts γ.
func dampenSpaceDelimiter(gamma, qm, base float64, c candidate, t *Table) (float64, float64) {
	if c.delimiter != ' ' || t.NumRows() == 0 {
		return gamma, qm
	}
	emptyFirst := 0
	for _, row := range t.Rows {
		if len(row) > 0 && len(row[0]) == 0 {
			emptyFirst++
		}
	}
	if emptyFirst*2 <= t.NumRows() {
		return gamma, qm
	}
	if qm > 1.05 {
		qm = 1.05
	}
	return base * qm * 0.55, qm
}

// dampenCommaHashPattern discounts a comma candidate whose two-field rows
// carry " # " inside the first field: the hash is likely the true delimiter.
func dampenCommaHashPattern(gamma float64, c candidate, t *Table) float64 {
	if c.delimiter != ',' || t.ModalFieldCount != 2 || t.NumRows() == 0 {
		return gamma
	}
	matching := 0
	for _, row := range t.Rows {
		if len(row) > 0 && bytes.Contains(row[0], []byte(" # ")) {
			matching++
		}
	}
	if float64(matching) > 0.9*float64(t.NumRows()) {
		return gamma * 0.82
	}
	return gamma
}
