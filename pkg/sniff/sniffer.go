// Package sniff detects the dialect of CSV data: field delimiter, quote
// character, line terminator, header presence, preamble length, and column
// types.
//
// Detection scores a fixed combinatorial candidate set against the sample
// using table-shape uniformity, per-column type consistency, and
// quote-boundary evidence, layered with multiplicative priors about
// real-world CSV practice, and picks the highest-scoring dialect with
// deterministic tie-breaking.
// Scoring is infallible: malformed input, truncated files, and binary
// garbage produce a best-effort result or a categorized error, never a
// panic.
//
// Example:
//
//	meta, err := sniff.Sniff(data, sniff.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("delimiter %q, %d fields\n", meta.Dialect.Delimiter, meta.NumFields)
package sniff

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// maxSampleBytes bounds the in-memory sample. Larger inputs are truncated,
// not rejected.
const maxSampleBytes = 100 << 20

// sampleMode selects how SampleSize bounds the sample.
type sampleMode int

const (
	sampleRecords sampleMode = iota
	sampleBytes
	sampleAll
)

// SampleSize bounds how much of the input participates in detection.
type SampleSize struct {
	mode sampleMode
	n    int
}

// SampleRecords bounds the sample to the first n records of every candidate
// parse. This is the default, with n = 100.
func SampleRecords(n int) SampleSize {
	return SampleSize{mode: sampleRecords, n: n}
}

// SampleBytes bounds the sample to the first n bytes.
func SampleBytes(n int) SampleSize {
	return SampleSize{mode: sampleBytes, n: n}
}

// SampleAll uses the whole input, up to the 100 MiB in-memory bound.
func SampleAll() SampleSize {
	return SampleSize{mode: sampleAll}
}

// Options configures a sniff.
type Options struct {
	// SampleSize bounds the sample. Default: SampleRecords(100)
	SampleSize SampleSize

	// DatePreference resolves ambiguous numeric dates. Default: DateMDY
	DatePreference DatePreference

	// ForceDelimiter pins the delimiter instead of detecting it.
	// Default: 0 (detect)
	ForceDelimiter byte

	// ForceQuote pins the quote option instead of detecting it.
	// Default: nil (detect)
	ForceQuote *QuoteOption

	// ForceHasHeader overrides the header heuristic.
	// Default: nil (heuristic)
	ForceHasHeader *bool
}

// DefaultOptions returns the default sniff configuration.
func DefaultOptions() Options {
	return Options{
		SampleSize:     SampleRecords(100),
		DatePreference: DateMDY,
	}
}

func (o *Options) validate() error {
	switch o.ForceDelimiter {
	case '\n', '\r':
		return errors.Wrap(ErrInvalidOption, "forced delimiter cannot be a line terminator")
	}
	if o.ForceQuote != nil && o.ForceQuote.Enabled() {
		switch o.ForceQuote.Char {
		case '\n', '\r':
			return errors.Wrap(ErrInvalidOption, "forced quote cannot be a line terminator")
		}
		if o.ForceQuote.Char == o.ForceDelimiter {
			return errors.Wrap(ErrInvalidOption, "forced quote equals forced delimiter")
		}
	}
	if (o.SampleSize.mode == sampleRecords || o.SampleSize.mode == sampleBytes) && o.SampleSize.n < 1 {
		return errors.Wrapf(ErrInvalidOption, "sample size must be at least 1, got %d", o.SampleSize.n)
	}
	return nil
}

// Sniff detects the dialect of data and reports a structural description of
// the table. The result is deterministic for identical input bytes.
func Sniff(data []byte, opts Options) (*Metadata, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if len(data) > maxSampleBytes {
		data = data[:maxSampleBytes]
	}

	isUTF8 := utf8.Valid(data)

	maxRows := 0
	switch opts.SampleSize.mode {
	case sampleRecords:
		maxRows = opts.SampleSize.n
	case sampleBytes:
		if len(data) > opts.SampleSize.n {
			data = data[:opts.SampleSize.n]
		}
	}

	// Phase-1 preamble: drop leading comment lines before anything sees the
	// sample. Skipped when '#' is the forced delimiter, where a leading hash
	// is data.
	sampleLen := len(data)
	commentRows := 0
	if opts.ForceDelimiter != '#' {
		data, commentRows = stripCommentLines(data)
	}
	if len(data) == 0 {
		return nil, errors.Wrapf(ErrEmptyInput,
			"sample of %d bytes has no content after preamble strip", sampleLen)
	}

	terminator := detectLineTerminator(data)
	norm := normalizeLineEndings(data)

	ev := computeQuoteEvidence(norm, candidateDelimiters)

	var forcedQuote *byte
	if opts.ForceQuote != nil {
		forcedQuote = &opts.ForceQuote.Char
	}
	cands := generateCandidates(opts.ForceDelimiter, forcedQuote)

	fallback := defaultCandidate
	if opts.ForceDelimiter != 0 {
		fallback.delimiter = opts.ForceDelimiter
	}
	if forcedQuote != nil {
		fallback.quote = *forcedQuote
	}

	records := scoreAllCandidates(norm, cands, ev, opts.DatePreference, maxRows)
	best := findBestDialect(records, fallback)

	// Quote priority favors quoted candidates in near-ties, but a winning
	// quote the sample never contains is noise: report no quoting so readers
	// do not enable quote handling the data does not use.
	if opts.ForceQuote == nil {
		switch {
		case best.cand.quote == '"' && ev.counts.DoubleQuotes == 0,
			best.cand.quote == '\'' && ev.counts.SingleQuotes == 0:
			best.cand.quote = 0
		}
	}

	// The winner's table was dropped after scoring; rebuild it once for the
	// structural stages.
	table, err := buildTableChecked(norm, best.cand, maxRows)
	if err != nil {
		return nil, errors.Wrapf(ErrTokenizer,
			"final parse of %d-byte sample, %d candidates considered: %v", len(norm), len(cands), err)
	}
	if table.NumRows() == 0 {
		return nil, errors.Wrapf(ErrNoDialectFound,
			"sample of %d bytes, %d candidates considered", len(norm), len(cands))
	}

	structuralRows := structuralPreambleRows(table)
	effective := table.Rows[structuralRows:]

	hasHeader := false
	if opts.ForceHasHeader != nil {
		hasHeader = *opts.ForceHasHeader
	} else {
		hasHeader = detectHeader(effective, opts.DatePreference)
	}

	meta := &Metadata{
		Dialect: Dialect{
			Delimiter:      best.cand.delimiter,
			Quote:          QuoteOption{Char: best.cand.quote},
			LineTerminator: terminator,
			Flexible:       table.ModalFrequency < table.NumRows(),
		},
		Header: Header{
			HasHeaderRow:    hasHeader,
			NumPreambleRows: commentRows + structuralRows,
		},
		NumFields:    table.ModalFieldCount,
		AvgRecordLen: table.AvgRecordLen,
		IsUTF8:       isUTF8,
	}
	meta.Fields = inferFields(effective, table.ModalFieldCount, hasHeader, opts.DatePreference)

	return meta, nil
}

// inferFields computes per-column names and modal types over the data rows
// of the effective table.
func inferFields(rows [][][]byte, numFields int, hasHeader bool, pref DatePreference) []Field {
	fields := make([]Field, numFields)

	var names []string
	dataRows := rows
	if hasHeader && len(rows) > 0 {
		names = headerNames(rows[0], numFields)
		dataRows = rows[1:]
	}

	dataTable := &Table{Rows: dataRows}
	stats := getColumnStats(numFields)
	classifyColumns(dataTable, pref, stats)
	for c := 0; c < numFields; c++ {
		fields[c].Type = modalColumnType(&stats.typeCounts[c])
		if names != nil {
			fields[c].Name = names[c]
		}
	}
	putColumnStats(stats)

	return fields
}
