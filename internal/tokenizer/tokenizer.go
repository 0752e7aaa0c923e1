// Package tokenizer implements zero-copy CSV tokenization of an in-memory
// buffer under an arbitrary single-byte dialect.
//
// The tokenizer returns rows of []byte field views into the original buffer:
//   - Unquoted fields: slices point directly into the input (zero allocations)
//   - Quoted fields without escapes: slices point into the input
//   - Quoted fields with doubled quotes: new memory allocated only for unescaping
//
// IMPORTANT: The returned slices share memory with the input buffer.
// Do not modify the input buffer while using the returned data.
//
// Two modes are supported. Flexible mode never fails: rows may have differing
// field counts, a stray quote inside an unquoted field is literal content, and
// an unclosed quoted field swallows the rest of the buffer. Strict mode
// reports the byte position of the first malformed construct.
package tokenizer

import (
	"fmt"
)

// Dialect describes how a buffer partitions into rows and fields.
type Dialect struct {
	// Delimiter is the field separator byte.
	Delimiter byte

	// Quote is the quoting byte, or 0 to disable quote handling entirely.
	Quote byte
}

// Options configures tokenization behavior.
type Options struct {
	// Flexible allows rows with differing field counts and treats malformed
	// quoting as literal content instead of failing. Default: false
	Flexible bool

	// MaxRows stops tokenization after this many rows. 0 means no limit.
	MaxRows int
}

// ReadAll tokenizes data under the given dialect and returns all rows.
//
// The input must be LF-terminated: callers normalize CRLF/CR line endings
// before tokenizing. Empty physical lines are skipped; a trailing newline
// does not produce an empty final row.
func ReadAll(data []byte, d Dialect, opts Options) ([][][]byte, error) {
	if len(data) == 0 {
		return [][][]byte{}, nil
	}

	t := &tokenizer{
		data:     data,
		length:   len(data),
		dialect:  d,
		flexible: opts.Flexible,
		maxRows:  opts.MaxRows,
	}
	return t.readAll()
}

// tokenizer walks the buffer once, slicing out field views.
type tokenizer struct {
	data     []byte
	pos      int
	length   int
	dialect  Dialect
	flexible bool
	maxRows  int
}

func (t *tokenizer) readAll() ([][][]byte, error) {
	rows := make([][][]byte, 0, 16)

	// Track field count from the first row for pre-allocation.
	var capacityHint int

	for t.pos < t.length {
		if t.maxRows > 0 && len(rows) >= t.maxRows {
			break
		}

		// Skip empty lines.
		if t.data[t.pos] == '\n' {
			t.pos++
			continue
		}

		row, err := t.readRow(capacityHint)
		if err != nil {
			return nil, err
		}
		if capacityHint == 0 && len(row) > 0 {
			capacityHint = len(row)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// readRow reads a single row up to (and consuming) the next unquoted LF or EOF.
func (t *tokenizer) readRow(capacityHint int) ([][]byte, error) {
	var fields [][]byte
	if capacityHint > 0 {
		fields = make([][]byte, 0, capacityHint)
	} else {
		fields = make([][]byte, 0, 8)
	}

	for {
		field, err := t.readField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)

		if t.pos >= t.length {
			return fields, nil
		}

		c := t.data[t.pos]
		if c == t.dialect.Delimiter {
			t.pos++
			continue
		}
		if c == '\n' {
			t.pos++
			return fields, nil
		}

		// Content after a closing quote that is neither delimiter nor
		// newline. Flexible mode folds it into the field; strict mode fails.
		if !t.flexible {
			return nil, fmt.Errorf("unexpected character %q after field at position %d", c, t.pos)
		}
		t.appendTrailing(fields)
		if t.pos >= t.length {
			return fields, nil
		}
		if t.data[t.pos] == t.dialect.Delimiter {
			t.pos++
			continue
		}
		// appendTrailing stops only at delimiter, LF, or EOF.
		t.pos++
		return fields, nil
	}
}

// appendTrailing consumes content following a closing quote up to the next
// delimiter or newline and splices it onto the last field. Only reachable in
// flexible mode.
func (t *tokenizer) appendTrailing(fields [][]byte) {
	start := t.pos
	for t.pos < t.length {
		c := t.data[t.pos]
		if c == t.dialect.Delimiter || c == '\n' {
			break
		}
		t.pos++
	}
	last := len(fields) - 1
	merged := make([]byte, 0, len(fields[last])+t.pos-start)
	merged = append(merged, fields[last]...)
	merged = append(merged, t.data[start:t.pos]...)
	fields[last] = merged
}

func (t *tokenizer) readField() ([]byte, error) {
	if t.pos >= t.length {
		// Empty field at end of buffer.
		return nil, nil
	}
	if t.dialect.Quote != 0 && t.data[t.pos] == t.dialect.Quote {
		return t.readQuotedField()
	}
	return t.readUnquotedField()
}

// readUnquotedField returns a slice pointing directly into the buffer.
func (t *tokenizer) readUnquotedField() ([]byte, error) {
	start := t.pos

	for t.pos < t.length {
		c := t.data[t.pos]
		if c == t.dialect.Delimiter || c == '\n' {
			break
		}
		if t.dialect.Quote != 0 && c == t.dialect.Quote && !t.flexible {
			return nil, fmt.Errorf("quote character in unquoted field at position %d", t.pos)
		}
		// Flexible mode: a quote mid-field is literal content.
		t.pos++
	}

	return t.data[start:t.pos], nil
}

// readQuotedField parses a quoted field. When the field contains no doubled
// quotes the returned slice points into the buffer; otherwise a new slice is
// allocated for the unescaped content.
func (t *tokenizer) readQuotedField() ([]byte, error) {
	quote := t.dialect.Quote

	// Skip opening quote.
	t.pos++
	start := t.pos

	// First pass: find the closing quote, noting whether unescaping is needed.
	scanPos := t.pos
	hasEscapes := false
	for scanPos < t.length {
		if t.data[scanPos] != quote {
			scanPos++
			continue
		}
		scanPos++
		if scanPos < t.length && t.data[scanPos] == quote {
			hasEscapes = true
			scanPos++
			continue
		}
		// Closing quote found.
		if !hasEscapes {
			result := t.data[start : scanPos-1]
			t.pos = scanPos
			return result, nil
		}
		break
	}

	if scanPos >= t.length && !hasEscapes {
		// Unclosed quoted field.
		if !t.flexible {
			return nil, fmt.Errorf("unclosed quoted field at position %d", start-1)
		}
		// Flexible mode: the rest of the buffer is the field.
		result := t.data[start:t.length]
		t.pos = t.length
		return result, nil
	}

	// Second pass: copy with unescaping.
	buf := make([]byte, 0, scanPos-start)
	copyStart := t.pos
	for t.pos < t.length {
		if t.data[t.pos] != quote {
			t.pos++
			continue
		}
		buf = append(buf, t.data[copyStart:t.pos]...)
		t.pos++
		if t.pos < t.length && t.data[t.pos] == quote {
			buf = append(buf, quote)
			t.pos++
			copyStart = t.pos
			continue
		}
		// Closing quote.
		return buf, nil
	}

	// Unclosed after escapes.
	if !t.flexible {
		return nil, fmt.Errorf("unclosed quoted field at position %d", start-1)
	}
	buf = append(buf, t.data[copyStart:t.pos]...)
	return buf, nil
}
