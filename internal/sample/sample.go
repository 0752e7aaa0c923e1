// Package sample acquires the byte buffer that dialect detection consumes:
// bounded reads from a file or stream, byte-order-mark handling, and a
// transcoding fallback so the detector always sees UTF-8.
package sample

import (
	"bytes"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultMaxBytes bounds a sample when the caller sets no explicit limit.
const DefaultMaxBytes = 100 << 20

// Result is an acquired sample.
type Result struct {
	// Data is the sample transcoded to UTF-8 with any BOM removed.
	Data []byte

	// IsUTF8 reports whether the raw input was already valid UTF-8.
	IsUTF8 bool
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// ReadFile acquires a sample from a file. maxBytes bounds the read;
// 0 applies DefaultMaxBytes.
func ReadFile(path string, maxBytes int) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open sample file %s", path)
	}
	defer f.Close()
	return Read(f, maxBytes)
}

// Read acquires a sample from a stream. maxBytes bounds the read;
// 0 applies DefaultMaxBytes.
func Read(r io.Reader, maxBytes int) (*Result, error) {
	if maxBytes <= 0 || maxBytes > DefaultMaxBytes {
		maxBytes = DefaultMaxBytes
	}

	raw, err := io.ReadAll(io.LimitReader(r, int64(maxBytes)))
	if err != nil {
		return nil, errors.Wrap(err, "read sample")
	}

	return normalize(raw)
}

// normalize strips BOMs and transcodes to UTF-8 when the raw bytes are not
// already valid. UTF-16 input follows its BOM; anything else falls back to
// Windows-1252, which decodes every byte and covers the common legacy
// exports.
func normalize(raw []byte) (*Result, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		raw = raw[len(bomUTF8):]

	case bytes.HasPrefix(raw, bomUTF16BE), bytes.HasPrefix(raw, bomUTF16LE):
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		decoded, _, err := transform.Bytes(dec, raw)
		if err != nil {
			return nil, errors.Wrap(err, "decode UTF-16 sample")
		}
		return &Result{Data: decoded, IsUTF8: false}, nil
	}

	if utf8.Valid(raw) {
		return &Result{Data: raw, IsUTF8: true}, nil
	}

	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return nil, errors.Wrap(err, "decode legacy-encoded sample")
	}
	return &Result{Data: decoded, IsUTF8: false}, nil
}
