package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/shapestone/shape-sniff/pkg/sniff"
)

// jsonMetadata is the wire shape of a detection result.
type jsonMetadata struct {
	Dialect struct {
		Delimiter      string `json:"delimiter"`
		Quote          string `json:"quote"`
		LineTerminator string `json:"lineTerminator"`
		Flexible       bool   `json:"flexible"`
	} `json:"dialect"`
	HasHeaderRow    bool        `json:"hasHeaderRow"`
	NumPreambleRows int         `json:"numPreambleRows"`
	NumFields       int         `json:"numFields"`
	Fields          []jsonField `json:"fields"`
	AvgRecordLen    float64     `json:"avgRecordLen"`
	IsUTF8          bool        `json:"isUtf8"`
}

type jsonField struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

func writeJSON(w io.Writer, meta *sniff.Metadata) error {
	var out jsonMetadata
	out.Dialect.Delimiter = printableByte(meta.Dialect.Delimiter)
	out.Dialect.Quote = meta.Dialect.Quote.String()
	out.Dialect.LineTerminator = meta.Dialect.LineTerminator.String()
	out.Dialect.Flexible = meta.Dialect.Flexible
	out.HasHeaderRow = meta.Header.HasHeaderRow
	out.NumPreambleRows = meta.Header.NumPreambleRows
	out.NumFields = meta.NumFields
	out.AvgRecordLen = meta.AvgRecordLen
	out.IsUTF8 = meta.IsUTF8
	out.Fields = make([]jsonField, len(meta.Fields))
	for i, f := range meta.Fields {
		out.Fields[i] = jsonField{Name: f.Name, Type: f.Type.String()}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeText(w io.Writer, meta *sniff.Metadata) error {
	rows := [][2]string{
		{"Delimiter", printableByte(meta.Dialect.Delimiter)},
		{"Quote", meta.Dialect.Quote.String()},
		{"Line terminator", meta.Dialect.LineTerminator.String()},
		{"Flexible", fmt.Sprintf("%v", meta.Dialect.Flexible)},
		{"Header row", fmt.Sprintf("%v", meta.Header.HasHeaderRow)},
		{"Preamble rows", fmt.Sprintf("%d", meta.Header.NumPreambleRows)},
		{"Fields", fmt.Sprintf("%d", meta.NumFields)},
		{"Avg record length", fmt.Sprintf("%.1f", meta.AvgRecordLen)},
		{"UTF-8", fmt.Sprintf("%v", meta.IsUTF8)},
	}

	labelWidth := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r[0]); w > labelWidth {
			labelWidth = w
		}
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(r[0], labelWidth), r[1]); err != nil {
			return err
		}
	}

	if len(meta.Fields) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	names := make([]string, len(meta.Fields))
	nameWidth := runewidth.StringWidth("Column")
	for i, f := range meta.Fields {
		names[i] = f.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("col%d", i)
		}
		if w := runewidth.StringWidth(names[i]); w > nameWidth {
			nameWidth = w
		}
	}
	fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight("Column", nameWidth), "Type")
	fmt.Fprintf(w, "%s  %s\n", strings.Repeat("-", nameWidth), strings.Repeat("-", 8))
	for i, f := range meta.Fields {
		if _, err := fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(names[i], nameWidth), f.Type); err != nil {
			return err
		}
	}
	return nil
}

// printableByte renders a delimiter byte for display.
func printableByte(b byte) string {
	switch b {
	case '\t':
		return "\\t"
	case ' ':
		return "space"
	}
	if b >= 0x20 && b < 0x7F {
		return string(rune(b))
	}
	return fmt.Sprintf("0x%02X", b)
}
