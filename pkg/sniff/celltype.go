package sniff

import (
	"regexp"
	"sync"
)

// CellType classifies the content of a single cell.
//
// The order of the constants is the specificity order used when breaking
// ties between column types: lower values win.
type CellType int

const (
	// CellNull is an empty cell or a well-known null literal (NA, N/A, ...).
	CellNull CellType = iota
	// CellUnsigned is a decimal integer without sign.
	CellUnsigned
	// CellSigned is a decimal integer with a leading minus.
	CellSigned
	// CellFloat is a decimal or scientific-notation floating point number.
	CellFloat
	// CellBool is a boolean literal (true/false, yes/no, on/off, t/f, y/n).
	CellBool
	// CellDate is a calendar date without a time component.
	CellDate
	// CellDateTime is a date with a time component.
	CellDateTime
	// CellText is anything that matches no more specific type.
	CellText

	numCellTypes = int(CellText) + 1
)

// String returns the lowercase name used in output and logs.
func (t CellType) String() string {
	switch t {
	case CellNull:
		return "null"
	case CellUnsigned:
		return "unsigned"
	case CellSigned:
		return "signed"
	case CellFloat:
		return "float"
	case CellBool:
		return "boolean"
	case CellDate:
		return "date"
	case CellDateTime:
		return "datetime"
	default:
		return "text"
	}
}

// DatePreference resolves ambiguous numeric dates such as 03/04/2020.
type DatePreference int

const (
	// DateMDY reads 03/04/2020 as March 4 (US convention). Default.
	DateMDY DatePreference = iota
	// DateDMY reads 03/04/2020 as April 3.
	DateDMY
)

// Classification runs on every cell of every scored table and dominates CPU,
// so each regex is guarded by a cheap byte-level gate. The patterns
// themselves are compiled once per process on first use.
var (
	compileOnce sync.Once

	floatRe      *regexp.Regexp
	dateTimeRe   *regexp.Regexp
	dateTimeUSRe *regexp.Regexp
	dateISORe    *regexp.Regexp
	dateNumRe    *regexp.Regexp
)

func compilePatterns() {
	floatRe = regexp.MustCompile(`^[+-]?(\d+\.\d*|\.\d+|\d+)([eE][+-]?\d+)?$`)
	dateTimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(\.\d{1,9})?(Z|[+-]\d{2}:?\d{2})?$`)
	dateTimeUSRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4} \d{1,2}:\d{2}(:\d{2})?$`)
	dateISORe = regexp.MustCompile(`^\d{4}[-/]\d{1,2}[-/]\d{1,2}$`)
	dateNumRe = regexp.MustCompile(`^(\d{1,2})([-/])(\d{1,2})[-/](\d{4})$`)
}

// ClassifyCell returns the type of a single cell. The first matching type in
// the order Null, Unsigned, Signed, Boolean, Float, DateTime, Date wins;
// everything else is Text.
func ClassifyCell(cell []byte, pref DatePreference) CellType {
	if len(cell) == 0 || isNullLiteral(cell) {
		return CellNull
	}

	if typ, ok := classifyInteger(cell); ok {
		return typ
	}

	if isBoolLiteral(cell) {
		return CellBool
	}

	// Gate: a float must carry a decimal point or an exponent. Without one
	// the digits-only cases were already taken above.
	if hasFloatMarker(cell) {
		compileOnce.Do(compilePatterns)
		if floatRe.Match(cell) {
			return CellFloat
		}
	}

	// Gate: dates and datetimes always begin with a digit and contain a
	// separator.
	if cell[0] >= '0' && cell[0] <= '9' && hasDateMarker(cell) {
		compileOnce.Do(compilePatterns)
		if dateTimeRe.Match(cell) || dateTimeUSRe.Match(cell) {
			return CellDateTime
		}
		if dateISORe.Match(cell) {
			return CellDate
		}
		if m := dateNumRe.FindSubmatch(cell); m != nil {
			if validNumericDate(m[1], m[3], pref) {
				return CellDate
			}
		}
	}

	return CellText
}

// isNullLiteral reports whether the cell is in the case-insensitive set of
// values treated as null. Checked after lowercasing without allocation for
// cells up to 8 bytes.
func isNullLiteral(cell []byte) bool {
	if len(cell) > 8 {
		return false
	}
	var lower [8]byte
	for i, c := range cell {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower[i] = c
	}
	switch string(lower[:len(cell)]) {
	case "null", "na", "n/a", "nan", "#n/a", "#value!", "-", ".":
		return true
	}
	return false
}

// classifyInteger reports Unsigned or Signed for pure decimal integers.
// Lengths are capped at 19 digits (plus the sign), so an unsigned value fits
// a uint64; a 19-digit signed value can still exceed the int64 range.
func classifyInteger(cell []byte) (CellType, bool) {
	digits := cell
	typ := CellUnsigned
	maxLen := 19
	if cell[0] == '-' {
		if len(cell) == 1 {
			return 0, false
		}
		digits = cell[1:]
		typ = CellSigned
		maxLen = 20
	}
	if len(cell) > maxLen {
		return 0, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	return typ, true
}

// isBoolLiteral is a length-keyed exhaustive match over the boolean literal
// set. Single digits 1 and 0 never reach this point: the integer check above
// claims them first.
func isBoolLiteral(cell []byte) bool {
	switch len(cell) {
	case 1:
		switch cell[0] {
		case 't', 'T', 'f', 'F', 'y', 'Y', 'n', 'N', '1', '0':
			return true
		}
	case 2:
		return equalFold2(cell, 'n', 'o') || equalFold2(cell, 'o', 'n')
	case 3:
		return equalFold3(cell, 'y', 'e', 's') || equalFold3(cell, 'o', 'f', 'f')
	case 4:
		return equalFoldASCII(cell, "true")
	case 5:
		return equalFoldASCII(cell, "false")
	}
	return false
}

func equalFold2(cell []byte, a, b byte) bool {
	return lowerASCII(cell[0]) == a && lowerASCII(cell[1]) == b
}

func equalFold3(cell []byte, a, b, c byte) bool {
	return lowerASCII(cell[0]) == a && lowerASCII(cell[1]) == b && lowerASCII(cell[2]) == c
}

func equalFoldASCII(cell []byte, want string) bool {
	if len(cell) != len(want) {
		return false
	}
	for i := 0; i < len(cell); i++ {
		if lowerASCII(cell[i]) != want[i] {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func hasFloatMarker(cell []byte) bool {
	for _, c := range cell {
		if c == '.' || c == 'e' || c == 'E' {
			return true
		}
	}
	return false
}

func hasDateMarker(cell []byte) bool {
	for _, c := range cell {
		if c == '-' || c == '/' || c == ':' {
			return true
		}
	}
	return false
}

// validNumericDate checks the component ranges of an XX/XX/YYYY date. The
// preferred reading is tried first; the other reading is accepted when the
// preferred one is out of range (a file with 13/04/2020 is still a date file
// even under MDY).
func validNumericDate(first, second []byte, pref DatePreference) bool {
	a := atoi2(first)
	b := atoi2(second)
	month, day := a, b
	if pref == DateDMY {
		month, day = b, a
	}
	if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
		return true
	}
	// Other reading.
	month, day = day, month
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

func atoi2(b []byte) int {
	n := 0
	for _, c := range b {
		n = n*10 + int(c-'0')
	}
	return n
}
