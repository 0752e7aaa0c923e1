package sniff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCell(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want CellType
	}{
		{"empty", "", CellNull},
		{"null literal", "NULL", CellNull},
		{"na", "na", CellNull},
		{"n/a", "N/A", CellNull},
		{"nan", "NaN", CellNull},
		{"excel na", "#N/A", CellNull},
		{"excel value error", "#VALUE!", CellNull},
		{"dash", "-", CellNull},
		{"dot", ".", CellNull},

		{"zero", "0", CellUnsigned},
		{"unsigned", "12345", CellUnsigned},
		{"max unsigned digits", "1234567890123456789", CellUnsigned},
		{"too many digits", "12345678901234567890", CellText},

		{"signed", "-42", CellSigned},
		{"bare minus is null", "-", CellNull},

		{"true", "true", CellBool},
		{"FALSE", "FALSE", CellBool},
		{"yes", "Yes", CellBool},
		{"no", "no", CellBool},
		{"on", "on", CellBool},
		{"off", "OFF", CellBool},
		{"single t", "t", CellBool},
		{"single y", "Y", CellBool},
		{"digit one is unsigned", "1", CellUnsigned},

		{"float", "3.14", CellFloat},
		{"negative float", "-0.5", CellFloat},
		{"leading dot", ".5", CellFloat},
		{"scientific", "1.5e10", CellFloat},
		{"scientific negative exponent", "2E-3", CellFloat},
		{"not a float", "1.2.3", CellText},

		{"iso date", "2024-03-04", CellDate},
		{"slash iso date", "2024/03/04", CellDate},
		{"us date", "03/04/2020", CellDate},
		{"dashes us date", "03-04-2020", CellDate},
		{"invalid month both readings", "13/13/2020", CellText},

		{"iso datetime", "2024-03-04T10:30:00", CellDateTime},
		{"iso datetime space", "2024-03-04 10:30:00", CellDateTime},
		{"iso datetime zulu", "2024-03-04T10:30:00Z", CellDateTime},
		{"iso datetime offset", "2024-03-04T10:30:00+02:00", CellDateTime},
		{"iso datetime fraction", "2024-03-04T10:30:00.123456", CellDateTime},
		{"us datetime", "3/4/2020 10:30", CellDateTime},

		{"text", "hello", CellText},
		{"mixed", "12ab", CellText},
		{"email", "a@b.com", CellText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyCell([]byte(tt.cell), DateMDY)
			assert.Equal(t, tt.want, got, "cell %q", tt.cell)
		})
	}
}

func TestClassifyCellDatePreference(t *testing.T) {
	// 13/04/2020 is only valid day-first; both preferences accept it because
	// the alternate reading salvages it.
	assert.Equal(t, CellDate, ClassifyCell([]byte("13/04/2020"), DateMDY))
	assert.Equal(t, CellDate, ClassifyCell([]byte("13/04/2020"), DateDMY))

	// 03/04/2020 is valid either way.
	assert.Equal(t, CellDate, ClassifyCell([]byte("03/04/2020"), DateMDY))
	assert.Equal(t, CellDate, ClassifyCell([]byte("03/04/2020"), DateDMY))
}

func TestCellTypeString(t *testing.T) {
	assert.Equal(t, "null", CellNull.String())
	assert.Equal(t, "unsigned", CellUnsigned.String())
	assert.Equal(t, "signed", CellSigned.String())
	assert.Equal(t, "float", CellFloat.String())
	assert.Equal(t, "boolean", CellBool.String())
	assert.Equal(t, "date", CellDate.String())
	assert.Equal(t, "datetime", CellDateTime.String())
	assert.Equal(t, "text", CellText.String())
}
