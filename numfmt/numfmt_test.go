package numfmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatValueScalars(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"true", true, "TRUE"},
		{"false", false, "FALSE"},
		{"integer float", 42.0, "42"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"uint8", uint8(128), "128"},
		{"fraction", 0.25, "0.25"},
		{"other", struct{ A int }{3}, "{3}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.v, 0, "", false))
		})
	}
}

func TestFormatValueNumbers(t *testing.T) {
	tests := []struct {
		name string
		v    any
		id   int
		code string
		want string
	}{
		{"thousands", 1234.5, 4, "", "1,234.50"},
		{"two decimals", 3.14159, 2, "", "3.14"},
		{"round", 2.6, 1, "", "3"},
		{"percent", 0.5, 9, "", "50%"},
		{"float32", float32(0.5), 9, "", "50%"},
		{"custom", 7.0, 164, "000", "007"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.v, tt.id, tt.code, false))
		})
	}
}

func TestFormatValueDates(t *testing.T) {
	d := time.Date(2024, 3, 5, 13, 5, 9, 0, time.UTC)
	tests := []struct {
		name string
		v    any
		id   int
		code string
		want string
	}{
		{"builtin date", d, 14, "", "03-05-24"},
		{"custom date", d, 164, "yyyy-mm-dd", "2024-03-05"},
		{"builtin time", d, 21, "", "13:05:09"},
		{"elapsed duration", 36 * time.Hour, 46, "", "36:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.v, tt.id, tt.code, false))
		})
	}
}

func TestFormatValueDateSystems(t *testing.T) {
	d := time.Date(2010, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2010-07-01", FormatValue(d, 164, "yyyy-mm-dd", false))
	assert.Equal(t, "2010-07-01", FormatValue(d, 164, "yyyy-mm-dd", true))

	// The same raw serial is four years and a day apart in the two systems.
	assert.Equal(t, "1904-01-02", FormatValue(1.0, 164, "yyyy-mm-dd", true))
	assert.Equal(t, "1900-01-01", FormatValue(1.0, 164, "yyyy-mm-dd", false))
}

func TestIsDateFormat(t *testing.T) {
	assert.True(t, isDateFormat(14, ""))
	assert.True(t, isDateFormat(20, ""))
	assert.False(t, isDateFormat(2, "0.00"))
	assert.True(t, isDateFormat(0, "dd/mm/yyyy"))
	assert.False(t, isDateFormat(0, "General"))
	assert.True(t, isDateFormat(170, "hh:mm"))
	assert.False(t, isDateFormat(170, `"day"0`))
}
