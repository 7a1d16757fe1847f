package dateformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScan(t *testing.T) {
	tests := []struct {
		code string
		want Tokens
	}{
		{"yyyy-mm-dd", Tokens{Date: true}},
		{"hh:mm:ss", Tokens{Time: true}},
		{"dd/mm/yyyy hh:mm", Tokens{Date: true, Time: true}},
		{"[h]:mm", Tokens{Time: true}},
		{"0.00", Tokens{}},
		{"0.00E+00", Tokens{}},
		{`"day" 0`, Tokens{}},
		{`\d0`, Tokens{}},
		{"[Red]#,##0", Tokens{}},
		{"mmm-yy", Tokens{Date: true}},
		{"General", Tokens{}},
		{"[White]0.0", Tokens{}},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.want, Scan(tc.code))
			assert.Equal(t, tc.want.Any(), ScanFormatStr(tc.code))
		})
	}
}

func TestBuiltIn(t *testing.T) {
	for _, id := range []int{14, 15, 16, 17, 22} {
		assert.True(t, IsBuiltInDateID(id), id)
		assert.False(t, IsBuiltInTimeID(id), id)
	}
	for _, id := range []int{18, 19, 20, 21, 45, 46, 47} {
		assert.True(t, IsBuiltInDateID(id), id)
		assert.True(t, IsBuiltInTimeID(id), id)
	}
	for _, id := range []int{0, 1, 2, 9, 49, 164} {
		assert.False(t, IsBuiltInDateID(id), id)
	}
}
