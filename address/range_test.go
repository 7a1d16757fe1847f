package address_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TsubasaBE/go-xlsx/address"
	"github.com/TsubasaBE/go-xlsx/xlerr"
)

func TestParseRangeNormalises(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A1:C3", "A1:C3"},
		{"C3:A1", "A1:C3"},
		{"A3:C1", "A1:C3"},
		{"c1:a3", "A1:C3"},
		{"B2", "B2:B2"},
		{"$A$1:$C$3", "$A$1:$C$3"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			r, err := address.ParseRange(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, r.String())
		})
	}
}

func TestParseRangeErrors(t *testing.T) {
	for _, in := range []string{"", ":", "A1:", ":B2", "A1:B", "A1-B2"} {
		_, err := address.ParseRange(in)
		assert.ErrorIs(t, err, xlerr.ErrFormat, in)
	}
	_, err := address.ParseRange("A1:XFE2")
	assert.ErrorIs(t, err, xlerr.ErrRange)
}

func TestRangeSymmetry(t *testing.T) {
	a := address.MustParse("D7")
	b := address.MustParse("B2")
	assert.True(t, address.NewRange(a, b).Equal(address.NewRange(b, a)))
	assert.True(t, address.MustParseRange("$B$2:D7").Equal(address.MustParseRange("B2:D7")))
}

func TestAddresses(t *testing.T) {
	r := address.MustParseRange("B2:C4")
	got := r.Addresses()
	require.Len(t, got, 6)
	assert.Equal(t, r.Width()*r.Height(), len(got))
	want := []string{"B2", "B3", "B4", "C2", "C3", "C4"}
	for i, a := range got {
		assert.Equal(t, want[i], a.String())
	}

	single := address.MustParseRange("E5")
	assert.Len(t, single.ResolveEnclosedAddresses(), 1)

	var n int
	for range address.MustParseRange("A1:J10").All() {
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)
}

func TestContainsOverlaps(t *testing.T) {
	r := address.MustParseRange("B2:D4")
	assert.True(t, r.Contains(address.MustParse("C3")))
	assert.True(t, r.Contains(address.MustParse("D4")))
	assert.False(t, r.Contains(address.MustParse("E4")))

	assert.True(t, r.Overlaps(address.MustParseRange("D4:F6")))
	assert.False(t, r.Overlaps(address.MustParseRange("E1:F6")))
	assert.False(t, r.Overlaps(address.MustParseRange("A5:D5")))
}
