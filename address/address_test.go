package address_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TsubasaBE/go-xlsx/address"
	"github.com/TsubasaBE/go-xlsx/xlerr"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		col    int
		row    int
		typ    address.Type
		render string
	}{
		{"A1", 0, 0, address.Default, "A1"},
		{"c4", 2, 3, address.Default, "C4"},
		{"$C$4", 2, 3, address.FixedRowAndColumn, "$C$4"},
		{"$C4", 2, 3, address.FixedColumn, "$C4"},
		{"C$4", 2, 3, address.FixedRow, "C$4"},
		{"Z10", 25, 9, address.Default, "Z10"},
		{"AA1", 26, 0, address.Default, "AA1"},
		{"XFD1048576", address.MaxColumn, address.MaxRow, address.Default, "XFD1048576"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			a, err := address.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.col, a.Column)
			assert.Equal(t, tc.row, a.Row)
			assert.Equal(t, tc.typ, a.Type)
			assert.Equal(t, tc.render, a.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in   string
		kind error
	}{
		{"", xlerr.ErrFormat},
		{"A", xlerr.ErrFormat},
		{"11", xlerr.ErrFormat},
		{"A1B", xlerr.ErrFormat},
		{"$$A1", xlerr.ErrFormat},
		{"A-1", xlerr.ErrFormat},
		{"A0", xlerr.ErrRange},
		{"XFE1", xlerr.ErrRange},
		{"A1048577", xlerr.ErrRange},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			_, err := address.Parse(tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestNewBounds(t *testing.T) {
	_, err := address.New(-1, 0)
	assert.ErrorIs(t, err, xlerr.ErrRange)
	_, err = address.New(address.MaxColumn+1, 0)
	assert.ErrorIs(t, err, xlerr.ErrRange)
	_, err = address.New(0, -1)
	assert.ErrorIs(t, err, xlerr.ErrRange)
	_, err = address.New(0, address.MaxRow+1)
	assert.ErrorIs(t, err, xlerr.ErrRange)

	a, err := address.New(address.MaxColumn, address.MaxRow)
	require.NoError(t, err)
	assert.Equal(t, "XFD1048576", a.String())
}

func TestRoundTrip(t *testing.T) {
	for _, col := range []int{0, 1, 25, 26, 27, 51, 52, 701, 702, 703, 16383} {
		for _, row := range []int{0, 1, 99, 1048575} {
			a := address.MustNew(col, row)
			b, err := address.Parse(a.GetAddress())
			require.NoError(t, err)
			assert.True(t, a.Equal(b), "%v != %v", a, b)
		}
	}
}

func TestEqualityIgnoresMarkers(t *testing.T) {
	a := address.MustParse("$B$2")
	b := address.MustParse("B2")
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.String(), b.String())
	assert.Equal(t, b, a.Relative())
}

func TestColumnLetters(t *testing.T) {
	tests := map[int]string{0: "A", 25: "Z", 26: "AA", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA", 16383: "XFD"}
	for col, letters := range tests {
		got, err := address.ColumnToLetters(col)
		require.NoError(t, err)
		assert.Equal(t, letters, got)
		back, err := address.LettersToColumn(letters)
		require.NoError(t, err)
		assert.Equal(t, col, back)
	}
	_, err := address.ColumnToLetters(-1)
	assert.ErrorIs(t, err, xlerr.ErrRange)
	_, err = address.LettersToColumn("A1")
	assert.ErrorIs(t, err, xlerr.ErrFormat)
	_, err = address.LettersToColumn("")
	assert.ErrorIs(t, err, xlerr.ErrFormat)
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, address.MustParse("B1").Compare(address.MustParse("A2")))
	assert.Equal(t, 1, address.MustParse("B2").Compare(address.MustParse("A2")))
	assert.Equal(t, 0, address.MustParse("$B$2").Compare(address.MustParse("B2")))
}
