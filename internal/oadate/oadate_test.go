package oadate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSerial1900(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want float64
	}{
		{"first day", time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), 1},
		{"before phantom leap day", time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC), 59},
		{"after phantom leap day", time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC), 61},
		{"epoch of unix", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 25569},
		{"noon", time.Date(2020, 6, 15, 12, 0, 0, 0, time.UTC), 43997.5},
		{"last day", time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC), MaxSerial1900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToSerial(tt.in, false)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestToSerialIgnoresLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	a, err := ToSerial(time.Date(2021, 3, 4, 10, 30, 0, 0, loc), false)
	require.NoError(t, err)
	b, err := ToSerial(time.Date(2021, 3, 4, 10, 30, 0, 0, time.UTC), false)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestToSerialOutOfRange(t *testing.T) {
	_, err := ToSerial(time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC), false)
	require.Error(t, err)
	_, err = ToSerial(time.Date(1903, 12, 31, 0, 0, 0, 0, time.UTC), true)
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(1900, 1, 15, 8, 0, 0, 0, time.UTC),
		time.Date(1900, 3, 1, 0, 0, 1, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 2, 29, 6, 7, 8, 0, time.UTC),
		time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	for _, date1904 := range []bool{false, true} {
		for _, want := range times {
			if date1904 && want.Year() < 1904 {
				continue
			}
			s, err := ToSerial(want, date1904)
			require.NoError(t, err)
			got, err := FromSerial(s, date1904)
			require.NoError(t, err)
			assert.Equal(t, want, got, "date1904=%v serial=%v", date1904, s)
		}
	}
}

func Test1904Offset(t *testing.T) {
	d := time.Date(2010, 5, 5, 0, 0, 0, 0, time.UTC)
	s1900, err := ToSerial(d, false)
	require.NoError(t, err)
	s1904, err := ToSerial(d, true)
	require.NoError(t, err)
	assert.InDelta(t, float64(Offset1904), s1900-s1904, 1e-9)

	got, err := FromSerial(0, true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestFromSerialEdges(t *testing.T) {
	got, err := FromSerial(0, false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = FromSerial(60, false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC), got)

	// 23:59:59.9 rounds up into the next day.
	got, err = FromSerial(100+(86399.9/86400), false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1900, 4, 10, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []float64{-1, MaxSerial1900 + 2} {
		_, err = FromSerial(bad, false)
		assert.Error(t, err, "serial %v", bad)
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want float64
	}{
		{0, 0},
		{12 * time.Hour, 0.5},
		{36 * time.Hour, 1.5},
		{6*time.Hour + 30*time.Minute, 6.5 / 24},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, DurationToSerial(tt.d), 1e-12)
		assert.Equal(t, tt.d, SerialToDuration(DurationToSerial(tt.d)))
	}
	assert.Equal(t, 1500*time.Millisecond, SerialToDuration(1.5/86400))
}
