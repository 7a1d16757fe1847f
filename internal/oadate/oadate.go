// Package oadate converts between Go time values and spreadsheet serial
// numbers (OLE Automation dates): days since the epoch of the workbook's
// date system, with the time of day as the fractional part.
package oadate

import (
	"fmt"
	"math"
	"time"
)

// Serial bounds of the 1900 date system.  MaxSerial1900 is 9999-12-31.
const (
	MaxSerial1900 = 2_958_465
	// Offset1904 is the number of days between the epochs of the 1900 and
	// 1904 date systems.
	Offset1904 = 1462
)

var (
	epoch1900 = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	epoch1904 = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
	minDate   = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	maxDate   = time.Date(9999, 12, 31, 23, 59, 59, 999_999_999, time.UTC)
)

const secondsPerDay = 24 * 60 * 60

// ToSerial converts t to a serial number.  Only the wall clock of t is used;
// the location is ignored.  In the 1900 system serials from 61 on include
// the phantom 1900-02-29 that spreadsheets inherited from Lotus 1-2-3.
func ToSerial(t time.Time, date1904 bool) (float64, error) {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	lo := minDate
	if date1904 {
		lo = epoch1904
	}
	if wall.Before(lo) || wall.After(maxDate) {
		return 0, fmt.Errorf("oadate: %s is outside the supported range %s..%s",
			wall.Format(time.DateTime), lo.Format(time.DateOnly), maxDate.Format(time.DateOnly))
	}
	midnight := time.Date(wall.Year(), wall.Month(), wall.Day(), 0, 0, 0, 0, time.UTC)
	frac := wall.Sub(midnight).Seconds() / secondsPerDay
	// Spans of several centuries overflow time.Duration, so whole days are
	// counted on Unix seconds.
	if date1904 {
		return float64((midnight.Unix()-epoch1904.Unix())/secondsPerDay) + frac, nil
	}
	days := (midnight.Unix() - epoch1900.Unix()) / secondsPerDay
	if days >= 60 {
		days++
	}
	return float64(days) + frac, nil
}

// FromSerial converts a serial number to a UTC time.  Fractions of a day are
// rounded to the nearest second.
func FromSerial(serial float64, date1904 bool) (time.Time, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, fmt.Errorf("oadate: invalid serial %v", serial)
	}
	if serial < 0 {
		return time.Time{}, fmt.Errorf("oadate: negative serial %v not supported", serial)
	}
	maxSerial := float64(MaxSerial1900 + 1)
	if date1904 {
		maxSerial -= Offset1904
	}
	if serial > maxSerial {
		return time.Time{}, fmt.Errorf("oadate: serial %v exceeds maximum supported value %v", serial, maxSerial)
	}

	fracSec, rollover := fracSeconds(serial)
	day := int(serial) + rollover
	tod := time.Duration(fracSec) * time.Second
	if date1904 {
		return epoch1904.AddDate(0, 0, day).Add(tod), nil
	}
	switch {
	case day == 0:
		return minDate.Add(tod), nil
	case day >= 61:
		day--
	}
	return epoch1900.AddDate(0, 0, day).Add(tod), nil
}

// DurationToSerial converts d to a fraction of days.
func DurationToSerial(d time.Duration) float64 {
	return d.Seconds() / secondsPerDay
}

// SerialToDuration converts a fraction of days to a duration rounded to the
// nearest millisecond.
func SerialToDuration(serial float64) time.Duration {
	return time.Duration(math.Round(serial*secondsPerDay*1000)) * time.Millisecond
}

// fracSeconds returns the time of day of serial in whole seconds together
// with a day rollover of 0 or 1 when rounding reaches midnight.
func fracSeconds(serial float64) (int64, int) {
	const roundEpsilon = 1e-9
	fracDay := serial - math.Trunc(serial) + roundEpsilon
	nanos := time.Duration(fracDay * secondsPerDay * 1e9)
	secs := int64(nanos / time.Second)
	if nanos%time.Second > 500*time.Millisecond {
		secs++
	}
	return secs % secondsPerDay, int(secs / secondsPerDay)
}
