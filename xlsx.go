// Package xlsx builds, reads and writes Office Open XML spreadsheets
// (.xlsx) in pure Go.  No cgo is required.
//
// # Quick start
//
//	wb, err := xlsx.New("Sheet1")
//	if err != nil { ... }
//	ws := wb.CurrentWorksheet()
//
//	ws.AddNextCell("Name", styles.Bold())
//	ws.AddNextCell(42, nil)
//	ws.GoToNextRow(1, false)
//
//	if err := wb.Save("Book1.xlsx"); err != nil { ... }
//
// Cells are written at a cursor that advances after every insert, either
// along the row or down the column depending on the worksheet's
// [worksheet.CellDirection].  Explicit addresses work as well:
//
//	ws.AddCellAt(time.Now(), "C3", nil)
//	ws.AddCellFormulaAt("SUM(B1:B10)", "B11", nil)
//
// # Styles
//
// Styles are composed of font, fill, border, alignment and number format
// components.  Every style attached to a cell is registered in the
// workbook's [styles.Repository], which deduplicates equal styles so that
// cells styled alike share one instance.
//
// # Reading
//
// [Open] and [OpenReader] load a package back into the same model.  Values
// are restored with their types: numbers under a date format become
// [time.Time], under a time format [time.Duration].
//
// # Dates
//
// Spreadsheets store dates as serial day numbers.  [ConvertDate],
// [ConvertDateEx] and [DateToSerial] convert between the two forms in either
// of the 1900 and 1904 date systems.  [IsDateFormat] tells whether a number
// format renders a calendar date.
package xlsx

import (
	"fmt"
	"io"
	"time"

	"github.com/TsubasaBE/go-xlsx/internal/dateformat"
	"github.com/TsubasaBE/go-xlsx/internal/oadate"
	"github.com/TsubasaBE/go-xlsx/styles"
	"github.com/TsubasaBE/go-xlsx/workbook"
)

// Version is the current version of the go-xlsx library.
const Version = "0.1.0"

// New returns an empty workbook.  A non-empty sheetName adds a first
// worksheet of that name and makes it current.
func New(sheetName string) (*workbook.Workbook, error) {
	return workbook.New(sheetName)
}

// Open reads the named .xlsx file.
func Open(name string) (*workbook.Workbook, error) {
	return workbook.Open(name)
}

// OpenReader reads an .xlsx workbook from an arbitrary [io.ReaderAt].
// size must equal the total byte length of the data.
func OpenReader(r io.ReaderAt, size int64) (*workbook.Workbook, error) {
	return workbook.OpenReader(r, size)
}

// ConvertDate converts a serial number of the 1900 date system to a
// [time.Time].  Serial 60 is the phantom 1900-02-29 inherited from Lotus
// 1-2-3 and yields 1900-03-01, like serial 61.  The time of day is rounded
// to the nearest second.
func ConvertDate(serial float64) (time.Time, error) {
	return ConvertDateEx(serial, false)
}

// ConvertDateEx converts a serial number to a [time.Time] in the given date
// system.  Pass wb.Date1904 so the workbook's own system is used.
func ConvertDateEx(serial float64, date1904 bool) (time.Time, error) {
	t, err := oadate.FromSerial(serial, date1904)
	if err != nil {
		return time.Time{}, fmt.Errorf("xlsx: ConvertDateEx: %w", err)
	}
	return t, nil
}

// DateToSerial converts t to a serial number of the given date system.
// Dates before the start of the system or after 9999-12-31 are rejected.
func DateToSerial(t time.Time, date1904 bool) (float64, error) {
	s, err := oadate.ToSerial(t, date1904)
	if err != nil {
		return 0, fmt.Errorf("xlsx: DateToSerial: %w", err)
	}
	return s, nil
}

// IsDateFormat reports whether a number format renders a calendar date.
//
// id is the numFmtId of the cell format.  For built-in formats (id < 164)
// code is ignored; for custom formats code must be the format code.
// Formats that only carry a time of day or an elapsed duration, such as
// built-in IDs 18–21 and 45–47 or a custom "hh:mm", are not date formats.
func IsDateFormat(id int, code string) bool {
	if id < styles.CustomFormatStart {
		return dateformat.IsBuiltInDateID(id) && !dateformat.IsBuiltInTimeID(id)
	}
	return dateformat.Scan(code).Date
}
