// Package xlerr declares the error kinds returned by every package of
// go-xlsx.  Errors are created with fmt.Errorf and wrap exactly one of the
// sentinels below, so callers classify them with errors.Is:
//
//	if _, err := address.New(20000, 0); errors.Is(err, xlerr.ErrRange) {
//	    ...
//	}
package xlerr

import "errors"

var (
	// ErrRange reports a numeric value outside its legal interval, such as a
	// column beyond XFD or a zoom factor above 400.
	ErrRange = errors.New("value out of range")

	// ErrFormat reports a string that cannot be parsed into the expected
	// structure (address, range, worksheet name) or a required string that
	// is empty.
	ErrFormat = errors.New("invalid format")

	// ErrStyle reports a style component that failed validation or a style
	// whose component graph is incomplete.
	ErrStyle = errors.New("invalid style")

	// ErrWorksheet reports an operation that is structurally invalid in the
	// context of a worksheet or workbook.
	ErrWorksheet = errors.New("invalid worksheet operation")
)
