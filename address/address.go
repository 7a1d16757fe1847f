// Package address implements A1-style cell coordinates and rectangular
// ranges.  Column and row numbers are 0-based throughout: column 0 is "A",
// row 0 is "1".
package address

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/TsubasaBE/go-xlsx/xlerr"
)

// Worksheet bounds as defined by Excel 2007 and later.
const (
	// MinColumn is the lowest valid 0-based column number (column "A").
	MinColumn = 0
	// MaxColumn is the highest valid 0-based column number (column "XFD").
	MaxColumn = 16383
	// MinRow is the lowest valid 0-based row number (row "1").
	MinRow = 0
	// MaxRow is the highest valid 0-based row number (row "1048576").
	MaxRow = 1048575
)

// Type controls which parts of an address are rendered with a "$" marker.
// The markers only affect the string form; two addresses that differ only
// in Type are equal.
type Type int

const (
	// Default renders a relative address such as "C4".
	Default Type = iota
	// FixedRowAndColumn renders "$C$4".
	FixedRowAndColumn
	// FixedColumn renders "$C4".
	FixedColumn
	// FixedRow renders "C$4".
	FixedRow
)

// Address is an immutable (column, row) coordinate.
type Address struct {
	Column int
	Row    int
	Type   Type
}

// New returns the relative address at the given 0-based column and row.
func New(column, row int) (Address, error) {
	return NewWithType(column, row, Default)
}

// NewWithType returns the address at column and row with the given marker
// type.
func NewWithType(column, row int, t Type) (Address, error) {
	if err := ValidateColumn(column); err != nil {
		return Address{}, err
	}
	if err := ValidateRow(row); err != nil {
		return Address{}, err
	}
	return Address{Column: column, Row: row, Type: t}, nil
}

// MustNew is like New but panics on an invalid coordinate.  It is intended
// for constants in tests and package-level variables.
func MustNew(column, row int) Address {
	a, err := New(column, row)
	if err != nil {
		panic(err)
	}
	return a
}

// Parse parses strings such as "C4", "$C$4", "c$4" or "$C4".  Parsing is
// case-insensitive and the "$" markers are preserved in the Type field.
func Parse(s string) (Address, error) {
	if s == "" {
		return Address{}, fmt.Errorf("address: empty address: %w", xlerr.ErrFormat)
	}
	i := 0
	fixedCol := false
	if s[i] == '$' {
		fixedCol = true
		i++
	}
	start := i
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	letters := s[start:i]
	fixedRow := false
	if i < len(s) && s[i] == '$' {
		fixedRow = true
		i++
	}
	digits := s[i:]
	if letters == "" || digits == "" || !allDigits(digits) {
		return Address{}, fmt.Errorf("address: %q is not a valid cell address: %w", s, xlerr.ErrFormat)
	}
	col, err := LettersToColumn(letters)
	if err != nil {
		return Address{}, err
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Address{}, fmt.Errorf("address: row of %q: %w", s, xlerr.ErrRange)
	}
	t := Default
	switch {
	case fixedCol && fixedRow:
		t = FixedRowAndColumn
	case fixedCol:
		t = FixedColumn
	case fixedRow:
		t = FixedRow
	}
	return NewWithType(col, n-1, t)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the address in A1 notation, honouring the "$" markers.
func (a Address) String() string {
	var b strings.Builder
	if a.Type == FixedColumn || a.Type == FixedRowAndColumn {
		b.WriteByte('$')
	}
	b.WriteString(columnLetters(a.Column))
	if a.Type == FixedRow || a.Type == FixedRowAndColumn {
		b.WriteByte('$')
	}
	b.WriteString(strconv.Itoa(a.Row + 1))
	return b.String()
}

// GetAddress is an alias of String.
func (a Address) GetAddress() string { return a.String() }

// Key returns the relative form of the address ("C4"), used as the map key
// of worksheet cells regardless of the marker type.
func (a Address) Key() string {
	return columnLetters(a.Column) + strconv.Itoa(a.Row+1)
}

// ColumnLetters returns the column part of the address ("C" for column 2).
func (a Address) ColumnLetters() string { return columnLetters(a.Column) }

// Equal reports whether a and b refer to the same cell.  The marker type is
// ignored.
func (a Address) Equal(b Address) bool {
	return a.Column == b.Column && a.Row == b.Row
}

// Compare orders addresses row-major: by row first, then by column.  It
// returns -1, 0 or +1.
func (a Address) Compare(b Address) int {
	switch {
	case a.Row < b.Row:
		return -1
	case a.Row > b.Row:
		return 1
	case a.Column < b.Column:
		return -1
	case a.Column > b.Column:
		return 1
	}
	return 0
}

// Relative returns a copy of a without "$" markers.
func (a Address) Relative() Address {
	a.Type = Default
	return a
}

// ValidateColumn returns an ErrRange error when column is outside
// [MinColumn, MaxColumn].
func ValidateColumn(column int) error {
	if column < MinColumn || column > MaxColumn {
		return fmt.Errorf("address: column number %d out of range [%d, %d]: %w", column, MinColumn, MaxColumn, xlerr.ErrRange)
	}
	return nil
}

// ValidateRow returns an ErrRange error when row is outside
// [MinRow, MaxRow].
func ValidateRow(row int) error {
	if row < MinRow || row > MaxRow {
		return fmt.Errorf("address: row number %d out of range [%d, %d]: %w", row, MinRow, MaxRow, xlerr.ErrRange)
	}
	return nil
}

// ColumnToLetters converts a 0-based column number to its letters
// (0 → "A", 25 → "Z", 26 → "AA").
func ColumnToLetters(column int) (string, error) {
	if err := ValidateColumn(column); err != nil {
		return "", err
	}
	return columnLetters(column), nil
}

// LettersToColumn converts column letters ("A", "xfd") to a 0-based column
// number.
func LettersToColumn(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("address: empty column letters: %w", xlerr.ErrFormat)
	}
	n := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if !isLetter(c) {
			return 0, fmt.Errorf("address: %q is not a valid column: %w", letters, xlerr.ErrFormat)
		}
		n = n*26 + int(upper(c)-'A'+1)
		if n > MaxColumn+1 {
			return 0, fmt.Errorf("address: column %q out of range: %w", letters, xlerr.ErrRange)
		}
	}
	return n - 1, nil
}

// columnLetters renders column without validation.
func columnLetters(column int) string {
	var buf [8]byte
	i := len(buf)
	n := column + 1
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

func isLetter(c byte) bool { return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' }

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
