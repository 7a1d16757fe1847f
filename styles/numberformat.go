package styles

import (
	"fmt"

	"github.com/TsubasaBE/go-xlsx/internal/dateformat"
	"github.com/TsubasaBE/go-xlsx/xlerr"
)

// CustomFormatStart is the first numFmtId available for custom formats.
const CustomFormatStart = 164

// FormatNumber is a built-in numFmtId, or FormatCustom.
type FormatNumber int

// Built-in number formats (ECMA-376 §18.8.30) and the custom marker.
const (
	FormatGeneral FormatNumber = 0  // General
	Format1       FormatNumber = 1  // 0
	Format2       FormatNumber = 2  // 0.00
	Format3       FormatNumber = 3  // #,##0
	Format4       FormatNumber = 4  // #,##0.00
	Format5       FormatNumber = 5  // ($#,##0_);($#,##0)
	Format6       FormatNumber = 6  // ($#,##0_);[Red]($#,##0)
	Format7       FormatNumber = 7  // ($#,##0.00_);($#,##0.00)
	Format8       FormatNumber = 8  // ($#,##0.00_);[Red]($#,##0.00)
	Format9       FormatNumber = 9  // 0%
	Format10      FormatNumber = 10 // 0.00%
	Format11      FormatNumber = 11 // 0.00E+00
	Format12      FormatNumber = 12 // # ?/?
	Format13      FormatNumber = 13 // # ??/??
	Format14      FormatNumber = 14 // mm-dd-yy
	Format15      FormatNumber = 15 // d-mmm-yy
	Format16      FormatNumber = 16 // d-mmm
	Format17      FormatNumber = 17 // mmm-yy
	Format18      FormatNumber = 18 // h:mm AM/PM
	Format19      FormatNumber = 19 // h:mm:ss AM/PM
	Format20      FormatNumber = 20 // h:mm
	Format21      FormatNumber = 21 // h:mm:ss
	Format22      FormatNumber = 22 // m/d/yy h:mm
	Format37      FormatNumber = 37 // #,##0 ;(#,##0)
	Format38      FormatNumber = 38 // #,##0 ;[Red](#,##0)
	Format39      FormatNumber = 39 // #,##0.00;(#,##0.00)
	Format40      FormatNumber = 40 // #,##0.00;[Red](#,##0.00)
	Format45      FormatNumber = 45 // mm:ss
	Format46      FormatNumber = 46 // [h]:mm:ss
	Format47      FormatNumber = 47 // mmss.0
	Format48      FormatNumber = 48 // ##0.0E+0
	Format49      FormatNumber = 49 // @
	FormatCustom  FormatNumber = CustomFormatStart
)

// NumberFormat holds the number format of a style.
type NumberFormat struct {
	// Number is the built-in format, or FormatCustom when CustomFormatCode
	// applies.
	Number FormatNumber
	// CustomFormatCode is the format code of a custom format.
	CustomFormatCode string
	InternalID       int

	customFormatID int
}

// NewNumberFormat returns the default number format (General).
func NewNumberFormat() *NumberFormat {
	return &NumberFormat{
		Number:         FormatGeneral,
		InternalID:     NoID,
		customFormatID: CustomFormatStart,
	}
}

// NewCustomNumberFormat returns a custom number format with the given code.
func NewCustomNumberFormat(code string) (*NumberFormat, error) {
	if code == "" {
		return nil, fmt.Errorf("styles: custom number format code must not be empty: %w", xlerr.ErrFormat)
	}
	n := NewNumberFormat()
	n.Number = FormatCustom
	n.CustomFormatCode = code
	return n, nil
}

var defaultNumberFormat = *NewNumberFormat()

// CustomFormatID returns the numFmtId used for a custom format.
func (n *NumberFormat) CustomFormatID() int { return n.customFormatID }

// SetCustomFormatID sets the numFmtId of a custom format.  IDs below
// CustomFormatStart are reserved for built-in formats.
func (n *NumberFormat) SetCustomFormatID(id int) error {
	if id < CustomFormatStart {
		return fmt.Errorf("styles: custom format ID %d must be >= %d: %w", id, CustomFormatStart, xlerr.ErrStyle)
	}
	n.customFormatID = id
	return nil
}

// IsCustomFormat reports whether the format uses CustomFormatCode.
func (n *NumberFormat) IsCustomFormat() bool { return n.Number == FormatCustom }

// FormatID returns the numFmtId written to the style sheet.
func (n *NumberFormat) FormatID() int {
	if n.IsCustomFormat() {
		return n.customFormatID
	}
	return int(n.Number)
}

// FormatCode returns the effective format code: the custom code, or the
// code of the built-in format, or "General".
func (n *NumberFormat) FormatCode() string {
	if n.IsCustomFormat() {
		return n.CustomFormatCode
	}
	if s, ok := BuiltInNumFmt[int(n.Number)]; ok {
		return s
	}
	return "General"
}

// IsDateFormat reports whether the format renders a calendar date.
func (n *NumberFormat) IsDateFormat() bool {
	if n.IsCustomFormat() {
		return dateformat.Scan(n.CustomFormatCode).Date
	}
	id := int(n.Number)
	return dateformat.IsBuiltInDateID(id) && !dateformat.IsBuiltInTimeID(id)
}

// IsTimeFormat reports whether the format renders only a time of day or a
// duration.
func (n *NumberFormat) IsTimeFormat() bool {
	if n.IsCustomFormat() {
		tk := dateformat.Scan(n.CustomFormatCode)
		return tk.Time && !tk.Date
	}
	return dateformat.IsBuiltInTimeID(int(n.Number))
}

// ID returns the InternalID.
func (n *NumberFormat) ID() int { return n.InternalID }

// Copy returns an independent copy of n.
func (n *NumberFormat) Copy() *NumberFormat {
	c := *n
	return &c
}

// Equal reports whether n and o have the same content.  InternalID and the
// preferred custom format ID are ignored; the writer assigns the final ID.
func (n *NumberFormat) Equal(o *NumberFormat) bool {
	if n == nil || o == nil {
		return n == o
	}
	a, b := *n, *o
	a.InternalID, b.InternalID = 0, 0
	a.customFormatID, b.customFormatID = 0, 0
	return a == b
}

// Hash returns a content hash consistent with Equal.
func (n *NumberFormat) Hash() uint64 {
	return hashFields("numfmt", n.Number, n.CustomFormatCode)
}

// IsDefault reports whether n equals NewNumberFormat().
func (n *NumberFormat) IsDefault() bool { return n.Equal(&defaultNumberFormat) }

// Compare orders number formats by InternalID; unassigned IDs sort first.
func (n *NumberFormat) Compare(o *NumberFormat) int { return compareIDs(n.InternalID, o.InternalID) }

// Append copies every non-default field of o into n.
func (n *NumberFormat) Append(o *NumberFormat) {
	if o == nil {
		return
	}
	d := &defaultNumberFormat
	if o.Number != d.Number {
		n.Number = o.Number
	}
	if o.CustomFormatCode != d.CustomFormatCode {
		n.CustomFormatCode = o.CustomFormatCode
	}
	if o.customFormatID != d.customFormatID {
		n.customFormatID = o.customFormatID
	}
}
