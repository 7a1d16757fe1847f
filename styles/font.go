package styles

import (
	"fmt"
	"math"

	"github.com/TsubasaBE/go-xlsx/xlerr"
)

// Font size bounds in points.  Sizes outside the interval are clamped.
const (
	MinFontSize = 1
	MaxFontSize = 409
)

// Default font settings.
const (
	DefaultFontName      = "Calibri"
	DefaultMajorFontName = "Calibri Light"
	DefaultFontSize      = 11
	DefaultFontFamily    = "2"
	DefaultFontTheme     = 1
)

// UnderlineValue is the underline style of a font.
type UnderlineValue string

// Underline styles; UnderlineNone is the default.
const (
	UnderlineNone             UnderlineValue = ""
	UnderlineSingle           UnderlineValue = "single"
	UnderlineDouble           UnderlineValue = "double"
	UnderlineSingleAccounting UnderlineValue = "singleAccounting"
	UnderlineDoubleAccounting UnderlineValue = "doubleAccounting"
)

// VerticalTextAlignValue places text on, above or below the baseline.
type VerticalTextAlignValue string

// Vertical text alignments.
const (
	VerticalTextNone        VerticalTextAlignValue = ""
	VerticalTextSubscript   VerticalTextAlignValue = "subscript"
	VerticalTextSuperscript VerticalTextAlignValue = "superscript"
)

// SchemeValue links a font to the theme's major or minor font.
type SchemeValue string

// Font schemes.
const (
	SchemeNone  SchemeValue = ""
	SchemeMajor SchemeValue = "major"
	SchemeMinor SchemeValue = "minor"
)

// Font holds the font attributes of a style.
type Font struct {
	Bold          bool
	Italic        bool
	Strike        bool
	Outline       bool
	Shadow        bool
	Condense      bool
	Extend        bool
	Underline     UnderlineValue
	VerticalAlign VerticalTextAlignValue
	// Family is the font family number ("2" is Swiss/sans-serif).
	Family string
	// ColorTheme is the theme colour index; 0 means "not set".
	ColorTheme int
	// Charset is the character set number as a string; empty means default.
	Charset string
	Scheme  SchemeValue
	// InternalID is assigned when the style sheet is written.
	InternalID int

	name       string
	size       float64
	colorValue string
}

// NewFont returns the default font: Calibri 11pt, minor scheme, theme colour 1.
func NewFont() *Font {
	return &Font{
		Family:     DefaultFontFamily,
		ColorTheme: DefaultFontTheme,
		Scheme:     SchemeMinor,
		InternalID: NoID,
		name:       DefaultFontName,
		size:       DefaultFontSize,
	}
}

var defaultFont = *NewFont()

// Name returns the font name.
func (f *Font) Name() string { return f.name }

// SetName sets the font name.  The name must not be empty.  The scheme
// follows the name: the default font selects the minor scheme, its "Light"
// variant the major scheme, and any other name no scheme.
func (f *Font) SetName(name string) error {
	if name == "" {
		return fmt.Errorf("styles: font name must not be empty: %w", xlerr.ErrStyle)
	}
	f.name = name
	f.Scheme = schemeFor(name)
	return nil
}

func schemeFor(name string) SchemeValue {
	switch name {
	case DefaultFontName:
		return SchemeMinor
	case DefaultMajorFontName:
		return SchemeMajor
	}
	return SchemeNone
}

// Size returns the font size in points.
func (f *Font) Size() float64 { return f.size }

// SetSize sets the font size in points, clamped to [MinFontSize,
// MaxFontSize].  NaN resets the size to DefaultFontSize.
func (f *Font) SetSize(size float64) {
	if math.IsNaN(size) {
		f.size = DefaultFontSize
		return
	}
	f.size = min(max(size, MinFontSize), MaxFontSize)
}

// ColorValue returns the ARGB font colour, or "" when the theme colour
// applies.
func (f *Font) ColorValue() string { return f.colorValue }

// SetColorValue sets the ARGB font colour ("FFFF0000").  An empty string
// clears it.
func (f *Font) SetColorValue(argb string) error {
	c, err := normalizeColor("font color", argb)
	if err != nil {
		return err
	}
	f.colorValue = c
	return nil
}

// ID returns the InternalID.
func (f *Font) ID() int { return f.InternalID }

// Copy returns an independent copy of f.
func (f *Font) Copy() *Font {
	c := *f
	return &c
}

// Equal reports whether f and o have the same content.  InternalID is
// ignored.
func (f *Font) Equal(o *Font) bool {
	if f == nil || o == nil {
		return f == o
	}
	a, b := *f, *o
	a.InternalID, b.InternalID = 0, 0
	return a == b
}

// Hash returns a content hash consistent with Equal.
func (f *Font) Hash() uint64 {
	return hashFields("font", f.Bold, f.Italic, f.Strike, f.Outline, f.Shadow, f.Condense, f.Extend,
		f.Underline, f.VerticalAlign, f.Family, f.ColorTheme, f.Charset, f.Scheme,
		f.name, f.size, f.colorValue)
}

// IsDefault reports whether f equals NewFont().
func (f *Font) IsDefault() bool { return f.Equal(&defaultFont) }

// Compare orders fonts by InternalID; unassigned IDs sort first.
func (f *Font) Compare(o *Font) int { return compareIDs(f.InternalID, o.InternalID) }

// Append copies every field of o that differs from the default font into f.
// Fields of o at their default value leave f unchanged.  A nil o is a no-op.
func (f *Font) Append(o *Font) {
	if o == nil {
		return
	}
	d := &defaultFont
	if o.Bold != d.Bold {
		f.Bold = o.Bold
	}
	if o.Italic != d.Italic {
		f.Italic = o.Italic
	}
	if o.Strike != d.Strike {
		f.Strike = o.Strike
	}
	if o.Outline != d.Outline {
		f.Outline = o.Outline
	}
	if o.Shadow != d.Shadow {
		f.Shadow = o.Shadow
	}
	if o.Condense != d.Condense {
		f.Condense = o.Condense
	}
	if o.Extend != d.Extend {
		f.Extend = o.Extend
	}
	if o.Underline != d.Underline {
		f.Underline = o.Underline
	}
	if o.VerticalAlign != d.VerticalAlign {
		f.VerticalAlign = o.VerticalAlign
	}
	if o.Family != d.Family {
		f.Family = o.Family
	}
	if o.ColorTheme != d.ColorTheme {
		f.ColorTheme = o.ColorTheme
	}
	if o.Charset != d.Charset {
		f.Charset = o.Charset
	}
	if o.Scheme != d.Scheme {
		f.Scheme = o.Scheme
	}
	if o.name != d.name {
		f.name = o.name
	}
	if o.size != d.size {
		f.size = o.size
	}
	if o.colorValue != d.colorValue {
		f.colorValue = o.colorValue
	}
}
