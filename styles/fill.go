package styles

// DefaultFillColor is the ARGB colour of a fresh fill (opaque black).
const DefaultFillColor = "FF000000"

// DefaultIndexedColor is the legacy indexed colour "system foreground".
const DefaultIndexedColor = 64

// PatternValue is the pattern of a fill.
type PatternValue string

// Fill patterns; PatternNone is the default.
const (
	PatternNone       PatternValue = "none"
	PatternSolid      PatternValue = "solid"
	PatternDarkGray   PatternValue = "darkGray"
	PatternMediumGray PatternValue = "mediumGray"
	PatternLightGray  PatternValue = "lightGray"
	PatternGray0625   PatternValue = "gray0625"
	PatternGray125    PatternValue = "gray125"
)

// FillType selects which colour of a fill a value applies to.
type FillType int

const (
	// FillColor is the visible colour of a solid fill (the pattern
	// foreground).
	FillColor FillType = iota
	// PatternColor is the colour behind the pattern (the background).
	PatternColor
)

// Fill holds the cell background of a style.
type Fill struct {
	PatternFill  PatternValue
	IndexedColor int
	InternalID   int

	backgroundColor string
	foregroundColor string
}

// NewFill returns the default fill: no pattern, black colours.
func NewFill() *Fill {
	return &Fill{
		PatternFill:     PatternNone,
		IndexedColor:    DefaultIndexedColor,
		InternalID:      NoID,
		backgroundColor: DefaultFillColor,
		foregroundColor: DefaultFillColor,
	}
}

// NewFillWithColor returns a solid fill whose colour of the given type is
// argb.
func NewFillWithColor(argb string, t FillType) (*Fill, error) {
	f := NewFill()
	if err := f.SetColor(argb, t); err != nil {
		return nil, err
	}
	return f, nil
}

var defaultFill = *NewFill()

// BackgroundColor returns the ARGB background colour.
func (f *Fill) BackgroundColor() string { return f.backgroundColor }

// SetBackgroundColor sets the ARGB background colour.
func (f *Fill) SetBackgroundColor(argb string) error {
	c, err := normalizeColor("fill background color", argb)
	if err != nil {
		return err
	}
	f.backgroundColor = c
	return nil
}

// ForegroundColor returns the ARGB foreground colour.
func (f *Fill) ForegroundColor() string { return f.foregroundColor }

// SetForegroundColor sets the ARGB foreground colour.
func (f *Fill) SetForegroundColor(argb string) error {
	c, err := normalizeColor("fill foreground color", argb)
	if err != nil {
		return err
	}
	f.foregroundColor = c
	return nil
}

// SetColor sets the colour selected by t to argb, resets the other colour
// to the default and switches the pattern to solid.
func (f *Fill) SetColor(argb string, t FillType) error {
	c, err := normalizeColor("fill color", argb)
	if err != nil {
		return err
	}
	if t == FillColor {
		f.foregroundColor, f.backgroundColor = c, DefaultFillColor
	} else {
		f.backgroundColor, f.foregroundColor = c, DefaultFillColor
	}
	f.PatternFill = PatternSolid
	return nil
}

// ID returns the InternalID.
func (f *Fill) ID() int { return f.InternalID }

// Copy returns an independent copy of f.
func (f *Fill) Copy() *Fill {
	c := *f
	return &c
}

// Equal reports whether f and o have the same content.
func (f *Fill) Equal(o *Fill) bool {
	if f == nil || o == nil {
		return f == o
	}
	a, b := *f, *o
	a.InternalID, b.InternalID = 0, 0
	return a == b
}

// Hash returns a content hash consistent with Equal.
func (f *Fill) Hash() uint64 {
	return hashFields("fill", f.PatternFill, f.IndexedColor, f.backgroundColor, f.foregroundColor)
}

// IsDefault reports whether f equals NewFill().
func (f *Fill) IsDefault() bool { return f.Equal(&defaultFill) }

// Compare orders fills by InternalID; unassigned IDs sort first.
func (f *Fill) Compare(o *Fill) int { return compareIDs(f.InternalID, o.InternalID) }

// Append copies every non-default field of o into f.
func (f *Fill) Append(o *Fill) {
	if o == nil {
		return
	}
	d := &defaultFill
	if o.PatternFill != d.PatternFill {
		f.PatternFill = o.PatternFill
	}
	if o.IndexedColor != d.IndexedColor {
		f.IndexedColor = o.IndexedColor
	}
	if o.backgroundColor != d.backgroundColor {
		f.backgroundColor = o.backgroundColor
	}
	if o.foregroundColor != d.foregroundColor {
		f.foregroundColor = o.foregroundColor
	}
}
