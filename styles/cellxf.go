package styles

import (
	"fmt"

	"github.com/TsubasaBE/go-xlsx/xlerr"
)

// VerticalTextRotation is the text rotation value that stacks characters
// vertically.
const VerticalTextRotation = 255

// HorizontalAlignValue is the horizontal alignment of cell content.
type HorizontalAlignValue string

// Horizontal alignments; HorizontalNone is the default.
const (
	HorizontalNone             HorizontalAlignValue = ""
	HorizontalGeneral          HorizontalAlignValue = "general"
	HorizontalLeft             HorizontalAlignValue = "left"
	HorizontalCenter           HorizontalAlignValue = "center"
	HorizontalRight            HorizontalAlignValue = "right"
	HorizontalFill             HorizontalAlignValue = "fill"
	HorizontalJustify          HorizontalAlignValue = "justify"
	HorizontalCenterContinuous HorizontalAlignValue = "centerContinuous"
	HorizontalDistributed      HorizontalAlignValue = "distributed"
)

// VerticalAlignValue is the vertical alignment of cell content.
type VerticalAlignValue string

// Vertical alignments; VerticalNone is the default.
const (
	VerticalNone        VerticalAlignValue = ""
	VerticalTop         VerticalAlignValue = "top"
	VerticalCenter      VerticalAlignValue = "center"
	VerticalBottom      VerticalAlignValue = "bottom"
	VerticalJustify     VerticalAlignValue = "justify"
	VerticalDistributed VerticalAlignValue = "distributed"
)

// TextBreakValue controls how overflowing text is handled.
type TextBreakValue string

// Text break modes; TextBreakNone is the default.
const (
	TextBreakNone        TextBreakValue = ""
	TextBreakShrinkToFit TextBreakValue = "shrinkToFit"
	TextBreakWrapText    TextBreakValue = "wrapText"
)

// TextDirectionValue is the direction text runs in.
type TextDirectionValue int

// Text directions.
const (
	TextHorizontal TextDirectionValue = iota
	TextVertical
)

// CellXf holds alignment and protection attributes of a style.
type CellXf struct {
	HorizontalAlign HorizontalAlignValue
	VerticalAlign   VerticalAlignValue
	Alignment       TextBreakValue
	Locked          bool
	Hidden          bool
	// ForceApplyAlignment writes applyAlignment="1" even when no alignment
	// attribute is set.
	ForceApplyAlignment bool
	InternalID          int

	textDirection TextDirectionValue
	textRotation  int
	indent        int
}

// NewCellXf returns the default cell format.
func NewCellXf() *CellXf {
	return &CellXf{InternalID: NoID}
}

var defaultCellXf = *NewCellXf()

// TextDirection returns the text direction.
func (x *CellXf) TextDirection() TextDirectionValue { return x.textDirection }

// SetTextDirection sets the text direction.  TextVertical forces the text
// rotation to VerticalTextRotation; switching back to TextHorizontal resets
// a vertical rotation to 0.
func (x *CellXf) SetTextDirection(d TextDirectionValue) {
	x.textDirection = d
	switch {
	case d == TextVertical:
		x.textRotation = VerticalTextRotation
	case x.textRotation == VerticalTextRotation:
		x.textRotation = 0
	}
}

// TextRotation returns the text rotation in degrees, or
// VerticalTextRotation.
func (x *CellXf) TextRotation() int { return x.textRotation }

// SetTextRotation sets the rotation in degrees.  Valid values are -90..90
// and VerticalTextRotation.
func (x *CellXf) SetTextRotation(degrees int) error {
	if degrees != VerticalTextRotation && (degrees < -90 || degrees > 90) {
		return fmt.Errorf("styles: text rotation %d must be within [-90, 90] or %d: %w",
			degrees, VerticalTextRotation, xlerr.ErrFormat)
	}
	x.textRotation = degrees
	if degrees == VerticalTextRotation {
		x.textDirection = TextVertical
	} else {
		x.textDirection = TextHorizontal
	}
	return nil
}

// InternalRotation returns the rotation as stored in a style sheet, where
// negative angles -1..-90 map to 91..180.
func (x *CellXf) InternalRotation() int {
	if x.textRotation < 0 {
		return 90 - x.textRotation
	}
	return x.textRotation
}

// RotationFromInternal converts a stored textRotation attribute back to
// degrees.
func RotationFromInternal(v int) int {
	if v > 90 && v <= 180 {
		return 90 - v
	}
	return v
}

// Indent returns the indentation level.
func (x *CellXf) Indent() int { return x.indent }

// SetIndent sets the indentation level, which must not be negative.
func (x *CellXf) SetIndent(indent int) error {
	if indent < 0 {
		return fmt.Errorf("styles: indent %d must not be negative: %w", indent, xlerr.ErrStyle)
	}
	x.indent = indent
	return nil
}

// HasAlignment reports whether any alignment attribute deviates from the
// default, so that an alignment element has to be written.
func (x *CellXf) HasAlignment() bool {
	return x.HorizontalAlign != HorizontalNone || x.VerticalAlign != VerticalNone ||
		x.Alignment != TextBreakNone || x.textRotation != 0 || x.indent != 0 ||
		x.ForceApplyAlignment
}

// ID returns the InternalID.
func (x *CellXf) ID() int { return x.InternalID }

// Copy returns an independent copy of x.
func (x *CellXf) Copy() *CellXf {
	c := *x
	return &c
}

// Equal reports whether x and o have the same content.
func (x *CellXf) Equal(o *CellXf) bool {
	if x == nil || o == nil {
		return x == o
	}
	a, b := *x, *o
	a.InternalID, b.InternalID = 0, 0
	return a == b
}

// Hash returns a content hash consistent with Equal.
func (x *CellXf) Hash() uint64 {
	return hashFields("cellxf", x.HorizontalAlign, x.VerticalAlign, x.Alignment, x.Locked, x.Hidden,
		x.ForceApplyAlignment, x.textDirection, x.textRotation, x.indent)
}

// IsDefault reports whether x equals NewCellXf().
func (x *CellXf) IsDefault() bool { return x.Equal(&defaultCellXf) }

// Compare orders cell formats by InternalID; unassigned IDs sort first.
func (x *CellXf) Compare(o *CellXf) int { return compareIDs(x.InternalID, o.InternalID) }

// Append copies every non-default field of o into x.
func (x *CellXf) Append(o *CellXf) {
	if o == nil {
		return
	}
	d := &defaultCellXf
	if o.HorizontalAlign != d.HorizontalAlign {
		x.HorizontalAlign = o.HorizontalAlign
	}
	if o.VerticalAlign != d.VerticalAlign {
		x.VerticalAlign = o.VerticalAlign
	}
	if o.Alignment != d.Alignment {
		x.Alignment = o.Alignment
	}
	if o.Locked != d.Locked {
		x.Locked = o.Locked
	}
	if o.Hidden != d.Hidden {
		x.Hidden = o.Hidden
	}
	if o.ForceApplyAlignment != d.ForceApplyAlignment {
		x.ForceApplyAlignment = o.ForceApplyAlignment
	}
	// Direction and rotation move together; a vertical direction always
	// carries VerticalTextRotation.
	if o.textRotation != d.textRotation || o.textDirection != d.textDirection {
		x.textRotation = o.textRotation
		x.textDirection = o.textDirection
	}
	if o.indent != d.indent {
		x.indent = o.indent
	}
}
