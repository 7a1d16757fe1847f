package styles

import (
	"fmt"

	"github.com/TsubasaBE/go-xlsx/xlerr"
)

// BorderStyle is the line style of one border edge.
type BorderStyle string

// Border line styles; BorderNone is the default.
const (
	BorderNone             BorderStyle = ""
	BorderHair             BorderStyle = "hair"
	BorderDotted           BorderStyle = "dotted"
	BorderDashDotDot       BorderStyle = "dashDotDot"
	BorderDashDot          BorderStyle = "dashDot"
	BorderDashed           BorderStyle = "dashed"
	BorderThin             BorderStyle = "thin"
	BorderMediumDashDotDot BorderStyle = "mediumDashDotDot"
	BorderSlantDashDot     BorderStyle = "slantDashDot"
	BorderMediumDashDot    BorderStyle = "mediumDashDot"
	BorderMediumDashed     BorderStyle = "mediumDashed"
	BorderMedium           BorderStyle = "medium"
	BorderThick            BorderStyle = "thick"
	BorderDouble           BorderStyle = "double"
)

// Side identifies a border edge.
type Side int

// Border edges, in the order they appear in a style sheet.
const (
	Left Side = iota
	Right
	Top
	Bottom
	Diagonal
	numSides
)

var sideNames = [numSides]string{"left", "right", "top", "bottom", "diagonal"}

// String returns the element name of the side ("left", "diagonal").
func (s Side) String() string {
	if s < 0 || s >= numSides {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideNames[s]
}

// Sides lists all border edges in style-sheet order.
var Sides = []Side{Left, Right, Top, Bottom, Diagonal}

// Border holds the cell borders of a style.
type Border struct {
	LeftStyle     BorderStyle
	RightStyle    BorderStyle
	TopStyle      BorderStyle
	BottomStyle   BorderStyle
	DiagonalStyle BorderStyle
	DiagonalUp    bool
	DiagonalDown  bool
	InternalID    int

	colors [numSides]string
}

// NewBorder returns the default border: no lines, no colours.
func NewBorder() *Border {
	return &Border{InternalID: NoID}
}

var defaultBorder = *NewBorder()

// Style returns the line style of side s.
func (b *Border) Style(s Side) BorderStyle {
	switch s {
	case Left:
		return b.LeftStyle
	case Right:
		return b.RightStyle
	case Top:
		return b.TopStyle
	case Bottom:
		return b.BottomStyle
	case Diagonal:
		return b.DiagonalStyle
	}
	return BorderNone
}

// SetStyle sets the line style of side s.
func (b *Border) SetStyle(s Side, style BorderStyle) {
	switch s {
	case Left:
		b.LeftStyle = style
	case Right:
		b.RightStyle = style
	case Top:
		b.TopStyle = style
	case Bottom:
		b.BottomStyle = style
	case Diagonal:
		b.DiagonalStyle = style
	}
}

// Color returns the ARGB colour of side s; "" means automatic.
func (b *Border) Color(s Side) string {
	if s < 0 || s >= numSides {
		return ""
	}
	return b.colors[s]
}

// SetColor sets the ARGB colour of side s.
func (b *Border) SetColor(s Side, argb string) error {
	if s < 0 || s >= numSides {
		return fmt.Errorf("styles: unknown border side %d: %w", int(s), xlerr.ErrStyle)
	}
	c, err := normalizeColor(s.String()+" border color", argb)
	if err != nil {
		return err
	}
	b.colors[s] = c
	return nil
}

// ID returns the InternalID.
func (b *Border) ID() int { return b.InternalID }

// Copy returns an independent copy of b.
func (b *Border) Copy() *Border {
	c := *b
	return &c
}

// Equal reports whether b and o have the same content.
func (b *Border) Equal(o *Border) bool {
	if b == nil || o == nil {
		return b == o
	}
	x, y := *b, *o
	x.InternalID, y.InternalID = 0, 0
	return x == y
}

// Hash returns a content hash consistent with Equal.
func (b *Border) Hash() uint64 {
	return hashFields("border", b.LeftStyle, b.RightStyle, b.TopStyle, b.BottomStyle, b.DiagonalStyle,
		b.DiagonalUp, b.DiagonalDown, b.colors[0], b.colors[1], b.colors[2], b.colors[3], b.colors[4])
}

// IsDefault reports whether b equals NewBorder().
func (b *Border) IsDefault() bool { return b.Equal(&defaultBorder) }

// Compare orders borders by InternalID; unassigned IDs sort first.
func (b *Border) Compare(o *Border) int { return compareIDs(b.InternalID, o.InternalID) }

// Append copies every non-default field of o into b.
func (b *Border) Append(o *Border) {
	if o == nil {
		return
	}
	for _, s := range Sides {
		if st := o.Style(s); st != BorderNone {
			b.SetStyle(s, st)
		}
		if c := o.colors[s]; c != "" {
			b.colors[s] = c
		}
	}
	if o.DiagonalUp {
		b.DiagonalUp = true
	}
	if o.DiagonalDown {
		b.DiagonalDown = true
	}
}
