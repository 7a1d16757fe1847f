package styles

import (
	"fmt"

	"github.com/TsubasaBE/go-xlsx/xlerr"
)

// Style combines the five style components.  All components must be
// non-nil for Hash, Copy and Append to succeed.
type Style struct {
	// Name is informational and does not take part in equality.
	Name         string
	Font         *Font
	Fill         *Fill
	Border       *Border
	CellXf       *CellXf
	NumberFormat *NumberFormat
	// InternalID is the cellXfs index assigned when the workbook is written.
	InternalID int
	// IsInternal marks styles created by the library itself, such as the
	// default style at index 0.
	IsInternal bool
}

// New returns a style with default components.
func New() *Style {
	return &Style{
		Font:         NewFont(),
		Fill:         NewFill(),
		Border:       NewBorder(),
		CellXf:       NewCellXf(),
		NumberFormat: NewNumberFormat(),
		InternalID:   NoID,
	}
}

// NewNamed returns a default style with the given name.
func NewNamed(name string) *Style {
	s := New()
	s.Name = name
	return s
}

// NewInternal returns a default style flagged as internal.
func NewInternal(name string) *Style {
	s := NewNamed(name)
	s.IsInternal = true
	return s
}

// Validate returns an ErrStyle error when a component is missing.
func (s *Style) Validate() error {
	if s == nil {
		return fmt.Errorf("styles: style is nil: %w", xlerr.ErrStyle)
	}
	switch {
	case s.Font == nil:
		return fmt.Errorf("styles: style %q has no font: %w", s.Name, xlerr.ErrStyle)
	case s.Fill == nil:
		return fmt.Errorf("styles: style %q has no fill: %w", s.Name, xlerr.ErrStyle)
	case s.Border == nil:
		return fmt.Errorf("styles: style %q has no border: %w", s.Name, xlerr.ErrStyle)
	case s.CellXf == nil:
		return fmt.Errorf("styles: style %q has no cell format: %w", s.Name, xlerr.ErrStyle)
	case s.NumberFormat == nil:
		return fmt.Errorf("styles: style %q has no number format: %w", s.Name, xlerr.ErrStyle)
	}
	return nil
}

// Hash combines the hashes of the five components.
func (s *Style) Hash() (uint64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return hashFields("style", s.Font.Hash(), s.Fill.Hash(), s.Border.Hash(), s.CellXf.Hash(), s.NumberFormat.Hash()), nil
}

// Equal reports whether s and o have equal components.  Name, InternalID
// and IsInternal are ignored.
func (s *Style) Equal(o *Style) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Font.Equal(o.Font) && s.Fill.Equal(o.Fill) && s.Border.Equal(o.Border) &&
		s.CellXf.Equal(o.CellXf) && s.NumberFormat.Equal(o.NumberFormat)
}

// Copy returns a deep copy of s.  The copy has no InternalID.
func (s *Style) Copy() (*Style, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Style{
		Name:         s.Name,
		Font:         s.Font.Copy(),
		Fill:         s.Fill.Copy(),
		Border:       s.Border.Copy(),
		CellXf:       s.CellXf.Copy(),
		NumberFormat: s.NumberFormat.Copy(),
		InternalID:   NoID,
		IsInternal:   s.IsInternal,
	}, nil
}

// Compare orders styles by InternalID; unassigned IDs sort first.
func (s *Style) Compare(o *Style) int { return compareIDs(s.InternalID, o.InternalID) }

// Append merges o into s: every component field of o that differs from its
// default overwrites the field of s, all other fields of s are kept.  A nil
// o is a no-op.  Append returns s to allow chaining.
func (s *Style) Append(o *Style) (*Style, error) {
	if o == nil {
		return s, nil
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	s.Font.Append(o.Font)
	s.Fill.Append(o.Fill)
	s.Border.Append(o.Border)
	s.CellXf.Append(o.CellXf)
	s.NumberFormat.Append(o.NumberFormat)
	return s, nil
}

// AppendComponent merges a single component into the matching component
// of s, following the rules of Append.
func (s *Style) AppendComponent(c Component) (*Style, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch v := c.(type) {
	case nil:
	case *Font:
		s.Font.Append(v)
	case *Fill:
		s.Fill.Append(v)
	case *Border:
		s.Border.Append(v)
	case *CellXf:
		s.CellXf.Append(v)
	case *NumberFormat:
		s.NumberFormat.Append(v)
	default:
		return nil, fmt.Errorf("styles: unsupported component %T: %w", c, xlerr.ErrStyle)
	}
	return s, nil
}

// Merge returns a new style holding base with every overlay appended in
// order.  Nil entries are skipped; when all inputs are nil Merge returns
// nil.
func Merge(base *Style, overlays ...*Style) (*Style, error) {
	var out *Style
	for _, st := range append([]*Style{base}, overlays...) {
		if st == nil {
			continue
		}
		if out == nil {
			c, err := st.Copy()
			if err != nil {
				return nil, err
			}
			out = c
			continue
		}
		if _, err := out.Append(st); err != nil {
			return nil, err
		}
	}
	return out, nil
}
