package address

import (
	"fmt"
	"iter"
	"strings"

	"github.com/TsubasaBE/go-xlsx/xlerr"
)

// Range is a rectangular block of cells.  Start is always the top-left and
// End the bottom-right corner; constructors reorder the corners.
type Range struct {
	Start Address
	End   Address
}

// NewRange returns the range enclosing a and b.  The corners are normalised
// per axis, so NewRange(C3, A1) equals NewRange(A1, C3).  The marker type of
// each input is kept on the corner it ends up on.
func NewRange(a, b Address) Range {
	start, end := a, b
	start.Column, end.Column = min(a.Column, b.Column), max(a.Column, b.Column)
	start.Row, end.Row = min(a.Row, b.Row), max(a.Row, b.Row)
	return Range{Start: start, End: end}
}

// ParseRange parses "A1:C3", "$A$1:$C$3", "C3:A1" or a single address such
// as "B2" (start == end).
func ParseRange(s string) (Range, error) {
	if s == "" {
		return Range{}, fmt.Errorf("address: empty range: %w", xlerr.ErrFormat)
	}
	from, to, found := strings.Cut(s, ":")
	if !found {
		to = from
	}
	a, err := Parse(from)
	if err != nil {
		return Range{}, fmt.Errorf("address: invalid start of range %q: %w", s, err)
	}
	b, err := Parse(to)
	if err != nil {
		return Range{}, fmt.Errorf("address: invalid end of range %q: %w", s, err)
	}
	return NewRange(a, b), nil
}

// MustParseRange is like ParseRange but panics on error.
func MustParseRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// String renders the range as "start:end", honouring "$" markers.  A
// single-cell range still renders both corners ("B2:B2").
func (r Range) String() string {
	return r.Start.String() + ":" + r.End.String()
}

// Key returns the relative form of the range ("A1:C3") used to identify
// merged regions regardless of markers.
func (r Range) Key() string {
	return r.Start.Key() + ":" + r.End.Key()
}

// Equal reports whether r and o cover the same rectangle.
func (r Range) Equal(o Range) bool {
	return r.Start.Equal(o.Start) && r.End.Equal(o.End)
}

// Width returns the number of columns in the range.
func (r Range) Width() int { return r.End.Column - r.Start.Column + 1 }

// Height returns the number of rows in the range.
func (r Range) Height() int { return r.End.Row - r.Start.Row + 1 }

// Size returns the number of cells in the range.
func (r Range) Size() int { return r.Width() * r.Height() }

// Contains reports whether a lies inside r.
func (r Range) Contains(a Address) bool {
	return a.Column >= r.Start.Column && a.Column <= r.End.Column &&
		a.Row >= r.Start.Row && a.Row <= r.End.Row
}

// Overlaps reports whether r and o share at least one cell.
func (r Range) Overlaps(o Range) bool {
	return r.Start.Column <= o.End.Column && o.Start.Column <= r.End.Column &&
		r.Start.Row <= o.End.Row && o.Start.Row <= r.End.Row
}

// All yields every address of the range column by column: A1, A2, ..., B1,
// B2, ...  The yielded addresses carry no "$" markers.
func (r Range) All() iter.Seq[Address] {
	return func(yield func(Address) bool) {
		for c := r.Start.Column; c <= r.End.Column; c++ {
			for row := r.Start.Row; row <= r.End.Row; row++ {
				if !yield(Address{Column: c, Row: row}) {
					return
				}
			}
		}
	}
}

// Addresses returns every address of the range in the order of All.  The
// slice has exactly Size elements.
func (r Range) Addresses() []Address {
	out := make([]Address, 0, r.Size())
	for a := range r.All() {
		out = append(out, a)
	}
	return out
}

// ResolveEnclosedAddresses is an alias of Addresses.
func (r Range) ResolveEnclosedAddresses() []Address { return r.Addresses() }
