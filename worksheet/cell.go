package worksheet

import (
	"fmt"
	"reflect"
	"time"

	"github.com/TsubasaBE/go-xlsx/address"
	"github.com/TsubasaBE/go-xlsx/styles"
)

// CellType is the kind of value a cell holds.
type CellType int

// Cell types.  TypeDefault is only an input to NewCell and SetValueAs and
// requests inference from the value.
const (
	TypeString CellType = iota
	TypeNumber
	TypeDate
	TypeTime
	TypeBool
	TypeFormula
	TypeEmpty
	TypeDefault
)

var cellTypeNames = [...]string{"string", "number", "date", "time", "bool", "formula", "empty", "default"}

// String returns the lower-case name of the type.
func (t CellType) String() string {
	if t < 0 || int(t) >= len(cellTypeNames) {
		return fmt.Sprintf("CellType(%d)", int(t))
	}
	return cellTypeNames[t]
}

// Cell is a single worksheet cell.
type Cell struct {
	// Value holds the raw value.  The dynamic type is one of:
	//   - nil                       empty cell
	//   - string                    text, or the formula for TypeFormula
	//   - any Go integer or float   number
	//   - bool                      boolean
	//   - time.Time                 date (stored as a serial number)
	//   - time.Duration             time of day or elapsed time
	// Values of other types are kept as-is and written as their fmt.Sprint
	// text; their DataType is TypeString.
	Value any
	// DataType is the kind of Value.
	DataType CellType
	// Style is the canonical style of the cell, or nil.
	Style *styles.Style

	column      int
	row         int
	addressType address.Type
}

// NewCell returns a cell at addr.  When typ is TypeDefault the type is
// inferred from value.  Date and time values get no style here; the
// worksheet assigns their number format when the cell is added.
func NewCell(value any, typ CellType, addr address.Address) *Cell {
	c := &Cell{column: addr.Column, row: addr.Row, addressType: addr.Type}
	c.SetValueAs(value, typ)
	return c
}

// Column returns the 0-based column number.
func (c *Cell) Column() int { return c.column }

// Row returns the 0-based row number.
func (c *Cell) Row() int { return c.row }

// Address returns the address of the cell.
func (c *Cell) Address() address.Address {
	return address.Address{Column: c.column, Row: c.row, Type: c.addressType}
}

// SetAddressType changes how the address of the cell is rendered.
func (c *Cell) SetAddressType(t address.Type) { c.addressType = t }

// SetValue replaces the value and infers the type again.  A formula cell
// keeps TypeFormula when the new value is a string.
func (c *Cell) SetValue(v any) {
	if _, ok := v.(string); ok && c.DataType == TypeFormula {
		c.Value = v
		return
	}
	c.SetValueAs(v, TypeDefault)
}

// SetValueAs replaces the value and sets the type explicitly.  TypeDefault
// infers the type; TypeFormula must be requested this way since a plain
// string is never taken as a formula.
func (c *Cell) SetValueAs(v any, typ CellType) {
	c.Value = v
	if typ == TypeDefault {
		typ = ResolveCellType(v)
	}
	c.DataType = typ
}

// SetStyle stores s as the cell style without copying it.  Cells added
// through a worksheet receive canonical styles; use Worksheet.SetStyle to
// keep that guarantee.
func (c *Cell) SetStyle(s *styles.Style) { c.Style = s }

// RemoveStyle clears the cell style.
func (c *Cell) RemoveStyle() { c.Style = nil }

// Copy returns a copy of c.  The style is shared, the value is copied by
// assignment.
func (c *Cell) Copy() *Cell {
	cp := *c
	return &cp
}

// String returns the raw value as text.  Empty cells yield "".
func (c *Cell) String() string {
	switch v := c.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.DateTime)
	}
	return fmt.Sprint(c.Value)
}

// ResolveCellType infers the cell type of v.
func ResolveCellType(v any) CellType {
	switch v.(type) {
	case nil:
		return TypeEmpty
	case string:
		return TypeString
	case bool:
		return TypeBool
	case time.Time:
		return TypeDate
	case time.Duration:
		return TypeTime
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return TypeNumber
	}
	// Named numeric types such as `type Celsius float64`.
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return TypeNumber
	}
	return TypeString
}

// NumericValue returns the value of a number cell as float64.
func NumericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
