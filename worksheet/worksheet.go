// Package worksheet holds the in-memory model of a single worksheet: a sparse
// grid of cells keyed by address, the placement cursor, row and column
// metadata, merged regions, the auto filter, pane splits, sheet protection
// and view settings.
//
// Styles passed to a worksheet are canonicalised through a
// [styles.Repository]; a worksheet created by a workbook shares the
// workbook's repository.
package worksheet

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/TsubasaBE/go-xlsx/address"
	"github.com/TsubasaBE/go-xlsx/numfmt"
	"github.com/TsubasaBE/go-xlsx/styles"
	"github.com/TsubasaBE/go-xlsx/xlerr"
)

// Size defaults and limits, in character units for widths and points for
// heights.
const (
	DefaultColumnWidth = 10.0
	DefaultRowHeight   = 15.0
	MinColumnWidth     = 0.0
	MaxColumnWidth     = 255.0
	MinRowHeight       = 0.0
	MaxRowHeight       = 409.5
)

// MaxNameLength is the maximum number of characters of a worksheet name.
const MaxNameLength = 31

const invalidNameChars = `[]*?/\:`

// CellDirection controls how the cursor advances after a cell is placed.
type CellDirection int

const (
	// ColumnToColumn advances to the next column of the same row.
	ColumnToColumn CellDirection = iota
	// RowToRow advances to the next row of the same column.
	RowToRow
	// Disabled leaves the cursor where it is.
	Disabled
)

// Worksheet is a single sheet of a workbook.
type Worksheet struct {
	// SheetID is the 1-based sheetId written to the workbook part.
	SheetID int
	// Direction is the cursor direction used by AddCell and AddNextCell.
	Direction CellDirection
	// Hidden hides the sheet tab.
	Hidden bool
	// ShowGridLines, ShowRowColumnHeaders and ShowRuler are view flags; all
	// default to true.
	ShowGridLines        bool
	ShowRowColumnHeaders bool
	ShowRuler            bool
	// ViewType is the sheet view mode.
	ViewType SheetViewType
	// UseSheetProtection enables sheet protection when the file is written.
	UseSheetProtection bool

	name               string
	cells              map[string]*Cell
	columns            map[int]*Column
	rowHeights         map[int]float64
	hiddenRows         map[int]bool
	mergedCells        map[string]address.Range
	selectedCells      []address.Range
	autoFilterRange    *address.Range
	defaultColumnWidth float64
	defaultRowHeight   float64
	currentColumn      int
	currentRow         int
	activeStyle        *styles.Style
	repo               *styles.Repository

	pane       paneState
	zoomFactor int

	protectionValues       []SheetProtectionValue
	protectionPassword     string
	protectionPasswordHash string
}

// New returns an empty worksheet with its own style repository.
func New(name string) (*Worksheet, error) {
	return NewWithID(name, 0, nil)
}

// NewWithID returns an empty worksheet with the given sheet ID that
// canonicalises styles through repo.  A nil repo gives the worksheet a
// repository of its own.
func NewWithID(name string, id int, repo *styles.Repository) (*Worksheet, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if repo == nil {
		repo = styles.NewRepository()
	}
	return &Worksheet{
		SheetID:              id,
		ShowGridLines:        true,
		ShowRowColumnHeaders: true,
		ShowRuler:            true,
		ViewType:             ViewNormal,
		name:                 name,
		cells:                make(map[string]*Cell),
		columns:              make(map[int]*Column),
		rowHeights:           make(map[int]float64),
		hiddenRows:           make(map[int]bool),
		mergedCells:          make(map[string]address.Range),
		defaultColumnWidth:   DefaultColumnWidth,
		defaultRowHeight:     DefaultRowHeight,
		repo:                 repo,
		zoomFactor:           100,
	}, nil
}

// ── name ─────────────────────────────────────────────────────────────────────

// Name returns the worksheet name.
func (ws *Worksheet) Name() string { return ws.name }

// SetName renames the worksheet.  The name must satisfy ValidateName.
// Uniqueness within a workbook is checked by the workbook.
func (ws *Worksheet) SetName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	ws.name = name
	return nil
}

// ValidateName checks a worksheet name: 1 to 31 characters, none of
// []*?/\: and no apostrophe at the start or end.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	switch {
	case n == 0:
		return fmt.Errorf("worksheet: name must not be empty: %w", xlerr.ErrFormat)
	case n > MaxNameLength:
		return fmt.Errorf("worksheet: name %q is longer than %d characters: %w", name, MaxNameLength, xlerr.ErrFormat)
	case strings.ContainsAny(name, invalidNameChars):
		return fmt.Errorf("worksheet: name %q contains one of %s: %w", name, invalidNameChars, xlerr.ErrFormat)
	case name[0] == '\'' || name[len(name)-1] == '\'':
		return fmt.Errorf("worksheet: name %q must not start or end with an apostrophe: %w", name, xlerr.ErrFormat)
	}
	return nil
}

// SanitizeName turns name into a valid worksheet name that does not collide
// (case-insensitively) with any of existing.  Invalid characters and edge
// apostrophes are replaced by '_', long names are truncated and collisions
// get a numeric suffix.  An empty name becomes "Sheet1".
func SanitizeName(name string, existing []string) string {
	if name == "" {
		name = "Sheet1"
	}
	r := []rune(name)
	for i, c := range r {
		if strings.ContainsRune(invalidNameChars, c) {
			r[i] = '_'
		}
	}
	if len(r) > MaxNameLength {
		r = r[:MaxNameLength]
	}
	if r[0] == '\'' {
		r[0] = '_'
	}
	if r[len(r)-1] == '\'' {
		r[len(r)-1] = '_'
	}

	fold := cases.Fold()
	taken := make(map[string]bool, len(existing))
	for _, e := range existing {
		taken[fold.String(e)] = true
	}
	candidate := string(r)
	for i := 1; taken[fold.String(candidate)]; i++ {
		suffix := strconv.Itoa(i)
		base := r
		if len(base)+len(suffix) > MaxNameLength {
			base = base[:MaxNameLength-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	return candidate
}

// ── styles ───────────────────────────────────────────────────────────────────

// StyleRepository returns the repository the worksheet canonicalises styles
// with.
func (ws *Worksheet) StyleRepository() *styles.Repository { return ws.repo }

// UseRepository switches the worksheet to repo and replaces every cell and
// column style by its canonical instance in repo.
func (ws *Worksheet) UseRepository(repo *styles.Repository) error {
	ws.repo = repo
	for _, c := range ws.cells {
		s, err := repo.Add(c.Style)
		if err != nil {
			return err
		}
		c.Style = s
	}
	for _, col := range ws.columns {
		s, err := repo.Add(col.DefaultStyle)
		if err != nil {
			return err
		}
		col.DefaultStyle = s
	}
	return nil
}

// ActiveStyle returns the style applied to every newly added cell, or nil.
func (ws *Worksheet) ActiveStyle() *styles.Style { return ws.activeStyle }

// SetActiveStyle sets the style applied to every cell added from now on.
// It is merged with the style passed to the add call, the latter winning
// on conflicting fields.  A nil style clears it.
func (ws *Worksheet) SetActiveStyle(s *styles.Style) { ws.activeStyle = s }

// ClearActiveStyle removes the active style.
func (ws *Worksheet) ClearActiveStyle() { ws.activeStyle = nil }

// composeStyle merges the automatic date or time format of typ, the active
// style and the explicit style, in that order, and canonicalises the result.
func (ws *Worksheet) composeStyle(typ CellType, explicit *styles.Style) (*styles.Style, error) {
	var auto *styles.Style
	switch typ {
	case TypeDate:
		auto = styles.DateFormat()
	case TypeTime:
		auto = styles.TimeFormat()
	}
	merged, err := styles.Merge(auto, ws.activeStyle, explicit)
	if err != nil {
		return nil, err
	}
	return ws.repo.Add(merged)
}

// SetStyle applies style to every address of r.  Missing cells are created
// empty.  A nil style removes the style of the existing cells.
func (ws *Worksheet) SetStyle(r address.Range, style *styles.Style) error {
	s, err := ws.repo.Add(style)
	if err != nil {
		return err
	}
	for a := range r.All() {
		c, ok := ws.cells[a.Key()]
		switch {
		case ok:
			c.Style = s
		case s != nil:
			c = NewCell(nil, TypeEmpty, a)
			c.Style = s
			ws.cells[a.Key()] = c
		}
	}
	return nil
}

// SetStyleAt is SetStyle for a range string such as "A1:C3".
func (ws *Worksheet) SetStyleAt(rangeStr string, style *styles.Style) error {
	r, err := address.ParseRange(rangeStr)
	if err != nil {
		return err
	}
	return ws.SetStyle(r, style)
}

// ── cells ────────────────────────────────────────────────────────────────────

// AddCell places value at column and row, replacing any existing cell
// including its style, and moves the cursor past the cell according to
// Direction.  The cell style is composed from the automatic date or time
// format, the active style and style (which may be nil).
func (ws *Worksheet) AddCell(value any, column, row int, style *styles.Style) error {
	if err := ws.place(value, TypeDefault, column, row, style); err != nil {
		return err
	}
	ws.moveCursorPast(column, row)
	return nil
}

// AddCellAt is AddCell for an address string such as "C4".
func (ws *Worksheet) AddCellAt(value any, addr string, style *styles.Style) error {
	a, err := address.Parse(addr)
	if err != nil {
		return err
	}
	return ws.AddCell(value, a.Column, a.Row, style)
}

// AddNextCell places value at the cursor and advances the cursor.
func (ws *Worksheet) AddNextCell(value any, style *styles.Style) error {
	if err := ws.place(value, TypeDefault, ws.currentColumn, ws.currentRow, style); err != nil {
		return err
	}
	ws.advanceCursor()
	return nil
}

// AddCellFormula places a formula at column and row.  The formula is stored
// verbatim, without a leading '='.
func (ws *Worksheet) AddCellFormula(formula string, column, row int, style *styles.Style) error {
	if err := ws.place(strings.TrimPrefix(formula, "="), TypeFormula, column, row, style); err != nil {
		return err
	}
	ws.moveCursorPast(column, row)
	return nil
}

// AddCellFormulaAt is AddCellFormula for an address string.
func (ws *Worksheet) AddCellFormulaAt(formula, addr string, style *styles.Style) error {
	a, err := address.Parse(addr)
	if err != nil {
		return err
	}
	return ws.AddCellFormula(formula, a.Column, a.Row, style)
}

// AddNextCellFormula places a formula at the cursor and advances the cursor.
func (ws *Worksheet) AddNextCellFormula(formula string, style *styles.Style) error {
	if err := ws.place(strings.TrimPrefix(formula, "="), TypeFormula, ws.currentColumn, ws.currentRow, style); err != nil {
		return err
	}
	ws.advanceCursor()
	return nil
}

// AddCellRange places values over r in the order of [address.Range.All]
// (column by column).  The number of values must equal the size of r.  The
// cursor does not move.
func (ws *Worksheet) AddCellRange(values []any, r address.Range, style *styles.Style) error {
	if len(values) != r.Size() {
		return fmt.Errorf("worksheet: %d values do not fit range %s of %d cells: %w",
			len(values), r.Key(), r.Size(), xlerr.ErrRange)
	}
	i := 0
	for a := range r.All() {
		if err := ws.place(values[i], TypeDefault, a.Column, a.Row, style); err != nil {
			return err
		}
		i++
	}
	return nil
}

// AddCellRangeAt is AddCellRange for a range string.
func (ws *Worksheet) AddCellRangeAt(values []any, rangeStr string, style *styles.Style) error {
	r, err := address.ParseRange(rangeStr)
	if err != nil {
		return err
	}
	return ws.AddCellRange(values, r, style)
}

func (ws *Worksheet) place(value any, typ CellType, column, row int, style *styles.Style) error {
	a, err := address.New(column, row)
	if err != nil {
		return err
	}
	c := NewCell(value, typ, a)
	s, err := ws.composeStyle(c.DataType, style)
	if err != nil {
		return err
	}
	c.Style = s
	ws.cells[a.Key()] = c
	return nil
}

// PutCell stores c as is, replacing any cell at its address.  Unlike the
// Add methods it neither composes styles nor moves the cursor; the style of
// c is canonicalised.
func (ws *Worksheet) PutCell(c *Cell) error {
	a := c.Address()
	if err := address.ValidateColumn(a.Column); err != nil {
		return err
	}
	if err := address.ValidateRow(a.Row); err != nil {
		return err
	}
	s, err := ws.repo.Add(c.Style)
	if err != nil {
		return err
	}
	c.Style = s
	ws.cells[a.Key()] = c
	return nil
}

// Cell returns the cell at column and row.  A missing cell is an
// ErrWorksheet error.
func (ws *Worksheet) Cell(column, row int) (*Cell, error) {
	a, err := address.New(column, row)
	if err != nil {
		return nil, err
	}
	c, ok := ws.cells[a.Key()]
	if !ok {
		return nil, fmt.Errorf("worksheet: no cell at %s in %q: %w", a, ws.name, xlerr.ErrWorksheet)
	}
	return c, nil
}

// CellAt is Cell for an address string.
func (ws *Worksheet) CellAt(addr string) (*Cell, error) {
	a, err := address.Parse(addr)
	if err != nil {
		return nil, err
	}
	return ws.Cell(a.Column, a.Row)
}

// HasCell reports whether a cell exists at column and row.
func (ws *Worksheet) HasCell(column, row int) bool {
	_, ok := ws.cells[address.Address{Column: column, Row: row}.Key()]
	return ok
}

// RemoveCell deletes the cell at column and row and reports whether it
// existed.
func (ws *Worksheet) RemoveCell(column, row int) bool {
	key := address.Address{Column: column, Row: row}.Key()
	_, ok := ws.cells[key]
	delete(ws.cells, key)
	return ok
}

// RemoveCellAt is RemoveCell for an address string.
func (ws *Worksheet) RemoveCellAt(addr string) (bool, error) {
	a, err := address.Parse(addr)
	if err != nil {
		return false, err
	}
	return ws.RemoveCell(a.Column, a.Row), nil
}

// Cells returns the cells keyed by their relative address ("C4").  The map
// is a copy; the cells are not.
func (ws *Worksheet) Cells() map[string]*Cell { return maps.Clone(ws.cells) }

// CellCount returns the number of cells.
func (ws *Worksheet) CellCount() int { return len(ws.cells) }

// SortedCells returns all cells ordered by row, then column.
func (ws *Worksheet) SortedCells() []*Cell {
	out := slices.Collect(maps.Values(ws.cells))
	slices.SortFunc(out, func(a, b *Cell) int { return a.Address().Compare(b.Address()) })
	return out
}

// RowCells returns the cells of a row ordered by column.
func (ws *Worksheet) RowCells(row int) []*Cell {
	var out []*Cell
	for _, c := range ws.cells {
		if c.row == row {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b *Cell) int { return a.column - b.column })
	return out
}

// ColumnCells returns the cells of a column ordered by row.
func (ws *Worksheet) ColumnCells(column int) []*Cell {
	var out []*Cell
	for _, c := range ws.cells {
		if c.column == column {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b *Cell) int { return a.row - b.row })
	return out
}

// ColumnCellsByLetters is ColumnCells for column letters such as "AB".
func (ws *Worksheet) ColumnCellsByLetters(letters string) ([]*Cell, error) {
	col, err := address.LettersToColumn(letters)
	if err != nil {
		return nil, err
	}
	return ws.ColumnCells(col), nil
}

// FormatCell returns the display text of c under its number format, using
// the 1900 date system for raw serial numbers.
func (ws *Worksheet) FormatCell(c *Cell) string { return FormatCellValue(c, false) }

// FormatCellValue returns the display text of c under its number format.
// Formula cells render their formula text.
func FormatCellValue(c *Cell, date1904 bool) string {
	if c == nil {
		return ""
	}
	if c.DataType == TypeFormula {
		return c.String()
	}
	id, code := 0, ""
	if c.Style != nil && c.Style.NumberFormat != nil {
		id = c.Style.NumberFormat.FormatID()
		if c.Style.NumberFormat.IsCustomFormat() {
			code = c.Style.NumberFormat.CustomFormatCode
		}
	}
	switch c.DataType {
	case TypeNumber, TypeDate, TypeTime, TypeBool, TypeEmpty:
		return numfmt.FormatValue(c.Value, id, code, date1904)
	}
	return c.String()
}

// ── cursor ───────────────────────────────────────────────────────────────────

// CurrentColumnNumber returns the cursor column.
func (ws *Worksheet) CurrentColumnNumber() int { return ws.currentColumn }

// CurrentRowNumber returns the cursor row.
func (ws *Worksheet) CurrentRowNumber() int { return ws.currentRow }

// SetCurrentColumnNumber moves the cursor to column.
func (ws *Worksheet) SetCurrentColumnNumber(column int) error {
	if err := address.ValidateColumn(column); err != nil {
		return err
	}
	ws.currentColumn = column
	return nil
}

// SetCurrentRowNumber moves the cursor to row.
func (ws *Worksheet) SetCurrentRowNumber(row int) error {
	if err := address.ValidateRow(row); err != nil {
		return err
	}
	ws.currentRow = row
	return nil
}

// SetCurrentCellAddress moves the cursor to column and row.
func (ws *Worksheet) SetCurrentCellAddress(column, row int) error {
	if _, err := address.New(column, row); err != nil {
		return err
	}
	ws.currentColumn, ws.currentRow = column, row
	return nil
}

// SetCurrentCellAddressAt moves the cursor to an address string.
func (ws *Worksheet) SetCurrentCellAddressAt(addr string) error {
	a, err := address.Parse(addr)
	if err != nil {
		return err
	}
	ws.currentColumn, ws.currentRow = a.Column, a.Row
	return nil
}

// GoToNextColumn moves the cursor n columns to the right.  Unless keepRow
// is set the row is reset to 0.
func (ws *Worksheet) GoToNextColumn(n int, keepRow bool) error {
	col := ws.currentColumn + n
	if err := address.ValidateColumn(col); err != nil {
		return err
	}
	ws.currentColumn = col
	if !keepRow {
		ws.currentRow = 0
	}
	return nil
}

// GoToNextRow moves the cursor n rows down.  Unless keepColumn is set the
// column is reset to 0.
func (ws *Worksheet) GoToNextRow(n int, keepColumn bool) error {
	row := ws.currentRow + n
	if err := address.ValidateRow(row); err != nil {
		return err
	}
	ws.currentRow = row
	if !keepColumn {
		ws.currentColumn = 0
	}
	return nil
}

func (ws *Worksheet) moveCursorPast(column, row int) {
	switch ws.Direction {
	case RowToRow:
		ws.currentColumn, ws.currentRow = column, row+1
	case ColumnToColumn:
		ws.currentColumn, ws.currentRow = column+1, row
	}
}

func (ws *Worksheet) advanceCursor() {
	switch ws.Direction {
	case RowToRow:
		ws.currentRow++
	case ColumnToColumn:
		ws.currentColumn++
	}
}

// ── copy ─────────────────────────────────────────────────────────────────────

// Copy returns a deep copy of the worksheet sharing its style repository.
// Cell styles are shared since they are canonical.
func (ws *Worksheet) Copy() *Worksheet {
	cp := *ws
	cp.cells = make(map[string]*Cell, len(ws.cells))
	for k, c := range ws.cells {
		cp.cells[k] = c.Copy()
	}
	cp.columns = make(map[int]*Column, len(ws.columns))
	for k, c := range ws.columns {
		col := *c
		cp.columns[k] = &col
	}
	cp.rowHeights = maps.Clone(ws.rowHeights)
	cp.hiddenRows = maps.Clone(ws.hiddenRows)
	cp.mergedCells = maps.Clone(ws.mergedCells)
	cp.selectedCells = slices.Clone(ws.selectedCells)
	if ws.autoFilterRange != nil {
		r := *ws.autoFilterRange
		cp.autoFilterRange = &r
	}
	cp.pane = ws.pane.clone()
	cp.protectionValues = slices.Clone(ws.protectionValues)
	return &cp
}
