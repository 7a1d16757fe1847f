package worksheet

import (
	"fmt"
	"maps"
	"slices"

	"github.com/TsubasaBE/go-xlsx/address"
	"github.com/TsubasaBE/go-xlsx/styles"
	"github.com/TsubasaBE/go-xlsx/xlerr"
)

// Column holds the metadata of one column.  Columns without metadata have
// no entry.
type Column struct {
	// Number is the 0-based column number.
	Number int
	// Width is the column width in character units.
	Width float64
	// IsHidden hides the column.
	IsHidden bool
	// HasAutoFilter marks columns covered by the auto filter.
	HasAutoFilter bool
	// DefaultStyle is the style of empty cells in the column, or nil.
	DefaultStyle *styles.Style
}

// ColumnLetters returns the letters of the column ("A", "AB").
func (c *Column) ColumnLetters() string {
	s, _ := address.ColumnToLetters(c.Number)
	return s
}

func (ws *Worksheet) columnEntry(column int) *Column {
	c, ok := ws.columns[column]
	if !ok {
		c = &Column{Number: column, Width: ws.defaultColumnWidth}
		ws.columns[column] = c
	}
	return c
}

// isDefaultColumn reports whether c carries nothing worth keeping.
func (ws *Worksheet) isDefaultColumn(c *Column) bool {
	return c.Width == ws.defaultColumnWidth && !c.IsHidden && !c.HasAutoFilter && c.DefaultStyle == nil
}

// ── columns ──────────────────────────────────────────────────────────────────

// DefaultColumnWidth returns the width of columns without an entry.
func (ws *Worksheet) DefaultColumnWidth() float64 { return ws.defaultColumnWidth }

// SetDefaultColumnWidth sets the width of columns without an entry.
func (ws *Worksheet) SetDefaultColumnWidth(width float64) error {
	if err := validateWidth(width); err != nil {
		return err
	}
	ws.defaultColumnWidth = width
	return nil
}

// DefaultRowHeight returns the height of rows without an entry.
func (ws *Worksheet) DefaultRowHeight() float64 { return ws.defaultRowHeight }

// SetDefaultRowHeight sets the height of rows without an entry.
func (ws *Worksheet) SetDefaultRowHeight(height float64) error {
	if err := validateHeight(height); err != nil {
		return err
	}
	ws.defaultRowHeight = height
	return nil
}

func validateWidth(w float64) error {
	if w < MinColumnWidth || w > MaxColumnWidth {
		return fmt.Errorf("worksheet: column width %v must be within [%v, %v]: %w",
			w, MinColumnWidth, MaxColumnWidth, xlerr.ErrRange)
	}
	return nil
}

func validateHeight(h float64) error {
	if h < MinRowHeight || h > MaxRowHeight {
		return fmt.Errorf("worksheet: row height %v must be within [%v, %v]: %w",
			h, MinRowHeight, MaxRowHeight, xlerr.ErrRange)
	}
	return nil
}

// Columns returns the column entries keyed by column number.  The map is a
// copy; the entries are not.
func (ws *Worksheet) Columns() map[int]*Column { return maps.Clone(ws.columns) }

// SetColumnWidth sets the width of column in character units.
func (ws *Worksheet) SetColumnWidth(column int, width float64) error {
	if err := address.ValidateColumn(column); err != nil {
		return err
	}
	if err := validateWidth(width); err != nil {
		return err
	}
	ws.columnEntry(column).Width = width
	return nil
}

// SetColumnWidthByLetters is SetColumnWidth for column letters.
func (ws *Worksheet) SetColumnWidthByLetters(letters string, width float64) error {
	col, err := address.LettersToColumn(letters)
	if err != nil {
		return err
	}
	return ws.SetColumnWidth(col, width)
}

// AddHiddenColumn hides column.
func (ws *Worksheet) AddHiddenColumn(column int) error {
	return ws.SetColumnHiddenState(column, true)
}

// AddHiddenColumnByLetters is AddHiddenColumn for column letters.
func (ws *Worksheet) AddHiddenColumnByLetters(letters string) error {
	col, err := address.LettersToColumn(letters)
	if err != nil {
		return err
	}
	return ws.AddHiddenColumn(col)
}

// SetColumnHiddenState hides or shows column.  Showing a column without an
// entry is a no-op; an existing entry is kept.
func (ws *Worksheet) SetColumnHiddenState(column int, hidden bool) error {
	if err := address.ValidateColumn(column); err != nil {
		return err
	}
	if c, ok := ws.columns[column]; ok {
		c.IsHidden = hidden
		return nil
	}
	if hidden {
		ws.columnEntry(column).IsHidden = true
	}
	return nil
}

// SetColumnDefaultStyle sets the style of empty cells in column.  A nil
// style removes it.
func (ws *Worksheet) SetColumnDefaultStyle(column int, style *styles.Style) error {
	if err := address.ValidateColumn(column); err != nil {
		return err
	}
	s, err := ws.repo.Add(style)
	if err != nil {
		return err
	}
	if s == nil {
		if c, ok := ws.columns[column]; ok {
			c.DefaultStyle = nil
		}
		return nil
	}
	ws.columnEntry(column).DefaultStyle = s
	return nil
}

// ResetColumn removes the entry of column.  A column covered by the auto
// filter keeps its entry with default width and visibility.
func (ws *Worksheet) ResetColumn(column int) {
	c, ok := ws.columns[column]
	if !ok {
		return
	}
	if c.HasAutoFilter {
		c.Width = ws.defaultColumnWidth
		c.IsHidden = false
		c.DefaultStyle = nil
		return
	}
	delete(ws.columns, column)
}

// ── rows ─────────────────────────────────────────────────────────────────────

// RowHeights returns the explicit row heights keyed by row.
func (ws *Worksheet) RowHeights() map[int]float64 { return maps.Clone(ws.rowHeights) }

// HiddenRows returns the hidden rows keyed by row.
func (ws *Worksheet) HiddenRows() map[int]bool { return maps.Clone(ws.hiddenRows) }

// SetRowHeight sets the height of row in points.
func (ws *Worksheet) SetRowHeight(row int, height float64) error {
	if err := address.ValidateRow(row); err != nil {
		return err
	}
	if err := validateHeight(height); err != nil {
		return err
	}
	ws.rowHeights[row] = height
	return nil
}

// RowHeight returns the height of row, or the default row height.
func (ws *Worksheet) RowHeight(row int) float64 {
	if h, ok := ws.rowHeights[row]; ok {
		return h
	}
	return ws.defaultRowHeight
}

// ResetRowHeight removes the explicit height of row.
func (ws *Worksheet) ResetRowHeight(row int) { delete(ws.rowHeights, row) }

// AddHiddenRow hides row.
func (ws *Worksheet) AddHiddenRow(row int) error {
	return ws.SetRowHiddenState(row, true)
}

// SetRowHiddenState hides or shows row.  Showing a row removes its entry.
func (ws *Worksheet) SetRowHiddenState(row int, hidden bool) error {
	if err := address.ValidateRow(row); err != nil {
		return err
	}
	if hidden {
		ws.hiddenRows[row] = true
	} else {
		delete(ws.hiddenRows, row)
	}
	return nil
}

// ── auto filter ──────────────────────────────────────────────────────────────

// AutoFilterRange returns the auto filter range, or nil.
func (ws *Worksheet) AutoFilterRange() *address.Range {
	if ws.autoFilterRange == nil {
		return nil
	}
	r := *ws.autoFilterRange
	return &r
}

// SetAutoFilter places the auto filter over the columns startColumn to
// endColumn (in either order), starting at the first row.
func (ws *Worksheet) SetAutoFilter(startColumn, endColumn int) error {
	start, err := address.New(startColumn, 0)
	if err != nil {
		return err
	}
	end, err := address.New(endColumn, 0)
	if err != nil {
		return err
	}
	r := address.NewRange(start, end)
	ws.setAutoFilter(r)
	return nil
}

// SetAutoFilterRange places the auto filter over the columns of a range
// string.  Rows of the string are ignored.
func (ws *Worksheet) SetAutoFilterRange(rangeStr string) error {
	r, err := address.ParseRange(rangeStr)
	if err != nil {
		return err
	}
	return ws.SetAutoFilter(r.Start.Column, r.End.Column)
}

func (ws *Worksheet) setAutoFilter(r address.Range) {
	ws.clearAutoFilterFlags()
	ws.autoFilterRange = &r
	ws.RecalculateAutoFilter()
}

// RecalculateAutoFilter flags the filtered columns and extends the range
// down to the last row holding a cell in those columns.
func (ws *Worksheet) RecalculateAutoFilter() {
	if ws.autoFilterRange == nil {
		return
	}
	start, end := ws.autoFilterRange.Start.Column, ws.autoFilterRange.End.Column
	endRow := 0
	for _, c := range ws.cells {
		if c.column >= start && c.column <= end && c.row > endRow {
			endRow = c.row
		}
	}
	for col := start; col <= end; col++ {
		ws.columnEntry(col).HasAutoFilter = true
	}
	r := address.NewRange(address.Address{Column: start}, address.Address{Column: end, Row: endRow})
	ws.autoFilterRange = &r
}

// RemoveAutoFilter removes the auto filter.  Column entries that only
// existed for the filter are dropped.
func (ws *Worksheet) RemoveAutoFilter() {
	ws.clearAutoFilterFlags()
	ws.autoFilterRange = nil
}

func (ws *Worksheet) clearAutoFilterFlags() {
	for n, c := range ws.columns {
		if !c.HasAutoFilter {
			continue
		}
		c.HasAutoFilter = false
		if ws.isDefaultColumn(c) {
			delete(ws.columns, n)
		}
	}
}

// ── merged cells ─────────────────────────────────────────────────────────────

// MergeCells merges r and returns its key ("A1:C3").  A range overlapping
// an existing merge, including an identical one, is an ErrRange error.
func (ws *Worksheet) MergeCells(r address.Range) (string, error) {
	for key, m := range ws.mergedCells {
		if m.Overlaps(r) {
			return "", fmt.Errorf("worksheet: range %s overlaps merged range %s: %w", r.Key(), key, xlerr.ErrRange)
		}
	}
	key := r.Key()
	ws.mergedCells[key] = address.NewRange(r.Start.Relative(), r.End.Relative())
	return key, nil
}

// MergeCellsAt is MergeCells for a range string.
func (ws *Worksheet) MergeCellsAt(rangeStr string) (string, error) {
	r, err := address.ParseRange(rangeStr)
	if err != nil {
		return "", err
	}
	return ws.MergeCells(r)
}

// RemoveMergedCells removes the merge identified by a range string.  An
// unknown range is an ErrWorksheet error.
func (ws *Worksheet) RemoveMergedCells(rangeStr string) error {
	r, err := address.ParseRange(rangeStr)
	if err != nil {
		return err
	}
	key := r.Key()
	if _, ok := ws.mergedCells[key]; !ok {
		return fmt.Errorf("worksheet: range %s is not merged: %w", key, xlerr.ErrWorksheet)
	}
	delete(ws.mergedCells, key)
	return nil
}

// MergedCells returns the merged ranges keyed by their relative form.
func (ws *Worksheet) MergedCells() map[string]address.Range { return maps.Clone(ws.mergedCells) }

// ── selection ────────────────────────────────────────────────────────────────

// SelectedCells returns the selected ranges in the order they were added.
func (ws *Worksheet) SelectedCells() []address.Range { return slices.Clone(ws.selectedCells) }

// AddSelectedCells adds r to the selection unless an equal range is already
// selected.
func (ws *Worksheet) AddSelectedCells(r address.Range) {
	if slices.ContainsFunc(ws.selectedCells, r.Equal) {
		return
	}
	ws.selectedCells = append(ws.selectedCells, r)
}

// AddSelectedCellsAt is AddSelectedCells for a range string.
func (ws *Worksheet) AddSelectedCellsAt(rangeStr string) error {
	r, err := address.ParseRange(rangeStr)
	if err != nil {
		return err
	}
	ws.AddSelectedCells(r)
	return nil
}

// RemoveSelectedCells removes r from the selection.
func (ws *Worksheet) RemoveSelectedCells(r address.Range) {
	ws.selectedCells = slices.DeleteFunc(ws.selectedCells, r.Equal)
}

// ClearSelectedCells empties the selection.
func (ws *Worksheet) ClearSelectedCells() { ws.selectedCells = nil }

// ── boundaries ───────────────────────────────────────────────────────────────

// FirstColumnNumber returns the lowest column holding a cell or a column
// entry, or -1.
func (ws *Worksheet) FirstColumnNumber() int { return ws.boundary(false, true, false) }

// LastColumnNumber returns the highest column holding a cell or a column
// entry, or -1.
func (ws *Worksheet) LastColumnNumber() int { return ws.boundary(false, false, false) }

// FirstRowNumber returns the lowest row holding a cell, a height or a
// hidden flag, or -1.
func (ws *Worksheet) FirstRowNumber() int { return ws.boundary(true, true, false) }

// LastRowNumber returns the highest row holding a cell, a height or a
// hidden flag, or -1.
func (ws *Worksheet) LastRowNumber() int { return ws.boundary(true, false, false) }

// FirstDataColumnNumber returns the lowest column holding a data cell, or
// -1.  Empty cells count as data; cells holding "" do not.
func (ws *Worksheet) FirstDataColumnNumber() int { return ws.boundary(false, true, true) }

// LastDataColumnNumber returns the highest column holding a data cell, or -1.
func (ws *Worksheet) LastDataColumnNumber() int { return ws.boundary(false, false, true) }

// FirstDataRowNumber returns the lowest row holding a data cell, or -1.
func (ws *Worksheet) FirstDataRowNumber() int { return ws.boundary(true, true, true) }

// LastDataRowNumber returns the highest row holding a data cell, or -1.
func (ws *Worksheet) LastDataRowNumber() int { return ws.boundary(true, false, true) }

// FirstCellAddress returns the top-left corner of the used area, or nil.
func (ws *Worksheet) FirstCellAddress() *address.Address {
	return boundaryAddress(ws.FirstColumnNumber(), ws.FirstRowNumber())
}

// LastCellAddress returns the bottom-right corner of the used area, or nil.
func (ws *Worksheet) LastCellAddress() *address.Address {
	return boundaryAddress(ws.LastColumnNumber(), ws.LastRowNumber())
}

// FirstDataCellAddress returns the top-left corner of the data area, or nil.
func (ws *Worksheet) FirstDataCellAddress() *address.Address {
	return boundaryAddress(ws.FirstDataColumnNumber(), ws.FirstDataRowNumber())
}

// LastDataCellAddress returns the bottom-right corner of the data area, or
// nil.
func (ws *Worksheet) LastDataCellAddress() *address.Address {
	return boundaryAddress(ws.LastDataColumnNumber(), ws.LastDataRowNumber())
}

func boundaryAddress(column, row int) *address.Address {
	if column < 0 || row < 0 {
		return nil
	}
	return &address.Address{Column: column, Row: row}
}

func (ws *Worksheet) boundary(rows, first, dataOnly bool) int {
	best := -1
	consider := func(n int) {
		if best < 0 || first && n < best || !first && n > best {
			best = n
		}
	}
	for _, c := range ws.cells {
		if dataOnly {
			if s, ok := c.Value.(string); ok && s == "" {
				continue
			}
		}
		if rows {
			consider(c.row)
		} else {
			consider(c.column)
		}
	}
	if dataOnly {
		return best
	}
	if rows {
		for r := range ws.rowHeights {
			consider(r)
		}
		for r := range ws.hiddenRows {
			consider(r)
		}
	} else {
		for c := range ws.columns {
			consider(c)
		}
	}
	return best
}

// ── insertion ────────────────────────────────────────────────────────────────

// InsertRow inserts count rows below row.  Cells further down move by
// count; every cell of row is repeated, empty and with its style, in the
// new rows.  Row and column metadata are not shifted.
func (ws *Worksheet) InsertRow(row, count int) error {
	return ws.insert(true, row, count)
}

// InsertColumn inserts count columns right of column, in the manner of
// InsertRow.
func (ws *Worksheet) InsertColumn(column, count int) error {
	return ws.insert(false, column, count)
}

func (ws *Worksheet) insert(rows bool, at, count int) error {
	axis, validate, limit := "column", address.ValidateColumn, address.MaxColumn
	pos := func(c *Cell) int { return c.column }
	if rows {
		axis, validate, limit = "row", address.ValidateRow, address.MaxRow
		pos = func(c *Cell) int { return c.row }
	}
	if err := validate(at); err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("worksheet: cannot insert %d %ss: %w", count, axis, xlerr.ErrRange)
	}
	if count == 0 {
		return nil
	}

	var moving, template []*Cell
	last := at
	for _, c := range ws.cells {
		switch p := pos(c); {
		case p > at:
			moving = append(moving, c)
			last = max(last, p)
		case p == at:
			template = append(template, c)
		}
	}
	if last+count > limit {
		return fmt.Errorf("worksheet: inserting %d %ss after %d exceeds the last %s %d: %w",
			count, axis, at, axis, limit, xlerr.ErrRange)
	}

	for _, c := range moving {
		delete(ws.cells, c.Address().Key())
	}
	for _, c := range moving {
		if rows {
			c.row += count
		} else {
			c.column += count
		}
		ws.cells[c.Address().Key()] = c
	}
	for _, t := range template {
		for i := 1; i <= count; i++ {
			a := address.Address{Column: t.column, Row: t.row}
			if rows {
				a.Row += i
			} else {
				a.Column += i
			}
			c := NewCell(nil, TypeEmpty, a)
			c.Style = t.Style
			ws.cells[a.Key()] = c
		}
	}
	return nil
}
