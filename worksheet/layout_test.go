package worksheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TsubasaBE/go-xlsx/address"
	"github.com/TsubasaBE/go-xlsx/styles"
	"github.com/TsubasaBE/go-xlsx/xlerr"
)

func TestColumnMetadata(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.SetColumnWidthByLetters("C", 22.5))
	require.NoError(t, ws.AddHiddenColumnByLetters("E"))
	require.ErrorIs(t, ws.SetColumnWidth(0, 256), xlerr.ErrRange)
	require.ErrorIs(t, ws.SetColumnWidth(0, -1), xlerr.ErrRange)
	require.ErrorIs(t, ws.SetColumnWidth(address.MaxColumn+1, 5), xlerr.ErrRange)

	cols := ws.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, 22.5, cols[2].Width)
	assert.Equal(t, "C", cols[2].ColumnLetters())
	assert.True(t, cols[4].IsHidden)
	assert.Equal(t, DefaultColumnWidth, cols[4].Width)

	// Showing an unknown column creates nothing.
	require.NoError(t, ws.SetColumnHiddenState(7, false))
	assert.Len(t, ws.Columns(), 2)

	require.NoError(t, ws.SetColumnHiddenState(4, false))
	assert.False(t, ws.Columns()[4].IsHidden)

	ws.ResetColumn(2)
	ws.ResetColumn(99)
	_, ok := ws.Columns()[2]
	assert.False(t, ok)
}

func TestColumnDefaultStyle(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.SetColumnDefaultStyle(1, styles.Bold()))
	require.NoError(t, ws.SetColumnDefaultStyle(2, styles.Bold()))
	cols := ws.Columns()
	assert.Same(t, cols[1].DefaultStyle, cols[2].DefaultStyle)

	require.NoError(t, ws.SetColumnDefaultStyle(1, nil))
	assert.Nil(t, ws.Columns()[1].DefaultStyle)
	require.NoError(t, ws.SetColumnDefaultStyle(9, nil))
	_, ok := ws.Columns()[9]
	assert.False(t, ok)
}

func TestResetColumnKeepsAutoFilterEntry(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.SetColumnWidth(1, 40))
	require.NoError(t, ws.AddHiddenColumn(1))
	require.NoError(t, ws.SetAutoFilter(0, 2))

	ws.ResetColumn(1)
	c, ok := ws.Columns()[1]
	require.True(t, ok)
	assert.True(t, c.HasAutoFilter)
	assert.Equal(t, DefaultColumnWidth, c.Width)
	assert.False(t, c.IsHidden)
}

func TestRowMetadata(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.SetRowHeight(3, 409.5))
	require.ErrorIs(t, ws.SetRowHeight(3, 410), xlerr.ErrRange)
	require.ErrorIs(t, ws.SetRowHeight(-1, 10), xlerr.ErrRange)
	assert.Equal(t, 409.5, ws.RowHeight(3))
	assert.Equal(t, DefaultRowHeight, ws.RowHeight(4))

	require.NoError(t, ws.AddHiddenRow(6))
	assert.Equal(t, map[int]bool{6: true}, ws.HiddenRows())
	require.NoError(t, ws.SetRowHiddenState(6, false))
	assert.Empty(t, ws.HiddenRows())

	ws.ResetRowHeight(3)
	assert.Empty(t, ws.RowHeights())
}

func TestDefaultSizes(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.SetDefaultColumnWidth(12))
	require.NoError(t, ws.SetDefaultRowHeight(20))
	assert.Equal(t, 12.0, ws.DefaultColumnWidth())
	assert.Equal(t, 20.0, ws.RowHeight(0))
	require.ErrorIs(t, ws.SetDefaultColumnWidth(300), xlerr.ErrRange)
	require.ErrorIs(t, ws.SetDefaultRowHeight(-2), xlerr.ErrRange)
}

func TestAutoFilter(t *testing.T) {
	ws := newSheet(t)
	assert.Nil(t, ws.AutoFilterRange())
	require.NoError(t, ws.AddCellAt("h1", "B1", nil))
	require.NoError(t, ws.AddCellAt(1, "B4", nil))
	require.NoError(t, ws.AddCellAt(1, "F9", nil))

	require.NoError(t, ws.SetAutoFilter(3, 1))
	r := ws.AutoFilterRange()
	require.NotNil(t, r)
	assert.Equal(t, "B1:D4", r.String())
	for col := 1; col <= 3; col++ {
		assert.True(t, ws.Columns()[col].HasAutoFilter, col)
	}

	require.NoError(t, ws.AddCellAt(2, "C12", nil))
	ws.RecalculateAutoFilter()
	assert.Equal(t, "B1:D12", ws.AutoFilterRange().String())

	require.NoError(t, ws.SetAutoFilterRange("E5:F6"))
	assert.Equal(t, "E1:F9", ws.AutoFilterRange().String())
	_, ok := ws.Columns()[1]
	assert.False(t, ok)

	ws.RemoveAutoFilter()
	assert.Nil(t, ws.AutoFilterRange())
	assert.Empty(t, ws.Columns())
}

func TestMergeCells(t *testing.T) {
	ws := newSheet(t)
	key, err := ws.MergeCellsAt("$B$2:C3")
	require.NoError(t, err)
	assert.Equal(t, "B2:C3", key)

	for _, r := range []string{"B2:C3", "C3:D4", "A1:B2", "A1:Z99"} {
		_, err := ws.MergeCellsAt(r)
		assert.ErrorIs(t, err, xlerr.ErrRange, r)
	}
	_, err = ws.MergeCellsAt("D2:E3")
	require.NoError(t, err)
	assert.Len(t, ws.MergedCells(), 2)

	require.ErrorIs(t, ws.RemoveMergedCells("A1:A2"), xlerr.ErrWorksheet)
	require.NoError(t, ws.RemoveMergedCells("b2:c3"))
	assert.Len(t, ws.MergedCells(), 1)
}

func TestSelectedCells(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.AddSelectedCellsAt("A1:B2"))
	require.NoError(t, ws.AddSelectedCellsAt("A1:B2"))
	require.NoError(t, ws.AddSelectedCellsAt("D4:D4"))
	assert.Len(t, ws.SelectedCells(), 2)

	ws.RemoveSelectedCells(address.MustParseRange("A1:B2"))
	require.Len(t, ws.SelectedCells(), 1)
	assert.Equal(t, "D4:D4", ws.SelectedCells()[0].Key())

	ws.ClearSelectedCells()
	assert.Empty(t, ws.SelectedCells())
}

func TestBoundaries(t *testing.T) {
	ws := newSheet(t)
	for _, n := range []int{
		ws.FirstColumnNumber(), ws.LastColumnNumber(), ws.FirstRowNumber(), ws.LastRowNumber(),
		ws.FirstDataColumnNumber(), ws.LastDataColumnNumber(), ws.FirstDataRowNumber(), ws.LastDataRowNumber(),
	} {
		assert.Equal(t, -1, n)
	}
	assert.Nil(t, ws.FirstCellAddress())
	assert.Nil(t, ws.LastDataCellAddress())

	require.NoError(t, ws.AddCellAt("x", "C3", nil))
	require.NoError(t, ws.AddCellAt("", "A1", nil))
	require.NoError(t, ws.AddCellAt(nil, "E6", nil))
	require.NoError(t, ws.SetColumnWidth(7, 30))
	require.NoError(t, ws.SetRowHeight(9, 30))
	require.NoError(t, ws.AddHiddenRow(11))

	assert.Equal(t, 0, ws.FirstColumnNumber())
	assert.Equal(t, 7, ws.LastColumnNumber())
	assert.Equal(t, 0, ws.FirstRowNumber())
	assert.Equal(t, 11, ws.LastRowNumber())

	assert.Equal(t, 2, ws.FirstDataColumnNumber())
	assert.Equal(t, 4, ws.LastDataColumnNumber())
	assert.Equal(t, 2, ws.FirstDataRowNumber())
	assert.Equal(t, 5, ws.LastDataRowNumber())

	assert.Equal(t, "A1", ws.FirstCellAddress().String())
	assert.Equal(t, "H12", ws.LastCellAddress().String())
	assert.Equal(t, "C3", ws.FirstDataCellAddress().String())
	assert.Equal(t, "E6", ws.LastDataCellAddress().String())
}

func TestBoundariesMetadataOnly(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.SetColumnWidth(3, 20))
	assert.Equal(t, 3, ws.FirstColumnNumber())
	assert.Equal(t, -1, ws.FirstRowNumber())
	assert.Nil(t, ws.FirstCellAddress())
	assert.Equal(t, -1, ws.FirstDataColumnNumber())
}

func TestInsertRow(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.AddCellAt("top", "A1", nil))
	require.NoError(t, ws.AddCellAt("tmpl", "B2", styles.Bold()))
	require.NoError(t, ws.AddCellAt("below", "B3", nil))
	require.NoError(t, ws.AddCellAt("far", "C10", nil))

	require.NoError(t, ws.InsertRow(1, 2))

	a1, _ := ws.CellAt("A1")
	assert.Equal(t, "top", a1.Value)
	b2, _ := ws.CellAt("B2")
	assert.Equal(t, "tmpl", b2.Value)
	for _, key := range []string{"B3", "B4"} {
		c, err := ws.CellAt(key)
		require.NoError(t, err, key)
		assert.Nil(t, c.Value)
		assert.Equal(t, TypeEmpty, c.DataType)
		assert.Same(t, b2.Style, c.Style)
	}
	b5, err := ws.CellAt("B5")
	require.NoError(t, err)
	assert.Equal(t, "below", b5.Value)
	assert.Equal(t, 4, b5.Row())
	c12, err := ws.CellAt("C12")
	require.NoError(t, err)
	assert.Equal(t, "far", c12.Value)
	assert.False(t, ws.HasCell(2, 9))

	require.NoError(t, ws.InsertRow(0, 0))
	require.ErrorIs(t, ws.InsertRow(0, -1), xlerr.ErrRange)
	require.ErrorIs(t, ws.InsertRow(1, address.MaxRow), xlerr.ErrRange)
	assert.Equal(t, 6, ws.CellCount())
}

func TestInsertColumn(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.AddCellAt("a", "A1", styles.Italic()))
	require.NoError(t, ws.AddCellAt("b", "B1", nil))
	require.NoError(t, ws.InsertColumn(0, 1))

	b1, err := ws.CellAt("B1")
	require.NoError(t, err)
	assert.Nil(t, b1.Value)
	assert.True(t, b1.Style.Font.Italic)
	c1, err := ws.CellAt("C1")
	require.NoError(t, err)
	assert.Equal(t, "b", c1.Value)
	assert.Equal(t, 2, c1.Column())
}
