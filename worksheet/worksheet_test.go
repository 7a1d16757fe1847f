package worksheet

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TsubasaBE/go-xlsx/address"
	"github.com/TsubasaBE/go-xlsx/styles"
	"github.com/TsubasaBE/go-xlsx/xlerr"
)

func newSheet(t *testing.T) *Worksheet {
	t.Helper()
	ws, err := New("Sheet1")
	require.NoError(t, err)
	return ws
}

func cursor(ws *Worksheet) address.Address {
	return address.Address{Column: ws.CurrentColumnNumber(), Row: ws.CurrentRowNumber()}
}

func TestValidateName(t *testing.T) {
	valid := []string{"Sheet1", "a", strings.Repeat("x", 31), "It's fine", "Ünïcödé"}
	for _, n := range valid {
		assert.NoError(t, ValidateName(n), n)
	}
	invalid := []string{"", strings.Repeat("x", 32), "a[b", "a]b", "a*b", "a?b", "a/b", `a\b`, "a:b", "'a", "a'"}
	for _, n := range invalid {
		assert.ErrorIs(t, ValidateName(n), xlerr.ErrFormat, n)
	}
	_, err := New("bad:name")
	assert.ErrorIs(t, err, xlerr.ErrFormat)

	ws := newSheet(t)
	require.ErrorIs(t, ws.SetName(""), xlerr.ErrFormat)
	require.NoError(t, ws.SetName("Data"))
	assert.Equal(t, "Data", ws.Name())
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"", nil, "Sheet1"},
		{"a/b:c", nil, "a_b_c"},
		{"'quoted'", nil, "_quoted_"},
		{strings.Repeat("y", 40), nil, strings.Repeat("y", 31)},
		{"Data", []string{"data"}, "Data1"},
		{"Data", []string{"DATA", "Data1"}, "Data2"},
		{strings.Repeat("z", 31), []string{strings.Repeat("Z", 31)}, strings.Repeat("z", 30) + "1"},
	}
	for _, tt := range tests {
		got := SanitizeName(tt.name, tt.existing)
		assert.Equal(t, tt.want, got, "SanitizeName(%q)", tt.name)
		assert.NoError(t, ValidateName(got))
	}
}

func TestAddCellOverwrite(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.AddCellAt("first", "B2", styles.Bold()))
	require.NoError(t, ws.AddCellAt(42, "B2", nil))

	c, err := ws.CellAt("B2")
	require.NoError(t, err)
	assert.Equal(t, 42, c.Value)
	assert.Equal(t, TypeNumber, c.DataType)
	assert.Nil(t, c.Style)
	assert.Equal(t, 1, ws.CellCount())
}

func TestOverwriteClearsDateStyle(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.AddCellAt(time.Date(2021, 5, 6, 0, 0, 0, 0, time.UTC), "C2", nil))
	c, err := ws.CellAt("C2")
	require.NoError(t, err)
	require.NotNil(t, c.Style)
	assert.Equal(t, styles.Format14, c.Style.NumberFormat.Number)

	require.NoError(t, ws.AddCellAt(17.5, "C2", nil))
	c, err = ws.CellAt("C2")
	require.NoError(t, err)
	assert.Nil(t, c.Style)
}

func TestDateTimeStyleComposition(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.AddCell(2*time.Hour, 0, 0, nil))
	c, err := ws.Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, styles.Format21, c.Style.NumberFormat.Number)

	// An explicit style keeps the date format and adds its own fields.
	require.NoError(t, ws.AddCell(time.Now(), 1, 0, styles.Bold()))
	c, err = ws.Cell(1, 0)
	require.NoError(t, err)
	assert.Equal(t, styles.Format14, c.Style.NumberFormat.Number)
	assert.True(t, c.Style.Font.Bold)

	// An explicit number format wins over the automatic one.
	custom := styles.New()
	nf, err := styles.NewCustomNumberFormat("yyyy")
	require.NoError(t, err)
	custom.NumberFormat = nf
	require.NoError(t, ws.AddCell(time.Now(), 2, 0, custom))
	c, err = ws.Cell(2, 0)
	require.NoError(t, err)
	assert.Equal(t, "yyyy", c.Style.NumberFormat.FormatCode())
}

func TestActiveStyle(t *testing.T) {
	ws := newSheet(t)
	ws.SetActiveStyle(styles.Italic())
	assert.NotNil(t, ws.ActiveStyle())
	require.NoError(t, ws.AddCellAt("a", "A1", nil))
	require.NoError(t, ws.AddCellAt("b", "A2", styles.Bold()))
	ws.ClearActiveStyle()
	require.NoError(t, ws.AddCellAt("c", "A3", nil))

	a, _ := ws.CellAt("A1")
	b, _ := ws.CellAt("A2")
	c, _ := ws.CellAt("A3")
	assert.True(t, a.Style.Font.Italic)
	assert.True(t, b.Style.Font.Italic)
	assert.True(t, b.Style.Font.Bold)
	assert.Nil(t, c.Style)
}

func TestStylesAreCanonical(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.AddCellAt(1, "A1", styles.Bold()))
	require.NoError(t, ws.AddCellAt(2, "A2", styles.Bold()))
	a, _ := ws.CellAt("A1")
	b, _ := ws.CellAt("A2")
	assert.Same(t, a.Style, b.Style)
	assert.Equal(t, 1, ws.StyleRepository().Len())
}

func TestCursorScenarios(t *testing.T) {
	t.Run("row to row", func(t *testing.T) {
		ws := newSheet(t)
		ws.Direction = RowToRow
		require.NoError(t, ws.SetCurrentCellAddressAt("D2"))
		require.NoError(t, ws.AddNextCell("x", nil))
		assert.Equal(t, "D3", cursor(ws).String())
		assert.True(t, ws.HasCell(3, 1))
	})
	t.Run("column to column", func(t *testing.T) {
		ws := newSheet(t)
		require.NoError(t, ws.SetCurrentCellAddressAt("E3"))
		require.NoError(t, ws.AddNextCell("x", nil))
		assert.Equal(t, address.Address{Column: 5, Row: 2}, cursor(ws))
	})
	t.Run("disabled", func(t *testing.T) {
		ws := newSheet(t)
		ws.Direction = Disabled
		require.NoError(t, ws.SetCurrentCellAddressAt("F5"))
		require.NoError(t, ws.AddNextCell("x", nil))
		assert.Equal(t, address.Address{Column: 5, Row: 4}, cursor(ws))
		require.NoError(t, ws.AddNextCell("y", nil))
		c, err := ws.CellAt("F5")
		require.NoError(t, err)
		assert.Equal(t, "y", c.Value)
	})
	t.Run("explicit add moves past the cell", func(t *testing.T) {
		ws := newSheet(t)
		require.NoError(t, ws.AddCellAt(1, "C3", nil))
		assert.Equal(t, "D3", cursor(ws).String())
		ws.Direction = RowToRow
		require.NoError(t, ws.AddCellAt(1, "C3", nil))
		assert.Equal(t, "C4", cursor(ws).String())
		ws.Direction = Disabled
		require.NoError(t, ws.AddCellAt(1, "H9", nil))
		assert.Equal(t, "C4", cursor(ws).String())
	})
	t.Run("formula", func(t *testing.T) {
		ws := newSheet(t)
		require.NoError(t, ws.AddNextCellFormula("=A1+1", nil))
		require.NoError(t, ws.AddCellFormulaAt("SUM(A1:B1)", "C1", nil))
		assert.Equal(t, "D1", cursor(ws).String())
		c, err := ws.CellAt("A1")
		require.NoError(t, err)
		assert.Equal(t, TypeFormula, c.DataType)
		assert.Equal(t, "A1+1", c.Value)
	})
}

func TestCursorNavigation(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.SetCurrentCellAddress(2, 5))
	require.NoError(t, ws.GoToNextColumn(2, true))
	assert.Equal(t, address.Address{Column: 4, Row: 5}, cursor(ws))
	require.NoError(t, ws.GoToNextColumn(1, false))
	assert.Equal(t, address.Address{Column: 5, Row: 0}, cursor(ws))
	require.NoError(t, ws.GoToNextRow(3, false))
	assert.Equal(t, address.Address{Column: 0, Row: 3}, cursor(ws))

	require.ErrorIs(t, ws.GoToNextColumn(address.MaxColumn+1, true), xlerr.ErrRange)
	require.ErrorIs(t, ws.SetCurrentRowNumber(-1), xlerr.ErrRange)
	require.ErrorIs(t, ws.SetCurrentColumnNumber(address.MaxColumn+1), xlerr.ErrRange)
	require.ErrorIs(t, ws.SetCurrentCellAddressAt("1A"), xlerr.ErrFormat)
	assert.Equal(t, address.Address{Column: 0, Row: 3}, cursor(ws))
}

func TestAddCellErrors(t *testing.T) {
	ws := newSheet(t)
	require.ErrorIs(t, ws.AddCell(1, -1, 0, nil), xlerr.ErrRange)
	require.ErrorIs(t, ws.AddCell(1, 0, address.MaxRow+1, nil), xlerr.ErrRange)
	require.ErrorIs(t, ws.AddCellAt(1, "??", nil), xlerr.ErrFormat)

	bad := styles.New()
	bad.Fill = nil
	require.ErrorIs(t, ws.AddCellAt(1, "A1", bad), xlerr.ErrStyle)
	assert.Equal(t, 0, ws.CellCount())
}

func TestAddCellRange(t *testing.T) {
	ws := newSheet(t)
	r := address.MustParseRange("B2:C3")
	require.NoError(t, ws.AddCellRange([]any{1, 2, 3, 4}, r, nil))
	for key, want := range map[string]int{"B2": 1, "B3": 2, "C2": 3, "C3": 4} {
		c, err := ws.CellAt(key)
		require.NoError(t, err)
		assert.Equal(t, want, c.Value, key)
	}
	assert.Equal(t, address.Address{}, cursor(ws))

	require.ErrorIs(t, ws.AddCellRangeAt([]any{1}, "A1:A2", nil), xlerr.ErrRange)
}

func TestCellLookup(t *testing.T) {
	ws := newSheet(t)
	_, err := ws.CellAt("A1")
	require.ErrorIs(t, err, xlerr.ErrWorksheet)

	require.NoError(t, ws.AddCellAt("x", "A1", nil))
	assert.True(t, ws.HasCell(0, 0))
	removed, err := ws.RemoveCellAt("A1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, ws.RemoveCell(0, 0))
	assert.False(t, ws.HasCell(0, 0))
}

func TestRowAndColumnCells(t *testing.T) {
	ws := newSheet(t)
	for _, a := range []string{"C2", "A2", "B5", "B1"} {
		require.NoError(t, ws.AddCellAt(a, a, nil))
	}
	var got []string
	for _, c := range ws.RowCells(1) {
		got = append(got, c.Value.(string))
	}
	assert.Equal(t, []string{"A2", "C2"}, got)

	got = nil
	cells, err := ws.ColumnCellsByLetters("B")
	require.NoError(t, err)
	for _, c := range cells {
		got = append(got, c.Value.(string))
	}
	assert.Equal(t, []string{"B1", "B5"}, got)

	got = nil
	for _, c := range ws.SortedCells() {
		got = append(got, c.Value.(string))
	}
	assert.Equal(t, []string{"B1", "A2", "C2", "B5"}, got)
}

func TestSetStyleRange(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.AddCellAt("keep", "A1", nil))
	require.NoError(t, ws.SetStyleAt("A1:B2", styles.Strike()))
	assert.Equal(t, 4, ws.CellCount())
	for _, key := range []string{"A1", "A2", "B1", "B2"} {
		c, err := ws.CellAt(key)
		require.NoError(t, err)
		assert.True(t, c.Style.Font.Strike, key)
	}
	c, _ := ws.CellAt("A1")
	assert.Equal(t, "keep", c.Value)

	require.NoError(t, ws.SetStyleAt("A1:A1", nil))
	c, _ = ws.CellAt("A1")
	assert.Nil(t, c.Style)
}

func TestFormatCell(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.AddCellAt(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "A1", nil))
	require.NoError(t, ws.AddCellAt(1234.5, "A2", nil))
	require.NoError(t, ws.AddCellFormulaAt("A2*2", "A3", nil))
	require.NoError(t, ws.AddCellAt(true, "A4", nil))
	require.NoError(t, ws.AddCellAt(62*time.Minute, "A5", nil))

	a1, _ := ws.CellAt("A1")
	a2, _ := ws.CellAt("A2")
	a3, _ := ws.CellAt("A3")
	a4, _ := ws.CellAt("A4")
	assert.Equal(t, "03-05-24", ws.FormatCell(a1))
	assert.Equal(t, "1234.5", ws.FormatCell(a2))
	assert.Equal(t, "A2*2", ws.FormatCell(a3))
	assert.Equal(t, "TRUE", ws.FormatCell(a4))
	a5, _ := ws.CellAt("A5")
	assert.Equal(t, "1:02:00", ws.FormatCell(a5))
	assert.Equal(t, "", ws.FormatCell(nil))
}

func TestUseRepository(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.AddCellAt(1, "A1", styles.Bold()))
	require.NoError(t, ws.SetColumnDefaultStyle(0, styles.Italic()))

	repo := styles.NewRepository()
	canonical, err := repo.Add(styles.Bold())
	require.NoError(t, err)
	require.NoError(t, ws.UseRepository(repo))

	c, _ := ws.CellAt("A1")
	assert.Same(t, canonical, c.Style)
	assert.Same(t, repo, ws.StyleRepository())
	assert.Equal(t, 2, repo.Len())
}

func TestCopy(t *testing.T) {
	ws := newSheet(t)
	require.NoError(t, ws.AddCellAt("x", "A1", styles.Bold()))
	require.NoError(t, ws.SetColumnWidth(0, 20))
	require.NoError(t, ws.SetRowHeight(0, 30))
	_, err := ws.MergeCellsAt("B1:C1")
	require.NoError(t, err)
	require.NoError(t, ws.SetHorizontalSplit(20, address.MustParse("A3"), PaneBottomLeft))

	cp := ws.Copy()
	require.NoError(t, cp.AddCellAt("y", "A1", nil))
	require.NoError(t, cp.SetColumnWidth(0, 5))
	require.NoError(t, cp.SetRowHeight(0, 5))
	require.NoError(t, cp.RemoveMergedCells("B1:C1"))
	cp.ResetSplit()

	c, _ := ws.CellAt("A1")
	assert.Equal(t, "x", c.Value)
	assert.Equal(t, 20.0, ws.Columns()[0].Width)
	assert.Equal(t, 30.0, ws.RowHeight(0))
	assert.Len(t, ws.MergedCells(), 1)
	require.NotNil(t, ws.PaneSplitTopHeight())
	assert.Same(t, ws.StyleRepository(), cp.StyleRepository())
}
