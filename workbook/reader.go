package workbook

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/TsubasaBE/go-xlsx/address"
	"github.com/TsubasaBE/go-xlsx/internal/oadate"
	"github.com/TsubasaBE/go-xlsx/internal/rels"
	"github.com/TsubasaBE/go-xlsx/stringtable"
	"github.com/TsubasaBE/go-xlsx/styles"
	"github.com/TsubasaBE/go-xlsx/worksheet"
	"github.com/TsubasaBE/go-xlsx/xlerr"
)

// Open reads the .xlsx file at the given path.  The whole workbook is
// loaded into memory; the file is closed before Open returns.
func Open(name string) (*Workbook, error) {
	rc, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("workbook: open %q: %w", name, err)
	}
	defer rc.Close()
	return read(&rc.Reader)
}

// OpenReader reads an .xlsx workbook from an in-memory ReaderAt.
// size must be the total byte size of the ZIP data.
func OpenReader(r io.ReaderAt, size int64) (*Workbook, error) {
	zf, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("workbook: open reader: %w", err)
	}
	return read(zf)
}

// packageReader rebuilds a Workbook from the parts of a package.
type packageReader struct {
	zf  *zip.Reader
	wb  *Workbook
	sst *stringtable.StringTable
	// xfs holds the style of every cellXfs index; nil for the default style.
	xfs []*styles.Style
}

func read(zf *zip.Reader) (*Workbook, error) {
	wb, err := New("")
	if err != nil {
		return nil, err
	}
	p := &packageReader{zf: zf, wb: wb}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return wb, nil
}

func (p *packageReader) parse() error {
	workbookPath, err := p.workbookPath()
	if err != nil {
		return err
	}
	var doc xlsxWorkbook
	if err := p.readXML(workbookPath, &doc); err != nil {
		return err
	}
	wbRels := &rels.Relationships{}
	if data, err := p.readZipEntry(rels.PartRelsPath(workbookPath)); err == nil {
		if wbRels, err = rels.Parse(data); err != nil {
			return fmt.Errorf("workbook: %s: %w: %w", rels.PartRelsPath(workbookPath), xlerr.ErrFormat, err)
		}
	}
	dir := path.Dir(workbookPath)

	p.readWorkbookSettings(&doc)
	if err := p.readStyles(dir, wbRels); err != nil {
		return err
	}
	if err := p.readSharedStrings(dir, wbRels); err != nil {
		return err
	}

	targets := make(map[string]string, len(wbRels.Relationships))
	for _, rel := range wbRels.Relationships {
		targets[rel.ID] = rel.Target
	}
	filters := autoFilterNames(&doc)
	for i, s := range doc.Sheets.Sheet {
		target, ok := targets[s.ReadRID]
		if !ok {
			return fmt.Errorf("workbook: worksheet %q has no relationship %q: %w", s.Name, s.ReadRID, xlerr.ErrFormat)
		}
		ws, err := p.wb.AddWorksheet(s.Name)
		if errors.Is(err, xlerr.ErrFormat) {
			ws, err = p.wb.AddWorksheetSanitized(s.Name)
		}
		if err != nil {
			return err
		}
		if s.SheetID > 0 {
			ws.SheetID = s.SheetID
		}
		ws.Hidden = s.State == "hidden" || s.State == "veryHidden"
		if err := p.readWorksheet(ws, rels.ResolveTarget(dir, target), filters[i]); err != nil {
			return fmt.Errorf("workbook: worksheet %q: %w", s.Name, err)
		}
	}
	if len(p.wb.worksheets) == 0 {
		return fmt.Errorf("workbook: %s lists no worksheets: %w", workbookPath, xlerr.ErrFormat)
	}
	if doc.BookViews != nil && len(doc.BookViews.WorkbookView) > 0 {
		if tab := doc.BookViews.WorkbookView[0].ActiveTab; tab >= 0 && tab < len(p.wb.worksheets) {
			p.wb.selected = tab
		}
	}
	p.wb.current = p.wb.selected
	p.readDocProps()
	return nil
}

// workbookPath returns the main part named by the package relationships,
// falling back to the conventional location.
func (p *packageReader) workbookPath() (string, error) {
	if _, err := p.readZipEntry(pathContentTypes); err != nil {
		return "", fmt.Errorf("workbook: missing %s: %w", pathContentTypes, xlerr.ErrFormat)
	}
	data, err := p.readZipEntry(pathRootRels)
	if err != nil {
		return pathWorkbook, nil
	}
	r, err := rels.Parse(data)
	if err != nil {
		return "", fmt.Errorf("workbook: %s: %w: %w", pathRootRels, xlerr.ErrFormat, err)
	}
	rel, ok := r.ByType(rels.TypeOfficeDocument)
	if !ok {
		return pathWorkbook, nil
	}
	return rels.ResolveTarget("", rel.Target), nil
}

func (p *packageReader) readWorkbookSettings(doc *xlsxWorkbook) {
	wb := p.wb
	if doc.WorkbookPr != nil {
		wb.Date1904 = doc.WorkbookPr.Date1904
	}
	if wp := doc.WorkbookProtection; wp != nil {
		wb.UseWorkbookProtection = true
		wb.LockStructure = wp.LockStructure
		wb.LockWindows = wp.LockWindows
		wb.passwordHash = strings.ToUpper(wp.WorkbookPassword)
	}
}

// autoFilterNames maps sheet positions to the range of their filter
// database name, for sheets whose autoFilter element is missing.
func autoFilterNames(doc *xlsxWorkbook) map[int]string {
	out := make(map[int]string)
	if doc.DefinedNames == nil {
		return out
	}
	for _, dn := range doc.DefinedNames.DefinedName {
		if dn.Name != filterDatabaseName || dn.LocalSheetID == nil {
			continue
		}
		ref := dn.Value
		if i := strings.LastIndexByte(ref, '!'); i >= 0 {
			ref = ref[i+1:]
		}
		out[*dn.LocalSheetID] = strings.ReplaceAll(ref, "$", "")
	}
	return out
}

func (p *packageReader) readStyles(dir string, r *rels.Relationships) error {
	name := pathStyles
	if rel, ok := r.ByType(rels.TypeStyles); ok {
		name = rels.ResolveTarget(dir, rel.Target)
	}
	data, err := p.readZipEntry(name)
	if err != nil {
		return nil // optional
	}
	var doc xlsxStyleSheet
	if err := xml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("workbook: parse %s: %w: %w", name, xlerr.ErrFormat, err)
	}
	p.xfs = parseStyleSheet(&doc)
	return nil
}

func (p *packageReader) readSharedStrings(dir string, r *rels.Relationships) error {
	name := pathSST
	if rel, ok := r.ByType(rels.TypeSharedStrings); ok {
		name = rels.ResolveTarget(dir, rel.Target)
	}
	data, err := p.readZipEntry(name)
	if err != nil {
		p.sst = stringtable.New()
		return nil // optional
	}
	st, err := stringtable.NewFromBytes(data)
	if err != nil {
		return fmt.Errorf("workbook: shared strings: %w: %w", xlerr.ErrFormat, err)
	}
	p.sst = st
	return nil
}

// readDocProps fills the metadata.  The property parts are informational,
// so a missing or malformed part leaves the metadata empty.
func (p *packageReader) readDocProps() {
	m := &p.wb.Metadata
	var core xlsxCoreIn
	if err := p.readXML(pathCore, &core); err == nil {
		m.Title = core.Title
		m.Subject = core.Subject
		m.Creator = core.Creator
		m.Keywords = core.Keywords
		m.Description = core.Description
		m.Category = core.Category
		m.Created = parseW3CDTF(core.Created)
		m.Modified = parseW3CDTF(core.Modified)
	}
	var app xlsxApp
	if err := p.readXML(pathApp, &app); err == nil {
		m.Application = app.Application
		m.Company = app.Company
	}
}

func parseW3CDTF(s string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// ── worksheet ────────────────────────────────────────────────────────────────

func (p *packageReader) readWorksheet(ws *worksheet.Worksheet, name, filterRef string) error {
	var doc xlsxWorksheet
	if err := p.readXML(name, &doc); err != nil {
		return err
	}
	if f := doc.SheetFormatPr; f != nil {
		if f.DefaultColWidth > 0 {
			_ = ws.SetDefaultColumnWidth(f.DefaultColWidth)
		}
		if f.DefaultRowHeight > 0 {
			_ = ws.SetDefaultRowHeight(f.DefaultRowHeight)
		}
	}
	if doc.Cols != nil {
		p.readColumns(ws, doc.Cols.Col)
	}
	if err := p.readRows(ws, doc.SheetData.Row); err != nil {
		return err
	}
	if doc.MergeCells != nil {
		for _, mc := range doc.MergeCells.MergeCell {
			if _, err := ws.MergeCellsAt(mc.Ref); err != nil {
				return fmt.Errorf("merged cells %q: %w", mc.Ref, err)
			}
		}
	}
	// The filter range grows with the cells, so it is set after them.
	switch {
	case doc.AutoFilter != nil && doc.AutoFilter.Ref != "":
		_ = ws.SetAutoFilterRange(doc.AutoFilter.Ref)
	case filterRef != "":
		_ = ws.SetAutoFilterRange(filterRef)
	}
	if doc.SheetViews != nil && len(doc.SheetViews.SheetView) > 0 {
		v := doc.SheetViews.SheetView[0]
		readSheetView(ws, &v)
		if v.TabSelected {
			p.wb.selected = len(p.wb.worksheets) - 1
		}
	}
	if doc.SheetProtection != nil {
		readSheetProtection(ws, doc.SheetProtection)
	}
	return nil
}

func (p *packageReader) style(idx int) *styles.Style {
	if idx < 0 || idx >= len(p.xfs) {
		return nil
	}
	return p.xfs[idx]
}

func (p *packageReader) readColumns(ws *worksheet.Worksheet, cols []xlsxCol) {
	for _, c := range cols {
		first, last := c.Min-1, c.Max-1
		if first < 0 || last < first {
			continue
		}
		last = min(last, address.MaxColumn)
		style := p.style(c.Style)
		for n := first; n <= last; n++ {
			if c.Width > 0 || c.CustomWidth {
				_ = ws.SetColumnWidth(n, min(c.Width, worksheet.MaxColumnWidth))
			}
			if c.Hidden {
				_ = ws.AddHiddenColumn(n)
			}
			if style != nil {
				_ = ws.SetColumnDefaultStyle(n, style)
			}
		}
	}
}

func (p *packageReader) readRows(ws *worksheet.Worksheet, rows []xlsxRow) error {
	prevRow := -1
	for _, r := range rows {
		row := r.R - 1
		if r.R == 0 {
			row = prevRow + 1
		}
		if err := address.ValidateRow(row); err != nil {
			return err
		}
		prevRow = row
		if r.CustomHeight && r.Ht > 0 {
			_ = ws.SetRowHeight(row, min(r.Ht, worksheet.MaxRowHeight))
		}
		if r.Hidden {
			_ = ws.AddHiddenRow(row)
		}
		prevCol := -1
		for _, xc := range r.C {
			a := address.Address{Column: prevCol + 1, Row: row}
			if xc.R != "" {
				parsed, err := address.Parse(xc.R)
				if err != nil {
					return err
				}
				a = parsed.Relative()
			}
			prevCol = a.Column
			c, err := p.cell(&xc, a)
			if err != nil {
				return fmt.Errorf("cell %s: %w", a.Key(), err)
			}
			if err := ws.PutCell(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// cell converts one c element.  Numbers under a date style become
// time.Time values and numbers under a time style time.Duration values.
func (p *packageReader) cell(x *xlsxC, a address.Address) (*worksheet.Cell, error) {
	style := p.style(x.S)
	v := ""
	if x.V != nil {
		v = *x.V
	}
	var (
		value any
		typ   = worksheet.TypeDefault
	)
	switch {
	case x.F != nil && x.F.Value != "":
		value, typ = x.F.Value, worksheet.TypeFormula
	case x.T == "s":
		idx, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("shared string index %q: %w", v, xlerr.ErrFormat)
		}
		s, ok := p.sst.Lookup(idx)
		if !ok {
			return nil, fmt.Errorf("shared string index %d out of range: %w", idx, xlerr.ErrFormat)
		}
		value = s
	case x.T == "inlineStr":
		if x.Is != nil {
			var b strings.Builder
			b.WriteString(x.Is.T)
			for _, r := range x.Is.R {
				b.WriteString(r.T)
			}
			value = b.String()
		} else {
			value = v
		}
	case x.T == "str" || x.T == "e":
		value = v
	case x.T == "b":
		value = v == "1" || v == "true"
	case x.T == "d":
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			t, err = time.Parse("2006-01-02T15:04:05", v)
		}
		if err != nil {
			value = v
		} else {
			value = t
		}
	case x.V == nil:
		typ = worksheet.TypeEmpty
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("number %q: %w", v, xlerr.ErrFormat)
		}
		value = p.numberValue(f, style)
	}
	c := worksheet.NewCell(value, typ, a)
	c.Style = style
	return c, nil
}

func (p *packageReader) numberValue(f float64, style *styles.Style) any {
	if style == nil {
		return f
	}
	switch {
	case style.NumberFormat.IsTimeFormat():
		return oadate.SerialToDuration(f)
	case style.NumberFormat.IsDateFormat():
		t, err := oadate.FromSerial(f, p.wb.Date1904)
		if err != nil {
			return f
		}
		return t
	}
	return f
}

func readSheetView(ws *worksheet.Worksheet, v *xlsxSheetView) {
	on := func(b *bool) bool { return b == nil || *b }
	ws.ShowGridLines = on(v.ShowGridLines)
	ws.ShowRowColumnHeaders = on(v.ShowRowColHeaders)
	ws.ShowRuler = on(v.ShowRuler)
	if v.View != "" {
		ws.ViewType = worksheet.SheetViewType(v.View)
	}
	if v.ZoomScale != nil {
		_ = ws.SetZoomFactor(*v.ZoomScale)
	}
	if v.Pane != nil {
		readPane(ws, v.Pane)
	}
	for _, sel := range v.Selection {
		for _, ref := range strings.Fields(sel.SQRef) {
			_ = ws.AddSelectedCellsAt(ref)
		}
	}
}

// readPane restores a split.  A frozen pane is counted in cells; any other
// pane is measured in twips.  A pane that fails validation is dropped.
func readPane(ws *worksheet.Worksheet, x *xlsxPane) {
	active := worksheet.PaneTopLeft
	if x.ActivePane != "" {
		if p, err := worksheet.ParsePane(x.ActivePane); err == nil {
			active = p
		}
	}
	frozen := x.State == "frozen" || x.State == "frozenSplit"
	cols, rows := int(x.XSplit), int(x.YSplit)
	var topLeft address.Address
	if x.TopLeftCell != "" {
		a, err := address.Parse(x.TopLeftCell)
		if err != nil {
			return
		}
		topLeft = a.Relative()
	} else if frozen {
		topLeft = address.Address{Column: cols, Row: rows}
	}

	if frozen {
		var err error
		switch {
		case cols > 0 && rows > 0:
			err = ws.SetSplitCells(cols, rows, true, topLeft, active)
		case cols > 0:
			err = ws.SetVerticalSplitColumns(cols, true, topLeft, active)
		case rows > 0:
			err = ws.SetHorizontalSplitRows(rows, true, topLeft, active)
		}
		if err != nil {
			ws.ResetSplit()
		}
		return
	}
	var width, height *float64
	if x.XSplit > 0 {
		w := twipsToWidth(x.XSplit)
		width = &w
	}
	if x.YSplit > 0 {
		h := twipsToHeight(x.YSplit)
		height = &h
	}
	if width == nil && height == nil {
		return
	}
	if err := ws.SetSplit(width, height, topLeft, active); err != nil {
		ws.ResetSplit()
	}
}

// readSheetProtection applies the sheetProtection element.  Missing
// attributes take their schema defaults: objects, scenarios and cell
// selection are allowed, everything else is locked.
func readSheetProtection(ws *worksheet.Worksheet, x *xlsxSheetProtection) {
	attrs := map[worksheet.SheetProtectionValue]*bool{
		worksheet.ProtectObjects:             x.Objects,
		worksheet.ProtectScenarios:           x.Scenarios,
		worksheet.ProtectFormatCells:         x.FormatCells,
		worksheet.ProtectFormatColumns:       x.FormatColumns,
		worksheet.ProtectFormatRows:          x.FormatRows,
		worksheet.ProtectInsertColumns:       x.InsertColumns,
		worksheet.ProtectInsertRows:          x.InsertRows,
		worksheet.ProtectInsertHyperlinks:    x.InsertHyperlinks,
		worksheet.ProtectDeleteColumns:       x.DeleteColumns,
		worksheet.ProtectDeleteRows:          x.DeleteRows,
		worksheet.ProtectSelectLockedCells:   x.SelectLockedCells,
		worksheet.ProtectSort:                x.Sort,
		worksheet.ProtectAutoFilter:          x.AutoFilter,
		worksheet.ProtectPivotTables:         x.PivotTables,
		worksheet.ProtectSelectUnlockedCells: x.SelectUnlockedCells,
	}
	for _, v := range worksheet.SheetProtectionValues {
		locked := true
		switch v {
		case worksheet.ProtectObjects, worksheet.ProtectScenarios,
			worksheet.ProtectSelectLockedCells, worksheet.ProtectSelectUnlockedCells:
			locked = false
		}
		if a := attrs[v]; a != nil {
			locked = *a
		}
		if !locked {
			ws.AddAllowedActionOnSheetProtection(v)
		}
	}
	for _, v := range ws.AllowedActions() {
		if a := attrs[v]; a != nil && *a {
			ws.RemoveAllowedActionOnSheetProtection(v)
		}
	}
	if x.Password != "" {
		ws.SetSheetProtectionPasswordHash(x.Password)
	}
	ws.UseSheetProtection = x.Sheet != nil && *x.Sheet
}

// ── archive access ───────────────────────────────────────────────────────────

// readZipEntry reads the full content of a named file inside the ZIP.
func (p *packageReader) readZipEntry(name string) ([]byte, error) {
	for _, f := range p.zf.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			data, readErr := io.ReadAll(rc)
			closeErr := rc.Close()
			if readErr != nil {
				return nil, readErr
			}
			// Propagate decompressor checksum / close errors even when the read
			// appeared to succeed (e.g. truncated deflate stream).
			if closeErr != nil {
				return nil, closeErr
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("%q not found in archive", name)
}

// readXML reads and decodes a required part.
func (p *packageReader) readXML(name string, v any) error {
	data, err := p.readZipEntry(name)
	if err != nil {
		return fmt.Errorf("workbook: %w: %w", xlerr.ErrFormat, err)
	}
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return fmt.Errorf("workbook: parse %s: %w: %w", name, xlerr.ErrFormat, err)
	}
	return nil
}
