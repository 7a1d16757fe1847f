package workbook

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/TsubasaBE/go-xlsx/address"
	"github.com/TsubasaBE/go-xlsx/internal/oadate"
	"github.com/TsubasaBE/go-xlsx/internal/rels"
	"github.com/TsubasaBE/go-xlsx/stringtable"
	"github.com/TsubasaBE/go-xlsx/worksheet"
)

// filterDatabaseName is the hidden defined name Excel expects next to every
// autoFilter element.
const filterDatabaseName = "_xlnm._FilterDatabase"

// Save writes the workbook to the named file, replacing it.
func (wb *Workbook) Save(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("workbook: save %q: %w", name, err)
	}
	_, err = wb.WriteTo(f)
	closeErr := f.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return fmt.Errorf("workbook: save %q: %w", name, closeErr)
	}
	return nil
}

// WriteTo writes the workbook as an .xlsx package to w.  The workbook is
// validated first; nothing is written when validation fails.
func (wb *Workbook) WriteTo(w io.Writer) (int64, error) {
	if err := wb.Validate(); err != nil {
		return 0, err
	}
	ss, err := newStyleSheet()
	if err != nil {
		return 0, err
	}
	pw := &packageWriter{wb: wb, sst: stringtable.New(), styles: ss}
	data, err := pw.build()
	if err != nil {
		return 0, err
	}
	return io.Copy(w, bytes.NewReader(data))
}

// packageWriter renders the parts of one package.  Worksheets are rendered
// first because they fill the shared string table and the style sheet.
type packageWriter struct {
	wb     *Workbook
	sst    *stringtable.StringTable
	styles *styleSheet

	buf bytes.Buffer
	zw  *zip.Writer
}

func (p *packageWriter) build() ([]byte, error) {
	sheets := make([][]byte, len(p.wb.worksheets))
	for i, ws := range p.wb.worksheets {
		ws.RecalculateAutoFilter()
		doc, err := p.worksheetXML(ws, i == p.wb.selected)
		if err != nil {
			return nil, fmt.Errorf("workbook: worksheet %q: %w", ws.Name(), err)
		}
		if sheets[i], err = marshalPart(doc); err != nil {
			return nil, err
		}
	}

	var wbRels rels.Relationships
	types := xlsxTypes{
		Xmlns: nsContentTypes,
		Defaults: []xlsxDefault{
			{Extension: "rels", ContentType: ctRels},
			{Extension: "xml", ContentType: ctXML},
		},
		Overrides: []xlsxOverride{{PartName: "/" + pathWorkbook, ContentType: ctWorkbook}},
	}
	sheetRefs := make([]xlsxSheet, len(sheets))
	for i, ws := range p.wb.worksheets {
		target := "worksheets/sheet" + strconv.Itoa(i+1) + ".xml"
		sheetRefs[i] = xlsxSheet{Name: ws.Name(), SheetID: ws.SheetID, RID: wbRels.Add(rels.TypeWorksheet, target)}
		if ws.Hidden {
			sheetRefs[i].State = "hidden"
		}
		types.Overrides = append(types.Overrides, xlsxOverride{PartName: "/xl/" + target, ContentType: ctWorksheet})
	}
	wbRels.Add(rels.TypeStyles, "styles.xml")
	wbRels.Add(rels.TypeSharedStrings, "sharedStrings.xml")
	types.Overrides = append(types.Overrides,
		xlsxOverride{PartName: "/" + pathStyles, ContentType: ctStyles},
		xlsxOverride{PartName: "/" + pathSST, ContentType: ctSharedStrings},
		xlsxOverride{PartName: "/" + pathCore, ContentType: ctCore},
		xlsxOverride{PartName: "/" + pathApp, ContentType: ctApp},
	)

	var rootRels rels.Relationships
	rootRels.Add(rels.TypeOfficeDocument, pathWorkbook)
	rootRels.Add(rels.TypeCoreProperties, pathCore)
	rootRels.Add(rels.TypeExtendedProperties, pathApp)

	p.zw = zip.NewWriter(&p.buf)
	if err := p.writeXML(pathContentTypes, types); err != nil {
		return nil, err
	}
	if err := p.writeRels(pathRootRels, &rootRels); err != nil {
		return nil, err
	}
	if err := p.writeXML(pathCore, p.coreXML()); err != nil {
		return nil, err
	}
	if err := p.writeXML(pathApp, xlsxApp{
		Xmlns:       nsExtended,
		Application: p.wb.Metadata.Application,
		Company:     p.wb.Metadata.Company,
	}); err != nil {
		return nil, err
	}
	if err := p.writeXML(pathWorkbook, p.workbookXML(sheetRefs)); err != nil {
		return nil, err
	}
	if err := p.writeRels(rels.PartRelsPath(pathWorkbook), &wbRels); err != nil {
		return nil, err
	}
	for i, data := range sheets {
		if err := p.writePart("xl/worksheets/sheet"+strconv.Itoa(i+1)+".xml", data); err != nil {
			return nil, err
		}
	}
	if err := p.writeXML(pathStyles, p.styles.marshal()); err != nil {
		return nil, err
	}
	var sst bytes.Buffer
	if _, err := p.sst.WriteTo(&sst); err != nil {
		return nil, fmt.Errorf("workbook: %w", err)
	}
	if err := p.writePart(pathSST, sst.Bytes()); err != nil {
		return nil, err
	}
	if err := p.zw.Close(); err != nil {
		return nil, fmt.Errorf("workbook: close archive: %w", err)
	}
	return p.buf.Bytes(), nil
}

func marshalPart(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("workbook: marshal %T: %w", v, err)
	}
	return buf.Bytes(), nil
}

func (p *packageWriter) writeXML(name string, v any) error {
	data, err := marshalPart(v)
	if err != nil {
		return err
	}
	return p.writePart(name, data)
}

func (p *packageWriter) writeRels(name string, r *rels.Relationships) error {
	data, err := r.Marshal()
	if err != nil {
		return fmt.Errorf("workbook: %s: %w", name, err)
	}
	return p.writePart(name, data)
}

func (p *packageWriter) writePart(name string, data []byte) error {
	w, err := p.zw.Create(name)
	if err != nil {
		return fmt.Errorf("workbook: create %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("workbook: write %s: %w", name, err)
	}
	return nil
}

// ── workbook parts ───────────────────────────────────────────────────────────

func (p *packageWriter) workbookXML(sheets []xlsxSheet) *xlsxWorkbook {
	wb := p.wb
	doc := &xlsxWorkbook{
		Xmlns:     nsSpreadsheetML,
		XmlnsR:    nsRelationships,
		BookViews: &xlsxBookViews{WorkbookView: []xlsxWorkbookView{{ActiveTab: wb.selected}}},
		Sheets:    xlsxSheets{Sheet: sheets},
	}
	if wb.Date1904 {
		doc.WorkbookPr = &xlsxWorkbookPr{Date1904: true}
	}
	if wb.UseWorkbookProtection {
		doc.WorkbookProtection = &xlsxWorkbookProtection{
			WorkbookPassword: wb.passwordHash,
			LockStructure:    wb.LockStructure,
			LockWindows:      wb.LockWindows,
		}
	}
	var names []xlsxDefinedName
	for i, ws := range wb.worksheets {
		r := ws.AutoFilterRange()
		if r == nil {
			continue
		}
		local := i
		names = append(names, xlsxDefinedName{
			Name:         filterDatabaseName,
			LocalSheetID: &local,
			Hidden:       true,
			Value:        quoteSheetName(ws.Name()) + "!" + absoluteRange(*r),
		})
	}
	if len(names) > 0 {
		doc.DefinedNames = &xlsxDefinedNames{DefinedName: names}
	}
	return doc
}

// quoteSheetName quotes a sheet name for use in a formula reference.
func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func absoluteRange(r address.Range) string {
	abs := func(a address.Address) string {
		a.Type = address.FixedRowAndColumn
		return a.String()
	}
	return abs(r.Start) + ":" + abs(r.End)
}

func (p *packageWriter) coreXML() *xlsxCoreOut {
	m := p.wb.Metadata
	doc := &xlsxCoreOut{
		XmlnsCP:     nsCoreProperties,
		XmlnsDC:     nsDC,
		XmlnsDCT:    nsDCTerms,
		XmlnsXSI:    nsXSI,
		Title:       m.Title,
		Subject:     m.Subject,
		Creator:     m.Creator,
		Keywords:    m.Keywords,
		Description: m.Description,
		Category:    m.Category,
	}
	w3c := func(t time.Time) *xlsxW3CDTF {
		if t.IsZero() {
			return nil
		}
		return &xlsxW3CDTF{Type: "dcterms:W3CDTF", Value: t.UTC().Format(time.RFC3339)}
	}
	doc.Created = w3c(m.Created)
	doc.Modified = w3c(m.Modified)
	return doc
}

// ── worksheet part ───────────────────────────────────────────────────────────

func (p *packageWriter) worksheetXML(ws *worksheet.Worksheet, selected bool) (*xlsxWorksheet, error) {
	doc := &xlsxWorksheet{
		Xmlns:     nsSpreadsheetML,
		XmlnsR:    nsRelationships,
		Dimension: &xlsxDimension{Ref: dimension(ws)},
		SheetViews: &xlsxSheetViews{
			SheetView: []xlsxSheetView{sheetViewXML(ws, selected)},
		},
		SheetFormatPr: &xlsxSheetFormatPr{
			DefaultColWidth:  ws.DefaultColumnWidth(),
			DefaultRowHeight: ws.DefaultRowHeight(),
			CustomHeight:     ws.DefaultRowHeight() != worksheet.DefaultRowHeight,
		},
	}

	cols, err := p.colsXML(ws)
	if err != nil {
		return nil, err
	}
	doc.Cols = cols

	rows, err := p.rowsXML(ws)
	if err != nil {
		return nil, err
	}
	doc.SheetData.Row = rows

	if ws.UseSheetProtection {
		doc.SheetProtection = sheetProtectionXML(ws)
	}
	if r := ws.AutoFilterRange(); r != nil {
		doc.AutoFilter = &xlsxAutoFilter{Ref: r.Key()}
	}
	if merged := ws.MergedCells(); len(merged) > 0 {
		mc := &xlsxMergeCells{Count: len(merged)}
		for _, r := range sortedRanges(merged) {
			mc.MergeCell = append(mc.MergeCell, xlsxMergeCell{Ref: r.Key()})
		}
		doc.MergeCells = mc
	}
	return doc, nil
}

func dimension(ws *worksheet.Worksheet) string {
	first, last := ws.FirstCellAddress(), ws.LastCellAddress()
	if first == nil || last == nil {
		return "A1"
	}
	if first.Equal(*last) {
		return first.Key()
	}
	return first.Key() + ":" + last.Key()
}

func sortedRanges(m map[string]address.Range) []address.Range {
	out := make([]address.Range, 0, len(m))
	for _, r := range m {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b address.Range) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return a.End.Compare(b.End)
	})
	return out
}

func (p *packageWriter) colsXML(ws *worksheet.Worksheet) (*xlsxCols, error) {
	columns := ws.Columns()
	numbers := make([]int, 0, len(columns))
	for n, c := range columns {
		if c.Width != ws.DefaultColumnWidth() || c.IsHidden || c.DefaultStyle != nil {
			numbers = append(numbers, n)
		}
	}
	if len(numbers) == 0 {
		return nil, nil
	}
	slices.Sort(numbers)
	cols := &xlsxCols{}
	for _, n := range numbers {
		c := columns[n]
		s, err := p.styles.index(c.DefaultStyle)
		if err != nil {
			return nil, err
		}
		cols.Col = append(cols.Col, xlsxCol{
			Min:         n + 1,
			Max:         n + 1,
			Width:       c.Width,
			Style:       s,
			Hidden:      c.IsHidden,
			CustomWidth: c.Width != ws.DefaultColumnWidth(),
		})
	}
	return cols, nil
}

func (p *packageWriter) rowsXML(ws *worksheet.Worksheet) ([]xlsxRow, error) {
	byRow := make(map[int]*xlsxRow)
	row := func(r int) *xlsxRow {
		x, ok := byRow[r]
		if !ok {
			x = &xlsxRow{R: r + 1}
			byRow[r] = x
		}
		return x
	}
	for r, h := range ws.RowHeights() {
		x := row(r)
		x.Ht, x.CustomHeight = h, true
	}
	for r, hidden := range ws.HiddenRows() {
		if hidden {
			row(r).Hidden = true
		}
	}
	// SortedCells orders by row, then column.
	for _, c := range ws.SortedCells() {
		xc, err := p.cellXML(c)
		if err != nil {
			return nil, fmt.Errorf("cell %s: %w", c.Address().Key(), err)
		}
		x := row(c.Row())
		x.C = append(x.C, xc)
	}

	keys := make([]int, 0, len(byRow))
	for r := range byRow {
		keys = append(keys, r)
	}
	slices.Sort(keys)
	out := make([]xlsxRow, len(keys))
	for i, r := range keys {
		out[i] = *byRow[r]
	}
	return out, nil
}

func (p *packageWriter) cellXML(c *worksheet.Cell) (xlsxC, error) {
	x := xlsxC{R: c.Address().Key()}
	s, err := p.styles.index(c.Style)
	if err != nil {
		return x, err
	}
	x.S = s
	value := func(v string) { x.V = &v }
	number := func(f float64) {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			x.T = "e"
			value("#NUM!")
			return
		}
		value(strconv.FormatFloat(f, 'g', -1, 64))
	}

	switch c.DataType {
	case worksheet.TypeEmpty:
	case worksheet.TypeFormula:
		x.F = &xlsxF{Value: strings.TrimPrefix(c.String(), "=")}
	case worksheet.TypeBool:
		b, ok := c.Value.(bool)
		if !ok {
			b, _ = strconv.ParseBool(c.String())
		}
		x.T = "b"
		if b {
			value("1")
		} else {
			value("0")
		}
	case worksheet.TypeNumber:
		f, ok := worksheet.NumericValue(c.Value)
		if !ok {
			p.sharedString(&x, c.String())
			break
		}
		number(f)
	case worksheet.TypeDate:
		switch v := c.Value.(type) {
		case time.Time:
			serial, err := oadate.ToSerial(v, p.wb.Date1904)
			if err != nil {
				return x, err
			}
			number(serial)
		default:
			f, ok := worksheet.NumericValue(v)
			if !ok {
				p.sharedString(&x, c.String())
				break
			}
			number(f)
		}
	case worksheet.TypeTime:
		switch v := c.Value.(type) {
		case time.Duration:
			number(oadate.DurationToSerial(v))
		default:
			f, ok := worksheet.NumericValue(v)
			if !ok {
				p.sharedString(&x, c.String())
				break
			}
			number(f)
		}
	default:
		p.sharedString(&x, c.String())
	}
	return x, nil
}

func (p *packageWriter) sharedString(x *xlsxC, s string) {
	idx := strconv.Itoa(p.sst.Add(s))
	x.T = "s"
	x.V = &idx
}

// ── sheet view ───────────────────────────────────────────────────────────────

func sheetViewXML(ws *worksheet.Worksheet, selected bool) xlsxSheetView {
	off := func(b bool) *bool {
		if b {
			return nil
		}
		f := false
		return &f
	}
	zoom := ws.ZoomFactor()
	v := xlsxSheetView{
		TabSelected:       selected,
		ShowGridLines:     off(ws.ShowGridLines),
		ShowRowColHeaders: off(ws.ShowRowColumnHeaders),
		ShowRuler:         off(ws.ShowRuler),
		ZoomScale:         &zoom,
		Pane:              paneXML(ws),
	}
	if ws.ViewType != worksheet.ViewNormal && ws.ViewType != "" {
		v.View = string(ws.ViewType)
	}
	if sel := ws.SelectedCells(); len(sel) > 0 {
		refs := make([]string, len(sel))
		for i, r := range sel {
			refs[i] = rangeRef(r)
		}
		s := xlsxSelection{ActiveCell: sel[0].Start.Key(), SQRef: strings.Join(refs, " ")}
		if v.Pane != nil {
			s.Pane = v.Pane.ActivePane
		}
		v.Selection = []xlsxSelection{s}
	}
	return v
}

// rangeRef renders a range as a reference; single cells have no colon.
func rangeRef(r address.Range) string {
	if r.Start.Equal(r.End) {
		return r.Start.Key()
	}
	return r.Key()
}

// paneXML renders the split of ws.  A frozen counted split is written in
// cells; every other split is written in twips, counted splits summing the
// widths and heights of the columns and rows left of and above the split.
func paneXML(ws *worksheet.Worksheet) *xlsxPane {
	pane := &xlsxPane{}
	if split := ws.PaneSplitAddress(); split != nil {
		if freeze := ws.FreezeSplitPanes(); freeze != nil && *freeze {
			pane.XSplit = float64(split.Column)
			pane.YSplit = float64(split.Row)
			pane.State = "frozen"
		} else {
			if split.Column > 0 {
				w := 0.0
				for c := range split.Column {
					w += columnWidth(ws, c)
				}
				pane.XSplit = widthToTwips(w)
			}
			if split.Row > 0 {
				h := 0.0
				for r := range split.Row {
					h += ws.RowHeight(r)
				}
				pane.YSplit = heightToTwips(h)
			}
			pane.State = "split"
		}
	} else {
		if w := ws.PaneSplitLeftWidth(); w != nil && *w > 0 {
			pane.XSplit = widthToTwips(*w)
		}
		if h := ws.PaneSplitTopHeight(); h != nil && *h > 0 {
			pane.YSplit = heightToTwips(*h)
		}
		pane.State = "split"
	}
	if pane.XSplit == 0 && pane.YSplit == 0 {
		return nil
	}
	if tl := ws.PaneSplitTopLeftCell(); tl != nil {
		pane.TopLeftCell = tl.Key()
	}
	if ap := ws.ActivePane(); ap != nil {
		pane.ActivePane = ap.String()
	}
	return pane
}

func columnWidth(ws *worksheet.Worksheet, column int) float64 {
	if c, ok := ws.Columns()[column]; ok {
		return c.Width
	}
	return ws.DefaultColumnWidth()
}

// ── sheet protection ─────────────────────────────────────────────────────────

// sheetProtectionXML writes every action explicitly; an attribute value of
// true locks the action.
func sheetProtectionXML(ws *worksheet.Worksheet) *xlsxSheetProtection {
	allowed := ws.AllowedActions()
	locked := func(v worksheet.SheetProtectionValue) *bool {
		b := !slices.Contains(allowed, v)
		return &b
	}
	on := true
	return &xlsxSheetProtection{
		Password:            ws.SheetProtectionPasswordHash(),
		Sheet:               &on,
		Objects:             locked(worksheet.ProtectObjects),
		Scenarios:           locked(worksheet.ProtectScenarios),
		FormatCells:         locked(worksheet.ProtectFormatCells),
		FormatColumns:       locked(worksheet.ProtectFormatColumns),
		FormatRows:          locked(worksheet.ProtectFormatRows),
		InsertColumns:       locked(worksheet.ProtectInsertColumns),
		InsertRows:          locked(worksheet.ProtectInsertRows),
		InsertHyperlinks:    locked(worksheet.ProtectInsertHyperlinks),
		DeleteColumns:       locked(worksheet.ProtectDeleteColumns),
		DeleteRows:          locked(worksheet.ProtectDeleteRows),
		SelectLockedCells:   locked(worksheet.ProtectSelectLockedCells),
		Sort:                locked(worksheet.ProtectSort),
		AutoFilter:          locked(worksheet.ProtectAutoFilter),
		PivotTables:         locked(worksheet.ProtectPivotTables),
		SelectUnlockedCells: locked(worksheet.ProtectSelectUnlockedCells),
	}
}

// ── units ────────────────────────────────────────────────────────────────────

// Split positions are stored in twips (1/20 point).  Column widths are in
// characters of the default font, 7 pixels wide plus 5 pixels padding, at
// 15 twips per pixel.

func widthToTwips(w float64) float64 { return math.Round((w*7 + 5) * 15) }

func twipsToWidth(x float64) float64 { return max((x/15-5)/7, 0) }

func heightToTwips(h float64) float64 { return math.Round(h * 20) }

func twipsToHeight(y float64) float64 { return y / 20 }
