package workbook

import (
	"fmt"
	"strconv"

	"github.com/TsubasaBE/go-xlsx/styles"
)

// hashable is implemented by the style components that are deduplicated in
// the style sheet.
type hashable[T any] interface {
	Equal(T) bool
	Hash() uint64
}

// componentSet keeps the distinct components of one kind in the order they
// are first seen.  The index of a component is its id in the style sheet.
type componentSet[T hashable[T]] struct {
	items  []T
	byHash map[uint64][]int
}

func (s *componentSet[T]) add(v T) int {
	if s.byHash == nil {
		s.byHash = make(map[uint64][]int)
	}
	h := v.Hash()
	for _, i := range s.byHash[h] {
		if s.items[i].Equal(v) {
			return i
		}
	}
	i := len(s.items)
	s.items = append(s.items, v)
	s.byHash[h] = append(s.byHash[h], i)
	return i
}

// ── writing ──────────────────────────────────────────────────────────────────

// styleSheet collects the styles used by the cells of a workbook while the
// worksheets are rendered, and assigns their cellXfs indices.  Index 0 is
// the default style and is used for cells without style.
type styleSheet struct {
	fonts   componentSet[*styles.Font]
	fills   componentSet[*styles.Fill]
	borders componentSet[*styles.Border]
	xfs     []*styles.Style
	xfIndex map[uint64][]int
	// numFmts maps a custom format code to its numFmtId.
	numFmts     map[string]int
	numFmtOrder []string
	usedNumFmt  map[int]bool
	nextNumFmt  int
}

func newStyleSheet() (*styleSheet, error) {
	ss := &styleSheet{
		xfIndex:    make(map[uint64][]int),
		numFmts:    make(map[string]int),
		usedNumFmt: make(map[int]bool),
		nextNumFmt: styles.CustomFormatStart,
	}
	gray := styles.NewFill()
	gray.PatternFill = styles.PatternGray125
	ss.fonts.add(styles.NewFont())
	ss.fills.add(styles.NewFill())
	ss.fills.add(gray)
	ss.borders.add(styles.NewBorder())
	if _, err := ss.index(styles.NewInternal("Normal")); err != nil {
		return nil, fmt.Errorf("workbook: default style: %w", err)
	}
	return ss, nil
}

// index returns the cellXfs index of s, registering s and its components
// on first use.  A nil style maps to the default style.
func (ss *styleSheet) index(s *styles.Style) (int, error) {
	if s == nil {
		return 0, nil
	}
	h, err := s.Hash()
	if err != nil {
		return 0, err
	}
	for _, i := range ss.xfIndex[h] {
		if ss.xfs[i].Equal(s) {
			return i, nil
		}
	}
	i := len(ss.xfs)
	ss.xfs = append(ss.xfs, s)
	ss.xfIndex[h] = append(ss.xfIndex[h], i)
	s.InternalID = i
	s.Font.InternalID = ss.fonts.add(s.Font)
	s.Fill.InternalID = ss.fills.add(s.Fill)
	s.Border.InternalID = ss.borders.add(s.Border)
	s.CellXf.InternalID = i
	s.NumberFormat.InternalID = ss.numFmtID(s.NumberFormat)
	return i, nil
}

// numFmtID returns the numFmtId of n.  A custom format keeps its preferred
// id while that id is free; otherwise it gets the next free id.
func (ss *styleSheet) numFmtID(n *styles.NumberFormat) int {
	if !n.IsCustomFormat() {
		return int(n.Number)
	}
	if id, ok := ss.numFmts[n.CustomFormatCode]; ok {
		return id
	}
	id := n.CustomFormatID()
	if ss.usedNumFmt[id] {
		for ss.usedNumFmt[ss.nextNumFmt] {
			ss.nextNumFmt++
		}
		id = ss.nextNumFmt
	}
	ss.usedNumFmt[id] = true
	ss.numFmts[n.CustomFormatCode] = id
	ss.numFmtOrder = append(ss.numFmtOrder, n.CustomFormatCode)
	return id
}

// marshal renders the collected styles as xl/styles.xml.
func (ss *styleSheet) marshal() *xlsxStyleSheet {
	out := &xlsxStyleSheet{Xmlns: nsSpreadsheetML}
	if len(ss.numFmtOrder) > 0 {
		out.NumFmts = &xlsxNumFmts{Count: len(ss.numFmtOrder)}
		for _, code := range ss.numFmtOrder {
			out.NumFmts.NumFmt = append(out.NumFmts.NumFmt, xlsxNumFmt{NumFmtID: ss.numFmts[code], FormatCode: code})
		}
	}
	for _, f := range ss.fonts.items {
		out.Fonts.Font = append(out.Fonts.Font, fontXML(f))
	}
	out.Fonts.Count = len(out.Fonts.Font)
	for _, f := range ss.fills.items {
		out.Fills.Fill = append(out.Fills.Fill, fillXML(f))
	}
	out.Fills.Count = len(out.Fills.Fill)
	for _, b := range ss.borders.items {
		out.Borders.Border = append(out.Borders.Border, borderXML(b))
	}
	out.Borders.Count = len(out.Borders.Border)

	zero := 0
	out.CellStyleXfs = &xlsxCellStyleXfs{Count: 1, Xf: []xlsxXf{{}}}
	for _, s := range ss.xfs {
		out.CellXfs.Xf = append(out.CellXfs.Xf, ss.xfXML(s))
	}
	out.CellXfs.Count = len(out.CellXfs.Xf)
	out.CellStyles = &xlsxCellStyles{Count: 1, CellStyle: []xlsxCellStyle{{Name: "Normal", BuiltinID: &zero}}}
	return out
}

func (ss *styleSheet) xfXML(s *styles.Style) xlsxXf {
	zero := 0
	x := xlsxXf{
		NumFmtID: ss.numFmtID(s.NumberFormat),
		FontID:   ss.fonts.add(s.Font),
		FillID:   ss.fills.add(s.Fill),
		BorderID: ss.borders.add(s.Border),
		XfID:     &zero,
	}
	x.ApplyNumberFormat = x.NumFmtID != 0
	x.ApplyFont = x.FontID != 0
	x.ApplyFill = x.FillID != 0
	x.ApplyBorder = x.BorderID != 0
	xf := s.CellXf
	if xf.HasAlignment() {
		x.ApplyAlignment = true
		x.Alignment = &xlsxAlignment{
			Horizontal:   string(xf.HorizontalAlign),
			Vertical:     string(xf.VerticalAlign),
			TextRotation: xf.InternalRotation(),
			WrapText:     xf.Alignment == styles.TextBreakWrapText,
			Indent:       xf.Indent(),
			ShrinkToFit:  xf.Alignment == styles.TextBreakShrinkToFit,
		}
	}
	if xf.Locked || xf.Hidden {
		locked, hidden := xf.Locked, xf.Hidden
		x.ApplyProtection = true
		x.Protection = &xlsxProtection{Locked: &locked, Hidden: &hidden}
	}
	return x
}

func fontXML(f *styles.Font) xlsxFont {
	flag := func(b bool) *xlsxBoolVal {
		if !b {
			return nil
		}
		return &xlsxBoolVal{}
	}
	x := xlsxFont{
		B:        flag(f.Bold),
		I:        flag(f.Italic),
		Strike:   flag(f.Strike),
		Condense: flag(f.Condense),
		Extend:   flag(f.Extend),
		Outline:  flag(f.Outline),
		Shadow:   flag(f.Shadow),
		Sz:       &xlsxFloatVal{Val: f.Size()},
		Name:     &xlsxStrVal{Val: f.Name()},
	}
	if f.Underline != styles.UnderlineNone {
		x.U = &xlsxStrVal{Val: string(f.Underline)}
	}
	if f.VerticalAlign != styles.VerticalTextNone {
		x.VertAlign = &xlsxStrVal{Val: string(f.VerticalAlign)}
	}
	switch {
	case f.ColorValue() != "":
		x.Color = &xlsxColor{RGB: f.ColorValue()}
	case f.ColorTheme != 0:
		theme := f.ColorTheme
		x.Color = &xlsxColor{Theme: &theme}
	}
	if f.Family != "" {
		x.Family = &xlsxStrVal{Val: f.Family}
	}
	if f.Charset != "" {
		x.Charset = &xlsxStrVal{Val: f.Charset}
	}
	if f.Scheme != styles.SchemeNone {
		x.Scheme = &xlsxStrVal{Val: string(f.Scheme)}
	}
	return x
}

func fillXML(f *styles.Fill) xlsxFill {
	p := &xlsxPatternFill{PatternType: string(f.PatternFill)}
	if !f.IsDefault() {
		p.FgColor = &xlsxColor{RGB: f.ForegroundColor()}
		if f.BackgroundColor() != styles.DefaultFillColor {
			p.BgColor = &xlsxColor{RGB: f.BackgroundColor()}
		} else {
			indexed := f.IndexedColor
			p.BgColor = &xlsxColor{Indexed: &indexed}
		}
	}
	return xlsxFill{PatternFill: p}
}

func borderXML(b *styles.Border) xlsxBorder {
	edge := func(s styles.Side) *xlsxBorderEdge {
		e := &xlsxBorderEdge{Style: string(b.Style(s))}
		if c := b.Color(s); c != "" {
			e.Color = &xlsxColor{RGB: c}
		}
		return e
	}
	return xlsxBorder{
		DiagonalUp:   b.DiagonalUp,
		DiagonalDown: b.DiagonalDown,
		Left:         edge(styles.Left),
		Right:        edge(styles.Right),
		Top:          edge(styles.Top),
		Bottom:       edge(styles.Bottom),
		Diagonal:     edge(styles.Diagonal),
	}
}

// ── reading ──────────────────────────────────────────────────────────────────

// parseStyleSheet converts the cellXfs of a style sheet into styles, one
// per index.  Entries equal to the default style are nil, so that cells
// using them read back without style.  Invalid colours and out-of-range
// attribute values are ignored.
func parseStyleSheet(doc *xlsxStyleSheet) []*styles.Style {
	codes := make(map[int]string)
	if doc.NumFmts != nil {
		for _, nf := range doc.NumFmts.NumFmt {
			codes[nf.NumFmtID] = nf.FormatCode
		}
	}
	fonts := make([]*styles.Font, len(doc.Fonts.Font))
	for i, f := range doc.Fonts.Font {
		fonts[i] = parseFont(f)
	}
	fills := make([]*styles.Fill, len(doc.Fills.Fill))
	for i, f := range doc.Fills.Fill {
		fills[i] = parseFill(f)
	}
	borders := make([]*styles.Border, len(doc.Borders.Border))
	for i, b := range doc.Borders.Border {
		borders[i] = parseBorder(b)
	}

	def := styles.New()
	out := make([]*styles.Style, len(doc.CellXfs.Xf))
	for i, x := range doc.CellXfs.Xf {
		s := styles.New()
		s.Name = "xf" + strconv.Itoa(i)
		if x.FontID >= 0 && x.FontID < len(fonts) {
			s.Font = fonts[x.FontID].Copy()
		}
		if x.FillID >= 0 && x.FillID < len(fills) {
			s.Fill = fills[x.FillID].Copy()
		}
		if x.BorderID >= 0 && x.BorderID < len(borders) {
			s.Border = borders[x.BorderID].Copy()
		}
		s.NumberFormat = parseNumFmt(x.NumFmtID, codes)
		s.CellXf = parseCellXf(x)
		if s.Equal(def) {
			continue
		}
		out[i] = s
	}
	return out
}

func parseNumFmt(id int, codes map[int]string) *styles.NumberFormat {
	code, ok := codes[id]
	if id < styles.CustomFormatStart || !ok {
		n := styles.NewNumberFormat()
		if id >= 0 && id < styles.CustomFormatStart {
			n.Number = styles.FormatNumber(id)
		}
		return n
	}
	n, err := styles.NewCustomNumberFormat(code)
	if err != nil {
		return styles.NewNumberFormat()
	}
	_ = n.SetCustomFormatID(id)
	return n
}

func parseFont(x xlsxFont) *styles.Font {
	f := styles.NewFont()
	f.Bold = x.B.value()
	f.Italic = x.I.value()
	f.Strike = x.Strike.value()
	f.Condense = x.Condense.value()
	f.Extend = x.Extend.value()
	f.Outline = x.Outline.value()
	f.Shadow = x.Shadow.value()
	if x.U != nil {
		switch x.U.Val {
		case "", string(styles.UnderlineSingle):
			f.Underline = styles.UnderlineSingle
		case "none":
			f.Underline = styles.UnderlineNone
		default:
			f.Underline = styles.UnderlineValue(x.U.Val)
		}
	}
	if x.VertAlign != nil && x.VertAlign.Val != "baseline" {
		f.VerticalAlign = styles.VerticalTextAlignValue(x.VertAlign.Val)
	}
	if x.Sz != nil {
		f.SetSize(x.Sz.Val)
	}
	if x.Name != nil && x.Name.Val != "" {
		_ = f.SetName(x.Name.Val)
	}
	f.Scheme = styles.SchemeNone
	if x.Scheme != nil && x.Scheme.Val != "none" {
		f.Scheme = styles.SchemeValue(x.Scheme.Val)
	}
	f.Family = ""
	if x.Family != nil {
		f.Family = x.Family.Val
	}
	if x.Charset != nil {
		f.Charset = x.Charset.Val
	}
	switch c := x.Color; {
	case c == nil:
		f.ColorTheme = 0
	case c.Theme != nil:
		f.ColorTheme = *c.Theme
	case c.RGB != "":
		_ = f.SetColorValue(c.RGB)
	}
	return f
}

func parseFill(x xlsxFill) *styles.Fill {
	f := styles.NewFill()
	p := x.PatternFill
	if p == nil {
		return f
	}
	if p.PatternType != "" {
		f.PatternFill = styles.PatternValue(p.PatternType)
	}
	if p.FgColor != nil && p.FgColor.RGB != "" {
		_ = f.SetForegroundColor(p.FgColor.RGB)
	}
	if p.BgColor != nil {
		if p.BgColor.RGB != "" {
			_ = f.SetBackgroundColor(p.BgColor.RGB)
		}
		if p.BgColor.Indexed != nil {
			f.IndexedColor = *p.BgColor.Indexed
		}
	}
	return f
}

func parseBorder(x xlsxBorder) *styles.Border {
	b := styles.NewBorder()
	b.DiagonalUp = x.DiagonalUp
	b.DiagonalDown = x.DiagonalDown
	edges := map[styles.Side]*xlsxBorderEdge{
		styles.Left:     x.Left,
		styles.Right:    x.Right,
		styles.Top:      x.Top,
		styles.Bottom:   x.Bottom,
		styles.Diagonal: x.Diagonal,
	}
	for side, e := range edges {
		if e == nil {
			continue
		}
		if e.Style != "none" {
			b.SetStyle(side, styles.BorderStyle(e.Style))
		}
		if e.Color != nil && e.Color.RGB != "" {
			_ = b.SetColor(side, e.Color.RGB)
		}
	}
	return b
}

func parseCellXf(x xlsxXf) *styles.CellXf {
	xf := styles.NewCellXf()
	if a := x.Alignment; a != nil {
		xf.HorizontalAlign = styles.HorizontalAlignValue(a.Horizontal)
		xf.VerticalAlign = styles.VerticalAlignValue(a.Vertical)
		switch {
		case a.WrapText:
			xf.Alignment = styles.TextBreakWrapText
		case a.ShrinkToFit:
			xf.Alignment = styles.TextBreakShrinkToFit
		}
		if a.TextRotation != 0 {
			_ = xf.SetTextRotation(styles.RotationFromInternal(a.TextRotation))
		}
		if a.Indent > 0 {
			_ = xf.SetIndent(a.Indent)
		}
		xf.ForceApplyAlignment = x.ApplyAlignment && !xf.HasAlignment()
	}
	if p := x.Protection; p != nil {
		xf.Locked = p.Locked == nil || *p.Locked
		xf.Hidden = p.Hidden != nil && *p.Hidden
	}
	return xf
}
