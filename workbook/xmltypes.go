package workbook

import "encoding/xml"

// XML namespaces used in XLSX files.
const (
	nsSpreadsheetML  = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCoreProperties = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsExtended       = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsDC             = "http://purl.org/dc/elements/1.1/"
	nsDCTerms        = "http://purl.org/dc/terms/"
	nsXSI            = "http://www.w3.org/2001/XMLSchema-instance"
)

// Part paths and content types.
const (
	pathContentTypes = "[Content_Types].xml"
	pathRootRels     = "_rels/.rels"
	pathCore         = "docProps/core.xml"
	pathApp          = "docProps/app.xml"
	pathWorkbook     = "xl/workbook.xml"
	pathStyles       = "xl/styles.xml"
	pathSST          = "xl/sharedStrings.xml"

	ctRels          = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML           = "application/xml"
	ctWorkbook      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ctWorksheet     = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	ctStyles        = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	ctSharedStrings = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
	ctCore          = "application/vnd.openxmlformats-package.core-properties+xml"
	ctApp           = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// Attributes with a namespace prefix are declared twice where needed: the
// prefixed form ("r:id") is written verbatim, while the decoder resolves
// prefixes, so reading goes through a namespaced twin field.

// ── [Content_Types].xml ──────────────────────────────────────────────────────

type xlsxTypes struct {
	XMLName   xml.Name       `xml:"Types"`
	Xmlns     string         `xml:"xmlns,attr"`
	Defaults  []xlsxDefault  `xml:"Default"`
	Overrides []xlsxOverride `xml:"Override"`
}

type xlsxDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xlsxOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ── docProps ─────────────────────────────────────────────────────────────────

// xlsxCoreOut is the written form of docProps/core.xml.
type xlsxCoreOut struct {
	XMLName     xml.Name    `xml:"cp:coreProperties"`
	XmlnsCP     string      `xml:"xmlns:cp,attr"`
	XmlnsDC     string      `xml:"xmlns:dc,attr"`
	XmlnsDCT    string      `xml:"xmlns:dcterms,attr"`
	XmlnsXSI    string      `xml:"xmlns:xsi,attr"`
	Title       string      `xml:"dc:title,omitempty"`
	Subject     string      `xml:"dc:subject,omitempty"`
	Creator     string      `xml:"dc:creator,omitempty"`
	Keywords    string      `xml:"cp:keywords,omitempty"`
	Description string      `xml:"dc:description,omitempty"`
	Category    string      `xml:"cp:category,omitempty"`
	Created     *xlsxW3CDTF `xml:"dcterms:created"`
	Modified    *xlsxW3CDTF `xml:"dcterms:modified"`
}

type xlsxW3CDTF struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

// xlsxCoreIn is the read form of docProps/core.xml.
type xlsxCoreIn struct {
	XMLName     xml.Name `xml:"coreProperties"`
	Title       string   `xml:"title"`
	Subject     string   `xml:"subject"`
	Creator     string   `xml:"creator"`
	Keywords    string   `xml:"keywords"`
	Description string   `xml:"description"`
	Category    string   `xml:"category"`
	Created     string   `xml:"created"`
	Modified    string   `xml:"modified"`
}

type xlsxApp struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr,omitempty"`
	Application string   `xml:"Application,omitempty"`
	Company     string   `xml:"Company,omitempty"`
}

// ── xl/workbook.xml ──────────────────────────────────────────────────────────

type xlsxWorkbook struct {
	XMLName            xml.Name                `xml:"workbook"`
	Xmlns              string                  `xml:"xmlns,attr,omitempty"`
	XmlnsR             string                  `xml:"xmlns:r,attr,omitempty"`
	WorkbookPr         *xlsxWorkbookPr         `xml:"workbookPr"`
	WorkbookProtection *xlsxWorkbookProtection `xml:"workbookProtection"`
	BookViews          *xlsxBookViews          `xml:"bookViews"`
	Sheets             xlsxSheets              `xml:"sheets"`
	DefinedNames       *xlsxDefinedNames       `xml:"definedNames"`
}

type xlsxWorkbookPr struct {
	Date1904 bool `xml:"date1904,attr,omitempty"`
}

type xlsxWorkbookProtection struct {
	WorkbookPassword string `xml:"workbookPassword,attr,omitempty"`
	LockStructure    bool   `xml:"lockStructure,attr,omitempty"`
	LockWindows      bool   `xml:"lockWindows,attr,omitempty"`
}

type xlsxBookViews struct {
	WorkbookView []xlsxWorkbookView `xml:"workbookView"`
}

type xlsxWorkbookView struct {
	ActiveTab int `xml:"activeTab,attr"`
}

type xlsxSheets struct {
	Sheet []xlsxSheet `xml:"sheet"`
}

type xlsxSheet struct {
	Name    string `xml:"name,attr"`
	SheetID int    `xml:"sheetId,attr"`
	State   string `xml:"state,attr,omitempty"`
	RID     string `xml:"r:id,attr,omitempty"`
	ReadRID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr,omitempty"`
}

type xlsxDefinedNames struct {
	DefinedName []xlsxDefinedName `xml:"definedName"`
}

type xlsxDefinedName struct {
	Name         string `xml:"name,attr"`
	LocalSheetID *int   `xml:"localSheetId,attr"`
	Hidden       bool   `xml:"hidden,attr,omitempty"`
	Value        string `xml:",chardata"`
}

// ── xl/worksheets/sheetN.xml ─────────────────────────────────────────────────

type xlsxWorksheet struct {
	XMLName         xml.Name             `xml:"worksheet"`
	Xmlns           string               `xml:"xmlns,attr,omitempty"`
	XmlnsR          string               `xml:"xmlns:r,attr,omitempty"`
	Dimension       *xlsxDimension       `xml:"dimension"`
	SheetViews      *xlsxSheetViews      `xml:"sheetViews"`
	SheetFormatPr   *xlsxSheetFormatPr   `xml:"sheetFormatPr"`
	Cols            *xlsxCols            `xml:"cols"`
	SheetData       xlsxSheetData        `xml:"sheetData"`
	SheetProtection *xlsxSheetProtection `xml:"sheetProtection"`
	AutoFilter      *xlsxAutoFilter      `xml:"autoFilter"`
	MergeCells      *xlsxMergeCells      `xml:"mergeCells"`
}

type xlsxDimension struct {
	Ref string `xml:"ref,attr"`
}

type xlsxSheetViews struct {
	SheetView []xlsxSheetView `xml:"sheetView"`
}

type xlsxSheetView struct {
	TabSelected       bool            `xml:"tabSelected,attr,omitempty"`
	ShowGridLines     *bool           `xml:"showGridLines,attr"`
	ShowRowColHeaders *bool           `xml:"showRowColHeaders,attr"`
	ShowRuler         *bool           `xml:"showRuler,attr"`
	View              string          `xml:"view,attr,omitempty"`
	ZoomScale         *int            `xml:"zoomScale,attr"`
	WorkbookViewID    int             `xml:"workbookViewId,attr"`
	Pane              *xlsxPane       `xml:"pane"`
	Selection         []xlsxSelection `xml:"selection"`
}

type xlsxPane struct {
	XSplit      float64 `xml:"xSplit,attr,omitempty"`
	YSplit      float64 `xml:"ySplit,attr,omitempty"`
	TopLeftCell string  `xml:"topLeftCell,attr,omitempty"`
	ActivePane  string  `xml:"activePane,attr,omitempty"`
	State       string  `xml:"state,attr,omitempty"`
}

type xlsxSelection struct {
	Pane       string `xml:"pane,attr,omitempty"`
	ActiveCell string `xml:"activeCell,attr,omitempty"`
	SQRef      string `xml:"sqref,attr,omitempty"`
}

type xlsxSheetFormatPr struct {
	DefaultColWidth  float64 `xml:"defaultColWidth,attr,omitempty"`
	DefaultRowHeight float64 `xml:"defaultRowHeight,attr"`
	CustomHeight     bool    `xml:"customHeight,attr,omitempty"`
}

type xlsxCols struct {
	Col []xlsxCol `xml:"col"`
}

type xlsxCol struct {
	Min         int     `xml:"min,attr"`
	Max         int     `xml:"max,attr"`
	Width       float64 `xml:"width,attr"`
	Style       int     `xml:"style,attr,omitempty"`
	Hidden      bool    `xml:"hidden,attr,omitempty"`
	CustomWidth bool    `xml:"customWidth,attr,omitempty"`
}

type xlsxSheetData struct {
	Row []xlsxRow `xml:"row"`
}

type xlsxRow struct {
	R            int     `xml:"r,attr"`
	Ht           float64 `xml:"ht,attr,omitempty"`
	CustomHeight bool    `xml:"customHeight,attr,omitempty"`
	Hidden       bool    `xml:"hidden,attr,omitempty"`
	C            []xlsxC `xml:"c"`
}

type xlsxC struct {
	R  string      `xml:"r,attr"`
	S  int         `xml:"s,attr,omitempty"`
	T  string      `xml:"t,attr,omitempty"`
	F  *xlsxF      `xml:"f"`
	V  *string     `xml:"v"`
	Is *xlsxInline `xml:"is"`
}

type xlsxF struct {
	Value string `xml:",chardata"`
}

type xlsxInline struct {
	T string    `xml:"t"`
	R []xlsxRun `xml:"r"`
}

type xlsxRun struct {
	T string `xml:"t"`
}

type xlsxSheetProtection struct {
	Password            string `xml:"password,attr,omitempty"`
	Sheet               *bool  `xml:"sheet,attr"`
	Objects             *bool  `xml:"objects,attr"`
	Scenarios           *bool  `xml:"scenarios,attr"`
	FormatCells         *bool  `xml:"formatCells,attr"`
	FormatColumns       *bool  `xml:"formatColumns,attr"`
	FormatRows          *bool  `xml:"formatRows,attr"`
	InsertColumns       *bool  `xml:"insertColumns,attr"`
	InsertRows          *bool  `xml:"insertRows,attr"`
	InsertHyperlinks    *bool  `xml:"insertHyperlinks,attr"`
	DeleteColumns       *bool  `xml:"deleteColumns,attr"`
	DeleteRows          *bool  `xml:"deleteRows,attr"`
	SelectLockedCells   *bool  `xml:"selectLockedCells,attr"`
	Sort                *bool  `xml:"sort,attr"`
	AutoFilter          *bool  `xml:"autoFilter,attr"`
	PivotTables         *bool  `xml:"pivotTables,attr"`
	SelectUnlockedCells *bool  `xml:"selectUnlockedCells,attr"`
}

type xlsxAutoFilter struct {
	Ref string `xml:"ref,attr"`
}

type xlsxMergeCells struct {
	Count     int             `xml:"count,attr,omitempty"`
	MergeCell []xlsxMergeCell `xml:"mergeCell"`
}

type xlsxMergeCell struct {
	Ref string `xml:"ref,attr"`
}

// ── xl/styles.xml ────────────────────────────────────────────────────────────

type xlsxStyleSheet struct {
	XMLName      xml.Name          `xml:"styleSheet"`
	Xmlns        string            `xml:"xmlns,attr,omitempty"`
	NumFmts      *xlsxNumFmts      `xml:"numFmts"`
	Fonts        xlsxFonts         `xml:"fonts"`
	Fills        xlsxFills         `xml:"fills"`
	Borders      xlsxBorders       `xml:"borders"`
	CellStyleXfs *xlsxCellStyleXfs `xml:"cellStyleXfs"`
	CellXfs      xlsxCellXfs       `xml:"cellXfs"`
	CellStyles   *xlsxCellStyles   `xml:"cellStyles"`
}

type xlsxNumFmts struct {
	Count  int          `xml:"count,attr"`
	NumFmt []xlsxNumFmt `xml:"numFmt"`
}

type xlsxNumFmt struct {
	NumFmtID   int    `xml:"numFmtId,attr"`
	FormatCode string `xml:"formatCode,attr"`
}

type xlsxFonts struct {
	Count int        `xml:"count,attr"`
	Font  []xlsxFont `xml:"font"`
}

// xlsxFont lists the font properties in the order Excel writes them.
type xlsxFont struct {
	B         *xlsxBoolVal  `xml:"b"`
	I         *xlsxBoolVal  `xml:"i"`
	Strike    *xlsxBoolVal  `xml:"strike"`
	Condense  *xlsxBoolVal  `xml:"condense"`
	Extend    *xlsxBoolVal  `xml:"extend"`
	Outline   *xlsxBoolVal  `xml:"outline"`
	Shadow    *xlsxBoolVal  `xml:"shadow"`
	U         *xlsxStrVal   `xml:"u"`
	VertAlign *xlsxStrVal   `xml:"vertAlign"`
	Sz        *xlsxFloatVal `xml:"sz"`
	Color     *xlsxColor    `xml:"color"`
	Name      *xlsxStrVal   `xml:"name"`
	Family    *xlsxStrVal   `xml:"family"`
	Charset   *xlsxStrVal   `xml:"charset"`
	Scheme    *xlsxStrVal   `xml:"scheme"`
}

// xlsxBoolVal is a flag element: present means true unless val says
// otherwise.
type xlsxBoolVal struct {
	Val *bool `xml:"val,attr"`
}

func (b *xlsxBoolVal) value() bool { return b != nil && (b.Val == nil || *b.Val) }

type xlsxStrVal struct {
	Val string `xml:"val,attr"`
}

type xlsxFloatVal struct {
	Val float64 `xml:"val,attr"`
}

type xlsxColor struct {
	Auto    bool    `xml:"auto,attr,omitempty"`
	RGB     string  `xml:"rgb,attr,omitempty"`
	Indexed *int    `xml:"indexed,attr"`
	Theme   *int    `xml:"theme,attr"`
	Tint    float64 `xml:"tint,attr,omitempty"`
}

type xlsxFills struct {
	Count int        `xml:"count,attr"`
	Fill  []xlsxFill `xml:"fill"`
}

type xlsxFill struct {
	PatternFill *xlsxPatternFill `xml:"patternFill"`
}

type xlsxPatternFill struct {
	PatternType string     `xml:"patternType,attr,omitempty"`
	FgColor     *xlsxColor `xml:"fgColor"`
	BgColor     *xlsxColor `xml:"bgColor"`
}

type xlsxBorders struct {
	Count  int          `xml:"count,attr"`
	Border []xlsxBorder `xml:"border"`
}

type xlsxBorder struct {
	DiagonalUp   bool            `xml:"diagonalUp,attr,omitempty"`
	DiagonalDown bool            `xml:"diagonalDown,attr,omitempty"`
	Left         *xlsxBorderEdge `xml:"left"`
	Right        *xlsxBorderEdge `xml:"right"`
	Top          *xlsxBorderEdge `xml:"top"`
	Bottom       *xlsxBorderEdge `xml:"bottom"`
	Diagonal     *xlsxBorderEdge `xml:"diagonal"`
}

type xlsxBorderEdge struct {
	Style string     `xml:"style,attr,omitempty"`
	Color *xlsxColor `xml:"color"`
}

type xlsxCellStyleXfs struct {
	Count int      `xml:"count,attr"`
	Xf    []xlsxXf `xml:"xf"`
}

type xlsxCellXfs struct {
	Count int      `xml:"count,attr"`
	Xf    []xlsxXf `xml:"xf"`
}

type xlsxXf struct {
	NumFmtID          int             `xml:"numFmtId,attr"`
	FontID            int             `xml:"fontId,attr"`
	FillID            int             `xml:"fillId,attr"`
	BorderID          int             `xml:"borderId,attr"`
	XfID              *int            `xml:"xfId,attr"`
	ApplyNumberFormat bool            `xml:"applyNumberFormat,attr,omitempty"`
	ApplyFont         bool            `xml:"applyFont,attr,omitempty"`
	ApplyFill         bool            `xml:"applyFill,attr,omitempty"`
	ApplyBorder       bool            `xml:"applyBorder,attr,omitempty"`
	ApplyAlignment    bool            `xml:"applyAlignment,attr,omitempty"`
	ApplyProtection   bool            `xml:"applyProtection,attr,omitempty"`
	Alignment         *xlsxAlignment  `xml:"alignment"`
	Protection        *xlsxProtection `xml:"protection"`
}

type xlsxAlignment struct {
	Horizontal   string `xml:"horizontal,attr,omitempty"`
	Vertical     string `xml:"vertical,attr,omitempty"`
	TextRotation int    `xml:"textRotation,attr,omitempty"`
	WrapText     bool   `xml:"wrapText,attr,omitempty"`
	Indent       int    `xml:"indent,attr,omitempty"`
	ShrinkToFit  bool   `xml:"shrinkToFit,attr,omitempty"`
}

type xlsxProtection struct {
	Locked *bool `xml:"locked,attr"`
	Hidden *bool `xml:"hidden,attr"`
}

type xlsxCellStyles struct {
	Count     int             `xml:"count,attr"`
	CellStyle []xlsxCellStyle `xml:"cellStyle"`
}

type xlsxCellStyle struct {
	Name      string `xml:"name,attr"`
	XfID      int    `xml:"xfId,attr"`
	BuiltinID *int   `xml:"builtinId,attr"`
}
