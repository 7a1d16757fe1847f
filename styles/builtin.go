// Package styles implements the cell style object graph: fonts, fills,
// borders, cell formats (alignment and protection) and number formats,
// combined into a Style.  Equal styles are de-duplicated by a Repository so
// that a workbook writes each distinct style once.
package styles

import "github.com/TsubasaBE/go-xlsx/internal/dateformat"

// BuiltInNumFmt maps built-in numFmtId values to their canonical format
// strings as defined by ECMA-376 §18.8.30.  IDs 27–36 and 50–58 are
// locale-specific (CJK/Thai); the entries here are neutral Western fallbacks
// used when a file does not declare the code in its numFmts list.
var BuiltInNumFmt = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	5:  `($#,##0_);($#,##0)`,
	6:  `($#,##0_);[Red]($#,##0)`,
	7:  `($#,##0.00_);($#,##0.00)`,
	8:  `($#,##0.00_);[Red]($#,##0.00)`,
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	// IDs 27–36: locale-specific CJK date formats.
	27: "MM-DD-YYYY",
	28: "D-MMM-YY",
	29: "D-MMM-YY",
	30: "M/D/YY",
	31: "YYYY-M-D",
	32: "H:MM",
	33: "H:MM:SS",
	34: "H:MM AM/PM",
	35: "H:MM:SS AM/PM",
	36: "MM-DD-YYYY",
	37: `(#,##0_);(#,##0)`,
	38: `(#,##0_);[Red](#,##0)`,
	39: `(#,##0.00_);(#,##0.00)`,
	40: `(#,##0.00_);[Red](#,##0.00)`,
	41: `_(* #,##0_);_(* (#,##0);_(* "-"_);_(@_)`,
	42: `_($* #,##0_);_($* (#,##0);_($* "-"_);_(@_)`,
	43: `_(* #,##0.00_);_(* (#,##0.00);_(* "-"??_);_(@_)`,
	44: `_($* #,##0.00_);_($* (#,##0.00);_($* "-"??_);_(@_)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mm:ss.0",
	48: "##0.0E+0",
	49: "@",
	// IDs 50–58: locale-specific CJK date formats (variant set).  Same
	// fallback strategy as IDs 27–36 above.
	50: "MM-DD-YYYY",
	51: "D-MMM-YY",
	52: "H:MM AM/PM",
	53: "H:MM:SS AM/PM",
	54: "D-MMM-YY",
	55: "H:MM AM/PM",
	56: "H:MM:SS AM/PM",
	57: "MM-DD-YYYY",
	58: "D-MMM-YY",
}

// BuiltInFormatCode returns the format code of a built-in numFmtId and
// whether the id is known.
func BuiltInFormatCode(id int) (string, bool) {
	s, ok := BuiltInNumFmt[id]
	return s, ok
}

// IsDateFormatID reports whether the numFmtId (and, for custom IDs, the
// format code) renders a date or time.  Time-only IDs 18–21 are included.
func IsDateFormatID(id int, code string) bool {
	if dateformat.IsBuiltInDateID(id) {
		return true
	}
	if id < CustomFormatStart {
		return false
	}
	return dateformat.ScanFormatStr(code)
}
