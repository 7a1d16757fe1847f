package styles

// Predefined styles.  Every function returns a fresh instance that the
// caller may modify.

// Bold returns a style with a bold font.
func Bold() *Style {
	s := NewNamed("bold")
	s.Font.Bold = true
	return s
}

// Italic returns a style with an italic font.
func Italic() *Style {
	s := NewNamed("italic")
	s.Font.Italic = true
	return s
}

// BoldItalic returns a style with a bold italic font.
func BoldItalic() *Style {
	s := NewNamed("boldItalic")
	s.Font.Bold = true
	s.Font.Italic = true
	return s
}

// Underline returns a style with a single underline.
func Underline() *Style {
	s := NewNamed("underline")
	s.Font.Underline = UnderlineSingle
	return s
}

// DoubleUnderline returns a style with a double underline.
func DoubleUnderline() *Style {
	s := NewNamed("doubleUnderline")
	s.Font.Underline = UnderlineDouble
	return s
}

// Strike returns a style with struck-through text.
func Strike() *Style {
	s := NewNamed("strike")
	s.Font.Strike = true
	return s
}

// DateFormat returns the style applied automatically to date cells
// (numFmtId 14).
func DateFormat() *Style {
	s := NewNamed("dateFormat")
	s.NumberFormat.Number = Format14
	return s
}

// TimeFormat returns the style applied automatically to time cells
// (numFmtId 21).
func TimeFormat() *Style {
	s := NewNamed("timeFormat")
	s.NumberFormat.Number = Format21
	return s
}

// RoundFormat returns a style rendering numbers without decimals.
func RoundFormat() *Style {
	s := NewNamed("roundFormat")
	s.NumberFormat.Number = Format1
	return s
}

// BorderFrame returns a style with thin borders on all four sides.
func BorderFrame() *Style {
	s := NewNamed("borderFrame")
	for _, side := range []Side{Left, Right, Top, Bottom} {
		s.Border.SetStyle(side, BorderThin)
	}
	return s
}

// BorderFrameHeader returns a bold style with thin sides and a medium
// bottom border.
func BorderFrameHeader() *Style {
	s := BorderFrame()
	s.Name = "borderFrameHeader"
	s.Border.BottomStyle = BorderMedium
	s.Font.Bold = true
	return s
}

// DottedFill0125 returns a style with the gray125 pattern.
func DottedFill0125() *Style {
	s := NewNamed("dottedFill0125")
	s.Fill.PatternFill = PatternGray125
	return s
}

// MergeCellStyle returns the style applied to the hidden cells of a merged
// region: centred content.
func MergeCellStyle() *Style {
	s := NewNamed("mergeCellStyle")
	s.CellXf.HorizontalAlign = HorizontalCenter
	s.CellXf.VerticalAlign = VerticalCenter
	return s
}

// ColorizedText returns a style whose font colour is argb.
func ColorizedText(argb string) (*Style, error) {
	s := NewNamed("colorizedText")
	if err := s.Font.SetColorValue(argb); err != nil {
		return nil, err
	}
	return s, nil
}

// ColorizedBackground returns a style with a solid fill of colour argb.
func ColorizedBackground(argb string) (*Style, error) {
	s := NewNamed("colorizedBackground")
	if err := s.Fill.SetColor(argb, FillColor); err != nil {
		return nil, err
	}
	return s, nil
}

// FontStyle returns a style with the given font name, size and weight.
func FontStyle(name string, size float64, bold bool) (*Style, error) {
	s := NewNamed("font")
	if err := s.Font.SetName(name); err != nil {
		return nil, err
	}
	s.Font.SetSize(size)
	s.Font.Bold = bold
	return s, nil
}
