// Package dateformat classifies number formats as date, time or plain
// numeric.  It is shared by styles, numfmt and the root package so the rules
// live in one place.
package dateformat

import "strings"

// IsBuiltInDateID reports whether id is a built-in Excel numFmtId that
// represents a date, datetime, or time format.
//
// The recognised IDs follow ECMA-376 §18.8.30:
//
//	14–22   date and time formats (IDs 18–21 are time-only)
//	27–36   locale-specific CJK date formats
//	45–47   elapsed-time / seconds formats
//	50–58   locale-specific CJK date formats (variant set)
func IsBuiltInDateID(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// IsBuiltInTimeID reports whether id is a built-in format that carries a
// time of day or an elapsed duration but no calendar date.
func IsBuiltInTimeID(id int) bool {
	switch {
	case id >= 18 && id <= 21:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 32 && id <= 35:
		return true
	case id == 52 || id == 53 || id == 55 || id == 56:
		return true
	}
	return false
}

// Tokens describes which date/time token classes appear in the unquoted
// part of a format code.
type Tokens struct {
	// Date is set for day, year and era tokens, and for month tokens that do
	// not follow an hour token.
	Date bool
	// Time is set for hour and second tokens, and for minute tokens.
	Time bool
}

// Any reports whether the code contains any date or time token.
func (t Tokens) Any() bool { return t.Date || t.Time }

// Scan classifies the date/time tokens of a custom number-format code.
//
// Characters inside double-quoted literals and square-bracket sections are
// skipped, except that elapsed-time sections such as [h] or [mm] count as
// time.
// "m" is read as minutes when it follows an hour token (possibly separated
// by literals), otherwise as months.  "e" counts as the Japanese era token
// only when it is not the exponent of a digit placeholder (0, #, ?, .).
func Scan(code string) Tokens {
	var tk Tokens
	if strings.EqualFold(code, "General") {
		return tk
	}
	inDoubleQuote := false
	inBracket := false
	escaped := false
	afterHour := false
	elapsed := false
	bracketLen := 0
	var prev rune
	for _, ch := range code {
		switch {
		case escaped:
			escaped = false
		case inDoubleQuote:
			if ch == '"' {
				inDoubleQuote = false
			}
		case inBracket:
			if ch == ']' {
				inBracket = false
				if elapsed && bracketLen > 0 {
					tk.Time = true
					afterHour = true
				}
				continue
			}
			bracketLen++
			if !strings.ContainsRune("hHmMsS", ch) {
				elapsed = false
			}
		case ch == '\\':
			escaped = true
		case ch == '"':
			inDoubleQuote = true
		case ch == '[':
			inBracket = true
			elapsed = true
			bracketLen = 0
		case ch == 'd' || ch == 'D' || ch == 'y' || ch == 'Y':
			tk.Date = true
			afterHour = false
		case ch == 'm' || ch == 'M':
			if afterHour {
				tk.Time = true
			} else {
				tk.Date = true
			}
		case ch == 'h' || ch == 'H' || ch == 's' || ch == 'S':
			tk.Time = true
			afterHour = true
		case ch == 'e' || ch == 'E':
			if prev != '0' && prev != '#' && prev != '?' && prev != '.' {
				tk.Date = true
			}
		}
		if !inDoubleQuote && !inBracket {
			prev = ch
		}
	}
	return tk
}

// ScanFormatStr reports whether a custom number-format code contains any
// date or time token.
func ScanFormatStr(formatStr string) bool {
	return Scan(formatStr).Any()
}
