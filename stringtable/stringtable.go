// Package stringtable implements the shared string table of an .xlsx file
// (xl/sharedStrings.xml).  The writer interns every string cell value into
// a StringTable; the reader parses the part back and resolves indices.
package stringtable

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const nsSpreadsheetML = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"

// StringTable holds the distinct shared strings in insertion order.
type StringTable struct {
	strings []string
	index   map[string]int
	// refs counts every Add call, written as the count attribute.
	refs int
}

// New returns an empty StringTable.
func New() *StringTable {
	return &StringTable{index: make(map[string]int)}
}

// Add interns s and returns its index.  Adding a string twice returns the
// same index.
func (st *StringTable) Add(s string) int {
	st.refs++
	if i, ok := st.index[s]; ok {
		return i
	}
	i := len(st.strings)
	st.strings = append(st.strings, s)
	st.index[s] = i
	return i
}

// Get returns the shared string at index idx.  It panics if idx is out of
// range, matching the behaviour of a slice index.
func (st *StringTable) Get(idx int) string {
	return st.strings[idx]
}

// Lookup returns the shared string at index idx and whether idx is valid.
func (st *StringTable) Lookup(idx int) (string, bool) {
	if idx < 0 || idx >= len(st.strings) {
		return "", false
	}
	return st.strings[idx], true
}

// Len returns the number of distinct shared strings.
func (st *StringTable) Len() int {
	return len(st.strings)
}

// Count returns the number of references added, which is at least Len.
func (st *StringTable) Count() int {
	return max(st.refs, len(st.strings))
}

// ── XML ──────────────────────────────────────────────────────────────────────

type xmlSST struct {
	XMLName     xml.Name `xml:"sst"`
	Xmlns       string   `xml:"xmlns,attr,omitempty"`
	Count       int      `xml:"count,attr"`
	UniqueCount int      `xml:"uniqueCount,attr"`
	SI          []xmlSI  `xml:"si"`
}

// xmlSI is one string item: plain text in t, or rich text runs in r whose
// texts are concatenated.
type xmlSI struct {
	T *xmlText `xml:"t"`
	R []xmlRun `xml:"r"`
}

type xmlRun struct {
	T xmlText `xml:"t"`
}

type xmlText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

func (si xmlSI) text() string {
	if si.T != nil && len(si.R) == 0 {
		return si.T.Value
	}
	var b strings.Builder
	if si.T != nil {
		b.WriteString(si.T.Value)
	}
	for _, r := range si.R {
		b.WriteString(r.T.Value)
	}
	return b.String()
}

// Parse reads a sharedStrings.xml part.  Rich text items are flattened to
// their plain text.
func Parse(r io.Reader) (*StringTable, error) {
	var doc xmlSST
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("stringtable: %w", err)
	}
	st := &StringTable{
		strings: make([]string, 0, len(doc.SI)),
		index:   make(map[string]int, len(doc.SI)),
		refs:    doc.Count,
	}
	for i, si := range doc.SI {
		s := si.text()
		st.strings = append(st.strings, s)
		// Files written elsewhere may repeat a string; the first index wins
		// for interning.
		if _, ok := st.index[s]; !ok {
			st.index[s] = i
		}
	}
	return st, nil
}

// NewFromBytes is a convenience wrapper that parses an in-memory
// sharedStrings.xml part.
func NewFromBytes(b []byte) (*StringTable, error) {
	return Parse(bytes.NewReader(b))
}

// WriteTo writes the table as a sharedStrings.xml part.
func (st *StringTable) WriteTo(w io.Writer) (int64, error) {
	doc := xmlSST{
		Xmlns:       nsSpreadsheetML,
		Count:       st.Count(),
		UniqueCount: len(st.strings),
		SI:          make([]xmlSI, len(st.strings)),
	}
	for i, s := range st.strings {
		t := &xmlText{Value: s}
		if s != strings.TrimSpace(s) {
			t.Space = "preserve"
		}
		doc.SI[i] = xmlSI{T: t}
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(doc); err != nil {
		return 0, fmt.Errorf("stringtable: %w", err)
	}
	return buf.WriteTo(w)
}
