// Package rels reads and writes OOXML relationship parts (.rels).
//
// It is shared by the workbook writer and reader, which both need the
// package-level and workbook-level relationship parts.
package rels

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"path"
	"strconv"
	"strings"
)

// Namespace of relationship parts.
const Namespace = "http://schemas.openxmlformats.org/package/2006/relationships"

// Relationship types used by the workbook.
const (
	TypeOfficeDocument     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	TypeCoreProperties     = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	TypeExtendedProperties = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	TypeWorksheet          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	TypeStyles             = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	TypeSharedStrings      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings"
)

// Relationships is the root element of a .rels XML document.
type Relationships struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Xmlns         string         `xml:"xmlns,attr,omitempty"`
	Relationships []Relationship `xml:"Relationship"`
}

// Relationship is one entry in a .rels XML document.
type Relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// Parse parses the raw bytes of a .rels XML file.
func Parse(data []byte) (*Relationships, error) {
	var r Relationships
	if err := xml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse rels XML: %w", err)
	}
	return &r, nil
}

// ParseRelsXML parses the raw bytes of a .rels XML file and returns a map of
// relationship ID → target string.
func ParseRelsXML(data []byte) (map[string]string, error) {
	r, err := Parse(data)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(r.Relationships))
	for _, rel := range r.Relationships {
		m[rel.ID] = rel.Target
	}
	return m, nil
}

// Add appends a relationship with the next free "rIdN" ID and returns the
// ID.
func (r *Relationships) Add(typ, target string) string {
	id := "rId" + strconv.Itoa(len(r.Relationships)+1)
	r.Relationships = append(r.Relationships, Relationship{ID: id, Type: typ, Target: target})
	return id
}

// ByType returns the first relationship of the given type.
func (r *Relationships) ByType(typ string) (Relationship, bool) {
	for _, rel := range r.Relationships {
		if rel.Type == typ {
			return rel, true
		}
	}
	return Relationship{}, false
}

// Marshal renders the part, including the XML declaration.
func (r *Relationships) Marshal() ([]byte, error) {
	out := *r
	out.Xmlns = Namespace
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(out); err != nil {
		return nil, fmt.Errorf("marshal rels XML: %w", err)
	}
	return buf.Bytes(), nil
}

// ResolveTarget returns the archive path of target as seen from the part
// directory dir ("xl").  Absolute targets ("/xl/styles.xml") are taken from
// the archive root.
func ResolveTarget(dir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Join(dir, target), "/")
}

// PartRelsPath returns the path of the relationship part of part:
// "xl/workbook.xml" gives "xl/_rels/workbook.xml.rels".
func PartRelsPath(part string) string {
	dir, file := path.Split(part)
	return dir + "_rels/" + file + ".rels"
}
