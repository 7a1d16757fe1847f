// Package workbook holds the in-memory workbook: an ordered list of
// worksheets sharing one style repository, workbook protection, document
// metadata and the date system.  It writes and reads .xlsx files (a ZIP
// archive of SpreadsheetML parts).
package workbook

import (
	"fmt"
	"slices"
	"time"

	"golang.org/x/text/cases"

	"github.com/TsubasaBE/go-xlsx/styles"
	"github.com/TsubasaBE/go-xlsx/worksheet"
	"github.com/TsubasaBE/go-xlsx/xlerr"
)

// Metadata holds the document properties written to docProps/core.xml and
// docProps/app.xml.  Empty fields are not written.
type Metadata struct {
	Title       string
	Subject     string
	Creator     string
	Keywords    string
	Description string
	Category    string
	// Application and Company go to the extended properties.
	Application string
	Company     string
	// Created and Modified are written as W3C date-time in UTC when set.
	Created  time.Time
	Modified time.Time
}

// Workbook is an in-memory .xlsx workbook.
type Workbook struct {
	// Metadata is written to the document property parts.
	Metadata Metadata
	// Date1904 is true when the workbook uses the 1904 date system (serial 0
	// = 1904-01-01).  Most workbooks use the default 1900 system.  It
	// controls how date cells are written and read, and how FormatCell
	// renders raw serials.
	Date1904 bool

	// UseWorkbookProtection enables the workbookProtection element.
	UseWorkbookProtection bool
	// LockStructure prevents adding, moving or deleting sheets.
	LockStructure bool
	// LockWindows prevents resizing or moving the workbook window.
	LockWindows bool

	worksheets   []*worksheet.Worksheet
	current      int
	selected     int
	repo         *styles.Repository
	password     string
	passwordHash string
}

// New returns a workbook.  When sheetName is not empty a first worksheet of
// that name is added and made current.
func New(sheetName string) (*Workbook, error) {
	wb := &Workbook{repo: styles.NewRepository(), current: -1}
	if sheetName != "" {
		if _, err := wb.AddWorksheet(sheetName); err != nil {
			return nil, err
		}
	}
	return wb, nil
}

// StyleRepository returns the repository shared by all worksheets.
func (wb *Workbook) StyleRepository() *styles.Repository { return wb.repo }

// ── worksheets ───────────────────────────────────────────────────────────────

// AddWorksheet appends an empty worksheet and makes it current.  The name
// must be valid and must not equal an existing name case-insensitively.
func (wb *Workbook) AddWorksheet(name string) (*worksheet.Worksheet, error) {
	if wb.index(name) >= 0 {
		return nil, fmt.Errorf("workbook: worksheet %q already exists: %w", name, xlerr.ErrWorksheet)
	}
	ws, err := worksheet.NewWithID(name, wb.nextSheetID(), wb.repo)
	if err != nil {
		return nil, err
	}
	wb.worksheets = append(wb.worksheets, ws)
	wb.current = len(wb.worksheets) - 1
	return ws, nil
}

// AddWorksheetSanitized is AddWorksheet for arbitrary input: the name is
// made valid and unique with worksheet.SanitizeName first.
func (wb *Workbook) AddWorksheetSanitized(name string) (*worksheet.Worksheet, error) {
	return wb.AddWorksheet(worksheet.SanitizeName(name, wb.Sheets()))
}

// CopyWorksheet appends a deep copy of the worksheet named source under
// newName and makes it current.
func (wb *Workbook) CopyWorksheet(source, newName string) (*worksheet.Worksheet, error) {
	src, err := wb.Worksheet(source)
	if err != nil {
		return nil, err
	}
	if wb.index(newName) >= 0 {
		return nil, fmt.Errorf("workbook: worksheet %q already exists: %w", newName, xlerr.ErrWorksheet)
	}
	cp := src.Copy()
	if err := cp.SetName(newName); err != nil {
		return nil, err
	}
	cp.SheetID = wb.nextSheetID()
	wb.worksheets = append(wb.worksheets, cp)
	wb.current = len(wb.worksheets) - 1
	return cp, nil
}

// RemoveWorksheet removes the worksheet named name (case-insensitive).
// The current and selected worksheets move to the previous sheet when they
// are removed.
func (wb *Workbook) RemoveWorksheet(name string) error {
	i := wb.index(name)
	if i < 0 {
		return fmt.Errorf("workbook: worksheet %q not found: %w", name, xlerr.ErrWorksheet)
	}
	wb.worksheets = slices.Delete(wb.worksheets, i, i+1)
	shift := func(p int) int {
		if p >= i && p > 0 {
			return p - 1
		}
		return p
	}
	wb.current = shift(wb.current)
	wb.selected = shift(wb.selected)
	if len(wb.worksheets) == 0 {
		wb.current, wb.selected = -1, 0
	}
	return nil
}

// Worksheet returns the worksheet named name (case-insensitive).
func (wb *Workbook) Worksheet(name string) (*worksheet.Worksheet, error) {
	i := wb.index(name)
	if i < 0 {
		return nil, fmt.Errorf("workbook: worksheet %q not found: %w", name, xlerr.ErrWorksheet)
	}
	return wb.worksheets[i], nil
}

// WorksheetAt returns the worksheet at the 0-based index.
func (wb *Workbook) WorksheetAt(index int) (*worksheet.Worksheet, error) {
	if index < 0 || index >= len(wb.worksheets) {
		return nil, fmt.Errorf("workbook: worksheet index %d out of range [0, %d): %w",
			index, len(wb.worksheets), xlerr.ErrRange)
	}
	return wb.worksheets[index], nil
}

// Worksheets returns the worksheets in order.
func (wb *Workbook) Worksheets() []*worksheet.Worksheet { return slices.Clone(wb.worksheets) }

// Sheets returns the display names of all worksheets in order.
func (wb *Workbook) Sheets() []string {
	names := make([]string, len(wb.worksheets))
	for i, ws := range wb.worksheets {
		names[i] = ws.Name()
	}
	return names
}

// CurrentWorksheet returns the worksheet new cells are usually added to,
// or nil when the workbook has no worksheets.
func (wb *Workbook) CurrentWorksheet() *worksheet.Worksheet {
	if wb.current < 0 || wb.current >= len(wb.worksheets) {
		return nil
	}
	return wb.worksheets[wb.current]
}

// SetCurrentWorksheet makes the worksheet named name current.
func (wb *Workbook) SetCurrentWorksheet(name string) (*worksheet.Worksheet, error) {
	i := wb.index(name)
	if i < 0 {
		return nil, fmt.Errorf("workbook: worksheet %q not found: %w", name, xlerr.ErrWorksheet)
	}
	wb.current = i
	return wb.worksheets[i], nil
}

// SelectedWorksheet returns the 0-based index of the worksheet shown when
// the file is opened.
func (wb *Workbook) SelectedWorksheet() int { return wb.selected }

// SetSelectedWorksheet selects the worksheet at the 0-based index.
func (wb *Workbook) SetSelectedWorksheet(index int) error {
	if index < 0 || index >= len(wb.worksheets) {
		return fmt.Errorf("workbook: worksheet index %d out of range [0, %d): %w",
			index, len(wb.worksheets), xlerr.ErrRange)
	}
	wb.selected = index
	return nil
}

// SetSelectedWorksheetByName selects the worksheet named name.
func (wb *Workbook) SetSelectedWorksheetByName(name string) error {
	i := wb.index(name)
	if i < 0 {
		return fmt.Errorf("workbook: worksheet %q not found: %w", name, xlerr.ErrWorksheet)
	}
	wb.selected = i
	return nil
}

// Validate checks the workbook before it is written: it needs at least one
// worksheet, at least one visible worksheet, a visible selected worksheet
// and unique names.
func (wb *Workbook) Validate() error {
	if len(wb.worksheets) == 0 {
		return fmt.Errorf("workbook: no worksheets: %w", xlerr.ErrWorksheet)
	}
	if !slices.ContainsFunc(wb.worksheets, func(ws *worksheet.Worksheet) bool { return !ws.Hidden }) {
		return fmt.Errorf("workbook: all worksheets are hidden: %w", xlerr.ErrWorksheet)
	}
	if wb.selected >= len(wb.worksheets) {
		return fmt.Errorf("workbook: selected worksheet %d does not exist: %w", wb.selected, xlerr.ErrWorksheet)
	}
	if ws := wb.worksheets[wb.selected]; ws.Hidden {
		return fmt.Errorf("workbook: selected worksheet %q is hidden: %w", ws.Name(), xlerr.ErrWorksheet)
	}
	fold := cases.Fold()
	seen := make(map[string]bool, len(wb.worksheets))
	for _, ws := range wb.worksheets {
		key := fold.String(ws.Name())
		if seen[key] {
			return fmt.Errorf("workbook: duplicate worksheet name %q: %w", ws.Name(), xlerr.ErrWorksheet)
		}
		seen[key] = true
	}
	return nil
}

// index returns the position of the worksheet named name, compared with
// Unicode case folding, or -1.
func (wb *Workbook) index(name string) int {
	fold := cases.Fold()
	key := fold.String(name)
	return slices.IndexFunc(wb.worksheets, func(ws *worksheet.Worksheet) bool {
		return fold.String(ws.Name()) == key
	})
}

func (wb *Workbook) nextSheetID() int {
	id := 0
	for _, ws := range wb.worksheets {
		id = max(id, ws.SheetID)
	}
	return id + 1
}

// ── protection ───────────────────────────────────────────────────────────────

// SetWorkbookProtection enables workbook protection with the given locks.
// An empty password leaves the workbook without password.
func (wb *Workbook) SetWorkbookProtection(lockWindows, lockStructure bool, password string) {
	wb.UseWorkbookProtection = true
	wb.LockWindows = lockWindows
	wb.LockStructure = lockStructure
	wb.password = password
	wb.passwordHash = worksheet.PasswordHash(password)
}

// WorkbookProtectionPassword returns the plain password set in this
// session, or "".
func (wb *Workbook) WorkbookProtectionPassword() string { return wb.password }

// WorkbookProtectionPasswordHash returns the legacy password hash, or "".
func (wb *Workbook) WorkbookProtectionPasswordHash() string { return wb.passwordHash }

// ── formatting ───────────────────────────────────────────────────────────────

// FormatCell renders the value of c under its number format, honouring the
// workbook date system.
//
// The returned string is the same display string that Excel would show in the
// cell:
//
//	ws, _ := wb.Worksheet("Data")
//	for _, c := range ws.SortedCells() {
//	    raw       := c.Value
//	    formatted := wb.FormatCell(c)
//	    _ = raw
//	    _ = formatted
//	}
func (wb *Workbook) FormatCell(c *worksheet.Cell) string {
	return worksheet.FormatCellValue(c, wb.Date1904)
}
