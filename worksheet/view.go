package worksheet

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"

	"github.com/TsubasaBE/go-xlsx/address"
	"github.com/TsubasaBE/go-xlsx/xlerr"
)

// Zoom factor bounds; 0 means automatic.
const (
	MinZoomFactor = 10
	MaxZoomFactor = 400
)

// SheetViewType is the sheet view mode.
type SheetViewType string

// Sheet view modes.
const (
	ViewNormal           SheetViewType = "normal"
	ViewPageBreakPreview SheetViewType = "pageBreakPreview"
	ViewPageLayout       SheetViewType = "pageLayout"
)

// Pane identifies one of the four panes of a split sheet.
type Pane int

// Panes.
const (
	PaneBottomRight Pane = iota
	PaneTopRight
	PaneBottomLeft
	PaneTopLeft
)

var paneNames = [...]string{"bottomRight", "topRight", "bottomLeft", "topLeft"}

// String returns the attribute value of the pane ("bottomRight").
func (p Pane) String() string {
	if p < 0 || int(p) >= len(paneNames) {
		return fmt.Sprintf("Pane(%d)", int(p))
	}
	return paneNames[p]
}

// ParsePane parses a pane attribute value.
func ParsePane(s string) (Pane, error) {
	for i, n := range paneNames {
		if n == s {
			return Pane(i), nil
		}
	}
	return 0, fmt.Errorf("worksheet: unknown pane %q: %w", s, xlerr.ErrFormat)
}

// paneState holds the split settings.  A split is either measured (left
// width and top height in character units and points) or counted in
// columns and rows (splitAddress), optionally frozen.
type paneState struct {
	topHeight    *float64
	leftWidth    *float64
	freeze       *bool
	topLeftCell  *address.Address
	splitAddress *address.Address
	activePane   *Pane
}

func (p paneState) clone() paneState {
	return paneState{
		topHeight:    clonePtr(p.topHeight),
		leftWidth:    clonePtr(p.leftWidth),
		freeze:       clonePtr(p.freeze),
		topLeftCell:  clonePtr(p.topLeftCell),
		splitAddress: clonePtr(p.splitAddress),
		activePane:   clonePtr(p.activePane),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ── panes ────────────────────────────────────────────────────────────────────

// PaneSplitTopHeight returns the height of the top pane in points, or nil.
func (ws *Worksheet) PaneSplitTopHeight() *float64 { return clonePtr(ws.pane.topHeight) }

// PaneSplitLeftWidth returns the width of the left pane in character units,
// or nil.
func (ws *Worksheet) PaneSplitLeftWidth() *float64 { return clonePtr(ws.pane.leftWidth) }

// FreezeSplitPanes reports whether a counted split is frozen, or nil when
// no counted split is set.
func (ws *Worksheet) FreezeSplitPanes() *bool { return clonePtr(ws.pane.freeze) }

// PaneSplitTopLeftCell returns the top-left cell of the bottom-right pane,
// or nil.
func (ws *Worksheet) PaneSplitTopLeftCell() *address.Address { return clonePtr(ws.pane.topLeftCell) }

// PaneSplitAddress returns the split position of a counted split as an
// address (columns left of the split, rows above it), or nil.
func (ws *Worksheet) PaneSplitAddress() *address.Address { return clonePtr(ws.pane.splitAddress) }

// ActivePane returns the active pane, or nil.
func (ws *Worksheet) ActivePane() *Pane { return clonePtr(ws.pane.activePane) }

// SetHorizontalSplit splits the sheet into a top pane of topPaneHeight
// points and a bottom pane.  It clears any other split.
func (ws *Worksheet) SetHorizontalSplit(topPaneHeight float64, topLeftCell address.Address, activePane Pane) error {
	return ws.SetSplit(nil, &topPaneHeight, topLeftCell, activePane)
}

// SetVerticalSplit splits the sheet into a left pane of leftPaneWidth
// character units and a right pane.  It clears any other split.
func (ws *Worksheet) SetVerticalSplit(leftPaneWidth float64, topLeftCell address.Address, activePane Pane) error {
	return ws.SetSplit(&leftPaneWidth, nil, topLeftCell, activePane)
}

// SetSplit sets a measured split.  A nil width or height leaves that axis
// unsplit.  Counted split settings are cleared.
func (ws *Worksheet) SetSplit(leftPaneWidth, topPaneHeight *float64, topLeftCell address.Address, activePane Pane) error {
	if leftPaneWidth != nil && *leftPaneWidth < 0 {
		return fmt.Errorf("worksheet: pane width %v must not be negative: %w", *leftPaneWidth, xlerr.ErrRange)
	}
	if topPaneHeight != nil && *topPaneHeight < 0 {
		return fmt.Errorf("worksheet: pane height %v must not be negative: %w", *topPaneHeight, xlerr.ErrRange)
	}
	ws.pane = paneState{
		leftWidth:   clonePtr(leftPaneWidth),
		topHeight:   clonePtr(topPaneHeight),
		topLeftCell: &topLeftCell,
		activePane:  &activePane,
	}
	return nil
}

// SetHorizontalSplitRows splits the sheet below the first rows rows,
// frozen when freeze is set.
func (ws *Worksheet) SetHorizontalSplitRows(rows int, freeze bool, topLeftCell address.Address, activePane Pane) error {
	return ws.setCountedSplit(nil, &rows, freeze, topLeftCell, activePane)
}

// SetVerticalSplitColumns splits the sheet right of the first columns
// columns, frozen when freeze is set.
func (ws *Worksheet) SetVerticalSplitColumns(columns int, freeze bool, topLeftCell address.Address, activePane Pane) error {
	return ws.setCountedSplit(&columns, nil, freeze, topLeftCell, activePane)
}

// SetSplitCells splits the sheet right of the first columns columns and
// below the first rows rows.  When freeze is set the top-left cell must lie
// outside the frozen area, else the call fails with ErrWorksheet.  Measured
// split settings are cleared.
func (ws *Worksheet) SetSplitCells(columns, rows int, freeze bool, topLeftCell address.Address, activePane Pane) error {
	return ws.setCountedSplit(&columns, &rows, freeze, topLeftCell, activePane)
}

func (ws *Worksheet) setCountedSplit(columns, rows *int, freeze bool, topLeftCell address.Address, activePane Pane) error {
	col, row := 0, 0
	if columns != nil {
		col = *columns
	}
	if rows != nil {
		row = *rows
	}
	split, err := address.New(col, row)
	if err != nil {
		return err
	}
	if freeze {
		if columns != nil && topLeftCell.Column < col {
			return fmt.Errorf("worksheet: top-left cell %s lies in the %d frozen columns: %w",
				topLeftCell, col, xlerr.ErrWorksheet)
		}
		if rows != nil && topLeftCell.Row < row {
			return fmt.Errorf("worksheet: top-left cell %s lies in the %d frozen rows: %w",
				topLeftCell, row, xlerr.ErrWorksheet)
		}
	}
	ws.pane = paneState{
		freeze:       &freeze,
		splitAddress: &split,
		topLeftCell:  &topLeftCell,
		activePane:   &activePane,
	}
	return nil
}

// ResetSplit removes any split.
func (ws *Worksheet) ResetSplit() { ws.pane = paneState{} }

// ── view ─────────────────────────────────────────────────────────────────────

// ZoomFactor returns the zoom in percent; 0 means automatic.
func (ws *Worksheet) ZoomFactor() int { return ws.zoomFactor }

// SetZoomFactor sets the zoom in percent: 0 or 10 to 400.
func (ws *Worksheet) SetZoomFactor(zoom int) error {
	if zoom != 0 && (zoom < MinZoomFactor || zoom > MaxZoomFactor) {
		return fmt.Errorf("worksheet: zoom factor %d must be 0 or within [%d, %d]: %w",
			zoom, MinZoomFactor, MaxZoomFactor, xlerr.ErrRange)
	}
	ws.zoomFactor = zoom
	return nil
}

// ── protection ───────────────────────────────────────────────────────────────

// SheetProtectionValue is an action users may still perform on a protected
// sheet.  The values are the attribute names of the sheetProtection element.
type SheetProtectionValue string

// Actions that can be allowed on a protected sheet.
const (
	ProtectObjects             SheetProtectionValue = "objects"
	ProtectScenarios           SheetProtectionValue = "scenarios"
	ProtectFormatCells         SheetProtectionValue = "formatCells"
	ProtectFormatColumns       SheetProtectionValue = "formatColumns"
	ProtectFormatRows          SheetProtectionValue = "formatRows"
	ProtectInsertColumns       SheetProtectionValue = "insertColumns"
	ProtectInsertRows          SheetProtectionValue = "insertRows"
	ProtectInsertHyperlinks    SheetProtectionValue = "insertHyperlinks"
	ProtectDeleteColumns       SheetProtectionValue = "deleteColumns"
	ProtectDeleteRows          SheetProtectionValue = "deleteRows"
	ProtectSelectLockedCells   SheetProtectionValue = "selectLockedCells"
	ProtectSort                SheetProtectionValue = "sort"
	ProtectAutoFilter          SheetProtectionValue = "autoFilter"
	ProtectPivotTables         SheetProtectionValue = "pivotTables"
	ProtectSelectUnlockedCells SheetProtectionValue = "selectUnlockedCells"
)

// SheetProtectionValues lists every protection value.
var SheetProtectionValues = []SheetProtectionValue{
	ProtectObjects, ProtectScenarios, ProtectFormatCells, ProtectFormatColumns,
	ProtectFormatRows, ProtectInsertColumns, ProtectInsertRows, ProtectInsertHyperlinks,
	ProtectDeleteColumns, ProtectDeleteRows, ProtectSelectLockedCells, ProtectSort,
	ProtectAutoFilter, ProtectPivotTables, ProtectSelectUnlockedCells,
}

// AllowedActions returns the actions allowed on the protected sheet.
func (ws *Worksheet) AllowedActions() []SheetProtectionValue {
	return slices.Clone(ws.protectionValues)
}

// AddAllowedActionOnSheetProtection allows an action on the protected sheet
// and enables protection.  Allowing the selection of locked cells also
// allows the selection of unlocked cells.
func (ws *Worksheet) AddAllowedActionOnSheetProtection(v SheetProtectionValue) {
	ws.addAllowed(v)
	if v == ProtectSelectLockedCells {
		ws.addAllowed(ProtectSelectUnlockedCells)
	}
	ws.UseSheetProtection = true
}

func (ws *Worksheet) addAllowed(v SheetProtectionValue) {
	if !slices.Contains(ws.protectionValues, v) {
		ws.protectionValues = append(ws.protectionValues, v)
	}
}

// RemoveAllowedActionOnSheetProtection disallows an action again.
func (ws *Worksheet) RemoveAllowedActionOnSheetProtection(v SheetProtectionValue) {
	ws.protectionValues = slices.DeleteFunc(ws.protectionValues, func(x SheetProtectionValue) bool { return x == v })
}

// SheetProtectionPassword returns the plain password set in this session,
// or "" when none was set or the sheet was read from a file.
func (ws *Worksheet) SheetProtectionPassword() string { return ws.protectionPassword }

// SheetProtectionPasswordHash returns the legacy password hash ("83AF"), or
// "".
func (ws *Worksheet) SheetProtectionPasswordHash() string { return ws.protectionPasswordHash }

// SetSheetProtectionPassword sets the protection password and enables
// protection.  An empty password removes it.
func (ws *Worksheet) SetSheetProtectionPassword(password string) {
	if password == "" {
		ws.protectionPassword, ws.protectionPasswordHash = "", ""
		return
	}
	ws.protectionPassword = password
	ws.protectionPasswordHash = PasswordHash(password)
	ws.UseSheetProtection = true
}

// SetSheetProtectionPasswordHash restores a hash read from a file.
func (ws *Worksheet) SetSheetProtectionPasswordHash(hash string) {
	ws.protectionPassword = ""
	ws.protectionPasswordHash = strings.ToUpper(hash)
}

// PasswordHash returns the legacy 16-bit protection hash of password as
// upper-case hex, or "" for an empty password.  The hash runs over UTF-16
// code units.
func PasswordHash(password string) string {
	if password == "" {
		return ""
	}
	units := utf16.Encode([]rune(password))
	var h uint16
	for i := len(units) - 1; i >= 0; i-- {
		h = (h>>14)&0x01 | (h<<1)&0x7fff
		h ^= units[i]
	}
	h = (h>>14)&0x01 | (h<<1)&0x7fff
	h ^= 0x8000 | 'N'<<8 | 'K'
	h ^= uint16(len(units))
	return fmt.Sprintf("%X", h)
}
