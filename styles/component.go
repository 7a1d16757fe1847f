package styles

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/TsubasaBE/go-xlsx/xlerr"
)

// NoID is the InternalID of a component or style that has not been assigned
// a position in a written style sheet.
const NoID = -1

// Component is implemented by *Font, *Fill, *Border, *CellXf and
// *NumberFormat.
type Component interface {
	// Hash returns a content hash that ignores the InternalID.
	Hash() uint64
	// IsDefault reports whether every field holds its default value.
	IsDefault() bool
	// ID returns the InternalID.
	ID() int
}

// compareIDs orders two internal IDs.  An unassigned ID (negative) sorts
// before any assigned one.
func compareIDs(a, b int) int {
	switch {
	case a < 0 && b < 0:
		return 0
	case a < 0:
		return -1
	case b < 0:
		return 1
	}
	return cmp.Compare(a, b)
}

// validateColor accepts an empty string or exactly eight hex digits (ARGB).
func validateColor(field, argb string) error {
	if argb == "" {
		return nil
	}
	if len(argb) != 8 {
		return fmt.Errorf("styles: %s %q must be empty or 8 hex digits (ARGB): %w", field, argb, xlerr.ErrStyle)
	}
	for i := 0; i < len(argb); i++ {
		c := argb[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return fmt.Errorf("styles: %s %q contains a non-hex character: %w", field, argb, xlerr.ErrStyle)
		}
	}
	return nil
}

// normalizeColor validates argb and returns it upper-cased.
func normalizeColor(field, argb string) (string, error) {
	if err := validateColor(field, argb); err != nil {
		return "", err
	}
	return strings.ToUpper(argb), nil
}

// hashFields writes the fields, separated by a unit separator, into an
// xxhash digest.
func hashFields(kind string, fields ...any) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(kind)
	for _, f := range fields {
		_, _ = d.WriteString("\x1f")
		_, _ = fmt.Fprint(d, f)
	}
	return d.Sum64()
}
