package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/address"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
)

// ErrInvalidRange indicates a range reference that cannot be parsed.
var ErrInvalidRange = errors.New("invalid range reference")

// Range is a rectangular block of cells, optionally qualified by sheet.
// Start is always the top-left corner and End the bottom-right one.
type Range struct {
	Sheet string
	Start address.Address
	End   address.Address
}

// String formats the range as "A1:D4", or "A1" for a single cell. A sheet
// qualifier is prepended and quoted when needed.
func (r Range) String() string {
	s := r.Start.String()
	if r.End != r.Start {
		s += ":" + r.End.String()
	}
	if r.Sheet == "" {
		return s
	}
	return quoteSheet(r.Sheet) + "!" + s
}

// Area returns the 1-based bounds of the range.
func (r Range) Area() models.Area {
	return models.Area{
		R1: r.Start.Row,
		C1: r.Start.Column + 1,
		R2: r.End.Row,
		C2: r.End.Column + 1,
	}
}

// Rows returns the number of rows covered.
func (r Range) Rows() int { return address.RowsBetween(r.Start, r.End) + 1 }

// Columns returns the number of columns covered.
func (r Range) Columns() int { return address.ColsBetween(r.Start, r.End) + 1 }

// ParseRange parses one range reference.
// Format: A1:D4, A1, $A$1:$D$4, Sheet1!A1:D4 or 'My Sheet'!A1:D4
func ParseRange(ref string) (Range, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Range{}, fmt.Errorf("%w: empty", ErrInvalidRange)
	}

	var r Range
	rangeStr := ref
	// Split by the last ! to separate sheet name and range
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		r.Sheet = unquoteSheet(ref[:idx])
		rangeStr = ref[idx+1:]
		if r.Sheet == "" {
			return Range{}, fmt.Errorf("%w: %q has an empty sheet name", ErrInvalidRange, ref)
		}
	}

	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) > 2 {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
	}
	start, err := address.Parse(parts[0])
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %w", ErrInvalidRange, ref, err)
	}
	end := start
	if len(parts) == 2 {
		if end, err = address.Parse(parts[1]); err != nil {
			return Range{}, fmt.Errorf("%w: %q: %w", ErrInvalidRange, ref, err)
		}
	}

	r.Start = address.New(min(start.Column, end.Column), min(start.Row, end.Row))
	r.End = address.New(max(start.Column, end.Column), max(start.Row, end.Row))
	return r, nil
}

// ParseRangeList parses a comma-separated list of range references, as
// found in print area and defined name definitions. A sheet qualifier
// carries over to the following unqualified parts.
func ParseRangeList(ref string) ([]Range, error) {
	var ranges []Range
	var sheet string
	for _, part := range splitRefList(ref) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, err := ParseRange(part)
		if err != nil {
			return nil, err
		}
		if r.Sheet == "" {
			r.Sheet = sheet
		} else {
			sheet = r.Sheet
		}
		ranges = append(ranges, r)
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
	}
	return ranges, nil
}

// splitRefList splits on commas outside quoted sheet names.
func splitRefList(ref string) []string {
	var parts []string
	var b strings.Builder
	quoted := false
	for _, ch := range ref {
		switch {
		case ch == '\'':
			quoted = !quoted
			b.WriteRune(ch)
		case ch == ',' && !quoted:
			parts = append(parts, b.String())
			b.Reset()
		default:
			b.WriteRune(ch)
		}
	}
	return append(parts, b.String())
}

func unquoteSheet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

func quoteSheet(s string) string {
	if strings.ContainsAny(s, " '!,-") {
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
	return s
}
