package parser

import (
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/address"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/grid"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	// DensityMin is the minimum ratio of occupied cells to box area.
	DensityMin float64
	// CoverageMin is the minimum ratio of occupied rows to box height.
	CoverageMin float64
	// MinNonemptyCells is the minimum number of occupied cells.
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		CoverageMin:      0.2,
		MinNonemptyCells: 3,
	}
}

// DetectTables detects table-like regions in a sheet.
// Returns a list of cell ranges (e.g., "A1:D10") that likely represent tables.
// Cells holding an empty payload do not count as occupied.
func DetectTables(sheet *grid.Sheet, params TableDetectionParams) []string {
	b, ok := findDataBounds(sheet)
	if !ok {
		return nil
	}
	if b.cells < params.MinNonemptyCells {
		return nil
	}

	height := b.end.Row - b.start.Row + 1
	width := b.end.Column - b.start.Column + 1
	density := float64(b.cells) / float64(height*width)
	if density < params.DensityMin {
		return nil
	}
	coverage := float64(b.rows) / float64(height)
	if coverage < params.CoverageMin {
		return nil
	}

	r := Range{Start: b.start, End: b.end}
	return []string{r.String()}
}

type dataBounds struct {
	start, end address.Address
	cells      int
	rows       int
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(sheet *grid.Sheet) (dataBounds, bool) {
	var b dataBounds
	found := false
	for _, row := range sheet.Rows() {
		occupied := false
		for _, c := range row.Cells() {
			if c.Value == nil || (c.Raw() == "" && c.Kind() != grid.KindFormula) {
				continue
			}
			occupied = true
			b.cells++
			if !found {
				b.start = address.New(c.Column(), row.Index())
				b.end = b.start
				found = true
				continue
			}
			b.start.Column = min(b.start.Column, c.Column())
			b.end.Column = max(b.end.Column, c.Column())
			b.end.Row = row.Index()
		}
		if occupied {
			b.rows++
		}
	}
	return b, found
}
