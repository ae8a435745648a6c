package sheetgrid

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/grid"
)

// Document is the sheet collection operations resolve names against.
// *grid.Workbook satisfies it.
type Document interface {
	Sheets() []*grid.Sheet
	FindSheet(name string) (*grid.Sheet, bool)
	FirstSheet() (*grid.Sheet, bool)
}

var _ Document = (*grid.Workbook)(nil)

// ResolveSheet finds the named sheet. When no sheet has that name it falls
// back to the first sheet, or fails with ErrSheetNotFound in strict mode.
func ResolveSheet(doc Document, name string, opts ...Option) (*grid.Sheet, error) {
	return resolveSheet(doc, name, NewOptions(opts...))
}

func resolveSheet(doc Document, name string, o *Options) (*grid.Sheet, error) {
	if s, ok := doc.FindSheet(name); ok {
		return s, nil
	}
	if o.Strict {
		return nil, fmt.Errorf("sheetgrid: %w: %q", ErrSheetNotFound, name)
	}
	first, ok := doc.FirstSheet()
	if !ok {
		return nil, fmt.Errorf("sheetgrid: %w", ErrNoSheets)
	}
	o.Logger.WithFields(logrus.Fields{
		"requested": name,
		"using":     first.Name(),
	}).Warn("sheet not found, falling back to first sheet")
	return first, nil
}
