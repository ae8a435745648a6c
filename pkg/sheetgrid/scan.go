package sheetgrid

import (
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/address"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/grid"
)

// DefaultScanStart is where ScanToEnd starts when callers have no better
// position.
var DefaultScanStart = address.A1

// ScanToEnd walks from start in dir while cells are occupied and returns the
// last occupied address. It returns start itself when start is empty. The
// walk never continues into the next block of data.
func ScanToEnd(doc Document, sheetName string, dir address.Direction, start address.Address, opts ...Option) (address.Address, error) {
	o := NewOptions(opts...)
	sheet, err := resolveSheet(doc, sheetName, o)
	if err != nil {
		return address.Address{}, err
	}
	return ScanSheetToEnd(sheet, dir, start), nil
}

// ScanSheetToEnd is ScanToEnd on an already resolved sheet.
func ScanSheetToEnd(sheet *grid.Sheet, dir address.Direction, start address.Address) address.Address {
	result := start
	if dir.Horizontal() {
		row, ok := sheet.Row(start.Row)
		if !ok {
			return result
		}
		step := 1
		if dir == address.Left {
			step = -1
		}
		for col := start.Column; col >= 0; col += step {
			if _, ok := row.Cell(col); !ok {
				break
			}
			result = address.New(col, start.Row)
		}
		return result
	}

	step := 1
	if dir == address.Up {
		step = -1
	}
	for r := start.Row; r >= 1; r += step {
		if _, ok := sheet.Get(address.New(start.Column, r)); !ok {
			break
		}
		result = address.New(start.Column, r)
	}
	return result
}

// Scan offsets start by count cells in dir without looking at any sheet. The
// result is clamped to column A and row 1.
func Scan(dir address.Direction, start address.Address, count int) address.Address {
	switch dir {
	case address.Left:
		return address.New(max(start.Column-count, 0), start.Row)
	case address.Right:
		return address.New(max(start.Column+count, 0), start.Row)
	case address.Up:
		return address.New(start.Column, max(start.Row-count, 1))
	case address.Down:
		return address.New(start.Column, max(start.Row+count, 1))
	default:
		return start
	}
}
