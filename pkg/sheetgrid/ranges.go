package sheetgrid

import (
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/address"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/grid"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/value"
)

// GetRange returns the decoded values of the rectangle from start to end,
// inclusive, in row-major order. Missing rows and cells read as "".
func GetRange(doc Document, sheetName string, start, end address.Address, opts ...Option) ([][]string, error) {
	o := NewOptions(opts...)
	sheet, err := resolveSheet(doc, sheetName, o)
	if err != nil {
		return nil, err
	}
	return readRange(sheet, start, end, o.Codec, false)
}

// PasteRange writes values starting at start, rows outer and columns inner.
// Rows may differ in length. Each value is classified before it is stored,
// and existing cells are overwritten in place.
func PasteRange(doc Document, sheetName string, start address.Address, values [][]string, opts ...Option) error {
	o := NewOptions(opts...)
	sheet, err := resolveSheet(doc, sheetName, o)
	if err != nil {
		return err
	}
	WriteRange(sheet, start, values, o.Codec)
	return nil
}

// CutRange reads the rectangle like GetRange and removes every cell it found.
// The returned values are those before removal.
func CutRange(doc Document, sheetName string, start, end address.Address, opts ...Option) ([][]string, error) {
	o := NewOptions(opts...)
	sheet, err := resolveSheet(doc, sheetName, o)
	if err != nil {
		return nil, err
	}
	return readRange(sheet, start, end, o.Codec, true)
}

// GetCell returns the decoded value at addr, or "" when nothing is there.
func GetCell(doc Document, sheetName string, addr address.Address, opts ...Option) (string, error) {
	o := NewOptions(opts...)
	sheet, err := resolveSheet(doc, sheetName, o)
	if err != nil {
		return "", err
	}
	c, ok := sheet.Get(addr)
	if !ok {
		return "", nil
	}
	s, err := o.Codec.Decode(sheet, c)
	if err != nil {
		return "", newRangeError(sheet.Name(), "get", addr, err)
	}
	return s, nil
}

// ReadRange is GetRange on an already resolved sheet. A nil codec means
// value.DefaultCodec.
func ReadRange(sheet *grid.Sheet, start, end address.Address, codec *value.Codec) ([][]string, error) {
	return readRange(sheet, start, end, codecOrDefault(codec), false)
}

// TakeRange is CutRange on an already resolved sheet.
func TakeRange(sheet *grid.Sheet, start, end address.Address, codec *value.Codec) ([][]string, error) {
	return readRange(sheet, start, end, codecOrDefault(codec), true)
}

// WriteRange is PasteRange on an already resolved sheet.
func WriteRange(sheet *grid.Sheet, start address.Address, values [][]string, codec *value.Codec) {
	codec = codecOrDefault(codec)
	for i, row := range values {
		for j, raw := range row {
			addr := address.New(start.Column+j, start.Row+i)
			sheet.InsertOrGet(addr).Value = codec.New(raw)
		}
	}
}

// ImportRows adds a sheet named sheetName and pastes rows at A1. An empty
// name gets the workbook's default sheet name.
func ImportRows(wb *grid.Workbook, sheetName string, rows [][]string, opts ...Option) *grid.Sheet {
	o := NewOptions(opts...)
	sheet := wb.AddSheet(sheetName)
	WriteRange(sheet, address.A1, rows, o.Codec)
	return sheet
}

// readRange walks start..end and, when cut is set, removes each cell right
// after decoding it. An end before start yields an empty result.
func readRange(sheet *grid.Sheet, start, end address.Address, codec *value.Codec, cut bool) ([][]string, error) {
	op := "get"
	if cut {
		op = "cut"
	}
	height := end.Row - start.Row + 1
	width := end.Column - start.Column + 1
	if height <= 0 || width <= 0 {
		return [][]string{}, nil
	}

	result := make([][]string, 0, height)
	for r := start.Row; r <= end.Row; r++ {
		values := make([]string, width)
		row, ok := sheet.Row(r)
		if !ok {
			result = append(result, values)
			continue
		}
		for c := start.Column; c <= end.Column; c++ {
			cell, ok := row.Cell(c)
			if !ok {
				continue
			}
			addr := address.New(c, r)
			s, err := codec.Decode(sheet, cell)
			if err != nil {
				return nil, newRangeError(sheet.Name(), op, addr, err)
			}
			values[c-start.Column] = s
			if cut {
				sheet.Remove(addr)
			}
		}
		result = append(result, values)
	}
	return result, nil
}

func codecOrDefault(c *value.Codec) *value.Codec {
	if c == nil {
		return value.DefaultCodec
	}
	return c
}
