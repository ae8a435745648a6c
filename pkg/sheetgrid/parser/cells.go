// Package parser turns range references into ranges and sheets into the
// row and table views of package models.
package parser

import (
	"strconv"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/address"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/grid"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/value"
)

// ExtractCells extracts decoded cell data from a sheet.
// It returns a slice of CellRow containing non-empty rows. A nil codec means
// value.DefaultCodec.
func ExtractCells(sheet *grid.Sheet, codec *value.Codec, includeKinds bool) ([]models.CellRow, error) {
	if codec == nil {
		codec = value.DefaultCodec
	}

	var result []models.CellRow
	for _, row := range sheet.Rows() {
		cellMap := make(map[string]interface{})
		kindMap := make(map[string]string)

		for _, c := range row.Cells() {
			text, err := codec.Decode(sheet, c)
			if err != nil {
				return nil, &sheetgrid.RangeError{
					Sheet: sheet.Name(),
					Op:    "extract",
					Addr:  address.New(c.Column(), row.Index()),
					Err:   err,
				}
			}
			if text == "" {
				continue
			}
			col := address.ColumnNumberToName(c.Column())

			// Only numbers get a numeric JSON type
			if c.Kind() == grid.KindNumber {
				cellMap[col] = parseValue(text)
			} else {
				cellMap[col] = text
			}

			if includeKinds {
				kindMap[col] = c.Kind().String()
			}
		}

		if len(cellMap) > 0 {
			cellRow := models.CellRow{
				R: row.Index(),
				C: cellMap,
			}
			if includeKinds {
				cellRow.Kinds = kindMap
			}
			result = append(result, cellRow)
		}
	}

	return result, nil
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
