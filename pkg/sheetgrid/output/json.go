// Package output serializes models views to JSON.
package output

import (
	"encoding/json"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
)

// ToJSON serializes a workbook view.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

// SheetToJSON serializes a single sheet view.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// RangeToJSON serializes a range view.
func RangeToJSON(view *models.RangeView, pretty bool) ([]byte, error) {
	return marshal(view, pretty)
}

// LocationToJSON serializes a cell location.
func LocationToJSON(loc *models.Location, pretty bool) ([]byte, error) {
	return marshal(loc, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
