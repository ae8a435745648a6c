// Package models defines the JSON views produced from a sheetgrid workbook.
package models

// CellRow represents a single occupied row of a sheet.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column name (e.g. "B") to the decoded cell value.
	C map[string]interface{} `json:"c"`
	// Kinds maps column name to the value kind when kinds are requested.
	Kinds map[string]string `json:"kinds,omitempty"`
}
