package models

// Area represents cell coordinate bounds of a rectangular range.
type Area struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// RangeView represents a slice of a sheet restricted to a range.
type RangeView struct {
	// BookName is the workbook file name owning the range.
	BookName string `json:"book_name,omitempty"`
	// SheetName is the sheet the range was read from.
	SheetName string `json:"sheet_name"`
	// Ref is the range in A1 notation, e.g. "A1:D4".
	Ref string `json:"ref"`
	// Area is the range bounds.
	Area Area `json:"area"`
	// Values holds the decoded values in row-major order.
	Values [][]string `json:"values"`
}

// Location is a single cell position reported by navigation commands.
type Location struct {
	SheetName string `json:"sheet_name,omitempty"`
	Cell      string `json:"cell"`
	Row       int    `json:"row"`
	Column    int    `json:"column"`
}
