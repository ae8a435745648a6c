package models

// SheetData represents structured data for a single sheet.
type SheetData struct {
	// Rows contains the occupied rows with decoded cell values.
	Rows []CellRow `json:"rows,omitempty"`
	// TableCandidates contains cell ranges likely representing tables.
	TableCandidates []string `json:"table_candidates,omitempty"`
	// SharedFormulas lists shared formula groups as "ref=text".
	SharedFormulas []string `json:"shared_formulas,omitempty"`
}
