package parser

import (
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/grid"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/value"
)

// ExtractOptions configures ExtractWorkbook.
type ExtractOptions struct {
	// Codec decodes cells. Nil means value.DefaultCodec.
	Codec *value.Codec
	// IncludeKinds adds per-cell value kinds to each row.
	IncludeKinds bool
	// Tables configures table candidate detection.
	Tables TableDetectionParams
}

// DefaultExtractOptions returns default extraction options.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{Tables: DefaultTableParams()}
}

// ExtractWorkbook builds the structured view of every sheet of wb.
func ExtractWorkbook(wb *grid.Workbook, bookName string, opts ExtractOptions) (*models.WorkbookData, error) {
	sheets := make(map[string]models.SheetData)
	order := make([]string, 0, len(wb.Sheets()))

	for _, sheet := range wb.Sheets() {
		data, err := ExtractSheet(sheet, opts)
		if err != nil {
			return nil, err
		}
		order = append(order, sheet.Name())
		sheets[sheet.Name()] = data
	}

	return &models.WorkbookData{
		BookName:   bookName,
		SheetOrder: order,
		Sheets:     sheets,
	}, nil
}

// ExtractSheet builds the structured view of one sheet.
func ExtractSheet(sheet *grid.Sheet, opts ExtractOptions) (models.SheetData, error) {
	rows, err := ExtractCells(sheet, opts.Codec, opts.IncludeKinds)
	if err != nil {
		return models.SheetData{}, err
	}

	var formulas []string
	for _, f := range sheet.SharedFormulas().All() {
		formulas = append(formulas, f.Ref+"="+f.Text)
	}

	return models.SheetData{
		Rows:            rows,
		TableCandidates: DetectTables(sheet, opts.Tables),
		SharedFormulas:  formulas,
	}, nil
}
