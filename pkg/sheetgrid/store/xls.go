package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/record"
	"github.com/shakinm/xlsReader/xls/structure"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/address"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/grid"
)

// OpenXLS imports a legacy BIFF workbook. The import is read-only: save the
// result with SaveXLSX. Formulas and number formats are not carried over, so
// xls dates arrive as numbers.
func OpenXLS(path string, opts ...Option) (*grid.Workbook, error) {
	cfg := newConfig(opts...)

	book, err := xls.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	wb := grid.NewWorkbook()
	skipped := 0
	for i := 0; i < book.GetNumberSheets(); i++ {
		s, err := book.GetSheet(i)
		if err != nil {
			return nil, fmt.Errorf("store: read %s sheet %d: %w", path, i, err)
		}
		if s == nil {
			continue
		}
		sheet := wb.AddSheet(s.GetName())

		for r := 0; r < s.GetNumberRows(); r++ {
			row, err := s.GetRow(r)
			if err != nil {
				return nil, fmt.Errorf("store: read %s!%s row %d: %w", path, sheet.Name(), r+1, err)
			}
			for c, data := range row.GetCols() {
				v, ok := xlsValue(data, wb.SharedStrings())
				if !ok {
					if data != nil && xlsRecordKind(data) != xlsBlank {
						skipped++
						cfg.logger.WithFields(logrus.Fields{
							"sheet":  sheet.Name(),
							"cell":   address.New(c, r+1).String(),
							"record": fmt.Sprintf("%T", data),
						}).Debug("skipping unsupported xls record")
					}
					continue
				}
				sheet.Set(address.New(c, r+1), v)
			}
		}
	}

	cfg.logger.WithFields(logrus.Fields{
		"path":    path,
		"sheets":  len(wb.Sheets()),
		"cells":   countCells(wb),
		"skipped": skipped,
	}).Debug("imported xls workbook")
	return wb, nil
}

// xlsRecord is the value kind carried by a BIFF cell record.
type xlsRecord int

const (
	xlsUnknown xlsRecord = iota
	xlsBlank
	xlsNumber
	xlsRk
	xlsSharedLabel
	xlsLabel
	xlsBoolErr
)

func xlsRecordKind(data structure.CellData) xlsRecord {
	switch data.(type) {
	case nil:
		return xlsUnknown
	case *record.Blank, *record.FakeBlank:
		return xlsBlank
	case *record.Number:
		return xlsNumber
	case *record.Rk:
		return xlsRk
	case *record.LabelSSt:
		return xlsSharedLabel
	case *record.LabelBIFF8, *record.LabelBIFF5:
		return xlsLabel
	case *record.BoolErr:
		return xlsBoolErr
	default:
		return xlsUnknown
	}
}

// xlsValue maps a BIFF cell record to a grid value. Blank and placeholder
// records report false.
func xlsValue(data structure.CellData, strs *grid.SharedStrings) (grid.Value, bool) {
	kind := xlsRecordKind(data)
	var text string
	var num float64
	switch kind {
	case xlsNumber:
		num = data.GetFloat64()
	case xlsRk, xlsSharedLabel, xlsLabel, xlsBoolErr:
		text = data.GetString()
	}
	return xlsRecordValue(kind, text, num, strs)
}

func xlsRecordValue(kind xlsRecord, text string, num float64, strs *grid.SharedStrings) (grid.Value, bool) {
	switch kind {
	case xlsNumber:
		return grid.Number(strconv.FormatFloat(num, 'f', -1, 64)), true
	case xlsRk:
		return grid.Number(text), true
	case xlsSharedLabel:
		return grid.SharedString(strconv.Itoa(strs.Add(text))), true
	case xlsLabel:
		return grid.String(text), true
	case xlsBoolErr:
		switch strings.ToUpper(text) {
		case "TRUE":
			return grid.Boolean("1"), true
		case "FALSE":
			return grid.Boolean("0"), true
		default:
			// Error literal such as #DIV/0!
			return grid.String(text), true
		}
	default:
		return nil, false
	}
}
