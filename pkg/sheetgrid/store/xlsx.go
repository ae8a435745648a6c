package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/address"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/grid"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/value"
	"github.com/xuri/excelize/v2"
)

// OpenXLSX loads an xlsx workbook. Sheets keep their document order, shared
// strings are interned into the workbook table, numbers in a date format
// become Date values, and formulas are read from the worksheet parts as
// written, shared groups included.
func OpenXLSX(path string, opts ...Option) (*grid.Workbook, error) {
	cfg := newConfig(opts...)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	defer f.Close()

	wb := grid.NewWorkbook()
	for _, name := range f.GetSheetList() {
		sheet := wb.AddSheet(name)
		if err := loadXLSXSheet(f, sheet, wb.SharedStrings()); err != nil {
			return nil, fmt.Errorf("store: read %s!%s: %w", path, name, err)
		}
	}

	formulas, err := scanFormulas(path)
	if err != nil {
		return nil, fmt.Errorf("store: scan formulas in %s: %w", path, err)
	}
	applied := 0
	for name, cells := range formulas {
		sheet, ok := wb.FindSheet(name)
		if !ok {
			continue
		}
		applied += applyFormulas(sheet, cells, cfg.logger)
	}

	cfg.logger.WithFields(logrus.Fields{
		"path":     path,
		"sheets":   len(wb.Sheets()),
		"cells":    countCells(wb),
		"formulas": applied,
	}).Debug("opened xlsx workbook")
	return wb, nil
}

func loadXLSXSheet(f *excelize.File, sheet *grid.Sheet, strs *grid.SharedStrings) error {
	rows, err := f.GetRows(sheet.Name(), excelize.Options{RawCellValue: true})
	if err != nil {
		return err
	}

	dates := dateStyles{f: f, known: make(map[int]bool)}
	for rowIdx, row := range rows {
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return err
			}
			typ, err := f.GetCellType(sheet.Name(), cellName)
			if err != nil {
				return err
			}
			v, err := xlsxValue(typ, raw, strs, func() bool { return dates.isDate(sheet.Name(), cellName) })
			if err != nil {
				return fmt.Errorf("%s: %w", cellName, err)
			}
			sheet.Set(address.New(colIdx, rowIdx+1), v)
		}
	}
	return nil
}

// xlsxValue maps an excelize cell type and raw payload to a grid value.
func xlsxValue(typ excelize.CellType, raw string, strs *grid.SharedStrings, dateStyled func() bool) (grid.Value, error) {
	switch typ {
	case excelize.CellTypeBool:
		if raw == "1" || strings.EqualFold(raw, "true") {
			return grid.Boolean("1"), nil
		}
		return grid.Boolean("0"), nil
	case excelize.CellTypeDate:
		return grid.Date(raw), nil
	case excelize.CellTypeSharedString:
		return grid.SharedString(strconv.Itoa(strs.Add(raw))), nil
	case excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return grid.String(raw), nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if dateStyled() {
			serial, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return grid.Number(raw), nil
			}
			t, err := excelize.ExcelDateToTime(serial, false)
			if err != nil {
				return nil, err
			}
			return grid.Date(t.Format(time.RFC3339)), nil
		}
		return grid.Number(raw), nil
	default:
		return grid.Untyped(raw), nil
	}
}

// dateStyles caches whether a style index applies a date number format.
type dateStyles struct {
	f     *excelize.File
	known map[int]bool
}

func (d dateStyles) isDate(sheet, cell string) bool {
	idx, err := d.f.GetCellStyle(sheet, cell)
	if err != nil || idx == 0 {
		return false
	}
	if isDate, ok := d.known[idx]; ok {
		return isDate
	}
	isDate := false
	if style, err := d.f.GetStyle(idx); err == nil && style != nil {
		isDate = isDateNumFmt(style.NumFmt)
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		}
	}
	d.known[idx] = isDate
	return isDate
}

// isDateNumFmt reports whether a built-in number format id is a date or
// date-time format.
func isDateNumFmt(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 45 && id <= 47)
}

// isDateFormatCode reports whether a custom format code renders a date.
// Quoted literals and bracketed sections are ignored.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	quoted, bracket := false, false
	for _, ch := range strings.ToLower(code) {
		switch {
		case ch == '"':
			quoted = !quoted
		case quoted:
		case ch == '[':
			bracket = true
		case ch == ']':
			bracket = false
		case bracket:
		default:
			b.WriteRune(ch)
		}
	}
	plain := b.String()
	return strings.ContainsAny(plain, "yd") || strings.Contains(plain, "mmm")
}

// SaveXLSX writes wb as an xlsx file. Values are written with their native
// xlsx types; shared formula groups are written from their origin cell.
func SaveXLSX(wb *grid.Workbook, path string, opts ...Option) error {
	cfg := newConfig(opts...)

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return fmt.Errorf("store: save %s: %w", path, sheetgrid.ErrNoSheets)
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name()); err != nil {
				return fmt.Errorf("store: save %s: %w", path, err)
			}
		} else if _, err := f.NewSheet(sheet.Name()); err != nil {
			return fmt.Errorf("store: save %s: %w", path, err)
		}
		if err := writeXLSXSheet(f, sheet, cfg.codec); err != nil {
			return fmt.Errorf("store: save %s!%s: %w", path, sheet.Name(), err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("store: save %s: %w", path, err)
	}

	cfg.logger.WithFields(logrus.Fields{
		"path":   path,
		"sheets": len(sheets),
		"cells":  countCells(wb),
	}).Debug("saved xlsx workbook")
	return nil
}

func writeXLSXSheet(f *excelize.File, sheet *grid.Sheet, codec *value.Codec) error {
	orphans := orphanedSharedFormulas(sheet)
	for _, row := range sheet.Rows() {
		for _, c := range row.Cells() {
			cellName := address.New(c.Column(), row.Index()).String()
			if v, ok := c.Value.(grid.Formula); ok && v.Shared && v.Text == "" {
				if origin, orphaned := orphans[v.SharedIndex]; orphaned {
					// The origin is gone; keep what the member decodes to.
					if err := f.SetCellFormula(sheet.Name(), cellName, origin.Text); err != nil {
						return fmt.Errorf("%s: %w", cellName, err)
					}
					continue
				}
			}
			if err := writeXLSXCell(f, sheet, cellName, c, codec); err != nil {
				return fmt.Errorf("%s: %w", cellName, err)
			}
		}
	}
	return nil
}

// orphanedSharedFormulas returns the shared formulas whose origin cell no
// longer holds the group's master formula.
func orphanedSharedFormulas(sheet *grid.Sheet) map[int]grid.SharedFormula {
	orphans := make(map[int]grid.SharedFormula)
	for _, sf := range sheet.SharedFormulas().All() {
		c, ok := sheet.Get(sf.Origin)
		if ok {
			if v, isFormula := c.Value.(grid.Formula); isFormula && v.Shared && v.SharedIndex == sf.Index && v.Text != "" && v.Ref != "" {
				continue
			}
		}
		orphans[sf.Index] = sf
	}
	return orphans
}

func writeXLSXCell(f *excelize.File, sheet *grid.Sheet, cellName string, c *grid.Cell, codec *value.Codec) error {
	name := sheet.Name()
	switch v := c.Value.(type) {
	case nil:
		return nil
	case grid.Number:
		n, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		if err != nil {
			return f.SetCellStr(name, cellName, string(v))
		}
		return f.SetCellFloat(name, cellName, n, -1, 64)
	case grid.Boolean:
		// Same rule as decoding: only "0" is false.
		return f.SetCellBool(name, cellName, string(v) != "0")
	case grid.Date:
		t, ok := codec.ParseDate(string(v))
		if !ok {
			return f.SetCellStr(name, cellName, string(v))
		}
		return f.SetCellValue(name, cellName, t)
	case grid.Formula:
		if !v.Shared {
			return f.SetCellFormula(name, cellName, v.Text)
		}
		// Members of a shared group are written by their origin.
		if v.Text == "" || v.Ref == "" {
			return nil
		}
		shared := excelize.STCellFormulaTypeShared
		ref := v.Ref
		return f.SetCellFormula(name, cellName, v.Text, excelize.FormulaOpts{Type: &shared, Ref: &ref})
	default:
		text, err := codec.Decode(sheet, c)
		if err != nil {
			return err
		}
		return f.SetCellStr(name, cellName, text)
	}
}
