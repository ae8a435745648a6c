package store

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/address"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/grid"
)

// formulaCell is one <c> element of a worksheet part that carries an <f>.
type formulaCell struct {
	cell   string
	text   string
	kind   string // t attribute: "", "shared", "array"
	si     int
	span   string // ref attribute
	cached string
}

// scanFormulas reads every worksheet part of the xlsx at path and returns
// its formula cells keyed by sheet name.
func scanFormulas(path string) (map[string][]formulaCell, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return readSheetFormulas(&r.Reader)
}

func readSheetFormulas(r *zip.Reader) (map[string][]formulaCell, error) {
	// Read workbook.xml to get sheet names and rIds
	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil {
		return nil, err
	}
	if workbookXML == nil {
		return nil, fmt.Errorf("%w: missing xl/workbook.xml", ErrUnsupportedFormat)
	}
	sheetsInfo := parseWorkbookSheets(workbookXML)

	// Read workbook.xml.rels to map rId to sheet file
	wbRelsXML, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil {
		return nil, err
	}
	sheetFiles := parseWorkbookRels(wbRelsXML, sheetsInfo)

	result := make(map[string][]formulaCell)
	for sheetName, sheetPath := range sheetFiles {
		data, err := readZipFile(r, sheetPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sheetPath, err)
		}
		if data == nil {
			continue
		}
		cells, err := parseSheetFormulas(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sheetPath, err)
		}
		if len(cells) > 0 {
			result[sheetName] = cells
		}
	}
	return result, nil
}

// parseSheetFormulas collects the cells of a worksheet part that hold a
// formula, together with their cached values.
func parseSheetFormulas(data []byte) ([]formulaCell, error) {
	var (
		result  []formulaCell
		current formulaCell
		hasF    bool
	)
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "c":
				current = formulaCell{cell: attrValue(t, "r")}
				hasF = false
			case "f":
				hasF = true
				current.kind = attrValue(t, "t")
				current.span = attrValue(t, "ref")
				if si := attrValue(t, "si"); si != "" {
					if current.si, err = strconv.Atoi(si); err != nil {
						return nil, fmt.Errorf("cell %s: shared index %q: %w", current.cell, si, err)
					}
				}
				if current.text, err = readElementText(decoder); err != nil {
					return nil, err
				}
			case "v":
				if current.cached, err = readElementText(decoder); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "c" && hasF {
				result = append(result, current)
				hasF = false
			}
		}
	}
}

// applyFormulas stores the formula cells on sheet and registers the origin
// of every shared formula group.
func applyFormulas(sheet *grid.Sheet, cells []formulaCell, logger logrus.FieldLogger) int {
	applied := 0
	for _, fc := range cells {
		addr, err := address.Parse(fc.cell)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"sheet": sheet.Name(),
				"cell":  fc.cell,
			}).Debug("skipping formula with unparsable cell reference")
			continue
		}

		f := grid.Formula{
			Text:   fc.text,
			Cached: fc.cached,
			Ref:    fc.span,
		}
		if fc.kind == "shared" {
			f.Shared = true
			f.SharedIndex = fc.si
			if fc.text != "" {
				sheet.SharedFormulas().Define(fc.si, addr, fc.span, fc.text)
			}
		}
		sheet.Set(addr, f)
		applied++
	}
	return applied
}

// Helper functions

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

func readElementText(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}

func attrValue(se xml.StartElement, local string) string {
	for _, attr := range se.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}

func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return "xl/" + clean
	}
	// Absolute targets are relative to the package root
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return baseDir + "/" + target
}

func parseWorkbookSheets(data []byte) map[string]string {
	result := make(map[string]string) // rId -> sheet name
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			name, rID := attrValue(se, "name"), attrValue(se, "id")
			if name != "" && rID != "" {
				result[rID] = name
			}
		}
	}

	return result
}

func parseWorkbookRels(data []byte, sheetsInfo map[string]string) map[string]string {
	result := make(map[string]string) // sheet name -> file path
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			rID, target := attrValue(se, "Id"), attrValue(se, "Target")
			if sheetName, ok := sheetsInfo[rID]; ok && strings.Contains(strings.ToLower(target), "worksheet") {
				result[sheetName] = resolveRelativePath(target, "xl")
			}
		}
	}

	return result
}
