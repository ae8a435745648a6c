package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
)

func TestRangeToJSON(t *testing.T) {
	view := &models.RangeView{
		SheetName: "Sheet1",
		Ref:       "A1:B1",
		Area:      models.Area{R1: 1, C1: 1, R2: 1, C2: 2},
		Values:    [][]string{{"a1", ""}},
	}

	data, err := RangeToJSON(view, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"sheet_name": "Sheet1",
		"ref": "A1:B1",
		"area": {"r1": 1, "c1": 1, "r2": 1, "c2": 2},
		"values": [["a1", ""]]
	}`, string(data))
	assert.NotContains(t, string(data), "\n")

	data, err = RangeToJSON(view, true)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"sheet_name\""))
}

func TestToJSONOmitsEmptySheetParts(t *testing.T) {
	wb := &models.WorkbookData{
		BookName:   "book.xlsx",
		SheetOrder: []string{"Sheet1"},
		Sheets: map[string]models.SheetData{
			"Sheet1": {Rows: []models.CellRow{{R: 2, C: map[string]interface{}{"B": int64(7)}}}},
		},
	}

	data, err := ToJSON(wb, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"book_name": "book.xlsx",
		"sheet_order": ["Sheet1"],
		"sheets": {"Sheet1": {"rows": [{"r": 2, "c": {"B": 7}}]}}
	}`, string(data))

	sheet := wb.Sheets["Sheet1"]
	data, err = SheetToJSON(&sheet, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rows": [{"r": 2, "c": {"B": 7}}]}`, string(data))
}

func TestLocationToJSON(t *testing.T) {
	data, err := LocationToJSON(&models.Location{SheetName: "S", Cell: "C3", Row: 3, Column: 3}, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sheet_name": "S", "cell": "C3", "row": 3, "column": 3}`, string(data))
}
