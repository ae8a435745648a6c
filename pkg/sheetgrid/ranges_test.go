package sheetgrid

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/address"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/grid"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/value"
)

var a = address.MustParse

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// sampleWorkbook holds the three-row grid used across these tests:
//
//	a1    b1        c1
//	1     2         3
//	true  1-1-2012  true  true
func sampleWorkbook(t *testing.T) *grid.Workbook {
	t.Helper()
	wb := grid.NewWorkbook()
	wb.AddSheet("Sheet1")
	err := PasteRange(wb, "Sheet1", address.A1, [][]string{
		{"a1", "b1", "c1"},
		{"1", "2", "3"},
		{"true", "1-1-2012", "true", "true"},
	})
	require.NoError(t, err)
	return wb
}

func TestGetRangeAfterPaste(t *testing.T) {
	wb := sampleWorkbook(t)

	got, err := GetRange(wb, "Sheet1", a("A1"), a("D4"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"a1", "b1", "c1", ""},
		{"1", "2", "3", ""},
		{"True", "January 1, 2012", "True", "True"},
		{"", "", "", ""},
	}, got)
}

func TestGetRangeShape(t *testing.T) {
	wb := sampleWorkbook(t)

	got, err := GetRange(wb, "Sheet1", a("B1"), a("C3"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"b1", "c1"},
		{"2", "3"},
		{"January 1, 2012", "True"},
	}, got)

	got, err = GetRange(wb, "Sheet1", a("C3"), a("A1"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPasteThenGetCanonicalizes(t *testing.T) {
	wb := grid.NewWorkbook()
	wb.AddSheet("Sheet1")
	input := [][]string{
		{"x", "42", "TRUE"},
		{"3.25", "12/31/1999", "false"},
	}
	require.NoError(t, PasteRange(wb, "Sheet1", a("B2"), input))

	got, err := GetRange(wb, "Sheet1", a("B2"), a("D3"))
	require.NoError(t, err)

	sheet, _ := wb.FirstSheet()
	for i, row := range input {
		for j, raw := range row {
			probe := grid.NewSheet("probe")
			want, err := value.Decode(probe, probe.Set(address.A1, value.New(raw)))
			require.NoError(t, err)
			assert.Equal(t, want, got[i][j], "value %q", raw)
		}
	}
	assert.Equal(t, 6, sheet.Len())
	// A pasted "false" keeps its raw payload, which is not "0".
	assert.Equal(t, "True", got[1][2])
	assert.Equal(t, "December 31, 1999", got[1][1])
}

func TestPasteRaggedRowsLeavesOthersUntouched(t *testing.T) {
	wb := sampleWorkbook(t)
	require.NoError(t, PasteRange(wb, "Sheet1", a("B1"), [][]string{
		{"x"},
		{"y", "z"},
	}))

	got, err := GetRange(wb, "Sheet1", a("A1"), a("D3"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"a1", "x", "c1", ""},
		{"1", "y", "z", ""},
		{"True", "January 1, 2012", "True", "True"},
	}, got)
}

func TestPasteOverwritesInPlace(t *testing.T) {
	wb := sampleWorkbook(t)
	sheet, _ := wb.FindSheet("Sheet1")
	before, _ := sheet.Get(a("A2"))

	require.NoError(t, PasteRange(wb, "Sheet1", a("A2"), [][]string{{"hello"}}))
	after, _ := sheet.Get(a("A2"))
	assert.Same(t, before, after)
	assert.Equal(t, grid.KindString, after.Kind())
}

func TestCutThenGetIsEmpty(t *testing.T) {
	wb := sampleWorkbook(t)

	cut, err := CutRange(wb, "Sheet1", a("A1"), a("D4"))
	require.NoError(t, err)
	assert.Equal(t, "January 1, 2012", cut[2][1])

	got, err := GetRange(wb, "Sheet1", a("A1"), a("D4"))
	require.NoError(t, err)
	for _, row := range got {
		for _, v := range row {
			assert.Equal(t, "", v)
		}
	}

	sheet, _ := wb.FirstSheet()
	assert.Equal(t, 0, sheet.Len())
	assert.Equal(t, 3, sheet.RowCount(), "rows outlive their cells")
}

func TestCutAndPasteMovesBlock(t *testing.T) {
	wb := sampleWorkbook(t)

	cut, err := CutRange(wb, "Sheet1", a("A1"), a("B2"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a1", "b1"}, {"1", "2"}}, cut)

	require.NoError(t, PasteRange(wb, "Sheet1", a("C3"), cut))

	moved, err := GetRange(wb, "Sheet1", a("C3"), a("D4"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a1", "b1"}, {"1", "2"}}, moved)

	emptied, err := GetRange(wb, "Sheet1", a("A1"), a("B2"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"", ""}, {"", ""}}, emptied)

	c1, err := GetCell(wb, "Sheet1", a("C1"))
	require.NoError(t, err)
	assert.Equal(t, "c1", c1)
}

func TestSheetFallback(t *testing.T) {
	wb := sampleWorkbook(t)
	wb.AddSheet("Other")

	logger, hook := test.NewNullLogger()
	got, err := GetRange(wb, "Shet1", a("A1"), a("A1"), WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a1"}}, got)
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "Sheet1", hook.LastEntry().Data["using"])

	require.NoError(t, PasteRange(wb, "missing", a("A1"), [][]string{{"z"}}, WithLogger(quietLogger())))
	v, err := GetCell(wb, "Sheet1", a("A1"))
	require.NoError(t, err)
	assert.Equal(t, "z", v, "paste to an unknown name lands on the first sheet")
}

func TestStrictSheet(t *testing.T) {
	wb := sampleWorkbook(t)

	_, err := GetRange(wb, "Shet1", a("A1"), a("A1"), WithStrictSheet())
	assert.ErrorIs(t, err, ErrSheetNotFound)

	err = PasteRange(wb, "Shet1", a("A1"), [][]string{{"x"}}, WithStrictSheet())
	assert.ErrorIs(t, err, ErrSheetNotFound)

	_, err = CutRange(wb, "Shet1", a("A1"), a("A1"), WithStrictSheet())
	assert.ErrorIs(t, err, ErrSheetNotFound)

	_, err = ScanToEnd(wb, "Shet1", address.Down, a("A1"), WithStrictSheet())
	assert.ErrorIs(t, err, ErrSheetNotFound)

	s, err := ResolveSheet(wb, "Sheet1", WithStrictSheet())
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", s.Name())
}

func TestEmptyDocument(t *testing.T) {
	wb := grid.NewWorkbook()
	_, err := GetRange(wb, "Sheet1", a("A1"), a("B2"), WithLogger(quietLogger()))
	assert.ErrorIs(t, err, ErrNoSheets)
}

func TestCorruptFormulaSurfacesAsRangeError(t *testing.T) {
	wb := grid.NewWorkbook()
	sheet := wb.AddSheet("Sheet1")
	sheet.Set(a("B2"), grid.Formula{Shared: true, SharedIndex: 3})

	_, err := GetRange(wb, "Sheet1", a("A1"), a("C3"))
	require.Error(t, err)
	assert.ErrorIs(t, err, value.ErrCorruptFormulaReference)

	var rerr *RangeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "get", rerr.Op)
	assert.Equal(t, "B2", rerr.Addr.String())
	assert.Contains(t, rerr.Error(), "Sheet1!B2")

	_, err = GetCell(wb, "Sheet1", a("B2"))
	assert.ErrorIs(t, err, value.ErrCorruptFormulaReference)
}

func TestSharedFormulaReadsOriginText(t *testing.T) {
	wb := grid.NewWorkbook()
	sheet := wb.AddSheet("Sheet1")
	sheet.SharedFormulas().Define(0, a("C1"), "C1:C2", "A1*B1")
	sheet.Set(a("C1"), grid.Formula{Text: "A1*B1", Shared: true, SharedIndex: 0, Ref: "C1:C2"})
	sheet.Set(a("C2"), grid.Formula{Shared: true, SharedIndex: 0})

	got, err := ReadRange(sheet, a("C1"), a("C2"), nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A1*B1"}, {"A1*B1"}}, got)
}

func TestImportRows(t *testing.T) {
	wb := grid.NewWorkbook()
	sheet := ImportRows(wb, "", [][]string{{"h1", "h2"}, {"1", "2"}})
	assert.Equal(t, "Sheet1", sheet.Name())

	got, err := TakeRange(sheet, a("A1"), a("B2"), nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"h1", "h2"}, {"1", "2"}}, got)
	assert.Equal(t, 0, sheet.Len())
}

func TestGetCellMissing(t *testing.T) {
	wb := sampleWorkbook(t)
	v, err := GetCell(wb, "Sheet1", a("Z99"))
	require.NoError(t, err)
	assert.Equal(t, "", v)
}
