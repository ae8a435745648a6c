package sheetgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/address"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/grid"
)

func TestScanToEnd(t *testing.T) {
	wb := sampleWorkbook(t)

	tests := []struct {
		dir   address.Direction
		start string
		want  string
	}{
		{address.Down, "A1", "A3"},
		{address.Up, "B3", "B1"},
		{address.Right, "A1", "C1"},
		{address.Left, "D3", "A3"},
		{address.Right, "A3", "D3"},
		{address.Down, "D3", "D3"},
		{address.Up, "A1", "A1"},
		{address.Left, "A2", "A2"},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String()+"_"+tt.start, func(t *testing.T) {
			got, err := ScanToEnd(wb, "Sheet1", tt.dir, a(tt.start))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestScanToEndFromEmptyCell(t *testing.T) {
	wb := sampleWorkbook(t)

	for _, dir := range []address.Direction{address.Left, address.Right, address.Up, address.Down} {
		got, err := ScanToEnd(wb, "Sheet1", dir, a("E7"))
		require.NoError(t, err)
		assert.Equal(t, "E7", got.String(), dir.String())
	}

	// D1 is empty although D3 below it is not.
	got, err := ScanToEnd(wb, "Sheet1", address.Down, a("D1"))
	require.NoError(t, err)
	assert.Equal(t, "D1", got.String())
}

func TestScanToEndStopsAtGap(t *testing.T) {
	sheet := grid.NewSheet("gaps")
	WriteRange(sheet, address.A1, [][]string{
		{"a", "b", "", "d"},
		{"1"},
		{},
		{"4"},
	}, nil)
	sheet.Remove(a("C1"))

	assert.Equal(t, "B1", ScanSheetToEnd(sheet, address.Right, address.A1).String())
	assert.Equal(t, "A2", ScanSheetToEnd(sheet, address.Down, address.A1).String())
	assert.Equal(t, "D1", ScanSheetToEnd(sheet, address.Left, a("D1")).String())
	assert.Equal(t, "A4", ScanSheetToEnd(sheet, address.Up, a("A4")).String())
}

func TestScanToEndIgnoresCellsEmptiedByCut(t *testing.T) {
	wb := sampleWorkbook(t)
	_, err := CutRange(wb, "Sheet1", a("A2"), a("A2"))
	require.NoError(t, err)

	got, err := ScanToEnd(wb, "Sheet1", address.Down, address.A1)
	require.NoError(t, err)
	assert.Equal(t, "A1", got.String())
}

func TestScan(t *testing.T) {
	start := a("A4")

	tests := []struct {
		dir   address.Direction
		count int
		want  string
	}{
		{address.Down, 3, "A7"},
		{address.Up, 5, "A1"},
		{address.Up, 3, "A1"},
		{address.Up, 2, "A2"},
		{address.Right, 3, "D4"},
		{address.Left, 3, "A4"},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Scan(tt.dir, start, tt.count).String())
		})
	}

	for _, dir := range []address.Direction{address.Left, address.Right, address.Up, address.Down} {
		assert.Equal(t, start, Scan(dir, start, 0), dir.String())
		assert.Equal(t, a("C5"), Scan(dir, a("C5"), 0), dir.String())
	}
	assert.Equal(t, "A5", Scan(address.Left, a("C5"), 2).String())
}
