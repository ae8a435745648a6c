package value

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/address"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/grid"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input    string
		expected grid.Kind
	}{
		{"123", grid.KindNumber},
		{"-100", grid.KindNumber},
		{"123.45", grid.KindNumber},
		{"1e3", grid.KindNumber},
		{" 42 ", grid.KindNumber},
		{"1", grid.KindNumber},
		{"0", grid.KindNumber},
		{"true", grid.KindBoolean},
		{"FALSE", grid.KindBoolean},
		{"True", grid.KindBoolean},
		{"1-1-2012", grid.KindDate},
		{"12/31/1999", grid.KindDate},
		{"2012-01-01", grid.KindDate},
		{"January 1, 2012", grid.KindDate},
		{"1/1/12", grid.KindDate},
		{"1-1-12", grid.KindDate},
		{"10:30", grid.KindDate},
		{"10:30:15", grid.KindDate},
		{"0x1p4", grid.KindString},
		{"-0X10", grid.KindString},
		{"hello", grid.KindString},
		{"a1", grid.KindString},
		{"", grid.KindString},
		{"NaN", grid.KindString},
		{"Inf", grid.KindString},
		{"yes", grid.KindString},
	}

	for _, tt := range tests {
		result := Classify(tt.input)
		if result != tt.expected {
			t.Errorf("Classify(%q) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}

func TestParseDateShortForms(t *testing.T) {
	d, ok := DefaultCodec.ParseDate("1/1/12")
	require.True(t, ok)
	assert.Equal(t, "January 1, 2012", DefaultCodec.FormatDate(d))

	now := time.Now()
	tm, ok := DefaultCodec.ParseDate("10:30")
	require.True(t, ok)
	assert.Equal(t, now.Year(), tm.Year())
	assert.Equal(t, 10, tm.Hour())
	assert.Equal(t, 30, tm.Minute())
}

func TestNewKeepsRawPayload(t *testing.T) {
	for _, raw := range []string{"1", "true", "1-1-2012", "text"} {
		v := New(raw)
		assert.Equal(t, raw, v.Raw())
		assert.Equal(t, Classify(raw), v.Kind())
	}
}

func newSheet() *grid.Sheet {
	wb := grid.NewWorkbook()
	return wb.AddSheet("Sheet1")
}

func decodeAt(t *testing.T, s *grid.Sheet, v grid.Value) string {
	t.Helper()
	c := s.Set(address.A1, v)
	got, err := Decode(s, c)
	require.NoError(t, err)
	return got
}

func TestDecodeCanonicalizes(t *testing.T) {
	s := newSheet()
	assert.Equal(t, "True", decodeAt(t, s, New("true")))
	assert.Equal(t, "True", decodeAt(t, s, grid.Boolean("1")))
	assert.Equal(t, "False", decodeAt(t, s, grid.Boolean("0")))
	assert.Equal(t, "January 1, 2012", decodeAt(t, s, New("1-1-2012")))
	assert.Equal(t, "3.50", decodeAt(t, s, New("3.50")))
	assert.Equal(t, "b1", decodeAt(t, s, New("b1")))
	assert.Equal(t, "raw", decodeAt(t, s, grid.Untyped("raw")))
	assert.Equal(t, "not a date", decodeAt(t, s, grid.Date("not a date")))
}

func TestDecodeEmptyCell(t *testing.T) {
	s := newSheet()
	got, err := Decode(s, s.InsertOrGet(address.A1))
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = Decode(s, nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestDecodeSharedString(t *testing.T) {
	wb := grid.NewWorkbook()
	s := wb.AddSheet("Sheet1")
	wb.SharedStrings().Add("zero")
	wb.SharedStrings().Add("one")

	assert.Equal(t, "one", decodeAt(t, s, grid.SharedString("1")))

	c := s.Set(address.A1, grid.SharedString("7"))
	_, err := Decode(s, c)
	assert.ErrorIs(t, err, ErrCorruptStringReference)

	c = s.Set(address.A1, grid.SharedString("x"))
	_, err = Decode(s, c)
	assert.ErrorIs(t, err, ErrCorruptStringReference)
}

func TestDecodeSharedStringWithoutTable(t *testing.T) {
	s := grid.NewSheet("Detached")
	c := s.Set(address.A1, grid.SharedString("3"))
	got, err := Decode(s, c)
	require.NoError(t, err)
	assert.Equal(t, "3", got)
}

func TestDecodeFormula(t *testing.T) {
	s := newSheet()
	s.SharedFormulas().Define(0, address.MustParse("C1"), "C1:C3", "A1+B1")

	assert.Equal(t, "SUM(A1:A3)", decodeAt(t, s, grid.Formula{Text: "SUM(A1:A3)", Cached: "6"}))

	// Members return the origin text, not a shifted copy.
	member := s.Set(address.MustParse("C3"), grid.Formula{Shared: true, SharedIndex: 0, Cached: "9"})
	got, err := Decode(s, member)
	require.NoError(t, err)
	assert.Equal(t, "A1+B1", got)

	missing := s.Set(address.MustParse("C4"), grid.Formula{Shared: true, SharedIndex: 5})
	_, err = Decode(s, missing)
	assert.ErrorIs(t, err, ErrCorruptFormulaReference)
}

func TestCodecOptions(t *testing.T) {
	c := NewCodec(WithDateLayout("YYYY/MM/DD"), WithParseLayouts("DD.MM.YYYY"))
	assert.Equal(t, grid.KindDate, c.Classify("31.12.2020"))
	assert.Equal(t, grid.KindString, c.Classify("1-1-2012"))

	s := newSheet()
	cell := s.Set(address.A1, c.New("31.12.2020"))
	got, err := c.Decode(s, cell)
	require.NoError(t, err)
	assert.Equal(t, "2020/12/31", got)

	assert.Equal(t, "January 2, 2006", DefaultCodec.FormatDate(time.Date(2006, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, DefaultDateLayout, NewCodec(WithDateLayout("")).dateLayout)
}

func TestParseDateRFC3339(t *testing.T) {
	tm, ok := DefaultCodec.ParseDate("2012-01-01T00:00:00Z")
	require.True(t, ok)
	assert.Equal(t, 2012, tm.Year())
	_, ok = DefaultCodec.ParseDate("   ")
	assert.False(t, ok)
}
