// Package value classifies raw cell text into typed values on write and
// decodes stored cells back into display text on read.
package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/metakeule/fmtdate"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/grid"
)

// ErrCorruptFormulaReference indicates a shared formula whose origin is not in
// the sheet's shared-formula table.
var ErrCorruptFormulaReference = errors.New("corrupt shared formula reference")

// ErrCorruptStringReference indicates a shared-string index that does not
// parse or is out of range.
var ErrCorruptStringReference = errors.New("corrupt shared string reference")

// DefaultDateLayout renders dates as "January 1, 2012".
const DefaultDateLayout = "MMMM D, YYYY"

// DefaultParseLayouts are the fmtdate layouts tried, in order, when deciding
// whether text is a date. Time-only text is dated today.
var DefaultParseLayouts = []string{
	"M/D/YYYY",
	"M-D-YYYY",
	"M/D/YYYY hh:mm",
	"M/D/YYYY hh:mm:ss",
	"M-D-YYYY hh:mm:ss",
	"M/D/YY",
	"M-D-YY",
	"M/D/YY hh:mm",
	"YYYY-MM-DD",
	"YYYY/M/D",
	"YYYY-MM-DD hh:mm:ss",
	"YYYY-MM-DDThh:mm:ss",
	"MMMM D, YYYY",
	"MMM D, YYYY",
	"D MMMM YYYY",
	"D MMM YYYY",
	"DDDD, MMMM D, YYYY",
	"hh:mm",
	"hh:mm:ss",
}

// Codec is a classify/decode pair sharing one set of date layouts.
type Codec struct {
	dateLayout   string
	parseLayouts []string
}

// Option configures a Codec.
type Option func(c *Codec)

// WithDateLayout sets the fmtdate layout used to render Date values.
func WithDateLayout(layout string) Option {
	return func(c *Codec) {
		if layout != "" {
			c.dateLayout = layout
		}
	}
}

// WithParseLayouts replaces the fmtdate layouts tried when parsing dates.
func WithParseLayouts(layouts ...string) Option {
	return func(c *Codec) { c.parseLayouts = append([]string(nil), layouts...) }
}

// NewCodec returns a Codec with the default layouts adjusted by opts.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{
		dateLayout:   DefaultDateLayout,
		parseLayouts: DefaultParseLayouts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultCodec is used by the package-level functions.
var DefaultCodec = NewCodec()

// Classify returns the type tag for raw using DefaultCodec.
func Classify(raw string) grid.Kind { return DefaultCodec.Classify(raw) }

// New returns the typed value for raw using DefaultCodec.
func New(raw string) grid.Value { return DefaultCodec.New(raw) }

// Decode renders cell as display text using DefaultCodec.
func Decode(sheet *grid.Sheet, cell *grid.Cell) (string, error) {
	return DefaultCodec.Decode(sheet, cell)
}

// Classify tags raw by trying, in this order: number, boolean literal,
// date, and finally string. The order matters: "1" is a Number, never a
// Boolean.
func (c *Codec) Classify(raw string) grid.Kind {
	switch {
	case isNumber(raw):
		return grid.KindNumber
	case isBoolean(raw):
		return grid.KindBoolean
	case c.isDate(raw):
		return grid.KindDate
	default:
		return grid.KindString
	}
}

// New classifies raw and wraps it, unchanged, in the matching value type.
func (c *Codec) New(raw string) grid.Value {
	switch c.Classify(raw) {
	case grid.KindNumber:
		return grid.Number(raw)
	case grid.KindBoolean:
		return grid.Boolean(raw)
	case grid.KindDate:
		return grid.Date(raw)
	default:
		return grid.String(raw)
	}
}

// Decode renders cell as display text. Shared strings are resolved through
// the sheet's attached table and shared formulas through the sheet's
// shared-formula table. A shared formula decodes to its origin text
// verbatim; relative references are not shifted to the member cell.
func (c *Codec) Decode(sheet *grid.Sheet, cell *grid.Cell) (string, error) {
	if cell == nil || cell.Value == nil {
		return "", nil
	}
	switch v := cell.Value.(type) {
	case grid.Untyped:
		return string(v), nil
	case grid.Formula:
		if !v.Shared {
			return v.Text, nil
		}
		var formulas *grid.SharedFormulas
		if sheet != nil {
			formulas = sheet.SharedFormulas()
		}
		if formulas == nil {
			return "", fmt.Errorf("%w: shared index %d", ErrCorruptFormulaReference, v.SharedIndex)
		}
		origin, ok := formulas.Get(v.SharedIndex)
		if !ok {
			return "", fmt.Errorf("%w: shared index %d", ErrCorruptFormulaReference, v.SharedIndex)
		}
		return origin.Text, nil
	case grid.SharedString:
		var table *grid.SharedStrings
		if sheet != nil {
			table = sheet.SharedStrings()
		}
		if table == nil {
			return string(v), nil
		}
		i, err := strconv.Atoi(strings.TrimSpace(string(v)))
		if err != nil {
			return "", fmt.Errorf("%w: index %q", ErrCorruptStringReference, string(v))
		}
		s, ok := table.Get(i)
		if !ok {
			return "", fmt.Errorf("%w: index %d of %d", ErrCorruptStringReference, i, table.Len())
		}
		return s, nil
	case grid.Boolean:
		if string(v) == "0" {
			return "False", nil
		}
		return "True", nil
	case grid.Date:
		t, ok := c.ParseDate(string(v))
		if !ok {
			return string(v), nil
		}
		return fmtdate.Format(c.dateLayout, t), nil
	default:
		return v.Raw(), nil
	}
}

// ParseDate parses raw with the codec's layouts. An RFC 3339 timestamp, as
// written by xlsx "d" cells, is accepted as well.
func (c *Codec) ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range c.parseLayouts {
		if t, err := fmtdate.Parse(layout, raw); err == nil {
			if t.Year() == 0 {
				y, m, d := time.Now().Date()
				t = time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
			}
			return t, true
		}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatDate renders t with the codec's long layout.
func (c *Codec) FormatDate(t time.Time) string {
	return fmtdate.Format(c.dateLayout, t)
}

func (c *Codec) isDate(raw string) bool {
	_, ok := c.ParseDate(raw)
	return ok
}

// isNumber accepts integers first, then finite floats.
func isNumber(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	// ParseFloat also takes hex mantissas; spreadsheet numbers are decimal.
	if digits := strings.TrimLeft(s, "+-"); len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func isBoolean(raw string) bool {
	s := strings.TrimSpace(raw)
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
}
