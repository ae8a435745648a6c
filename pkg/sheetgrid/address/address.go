// Package address converts between textual cell references ("C3") and
// numeric grid coordinates.
package address

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAddress indicates an empty column name or a reference that is not
// letters followed by digits.
var ErrInvalidAddress = errors.New("invalid cell address")

// Address identifies one grid position.
type Address struct {
	// Column is the 0-based column index (A=0).
	Column int
	// Row is the 1-based row index.
	Row int
}

// A1 is the top-left cell.
var A1 = Address{Column: 0, Row: 1}

// New returns the address for a 0-based column and 1-based row.
func New(column, row int) Address {
	return Address{Column: column, Row: row}
}

// Valid reports whether the column is non-negative and the row is at least 1.
func (a Address) Valid() bool {
	return a.Column >= 0 && a.Row >= 1
}

// String formats the address as column letters followed by the row number.
func (a Address) String() string {
	return ColumnNumberToName(a.Column) + strconv.Itoa(a.Row)
}

// ColumnNameToNumber converts a column name into a 0-based column number
// (A=0, Z=25, AA=26, XFD=16383). Lowercase letters are accepted.
func ColumnNameToNumber(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty column name", ErrInvalidAddress)
	}
	sum := 0
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isLower(c) {
			c -= 'a' - 'A'
		}
		if !isUpper(c) {
			return 0, fmt.Errorf("%w: column name %q", ErrInvalidAddress, name)
		}
		if sum > (math.MaxInt-26)/26 {
			return 0, fmt.Errorf("%w: column name %q overflows", ErrInvalidAddress, name)
		}
		sum = sum*26 + int(c-'A'+1)
	}
	return sum - 1, nil
}

// ColumnNumberToName converts a 0-based column number into its column name.
// Negative numbers yield "".
func ColumnNumberToName(n int) string {
	if n < 0 {
		return ""
	}
	var buf [16]byte
	i := len(buf)
	dividend := n + 1
	for dividend > 0 {
		modulo := (dividend - 1) % 26
		i--
		buf[i] = byte('A' + modulo)
		dividend = (dividend - modulo) / 26
	}
	return string(buf[i:])
}

// Parse parses a reference of the form letters-then-digits, for example "C3"
// or "xfd1048576". No other characters are permitted.
func Parse(text string) (Address, error) {
	split := 0
	for split < len(text) && isLetter(text[split]) {
		split++
	}
	if split == 0 || split == len(text) {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, text)
	}
	for i := split; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, text)
		}
	}
	col, err := ColumnNameToNumber(text[:split])
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, text)
	}
	row, err := strconv.Atoi(text[split:])
	if err != nil || row < 1 {
		return Address{}, fmt.Errorf("%w: %q has no valid row", ErrInvalidAddress, text)
	}
	return Address{Column: col, Row: row}, nil
}

// MustParse is like Parse but panics if the reference is invalid.
func MustParse(text string) Address {
	a, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return a
}

// RowsBetween returns the number of rows from start to end.
func RowsBetween(start, end Address) int {
	return end.Row - start.Row
}

// ColsBetween returns the number of columns from start to end.
func ColsBetween(start, end Address) int {
	return end.Column - start.Column
}

// Direction is one of the four grid directions.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

var directionNames = [...]string{"left", "right", "up", "down"}

func (d Direction) String() string {
	if d < Left || d > Down {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Horizontal reports whether the direction moves along a row.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// ParseDirection parses "left", "right", "up" or "down", ignoring case.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("invalid direction: %q (must be left, right, up, or down)", s)
}

func isLetter(c byte) bool {
	return isUpper(c) || isLower(c)
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
