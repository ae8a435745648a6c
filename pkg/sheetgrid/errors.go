package sheetgrid

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/address"
)

// ErrSheetNotFound indicates a sheet name that matches no sheet while strict
// lookup is enabled.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrNoSheets indicates a document without any sheet to fall back to.
var ErrNoSheets = errors.New("document has no sheets")

// RangeError represents an error while reading or writing a cell of a range.
type RangeError struct {
	Sheet string
	Op    string // "get", "cut", "extract"
	Addr  address.Address
	Err   error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("sheetgrid: %s %s!%s: %v", e.Op, e.Sheet, e.Addr, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}

// newRangeError creates a new RangeError.
func newRangeError(sheet, op string, addr address.Address, err error) *RangeError {
	return &RangeError{
		Sheet: sheet,
		Op:    op,
		Addr:  addr,
		Err:   err,
	}
}
