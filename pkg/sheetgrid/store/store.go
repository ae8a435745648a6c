// Package store loads grid workbooks from spreadsheet files and saves them
// back as xlsx.
//
// Reading supports xlsx through excelize plus a raw pass over the worksheet
// parts for formulas, and legacy xls through xlsReader. Writing always
// produces xlsx.
package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/grid"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/value"
)

// ErrUnsupportedFormat indicates a file extension or package layout the
// store cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

type config struct {
	logger logrus.FieldLogger
	codec  *value.Codec
}

// Option configures store functions.
type Option func(c *config)

// WithLogger sets the logger for progress messages.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCodec sets the codec used to parse dates and resolve strings on save.
func WithCodec(codec *value.Codec) Option {
	return func(c *config) {
		if codec != nil {
			c.codec = codec
		}
	}
}

func newConfig(opts ...Option) *config {
	c := &config{
		logger: logrus.StandardLogger(),
		codec:  value.DefaultCodec,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open loads the workbook at path, choosing the reader by file extension.
func Open(path string, opts ...Option) (*grid.Workbook, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return OpenXLSX(path, opts...)
	case ".xls":
		return OpenXLS(path, opts...)
	default:
		return nil, fmt.Errorf("store: %w: %s", ErrUnsupportedFormat, path)
	}
}

// Save writes wb to path, which must name an xlsx file.
func Save(wb *grid.Workbook, path string, opts ...Option) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return SaveXLSX(wb, path, opts...)
	default:
		return fmt.Errorf("store: %w: cannot write %s", ErrUnsupportedFormat, path)
	}
}

func countCells(wb *grid.Workbook) int {
	n := 0
	for _, s := range wb.Sheets() {
		n += s.Len()
	}
	return n
}
