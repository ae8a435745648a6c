// Package grid models a worksheet as a sparse, ordered two-dimensional
// structure of rows and cells.
//
// Rows are unique by index and kept in ascending order; cells within a row
// are unique by column and kept in ascending order. Both invariants hold
// after every insert, so walking Rows and Cells always yields positional
// order.
//
// A Sheet is not safe for concurrent use. Callers that share one must
// serialize access themselves.
package grid

import (
	"github.com/google/btree"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/address"
)

const rowTreeDegree = 16

// Sheet is one worksheet. It exclusively owns its rows and, through them,
// its cells.
type Sheet struct {
	name     string
	rows     *btree.BTreeG[*Row]
	strings  *SharedStrings
	formulas *SharedFormulas
}

// NewSheet returns an empty sheet that is not attached to a workbook.
func NewSheet(name string) *Sheet {
	return &Sheet{
		name: name,
		rows: btree.NewG(rowTreeDegree, func(a, b *Row) bool {
			return a.index < b.index
		}),
		formulas: NewSharedFormulas(),
	}
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// SharedStrings returns the attached shared-string table. It is nil for a
// sheet that was never added to a workbook and had no table attached.
func (s *Sheet) SharedStrings() *SharedStrings { return s.strings }

// AttachSharedStrings sets the shared-string table used to resolve
// SharedString values.
func (s *Sheet) AttachSharedStrings(t *SharedStrings) { s.strings = t }

// SharedFormulas returns the sheet's shared-formula table.
func (s *Sheet) SharedFormulas() *SharedFormulas { return s.formulas }

// InsertOrGet returns the cell at addr, creating its row and the cell itself
// at their sorted positions when absent. An existing cell is returned
// unchanged.
func (s *Sheet) InsertOrGet(addr address.Address) *Cell {
	row, ok := s.Row(addr.Row)
	if !ok {
		row = newRow(addr.Row)
		s.rows.ReplaceOrInsert(row)
	}
	return row.insertOrGet(addr.Column)
}

// Set stores v at addr, creating the cell when absent.
func (s *Sheet) Set(addr address.Address, v Value) *Cell {
	c := s.InsertOrGet(addr)
	c.Value = v
	return c
}

// Get returns the cell at addr without creating anything.
func (s *Sheet) Get(addr address.Address) (*Cell, bool) {
	row, ok := s.Row(addr.Row)
	if !ok {
		return nil, false
	}
	return row.Cell(addr.Column)
}

// Remove detaches the cell at addr. The row stays in place even when it
// becomes empty. It reports whether a cell was removed.
func (s *Sheet) Remove(addr address.Address) bool {
	row, ok := s.Row(addr.Row)
	if !ok {
		return false
	}
	return row.remove(addr.Column)
}

// Row returns the row at index, if present.
func (s *Sheet) Row(index int) (*Row, bool) {
	return s.rows.Get(&Row{index: index})
}

// Rows returns all rows in ascending order, including empty ones.
func (s *Sheet) Rows() []*Row {
	rows := make([]*Row, 0, s.rows.Len())
	s.rows.Ascend(func(r *Row) bool {
		rows = append(rows, r)
		return true
	})
	return rows
}

// RowCount returns the number of rows, including empty ones.
func (s *Sheet) RowCount() int { return s.rows.Len() }

// Len returns the number of cells in the sheet.
func (s *Sheet) Len() int {
	n := 0
	s.rows.Ascend(func(r *Row) bool {
		n += len(r.cells)
		return true
	})
	return n
}

// Bounds returns the smallest rectangle containing every cell. ok is false
// when the sheet holds no cells.
func (s *Sheet) Bounds() (topLeft, bottomRight address.Address, ok bool) {
	s.rows.Ascend(func(r *Row) bool {
		if len(r.cells) == 0 {
			return true
		}
		first, last := r.cells[0].column, r.cells[len(r.cells)-1].column
		if !ok {
			topLeft = address.New(first, r.index)
			bottomRight = address.New(last, r.index)
			ok = true
			return true
		}
		topLeft.Column = min(topLeft.Column, first)
		bottomRight.Column = max(bottomRight.Column, last)
		bottomRight.Row = r.index
		return true
	})
	return topLeft, bottomRight, ok
}

// Each calls fn for every cell in row-major order until fn returns false.
func (s *Sheet) Each(fn func(addr address.Address, c *Cell) bool) {
	s.rows.Ascend(func(r *Row) bool {
		for _, c := range r.cells {
			if !fn(address.New(c.column, r.index), c) {
				return false
			}
		}
		return true
	})
}
