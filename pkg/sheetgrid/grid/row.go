package grid

import "slices"

// Cell is one occupied grid position. It belongs to exactly one Row.
type Cell struct {
	column int
	row    int
	// Value is the cell payload. Writers overwrite it in place.
	Value Value
}

// Column returns the 0-based column index.
func (c *Cell) Column() int { return c.column }

// RowIndex returns the 1-based row index of the owning row.
func (c *Cell) RowIndex() int { return c.row }

// Kind returns the cell's type tag.
func (c *Cell) Kind() Kind { return KindOf(c.Value) }

// Raw returns the raw payload, or "" when the cell holds no value.
func (c *Cell) Raw() string {
	if c.Value == nil {
		return ""
	}
	return c.Value.Raw()
}

// Row is an ordered run of cells, unique by column and sorted ascending.
// A Row may hold no cells.
type Row struct {
	index int
	cells []*Cell
}

func newRow(index int) *Row {
	return &Row{index: index}
}

// Index returns the 1-based row index.
func (r *Row) Index() int { return r.index }

// Len returns the number of cells in the row.
func (r *Row) Len() int { return len(r.cells) }

// Cells returns the cells in ascending column order. The slice must not be
// modified.
func (r *Row) Cells() []*Cell { return r.cells }

// Cell returns the cell at column, if present.
func (r *Row) Cell(column int) (*Cell, bool) {
	i, found := r.search(column)
	if !found {
		return nil, false
	}
	return r.cells[i], true
}

// insertOrGet returns the cell at column, creating it before the first cell
// with a greater column when absent. Insertion shifts the slice, so it is
// linear in row width.
func (r *Row) insertOrGet(column int) *Cell {
	i, found := r.search(column)
	if found {
		return r.cells[i]
	}
	c := &Cell{column: column, row: r.index}
	r.cells = slices.Insert(r.cells, i, c)
	return c
}

func (r *Row) remove(column int) bool {
	i, found := r.search(column)
	if !found {
		return false
	}
	r.cells[i].row = 0
	r.cells = slices.Delete(r.cells, i, i+1)
	return true
}

func (r *Row) search(column int) (int, bool) {
	return slices.BinarySearchFunc(r.cells, column, func(c *Cell, col int) int {
		return c.column - col
	})
}
