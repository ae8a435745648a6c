package grid

import (
	"fmt"
	"slices"
)

// Workbook holds sheets in document order and the shared-string table they
// resolve SharedString values against.
type Workbook struct {
	sheets  []*Sheet
	strings *SharedStrings
	added   int
}

// NewWorkbook returns an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{strings: NewSharedStrings()}
}

// AddSheet appends a new sheet. An empty name becomes "Sheet<n>" where n
// counts the sheets added so far. Adding a name that already exists returns
// the existing sheet.
func (w *Workbook) AddSheet(name string) *Sheet {
	if name != "" {
		if s, ok := w.FindSheet(name); ok {
			return s
		}
	}
	w.added++
	if name == "" {
		name = fmt.Sprintf("Sheet%d", w.added)
		for w.contains(name) {
			w.added++
			name = fmt.Sprintf("Sheet%d", w.added)
		}
	}
	s := NewSheet(name)
	s.AttachSharedStrings(w.strings)
	w.sheets = append(w.sheets, s)
	return s
}

// RemoveSheet removes the named sheet and reports whether it existed.
func (w *Workbook) RemoveSheet(name string) bool {
	i := slices.IndexFunc(w.sheets, func(s *Sheet) bool { return s.name == name })
	if i < 0 {
		return false
	}
	w.sheets = slices.Delete(w.sheets, i, i+1)
	return true
}

// Sheets returns the sheets in document order.
func (w *Workbook) Sheets() []*Sheet { return w.sheets }

// FindSheet looks up a sheet by exact name.
func (w *Workbook) FindSheet(name string) (*Sheet, bool) {
	for _, s := range w.sheets {
		if s.name == name {
			return s, true
		}
	}
	return nil, false
}

// FirstSheet returns the first sheet in document order.
func (w *Workbook) FirstSheet() (*Sheet, bool) {
	if len(w.sheets) == 0 {
		return nil, false
	}
	return w.sheets[0], true
}

// SharedStrings returns the workbook's shared-string table.
func (w *Workbook) SharedStrings() *SharedStrings { return w.strings }

func (w *Workbook) contains(name string) bool {
	_, ok := w.FindSheet(name)
	return ok
}
