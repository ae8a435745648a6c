package grid

import (
	"sort"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/address"
)

// SharedStrings is a workbook-level deduplication table. Cells reference
// entries by their 0-based position.
type SharedStrings struct {
	items []string
	index map[string]int
}

// NewSharedStrings creates an empty table.
func NewSharedStrings() *SharedStrings {
	return &SharedStrings{index: make(map[string]int)}
}

// Add returns the position of text, appending it when new.
func (t *SharedStrings) Add(text string) int {
	if i, ok := t.index[text]; ok {
		return i
	}
	i := len(t.items)
	t.items = append(t.items, text)
	t.index[text] = i
	return i
}

// Append adds text at the next position without deduplicating. Loaders use
// it to keep the positions of a persisted table.
func (t *SharedStrings) Append(text string) int {
	i := len(t.items)
	t.items = append(t.items, text)
	if _, ok := t.index[text]; !ok {
		t.index[text] = i
	}
	return i
}

// Get returns the entry at position i.
func (t *SharedStrings) Get(i int) (string, bool) {
	if i < 0 || i >= len(t.items) {
		return "", false
	}
	return t.items[i], true
}

// Index returns the position of text, if present.
func (t *SharedStrings) Index(text string) (int, bool) {
	i, ok := t.index[text]
	return i, ok
}

// Len returns the number of entries.
func (t *SharedStrings) Len() int { return len(t.items) }

// SharedFormula is the origin of a shared formula group.
type SharedFormula struct {
	// Index is the shared index (si) referenced by member cells.
	Index int
	// Origin is the master cell that carries the formula text.
	Origin address.Address
	// Ref is the range covered by the group, e.g. "C1:C10".
	Ref string
	// Text is the origin formula text.
	Text string
}

// SharedFormulas is a sheet-level table of shared formula origins keyed by
// shared index.
type SharedFormulas struct {
	items map[int]SharedFormula
}

// NewSharedFormulas creates an empty table.
func NewSharedFormulas() *SharedFormulas {
	return &SharedFormulas{items: make(map[int]SharedFormula)}
}

// Define records or replaces the origin of shared index si.
func (t *SharedFormulas) Define(si int, origin address.Address, ref, text string) {
	t.items[si] = SharedFormula{Index: si, Origin: origin, Ref: ref, Text: text}
}

// Get returns the origin of shared index si.
func (t *SharedFormulas) Get(si int) (SharedFormula, bool) {
	f, ok := t.items[si]
	return f, ok
}

// Len returns the number of defined shared formulas.
func (t *SharedFormulas) Len() int { return len(t.items) }

// All returns the shared formulas ordered by index.
func (t *SharedFormulas) All() []SharedFormula {
	all := make([]SharedFormula, 0, len(t.items))
	for _, f := range t.items {
		all = append(all, f)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Index < all[j].Index })
	return all
}
