package grid

import "fmt"

// Kind is the type tag carried by a cell value.
type Kind uint8

const (
	// KindNone marks a cell without a type tag.
	KindNone Kind = iota
	KindNumber
	KindString
	KindBoolean
	KindDate
	KindSharedString
	KindFormula
)

var kindNames = map[Kind]string{
	KindNone:         "none",
	KindNumber:       "number",
	KindString:       "string",
	KindBoolean:      "boolean",
	KindDate:         "date",
	KindSharedString: "shared_string",
	KindFormula:      "formula",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is the payload of a cell. The concrete types are Number, String,
// Boolean, Date, SharedString and Formula. A nil Value means the cell has no
// type tag and only a raw payload, see Untyped.
type Value interface {
	Kind() Kind
	// Raw returns the textual payload as stored.
	Raw() string
}

// Untyped is a payload without a type tag.
type Untyped string

func (Untyped) Kind() Kind { return KindNone }
func (v Untyped) Raw() string { return string(v) }

// Number is a numeric payload kept in its textual form.
type Number string

func (Number) Kind() Kind { return KindNumber }
func (v Number) Raw() string { return string(v) }

// String is an inline text payload.
type String string

func (String) Kind() Kind { return KindString }
func (v String) Raw() string { return string(v) }

// Boolean is a boolean payload. "0" means false, anything else true.
type Boolean string

func (Boolean) Kind() Kind { return KindBoolean }
func (v Boolean) Raw() string { return string(v) }

// Date is a date/time payload kept in its textual form.
type Date string

func (Date) Kind() Kind { return KindDate }
func (v Date) Raw() string { return string(v) }

// SharedString references an entry of the workbook shared-string table. The
// raw payload is the decimal index.
type SharedString string

func (SharedString) Kind() Kind { return KindSharedString }
func (v SharedString) Raw() string { return string(v) }

// Formula is either an inline formula or a reference into the sheet's
// shared-formula table.
type Formula struct {
	// Text is the formula text. It is empty for cells that only reference a
	// shared formula.
	Text string
	// Cached is the last computed value stored alongside the formula.
	Cached string
	// Shared marks a shared formula reference.
	Shared bool
	// SharedIndex is the shared formula index (si) when Shared is set.
	SharedIndex int
	// Ref is the range covered by a shared formula master cell.
	Ref string
}

func (Formula) Kind() Kind { return KindFormula }
func (f Formula) Raw() string { return f.Cached }

// KindOf returns the tag of v, treating nil as KindNone.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNone
	}
	return v.Kind()
}
