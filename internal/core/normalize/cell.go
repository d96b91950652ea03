// Package normalize contains the pure value normalizers used by the cleaning
// pipeline. Each normalizer takes one raw cell and returns a canonical typed
// value; unparseable input degrades to a missing/default value, never an error.
package normalize

import "time"

// Kind discriminates the variants a raw cell can hold.
type Kind int

const (
	KindMissing Kind = iota
	KindText
	KindNumber
	KindDate
)

// Cell is a tagged-variant value for one spreadsheet cell. Source cells
// arrive as text, numbers or empty markers; representing them explicitly
// avoids silent coercion between the variants.
type Cell struct {
	Kind   Kind
	Text   string
	Number float64
	Date   time.Time
}

// Missing returns the missing-value cell.
func Missing() Cell {
	return Cell{Kind: KindMissing}
}

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{Kind: KindText, Text: s}
}

// Number returns a numeric cell.
func Number(f float64) Cell {
	return Cell{Kind: KindNumber, Number: f}
}

// Date returns a date cell.
func Date(t time.Time) Cell {
	return Cell{Kind: KindDate, Date: t}
}

// FromRaw converts a raw CSV field into a cell. Blank fields and the
// pandas-style "nan" marker become missing.
func FromRaw(s string) Cell {
	trimmed := trimSpace(s)
	if trimmed == "" || isNaNToken(trimmed) {
		return Missing()
	}
	return Text(s)
}

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool {
	return c.Kind == KindMissing
}
