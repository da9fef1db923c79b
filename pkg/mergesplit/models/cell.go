// Package models defines data structures for merge-cell redistribution.
package models

// CellKind classifies the raw value held by a cell.
type CellKind int

const (
	// CellEmpty is a cell with no value.
	CellEmpty CellKind = iota
	// CellNumber is a cell whose raw value parses as a float.
	CellNumber
	// CellText is a cell holding non-numeric text.
	CellText
	// CellBool is a boolean cell.
	CellBool
)

func (k CellKind) String() string {
	switch k {
	case CellNumber:
		return "number"
	case CellText:
		return "text"
	case CellBool:
		return "bool"
	default:
		return "empty"
	}
}

// Cell is a single physical cell of a sheet.
type Cell struct {
	// Row is the row index (1-based).
	Row int `json:"r"`
	// Col is the column index (1-based).
	Col int `json:"c"`
	// Kind is the value classification.
	Kind CellKind `json:"kind"`
	// Number is the numeric value when Kind is CellNumber (or 0/1 for CellBool).
	Number float64 `json:"number,omitempty"`
	// Text is the raw text as stored in the workbook.
	Text string `json:"text,omitempty"`
	// Formula is the cell formula without the leading '='.
	Formula string `json:"formula,omitempty"`
	// StyleID is the workbook style index of the cell (0 is the default style).
	StyleID int `json:"style_id"`
	// Weight marks a cell rewritten by weight redistribution.
	Weight bool `json:"weight,omitempty"`
}

// IsEmpty reports whether the cell carries neither a value nor a formula.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty && c.Formula == ""
}

// Float returns the numeric value and whether the cell is numeric.
func (c Cell) Float() (float64, bool) {
	if c.Kind == CellNumber {
		return c.Number, true
	}
	return 0, false
}

// SetNumber replaces the value with a number, dropping any formula.
func (c *Cell) SetNumber(v float64) {
	c.Kind = CellNumber
	c.Number = v
	c.Text = ""
	c.Formula = ""
}

// CopyValue copies value and formula from src, keeping coordinates and style.
func (c *Cell) CopyValue(src Cell) {
	c.Kind = src.Kind
	c.Number = src.Number
	c.Text = src.Text
	c.Formula = src.Formula
}

// Clear drops value and formula, keeping coordinates and style.
func (c *Cell) Clear() {
	c.Kind = CellEmpty
	c.Number = 0
	c.Text = ""
	c.Formula = ""
}
