package engine

import (
	"math"
	"reflect"
	"testing"

	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/models"
)

// testConfig uses column C for weights, so quantities live in column B.
var testConfig = models.ProcessConfig{
	ProcessType:  models.SeaRailNoImage,
	WeightColumn: 3,
	BoxColumn:    4,
}

func newTestSheet(maxRow, maxCol int) *models.Sheet {
	return models.NewSheet("Sheet1", maxRow, maxCol)
}

func setNum(s *models.Sheet, row, col int, v float64) {
	s.Cell(row, col).SetNumber(v)
}

func setText(s *models.Sheet, row, col int, v string) {
	c := s.Cell(row, col)
	c.Kind = models.CellText
	c.Text = v
}

func column(s *models.Sheet, col, from, to int) []float64 {
	var out []float64
	for row := from; row <= to; row++ {
		v, _ := s.Value(row, col).Float()
		out = append(out, v)
	}
	return out
}

func hasWarning(warnings []models.Warning, kind models.WarningKind) bool {
	for _, w := range warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

func TestRedistributeWeightExample(t *testing.T) {
	sheet := newTestSheet(8, 4)
	setNum(sheet, 5, 3, 90)
	setNum(sheet, 5, 2, 1)
	setNum(sheet, 6, 2, 2)
	setNum(sheet, 7, 2, 3)

	plan := models.MergePlan{Weight: []models.MergedRange{{StartRow: 5, EndRow: 7, Column: 3}}}
	out, warnings := Redistribute(sheet, plan, testConfig, Options{})

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	expected := []float64{15, 30, 45}
	if got := column(out, 3, 5, 7); !reflect.DeepEqual(got, expected) {
		t.Errorf("weights = %v, expected %v", got, expected)
	}
	for row := 5; row <= 7; row++ {
		if !out.Value(row, 3).Weight {
			t.Errorf("row %d weight cell not marked", row)
		}
	}

	// input untouched
	if v, ok := sheet.Value(6, 3).Float(); ok || v != 0 {
		t.Errorf("input sheet was modified: C6 = %+v", sheet.Value(6, 3))
	}
}

func TestRedistributeWeightConservation(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		quantities []float64
	}{
		{"thirds", 100, []float64{1, 1, 1}},
		{"uneven", 17.35, []float64{3, 7, 11, 2}},
		{"fractional quantities", 2.5, []float64{0.3, 0.3, 0.4}},
		{"single heavy row", 1234.56, []float64{999, 1, 0, 0, 0}},
		{"many rows", 1000, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}},
	}

	for _, tt := range tests {
		n := len(tt.quantities)
		sheet := newTestSheet(n+1, 4)
		setNum(sheet, 2, 3, tt.total)
		for i, q := range tt.quantities {
			setNum(sheet, 2+i, 2, q)
		}
		plan := models.MergePlan{Weight: []models.MergedRange{{StartRow: 2, EndRow: 1 + n, Column: 3}}}

		out, _ := Redistribute(sheet, plan, testConfig, Options{})

		sum := 0.0
		for _, w := range column(out, 3, 2, 1+n) {
			sum += w
			if w != Round2(w) {
				t.Errorf("%s: weight %v not rounded to 2 decimals", tt.name, w)
			}
		}
		if diff := math.Abs(sum - tt.total); diff > 0.01*float64(n)+1e-9 {
			t.Errorf("%s: sum %v differs from total %v by %v", tt.name, sum, tt.total, diff)
		}
	}
}

func TestRedistributeZeroQuantity(t *testing.T) {
	sheet := newTestSheet(4, 4)
	setNum(sheet, 2, 3, 50)
	setNum(sheet, 2, 2, 0)
	setNum(sheet, 3, 2, 0)
	setNum(sheet, 4, 2, 0)

	plan := models.MergePlan{Weight: []models.MergedRange{{StartRow: 2, EndRow: 4, Column: 3}}}
	out, warnings := Redistribute(sheet, plan, testConfig, Options{})

	if !hasWarning(warnings, models.DivisionByZero) {
		t.Errorf("expected DivisionByZero warning, got %v", warnings)
	}
	for row, w := range column(out, 3, 2, 4) {
		if w != 0 || math.IsInf(w, 0) || math.IsNaN(w) {
			t.Errorf("row %d weight = %v, expected 0", row+2, w)
		}
	}
}

func TestRedistributeNonNumeric(t *testing.T) {
	sheet := newTestSheet(4, 4)
	setNum(sheet, 2, 3, 60)
	setNum(sheet, 2, 2, 1)
	setText(sheet, 3, 2, "n/a")
	setText(sheet, 4, 2, " 2 ")

	plan := models.MergePlan{Weight: []models.MergedRange{{StartRow: 2, EndRow: 4, Column: 3}}}
	out, warnings := Redistribute(sheet, plan, testConfig, Options{})

	count := 0
	for _, w := range warnings {
		if w.Kind == models.NonNumericCell {
			count++
			if w.Row != 3 || w.Col != 2 {
				t.Errorf("warning at (%d,%d), expected (3,2)", w.Row, w.Col)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected 1 NonNumericCell warning, got %v", warnings)
	}
	expected := []float64{20, 0, 40}
	if got := column(out, 3, 2, 4); !reflect.DeepEqual(got, expected) {
		t.Errorf("weights = %v, expected %v", got, expected)
	}
}

func TestRedistributeNonNumericTotal(t *testing.T) {
	sheet := newTestSheet(3, 4)
	setText(sheet, 2, 3, "heavy")
	setNum(sheet, 2, 2, 1)
	setNum(sheet, 3, 2, 1)

	plan := models.MergePlan{Weight: []models.MergedRange{{StartRow: 2, EndRow: 3, Column: 3}}}
	out, warnings := Redistribute(sheet, plan, testConfig, Options{})

	if !hasWarning(warnings, models.NonNumericCell) {
		t.Errorf("expected NonNumericCell warning, got %v", warnings)
	}
	if got := column(out, 3, 2, 3); !reflect.DeepEqual(got, []float64{0, 0}) {
		t.Errorf("weights = %v, expected zeros", got)
	}
}

func TestRedistributeBox(t *testing.T) {
	sheet := newTestSheet(12, 4)
	setNum(sheet, 10, 4, 6)
	styled := 7
	sheet.Cell(10, 4).StyleID = styled

	plan := models.MergePlan{Box: []models.MergedRange{{StartRow: 10, EndRow: 12, Column: 4}}}
	out, warnings := Redistribute(sheet, plan, testConfig, Options{})

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	expected := []float64{6, 0, 0}
	if got := column(out, 4, 10, 12); !reflect.DeepEqual(got, expected) {
		t.Errorf("boxes = %v, expected %v", got, expected)
	}
	for row := 11; row <= 12; row++ {
		c := out.Value(row, 4)
		if c.Kind != models.CellNumber {
			t.Errorf("row %d box kind = %v, expected number", row, c.Kind)
		}
		if c.StyleID != styled {
			t.Errorf("row %d box style = %d, expected anchor style %d", row, c.StyleID, styled)
		}
	}
}

func TestRedistributeBoxKeepsTextAnchor(t *testing.T) {
	sheet := newTestSheet(3, 4)
	setText(sheet, 2, 4, "2 ctns")

	plan := models.MergePlan{Box: []models.MergedRange{{StartRow: 2, EndRow: 3, Column: 4}}}
	out, _ := Redistribute(sheet, plan, testConfig, Options{})

	if c := out.Value(2, 4); c.Kind != models.CellText || c.Text != "2 ctns" {
		t.Errorf("anchor = %+v, expected text kept", c)
	}
	if v, ok := out.Value(3, 4).Float(); !ok || v != 0 {
		t.Errorf("second row = %+v, expected 0", out.Value(3, 4))
	}
}

func TestRedistributeUnmergedIsIdentity(t *testing.T) {
	sheet := newTestSheet(3, 4)
	setText(sheet, 1, 1, "SKU")
	setNum(sheet, 2, 2, 4)
	setNum(sheet, 2, 3, 12.5)
	setNum(sheet, 3, 4, 1)
	sheet.Cell(2, 3).StyleID = 3

	out, warnings := Redistribute(sheet, models.MergePlan{}, testConfig, Options{FillMerged: true})

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if !reflect.DeepEqual(out, sheet) {
		t.Errorf("unmerged sheet changed:\n got %+v\nwant %+v", out.Rows, sheet.Rows)
	}
}

func TestRedistributeUnsupported(t *testing.T) {
	sheet := newTestSheet(4, 4)
	setNum(sheet, 2, 3, 80)
	setNum(sheet, 2, 2, 1)
	setNum(sheet, 3, 2, 1)

	region := models.MergeRegion{Ref: "C2:D3", StartRow: 2, StartCol: 3, EndRow: 3, EndCol: 4}
	plan := models.MergePlan{Unsupported: []models.MergeRegion{region}}
	out, warnings := Redistribute(sheet, plan, testConfig, Options{})

	if !hasWarning(warnings, models.UnsupportedMergeShape) {
		t.Errorf("expected UnsupportedMergeShape warning, got %v", warnings)
	}
	if !reflect.DeepEqual(out.Rows, sheet.Rows) {
		t.Error("rows under an unsupported merge must be left as-is")
	}
}

func TestRedistributeFillMerged(t *testing.T) {
	sheet := newTestSheet(4, 4)
	setText(sheet, 2, 1, "PO-7")
	sheet.Cell(2, 1).StyleID = 5
	region := models.MergeRegion{Ref: "A2:A4", StartRow: 2, StartCol: 1, EndRow: 4, EndCol: 1}
	plan := models.MergePlan{Other: []models.MergeRegion{region}}

	kept, _ := Redistribute(sheet, plan, testConfig, Options{})
	if !kept.Value(3, 1).IsEmpty() {
		t.Error("merge outside processed columns filled without FillMerged")
	}

	filled, _ := Redistribute(sheet, plan, testConfig, Options{FillMerged: true})
	for row := 2; row <= 4; row++ {
		c := filled.Value(row, 1)
		if c.Text != "PO-7" || c.StyleID != 5 {
			t.Errorf("row %d = %+v, expected PO-7 with style 5", row, c)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{15, 15},
		{7.5, 7.5},
		{0.125, 0.13},
		{-0.125, -0.13},
		{33.333333, 33.33},
	}

	for _, tt := range tests {
		if got := Round2(tt.input); got != tt.expected {
			t.Errorf("Round2(%v) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}
