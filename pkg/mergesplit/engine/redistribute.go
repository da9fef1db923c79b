// Package engine dissolves merged weight and box ranges into per-row values.
package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/models"
	"github.com/xuri/excelize/v2"
)

// Options tunes redistribution.
type Options struct {
	// FillMerged dissolves merges outside the processed columns by copying the
	// anchor value into every covered cell.
	FillMerged bool
}

// Redistribute returns a copy of sheet with every weight and box range in plan
// expanded to one value per physical row. The input sheet is not modified.
//
// A weight range splits the anchor total across its rows in proportion to the
// quantity column and rounds each share to two decimals. A box range keeps the
// anchor count on its first row and zeroes the rest.
func Redistribute(sheet *models.Sheet, plan models.MergePlan, cfg models.ProcessConfig, opts Options) (*models.Sheet, []models.Warning) {
	out := sheet.Clone()
	var warnings []models.Warning

	for _, region := range plan.Unsupported {
		warnings = append(warnings, models.Warning{
			Kind: models.UnsupportedMergeShape,
			Row:  region.StartRow,
			Col:  region.StartCol,
			Message: fmt.Sprintf("merged region %s spans rows %d-%d, columns %d-%d; only single-column vertical merges are split, rows left as-is",
				region.Ref, region.StartRow, region.EndRow, region.StartCol, region.EndCol),
		})
	}

	for _, rng := range plan.Weight {
		warnings = append(warnings, splitWeight(sheet, out, rng, cfg.QuantityColumn())...)
	}
	for _, rng := range plan.Box {
		keepFirst(sheet, out, rng)
	}
	if opts.FillMerged {
		for _, region := range plan.Other {
			fillDown(sheet, out, region)
		}
	}

	return out, warnings
}

// splitWeight writes each row's share of the merged total into out.
func splitWeight(src, out *models.Sheet, rng models.MergedRange, qtyCol int) []models.Warning {
	var warnings []models.Warning

	anchor := src.Value(rng.StartRow, rng.Column)
	total, ok := numericValue(anchor)
	if !ok {
		warnings = append(warnings, nonNumeric(anchor, "merged weight"))
	}

	quantities := make([]float64, 0, rng.Len())
	totalQuantity := 0.0
	for row := rng.StartRow; row <= rng.EndRow; row++ {
		qtyCell := src.Value(row, qtyCol)
		q, ok := numericValue(qtyCell)
		if !ok {
			warnings = append(warnings, nonNumeric(qtyCell, "quantity"))
		}
		quantities = append(quantities, q)
		totalQuantity += q
	}

	if totalQuantity == 0 {
		warnings = append(warnings, models.Warning{
			Kind: models.DivisionByZero,
			Row:  rng.StartRow,
			Col:  rng.Column,
			Message: fmt.Sprintf("weight merge %s has zero total quantity; rows %d-%d set to 0",
				rangeName(rng), rng.StartRow, rng.EndRow),
		})
		for row := rng.StartRow; row <= rng.EndRow; row++ {
			setWeight(out, row, rng.Column, 0, anchor.StyleID)
		}
		return warnings
	}

	unitWeight := total / totalQuantity
	for i, row := 0, rng.StartRow; row <= rng.EndRow; i, row = i+1, row+1 {
		setWeight(out, row, rng.Column, Round2(unitWeight*quantities[i]), anchor.StyleID)
	}
	return warnings
}

// keepFirst leaves the anchor count in place and zeroes the other rows.
func keepFirst(src, out *models.Sheet, rng models.MergedRange) {
	anchorStyle := src.Value(rng.StartRow, rng.Column).StyleID
	for row := rng.StartRow + 1; row <= rng.EndRow; row++ {
		cell := out.Cell(row, rng.Column)
		if cell == nil {
			continue
		}
		cell.SetNumber(0)
		inheritStyle(cell, anchorStyle)
	}
}

// fillDown copies the anchor value of region into every covered cell.
func fillDown(src, out *models.Sheet, region models.MergeRegion) {
	anchor := src.Value(region.StartRow, region.StartCol)
	for row := region.StartRow; row <= region.EndRow; row++ {
		for col := region.StartCol; col <= region.EndCol; col++ {
			if row == region.StartRow && col == region.StartCol {
				continue
			}
			cell := out.Cell(row, col)
			if cell == nil {
				continue
			}
			cell.CopyValue(anchor)
			inheritStyle(cell, anchor.StyleID)
		}
	}
}

func setWeight(out *models.Sheet, row, col int, v float64, anchorStyle int) {
	cell := out.Cell(row, col)
	if cell == nil {
		return
	}
	cell.SetNumber(v)
	cell.Weight = true
	inheritStyle(cell, anchorStyle)
}

// inheritStyle gives unstyled cells under a merge the anchor's style.
func inheritStyle(cell *models.Cell, anchorStyle int) {
	if cell.StyleID == 0 {
		cell.StyleID = anchorStyle
	}
}

// Round2 rounds to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// numericValue reads a cell as a number. Text that parses as a number counts.
func numericValue(c models.Cell) (float64, bool) {
	if v, ok := c.Float(); ok {
		return v, true
	}
	if c.Kind == models.CellText {
		if v, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

func nonNumeric(c models.Cell, what string) models.Warning {
	name := cellName(c.Row, c.Col)
	msg := fmt.Sprintf("%s cell %s is empty; treated as 0", what, name)
	if c.Kind != models.CellEmpty {
		msg = fmt.Sprintf("%s cell %s holds %s %q; treated as 0", what, name, c.Kind, c.Text)
	}
	return models.Warning{Kind: models.NonNumericCell, Row: c.Row, Col: c.Col, Message: msg}
}

func rangeName(rng models.MergedRange) string {
	return cellName(rng.StartRow, rng.Column) + ":" + cellName(rng.EndRow, rng.Column)
}

func cellName(row, col int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", row, col)
	}
	return name
}
