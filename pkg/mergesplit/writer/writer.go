// Package writer emits the expanded grid as a new workbook, carrying every
// cell's formatting across from the source workbook.
package writer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/models"
	"github.com/xuri/excelize/v2"
)

// OutputSuffix is inserted between the input stem and its extension.
const OutputSuffix = "_拆分表"

// weightNumFmt is the built-in "0.00" number format applied to split weights.
const weightNumFmt = 2

// ErrSameAsInput indicates the output path resolves to the input file.
var ErrSameAsInput = errors.New("output path is the input file")

// StyleSource resolves a style index of the source workbook.
// *excelize.File satisfies it.
type StyleSource interface {
	GetStyle(idx int) (*excelize.Style, error)
}

// OutputPath derives the output file path for an input workbook:
// /data/shipment.xlsx becomes /data/shipment_拆分表.xlsx.
func OutputPath(inputPath string) (string, error) {
	dir, base := filepath.Split(inputPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		return "", fmt.Errorf("cannot derive output name from %q", inputPath)
	}
	if ext == "" {
		ext = ".xlsx"
	}
	return filepath.Join(dir, stem+OutputSuffix+ext), nil
}

// CheckTarget rejects an output path that would overwrite the input.
func CheckTarget(inputPath, outputPath string) error {
	in, err := filepath.Abs(inputPath)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(outputPath)
	if err != nil {
		return err
	}
	if in == out {
		return ErrSameAsInput
	}
	inInfo, inErr := os.Stat(in)
	outInfo, outErr := os.Stat(out)
	if inErr == nil && outErr == nil && os.SameFile(inInfo, outInfo) {
		return ErrSameAsInput
	}
	return nil
}

// Write saves sheet as a single-sheet workbook at path. Style indexes are
// resolved against styles and recreated in the new workbook; merges lists the
// regions to declare in the output, everything else is written unmerged.
func Write(path string, sheet *models.Sheet, styles StyleSource, merges []models.MergeRegion) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := sheet.Name
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if sheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			return err
		}
	}

	for col, width := range sheet.ColWidths {
		colName, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, colName, colName, width); err != nil {
			return err
		}
	}
	for row, height := range sheet.RowHeights {
		if err := f.SetRowHeight(sheetName, row, height); err != nil {
			return err
		}
	}

	for _, region := range merges {
		if region.SingleCell() {
			continue
		}
		topLeft, err := excelize.CoordinatesToCellName(region.StartCol, region.StartRow)
		if err != nil {
			return err
		}
		bottomRight, err := excelize.CoordinatesToCellName(region.EndCol, region.EndRow)
		if err != nil {
			return err
		}
		if err := f.MergeCell(sheetName, topLeft, bottomRight); err != nil {
			return err
		}
	}

	// Merging restyles the whole region, so cells are written afterwards.
	cache := newStyleCache(f, styles)
	for _, row := range sheet.Rows {
		for _, cell := range row {
			if err := writeCell(f, sheetName, cell, cache); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

func writeCell(f *excelize.File, sheetName string, cell models.Cell, cache *styleCache) error {
	if cell.IsEmpty() && cell.StyleID == 0 && !cell.Weight {
		return nil
	}

	cellName, err := excelize.CoordinatesToCellName(cell.Col, cell.Row)
	if err != nil {
		return err
	}

	switch {
	case cell.Formula != "":
		err = f.SetCellFormula(sheetName, cellName, cell.Formula)
	case cell.Kind == models.CellNumber:
		err = f.SetCellFloat(sheetName, cellName, cell.Number, -1, 64)
	case cell.Kind == models.CellBool:
		err = f.SetCellBool(sheetName, cellName, cell.Number != 0)
	case cell.Kind == models.CellText:
		err = f.SetCellStr(sheetName, cellName, cell.Text)
	}
	if err != nil {
		return err
	}

	styleID, err := cache.resolve(cell.StyleID, cell.Weight)
	if err != nil {
		return fmt.Errorf("style of %s: %w", cellName, err)
	}
	if styleID == 0 {
		return nil
	}
	return f.SetCellStyle(sheetName, cellName, cellName, styleID)
}
