package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoSheet indicates the workbook holds no readable sheet.
var ErrNoSheet = errors.New("workbook contains no readable sheet")

// OpenWorkbook opens an xlsx file and resolves the sheet to process.
// The caller owns the returned file and must close it.
func OpenWorkbook(path string) (*excelize.File, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", err
	}
	sheetName := ActiveSheet(f)
	if sheetName == "" {
		f.Close()
		return nil, "", ErrNoSheet
	}
	return f, sheetName, nil
}

// ActiveSheet returns the active sheet name, falling back to the first
// visible sheet and then to the first sheet.
func ActiveSheet(f *excelize.File) string {
	if name := f.GetSheetName(f.GetActiveSheetIndex()); name != "" {
		if visible, err := f.GetSheetVisible(name); err == nil && visible {
			return name
		}
	}
	sheetList := f.GetSheetList()
	for _, name := range sheetList {
		if visible, err := f.GetSheetVisible(name); err == nil && visible {
			return name
		}
	}
	if len(sheetList) > 0 {
		return sheetList[0]
	}
	return ""
}

// ReadSheet loads the cell grid of sheetName. The grid covers every non-empty
// cell, every merged region and every cell declared in markup, so styled blank
// cells keep their formatting. markup may be nil.
func ReadSheet(f *excelize.File, sheetName string, markup *Markup) (*models.Sheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	maxRow, maxCol := findDataBounds(rows)
	if markup != nil {
		maxRow = max(maxRow, markup.LastRow)
		maxCol = max(maxCol, markup.LastCol)
		for _, region := range markup.Merges {
			maxRow = max(maxRow, region.EndRow)
			maxCol = max(maxCol, region.EndCol)
		}
	}

	sheet := models.NewSheet(sheetName, maxRow, maxCol)
	for rowNum := 1; rowNum <= maxRow; rowNum++ {
		for colNum := 1; colNum <= maxCol; colNum++ {
			cell := sheet.Cell(rowNum, colNum)
			cellName, err := excelize.CoordinatesToCellName(colNum, rowNum)
			if err != nil {
				return nil, err
			}

			if cell.StyleID, err = f.GetCellStyle(sheetName, cellName); err != nil {
				return nil, err
			}
			if cell.Formula, err = f.GetCellFormula(sheetName, cellName); err != nil {
				return nil, err
			}

			raw := rawValue(rows, rowNum, colNum)
			if raw == "" {
				continue
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			setValue(cell, raw, cellType)
		}
	}

	for colNum := 1; colNum <= maxCol; colNum++ {
		colName, err := excelize.ColumnNumberToName(colNum)
		if err != nil {
			return nil, err
		}
		width, err := f.GetColWidth(sheetName, colName)
		if err != nil {
			return nil, err
		}
		sheet.ColWidths[colNum] = width
	}
	for rowNum := 1; rowNum <= maxRow; rowNum++ {
		height, err := f.GetRowHeight(sheetName, rowNum)
		if err != nil {
			return nil, err
		}
		sheet.RowHeights[rowNum] = height
	}

	return sheet, nil
}

// setValue classifies a raw cell value. Shared and inline strings stay text
// even when they look numeric, so codes like "00123" survive a round trip.
func setValue(cell *models.Cell, raw string, cellType excelize.CellType) {
	switch cellType {
	case excelize.CellTypeBool:
		cell.Kind = models.CellBool
		if raw == "1" || strings.EqualFold(raw, "true") {
			cell.Number = 1
			cell.Text = "TRUE"
		} else {
			cell.Text = "FALSE"
		}
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		cell.Kind = models.CellText
		cell.Text = raw
	default:
		cell.Kind, cell.Number, cell.Text = parseValue(raw)
	}
}

// parseValue parses a raw value as a float, or keeps it as text.
func parseValue(s string) (models.CellKind, float64, string) {
	if s == "" {
		return models.CellEmpty, 0, ""
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return models.CellNumber, f, s
	}
	return models.CellText, 0, s
}

func rawValue(rows [][]string, rowNum, colNum int) string {
	if rowNum > len(rows) || colNum > len(rows[rowNum-1]) {
		return ""
	}
	return rows[rowNum-1][colNum-1]
}

// findDataBounds returns the last row and column holding a value (1-based).
func findDataBounds(rows [][]string) (maxRow, maxCol int) {
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				maxRow = max(maxRow, rowIdx+1)
				maxCol = max(maxCol, colIdx+1)
			}
		}
	}
	return
}
