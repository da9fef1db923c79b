package engine

import "github.com/ukaji3/mergesplit-go/pkg/mergesplit/models"

// TableEnd returns the last row of the table: the row before the first row
// below the header whose first column is blank. The header row is always
// kept. A blank cell under a merge whose anchor holds a value does not end
// the table.
func TableEnd(sheet *models.Sheet, regions []models.MergeRegion) int {
	for row := 2; row <= sheet.MaxRow; row++ {
		if !sheet.Value(row, 1).IsEmpty() {
			continue
		}
		if coveredByValue(sheet, regions, row, 1) {
			continue
		}
		return row - 1
	}
	return sheet.MaxRow
}

// ClipRegions drops regions starting after lastRow and shortens the rest.
// Regions reduced to a single cell are dropped.
func ClipRegions(regions []models.MergeRegion, lastRow int) []models.MergeRegion {
	var out []models.MergeRegion
	for _, region := range regions {
		if region.StartRow > lastRow {
			continue
		}
		region.EndRow = min(region.EndRow, lastRow)
		if region.SingleCell() {
			continue
		}
		out = append(out, region)
	}
	return out
}

func coveredByValue(sheet *models.Sheet, regions []models.MergeRegion, row, col int) bool {
	for _, region := range regions {
		if region.Contains(row, col) && !sheet.Value(region.StartRow, region.StartCol).IsEmpty() {
			return true
		}
	}
	return false
}
