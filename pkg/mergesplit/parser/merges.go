package parser

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/models"
	"github.com/xuri/excelize/v2"
)

// Markup holds what the worksheet part declares beyond cell values.
type Markup struct {
	// Merges lists the merged regions in document order.
	Merges []models.MergeRegion
	// LastRow and LastCol bound every cell element of the sheet data,
	// including styled blank cells and formulas without a cached value.
	LastRow, LastCol int
}

// ExtractMarkup reads the merged regions and the cell extent of sheetName
// straight from the worksheet markup. The logical cell API reports a merge as
// one value at its top-left cell, which loses how many physical rows it spans.
func ExtractMarkup(xlsxPath, sheetName string) (*Markup, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	partPath, err := sheetPartPath(&r.Reader, sheetName)
	if err != nil {
		return nil, err
	}

	sheetXML, err := readZipFile(&r.Reader, partPath)
	if err != nil {
		return nil, err
	}

	markup, err := parseMarkup(sheetXML)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", partPath, err)
	}
	return markup, nil
}

// ExtractMerges reads only the merged regions declared for sheetName.
func ExtractMerges(xlsxPath, sheetName string) ([]models.MergeRegion, error) {
	markup, err := ExtractMarkup(xlsxPath, sheetName)
	if err != nil {
		return nil, err
	}
	return markup.Merges, nil
}

// parseMarkup collects every <mergeCell ref="..."/> inside <mergeCells> and
// the extent of the <c> elements.
func parseMarkup(data []byte) (*Markup, error) {
	markup := &Markup{}
	err := scanElements(data, func(parent string, se xml.StartElement) error {
		switch {
		case parent == "mergeCells" && se.Name.Local == "mergeCell":
			region, err := parseMergeRef(attr(se, "ref"))
			if err != nil {
				return err
			}
			markup.Merges = append(markup.Merges, region)
		case parent == "row" && se.Name.Local == "c":
			col, row, err := excelize.CellNameToCoordinates(attr(se, "r"))
			if err != nil {
				// a cell without a usable reference cannot widen the grid
				return nil
			}
			markup.LastRow = max(markup.LastRow, row)
			markup.LastCol = max(markup.LastCol, col)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return markup, nil
}

// parseMergeRef parses a reference like A1:B3 (or a lone A1) into a region.
func parseMergeRef(ref string) (models.MergeRegion, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(ref), "$", "")
	parts := strings.Split(clean, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return models.MergeRegion{}, fmt.Errorf("invalid merge reference %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.MergeRegion{}, fmt.Errorf("invalid merge reference %q: %w", ref, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.MergeRegion{}, fmt.Errorf("invalid merge reference %q: %w", ref, err)
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return models.MergeRegion{
		Ref:      ref,
		StartRow: startRow,
		StartCol: startCol,
		EndRow:   endRow,
		EndCol:   endCol,
	}, nil
}

// ClassifyMerges sorts regions into the ranges the engine can dissolve for the
// weight and box columns, the regions it must leave alone, and the regions
// that do not touch either column.
func ClassifyMerges(regions []models.MergeRegion, weightCol, boxCol int) models.MergePlan {
	var plan models.MergePlan
	unsupported := make(map[int]bool)

	for _, col := range []int{weightCol, boxCol} {
		var candidates []int
		for i, region := range regions {
			if !region.Covers(col) || region.SingleCell() {
				continue
			}
			if !region.Vertical() {
				unsupported[i] = true
				continue
			}
			candidates = append(candidates, i)
		}
		for _, i := range candidates {
			for _, j := range candidates {
				if i != j && overlaps(regions[i], regions[j]) {
					unsupported[i] = true
				}
			}
		}
		for _, i := range candidates {
			if unsupported[i] {
				continue
			}
			rng := models.MergedRange{
				StartRow: regions[i].StartRow,
				EndRow:   regions[i].EndRow,
				Column:   col,
			}
			if col == weightCol {
				plan.Weight = append(plan.Weight, rng)
			} else {
				plan.Box = append(plan.Box, rng)
			}
		}
	}

	for i, region := range regions {
		switch {
		case unsupported[i]:
			plan.Unsupported = append(plan.Unsupported, region)
		case region.Covers(weightCol) || region.Covers(boxCol):
			// dissolved by the engine, or a single cell
		default:
			plan.Other = append(plan.Other, region)
		}
	}

	sortRanges(plan.Weight)
	sortRanges(plan.Box)
	return plan
}

func overlaps(a, b models.MergeRegion) bool {
	return a.StartRow <= b.EndRow && b.StartRow <= a.EndRow &&
		a.StartCol <= b.EndCol && b.StartCol <= a.EndCol
}

func sortRanges(ranges []models.MergedRange) {
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].StartRow < ranges[j].StartRow
	})
}
