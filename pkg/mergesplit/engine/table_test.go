package engine

import (
	"testing"

	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/models"
)

func TestTableEnd(t *testing.T) {
	sheet := newTestSheet(6, 2)
	setText(sheet, 1, 1, "SKU")
	setText(sheet, 2, 1, "A-1")
	setText(sheet, 5, 1, "notes")

	if got := TableEnd(sheet, nil); got != 2 {
		t.Errorf("TableEnd = %d, expected 2", got)
	}

	// rows 3-4 sit under a merge anchored on a filled cell
	regions := []models.MergeRegion{{Ref: "A2:A4", StartRow: 2, StartCol: 1, EndRow: 4, EndCol: 1}}
	if got := TableEnd(sheet, regions); got != 5 {
		t.Errorf("TableEnd with merge = %d, expected 5", got)
	}
}

func TestClipRegions(t *testing.T) {
	regions := []models.MergeRegion{
		{Ref: "A2:A4", StartRow: 2, StartCol: 1, EndRow: 4, EndCol: 1},
		{Ref: "B3:B9", StartRow: 3, StartCol: 2, EndRow: 9, EndCol: 2},
		{Ref: "C5:D6", StartRow: 5, StartCol: 3, EndRow: 6, EndCol: 4},
		{Ref: "E9:E12", StartRow: 9, StartCol: 5, EndRow: 12, EndCol: 5},
	}

	got := ClipRegions(regions, 5)

	if len(got) != 3 {
		t.Fatalf("expected 3 regions, got %+v", got)
	}
	if got[1].EndRow != 5 {
		t.Errorf("B3:B9 clipped to row %d, expected 5", got[1].EndRow)
	}
	if got[2].EndRow != 5 || got[2].StartCol != 3 {
		t.Errorf("C5:D6 clipped to %+v", got[2])
	}
}

func TestTableEndKeepsHeader(t *testing.T) {
	tests := []struct {
		name     string
		keys     map[int]string
		maxRow   int
		expected int
	}{
		{"blank header cell", map[int]string{2: "A-1", 3: "A-2"}, 5, 3},
		{"blank header and first data row", map[int]string{3: "A-2"}, 4, 1},
		{"header only", nil, 1, 1},
	}

	for _, tt := range tests {
		sheet := newTestSheet(tt.maxRow, 2)
		setText(sheet, 1, 2, "Qty")
		for row, key := range tt.keys {
			setText(sheet, row, 1, key)
		}
		if got := TableEnd(sheet, nil); got != tt.expected {
			t.Errorf("%s: TableEnd = %d, expected %d", tt.name, got, tt.expected)
		}
	}
}
