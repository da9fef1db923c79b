package models

// MergeRegion is a merged rectangle exactly as declared by the worksheet markup.
type MergeRegion struct {
	// Ref is the original reference, e.g. "M5:M7".
	Ref string `json:"ref"`
	// StartRow is the top row (1-based).
	StartRow int `json:"start_row"`
	// StartCol is the left column (1-based).
	StartCol int `json:"start_col"`
	// EndRow is the bottom row (1-based, inclusive).
	EndRow int `json:"end_row"`
	// EndCol is the right column (1-based, inclusive).
	EndCol int `json:"end_col"`
}

// Covers reports whether the region includes column col.
func (m MergeRegion) Covers(col int) bool {
	return col >= m.StartCol && col <= m.EndCol
}

// Contains reports whether (row, col) lies inside the region.
func (m MergeRegion) Contains(row, col int) bool {
	return row >= m.StartRow && row <= m.EndRow && m.Covers(col)
}

// SingleCell reports whether the region spans one cell only.
func (m MergeRegion) SingleCell() bool {
	return m.StartRow == m.EndRow && m.StartCol == m.EndCol
}

// Vertical reports whether the region is one column wide.
func (m MergeRegion) Vertical() bool {
	return m.StartCol == m.EndCol
}

// MergedRange is a single-column vertical merge in a processed column.
type MergedRange struct {
	// StartRow is the anchor row holding the merged value (1-based).
	StartRow int `json:"start_row"`
	// EndRow is the last row of the merge (1-based, inclusive).
	EndRow int `json:"end_row"`
	// Column is the merged column (1-based).
	Column int `json:"column"`
}

// Len returns the number of physical rows in the range.
func (r MergedRange) Len() int {
	return r.EndRow - r.StartRow + 1
}

// MergePlan partitions the merged regions of a sheet for one process config.
type MergePlan struct {
	// Weight holds the dissolvable ranges of the weight column, by start row.
	Weight []MergedRange `json:"weight,omitempty"`
	// Box holds the dissolvable ranges of the box column, by start row.
	Box []MergedRange `json:"box,omitempty"`
	// Unsupported holds regions in a processed column that cannot be dissolved.
	Unsupported []MergeRegion `json:"unsupported,omitempty"`
	// Other holds regions that touch neither processed column.
	Other []MergeRegion `json:"other,omitempty"`
}
