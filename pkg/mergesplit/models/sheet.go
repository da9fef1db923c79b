package models

// Sheet is the rectangular cell grid of one worksheet.
type Sheet struct {
	// Name is the worksheet name.
	Name string `json:"name"`
	// MaxRow is the last row of the grid (1-based, inclusive).
	MaxRow int `json:"max_row"`
	// MaxCol is the last column of the grid (1-based, inclusive).
	MaxCol int `json:"max_col"`
	// Rows holds MaxRow rows of MaxCol cells each.
	Rows [][]Cell `json:"rows"`
	// ColWidths maps a column index to its custom width.
	ColWidths map[int]float64 `json:"col_widths,omitempty"`
	// RowHeights maps a row index to its custom height.
	RowHeights map[int]float64 `json:"row_heights,omitempty"`
}

// NewSheet allocates an empty grid of the given size.
func NewSheet(name string, maxRow, maxCol int) *Sheet {
	s := &Sheet{
		Name:       name,
		MaxRow:     maxRow,
		MaxCol:     maxCol,
		Rows:       make([][]Cell, maxRow),
		ColWidths:  make(map[int]float64),
		RowHeights: make(map[int]float64),
	}
	for r := range s.Rows {
		row := make([]Cell, maxCol)
		for c := range row {
			row[c] = Cell{Row: r + 1, Col: c + 1}
		}
		s.Rows[r] = row
	}
	return s
}

// Cell returns the cell at (row, col), or nil outside the grid.
func (s *Sheet) Cell(row, col int) *Cell {
	if row < 1 || col < 1 || row > s.MaxRow || col > s.MaxCol {
		return nil
	}
	return &s.Rows[row-1][col-1]
}

// Value returns a copy of the cell at (row, col); out-of-grid cells are empty.
func (s *Sheet) Value(row, col int) Cell {
	if c := s.Cell(row, col); c != nil {
		return *c
	}
	return Cell{Row: row, Col: col}
}

// Truncate drops every row after lastRow.
func (s *Sheet) Truncate(lastRow int) {
	if lastRow < 0 || lastRow >= s.MaxRow {
		return
	}
	s.Rows = s.Rows[:lastRow]
	s.MaxRow = lastRow
	for r := range s.RowHeights {
		if r > lastRow {
			delete(s.RowHeights, r)
		}
	}
}

// Clone returns a deep copy of the sheet.
func (s *Sheet) Clone() *Sheet {
	out := &Sheet{
		Name:       s.Name,
		MaxRow:     s.MaxRow,
		MaxCol:     s.MaxCol,
		Rows:       make([][]Cell, len(s.Rows)),
		ColWidths:  make(map[int]float64, len(s.ColWidths)),
		RowHeights: make(map[int]float64, len(s.RowHeights)),
	}
	for i, row := range s.Rows {
		out.Rows[i] = append([]Cell(nil), row...)
	}
	for k, v := range s.ColWidths {
		out.ColWidths[k] = v
	}
	for k, v := range s.RowHeights {
		out.RowHeights[k] = v
	}
	return out
}
