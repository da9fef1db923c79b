package writer

import "github.com/xuri/excelize/v2"

type styleKey struct {
	id     int
	weight bool
}

// styleCache maps source style indexes to indexes in the output workbook.
type styleCache struct {
	dst *excelize.File
	src StyleSource
	ids map[styleKey]int
}

func newStyleCache(dst *excelize.File, src StyleSource) *styleCache {
	return &styleCache{dst: dst, src: src, ids: make(map[styleKey]int)}
}

// resolve returns the output style index for a source index. Weight cells get
// the source style with its number format replaced by "0.00".
func (c *styleCache) resolve(srcID int, weight bool) (int, error) {
	if srcID == 0 && !weight {
		return 0, nil
	}
	key := styleKey{id: srcID, weight: weight}
	if id, ok := c.ids[key]; ok {
		return id, nil
	}

	style := &excelize.Style{}
	if c.src != nil {
		st, err := c.src.GetStyle(srcID)
		if err != nil {
			return 0, err
		}
		if st != nil {
			style = st
		}
	}
	if weight {
		style.NumFmt = weightNumFmt
		style.CustomNumFmt = nil
		style.DecimalPlaces = nil
	}

	id, err := c.dst.NewStyle(style)
	if err != nil {
		return 0, err
	}
	c.ids[key] = id
	return id, nil
}
