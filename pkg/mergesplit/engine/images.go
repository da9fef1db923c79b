package engine

import (
	"strings"

	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/models"
)

// DropImageFormulas empties every cell whose formula calls DISPIMG, the WPS
// Office function that shows an embedded cell image. Images are not copied,
// so the formula would only evaluate to #NAME? elsewhere. Styles stay. It
// returns the number of cells emptied.
func DropImageFormulas(sheet *models.Sheet) int {
	dropped := 0
	for r := range sheet.Rows {
		for c := range sheet.Rows[r] {
			cell := &sheet.Rows[r][c]
			if isImageFormula(cell.Formula) {
				cell.Clear()
				dropped++
			}
		}
	}
	return dropped
}

func isImageFormula(formula string) bool {
	return strings.Contains(strings.ToUpper(formula), "DISPIMG(")
}
