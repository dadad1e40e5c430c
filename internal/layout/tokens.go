package layout

import "math"

// PlanTokens validates a token geometry and returns its capacity.
//
// Unlike Plan, each axis rounds to the nearest whole token, then drops any
// row or column whose token would cross the physical sheet edge.
func PlanTokens(g Geometry) (Capacity, error) {
	if err := g.validate("validate token geometry"); err != nil {
		return Capacity{}, err
	}
	sheetW, sheetH := g.SheetSize()
	return Capacity{
		Columns: g.roundFit(g.PageWidth, sheetW),
		Rows:    g.roundFit(g.PageHeight, sheetH),
	}, nil
}

func (g Geometry) roundFit(page, sheet float64) int {
	n := int(math.Round(g.span(page) / g.Pitch()))
	origin := g.Bleed + g.Margin
	for n > 1 && origin+float64(n)*g.Pitch()-g.Gap > sheet+epsilon {
		n--
	}
	return n
}

// TokenCells lists every token slot, row by row.
func TokenCells(c Capacity) []Cell {
	cells := make([]Cell, 0, c.PageSize())
	for row := 0; row < c.Rows; row++ {
		for col := 0; col < c.Columns; col++ {
			cells = append(cells, Cell{Col: col, Row: row})
		}
	}
	return cells
}
