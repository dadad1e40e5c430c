package deck

import (
	"fmt"
	"strings"

	"github.com/youruser/cardsheet/internal/layout"
)

// ExportManifest lists, per physical page, which record lands in which cell.
// Printed next to the sheet it lets an operator check registration by hand.
func ExportManifest(d Deck, g layout.Geometry) (string, error) {
	c, err := layout.Plan(g)
	if err != nil {
		return "", err
	}
	lines := []string{}
	if d.Name != "" {
		lines = append(lines, "# "+d.Name)
	}
	lines = append(lines, fmt.Sprintf("# %d cards, %dx%d per page", len(d.Cards), c.Columns, c.Rows))

	sheet := 1
	for _, p := range layout.Paginate(d.Cards, c) {
		for _, side := range []layout.Side{layout.Front, layout.Back} {
			lines = append(lines, fmt.Sprintf("page %d (%s of sheet %d)", 2*p.Index+1+int(side), side, sheet))
			for k, card := range p.Items {
				cell := c.CellFor(side, k)
				x, y := g.CellOrigin(cell)
				lines = append(lines, strings.TrimRight(fmt.Sprintf("  %s %3d  x=%6.1f y=%6.1f  %-10s %s",
					cell, p.Offset+k, x, y, card.Type, card.Top), " "))
			}
		}
		sheet++
	}
	return strings.Join(lines, "\n") + "\n", nil
}
