package layout

import "fmt"

// Side is the printed side of a sheet.
type Side int

const (
	Front Side = iota
	Back
)

func (s Side) String() string {
	if s == Back {
		return "back"
	}
	return "front"
}

// Cell addresses a grid slot, 0-based from the top-left of the page.
type Cell struct {
	Col int
	Row int
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Col, c.Row) }

// FrontCell maps page-local index k to its front slot: row-major, left to
// right then top to bottom.
func (c Capacity) FrontCell(k int) Cell {
	return Cell{Col: k % c.Columns, Row: k / c.Columns}
}

// BackCell maps page-local index k to its back slot: the front slot's column
// mirrored about the vertical midline, same row. A sheet flipped on its
// vertical edge then puts back k behind front k.
func (c Capacity) BackCell(k int) Cell {
	f := c.FrontCell(k)
	return Cell{Col: c.Columns - 1 - f.Col, Row: f.Row}
}

// CellFor dispatches on side.
func (c Capacity) CellFor(side Side, k int) Cell {
	if side == Back {
		return c.BackCell(k)
	}
	return c.FrontCell(k)
}
