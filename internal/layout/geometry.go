// Package layout holds the sheet arithmetic: geometry validation, grid
// capacity, pagination and the front/back cell mapping used for duplex
// registration. Everything here is pure.
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/youruser/cardsheet/internal/errs"
)

// ReferenceConfig is shown with every geometry error.
const ReferenceConfig = `For A4 paper (210x297mm) a known-good configuration is:
	card size: 66mm
	card gap: 3mm
	card margin: 3mm
	token size: 28mm
	token gap: 6mm
	token margin: 6mm`

const epsilon = 1e-9

// Geometry describes one square-cell grid on a page. All values are in
// millimetres. PageWidth and PageHeight are the trimmed page; the physical
// sheet adds Bleed on every side.
type Geometry struct {
	PageWidth  float64 `yaml:"page_width" json:"page_width"`
	PageHeight float64 `yaml:"page_height" json:"page_height"`
	Bleed      float64 `yaml:"bleed" json:"bleed"`
	CardSize   float64 `yaml:"card_size" json:"card_size"`
	Gap        float64 `yaml:"gap" json:"gap"`
	Margin     float64 `yaml:"margin" json:"margin"`
}

// Capacity is the number of cells a page holds.
type Capacity struct {
	Columns int
	Rows    int
}

// PageSize is the number of cards on a full page.
func (c Capacity) PageSize() int { return c.Columns * c.Rows }

// Pitch is the distance between the origins of two neighbouring cells.
func (g Geometry) Pitch() float64 { return g.CardSize + g.Gap }

// SheetSize is the physical sheet including bleed.
func (g Geometry) SheetSize() (width, height float64) {
	return g.PageWidth + 2*g.Bleed, g.PageHeight + 2*g.Bleed
}

// CellOrigin returns the top-left corner of a cell in sheet coordinates.
func (g Geometry) CellOrigin(c Cell) (x, y float64) {
	off := g.Bleed + g.Margin
	return off + float64(c.Col)*g.Pitch(), off + float64(c.Row)*g.Pitch()
}

// span is the length available to cells along one axis, plus one gap so that
// n cells and n-1 gaps divide it evenly.
func (g Geometry) span(page float64) float64 {
	return page - 2*g.Margin + g.Gap
}

// Validate checks the geometry. The returned error is an *errs.Error of kind
// KindConfig naming the failing constraint.
func (g Geometry) Validate() error {
	return g.validate("validate geometry")
}

func (g Geometry) validate(op string) error {
	bad := func(field string, value float64, msg string) error {
		return errs.Config(op, field, value, ReferenceConfig, errors.New(msg))
	}
	switch {
	case g.PageWidth <= 0:
		return bad("page_width", g.PageWidth, "must be greater than 0")
	case g.PageHeight <= 0:
		return bad("page_height", g.PageHeight, "must be greater than 0")
	case g.Bleed < 0:
		return bad("bleed", g.Bleed, "must be greater than or equal to 0")
	case g.CardSize <= 0:
		return bad("size", g.CardSize, "must be greater than 0")
	case g.Gap <= 0:
		return bad("gap", g.Gap, "must be greater than 0")
	case g.Margin <= 0:
		return bad("margin", g.Margin, "must be greater than 0")
	}

	span := g.span(g.PageWidth)
	if rem := math.Mod(span, g.Pitch()); rem > epsilon && g.Pitch()-rem > epsilon {
		return errs.Config(op, "size+gap", g.Pitch(), ReferenceConfig, fmt.Errorf(
			"size %gmm and gap %gmm do not tile the page width %gmm minus 2x margin %gmm: "+
				"(%g - 2*%g + %g) mod (%g + %g) = %g, want 0; there is one gap less than there are cells",
			g.CardSize, g.Gap, g.PageWidth, g.Margin,
			g.PageWidth, g.Margin, g.Gap, g.CardSize, g.Gap, rem))
	}
	if floorDiv(span, g.Pitch()) < 1 {
		return bad("size", g.CardSize, fmt.Sprintf("no cell fits across %gmm", g.PageWidth))
	}
	if floorDiv(g.span(g.PageHeight), g.Pitch()) < 1 {
		return bad("size", g.CardSize, fmt.Sprintf("no cell fits down %gmm", g.PageHeight))
	}
	return nil
}

// Plan validates a card geometry and returns its capacity. Both axes use
// floor division, so no partial card is ever placed.
func Plan(g Geometry) (Capacity, error) {
	if err := g.validate("validate card geometry"); err != nil {
		return Capacity{}, err
	}
	return Capacity{
		Columns: floorDiv(g.span(g.PageWidth), g.Pitch()),
		Rows:    floorDiv(g.span(g.PageHeight), g.Pitch()),
	}, nil
}

func floorDiv(a, b float64) int {
	return int(math.Floor(a/b + epsilon))
}
