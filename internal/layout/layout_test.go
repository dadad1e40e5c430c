package layout

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/cardsheet/internal/errs"
)

func a4(size, gap, margin float64) Geometry {
	return Geometry{PageWidth: 210, PageHeight: 297, Bleed: 3, CardSize: size, Gap: gap, Margin: margin}
}

func TestPlanA4SinglePage(t *testing.T) {
	c, err := Plan(a4(66, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, Capacity{Columns: 3, Rows: 4}, c)
	assert.Equal(t, 12, c.PageSize())

	assert.Equal(t, 1, PageCount(7, c))
	assert.Equal(t, Cell{Col: 2, Row: 0}, c.FrontCell(2))
	assert.Equal(t, Cell{Col: 0, Row: 0}, c.BackCell(2))
}

func TestPlanA4SecondPageMirrored(t *testing.T) {
	c, err := Plan(a4(66, 3, 3))
	require.NoError(t, err)

	records := make([]int, 13)
	for i := range records {
		records[i] = i
	}
	pages := Paginate(records, c)
	require.Len(t, pages, 2)
	assert.Equal(t, 2, PageCount(13, c))

	last := pages[1]
	assert.Equal(t, 1, last.Index)
	assert.Equal(t, 12, last.Offset)
	assert.Equal(t, []int{12}, last.Items)
	assert.Equal(t, Cell{Col: 0, Row: 0}, c.FrontCell(0))
	assert.Equal(t, Cell{Col: 2, Row: 0}, c.BackCell(0))
}

func TestPlanRejectsNonTilingSize(t *testing.T) {
	_, err := Plan(a4(65, 3, 3))
	require.Error(t, err)
	assert.Equal(t, errs.KindConfig, errs.KindOf(err))
	assert.Contains(t, err.Error(), "size 65mm and gap 3mm")
	assert.Contains(t, err.Error(), "card size: 66mm")
}

func TestValidateConstraints(t *testing.T) {
	tests := []struct {
		name  string
		g     Geometry
		field string
	}{
		{"negative bleed", Geometry{PageWidth: 210, PageHeight: 297, Bleed: -1, CardSize: 66, Gap: 3, Margin: 3}, "bleed"},
		{"zero size", a4(0, 3, 3), "size"},
		{"zero gap", a4(66, 0, 3), "gap"},
		{"zero margin", a4(66, 3, 0), "margin"},
		{"zero width", Geometry{PageHeight: 297, CardSize: 66, Gap: 3, Margin: 3}, "page_width"},
		{"too tall", Geometry{PageWidth: 210, PageHeight: 50, CardSize: 66, Gap: 3, Margin: 3}, "size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			require.Error(t, err)
			var e *errs.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, errs.KindConfig, e.Kind)
			assert.Equal(t, tt.field, e.Field)
		})
	}
}

func TestValidateIffTiles(t *testing.T) {
	for size := 1.0; size <= 100; size++ {
		for gap := 1.0; gap <= 8; gap++ {
			for margin := 1.0; margin <= 8; margin++ {
				g := Geometry{PageWidth: 210, PageHeight: 1000, CardSize: size, Gap: gap, Margin: margin}
				tiles := math.Mod(210-2*margin+gap, size+gap) == 0
				err := g.Validate()
				if tiles != (err == nil) {
					t.Fatalf("size=%g gap=%g margin=%g: tiles=%v err=%v", size, gap, margin, tiles, err)
				}
				if err != nil {
					continue
				}
				c, err := Plan(g)
				require.NoError(t, err)
				width := float64(c.Columns)*size + float64(c.Columns-1)*gap + 2*margin
				if width != g.PageWidth {
					t.Fatalf("size=%g gap=%g margin=%g: width %g != %g", size, gap, margin, width, g.PageWidth)
				}
			}
		}
	}
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, Capacity{Columns: 3, Rows: 4}))
	for cols := 1; cols <= 5; cols++ {
		for rows := 1; rows <= 5; rows++ {
			c := Capacity{Columns: cols, Rows: rows}
			for n := 1; n <= 80; n++ {
				want := (n + c.PageSize() - 1) / c.PageSize()
				if got := PageCount(n, c); got != want {
					t.Fatalf("n=%d cols=%d rows=%d: got %d want %d", n, cols, rows, got, want)
				}
			}
		}
	}
}

func TestPaginateFullLastPage(t *testing.T) {
	c := Capacity{Columns: 3, Rows: 4}
	pages := Paginate(make([]string, 24), c)
	require.Len(t, pages, 2)
	assert.Len(t, pages[1].Items, 12)
}

func TestPaginatePreservesOrder(t *testing.T) {
	c := Capacity{Columns: 2, Rows: 2}
	items := []string{"a", "b", "c", "d", "e", "f", "g"}
	var got []string
	for _, p := range Paginate(items, c) {
		assert.LessOrEqual(t, len(p.Items), c.PageSize())
		got = append(got, p.Items...)
	}
	assert.Equal(t, items, got)
}

func TestFrontBackMirror(t *testing.T) {
	for cols := 1; cols <= 6; cols++ {
		c := Capacity{Columns: cols, Rows: 5}
		for k := 0; k < c.PageSize(); k++ {
			f, b := c.FrontCell(k), c.BackCell(k)
			assert.Equal(t, Cell{Col: k % cols, Row: k / cols}, f)
			assert.Equal(t, f.Row, b.Row)
			assert.Equal(t, cols-1, f.Col+b.Col)
			assert.Equal(t, b, c.CellFor(Back, k))
			assert.Equal(t, f, c.CellFor(Front, k))
		}
	}
}

func TestBackRowLayout(t *testing.T) {
	c := Capacity{Columns: 3, Rows: 2}
	var back []Cell
	for k := 0; k < 5; k++ {
		back = append(back, c.BackCell(k))
	}
	want := []Cell{{2, 0}, {1, 0}, {0, 0}, {2, 1}, {1, 1}}
	if diff := cmp.Diff(want, back); diff != "" {
		t.Errorf("back cells mismatch (-want +got):\n%s", diff)
	}
}

func TestCellOrigin(t *testing.T) {
	g := a4(66, 3, 3)
	x, y := g.CellOrigin(Cell{Col: 2, Row: 1})
	assert.Equal(t, 3.0+3+2*69, x)
	assert.Equal(t, 3.0+3+69, y)

	w, h := g.SheetSize()
	assert.Equal(t, 216.0, w)
	assert.Equal(t, 303.0, h)
}

func TestPlanTokens(t *testing.T) {
	g := a4(28, 6, 6)
	c, err := PlanTokens(g)
	require.NoError(t, err)
	// Height rounds 291/34 = 8.56 up to 9, which would overrun the sheet.
	assert.Equal(t, Capacity{Columns: 6, Rows: 8}, c)

	cells := TokenCells(c)
	require.Len(t, cells, 48)
	assert.Equal(t, Cell{0, 0}, cells[0])
	assert.Equal(t, Cell{5, 7}, cells[47])
	_, sheetH := g.SheetSize()
	_, y := g.CellOrigin(cells[47])
	assert.LessOrEqual(t, y+g.CardSize, sheetH)
}

func TestPlanTokensRejectsBadTiling(t *testing.T) {
	_, err := PlanTokens(a4(27, 6, 6))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindConfig))
	assert.Contains(t, err.Error(), "validate token geometry")
}
