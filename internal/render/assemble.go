package render

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/youruser/cardsheet/internal/deck"
	"github.com/youruser/cardsheet/internal/errs"
	"github.com/youruser/cardsheet/internal/layout"
	"github.com/youruser/cardsheet/internal/logging"
)

// Assembler drives one run: validate, paginate, draw every logical page as
// a front page immediately followed by its mirrored back page, append the two
// token pages and finalize the surface.
type Assembler struct {
	Cards      layout.Geometry
	Tokens     layout.Geometry
	Encoder    Encoder
	TokenImage []byte
	Logger     *zap.Logger
}

// Stats summarises a finished run.
type Stats struct {
	Cards         int
	LogicalPages  int
	PhysicalPages int
	TokensPerPage int
}

// Assemble renders d onto s and returns the finalized document. On any error
// no bytes are returned.
func (a *Assembler) Assemble(s Surface, d deck.Deck) ([]byte, Stats, error) {
	log := logging.OrNop(a.Logger)
	if a.Encoder == nil {
		return nil, Stats{}, errors.New("assembler has no qr encoder")
	}

	grid, err := layout.Plan(a.Cards)
	if err != nil {
		return nil, Stats{}, err
	}
	tokenGrid, err := layout.PlanTokens(a.Tokens)
	if err != nil {
		return nil, Stats{}, err
	}
	if len(a.TokenImage) == 0 {
		return nil, Stats{}, errs.Config("validate token geometry", "token_image", nil, "", errors.New("no token image"))
	}
	if err := d.Check(); err != nil {
		return nil, Stats{}, err
	}
	back, err := d.Theme.Back()
	if err != nil {
		return nil, Stats{}, err
	}

	pages := layout.Paginate(d.Cards, grid)
	stats := Stats{Cards: len(d.Cards), LogicalPages: len(pages), TokensPerPage: tokenGrid.PageSize()}
	log.Debug("Planned sheet",
		zap.Int("cards", len(d.Cards)),
		zap.Int("columns", grid.Columns),
		zap.Int("rows", grid.Rows),
		zap.Int("pages", len(pages)))

	sheetW, sheetH := a.Cards.SheetSize()
	for _, p := range pages {
		if err := s.BeginPage(sheetW, sheetH); err != nil {
			return nil, Stats{}, errs.Render("begin front page", errs.NoRecord, err)
		}
		for k, card := range p.Items {
			x, y := a.Cards.CellOrigin(grid.FrontCell(k))
			colors, _ := d.Theme.Resolve(card.Type)
			if err := DrawFront(s, card, colors, x, y, a.Cards.CardSize); err != nil {
				return nil, Stats{}, errs.Render("draw front", p.Offset+k, err)
			}
		}

		if err := s.BeginPage(sheetW, sheetH); err != nil {
			return nil, Stats{}, errs.Render("begin back page", errs.NoRecord, err)
		}
		for k, card := range p.Items {
			x, y := a.Cards.CellOrigin(grid.BackCell(k))
			name := fmt.Sprintf("qr-%d", p.Offset+k)
			if err := DrawBack(s, a.Encoder, name, card.URL, back, x, y, a.Cards.CardSize); err != nil {
				return nil, Stats{}, errs.Render("draw back", p.Offset+k, err)
			}
		}
		stats.PhysicalPages += 2
		log.Debug("Rendered sheet", zap.Int("page", p.Index+1), zap.Int("cards", len(p.Items)))
	}

	tokenW, tokenH := a.Tokens.SheetSize()
	for i := 0; i < 2; i++ {
		if err := s.BeginPage(tokenW, tokenH); err != nil {
			return nil, Stats{}, errs.Render("begin token page", errs.NoRecord, err)
		}
		if _, err := DrawTokens(s, a.Tokens, tokenGrid, a.TokenImage); err != nil {
			return nil, Stats{}, errs.Render("draw tokens", errs.NoRecord, err)
		}
		stats.PhysicalPages++
	}

	out, err := s.Finalize()
	if err != nil {
		return nil, Stats{}, errs.Render("finalize document", errs.NoRecord, err)
	}
	log.Debug("Finalized document", zap.Int("bytes", len(out)), zap.Int("physical_pages", stats.PhysicalPages))
	return out, stats, nil
}
