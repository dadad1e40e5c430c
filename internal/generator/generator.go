// Package generator wires configuration, adapters and the assembler into a
// single call used by the CLI and the HTTP server.
package generator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/youruser/cardsheet/internal/cards"
	"github.com/youruser/cardsheet/internal/config"
	"github.com/youruser/cardsheet/internal/deck"
	"github.com/youruser/cardsheet/internal/errs"
	imagepkg "github.com/youruser/cardsheet/internal/image"
	"github.com/youruser/cardsheet/internal/logging"
	"github.com/youruser/cardsheet/internal/pdf"
	"github.com/youruser/cardsheet/internal/preview"
	"github.com/youruser/cardsheet/internal/render"
	"github.com/youruser/cardsheet/internal/theme"
)

// Format selects the output adapter.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// ParseFormat accepts "pdf" (default when empty) or "png".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unknown format %q (want pdf or png)", s)
}

// ContentType is the MIME type of the generated bytes.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "application/zip"
	}
	return "application/pdf"
}

// Extension is the file extension of the generated bytes.
func (f Format) Extension() string {
	if f == FormatPNG {
		return ".zip"
	}
	return ".pdf"
}

// Generator holds everything a run needs except the deck. It is safe for
// concurrent use: every call builds its own surface.
type Generator struct {
	cfg   config.Config
	token []byte
	log   *zap.Logger
}

// New validates both grids and loads the token image once.
func New(cfg *config.Config, log *zap.Logger) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	back, err := cfg.Colors.Back()
	if err != nil {
		return nil, err
	}
	token, err := imagepkg.LoadToken(cfg.Tokens.Image, back)
	if err != nil {
		return nil, errs.Config("load token image", "tokens.image", cfg.Tokens.Image, "", err)
	}
	return &Generator{cfg: *cfg, token: token, log: logging.OrNop(log)}, nil
}

// Deck builds the deck to print from records, using the configured colours
// with overrides laid over them. With fallback colours enabled, unknown types
// are painted grey instead of failing the run.
func (g *Generator) Deck(name string, records []cards.Card, overrides theme.Theme) deck.Deck {
	th := g.cfg.Colors.Merge(overrides)
	if g.cfg.Output.Fallback {
		th = th.WithFallback(cards.TypeNames(records))
	}
	return deck.Deck{Name: name, Cards: records, Theme: th}
}

// Generate renders d in the requested format.
func (g *Generator) Generate(d deck.Deck, f Format) ([]byte, render.Stats, error) {
	a := &render.Assembler{
		Cards:      g.cfg.CardGeometry(),
		Tokens:     g.cfg.TokenGeometry(),
		Encoder:    imagepkg.NewQREncoder(g.cfg.QR.ModulePixels, g.cfg.QR.Border),
		TokenImage: g.token,
		Logger:     g.log,
	}

	var s render.Surface
	switch f {
	case FormatPNG:
		s = preview.New(preview.DefaultPixelsPerMM)
	default:
		title := d.Name
		if title == "" {
			title = g.cfg.Output.Title
		}
		s = pdf.New(pdf.Options{Title: title, Creator: "cardsheet"})
	}

	out, stats, err := a.Assemble(s, d)
	if err != nil {
		g.log.Warn("Sheet generation failed", zap.String("kind", errs.KindOf(err).String()), zap.Error(err))
		return nil, render.Stats{}, err
	}
	g.log.Info("Sheet generated",
		zap.String("format", string(f)),
		zap.Int("cards", stats.Cards),
		zap.Int("pages", stats.PhysicalPages),
		zap.Int("bytes", len(out)))
	return out, stats, nil
}

// Config returns a copy of the configuration in use.
func (g *Generator) Config() config.Config { return g.cfg }
