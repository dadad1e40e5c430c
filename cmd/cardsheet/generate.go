package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/youruser/cardsheet/internal/cards"
	"github.com/youruser/cardsheet/internal/deck"
	"github.com/youruser/cardsheet/internal/generator"
	"github.com/youruser/cardsheet/internal/util"
)

var (
	outPath   string
	onlyTypes []string
	deckName  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the deck to a duplex PDF",
	Example: `  cardsheet generate
  cardsheet generate --data decks --csv party.csv --out party.pdf
  cardsheet generate --type song --type video`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd, generator.FormatPDF)
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render every page to PNG and zip them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd, generator.FormatPNG)
	},
}

// loadDeck reads the CSV and builds the deck the generator will print.
func loadDeck() (*generator.Generator, deck.Deck, error) {
	dir := dataDir
	if dir == "" {
		dir = cfg.Output.DataDir
	}
	records, path, err := cards.LoadCardsFromDataDir(dir, csvName)
	if err != nil {
		return nil, deck.Deck{}, err
	}
	logger.Debug("Loaded deck", zap.String("path", path), zap.Int("records", len(records)))
	if len(onlyTypes) > 0 {
		records = cards.Filter(records, cards.FilterOptions{Types: onlyTypes})
		logger.Debug("Filtered deck", zap.Strings("types", onlyTypes), zap.Int("records", len(records)))
	}

	gen, err := generator.New(cfg, logger)
	if err != nil {
		return nil, deck.Deck{}, err
	}
	return gen, gen.Deck(deckName, records, nil), nil
}

func runRender(cmd *cobra.Command, f generator.Format) error {
	gen, d, err := loadDeck()
	if err != nil {
		return err
	}
	out, stats, err := gen.Generate(d, f)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = cfg.Output.Path
		if f != generator.FormatPDF {
			path = strings.TrimSuffix(path, filepath.Ext(path)) + f.Extension()
		}
	}
	if err := util.WriteFileAtomic(path, out); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d cards on %d pages\n", path, stats.Cards, stats.PhysicalPages)
	return nil
}
