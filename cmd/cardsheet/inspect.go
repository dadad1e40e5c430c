package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/youruser/cardsheet/internal/cards"
	"github.com/youruser/cardsheet/internal/config"
	"github.com/youruser/cardsheet/internal/deck"
	"github.com/youruser/cardsheet/internal/theme"
)

var force bool

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the card types in the deck and their colours",
	Args:  cobra.NoArgs,
	RunE:  runTypes,
}

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print which card lands in which cell of which page",
	Args:  cobra.NoArgs,
	RunE:  runManifest,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func runTypes(cmd *cobra.Command, args []string) error {
	dir := dataDir
	if dir == "" {
		dir = cfg.Output.DataDir
	}
	records, _, err := cards.LoadCardsFromDataDir(dir, csvName)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, tc := range cards.UniqueTypes(records) {
		colors, ok := cfg.Colors.Resolve(tc.Type)
		switch {
		case ok:
			fmt.Fprintf(w, "%-12s %4d  %s on %s\n", tc.Type, tc.Count, colors.Foreground, colors.Background)
		case cfg.Output.Fallback:
			fmt.Fprintf(w, "%-12s %4d  %s on %s (fallback)\n", tc.Type, tc.Count, theme.Fallback.Foreground, theme.Fallback.Background)
		default:
			fmt.Fprintf(w, "%-12s %4d  no colours configured\n", tc.Type, tc.Count)
		}
	}
	fmt.Fprintf(w, "%d cards\n", len(records))
	return nil
}

func runManifest(cmd *cobra.Command, args []string) error {
	_, d, err := loadDeck()
	if err != nil {
		return err
	}
	if err := d.Check(); err != nil {
		return err
	}
	m, err := deck.ExportManifest(d, cfg.CardGeometry())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), m)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Default().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
