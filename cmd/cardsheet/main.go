package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/youruser/cardsheet/internal/config"
	"github.com/youruser/cardsheet/internal/errs"
	"github.com/youruser/cardsheet/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dataDir    string
	csvName    string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cardsheet",
	Short: "Print-ready duplex card sheets from a CSV deck",
	Long: `cardsheet lays out square cards on printable sheets.

Every sheet is a front page followed by its back page. Back cells are mirrored
left-to-right so that a long-edge duplex print lines each QR code up with its
card. Two pages of cut-out tokens close the document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.LoadDotEnv(".env"); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Logging.Development)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "cardsheet.yaml", "Config file (defaults apply when missing)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Directory holding the deck CSV (default from config)")
	rootCmd.PersistentFlags().StringVar(&csvName, "csv", "", "CSV file inside the data directory (default: the only one)")

	generateCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output PDF (default from config)")
	generateCmd.Flags().StringSliceVarP(&onlyTypes, "type", "t", nil, "Only print cards of these types")
	generateCmd.Flags().StringVar(&deckName, "name", "", "Document title")

	previewCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output zip of page PNGs (default next to the PDF)")
	previewCmd.Flags().StringSliceVarP(&onlyTypes, "type", "t", nil, "Only print cards of these types")

	manifestCmd.Flags().StringSliceVarP(&onlyTypes, "type", "t", nil, "Only list cards of these types")

	configInitCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode gives each error kind its own status so scripts can tell a bad
// config from a bad deck.
func exitCode(err error) int {
	var e *errs.Error
	if !errors.As(err, &e) {
		return 1
	}
	switch e.Kind {
	case errs.KindConfig:
		return 2
	case errs.KindInput:
		return 3
	case errs.KindRender:
		return 4
	}
	return 1
}
