// Package config loads the sheet configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/youruser/cardsheet/internal/layout"
	"github.com/youruser/cardsheet/internal/theme"
)

// Config holds every knob of a run. Values are copied into components; nothing
// reads the Config after startup.
type Config struct {
	Paper   PaperConfig   `yaml:"paper"`
	Cards   GridConfig    `yaml:"cards"`
	Tokens  TokenConfig   `yaml:"tokens"`
	Colors  theme.Theme   `yaml:"colors"`
	QR      QRConfig      `yaml:"qr"`
	Output  OutputConfig  `yaml:"output"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// PaperConfig is the trimmed page and its bleed, in millimetres.
type PaperConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Bleed  float64 `yaml:"bleed"`
}

// GridConfig sizes one grid of square cells.
type GridConfig struct {
	Size   float64 `yaml:"size"`
	Gap    float64 `yaml:"gap"`
	Margin float64 `yaml:"margin"`
}

// TokenConfig is the token grid plus its image (file path or URL; empty for
// the built-in disc).
type TokenConfig struct {
	GridConfig `yaml:",inline"`
	Image      string `yaml:"image"`
}

type QRConfig struct {
	ModulePixels int  `yaml:"module_pixels"`
	Border       bool `yaml:"border"`
}

type OutputConfig struct {
	Path     string `yaml:"path"`
	DataDir  string `yaml:"data_dir"`
	Title    string `yaml:"title"`
	Fallback bool   `yaml:"fallback_colors"` // give unknown types the grey fallback instead of failing
}

type ServerConfig struct {
	Port          string `yaml:"port"`
	MaxConcurrent int64  `yaml:"max_concurrent"`
	MaxUploadMB   int64  `yaml:"max_upload_mb"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// Default returns the A4 configuration the generator ships with.
func Default() *Config {
	return &Config{
		Paper:  PaperConfig{Width: 210, Height: 297, Bleed: 3},
		Cards:  GridConfig{Size: 66, Gap: 3, Margin: 3},
		Tokens: TokenConfig{GridConfig: GridConfig{Size: 28, Gap: 6, Margin: 6}},
		Colors: theme.Default(),
		QR:     QRConfig{ModulePixels: 10, Border: true},
		Output: OutputConfig{Path: filepath.Join("outputs", "output.pdf"), DataDir: "data", Title: "Cards"},
		Server: ServerConfig{Port: "8080", MaxConcurrent: 2, MaxUploadMB: 8},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// CardGeometry is the card grid on the configured paper.
func (c *Config) CardGeometry() layout.Geometry {
	return c.geometry(c.Cards)
}

// TokenGeometry is the token grid on the configured paper.
func (c *Config) TokenGeometry() layout.Geometry {
	return c.geometry(c.Tokens.GridConfig)
}

func (c *Config) geometry(g GridConfig) layout.Geometry {
	return layout.Geometry{
		PageWidth:  c.Paper.Width,
		PageHeight: c.Paper.Height,
		Bleed:      c.Paper.Bleed,
		CardSize:   g.Size,
		Gap:        g.Gap,
		Margin:     g.Margin,
	}
}

// Validate checks both grids. It returns the first *errs.Error found.
func (c *Config) Validate() error {
	if _, err := layout.Plan(c.CardGeometry()); err != nil {
		return err
	}
	if _, err := layout.PlanTokens(c.TokenGeometry()); err != nil {
		return err
	}
	return nil
}

// Load reads a YAML config over the defaults. A missing file yields the
// defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			colors := cfg.Colors
			cfg.Colors = nil
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
			// Listed colours extend the default palette field by field.
			var file struct {
				Colors theme.Patch `yaml:"colors"`
			}
			if err := yaml.Unmarshal(data, &file); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
			cfg.Colors = colors.Apply(file.Colors)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// LoadDotEnv loads path into the process environment when it exists.
// Values already set in the environment win.
func LoadDotEnv(path string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return true, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("CARDSHEET_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("CARDSHEET_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CARDSHEET_TOKEN_IMAGE"); v != "" {
		c.Tokens.Image = v
	}
	if v := os.Getenv("CARDSHEET_DATA_DIR"); v != "" {
		c.Output.DataDir = v
	}
	if v := os.Getenv("CARDSHEET_OUTPUT"); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv("CARDSHEET_MAX_CONCURRENT"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid CARDSHEET_MAX_CONCURRENT %q", v)
		}
		c.Server.MaxConcurrent = n
	}
	return nil
}
