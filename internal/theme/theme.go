// Package theme maps card categories to colours.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/youruser/cardsheet/internal/errs"
)

// BackKey is the reserved category used for every card back.
const BackKey = "back"

// RGB is an 8-bit colour. It marshals as "#rrggbb".
type RGB struct {
	R, G, B uint8
}

// ParseHex accepts "#rrggbb" or "rrggbb".
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c RGB) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

func (c RGB) String() string { return c.Hex() }

// NRGBA returns the opaque image/color value.
func (c RGB) NRGBA() color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff} }

func (c RGB) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

func (c *RGB) UnmarshalText(b []byte) error {
	v, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Colors is the pair used to paint one category.
type Colors struct {
	Background RGB `yaml:"background" json:"background"`
	Foreground RGB `yaml:"foreground" json:"foreground"`
}

// Theme maps a category key to its colours.
type Theme map[string]Colors

// Fallback is offered for categories without a known default.
var Fallback = Colors{Background: MustHex("#cccccc"), Foreground: MustHex("#000000")}

// Default returns the stock palette, including the back.
func Default() Theme {
	return Theme{
		BackKey:    {Background: RGB{172, 200, 229}, Foreground: RGB{17, 42, 70}},
		"song":     {Background: RGB{140, 190, 178}, Foreground: RGB{25, 38, 35}},
		"video":    {Background: RGB{243, 181, 98}, Foreground: RGB{51, 35, 14}},
		"article":  {Background: RGB{240, 96, 96}, Foreground: RGB{50, 14, 14}},
		"painting": {Background: RGB{242, 235, 191}, Foreground: RGB{51, 49, 38}},
	}
}

// Resolve looks up a category.
func (t Theme) Resolve(key string) (Colors, bool) {
	c, ok := t[key]
	return c, ok
}

// Back returns the reserved back entry.
func (t Theme) Back() (Colors, error) {
	c, ok := t[BackKey]
	if !ok {
		return Colors{}, errs.Input(errs.NoRecord, "colors", BackKey, errors.New("theme has no entry for the reserved back key"))
	}
	return c, nil
}

// Merge returns a copy of t with the entries of o laid over it.
func (t Theme) Merge(o Theme) Theme {
	out := make(Theme, len(t)+len(o))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range o {
		out[k] = v
	}
	return out
}

// ColorsPatch is a partial Colors. Nil fields keep the colour underneath.
type ColorsPatch struct {
	Background *RGB `yaml:"background" json:"background"`
	Foreground *RGB `yaml:"foreground" json:"foreground"`
}

// Patch holds per-category partial colours, as read from config files and
// API requests.
type Patch map[string]ColorsPatch

// Apply returns a copy of t with p laid over it field by field. A category
// new to t starts from Fallback.
func (t Theme) Apply(p Patch) Theme {
	out := t.Merge(nil)
	for k, cp := range p {
		c, ok := out[k]
		if !ok {
			c = Fallback
		}
		if cp.Background != nil {
			c.Background = *cp.Background
		}
		if cp.Foreground != nil {
			c.Foreground = *cp.Foreground
		}
		out[k] = c
	}
	return out
}

// WithFallback returns a copy of t where every listed type missing from t
// gets Fallback.
func (t Theme) WithFallback(types []string) Theme {
	out := t.Merge(nil)
	for _, k := range types {
		if _, ok := out[k]; !ok {
			out[k] = Fallback
		}
	}
	return out
}

// Keys returns the category keys in sorted order.
func (t Theme) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
