// Package fonts holds the Go font family shared by the PDF and PNG surfaces
// and checks that card text can be drawn with it.
package fonts

import (
	"fmt"
	"sync"
	"unicode"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/unicode/norm"
)

// Family is the name the fonts are registered under.
const Family = "Go"

type parsed struct {
	once sync.Once
	font *sfnt.Font
	err  error
}

var cache [4]parsed

func index(bold, italic bool) int {
	i := 0
	if bold {
		i |= 1
	}
	if italic {
		i |= 2
	}
	return i
}

// TTF returns the TrueType data for a style.
func TTF(bold, italic bool) []byte {
	switch {
	case bold && italic:
		return gobolditalic.TTF
	case bold:
		return gobold.TTF
	case italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}

// Parse returns the parsed font for a style. Results are cached; the font
// is safe for concurrent use.
func Parse(bold, italic bool) (*sfnt.Font, error) {
	p := &cache[index(bold, italic)]
	p.once.Do(func() {
		p.font, p.err = sfnt.Parse(TTF(bold, italic))
		if p.err != nil {
			p.err = fmt.Errorf("parsing font: %w", p.err)
		}
	})
	return p.font, p.err
}

// Normalize composes text to NFC so a letter typed as base plus combining
// mark maps onto its precomposed glyph.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// Check returns an error naming the first rune of text the style has no
// glyph for. Whitespace is not checked.
func Check(text string, bold, italic bool) error {
	f, err := Parse(bold, italic)
	if err != nil {
		return err
	}
	var buf sfnt.Buffer
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		gi, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return fmt.Errorf("looking up glyph for %q: %w", r, err)
		}
		if gi == 0 {
			return fmt.Errorf("font %s has no glyph for %q (U+%04X)", Family, r, r)
		}
	}
	return nil
}
