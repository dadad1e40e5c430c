package cards

import "strings"

// Card is one record of the deck. Its position in the input slice is its
// identity: it decides the grid slot on both sides of the sheet.
type Card struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Top    string `json:"top"`
	Center string `json:"center,omitempty"`
	Bottom string `json:"bottom"`
}

// HasCenter reports whether the center glyph should be drawn.
func (c Card) HasCenter() bool { return strings.TrimSpace(c.Center) != "" }

// HasBottom reports whether the bottom text block should be drawn.
func (c Card) HasBottom() bool { return strings.TrimSpace(c.Bottom) != "" }
