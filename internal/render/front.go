package render

import (
	"strings"

	"github.com/youruser/cardsheet/internal/cards"
	"github.com/youruser/cardsheet/internal/theme"
)

// Front face text metrics, in points and millimetres.
const (
	CenterFontSize = 48
	TopFontSize    = 14
	BottomFontSize = 14
	TopInset       = 6
	BottomInset    = 14
	TextPadding    = 2
)

// DrawFront paints one card's front into the square cell at (x, y).
func DrawFront(s Surface, card cards.Card, colors theme.Colors, x, y, size float64) error {
	if err := s.FillRect(x, y, size, size, colors.Background); err != nil {
		return err
	}
	s.SetTextColor(colors.Foreground)

	if card.HasCenter() {
		h := CenterFontSize * MMPerPoint
		err := s.DrawText(TextBlock{
			Text:  strings.TrimSpace(card.Center),
			Size:  CenterFontSize,
			Style: FontStyle{Bold: true},
			X:     x,
			Y:     y + size/2 - h/2,
			Width: size,
			Align: AlignCenter,
		})
		if err != nil {
			return err
		}
	}

	err := s.DrawText(TextBlock{
		Text:  card.Top,
		Size:  TopFontSize,
		Style: FontStyle{Bold: true},
		X:     x + TextPadding,
		Y:     y + TopInset,
		Width: size - 2*TextPadding,
		Align: AlignCenter,
		Wrap:  true,
	})
	if err != nil {
		return err
	}

	if !card.HasBottom() {
		return nil
	}
	return s.DrawText(TextBlock{
		Text:  card.Bottom,
		Size:  BottomFontSize,
		Style: FontStyle{Italic: true},
		X:     x + TextPadding,
		Y:     y + size - BottomInset,
		Width: size - 2*TextPadding,
		Align: AlignCenter,
		Wrap:  true,
	})
}
