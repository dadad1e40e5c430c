package render

import (
	"fmt"

	"github.com/youruser/cardsheet/internal/theme"
)

// QRInset is the gap between the cell edge and the QR symbol.
const QRInset = 1

// DrawBack paints one card's back: the back colour and a QR code of url.
// name must be unique per card within the document.
func DrawBack(s Surface, enc Encoder, name, url string, colors theme.Colors, x, y, size float64) error {
	if err := s.FillRect(x, y, size, size, colors.Background); err != nil {
		return err
	}
	png, err := enc.Encode(url, colors.Foreground)
	if err != nil {
		return fmt.Errorf("encoding qr for %q: %w", url, err)
	}
	return s.DrawImage(Image{Name: name, Data: png}, x+QRInset, y+QRInset, size-QRInset, size-QRInset)
}
