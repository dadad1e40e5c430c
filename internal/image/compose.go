package imagepkg

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardsheet/internal/theme"
)

// MaxTokenPixels bounds the embedded token image.
const MaxTokenPixels = 512

// DefaultToken draws a plain disc token: fill colour with a darker ring.
func DefaultToken(size int, colors theme.Colors) image.Image {
	canvas := imaging.New(size, size, color.NRGBA{})
	fill := colors.Background.NRGBA()
	ring := colors.Foreground.NRGBA()

	r := float64(size) / 2
	ringWidth := r * 0.08
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
			d2 := dx*dx + dy*dy
			switch {
			case d2 > r*r:
			case d2 > (r-ringWidth)*(r-ringWidth):
				canvas.SetNRGBA(x, y, ring)
			default:
				canvas.SetNRGBA(x, y, fill)
			}
		}
	}
	return canvas
}

// TokenPNG squares img (centre crop), scales it down to MaxTokenPixels and
// encodes it as PNG.
func TokenPNG(img image.Image) ([]byte, error) {
	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	out := imaging.CropCenter(img, side, side)
	if side > MaxTokenPixels {
		out = imaging.Resize(out, MaxTokenPixels, MaxTokenPixels, imaging.Lanczos)
	}
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, out, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
