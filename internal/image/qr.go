package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/youruser/cardsheet/internal/theme"
)

// QREncoder renders card-back QR codes. The symbol version is chosen
// automatically from the payload length; payloads beyond the largest version
// fail.
type QREncoder struct {
	Level qrcode.RecoveryLevel
	// ModulePixels is the edge length of one QR module in the output PNG.
	ModulePixels int
	// Border keeps the standard quiet zone around the symbol.
	Border bool
}

// NewQREncoder returns an encoder using low error correction.
func NewQREncoder(modulePixels int, border bool) *QREncoder {
	if modulePixels <= 0 {
		modulePixels = 10
	}
	return &QREncoder{Level: qrcode.Low, ModulePixels: modulePixels, Border: border}
}

// Encode returns a PNG of payload drawn in fg on a transparent background.
func (e *QREncoder) Encode(payload string, fg theme.RGB) ([]byte, error) {
	img, err := e.Image(payload, fg)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding qr png: %w", err)
	}
	return buf.Bytes(), nil
}

// Image returns the QR symbol as an NRGBA image.
func (e *QREncoder) Image(payload string, fg theme.RGB) (*image.NRGBA, error) {
	q, err := qrcode.New(payload, e.Level)
	if err != nil {
		return nil, err
	}
	q.ForegroundColor = fg.NRGBA()
	q.BackgroundColor = color.Transparent
	q.DisableBorder = !e.Border
	// A negative size asks for a fixed number of pixels per module.
	return imaging.Clone(q.Image(-e.ModulePixels)), nil
}

// GenerateQRPNG returns PNG bytes of a black on white QR code for the given
// text, size pixels wide.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	pngBytes, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	// validate png decode
	_, err = png.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		return nil, err
	}
	return pngBytes, nil
}
