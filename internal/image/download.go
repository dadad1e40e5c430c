package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/youruser/cardsheet/internal/theme"
	"github.com/youruser/cardsheet/internal/util"
)

// DownloadImage downloads an image from URL and returns image.Image (decoded).
func DownloadImage(url string) (image.Image, error) {
	body, err := util.GetBytes(url)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	return img, nil
}

// LoadImage reads an image from an http(s) URL or a file path.
func LoadImage(ref string) (image.Image, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return DownloadImage(ref)
	}
	img, err := imaging.Open(ref, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", ref, err)
	}
	return img, nil
}

// LoadToken returns the token PNG for ref, or the default disc when ref is
// empty.
func LoadToken(ref string, fallback theme.Colors) ([]byte, error) {
	if ref == "" {
		return TokenPNG(DefaultToken(MaxTokenPixels, fallback))
	}
	img, err := LoadImage(ref)
	if err != nil {
		return nil, err
	}
	return TokenPNG(img)
}
