package imagepkg

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/cardsheet/internal/theme"
)

func TestQREncoderTransparentBackground(t *testing.T) {
	fg := theme.RGB{R: 17, G: 42, B: 70}
	enc := NewQREncoder(4, true)
	data, err := enc.Encode("https://open.spotify.com/track/abc", fg)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, b.Dx(), b.Dy())
	assert.Zero(t, b.Dx()%4, "whole modules only")

	// Quiet zone corner is transparent.
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a)

	// Somewhere a module is painted in the foreground colour.
	nrgba := imaging.Clone(img)
	found := false
	for i := 0; i < len(nrgba.Pix) && !found; i += 4 {
		found = nrgba.Pix[i+3] == 0xff && nrgba.Pix[i] == fg.R && nrgba.Pix[i+1] == fg.G && nrgba.Pix[i+2] == fg.B
	}
	assert.True(t, found)
}

func TestQREncoderBorder(t *testing.T) {
	with, err := NewQREncoder(1, true).Image("x", theme.RGB{})
	require.NoError(t, err)
	without, err := NewQREncoder(1, false).Image("x", theme.RGB{})
	require.NoError(t, err)
	// Version 1 is 21 modules, plus a 4-module quiet zone on each side.
	assert.Equal(t, 21, without.Bounds().Dx())
	assert.Equal(t, 29, with.Bounds().Dx())
}

func TestQREncoderTooLong(t *testing.T) {
	_, err := NewQREncoder(1, true).Encode(strings.Repeat("x", 8000), theme.RGB{})
	assert.Error(t, err)
}

func TestGenerateQRPNG(t *testing.T) {
	b, err := GenerateQRPNG("deck:example", 200)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestTokenPNGSquaresAndShrinks(t *testing.T) {
	src := imaging.New(1200, 800, theme.MustHex("#ff0000").NRGBA())
	data, err := TokenPNG(src)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, MaxTokenPixels, cfg.Width)
	assert.Equal(t, MaxTokenPixels, cfg.Height)
}

func TestDefaultToken(t *testing.T) {
	colors := theme.Default()[theme.BackKey]
	img := DefaultToken(100, colors).(*image.NRGBA)
	assert.Equal(t, colors.Background.NRGBA(), img.NRGBAAt(50, 50))
	assert.Zero(t, img.NRGBAAt(0, 0).A)
	assert.Equal(t, colors.Foreground.NRGBA(), img.NRGBAAt(50, 1))
}

func TestLoadTokenSources(t *testing.T) {
	def, err := LoadToken("", theme.Default()[theme.BackKey])
	require.NoError(t, err)
	assert.NotEmpty(t, def)

	path := filepath.Join(t.TempDir(), "token.png")
	require.NoError(t, imaging.Save(imaging.New(64, 64, theme.RGB{R: 1}.NRGBA()), path))
	fromFile, err := LoadToken(path, theme.Colors{})
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(fromFile))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token.png" {
			http.NotFound(w, r)
			return
		}
		_ = imaging.Encode(w, imaging.New(32, 48, theme.RGB{G: 9}.NRGBA()), imaging.PNG)
	}))
	defer srv.Close()

	fromURL, err := LoadToken(srv.URL+"/token.png", theme.Colors{})
	require.NoError(t, err)
	cfg, err = png.DecodeConfig(bytes.NewReader(fromURL))
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 32, cfg.Height)

	_, err = LoadToken(srv.URL+"/missing.png", theme.Colors{})
	assert.ErrorContains(t, err, "404")
}
