// Package preview rasterises sheets to PNG so a layout can be checked
// without a PDF viewer. Each physical page becomes one PNG; Finalize zips them.
package preview

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/youruser/cardsheet/internal/fonts"
	"github.com/youruser/cardsheet/internal/render"
	"github.com/youruser/cardsheet/internal/theme"
)

// DefaultPixelsPerMM is roughly 150 dpi.
const DefaultPixelsPerMM = 6

type faceKey struct {
	style render.FontStyle
	px    float64
}

// Surface draws into one gg.Context per page.
type Surface struct {
	ppm    float64
	pages  []*gg.Context
	dc     *gg.Context
	fg     color.Color
	faces  map[faceKey]font.Face
	images map[string]image.Image
	done   bool
}

// New returns a preview surface rendering at ppm pixels per millimetre.
func New(ppm float64) *Surface {
	if ppm <= 0 {
		ppm = DefaultPixelsPerMM
	}
	return &Surface{
		ppm:    ppm,
		fg:     color.Black,
		faces:  map[faceKey]font.Face{},
		images: map[string]image.Image{},
	}
}

var _ render.Surface = (*Surface)(nil)

var errNoPage = errors.New("preview: draw before BeginPage")

func (s *Surface) px(mm float64) float64 { return mm * s.ppm }

func (s *Surface) BeginPage(width, height float64) error {
	if s.done {
		return errors.New("preview: surface already finalized")
	}
	dc := gg.NewContext(int(s.px(width)+0.5), int(s.px(height)+0.5))
	dc.SetColor(color.White)
	dc.Clear()
	s.pages = append(s.pages, dc)
	s.dc = dc
	return nil
}

func (s *Surface) FillRect(x, y, w, h float64, c theme.RGB) error {
	if s.dc == nil {
		return errNoPage
	}
	s.dc.SetColor(c.NRGBA())
	s.dc.DrawRectangle(s.px(x), s.px(y), s.px(w), s.px(h))
	s.dc.Fill()
	return nil
}

func (s *Surface) SetTextColor(c theme.RGB) { s.fg = c.NRGBA() }

func (s *Surface) DrawText(t render.TextBlock) error {
	if s.dc == nil {
		return errNoPage
	}
	text := fonts.Normalize(t.Text)
	if err := fonts.Check(text, t.Style.Bold, t.Style.Italic); err != nil {
		return err
	}
	face, err := s.face(t.Style, s.px(t.Size*render.MMPerPoint))
	if err != nil {
		return err
	}
	s.dc.SetFontFace(face)
	s.dc.SetColor(s.fg)

	x, y, w := s.px(t.X), s.px(t.Y), s.px(t.Width)
	if t.Wrap {
		s.dc.DrawStringWrapped(text, x, y, 0, 0, w, 1, ggAlign(t.Align))
		return nil
	}
	switch t.Align {
	case render.AlignLeft:
		s.dc.DrawStringAnchored(text, x, y, 0, 1)
	case render.AlignRight:
		s.dc.DrawStringAnchored(text, x+w, y, 1, 1)
	default:
		s.dc.DrawStringAnchored(text, x+w/2, y, 0.5, 1)
	}
	return nil
}

func (s *Surface) DrawImage(img render.Image, x, y, w, h float64) error {
	if s.dc == nil {
		return errNoPage
	}
	src, ok := s.images[img.Name]
	if !ok {
		decoded, err := imaging.Decode(bytes.NewReader(img.Data))
		if err != nil {
			return fmt.Errorf("decoding image %s: %w", img.Name, err)
		}
		s.images[img.Name] = decoded
		src = decoded
	}
	pw, ph := int(s.px(w)+0.5), int(s.px(h)+0.5)
	if pw <= 0 || ph <= 0 {
		return nil
	}
	scaled := imaging.Resize(src, pw, ph, imaging.NearestNeighbor)
	s.dc.DrawImage(scaled, int(s.px(x)+0.5), int(s.px(y)+0.5))
	return nil
}

// Pages returns the rendered pages so far.
func (s *Surface) Pages() []image.Image {
	out := make([]image.Image, len(s.pages))
	for i, dc := range s.pages {
		out[i] = dc.Image()
	}
	return out
}

// Finalize returns a zip archive holding page-001.png, page-002.png, ...
func (s *Surface) Finalize() ([]byte, error) {
	if s.done {
		return nil, errors.New("preview: surface already finalized")
	}
	s.done = true

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, dc := range s.pages {
		w, err := zw.Create(fmt.Sprintf("page-%03d.png", i+1))
		if err != nil {
			return nil, err
		}
		if err := dc.EncodePNG(w); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Surface) face(style render.FontStyle, px float64) (font.Face, error) {
	key := faceKey{style: style, px: px}
	if f, ok := s.faces[key]; ok {
		return f, nil
	}
	otf, err := fonts.Parse(style.Bold, style.Italic)
	if err != nil {
		return nil, err
	}
	f, err := opentype.NewFace(otf, &opentype.FaceOptions{Size: px, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	s.faces[key] = f
	return f, nil
}

func ggAlign(a render.Align) gg.Align {
	switch a {
	case render.AlignLeft:
		return gg.AlignLeft
	case render.AlignRight:
		return gg.AlignRight
	default:
		return gg.AlignCenter
	}
}
