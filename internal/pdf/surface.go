// Package pdf implements render.Surface on top of go-pdf/fpdf.
package pdf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/youruser/cardsheet/internal/fonts"
	"github.com/youruser/cardsheet/internal/render"
	"github.com/youruser/cardsheet/internal/theme"
)

// Surface writes pages into an in-memory PDF document. Units are millimetres.
type Surface struct {
	doc    *fpdf.Fpdf
	images map[string]bool
	done   bool
}

// Options configure document metadata.
type Options struct {
	Title   string
	Creator string
}

// New returns an empty document. Pages are sized by BeginPage.
func New(opts Options) *Surface {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 210, Ht: 297},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCellMargin(0)
	for _, st := range []render.FontStyle{{}, {Bold: true}, {Italic: true}, {Bold: true, Italic: true}} {
		doc.AddUTF8FontFromBytes(fonts.Family, fontStyle(st), fonts.TTF(st.Bold, st.Italic))
	}
	doc.SetFont(fonts.Family, "", 12)
	if opts.Title != "" {
		doc.SetTitle(opts.Title, true)
	}
	if opts.Creator != "" {
		doc.SetCreator(opts.Creator, true)
	}
	return &Surface{
		doc:    doc,
		images: map[string]bool{},
	}
}

var _ render.Surface = (*Surface)(nil)

var errFinalized = errors.New("pdf surface already finalized")

func (s *Surface) BeginPage(width, height float64) error {
	if s.done {
		return errFinalized
	}
	s.doc.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height})
	return s.doc.Error()
}

func (s *Surface) FillRect(x, y, w, h float64, c theme.RGB) error {
	s.doc.SetFillColor(int(c.R), int(c.G), int(c.B))
	s.doc.Rect(x, y, w, h, "F")
	return s.doc.Error()
}

func (s *Surface) SetTextColor(c theme.RGB) {
	s.doc.SetTextColor(int(c.R), int(c.G), int(c.B))
}

func (s *Surface) DrawText(t render.TextBlock) error {
	text := fonts.Normalize(t.Text)
	if err := fonts.Check(text, t.Style.Bold, t.Style.Italic); err != nil {
		return err
	}
	s.doc.SetFont(fonts.Family, fontStyle(t.Style), t.Size)
	_, lineHeight := s.doc.GetFontSize()

	s.doc.SetXY(t.X, t.Y)
	if t.Wrap {
		s.doc.MultiCell(t.Width, lineHeight, text, "", alignStr(t.Align), false)
	} else {
		s.doc.CellFormat(t.Width, lineHeight, text, "", 0, alignStr(t.Align), false, 0, "")
	}
	return s.doc.Error()
}

// DrawImage embeds img once per name and places it at (x, y).
func (s *Surface) DrawImage(img render.Image, x, y, w, h float64) error {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	if !s.images[img.Name] {
		s.doc.RegisterImageOptionsReader(img.Name, opts, bytes.NewReader(img.Data))
		if err := s.doc.Error(); err != nil {
			return fmt.Errorf("embedding image %s: %w", img.Name, err)
		}
		s.images[img.Name] = true
	}
	s.doc.ImageOptions(img.Name, x, y, w, h, false, opts, 0, "")
	return s.doc.Error()
}

// Finalize serialises the document.
func (s *Surface) Finalize() ([]byte, error) {
	if s.done {
		return nil, errFinalized
	}
	s.done = true
	var buf bytes.Buffer
	if err := s.doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PageCount is the number of pages begun so far.
func (s *Surface) PageCount() int { return s.doc.PageCount() }

func fontStyle(st render.FontStyle) string {
	out := ""
	if st.Bold {
		out += "B"
	}
	if st.Italic {
		out += "I"
	}
	return out
}

func alignStr(a render.Align) string {
	switch a {
	case render.AlignLeft:
		return "L"
	case render.AlignRight:
		return "R"
	default:
		return "C"
	}
}
