// Package render draws card faces and token sheets onto a drawing surface and
// assembles them into a duplex-ready document.
//
// The package never touches files or PDF internals: a Surface and an Encoder
// are supplied by the caller (see internal/pdf, internal/preview and
// internal/image).
package render

import "github.com/youruser/cardsheet/internal/theme"

// Align is the horizontal alignment of a text block.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// FontStyle selects the font variant.
type FontStyle struct {
	Bold   bool
	Italic bool
}

// TextBlock is a run of text anchored at (X, Y), the top-left corner of its
// box. Size is in points, every other length in millimetres. With Wrap set the
// text breaks on words to fit Width; otherwise it is a single line aligned
// within Width.
type TextBlock struct {
	Text  string
	Size  float64
	Style FontStyle
	X, Y  float64
	Width float64
	Align Align
	Wrap  bool
}

// Image is an encoded PNG. Name identifies it so a surface can embed a
// repeated image once.
type Image struct {
	Name string
	Data []byte
}

// Surface is the page-oriented drawing target. Implementations are not safe
// for concurrent use.
type Surface interface {
	BeginPage(width, height float64) error
	FillRect(x, y, w, h float64, c theme.RGB) error
	SetTextColor(c theme.RGB)
	DrawText(t TextBlock) error
	DrawImage(img Image, x, y, w, h float64) error
	// Finalize closes the document and returns its bytes. The surface must not
	// be used afterwards.
	Finalize() ([]byte, error)
}

// Encoder turns a payload into a QR symbol PNG with a transparent background.
type Encoder interface {
	Encode(payload string, fg theme.RGB) ([]byte, error)
}

// MMPerPoint converts font sizes to the sheet unit.
const MMPerPoint = 25.4 / 72
