package render

import "github.com/youruser/cardsheet/internal/layout"

// TokenImageName is the embedding key of the shared token image.
const TokenImageName = "token"

// DrawTokens tiles img over every cell of the token grid on the current page.
// It returns the number of tokens placed.
func DrawTokens(s Surface, g layout.Geometry, c layout.Capacity, img []byte) (int, error) {
	n := 0
	for _, cell := range layout.TokenCells(c) {
		x, y := g.CellOrigin(cell)
		if err := s.DrawImage(Image{Name: TokenImageName, Data: img}, x, y, g.CardSize, g.CardSize); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
