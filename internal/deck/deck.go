package deck

import (
	"errors"

	"github.com/youruser/cardsheet/internal/cards"
	"github.com/youruser/cardsheet/internal/errs"
	"github.com/youruser/cardsheet/internal/theme"
)

// Deck is everything one run prints: the ordered records and the palette
// used to paint them.
type Deck struct {
	Name  string       `json:"name"`
	Cards []cards.Card `json:"cards"`
	Theme theme.Theme  `json:"colors"`
}

// Check verifies the deck as a whole before anything is drawn: every record
// has its required fields, the back entry exists, and every type resolves.
func (d Deck) Check() error {
	if err := cards.Validate(d.Cards); err != nil {
		return err
	}
	if _, err := d.Theme.Back(); err != nil {
		return err
	}
	for i, c := range d.Cards {
		if _, ok := d.Theme.Resolve(c.Type); !ok {
			return errs.Input(i, "type", c.Type, errors.New("no colors configured for this card type"))
		}
	}
	return nil
}
