package species

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("species not found")
	ErrMissingSprite = errors.New("species has no sprite")
)

// Species is the subset of external species data the bot renders. Name is
// the raw lowercase, hyphen-joined identifier (e.g. "nidoran-f").
type Species struct {
	ID          int
	Name        string
	Sprite      string
	ShinySprite string
}

// SpriteFor picks the sprite matching the shiny flag.
func (s Species) SpriteFor(shiny bool) (string, error) {
	sprite := s.Sprite
	if shiny {
		sprite = s.ShinySprite
	}
	if sprite == "" {
		return "", ErrMissingSprite
	}
	return sprite, nil
}

// Source resolves species data by numeric id.
type Source interface {
	Get(ctx context.Context, id int) (Species, error)
}
