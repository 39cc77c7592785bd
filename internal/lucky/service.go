package lucky

import (
	"context"
	"fmt"
	"time"

	"github.com/faideww/luckymon/internal/clock"
)

// Service hands out one assignment per user per calendar day.
type Service struct {
	store  Store
	drawer Drawer
	clk    clock.Clock
	loc    *time.Location
}

// NewService wires a Service. A nil clk uses the wall clock and a nil loc
// computes days in UTC.
func NewService(store Store, drawer Drawer, clk clock.Clock, loc *time.Location) *Service {
	if clk == nil {
		clk = clock.Real{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, drawer: drawer, clk: clk, loc: loc}
}

// Today is the current calendar day in the service's timezone.
func (s *Service) Today() Day {
	return DayOf(s.clk.Now(), s.loc)
}

// GetOrAssign returns today's assignment for userID, drawing and storing a
// new one on the first call of the day. Concurrent first calls all observe
// the single stored winner.
func (s *Service) GetOrAssign(ctx context.Context, userID string) (Assignment, error) {
	now := s.clk.Now()
	today := DayOf(now, s.loc)

	if a, ok, err := s.store.Get(ctx, userID, today); err != nil {
		return Assignment{}, fmt.Errorf("read assignment: %w", err)
	} else if ok {
		return a, nil
	}

	drawn := Assignment{
		UserID:    userID,
		Day:       today,
		SpeciesID: s.drawer.DrawSpeciesID(),
		Shiny:     s.drawer.DrawShiny(),
		CreatedAt: now,
	}

	stored, err := s.store.PutIfAbsent(ctx, drawn)
	if err != nil {
		return Assignment{}, fmt.Errorf("store assignment: %w", err)
	}
	return stored, nil
}
