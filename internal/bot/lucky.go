package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/bwmarrin/snowflake"
	"github.com/faideww/luckymon/internal/lucky"
	"github.com/faideww/luckymon/internal/names"
	"github.com/faideww/luckymon/internal/species"
	"go.uber.org/zap"
)

const (
	colorRegular = 0xE74C3C // red
	colorShiny   = 0xF1C40F // gold

	failureNotice = "Something went wrong finding your lucky pokemon, try again in a bit!"
)

// luckyEmbed renders an assignment once its species has been resolved.
func luckyEmbed(a lucky.Assignment, sp species.Species, wikiHost string, now time.Time) (*discordgo.MessageEmbed, error) {
	sprite, err := sp.SpriteFor(a.Shiny)
	if err != nil {
		return nil, fmt.Errorf("species %d (%s): %w", sp.ID, sp.Name, err)
	}

	f := names.Format(sp.Name)
	label := f.Display
	color := colorRegular
	if a.Shiny {
		label = "Shiny " + label
		color = colorShiny
	}

	return &discordgo.MessageEmbed{
		Title: "Your lucky pokemon of the day is:",
		Color: color,
		Image: &discordgo.MessageEmbedImage{URL: sprite},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  names.EscapeMarkdown(label) + "!",
				Value: fmt.Sprintf("[Bulbapedia Page](%s)", names.LinkURL(wikiHost, f.LinkSlug)),
			},
		},
		Timestamp: now.Format(time.RFC3339),
	}, nil
}

// luckymon runs the whole command for one user.
func (m *module) luckymon(ctx context.Context, userId string) (*discordgo.MessageEmbed, error) {
	if _, err := snowflake.ParseString(userId); err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", userId, err)
	}

	a, err := m.lucky.GetOrAssign(ctx, userId)
	if err != nil {
		return nil, err
	}
	m.log.Info("luckymon assigned",
		zap.String("user", userId),
		zap.Int("species", a.SpeciesID),
		zap.Bool("shiny", a.Shiny),
		zap.Stringer("day", a.Day),
	)

	sp, err := m.species.Get(ctx, a.SpeciesID)
	if err != nil {
		return nil, fmt.Errorf("lookup species %d: %w", a.SpeciesID, err)
	}

	return luckyEmbed(a, sp, m.wikiHost, m.clk.Now())
}
