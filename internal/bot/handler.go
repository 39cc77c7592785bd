package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/faideww/luckymon/internal/clock"
	"github.com/faideww/luckymon/internal/lucky"
	"github.com/faideww/luckymon/internal/ratelimit"
	"github.com/faideww/luckymon/internal/species"
	"go.uber.org/zap"
)

const commandTimeout = 15 * time.Second

// Options carries everything the bot needs besides the session.
type Options struct {
	AppId      string
	ScopeGuild string
	Prefix     string
	WikiHost   string
	Lucky      *lucky.Service
	Species    species.Source
	Limiter    *ratelimit.Limiter
	Clock      clock.Clock
	Log        *zap.Logger
}

type module struct {
	appId      string
	scopeGuild string
	prefix     string
	wikiHost   string
	lucky      *lucky.Service
	species    species.Source
	lim        *ratelimit.Limiter
	clk        clock.Clock
	log        *zap.Logger
}

func newModule(opts Options) *module {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &module{
		appId:      opts.AppId,
		scopeGuild: opts.ScopeGuild,
		prefix:     opts.Prefix,
		wikiHost:   opts.WikiHost,
		lucky:      opts.Lucky,
		species:    opts.Species,
		lim:        opts.Limiter,
		clk:        opts.Clock,
		log:        opts.Log,
	}
}

// Setup registers the slash commands and message handlers. The returned
// teardown detaches the handlers.
func Setup(session *discordgo.Session, opts Options) (func(), error) {
	m := newModule(opts)

	created, err := session.ApplicationCommandBulkOverwrite(m.appId, m.scopeGuild, commandDefs())
	if err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}

	for _, c := range created {
		m.log.Info("command active", zap.String("name", c.Name), zap.String("description", c.Description))
	}

	removers := []func(){
		session.AddHandler(m.onInteraction),
		session.AddHandler(m.onMessage),
	}

	return func() {
		for _, rm := range removers {
			rm()
		}
	}, nil
}

func (m *module) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case cmdLuckymon:
		m.handleLuckymonInteraction(s, i)
	case cmdHelp:
		m.respondEphemeral(s, i, helpText(m.prefix))
	}
}

func (m *module) onMessage(s *discordgo.Session, msg *discordgo.MessageCreate) {
	if msg.Author == nil || msg.Author.Bot {
		return
	}

	name, args, ok := parsePrefixed(msg.Content, m.prefix)
	if !ok {
		return
	}

	// anything else starting with the prefix is ordinary chat
	switch name {
	case cmdLuckymon:
		m.handleLuckymonMessage(s, msg)
	case cmdHelp:
		m.send(s, msg.ChannelID, helpReply(m.prefix, args))
	}
}

func (m *module) handleLuckymonInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userId := ""
	if i.Member != nil && i.Member.User != nil {
		userId = i.Member.User.ID
	} else if i.User != nil {
		userId = i.User.ID
	}

	if ok, rem := m.tryCooldown(userId); !ok {
		m.respondEphemeral(s, i, fmt.Sprintf("⏳ Slow down! Try again in %s.", pretty(rem)))
		return
	}

	// Send a deferred ack so we don't hit a timeout while fetching species data
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		m.logREST("defer response failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	embed, err := m.luckymon(ctx, userId)
	if err != nil {
		m.log.Error("luckymon failed", zap.String("user", userId), zap.Error(err))
		m.editResponseText(s, i, failureNotice)
		return
	}

	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		m.logREST("edit failed", err)
	}
}

func (m *module) handleLuckymonMessage(s *discordgo.Session, msg *discordgo.MessageCreate) {
	userId := msg.Author.ID

	if ok, rem := m.tryCooldown(userId); !ok {
		m.send(s, msg.ChannelID, fmt.Sprintf("⏳ Slow down! Try again in %s.", pretty(rem)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	embed, err := m.luckymon(ctx, userId)
	if err != nil {
		m.log.Error("luckymon failed", zap.String("user", userId), zap.Error(err))
		m.send(s, msg.ChannelID, failureNotice)
		return
	}

	if _, err := s.ChannelMessageSendEmbed(msg.ChannelID, embed); err != nil {
		m.logREST("send embed failed", err)
	}
}

func (m *module) tryCooldown(userId string) (bool, time.Duration) {
	if m.lim == nil {
		return true, 0
	}
	return m.lim.Try(cmdLuckymon, userId)
}

func (m *module) send(s *discordgo.Session, channelId, content string) {
	if _, err := s.ChannelMessageSend(channelId, content); err != nil {
		m.logREST("send failed", err)
	}
}

func (m *module) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		m.logREST("ephemeral response failed", err)
	}
}

func (m *module) editResponseText(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
		m.logREST("edit failed", err)
	}
}

func pretty(d time.Duration) string {
	// mm:ss
	if d < 0 {
		d = 0
	}
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", m, s)
}

func (m *module) logREST(msg string, err error) {
	if rerr, ok := err.(*discordgo.RESTError); ok && rerr.Message != nil {
		m.log.Warn(msg, zap.Int("code", rerr.Message.Code), zap.String("msg", rerr.Message.Message))
	} else {
		m.log.Warn(msg, zap.Error(err))
	}
}
