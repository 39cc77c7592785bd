package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/faideww/luckymon/internal/bot"
	"github.com/faideww/luckymon/internal/clock"
	"github.com/faideww/luckymon/internal/lucky"
	"github.com/faideww/luckymon/internal/names"
	"github.com/faideww/luckymon/internal/ratelimit"
	"github.com/faideww/luckymon/internal/species"
	"github.com/faideww/luckymon/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "luckymon",
		Short:        "Discord bot that hands out a lucky pokemon per user per day",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newFormatCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Connect to Discord and answer luckymon commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger, err := newLogger(config.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return serve(config, logger)
		},
	}
}

func newFormatCmd() *cobra.Command {
	var wikiHost, speciesJson string
	cmd := &cobra.Command{
		Use:   "format NAME...",
		Short: "Print the display name and wiki link for raw species names",
		Long: "Print the display name, link slug and wiki URL for raw species names.\n" +
			"With --species-json each line is prefixed with the species id from that registry.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var reg *species.Registry
			if speciesJson != "" {
				var err error
				if reg, err = species.LoadRegistryFromJSON(speciesJson); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, raw := range args {
				if reg != nil {
					id, ok := reg.IdByName(raw)
					if !ok {
						return fmt.Errorf("%q: %w", raw, species.ErrNotFound)
					}
					fmt.Fprintf(out, "%d\t", id)
				}
				f := names.Format(raw)
				fmt.Fprintf(out, "%s\t%s\t%s\n", f.Display, f.LinkSlug, names.LinkURL(wikiHost, f.LinkSlug))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&wikiHost, "wiki-host", names.DefaultWikiHost, "host used to build wiki links")
	cmd.Flags().StringVar(&speciesJson, "species-json", "", "species registry used to look up ids by name")
	return cmd
}

func serve(config *Config, logger *zap.Logger) error {
	if config.DiscordToken == "" {
		return errors.New("no DISCORD_TOKEN in environment")
	}

	loc, err := config.Location()
	if err != nil {
		return err
	}

	var assignments lucky.Store = lucky.NewMemoryStore()
	if config.DBPath != "" {
		st, err := store.OpenSQLite(config.DBPath, logger.Named("store"))
		if err != nil {
			return err
		}
		defer st.Close()
		assignments = st
	}

	selector := lucky.NewSelector(config.MaxSpeciesID, config.ShinyOdds, nil)

	var source species.Source = species.NewPokeAPI(config.PokeAPIURL, nil)
	if config.SpeciesJson != "" {
		reg, err := species.LoadRegistryFromJSON(config.SpeciesJson)
		if err != nil {
			return err
		}
		if reg.Count() < selector.MaxSpeciesID() {
			logger.Warn("species registry is smaller than MAX_SPECIES_ID",
				zap.Int("registry", reg.Count()), zap.Int("max", selector.MaxSpeciesID()))
		}
		source = reg
	}

	clk := clock.Real{}
	svc := lucky.NewService(assignments, selector, clk, loc)

	session, err := discordgo.New("Bot " + config.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	session.ShardCount = config.ShardCount
	session.ShardID = config.ShardId
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	if err := session.Open(); err != nil {
		return fmt.Errorf("failed to open session connection: %w", err)
	}
	defer session.Close()

	cdMin, cdMax := config.Cooldowns()
	teardown, err := bot.Setup(session, bot.Options{
		AppId:      session.State.User.ID,
		ScopeGuild: config.DevGuild,
		Prefix:     config.Prefix,
		WikiHost:   config.WikiHost,
		Lucky:      svc,
		Species:    species.NewCached(source),
		Limiter:    ratelimit.NewLimiter(cdMin, cdMax, clk),
		Clock:      clk,
		Log:        logger.Named("bot"),
	})
	if err != nil {
		return fmt.Errorf("failed to setup bot: %w", err)
	}
	defer teardown()

	logger.Info("Bot is running",
		zap.String("timezone", loc.String()),
		zap.Bool("persistent", config.DBPath != ""),
	)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}
