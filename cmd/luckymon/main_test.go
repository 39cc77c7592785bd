package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faideww/luckymon/internal/species"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"format", "tapu-koko", "pikachu"})

	require.NoError(t, root.Execute())
	assert.Equal(t,
		"Tapu Koko\tTapu_Koko\thttps://bulbapedia.bulbagarden.net/wiki/Tapu_Koko_(Pok%C3%A9mon)\n"+
			"Pikachu\tPikachu\thttps://bulbapedia.bulbagarden.net/wiki/Pikachu_(Pok%C3%A9mon)\n",
		out.String())
}

func TestFormatCommandWithRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": 1, "name": "tapu-koko"},
		{"id": 2, "name": "iron-moth"}
	]`), 0o644))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"format", "--species-json", path, "--wiki-host", "wiki.example", "iron-moth"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "2\tIron Moth\tIron_Moth\thttps://wiki.example/wiki/Iron_Moth_(Pok%C3%A9mon)\n", out.String())

	root = newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"format", "--species-json", path, "pikachu"})
	err := root.Execute()
	assert.ErrorIs(t, err, species.ErrNotFound)
}

func TestFormatCommandRequiresName(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"format"})
	assert.Error(t, root.Execute())
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "token", cfg.DiscordToken)
	assert.Equal(t, 905, cfg.MaxSpeciesID)
	assert.Equal(t, 500, cfg.ShinyOdds)
	assert.Equal(t, ".", cfg.Prefix)
	assert.Equal(t, "bulbapedia.bulbagarden.net", cfg.WikiHost)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	lo, hi := cfg.Cooldowns()
	assert.Equal(t, 5*time.Second, lo)
	assert.Equal(t, 5*time.Second, hi)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"MAX_SPECIES_ID", "0"},
		{"SHINY_ODDS", "-3"},
		{"SHINY_ODDS", "often"},
		{"LUCKY_TIMEZONE", "Mars/Olympus_Mons"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("debug")
	require.NoError(t, err)
	_, err = newLogger("chatty")
	assert.Error(t, err)
}
