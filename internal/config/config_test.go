package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("PRICE_ROLE_ID", "123")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DiscordToken")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("PRICE_ROLE_ID", "123456789")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Phoenix", cfg.FFXIVServer)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "csv", cfg.DataDir)
	assert.Equal(t, DefaultRecipeSourceURL, cfg.RecipeSourceURL)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("PRICE_ROLE_ID", "123456789")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestDataFilePaths(t *testing.T) {
	cfg := &Config{DataDir: "csv"}

	assert.Equal(t, filepath.Join("csv", "items.csv"), cfg.ItemsFile())
	assert.Equal(t, filepath.Join("csv", "worlds.csv"), cfg.WorldsFile())
	assert.Equal(t, filepath.Join("csv", "recipes.csv"), cfg.RecipesFile())
}
