package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	DiscordToken    string `validate:"required"`
	FFXIVServer     string `validate:"required"`
	PriceRoleID     string `validate:"required"`
	Port            int    `validate:"gte=1,lte=65535"`
	LogLevel        string
	DataDir         string `validate:"required"`
	RecipeSourceURL string `validate:"required,url"`
}

// DefaultRecipeSourceURL is the master-data location the recipe
// dataset is fetched from when locally absent.
const DefaultRecipeSourceURL = "https://raw.githubusercontent.com/xivapi/ffxiv-datamining/refs/heads/master/csv/Recipe.csv"

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:    os.Getenv("DISCORD_TOKEN"),
		FFXIVServer:     getEnv("FFXIV_SERVER", "Phoenix"),
		PriceRoleID:     os.Getenv("PRICE_ROLE_ID"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		DataDir:         getEnv("DATA_DIR", "csv"),
		RecipeSourceURL: getEnv("RECIPE_SOURCE_URL", DefaultRecipeSourceURL),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// ItemsFile returns the path of the persisted item catalog.
func (c *Config) ItemsFile() string {
	return filepath.Join(c.DataDir, "items.csv")
}

// WorldsFile returns the path of the world reference table.
func (c *Config) WorldsFile() string {
	return filepath.Join(c.DataDir, "worlds.csv")
}

// RecipesFile returns the local path of the bulk recipe dataset.
func (c *Config) RecipesFile() string {
	return filepath.Join(c.DataDir, "recipes.csv")
}
