package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/tatarubot/tataru/internal/config"
	"github.com/tatarubot/tataru/internal/discord"
	"github.com/tatarubot/tataru/internal/itemstore"
	"github.com/tatarubot/tataru/internal/logger"
	"github.com/tatarubot/tataru/internal/recipecatalog"
	"github.com/tatarubot/tataru/internal/server"
	"github.com/tatarubot/tataru/internal/universalis"
	"github.com/tatarubot/tataru/internal/xivapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)

	directory := xivapi.NewClient()

	store, err := itemstore.New(cfg.ItemsFile(), directory)
	if err != nil {
		slog.Error("Failed to open item store", "path", cfg.ItemsFile(), "error", err)
		os.Exit(1)
	}
	slog.Info("Item store loaded", "path", cfg.ItemsFile(), "items", store.Len())

	worlds, err := itemstore.LoadWorlds(cfg.WorldsFile())
	if err != nil {
		slog.Error("Failed to load world table", "path", cfg.WorldsFile(), "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	catalog, err := recipecatalog.Load(ctx, cfg.RecipesFile(), cfg.RecipeSourceURL)
	if err != nil {
		slog.Error("Failed to load recipe dataset", "path", cfg.RecipesFile(), "error", err)
		os.Exit(1)
	}
	slog.Info("Recipe dataset loaded", "recipes", catalog.Len())

	market := universalis.NewClient(cfg.FFXIVServer)

	bot, err := discord.New(discord.Config{
		Token:       cfg.DiscordToken,
		PriceRoleID: cfg.PriceRoleID,
	}, store, catalog, worlds, market, directory)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg.Port, store, catalog)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Run blocks until SIGINT/SIGTERM.
	if err := bot.Run(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
