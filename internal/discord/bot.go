package discord

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/tatarubot/tataru/internal/itemstore"
	"github.com/tatarubot/tataru/internal/logger"
	"github.com/tatarubot/tataru/internal/recipecatalog"
	"github.com/tatarubot/tataru/internal/universalis"
	"github.com/tatarubot/tataru/internal/xivapi"
)

// Config holds the bot configuration
type Config struct {
	Token       string
	PriceRoleID string
}

// Bot owns the Discord session and dispatches the chat commands onto
// the item store, recipe catalog and market client.
type Bot struct {
	Session *discordgo.Session

	store   *itemstore.Store
	catalog *recipecatalog.Catalog
	worlds  *itemstore.Worlds
	market  *universalis.Client
	remote  *xivapi.Client

	priceRoleID string
}

// New creates a new Discord bot
func New(cfg Config, store *itemstore.Store, catalog *recipecatalog.Catalog, worlds *itemstore.Worlds, market *universalis.Client, remote *xivapi.Client) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	s.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentMessageContent

	return &Bot{
		Session:     s,
		store:       store,
		catalog:     catalog,
		worlds:      worlds,
		market:      market,
		remote:      remote,
		priceRoleID: cfg.PriceRoleID,
	}, nil
}

// Start opens the gateway connection and installs the handlers.
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.messageCreate)
	b.Session.AddHandler(b.reactionAdd)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	slog.Info("Discord bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() {
	b.Session.Close()
}

// Run runs the bot until a signal is received
func (b *Bot) Run() error {
	if err := b.Start(); err != nil {
		return err
	}
	defer b.Stop()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	return nil
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "user", s.State.User.Username)
}

// messageCreate dispatches prefix commands. Each invocation gets its
// own request-scoped context for log correlation.
func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	content := strings.ToLower(m.Content)

	switch {
	case strings.HasPrefix(content, "!price"):
		b.handlePriceCommand(ctx, s, m)
	case strings.HasPrefix(content, "!setemoji"):
		b.handleSetEmojiCommand(ctx, s, m)
	case strings.HasPrefix(content, "!search"):
		b.handleSearchCommand(ctx, s, m)
	case strings.HasPrefix(content, "!recipe"):
		b.handleRecipeCommand(ctx, s, m)
	}
}

// reactionAdd handles the 💰 (price) and 📓 (full recipe) reactions on
// the bot's own embeds.
func (b *Bot) reactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.UserID == s.State.User.ID {
		return
	}
	if r.Emoji.Name != reactionPrice && r.Emoji.Name != reactionFullRecipe {
		return
	}

	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	log := logger.FromContext(ctx)

	msg, err := b.fetchMessage(s, r.ChannelID, r.MessageID)
	if err != nil {
		log.Warn("Failed to fetch reacted message", "error", err)
		return
	}
	if msg.Author == nil || msg.Author.ID != s.State.User.ID || len(msg.Embeds) == 0 {
		return
	}

	itemID, ok := itemIDFromTitle(msg.Embeds[0].Title)
	if !ok {
		return
	}

	switch r.Emoji.Name {
	case reactionPrice:
		// Skip when a previous price request on this message was
		// already acknowledged.
		if hasOwnReaction(msg, reactionAck) {
			return
		}
		b.handlePriceReaction(ctx, s, msg, itemID, r)
	case reactionFullRecipe:
		if hasOwnReaction(msg, reactionRecipeAck) {
			return
		}
		if len(b.catalog.FindByOutputItem(itemID)) == 0 {
			return
		}
		b.handleFullRecipeReaction(ctx, s, msg, itemID)
	}
}

// fetchMessage prefers the state cache and falls back to the REST API.
func (b *Bot) fetchMessage(s *discordgo.Session, channelID, messageID string) (*discordgo.Message, error) {
	if msg, err := s.State.Message(channelID, messageID); err == nil {
		return msg, nil
	}
	return s.ChannelMessage(channelID, messageID)
}
