package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/tatarubot/tataru/internal/logger"
	"github.com/tatarubot/tataru/internal/metrics"
)

const maxEmojiLength = 24

// handleSetEmojiCommand answers !setemoji <itemid> <emoji>, re-tagging
// a cached item and persisting the change.
func (b *Bot) handleSetEmojiCommand(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	log := logger.FromContext(ctx)

	if !memberHasRole(m.Member, b.priceRoleID) {
		b.send(s, m.ChannelID, "You do not have permission to use this command.")
		return
	}

	parts := strings.Fields(m.Content)
	if len(parts) != 3 {
		b.send(s, m.ChannelID, "Invalid command format. Use: `!setemoji <itemid> <emoji>`")
		return
	}

	itemID, err := strconv.Atoi(parts[1])
	if err != nil {
		b.send(s, m.ChannelID, "Item ID must be a number.")
		return
	}

	emoji := parts[2]
	if strings.HasPrefix(emoji, ":") && strings.HasSuffix(emoji, ":") && len(emoji) > 1 {
		emoji = emoji[1 : len(emoji)-1]
	}
	if len(emoji) > maxEmojiLength {
		b.send(s, m.ChannelID, "Emoji name must not exceed 24 characters.")
		return
	}

	item, err := b.store.LookupByID(ctx, itemID)
	if err != nil {
		log.Error("Item lookup failed", "item_id", itemID, "error", err)
		b.send(s, m.ChannelID, "Something went wrong while saving item data, please try again.")
		return
	}
	if item == nil {
		metrics.CommandsHandled.WithLabelValues("setemoji", metrics.OutcomeMiss).Inc()
		b.send(s, m.ChannelID, "Item ID not found on the database. Maybe search its price first so I can add it?")
		return
	}

	item.Emoji = emoji
	if err := b.store.Upsert(*item); err != nil {
		// Emoji changes trigger a full file rewrite; a failure here
		// means the cache and disk have diverged, so tell the user.
		log.Error("Failed to persist emoji change", "item_id", itemID, "error", err)
		metrics.CommandsHandled.WithLabelValues("setemoji", metrics.OutcomeError).Inc()
		b.send(s, m.ChannelID, "The emoji was not saved, please try again.")
		return
	}

	b.react(s, m.ChannelID, m.ID, reactionFullRecipe)
	b.send(s, m.ChannelID, fmt.Sprintf("Emoji for item ID %d (%s) has been updated to %s.", itemID, item.Name, emoji))
	metrics.CommandsHandled.WithLabelValues("setemoji", metrics.OutcomeOK).Inc()
}
