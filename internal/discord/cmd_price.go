package discord

import (
	"context"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/tatarubot/tataru/internal/domain"
	"github.com/tatarubot/tataru/internal/logger"
	"github.com/tatarubot/tataru/internal/metrics"
)

// handlePriceCommand answers !price <id|name> with aggregated market
// data. The command is gated behind the configured role.
func (b *Bot) handlePriceCommand(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	if !memberHasRole(m.Member, b.priceRoleID) {
		b.send(s, m.ChannelID, "You do not have permission to use this command.")
		return
	}

	query := commandArgs(m.Content, "!price")
	if query == "" {
		b.send(s, m.ChannelID, "Please provide an item ID or name. Example: `!price 12345` or `!price Dark Matter Cluster`")
		return
	}

	b.answerPrice(ctx, s, m.ChannelID, m.ID, query)
}

// handlePriceReaction answers a 💰 reaction on a bot embed, with the
// same role gate as the command.
func (b *Bot) handlePriceReaction(ctx context.Context, s *discordgo.Session, msg *discordgo.Message, itemID int, r *discordgo.MessageReactionAdd) {
	member := r.Member
	if member == nil && r.GuildID != "" {
		var err error
		member, err = s.GuildMember(r.GuildID, r.UserID)
		if err != nil {
			logger.FromContext(ctx).Warn("Failed to fetch reacting member", "error", err)
		}
	}
	if !memberHasRole(member, b.priceRoleID) {
		b.send(s, msg.ChannelID, "You do not have permission to use this command.")
		return
	}

	b.answerPrice(ctx, s, msg.ChannelID, msg.ID, strconv.Itoa(itemID))
}

// answerPrice resolves the query to an item, fetches market data and
// replies with the price embed. ackMessageID receives the 👌 reaction
// once the request is handled.
func (b *Bot) answerPrice(ctx context.Context, s *discordgo.Session, channelID, ackMessageID, query string) {
	log := logger.FromContext(ctx)
	log.Info("Price requested", "query", query)

	item, fuzzy, err := b.resolveItemQuery(ctx, query)
	if err != nil {
		log.Error("Item lookup failed", "query", query, "error", err)
		metrics.CommandsHandled.WithLabelValues("price", metrics.OutcomeError).Inc()
		b.send(s, channelID, "Something went wrong while saving item data, please try again.")
		return
	}
	if item == nil {
		metrics.CommandsHandled.WithLabelValues("price", metrics.OutcomeMiss).Inc()
		b.send(s, channelID, shrugReply)
		return
	}

	data, err := b.market.Fetch(ctx, item.ID)
	if err != nil {
		log.Warn("Market data unavailable", "item_id", item.ID, "error", err)
		metrics.CommandsHandled.WithLabelValues("price", metrics.OutcomeMiss).Inc()
		b.send(s, channelID, shrugReply)
		return
	}

	fuzzyQuery := ""
	if fuzzy {
		fuzzyQuery = query
	}

	b.react(s, channelID, ackMessageID, reactionAck)
	if _, err := s.ChannelMessageSendEmbed(channelID, b.priceEmbed(*item, data, fuzzyQuery)); err != nil {
		log.Error("Failed to send price embed", "error", err)
		metrics.CommandsHandled.WithLabelValues("price", metrics.OutcomeError).Inc()
		return
	}
	metrics.CommandsHandled.WithLabelValues("price", metrics.OutcomeOK).Inc()
}

// resolveItemQuery runs the lookup ladder: exact by id for numeric
// queries, exact by name otherwise, then fuzzy over the cache. The
// bool result reports whether the fuzzy path produced the item.
func (b *Bot) resolveItemQuery(ctx context.Context, query string) (*domain.Item, bool, error) {
	var item *domain.Item
	var err error

	if id, convErr := strconv.Atoi(query); convErr == nil {
		item, err = b.store.LookupByID(ctx, id)
	} else {
		item, err = b.store.LookupByName(ctx, query)
	}
	if err != nil {
		return nil, false, err
	}
	if item != nil {
		return item, false, nil
	}

	if candidates := b.store.FuzzyLookup(query); len(candidates) > 0 {
		metrics.ItemLookups.WithLabelValues(metrics.LookupFuzzy, metrics.OutcomeHit).Inc()
		return &candidates[0], true, nil
	}
	metrics.ItemLookups.WithLabelValues(metrics.LookupFuzzy, metrics.OutcomeMiss).Inc()
	return nil, false, nil
}
