package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/tatarubot/tataru/internal/domain"
	"github.com/tatarubot/tataru/internal/logger"
	"github.com/tatarubot/tataru/internal/metrics"
)

const searchResultLimit = 10

// handleSearchCommand answers !search <name>. Remote results are
// written through the store as a side effect; when the directory has
// nothing and the query is not numeric, the cached names are searched
// fuzzily instead.
func (b *Bot) handleSearchCommand(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	log := logger.FromContext(ctx)

	query := commandArgs(m.Content, "!search")
	if query == "" {
		b.send(s, m.ChannelID, "Please provide an item name to search for. Example: `!search Dark Matter`")
		return
	}

	results, err := b.remote.SearchAll(ctx, query)
	if err != nil {
		log.Warn("Directory search failed", "query", query, "error", err)
	}

	for _, item := range results {
		if err := b.store.Upsert(item); err != nil {
			log.Error("Failed to persist search result", "item_id", item.ID, "error", err)
			metrics.CommandsHandled.WithLabelValues("search", metrics.OutcomeError).Inc()
			b.send(s, m.ChannelID, "Something went wrong while saving item data, please try again.")
			return
		}
	}

	fuzzy := false
	if len(results) == 0 {
		if _, convErr := strconv.Atoi(query); convErr != nil {
			results = b.store.FuzzyLookup(query)
			fuzzy = len(results) > 0
		}
		if len(results) == 0 {
			metrics.CommandsHandled.WithLabelValues("search", metrics.OutcomeMiss).Inc()
			b.send(s, m.ChannelID, ":woman_shrugging: I could not find any items matching that name, maybe check your spelling?")
			return
		}
	}

	b.react(s, m.ChannelID, m.ID, reactionSearch)

	embed := &discordgo.MessageEmbed{
		Title:       "Search Results",
		Description: formatSearchResults(results),
		Color:       embedColor,
	}
	if fuzzy {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Note",
			Value: fmt.Sprintf(":mag_right: I could not find **%s** but found some similar items in the database.", query),
		})
	}

	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.Error("Failed to send search embed", "error", err)
		metrics.CommandsHandled.WithLabelValues("search", metrics.OutcomeError).Inc()
		return
	}
	metrics.CommandsHandled.WithLabelValues("search", metrics.OutcomeOK).Inc()
}

// formatSearchResults renders up to ten result lines plus a remainder
// count when more were found.
func formatSearchResults(results []domain.Item) string {
	var sb strings.Builder
	shown := len(results)
	if shown > searchResultLimit {
		shown = searchResultLimit
	}
	for _, item := range results[:shown] {
		sb.WriteString(fmt.Sprintf("- %s %s (ID: %d) - %s\n", item.Emoji, item.Name, item.ID, itemLinks(item)))
	}
	if remaining := len(results) - shown; remaining > 1 {
		sb.WriteString(fmt.Sprintf("**%d** more results found.", remaining))
	}
	return sb.String()
}
