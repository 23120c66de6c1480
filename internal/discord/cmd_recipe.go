package discord

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/tatarubot/tataru/internal/domain"
	"github.com/tatarubot/tataru/internal/logger"
	"github.com/tatarubot/tataru/internal/metrics"
	"github.com/tatarubot/tataru/internal/resolver"
)

// resolvedIngredient pairs a required amount with the item record used
// to render it.
type resolvedIngredient struct {
	Item   domain.Item
	Amount int
}

// handleRecipeCommand answers !recipe <id|name> with the direct
// ingredient list of the item's default recipe.
func (b *Bot) handleRecipeCommand(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	log := logger.FromContext(ctx)

	identifier := commandArgs(m.Content, "!recipe")
	if identifier == "" {
		b.send(s, m.ChannelID, "Please provide an item name or ID to get the recipe for. Example: `!recipe Dark Matter`")
		return
	}

	recipes, err := b.findRecipes(ctx, identifier)
	if err != nil {
		log.Error("Recipe lookup failed", "identifier", identifier, "error", err)
		metrics.CommandsHandled.WithLabelValues("recipe", metrics.OutcomeError).Inc()
		b.send(s, m.ChannelID, fmt.Sprintf("Failed to look up a recipe for %s", identifier))
		return
	}
	if len(recipes) == 0 {
		metrics.CommandsHandled.WithLabelValues("recipe", metrics.OutcomeMiss).Inc()
		b.send(s, m.ChannelID, fmt.Sprintf("No recipe found for %s", identifier))
		return
	}

	// Alternates are not ranked; the first recipe in dataset order is
	// the conventional default.
	recipe := recipes[0]
	item, err := b.store.LookupByID(ctx, recipe.OutputItemID)
	if err != nil {
		log.Error("Failed to resolve output item", "item_id", recipe.OutputItemID, "error", err)
	}
	if item == nil {
		metrics.CommandsHandled.WithLabelValues("recipe", metrics.OutcomeError).Inc()
		b.send(s, m.ChannelID, fmt.Sprintf("Failed to fetch item details for %s", identifier))
		return
	}

	sent, ok := b.sendRecipeEmbed(ctx, s, m.ChannelID, *item, recipe, false)
	if !ok {
		metrics.CommandsHandled.WithLabelValues("recipe", metrics.OutcomeError).Inc()
		return
	}
	b.react(s, m.ChannelID, sent.ID, reactionPrice)
	b.react(s, m.ChannelID, sent.ID, reactionFullRecipe)
	metrics.CommandsHandled.WithLabelValues("recipe", metrics.OutcomeOK).Inc()
}

// handleFullRecipeReaction answers a 📓 reaction with the fully
// recursive breakdown into base materials.
func (b *Bot) handleFullRecipeReaction(ctx context.Context, s *discordgo.Session, msg *discordgo.Message, itemID int) {
	recipes := b.catalog.FindByOutputItem(itemID)
	if len(recipes) == 0 {
		return
	}

	b.react(s, msg.ChannelID, msg.ID, reactionRecipeAck)

	item, err := b.store.LookupByID(ctx, itemID)
	if err != nil || item == nil {
		b.send(s, msg.ChannelID, fmt.Sprintf("Failed to fetch item details for %d", itemID))
		return
	}

	b.sendRecipeEmbed(ctx, s, msg.ChannelID, *item, recipes[0], true)
}

// sendRecipeEmbed resolves the recipe (direct or recursive) and sends
// the rendered embed, returning the sent message.
func (b *Bot) sendRecipeEmbed(ctx context.Context, s *discordgo.Session, channelID string, item domain.Item, recipe domain.Recipe, recursive bool) (*discordgo.Message, bool) {
	log := logger.FromContext(ctx)

	amounts, err := resolver.Resolve(b.catalog, recipe, recursive, 1)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeCycle) {
			log.Error("Crafting chain contains a cycle", "recipe", recipe.Number, "error", err)
			b.send(s, channelID, fmt.Sprintf("The crafting chain for %s loops back on itself; showing it would never finish.", item.Name))
			return nil, false
		}
		log.Error("Recipe resolution failed", "recipe", recipe.Number, "error", err)
		b.send(s, channelID, "Failed to resolve the recipe.")
		return nil, false
	}

	embed := b.recipeEmbed(ctx, item, b.ingredientLines(ctx, amounts), recipe.CraftTypeName(), recipe.OutputAmount, recursive)
	sent, err := s.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		log.Error("Failed to send recipe embed", "error", err)
		return nil, false
	}
	return sent, true
}

// ingredientLines resolves ingredient ids to item records for display,
// in ascending id order for deterministic output.
func (b *Bot) ingredientLines(ctx context.Context, amounts map[int]int) []resolvedIngredient {
	log := logger.FromContext(ctx)

	ids := make([]int, 0, len(amounts))
	for id := range amounts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	lines := make([]resolvedIngredient, 0, len(ids))
	for _, id := range ids {
		item, err := b.store.LookupByID(ctx, id)
		if err != nil {
			log.Warn("Failed to persist enriched ingredient", "item_id", id, "error", err)
		}
		if item == nil {
			item = &domain.Item{ID: id, Name: "Unknown Item", Emoji: "❓"}
		}
		lines = append(lines, resolvedIngredient{Item: *item, Amount: amounts[id]})
	}
	return lines
}

// findRecipes resolves a command identifier, numeric or name, into the
// recipes producing that item.
func (b *Bot) findRecipes(ctx context.Context, identifier string) ([]domain.Recipe, error) {
	if id, err := strconv.Atoi(identifier); err == nil {
		return b.catalog.FindByOutputItem(id), nil
	}

	item, err := b.store.LookupByName(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return b.catalog.FindByOutputItem(item.ID), nil
}
