package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tatarubot/tataru/internal/domain"
	"github.com/tatarubot/tataru/internal/universalis"
)

const embedColor = 0x00ff00

var gilPrinter = message.NewPrinter(language.English)

// formatGil renders a price with thousands separators.
func formatGil(price float64) string {
	return gilPrinter.Sprintf("%d", int64(price))
}

func itemLinks(item domain.Item) string {
	return fmt.Sprintf(
		"[Gamerscape Wiki](<https://ffxiv.gamerescape.com/wiki/%s>) | [Universalis](<https://universalis.app/market/%d>) | [Garland Tools](<https://www.garlandtools.org/db/#item/%d>)",
		wikiSlug(item.Name), item.ID, item.ID)
}

// recipeEmbed builds the recipe answer. Ingredient names come from the
// item store; crystal-category ingredients are listed after the rest.
// Slot order of the resolved mapping is not meaningful, so lines
// follow the resolution map's deterministic iteration via sorted ids
// handled by the caller.
func (b *Bot) recipeEmbed(ctx context.Context, item domain.Item, ingredients []resolvedIngredient, craftType string, recipeAmount int, hideReactions bool) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Recipe for %dx %s%s (ID: %d)", recipeAmount, item.Emoji, item.Name, item.ID),
		Color: embedColor,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: item.IconURL,
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Wiki", Value: fmt.Sprintf("[Link](https://ffxiv.gamerescape.com/wiki/%s)", wikiSlug(item.Name)), Inline: true},
			{Name: "Universalis", Value: fmt.Sprintf("[Link](https://universalis.app/market/%d)", item.ID), Inline: true},
			{Name: "Garland Tools", Value: fmt.Sprintf("[Link](https://www.garlandtools.org/db/#item/%d)", item.ID), Inline: true},
			{Name: "Craft Type", Value: craftType, Inline: true},
		},
	}

	var crystals, materials strings.Builder
	for _, ing := range ingredients {
		line := fmt.Sprintf("%dx %s%s (ID: %d)\n", ing.Amount, ing.Item.Emoji, ing.Item.Name, ing.Item.ID)
		if strings.EqualFold(ing.Item.Category, "crystal") {
			crystals.WriteString(line)
		} else {
			materials.WriteString(line)
		}
	}
	list := materials.String() + crystals.String()
	if list == "" {
		list = "No ingredients found"
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Ingredients",
		Value: list,
	})

	if !hideReactions {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Note",
			Value: "React with 💰 to get the price of the item. React with 📓 to see the full recipe.",
		})
	}

	return embed
}

// priceEmbed builds the market answer from aggregated listing data.
func (b *Bot) priceEmbed(item domain.Item, data *universalis.MarketData, fuzzyQuery string) *discordgo.MessageEmbed {
	nq := data.NQ.MinListing
	hq := data.HQ.MinListing
	hasHQ := data.HQ.HasData()

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Market Data for %s %s (ID: %d)", item.Emoji, item.Name, item.ID),
		Color: embedColor,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: item.IconURL,
		},
	}

	if nq.Region != nil {
		region := fmt.Sprintf(":coin:%s gil `(%s)`", formatGil(nq.Region.Price), b.worldName(nq.Region.WorldID))
		if hasHQ && hq.Region != nil {
			region += fmt.Sprintf(" / :sparkles:%s gil `(%s)`", formatGil(hq.Region.Price), b.worldName(hq.Region.WorldID))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: ":japan: Region", Value: region})
	}

	if nq.DC != nil {
		dc := fmt.Sprintf(":coin:%s gil `(%s)`", formatGil(nq.DC.Price), b.worldName(nq.DC.WorldID))
		if hasHQ && hq.DC != nil {
			dc += fmt.Sprintf(" / :sparkles:%s gil `(%s)`", formatGil(hq.DC.Price), b.worldName(hq.DC.WorldID))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: ":office: Datacenter", Value: dc})
	}

	if nq.World != nil {
		world := fmt.Sprintf(":coin:%s gil", formatGil(nq.World.Price))
		if hasHQ && hq.World != nil {
			world += fmt.Sprintf(" / :sparkles:%s gil", formatGil(hq.World.Price))
		}
		world += fmt.Sprintf(" `(%s)`", b.market.Server())
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: ":earth_americas: World", Value: world})
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Links", Value: itemLinks(item)})

	if worldID, uploaded, ok := data.OldestUpload(); ok {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Oldest update was on %s at %s",
				b.worldName(worldID), uploaded.Format(time.DateTime)),
		}
	}

	if fuzzyQuery != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Note",
			Value: fmt.Sprintf(":mag_right: I could not find **%s** but found some similar items in the database.", fuzzyQuery),
		})
	}

	return embed
}

func (b *Bot) worldName(id int) string {
	if name, ok := b.worlds.Name(id); ok {
		return name
	}
	return "Unknown"
}
