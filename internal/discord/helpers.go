package discord

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Reaction emoji used by the command flows.
const (
	reactionPrice      = "💰"
	reactionFullRecipe = "📓"
	reactionAck        = "👌"
	reactionRecipeAck  = "📖"
	reactionSearch     = "🔍"
)

const shrugReply = ":woman_shrugging: I could not find any data for that item, maybe check your spelling?"

// itemIDFromTitle extracts the item id from an embed title carrying an
// "(ID: n)" marker.
func itemIDFromTitle(title string) (int, bool) {
	idx := strings.Index(title, "ID:")
	if idx < 0 {
		return 0, false
	}
	rest := title[idx+len("ID:"):]
	end := strings.Index(rest, ")")
	if end < 0 {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(rest[:end]))
	if err != nil {
		return 0, false
	}
	return id, true
}

// hasOwnReaction reports whether the bot already reacted with the
// given emoji on the message.
func hasOwnReaction(msg *discordgo.Message, emoji string) bool {
	for _, r := range msg.Reactions {
		if r.Me && r.Emoji != nil && r.Emoji.Name == emoji {
			return true
		}
	}
	return false
}

// commandArgs strips the command prefix and returns the trimmed
// remainder of the message.
func commandArgs(content, prefix string) string {
	if len(content) < len(prefix) {
		return ""
	}
	return strings.TrimSpace(content[len(prefix):])
}

// memberHasRole reports whether the member carries the given role id.
func memberHasRole(member *discordgo.Member, roleID string) bool {
	if member == nil {
		return false
	}
	for _, r := range member.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// wikiSlug converts an item name into its wiki page name.
func wikiSlug(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}
