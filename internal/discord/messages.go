package discord

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// send posts a plain text message, logging delivery failures.
func (b *Bot) send(s *discordgo.Session, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		slog.Warn("Failed to send message", "channel_id", channelID, "error", err)
	}
}

// react adds a reaction, logging delivery failures.
func (b *Bot) react(s *discordgo.Session, channelID, messageID, emoji string) {
	if err := s.MessageReactionAdd(channelID, messageID, emoji); err != nil {
		slog.Warn("Failed to add reaction", "channel_id", channelID, "emoji", emoji, "error", err)
	}
}
