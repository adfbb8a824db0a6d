package discord

import "github.com/bwmarrin/discordgo"

// WebhookConfig binds a Discord channel to a webhook used to impersonate bridged senders.
type WebhookConfig struct {
	// DiscordChannel is the channel ID or name the webhook posts to.
	DiscordChannel string `json:"discord_channel" yaml:"discord_channel"`

	// WebhookURL is the full webhook URL as copied from Discord's channel settings.
	WebhookURL string `json:"webhook_url" yaml:"webhook_url"`
}

// Config contains configuration variables for the Discord Pier.
type Config struct {
	// Token is the Discord bot token used for authentication.
	Token string `json:"token" yaml:"token"`

	// AnnounceJoinsQuits makes guild member joins and leaves bridged as messages.
	AnnounceJoinsQuits bool `json:"announce_joins_quits" yaml:"announce_joins_quits"`

	// WebHooks lists the channels that are delivered to via webhook rather than as the bot.
	WebHooks []*WebhookConfig `json:"web_hooks" yaml:"web_hooks"`

	// Activity is the game status shown on the bot once connected. Empty disables it.
	Activity string `json:"activity" yaml:"activity"`

	// HelpCommand is the command string that triggers help.
	// When a user sends this exact string, the input is converted to sarah.HelpInput.
	HelpCommand string `json:"help_command" yaml:"help_command"`

	// AbortCommand is the command string that triggers context cancellation.
	// When a user sends this exact string, the input is converted to sarah.AbortInput.
	AbortCommand string `json:"abort_command" yaml:"abort_command"`

	// Intents declares the Gateway Intents the bot requires.
	// Guild members must be included for mention translation and join/quit announcements.
	Intents discordgo.Intent `json:"intents" yaml:"intents"`
}

// NewConfig creates and returns a new Config instance with default settings.
// Token is empty and must be set before use.
func NewConfig() *Config {
	return &Config{
		Token:              "",
		AnnounceJoinsQuits: false,
		WebHooks:           []*WebhookConfig{},
		Activity:           "IRC",
		HelpCommand:        ".help",
		AbortCommand:       ".abort",
		Intents: discordgo.IntentsGuilds |
			discordgo.IntentsGuildMembers |
			discordgo.IntentsGuildMessages |
			discordgo.IntentsMessageContent,
	}
}
