package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestNewConfig(t *testing.T) {
	config := NewConfig()

	if config.Token != "" {
		t.Errorf("Expected empty token, got %q", config.Token)
	}

	if config.AnnounceJoinsQuits {
		t.Error("Expected AnnounceJoinsQuits to be disabled by default")
	}

	if len(config.WebHooks) != 0 {
		t.Errorf("Expected no webhooks, got %d", len(config.WebHooks))
	}

	if config.Activity != "IRC" {
		t.Errorf("Expected Activity to be %q, got %q", "IRC", config.Activity)
	}

	if config.HelpCommand != ".help" {
		t.Errorf("Expected HelpCommand to be %q, got %q", ".help", config.HelpCommand)
	}

	if config.AbortCommand != ".abort" {
		t.Errorf("Expected AbortCommand to be %q, got %q", ".abort", config.AbortCommand)
	}

	expectedIntents := discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent
	if config.Intents != expectedIntents {
		t.Errorf("Expected Intents to be %d, got %d", expectedIntents, config.Intents)
	}
}
