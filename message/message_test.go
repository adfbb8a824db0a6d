package message

import (
	"testing"
	"time"
)

func TestSource_Matches(t *testing.T) {
	tests := []struct {
		name     string
		a        Source
		b        Source
		expected bool
	}{
		{
			name:     "same id",
			a:        Source{ChannelName: "general", DiscordID: "1", Type: DISCORD},
			b:        Source{ChannelName: "renamed", DiscordID: "1", Type: DISCORD},
			expected: true,
		},
		{
			name:     "same name",
			a:        Source{ChannelName: "general", DiscordID: "1", Type: DISCORD},
			b:        Source{ChannelName: "general", Type: DISCORD},
			expected: true,
		},
		{
			name:     "different platform",
			a:        Source{ChannelName: "general", DiscordID: "1", Type: DISCORD},
			b:        Source{ChannelName: "general", DiscordID: "1", Type: IRC},
			expected: false,
		},
		{
			name:     "nothing in common",
			a:        Source{ChannelName: "general", DiscordID: "1", Type: DISCORD},
			b:        Source{ChannelName: "random", DiscordID: "2", Type: DISCORD},
			expected: false,
		},
		{
			name:     "empty identifiers never match",
			a:        Source{Type: DISCORD},
			b:        Source{Type: DISCORD},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Matches(tt.b); got != tt.expected {
				t.Errorf("Expected %t, got %t", tt.expected, got)
			}
		})
	}
}

func TestMessage_OriginatesFromBridge(t *testing.T) {
	if !(Message{Sender: BotSender}).OriginatesFromBridge() {
		t.Error("Expected BotSender message to originate from the bridge")
	}

	if (Message{Sender: Sender{DisplayName: "Bob", PlatformID: "42"}}).OriginatesFromBridge() {
		t.Error("Expected a human sender not to originate from the bridge")
	}
}

func TestMessage_WithContents(t *testing.T) {
	original := Message{
		Contents:    "before",
		Sender:      Sender{DisplayName: "Bob"},
		ReceivedAt:  time.Now(),
		Attachments: []string{"https://example.com/a.png"},
	}

	copied := original.WithContents("after")

	if original.Contents != "before" {
		t.Errorf("Original contents must not change, got %q", original.Contents)
	}
	if copied.Contents != "after" {
		t.Errorf("Expected %q, got %q", "after", copied.Contents)
	}
	if !copied.ReceivedAt.Equal(original.ReceivedAt) {
		t.Error("Expected ReceivedAt to be carried over")
	}

	copied.Attachments[0] = "changed"
	if original.Attachments[0] != "https://example.com/a.png" {
		t.Error("Attachments must not be shared between copies")
	}
}
