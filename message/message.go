// Package message defines the platform-neutral representation of a chat message
// that is relayed between piers.
package message

import (
	"fmt"
	"time"
)

// PlatformType identifies the chat platform a Source belongs to.
type PlatformType string

const (
	// DISCORD is the PlatformType for Discord.
	DISCORD PlatformType = "discord"

	// IRC is the PlatformType for IRC.
	IRC PlatformType = "irc"
)

// Source identifies where a message came from or where it is going to.
type Source struct {
	ChannelName string
	// DiscordID is the platform's opaque channel identifier. It may be empty.
	DiscordID string
	Type      PlatformType
}

// Matches reports whether both Sources point to the same channel.
// Two Sources are considered the same when they share a PlatformType and
// either the channel name or the channel identifier matches.
func (s Source) Matches(other Source) bool {
	if s.Type != other.Type {
		return false
	}

	if s.DiscordID != "" && s.DiscordID == other.DiscordID {
		return true
	}

	return s.ChannelName != "" && s.ChannelName == other.ChannelName
}

func (s Source) String() string {
	return fmt.Sprintf("%s:%s(%s)", s.Type, s.ChannelName, s.DiscordID)
}

// Sender describes who sent a message.
type Sender struct {
	DisplayName string
	// PlatformID is empty for messages generated by the bridge itself.
	PlatformID string
	// Extra carries platform specific data such as an IRC hostmask.
	Extra string
}

// BotSender represents messages generated by the bridge itself such as
// join and quit announcements.
var BotSender = Sender{DisplayName: "Bridge"}

// Message is a chat message in its platform-neutral form.
type Message struct {
	Contents string
	Sender   Sender
	Source   Source
	// ReceivedAt is taken when the pier first observed the message and carries a monotonic clock reading.
	ReceivedAt  time.Time
	Attachments []string
}

// OriginatesFromBridge reports whether the message was generated by the bridge itself.
func (m Message) OriginatesFromBridge() bool {
	return m.Sender == BotSender
}

// WithContents returns a copy of the message with the given contents.
// The attachment list is copied so the returned value does not share state with m.
func (m Message) WithContents(contents string) Message {
	out := m
	out.Contents = contents
	if m.Attachments != nil {
		out.Attachments = append([]string(nil), m.Attachments...)
	}
	return out
}

func (m Message) String() string {
	return fmt.Sprintf("Message{%s <%s> %q attachments=%d}", m.Source, m.Sender.DisplayName, m.Contents, len(m.Attachments))
}
