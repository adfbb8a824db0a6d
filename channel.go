package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/oklahomer/go-discord-pier/message"
)

// textChannel is a resolved guild text channel.
type textChannel struct {
	ID      string
	Name    string
	GuildID string
}

func isTextChannel(c *discordgo.Channel) bool {
	return c.Type == discordgo.ChannelTypeGuildText || c.Type == discordgo.ChannelTypeGuildNews
}

// resolveChannel finds a text channel by ID and falls back to a lookup by name.
// When several channels share the name, the first one found wins.
func (p *Pier) resolveChannel(key string) (*textChannel, error) {
	if p.state == nil {
		return nil, ErrNotConnected
	}

	p.state.RLock()
	defer p.state.RUnlock()

	for _, matches := range []func(*discordgo.Channel) bool{
		func(c *discordgo.Channel) bool { return c.ID == key },
		func(c *discordgo.Channel) bool { return c.Name == key },
	} {
		for _, g := range p.state.Guilds {
			for _, c := range g.Channels {
				if c != nil && isTextChannel(c) && matches(c) {
					return &textChannel{ID: c.ID, Name: c.Name, GuildID: g.ID}, nil
				}
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, key)
}

// channelSource describes the given channel as a bridge Source.
func (p *Pier) channelSource(channelID string) message.Source {
	source := message.Source{
		DiscordID: channelID,
		Type:      message.DISCORD,
	}

	if p.state != nil {
		if c, err := p.state.Channel(channelID); err == nil {
			source.ChannelName = c.Name
		}
	}

	return source
}

func (p *Pier) systemChannelID(guildID string) string {
	if p.state == nil {
		return ""
	}

	g, err := p.state.Guild(guildID)
	if err != nil {
		return ""
	}

	return g.SystemChannelID
}

// memberNick returns the cached guild nickname of the given user, if any.
// The state updates members in place, so the nickname is read under the state's lock.
func (p *Pier) memberNick(guildID string, userID string) string {
	if guildID == "" || p.state == nil {
		return ""
	}

	p.state.RLock()
	defer p.state.RUnlock()

	for _, g := range p.state.Guilds {
		if g.ID != guildID {
			continue
		}

		for _, m := range g.Members {
			if m != nil && m.User != nil && m.User.ID == userID {
				return m.Nick
			}
		}
	}

	return ""
}

// snapshotGuild copies the current members and emojis of the given guild.
// It returns nil when the guild is not in the state cache.
func (p *Pier) snapshotGuild(guildID string) *GuildSnapshot {
	if p.state == nil {
		return nil
	}

	p.state.RLock()
	defer p.state.RUnlock()

	for _, g := range p.state.Guilds {
		if g.ID == guildID {
			return newGuildSnapshot(g)
		}
	}

	return nil
}

// botUserID returns the ID of the bot account, or an empty string if it is not known yet.
func (p *Pier) botUserID() string {
	if self := p.self.Load(); self != nil {
		return self.ID
	}

	if p.state == nil {
		return ""
	}

	p.state.RLock()
	defer p.state.RUnlock()
	if p.state.User == nil {
		return ""
	}
	return p.state.User.ID
}

// PinnedMessages returns the messages currently pinned in the given channel.
// The receive time of each message is the time of the call.
func (p *Pier) PinnedMessages(channelKey string) ([]message.Message, error) {
	if !p.connected.Load() {
		return nil, ErrNotConnected
	}

	channel, err := p.resolveChannel(channelKey)
	if err != nil {
		return nil, err
	}

	pins, err := p.session.ChannelMessagesPinned(channel.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve pinned messages of %s: %w", channel.Name, err)
	}

	source := message.Source{ChannelName: channel.Name, DiscordID: channel.ID, Type: message.DISCORD}
	now := time.Now()
	messages := make([]message.Message, 0, len(pins))
	for _, m := range pins {
		if m == nil {
			continue
		}
		messages = append(messages, p.convertMessage(m, source, channel.GuildID, now))
	}

	return messages, nil
}
