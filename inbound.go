package discord

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"

	"github.com/oklahomer/go-discord-pier/message"
)

// customEmojiPattern matches native custom emoji tags such as <:name:id> and <a:name:id>.
var customEmojiPattern = regexp.MustCompile(`<(a?):(\w+):(\d+)>`)

// inbound is the common shape every bridged Discord event is reduced to before it passes the self-loop gate.
type inbound struct {
	source  message.Source
	actorID string

	// msg is set for chat messages.
	msg     *discordgo.Message
	guildID string

	// announcement is set for events the bridge reports on its own behalf, such as member joins.
	announcement string
}

// handleEvent is the single entry point for Discord gateway events.
func (p *Pier) handleEvent(_ *discordgo.Session, event interface{}) {
	receivedAt := time.Now()

	var in *inbound
	var err error
	switch e := event.(type) {
	case *discordgo.Ready:
		p.handleReady(e)
		return

	case *discordgo.MessageCreate:
		in, err = p.messageCreated(e)

	case *discordgo.GuildMemberAdd:
		if !p.config.AnnounceJoinsQuits {
			return
		}
		in, err = p.memberAnnouncement(e.Member, "%s has joined the Discord")

	case *discordgo.GuildMemberRemove:
		if !p.config.AnnounceJoinsQuits {
			return
		}
		in, err = p.memberAnnouncement(e.Member, "%s has left the Discord")

	default:
		return
	}
	if err != nil {
		logger.Debugf("Skipping event: %+v", err)
		return
	}

	msg, err := p.normalize(in, receivedAt)
	if err != nil {
		logger.Debugf("Skipping event: %+v", err)
		return
	}

	p.submit(msg)
}

func (p *Pier) messageCreated(m *discordgo.MessageCreate) (*inbound, error) {
	if m.Message == nil || m.Author == nil {
		return nil, ErrNoAuthor
	}

	if m.GuildID == "" {
		return nil, ErrNotGuildMessage
	}

	return &inbound{
		source:  p.channelSource(m.ChannelID),
		actorID: m.Author.ID,
		msg:     m.Message,
		guildID: m.GuildID,
	}, nil
}

func (p *Pier) memberAnnouncement(member *discordgo.Member, format string) (*inbound, error) {
	if member == nil || member.User == nil {
		return nil, ErrNoAuthor
	}

	channelID := p.systemChannelID(member.GuildID)
	if channelID == "" {
		return nil, fmt.Errorf("guild %s has no system channel to announce %s in", member.GuildID, member.User.Username)
	}

	return &inbound{
		source:       p.channelSource(channelID),
		actorID:      member.User.ID,
		announcement: fmt.Sprintf(format, member.User.Username),
	}, nil
}

// normalize applies the shared gate to an inbound event and converts it into a bridge message.
func (p *Pier) normalize(in *inbound, receivedAt time.Time) (message.Message, error) {
	if in.actorID == "" {
		return message.Message{}, ErrNoAuthor
	}

	if p.IsSelf(in.source, in.actorID) {
		return message.Message{}, ErrSelfMessage
	}

	if in.msg == nil {
		return message.Message{
			Contents:   in.announcement,
			Sender:     message.BotSender,
			Source:     in.source,
			ReceivedAt: receivedAt,
		}, nil
	}

	// Discord emits empty messages on some system events such as member joins.
	if in.msg.Content == "" && len(in.msg.Attachments) == 0 {
		return message.Message{}, ErrEmptyMessage
	}

	return p.convertMessage(in.msg, in.source, in.guildID, receivedAt), nil
}

// IsSelf reports whether the given actor is this pier, either as the bot account or
// as the webhook registered for the given source channel.
func (p *Pier) IsSelf(source message.Source, actorID string) bool {
	if actorID == "" {
		return false
	}

	if botID := p.botUserID(); botID != "" && actorID == botID {
		return true
	}

	if hook, ok := p.webhooks.LookupSource(source); ok {
		return actorID == hook.ID
	}

	return false
}

// convertMessage builds a bridge message from a Discord message.
// Custom emoji tags are removed from the text and their images appended to the attachments.
func (p *Pier) convertMessage(m *discordgo.Message, source message.Source, guildID string, receivedAt time.Time) message.Message {
	attachments := make([]string, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		if a == nil {
			continue
		}

		url := a.URL
		if isImageAttachment(a) && a.ProxyURL != "" {
			url = a.ProxyURL
		}
		attachments = append(attachments, url)
	}

	text := customEmojiPattern.ReplaceAllStringFunc(m.Content, func(tag string) string {
		match := customEmojiPattern.FindStringSubmatch(tag)
		if match[1] == "a" {
			attachments = append(attachments, discordgo.EndpointEmojiAnimated(match[3]))
		} else {
			attachments = append(attachments, discordgo.EndpointEmoji(match[3]))
		}
		return ""
	})

	sender := message.Sender{
		DisplayName: p.authorDisplayName(m, guildID),
	}
	if m.Author != nil {
		sender.PlatformID = m.Author.ID
	}

	return message.Message{
		Contents:    text,
		Sender:      sender,
		Source:      source,
		ReceivedAt:  receivedAt,
		Attachments: attachments,
	}
}

// authorDisplayName prefers the author's guild nickname over the account name.
// Webhook authors are not guild members and always use the name they posted with.
func (p *Pier) authorDisplayName(m *discordgo.Message, guildID string) string {
	if m.Author == nil {
		return ""
	}

	if m.WebhookID == "" {
		if m.Member != nil && m.Member.Nick != "" {
			return m.Member.Nick
		}

		if nick := p.memberNick(guildID, m.Author.ID); nick != "" {
			return nick
		}
	}

	return m.Author.Username
}

func isImageAttachment(a *discordgo.MessageAttachment) bool {
	return strings.HasPrefix(a.ContentType, "image/") || (a.Width > 0 && a.Height > 0)
}

// submit hands a normalized message to the bridge and to the command runner, if any.
func (p *Pier) submit(msg message.Message) {
	logger.Debugf("DISCORD MSG %s %s: %s", msg.Source.ChannelName, msg.Sender.DisplayName, msg.Contents)
	p.bridge.SubmitMessage(msg)

	if p.enqueueInput != nil && !msg.OriginatesFromBridge() {
		p.enqueueCommandInput(msg)
	}
}

func (p *Pier) handleReady(r *discordgo.Ready) {
	if r.User == nil {
		return
	}

	p.self.Store(&botIdentity{
		ID:        r.User.ID,
		Name:      r.User.Username,
		AvatarURL: r.User.AvatarURL(""),
	})

	if p.config.Activity != "" {
		if err := p.session.UpdateGameStatus(0, p.config.Activity); err != nil {
			logger.Warnf("Failed to update activity: %+v", err)
		}
	}

	logger.Infof("Discord Bot Invite URL: https://discord.com/oauth2/authorize?client_id=%s&scope=bot", r.User.ID)
}
