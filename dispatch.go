package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"

	"github.com/oklahomer/go-discord-pier/message"
)

// maxContentLength is the maximum number of characters Discord accepts in a single message.
const maxContentLength = 2000

// Send delivers the given bridge message to the target channel, identified by ID or name.
// Channels with a registered webhook receive the message under the sender's name; other channels
// receive it from the bot account, prefixed with the sender's name.
// Failures are logged and the message is dropped.
func (p *Pier) Send(targetChannel string, msg message.Message) {
	if !p.connected.Load() {
		logger.Errorf("Discord connection has not been initialized yet! Dropping %s", msg)
		return
	}

	channel, err := p.resolveChannel(targetChannel)
	if err != nil {
		logger.Errorf("Unable to get a discord channel for: %s | Is bot present? %+v", targetChannel, err)
		return
	}

	guild := p.snapshotGuild(channel.GuildID)
	translated := Translate(msg, guild)

	if hook, ok := p.webhookFor(targetChannel, channel); ok {
		p.sendWebhook(hook, guild, translated)
	} else {
		p.sendDirect(channel, translated)
	}

	p.bridge.UpdateStatistics(translated, time.Now())
}

func (p *Pier) webhookFor(targetChannel string, channel *textChannel) (*Webhook, bool) {
	if hook, ok := p.webhooks.Lookup(targetChannel); ok {
		return hook, true
	}

	return p.webhooks.LookupSource(message.Source{ChannelName: channel.Name, DiscordID: channel.ID, Type: message.DISCORD})
}

func (p *Pier) sendWebhook(hook *Webhook, guild *GuildSnapshot, msg message.Message) {
	// Same-named members cannot be told apart, so this is a best guess.
	avatarURL := ""
	if member, ok := guild.MemberByDisplayName(msg.Sender.DisplayName); ok {
		avatarURL = member.AvatarURL
	}

	senderName := EnforceSenderName(msg.Sender.DisplayName)
	if msg.OriginatesFromBridge() {
		if self := p.self.Load(); self != nil {
			senderName = self.Name
			if self.AvatarURL != "" {
				avatarURL = self.AvatarURL
			}
		}
	}

	chunks := splitContent(msg.Contents, maxContentLength)
	params := make([]*discordgo.WebhookParams, 0, len(chunks))
	for _, chunk := range chunks {
		params = append(params, &discordgo.WebhookParams{
			Content:   chunk,
			Username:  senderName,
			AvatarURL: avatarURL,
			AllowedMentions: &discordgo.MessageAllowedMentions{
				Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers},
			},
		})
	}

	go func() {
		for _, param := range params {
			if err := hook.Execute(p.session, param); err != nil {
				logger.Errorf("Failed to send webhook message to %s: %+v", hook.ChannelKey, err)
				return
			}
		}
	}()
}

func (p *Pier) sendDirect(channel *textChannel, msg message.Message) {
	if !p.canWrite(channel) {
		logger.Warnf("Bridge cannot speak in %s to send message: %s", channel.Name, msg)
		return
	}

	prefix := ""
	if !msg.OriginatesFromBridge() {
		prefix = "<" + EnforceSenderName(msg.Sender.DisplayName) + "> "
	}

	for _, chunk := range splitContent(msg.Contents, maxContentLength-len([]rune(prefix))) {
		if _, err := p.session.ChannelMessageSend(channel.ID, prefix+chunk); err != nil {
			logger.Errorf("Failed to send message to %s: %+v", channel.Name, err)
			return
		}
	}
}

func (p *Pier) canWrite(channel *textChannel) bool {
	botID := p.botUserID()
	if botID == "" || p.state == nil {
		return false
	}

	perms, err := p.state.UserChannelPermissions(botID, channel.ID)
	if err != nil {
		logger.Debugf("Failed to compute permissions in %s: %+v", channel.Name, err)
		return false
	}

	return perms&discordgo.PermissionSendMessages != 0
}

// splitContent splits content into chunks of at most maxLen characters,
// preferring to cut right after a newline.
func splitContent(content string, maxLen int) []string {
	runes := []rune(content)
	if len(runes) <= maxLen || maxLen <= 0 {
		return []string{content}
	}

	var chunks []string
	for len(runes) > 0 {
		if len(runes) <= maxLen {
			chunks = append(chunks, string(runes))
			break
		}

		cut := maxLen
		for i := maxLen - 1; i > maxLen/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}

		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}

	return chunks
}
