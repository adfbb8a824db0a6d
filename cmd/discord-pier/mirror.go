package main

import (
	"strings"
	"time"

	"github.com/oklahomer/go-kasumi/logger"

	"github.com/oklahomer/go-discord-pier/message"
)

type sender interface {
	Send(targetChannel string, msg message.Message)
}

// mirrorBridge is a minimal discord.Bridge that relays messages along the configured routes.
type mirrorBridge struct {
	routes []*mirrorRoute
	sender sender
}

func newMirrorBridge(routes []*mirrorRoute) *mirrorBridge {
	return &mirrorBridge{routes: routes}
}

func (b *mirrorBridge) SubmitMessage(msg message.Message) {
	for _, route := range b.routes {
		from := message.Source{ChannelName: route.From, DiscordID: route.From, Type: message.DISCORD}
		if !from.Matches(msg.Source) {
			continue
		}

		b.sender.Send(route.To, withAttachmentsInline(msg))
	}
}

func (b *mirrorBridge) UpdateStatistics(msg message.Message, sentAt time.Time) {
	logger.Debugf("Relayed message from %s in %s", msg.Source, sentAt.Sub(msg.ReceivedAt))
}

// withAttachmentsInline appends attachment URLs to the contents, since outbound messages carry text only.
func withAttachmentsInline(msg message.Message) message.Message {
	if len(msg.Attachments) == 0 {
		return msg
	}

	parts := append([]string{msg.Contents}, msg.Attachments...)
	return msg.WithContents(strings.TrimSpace(strings.Join(parts, " ")))
}
