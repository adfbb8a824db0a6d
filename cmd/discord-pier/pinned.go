package main

import (
	"context"
	"fmt"
	"regexp"

	"github.com/oklahomer/go-sarah/v4"

	"github.com/oklahomer/go-discord-pier"
	"github.com/oklahomer/go-discord-pier/message"
)

var pinnedPattern = regexp.MustCompile(`^\.pinned`)

type pinSource interface {
	PinnedMessages(channelKey string) ([]message.Message, error)
}

func registerPinnedCommand(pins pinSource) {
	props := sarah.NewCommandPropsBuilder().
		BotType(discord.DISCORD).
		Identifier("pinned").
		MatchPattern(pinnedPattern).
		Func(pinnedFunc(pins)).
		Instruction("Input .pinned [channel] to replay the pinned messages of a channel.").
		MustBuild()

	sarah.RegisterCommandProps(props)
}

func pinnedFunc(pins pinSource) func(context.Context, sarah.Input) (*sarah.CommandResponse, error) {
	return func(_ context.Context, input sarah.Input) (*sarah.CommandResponse, error) {
		channel := sarah.StripMessage(pinnedPattern, input.Message())
		if channel == "" {
			id, ok := input.ReplyTo().(discord.ChannelID)
			if !ok {
				return nil, fmt.Errorf("unexpected destination %#v", input.ReplyTo())
			}
			channel = string(id)
		}

		messages, err := pins.PinnedMessages(channel)
		if err != nil {
			return discord.NewResponse(input, fmt.Sprintf("Unable to get pinned messages of %s", channel))
		}

		if len(messages) == 0 {
			return discord.NewResponse(input, fmt.Sprintf("No pinned messages in %s", channel))
		}

		return discord.NewResponse(input, messages)
	}
}
