package discord

import (
	"fmt"
	"time"

	"github.com/oklahomer/go-sarah/v4"

	"github.com/oklahomer/go-discord-pier/message"
)

// Input is a sarah.Input implementation that represents a bridged Discord message.
type Input struct {
	Bridged   message.Message
	senderKey string
	text      string
	sentAt    time.Time
	channelID ChannelID
}

var _ sarah.Input = (*Input)(nil)

// SenderKey returns a unique key representing the sender in the channel.
func (i *Input) SenderKey() string {
	return i.senderKey
}

// Message returns the received text.
func (i *Input) Message() string {
	return i.text
}

// SentAt returns when the message was received by the Pier.
func (i *Input) SentAt() time.Time {
	return i.sentAt
}

// ReplyTo returns the Discord channel where the message was received.
func (i *Input) ReplyTo() sarah.OutputDestination {
	return i.channelID
}

// MessageToInput converts a bridged message observed on Discord to *Input.
func MessageToInput(msg message.Message) (*Input, error) {
	if msg.Sender.PlatformID == "" {
		return nil, ErrNoAuthor
	}

	return &Input{
		Bridged:   msg,
		senderKey: fmt.Sprintf("%s_%s", msg.Source.DiscordID, msg.Sender.PlatformID),
		text:      msg.Contents,
		sentAt:    msg.ReceivedAt,
		channelID: ChannelID(msg.Source.DiscordID),
	}, nil
}

// NewResponse creates a *sarah.CommandResponse with the given content.
// The content may be a string or anything SendMessage accepts, such as message.Message.
// Pass RespOption values to customize the response.
func NewResponse(input sarah.Input, content interface{}, options ...RespOption) (*sarah.CommandResponse, error) {
	if _, ok := input.(*Input); !ok {
		return nil, fmt.Errorf("%T is not a *discord.Input", input)
	}

	stash := &respOptions{}
	for _, opt := range options {
		opt(stash)
	}

	return &sarah.CommandResponse{
		Content:     content,
		UserContext: stash.userContext,
	}, nil
}

// RespOption defines a function signature that NewResponse's functional options must satisfy.
type RespOption func(*respOptions)

type respOptions struct {
	userContext *sarah.UserContext
}

// RespWithNext sets a given function as part of the response's *sarah.UserContext.
// The next input from the same user is passed to this function.
func RespWithNext(fnc sarah.ContextualFunc) RespOption {
	return func(options *respOptions) {
		options.userContext = &sarah.UserContext{
			Next: fnc,
		}
	}
}

// RespWithNextSerializable sets the given argument as part of the response's *sarah.UserContext.
func RespWithNextSerializable(arg *sarah.SerializableArgument) RespOption {
	return func(options *respOptions) {
		options.userContext = &sarah.UserContext{
			Serializable: arg,
		}
	}
}
