package discord

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"

	"github.com/oklahomer/go-discord-pier/message"
)

const (
	// DISCORD is a designated sarah.BotType for Discord integration.
	DISCORD sarah.BotType = "discord"
)

// Bridge is the central router the Pier hands inbound messages to and reports outbound sends back to.
type Bridge interface {
	// SubmitMessage receives a message observed on Discord.
	SubmitMessage(msg message.Message)

	// UpdateStatistics is called once a send attempt for msg completed.
	UpdateStatistics(msg message.Message, sentAt time.Time)
}

// session is an internal interface that abstracts the discordgo.Session methods
// used by the Pier. This allows mocking the session in tests.
// *discordgo.Session satisfies this interface.
type session interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	UpdateGameStatus(idle int, name string) error
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessagesPinned(channelID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ChannelID represents a Discord channel as sarah.OutputDestination.
// Either a channel ID or a channel name is accepted.
type ChannelID string

var _ sarah.OutputDestination = ChannelID("")

// botIdentity is the bot account as reported by the Ready event.
type botIdentity struct {
	ID        string
	Name      string
	AvatarURL string
}

// PierOption defines a function signature for Pier's functional options.
type PierOption func(pier *Pier)

// WithSession creates a PierOption with the given *discordgo.Session.
// Use this to inject a pre-configured session.
// If this option is not given, NewPier creates a new session from Config.Token.
func WithSession(session *discordgo.Session) PierOption {
	return func(pier *Pier) {
		pier.session = session
		pier.state = session.State
	}
}

// Pier connects a Bridge to Discord.
// It also satisfies sarah.Adapter so it can be run as a go-sarah bot.
type Pier struct {
	config   *Config
	bridge   Bridge
	session  session
	state    *discordgo.State
	webhooks *WebhookRegistry

	self      atomic.Pointer[botIdentity]
	connected atomic.Bool

	enqueueInput func(sarah.Input) error
}

var _ sarah.Adapter = (*Pier)(nil)

// NewPier creates a new Pier with the given Config, Bridge and options.
// Webhooks are registered here; malformed webhook entries are logged and skipped.
func NewPier(config *Config, bridge Bridge, options ...PierOption) (*Pier, error) {
	if bridge == nil {
		return nil, ErrNilBridge
	}

	pier := &Pier{
		config: config,
		bridge: bridge,
	}

	for _, opt := range options {
		opt(pier)
	}

	if pier.session == nil {
		if config.Token == "" {
			return nil, ErrEmptyToken
		}

		s, err := discordgo.New("Bot " + config.Token)
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord session: %w", err)
		}
		s.Identify.Intents = config.Intents
		pier.session = s
		pier.state = s.State
	}

	pier.webhooks = NewWebhookRegistry(config.WebHooks)
	if len(config.WebHooks) > 0 {
		logger.Infof("Registered %d of %d Discord webhooks", pier.webhooks.Len(), len(config.WebHooks))
	}

	return pier, nil
}

// Start establishes a connection with Discord and starts bridging events.
func (p *Pier) Start() error {
	logger.Infof("Connecting to Discord API...")

	p.session.AddHandler(p.handleEvent)

	err := p.session.Open()
	if err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	p.connected.Store(true)
	logger.Infof("Connected to Discord!")

	return nil
}

// Shutdown disconnects from Discord and closes every registered webhook.
// In-flight sends are not awaited.
func (p *Pier) Shutdown() {
	p.connected.Store(false)

	if err := p.session.Close(); err != nil {
		logger.Errorf("Failed to close Discord session: %+v", err)
	}

	p.webhooks.Close()
}

// BotType returns a designated BotType for Discord integration.
func (p *Pier) BotType() sarah.BotType {
	return DISCORD
}

// Run establishes a connection with Discord and blocks until the context is canceled.
// Messages from humans are passed to enqueueInput in addition to the Bridge.
func (p *Pier) Run(ctx context.Context, enqueueInput func(sarah.Input) error, notifyErr func(error)) {
	p.enqueueInput = enqueueInput

	err := p.Start()
	if err != nil {
		notifyErr(sarah.NewBotNonContinuableError(err.Error()))
		return
	}

	// Block until the context is canceled.
	<-ctx.Done()

	p.Shutdown()
}

// enqueueCommandInput passes a bridged message to go-sarah.
func (p *Pier) enqueueCommandInput(msg message.Message) {
	input, err := MessageToInput(msg)
	if err != nil {
		logger.Debugf("Skipping input: %+v", err)
		return
	}

	var enqueueErr error
	trimmed := strings.TrimSpace(input.Message())
	if p.config.HelpCommand != "" && trimmed == p.config.HelpCommand {
		enqueueErr = p.enqueueInput(sarah.NewHelpInput(input))
	} else if p.config.AbortCommand != "" && trimmed == p.config.AbortCommand {
		enqueueErr = p.enqueueInput(sarah.NewAbortInput(input))
	} else {
		enqueueErr = p.enqueueInput(input)
	}
	if enqueueErr != nil {
		logger.Errorf("Failed to enqueue input: %+v", enqueueErr)
	}
}

// SendMessage sends the given go-sarah output to Discord.
func (p *Pier) SendMessage(_ context.Context, output sarah.Output) {
	destination, ok := output.Destination().(ChannelID)
	if !ok {
		logger.Errorf("Destination is not instance of ChannelID. %#v.", output.Destination())
		return
	}

	channel := string(destination)

	switch content := output.Content().(type) {
	case string:
		p.Send(channel, botMessage(channel, content))

	case message.Message:
		p.Send(channel, content)

	case []message.Message:
		for _, msg := range content {
			p.Send(channel, msg)
		}

	case *sarah.CommandHelps:
		lines := make([]string, 0, len(*content))
		for _, h := range *content {
			lines = append(lines, fmt.Sprintf("**%s**: %s", h.Identifier, h.Instruction))
		}
		p.Send(channel, botMessage(channel, strings.Join(lines, "\n")))

	default:
		logger.Warnf("Unexpected output %#v", output)
	}
}

func botMessage(channel string, contents string) message.Message {
	return message.Message{
		Contents:   contents,
		Sender:     message.BotSender,
		Source:     message.Source{DiscordID: channel, Type: message.DISCORD},
		ReceivedAt: time.Now(),
	}
}
