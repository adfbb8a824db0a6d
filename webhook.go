package discord

import (
	"fmt"
	"regexp"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"

	"github.com/oklahomer/go-discord-pier/message"
)

var webhookURLPattern = regexp.MustCompile(`^https://(?:(?:ptb|canary)\.)?discord(?:app)?\.com/api(?:/v\d+)?/webhooks/(\d+)/([\w-]+)/?$`)

// webhookExecutor is the part of discordgo.Session a Webhook needs to post.
type webhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Webhook is a registered webhook endpoint for a single Discord channel.
type Webhook struct {
	// ChannelKey is the channel ID or name this webhook is registered for.
	ChannelKey string

	// ID is the webhook's own identifier. Messages posted through the webhook carry it as their author ID.
	ID string

	token  string
	closed atomic.Bool
}

// ParseWebhookURL extracts the webhook ID and token from a Discord webhook URL.
func ParseWebhookURL(rawURL string) (id string, token string, err error) {
	match := webhookURLPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidWebhookURL, rawURL)
	}

	return match[1], match[2], nil
}

// NewWebhook creates a Webhook for the given channel from its URL.
func NewWebhook(channelKey string, rawURL string) (*Webhook, error) {
	id, token, err := ParseWebhookURL(rawURL)
	if err != nil {
		return nil, err
	}

	return &Webhook{
		ChannelKey: channelKey,
		ID:         id,
		token:      token,
	}, nil
}

// Execute posts the given params through the webhook without waiting for the created message.
func (w *Webhook) Execute(s webhookExecutor, params *discordgo.WebhookParams) error {
	if w.closed.Load() {
		return ErrWebhookClosed
	}

	_, err := s.WebhookExecute(w.ID, w.token, false, params)
	if err != nil {
		return fmt.Errorf("failed to execute webhook %s: %w", w.ID, err)
	}

	return nil
}

// Close marks the endpoint closed. Subsequent Execute calls fail with ErrWebhookClosed.
func (w *Webhook) Close() {
	w.closed.Store(true)
}

// WebhookRegistry maps channel keys to webhooks.
// It is built once and never modified afterwards, so concurrent readers need no locking.
type WebhookRegistry struct {
	hooks map[string]*Webhook
}

// NewWebhookRegistry builds a registry from the given configuration.
// Malformed entries are logged and skipped.
func NewWebhookRegistry(configs []*WebhookConfig) *WebhookRegistry {
	hooks := make(map[string]*Webhook, len(configs))
	for _, c := range configs {
		if c == nil {
			continue
		}

		hook, err := NewWebhook(c.DiscordChannel, c.WebhookURL)
		if err != nil {
			logger.Errorf("Webhook for %s with url %s is not valid: %+v", c.DiscordChannel, c.WebhookURL, err)
			continue
		}

		hooks[c.DiscordChannel] = hook
		logger.Infof("Webhook for %s registered", c.DiscordChannel)
	}

	return &WebhookRegistry{hooks: hooks}
}

// Lookup returns the webhook registered for the given channel key.
func (r *WebhookRegistry) Lookup(channelKey string) (*Webhook, bool) {
	if r == nil {
		return nil, false
	}

	hook, ok := r.hooks[channelKey]
	return hook, ok
}

// LookupSource returns the webhook registered for the given Source, trying the channel ID before the channel name.
func (r *WebhookRegistry) LookupSource(source message.Source) (*Webhook, bool) {
	if source.DiscordID != "" {
		if hook, ok := r.Lookup(source.DiscordID); ok {
			return hook, true
		}
	}

	if source.ChannelName != "" {
		return r.Lookup(source.ChannelName)
	}

	return nil, false
}

// Len returns the number of registered webhooks.
func (r *WebhookRegistry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.hooks)
}

// Close closes every registered webhook.
func (r *WebhookRegistry) Close() {
	if r == nil {
		return
	}

	for _, hook := range r.hooks {
		hook.Close()
	}
}
