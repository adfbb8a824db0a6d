package discord

import "errors"

// ErrEmptyToken indicates that no token was provided and no session was injected via WithSession.
var ErrEmptyToken = errors.New("token must be set or a session must be provided via WithSession")

// ErrNilBridge indicates that NewPier was called without a Bridge.
var ErrNilBridge = errors.New("bridge must not be nil")

// ErrNoAuthor indicates that the given message has no author.
var ErrNoAuthor = errors.New("message has no author")

// ErrNotGuildMessage indicates that the given message was not posted in a server channel.
var ErrNotGuildMessage = errors.New("message was not posted in a guild")

// ErrEmptyMessage indicates that the given message has neither text nor attachments.
var ErrEmptyMessage = errors.New("message has neither content nor attachments")

// ErrSelfMessage indicates that the given event was produced by the pier itself.
var ErrSelfMessage = errors.New("message originates from this pier")

// ErrNotConnected indicates that the Discord session has not been established yet.
var ErrNotConnected = errors.New("discord connection has not been initialized yet")

// ErrChannelNotFound indicates that no text channel matches the given key.
var ErrChannelNotFound = errors.New("channel not found")

// ErrInvalidWebhookURL indicates that a configured webhook URL could not be parsed.
var ErrInvalidWebhookURL = errors.New("invalid webhook url")

// ErrWebhookClosed indicates that a send was attempted on a closed webhook endpoint.
var ErrWebhookClosed = errors.New("webhook endpoint is closed")
