package discord

import (
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/oklahomer/go-discord-pier/message"
)

const (
	testGuildID      = "guild-1"
	testBotID        = "bot-1"
	testGeneralID    = "100"
	testDirectID     = "200"
	testReadonlyID   = "300"
	testWebhookID    = "555"
	testWebhookToken = "token-abc"
	testWebhookURL   = "https://discord.com/api/webhooks/" + testWebhookID + "/" + testWebhookToken
	testBotAvatarURL = "https://cdn.example.com/bot.png"
)

// mockSession implements the session interface for testing.
type mockSession struct {
	addHandlerFunc            func(handler interface{}) func()
	openFunc                  func() error
	closeFunc                 func() error
	updateGameStatusFunc      func(idle int, name string) error
	channelMessageSendFunc    func(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	channelMessagesPinnedFunc func(channelID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	webhookExecuteFunc        func(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

func (m *mockSession) AddHandler(handler interface{}) func() {
	if m.addHandlerFunc != nil {
		return m.addHandlerFunc(handler)
	}
	return func() {}
}

func (m *mockSession) Open() error {
	if m.openFunc != nil {
		return m.openFunc()
	}
	return nil
}

func (m *mockSession) Close() error {
	if m.closeFunc != nil {
		return m.closeFunc()
	}
	return nil
}

func (m *mockSession) UpdateGameStatus(idle int, name string) error {
	if m.updateGameStatusFunc != nil {
		return m.updateGameStatusFunc(idle, name)
	}
	return nil
}

func (m *mockSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.channelMessageSendFunc != nil {
		return m.channelMessageSendFunc(channelID, content, options...)
	}
	return &discordgo.Message{}, nil
}

func (m *mockSession) ChannelMessagesPinned(channelID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	if m.channelMessagesPinnedFunc != nil {
		return m.channelMessagesPinnedFunc(channelID, options...)
	}
	return []*discordgo.Message{}, nil
}

func (m *mockSession) WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.webhookExecuteFunc != nil {
		return m.webhookExecuteFunc(webhookID, token, wait, data, options...)
	}
	return nil, nil
}

// mockBridge records everything the Pier reports to the bridge.
type mockBridge struct {
	mu         sync.Mutex
	submitted  []message.Message
	statistics []message.Message
	sentAt     []time.Time
}

func (b *mockBridge) SubmitMessage(msg message.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitted = append(b.submitted, msg)
}

func (b *mockBridge) UpdateStatistics(msg message.Message, sentAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statistics = append(b.statistics, msg)
	b.sentAt = append(b.sentAt, sentAt)
}

func (b *mockBridge) Submitted() []message.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]message.Message(nil), b.submitted...)
}

func (b *mockBridge) Statistics() []message.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]message.Message(nil), b.statistics...)
}

func testMember(userID, username, nick string) *discordgo.Member {
	return &discordgo.Member{
		GuildID: testGuildID,
		Nick:    nick,
		User:    &discordgo.User{ID: userID, Username: username, Avatar: "avatar-" + userID},
	}
}

// newTestState builds a state holding a single guild:
// "general" is webhook enabled in newTestConfig, "direct" is writable by the bot,
// "readonly" denies sending, and two channels share the name "dup".
func newTestState(t *testing.T) *discordgo.State {
	t.Helper()

	state := discordgo.NewState()
	state.User = &discordgo.User{ID: testBotID, Username: "RelayBot"}

	guild := &discordgo.Guild{
		ID:              testGuildID,
		Name:            "test guild",
		SystemChannelID: testGeneralID,
		Roles: []*discordgo.Role{
			{ID: testGuildID, Name: "@everyone", Permissions: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages},
		},
		Channels: []*discordgo.Channel{
			{ID: testGeneralID, GuildID: testGuildID, Name: "general", Type: discordgo.ChannelTypeGuildText},
			{ID: testDirectID, GuildID: testGuildID, Name: "direct", Type: discordgo.ChannelTypeGuildText},
			{
				ID:      testReadonlyID,
				GuildID: testGuildID,
				Name:    "readonly",
				Type:    discordgo.ChannelTypeGuildText,
				PermissionOverwrites: []*discordgo.PermissionOverwrite{
					{ID: testGuildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionSendMessages},
				},
			},
			{ID: "400", GuildID: testGuildID, Name: "lounge", Type: discordgo.ChannelTypeGuildVoice},
			{ID: "500", GuildID: testGuildID, Name: "dup", Type: discordgo.ChannelTypeGuildText},
			{ID: "501", GuildID: testGuildID, Name: "dup", Type: discordgo.ChannelTypeGuildText},
		},
		Members: []*discordgo.Member{
			testMember(testBotID, "RelayBot", ""),
			testMember("u-bob", "bob_account", "Bob"),
			testMember("u-alice", "Alice", ""),
		},
		Emojis: []*discordgo.Emoji{
			{ID: "900", Name: "smile"},
			{ID: "901", Name: "party", Animated: true},
		},
	}

	if err := state.GuildAdd(guild); err != nil {
		t.Fatalf("Failed to set up state: %+v", err)
	}

	return state
}

func newTestConfig() *Config {
	config := NewConfig()
	config.WebHooks = []*WebhookConfig{
		{DiscordChannel: "general", WebhookURL: testWebhookURL},
	}
	return config
}

// newTestPier returns a connected Pier backed by the given mocks and newTestState.
func newTestPier(t *testing.T, s *mockSession, bridge *mockBridge, config *Config) *Pier {
	t.Helper()

	pier := &Pier{
		config:   config,
		bridge:   bridge,
		session:  s,
		state:    newTestState(t),
		webhooks: NewWebhookRegistry(config.WebHooks),
	}
	pier.connected.Store(true)
	pier.self.Store(&botIdentity{ID: testBotID, Name: "RelayBot", AvatarURL: testBotAvatarURL})

	return pier
}
