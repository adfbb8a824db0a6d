package discord

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/oklahomer/go-discord-pier/message"
)

// zeroWidthSpace replaces whitespace-only contents. Discord refuses to deliver those.
const zeroWidthSpace = "\u200b"

// GuildSnapshot is a point-in-time copy of a guild's members and custom emojis.
// A snapshot is taken once per outbound message and discarded after the send.
// It holds values only, so it can be read while the state cache keeps changing.
type GuildSnapshot struct {
	Members []GuildMember
	Emojis  []GuildEmoji
}

// GuildMember is the part of a guild member an outbound message needs.
type GuildMember struct {
	UserID      string
	DisplayName string
	AvatarURL   string
}

// GuildEmoji is a guild's custom emoji.
type GuildEmoji struct {
	ID       string
	Name     string
	Animated bool
}

// newGuildSnapshot copies the member and emoji lists of the given guild.
// The caller must hold the state's read lock; members are updated in place by the state.
func newGuildSnapshot(guild *discordgo.Guild) *GuildSnapshot {
	snapshot := &GuildSnapshot{
		Members: make([]GuildMember, 0, len(guild.Members)),
		Emojis:  make([]GuildEmoji, 0, len(guild.Emojis)),
	}

	for _, m := range guild.Members {
		if m == nil || m.User == nil {
			continue
		}

		snapshot.Members = append(snapshot.Members, GuildMember{
			UserID:      m.User.ID,
			DisplayName: memberDisplayName(m),
			AvatarURL:   m.User.AvatarURL(""),
		})
	}

	for _, e := range guild.Emojis {
		if e == nil {
			continue
		}

		snapshot.Emojis = append(snapshot.Emojis, GuildEmoji{ID: e.ID, Name: e.Name, Animated: e.Animated})
	}

	return snapshot
}

// MemberByDisplayName returns the first member whose current display name equals the given name.
// Members sharing a display name cannot be told apart.
func (g *GuildSnapshot) MemberByDisplayName(name string) (GuildMember, bool) {
	if g == nil {
		return GuildMember{}, false
	}

	for _, m := range g.Members {
		if m.DisplayName == name {
			return m, true
		}
	}

	return GuildMember{}, false
}

func memberDisplayName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}

	if m.User != nil {
		return m.User.Username
	}

	return ""
}

func (m GuildMember) mentionTag() string {
	return "<@!" + m.UserID + ">"
}

func (e GuildEmoji) tag() string {
	if e.Animated {
		return "<a:" + e.Name + ":" + e.ID + ">"
	}

	return "<:" + e.Name + ":" + e.ID + ">"
}

type trigger struct {
	text string
	tag  string
}

// Translate returns a copy of msg whose contents have human-readable mentions and emotes
// replaced with Discord's native tags. msg itself is left untouched.
func Translate(msg message.Message, guild *GuildSnapshot) message.Message {
	return msg.WithContents(TranslateText(msg.Contents, guild))
}

// TranslateText rewrites "@Name" mentions of current guild members and ":emote:" references
// to the guild's custom emojis into their native tags.
// The result is never empty or whitespace-only.
func TranslateText(text string, guild *GuildSnapshot) string {
	if guild != nil {
		for _, t := range mentionTriggers(guild.Members) {
			text = replaceTarget(text, t.text, t.tag, isSeparated)
		}

		for _, e := range guild.Emojis {
			if e.Name == "" || e.ID == "" {
				continue
			}
			text = replaceTarget(text, ":"+e.Name+":", e.tag(), isNotNativeEmoji)
		}
	}

	if strings.TrimSpace(text) == "" {
		return zeroWidthSpace
	}

	return text
}

// mentionTriggers lists "@Name" triggers, longest first, so that "@Bob Smith" wins over "@Bob".
func mentionTriggers(members []GuildMember) []trigger {
	triggers := make([]trigger, 0, len(members))
	for _, m := range members {
		if m.UserID == "" || m.DisplayName == "" {
			continue
		}

		triggers = append(triggers, trigger{text: "@" + m.DisplayName, tag: m.mentionTag()})
	}

	sort.SliceStable(triggers, func(i, j int) bool {
		return len(triggers[i].text) > len(triggers[j].text)
	})

	return triggers
}

// replaceTarget replaces every occurrence of target in base with replacement
// as long as accept approves the text surrounding the occurrence.
func replaceTarget(base string, target string, replacement string, accept func(before, after string) bool) string {
	if target == "" || !strings.Contains(base, target) {
		return base
	}

	var b strings.Builder
	start := 0
	for {
		idx := strings.Index(base[start:], target)
		if idx < 0 {
			break
		}

		idx += start
		end := idx + len(target)
		b.WriteString(base[start:idx])
		if accept(base[:idx], base[end:]) {
			b.WriteString(replacement)
		} else {
			b.WriteString(target)
		}
		start = end
	}
	b.WriteString(base[start:])

	return b.String()
}

// isSeparated requires that neither neighbour of a mention is part of a word,
// so "mail@Bob.com" or "@Bobby" are not taken as a mention of Bob.
func isSeparated(before, after string) bool {
	if r, _ := utf8.DecodeLastRuneInString(before); r != utf8.RuneError && isWordRune(r) {
		return false
	}

	if r, _ := utf8.DecodeRuneInString(after); r != utf8.RuneError && isWordRune(r) {
		return false
	}

	return true
}

// isNotNativeEmoji skips ":name:" sequences that are already part of a "<:name:id>" tag.
func isNotNativeEmoji(before, _ string) bool {
	return !strings.HasSuffix(before, "<") && !strings.HasSuffix(before, "<a")
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
