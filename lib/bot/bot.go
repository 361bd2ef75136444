// Package bot wires Telegram updates into the challenge registry. It decides
// who gets challenged, treats chat messages from gated members as candidate
// nonces, and drives the platform-side mutes and unmutes.
package bot

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/uvensys/cerberus/internal"
	"github.com/uvensys/cerberus/lib/challenge"
	"github.com/uvensys/cerberus/lib/challenge/proofofwork"
	"github.com/uvensys/cerberus/lib/localization"
)

// API is the outbound surface of the messaging platform. Every call is
// best-effort: failures get logged and swallowed, they never roll back a
// registry transition. A member can end up verified in the registry while
// still muted on the platform, that is a recoverable inconsistency and an
// admin can fix it with /challenge.
type API interface {
	// Restrict takes away a member's permission to send messages.
	Restrict(chatID, userID int64) error

	// Unrestrict restores a member's permission to send messages.
	Unrestrict(chatID, userID int64) error

	// Send posts a message to a chat.
	Send(chatID int64, text string) error

	// Reply posts a message replying to another message.
	Reply(chatID int64, messageID int, text string) error

	// IsAdmin reports whether a member administrates a chat.
	IsAdmin(chatID, userID int64) (bool, error)
}

// Options configures a Bot.
type Options struct {
	API      API
	Registry *challenge.Registry

	// BaseURL is where the solver page lives. The challenge secret and
	// difficulty get appended as query parameters.
	BaseURL string
}

type Bot struct {
	api  API
	reg  *challenge.Registry
	opts Options
}

func New(opts Options) (*Bot, error) {
	if opts.API == nil {
		return nil, fmt.Errorf("bot: platform API is required")
	}

	if opts.Registry == nil {
		return nil, fmt.Errorf("bot: challenge registry is required")
	}

	if opts.BaseURL == "" {
		return nil, fmt.Errorf("bot: solver page base URL is required")
	}

	return &Bot{
		api:  opts.API,
		reg:  opts.Registry,
		opts: opts,
	}, nil
}

// HandleUpdate dispatches one Telegram update. Updates the bot does not care
// about fall through silently.
func (b *Bot) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	lg := internal.GetUpdateLogger(upd)

	switch {
	case upd.ChatMember != nil:
		b.handleMembership(ctx, lg, upd.ChatMember)
	case upd.Message != nil:
		b.handleMessage(ctx, lg, upd.Message)
	}
}

func (b *Bot) handleMembership(ctx context.Context, lg *slog.Logger, cm *tgbotapi.ChatMemberUpdated) {
	user := cm.NewChatMember.User
	if user == nil {
		return
	}

	switch cm.NewChatMember.Status {
	case "member":
		if user.IsBot {
			return
		}

		// Only users freshly transitioning to member get challenged.
		// Demoted admins and users who already held member status are
		// left alone.
		switch cm.OldChatMember.Status {
		case "member", "administrator", "creator":
			return
		}

		b.challengeMember(ctx, lg, cm.Chat.ID, user, "welcome")
	case "left", "kicked":
		// No point keeping a challenge around for somebody who is gone.
		if err := b.reg.Revoke(ctx, cm.Chat.ID, user.ID); err != nil {
			lg.Error("can't revoke challenge", "err", err)
		}
	}
}

// challengeMember restricts a member and issues them a fresh challenge.
// messageID names the localized announcement to post.
func (b *Bot) challengeMember(ctx context.Context, lg *slog.Logger, chatID int64, user *tgbotapi.User, messageID string) {
	if err := b.api.Restrict(chatID, user.ID); err != nil {
		// Without restrict rights the member stays unmuted, but the
		// challenge flow still works.
		lg.Warn("can't restrict member", "user_id", user.ID, "err", err)
	}

	ch, err := b.reg.Issue(ctx, chatID, user.ID)
	if err != nil {
		lg.Error("can't issue challenge", "user_id", user.ID, "err", err)
		return
	}

	loc := localization.For(user.LanguageCode)
	text := loc.Tf(messageID, map[string]any{
		"Mention": mention(user),
		"URL":     proofofwork.URL(b.opts.BaseURL, ch.Secret, ch.Difficulty),
	})

	if err := b.api.Send(chatID, text); err != nil {
		lg.Error("can't send challenge message", "user_id", user.ID, "err", err)
	}
}

func (b *Bot) handleMessage(ctx context.Context, lg *slog.Logger, m *tgbotapi.Message) {
	if m.From == nil || m.From.IsBot || m.Chat == nil {
		return
	}

	if m.IsCommand() {
		b.handleCommand(ctx, lg, m)
		return
	}

	// An empty candidate is just another malformed nonce: a gated member
	// gets the resubmission prompt, everybody else falls out on
	// OutcomeNoChallenge.
	candidate := strings.TrimSpace(m.Text)

	outcome, err := b.reg.Verify(ctx, m.Chat.ID, m.From.ID, candidate)
	if err != nil {
		lg.Error("can't verify submission", "err", err)
		if outcome != challenge.OutcomeAccepted {
			return
		}
	}

	loc := localization.For(m.From.LanguageCode)

	switch outcome {
	case challenge.OutcomeNoChallenge:
		// An ordinary chat message from a verified member.
	case challenge.OutcomeInvalidFormat:
		b.reply(lg, m, loc.T("nonce_prompt"))
	case challenge.OutcomeRejected:
		b.reply(lg, m, loc.T("verify_retry"))
	case challenge.OutcomeAccepted:
		if err := b.api.Unrestrict(m.Chat.ID, m.From.ID); err != nil {
			lg.Warn("can't unrestrict member", "err", err)
		}
		b.reply(lg, m, loc.T("verify_success"))
	}
}

func (b *Bot) handleCommand(ctx context.Context, lg *slog.Logger, m *tgbotapi.Message) {
	switch m.Command() {
	case "challenge":
		b.challengeMember(ctx, lg, m.Chat.ID, m.From, "rechallenge")
	case "mute":
		b.muteCommand(ctx, lg, m)
	}
}

func (b *Bot) muteCommand(ctx context.Context, lg *slog.Logger, m *tgbotapi.Message) {
	loc := localization.For(m.From.LanguageCode)

	ok, err := b.api.IsAdmin(m.Chat.ID, m.From.ID)
	if err != nil {
		lg.Error("can't check admin status", "err", err)
		return
	}

	if !ok {
		b.reply(lg, m, loc.T("not_admin"))
		return
	}

	var target *tgbotapi.User
	if reply := m.ReplyToMessage; reply != nil && reply.From != nil {
		target = reply.From
	} else {
		id, err := strconv.ParseInt(strings.TrimSpace(m.CommandArguments()), 10, 64)
		if err != nil {
			b.reply(lg, m, loc.T("mute_usage"))
			return
		}
		target = &tgbotapi.User{ID: id}
	}

	if target.IsBot {
		return
	}

	b.challengeMember(ctx, lg, m.Chat.ID, target, "muted")
}

func (b *Bot) reply(lg *slog.Logger, m *tgbotapi.Message, text string) {
	if err := b.api.Reply(m.Chat.ID, m.MessageID, text); err != nil {
		lg.Error("can't send reply", "err", err)
	}
}

// mention renders an HTML mention link for a user. Display names come from
// users, so they get escaped.
func mention(user *tgbotapi.User) string {
	name := user.FirstName
	if name == "" {
		name = user.UserName
	}
	if name == "" {
		name = strconv.FormatInt(user.ID, 10)
	}

	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, user.ID, html.EscapeString(name))
}
