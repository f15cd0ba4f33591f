package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/recycleflux/adminbot/internal/domain"
	"github.com/recycleflux/adminbot/internal/middleware"
	tg "github.com/recycleflux/adminbot/internal/telegram"
)

func (h *Handler) handleSettings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	sess := middleware.GetSession(ctx)
	h.sendSettings(ctx, b, chatID, 0, sess)
}

// handleDarkModeToggle flips the theme preference. It is stored on the
// session row, so it survives logout.
func (h *Handler) handleDarkModeToggle(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	sess := middleware.GetSession(ctx)
	sess.ChatID = chatID
	sess.DarkMode = !sess.DarkMode

	if sess.UpdatedAt.IsZero() {
		// No session row yet: upsert one so the preference sticks.
		if err := h.sessions.Save(ctx, sess); err != nil {
			slog.Error("save session", "error", err, "chat_id", chatID)
		}
	} else if err := h.sessions.SetDarkMode(ctx, chatID, sess.DarkMode); err != nil {
		slog.Error("set dark mode", "error", err, "chat_id", chatID)
	}
	h.sendSettings(ctx, b, chatID, messageID, sess)
}

func (h *Handler) sendSettings(ctx context.Context, b *bot.Bot, chatID int64, messageID int, sess *domain.Session) {
	var sb strings.Builder
	sb.WriteString("⚙️ *Settings*\n\n")
	if sess.Authenticated() && sess.Profile != nil {
		sb.WriteString("👤 *" + sess.Profile.Username + "*")
		if sess.Profile.Email != "" {
			sb.WriteString(" · " + sess.Profile.Email)
		}
		sb.WriteString("\n")
		if sess.IsAdmin {
			sb.WriteString("🛡 Admin\n")
		}
		if sess.Passkey != "" {
			sb.WriteString("🔐 Passkey: `" + sess.Passkey + "`\n")
		}
	} else {
		sb.WriteString("Not signed in.\n")
	}

	rows := [][]models.InlineKeyboardButton{
		tg.ButtonRow(tg.ToggleButton("🌙 Dark mode", sess.DarkMode, "set_dark")),
	}
	if sess.Authenticated() {
		rows = append(rows, tg.ButtonRow(tg.InlineButton("👋 Log out", "set_logout")))
	} else {
		rows = append(rows, tg.ButtonRow(
			tg.InlineButton("🔑 Log in", "auth_login"),
			tg.InlineButton("📝 Sign up", "auth_signup"),
		))
	}
	tg.EditOrSend(ctx, b, chatID, messageID, sb.String(), tg.InlineKeyboard(rows...))
}
