package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/recycleflux/adminbot/internal/domain"
	"github.com/recycleflux/adminbot/internal/middleware"
	"github.com/recycleflux/adminbot/internal/service"
)

func (h *Handler) handleLoginCommand(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.startLogin(ctx, b, update.Message.Chat.ID)
}

func (h *Handler) handleLoginCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	h.startLogin(ctx, b, chatID)
}

func (h *Handler) startLogin(ctx context.Context, b *bot.Bot, chatID int64) {
	sess := middleware.GetSession(ctx)
	if sess.Authenticated() {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "You are already signed in. Use /logout first.",
		})
		return
	}
	h.setConv(chatID, &conversation{kind: convLogin})
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🔑 Paste your RecycleFlux access token:",
	})
}

// handleLoginText consumes the pasted token, peeks at its claims and
// persists the session.
func (h *Handler) handleLoginText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	claims, err := service.PeekClaims(text)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ That does not look like a valid token. Paste it again or /cancel.",
		})
		return
	}
	if claims.Expired() {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ That token is expired. Paste a fresh one or /cancel.",
		})
		return
	}

	old := middleware.GetSession(ctx)
	sess := &domain.Session{
		ChatID:   chatID,
		Token:    text,
		IsAdmin:  claims.IsAdmin,
		DarkMode: old.DarkMode,
	}
	if claims.UserID != "" {
		sess.Profile = &domain.Profile{ID: claims.UserID, Username: claims.Subject}
	}
	if err := h.sessions.Save(ctx, sess); err != nil {
		slog.Error("save session", "error", err, "chat_id", chatID)
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "❌ Could not store the session. Try again."})
		return
	}
	h.setConv(chatID, nil)

	text = "✅ Signed in. Use /campaigns to get started."
	if claims.IsAdmin {
		text = "✅ Signed in as admin. Use /campaigns to get started."
	}
	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
}

func (h *Handler) handleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.doLogout(ctx, b, update.Message.Chat.ID)
}

func (h *Handler) handleLogoutCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	h.doLogout(ctx, b, chatID)
}

func (h *Handler) doLogout(ctx context.Context, b *bot.Bot, chatID int64) {
	sess := middleware.GetSession(ctx)
	if !sess.Authenticated() {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "You are not signed in."})
		return
	}
	if err := h.sessions.Clear(ctx, chatID); err != nil {
		slog.Error("clear session", "error", err, "chat_id", chatID)
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "❌ Could not sign out. Try again."})
		return
	}
	h.setConv(chatID, nil)
	h.consoles.Drop(chatID)
	h.sendLoginView(ctx, b, chatID, "👋 Signed out.")
}
