package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	tg "github.com/recycleflux/adminbot/internal/telegram"
)

// handleNotifications shows the accumulated proof notices, newest
// first. Read notices stay in the feed; only their marker changes.
func (h *Handler) handleNotifications(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	sess, ok := h.requireAuth(ctx, b, chatID)
	if !ok {
		return
	}

	console := h.consoles.Get(chatID)
	text := renderNotifications(console.Notifications(), sess.DarkMode)
	if err := tg.SendLongMessage(ctx, b, chatID, text); err != nil {
		slog.Error("send notifications", "error", err, "chat_id", chatID)
	}
}
