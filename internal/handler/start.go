package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/recycleflux/adminbot/internal/middleware"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}
	chatID := update.Message.Chat.ID

	// Parse deep link payload: r_CODE prefills the referral code for
	// the next signup, like the query parameter did in the browser.
	parts := strings.SplitN(update.Message.Text, " ", 2)
	if len(parts) > 1 && strings.HasPrefix(parts[1], "r_") {
		code := strings.TrimPrefix(parts[1], "r_")
		if code != "" {
			h.mu.Lock()
			h.referrals[chatID] = code
			h.mu.Unlock()
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "🎁 Referral code applied! It will be used when you sign up.",
			})
		}
	}

	sess := middleware.GetSession(ctx)
	greeting := "♻️ *RecycleFlux Console*\n\n"
	if sess.Authenticated() && sess.Profile != nil {
		greeting += "Welcome back, *" + sess.Profile.FullName + "*!\n\n"
	}
	greeting += "📋 *Commands:*\n" +
		"/campaigns — Manage campaigns\n" +
		"/notifications — Pending proof notices\n" +
		"/settings — Preferences\n" +
		"/signup — Create an account\n" +
		"/login — Sign in with a token\n" +
		"/logout — Sign out\n" +
		"/cancel — Abort the current form"

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      greeting,
		ParseMode: models.ParseModeMarkdownV1,
	})
}
