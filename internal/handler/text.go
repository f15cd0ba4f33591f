package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleUpdate is the bot's default handler: it routes free text and
// attachments into whatever conversation is open in the chat. Commands
// and callbacks never reach it; they match registered handlers first.
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.Chat.Type != "private" {
		return
	}
	chatID := msg.Chat.ID

	conv := h.conv(chatID)
	if conv == nil {
		return
	}

	if msg.Document != nil || len(msg.Photo) > 0 {
		switch conv.kind {
		case convCampaignForm:
			h.handleCampaignFormMedia(ctx, b, chatID, conv, msg)
		case convTaskForm:
			h.handleTaskFormMedia(ctx, b, chatID, conv, msg)
		}
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		return
	}

	switch conv.kind {
	case convSignup:
		h.handleSignupText(ctx, b, chatID, conv, text)
	case convLogin:
		h.handleLoginText(ctx, b, chatID, text)
	case convCampaignForm:
		h.handleCampaignFormText(ctx, b, chatID, conv, text)
	case convTaskForm:
		h.handleTaskFormText(ctx, b, chatID, conv, text)
	}
}
