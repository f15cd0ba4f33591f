package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/recycleflux/adminbot/internal/state"
)

// PollProofs sweeps every console that has a campaign open and pulls
// fresh proof groups for it. New pending submissions become unread
// notifications and a push notice in the chat; already-known pairs are
// skipped, so the sweep is idempotent between reviews.
func (h *Handler) PollProofs(ctx context.Context) {
	h.consoles.Each(func(chatID int64, console *state.Console) {
		campaignID := console.SelectedID()
		if campaignID == "" {
			return
		}

		sess, err := h.sessions.Load(ctx, chatID)
		if err != nil || !sess.Authenticated() || !sess.IsAdmin {
			return
		}

		groups, err := h.api.GetProofs(ctx, sess.Token, campaignID)
		if err != nil {
			slog.Debug("proof poll fetch", "error", err, "chat_id", chatID)
			return
		}

		// The fetched groups only feed the accumulator here; the review
		// panel and its selection are left untouched so a poll never
		// interrupts an in-progress bulk review.
		fresh := console.IngestPending(groups)
		if len(fresh) == 0 {
			return
		}

		text := fmt.Sprintf("🔔 %d new proof submissions — /notifications", len(fresh))
		if len(fresh) == 1 {
			text = fmt.Sprintf("🔔 %s submitted a proof for %q — /notifications", fresh[0].Username, fresh[0].TaskTitle)
		}
		if _, err := h.bot.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
			slog.Warn("proof poll notify", "error", err, "chat_id", chatID)
		}
	})
}
