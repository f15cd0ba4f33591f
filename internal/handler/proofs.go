package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/recycleflux/adminbot/internal/domain"
	"github.com/recycleflux/adminbot/internal/service"
)

// proofKeyFromData parses "pr_xx|taskID|userID" callback payloads.
func proofKeyFromData(data, prefix string) (domain.ProofKey, bool) {
	rest := strings.TrimPrefix(data, prefix)
	parts := strings.SplitN(rest, "|", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return domain.ProofKey{}, false
	}
	return domain.ProofKey{TaskID: parts[0], UserID: parts[1]}, true
}

func (h *Handler) handleProofSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, data, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	sess, ok := h.requireAdmin(ctx, b, chatID)
	if !ok {
		return
	}
	key, ok := proofKeyFromData(data, "pr_sel|")
	if !ok {
		return
	}
	console := h.consoles.Get(chatID)
	console.ToggleSelect(key)
	h.sendDetail(ctx, b, chatID, messageID, console, sess)
}

func (h *Handler) handleProofApprove(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.decideProof(ctx, b, update, "pr_ok|", true)
}

func (h *Handler) handleProofReject(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.decideProof(ctx, b, update, "pr_no|", false)
}

// decideProof applies a single review decision: one request, then an
// in-place patch of the review panel and the detail's completion list.
// No refetch happens for single decisions.
func (h *Handler) decideProof(ctx context.Context, b *bot.Bot, update *models.Update, prefix string, approve bool) {
	chatID, messageID, data, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	sess, ok := h.requireAdmin(ctx, b, chatID)
	if !ok {
		return
	}
	key, ok := proofKeyFromData(data, prefix)
	if !ok {
		return
	}
	console := h.consoles.Get(chatID)
	campaignID := console.SelectedID()
	if campaignID == "" {
		return
	}
	if _, found := console.FindProof(key); !found {
		return
	}

	if err := h.api.ApproveProof(ctx, sess.Token, campaignID, key.TaskID, key.UserID, approve); err != nil {
		h.reportAPIError(ctx, b, chatID, err)
		return
	}

	if approve {
		console.ApplyDecision(key, domain.ProofCompleted)
		console.MarkCompletionApproved(key)
	} else {
		// Rejection keeps the proof visible in the review panel but
		// removes the completion from the campaign detail.
		console.ApplyDecision(key, domain.ProofRejected)
		console.RemoveCompletion(key)
	}
	console.MarkNotificationsRead(key)
	h.sendDetail(ctx, b, chatID, messageID, console, sess)
}

func (h *Handler) handleBulkApprove(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.decideBulk(ctx, b, update, true)
}

func (h *Handler) handleBulkReject(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.decideBulk(ctx, b, update, false)
}

// decideBulk sends one request per selected pair, in group order. The
// groups are refetched afterwards whether or not every request
// succeeded, so the panel converges on the backend's view; a partial
// failure is reported and suppresses the success notice.
func (h *Handler) decideBulk(ctx context.Context, b *bot.Bot, update *models.Update, approve bool) {
	chatID, messageID, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	sess, ok := h.requireAdmin(ctx, b, chatID)
	if !ok {
		return
	}
	console := h.consoles.Get(chatID)
	campaignID := console.SelectedID()
	if campaignID == "" {
		return
	}
	keys := console.SelectedKeys()
	if len(keys) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "Nothing selected."})
		return
	}

	gen := console.BeginProofFetch()
	outcome := service.DecideProofs(ctx, h.api, sess.Token, campaignID, keys, approve)
	console.MarkNotificationsRead(outcome.Decided...)

	switch {
	case outcome.Failed == 0:
		verb := "approved"
		if !approve {
			verb = "rejected"
		}
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("✅ %d proofs %s.", len(outcome.Decided), verb),
		})
	default:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("⚠️ %d of %d decisions failed.", outcome.Failed, len(keys)),
		})
	}

	if outcome.FetchErr != nil {
		h.reportAPIError(ctx, b, chatID, outcome.FetchErr)
		return
	}
	if !console.CompleteProofFetch(gen, outcome.Groups) {
		return
	}
	console.IngestPending(outcome.Groups)
	h.sendDetail(ctx, b, chatID, messageID, console, sess)
}

func (h *Handler) handleProofRefresh(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	sess, ok := h.requireAuth(ctx, b, chatID)
	if !ok {
		return
	}
	console := h.consoles.Get(chatID)
	if console.SelectedID() == "" {
		return
	}
	if !h.fetchProofs(ctx, b, chatID, console, sess) {
		return
	}
	h.sendDetail(ctx, b, chatID, messageID, console, sess)
}
