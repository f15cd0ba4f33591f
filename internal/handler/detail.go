package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/recycleflux/adminbot/internal/domain"
	"github.com/recycleflux/adminbot/internal/state"
	tg "github.com/recycleflux/adminbot/internal/telegram"
)

// handleTabSwitch switches the detail view between tasks, participants
// and proofs. Opening the proofs tab triggers its own fetch; the other
// tabs render from the cached detail.
func (h *Handler) handleTabSwitch(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, data, ok := callback(ctx, b, update)
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

	tab := state.Tab(strings.TrimPrefix(data, "cd_tab_"))
	switch tab {
	case state.TabTasks, state.TabParticipants:
		console.SetTab(tab)
	case state.TabProofs:
		console.SetTab(tab)
		if !h.fetchProofs(ctx, b, chatID, console, sess) {
			return
		}
	default:
		return
	}
	h.sendDetail(ctx, b, chatID, messageID, console, sess)
}

// fetchProofs refreshes the review groups for the selected campaign and
// feeds the notification accumulator. Returns false when the fetch
// failed or was superseded.
func (h *Handler) fetchProofs(ctx context.Context, b *bot.Bot, chatID int64, console *state.Console, sess *domain.Session) bool {
	gen := console.BeginProofFetch()
	groups, err := h.api.GetProofs(ctx, sess.Token, console.SelectedID())
	if err != nil {
		h.reportAPIError(ctx, b, chatID, err)
		return false
	}
	if !console.CompleteProofFetch(gen, groups) {
		return false
	}
	console.IngestPending(groups)
	return true
}

func (h *Handler) handleCampaignDeleteAsk(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	if _, ok := h.requireAdmin(ctx, b, chatID); !ok {
		return
	}
	console := h.consoles.Get(chatID)
	detail := console.Detail()
	if detail == nil {
		return
	}

	tg.EditOrSend(ctx, b, chatID, messageID,
		"🗑 Delete campaign *"+detail.Title+"*? This cannot be undone.",
		tg.InlineKeyboard(tg.ConfirmRow("cd_del_yes", "cd_del_no")))
}

// handleCampaignDeleteConfirm deletes the selected campaign. The delete
// clears the selection along with its proof state.
func (h *Handler) handleCampaignDeleteConfirm(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	sess, ok := h.requireAdmin(ctx, b, chatID)
	if !ok {
		return
	}
	console := h.consoles.Get(chatID)
	id := console.SelectedID()
	if id == "" {
		return
	}

	if err := h.api.DeleteCampaign(ctx, sess.Token, id); err != nil {
		h.reportAPIError(ctx, b, chatID, err)
		return
	}
	console.RemoveCampaign(id)
	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "🗑 Campaign deleted."})
	h.sendCampaignList(ctx, b, chatID, messageID, console, sess)
}

func (h *Handler) handleCampaignDeleteCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
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
		h.sendCampaignList(ctx, b, chatID, messageID, console, sess)
		return
	}
	h.sendDetail(ctx, b, chatID, messageID, console, sess)
}

func (h *Handler) sendDetail(ctx context.Context, b *bot.Bot, chatID int64, messageID int, console *state.Console, sess *domain.Session) {
	detail := console.Detail()
	if detail == nil {
		h.sendCampaignList(ctx, b, chatID, messageID, console, sess)
		return
	}

	var sb strings.Builder
	sb.WriteString(renderDetailHeader(detail))

	tab := console.Tab()
	switch tab {
	case state.TabParticipants:
		sb.WriteString(renderParticipants(detail, sess.DarkMode))
	case state.TabProofs:
		sb.WriteString(renderProofGroups(console.Groups(), sess.DarkMode))
	default:
		sb.WriteString(renderTasks(detail, sess.DarkMode))
	}

	rows := [][]models.InlineKeyboardButton{h.tabRow(tab)}
	if tab == state.TabProofs {
		rows = append(rows, h.proofRows(console)...)
	}
	if sess.IsAdmin {
		switch tab {
		case state.TabTasks:
			taskRow := tg.ButtonRow(tg.InlineButton("➕ Task", "ct_add"))
			for _, t := range detail.Tasks {
				if len(taskRow) >= 4 {
					rows = append(rows, taskRow)
					taskRow = nil
				}
				taskRow = append(taskRow, tg.InlineButton("✏️ D"+strconv.Itoa(t.Day), "ct_edit|"+t.ID))
			}
			if len(taskRow) > 0 {
				rows = append(rows, taskRow)
			}
			rows = append(rows, tg.ButtonRow(
				tg.InlineButton("✏️ Edit", "cd_edit"),
				tg.InlineButton("🗑 Delete", "cd_del_ask"),
			))
		case state.TabProofs:
			rows = append(rows, tg.ButtonRow(
				tg.InlineButton("✅ Approve selected", "pr_bulk_ok"),
				tg.InlineButton("✖️ Reject selected", "pr_bulk_no"),
			))
			rows = append(rows, tg.ButtonRow(tg.InlineButton("🔄 Refresh", "pr_refresh")))
		}
	}
	rows = append(rows, tg.ButtonRow(tg.InlineButton("⬅️ Back to list", "cd_back")))

	text := sb.String()
	if len(text) > tg.MaxMessageLen {
		text = tg.SplitMessage(text, tg.MaxMessageLen)[0]
	}
	tg.EditOrSend(ctx, b, chatID, messageID, text, tg.InlineKeyboard(rows...))
}

func (h *Handler) tabRow(active state.Tab) []models.InlineKeyboardButton {
	label := func(text string, tab state.Tab) string {
		if tab == active {
			return "• " + text
		}
		return text
	}
	return tg.ButtonRow(
		tg.InlineButton(label("📋 Tasks", state.TabTasks), "cd_tab_tasks"),
		tg.InlineButton(label("👥 Participants", state.TabParticipants), "cd_tab_participants"),
		tg.InlineButton(label("🧾 Proofs", state.TabProofs), "cd_tab_proofs"),
	)
}

// proofRows renders one row per pending proof: selection checkbox plus
// the single approve/reject shortcuts.
func (h *Handler) proofRows(console *state.Console) [][]models.InlineKeyboardButton {
	var rows [][]models.InlineKeyboardButton
	for _, g := range console.Groups() {
		for _, p := range g.Proofs {
			if p.Status != domain.ProofPending {
				continue
			}
			key := p.TaskID + "|" + p.UserID
			rows = append(rows, tg.ButtonRow(
				tg.ToggleButton(p.Username, console.IsSelected(p.Key()), "pr_sel|"+key),
				tg.InlineButton("✅", "pr_ok|"+key),
				tg.InlineButton("✖️", "pr_no|"+key),
			))
		}
	}
	return rows
}
