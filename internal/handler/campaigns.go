package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/recycleflux/adminbot/internal/config"
	"github.com/recycleflux/adminbot/internal/domain"
	"github.com/recycleflux/adminbot/internal/state"
	tg "github.com/recycleflux/adminbot/internal/telegram"
)

func (h *Handler) handleCampaigns(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	sess, ok := h.requireAuth(ctx, b, chatID)
	if !ok {
		return
	}

	console := h.consoles.Get(chatID)
	campaigns, err := h.api.ListCampaigns(ctx, sess.Token, console.ScopeMine())
	if err != nil {
		h.reportAPIError(ctx, b, chatID, err)
		return
	}
	console.ReplaceCampaigns(campaigns, console.ScopeMine())
	h.sendCampaignList(ctx, b, chatID, 0, console, sess)
}

// handleScopeToggle flips the mine/all filter. A scope change is one of
// the few full-list refetches.
func (h *Handler) handleScopeToggle(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	sess, ok := h.requireAuth(ctx, b, chatID)
	if !ok {
		return
	}

	console := h.consoles.Get(chatID)
	scopeMine := !console.ScopeMine()
	campaigns, err := h.api.ListCampaigns(ctx, sess.Token, scopeMine)
	if err != nil {
		h.reportAPIError(ctx, b, chatID, err)
		return
	}
	console.ReplaceCampaigns(campaigns, scopeMine)
	h.sendCampaignList(ctx, b, chatID, messageID, console, sess)
}

// handleCampaignPage pages through the cached list without refetching.
func (h *Handler) handleCampaignPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, data, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	sess, ok := h.requireAuth(ctx, b, chatID)
	if !ok {
		return
	}

	page, err := strconv.Atoi(strings.TrimPrefix(data, "cl_page_"))
	if err != nil || page < 0 {
		return
	}
	console := h.consoles.Get(chatID)
	console.SetPage(page)
	h.sendCampaignList(ctx, b, chatID, messageID, console, sess)
}

// handleCampaignOpen selects a campaign and fetches its full detail.
// The fetch carries a generation token so a slow response for an
// earlier selection never overwrites a newer one.
func (h *Handler) handleCampaignOpen(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, data, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	sess, ok := h.requireAuth(ctx, b, chatID)
	if !ok {
		return
	}
	id := strings.TrimPrefix(data, "cl_open|")
	if id == "" {
		return
	}

	console := h.consoles.Get(chatID)
	gen := console.BeginDetailFetch()
	campaign, err := h.api.GetCampaign(ctx, sess.Token, id)
	if err != nil {
		h.reportAPIError(ctx, b, chatID, err)
		return
	}
	if !console.CompleteDetailFetch(gen, campaign) {
		return
	}
	console.SetTab(state.TabTasks)
	h.sendDetail(ctx, b, chatID, messageID, console, sess)
}

func (h *Handler) handleBackToList(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	sess, ok := h.requireAuth(ctx, b, chatID)
	if !ok {
		return
	}
	console := h.consoles.Get(chatID)
	console.ClearSelection()
	h.sendCampaignList(ctx, b, chatID, messageID, console, sess)
}

func (h *Handler) sendCampaignList(ctx context.Context, b *bot.Bot, chatID int64, messageID int, console *state.Console, sess *domain.Session) {
	campaigns := console.Campaigns()
	page := console.Page()

	totalPages := (len(campaigns) + config.CampaignsPerPage - 1) / config.CampaignsPerPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page >= totalPages {
		page = totalPages - 1
		console.SetPage(page)
	}

	scopeLabel := "🌍 All campaigns"
	if console.ScopeMine() {
		scopeLabel = "👤 My campaigns"
	}

	var sb strings.Builder
	sb.WriteString("♻️ *Campaigns* · " + scopeLabel + "\n")
	if n := console.UnreadCount(); n > 0 {
		sb.WriteString("🔔 " + strconv.Itoa(n) + " unread notifications — /notifications\n")
	}
	sb.WriteString("\n")

	start := page * config.CampaignsPerPage
	end := start + config.CampaignsPerPage
	if end > len(campaigns) {
		end = len(campaigns)
	}

	var rows [][]models.InlineKeyboardButton
	if len(campaigns) == 0 {
		sb.WriteString("No campaigns yet.")
	}
	for _, c := range campaigns[start:end] {
		sb.WriteString(renderCampaignLine(c, sess.DarkMode) + "\n\n")
		rows = append(rows, tg.ButtonRow(tg.InlineButton("🔎 "+c.Title, "cl_open|"+c.ID)))
	}

	if totalPages > 1 {
		rows = append(rows, tg.PaginationRow(page, totalPages, "cl_page"))
	}
	toggle := "👤 Only mine"
	if console.ScopeMine() {
		toggle = "🌍 Show all"
	}
	bottom := tg.ButtonRow(tg.InlineButton(toggle, "cl_scope"))
	if sess.IsAdmin {
		bottom = append(bottom, tg.InlineButton("➕ New campaign", "cl_new"))
	}
	rows = append(rows, bottom)

	tg.EditOrSend(ctx, b, chatID, messageID, sb.String(), tg.InlineKeyboard(rows...))
}
