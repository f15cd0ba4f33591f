package handler

import (
	"context"
	"path"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/recycleflux/adminbot/internal/domain"
	"github.com/recycleflux/adminbot/internal/forms"
	tg "github.com/recycleflux/adminbot/internal/telegram"
	"github.com/shopspring/decimal"
)

const (
	cfStepTitle = iota
	cfStepDescription
	cfStepCategory
	cfStepDifficulty
	cfStepStatus
	cfStepReward
	cfStepStartDate
	cfStepDuration
	cfStepImage
	cfStepSummary
)

// handleCampaignNew opens the campaign editor with a fresh draft.
func (h *Handler) handleCampaignNew(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	if _, ok := h.requireAdmin(ctx, b, chatID); !ok {
		return
	}
	console := h.consoles.Get(chatID)
	console.CampaignDraft = forms.NewCampaignDraft()
	h.setConv(chatID, &conversation{kind: convCampaignForm, step: cfStepTitle})

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      "🆕 *New campaign*\n\nEnter a title:",
		ParseMode: models.ParseModeMarkdownV1,
	})
}

// handleCampaignEdit seeds the editor from the cached detail.
func (h *Handler) handleCampaignEdit(ctx context.Context, b *bot.Bot, update *models.Update) {
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
	console.CampaignDraft = forms.DraftFromCampaign(detail)
	h.setConv(chatID, &conversation{kind: convCampaignForm, step: cfStepSummary})
	h.sendCampaignFormSummary(ctx, b, chatID, messageID, console.CampaignDraft)
}

// handleCampaignFormText consumes one free-text answer of the campaign
// editor and advances it.
func (h *Handler) handleCampaignFormText(ctx context.Context, b *bot.Bot, chatID int64, conv *conversation, text string) {
	console := h.consoles.Get(chatID)
	draft := console.CampaignDraft
	if draft == nil {
		h.setConv(chatID, nil)
		return
	}
	reply := func(t string, markup models.ReplyMarkup) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        t,
			ParseMode:   models.ParseModeMarkdownV1,
			ReplyMarkup: markup,
		})
	}

	switch conv.step {
	case cfStepTitle:
		draft.Title = text
		conv.step = cfStepDescription
		reply("Enter a description, or send `-` to skip:", nil)

	case cfStepDescription:
		if text != "-" {
			draft.Description = text
		}
		conv.step = cfStepCategory
		reply("Pick a category:", categoryKeyboard())

	case cfStepReward:
		reward, err := decimal.NewFromString(text)
		if err != nil || reward.IsNegative() {
			reply("Enter the FLUX reward as a number:", nil)
			return
		}
		draft.Reward = reward
		conv.step = cfStepStartDate
		reply("Enter the start date (`YYYY-MM-DD`):", nil)

	case cfStepStartDate:
		if err := draft.SetStartDate(text); err != nil {
			reply("That is not a valid date. Use `YYYY-MM-DD`:", nil)
			return
		}
		conv.step = cfStepDuration
		reply("Enter the duration in days:", nil)

	case cfStepDuration:
		days, err := strconv.Atoi(text)
		if err != nil || days <= 0 {
			reply("Enter the duration as a whole number of days:", nil)
			return
		}
		draft.SetDuration(days)
		conv.step = cfStepImage
		reply("Send a campaign image, or skip:", tg.InlineKeyboard(
			tg.ButtonRow(tg.InlineButton("⏭ Skip image", "cf_skipimg")),
		))

	case cfStepSummary:
		// Free text at the summary re-titles the campaign; everything
		// else is changed through the buttons.
		draft.Title = text
		h.sendCampaignFormSummary(ctx, b, chatID, 0, draft)
	}
}

// handleCampaignFormMedia stores an attached image into the draft.
func (h *Handler) handleCampaignFormMedia(ctx context.Context, b *bot.Bot, chatID int64, conv *conversation, msg *models.Message) {
	console := h.consoles.Get(chatID)
	draft := console.CampaignDraft
	if draft == nil || conv.step != cfStepImage {
		return
	}

	fileID, name := attachedFile(msg)
	if fileID == "" {
		return
	}
	data, filePath, err := tg.DownloadFile(ctx, b, fileID)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "❌ Could not download the image. Try again or skip."})
		return
	}
	if name == "" {
		name = path.Base(filePath)
	}
	draft.ImageName = name
	draft.ImageData = data

	conv.step = cfStepSummary
	h.sendCampaignFormSummary(ctx, b, chatID, 0, draft)
}

// attachedFile picks the file id and name out of a photo or document
// message. For photos the largest size is used.
func attachedFile(msg *models.Message) (fileID, name string) {
	if msg.Document != nil {
		return msg.Document.FileID, msg.Document.FileName
	}
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, ""
	}
	return "", ""
}

func (h *Handler) handleFormCategory(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, data, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	conv := h.conv(chatID)
	console := h.consoles.Get(chatID)
	draft := console.CampaignDraft
	if conv == nil || conv.kind != convCampaignForm || draft == nil {
		return
	}
	draft.Category = domain.Category(strings.TrimPrefix(data, "cf_cat_"))

	if conv.step == cfStepSummary {
		h.sendCampaignFormSummary(ctx, b, chatID, messageID, draft)
		return
	}
	conv.step = cfStepDifficulty
	tg.EditOrSend(ctx, b, chatID, messageID, "Pick a difficulty:", difficultyKeyboard())
}

func (h *Handler) handleFormDifficulty(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, data, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	conv := h.conv(chatID)
	console := h.consoles.Get(chatID)
	draft := console.CampaignDraft
	if conv == nil || conv.kind != convCampaignForm || draft == nil {
		return
	}
	draft.Difficulty = domain.Difficulty(strings.TrimPrefix(data, "cf_dif_"))

	if conv.step == cfStepSummary {
		h.sendCampaignFormSummary(ctx, b, chatID, messageID, draft)
		return
	}
	conv.step = cfStepStatus
	tg.EditOrSend(ctx, b, chatID, messageID, "Pick a status:", statusKeyboard())
}

func (h *Handler) handleFormStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, data, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	conv := h.conv(chatID)
	console := h.consoles.Get(chatID)
	draft := console.CampaignDraft
	if conv == nil || conv.kind != convCampaignForm || draft == nil {
		return
	}
	draft.Status = domain.CampaignStatus(strings.TrimPrefix(data, "cf_st_"))

	if conv.step == cfStepSummary {
		h.sendCampaignFormSummary(ctx, b, chatID, messageID, draft)
		return
	}
	conv.step = cfStepReward
	tg.EditOrSend(ctx, b, chatID, messageID, "Enter the FLUX reward:", nil)
}

// handleFormFlag toggles one of the visibility flags from the summary.
func (h *Handler) handleFormFlag(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, data, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	conv := h.conv(chatID)
	console := h.consoles.Get(chatID)
	draft := console.CampaignDraft
	if conv == nil || conv.kind != convCampaignForm || draft == nil {
		return
	}

	switch strings.TrimPrefix(data, "cf_flag_") {
	case "featured":
		draft.Featured = !draft.Featured
	case "new":
		draft.New = !draft.New
	case "trending":
		draft.Trending = !draft.Trending
	case "ending":
		draft.EndingSoon = !draft.EndingSoon
	}
	h.sendCampaignFormSummary(ctx, b, chatID, messageID, draft)
}

func (h *Handler) handleFormSkipImage(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	conv := h.conv(chatID)
	console := h.consoles.Get(chatID)
	draft := console.CampaignDraft
	if conv == nil || conv.kind != convCampaignForm || draft == nil {
		return
	}
	conv.step = cfStepSummary
	h.sendCampaignFormSummary(ctx, b, chatID, messageID, draft)
}

// handleFormSave validates, encodes and submits the draft, then merges
// the response into the campaign list.
func (h *Handler) handleFormSave(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	sess, ok := h.requireAdmin(ctx, b, chatID)
	if !ok {
		return
	}
	console := h.consoles.Get(chatID)
	draft := console.CampaignDraft
	if draft == nil {
		return
	}

	if err := draft.Validate(); err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "⚠️ The form is incomplete: title, category, difficulty, status, start date and duration are required.",
		})
		return
	}
	body, contentType, err := draft.Encode()
	if err != nil {
		h.reportAPIError(ctx, b, chatID, err)
		return
	}

	var saved *domain.Campaign
	if draft.ID == "" {
		saved, err = h.api.CreateCampaign(ctx, sess.Token, body, contentType)
	} else {
		saved, err = h.api.UpdateCampaign(ctx, sess.Token, draft.ID, body, contentType)
	}
	if err != nil {
		h.reportAPIError(ctx, b, chatID, err)
		return
	}

	console.UpsertCampaign(*saved)
	console.CampaignDraft = nil
	h.setConv(chatID, nil)

	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "✅ Campaign saved."})
	if console.SelectedID() == saved.ID {
		h.sendDetail(ctx, b, chatID, messageID, console, sess)
		return
	}
	h.sendCampaignList(ctx, b, chatID, messageID, console, sess)
}

func (h *Handler) handleFormCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	console := h.consoles.Get(chatID)
	console.CampaignDraft = nil
	h.setConv(chatID, nil)
	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "Campaign form cancelled."})
}

func (h *Handler) sendCampaignFormSummary(ctx context.Context, b *bot.Bot, chatID int64, messageID int, draft *forms.CampaignDraft) {
	var sb strings.Builder
	if draft.ID == "" {
		sb.WriteString("🆕 *New campaign*\n\n")
	} else {
		sb.WriteString("✏️ *Edit campaign*\n\n")
	}
	sb.WriteString("*" + draft.Title + "*\n")
	if draft.Description != "" {
		sb.WriteString(draft.Description + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(draft.Category.Style().Icon + " " + string(draft.Category))
	sb.WriteString(" · " + string(draft.Difficulty))
	sb.WriteString(" · " + string(draft.Status) + "\n")
	sb.WriteString("💰 " + draft.Reward.String() + " FLUX\n")
	sb.WriteString("📅 " + draft.StartDate + " → " + draft.EndDate + " (" + strconv.Itoa(draft.DurationDays) + " days)\n")
	switch {
	case len(draft.ImageData) > 0:
		sb.WriteString("🖼 New image: " + draft.ImageName + "\n")
	case draft.HadImage:
		sb.WriteString("🖼 Keeping the existing image\n")
	}
	if n := len(draft.Tasks); n > 0 {
		sb.WriteString("📋 " + strconv.Itoa(n) + " staged tasks\n")
	}
	sb.WriteString("\nSend a new title as text, or adjust below.")

	rows := [][]models.InlineKeyboardButton{
		tg.ButtonRow(
			tg.ToggleButton("⭐", draft.Featured, "cf_flag_featured"),
			tg.ToggleButton("🆕", draft.New, "cf_flag_new"),
			tg.ToggleButton("🔥", draft.Trending, "cf_flag_trending"),
			tg.ToggleButton("⏳", draft.EndingSoon, "cf_flag_ending"),
		),
		categoryKeyboard().InlineKeyboard[0],
		difficultyKeyboard().InlineKeyboard[0],
		statusKeyboard().InlineKeyboard[0],
	}
	if draft.ID == "" {
		// Tasks can only be staged on create; edits manage tasks from
		// the detail view instead.
		rows = append(rows, tg.ButtonRow(tg.InlineButton("➕ Stage task", "cf_task")))
	}
	rows = append(rows, tg.ButtonRow(
		tg.InlineButton("💾 Save", "cf_save"),
		tg.InlineButton("✖️ Cancel", "cf_cancel"),
	))
	tg.EditOrSend(ctx, b, chatID, messageID, sb.String(), tg.InlineKeyboard(rows...))
}

func categoryKeyboard() *models.InlineKeyboardMarkup {
	return tg.InlineKeyboard(tg.ButtonRow(
		tg.InlineButton("🌊 Ocean", "cf_cat_Ocean"),
		tg.InlineButton("🌲 Forest", "cf_cat_Forest"),
		tg.InlineButton("💨 Air", "cf_cat_Air"),
		tg.InlineButton("🤝 Community", "cf_cat_Community"),
	))
}

func difficultyKeyboard() *models.InlineKeyboardMarkup {
	return tg.InlineKeyboard(tg.ButtonRow(
		tg.InlineButton("🟢 Easy", "cf_dif_Easy"),
		tg.InlineButton("🟡 Medium", "cf_dif_Medium"),
		tg.InlineButton("🔴 Hard", "cf_dif_Hard"),
	))
}

func statusKeyboard() *models.InlineKeyboardMarkup {
	return tg.InlineKeyboard(tg.ButtonRow(
		tg.InlineButton("▶️ Active", "cf_st_active"),
		tg.InlineButton("⏳ Upcoming", "cf_st_upcoming"),
		tg.InlineButton("✅ Completed", "cf_st_completed"),
	))
}
