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
	tfStepDay = iota
	tfStepTitle
	tfStepDescription
	tfStepType
	tfStepPlatform
	tfStepReward
	tfStepRequirements
	tfStepContent
	tfStepSummary
)

// handleTaskAdd opens the task editor for the selected campaign.
func (h *Handler) handleTaskAdd(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	if _, ok := h.requireAdmin(ctx, b, chatID); !ok {
		return
	}
	console := h.consoles.Get(chatID)
	if console.SelectedID() == "" {
		return
	}
	console.TaskDraft = forms.NewTaskDraft()
	h.setConv(chatID, &conversation{kind: convTaskForm, step: tfStepDay})
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      "🆕 *New task*\n\nWhich day does it belong to?",
		ParseMode: models.ParseModeMarkdownV1,
	})
}

// handleStagedTaskAdd opens the task editor in staging mode: the task is
// collected into the open campaign draft and only travels with the
// campaign submission.
func (h *Handler) handleStagedTaskAdd(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	if _, ok := h.requireAdmin(ctx, b, chatID); !ok {
		return
	}
	console := h.consoles.Get(chatID)
	if console.CampaignDraft == nil {
		return
	}
	console.TaskDraft = forms.NewTaskDraft()
	h.setConv(chatID, &conversation{kind: convTaskForm, step: tfStepDay, staged: true})
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      "🆕 *Stage a task*\n\nWhich day does it belong to?",
		ParseMode: models.ParseModeMarkdownV1,
	})
}

// handleTaskEdit seeds the editor from an existing task.
func (h *Handler) handleTaskEdit(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, data, ok := callback(ctx, b, update)
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
	taskID := strings.TrimPrefix(data, "ct_edit|")
	for _, t := range detail.Tasks {
		if t.ID == taskID {
			console.TaskDraft = forms.DraftFromTask(t)
			h.setConv(chatID, &conversation{kind: convTaskForm, step: tfStepSummary})
			h.sendTaskFormSummary(ctx, b, chatID, messageID, console.TaskDraft)
			return
		}
	}
}

func (h *Handler) handleTaskDeleteAsk(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, data, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	if _, ok := h.requireAdmin(ctx, b, chatID); !ok {
		return
	}
	taskID := strings.TrimPrefix(data, "ct_del|")
	tg.EditOrSend(ctx, b, chatID, messageID,
		"🗑 Delete this task and its completions?",
		tg.InlineKeyboard(tg.ConfirmRow("ct_delok|"+taskID, "cd_tab_tasks")))
}

func (h *Handler) handleTaskDeleteConfirm(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, data, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	sess, ok := h.requireAdmin(ctx, b, chatID)
	if !ok {
		return
	}
	console := h.consoles.Get(chatID)
	campaignID := console.SelectedID()
	taskID := strings.TrimPrefix(data, "ct_delok|")
	if campaignID == "" || taskID == "" {
		return
	}

	if err := h.api.DeleteTask(ctx, sess.Token, campaignID, taskID); err != nil {
		h.reportAPIError(ctx, b, chatID, err)
		return
	}
	console.RemoveTask(taskID)
	h.sendDetail(ctx, b, chatID, messageID, console, sess)
}

// handleTaskFormText consumes one free-text answer of the task editor.
func (h *Handler) handleTaskFormText(ctx context.Context, b *bot.Bot, chatID int64, conv *conversation, text string) {
	console := h.consoles.Get(chatID)
	draft := console.TaskDraft
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
	case tfStepDay:
		day, err := strconv.Atoi(text)
		if err != nil || day <= 0 {
			reply("Enter the day as a positive number:", nil)
			return
		}
		draft.Day = day
		conv.step = tfStepTitle
		reply("Enter the task title:", nil)

	case tfStepTitle:
		draft.Title = text
		conv.step = tfStepDescription
		reply("Enter a description, or send `-` to skip:", nil)

	case tfStepDescription:
		if text != "-" {
			draft.Description = text
		}
		conv.step = tfStepType
		reply("Pick the task type:", taskTypeKeyboard())

	case tfStepPlatform:
		draft.Platform = text
		conv.step = tfStepReward
		reply("Enter the FLUX reward:", nil)

	case tfStepReward:
		reward, err := decimal.NewFromString(text)
		if err != nil || reward.IsNegative() {
			reply("Enter the FLUX reward as a number:", nil)
			return
		}
		draft.Reward = reward
		conv.step = tfStepRequirements
		reply("List the requirements separated by `;`, or send `-` to skip:", nil)

	case tfStepRequirements:
		if text != "-" {
			for _, req := range strings.Split(text, ";") {
				if req = strings.TrimSpace(req); req != "" {
					draft.Requirements = append(draft.Requirements, req)
				}
			}
		}
		conv.step = tfStepContent
		reply("Send a content URL or attach a file, or send `-` to skip:", tg.InlineKeyboard(
			tg.ButtonRow(tg.InlineButton("⏭ Skip content", "tf_skip")),
		))

	case tfStepContent:
		if draft.ApplyContentInput(text) {
			h.previewContentURL(ctx, b, chatID, text)
		}
		conv.step = tfStepSummary
		h.sendTaskFormSummary(ctx, b, chatID, 0, draft)

	case tfStepSummary:
		draft.Title = text
		h.sendTaskFormSummary(ctx, b, chatID, 0, draft)
	}
}

// previewContentURL shows the link's Open Graph metadata so the operator
// can confirm it points where they think before saving.
func (h *Handler) previewContentURL(ctx context.Context, b *bot.Bot, chatID int64, pageURL string) {
	preview, err := h.preview.Fetch(ctx, pageURL)
	if err != nil || preview.Title == "" {
		return
	}
	text := "🔗 *" + preview.Title + "*"
	if preview.Description != "" {
		text += "\n" + preview.Description
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
}

// handleTaskFormMedia stores an attached content file into the draft.
func (h *Handler) handleTaskFormMedia(ctx context.Context, b *bot.Bot, chatID int64, conv *conversation, msg *models.Message) {
	console := h.consoles.Get(chatID)
	draft := console.TaskDraft
	if draft == nil || conv.step != tfStepContent {
		return
	}

	fileID, name := attachedFile(msg)
	if fileID == "" {
		return
	}
	data, filePath, err := tg.DownloadFile(ctx, b, fileID)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "❌ Could not download the file. Try again or skip."})
		return
	}
	if name == "" {
		name = path.Base(filePath)
	}
	draft.ContentFileName = name
	draft.ContentFileData = data

	conv.step = tfStepSummary
	h.sendTaskFormSummary(ctx, b, chatID, 0, draft)
}

func (h *Handler) handleTaskFormType(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, data, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	conv := h.conv(chatID)
	console := h.consoles.Get(chatID)
	draft := console.TaskDraft
	if conv == nil || conv.kind != convTaskForm || draft == nil {
		return
	}
	draft.Type = domain.TaskType(strings.TrimPrefix(data, "tf_type_"))
	if !draft.Type.IsSocial() {
		draft.Platform = ""
	}

	if conv.step == tfStepSummary {
		if draft.Type.IsSocial() && draft.Platform == "" {
			conv.step = tfStepPlatform
			tg.EditOrSend(ctx, b, chatID, messageID, "Which platform? (e.g. X, Instagram)", nil)
			return
		}
		h.sendTaskFormSummary(ctx, b, chatID, messageID, draft)
		return
	}

	if draft.Type.IsSocial() {
		conv.step = tfStepPlatform
		tg.EditOrSend(ctx, b, chatID, messageID, "Which platform? (e.g. X, Instagram)", nil)
		return
	}
	conv.step = tfStepReward
	tg.EditOrSend(ctx, b, chatID, messageID, "Enter the FLUX reward:", nil)
}

func (h *Handler) handleTaskFormSkip(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	conv := h.conv(chatID)
	console := h.consoles.Get(chatID)
	draft := console.TaskDraft
	if conv == nil || conv.kind != convTaskForm || draft == nil {
		return
	}
	conv.step = tfStepSummary
	h.sendTaskFormSummary(ctx, b, chatID, messageID, draft)
}

// handleTaskFormSave validates and submits the task. A staged task is
// collected into the open campaign draft instead of being sent.
func (h *Handler) handleTaskFormSave(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	sess, ok := h.requireAdmin(ctx, b, chatID)
	if !ok {
		return
	}
	conv := h.conv(chatID)
	console := h.consoles.Get(chatID)
	draft := console.TaskDraft
	if conv == nil || draft == nil {
		return
	}

	if err := draft.Validate(); err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "⚠️ The task is incomplete: day, title and type are required, and social tasks need a platform.",
		})
		return
	}

	if conv.staged && console.CampaignDraft != nil {
		console.CampaignDraft.Tasks = append(console.CampaignDraft.Tasks, *draft)
		console.TaskDraft = nil
		h.setConv(chatID, &conversation{kind: convCampaignForm, step: cfStepSummary})
		h.sendCampaignFormSummary(ctx, b, chatID, messageID, console.CampaignDraft)
		return
	}

	campaignID := console.SelectedID()
	if campaignID == "" {
		return
	}
	body, contentType, err := draft.Encode()
	if err != nil {
		h.reportAPIError(ctx, b, chatID, err)
		return
	}

	var saved *domain.Task
	if draft.ID == "" {
		saved, err = h.api.CreateTask(ctx, sess.Token, campaignID, body, contentType)
	} else {
		saved, err = h.api.UpdateTask(ctx, sess.Token, campaignID, draft.ID, body, contentType)
	}
	if err != nil {
		h.reportAPIError(ctx, b, chatID, err)
		return
	}

	// Only the task list is touched; campaign aggregates stay as they
	// were until the next full detail fetch.
	if draft.ID == "" {
		console.AppendTask(*saved)
	} else {
		console.MergeTask(*saved)
	}
	console.TaskDraft = nil
	h.setConv(chatID, nil)

	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "✅ Task saved."})
	h.sendDetail(ctx, b, chatID, messageID, console, sess)
}

func (h *Handler) handleTaskFormCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	conv := h.conv(chatID)
	console := h.consoles.Get(chatID)
	console.TaskDraft = nil

	if conv != nil && conv.staged && console.CampaignDraft != nil {
		h.setConv(chatID, &conversation{kind: convCampaignForm, step: cfStepSummary})
		h.sendCampaignFormSummary(ctx, b, chatID, messageID, console.CampaignDraft)
		return
	}
	h.setConv(chatID, nil)
	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "Task form cancelled."})
}

func (h *Handler) sendTaskFormSummary(ctx context.Context, b *bot.Bot, chatID int64, messageID int, draft *forms.TaskDraft) {
	var sb strings.Builder
	if draft.ID == "" {
		sb.WriteString("🆕 *New task*\n\n")
	} else {
		sb.WriteString("✏️ *Edit task*\n\n")
	}
	sb.WriteString("*" + draft.Title + "* · Day " + strconv.Itoa(draft.Day) + "\n")
	if draft.Description != "" {
		sb.WriteString(draft.Description + "\n")
	}
	ty := draft.Type.Style()
	sb.WriteString(ty.Icon + " " + ty.Label)
	if draft.Platform != "" {
		sb.WriteString(" · " + draft.Platform)
	}
	sb.WriteString(" · 💰 " + draft.Reward.String() + " FLUX\n")
	if len(draft.Requirements) > 0 {
		sb.WriteString("📌 " + strings.Join(draft.Requirements, "; ") + "\n")
	}
	switch {
	case len(draft.ContentFileData) > 0:
		sb.WriteString("📎 File: " + draft.ContentFileName + "\n")
	case draft.ContentURL != "":
		sb.WriteString("🔗 " + draft.ContentURL + "\n")
	}
	sb.WriteString("\nSend a new title as text, or adjust below.")

	tg.EditOrSend(ctx, b, chatID, messageID, sb.String(), tg.InlineKeyboard(taskFormRows(draft)...))
}

// taskFormRows builds the summary keyboard. Deletion is only offered
// for drafts seeded from an existing task; a create draft has nothing
// to delete yet.
func taskFormRows(draft *forms.TaskDraft) [][]models.InlineKeyboardButton {
	rows := [][]models.InlineKeyboardButton{
		taskTypeKeyboard().InlineKeyboard[0],
		taskTypeKeyboard().InlineKeyboard[1],
	}
	if draft.ContentURL != "" {
		rows = append(rows, tg.ButtonRow(tg.URLButton("🔗 Open link", draft.ContentURL)))
	}
	if draft.ID != "" {
		rows = append(rows, tg.ButtonRow(tg.InlineButton("🗑 Delete", "ct_del|"+draft.ID)))
	}
	rows = append(rows, tg.ButtonRow(
		tg.InlineButton("💾 Save", "tf_save"),
		tg.InlineButton("✖️ Cancel", "tf_cancel"),
	))
	return rows
}

func taskTypeKeyboard() *models.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.ButtonRow(
			tg.InlineButton("👥 Follow", "tf_type_social-follow"),
			tg.InlineButton("📣 Post", "tf_type_social-post"),
			tg.InlineButton("🎬 Video", "tf_type_video-watch"),
		),
		tg.ButtonRow(
			tg.InlineButton("📖 Article", "tf_type_article-read"),
			tg.InlineButton("💬 Discord", "tf_type_discord-join"),
			tg.InlineButton("📤 Proof", "tf_type_proof-upload"),
		),
	)
}
