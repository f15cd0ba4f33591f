package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/signup", bot.MatchTypePrefix, h.handleSignupCommand)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypePrefix, h.handleLoginCommand)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypePrefix, h.handleLogout)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/campaigns", bot.MatchTypePrefix, h.handleCampaigns)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/notifications", bot.MatchTypePrefix, h.handleNotifications)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/settings", bot.MatchTypePrefix, h.handleSettings)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypePrefix, h.handleCancel)

	// Auth callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "auth_login", bot.MatchTypeExact, h.handleLoginCallback)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "auth_signup", bot.MatchTypeExact, h.handleSignupCallback)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "su_retry", bot.MatchTypeExact, h.handleReferralRetry)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "su_cancel", bot.MatchTypeExact, h.handleReferralDecline)

	// Campaign list callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cl_scope", bot.MatchTypeExact, h.handleScopeToggle)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cl_page_", bot.MatchTypePrefix, h.handleCampaignPage)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cl_open|", bot.MatchTypePrefix, h.handleCampaignOpen)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cl_new", bot.MatchTypeExact, h.handleCampaignNew)

	// Campaign detail callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cd_tab_", bot.MatchTypePrefix, h.handleTabSwitch)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cd_edit", bot.MatchTypeExact, h.handleCampaignEdit)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cd_del_ask", bot.MatchTypeExact, h.handleCampaignDeleteAsk)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cd_del_yes", bot.MatchTypeExact, h.handleCampaignDeleteConfirm)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cd_del_no", bot.MatchTypeExact, h.handleCampaignDeleteCancel)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cd_back", bot.MatchTypeExact, h.handleBackToList)

	// Task callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "ct_add", bot.MatchTypeExact, h.handleTaskAdd)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "ct_edit|", bot.MatchTypePrefix, h.handleTaskEdit)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "ct_del|", bot.MatchTypePrefix, h.handleTaskDeleteAsk)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "ct_delok|", bot.MatchTypePrefix, h.handleTaskDeleteConfirm)

	// Proof review callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "pr_sel|", bot.MatchTypePrefix, h.handleProofSelect)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "pr_ok|", bot.MatchTypePrefix, h.handleProofApprove)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "pr_no|", bot.MatchTypePrefix, h.handleProofReject)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "pr_bulk_ok", bot.MatchTypeExact, h.handleBulkApprove)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "pr_bulk_no", bot.MatchTypeExact, h.handleBulkReject)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "pr_refresh", bot.MatchTypeExact, h.handleProofRefresh)

	// Campaign form callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cf_cat_", bot.MatchTypePrefix, h.handleFormCategory)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cf_dif_", bot.MatchTypePrefix, h.handleFormDifficulty)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cf_st_", bot.MatchTypePrefix, h.handleFormStatus)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cf_flag_", bot.MatchTypePrefix, h.handleFormFlag)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cf_skipimg", bot.MatchTypeExact, h.handleFormSkipImage)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cf_task", bot.MatchTypeExact, h.handleStagedTaskAdd)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cf_save", bot.MatchTypeExact, h.handleFormSave)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cf_cancel", bot.MatchTypeExact, h.handleFormCancel)

	// Task form callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "tf_type_", bot.MatchTypePrefix, h.handleTaskFormType)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "tf_skip", bot.MatchTypeExact, h.handleTaskFormSkip)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "tf_save", bot.MatchTypeExact, h.handleTaskFormSave)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "tf_cancel", bot.MatchTypeExact, h.handleTaskFormCancel)

	// Settings callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "set_dark", bot.MatchTypeExact, h.handleDarkModeToggle)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "set_logout", bot.MatchTypeExact, h.handleLogoutCallback)

	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cur", bot.MatchTypeExact, h.handleNoop)
}

// handleNoop acknowledges non-interactive inline buttons such as the
// pagination indicator.
func (h *Handler) handleNoop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
}

// handleCancel aborts whatever multi-step flow is open in the chat.
func (h *Handler) handleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if h.conv(chatID) == nil {
		return
	}
	h.setConv(chatID, nil)
	console := h.consoles.Get(chatID)
	console.CampaignDraft = nil
	console.TaskDraft = nil
	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "Cancelled."})
}

// callback is a small helper extracting the common pieces of a
// callback update and acknowledging it.
func callback(ctx context.Context, b *bot.Bot, update *models.Update) (chatID int64, messageID int, data string, ok bool) {
	if update.CallbackQuery == nil {
		return 0, 0, "", false
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
	})
	data = update.CallbackQuery.Data
	if msg := update.CallbackQuery.Message.Message; msg != nil {
		chatID = msg.Chat.ID
		messageID = msg.ID
	}
	if chatID == 0 {
		return 0, 0, "", false
	}
	return chatID, messageID, data, true
}
