package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/recycleflux/adminbot/internal/config"
	"github.com/recycleflux/adminbot/internal/domain"
	"github.com/recycleflux/adminbot/internal/middleware"
	"github.com/recycleflux/adminbot/internal/service"
	tg "github.com/recycleflux/adminbot/internal/telegram"
)

const (
	signupStepUsername = iota
	signupStepFullName
	signupStepEmail
	signupStepPassword
	signupStepConfirm
	signupStepReferral
)

func (h *Handler) handleSignupCommand(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.startSignup(ctx, b, update.Message.Chat.ID)
}

func (h *Handler) handleSignupCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	h.startSignup(ctx, b, chatID)
}

func (h *Handler) startSignup(ctx context.Context, b *bot.Bot, chatID int64) {
	sess := middleware.GetSession(ctx)
	if sess.Authenticated() {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "You are already signed in. Use /logout first.",
		})
		return
	}

	flow := service.NewSignupFlow(h.api, h.sessions)
	h.mu.Lock()
	if code, ok := h.referrals[chatID]; ok {
		flow.Form.ReferralCode = code
		flow.Form.ReferralLocked = true
	}
	h.mu.Unlock()

	h.setConv(chatID, &conversation{kind: convSignup, signup: flow})

	text := "📝 *Create your account*\n\nEnter a username:"
	if flow.Form.ReferralLocked {
		text = fmt.Sprintf("📝 *Create your account*\n🎁 Referral code `%s` will be applied.\n\nEnter a username:", flow.Form.ReferralCode)
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
}

// handleSignupText consumes one free-text answer of the signup
// conversation and advances it.
func (h *Handler) handleSignupText(ctx context.Context, b *bot.Bot, chatID int64, conv *conversation, text string) {
	flow := conv.signup
	reply := func(t string) {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: t, ParseMode: models.ParseModeMarkdownV1})
	}

	switch conv.step {
	case signupStepUsername:
		flow.Form.Username = text
		conv.step = signupStepFullName
		reply("Enter your full name:")

	case signupStepFullName:
		flow.Form.FullName = text
		conv.step = signupStepEmail
		reply("Enter your email address:")

	case signupStepEmail:
		flow.Form.Email = text
		conv.step = signupStepPassword
		reply("Choose a password (min 8 characters, with a letter, a digit and a symbol):")

	case signupStepPassword:
		flow.Form.Password = text
		conv.step = signupStepConfirm
		reply("Repeat the password:")

	case signupStepConfirm:
		flow.Form.ConfirmPassword = text
		if flow.Form.ReferralLocked {
			h.submitSignup(ctx, b, chatID, conv)
			return
		}
		conv.step = signupStepReferral
		reply("Enter a referral code, or send `-` to skip:")

	case signupStepReferral:
		if text != "-" {
			flow.Form.ReferralCode = text
		}
		h.submitSignup(ctx, b, chatID, conv)
	}
}

func (h *Handler) submitSignup(ctx context.Context, b *bot.Bot, chatID int64, conv *conversation) {
	flow := conv.signup
	sess := middleware.GetSession(ctx)

	err := flow.Submit(ctx, chatID, sess.DarkMode)
	if err == nil {
		h.finishSignup(ctx, b, chatID, flow)
		return
	}

	var valErr *service.ValidationError
	if errors.As(err, &valErr) {
		// Nothing was sent. Restart at the password step since that is
		// where most problems live; identity fields are kept.
		conv.step = signupStepPassword
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "⚠️ Please fix the following:\n• " + strings.Join(valErr.Problems, "\n• ") + "\n\nChoose a password:",
		})
		return
	}

	var conflict *domain.ReferralConflictError
	if errors.As(err, &conflict) {
		details := conflict.Details
		if details == "" {
			details = "The referral code could not be applied."
		}
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "⚠️ " + details + "\n\nCreate the account without the referral code?",
			ReplyMarkup: tg.InlineKeyboard(
				tg.ConfirmRow("su_retry", "su_cancel"),
			),
		})
		return
	}

	h.setConv(chatID, nil)
	h.reportAPIError(ctx, b, chatID, err)
}

// finishSignup surfaces the one-time passkey, then after the short
// pause the browser flow also had, drops the operator into the
// signed-in console.
func (h *Handler) finishSignup(ctx context.Context, b *bot.Bot, chatID int64, flow *service.SignupFlow) {
	h.setConv(chatID, nil)
	h.mu.Lock()
	delete(h.referrals, chatID)
	h.mu.Unlock()

	text := "✅ Account created!"
	if flow.Result != nil && flow.Result.Passkey != "" {
		text += "\n\n🔐 Your passkey: `" + flow.Result.Passkey + "`\nStore it somewhere safe — it is shown only once."
	}
	if flow.Referral != nil && flow.Referral.Valid {
		text += "\n🎁 Referral applied."
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
	time.AfterFunc(config.SignupRedirectDelay, func() {
		b.SendMessage(context.Background(), &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "♻️ You are signed in. Use /campaigns to get started.",
		})
	})
}

func (h *Handler) handleReferralRetry(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	conv := h.conv(chatID)
	if conv == nil || conv.kind != convSignup || conv.signup == nil {
		return
	}
	sess := middleware.GetSession(ctx)

	if err := conv.signup.RetryWithoutReferral(ctx, chatID, sess.DarkMode); err != nil {
		h.setConv(chatID, nil)
		h.reportAPIError(ctx, b, chatID, err)
		return
	}
	h.finishSignup(ctx, b, chatID, conv.signup)
}

func (h *Handler) handleReferralDecline(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _, _, ok := callback(ctx, b, update)
	if !ok {
		return
	}
	conv := h.conv(chatID)
	if conv == nil || conv.kind != convSignup || conv.signup == nil {
		return
	}
	status := conv.signup.DeclineReferral()
	h.setConv(chatID, nil)

	text := "Signup cancelled."
	if status != nil && status.Message != "" {
		text = "⚠️ " + status.Message + "\n\nSignup cancelled."
	}
	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
}
