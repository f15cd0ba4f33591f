package handler

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/recycleflux/adminbot/internal/api"
	"github.com/recycleflux/adminbot/internal/config"
	"github.com/recycleflux/adminbot/internal/domain"
	"github.com/recycleflux/adminbot/internal/middleware"
	"github.com/recycleflux/adminbot/internal/service"
	"github.com/recycleflux/adminbot/internal/state"
	tg "github.com/recycleflux/adminbot/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot      *bot.Bot
	cfg      *config.Config
	api      *api.Client
	sessions *service.SessionService
	preview  *service.PreviewService
	consoles *state.Registry

	mu    sync.Mutex
	convs map[int64]*conversation

	// referral codes that arrived via /start deep links, consumed by
	// the next signup in that chat
	referrals map[int64]string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot      *bot.Bot
	Cfg      *config.Config
	API      *api.Client
	Sessions *service.SessionService
	Preview  *service.PreviewService
	Consoles *state.Registry
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:       deps.Bot,
		cfg:       deps.Cfg,
		api:       deps.API,
		sessions:  deps.Sessions,
		preview:   deps.Preview,
		consoles:  deps.Consoles,
		convs:     make(map[int64]*conversation),
		referrals: make(map[int64]string),
	}
}

// conversation tracks a multi-step text input flow in one chat. Only
// one flow can be open per chat at a time.
type conversation struct {
	kind   convKind
	step   int
	signup *service.SignupFlow

	// staged marks a task form opened from inside a campaign draft: the
	// task is collected locally and travels with the campaign payload.
	staged bool
}

type convKind int

const (
	convNone convKind = iota
	convSignup
	convLogin
	convCampaignForm
	convTaskForm
)

func (h *Handler) conv(chatID int64) *conversation {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.convs[chatID]
}

func (h *Handler) setConv(chatID int64, c *conversation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c == nil {
		delete(h.convs, chatID)
	} else {
		h.convs[chatID] = c
	}
}

// requireAuth returns the chat's session when it holds a token,
// otherwise prompts for login.
func (h *Handler) requireAuth(ctx context.Context, b *bot.Bot, chatID int64) (*domain.Session, bool) {
	sess := middleware.GetSession(ctx)
	if sess.Authenticated() {
		return sess, true
	}
	h.sendLoginView(ctx, b, chatID, "🔐 You need to sign in first.")
	return nil, false
}

// requireAdmin additionally checks the admin flag carried by the
// session. The backend's 401/403 stays the authoritative gate.
func (h *Handler) requireAdmin(ctx context.Context, b *bot.Bot, chatID int64) (*domain.Session, bool) {
	sess, ok := h.requireAuth(ctx, b, chatID)
	if !ok {
		return nil, false
	}
	if !sess.IsAdmin {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "⛔ Admin access required.",
		})
		return nil, false
	}
	return sess, true
}

// reportAPIError surfaces a backend failure: authentication errors
// force the login view, everything else becomes a dismissable notice.
func (h *Handler) reportAPIError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	if errors.Is(err, domain.ErrUnauthorized) {
		if clearErr := h.sessions.Clear(ctx, chatID); clearErr != nil {
			slog.Error("clear session", "error", clearErr, "chat_id", chatID)
		}
		h.sendLoginView(ctx, b, chatID, "🔐 Your session expired. Please sign in again.")
		return
	}

	msg := "❌ Something went wrong"
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		msg = "❌ " + apiErr.Message
	}
	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: msg})
}

func (h *Handler) sendLoginView(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
		ReplyMarkup: tg.InlineKeyboard(
			tg.ButtonRow(
				tg.InlineButton("🔑 Log in", "auth_login"),
				tg.InlineButton("📝 Sign up", "auth_signup"),
			),
		),
	})
}
