package middleware

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/recycleflux/adminbot/internal/domain"
	"github.com/recycleflux/adminbot/internal/service"
)

type ctxKey string

const SessionKey ctxKey = "session"

// GetSession extracts the operator session from context. Never nil for
// updates that carry a chat: unauthenticated chats get an empty session.
func GetSession(ctx context.Context) *domain.Session {
	s, ok := ctx.Value(SessionKey).(*domain.Session)
	if !ok {
		return nil
	}
	return s
}

// SessionLoader loads the chat's persisted session into context at
// process start of every update, so handlers and the api client read
// one consistent snapshot.
func SessionLoader(sessions *service.SessionService, cfg interface{ IsOperator(int64) bool }) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var from *models.User
			var chatID int64

			if update.Message != nil {
				from = update.Message.From
				chatID = update.Message.Chat.ID
			} else if update.CallbackQuery != nil {
				from = &update.CallbackQuery.From
				if update.CallbackQuery.Message.Message != nil {
					chatID = update.CallbackQuery.Message.Message.Chat.ID
				}
			}

			if from == nil || chatID == 0 {
				next(ctx, b, update)
				return
			}
			if !cfg.IsOperator(from.ID) {
				return
			}

			sess, err := sessions.Load(ctx, chatID)
			if err != nil {
				if err != domain.ErrSessionNotFound {
					slog.Error("load session", "error", err, "chat_id", chatID)
				}
				sess = &domain.Session{ChatID: chatID}
			}

			next(context.WithValue(ctx, SessionKey, sess), b, update)
		}
	}
}
