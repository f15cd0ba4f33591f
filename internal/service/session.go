package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/recycleflux/adminbot/internal/domain"
)

// SessionService is the durable operator session store: the explicit
// replacement for what the browser client kept in local storage (auth
// token, admin flag, profile, remembered passkey, dark-mode flag).
type SessionService struct {
	db *pgxpool.Pool
}

func NewSessionService(db *pgxpool.Pool) *SessionService {
	return &SessionService{db: db}
}

func (s *SessionService) Load(ctx context.Context, chatID int64) (*domain.Session, error) {
	row := s.db.QueryRow(ctx, `
		SELECT chat_id, token, is_admin, profile, passkey, dark_mode, updated_at
		FROM operator_sessions
		WHERE chat_id = $1`, chatID)

	var sess domain.Session
	var profileJSON []byte
	err := row.Scan(&sess.ChatID, &sess.Token, &sess.IsAdmin, &profileJSON, &sess.Passkey, &sess.DarkMode, &sess.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	if len(profileJSON) > 0 {
		var profile domain.Profile
		if err := json.Unmarshal(profileJSON, &profile); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
		sess.Profile = &profile
	}
	return &sess, nil
}

func (s *SessionService) Save(ctx context.Context, sess *domain.Session) error {
	var profileJSON []byte
	if sess.Profile != nil {
		var err error
		profileJSON, err = json.Marshal(sess.Profile)
		if err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO operator_sessions (chat_id, token, is_admin, profile, passkey, dark_mode, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (chat_id) DO UPDATE SET
			token = EXCLUDED.token,
			is_admin = EXCLUDED.is_admin,
			profile = EXCLUDED.profile,
			passkey = EXCLUDED.passkey,
			dark_mode = EXCLUDED.dark_mode,
			updated_at = NOW()`,
		sess.ChatID, sess.Token, sess.IsAdmin, profileJSON, sess.Passkey, sess.DarkMode)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionService) SetDarkMode(ctx context.Context, chatID int64, dark bool) error {
	_, err := s.db.Exec(ctx, `
		UPDATE operator_sessions SET dark_mode = $2, updated_at = NOW()
		WHERE chat_id = $1`, chatID, dark)
	if err != nil {
		return fmt.Errorf("set dark mode: %w", err)
	}
	return nil
}

// Clear wipes the auth state but keeps the row, so the theme preference
// survives logout the way it did in the browser.
func (s *SessionService) Clear(ctx context.Context, chatID int64) error {
	_, err := s.db.Exec(ctx, `
		UPDATE operator_sessions
		SET token = '', is_admin = FALSE, profile = NULL, passkey = '', updated_at = NOW()
		WHERE chat_id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
