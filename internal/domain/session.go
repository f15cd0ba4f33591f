package domain

import "time"

// Profile is the cached user profile returned by the backend.
type Profile struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Session is the operator's console session: the explicit, persisted
// replacement for what the browser kept in local storage.
type Session struct {
	ChatID    int64
	Token     string
	IsAdmin   bool
	Profile   *Profile
	Passkey   string
	DarkMode  bool
	UpdatedAt time.Time
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}
