package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is derived from proof fetch diffs and lives only for the
// process lifetime. Notifications are marked read in place and never
// removed.
type Notification struct {
	ID        uuid.UUID
	TaskID    string
	UserID    string
	TaskTitle string
	Username  string
	Read      bool
	CreatedAt time.Time
}

func (n Notification) Key() ProofKey {
	return ProofKey{TaskID: n.TaskID, UserID: n.UserID}
}
