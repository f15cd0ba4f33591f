package state

import (
	"time"

	"github.com/google/uuid"
	"github.com/recycleflux/adminbot/internal/domain"
)

// IngestPending derives notifications from a fresh set of proof groups.
// Every pending proof whose (task, user) key is not already known
// becomes a new unread notification, placed ahead of the existing ones.
// Known keys are left untouched, so repeated identical fetches are
// idempotent. Returns the newly created notifications.
func (c *Console) IngestPending(groups []domain.ProofGroup) []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	known := make(map[domain.ProofKey]bool, len(c.notifications))
	for _, n := range c.notifications {
		known[n.Key()] = true
	}

	var fresh []domain.Notification
	for _, g := range groups {
		for _, p := range g.Proofs {
			if p.Status != domain.ProofPending || known[p.Key()] {
				continue
			}
			known[p.Key()] = true
			fresh = append(fresh, domain.Notification{
				ID:        uuid.New(),
				TaskID:    p.TaskID,
				UserID:    p.UserID,
				TaskTitle: g.TaskTitle,
				Username:  p.Username,
				CreatedAt: time.Now(),
			})
		}
	}

	if len(fresh) > 0 {
		c.notifications = append(fresh, c.notifications...)
	}
	return fresh
}

// MarkNotificationsRead flags notifications matching the decided pairs
// as read, in place. Nothing is ever removed from the feed.
func (c *Console) MarkNotificationsRead(keys ...domain.ProofKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	affected := make(map[domain.ProofKey]bool, len(keys))
	for _, k := range keys {
		affected[k] = true
	}
	for i := range c.notifications {
		if affected[c.notifications[i].Key()] {
			c.notifications[i].Read = true
		}
	}
}

// Notifications returns the feed, newest first.
func (c *Console) Notifications() []domain.Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

func (c *Console) UnreadCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, notif := range c.notifications {
		if !notif.Read {
			n++
		}
	}
	return n
}
