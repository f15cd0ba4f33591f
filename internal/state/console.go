// Package state holds the per-chat console state: the campaign list,
// the selected campaign detail, the proof review groups and the
// notification feed. Server responses are merged into this state in
// place; full refetches happen only where the console is specified to
// do them (initial load, scope toggle, bulk decisions).
package state

import (
	"sync"

	"github.com/recycleflux/adminbot/internal/domain"
	"github.com/recycleflux/adminbot/internal/forms"
)

// Tab is the active view of the selected campaign.
type Tab string

const (
	TabTasks        Tab = "tasks"
	TabParticipants Tab = "participants"
	TabProofs       Tab = "proofs"
)

// Console is one operator's in-memory console. All mutation happens in
// update handlers, but the notification poll loop reads concurrently,
// so every access goes through the mutex.
type Console struct {
	mu sync.RWMutex

	campaigns []domain.Campaign
	scopeMine bool

	detail    *domain.Campaign
	detailGen uint64

	groups   []domain.ProofGroup
	proofGen uint64
	selected map[domain.ProofKey]bool

	notifications []domain.Notification

	tab Tab

	// Drafts being edited in this chat, nil when no form is open.
	CampaignDraft *forms.CampaignDraft
	TaskDraft     *forms.TaskDraft

	page int
}

func newConsole() *Console {
	return &Console{
		tab:      TabTasks,
		selected: make(map[domain.ProofKey]bool),
	}
}

func (c *Console) Tab() Tab {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tab
}

func (c *Console) SetTab(t Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tab = t
}

func (c *Console) Page() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}

func (c *Console) SetPage(p int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = p
}

// Registry hands out one Console per chat.
type Registry struct {
	mu       sync.Mutex
	consoles map[int64]*Console
}

func NewRegistry() *Registry {
	return &Registry{consoles: make(map[int64]*Console)}
}

func (r *Registry) Get(chatID int64) *Console {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.consoles[chatID]
	if !ok {
		c = newConsole()
		r.consoles[chatID] = c
	}
	return c
}

// Drop discards a chat's console, e.g. on logout.
func (r *Registry) Drop(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.consoles, chatID)
}

// Each visits every console; used by the notification poll loop.
func (r *Registry) Each(fn func(chatID int64, c *Console)) {
	r.mu.Lock()
	snapshot := make(map[int64]*Console, len(r.consoles))
	for id, c := range r.consoles {
		snapshot[id] = c
	}
	r.mu.Unlock()

	for id, c := range snapshot {
		fn(id, c)
	}
}
