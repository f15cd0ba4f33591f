package state

import "github.com/recycleflux/adminbot/internal/domain"

// BeginDetailFetch tags a detail fetch with a monotonic generation so a
// late response for a superseded selection can be recognized and
// dropped instead of overwriting the newer one.
func (c *Console) BeginDetailFetch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detailGen++
	return c.detailGen
}

// CompleteDetailFetch installs the fetched detail wholesale, unless a
// newer fetch has started since. The server response is authoritative
// for nested tasks and participants at that moment.
func (c *Console) CompleteDetailFetch(gen uint64, campaign *domain.Campaign) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.detailGen {
		return false
	}
	c.detail = campaign
	return true
}

// Detail returns a copy of the selected campaign, or nil. Nested tasks,
// completions and participants are copied too, so the snapshot stays
// stable while another goroutine mutates the cache.
func (c *Console) Detail() *domain.Campaign {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.detail == nil {
		return nil
	}
	cp := *c.detail
	cp.Tasks = make([]domain.Task, len(c.detail.Tasks))
	for i, t := range c.detail.Tasks {
		cp.Tasks[i] = t
		cp.Tasks[i].Requirements = append([]string(nil), t.Requirements...)
		cp.Tasks[i].CompletedBy = append([]domain.Completion(nil), t.CompletedBy...)
	}
	cp.ParticipantsList = append([]domain.Participant(nil), c.detail.ParticipantsList...)
	return &cp
}

func (c *Console) SelectedID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.detail == nil {
		return ""
	}
	return c.detail.ID
}

// ClearSelection drops the detail without touching the list.
func (c *Console) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detail = nil
	c.groups = nil
	c.selected = make(map[domain.ProofKey]bool)
}

// AppendTask merges a task-create response into the detail's task list.
// Aggregate fields (progress, completed counts) are left alone and stay
// stale until the next full detail fetch.
func (c *Console) AppendTask(task domain.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return
	}
	c.detail.Tasks = append(c.detail.Tasks, task)
}

// MergeTask replaces the task matched by identity, leaving every other
// task untouched.
func (c *Console) MergeTask(task domain.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return
	}
	for i := range c.detail.Tasks {
		if c.detail.Tasks[i].ID == task.ID {
			c.detail.Tasks[i] = task
			return
		}
	}
}

// RemoveTask filters the task out of the detail's task list. The kept
// tasks go into a fresh slice so earlier snapshots keep their view.
func (c *Console) RemoveTask(taskID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return
	}
	kept := make([]domain.Task, 0, len(c.detail.Tasks))
	for _, t := range c.detail.Tasks {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	c.detail.Tasks = kept
}

// RemoveCompletion drops a participant's completion from the matching
// task. Called on rejection: the detail view discards rejected
// completions while the proof review panel keeps them visible. The two
// panels diverge exactly this way on purpose.
func (c *Console) RemoveCompletion(key domain.ProofKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return
	}
	for i := range c.detail.Tasks {
		if c.detail.Tasks[i].ID != key.TaskID {
			continue
		}
		kept := make([]domain.Completion, 0, len(c.detail.Tasks[i].CompletedBy))
		for _, done := range c.detail.Tasks[i].CompletedBy {
			if done.UserID != key.UserID {
				kept = append(kept, done)
			}
		}
		c.detail.Tasks[i].CompletedBy = kept
		return
	}
}

// MarkCompletionApproved flips the completion's status in the detail
// view. Approvals keep the record, unlike rejections.
func (c *Console) MarkCompletionApproved(key domain.ProofKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return
	}
	for i := range c.detail.Tasks {
		if c.detail.Tasks[i].ID != key.TaskID {
			continue
		}
		for j := range c.detail.Tasks[i].CompletedBy {
			if c.detail.Tasks[i].CompletedBy[j].UserID == key.UserID {
				c.detail.Tasks[i].CompletedBy[j].Status = domain.ProofCompleted
				return
			}
		}
	}
}
