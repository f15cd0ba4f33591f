package state

import "github.com/recycleflux/adminbot/internal/domain"

// BeginProofFetch works like BeginDetailFetch: proof fetches carry a
// generation so a late response for a superseded campaign selection is
// dropped.
func (c *Console) BeginProofFetch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.proofGen++
	return c.proofGen
}

// CompleteProofFetch installs the fetched groups wholesale and clears
// the bulk selection. Returns false when a newer fetch superseded this
// one.
func (c *Console) CompleteProofFetch(gen uint64, groups []domain.ProofGroup) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.proofGen {
		return false
	}
	c.groups = groups
	c.selected = make(map[domain.ProofKey]bool)
	return true
}

// Groups returns a snapshot of the proof groups.
func (c *Console) Groups() []domain.ProofGroup {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.ProofGroup, len(c.groups))
	for i, g := range c.groups {
		out[i] = g
		out[i].Proofs = make([]domain.Proof, len(g.Proofs))
		copy(out[i].Proofs, g.Proofs)
	}
	return out
}

// ApplyDecision patches a single proof's status in place, matched by
// (task, user) across all groups. No reordering, no removal: approved
// and rejected proofs both stay visible in the review panel.
func (c *Console) ApplyDecision(key domain.ProofKey, status domain.ProofStatus) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.groups {
		if c.groups[i].TaskID != key.TaskID {
			continue
		}
		for j := range c.groups[i].Proofs {
			if c.groups[i].Proofs[j].UserID == key.UserID {
				c.groups[i].Proofs[j].Status = status
				return true
			}
		}
	}
	return false
}

// FindProof looks a proof up by its composite key.
func (c *Console) FindProof(key domain.ProofKey) (domain.Proof, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, g := range c.groups {
		if g.TaskID != key.TaskID {
			continue
		}
		for _, p := range g.Proofs {
			if p.UserID == key.UserID {
				return p, true
			}
		}
	}
	return domain.Proof{}, false
}

// ToggleSelect flips a proof's bulk-selection checkbox.
func (c *Console) ToggleSelect(key domain.ProofKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected[key] {
		delete(c.selected, key)
	} else {
		c.selected[key] = true
	}
}

func (c *Console) IsSelected(key domain.ProofKey) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selected[key]
}

// SelectedKeys returns the checked pairs in group order, so bulk
// requests go out in a stable order even though completion order is
// not guaranteed.
func (c *Console) SelectedKeys() []domain.ProofKey {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var keys []domain.ProofKey
	for _, g := range c.groups {
		for _, p := range g.Proofs {
			if c.selected[p.Key()] {
				keys = append(keys, p.Key())
			}
		}
	}
	return keys
}

// PendingKeys lists the keys of all currently pending proofs; feeds the
// notification accumulator.
func (c *Console) PendingKeys() []domain.ProofKey {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var keys []domain.ProofKey
	for _, g := range c.groups {
		for _, p := range g.Proofs {
			if p.Status == domain.ProofPending {
				keys = append(keys, p.Key())
			}
		}
	}
	return keys
}
