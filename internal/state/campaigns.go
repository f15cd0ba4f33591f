package state

import "github.com/recycleflux/adminbot/internal/domain"

// ReplaceCampaigns swaps the whole list. Only the initial load and a
// mine/all scope change go through here; mutations merge in place.
func (c *Console) ReplaceCampaigns(campaigns []domain.Campaign, scopeMine bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.campaigns = campaigns
	c.scopeMine = scopeMine
	c.page = 0
}

// UpsertCampaign merges a create or update response into the list: an
// existing campaign is replaced in place, keeping its position; a new
// one is prepended. Untouched entries keep their order.
func (c *Console) UpsertCampaign(campaign domain.Campaign) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.campaigns {
		if c.campaigns[i].ID == campaign.ID {
			c.campaigns[i] = campaign
			if c.detail != nil && c.detail.ID == campaign.ID {
				c.detail = &campaign
			}
			return
		}
	}
	c.campaigns = append([]domain.Campaign{campaign}, c.campaigns...)
}

// RemoveCampaign drops the campaign after a confirmed delete. If it was
// the selected detail, the selection and its proof state are cleared.
func (c *Console) RemoveCampaign(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.campaigns[:0]
	for _, campaign := range c.campaigns {
		if campaign.ID != id {
			kept = append(kept, campaign)
		}
	}
	c.campaigns = kept

	if c.detail != nil && c.detail.ID == id {
		c.detail = nil
		c.groups = nil
		c.selected = make(map[domain.ProofKey]bool)
	}
}

// Campaigns returns a snapshot of the list.
func (c *Console) Campaigns() []domain.Campaign {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Campaign, len(c.campaigns))
	copy(out, c.campaigns)
	return out
}

func (c *Console) ScopeMine() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scopeMine
}
