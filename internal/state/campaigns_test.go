package state

import (
	"testing"

	"github.com/recycleflux/adminbot/internal/domain"
)

func seededConsole(ids ...string) *Console {
	c := newConsole()
	campaigns := make([]domain.Campaign, len(ids))
	for i, id := range ids {
		campaigns[i] = domain.Campaign{ID: id, Title: "campaign " + id}
	}
	c.ReplaceCampaigns(campaigns, false)
	return c
}

func campaignIDs(c *Console) []string {
	list := c.Campaigns()
	ids := make([]string, len(list))
	for i, campaign := range list {
		ids[i] = campaign.ID
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestUpsertCampaignCreatePrepends(t *testing.T) {
	c := seededConsole("a", "b", "c")
	c.UpsertCampaign(domain.Campaign{ID: "d"})

	if got := campaignIDs(c); !equalIDs(got, []string{"d", "a", "b", "c"}) {
		t.Errorf("order = %v", got)
	}
}

func TestUpsertCampaignUpdateKeepsPosition(t *testing.T) {
	c := seededConsole("a", "b", "c")
	c.UpsertCampaign(domain.Campaign{ID: "b", Title: "renamed"})

	if got := campaignIDs(c); !equalIDs(got, []string{"a", "b", "c"}) {
		t.Errorf("order = %v, update must not reorder", got)
	}
	if got := c.Campaigns()[1].Title; got != "renamed" {
		t.Errorf("title = %q", got)
	}
	if got := c.Campaigns()[0].Title; got != "campaign a" {
		t.Errorf("unrelated entry changed: %q", got)
	}
}

func TestUpsertCampaignRefreshesSelectedDetail(t *testing.T) {
	c := seededConsole("a", "b")
	gen := c.BeginDetailFetch()
	c.CompleteDetailFetch(gen, &domain.Campaign{ID: "b", Title: "old"})

	c.UpsertCampaign(domain.Campaign{ID: "b", Title: "new"})
	if got := c.Detail().Title; got != "new" {
		t.Errorf("detail title = %q", got)
	}
}

func TestRemoveCampaignClearsSelection(t *testing.T) {
	c := seededConsole("a", "b", "c")
	gen := c.BeginDetailFetch()
	c.CompleteDetailFetch(gen, &domain.Campaign{ID: "b"})

	c.RemoveCampaign("b")

	if got := campaignIDs(c); !equalIDs(got, []string{"a", "c"}) {
		t.Errorf("order = %v", got)
	}
	if c.Detail() != nil {
		t.Error("selection must be cleared when the selected campaign is deleted")
	}
}

func TestRemoveCampaignKeepsOtherSelection(t *testing.T) {
	c := seededConsole("a", "b")
	gen := c.BeginDetailFetch()
	c.CompleteDetailFetch(gen, &domain.Campaign{ID: "a"})

	c.RemoveCampaign("b")
	if c.Detail() == nil || c.Detail().ID != "a" {
		t.Error("unrelated selection must survive a delete")
	}
}
