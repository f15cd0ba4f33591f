package state

import (
	"testing"

	"github.com/recycleflux/adminbot/internal/domain"
)

func consoleWithGroups(t *testing.T, groups []domain.ProofGroup) *Console {
	t.Helper()
	c := newConsole()
	gen := c.BeginProofFetch()
	if !c.CompleteProofFetch(gen, groups) {
		t.Fatal("install groups")
	}
	return c
}

func twoGroups() []domain.ProofGroup {
	return []domain.ProofGroup{
		{TaskID: "t1", TaskTitle: "Plant a tree", Proofs: []domain.Proof{
			{TaskID: "t1", UserID: "u1", Status: domain.ProofPending},
			{TaskID: "t1", UserID: "u2", Status: domain.ProofPending},
		}},
		{TaskID: "t2", TaskTitle: "Beach photo", Proofs: []domain.Proof{
			{TaskID: "t2", UserID: "u1", Status: domain.ProofPending},
		}},
	}
}

func TestApplyDecisionTouchesExactlyOne(t *testing.T) {
	c := consoleWithGroups(t, twoGroups())

	if !c.ApplyDecision(domain.ProofKey{TaskID: "t1", UserID: "u2"}, domain.ProofCompleted) {
		t.Fatal("decision must find the proof")
	}

	groups := c.Groups()
	for _, g := range groups {
		for _, p := range g.Proofs {
			want := domain.ProofPending
			if p.TaskID == "t1" && p.UserID == "u2" {
				want = domain.ProofCompleted
			}
			if p.Status != want {
				t.Errorf("proof (%s,%s) status = %q, want %q", p.TaskID, p.UserID, p.Status, want)
			}
		}
	}
}

func TestApplyDecisionMatchesCompositeKey(t *testing.T) {
	// u1 appears under both tasks; only the (t2, u1) pair may change.
	c := consoleWithGroups(t, twoGroups())

	c.ApplyDecision(domain.ProofKey{TaskID: "t2", UserID: "u1"}, domain.ProofRejected)

	if got := c.Groups()[0].Proofs[0].Status; got != domain.ProofPending {
		t.Errorf("(t1,u1) status = %q, same user under another task must not change", got)
	}
	if got := c.Groups()[1].Proofs[0].Status; got != domain.ProofRejected {
		t.Errorf("(t2,u1) status = %q", got)
	}
}

func TestStaleProofFetchDropped(t *testing.T) {
	c := newConsole()
	first := c.BeginProofFetch()
	second := c.BeginProofFetch()

	c.CompleteProofFetch(second, twoGroups())
	if c.CompleteProofFetch(first, nil) {
		t.Error("late proof response must be dropped")
	}
	if len(c.Groups()) != 2 {
		t.Error("newer groups must survive")
	}
}

func TestSelectionLifecycle(t *testing.T) {
	c := consoleWithGroups(t, twoGroups())

	k1 := domain.ProofKey{TaskID: "t1", UserID: "u1"}
	k2 := domain.ProofKey{TaskID: "t2", UserID: "u1"}
	c.ToggleSelect(k1)
	c.ToggleSelect(k2)
	c.ToggleSelect(k1) // untick

	keys := c.SelectedKeys()
	if len(keys) != 1 || keys[0] != k2 {
		t.Errorf("selected = %v", keys)
	}

	// The bulk path's resynchronizing refetch clears the selection.
	gen := c.BeginProofFetch()
	c.CompleteProofFetch(gen, twoGroups())
	if got := c.SelectedKeys(); len(got) != 0 {
		t.Errorf("selection after refetch = %v", got)
	}
}

func TestPendingKeys(t *testing.T) {
	c := consoleWithGroups(t, twoGroups())
	c.ApplyDecision(domain.ProofKey{TaskID: "t1", UserID: "u1"}, domain.ProofCompleted)

	keys := c.PendingKeys()
	if len(keys) != 2 {
		t.Errorf("pending = %v", keys)
	}
}
