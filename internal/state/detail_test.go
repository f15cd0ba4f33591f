package state

import (
	"reflect"
	"testing"

	"github.com/recycleflux/adminbot/internal/domain"
)

func consoleWithDetail(t *testing.T, campaign *domain.Campaign) *Console {
	t.Helper()
	c := newConsole()
	gen := c.BeginDetailFetch()
	if !c.CompleteDetailFetch(gen, campaign) {
		t.Fatal("install detail")
	}
	return c
}

func TestStaleDetailFetchDropped(t *testing.T) {
	c := newConsole()
	first := c.BeginDetailFetch()
	second := c.BeginDetailFetch()

	if !c.CompleteDetailFetch(second, &domain.Campaign{ID: "new"}) {
		t.Fatal("newer fetch must land")
	}
	if c.CompleteDetailFetch(first, &domain.Campaign{ID: "old"}) {
		t.Error("late response for a superseded fetch must be dropped")
	}
	if got := c.Detail().ID; got != "new" {
		t.Errorf("detail = %q", got)
	}
}

func TestMergeTaskAltersExactlyOne(t *testing.T) {
	c := consoleWithDetail(t, &domain.Campaign{
		ID:       "c1",
		Progress: 40,
		Tasks: []domain.Task{
			{ID: "t1", Title: "one", Day: 1},
			{ID: "t2", Title: "two", Day: 2},
			{ID: "t3", Title: "three", Day: 3},
		},
	})
	before := c.Detail().Tasks

	c.MergeTask(domain.Task{ID: "t2", Title: "two edited", Day: 2})

	after := c.Detail().Tasks
	if after[1].Title != "two edited" {
		t.Errorf("edited task = %+v", after[1])
	}
	if !reflect.DeepEqual(before[0], after[0]) || !reflect.DeepEqual(before[2], after[2]) {
		t.Error("untouched tasks must be identical to their pre-edit value")
	}
	// Server-derived aggregates stay stale until the next full fetch.
	if got := c.Detail().Progress; got != 40 {
		t.Errorf("progress = %v, task merges must not touch aggregates", got)
	}
}

func TestAppendAndRemoveTask(t *testing.T) {
	c := consoleWithDetail(t, &domain.Campaign{ID: "c1", Tasks: []domain.Task{{ID: "t1"}}})

	c.AppendTask(domain.Task{ID: "t2"})
	if got := len(c.Detail().Tasks); got != 2 {
		t.Fatalf("task count = %d", got)
	}

	c.RemoveTask("t1")
	tasks := c.Detail().Tasks
	if len(tasks) != 1 || tasks[0].ID != "t2" {
		t.Errorf("tasks = %+v", tasks)
	}
}

func TestDetailSnapshotIsolatedFromMutation(t *testing.T) {
	c := consoleWithDetail(t, &domain.Campaign{
		ID: "c1",
		Tasks: []domain.Task{
			{ID: "t1", CompletedBy: []domain.Completion{
				{UserID: "u1", Status: domain.ProofPending},
				{UserID: "u2", Status: domain.ProofPending},
			}},
			{ID: "t2"},
		},
	})
	snap := c.Detail()

	c.RemoveCompletion(domain.ProofKey{TaskID: "t1", UserID: "u1"})
	c.RemoveTask("t2")

	if len(snap.Tasks) != 2 {
		t.Fatalf("snapshot task count = %d, must not follow later removals", len(snap.Tasks))
	}
	done := snap.Tasks[0].CompletedBy
	if len(done) != 2 || done[0].UserID != "u1" {
		t.Errorf("snapshot completions = %+v, must not share backing arrays with the cache", done)
	}
}

func TestRejectionDivergesAcrossPanels(t *testing.T) {
	c := consoleWithDetail(t, &domain.Campaign{
		ID: "c1",
		Tasks: []domain.Task{{
			ID: "t1",
			CompletedBy: []domain.Completion{
				{UserID: "u1", Status: domain.ProofPending},
				{UserID: "u2", Status: domain.ProofPending},
			},
		}},
	})
	gen := c.BeginProofFetch()
	c.CompleteProofFetch(gen, []domain.ProofGroup{{
		TaskID: "t1",
		Proofs: []domain.Proof{
			{TaskID: "t1", UserID: "u1", Status: domain.ProofPending},
			{TaskID: "t1", UserID: "u2", Status: domain.ProofPending},
		},
	}})

	key := domain.ProofKey{TaskID: "t1", UserID: "u1"}
	c.ApplyDecision(key, domain.ProofRejected)
	c.RemoveCompletion(key)

	// Detail view drops the rejected completion.
	completions := c.Detail().Tasks[0].CompletedBy
	if len(completions) != 1 || completions[0].UserID != "u2" {
		t.Errorf("completedBy = %+v", completions)
	}

	// Proof review keeps the record, status flipped.
	proofs := c.Groups()[0].Proofs
	if len(proofs) != 2 {
		t.Fatalf("proof count = %d, rejection must not remove the proof", len(proofs))
	}
	if proofs[0].Status != domain.ProofRejected {
		t.Errorf("proof status = %q", proofs[0].Status)
	}
	if proofs[1].Status != domain.ProofPending {
		t.Errorf("unrelated proof changed: %q", proofs[1].Status)
	}
}

func TestApprovalKeepsCompletion(t *testing.T) {
	c := consoleWithDetail(t, &domain.Campaign{
		ID: "c1",
		Tasks: []domain.Task{{
			ID:          "t1",
			CompletedBy: []domain.Completion{{UserID: "u1", Status: domain.ProofPending}},
		}},
	})

	c.MarkCompletionApproved(domain.ProofKey{TaskID: "t1", UserID: "u1"})

	completions := c.Detail().Tasks[0].CompletedBy
	if len(completions) != 1 {
		t.Fatal("approval must keep the completion record")
	}
	if completions[0].Status != domain.ProofCompleted {
		t.Errorf("status = %q", completions[0].Status)
	}
}
