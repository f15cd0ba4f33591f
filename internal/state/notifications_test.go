package state

import (
	"testing"

	"github.com/recycleflux/adminbot/internal/domain"
)

func TestIngestPendingIdempotent(t *testing.T) {
	c := newConsole()
	groups := twoGroups()

	fresh := c.IngestPending(groups)
	if len(fresh) != 3 {
		t.Fatalf("first ingest created %d notifications", len(fresh))
	}

	// Fetching the same pending set again must not duplicate anything.
	fresh = c.IngestPending(groups)
	if len(fresh) != 0 {
		t.Errorf("second identical ingest created %d notifications", len(fresh))
	}
	if got := len(c.Notifications()); got != 3 {
		t.Errorf("feed length = %d", got)
	}
}

func TestIngestPendingPrependsNew(t *testing.T) {
	c := newConsole()
	c.IngestPending([]domain.ProofGroup{{
		TaskID: "t1",
		Proofs: []domain.Proof{{TaskID: "t1", UserID: "u1", Status: domain.ProofPending}},
	}})

	c.IngestPending([]domain.ProofGroup{{
		TaskID: "t1",
		Proofs: []domain.Proof{
			{TaskID: "t1", UserID: "u1", Status: domain.ProofPending},
			{TaskID: "t1", UserID: "u9", Status: domain.ProofPending},
		},
	}})

	feed := c.Notifications()
	if len(feed) != 2 {
		t.Fatalf("feed length = %d", len(feed))
	}
	if feed[0].UserID != "u9" {
		t.Errorf("new notification must be placed ahead of old ones, got %q first", feed[0].UserID)
	}
}

func TestIngestSkipsDecidedProofs(t *testing.T) {
	c := newConsole()
	fresh := c.IngestPending([]domain.ProofGroup{{
		TaskID: "t1",
		Proofs: []domain.Proof{
			{TaskID: "t1", UserID: "u1", Status: domain.ProofCompleted},
			{TaskID: "t1", UserID: "u2", Status: domain.ProofRejected},
		},
	}})
	if len(fresh) != 0 {
		t.Errorf("non-pending proofs created %d notifications", len(fresh))
	}
}

func TestMarkNotificationsReadInPlace(t *testing.T) {
	c := newConsole()
	c.IngestPending(twoGroups())

	c.MarkNotificationsRead(domain.ProofKey{TaskID: "t1", UserID: "u1"})

	feed := c.Notifications()
	if len(feed) != 3 {
		t.Fatal("marking read must never remove notifications")
	}
	readCount := 0
	for _, n := range feed {
		if n.Read {
			readCount++
		}
	}
	if readCount != 1 {
		t.Errorf("read count = %d", readCount)
	}
	if got := c.UnreadCount(); got != 2 {
		t.Errorf("UnreadCount = %d", got)
	}
}

func TestMarkNotificationsReadBulk(t *testing.T) {
	c := newConsole()
	c.IngestPending(twoGroups())

	c.MarkNotificationsRead(
		domain.ProofKey{TaskID: "t1", UserID: "u1"},
		domain.ProofKey{TaskID: "t1", UserID: "u2"},
		domain.ProofKey{TaskID: "t2", UserID: "u1"},
	)
	if got := c.UnreadCount(); got != 0 {
		t.Errorf("UnreadCount = %d", got)
	}
}
