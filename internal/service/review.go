package service

import (
	"context"

	"github.com/recycleflux/adminbot/internal/domain"
)

// proofReviewer is the slice of the backend client bulk review needs.
type proofReviewer interface {
	ApproveProof(ctx context.Context, token, campaignID, taskID, userID string, approve bool) error
	GetProofs(ctx context.Context, token, campaignID string) ([]domain.ProofGroup, error)
}

// BulkOutcome reports one bulk review round. Groups holds the refetched
// proof groups whenever FetchErr is nil, even after partial failures.
type BulkOutcome struct {
	Decided  []domain.ProofKey
	Failed   int
	Groups   []domain.ProofGroup
	FetchErr error
}

// DecideProofs sends one decision request per key, in order. A failed
// request is counted and skipped rather than aborting the round, and
// the proof groups are refetched afterwards regardless, so the caller
// converges on the backend's view of whatever subset actually landed.
func DecideProofs(ctx context.Context, client proofReviewer, token, campaignID string, keys []domain.ProofKey, approve bool) BulkOutcome {
	var out BulkOutcome
	for _, key := range keys {
		if err := client.ApproveProof(ctx, token, campaignID, key.TaskID, key.UserID, approve); err != nil {
			out.Failed++
			continue
		}
		out.Decided = append(out.Decided, key)
	}
	out.Groups, out.FetchErr = client.GetProofs(ctx, token, campaignID)
	return out
}
