package domain

type ProofStatus string

const (
	ProofPending   ProofStatus = "pending"
	ProofCompleted ProofStatus = "completed"
	ProofRejected  ProofStatus = "rejected"
)

// Proof is a submission awaiting (or past) review, as shown in the
// proof review panel. Unlike Completion, a Proof stays visible after
// rejection with its status flipped.
type Proof struct {
	TaskID     string      `json:"taskId"`
	UserID     string      `json:"userId"`
	Username   string      `json:"username"`
	Submission string      `json:"proof"`
	Status     ProofStatus `json:"status"`
}

// ProofGroup holds the ordered proofs of one task.
type ProofGroup struct {
	TaskID    string  `json:"taskId"`
	TaskTitle string  `json:"taskTitle"`
	Day       int     `json:"day"`
	Proofs    []Proof `json:"proofs"`
}

// ProofKey is the composite identity of a proof: one task, one user.
type ProofKey struct {
	TaskID string
	UserID string
}

func (p Proof) Key() ProofKey {
	return ProofKey{TaskID: p.TaskID, UserID: p.UserID}
}
