package domain

import "github.com/shopspring/decimal"

type TaskType string

const (
	TaskSocialFollow TaskType = "social-follow"
	TaskSocialPost   TaskType = "social-post"
	TaskVideoWatch   TaskType = "video-watch"
	TaskArticleRead  TaskType = "article-read"
	TaskDiscordJoin  TaskType = "discord-join"
	TaskProofUpload  TaskType = "proof-upload"
)

// IsSocial reports whether the task type requires a platform.
func (t TaskType) IsSocial() bool {
	return t == TaskSocialFollow || t == TaskSocialPost
}

// Task belongs to exactly one campaign and is tied to a specific day.
// ContentFileURL wins over ContentURL when both are set.
type Task struct {
	ID             string          `json:"_id"`
	Day            int             `json:"day"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Type           TaskType        `json:"type"`
	Platform       string          `json:"platform,omitempty"`
	Reward         decimal.Decimal `json:"reward"`
	Requirements   []string        `json:"requirements"`
	ContentURL     string          `json:"contentUrl,omitempty"`
	ContentFileURL string          `json:"contentFile,omitempty"`
	CompletedBy    []Completion    `json:"completedBy"`
}

// ContentRef resolves the task's content reference: the uploaded file
// takes precedence over the URL.
func (t Task) ContentRef() string {
	if t.ContentFileURL != "" {
		return t.ContentFileURL
	}
	return t.ContentURL
}

// Completion records a participant's attempt at a task as seen from the
// campaign detail. Rejected completions are removed from this list;
// the proof review panel keeps its own record instead.
type Completion struct {
	UserID   string      `json:"userId"`
	Username string      `json:"username"`
	Proof    string      `json:"proof"`
	Status   ProofStatus `json:"status"`
}
