package domain

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryOcean     Category = "Ocean"
	CategoryForest    Category = "Forest"
	CategoryAir       Category = "Air"
	CategoryCommunity Category = "Community"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignUpcoming  CampaignStatus = "upcoming"
	CampaignCompleted CampaignStatus = "completed"
)

// Campaign is the client-held, denormalized copy of a campaign. The
// backend stays the source of truth; aggregate fields (Progress,
// CompletedTasks, Participants) are only refreshed by a full fetch.
type Campaign struct {
	ID               string          `json:"_id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Category         Category        `json:"category"`
	Reward           decimal.Decimal `json:"reward"`
	Difficulty       Difficulty      `json:"difficulty"`
	Status           CampaignStatus  `json:"status"`
	StartDate        string          `json:"startDate"`
	EndDate          string          `json:"endDate"`
	DurationDays     int             `json:"duration"`
	Participants     int             `json:"participants"`
	Progress         float64         `json:"progress"`
	CompletedTasks   int             `json:"completedTasks"`
	Featured         bool            `json:"featured"`
	New              bool            `json:"isNew"`
	Trending         bool            `json:"trending"`
	EndingSoon       bool            `json:"endingSoon"`
	ImageURL         string          `json:"image"`
	Tasks            []Task          `json:"tasksList"`
	ParticipantsList []Participant   `json:"participantsList"`
	CreatedBy        string          `json:"createdBy"`
}

type Participant struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Joined   string `json:"joinedAt"`
}
