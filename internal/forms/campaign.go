// Package forms holds the transient draft state behind the campaign and
// task editors: local staging, the end-date recompute, and the
// multipart encoding the backend expects.
package forms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/recycleflux/adminbot/internal/config"
	"github.com/recycleflux/adminbot/internal/domain"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// CampaignDraft mirrors the campaign fields plus a transient image file
// and a locally staged task list that only travels on submission.
type CampaignDraft struct {
	ID          string // empty for create
	Title       string `validate:"required"`
	Description string
	Category    domain.Category       `validate:"required"`
	Reward      decimal.Decimal       `validate:"-"`
	Difficulty  domain.Difficulty     `validate:"required"`
	Status      domain.CampaignStatus `validate:"required"`

	StartDate    string `validate:"required"`
	DurationDays int    `validate:"gt=0"`
	EndDate      string

	Featured   bool
	New        bool
	Trending   bool
	EndingSoon bool

	// Image handling: a newly chosen file is attached as a binary
	// part; when editing a campaign that already had an image and no
	// new file was chosen, an empty marker field is sent instead.
	ImageName string
	ImageData []byte
	HadImage  bool

	Tasks []TaskDraft
}

// NewCampaignDraft returns a create draft with sensible defaults.
func NewCampaignDraft() *CampaignDraft {
	return &CampaignDraft{
		Category:     domain.CategoryCommunity,
		Difficulty:   domain.DifficultyEasy,
		Status:       domain.CampaignUpcoming,
		StartDate:    time.Now().Format(config.DateLayout),
		DurationDays: 7,
	}
}

// DraftFromCampaign seeds an edit draft from the cached detail.
func DraftFromCampaign(c *domain.Campaign) *CampaignDraft {
	d := &CampaignDraft{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		Reward:       c.Reward,
		Difficulty:   c.Difficulty,
		Status:       c.Status,
		StartDate:    c.StartDate,
		DurationDays: c.DurationDays,
		EndDate:      c.EndDate,
		Featured:     c.Featured,
		New:          c.New,
		Trending:     c.Trending,
		EndingSoon:   c.EndingSoon,
		HadImage:     c.ImageURL != "",
	}
	d.RecomputeEndDate()
	return d
}

// SetStartDate updates the start date and recomputes the end date.
func (d *CampaignDraft) SetStartDate(date string) error {
	if _, err := time.Parse(config.DateLayout, date); err != nil {
		return fmt.Errorf("parse start date: %w", err)
	}
	d.StartDate = date
	d.RecomputeEndDate()
	return nil
}

// SetDuration updates the duration and recomputes the end date.
func (d *CampaignDraft) SetDuration(days int) {
	d.DurationDays = days
	d.RecomputeEndDate()
}

// RecomputeEndDate derives end = start + duration calendar days,
// formatted as a plain date with no time-of-day component.
func (d *CampaignDraft) RecomputeEndDate() {
	start, err := time.Parse(config.DateLayout, d.StartDate)
	if err != nil {
		d.EndDate = ""
		return
	}
	d.EndDate = start.AddDate(0, 0, d.DurationDays).Format(config.DateLayout)
}

func (d *CampaignDraft) Validate() error {
	if err := validate.Struct(d); err != nil {
		return err
	}
	return nil
}

// stagedTask is the wire shape of a locally drafted task inside the
// campaign payload's JSON-encoded tasks field.
type stagedTask struct {
	Day          int             `json:"day"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Type         domain.TaskType `json:"type"`
	Platform     string          `json:"platform,omitempty"`
	Reward       decimal.Decimal `json:"reward"`
	Requirements []string        `json:"requirements"`
	ContentURL   string          `json:"contentUrl,omitempty"`
}

// Encode serializes the draft as the multipart payload the backend
// expects: scalar fields as form values, staged tasks as one
// JSON-encoded field, image as a binary part only when newly chosen.
func (d *CampaignDraft) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       d.Title,
		"description": d.Description,
		"category":    string(d.Category),
		"reward":      d.Reward.String(),
		"difficulty":  string(d.Difficulty),
		"status":      string(d.Status),
		"startDate":   d.StartDate,
		"endDate":     d.EndDate,
		"duration":    strconv.Itoa(d.DurationDays),
		"featured":    strconv.FormatBool(d.Featured),
		"isNew":       strconv.FormatBool(d.New),
		"trending":    strconv.FormatBool(d.Trending),
		"endingSoon":  strconv.FormatBool(d.EndingSoon),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if len(d.Tasks) > 0 {
		staged := make([]stagedTask, len(d.Tasks))
		for i, t := range d.Tasks {
			staged[i] = stagedTask{
				Day:          t.Day,
				Title:        t.Title,
				Description:  t.Description,
				Type:         t.Type,
				Platform:     t.Platform,
				Reward:       t.Reward,
				Requirements: t.Requirements,
				ContentURL:   t.ContentURL,
			}
		}
		encoded, err := json.Marshal(staged)
		if err != nil {
			return nil, "", fmt.Errorf("marshal tasks: %w", err)
		}
		if err := w.WriteField("tasks", string(encoded)); err != nil {
			return nil, "", fmt.Errorf("write tasks: %w", err)
		}
	}

	switch {
	case len(d.ImageData) > 0:
		part, err := w.CreateFormFile("image", d.ImageName)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(d.ImageData); err != nil {
			return nil, "", fmt.Errorf("write image: %w", err)
		}
	case d.ID != "" && d.HadImage:
		// Editing a campaign that already had an image: the empty
		// marker tells the backend to keep (or explicitly clear) it.
		if err := w.WriteField("image", ""); err != nil {
			return nil, "", fmt.Errorf("write image marker: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
