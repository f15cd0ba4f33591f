package forms

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/recycleflux/adminbot/internal/domain"
	"github.com/shopspring/decimal"
)

var errPlatformRequired = errors.New("platform is required for social task types")

// TaskDraft is the independent task editor state. Platform only applies
// to social types; content file and content URL can both be set, and
// both are submitted, with the file taking precedence on the backend.
type TaskDraft struct {
	ID           string // empty for create
	Day          int    `validate:"gt=0"`
	Title        string `validate:"required"`
	Description  string
	Type         domain.TaskType `validate:"required"`
	Platform     string
	Reward       decimal.Decimal
	Requirements []string

	ContentURL      string
	ContentFileName string
	ContentFileData []byte
}

func NewTaskDraft() *TaskDraft {
	return &TaskDraft{Day: 1, Type: domain.TaskProofUpload}
}

func DraftFromTask(t domain.Task) *TaskDraft {
	return &TaskDraft{
		ID:           t.ID,
		Day:          t.Day,
		Title:        t.Title,
		Description:  t.Description,
		Type:         t.Type,
		Platform:     t.Platform,
		Reward:       t.Reward,
		Requirements: append([]string(nil), t.Requirements...),
		ContentURL:   t.ContentURL,
	}
}

// ApplyContentInput records a content link from the editor. "-" is the
// skip convention shared with the other free-text prompts and leaves
// the draft untouched. Reports whether a URL was recorded.
func (d *TaskDraft) ApplyContentInput(text string) bool {
	if text == "-" {
		return false
	}
	d.ContentURL = text
	return true
}

func (d *TaskDraft) Validate() error {
	if err := validate.Struct(d); err != nil {
		return err
	}
	if d.Type.IsSocial() && strings.TrimSpace(d.Platform) == "" {
		return errPlatformRequired
	}
	return nil
}

// Encode serializes the task draft as the multipart payload for the
// task endpoints. Requirements travel as repeated fields; an uploaded
// content file is attached as a binary part alongside any content URL.
func (d *TaskDraft) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"day":         strconv.Itoa(d.Day),
		"title":       d.Title,
		"description": d.Description,
		"type":        string(d.Type),
		"reward":      d.Reward.String(),
	}
	if d.Platform != "" {
		fields["platform"] = d.Platform
	}
	if d.ContentURL != "" {
		fields["contentUrl"] = d.ContentURL
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	for _, req := range d.Requirements {
		if err := w.WriteField("requirements", req); err != nil {
			return nil, "", fmt.Errorf("write requirement: %w", err)
		}
	}

	if len(d.ContentFileData) > 0 {
		part, err := w.CreateFormFile("contentFile", d.ContentFileName)
		if err != nil {
			return nil, "", fmt.Errorf("create content part: %w", err)
		}
		if _, err := part.Write(d.ContentFileData); err != nil {
			return nil, "", fmt.Errorf("write content file: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
