package forms

import (
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/recycleflux/adminbot/internal/domain"
)

func TestRecomputeEndDate(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		duration int
		want     string
	}{
		{"week", "2024-01-01", 7, "2024-01-08"},
		{"month boundary", "2024-01-28", 5, "2024-02-02"},
		{"leap day", "2024-02-28", 1, "2024-02-29"},
		{"year boundary", "2024-12-30", 3, "2025-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewCampaignDraft()
			if err := d.SetStartDate(tt.start); err != nil {
				t.Fatalf("SetStartDate: %v", err)
			}
			d.SetDuration(tt.duration)
			if d.EndDate != tt.want {
				t.Errorf("EndDate = %q, want %q", d.EndDate, tt.want)
			}
		})
	}
}

func TestSetStartDateRejectsGarbage(t *testing.T) {
	d := NewCampaignDraft()
	if err := d.SetStartDate("01/02/2024"); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func parseMultipart(t *testing.T, body io.Reader, contentType string) (map[string][]string, map[string][]byte) {
	t.Helper()
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	reader := multipart.NewReader(body, params["boundary"])

	values := make(map[string][]string)
	files := make(map[string][]byte)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		data, err := io.ReadAll(part)
		if err != nil {
			t.Fatalf("read part: %v", err)
		}
		if part.FileName() != "" {
			files[part.FormName()] = data
		} else {
			values[part.FormName()] = append(values[part.FormName()], string(data))
		}
	}
	return values, files
}

func TestCampaignEncodeStagedTasks(t *testing.T) {
	d := NewCampaignDraft()
	d.Title = "River Revival"
	d.Category = domain.CategoryOcean
	d.SetStartDate("2024-03-01")
	d.Tasks = []TaskDraft{
		{Day: 1, Title: "Share the launch post", Type: domain.TaskSocialPost, Platform: "twitter"},
	}

	body, contentType, err := d.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	values, files := parseMultipart(t, body, contentType)

	if got := values["title"]; len(got) != 1 || got[0] != "River Revival" {
		t.Errorf("title = %v", got)
	}
	tasks := values["tasks"]
	if len(tasks) != 1 {
		t.Fatalf("tasks field count = %d, want 1", len(tasks))
	}
	if !strings.Contains(tasks[0], `"type":"social-post"`) || !strings.Contains(tasks[0], `"platform":"twitter"`) {
		t.Errorf("tasks JSON = %s", tasks[0])
	}
	if len(files) != 0 {
		t.Errorf("unexpected file parts: %v", files)
	}
	if _, present := values["image"]; present {
		t.Error("create draft without image must not send the image marker")
	}
}

func TestCampaignEncodeImageSemantics(t *testing.T) {
	t.Run("new file attached", func(t *testing.T) {
		d := NewCampaignDraft()
		d.Title = "x"
		d.ImageName = "banner.png"
		d.ImageData = []byte{0x89, 0x50}

		body, contentType, err := d.Encode()
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		_, files := parseMultipart(t, body, contentType)
		if string(files["image"]) != "\x89P" {
			t.Errorf("image part = %v", files["image"])
		}
	})

	t.Run("edit keeps existing image via empty marker", func(t *testing.T) {
		d := &CampaignDraft{ID: "c1", Title: "x", StartDate: "2024-01-01", DurationDays: 7, HadImage: true}
		d.RecomputeEndDate()

		body, contentType, err := d.Encode()
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		values, files := parseMultipart(t, body, contentType)
		if len(files) != 0 {
			t.Errorf("no binary part expected, got %v", files)
		}
		if got, present := values["image"]; !present || got[0] != "" {
			t.Errorf("image marker = %v, present = %v", got, present)
		}
	})
}

func TestTaskDraftValidatePlatform(t *testing.T) {
	d := NewTaskDraft()
	d.Title = "Follow us"
	d.Type = domain.TaskSocialFollow
	if err := d.Validate(); err == nil {
		t.Error("social task without platform must fail validation")
	}

	d.Platform = "instagram"
	if err := d.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestTaskContentInputDashSkips(t *testing.T) {
	d := NewTaskDraft()
	if d.ApplyContentInput("-") {
		t.Error("dash must be the skip convention, not a URL")
	}
	if d.ContentURL != "" {
		t.Errorf("ContentURL = %q, want empty after skip", d.ContentURL)
	}

	if !d.ApplyContentInput("https://example.com/post") {
		t.Error("a real URL must be recorded")
	}
	if d.ContentURL != "https://example.com/post" {
		t.Errorf("ContentURL = %q", d.ContentURL)
	}
}

func TestTaskEncodeFileAndURLBothTravel(t *testing.T) {
	d := NewTaskDraft()
	d.Title = "Read the brief"
	d.Type = domain.TaskArticleRead
	d.ContentURL = "https://example.com/brief"
	d.ContentFileName = "brief.pdf"
	d.ContentFileData = []byte("pdf-bytes")
	d.Requirements = []string{"read fully", "quiz"}

	body, contentType, err := d.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	values, files := parseMultipart(t, body, contentType)

	if got := values["contentUrl"]; len(got) != 1 || got[0] != "https://example.com/brief" {
		t.Errorf("contentUrl = %v", got)
	}
	if string(files["contentFile"]) != "pdf-bytes" {
		t.Errorf("contentFile = %q", files["contentFile"])
	}
	if got := values["requirements"]; len(got) != 2 {
		t.Errorf("requirements = %v", got)
	}
}
