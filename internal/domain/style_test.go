package domain

import "testing"

func TestStyleFallback(t *testing.T) {
	tests := []struct {
		name string
		got  Descriptor
		want string
	}{
		{"known category", CategoryOcean.Style(), "Ocean"},
		{"unknown category", Category("Lava").Style(), "Unknown"},
		{"known difficulty", DifficultyHard.Style(), "Hard"},
		{"unknown difficulty", Difficulty("Insane").Style(), "Unknown"},
		{"known status", CampaignActive.Style(), "Active"},
		{"unknown status", CampaignStatus("paused").Style(), "Unknown"},
		{"known task type", TaskProofUpload.Style(), "Upload Proof"},
		{"unknown task type", TaskType("tiktok-duet").Style(), "Unknown"},
		{"known proof status", ProofRejected.Style(), "Rejected"},
		{"unknown proof status", ProofStatus("flagged").Style(), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Label != tt.want {
				t.Errorf("Label = %q, want %q", tt.got.Label, tt.want)
			}
			if tt.got.Icon == "" {
				t.Error("Icon is empty")
			}
		})
	}
}

func TestTaskTypeIsSocial(t *testing.T) {
	if !TaskSocialFollow.IsSocial() || !TaskSocialPost.IsSocial() {
		t.Error("social types must require a platform")
	}
	if TaskVideoWatch.IsSocial() || TaskProofUpload.IsSocial() {
		t.Error("non-social types must not require a platform")
	}
}

func TestTaskContentRef(t *testing.T) {
	task := Task{ContentURL: "https://example.com/article"}
	if got := task.ContentRef(); got != "https://example.com/article" {
		t.Errorf("ContentRef() = %q", got)
	}

	task.ContentFileURL = "/uploads/brief.pdf"
	if got := task.ContentRef(); got != "/uploads/brief.pdf" {
		t.Errorf("uploaded file must win, got %q", got)
	}
}
