package handler

import (
	"strings"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/recycleflux/adminbot/internal/forms"
)

func findCallback(rows [][]models.InlineKeyboardButton, prefix string) string {
	for _, row := range rows {
		for _, btn := range row {
			if strings.HasPrefix(btn.CallbackData, prefix) {
				return btn.CallbackData
			}
		}
	}
	return ""
}

func TestTaskFormRowsOfferDeleteForExistingTask(t *testing.T) {
	draft := forms.NewTaskDraft()
	draft.ID = "t42"

	if got := findCallback(taskFormRows(draft), "ct_del|"); got != "ct_del|t42" {
		t.Errorf("delete callback = %q, want ct_del|t42", got)
	}
}

func TestTaskFormRowsHideDeleteForNewTask(t *testing.T) {
	draft := forms.NewTaskDraft()

	if got := findCallback(taskFormRows(draft), "ct_del|"); got != "" {
		t.Errorf("create draft must not offer deletion, got %q", got)
	}
	if findCallback(taskFormRows(draft), "tf_save") == "" {
		t.Error("save button missing")
	}
}

func TestTaskFormRowsLinkButton(t *testing.T) {
	draft := forms.NewTaskDraft()
	draft.ContentURL = "https://example.com/brief"

	var found bool
	for _, row := range taskFormRows(draft) {
		for _, btn := range row {
			if btn.URL == draft.ContentURL {
				found = true
			}
		}
	}
	if !found {
		t.Error("summary must link the content URL")
	}
}
