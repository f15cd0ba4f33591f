package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessageShortText(t *testing.T) {
	parts := SplitMessage("hello", MaxMessageLen)
	if len(parts) != 1 || parts[0] != "hello" {
		t.Fatalf("expected single part, got %v", parts)
	}
}

func TestSplitMessagePrefersNewlines(t *testing.T) {
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = strings.Repeat("x", 9)
	}
	text := strings.Join(lines, "\n")

	parts := SplitMessage(text, 100)
	if len(parts) < 2 {
		t.Fatalf("expected multiple parts, got %d", len(parts))
	}
	for i, part := range parts[:len(parts)-1] {
		if strings.Contains(strings.TrimSuffix(part, "\n"), "\n") && !strings.HasSuffix(part, "\n") {
			t.Errorf("part %d does not end on a line boundary: %q", i, part)
		}
	}
	if got := strings.Join(parts, ""); got != text {
		t.Error("parts do not reassemble to the original text")
	}
}

func TestSplitMessageMultibyteText(t *testing.T) {
	text := strings.Repeat("я", 4000) + "\n" + strings.Repeat("x", 200)

	parts := SplitMessage(text, MaxMessageLen)
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	for i, part := range parts {
		if n := utf8.RuneCountInString(part); n > MaxMessageLen {
			t.Errorf("part %d exceeds the limit: %d runes", i, n)
		}
	}
	if strings.Join(parts, "") != text {
		t.Error("parts do not reassemble to the original text")
	}
}

func TestSplitMessageMultibyteHardSplit(t *testing.T) {
	text := strings.Repeat("🌊", 250)
	parts := SplitMessage(text, 100)
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	if strings.Join(parts, "") != text {
		t.Error("parts do not reassemble to the original text")
	}
}

func TestSplitMessageHardSplitWithoutNewlines(t *testing.T) {
	text := strings.Repeat("a", 250)
	parts := SplitMessage(text, 100)
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	for i, part := range parts {
		if len(part) > 100 {
			t.Errorf("part %d exceeds the limit: %d chars", i, len(part))
		}
	}
}
