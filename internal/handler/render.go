package handler

import (
	"fmt"
	"strings"

	"github.com/recycleflux/adminbot/internal/domain"
)

// bullet picks the list marker for the chat's theme preference.
func bullet(dark bool) string {
	if dark {
		return "▪️"
	}
	return "▫️"
}

func renderCampaignLine(c domain.Campaign, dark bool) string {
	cat := c.Category.Style()
	st := c.Status.Style()
	return fmt.Sprintf("%s %s *%s*\n%s %s · %s · %d participants · %.0f%%",
		bullet(dark), cat.Icon, c.Title,
		st.Icon, st.Label, c.Difficulty.Style().Label, c.Participants, c.Progress)
}

func renderDetailHeader(c *domain.Campaign) string {
	cat := c.Category.Style()
	st := c.Status.Style()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s *%s*\n", cat.Icon, c.Title))
	if c.Description != "" {
		sb.WriteString(c.Description + "\n")
	}
	sb.WriteString(fmt.Sprintf("\n%s %s · %s · 💰 %s FLUX\n", st.Icon, st.Label, c.Difficulty.Style().Label, c.Reward.String()))
	sb.WriteString(fmt.Sprintf("📅 %s → %s\n", c.StartDate, c.EndDate))
	sb.WriteString(fmt.Sprintf("👥 %d participants · progress %.0f%% · %d tasks done\n", c.Participants, c.Progress, c.CompletedTasks))

	var flags []string
	if c.Featured {
		flags = append(flags, "⭐ featured")
	}
	if c.New {
		flags = append(flags, "🆕 new")
	}
	if c.Trending {
		flags = append(flags, "🔥 trending")
	}
	if c.EndingSoon {
		flags = append(flags, "⏳ ending soon")
	}
	if len(flags) > 0 {
		sb.WriteString(strings.Join(flags, " · ") + "\n")
	}
	return sb.String()
}

func renderTasks(c *domain.Campaign, dark bool) string {
	if len(c.Tasks) == 0 {
		return "\nNo tasks yet."
	}
	var sb strings.Builder
	sb.WriteString("\n*Tasks*\n")
	for _, t := range c.Tasks {
		ty := t.Type.Style()
		sb.WriteString(fmt.Sprintf("%s Day %d · %s %s — %s FLUX", bullet(dark), t.Day, ty.Icon, t.Title, t.Reward.String()))
		if t.Platform != "" {
			sb.WriteString(" · " + t.Platform)
		}
		if ref := t.ContentRef(); ref != "" {
			sb.WriteString(" · 🔗 " + ref)
		}
		if len(t.CompletedBy) > 0 {
			sb.WriteString(fmt.Sprintf(" · %d completions", len(t.CompletedBy)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderParticipants(c *domain.Campaign, dark bool) string {
	if len(c.ParticipantsList) == 0 {
		return "\nNo participants yet."
	}
	var sb strings.Builder
	sb.WriteString("\n*Participants*\n")
	for _, p := range c.ParticipantsList {
		sb.WriteString(fmt.Sprintf("%s %s", bullet(dark), p.Username))
		if p.Joined != "" {
			sb.WriteString(" · joined " + p.Joined)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderProofGroups(groups []domain.ProofGroup, dark bool) string {
	if len(groups) == 0 {
		return "\nNo submissions to review."
	}
	var sb strings.Builder
	sb.WriteString("\n*Proof review*\n")
	for _, g := range groups {
		sb.WriteString(fmt.Sprintf("\n📌 Day %d · *%s*\n", g.Day, g.TaskTitle))
		for _, p := range g.Proofs {
			st := p.Status.Style()
			sb.WriteString(fmt.Sprintf("%s %s %s — %s\n", bullet(dark), st.Icon, p.Username, p.Submission))
		}
	}
	return sb.String()
}

func renderNotifications(feed []domain.Notification, dark bool) string {
	if len(feed) == 0 {
		return "🔔 No notifications."
	}
	var sb strings.Builder
	sb.WriteString("🔔 *Notifications*\n\n")
	for _, n := range feed {
		mark := "🔵"
		if n.Read {
			mark = bullet(dark)
		}
		sb.WriteString(fmt.Sprintf("%s %s submitted a proof for *%s*\n", mark, n.Username, n.TaskTitle))
	}
	return sb.String()
}
