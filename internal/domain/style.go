package domain

// Descriptor carries the presentation attributes for an enum value.
// Lookups are exhaustive switches with a neutral fallback, so an
// unrecognized value from the backend still renders.
type Descriptor struct {
	Icon  string
	Label string
}

var neutralDescriptor = Descriptor{Icon: "▫️", Label: "Unknown"}

func (c Category) Style() Descriptor {
	switch c {
	case CategoryOcean:
		return Descriptor{Icon: "🌊", Label: "Ocean"}
	case CategoryForest:
		return Descriptor{Icon: "🌲", Label: "Forest"}
	case CategoryAir:
		return Descriptor{Icon: "💨", Label: "Air"}
	case CategoryCommunity:
		return Descriptor{Icon: "🤝", Label: "Community"}
	}
	return neutralDescriptor
}

func (d Difficulty) Style() Descriptor {
	switch d {
	case DifficultyEasy:
		return Descriptor{Icon: "🟢", Label: "Easy"}
	case DifficultyMedium:
		return Descriptor{Icon: "🟡", Label: "Medium"}
	case DifficultyHard:
		return Descriptor{Icon: "🔴", Label: "Hard"}
	}
	return neutralDescriptor
}

func (s CampaignStatus) Style() Descriptor {
	switch s {
	case CampaignActive:
		return Descriptor{Icon: "🟢", Label: "Active"}
	case CampaignUpcoming:
		return Descriptor{Icon: "🔵", Label: "Upcoming"}
	case CampaignCompleted:
		return Descriptor{Icon: "⚪", Label: "Completed"}
	}
	return neutralDescriptor
}

func (t TaskType) Style() Descriptor {
	switch t {
	case TaskSocialFollow:
		return Descriptor{Icon: "➕", Label: "Social Follow"}
	case TaskSocialPost:
		return Descriptor{Icon: "📣", Label: "Social Post"}
	case TaskVideoWatch:
		return Descriptor{Icon: "🎬", Label: "Watch Video"}
	case TaskArticleRead:
		return Descriptor{Icon: "📰", Label: "Read Article"}
	case TaskDiscordJoin:
		return Descriptor{Icon: "💬", Label: "Join Discord"}
	case TaskProofUpload:
		return Descriptor{Icon: "📎", Label: "Upload Proof"}
	}
	return neutralDescriptor
}

func (s ProofStatus) Style() Descriptor {
	switch s {
	case ProofPending:
		return Descriptor{Icon: "⏳", Label: "Pending"}
	case ProofCompleted:
		return Descriptor{Icon: "✅", Label: "Approved"}
	case ProofRejected:
		return Descriptor{Icon: "❌", Label: "Rejected"}
	}
	return neutralDescriptor
}
