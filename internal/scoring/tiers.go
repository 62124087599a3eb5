package scoring

type Tier string

const (
	TierDefault Tier = "default"
	TierBronze  Tier = "bronze"
	TierSilver  Tier = "silver"
	TierGold    Tier = "gold"
)

// Tier thresholds are fixed multiples of three points.
const pointsPerTier = 3

type TierInfo struct {
	Tier    Tier
	Title   string
	Message string
	Emoji   string
	Color   string
}

var tierMessages = map[Tier]TierInfo{
	TierDefault: {
		Tier:    TierDefault,
		Title:   "Getting Started",
		Message: "Building your reminder habit, one step at a time.",
		Emoji:   "🌱",
		Color:   "#6b7280",
	},
	TierBronze: {
		Tier:    TierBronze,
		Title:   "Bronze Level",
		Message: "You're getting into a good rhythm. Keep it up!",
		Emoji:   "🥉",
		Color:   "#cd7f32",
	},
	TierSilver: {
		Tier:    TierSilver,
		Title:   "Silver Level",
		Message: "Nice consistency! Your habits are really taking shape.",
		Emoji:   "🥈",
		Color:   "#c0c0c0",
	},
	TierGold: {
		Tier:    TierGold,
		Title:   "Gold Level",
		Message: "Excellent work! You've mastered the art of consistent reminders.",
		Emoji:   "🥇",
		Color:   "#ffd700",
	},
}

// TierOf derives the tier from cumulative score alone.
func TierOf(score int) Tier {
	switch {
	case score >= pointsPerTier*3:
		return TierGold
	case score >= pointsPerTier*2:
		return TierSilver
	case score >= pointsPerTier:
		return TierBronze
	default:
		return TierDefault
	}
}

// InfoFor returns the display metadata for a tier.
func InfoFor(tier Tier) TierInfo {
	if info, ok := tierMessages[tier]; ok {
		return info
	}
	return tierMessages[TierDefault]
}

// Thresholds lists the score boundaries for bronze, silver and gold.
func Thresholds() []int {
	return []int{pointsPerTier, pointsPerTier * 2, pointsPerTier * 3}
}
