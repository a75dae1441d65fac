package analytics

type BadgeID string

const (
	BadgeHotStreak  BadgeID = "hot_streak"
	BadgeApex       BadgeID = "apex"
	BadgeQuickDraw  BadgeID = "quick_draw"
	BadgeNaturalist BadgeID = "naturalist"
	BadgeDevotee    BadgeID = "devotee"
	BadgeEagleEye   BadgeID = "eagle_eye"
)

type Badge struct {
	ID          BadgeID
	Name        string
	Description string
	Icon        string
}

var AllBadges = map[BadgeID]Badge{
	BadgeHotStreak:  {ID: BadgeHotStreak, Name: "Hot Streak", Description: "10+ correct answers in a single run", Icon: "🔥"},
	BadgeApex:       {ID: BadgeApex, Name: "Apex Predator", Description: "20+ correct answers in a single run", Icon: "🦁"},
	BadgeQuickDraw:  {ID: BadgeQuickDraw, Name: "Quick Draw", Description: "Average answer time under 2 seconds", Icon: "⚡"},
	BadgeNaturalist: {ID: BadgeNaturalist, Name: "Naturalist", Description: "Played 25+ games", Icon: "🌿"},
	BadgeDevotee:    {ID: BadgeDevotee, Name: "Daily Devotee", Description: "Finished the daily challenge 7 days in a row", Icon: "📅"},
	BadgeEagleEye:   {ID: BadgeEagleEye, Name: "Eagle Eye", Description: "90%+ lifetime accuracy over 50+ guesses", Icon: "🦅"},
}

// EvaluateGameBadges checks which badges a player earned in a single run.
func EvaluateGameBadges(stats PlayerGameStats) []Badge {
	var earned []Badge

	if stats.Score >= 10 {
		earned = append(earned, AllBadges[BadgeHotStreak])
	}

	if stats.Score >= 20 {
		earned = append(earned, AllBadges[BadgeApex])
	}

	if stats.Guesses > 0 && stats.AvgReaction > 0 && stats.AvgReaction < 2000 {
		earned = append(earned, AllBadges[BadgeQuickDraw])
	}

	return earned
}

// EvaluateLifetimeBadges checks which badges a player earned across their career.
func EvaluateLifetimeBadges(stats PlayerLifetimeStats) []Badge {
	var earned []Badge

	if stats.GamesPlayed >= 25 {
		earned = append(earned, AllBadges[BadgeNaturalist])
	}

	if stats.DailyStreak >= 7 {
		earned = append(earned, AllBadges[BadgeDevotee])
	}

	if stats.TotalGuesses >= 50 && stats.Accuracy >= 90.0 {
		earned = append(earned, AllBadges[BadgeEagleEye])
	}

	return earned
}
