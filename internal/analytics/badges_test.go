package analytics

import "testing"

func TestEvaluateGameBadges_HotStreak(t *testing.T) {
	stats := PlayerGameStats{Score: 10, Guesses: 11}
	badges := EvaluateGameBadges(stats)
	if !hasBadge(badges, BadgeHotStreak) {
		t.Error("should earn Hot Streak with 10 correct")
	}
}

func TestEvaluateGameBadges_NoHotStreak(t *testing.T) {
	stats := PlayerGameStats{Score: 9, Guesses: 10}
	badges := EvaluateGameBadges(stats)
	if hasBadge(badges, BadgeHotStreak) {
		t.Error("should not earn Hot Streak with 9 correct")
	}
}

func TestEvaluateGameBadges_ApexImpliesHotStreak(t *testing.T) {
	stats := PlayerGameStats{Score: 20, Guesses: 21}
	badges := EvaluateGameBadges(stats)
	if !hasBadge(badges, BadgeApex) {
		t.Error("should earn Apex Predator with 20 correct")
	}
	if !hasBadge(badges, BadgeHotStreak) {
		t.Error("Apex run should also earn Hot Streak")
	}
}

func TestEvaluateGameBadges_QuickDraw(t *testing.T) {
	stats := PlayerGameStats{Guesses: 8, AvgReaction: 1800}
	badges := EvaluateGameBadges(stats)
	if !hasBadge(badges, BadgeQuickDraw) {
		t.Error("should earn Quick Draw with 1.8s average")
	}
}

func TestEvaluateGameBadges_NoQuickDraw(t *testing.T) {
	stats := PlayerGameStats{Guesses: 8, AvgReaction: 2500}
	badges := EvaluateGameBadges(stats)
	if hasBadge(badges, BadgeQuickDraw) {
		t.Error("should not earn Quick Draw with 2.5s average")
	}
}

func TestEvaluateGameBadges_NoBadges(t *testing.T) {
	stats := PlayerGameStats{Score: 3, Guesses: 4, AvgReaction: 3000}
	badges := EvaluateGameBadges(stats)
	if len(badges) != 0 {
		t.Errorf("should earn no badges, got %d", len(badges))
	}
}

func TestEvaluateLifetimeBadges_Naturalist(t *testing.T) {
	stats := PlayerLifetimeStats{GamesPlayed: 25}
	badges := EvaluateLifetimeBadges(stats)
	if !hasBadge(badges, BadgeNaturalist) {
		t.Error("should earn Naturalist with 25 games")
	}
}

func TestEvaluateLifetimeBadges_NoNaturalist(t *testing.T) {
	stats := PlayerLifetimeStats{GamesPlayed: 24}
	badges := EvaluateLifetimeBadges(stats)
	if hasBadge(badges, BadgeNaturalist) {
		t.Error("should not earn Naturalist with 24 games")
	}
}

func TestEvaluateLifetimeBadges_Devotee(t *testing.T) {
	stats := PlayerLifetimeStats{DailyStreak: 7}
	badges := EvaluateLifetimeBadges(stats)
	if !hasBadge(badges, BadgeDevotee) {
		t.Error("should earn Daily Devotee with a 7-day streak")
	}
}

func TestEvaluateLifetimeBadges_EagleEyeNeedsVolume(t *testing.T) {
	stats := PlayerLifetimeStats{TotalGuesses: 49, TotalCorrect: 49, Accuracy: 100}
	badges := EvaluateLifetimeBadges(stats)
	if hasBadge(badges, BadgeEagleEye) {
		t.Error("should not earn Eagle Eye below 50 guesses")
	}

	stats = PlayerLifetimeStats{TotalGuesses: 60, TotalCorrect: 55, Accuracy: 91.7}
	badges = EvaluateLifetimeBadges(stats)
	if !hasBadge(badges, BadgeEagleEye) {
		t.Error("should earn Eagle Eye at 91.7% over 60 guesses")
	}
}

func hasBadge(badges []Badge, id BadgeID) bool {
	for _, b := range badges {
		if b.ID == id {
			return true
		}
	}
	return false
}
