package analytics

import "time"

type PlayerGameStats struct {
	PlayerID    string
	PlayerName  string
	GameID      string
	Mode        string
	SeedKey     string
	Score       int
	Guesses     int
	Correct     int
	Accuracy    float64 // percentage of correct guesses
	AvgReaction float64
	FastestMs   int
	Bridged     int // bridged rounds seen
}

type PlayerLifetimeStats struct {
	PlayerID     string
	PlayerName   string
	GamesPlayed  int
	BestScore    int
	TotalCorrect int
	TotalGuesses int
	Accuracy     float64
	DailyStreak  int // consecutive calendar days with a finished daily game
	Badges       []Badge
}

type LeaderboardEntry struct {
	PlayerID   string
	PlayerName string
	Value      int
	Rank       int
}

type GameRecap struct {
	GameID    string
	RoomCode  string
	Mode      string
	SeedKey   string
	StartedAt *time.Time
	EndedAt   *time.Time
	Stats     PlayerGameStats
}
