package rooms

import (
	"time"

	"beastduel/internal/broadcast"
	"beastduel/internal/game"
	"beastduel/internal/wshub"
)

// Room is one player's session plus its delivery channels. Daily rooms
// replay the shared date-seeded sequence; each player still owns their
// own room and score.
type Room struct {
	Code        string
	Game        *game.Game
	Broadcaster *broadcast.Broadcaster
	Hub         *wshub.Hub
	CreatedAt   time.Time
	PlayerID    string
	PlayerName  string

	// GameRecordID is the row id in the optional database, "" without one.
	GameRecordID string
}
