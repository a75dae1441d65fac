package db

import (
	"fmt"
	"time"
)

type GameRecord struct {
	ID         string
	RoomCode   string
	PlayerID   string
	Mode       string
	SeedKey    string
	FinalScore int
	StartedAt  *time.Time
	EndedAt    *time.Time
	CreatedAt  time.Time
}

func (d *DB) CreateGame(roomCode, playerID, mode, seedKey string) (string, error) {
	var id string
	err := d.conn.QueryRow(`
		INSERT INTO games (room_code, player_id, mode, seed_key, started_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id
	`, roomCode, playerID, mode, seedKey).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating game: %w", err)
	}
	return id, nil
}

func (d *DB) FinishGame(gameID string, finalScore int) error {
	_, err := d.conn.Exec(`
		UPDATE games SET ended_at = now(), final_score = $2 WHERE id = $1
	`, gameID, finalScore)
	if err != nil {
		return fmt.Errorf("finishing game: %w", err)
	}
	return nil
}

// BestDailyScore returns the player's best finished score for a daily seed
// key, or -1 when they have not played that day.
func (d *DB) BestDailyScore(playerID, seedKey string) (int, error) {
	var best int
	err := d.conn.QueryRow(`
		SELECT COALESCE(MAX(final_score), -1)
		FROM games
		WHERE player_id = $1 AND mode = 'daily' AND seed_key = $2 AND ended_at IS NOT NULL
	`, playerID, seedKey).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("getting daily best: %w", err)
	}
	return best, nil
}
