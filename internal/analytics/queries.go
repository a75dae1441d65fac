package analytics

import (
	"fmt"
	"time"

	"beastduel/internal/db"
)

type Queries struct {
	DB *db.DB
}

func NewQueries(database *db.DB) *Queries {
	return &Queries{DB: database}
}

func (q *Queries) GetPlayerGameStats(gameID, playerID string) (*PlayerGameStats, error) {
	stats := &PlayerGameStats{
		GameID:   gameID,
		PlayerID: playerID,
	}

	err := q.DB.QueryRow(`
		SELECT p.name, g.mode, g.seed_key, g.final_score
		FROM games g
		JOIN players p ON p.id = g.player_id
		WHERE g.id = $1 AND g.player_id = $2
	`, gameID, playerID).Scan(&stats.PlayerName, &stats.Mode, &stats.SeedKey, &stats.Score)
	if err != nil {
		return nil, fmt.Errorf("getting game: %w", err)
	}

	err = q.DB.QueryRow(`
		SELECT
			COUNT(*) as guesses,
			COUNT(*) FILTER (WHERE correct) as correct,
			COALESCE(AVG(reaction_ms), 0) as avg_reaction,
			COALESCE(MIN(reaction_ms), 0) as fastest,
			COUNT(*) FILTER (WHERE bridged) as bridged
		FROM guess_events
		WHERE game_id = $1 AND player_id = $2
	`, gameID, playerID).Scan(&stats.Guesses, &stats.Correct, &stats.AvgReaction, &stats.FastestMs, &stats.Bridged)
	if err != nil {
		return nil, fmt.Errorf("getting guess stats: %w", err)
	}

	if stats.Guesses > 0 {
		stats.Accuracy = float64(stats.Correct) / float64(stats.Guesses) * 100
	}

	return stats, nil
}

func (q *Queries) GetPlayerLifetimeStats(playerID string) (*PlayerLifetimeStats, error) {
	stats := &PlayerLifetimeStats{
		PlayerID: playerID,
	}

	err := q.DB.QueryRow(`SELECT name FROM players WHERE id = $1`, playerID).
		Scan(&stats.PlayerName)
	if err != nil {
		return nil, fmt.Errorf("getting player: %w", err)
	}

	err = q.DB.QueryRow(`
		SELECT
			COUNT(*) as games_played,
			COALESCE(MAX(final_score), 0) as best_score
		FROM games
		WHERE player_id = $1 AND ended_at IS NOT NULL
	`, playerID).Scan(&stats.GamesPlayed, &stats.BestScore)
	if err != nil {
		return nil, fmt.Errorf("getting lifetime games: %w", err)
	}

	err = q.DB.QueryRow(`
		SELECT
			COUNT(*) as guesses,
			COUNT(*) FILTER (WHERE correct) as correct
		FROM guess_events
		WHERE player_id = $1
	`, playerID).Scan(&stats.TotalGuesses, &stats.TotalCorrect)
	if err != nil {
		return nil, fmt.Errorf("getting lifetime guesses: %w", err)
	}

	if stats.TotalGuesses > 0 {
		stats.Accuracy = float64(stats.TotalCorrect) / float64(stats.TotalGuesses) * 100
	}

	streak, err := q.dailyStreak(playerID)
	if err != nil {
		return nil, err
	}
	stats.DailyStreak = streak

	stats.Badges = EvaluateLifetimeBadges(*stats)

	return stats, nil
}

// dailyStreak counts consecutive daily seed keys finished, walking back from
// the most recent one.
func (q *Queries) dailyStreak(playerID string) (int, error) {
	rows, err := q.DB.Query(`
		SELECT DISTINCT seed_key
		FROM games
		WHERE player_id = $1 AND mode = 'daily' AND ended_at IS NOT NULL
		ORDER BY seed_key DESC
	`, playerID)
	if err != nil {
		return 0, fmt.Errorf("getting daily streak: %w", err)
	}
	defer rows.Close()

	streak := 0
	var prev time.Time
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return 0, err
		}
		day, err := time.Parse("2006-01-02", key)
		if err != nil {
			continue
		}
		if streak > 0 && !day.Equal(prev.AddDate(0, 0, -1)) {
			break
		}
		streak++
		prev = day
	}
	return streak, nil
}

func (q *Queries) GetLeaderboard(category string, limit int) ([]LeaderboardEntry, error) {
	var query string
	switch category {
	case "score":
		query = `
			SELECT p.id, p.name, COALESCE(MAX(g.final_score), 0) as value
			FROM players p
			JOIN games g ON g.player_id = p.id AND g.ended_at IS NOT NULL
			GROUP BY p.id, p.name
			ORDER BY value DESC
			LIMIT $1`
	case "games":
		query = `
			SELECT p.id, p.name, COUNT(*) as value
			FROM players p
			JOIN games g ON g.player_id = p.id AND g.ended_at IS NOT NULL
			GROUP BY p.id, p.name
			ORDER BY value DESC
			LIMIT $1`
	case "accuracy":
		query = `
			SELECT p.id, p.name,
				ROUND(COUNT(*) FILTER (WHERE ge.correct)::numeric * 100 / COUNT(*))::int as value
			FROM players p
			JOIN guess_events ge ON ge.player_id = p.id
			GROUP BY p.id, p.name
			HAVING COUNT(*) >= 20
			ORDER BY value DESC
			LIMIT $1`
	case "reaction":
		query = `
			SELECT p.id, p.name, COALESCE(MIN(ge.reaction_ms), 0) as value
			FROM players p
			JOIN guess_events ge ON ge.player_id = p.id AND ge.correct
			GROUP BY p.id, p.name
			ORDER BY value ASC
			LIMIT $1`
	default:
		return nil, fmt.Errorf("unknown leaderboard category: %s", category)
	}

	rows, err := q.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("getting leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.PlayerName, &e.Value); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, nil
}

// GetDailyLeaderboard ranks players by best score for one daily seed key.
func (q *Queries) GetDailyLeaderboard(seedKey string, limit int) ([]LeaderboardEntry, error) {
	rows, err := q.DB.Query(`
		SELECT p.id, p.name, MAX(g.final_score) as value
		FROM players p
		JOIN games g ON g.player_id = p.id
		WHERE g.mode = 'daily' AND g.seed_key = $1 AND g.ended_at IS NOT NULL
		GROUP BY p.id, p.name
		ORDER BY value DESC
		LIMIT $2
	`, seedKey, limit)
	if err != nil {
		return nil, fmt.Errorf("getting daily leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.PlayerName, &e.Value); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, nil
}

func (q *Queries) GetGameRecap(gameID string) (*GameRecap, error) {
	recap := &GameRecap{GameID: gameID}

	var playerID string
	err := q.DB.QueryRow(`
		SELECT room_code, mode, seed_key, started_at, ended_at, player_id
		FROM games WHERE id = $1
	`, gameID).Scan(&recap.RoomCode, &recap.Mode, &recap.SeedKey, &recap.StartedAt, &recap.EndedAt, &playerID)
	if err != nil {
		return nil, fmt.Errorf("getting game: %w", err)
	}

	stats, err := q.GetPlayerGameStats(gameID, playerID)
	if err != nil {
		return nil, err
	}
	recap.Stats = *stats

	return recap, nil
}
