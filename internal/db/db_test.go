package db

import (
	"os"
	"testing"
	"time"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}
	database, err := Connect(dsn)
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	t.Cleanup(func() {
		database.conn.Exec("DELETE FROM guess_events")
		database.conn.Exec("DELETE FROM player_badges")
		database.conn.Exec("DELETE FROM games")
		database.conn.Exec("DELETE FROM players")
		database.Close()
	})
	return database
}

func TestConnect(t *testing.T) {
	database := getTestDB(t)
	if err := database.Ping(); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}

func TestMigrate(t *testing.T) {
	database := getTestDB(t)

	tables := []string{"players", "games", "guess_events", "player_badges"}
	for _, table := range tables {
		var exists bool
		err := database.conn.QueryRow(`
			SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = $1)
		`, table).Scan(&exists)
		if err != nil {
			t.Errorf("checking table %s: %v", table, err)
		}
		if !exists {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestUpsertPlayer(t *testing.T) {
	database := getTestDB(t)

	id := "550e8400-e29b-41d4-a716-446655440000"
	if err := database.UpsertPlayer(id, "Alice"); err != nil {
		t.Fatalf("UpsertPlayer() error: %v", err)
	}

	if err := database.UpsertPlayer(id, "Alice Updated"); err != nil {
		t.Fatalf("UpsertPlayer() update error: %v", err)
	}

	p, err := database.GetPlayer(id)
	if err != nil {
		t.Fatalf("GetPlayer() error: %v", err)
	}
	if p.Name != "Alice Updated" {
		t.Errorf("name = %q, want %q", p.Name, "Alice Updated")
	}
}

func TestGetPlayer_NotFound(t *testing.T) {
	database := getTestDB(t)

	_, err := database.GetPlayer("00000000-0000-0000-0000-000000000000")
	if err == nil {
		t.Error("GetPlayer() should return error for nonexistent player")
	}
}

func TestCreateAndFinishGame(t *testing.T) {
	database := getTestDB(t)

	playerID := "550e8400-e29b-41d4-a716-446655440001"
	database.UpsertPlayer(playerID, "Solo")

	gameID, err := database.CreateGame("ABCDE", playerID, "daily", "2025-01-15")
	if err != nil {
		t.Fatalf("CreateGame() error: %v", err)
	}
	if gameID == "" {
		t.Error("CreateGame() returned empty ID")
	}

	if err := database.FinishGame(gameID, 12); err != nil {
		t.Fatalf("FinishGame() error: %v", err)
	}

	var endedAt *time.Time
	var score int
	database.conn.QueryRow("SELECT ended_at, final_score FROM games WHERE id = $1", gameID).Scan(&endedAt, &score)
	if endedAt == nil {
		t.Error("ended_at should be set after FinishGame()")
	}
	if score != 12 {
		t.Errorf("final_score = %d, want 12", score)
	}
}

func TestBestDailyScore(t *testing.T) {
	database := getTestDB(t)

	playerID := "550e8400-e29b-41d4-a716-446655440002"
	database.UpsertPlayer(playerID, "Daily")

	best, err := database.BestDailyScore(playerID, "2025-01-15")
	if err != nil {
		t.Fatalf("BestDailyScore() error: %v", err)
	}
	if best != -1 {
		t.Errorf("best = %d, want -1 before playing", best)
	}

	gameID, _ := database.CreateGame("FGHJK", playerID, "daily", "2025-01-15")
	database.FinishGame(gameID, 7)

	best, err = database.BestDailyScore(playerID, "2025-01-15")
	if err != nil {
		t.Fatalf("BestDailyScore() error: %v", err)
	}
	if best != 7 {
		t.Errorf("best = %d, want 7", best)
	}
}

func TestRecordGuess(t *testing.T) {
	database := getTestDB(t)

	playerID := "550e8400-e29b-41d4-a716-446655440003"
	database.UpsertPlayer(playerID, "Guesser")

	gameID, _ := database.CreateGame("MNPQR", playerID, "unlimited", "")

	now := time.Now()
	err := database.RecordGuess(GuessEvent{
		GameID:       gameID,
		PlayerID:     playerID,
		RoundNo:      1,
		CriterionKey: "mass_kg",
		GuessedSide:  "left",
		Correct:      true,
		AskedAt:      now.Add(-2 * time.Second),
		AnsweredAt:   now,
		ReactionMs:   2000,
	})
	if err != nil {
		t.Fatalf("RecordGuess() error: %v", err)
	}
}

func TestBatchRecordGuesses(t *testing.T) {
	database := getTestDB(t)

	playerID := "550e8400-e29b-41d4-a716-446655440004"
	database.UpsertPlayer(playerID, "Batcher")

	gameID, _ := database.CreateGame("STUVW", playerID, "unlimited", "")

	now := time.Now()
	events := []GuessEvent{
		{GameID: gameID, PlayerID: playerID, RoundNo: 1, CriterionKey: "mass_kg", GuessedSide: "left", Correct: true, AskedAt: now, AnsweredAt: now, ReactionMs: 900},
		{GameID: gameID, PlayerID: playerID, RoundNo: 2, CriterionKey: "max_speed_mph", GuessedSide: "right", Correct: true, AskedAt: now, AnsweredAt: now, ReactionMs: 1200},
		{GameID: gameID, PlayerID: playerID, RoundNo: 3, CriterionKey: "conservation", Bridged: true, GuessedSide: "left", Correct: false, AskedAt: now, AnsweredAt: now, ReactionMs: 1500},
	}

	if err := database.BatchRecordGuesses(events); err != nil {
		t.Fatalf("BatchRecordGuesses() error: %v", err)
	}

	var count int
	database.conn.QueryRow("SELECT COUNT(*) FROM guess_events WHERE game_id = $1", gameID).Scan(&count)
	if count != 3 {
		t.Errorf("guess count = %d, want 3", count)
	}
}

func TestAwardBadge(t *testing.T) {
	database := getTestDB(t)

	playerID := "550e8400-e29b-41d4-a716-446655440005"
	database.UpsertPlayer(playerID, "Collector")

	if err := database.AwardBadge(playerID, "streak_10", nil); err != nil {
		t.Fatalf("AwardBadge() error: %v", err)
	}
	// Duplicate award is a no-op
	if err := database.AwardBadge(playerID, "streak_10", nil); err != nil {
		t.Fatalf("AwardBadge() duplicate error: %v", err)
	}

	badges, err := database.GetPlayerBadges(playerID)
	if err != nil {
		t.Fatalf("GetPlayerBadges() error: %v", err)
	}
	if len(badges) != 1 || badges[0] != "streak_10" {
		t.Errorf("badges = %v, want [streak_10]", badges)
	}
}
