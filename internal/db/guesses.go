package db

import (
	"fmt"
	"time"
)

type GuessEvent struct {
	GameID       string
	PlayerID     string
	RoundNo      int
	CriterionKey string
	Bridged      bool
	GuessedSide  string
	Correct      bool
	AskedAt      time.Time
	AnsweredAt   time.Time
	ReactionMs   int
}

func (d *DB) RecordGuess(ev GuessEvent) error {
	_, err := d.conn.Exec(`
		INSERT INTO guess_events (game_id, player_id, round_no, criterion_key, bridged, guessed_side, correct, asked_at, answered_at, reaction_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, ev.GameID, ev.PlayerID, ev.RoundNo, ev.CriterionKey, ev.Bridged, ev.GuessedSide, ev.Correct, ev.AskedAt, ev.AnsweredAt, ev.ReactionMs)
	if err != nil {
		return fmt.Errorf("recording guess: %w", err)
	}
	return nil
}

func (d *DB) BatchRecordGuesses(events []GuessEvent) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO guess_events (game_id, player_id, round_no, criterion_key, bridged, guessed_side, correct, asked_at, answered_at, reaction_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.Exec(ev.GameID, ev.PlayerID, ev.RoundNo, ev.CriterionKey, ev.Bridged, ev.GuessedSide, ev.Correct, ev.AskedAt, ev.AnsweredAt, ev.ReactionMs); err != nil {
			return fmt.Errorf("recording guess in batch: %w", err)
		}
	}

	return tx.Commit()
}
