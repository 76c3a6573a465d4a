// internal/database/game.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/guesslink/guesslink/internal/models"
)

// RecordGameResult persists a finished game and its per-player scores in one
// transaction. Replays of the same record are harmless: both statements
// upsert on their natural keys.
func RecordGameResult(ctx context.Context, rec models.GameRecord) error {
	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		upsertGame := `
			INSERT INTO games (id, room_key, mode, theme, rounds, finished_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE
			SET rounds = $5, finished_at = $6
		`
		finishedAt := time.UnixMilli(rec.FinishedAt)
		if _, e := tx.Exec(ctx, upsertGame, rec.GameID, rec.RoomKey, string(rec.Mode), rec.Theme, rec.Rounds, finishedAt); e != nil {
			return e
		}

		for _, p := range rec.Players {
			q := `
				INSERT INTO game_results (game_id, player_id, pseudo, score)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (game_id, player_id)
				DO UPDATE SET pseudo = $3, score = $4
			`
			if _, e := tx.Exec(ctx, q, rec.GameID, p.ID, p.Pseudo, p.Score); e != nil {
				return e
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tx upsert game or results: %w", err)
	}
	return nil
}
