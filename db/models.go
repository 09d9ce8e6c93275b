package db

import (
	"context"
	"fmt"
	"time"

	"triplecrown-scraper/models"
)

// Winner is a row of the triple_crown_winners table
type Winner struct {
	Year   int
	Winner string
}

// SaveRecords upserts records in a single transaction. It returns the number
// of rows written.
func (db *DB) SaveRecords(ctx context.Context, records []models.Record) (int, error) {
	rows, err := toWinners(records)
	if err != nil {
		return 0, err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO triple_crown_winners (year, winner, scraped_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (year) DO UPDATE SET winner = EXCLUDED.winner, scraped_at = EXCLUDED.scraped_at
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, w := range rows {
		if _, err := stmt.ExecContext(ctx, w.Year, w.Winner, now); err != nil {
			return 0, fmt.Errorf("failed to save winner %d: %w", w.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(rows), nil
}

// toWinners converts records to table rows; the year column is an integer
func toWinners(records []models.Record) ([]Winner, error) {
	winners := make([]Winner, 0, len(records))
	for _, r := range records {
		year, err := r.Year.Int()
		if err != nil {
			return nil, err
		}
		winners = append(winners, Winner{Year: year, Winner: r.Winner})
	}
	return winners, nil
}
