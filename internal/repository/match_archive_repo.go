package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ludo_broker/internal/domain"
)

type MatchArchiveRepository struct {
	db *pgxpool.Pool
}

func NewMatchArchiveRepository(db *pgxpool.Pool) *MatchArchiveRepository {
	return &MatchArchiveRepository{db: db}
}

// Create stores one archived match row.
func (r *MatchArchiveRepository) Create(ctx context.Context, rec *domain.MatchRecord) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO match_history (match_id, player_a_id, player_a_name, player_b_id, player_b_name, amount, room_code, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, ended_at
	`, rec.MatchID, rec.PlayerAID, rec.PlayerAName, rec.PlayerBID, rec.PlayerBName,
		rec.Amount, rec.RoomCode, rec.Reason).Scan(&rec.ID, &rec.EndedAt)
}

// GetByMatchID returns the archived row for a match id, nil when absent.
func (r *MatchArchiveRepository) GetByMatchID(ctx context.Context, matchID string) (*domain.MatchRecord, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, match_id, player_a_id, player_a_name, player_b_id, player_b_name, amount, room_code, reason, ended_at
		FROM match_history
		WHERE match_id = $1
	`, matchID)

	var rec domain.MatchRecord
	if err := row.Scan(
		&rec.ID, &rec.MatchID, &rec.PlayerAID, &rec.PlayerAName, &rec.PlayerBID, &rec.PlayerBName,
		&rec.Amount, &rec.RoomCode, &rec.Reason, &rec.EndedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &rec, nil
}

// Recent returns the latest archived matches, newest first.
func (r *MatchArchiveRepository) Recent(ctx context.Context, limit int) ([]domain.MatchRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, match_id, player_a_id, player_a_name, player_b_id, player_b_name, amount, room_code, reason, ended_at
		FROM match_history
		ORDER BY ended_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.MatchRecord
	for rows.Next() {
		var rec domain.MatchRecord
		if err := rows.Scan(
			&rec.ID, &rec.MatchID, &rec.PlayerAID, &rec.PlayerAName, &rec.PlayerBID, &rec.PlayerBName,
			&rec.Amount, &rec.RoomCode, &rec.Reason, &rec.EndedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
