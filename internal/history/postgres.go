package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// uniqueViolation is the SQLSTATE for a primary key conflict.
const uniqueViolation = pq.ErrorCode("23505")

//go:embed migrations/0001_rounds.up.sql
var migration0001Up string

// PostgresStore records rounds in a PostgreSQL table.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects with the lib/pq driver, applies migrations and
// returns a store. The caller owns closing the store.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: ping postgres: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewPostgresStore(db), nil
}

// NewPostgresStore wraps an existing, migrated database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the rounds table if it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("history: nil database handle")
	}
	if _, err := db.ExecContext(ctx, migration0001Up); err != nil {
		return fmt.Errorf("history: apply migration 0001_rounds.up.sql: %w", err)
	}
	return nil
}

func (s *PostgresStore) Record(ctx context.Context, round Round) error {
	if round.GameID == "" {
		return ErrNoGameID
	}
	seats, err := json.Marshal(round.Seats)
	if err != nil {
		return fmt.Errorf("history: encode seats: %w", err)
	}
	winners, err := json.Marshal(round.Winners)
	if err != nil {
		return fmt.Errorf("history: encode winners: %w", err)
	}

	const q = `
INSERT INTO rounds (game_id, seq, deal, event, recorded_at, seats, winners)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`
	_, err = s.db.ExecContext(ctx, q,
		round.GameID,
		round.Seq,
		round.Deal,
		string(round.Event),
		round.At,
		string(seats),
		string(winners),
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: game %s seq %d", ErrDuplicateRound, round.GameID, round.Seq)
	}
	return err
}

func (s *PostgresStore) List(ctx context.Context, gameID string) ([]Round, error) {
	const q = `
SELECT game_id, seq, deal, event, recorded_at, seats, winners
FROM rounds
WHERE game_id = $1
ORDER BY seq
`
	rows, err := s.db.QueryContext(ctx, q, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Round
	for rows.Next() {
		var (
			r       Round
			event   string
			seats   []byte
			winners []byte
		)
		if err := rows.Scan(&r.GameID, &r.Seq, &r.Deal, &event, &r.At, &seats, &winners); err != nil {
			return nil, err
		}
		r.Event = Event(event)
		if err := json.Unmarshal(seats, &r.Seats); err != nil {
			return nil, fmt.Errorf("history: decode seats: %w", err)
		}
		if err := json.Unmarshal(winners, &r.Winners); err != nil {
			return nil, fmt.Errorf("history: decode winners: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the underlying database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
