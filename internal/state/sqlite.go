package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"rsi-rotation/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps the record in a single-row SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath with WAL mode
// and initializes the schema.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("state: sqlite open: %w", err)
	}

	// Single writer, single row.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS signal_state (
			id        INTEGER PRIMARY KEY CHECK (id = 1),
			signal    TEXT    NOT NULL,
			date      TEXT    NOT NULL,
			timestamp TEXT    NOT NULL,
			notified  INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("state: sqlite schema: %w", err)
	}

	log.Printf("[state] opened sqlite store at %s", dbPath)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*model.SignalRecord, error) {
	var rec model.SignalRecord
	var notified int
	err := s.db.QueryRowContext(ctx,
		`SELECT signal, date, timestamp, notified FROM signal_state WHERE id = 1`,
	).Scan(&rec.Signal, &rec.Date, &rec.Timestamp, &notified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("state: sqlite load: %w", err)
	}
	rec.Notified = notified != 0
	return &rec, nil
}

func (s *SQLiteStore) Save(ctx context.Context, rec model.SignalRecord) error {
	notified := 0
	if rec.Notified {
		notified = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO signal_state (id, signal, date, timestamp, notified)
		VALUES (1, ?, ?, ?, ?)
	`, rec.Signal, rec.Date, rec.Timestamp, notified)
	if err != nil {
		return fmt.Errorf("state: sqlite save: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
