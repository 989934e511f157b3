// Package storage persists ledger snapshots in SQLite. The model is a single
// keyed slot holding the whole dataset as one JSON document, matching how the
// ledger has always been cached client-side; SQLite buys durability, atomic
// writes and room for future per-record tables without changing callers.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"snackledger/internal/core"

	_ "modernc.org/sqlite"
)

// Slot is the snapshot key. The value carries the lineage of the cache format
// and must not change without a data migration.
const Slot = "snack_db_v12"

type Store struct {
	db   *sql.DB
	slot string
}

func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, slot: Slot}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the snapshot slot. A missing slot is an empty ledger, not an
// error; a corrupt payload is an error so the caller can decide whether to
// resync instead of silently losing data.
func (s *Store) Load(ctx context.Context) ([]core.Record, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE slot = ?`, s.slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var records []core.Record
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return records, nil
}

// Save overwrites the snapshot slot with the full dataset.
func (s *Store) Save(ctx context.Context, records []core.Record) error {
	if records == nil {
		records = []core.Record{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (slot, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		s.slot, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
