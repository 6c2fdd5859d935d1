package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"labelboard/internal/domain"
	"labelboard/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// SnapshotStore implements ports.SnapshotStore using SQLite
type SnapshotStore struct {
	db     *sql.DB
	dbPath string
}

// Ensure SnapshotStore implements ports.SnapshotStore
var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// Open opens or creates the snapshot database at dbPath
func Open(dbPath string) (*SnapshotStore, error) {
	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas + schema in one batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS tickets (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS labels (
			name TEXT PRIMARY KEY,
			color TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	s := &SnapshotStore{db: db, dbPath: dbPath}
	if s.schemaMismatch() {
		if err := s.clear(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to reset snapshot: %w", err)
		}
	}
	return s, nil
}

// Path returns the database file location
func (s *SnapshotStore) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *SnapshotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save replaces the stored snapshot in one transaction
func (s *SnapshotStore) Save(ctx context.Context, snap *ports.Snapshot) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.replaceLabels(snap.Labels, snap.Colors); err != nil {
		return fmt.Errorf("failed to save labels: %w", err)
	}
	if err := tx.replaceTickets(snap.Tickets); err != nil {
		return fmt.Errorf("failed to save tickets: %w", err)
	}
	takenAt := snap.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now()
	}
	if err := tx.setMeta(map[string]string{
		"schema_version": schemaVersion,
		"store_url":      snap.StoreURL,
		"taken_at":       takenAt.UTC().Format(time.RFC3339Nano),
	}); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}
	return tx.Commit()
}

// Load returns the stored snapshot, or nil if none was saved
func (s *SnapshotStore) Load(ctx context.Context) (*ports.Snapshot, error) {
	var takenAt string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'taken_at'`).Scan(&takenAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	snap := &ports.Snapshot{Colors: make(domain.ColorTable)}
	snap.TakenAt, _ = time.Parse(time.RFC3339Nano, takenAt)
	s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'store_url'`).Scan(&snap.StoreURL)

	rows, err := s.db.QueryContext(ctx, `SELECT name, color FROM labels ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name, color string
		if err := rows.Scan(&name, &color); err != nil {
			return nil, err
		}
		snap.Labels = append(snap.Labels, name)
		if color != "" {
			snap.Colors[name] = color
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	trows, err := s.db.QueryContext(ctx, `SELECT id, title, content, label FROM tickets ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var t domain.Ticket
		if err := trows.Scan(&t.ID, &t.Title, &t.Content, &t.Label); err != nil {
			return nil, err
		}
		snap.Tickets = append(snap.Tickets, t)
	}
	return snap, trows.Err()
}

func (s *SnapshotStore) schemaMismatch() bool {
	var version string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	if err == sql.ErrNoRows {
		return false
	}
	return version != schemaVersion
}

func (s *SnapshotStore) clear() error {
	_, err := s.db.Exec(`
		DELETE FROM tickets;
		DELETE FROM labels;
		DELETE FROM meta;
	`)
	return err
}

// DefaultPath returns the snapshot location for a store URL under the XDG
// data directory
func DefaultPath(storeURL string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "labelboard", hashStoreURL(storeURL)+".db")
}

// hashStoreURL returns a short hash of the store URL
func hashStoreURL(storeURL string) string {
	h := sha256.Sum256([]byte(storeURL))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}
