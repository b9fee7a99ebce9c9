package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/charmbracelet/log"

	"github.com/abhisek/vitalcheck/internal/logging"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite connection and hands out repositories.
type Store struct {
	db     *sql.DB
	seq    *sequenceCounter
	logger *log.Logger
}

// Open connects to the SQLite database at dsn, applies pragmas and creates
// the tables if they do not exist.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq, logger: logging.Logger(logging.SourceStore)}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// PatientRepo returns the snapshot repository. rng seeds the default
// patient when no usable snapshot exists.
func (s *Store) PatientRepo(rng *rand.Rand) *PatientRepo {
	return &PatientRepo{db: s.db, rng: rng, keep: DefaultSnapshotHistory, logger: s.logger}
}

// KeepHistory returns a copy of r that retains keep snapshots; 0 keeps all.
func (r *PatientRepo) KeepHistory(keep int) *PatientRepo {
	c := *r
	c.keep = keep
	return &c
}

// EventRepo returns the event repository.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq}
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// migrate creates or extends the store tables with the ent migration
// engine. Existing tables only ever gain columns and indexes.
func migrate(ctx context.Context, db *sql.DB) error {
	m, err := schema.NewMigrate(entsql.OpenDB(dialect.SQLite, db))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	return m.Create(ctx, Tables...)
}

// applyPragmas configures SQLite for single-user CLI use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. VITALCHECK_DB environment variable
// 2. $XDG_DATA_HOME/vitalcheck/vitalcheck.db
// 3. ~/.local/share/vitalcheck/vitalcheck.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("VITALCHECK_DB"); p != "" {
		return p, EnsureDir(p)
	}
	return DataPath("vitalcheck.db")
}

// DataPath returns name inside the vitalcheck data directory, creating the
// directory if needed.
func DataPath(name string) (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "vitalcheck", name)
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
