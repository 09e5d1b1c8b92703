package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/flamesearch/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
)

// DatabaseFileName is the name of the database file inside the data directory.
const DatabaseFileName = "profiles.db"

// Store is a SQLite-based storage that provides the profile library.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.flamesearch/data/profiles.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".flamesearch", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFileName)

	// WAL lets the TUI read while an import writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ProfileStore returns a ProfileStore interface backed by this store.
func (s *Store) ProfileStore() driven.ProfileStore {
	return &profileStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Profile Store ====================

// profileStore implements driven.ProfileStore.
type profileStore struct {
	store *Store
}

var _ driven.ProfileStore = (*profileStore)(nil)

const profileColumns = "id, name, path, format, fingerprint, samples, created_at"

// SaveProfile stores or updates a profile and its raw bytes.
// A missing ID is generated; a zero CreatedAt is set to now.
func (s *profileStore) SaveProfile(ctx context.Context, profile *domain.ProfileRecord, data []byte) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	profile.CreatedAt = profile.CreatedAt.UTC()

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO profiles (id, name, path, format, fingerprint, samples, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			path = excluded.path,
			format = excluded.format,
			fingerprint = excluded.fingerprint,
			samples = excluded.samples,
			data = excluded.data
	`, profile.ID, profile.Name, profile.Path, string(profile.Format),
		profile.Fingerprint, profile.Samples, data, profile.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("saving profile: %w", domain.ErrAlreadyExists)
		}
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by ID.
func (s *profileStore) GetProfile(ctx context.Context, id string) (*domain.ProfileRecord, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id = ?", id)
	return scanProfile(row)
}

// GetProfileData retrieves the raw bytes of a profile.
func (s *profileStore) GetProfileData(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := s.store.db.QueryRowContext(ctx, "SELECT data FROM profiles WHERE id = ?", id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading profile data: %w", err)
	}
	return data, nil
}

// FindByFingerprint retrieves a profile by content hash.
func (s *profileStore) FindByFingerprint(ctx context.Context, fingerprint string) (*domain.ProfileRecord, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE fingerprint = ?", fingerprint)
	return scanProfile(row)
}

// ListProfiles returns all profiles, newest first.
func (s *profileStore) ListProfiles(ctx context.Context) ([]domain.ProfileRecord, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+profileColumns+" FROM profiles ORDER BY created_at DESC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.ProfileRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return profiles, nil
}

// DeleteProfile removes a profile.
func (s *profileStore) DeleteProfile(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*domain.ProfileRecord, error) {
	var p domain.ProfileRecord
	var format string
	var createdAt sql.NullTime
	if err := row.Scan(&p.ID, &p.Name, &p.Path, &format, &p.Fingerprint, &p.Samples, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	p.Format = domain.ProfileFormat(format)
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	return &p, nil
}
