package neuron

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = sql.ErrNoRows

// ErrNotInitialized is returned by every accessor of a Store that has not
// been opened with NewStore.
var ErrNotInitialized = errors.New("neuron: store not initialized")

// Default admin credential seeded on first open. Rotate it from the admin
// dashboard before exposing the site.
const (
	DefaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "admin123"
)

// Store wraps a SQLite database and provides CRUD operations for content,
// attachments, the subscription ledger, channel config, and admin credentials.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, runs schema migrations, and seeds the default admin
// credential if the credentials table is empty.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// foreign_keys and busy_timeout are per-connection pragmas, so they go in
	// the DSN to cover every pooled connection: the attachment and ledger
	// cascades depend on FK enforcement being on everywhere.
	db, err := sql.Open("sqlite", "file:"+path+
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	if err := s.seedAdminCredential(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection. Accessors called after
// Close fail with ErrNotInitialized.
func (s *Store) Close() error {
	db := s.db
	s.db = nil
	if db == nil {
		return nil
	}
	return db.Close()
}

// conn guards every accessor against use before NewStore or after Close.
func (s *Store) conn() (*sql.DB, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS content (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    body TEXT NOT NULL,
    created_at TEXT NOT NULL,
    is_public INTEGER NOT NULL DEFAULT 0,
    youtube_channel_url TEXT
);

CREATE TABLE IF NOT EXISTS file_attachments (
    id TEXT PRIMARY KEY,
    content_id TEXT NOT NULL REFERENCES content(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    size INTEGER NOT NULL,
    url TEXT NOT NULL,
    uploaded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS subscriptions (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    content_id TEXT NOT NULL REFERENCES content(id) ON DELETE CASCADE,
    subscribed_at TEXT NOT NULL,
    youtube_subscribed INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS youtube_config (
    id INTEGER PRIMARY KEY,
    channel_url TEXT NOT NULL,
    channel_name TEXT NOT NULL,
    enabled INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS admin_credentials (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL,
    password_hash TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attachments_content ON file_attachments(content_id);
CREATE INDEX IF NOT EXISTS idx_subscriptions_lookup ON subscriptions(email, content_id);
`)
	return err
}

// seedAdminCredential inserts the default admin login when the table is
// empty, storing a bcrypt hash rather than the plaintext password.
func (s *Store) seedAdminCredential() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM admin_credentials`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO admin_credentials (email, password_hash) VALUES (?, ?)`,
		DefaultAdminEmail, string(hash))
	return err
}
