package infrastructure

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// sessionKey is the one fixed storage key. The credential is the only
// durable local state this application keeps.
const sessionKey = "token"

// SQLiteTokenStore persists the bearer credential in a local SQLite file so
// the operator stays logged in across console restarts.
type SQLiteTokenStore struct {
	db    *sql.DB
	mu    sync.RWMutex
	token string // cached copy, read on every outbound request
}

func NewSQLiteTokenStore(dbPath string) (*SQLiteTokenStore, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			key VARCHAR(50) PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create session table: %w", err)
	}

	store := &SQLiteTokenStore{db: db}

	// Load persisted credential, if any
	var token string
	err = db.QueryRow("SELECT value FROM session WHERE key = ?", sessionKey).Scan(&token)
	if err != nil && err != sql.ErrNoRows {
		db.Close()
		return nil, fmt.Errorf("read session: %w", err)
	}
	store.token = token

	return store, nil
}

func (s *SQLiteTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *SQLiteTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO session (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, sessionKey, token)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.token = token
	return nil
}

func (s *SQLiteTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM session WHERE key = ?", sessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.token = ""
	return nil
}

func (s *SQLiteTokenStore) Close() error {
	return s.db.Close()
}

// MemoryTokenStore keeps the credential in memory only. Used in tests and
// when no session path is configured.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// TokenExpiry decodes the exp claim of a stored access token without
// verifying the signature (the signing key lives server-side). Returns the
// zero time when the token has no readable expiry.
func TokenExpiry(token string) time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
