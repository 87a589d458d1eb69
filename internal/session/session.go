package session

import (
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Session is the persisted credential: set at login, cleared at logout. The
// token is what protected requests carry; the user fields are display-only.
type Session struct {
	Token    string
	Username string
	Nickname string
	SavedAt  time.Time
}

// Store keeps at most one session row in a local sqlite database, the
// terminal counterpart of the browser's localStorage token.
type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("session db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	token TEXT NOT NULL,
	username TEXT NOT NULL DEFAULT '',
	nickname TEXT NOT NULL DEFAULT '',
	saved_at TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Current returns the stored session, if any.
func (s *Store) Current() (Session, bool, error) {
	row := s.db.QueryRow(`SELECT token, username, nickname, saved_at FROM session WHERE id = 1;`)

	var sess Session
	var savedStr string
	if err := row.Scan(&sess.Token, &sess.Username, &sess.Nickname, &savedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, false, nil
		}
		return Session{}, false, err
	}
	if saved, err := time.Parse(time.RFC3339, savedStr); err == nil {
		sess.SavedAt = saved
	}
	return sess, true, nil
}

// Save replaces the stored session with sess.
func (s *Store) Save(sess Session) error {
	if sess.Token == "" {
		return errors.New("session token is empty")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO session (id, token, username, nickname, saved_at) VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET token = excluded.token, username = excluded.username,
		 nickname = excluded.nickname, saved_at = excluded.saved_at;`,
		sess.Token, sess.Username, sess.Nickname, now)
	return err
}

// Clear removes the stored session. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM session WHERE id = 1;`)
	return err
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
