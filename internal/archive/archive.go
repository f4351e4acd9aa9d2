// Package archive keeps a SQLite transcript of every exchange plus the
// usage counters shown by /status. Sessions live in JSON files (see
// package session); the archive is an append-only record that survives
// chat deletion.
package archive

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/AITechnologyDev/G4FChat/internal/llm"
)

// Counter names tracked for /status.
const (
	CounterAPICalls        = "api_calls"
	CounterSavedCodeBlocks = "saved_code_blocks"
)

// Stats is the snapshot rendered by /status.
type Stats struct {
	TotalMessages   int64
	ActiveChats     int64
	APICalls        int64
	SavedCodeBlocks int64
	LastActivity    time.Time
}

// Archive records transcripts in SQLite.
type Archive struct {
	db *sql.DB
}

// New opens (or creates) the archive database at the given path.
func New(dbPath string) (*Archive, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	a := &Archive{db: db}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return a, nil
}

func (a *Archive) migrate() error {
	for _, stmt := range migrations {
		if _, err := a.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveMessage appends one message to the transcript. provider is the
// backend that produced an assistant turn; empty for user turns.
func (a *Archive) SaveMessage(ctx context.Context, userID, chatID string, msg llm.Message, provider string) error {
	var prov *string
	if provider != "" {
		prov = &provider
	}
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO messages (user_id, chat_id, role, content, provider) VALUES (?, ?, ?, ?, ?)`,
		userID, chatID, msg.Role, msg.Content, prov,
	)
	return err
}

// History returns the last limit messages of a chat, oldest first.
func (a *Archive) History(ctx context.Context, userID, chatID string, limit int) ([]llm.Message, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT role, content FROM (
			SELECT role, content, id
			FROM messages WHERE user_id = ? AND chat_id = ? ORDER BY id DESC LIMIT ?
		) sub ORDER BY id ASC`,
		userID, chatID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []llm.Message
	for rows.Next() {
		var msg llm.Message
		if err := rows.Scan(&msg.Role, &msg.Content); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// Bump increments a named counter.
func (a *Archive) Bump(ctx context.Context, name string, delta int64) error {
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO counters (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = value + excluded.value`,
		name, delta,
	)
	return err
}

// Counter returns the value of a named counter (0 if never bumped).
func (a *Archive) Counter(ctx context.Context, name string) (int64, error) {
	var value int64
	err := a.db.QueryRowContext(ctx,
		`SELECT value FROM counters WHERE name = ?`, name,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return value, err
}

// Stats computes the /status snapshot.
func (a *Archive) Stats(ctx context.Context) (Stats, error) {
	var s Stats

	err := a.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT user_id || '/' || chat_id) FROM messages`,
	).Scan(&s.TotalMessages, &s.ActiveChats)
	if err != nil {
		return s, err
	}

	var last sql.NullString
	if err := a.db.QueryRowContext(ctx,
		`SELECT MAX(created_at) FROM messages`,
	).Scan(&last); err != nil {
		return s, err
	}
	if last.Valid {
		if t, err := time.Parse("2006-01-02 15:04:05", last.String); err == nil {
			s.LastActivity = t
		}
	}

	if s.APICalls, err = a.Counter(ctx, CounterAPICalls); err != nil {
		return s, err
	}
	if s.SavedCodeBlocks, err = a.Counter(ctx, CounterSavedCodeBlocks); err != nil {
		return s, err
	}
	return s, nil
}

// Close closes the database.
func (a *Archive) Close() error {
	return a.db.Close()
}
